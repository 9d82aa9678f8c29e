package model

import "time"

type MaintenanceStatus string

const (
	MaintenanceOpen       MaintenanceStatus = "OPEN"
	MaintenanceInProgress MaintenanceStatus = "IN_PROGRESS"
	MaintenanceResolved   MaintenanceStatus = "RESOLVED"
)

type MaintenanceRequest struct {
	ID          int64             `json:"id"`
	PropertyID  int64             `json:"propertyId"`
	StudentID   int64             `json:"studentId"`
	Description string            `json:"description"`
	Status      MaintenanceStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`

	Student  *UserRef     `json:"student,omitempty"`
	Property *PropertyRef `json:"property,omitempty"`
}

type CreateMaintenanceReq struct {
	PropertyID  int64  `json:"propertyId" validate:"required,gt=0"`
	Description string `json:"description" validate:"required,min=10"`
}

type UpdateMaintenanceReq struct {
	Status MaintenanceStatus `json:"status" validate:"required,oneof=OPEN IN_PROGRESS RESOLVED"`
}
