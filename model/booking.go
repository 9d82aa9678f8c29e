package model

import "time"

type BookingStatus string

const (
	BookingPending  BookingStatus = "PENDING"
	BookingApproved BookingStatus = "APPROVED"
	BookingRejected BookingStatus = "REJECTED"
)

type Booking struct {
	ID         int64         `json:"id"`
	StudentID  int64         `json:"studentId"`
	PropertyID int64         `json:"propertyId"`
	Status     BookingStatus `json:"status"`
	LeaseStart time.Time     `json:"leaseStart"`
	LeaseEnd   time.Time     `json:"leaseEnd"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`

	Student  *UserRef     `json:"student,omitempty"`
	Property *PropertyRef `json:"property,omitempty"`
	Lease    *Lease       `json:"lease,omitempty"`
}

type CreateBookingReq struct {
	PropertyID int64     `json:"propertyId" validate:"required,gt=0"`
	LeaseStart time.Time `json:"leaseStart" validate:"required"`
	LeaseEnd   time.Time `json:"leaseEnd" validate:"required"`
}

type UpdateBookingStatusReq struct {
	Status BookingStatus `json:"status" validate:"required,oneof=APPROVED REJECTED"`
}
