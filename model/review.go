package model

import "time"

type Review struct {
	ID         int64     `json:"id"`
	StudentID  int64     `json:"studentId"`
	PropertyID int64     `json:"propertyId"`
	Rating     int       `json:"rating"`
	Comment    *string   `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`

	Student  *UserRef     `json:"student,omitempty"`
	Property *PropertyRef `json:"property,omitempty"`
}

type CreateReviewReq struct {
	PropertyID int64   `json:"propertyId" validate:"required,gt=0"`
	Rating     int     `json:"rating" validate:"required,min=1,max=5"`
	Comment    *string `json:"comment,omitempty"`
}
