package model

import "time"

type Lease struct {
	ID          int64     `json:"id"`
	BookingID   int64     `json:"bookingId"`
	DocumentURL string    `json:"documentUrl"`
	SignedAt    time.Time `json:"signedAt"`

	Booking *Booking `json:"booking,omitempty"`
}

type CreateLeaseReq struct {
	BookingID   int64  `json:"bookingId" validate:"required,gt=0"`
	DocumentURL string `json:"documentUrl" validate:"required,url"`
}
