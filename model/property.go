package model

import "time"

type RoomType string

const (
	RoomSingle   RoomType = "SINGLE"
	RoomSelfCon  RoomType = "SELF_CON"
	RoomMiniFlat RoomType = "MINI_FLAT"
)

type Property struct {
	ID                 int64     `json:"id"`
	LandlordID         int64     `json:"landlordId"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	PriceMonthly       float64   `json:"priceMonthly"`
	PriceWeekly        *float64  `json:"priceWeekly,omitempty"`
	Location           string    `json:"location"`
	Latitude           *float64  `json:"latitude,omitempty"`
	Longitude          *float64  `json:"longitude,omitempty"`
	Rooms              int       `json:"rooms"`
	Bathrooms          int       `json:"bathrooms"`
	Furnished          bool      `json:"furnished"`
	Wifi               bool      `json:"wifi"`
	ElectricityBackup  bool      `json:"electricityBackup"`
	Water              bool      `json:"water"`
	Security           bool      `json:"security"`
	RoomType           RoomType  `json:"roomType"`
	DistanceFromCampus *float64  `json:"distanceFromCampus,omitempty"`
	AvailableFrom      time.Time `json:"availableFrom"`
	Approved           bool      `json:"approved"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`

	Landlord    *UserRef `json:"landlord,omitempty"`
	AvgRating   float64  `json:"avgRating"`
	ReviewCount int      `json:"reviewCount"`
	Reviews     []Review `json:"reviews,omitempty"`
}

// PropertyRef is the trimmed shape embedded in booking/lease payloads.
type PropertyRef struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Location     string  `json:"location"`
	PriceMonthly float64 `json:"priceMonthly,omitempty"`
	LandlordID   int64   `json:"-"`
}

type CreatePropertyReq struct {
	Title              string    `json:"title" validate:"required,min=3"`
	Description        string    `json:"description" validate:"required,min=10"`
	PriceMonthly       float64   `json:"priceMonthly" validate:"required,gt=0"`
	PriceWeekly        *float64  `json:"priceWeekly,omitempty" validate:"omitempty,gt=0"`
	Location           string    `json:"location" validate:"required,min=2"`
	Latitude           *float64  `json:"latitude,omitempty"`
	Longitude          *float64  `json:"longitude,omitempty"`
	Rooms              int       `json:"rooms" validate:"required,gt=0"`
	Bathrooms          int       `json:"bathrooms" validate:"required,gt=0"`
	Furnished          bool      `json:"furnished"`
	Wifi               bool      `json:"wifi"`
	ElectricityBackup  bool      `json:"electricityBackup"`
	Water              bool      `json:"water"`
	Security           bool      `json:"security"`
	RoomType           RoomType  `json:"roomType" validate:"required,oneof=SINGLE SELF_CON MINI_FLAT"`
	DistanceFromCampus *float64  `json:"distanceFromCampus,omitempty"`
	AvailableFrom      time.Time `json:"availableFrom" validate:"required"`
}

// UpdatePropertyReq is a partial update; nil fields are left untouched.
type UpdatePropertyReq struct {
	Title              *string    `json:"title,omitempty" validate:"omitempty,min=3"`
	Description        *string    `json:"description,omitempty" validate:"omitempty,min=10"`
	PriceMonthly       *float64   `json:"priceMonthly,omitempty" validate:"omitempty,gt=0"`
	PriceWeekly        *float64   `json:"priceWeekly,omitempty" validate:"omitempty,gt=0"`
	Location           *string    `json:"location,omitempty" validate:"omitempty,min=2"`
	Latitude           *float64   `json:"latitude,omitempty"`
	Longitude          *float64   `json:"longitude,omitempty"`
	Rooms              *int       `json:"rooms,omitempty" validate:"omitempty,gt=0"`
	Bathrooms          *int       `json:"bathrooms,omitempty" validate:"omitempty,gt=0"`
	Furnished          *bool      `json:"furnished,omitempty"`
	Wifi               *bool      `json:"wifi,omitempty"`
	ElectricityBackup  *bool      `json:"electricityBackup,omitempty"`
	Water              *bool      `json:"water,omitempty"`
	Security           *bool      `json:"security,omitempty"`
	RoomType           *RoomType  `json:"roomType,omitempty" validate:"omitempty,oneof=SINGLE SELF_CON MINI_FLAT"`
	DistanceFromCampus *float64   `json:"distanceFromCampus,omitempty"`
	AvailableFrom      *time.Time `json:"availableFrom,omitempty"`
}

type ApprovePropertyReq struct {
	Approved *bool `json:"approved" validate:"required"`
}

// PropertyFilter carries the search predicates from query params.
// MinRating cannot be pushed to the store; it is applied to the fetched
// page after the average is computed.
type PropertyFilter struct {
	MinPrice    *float64
	MaxPrice    *float64
	Location    string
	Wifi        bool
	Furnished   bool
	RoomType    RoomType
	MaxDistance *float64
	MinRating   *float64
}
