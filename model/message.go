package model

import "time"

type Message struct {
	ID         int64     `json:"id"`
	SenderID   int64     `json:"senderId"`
	ReceiverID int64     `json:"receiverId"`
	PropertyID *int64    `json:"propertyId,omitempty"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`

	Sender   *UserRef `json:"sender,omitempty"`
	Receiver *UserRef `json:"receiver,omitempty"`
}

type SendMessageReq struct {
	ReceiverID int64  `json:"receiverId" validate:"required,gt=0"`
	PropertyID *int64 `json:"propertyId,omitempty" validate:"omitempty,gt=0"`
	Content    string `json:"content" validate:"required,min=1"`
}
