package message

import (
	"context"

	"campusshelter/model"
	"campusshelter/util/errcode"
)

const (
	ErrSelfSend         errcode.Code = "SELF_SEND"
	ErrReceiverNotFound errcode.Code = "RECEIVER_NOT_FOUND"
)

// Code extracts the error code set by this service.
func Code(err error) errcode.Code { return errcode.Of(err) }

type Repo interface {
	UserExists(ctx context.Context, id int64) (bool, error)
	Insert(ctx context.Context, m *model.Message) error
	List(ctx context.Context, userID int64, partnerID *int64, limit, offset int) ([]model.Message, error)
	Count(ctx context.Context, userID int64, partnerID *int64) (int, error)
}

type Service interface {
	Send(ctx context.Context, senderID int64, req model.SendMessageReq) (*model.Message, error)

	// List returns the caller's messages, optionally narrowed to one
	// conversation partner.
	List(ctx context.Context, userID int64, partnerID *int64, limit, offset int) ([]model.Message, int, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Send(ctx context.Context, senderID int64, req model.SendMessageReq) (*model.Message, error) {
	if req.ReceiverID == senderID {
		return nil, errcode.New(ErrSelfSend)
	}

	exists, err := s.r.UserExists(ctx, req.ReceiverID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errcode.New(ErrReceiverNotFound)
	}

	m := &model.Message{
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		PropertyID: req.PropertyID,
		Content:    req.Content,
	}
	if err := s.r.Insert(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) List(ctx context.Context, userID int64, partnerID *int64, limit, offset int) ([]model.Message, int, error) {
	total, err := s.r.Count(ctx, userID, partnerID)
	if err != nil {
		return nil, 0, err
	}
	rows, err := s.r.List(ctx, userID, partnerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
