package review

import (
	"context"
	"errors"

	"campusshelter/model"
	"campusshelter/util/errcode"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	ErrPropertyNotFound  errcode.Code = "PROPERTY_NOT_FOUND"
	ErrNoApprovedBooking errcode.Code = "NO_APPROVED_BOOKING"
	ErrDuplicate         errcode.Code = "DUPLICATE_REVIEW"
)

// Code extracts the error code set by this service.
func Code(err error) errcode.Code { return errcode.Of(err) }

type Repo interface {
	PropertyExists(ctx context.Context, propertyID int64) (bool, error)
	HasApprovedBooking(ctx context.Context, studentID, propertyID int64) (bool, error)
	Insert(ctx context.Context, rv *model.Review) error
	ListForProperty(ctx context.Context, propertyID int64, limit, offset int) ([]model.Review, error)
	CountForProperty(ctx context.Context, propertyID int64) (int, error)
}

type Service interface {
	// Create records a student's single review of a property they have
	// an approved booking for. Reviews are immutable once written.
	Create(ctx context.Context, studentID int64, req model.CreateReviewReq) (*model.Review, error)

	ListForProperty(ctx context.Context, propertyID int64, limit, offset int) ([]model.Review, int, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, studentID int64, req model.CreateReviewReq) (*model.Review, error) {
	booked, err := s.r.HasApprovedBooking(ctx, studentID, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if !booked {
		return nil, errcode.New(ErrNoApprovedBooking)
	}

	rv := &model.Review{
		StudentID:  studentID,
		PropertyID: req.PropertyID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := s.r.Insert(ctx, rv); err != nil {
		// The unique (student_id, property_id) index turns a concurrent
		// duplicate into a violation instead of a second row.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, errcode.New(ErrDuplicate)
		}
		return nil, err
	}
	return rv, nil
}

func (s *service) ListForProperty(ctx context.Context, propertyID int64, limit, offset int) ([]model.Review, int, error) {
	exists, err := s.r.PropertyExists(ctx, propertyID)
	if err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, errcode.New(ErrPropertyNotFound)
	}

	total, err := s.r.CountForProperty(ctx, propertyID)
	if err != nil {
		return nil, 0, err
	}
	rows, err := s.r.ListForProperty(ctx, propertyID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
