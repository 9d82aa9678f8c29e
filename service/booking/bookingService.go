package booking

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"campusshelter/model"
	brepo "campusshelter/repository/booking"
	"campusshelter/util/errcode"
)

const (
	ErrPropertyNotFound errcode.Code = "PROPERTY_NOT_FOUND"
	ErrOverlap          errcode.Code = "BOOKING_OVERLAP"
	ErrDateOrder        errcode.Code = "BAD_DATE_ORDER"
	ErrNotFound         errcode.Code = "BOOKING_NOT_FOUND"
	ErrNotOwner         errcode.Code = "NOT_OWNER"
	ErrAlreadyProcessed errcode.Code = "ALREADY_PROCESSED"
)

// Code extracts the error code set by this service.
func Code(err error) errcode.Code { return errcode.Of(err) }

type Scope = brepo.Scope
type Interval = brepo.Interval

type Repo interface {
	// WithTx runs fn inside one transaction, committing on nil and
	// rolling back on error.
	WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error

	LockProperty(ctx context.Context, tx *sql.Tx, propertyID int64) (bool, error)
	ActiveIntervals(ctx context.Context, tx *sql.Tx, propertyID int64) ([]Interval, error)
	Insert(ctx context.Context, tx *sql.Tx, b *model.Booking) error

	GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (studentID, landlordID int64, status model.BookingStatus, err error)
	SetStatus(ctx context.Context, tx *sql.Tx, id int64, status model.BookingStatus) error

	ByID(ctx context.Context, id int64) (*model.Booking, error)
	List(ctx context.Context, s Scope, limit, offset int) ([]model.Booking, error)
	Count(ctx context.Context, s Scope) (int, error)
}

type Service interface {
	// Create inserts a PENDING booking after checking the property's
	// active bookings for interval overlap, all inside one transaction.
	Create(ctx context.Context, studentID int64, req model.CreateBookingReq) (*model.Booking, error)

	// UpdateStatus performs the single PENDING -> APPROVED/REJECTED
	// transition; a decided booking can never be re-processed.
	UpdateStatus(ctx context.Context, bookingID, callerID int64, status model.BookingStatus) (*model.Booking, error)

	// List returns bookings visible to the caller under their role.
	List(ctx context.Context, callerID int64, role model.Role, limit, offset int) ([]model.Booking, int, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

// overlaps reports whether [start, end) intersects [oStart, oEnd).
// Touching endpoints (end == oStart) do not overlap.
func overlaps(start, end, oStart, oEnd time.Time) bool {
	return oStart.Before(end) && oEnd.After(start)
}

func (s *service) Create(ctx context.Context, studentID int64, req model.CreateBookingReq) (*model.Booking, error) {
	if !req.LeaseEnd.After(req.LeaseStart) {
		return nil, errcode.New(ErrDateOrder)
	}

	b := &model.Booking{
		StudentID:  studentID,
		PropertyID: req.PropertyID,
		LeaseStart: req.LeaseStart,
		LeaseEnd:   req.LeaseEnd,
	}
	err := s.r.WithTx(ctx, func(tx *sql.Tx) error {
		// Lock the property row so concurrent bookings on the same
		// property serialize behind us instead of racing past the
		// overlap scan.
		exists, err := s.r.LockProperty(ctx, tx, req.PropertyID)
		if err != nil {
			return err
		}
		if !exists {
			return errcode.New(ErrPropertyNotFound)
		}

		intervals, err := s.r.ActiveIntervals(ctx, tx, req.PropertyID)
		if err != nil {
			return err
		}
		for _, iv := range intervals {
			if overlaps(req.LeaseStart, req.LeaseEnd, iv.Start, iv.End) {
				return errcode.New(ErrOverlap)
			}
		}

		return s.r.Insert(ctx, tx, b)
	})
	if err != nil {
		return nil, err
	}

	return s.r.ByID(ctx, b.ID)
}

func (s *service) UpdateStatus(ctx context.Context, bookingID, callerID int64, status model.BookingStatus) (*model.Booking, error) {
	err := s.r.WithTx(ctx, func(tx *sql.Tx) error {
		_, landlordID, current, err := s.r.GetForUpdate(ctx, tx, bookingID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errcode.New(ErrNotFound)
			}
			return err
		}
		if landlordID != callerID {
			return errcode.New(ErrNotOwner)
		}
		if current != model.BookingPending {
			return errcode.New(ErrAlreadyProcessed)
		}

		return s.r.SetStatus(ctx, tx, bookingID, status)
	})
	if err != nil {
		return nil, err
	}

	return s.r.ByID(ctx, bookingID)
}

func (s *service) List(ctx context.Context, callerID int64, role model.Role, limit, offset int) ([]model.Booking, int, error) {
	scope := Scope{Role: role, UserID: callerID}
	total, err := s.r.Count(ctx, scope)
	if err != nil {
		return nil, 0, err
	}
	rows, err := s.r.List(ctx, scope, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
