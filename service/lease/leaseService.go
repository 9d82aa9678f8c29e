package lease

import (
	"context"
	"database/sql"
	"errors"

	"campusshelter/model"
	lrepo "campusshelter/repository/lease"
	"campusshelter/util/errcode"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	ErrBookingNotFound errcode.Code = "BOOKING_NOT_FOUND"
	ErrNotApproved     errcode.Code = "BOOKING_NOT_APPROVED"
	ErrNotOwner        errcode.Code = "NOT_OWNER"
	ErrAlreadyLeased   errcode.Code = "ALREADY_LEASED"
	ErrNotFound        errcode.Code = "LEASE_NOT_FOUND"
)

// Code extracts the error code set by this service.
func Code(err error) errcode.Code { return errcode.Of(err) }

type Repo interface {
	BookingMeta(ctx context.Context, bookingID int64) (*lrepo.BookingMeta, error)
	Insert(ctx context.Context, l *model.Lease) error
	ByID(ctx context.Context, id int64) (*lrepo.Detail, error)
}

type Service interface {
	// Create attaches the single lease to an approved booking; only the
	// owning landlord may do it.
	Create(ctx context.Context, callerID int64, req model.CreateLeaseReq) (*model.Lease, error)

	// Get returns the lease to its student, its landlord, or an admin.
	// Everyone else gets not-found so the lease's existence stays hidden.
	Get(ctx context.Context, id, callerID int64, role model.Role) (*model.Lease, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, callerID int64, req model.CreateLeaseReq) (*model.Lease, error) {
	meta, err := s.r.BookingMeta(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcode.New(ErrBookingNotFound)
		}
		return nil, err
	}
	if meta.Status != model.BookingApproved {
		return nil, errcode.New(ErrNotApproved)
	}
	if meta.LandlordID != callerID {
		return nil, errcode.New(ErrNotOwner)
	}
	if meta.HasLease {
		return nil, errcode.New(ErrAlreadyLeased)
	}

	l := &model.Lease{
		BookingID:   req.BookingID,
		DocumentURL: req.DocumentURL,
	}
	if err := s.r.Insert(ctx, l); err != nil {
		// The unique booking_id index backs the check above against
		// a concurrent create.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, errcode.New(ErrAlreadyLeased)
		}
		return nil, err
	}
	return l, nil
}

func (s *service) Get(ctx context.Context, id, callerID int64, role model.Role) (*model.Lease, error) {
	d, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcode.New(ErrNotFound)
		}
		return nil, err
	}

	isStudent := d.StudentID == callerID
	isLandlord := d.LandlordID == callerID
	if !isStudent && !isLandlord && role != model.RoleAdmin {
		return nil, errcode.New(ErrNotFound)
	}
	return &d.Lease, nil
}
