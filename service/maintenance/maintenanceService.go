package maintenance

import (
	"context"
	"database/sql"
	"errors"

	"campusshelter/model"
	mrepo "campusshelter/repository/maintenance"
	"campusshelter/util/errcode"
)

const (
	ErrPropertyNotFound  errcode.Code = "PROPERTY_NOT_FOUND"
	ErrNoApprovedBooking errcode.Code = "NO_APPROVED_BOOKING"
	ErrNotFound          errcode.Code = "REQUEST_NOT_FOUND"
	ErrNotOwner          errcode.Code = "NOT_OWNER"
)

// Code extracts the error code set by this service.
func Code(err error) errcode.Code { return errcode.Of(err) }

type Scope = mrepo.Scope

type Repo interface {
	PropertyExists(ctx context.Context, propertyID int64) (bool, error)
	HasApprovedBooking(ctx context.Context, studentID, propertyID int64) (bool, error)
	Insert(ctx context.Context, m *model.MaintenanceRequest) error
	GetWithOwner(ctx context.Context, id int64) (req *model.MaintenanceRequest, landlordID int64, err error)
	SetStatus(ctx context.Context, id int64, status model.MaintenanceStatus) error
	ByID(ctx context.Context, id int64) (*model.MaintenanceRequest, error)
	List(ctx context.Context, s Scope, limit, offset int) ([]model.MaintenanceRequest, error)
	Count(ctx context.Context, s Scope) (int, error)
}

type Service interface {
	// Create opens a request; the student must hold an approved booking
	// on the property.
	Create(ctx context.Context, studentID int64, req model.CreateMaintenanceReq) (*model.MaintenanceRequest, error)

	// UpdateStatus moves a request between OPEN/IN_PROGRESS/RESOLVED in
	// any direction. Admins may always mutate, landlords only on their
	// own properties, students never.
	UpdateStatus(ctx context.Context, id, callerID int64, role model.Role, status model.MaintenanceStatus) (*model.MaintenanceRequest, error)

	List(ctx context.Context, callerID int64, role model.Role, limit, offset int) ([]model.MaintenanceRequest, int, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, studentID int64, req model.CreateMaintenanceReq) (*model.MaintenanceRequest, error) {
	exists, err := s.r.PropertyExists(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errcode.New(ErrPropertyNotFound)
	}

	booked, err := s.r.HasApprovedBooking(ctx, studentID, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if !booked {
		return nil, errcode.New(ErrNoApprovedBooking)
	}

	m := &model.MaintenanceRequest{
		PropertyID:  req.PropertyID,
		StudentID:   studentID,
		Description: req.Description,
	}
	if err := s.r.Insert(ctx, m); err != nil {
		return nil, err
	}
	return s.r.ByID(ctx, m.ID)
}

func (s *service) UpdateStatus(ctx context.Context, id, callerID int64, role model.Role, status model.MaintenanceStatus) (*model.MaintenanceRequest, error) {
	_, landlordID, err := s.r.GetWithOwner(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcode.New(ErrNotFound)
		}
		return nil, err
	}

	switch role {
	case model.RoleAdmin:
		// always allowed
	case model.RoleLandlord:
		if landlordID != callerID {
			return nil, errcode.New(ErrNotOwner)
		}
	default:
		return nil, errcode.New(ErrNotOwner)
	}

	if err := s.r.SetStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.r.ByID(ctx, id)
}

func (s *service) List(ctx context.Context, callerID int64, role model.Role, limit, offset int) ([]model.MaintenanceRequest, int, error) {
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
