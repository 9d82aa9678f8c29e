package property

import (
	"context"
	"database/sql"
	"errors"
	"math"

	"campusshelter/model"
	"campusshelter/util/errcode"
)

const (
	ErrNotFound errcode.Code = "PROPERTY_NOT_FOUND"
	ErrNotOwner errcode.Code = "NOT_OWNER"
)

// Code extracts the error code set by this service.
func Code(err error) errcode.Code { return errcode.Of(err) }

type Repo interface {
	Insert(ctx context.Context, p *model.Property) error
	ByID(ctx context.Context, id int64) (*model.Property, error)
	OwnerID(ctx context.Context, id int64) (int64, error)
	Update(ctx context.Context, id int64, req model.UpdatePropertyReq) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, f model.PropertyFilter, limit, offset int) ([]model.Property, error)
	CountSearch(ctx context.Context, f model.PropertyFilter) (int, error)
}

// Reviews supplies the review list embedded in the detail payload.
type Reviews interface {
	AllForProperty(ctx context.Context, propertyID int64) ([]model.Review, error)
}

type Service interface {
	Create(ctx context.Context, landlordID int64, req model.CreatePropertyReq) (*model.Property, error)
	Get(ctx context.Context, id int64) (*model.Property, error)
	Update(ctx context.Context, id, callerID int64, req model.UpdatePropertyReq) (*model.Property, error)
	Delete(ctx context.Context, id, callerID int64, role model.Role) error

	// Search lists approved properties under the conjunctive filters.
	// MinRating is applied to the fetched page because the average is
	// computed, not stored: the returned slice can be shorter than the
	// page limit and the total is counted before this filter runs.
	Search(ctx context.Context, f model.PropertyFilter, limit, offset int) ([]model.Property, int, error)
}

type service struct {
	r  Repo
	rv Reviews
}

func New(r Repo, rv Reviews) Service { return &service{r: r, rv: rv} }

func (s *service) Create(ctx context.Context, landlordID int64, req model.CreatePropertyReq) (*model.Property, error) {
	p := &model.Property{
		LandlordID:         landlordID,
		Title:              req.Title,
		Description:        req.Description,
		PriceMonthly:       req.PriceMonthly,
		PriceWeekly:        req.PriceWeekly,
		Location:           req.Location,
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
		Rooms:              req.Rooms,
		Bathrooms:          req.Bathrooms,
		Furnished:          req.Furnished,
		Wifi:               req.Wifi,
		ElectricityBackup:  req.ElectricityBackup,
		Water:              req.Water,
		Security:           req.Security,
		RoomType:           req.RoomType,
		DistanceFromCampus: req.DistanceFromCampus,
		AvailableFrom:      req.AvailableFrom,
	}
	if err := s.r.Insert(ctx, p); err != nil {
		return nil, err
	}
	return s.r.ByID(ctx, p.ID)
}

func (s *service) Get(ctx context.Context, id int64) (*model.Property, error) {
	p, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcode.New(ErrNotFound)
		}
		return nil, err
	}
	p.AvgRating = round1(p.AvgRating)

	reviews, err := s.rv.AllForProperty(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Reviews = reviews
	return p, nil
}

func (s *service) Update(ctx context.Context, id, callerID int64, req model.UpdatePropertyReq) (*model.Property, error) {
	owner, err := s.r.OwnerID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcode.New(ErrNotFound)
		}
		return nil, err
	}
	if owner != callerID {
		return nil, errcode.New(ErrNotOwner)
	}
	if err := s.r.Update(ctx, id, req); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id, callerID int64, role model.Role) error {
	owner, err := s.r.OwnerID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errcode.New(ErrNotFound)
		}
		return err
	}
	if role != model.RoleAdmin && owner != callerID {
		return errcode.New(ErrNotOwner)
	}
	return s.r.Delete(ctx, id)
}

func (s *service) Search(ctx context.Context, f model.PropertyFilter, limit, offset int) ([]model.Property, int, error) {
	total, err := s.r.CountSearch(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	page, err := s.r.Search(ctx, f, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	out := page[:0]
	for _, p := range page {
		p.AvgRating = round1(p.AvgRating)
		if f.MinRating != nil && p.AvgRating < *f.MinRating {
			continue
		}
		out = append(out, p)
	}
	return out, total, nil
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
