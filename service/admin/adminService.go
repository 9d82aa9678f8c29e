package admin

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"sort"
	"time"

	"campusshelter/model"
	arepo "campusshelter/repository/admin"
	prepo "campusshelter/repository/property"
	"campusshelter/util/errcode"
)

const (
	ErrPropertyNotFound errcode.Code = "PROPERTY_NOT_FOUND"
)

// Code extracts the error code set by this service.
func Code(err error) errcode.Code { return errcode.Of(err) }

type Overview struct {
	TotalUsers      int     `json:"totalUsers"`
	TotalProperties int     `json:"totalProperties"`
	TotalBookings   int     `json:"totalBookings"`
	RecentBookings  int     `json:"recentBookings"`
	TotalRevenue    float64 `json:"totalRevenue"`
}

type Analytics struct {
	Overview                Overview             `json:"overview"`
	BookingsByStatus        []arepo.StatusCount  `json:"bookingsByStatus"`
	UsersByRole             []arepo.RoleCount    `json:"usersByRole"`
	TopPropertiesByBookings []arepo.PropertyStat `json:"topPropertiesByBookings"`
	TopPropertiesByRating   []arepo.PropertyStat `json:"topPropertiesByRating"`
}

type Service interface {
	Users(ctx context.Context, role model.Role, limit, offset int) ([]arepo.UserRow, int, error)
	Analytics(ctx context.Context) (*Analytics, error)
	SetPropertyApproval(ctx context.Context, id int64, approved bool) (*model.Property, error)
	DeleteProperty(ctx context.Context, id int64) error
}

type service struct {
	r  arepo.Repo
	pr prepo.Repo
}

func New(r arepo.Repo, pr prepo.Repo) Service { return &service{r: r, pr: pr} }

func (s *service) Users(ctx context.Context, role model.Role, limit, offset int) ([]arepo.UserRow, int, error) {
	total, err := s.r.CountUsers(ctx, role)
	if err != nil {
		return nil, 0, err
	}
	rows, err := s.r.ListUsers(ctx, role, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *service) Analytics(ctx context.Context) (*Analytics, error) {
	users, properties, bookings, err := s.r.Totals(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.r.BookingsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byRole, err := s.r.UsersByRole(ctx)
	if err != nil {
		return nil, err
	}
	topBookings, err := s.r.TopByBookings(ctx, 5)
	if err != nil {
		return nil, err
	}
	topRating, err := s.r.TopByRating(ctx, 5)
	if err != nil {
		return nil, err
	}
	recent, err := s.r.BookingsSince(ctx, time.Now().Add(-30*24*time.Hour))
	if err != nil {
		return nil, err
	}
	revenue, err := s.r.RevenueEstimate(ctx)
	if err != nil {
		return nil, err
	}

	for i := range topRating {
		topRating[i].AvgRating = math.Round(topRating[i].AvgRating*10) / 10
	}
	sort.SliceStable(topRating, func(i, j int) bool {
		return topRating[i].AvgRating > topRating[j].AvgRating
	})

	return &Analytics{
		Overview: Overview{
			TotalUsers:      users,
			TotalProperties: properties,
			TotalBookings:   bookings,
			RecentBookings:  recent,
			TotalRevenue:    math.Round(revenue*100) / 100,
		},
		BookingsByStatus:        byStatus,
		UsersByRole:             byRole,
		TopPropertiesByBookings: topBookings,
		TopPropertiesByRating:   topRating,
	}, nil
}

func (s *service) SetPropertyApproval(ctx context.Context, id int64, approved bool) (*model.Property, error) {
	if _, err := s.pr.OwnerID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcode.New(ErrPropertyNotFound)
		}
		return nil, err
	}
	if err := s.pr.SetApproved(ctx, id, approved); err != nil {
		return nil, err
	}
	return s.pr.ByID(ctx, id)
}

func (s *service) DeleteProperty(ctx context.Context, id int64) error {
	if _, err := s.pr.OwnerID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errcode.New(ErrPropertyNotFound)
		}
		return err
	}
	return s.pr.Delete(ctx, id)
}
