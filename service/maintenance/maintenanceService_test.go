package maintenance

import (
	"context"
	"database/sql"
	"testing"

	"campusshelter/model"

	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	existsFn    func(ctx context.Context, propertyID int64) (bool, error)
	bookedFn    func(ctx context.Context, studentID, propertyID int64) (bool, error)
	insertFn    func(ctx context.Context, m *model.MaintenanceRequest) error
	withOwnerFn func(ctx context.Context, id int64) (*model.MaintenanceRequest, int64, error)
	setStatusFn func(ctx context.Context, id int64, status model.MaintenanceStatus) error
	byIDFn      func(ctx context.Context, id int64) (*model.MaintenanceRequest, error)
	listFn      func(ctx context.Context, s Scope, limit, offset int) ([]model.MaintenanceRequest, error)
	countFn     func(ctx context.Context, s Scope) (int, error)
}

var _ Repo = (*mockRepo)(nil)

func (m *mockRepo) PropertyExists(ctx context.Context, propertyID int64) (bool, error) {
	return m.existsFn(ctx, propertyID)
}
func (m *mockRepo) HasApprovedBooking(ctx context.Context, studentID, propertyID int64) (bool, error) {
	return m.bookedFn(ctx, studentID, propertyID)
}
func (m *mockRepo) Insert(ctx context.Context, r *model.MaintenanceRequest) error {
	return m.insertFn(ctx, r)
}
func (m *mockRepo) GetWithOwner(ctx context.Context, id int64) (*model.MaintenanceRequest, int64, error) {
	return m.withOwnerFn(ctx, id)
}
func (m *mockRepo) SetStatus(ctx context.Context, id int64, status model.MaintenanceStatus) error {
	return m.setStatusFn(ctx, id, status)
}
func (m *mockRepo) ByID(ctx context.Context, id int64) (*model.MaintenanceRequest, error) {
	return m.byIDFn(ctx, id)
}
func (m *mockRepo) List(ctx context.Context, s Scope, limit, offset int) ([]model.MaintenanceRequest, error) {
	return m.listFn(ctx, s, limit, offset)
}
func (m *mockRepo) Count(ctx context.Context, s Scope) (int, error) { return m.countFn(ctx, s) }

func TestCreate_Success(t *testing.T) {
	m := &mockRepo{
		existsFn: func(ctx context.Context, propertyID int64) (bool, error) { return true, nil },
		bookedFn: func(ctx context.Context, studentID, propertyID int64) (bool, error) {
			return true, nil
		},
		insertFn: func(ctx context.Context, r *model.MaintenanceRequest) error {
			r.ID = 4
			r.Status = model.MaintenanceOpen
			return nil
		},
		byIDFn: func(ctx context.Context, id int64) (*model.MaintenanceRequest, error) {
			return &model.MaintenanceRequest{ID: id, Status: model.MaintenanceOpen}, nil
		},
	}
	svc := New(m)

	r, err := svc.Create(context.Background(), 2, model.CreateMaintenanceReq{
		PropertyID:  1,
		Description: "Bathroom tap keeps dripping",
	})
	require.NoError(t, err)
	require.Equal(t, int64(4), r.ID)
	require.Equal(t, model.MaintenanceOpen, r.Status)
}

func TestCreate_PropertyNotFound(t *testing.T) {
	m := &mockRepo{
		existsFn: func(ctx context.Context, propertyID int64) (bool, error) { return false, nil },
	}
	svc := New(m)

	_, err := svc.Create(context.Background(), 2, model.CreateMaintenanceReq{PropertyID: 99})
	require.Error(t, err)
	require.Equal(t, ErrPropertyNotFound, Code(err))
}

func TestCreate_RequiresApprovedBooking(t *testing.T) {
	m := &mockRepo{
		existsFn: func(ctx context.Context, propertyID int64) (bool, error) { return true, nil },
		bookedFn: func(ctx context.Context, studentID, propertyID int64) (bool, error) {
			return false, nil
		},
	}
	svc := New(m)

	_, err := svc.Create(context.Background(), 2, model.CreateMaintenanceReq{PropertyID: 1})
	require.Error(t, err)
	require.Equal(t, ErrNoApprovedBooking, Code(err))
}

func TestUpdateStatus_RoleMatrix(t *testing.T) {
	const ownerID = 5

	newSvc := func() Service {
		m := &mockRepo{
			withOwnerFn: func(ctx context.Context, id int64) (*model.MaintenanceRequest, int64, error) {
				return &model.MaintenanceRequest{ID: id, Status: model.MaintenanceOpen}, ownerID, nil
			},
			setStatusFn: func(ctx context.Context, id int64, status model.MaintenanceStatus) error {
				return nil
			},
			byIDFn: func(ctx context.Context, id int64) (*model.MaintenanceRequest, error) {
				return &model.MaintenanceRequest{ID: id, Status: model.MaintenanceResolved}, nil
			},
		}
		return New(m)
	}

	cases := []struct {
		name     string
		callerID int64
		role     model.Role
		allowed  bool
	}{
		{"admin", 999, model.RoleAdmin, true},
		{"owning landlord", ownerID, model.RoleLandlord, true},
		{"other landlord", 6, model.RoleLandlord, false},
		{"student", 2, model.RoleStudent, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := newSvc().UpdateStatus(context.Background(), 1, tc.callerID, tc.role, model.MaintenanceResolved)
			if tc.allowed {
				require.NoError(t, err)
				require.Equal(t, model.MaintenanceResolved, r.Status)
			} else {
				require.Error(t, err)
				require.Equal(t, ErrNotOwner, Code(err))
			}
		})
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	m := &mockRepo{
		withOwnerFn: func(ctx context.Context, id int64) (*model.MaintenanceRequest, int64, error) {
			return nil, 0, sql.ErrNoRows
		},
	}
	svc := New(m)

	_, err := svc.UpdateStatus(context.Background(), 1, 1, model.RoleAdmin, model.MaintenanceResolved)
	require.Error(t, err)
	require.Equal(t, ErrNotFound, Code(err))
}

func TestList_ScopesToCaller(t *testing.T) {
	var got Scope
	m := &mockRepo{
		countFn: func(ctx context.Context, s Scope) (int, error) {
			got = s
			return 1, nil
		},
		listFn: func(ctx context.Context, s Scope, limit, offset int) ([]model.MaintenanceRequest, error) {
			return []model.MaintenanceRequest{{ID: 1}}, nil
		},
	}
	svc := New(m)

	rows, total, err := svc.List(context.Background(), 2, model.RoleStudent, 10, 0)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, rows, 1)
	require.Equal(t, Scope{Role: model.RoleStudent, UserID: 2}, got)
}
