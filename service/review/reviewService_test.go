package review

import (
	"context"
	"testing"

	"campusshelter/model"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	existsFn func(ctx context.Context, propertyID int64) (bool, error)
	bookedFn func(ctx context.Context, studentID, propertyID int64) (bool, error)
	insertFn func(ctx context.Context, rv *model.Review) error
	listFn   func(ctx context.Context, propertyID int64, limit, offset int) ([]model.Review, error)
	countFn  func(ctx context.Context, propertyID int64) (int, error)
}

var _ Repo = (*mockRepo)(nil)

func (m *mockRepo) PropertyExists(ctx context.Context, propertyID int64) (bool, error) {
	return m.existsFn(ctx, propertyID)
}
func (m *mockRepo) HasApprovedBooking(ctx context.Context, studentID, propertyID int64) (bool, error) {
	return m.bookedFn(ctx, studentID, propertyID)
}
func (m *mockRepo) Insert(ctx context.Context, rv *model.Review) error { return m.insertFn(ctx, rv) }
func (m *mockRepo) ListForProperty(ctx context.Context, propertyID int64, limit, offset int) ([]model.Review, error) {
	return m.listFn(ctx, propertyID, limit, offset)
}
func (m *mockRepo) CountForProperty(ctx context.Context, propertyID int64) (int, error) {
	return m.countFn(ctx, propertyID)
}

func TestCreate_Success(t *testing.T) {
	m := &mockRepo{
		bookedFn: func(ctx context.Context, studentID, propertyID int64) (bool, error) {
			return true, nil
		},
		insertFn: func(ctx context.Context, rv *model.Review) error {
			rv.ID = 7
			return nil
		},
	}
	svc := New(m)

	comment := "Quiet, close to campus"
	rv, err := svc.Create(context.Background(), 2, model.CreateReviewReq{
		PropertyID: 1,
		Rating:     5,
		Comment:    &comment,
	})
	require.NoError(t, err)
	require.Equal(t, int64(7), rv.ID)
	require.Equal(t, int64(2), rv.StudentID)
	require.Equal(t, 5, rv.Rating)
}

func TestCreate_RequiresApprovedBooking(t *testing.T) {
	m := &mockRepo{
		bookedFn: func(ctx context.Context, studentID, propertyID int64) (bool, error) {
			return false, nil
		},
	}
	svc := New(m)

	_, err := svc.Create(context.Background(), 2, model.CreateReviewReq{PropertyID: 1, Rating: 4})
	require.Error(t, err)
	require.Equal(t, ErrNoApprovedBooking, Code(err))
}

func TestCreate_DuplicateReview(t *testing.T) {
	m := &mockRepo{
		bookedFn: func(ctx context.Context, studentID, propertyID int64) (bool, error) {
			return true, nil
		},
		insertFn: func(ctx context.Context, rv *model.Review) error {
			return &pgconn.PgError{Code: pgerrcode.UniqueViolation}
		},
	}
	svc := New(m)

	_, err := svc.Create(context.Background(), 2, model.CreateReviewReq{PropertyID: 1, Rating: 4})
	require.Error(t, err)
	require.Equal(t, ErrDuplicate, Code(err))
}

func TestListForProperty_PropertyNotFound(t *testing.T) {
	m := &mockRepo{
		existsFn: func(ctx context.Context, propertyID int64) (bool, error) { return false, nil },
	}
	svc := New(m)

	_, _, err := svc.ListForProperty(context.Background(), 99, 10, 0)
	require.Error(t, err)
	require.Equal(t, ErrPropertyNotFound, Code(err))
}

func TestListForProperty_Success(t *testing.T) {
	m := &mockRepo{
		existsFn: func(ctx context.Context, propertyID int64) (bool, error) { return true, nil },
		countFn:  func(ctx context.Context, propertyID int64) (int, error) { return 12, nil },
		listFn: func(ctx context.Context, propertyID int64, limit, offset int) ([]model.Review, error) {
			return []model.Review{{ID: 1}, {ID: 2}}, nil
		},
	}
	svc := New(m)

	rows, total, err := svc.ListForProperty(context.Background(), 1, 2, 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, 12, total)
}
