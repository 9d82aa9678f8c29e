package booking

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"campusshelter/model"

	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2026, time.January, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                     string
		start, end, oStart, oEnd time.Time
		want                     bool
	}{
		{"identical", day(1), day(10), day(1), day(10), true},
		{"contained", day(3), day(5), day(1), day(10), true},
		{"contains", day(1), day(10), day(3), day(5), true},
		{"left overlap", day(1), day(5), day(4), day(10), true},
		{"right overlap", day(8), day(15), day(4), day(10), true},
		{"disjoint before", day(1), day(3), day(5), day(10), false},
		{"disjoint after", day(12), day(15), day(5), day(10), false},
		{"touching end to start", day(1), day(5), day(5), day(10), false},
		{"touching start to end", day(10), day(15), day(5), day(10), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, overlaps(tc.start, tc.end, tc.oStart, tc.oEnd))
		})
	}
}

type mockRepo struct {
	withTxFn    func(ctx context.Context, fn func(tx *sql.Tx) error) error
	lockFn      func(ctx context.Context, tx *sql.Tx, propertyID int64) (bool, error)
	intervalsFn func(ctx context.Context, tx *sql.Tx, propertyID int64) ([]Interval, error)
	insertFn    func(ctx context.Context, tx *sql.Tx, b *model.Booking) error
	forUpdateFn func(ctx context.Context, tx *sql.Tx, id int64) (int64, int64, model.BookingStatus, error)
	setStatusFn func(ctx context.Context, tx *sql.Tx, id int64, status model.BookingStatus) error
	byIDFn      func(ctx context.Context, id int64) (*model.Booking, error)
	listFn      func(ctx context.Context, s Scope, limit, offset int) ([]model.Booking, error)
	countFn     func(ctx context.Context, s Scope) (int, error)
}

var _ Repo = (*mockRepo)(nil)

func (m *mockRepo) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	if m.withTxFn == nil {
		return fn(nil)
	}
	return m.withTxFn(ctx, fn)
}
func (m *mockRepo) LockProperty(ctx context.Context, tx *sql.Tx, propertyID int64) (bool, error) {
	return m.lockFn(ctx, tx, propertyID)
}
func (m *mockRepo) ActiveIntervals(ctx context.Context, tx *sql.Tx, propertyID int64) ([]Interval, error) {
	return m.intervalsFn(ctx, tx, propertyID)
}
func (m *mockRepo) Insert(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	return m.insertFn(ctx, tx, b)
}
func (m *mockRepo) GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (int64, int64, model.BookingStatus, error) {
	return m.forUpdateFn(ctx, tx, id)
}
func (m *mockRepo) SetStatus(ctx context.Context, tx *sql.Tx, id int64, status model.BookingStatus) error {
	return m.setStatusFn(ctx, tx, id, status)
}
func (m *mockRepo) ByID(ctx context.Context, id int64) (*model.Booking, error) {
	return m.byIDFn(ctx, id)
}
func (m *mockRepo) List(ctx context.Context, s Scope, limit, offset int) ([]model.Booking, error) {
	return m.listFn(ctx, s, limit, offset)
}
func (m *mockRepo) Count(ctx context.Context, s Scope) (int, error) {
	return m.countFn(ctx, s)
}

func TestCreate_Success(t *testing.T) {
	m := &mockRepo{
		lockFn: func(ctx context.Context, tx *sql.Tx, propertyID int64) (bool, error) {
			return true, nil
		},
		intervalsFn: func(ctx context.Context, tx *sql.Tx, propertyID int64) ([]Interval, error) {
			return []Interval{{Start: day(20), End: day(30)}}, nil
		},
		insertFn: func(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
			b.ID = 7
			b.Status = model.BookingPending
			return nil
		},
		byIDFn: func(ctx context.Context, id int64) (*model.Booking, error) {
			return &model.Booking{ID: id, Status: model.BookingPending}, nil
		},
	}
	svc := New(m)

	b, err := svc.Create(context.Background(), 2, model.CreateBookingReq{
		PropertyID: 1,
		LeaseStart: day(1),
		LeaseEnd:   day(10),
	})
	require.NoError(t, err)
	require.Equal(t, int64(7), b.ID)
	require.Equal(t, model.BookingPending, b.Status)
}

func TestCreate_RejectsBadDateOrder(t *testing.T) {
	svc := New(&mockRepo{})

	_, err := svc.Create(context.Background(), 1, model.CreateBookingReq{
		PropertyID: 1,
		LeaseStart: day(10),
		LeaseEnd:   day(10),
	})
	require.Error(t, err)
	require.Equal(t, ErrDateOrder, Code(err))
}

func TestCreate_PropertyNotFound(t *testing.T) {
	m := &mockRepo{
		lockFn: func(ctx context.Context, tx *sql.Tx, propertyID int64) (bool, error) {
			return false, nil
		},
	}
	svc := New(m)

	_, err := svc.Create(context.Background(), 2, model.CreateBookingReq{
		PropertyID: 99,
		LeaseStart: day(1),
		LeaseEnd:   day(10),
	})
	require.Error(t, err)
	require.Equal(t, ErrPropertyNotFound, Code(err))
}

func TestCreate_OverlapConflict(t *testing.T) {
	inserted := false
	m := &mockRepo{
		lockFn: func(ctx context.Context, tx *sql.Tx, propertyID int64) (bool, error) {
			return true, nil
		},
		intervalsFn: func(ctx context.Context, tx *sql.Tx, propertyID int64) ([]Interval, error) {
			return []Interval{{Start: day(5), End: day(15)}}, nil
		},
		insertFn: func(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
			inserted = true
			return nil
		},
	}
	svc := New(m)

	_, err := svc.Create(context.Background(), 2, model.CreateBookingReq{
		PropertyID: 1,
		LeaseStart: day(1),
		LeaseEnd:   day(10),
	})
	require.Error(t, err)
	require.Equal(t, ErrOverlap, Code(err))
	require.False(t, inserted)
}

func TestCreate_TouchingIntervalAllowed(t *testing.T) {
	m := &mockRepo{
		lockFn: func(ctx context.Context, tx *sql.Tx, propertyID int64) (bool, error) {
			return true, nil
		},
		intervalsFn: func(ctx context.Context, tx *sql.Tx, propertyID int64) ([]Interval, error) {
			return []Interval{{Start: day(10), End: day(20)}}, nil
		},
		insertFn: func(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
			b.ID = 8
			return nil
		},
		byIDFn: func(ctx context.Context, id int64) (*model.Booking, error) {
			return &model.Booking{ID: id}, nil
		},
	}
	svc := New(m)

	b, err := svc.Create(context.Background(), 2, model.CreateBookingReq{
		PropertyID: 1,
		LeaseStart: day(1),
		LeaseEnd:   day(10),
	})
	require.NoError(t, err)
	require.Equal(t, int64(8), b.ID)
}

func TestUpdateStatus_Success(t *testing.T) {
	var setTo model.BookingStatus
	m := &mockRepo{
		forUpdateFn: func(ctx context.Context, tx *sql.Tx, id int64) (int64, int64, model.BookingStatus, error) {
			return 2, 5, model.BookingPending, nil
		},
		setStatusFn: func(ctx context.Context, tx *sql.Tx, id int64, status model.BookingStatus) error {
			setTo = status
			return nil
		},
		byIDFn: func(ctx context.Context, id int64) (*model.Booking, error) {
			return &model.Booking{ID: id, Status: model.BookingApproved}, nil
		},
	}
	svc := New(m)

	b, err := svc.UpdateStatus(context.Background(), 1, 5, model.BookingApproved)
	require.NoError(t, err)
	require.Equal(t, model.BookingApproved, b.Status)
	require.Equal(t, model.BookingApproved, setTo)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	m := &mockRepo{
		forUpdateFn: func(ctx context.Context, tx *sql.Tx, id int64) (int64, int64, model.BookingStatus, error) {
			return 0, 0, "", sql.ErrNoRows
		},
	}
	svc := New(m)

	_, err := svc.UpdateStatus(context.Background(), 1, 5, model.BookingApproved)
	require.Error(t, err)
	require.Equal(t, ErrNotFound, Code(err))
}

func TestUpdateStatus_OnlyOwningLandlord(t *testing.T) {
	m := &mockRepo{
		forUpdateFn: func(ctx context.Context, tx *sql.Tx, id int64) (int64, int64, model.BookingStatus, error) {
			return 2, 5, model.BookingPending, nil
		},
	}
	svc := New(m)

	_, err := svc.UpdateStatus(context.Background(), 1, 6, model.BookingApproved)
	require.Error(t, err)
	require.Equal(t, ErrNotOwner, Code(err))
}

func TestUpdateStatus_DecidedBookingStaysDecided(t *testing.T) {
	for _, decided := range []model.BookingStatus{model.BookingApproved, model.BookingRejected} {
		mutated := false
		m := &mockRepo{
			forUpdateFn: func(ctx context.Context, tx *sql.Tx, id int64) (int64, int64, model.BookingStatus, error) {
				return 2, 5, decided, nil
			},
			setStatusFn: func(ctx context.Context, tx *sql.Tx, id int64, status model.BookingStatus) error {
				mutated = true
				return nil
			},
		}
		svc := New(m)

		_, err := svc.UpdateStatus(context.Background(), 1, 5, model.BookingRejected)
		require.Error(t, err)
		require.Equal(t, ErrAlreadyProcessed, Code(err))
		require.False(t, mutated)
	}
}

func TestList_ScopesToCaller(t *testing.T) {
	var got Scope
	m := &mockRepo{
		countFn: func(ctx context.Context, s Scope) (int, error) {
			got = s
			return 3, nil
		},
		listFn: func(ctx context.Context, s Scope, limit, offset int) ([]model.Booking, error) {
			return []model.Booking{{ID: 1}, {ID: 2}, {ID: 3}}, nil
		},
	}
	svc := New(m)

	rows, total, err := svc.List(context.Background(), 9, model.RoleLandlord, 10, 0)
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Len(t, rows, 3)
	require.Equal(t, Scope{Role: model.RoleLandlord, UserID: 9}, got)
}
