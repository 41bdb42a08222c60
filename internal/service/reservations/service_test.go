package reservations

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LoungeService/internal/domain"
	storage "github.com/m04kA/SMC-LoungeService/internal/infra/storage/reservation"
)

type fakeRepo struct {
	mu   sync.Mutex
	byID map[int64]*domain.Reservation
}

func newFakeRepo(reservations ...*domain.Reservation) *fakeRepo {
	f := &fakeRepo{byID: make(map[int64]*domain.Reservation)}
	for _, res := range reservations {
		f.byID[res.ID] = res
	}
	return f
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res, ok := f.byID[id]
	if !ok {
		return nil, storage.ErrReservationNotFound
	}
	out := *res
	return &out, nil
}

func (f *fakeRepo) GetByUserID(_ context.Context, userID int64) ([]*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*domain.Reservation
	for _, res := range f.byID {
		if res.UserID == userID {
			out := *res
			result = append(result, &out)
		}
	}
	return result, nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return storage.ErrReservationNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeNotifier struct {
	mu    sync.Mutex
	dates []time.Time
}

func (f *fakeNotifier) ReservationChanged(date time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dates = append(f.dates, date)
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.dates)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	owner    = domain.Principal{ID: 101, DisplayName: "20301 Ким"}
	stranger = domain.Principal{ID: 202, DisplayName: "20302 Ли"}
)

func sampleReservation() *domain.Reservation {
	start := time.Date(2025, time.October, 13, 22, 0, 0, 0, time.UTC)
	return &domain.Reservation{
		ID:        7,
		LoungeID:  1,
		UserID:    owner.ID,
		UserName:  owner.DisplayName,
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
	}
}

func TestGetByID(t *testing.T) {
	svc := NewService(newFakeRepo(sampleReservation()), &fakeNotifier{}, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 7, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, owner.ID, resp.UserID)

	_, err = svc.GetByID(context.Background(), 7, stranger)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(context.Background(), 999, owner)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestGetUserReservations(t *testing.T) {
	svc := NewService(newFakeRepo(sampleReservation()), &fakeNotifier{}, nopLogger{})

	resp, err := svc.GetUserReservations(context.Background(), owner.ID, owner)
	require.NoError(t, err)
	assert.Len(t, resp.Reservations, 1)

	// Чужой список недоступен
	_, err = svc.GetUserReservations(context.Background(), owner.ID, stranger)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_Owner(t *testing.T) {
	repo := newFakeRepo(sampleReservation())
	notifier := &fakeNotifier{}
	svc := NewService(repo, notifier, nopLogger{})

	err := svc.Cancel(context.Background(), 7, owner)
	require.NoError(t, err)
	assert.Equal(t, 1, notifier.count())

	// Повторная отмена — NotFound, а не успех
	err = svc.Cancel(context.Background(), 7, owner)
	assert.ErrorIs(t, err, ErrReservationNotFound)
	assert.Equal(t, 1, notifier.count(), "failed cancel must not notify")
}

func TestCancel_Forbidden(t *testing.T) {
	repo := newFakeRepo(sampleReservation())
	notifier := &fakeNotifier{}
	svc := NewService(repo, notifier, nopLogger{})

	err := svc.Cancel(context.Background(), 7, stranger)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Zero(t, notifier.count())

	// Бронирование осталось на месте
	_, err = svc.GetByID(context.Background(), 7, owner)
	assert.NoError(t, err)
}

func TestCancel_NotFound(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeNotifier{}, nopLogger{})

	err := svc.Cancel(context.Background(), 42, owner)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}
