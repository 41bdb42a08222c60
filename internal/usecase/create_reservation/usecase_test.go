package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LoungeService/internal/domain"
	loungeStorage "github.com/m04kA/SMC-LoungeService/internal/infra/storage/lounge"
	storage "github.com/m04kA/SMC-LoungeService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-LoungeService/internal/schedule"
)

// fakeReservationRepo in-memory репозиторий с уникальностью (lounge_id, start),
// воспроизводящий семантику constraint под конкурентными вставками
type fakeReservationRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*domain.Reservation
	bySlot map[string]int64
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{
		nextID: 1,
		byID:   make(map[int64]*domain.Reservation),
		bySlot: make(map[string]int64),
	}
}

func slotKey(loungeID int64, start time.Time) string {
	return fmt.Sprintf("%d/%d", loungeID, start.UnixNano())
}

func (f *fakeReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := slotKey(res.LoungeID, res.StartTime)
	if _, taken := f.bySlot[key]; taken {
		return nil, storage.ErrSlotTaken
	}

	stored := *res
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	f.nextID++
	f.byID[stored.ID] = &stored
	f.bySlot[key] = stored.ID

	out := stored
	return &out, nil
}

func (f *fakeReservationRepo) GetByLoungeAndStart(_ context.Context, loungeID int64, start time.Time) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id, ok := f.bySlot[slotKey(loungeID, start)]
	if !ok {
		return nil, storage.ErrReservationNotFound
	}
	out := *f.byID[id]
	return &out, nil
}

func (f *fakeReservationRepo) GetOverlappingForUser(_ context.Context, userID int64, start, end time.Time) ([]*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*domain.Reservation
	for _, res := range f.byID {
		if res.UserID == userID && res.Overlaps(start, end) {
			out := *res
			result = append(result, &out)
		}
	}
	return result, nil
}

func (f *fakeReservationRepo) delete(id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	res, ok := f.byID[id]
	if !ok {
		return
	}
	delete(f.bySlot, slotKey(res.LoungeID, res.StartTime))
	delete(f.byID, id)
}

type fakeLoungeRepo struct {
	lounges map[int64]*domain.Lounge
}

func (f *fakeLoungeRepo) GetByID(_ context.Context, id int64) (*domain.Lounge, error) {
	l, ok := f.lounges[id]
	if !ok {
		return nil, loungeStorage.ErrLoungeNotFound
	}
	return l, nil
}

// fakeTxManager выполняет fn без транзакции: атомарность вставки обеспечивает
// сам fakeReservationRepo, как в продакшене её обеспечивает constraint
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	uc       *UseCase
	repo     *fakeReservationRepo
	notifier *fakeNotifier
	clock    *fakeClock
	loc      *time.Location
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cal, err := schedule.NewCalendar("Asia/Seoul", 30, []schedule.WindowConfig{
		{Weekdays: []string{"mon", "tue", "wed", "thu"}, Start: "21:30", End: "23:30"},
		{Weekdays: []string{"sun"}, Start: "22:00", End: "23:30"},
	})
	require.NoError(t, err)

	repo := newFakeReservationRepo()
	notifier := &fakeNotifier{}
	// 2025-10-13 — понедельник, 12:00 по Сеулу
	clock := &fakeClock{now: time.Date(2025, time.October, 13, 12, 0, 0, 0, cal.Location())}

	lounges := &fakeLoungeRepo{lounges: map[int64]*domain.Lounge{
		1: {ID: 1, Number: 1},
		2: {ID: 2, Number: 2},
	}}

	uc := NewUseCase(repo, lounges, cal, fakeTxManager{}, notifier, nopLogger{})
	uc.timeProvider = clock

	return &fixture{uc: uc, repo: repo, notifier: notifier, clock: clock, loc: cal.Location()}
}

func validRequest() *Request {
	return &Request{
		Principal:        domain.Principal{ID: 101, DisplayName: "20301 Ким"},
		LoungeID:         1,
		Start:            "2025-10-13 22:00:00",
		ParticipantNames: "Ким 00, Ли 00",
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.LoungeID)
	assert.Equal(t, 1, resp.LoungeNumber)
	assert.Equal(t, int64(101), resp.UserID)
	assert.Equal(t, "22:00", resp.StartTime.In(f.loc).Format("15:04"))
	assert.Equal(t, 30*time.Minute, resp.EndTime.Sub(resp.StartTime))
	assert.Equal(t, 1, f.notifier.count(), "commit must trigger exactly one notification")
}

func TestExecute_MalformedInput(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"no principal", func(r *Request) { r.Principal = domain.Principal{} }},
		{"bad lounge id", func(r *Request) { r.LoungeID = 0 }},
		{"empty start", func(r *Request) { r.Start = "" }},
		{"unparseable start", func(r *Request) { r.Start = "not-a-time" }},
		{"participants too long", func(r *Request) {
			for len(r.ParticipantNames) <= domain.MaxParticipantNamesLength {
				r.ParticipantNames += "Ким 00, "
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Zero(t, f.notifier.count(), "rejections must not notify the synchronizer")
}

func TestExecute_LoungeNotFound(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.LoungeID = 99

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrLoungeNotFound)
}

func TestExecute_NotAnAllowedSlot(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		start string
	}{
		{"not a slot boundary", "2025-10-13 22:15:00"},
		{"outside the window", "2025-10-13 20:00:00"},
		{"closed friday", "2025-10-17 22:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.Start = tt.start

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrNotAnAllowedSlot)
		})
	}
}

func TestExecute_SlotInPast(t *testing.T) {
	f := newFixture(t)

	// Сейчас вторник 23:45 — слот понедельника 22:00 уже закончился
	f.clock.now = time.Date(2025, time.October, 14, 23, 45, 0, 0, f.loc)

	req := validRequest()
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotInPast)
}

func TestExecute_RunningSlotStillBookable(t *testing.T) {
	f := newFixture(t)

	// 22:10 — слот 22:00–22:30 ещё идёт, его конец в будущем
	f.clock.now = time.Date(2025, time.October, 13, 22, 10, 0, 0, f.loc)

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_SlotTaken(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Другой пользователь претендует на тот же слот
	second := validRequest()
	second.Principal = domain.Principal{ID: 202, DisplayName: "20302 Ли"}

	_, err = f.uc.Execute(context.Background(), second)
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Equal(t, 1, f.notifier.count())
}

func TestExecute_OwnerDoubleBooked_AcrossLounges(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Тот же пользователь, то же время, другой лаунж
	second := validRequest()
	second.LoungeID = 2

	_, err = f.uc.Execute(context.Background(), second)
	assert.ErrorIs(t, err, ErrOwnerDoubleBooked)
}

func TestExecute_AdjacentSlotsDoNotConflict(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Граничащий слот 22:30 того же пользователя — пересечения нет
	next := validRequest()
	next.Start = "2025-10-13 22:30:00"

	_, err = f.uc.Execute(context.Background(), next)
	assert.NoError(t, err)
}

func TestExecute_CancelThenRebook(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	f.repo.delete(resp.ID)

	_, err = f.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_ConcurrentStorm_ExactlyOneWinner(t *testing.T) {
	f := newFixture(t)

	const attempts = 32

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := validRequest()
			req.Principal = domain.Principal{ID: int64(1000 + i), DisplayName: fmt.Sprintf("user-%d", i)}
			_, errs[i] = f.uc.Execute(context.Background(), req)
		}(i)
	}
	wg.Wait()

	var accepted, taken int
	for _, err := range errs {
		switch {
		case err == nil:
			accepted++
		case errors.Is(err, ErrSlotTaken):
			taken++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, accepted, "exactly one concurrent attempt must win")
	assert.Equal(t, attempts-1, taken, "all losers must see SlotTaken")
	assert.Equal(t, 1, f.notifier.count(), "only the winner notifies")
}
