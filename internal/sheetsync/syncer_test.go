package sheetsync

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LoungeService/internal/domain"
	"github.com/m04kA/SMC-LoungeService/internal/schedule"
)

type fakeReservationRepo struct {
	mu           sync.Mutex
	reservations []*domain.Reservation
}

func (f *fakeReservationRepo) GetByRange(_ context.Context, from, to time.Time) ([]*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Reservation
	for _, res := range f.reservations {
		if res.StartTime.Before(to) && !res.StartTime.Before(from) {
			out = append(out, res)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) set(reservations ...*domain.Reservation) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reservations = reservations
}

type fakeLoungeRepo struct{}

func (fakeLoungeRepo) List(context.Context) ([]*domain.Lounge, error) {
	return []*domain.Lounge{
		{ID: 1, Number: 1},
		{ID: 2, Number: 2},
	}, nil
}

type fakeSink struct {
	mu    sync.Mutex
	grids []*Grid
	fail  int // сколько первых публикаций завершить ошибкой
	calls int
}

func (f *fakeSink) PublishGrid(_ context.Context, grid *Grid) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.fail {
		return errors.New("sink: transient failure")
	}
	f.grids = append(f.grids, grid)
	return nil
}

func (f *fakeSink) published() []*Grid {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*Grid(nil), f.grids...)
}

func (f *fakeSink) attempts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type testLogger struct{}

func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}

func testCalendar(t *testing.T) *schedule.Calendar {
	t.Helper()
	cal, err := schedule.NewCalendar("Asia/Seoul", 30, []schedule.WindowConfig{
		{Weekdays: []string{"mon", "tue", "wed", "thu"}, Start: "21:30", End: "23:30"},
		{Weekdays: []string{"sun"}, Start: "22:00", End: "23:30"},
	})
	require.NoError(t, err)
	return cal
}

func seoulDate(t *testing.T, year int, month time.Month, day, hour, min int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)
	return time.Date(year, month, day, hour, min, 0, 0, loc)
}

func TestRenderGrid(t *testing.T) {
	repo := &fakeReservationRepo{}
	repo.set(
		&domain.Reservation{
			ID: 1, LoungeID: 1, UserID: 10, UserName: "20301 Ким",
			ParticipantNames: "Ким 00, Ли 00",
			StartTime:        seoulDate(t, 2025, time.October, 13, 22, 0),
			EndTime:          seoulDate(t, 2025, time.October, 13, 22, 30),
		},
		&domain.Reservation{
			ID: 2, LoungeID: 2, UserID: 20, UserName: "20302 Пак",
			StartTime: seoulDate(t, 2025, time.October, 13, 21, 30),
			EndTime:   seoulDate(t, 2025, time.October, 13, 22, 0),
		},
	)

	p := NewProjector(repo, fakeLoungeRepo{}, testCalendar(t), "Лаунж — расписание на %s")

	grid, err := p.RenderGrid(context.Background(), seoulDate(t, 2025, time.October, 13, 12, 0))
	require.NoError(t, err)

	assert.Equal(t, "Лаунж — расписание на 2025-10-13", grid.Title)
	assert.Equal(t, []string{"21:30~22:00", "22:00~22:30", "22:30~23:00", "23:00~23:30"}, grid.TimeLabels)

	require.Len(t, grid.Columns, 2)
	assert.Equal(t, []string{"", "Ким 00, Ли 00", "", ""}, grid.Columns[1])
	// Без списка участников в ячейку идёт имя владельца
	assert.Equal(t, []string{"20302 Пак", "", "", ""}, grid.Columns[2])
}

func TestRenderGrid_ClosedDay(t *testing.T) {
	p := NewProjector(&fakeReservationRepo{}, fakeLoungeRepo{}, testCalendar(t), "Расписание на %s")

	grid, err := p.RenderGrid(context.Background(), seoulDate(t, 2025, time.October, 17, 12, 0))
	require.NoError(t, err)

	assert.Empty(t, grid.TimeLabels)
	assert.Empty(t, grid.Columns[1])
	assert.Empty(t, grid.Columns[2])
}

func TestSyncer_PublishesOnChange(t *testing.T) {
	sink := &fakeSink{}
	p := NewProjector(&fakeReservationRepo{}, fakeLoungeRepo{}, testCalendar(t), "Расписание на %s")
	s := NewSyncer(p, sink, nil, testLogger{}, Options{Workers: 2, QueueSize: 8})

	s.ReservationChanged(seoulDate(t, 2025, time.October, 13, 22, 0))
	s.Close()

	grids := sink.published()
	require.Len(t, grids, 1)
	assert.Equal(t, "Расписание на 2025-10-13", grids[0].Title)
}

func TestSyncer_RetriesThenSucceeds(t *testing.T) {
	sink := &fakeSink{fail: 2}
	p := NewProjector(&fakeReservationRepo{}, fakeLoungeRepo{}, testCalendar(t), "Расписание на %s")
	s := NewSyncer(p, sink, nil, testLogger{}, Options{
		Workers: 1, QueueSize: 8, MaxRetries: 3, RetryBackoff: time.Millisecond,
	})

	s.ReservationChanged(seoulDate(t, 2025, time.October, 13, 22, 0))
	s.Close()

	assert.Equal(t, 3, sink.attempts())
	assert.Len(t, sink.published(), 1)
}

func TestSyncer_GivesUpAfterMaxRetries(t *testing.T) {
	sink := &fakeSink{fail: 100}
	p := NewProjector(&fakeReservationRepo{}, fakeLoungeRepo{}, testCalendar(t), "Расписание на %s")
	s := NewSyncer(p, sink, nil, testLogger{}, Options{
		Workers: 1, QueueSize: 8, MaxRetries: 2, RetryBackoff: time.Millisecond,
	})

	// Сбой публикации глотается, вызывающего он не касается
	s.ReservationChanged(seoulDate(t, 2025, time.October, 13, 22, 0))
	s.Close()

	assert.Equal(t, 3, sink.attempts(), "initial attempt plus two retries")
	assert.Empty(t, sink.published())
}

func TestSyncer_QueueOverflowDropsEvent(t *testing.T) {
	release := make(chan struct{})
	sink := &blockingSink{release: release}
	p := NewProjector(&fakeReservationRepo{}, fakeLoungeRepo{}, testCalendar(t), "Расписание на %s")
	s := NewSyncer(p, sink, nil, testLogger{}, Options{Workers: 1, QueueSize: 1})

	date := seoulDate(t, 2025, time.October, 13, 22, 0)

	// Первое событие займёт воркера, второе — очередь, остальные отбрасываются
	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			s.ReservationChanged(date)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("ReservationChanged must never block")
	}

	close(release)
	s.Close()

	assert.LessOrEqual(t, sink.count(), 2)
	assert.GreaterOrEqual(t, sink.count(), 1)
}

type blockingSink struct {
	mu      sync.Mutex
	release chan struct{}
	calls   int
}

func (b *blockingSink) PublishGrid(context.Context, *Grid) error {
	<-b.release
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	return nil
}

func (b *blockingSink) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

func TestSyncer_ConvergesToFinalState(t *testing.T) {
	repo := &fakeReservationRepo{}
	sink := &fakeSink{}
	p := NewProjector(repo, fakeLoungeRepo{}, testCalendar(t), "Расписание на %s")
	s := NewSyncer(p, sink, nil, testLogger{}, Options{Workers: 1, QueueSize: 16})

	date := seoulDate(t, 2025, time.October, 13, 22, 0)

	// Создание, затем отмена: к моменту последней публикации хранилище пусто
	repo.set(&domain.Reservation{
		ID: 1, LoungeID: 1, UserID: 10, UserName: "20301 Ким",
		StartTime: date, EndTime: date.Add(30 * time.Minute),
	})
	s.ReservationChanged(date)
	repo.set()
	s.ReservationChanged(date)
	s.Close()

	grids := sink.published()
	require.NotEmpty(t, grids)
	last := grids[len(grids)-1]
	assert.Equal(t, []string{"", "", "", ""}, last.Columns[1])
}
