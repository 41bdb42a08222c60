package sheetsync

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-LoungeService/internal/domain"
)

// Grid полная сетка одного дня для внешней таблицы.
// Columns ключуется номером лаунжа; каждая колонка той же длины, что TimeLabels.
// Пустая ячейка — свободный слот.
type Grid struct {
	Date       time.Time
	Title      string
	TimeLabels []string
	Columns    map[int][]string
}

// Projector строит сетку дня заново из хранилища. Никакого инкрементального
// состояния: каждый вызов — полный пересчёт, поэтому публикация сходится к
// актуальному состоянию независимо от порядка событий.
type Projector struct {
	reservationRepo ReservationRepository
	loungeRepo      LoungeRepository
	calendar        SlotCalendar
	titleFormat     string
}

// NewProjector создает проектор сетки
func NewProjector(reservationRepo ReservationRepository, loungeRepo LoungeRepository, calendar SlotCalendar, titleFormat string) *Projector {
	return &Projector{
		reservationRepo: reservationRepo,
		loungeRepo:      loungeRepo,
		calendar:        calendar,
		titleFormat:     titleFormat,
	}
}

// RenderGrid строит сетку на календарную дату момента date.
// Для закрытого дня возвращает сетку без строк: публикация очистит таблицу.
func (p *Projector) RenderGrid(ctx context.Context, date time.Time) (*Grid, error) {
	slots := p.calendar.SlotsFor(date)

	lounges, err := p.loungeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list lounges: %v", ErrRenderGrid, err)
	}

	from, to := p.calendar.DayRange(date)
	reservations, err := p.reservationRepo.GetByRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: load reservations: %v", ErrRenderGrid, err)
	}

	// Занятость по (lounge_id, начало слота); уникальный ключ гарантирует
	// не больше одного бронирования на ячейку
	type cellKey struct {
		loungeID int64
		startSec int64
	}
	occupied := make(map[cellKey]*domain.Reservation, len(reservations))
	for _, res := range reservations {
		occupied[cellKey{res.LoungeID, res.StartTime.Unix()}] = res
	}

	grid := &Grid{
		Date:       from,
		Title:      fmt.Sprintf(p.titleFormat, from.Format(domain.DateFormat)),
		TimeLabels: make([]string, 0, len(slots)),
		Columns:    make(map[int][]string, len(lounges)),
	}
	for _, slot := range slots {
		grid.TimeLabels = append(grid.TimeLabels, slot.Label())
	}

	for _, lounge := range lounges {
		column := make([]string, len(slots))
		for i, slot := range slots {
			if res, ok := occupied[cellKey{lounge.ID, slot.Start.Unix()}]; ok {
				column[i] = res.DisplayText()
			}
		}
		grid.Columns[lounge.Number] = column
	}

	return grid, nil
}
