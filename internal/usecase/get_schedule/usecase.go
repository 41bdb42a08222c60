package get_schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-LoungeService/internal/domain"
)

// UseCase use case получения сетки бронирований на дату:
// допустимые слоты + занятость каждой пары (лаунж, слот)
type UseCase struct {
	reservationRepo ReservationRepository
	loungeRepo      LoungeRepository
	calendar        SlotCalendar
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	repo ReservationRepository,
	loungeRepo LoungeRepository,
	calendar SlotCalendar,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: repo,
		loungeRepo:      loungeRepo,
		calendar:        calendar,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения сетки на дату
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Разбор даты; по умолчанию — сегодня в таймзоне календаря
	date, err := uc.resolveDate(req.Date)
	if err != nil {
		uc.logger.Warn("GetSchedule: invalid date %q: %v", req.Date, err)
		return nil, err
	}

	uc.logger.Info("GetSchedule: date=%s", date.Format(domain.DateFormat))

	// 2. Слоты дня из календаря (закрытый день — пустая сетка)
	slots := uc.calendar.SlotsFor(date)

	// 3. Лаунжи
	lounges, err := uc.loungeRepo.List(ctx)
	if err != nil {
		uc.logger.Error("GetSchedule: failed to list lounges: %v", err)
		return nil, fmt.Errorf("%w: failed to list lounges: %v", ErrInternal, err)
	}

	// 4. Бронирования календарных суток одним range-запросом
	from, to := uc.calendar.DayRange(date)
	reservations, err := uc.reservationRepo.GetByRange(ctx, from, to)
	if err != nil {
		uc.logger.Error("GetSchedule: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 5. Раскладка бронирований по ячейкам (лаунж × слот)
	byCell := make(map[string]*domain.Reservation, len(reservations))
	for _, res := range reservations {
		byCell[cellKey(res.LoungeID, res.StartTime)] = res
	}

	resp := &Response{
		Date:    date,
		Slots:   make([]Slot, 0, len(slots)),
		Lounges: make([]Lounge, 0, len(lounges)),
		Cells:   make([]Cell, 0, len(lounges)*len(slots)),
	}

	for _, s := range slots {
		resp.Slots = append(resp.Slots, Slot{Start: s.Start, End: s.End, Label: s.Label()})
	}
	for _, l := range lounges {
		resp.Lounges = append(resp.Lounges, Lounge{ID: l.ID, Number: l.Number})
	}

	for _, l := range lounges {
		for _, s := range slots {
			cell := Cell{LoungeID: l.ID, SlotStart: s.Start}
			if res, ok := byCell[cellKey(l.ID, s.Start)]; ok {
				cell.ReservationID = res.ID
				cell.OwnerID = res.UserID
				cell.DisplayText = res.DisplayText()
			}
			resp.Cells = append(resp.Cells, cell)
		}
	}

	uc.logger.Info("GetSchedule: date=%s, slots=%d, lounges=%d, reservations=%d",
		date.Format(domain.DateFormat), len(slots), len(lounges), len(reservations))
	return resp, nil
}

func (uc *UseCase) resolveDate(raw string) (time.Time, error) {
	loc := uc.calendar.Location()
	if raw == "" {
		return uc.timeProvider.Now().In(loc), nil
	}

	date, err := time.ParseInLocation(domain.DateFormat, raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: expected %s", ErrInvalidDate, domain.DateFormat)
	}
	return date, nil
}

func cellKey(loungeID int64, start time.Time) string {
	return fmt.Sprintf("%d/%d", loungeID, start.Unix())
}
