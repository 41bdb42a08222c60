package get_schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LoungeService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByRange(ctx context.Context, from, to time.Time) ([]*domain.Reservation, error)
}

// LoungeRepository интерфейс репозитория лаунжей
type LoungeRepository interface {
	List(ctx context.Context) ([]*domain.Lounge, error)
}

// SlotCalendar интерфейс календаря слотов
type SlotCalendar interface {
	SlotsFor(date time.Time) []domain.SlotWindow
	DayRange(date time.Time) (time.Time, time.Time)
	Location() *time.Location
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
