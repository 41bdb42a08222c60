package sheetsync

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LoungeService/internal/domain"
)

// ReservationRepository чтение бронирований за интервал
type ReservationRepository interface {
	GetByRange(ctx context.Context, from, to time.Time) ([]*domain.Reservation, error)
}

// LoungeRepository список лаунжей
type LoungeRepository interface {
	List(ctx context.Context) ([]*domain.Lounge, error)
}

// SlotCalendar календарь слотов
type SlotCalendar interface {
	SlotsFor(date time.Time) []domain.SlotWindow
	DayRange(date time.Time) (time.Time, time.Time)
}

// Sink приёмник отрендеренной сетки. Публикация идемпотентна:
// сетка каждый раз записывается целиком, частичных обновлений нет.
type Sink interface {
	PublishGrid(ctx context.Context, grid *Grid) error
}

// Metrics счётчики публикаций
type Metrics interface {
	ObserveSheetSync(success bool, duration time.Duration)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
