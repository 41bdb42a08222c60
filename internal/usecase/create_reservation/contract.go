package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LoungeService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetByLoungeAndStart(ctx context.Context, loungeID int64, start time.Time) (*domain.Reservation, error)
	GetOverlappingForUser(ctx context.Context, userID int64, start, end time.Time) ([]*domain.Reservation, error)
}

// LoungeRepository интерфейс репозитория лаунжей
type LoungeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Lounge, error)
}

// SlotCalendar интерфейс календаря слотов
type SlotCalendar interface {
	Contains(start time.Time) bool
	SlotDuration() time.Duration
	Location() *time.Location
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// ChangeNotifier уведомляет синхронизатор внешней таблицы об изменении.
// Вызывается только после фиксации транзакции; не блокирует и не возвращает ошибок.
type ChangeNotifier interface {
	ReservationChanged(date time.Time)
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
