package reservations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LoungeService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByUserID(ctx context.Context, userID int64) ([]*domain.Reservation, error)
	Delete(ctx context.Context, id int64) error
}

// ChangeNotifier уведомляет синхронизатор внешней таблицы об изменении
type ChangeNotifier interface {
	ReservationChanged(date time.Time)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
