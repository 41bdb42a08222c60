package get_user_reservations

import (
	"context"

	"github.com/m04kA/SMC-LoungeService/internal/domain"
	"github.com/m04kA/SMC-LoungeService/internal/service/reservations/models"
)

type ReservationService interface {
	GetUserReservations(ctx context.Context, userID int64, principal domain.Principal) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
