package cancel_reservation

import (
	"context"

	"github.com/m04kA/SMC-LoungeService/internal/domain"
)

type ReservationService interface {
	Cancel(ctx context.Context, id int64, principal domain.Principal) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
