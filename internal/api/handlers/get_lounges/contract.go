package get_lounges

import (
	"context"

	"github.com/m04kA/SMC-LoungeService/internal/domain"
)

type LoungeProvider interface {
	List(ctx context.Context) ([]*domain.Lounge, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
