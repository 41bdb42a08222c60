package sync_schedule

import (
	"context"
	"time"
)

type Synchronizer interface {
	SyncNow(ctx context.Context, date time.Time) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
