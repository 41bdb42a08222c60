package sync_schedule

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-LoungeService/internal/api/handlers"
	"github.com/m04kA/SMC-LoungeService/internal/domain"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgSyncFailed  = "синхронизация не удалась"
)

// SyncResponse HTTP response model
type SyncResponse struct {
	Date string `json:"date"`
}

type Handler struct {
	sync   Synchronizer
	loc    *time.Location
	logger Logger
}

func NewHandler(sync Synchronizer, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		sync:   sync,
		loc:    loc,
		logger: logger,
	}
}

// Handle POST /api/v1/sync?date=YYYY-MM-DD
// Принудительно публикует сетку дня во внешнюю таблицу, синхронно.
// Без параметра date синхронизируется сегодняшний день.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := time.Now().In(h.loc)
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.ParseInLocation(domain.DateFormat, raw, h.loc)
		if err != nil {
			h.logger.Warn("POST /sync - Invalid date: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		date = parsed
	}

	if err := h.sync.SyncNow(r.Context(), date); err != nil {
		h.logger.Error("POST /sync - Failed to sync schedule: date=%s, error=%v",
			date.Format(domain.DateFormat), err)
		handlers.RespondError(w, http.StatusBadGateway, msgSyncFailed)
		return
	}

	h.logger.Info("POST /sync - Schedule synced: date=%s", date.Format(domain.DateFormat))
	handlers.RespondJSON(w, http.StatusOK, SyncResponse{Date: date.Format(domain.DateFormat)})
}
