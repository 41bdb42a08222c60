package get_schedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-LoungeService/internal/api/handlers"
	getSchedule "github.com/m04kA/SMC-LoungeService/internal/usecase/get_schedule"
)

const msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"

type Handler struct {
	useCase GetScheduleUseCase
	logger  Logger
}

func NewHandler(useCase GetScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedule?date=YYYY-MM-DD
// Без параметра date возвращается сетка на сегодня.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &getSchedule.Request{Date: r.URL.Query().Get("date")}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getSchedule.ErrInvalidDate):
			h.logger.Warn("GET /schedule - Invalid date: %q", req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /schedule - Failed to get schedule: date=%q, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
