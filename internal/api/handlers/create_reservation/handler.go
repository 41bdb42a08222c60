package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-LoungeService/internal/api/handlers"
	"github.com/m04kA/SMC-LoungeService/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-LoungeService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "требуется аутентификация"
	msgInvalidInput       = "некорректные данные бронирования"
	msgLoungeNotFound     = "лаунж не найден"
	msgNotAnAllowedSlot   = "выбранное время не является допустимым слотом"
	msgSlotInPast         = "слот уже прошел"
	msgSlotTaken          = "слот уже занят"
	msgOwnerDoubleBooked  = "у вас уже есть бронирование на это время"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(principal))
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: user_id=%d, lounge_id=%d, start=%q",
				principal.ID, req.LoungeID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createReservation.ErrLoungeNotFound):
			h.logger.Warn("POST /reservations - Lounge not found: lounge_id=%d", req.LoungeID)
			handlers.RespondNotFound(w, msgLoungeNotFound)

		case errors.Is(err, createReservation.ErrNotAnAllowedSlot):
			h.logger.Warn("POST /reservations - Not an allowed slot: user_id=%d, start=%q",
				principal.ID, req.StartTime)
			handlers.RespondBadRequest(w, msgNotAnAllowedSlot)

		case errors.Is(err, createReservation.ErrSlotInPast):
			h.logger.Warn("POST /reservations - Slot in past: user_id=%d, start=%q",
				principal.ID, req.StartTime)
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, createReservation.ErrSlotTaken):
			h.logger.Warn("POST /reservations - Slot taken: user_id=%d, lounge_id=%d, start=%q",
				principal.ID, req.LoungeID, req.StartTime)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, createReservation.ErrOwnerDoubleBooked):
			h.logger.Warn("POST /reservations - Owner double booked: user_id=%d, start=%q",
				principal.ID, req.StartTime)
			handlers.RespondConflict(w, msgOwnerDoubleBooked)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, lounge_id=%d, error=%v",
				principal.ID, req.LoungeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, user_id=%d, lounge_id=%d",
		result.ID, principal.ID, req.LoungeID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
