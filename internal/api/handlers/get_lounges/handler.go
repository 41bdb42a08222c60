package get_lounges

import (
	"net/http"

	"github.com/m04kA/SMC-LoungeService/internal/api/handlers"
)

// LoungeResponse HTTP response model
type LoungeResponse struct {
	ID     int64 `json:"id"`
	Number int   `json:"number"`
}

// LoungeListResponse список лаунжей
type LoungeListResponse struct {
	Lounges []LoungeResponse `json:"lounges"`
}

type Handler struct {
	lounges LoungeProvider
	logger  Logger
}

func NewHandler(lounges LoungeProvider, logger Logger) *Handler {
	return &Handler{
		lounges: lounges,
		logger:  logger,
	}
}

// Handle GET /api/v1/lounges
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	list, err := h.lounges.List(r.Context())
	if err != nil {
		h.logger.Error("GET /lounges - Failed to list lounges: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	resp := LoungeListResponse{Lounges: make([]LoungeResponse, 0, len(list))}
	for _, lounge := range list {
		resp.Lounges = append(resp.Lounges, LoungeResponse{ID: lounge.ID, Number: lounge.Number})
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
