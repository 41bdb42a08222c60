package get_reservation

import (
	"time"

	"github.com/m04kA/SMC-LoungeService/internal/domain"
	"github.com/m04kA/SMC-LoungeService/internal/service/reservations/models"
)

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID               int64  `json:"id"`
	LoungeID         int64  `json:"loungeId"`
	UserID           int64  `json:"userId"`
	UserName         string `json:"userName"`
	ParticipantNames string `json:"participantNames,omitempty"`
	StartTime        string `json:"startTime"`
	EndTime          string `json:"endTime"`
	CreatedAt        string `json:"createdAt"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.ReservationResponse) *ReservationResponse {
	return &ReservationResponse{
		ID:               resp.ID,
		LoungeID:         resp.LoungeID,
		UserID:           resp.UserID,
		UserName:         resp.UserName,
		ParticipantNames: resp.ParticipantNames,
		StartTime:        resp.StartTime.Format(domain.DateTimeFormat),
		EndTime:          resp.EndTime.Format(domain.DateTimeFormat),
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
	}
}
