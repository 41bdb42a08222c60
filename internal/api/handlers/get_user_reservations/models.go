package get_user_reservations

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

// ReservationListResponse HTTP response model списка бронирований
type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.ReservationListResponse) *ReservationListResponse {
	out := &ReservationListResponse{
		Reservations: make([]*ReservationResponse, 0, len(resp.Reservations)),
	}
	for _, res := range resp.Reservations {
		out.Reservations = append(out.Reservations, &ReservationResponse{
			ID:               res.ID,
			LoungeID:         res.LoungeID,
			UserID:           res.UserID,
			UserName:         res.UserName,
			ParticipantNames: res.ParticipantNames,
			StartTime:        res.StartTime.Format(domain.DateTimeFormat),
			EndTime:          res.EndTime.Format(domain.DateTimeFormat),
			CreatedAt:        res.CreatedAt.Format(time.RFC3339),
		})
	}
	return out
}
