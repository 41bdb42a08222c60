package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-LoungeService/internal/domain"
	createReservation "github.com/m04kA/SMC-LoungeService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	LoungeID         int64  `json:"loungeId"`
	StartTime        string `json:"startTime"` // "2025-10-13 22:00:00"
	ParticipantNames string `json:"participantNames,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID               int64  `json:"id"`
	LoungeID         int64  `json:"loungeId"`
	LoungeNumber     int    `json:"loungeNumber"`
	UserID           int64  `json:"userId"`
	UserName         string `json:"userName"`
	ParticipantNames string `json:"participantNames,omitempty"`
	StartTime        string `json:"startTime"`
	EndTime          string `json:"endTime"`
	CreatedAt        string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(principal domain.Principal) *createReservation.Request {
	return &createReservation.Request{
		Principal:        principal,
		LoungeID:         r.LoungeID,
		Start:            r.StartTime,
		ParticipantNames: r.ParticipantNames,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:               resp.ID,
		LoungeID:         resp.LoungeID,
		LoungeNumber:     resp.LoungeNumber,
		UserID:           resp.UserID,
		UserName:         resp.UserName,
		ParticipantNames: resp.ParticipantNames,
		StartTime:        resp.StartTime.Format(domain.DateTimeFormat),
		EndTime:          resp.EndTime.Format(domain.DateTimeFormat),
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
	}
}
