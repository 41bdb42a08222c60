package models

import (
	"time"

	"github.com/m04kA/SMC-LoungeService/internal/domain"
)

// ReservationResponse представление бронирования для вызывающего слоя
type ReservationResponse struct {
	ID               int64
	LoungeID         int64
	UserID           int64
	UserName         string
	ParticipantNames string
	StartTime        time.Time
	EndTime          time.Time
	CreatedAt        time.Time
}

// ReservationListResponse список бронирований
type ReservationListResponse struct {
	Reservations []*ReservationResponse
}

// FromDomainReservation конвертирует доменную модель в ответ сервиса
func FromDomainReservation(res *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:               res.ID,
		LoungeID:         res.LoungeID,
		UserID:           res.UserID,
		UserName:         res.UserName,
		ParticipantNames: res.ParticipantNames,
		StartTime:        res.StartTime,
		EndTime:          res.EndTime,
		CreatedAt:        res.CreatedAt,
	}
}

// FromDomainReservationList конвертирует список доменных моделей
func FromDomainReservationList(list []*domain.Reservation) *ReservationListResponse {
	out := &ReservationListResponse{
		Reservations: make([]*ReservationResponse, 0, len(list)),
	}
	for _, res := range list {
		out.Reservations = append(out.Reservations, FromDomainReservation(res))
	}
	return out
}
