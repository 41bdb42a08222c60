package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-LoungeService/internal/domain"
)

// Request запрос на бронирование слота.
// Start — строка "YYYY-MM-DD HH:MM:SS" в таймзоне календаря; парсинг входит
// в шаг валидации usecase.
type Request struct {
	Principal        domain.Principal
	LoungeID         int64
	Start            string
	ParticipantNames string
}

// Response созданное бронирование
type Response struct {
	ID               int64
	LoungeID         int64
	LoungeNumber     int
	UserID           int64
	UserName         string
	ParticipantNames string
	StartTime        time.Time
	EndTime          time.Time
	CreatedAt        time.Time
}
