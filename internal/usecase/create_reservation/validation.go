package create_reservation

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-LoungeService/internal/domain"
)

// validateRequest проверяет форму запроса до обращения к хранилищу
func validateRequest(req *Request) error {
	if req.Principal.ID <= 0 {
		return fmt.Errorf("%w: principal is required", ErrInvalidInput)
	}
	if req.LoungeID <= 0 {
		return fmt.Errorf("%w: lounge id must be positive", ErrInvalidInput)
	}
	if req.Start == "" {
		return fmt.Errorf("%w: start is required", ErrInvalidInput)
	}
	if len(req.ParticipantNames) > domain.MaxParticipantNamesLength {
		return fmt.Errorf("%w: participant names too long (max %d)",
			ErrInvalidInput, domain.MaxParticipantNamesLength)
	}
	return nil
}

// parseStart разбирает время начала слота в таймзоне календаря
func parseStart(value string, loc *time.Location) (time.Time, error) {
	start, err := time.ParseInLocation(domain.DateTimeFormat, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: unparseable start %q", ErrInvalidInput, value)
	}
	return start, nil
}
