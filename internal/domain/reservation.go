package domain

import (
	"strings"
	"time"
)

// Reservation represents a single-slot lounge reservation
type Reservation struct {
	ID       int64
	LoungeID int64

	// Владелец бронирования (Principal на момент создания)
	UserID   int64
	UserName string

	// Список участников для внешней таблицы (например, "Ким 00, Ли 00")
	ParticipantNames string

	StartTime time.Time
	EndTime   time.Time

	CreatedAt time.Time
}

// IsOwnedBy returns true if the reservation belongs to the given principal
func (r *Reservation) IsOwnedBy(p Principal) bool {
	return r.UserID == p.ID
}

// Overlaps проверяет пересечение с полуоткрытым интервалом [start, end)
// Граничащие интервалы (end == start) пересечением не считаются
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return r.StartTime.Before(end) && r.EndTime.After(start)
}

// IsActiveAt returns true if the reservation is in progress at the given moment
func (r *Reservation) IsActiveAt(now time.Time) bool {
	return !r.StartTime.After(now) && now.Before(r.EndTime)
}

// DisplayText текст для ячейки внешней таблицы.
// Приоритет у введённого списка участников, иначе имя владельца.
func (r *Reservation) DisplayText() string {
	if txt := strings.TrimSpace(r.ParticipantNames); txt != "" {
		return txt
	}
	return strings.TrimSpace(r.UserName)
}
