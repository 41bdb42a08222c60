package domain

import (
	"fmt"
	"time"
)

// SlotWindow фиксированный интервал времени, доступный для бронирования.
// Интервал полуоткрытый: [Start, End), End = Start + длительность слота.
// Значение производное, никогда не сохраняется.
type SlotWindow struct {
	Start time.Time
	End   time.Time
}

// Contains returns true if the moment falls inside [Start, End)
func (s SlotWindow) Contains(t time.Time) bool {
	return !t.Before(s.Start) && t.Before(s.End)
}

// Overlaps проверяет реальное пересечение с интервалом [start, end)
func (s SlotWindow) Overlaps(start, end time.Time) bool {
	return s.Start.Before(end) && s.End.After(start)
}

// Label метка слота для внешней таблицы, например "21:30~22:00"
func (s SlotWindow) Label() string {
	return fmt.Sprintf("%s~%s", s.Start.Format(TimeFormat), s.End.Format(TimeFormat))
}
