// Package schedule календарь слотов: по дате выдаёт упорядоченный список
// фиксированных окон, доступных для бронирования. Чистая функция от даты и
// политики, без скрытого состояния.
package schedule

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SMC-LoungeService/internal/domain"
)

// WindowConfig окно доступности [Start, End) для перечисленных дней недели.
// Start и End в формате HH:MM локального календаря.
type WindowConfig struct {
	Weekdays []string
	Start    string
	End      string
}

type window struct {
	startHour, startMin int
	endHour, endMin     int
}

// Calendar генератор слотов. Политика фиксируется при создании.
type Calendar struct {
	loc          *time.Location
	slotDuration time.Duration
	windows      map[time.Weekday][]window
}

var weekdayNames = map[string]time.Weekday{
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
	"sun": time.Sunday,
}

// NewCalendar создает календарь из политики.
// День недели, не упомянутый ни в одном окне, не имеет слотов — это не ошибка.
func NewCalendar(timezone string, slotDurationMinutes int, windows []WindowConfig) (*Calendar, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("schedule: invalid timezone %q: %w", timezone, err)
	}

	if slotDurationMinutes <= 0 {
		return nil, fmt.Errorf("schedule: slot duration must be positive, got %d", slotDurationMinutes)
	}

	c := &Calendar{
		loc:          loc,
		slotDuration: time.Duration(slotDurationMinutes) * time.Minute,
		windows:      make(map[time.Weekday][]window),
	}

	for _, wc := range windows {
		w, err := parseWindow(wc)
		if err != nil {
			return nil, err
		}
		for _, name := range wc.Weekdays {
			day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
			if !ok {
				return nil, fmt.Errorf("schedule: unknown weekday %q", name)
			}
			c.windows[day] = append(c.windows[day], w)
		}
	}

	// Окна одного дня сортируются один раз, чтобы SlotsFor всегда
	// возвращал слоты строго по возрастанию
	for day := range c.windows {
		ws := c.windows[day]
		sort.Slice(ws, func(i, j int) bool {
			if ws[i].startHour != ws[j].startHour {
				return ws[i].startHour < ws[j].startHour
			}
			return ws[i].startMin < ws[j].startMin
		})
	}

	return c, nil
}

func parseWindow(wc WindowConfig) (window, error) {
	start, err := time.Parse(domain.TimeFormat, wc.Start)
	if err != nil {
		return window{}, fmt.Errorf("schedule: invalid window start %q: %w", wc.Start, err)
	}
	end, err := time.Parse(domain.TimeFormat, wc.End)
	if err != nil {
		return window{}, fmt.Errorf("schedule: invalid window end %q: %w", wc.End, err)
	}

	w := window{
		startHour: start.Hour(), startMin: start.Minute(),
		endHour: end.Hour(), endMin: end.Minute(),
	}
	if !w.before() {
		return window{}, fmt.Errorf("schedule: window end %q must be after start %q", wc.End, wc.Start)
	}
	return w, nil
}

func (w window) before() bool {
	return w.startHour < w.endHour || (w.startHour == w.endHour && w.startMin < w.endMin)
}

// SlotsFor возвращает слоты на календарную дату момента date (в таймзоне
// календаря). Слоты идут строго по возрастанию, каждый ровно одной длительности,
// интервалы полуоткрытые и не пересекаются. Для закрытого дня — пустой слайс.
func (c *Calendar) SlotsFor(date time.Time) []domain.SlotWindow {
	local := date.In(c.loc)
	year, month, day := local.Date()

	slots := make([]domain.SlotWindow, 0)
	for _, w := range c.windows[local.Weekday()] {
		cur := time.Date(year, month, day, w.startHour, w.startMin, 0, 0, c.loc)
		end := time.Date(year, month, day, w.endHour, w.endMin, 0, 0, c.loc)

		// Идём по [cur, end) с шагом в слот; неполный хвост окна отбрасывается
		for {
			slotEnd := cur.Add(c.slotDuration)
			if slotEnd.After(end) {
				break
			}
			slots = append(slots, domain.SlotWindow{Start: cur, End: slotEnd})
			cur = slotEnd
		}
	}
	return slots
}

// Contains проверяет, что start — начало допустимого слота своей даты
func (c *Calendar) Contains(start time.Time) bool {
	for _, slot := range c.SlotsFor(start) {
		if slot.Start.Equal(start) {
			return true
		}
	}
	return false
}

// SlotDuration длительность одного слота
func (c *Calendar) SlotDuration() time.Duration {
	return c.slotDuration
}

// Location таймзона календаря
func (c *Calendar) Location() *time.Location {
	return c.loc
}

// DayRange границы календарных суток даты date в таймзоне календаря,
// полуоткрытый интервал [from, to)
func (c *Calendar) DayRange(date time.Time) (time.Time, time.Time) {
	local := date.In(c.loc)
	year, month, day := local.Date()
	from := time.Date(year, month, day, 0, 0, 0, 0, c.loc)
	return from, from.AddDate(0, 0, 1)
}
