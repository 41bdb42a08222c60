package get_schedule

import "time"

// Request запрос сетки на дату. Date в формате YYYY-MM-DD; пустая строка —
// сегодняшняя дата в таймзоне календаря.
type Request struct {
	Date string
}

// Slot один слот дня
type Slot struct {
	Start time.Time
	End   time.Time
	Label string // "21:30~22:00"
}

// Lounge лаунж в ответе
type Lounge struct {
	ID     int64
	Number int
}

// Cell ячейка сетки (лаунж × слот)
type Cell struct {
	LoungeID      int64
	SlotStart     time.Time
	ReservationID int64 // 0 — слот свободен
	OwnerID       int64
	DisplayText   string
}

// Response сетка дня: упорядоченные слоты, лаунжи и ячейки.
// Пустой список слотов — закрытый день, не ошибка.
type Response struct {
	Date    time.Time
	Slots   []Slot
	Lounges []Lounge
	Cells   []Cell
}
