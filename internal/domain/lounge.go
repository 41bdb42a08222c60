package domain

// Lounge represents a shared physical space available for reservation.
// Создаётся администратором; движок бронирования читает лаунжи, но не меняет их.
type Lounge struct {
	ID     int64
	Number int
}
