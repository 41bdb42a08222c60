package create_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	// (нечитаемое время начала, пустой principal, слишком длинный список участников)
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrLoungeNotFound возвращается, когда лаунж не найден
	ErrLoungeNotFound = errors.New("create_reservation: lounge not found")

	// ErrNotAnAllowedSlot возвращается, когда start не является началом
	// допустимого слота своей даты
	ErrNotAnAllowedSlot = errors.New("create_reservation: not an allowed slot")

	// ErrSlotInPast возвращается, когда слот уже закончился к моменту запроса
	ErrSlotInPast = errors.New("create_reservation: slot is in the past")

	// ErrSlotTaken возвращается, когда слот занят — в том числе конкурентным
	// победителем, зафиксировавшимся первым (first-commit-wins)
	ErrSlotTaken = errors.New("create_reservation: slot already taken")

	// ErrOwnerDoubleBooked возвращается, когда у владельца уже есть
	// пересекающееся по времени бронирование в любом лаунже
	ErrOwnerDoubleBooked = errors.New("create_reservation: owner already has an overlapping reservation")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
