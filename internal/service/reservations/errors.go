package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено.
	// Для отмены это самостоятельный исход: клиент с повторами может отличить
	// «уже отменено» от «только что отменено».
	ErrReservationNotFound = errors.New("reservations: reservation not found")

	// ErrAccessDenied возвращается, когда principal не владелец бронирования
	ErrAccessDenied = errors.New("reservations: access denied")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reservations: internal error")
)
