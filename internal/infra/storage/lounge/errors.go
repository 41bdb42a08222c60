package lounge

import "errors"

var (
	// ErrLoungeNotFound возвращается, когда лаунж не найден
	ErrLoungeNotFound = errors.New("lounge.repository: lounge not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("lounge.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("lounge.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("lounge.repository: failed to scan row")
)
