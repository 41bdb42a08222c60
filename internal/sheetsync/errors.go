package sheetsync

import "errors"

var (
	// ErrNoCredentials возвращается, когда не заданы учетные данные сервисного аккаунта
	ErrNoCredentials = errors.New("sheetsync: no service account credentials")

	// ErrSinkUnavailable возвращается, когда публикация в приёмник не удалась
	ErrSinkUnavailable = errors.New("sheetsync: sink unavailable")

	// ErrRenderGrid возвращается при ошибке построения сетки из хранилища
	ErrRenderGrid = errors.New("sheetsync: failed to render grid")
)
