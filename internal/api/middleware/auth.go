package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-LoungeService/internal/api/handlers"
	"github.com/m04kA/SMC-LoungeService/internal/domain"
)

// Заголовки аутентификации, проставляемые шлюзом после проверки сессии.
// Сервис доверяет им как уже проверенной личности вызывающего.
const (
	headerUserID   = "X-User-ID"
	headerUserName = "X-User-Name"
)

const msgUnauthorized = "требуется аутентификация"

type principalCtxKey struct{}

// Auth извлекает principal из заголовков шлюза и кладет его в контекст.
// Запрос без валидного X-User-ID отклоняется с 401.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idRaw := strings.TrimSpace(r.Header.Get(headerUserID))
		if idRaw == "" {
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}

		id, err := strconv.ParseInt(idRaw, 10, 64)
		if err != nil || id <= 0 {
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}

		principal := domain.Principal{
			ID:          id,
			DisplayName: strings.TrimSpace(r.Header.Get(headerUserName)),
		}

		ctx := context.WithValue(r.Context(), principalCtxKey{}, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// PrincipalFromContext возвращает principal, положенный Auth middleware
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalCtxKey{}).(domain.Principal)
	return p, ok
}
