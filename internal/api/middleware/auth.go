package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/salonbook/SalonBook-BookingService/internal/api/handlers"
)

type ctxKey string

const userIDKey ctxKey = "userID"

const headerUserID = "X-User-ID"

// Auth извлекает идентификатор пользователя из заголовка X-User-ID и кладёт
// его в контекст запроса. Запросы без валидного заголовка отклоняются.
//
// Аутентификацию как таковую выполняет вышестоящий шлюз; сервис доверяет
// заголовку внутри периметра.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(headerUserID)
		if raw == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "missing X-User-ID header")
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, "invalid X-User-ID header")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext returns the authenticated user ID placed by Auth.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}
