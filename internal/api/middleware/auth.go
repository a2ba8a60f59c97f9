package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

type contextKey string

const (
	userIDKey   contextKey = "userID"
	userRoleKey contextKey = "userRole"
)

const (
	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"

	msgMissingUserID = "отсутствует заголовок X-User-ID"
	msgInvalidUserID = "некорректный заголовок X-User-ID"
)

// Auth проверяет заголовки аутентификации, проставленные API gateway,
// и кладет идентификатор и роль вызывающего в контекст запроса
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawID := r.Header.Get(headerUserID)
		if rawID == "" {
			handlers.RespondError(w, http.StatusUnauthorized, msgMissingUserID)
			return
		}

		userID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, msgInvalidUserID)
			return
		}

		// Неизвестная или пустая роль трактуется как клиент
		role := domain.ParseCallerRole(r.Header.Get(headerUserRole))

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, userRoleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext возвращает идентификатор вызывающего из контекста
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// RoleFromContext возвращает роль вызывающего из контекста
func RoleFromContext(ctx context.Context) domain.CallerRole {
	role, ok := ctx.Value(userRoleKey).(domain.CallerRole)
	if !ok {
		return domain.RoleClient
	}
	return role
}
