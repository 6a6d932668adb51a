package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/david021dp/salon-booking/internal/api/handlers"
	"github.com/david021dp/salon-booking/internal/domain"
)

const (
	// HeaderUserID ID пользователя, проставляет gateway после аутентификации
	HeaderUserID = "X-User-ID"
	// HeaderUserRole роль пользователя: client | admin | head_admin
	HeaderUserRole = "X-User-Role"

	msgMissingIdentity = "отсутствуют данные пользователя"
	msgInvalidIdentity = "некорректные данные пользователя"
	msgAdminOnly       = "доступно только администраторам"
)

type contextKey string

const actorKey contextKey = "actor"

// Auth достает пользователя из заголовков gateway и кладет его в контекст.
// Отсутствующие или некорректные значения - 401.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawID := r.Header.Get(HeaderUserID)
		rawRole := r.Header.Get(HeaderUserRole)

		if rawID == "" || rawRole == "" {
			handlers.RespondUnauthorized(w, msgMissingIdentity)
			return
		}

		id, err := uuid.Parse(rawID)
		if err != nil || id == uuid.Nil {
			handlers.RespondUnauthorized(w, msgInvalidIdentity)
			return
		}

		role := domain.Role(rawRole)
		if !role.IsValid() {
			handlers.RespondUnauthorized(w, msgInvalidIdentity)
			return
		}

		ctx := WithActor(r.Context(), domain.Actor{ID: id, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin пропускает только admin и head_admin. Ставится после Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := GetActor(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w, msgMissingIdentity)
			return
		}
		if !actor.Role.IsAdmin() {
			handlers.RespondForbidden(w, msgAdminOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithActor кладет пользователя в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor пользователь из контекста
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}

// GetUserID ID пользователя из контекста
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	actor, ok := GetActor(ctx)
	if !ok {
		return uuid.Nil, false
	}
	return actor.ID, true
}
