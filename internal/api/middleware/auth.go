package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

const (
	HeaderActorID   = "X-Actor-ID"
	HeaderActorRole = "X-Actor-Role"

	msgMissingActor = "не указан инициатор запроса"
	msgInvalidRole  = "некорректная роль инициатора"
)

type actorKey struct{}

// Auth требует заголовки X-Actor-ID и X-Actor-Role и кладёт актора в контекст
// Роль system через HTTP не принимается: она зарезервирована для фоновых задач
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(HeaderActorID))
		if id == "" || len(id) > domain.MaxActorLength {
			handlers.RespondUnauthorized(w, msgMissingActor)
			return
		}

		role, err := domain.ParseActorRole(strings.ToLower(strings.TrimSpace(r.Header.Get(HeaderActorRole))))
		if err != nil || role == domain.ActorSystem {
			handlers.RespondUnauthorized(w, msgInvalidRole)
			return
		}

		ctx := WithActor(r.Context(), domain.Actor{ID: id, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithActor кладёт актора в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext достаёт актора, положенного Auth
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(domain.Actor)
	return actor, ok
}
