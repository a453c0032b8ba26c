package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

func TestAuth(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		role       string
		wantStatus int
		wantActor  domain.Actor
	}{
		{name: "trainer", id: "3", role: "trainer", wantStatus: http.StatusOK, wantActor: domain.Actor{ID: "3", Role: domain.ActorTrainer}},
		{name: "role is case insensitive", id: "admin-1", role: " Admin ", wantStatus: http.StatusOK, wantActor: domain.Actor{ID: "admin-1", Role: domain.ActorAdmin}},
		{name: "missing id", id: "", role: "member", wantStatus: http.StatusUnauthorized},
		{name: "unknown role", id: "7", role: "owner", wantStatus: http.StatusUnauthorized},
		{name: "system role is not accepted", id: "cron", role: "system", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got domain.Actor
			var called bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				var ok bool
				got, ok = ActorFromContext(r.Context())
				require.True(t, ok)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", nil)
			req.Header.Set(HeaderActorID, tt.id)
			req.Header.Set(HeaderActorRole, tt.role)
			rec := httptest.NewRecorder()

			Auth(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, called)
			if called {
				assert.Equal(t, tt.wantActor, got)
			}
		})
	}
}
