package change_reservation_status

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/lifecycle"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

type fakeLifecycle struct {
	reason   string
	complete lifecycle.CompleteRequest
	err      error
}

func (f *fakeLifecycle) reservation(id int64, status domain.ReservationStatus) (*domain.Reservation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Reservation{
		ID: id, MemberID: 7, TrainerID: 3, Date: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00", EndTime: "10:30", DurationMinutes: 30, Status: status, RepeatPolicy: domain.RepeatNone,
	}, nil
}

func (f *fakeLifecycle) Confirm(_ context.Context, id int64, _ domain.Actor) (*domain.Reservation, error) {
	return f.reservation(id, domain.StatusConfirmed)
}

func (f *fakeLifecycle) Reject(_ context.Context, id int64, _ domain.Actor, reason string) (*domain.Reservation, error) {
	f.reason = reason
	return f.reservation(id, domain.StatusRejected)
}

func (f *fakeLifecycle) Cancel(_ context.Context, id int64, _ domain.Actor, reason string) (*domain.Reservation, error) {
	f.reason = reason
	return f.reservation(id, domain.StatusCancelled)
}

func (f *fakeLifecycle) MarkNoShow(_ context.Context, id int64, _ domain.Actor, reason string) (*domain.Reservation, error) {
	f.reason = reason
	return f.reservation(id, domain.StatusNoShow)
}

func (f *fakeLifecycle) CompleteSession(_ context.Context, id int64, _ domain.Actor, req lifecycle.CompleteRequest) (*domain.PTRecord, error) {
	f.complete = req
	if f.err != nil {
		return nil, f.err
	}
	return &domain.PTRecord{ID: 5, ReservationID: id, TrainerID: 3, MemberID: 7, DurationMinutes: 45, IsCompleted: true}, nil
}

func newRouter(svc *fakeLifecycle) *mux.Router {
	h := NewHandler(svc, logger.NewDiscard())
	r := mux.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := middleware.WithActor(req.Context(), domain.Actor{ID: "3", Role: domain.ActorTrainer})
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.HandleFunc("/reservations/{reservationId}/confirm", h.Confirm).Methods(http.MethodPatch)
	r.HandleFunc("/reservations/{reservationId}/reject", h.Reject).Methods(http.MethodPatch)
	r.HandleFunc("/reservations/{reservationId}/cancel", h.Cancel).Methods(http.MethodPatch)
	r.HandleFunc("/reservations/{reservationId}/no-show", h.MarkNoShow).Methods(http.MethodPatch)
	r.HandleFunc("/reservations/{reservationId}/complete", h.Complete).Methods(http.MethodPost)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestConfirm(t *testing.T) {
	rec := do(newRouter(&fakeLifecycle{}), http.MethodPatch, "/reservations/4/confirm", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ReservationResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(4), resp.ID)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestReasonIsOptional(t *testing.T) {
	svc := &fakeLifecycle{}
	r := newRouter(svc)

	rec := do(r, http.MethodPatch, "/reservations/4/cancel", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, svc.reason)

	rec = do(r, http.MethodPatch, "/reservations/4/reject", `{"reason":"schedule conflict"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "schedule conflict", svc.reason)

	rec = do(r, http.MethodPatch, "/reservations/4/no-show", `{"reason":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestComplete(t *testing.T) {
	svc := &fakeLifecycle{}
	rec := do(newRouter(svc), http.MethodPost, "/reservations/4/complete", `{"durationMinutes":45,"content":"squats"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 45, svc.complete.DurationMinutes)
	assert.Equal(t, "squats", svc.complete.Content)
	assert.Nil(t, svc.complete.TrainerID)

	var resp models.PTRecordResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(5), resp.ID)
	assert.True(t, resp.IsCompleted)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{lifecycle.ErrReservationNotFound, http.StatusNotFound},
		{lifecycle.ErrRegistrationNotFound, http.StatusNotFound},
		{lifecycle.ErrIllegalTransition, http.StatusConflict},
		{lifecycle.ErrForbidden, http.StatusForbidden},
		{lifecycle.ErrInvalidInput, http.StatusBadRequest},
		{lifecycle.ErrInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := do(newRouter(&fakeLifecycle{err: tt.err}), http.MethodPatch, "/reservations/4/confirm", "")
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestInvalidReservationID(t *testing.T) {
	rec := do(newRouter(&fakeLifecycle{}), http.MethodPatch, "/reservations/abc/confirm", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
