package get_pt_records

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

type fakeRecords struct {
	getErr  error
	listErr error
	listReq *models.ListRecordsRequest
}

func (f *fakeRecords) GetRecord(_ context.Context, reservationID int64) (*models.PTRecordResponse, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &models.PTRecordResponse{
		ID: 5, ReservationID: reservationID, TrainerID: 3, MemberID: 7,
		WorkoutDate: "2025-06-02", WorkoutTime: "10:00", DurationMinutes: 45, IsCompleted: true,
	}, nil
}

func (f *fakeRecords) ListRecords(_ context.Context, req *models.ListRecordsRequest) (*models.PTRecordListResponse, error) {
	f.listReq = req
	if f.listErr != nil {
		return nil, f.listErr
	}
	return &models.PTRecordListResponse{Records: []models.PTRecordResponse{{ID: 5, ReservationID: 11}}}, nil
}

func newRouter(svc *fakeRecords) *mux.Router {
	h := NewHandler(svc, logger.NewDiscard())
	r := mux.NewRouter()
	r.HandleFunc("/reservations/{reservationId}/record", h.ByReservation).Methods(http.MethodGet)
	r.HandleFunc("/trainers/{trainerId}/records", h.ByTrainer).Methods(http.MethodGet)
	r.HandleFunc("/members/{memberId}/records", h.ByMember).Methods(http.MethodGet)
	return r
}

func serve(router *mux.Router, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestByReservation(t *testing.T) {
	rec := serve(newRouter(&fakeRecords{}), "/reservations/11/record")
	require.Equal(t, http.StatusOK, rec.Code)

	var body models.PTRecordResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, int64(11), body.ReservationID)
	assert.Equal(t, 45, body.DurationMinutes)
}

func TestByReservation_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{"invalid id", "/reservations/abc/record", nil, http.StatusBadRequest},
		{"reservation not found", "/reservations/11/record", reservations.ErrReservationNotFound, http.StatusNotFound},
		{"record not found", "/reservations/11/record", reservations.ErrRecordNotFound, http.StatusNotFound},
		{"internal", "/reservations/11/record", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(newRouter(&fakeRecords{getErr: tt.err}), tt.target)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestByTrainer(t *testing.T) {
	svc := &fakeRecords{}
	rec := serve(newRouter(svc), "/trainers/3/records?startDate=2025-06-01&endDate=2025-06-30")
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, svc.listReq)
	require.NotNil(t, svc.listReq.TrainerID)
	assert.Equal(t, int64(3), *svc.listReq.TrainerID)
	assert.Nil(t, svc.listReq.MemberID)
	require.NotNil(t, svc.listReq.StartDate)
	assert.Equal(t, 1, svc.listReq.StartDate.Day())
	require.NotNil(t, svc.listReq.EndDate)
	assert.Equal(t, 30, svc.listReq.EndDate.Day())

	var body models.PTRecordListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Len(t, body.Records, 1)
}

func TestByMember(t *testing.T) {
	svc := &fakeRecords{}
	rec := serve(newRouter(svc), "/members/7/records")
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, svc.listReq.MemberID)
	assert.Equal(t, int64(7), *svc.listReq.MemberID)
	assert.Nil(t, svc.listReq.TrainerID)
	assert.Nil(t, svc.listReq.StartDate)
}

func TestList_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(newRouter(&fakeRecords{}), "/members/0/records").Code)
	assert.Equal(t, http.StatusBadRequest, serve(newRouter(&fakeRecords{}), "/trainers/3/records?startDate=06/01/2025").Code)
	assert.Equal(t, http.StatusBadRequest,
		serve(newRouter(&fakeRecords{listErr: reservations.ErrInvalidInput}), "/trainers/3/records").Code)
	assert.Equal(t, http.StatusInternalServerError,
		serve(newRouter(&fakeRecords{listErr: errors.New("db down")}), "/members/7/records").Code)
}
