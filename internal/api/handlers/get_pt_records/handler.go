package get_pt_records

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidTrainerID     = "некорректный ID тренера"
	msgInvalidMemberID      = "некорректный ID члена клуба"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFilter        = "некорректные параметры фильтра"
	msgReservationNotFound  = "бронирование не найдено"
	msgRecordNotFound       = "запись о занятии не найдена"
)

type Handler struct {
	service RecordService
	logger  Logger
}

func NewHandler(service RecordService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// ByReservation GET /api/v1/reservations/{reservationId}/record
func (h *Handler) ByReservation(w http.ResponseWriter, r *http.Request) {
	reservationID, err := handlers.PathID(r, "reservationId")
	if err != nil {
		h.logger.Warn("GET /reservations/{id}/record - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	result, err := h.service.GetRecord(r.Context(), reservationID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("GET /reservations/{id}/record - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, reservations.ErrRecordNotFound):
			h.logger.Warn("GET /reservations/{id}/record - Record not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgRecordNotFound)

		default:
			h.logger.Error("GET /reservations/{id}/record - Failed to get record: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reservations/{id}/record - Record retrieved: reservation_id=%d, record_id=%d",
		reservationID, result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// ByTrainer GET /api/v1/trainers/{trainerId}/records
// Query params: startDate, endDate (optional, YYYY-MM-DD)
func (h *Handler) ByTrainer(w http.ResponseWriter, r *http.Request) {
	trainerID, err := handlers.PathID(r, "trainerId")
	if err != nil {
		h.logger.Warn("GET /trainers/{id}/records - Invalid trainer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	h.list(w, r, "GET /trainers/{id}/records", &models.ListRecordsRequest{TrainerID: &trainerID})
}

// ByMember GET /api/v1/members/{memberId}/records
// Query params: startDate, endDate (optional, YYYY-MM-DD)
func (h *Handler) ByMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := handlers.PathID(r, "memberId")
	if err != nil {
		h.logger.Warn("GET /members/{id}/records - Invalid member ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMemberID)
		return
	}

	h.list(w, r, "GET /members/{id}/records", &models.ListRecordsRequest{MemberID: &memberID})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, route string, req *models.ListRecordsRequest) {
	var err error
	if req.StartDate, err = handlers.QueryDate(r, "startDate"); err != nil {
		h.logger.Warn("%s - Invalid startDate: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	if req.EndDate, err = handlers.QueryDate(r, "endDate"); err != nil {
		h.logger.Warn("%s - Invalid endDate: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.ListRecords(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("%s - Invalid filter: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("%s - Failed to list records: %v", route, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Records retrieved: count=%d", route, len(result.Records))
	handlers.RespondJSON(w, http.StatusOK, result)
}

