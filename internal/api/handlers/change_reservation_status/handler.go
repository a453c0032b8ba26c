package change_reservation_status

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/lifecycle"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingActor         = "не указан инициатор запроса"
	msgNotFound             = "бронирование не найдено"
	msgRegistrationNotFound = "пакет PT занятий не найден"
	msgIllegalTransition    = "операция недопустима в текущем статусе бронирования"
	msgForbidden            = "доступ запрещен"
	msgInvalidInput         = "некорректные данные запроса"
)

type Handler struct {
	service LifecycleService
	logger  Logger
}

func NewHandler(service LifecycleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Confirm PATCH /api/v1/reservations/{reservationId}/confirm
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	const op = "PATCH /reservations/{id}/confirm"

	id, actor, ok := h.prepare(w, r, op)
	if !ok {
		return
	}

	res, err := h.service.Confirm(r.Context(), id, actor)
	h.respond(w, op, id, actor, res, err)
}

// Reject PATCH /api/v1/reservations/{reservationId}/reject
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	const op = "PATCH /reservations/{id}/reject"

	id, actor, ok := h.prepare(w, r, op)
	if !ok {
		return
	}
	reason, ok := h.decodeReason(w, r, op)
	if !ok {
		return
	}

	res, err := h.service.Reject(r.Context(), id, actor, reason)
	h.respond(w, op, id, actor, res, err)
}

// Cancel PATCH /api/v1/reservations/{reservationId}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	const op = "PATCH /reservations/{id}/cancel"

	id, actor, ok := h.prepare(w, r, op)
	if !ok {
		return
	}
	reason, ok := h.decodeReason(w, r, op)
	if !ok {
		return
	}

	res, err := h.service.Cancel(r.Context(), id, actor, reason)
	h.respond(w, op, id, actor, res, err)
}

// MarkNoShow PATCH /api/v1/reservations/{reservationId}/no-show
func (h *Handler) MarkNoShow(w http.ResponseWriter, r *http.Request) {
	const op = "PATCH /reservations/{id}/no-show"

	id, actor, ok := h.prepare(w, r, op)
	if !ok {
		return
	}
	reason, ok := h.decodeReason(w, r, op)
	if !ok {
		return
	}

	res, err := h.service.MarkNoShow(r.Context(), id, actor, reason)
	h.respond(w, op, id, actor, res, err)
}

// Complete POST /api/v1/reservations/{reservationId}/complete
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	const op = "POST /reservations/{id}/complete"

	id, actor, ok := h.prepare(w, r, op)
	if !ok {
		return
	}

	var req CompleteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	record, err := h.service.CompleteSession(r.Context(), id, actor, req.ToServiceRequest())
	if err != nil {
		h.respondError(w, op, id, actor, err)
		return
	}

	h.logger.Info("%s - Session completed: reservation_id=%d, record_id=%d, actor=%s", op, id, record.ID, actor)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainPTRecord(record))
}

func (h *Handler) prepare(w http.ResponseWriter, r *http.Request, op string) (int64, domain.Actor, bool) {
	id, err := handlers.PathID(r, "reservationId")
	if err != nil {
		h.logger.Warn("%s - Invalid reservation ID: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return 0, domain.Actor{}, false
	}

	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing actor: reservation_id=%d", op, id)
		handlers.RespondUnauthorized(w, msgMissingActor)
		return 0, domain.Actor{}, false
	}

	return id, actor, true
}

// decodeReason читает необязательную причину; пустое тело допустимо
func (h *Handler) decodeReason(w http.ResponseWriter, r *http.Request, op string) (string, bool) {
	var req ReasonRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return "", false
	}
	return req.value(), true
}

func (h *Handler) respond(w http.ResponseWriter, op string, id int64, actor domain.Actor, res *domain.Reservation, err error) {
	if err != nil {
		h.respondError(w, op, id, actor, err)
		return
	}

	h.logger.Info("%s - Reservation updated: reservation_id=%d, status=%s, actor=%s", op, id, res.Status, actor)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainReservation(res))
}

func (h *Handler) respondError(w http.ResponseWriter, op string, id int64, actor domain.Actor, err error) {
	switch {
	case errors.Is(err, lifecycle.ErrReservationNotFound):
		h.logger.Warn("%s - Reservation not found: reservation_id=%d", op, id)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, lifecycle.ErrRegistrationNotFound):
		h.logger.Warn("%s - Registration not found: reservation_id=%d", op, id)
		handlers.RespondNotFound(w, msgRegistrationNotFound)

	case errors.Is(err, lifecycle.ErrIllegalTransition):
		h.logger.Warn("%s - Illegal transition: reservation_id=%d, error=%v", op, id, err)
		handlers.RespondConflict(w, msgIllegalTransition)

	case errors.Is(err, lifecycle.ErrForbidden):
		h.logger.Warn("%s - Forbidden: reservation_id=%d, actor=%s", op, id, actor)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, lifecycle.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: reservation_id=%d, error=%v", op, id, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Failed: reservation_id=%d, error=%v", op, id, err)
		handlers.RespondInternalError(w)
	}
}
