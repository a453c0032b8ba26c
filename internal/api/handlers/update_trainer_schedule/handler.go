package update_trainer_schedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/service/schedule"
	"github.com/m04kA/SMC-ReservationService/internal/service/schedule/models"
)

const (
	msgInvalidTrainerID   = "некорректный ID тренера"
	msgInvalidIntervalID  = "некорректный ID блокировки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingActor       = "не указан инициатор запроса"
	msgInvalidSchedule    = "некорректные параметры расписания"
	msgForbidden          = "нет прав на изменение расписания тренера"
	msgIntervalNotFound   = "блокировка не найдена"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// UpsertWeekly PUT /api/v1/trainers/{trainerId}/schedule/weekly
func (h *Handler) UpsertWeekly(w http.ResponseWriter, r *http.Request) {
	const op = "PUT /trainers/{id}/schedule/weekly"

	trainerID, err := handlers.PathID(r, "trainerId")
	if err != nil {
		h.logger.Warn("%s - Invalid trainer ID: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing actor", op)
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	var req models.UpsertWeeklyScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.Actor = actor
	req.TrainerID = trainerID

	result, err := h.service.UpsertWeeklySchedule(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, op, trainerID, err)
		return
	}

	h.logger.Info("%s - Weekly schedule saved: trainer_id=%d, day=%d", op, trainerID, result.DayOfWeek)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// AddBlocked POST /api/v1/trainers/{trainerId}/blocked-intervals
func (h *Handler) AddBlocked(w http.ResponseWriter, r *http.Request) {
	const op = "POST /trainers/{id}/blocked-intervals"

	trainerID, err := handlers.PathID(r, "trainerId")
	if err != nil {
		h.logger.Warn("%s - Invalid trainer ID: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing actor", op)
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	var req models.CreateBlockedIntervalRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.Actor = actor
	req.TrainerID = trainerID

	result, err := h.service.AddBlockedInterval(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, op, trainerID, err)
		return
	}

	h.logger.Info("%s - Blocked interval created: trainer_id=%d, id=%d", op, trainerID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// DeleteBlocked DELETE /api/v1/trainers/{trainerId}/blocked-intervals/{intervalId}
func (h *Handler) DeleteBlocked(w http.ResponseWriter, r *http.Request) {
	const op = "DELETE /trainers/{id}/blocked-intervals/{id}"

	trainerID, err := handlers.PathID(r, "trainerId")
	if err != nil {
		h.logger.Warn("%s - Invalid trainer ID: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}
	intervalID, err := handlers.PathID(r, "intervalId")
	if err != nil {
		h.logger.Warn("%s - Invalid interval ID: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidIntervalID)
		return
	}

	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing actor", op)
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	if err := h.service.DeleteBlockedInterval(r.Context(), actor, trainerID, intervalID); err != nil {
		h.respondServiceError(w, op, trainerID, err)
		return
	}

	h.logger.Info("%s - Blocked interval deleted: trainer_id=%d, id=%d", op, trainerID, intervalID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, op string, trainerID int64, err error) {
	switch {
	case errors.Is(err, schedule.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: trainer_id=%d", op, trainerID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, schedule.ErrBlockedIntervalNotFound):
		h.logger.Warn("%s - Blocked interval not found: trainer_id=%d", op, trainerID)
		handlers.RespondNotFound(w, msgIntervalNotFound)

	case errors.Is(err, schedule.ErrInvalidInput):
		h.logger.Warn("%s - Invalid schedule: trainer_id=%d, error=%v", op, trainerID, err)
		handlers.RespondBadRequest(w, msgInvalidSchedule)

	default:
		h.logger.Error("%s - Failed: trainer_id=%d, error=%v", op, trainerID, err)
		handlers.RespondInternalError(w)
	}
}
