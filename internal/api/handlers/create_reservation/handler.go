package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidFormat        = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingActor         = "не указан инициатор запроса"
	msgSlotUnavailable      = "выбранное время тренера недоступно"
	msgNoSessionsRemaining  = "в пакете PT не осталось занятий"
	msgRegistrationNotFound = "пакет PT занятий не найден"
	msgRegistrationMismatch = "пакет PT занятий не принадлежит члену клуба или тренеру"
	msgInvalidInput         = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFormat)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSlotUnavailable):
			h.logger.Warn("POST /reservations - Slot unavailable: member_id=%d, trainer_id=%d", req.MemberID, req.TrainerID)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, createReservation.ErrNoSessionsRemaining):
			h.logger.Warn("POST /reservations - No sessions remaining: member_id=%d", req.MemberID)
			handlers.RespondConflict(w, msgNoSessionsRemaining)

		case errors.Is(err, createReservation.ErrRegistrationNotFound):
			h.logger.Warn("POST /reservations - Registration not found: member_id=%d", req.MemberID)
			handlers.RespondNotFound(w, msgRegistrationNotFound)

		case errors.Is(err, createReservation.ErrRegistrationMismatch):
			h.logger.Warn("POST /reservations - Registration mismatch: member_id=%d, trainer_id=%d", req.MemberID, req.TrainerID)
			handlers.RespondBadRequest(w, msgRegistrationMismatch)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: member_id=%d, trainer_id=%d, error=%v",
				req.MemberID, req.TrainerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, member_id=%d, trainer_id=%d, occurrences=%d",
		result.Reservation.ID, req.MemberID, req.TrainerID, result.OccurrencesCreated)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
