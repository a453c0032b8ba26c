package run_reminders

import (
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	sendReminders "github.com/m04kA/SMC-ReservationService/internal/usecase/send_reminders"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgForbidden   = "запуск напоминаний доступен только администратору"
)

// RemindersResponse HTTP response model
type RemindersResponse struct {
	Date         string `json:"date"`
	Reservations int    `json:"reservations"`
	EventsSent   int    `json:"eventsSent"`
}

type Handler struct {
	useCase SendRemindersUseCase
	logger  Logger
}

func NewHandler(useCase SendRemindersUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reminders/run
// Query params: date (опционально, YYYY-MM-DD; по умолчанию завтра)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok || actor.Role != domain.ActorAdmin {
		h.logger.Warn("POST /reminders/run - Forbidden: actor=%s", actor)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("POST /reminders/run - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &sendReminders.Request{Date: date})
	if err != nil {
		h.logger.Error("POST /reminders/run - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /reminders/run - Reminders sent: date=%s, events=%d",
		result.Date.Format(domain.DateFormat), result.EventsSent)
	handlers.RespondJSON(w, http.StatusOK, &RemindersResponse{
		Date:         result.Date.Format(domain.DateFormat),
		Reservations: result.Reservations,
		EventsSent:   result.EventsSent,
	})
}
