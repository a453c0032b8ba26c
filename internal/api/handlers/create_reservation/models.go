package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	MemberID         int64   `json:"memberId"`
	TrainerID        int64   `json:"trainerId"`
	PTRegistrationID *int64  `json:"ptRegistrationId,omitempty"`
	ReservationDate  string  `json:"reservationDate"` // "2025-10-15"
	StartTime        string  `json:"startTime"`       // "10:00"
	DurationMinutes  int     `json:"durationMinutes,omitempty"`
	RepeatPolicy     string  `json:"repeatPolicy,omitempty"`  // none|daily|weekly|monthly
	RepeatEndDate    *string `json:"repeatEndDate,omitempty"` // "2025-11-15"
	Notes            *string `json:"notes,omitempty"`
}

// CreateReservationResponse HTTP response model
type CreateReservationResponse struct {
	Reservation        *models.ReservationResponse  `json:"reservation"`
	Occurrences        []models.ReservationResponse `json:"occurrences"`
	OccurrencesCreated int                          `json:"occurrencesCreated"`
	OccurrencesSkipped int                          `json:"occurrencesSkipped"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом даты и времени)
func (r *CreateReservationRequest) ToUseCaseRequest(actor domain.Actor) (*createReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.ReservationDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	var repeatEnd *time.Time
	if r.RepeatEndDate != nil && *r.RepeatEndDate != "" {
		end, err := time.Parse(domain.DateFormat, *r.RepeatEndDate)
		if err != nil {
			return nil, err
		}
		repeatEnd = &end
	}

	notes := ""
	if r.Notes != nil {
		notes = *r.Notes
	}

	return &createReservation.Request{
		Actor:            actor,
		MemberID:         r.MemberID,
		TrainerID:        r.TrainerID,
		PTRegistrationID: r.PTRegistrationID,
		Date:             date,
		StartTime:        startTime,
		DurationMinutes:  r.DurationMinutes,
		RepeatPolicy:     domain.RepeatPolicy(r.RepeatPolicy),
		RepeatEndDate:    repeatEnd,
		Notes:            notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *CreateReservationResponse {
	return &CreateReservationResponse{
		Reservation:        models.FromDomainReservation(resp.Reservation),
		Occurrences:        models.FromDomainReservationList(resp.Occurrences).Reservations,
		OccurrencesCreated: resp.OccurrencesCreated,
		OccurrencesSkipped: resp.OccurrencesSkipped,
	}
}
