package create_reservation

import (
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// validateRequest валидирует входные данные запроса и заполняет значения по умолчанию
func validateRequest(req *Request, opts Options) error {
	if req.Actor.ID == "" {
		return fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}
	if len(req.Actor.ID) > domain.MaxActorLength {
		return fmt.Errorf("%w: actor must be at most %d characters", ErrInvalidInput, domain.MaxActorLength)
	}

	if req.MemberID <= 0 {
		return fmt.Errorf("%w: memberId must be positive", ErrInvalidInput)
	}

	if req.TrainerID <= 0 {
		return fmt.Errorf("%w: trainerId must be positive", ErrInvalidInput)
	}

	if req.PTRegistrationID != nil && *req.PTRegistrationID <= 0 {
		return fmt.Errorf("%w: ptRegistrationId must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	req.Date = domain.DateOnly(req.Date)

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.DurationMinutes == 0 {
		req.DurationMinutes = domain.DefaultDurationMinutes
	}
	if req.DurationMinutes < opts.MinDurationMinutes || req.DurationMinutes > opts.MaxDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, opts.MinDurationMinutes, opts.MaxDurationMinutes)
	}

	if len(req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return validateRepeat(req)
}

// validateRepeat проверяет политику повторения и дату окончания
func validateRepeat(req *Request) error {
	policy, err := domain.ParseRepeatPolicy(string(req.RepeatPolicy))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	req.RepeatPolicy = policy

	if policy == domain.RepeatNone {
		req.RepeatEndDate = nil
		return nil
	}

	// Без даты окончания политика сохраняется, но повторения не создаются
	if req.RepeatEndDate == nil {
		return nil
	}

	// Дата окончания не позже даты бронирования даёт пустой интервал повторений
	end := domain.DateOnly(*req.RepeatEndDate)
	maxEnd := req.Date.AddDate(0, 0, domain.MaxRepeatDays)
	if end.After(maxEnd) {
		return fmt.Errorf("%w: repeatEndDate must be within %d days of date", ErrInvalidInput, domain.MaxRepeatDays)
	}
	req.RepeatEndDate = &end

	return nil
}

// endTime вычисляет время окончания; переход через полночь недопустим
func endTime(req *Request) (types.TimeString, error) {
	end, err := req.StartTime.AddMinutes(req.DurationMinutes)
	if err != nil {
		return "", fmt.Errorf("%w: reservation must end before midnight", ErrInvalidInput)
	}
	return end, nil
}

// checkRegistration проверяет привязанный пакет PT: владелец, тренер и остаток занятий
// Занятие не резервируется: списание происходит только при завершении
func checkRegistration(reg *domain.PTRegistration, req *Request) error {
	if reg.MemberID != req.MemberID {
		return fmt.Errorf("%w: registration id=%d belongs to member %d", ErrRegistrationMismatch, reg.ID, reg.MemberID)
	}
	if reg.TrainerID != nil && *reg.TrainerID != req.TrainerID {
		return fmt.Errorf("%w: registration id=%d is bound to trainer %d", ErrRegistrationMismatch, reg.ID, *reg.TrainerID)
	}
	if !reg.HasRemainingSessions() {
		return ErrNoSessionsRemaining
	}
	return nil
}
