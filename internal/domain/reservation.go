package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

var (
	// ErrUnknownStatus возвращается при разборе неизвестного статуса
	ErrUnknownStatus = errors.New("domain: unknown reservation status")

	// ErrUnknownRepeatPolicy возвращается при разборе неизвестной политики повторения
	ErrUnknownRepeatPolicy = errors.New("domain: unknown repeat policy")
)

// ReservationStatus статус PT бронирования
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusRejected  ReservationStatus = "rejected"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
	StatusNoShow    ReservationStatus = "no_show"
)

// transitions допустимые переходы жизненного цикла
// no_show выставляется только административно
var transitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:   {StatusConfirmed, StatusRejected, StatusCancelled, StatusNoShow},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
}

// CanTransition возвращает true, если переход from -> to разрешён
func CanTransition(from, to ReservationStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsActive возвращает true, если статус занимает время тренера
func (s ReservationStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// ParseReservationStatus конвертирует строку в ReservationStatus с валидацией
func ParseReservationStatus(s string) (ReservationStatus, error) {
	status := ReservationStatus(s)
	switch status {
	case StatusPending, StatusConfirmed, StatusRejected, StatusCancelled, StatusCompleted, StatusNoShow:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
}

// RepeatPolicy политика повторения бронирования
type RepeatPolicy string

const (
	RepeatNone    RepeatPolicy = "none"
	RepeatDaily   RepeatPolicy = "daily"
	RepeatWeekly  RepeatPolicy = "weekly"
	RepeatMonthly RepeatPolicy = "monthly"
)

// ParseRepeatPolicy конвертирует строку в RepeatPolicy; пустая строка означает none
func ParseRepeatPolicy(s string) (RepeatPolicy, error) {
	if s == "" {
		return RepeatNone, nil
	}
	policy := RepeatPolicy(s)
	switch policy {
	case RepeatNone, RepeatDaily, RepeatWeekly, RepeatMonthly:
		return policy, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRepeatPolicy, s)
	}
}

// Reservation PT бронирование члена клуба у тренера
type Reservation struct {
	ID               int64
	MemberID         int64
	TrainerID        int64
	PTRegistrationID *int64 // пакет PT занятий, с которого спишется сессия при завершении
	Date             time.Time
	StartTime        types.TimeString
	EndTime          types.TimeString // всегда StartTime + DurationMinutes
	DurationMinutes  int
	Status           ReservationStatus
	RepeatPolicy     RepeatPolicy
	RepeatEndDate    *time.Time
	Notes            string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если бронирование занимает время тренера
func (r *Reservation) IsActive() bool {
	return r.Status.IsActive()
}

// OverlapsWith проверяет пересечение с интервалом [start, end)
func (r *Reservation) OverlapsWith(start, end types.TimeString) bool {
	return Overlaps(r.StartTime, r.EndTime, start, end)
}

// ShouldExpand возвращает true, если после создания нужно развернуть повторения
func (r *Reservation) ShouldExpand() bool {
	return r.RepeatPolicy != "" && r.RepeatPolicy != RepeatNone && r.RepeatEndDate != nil
}

// HasRegistration возвращает true, если бронирование привязано к пакету PT
func (r *Reservation) HasRegistration() bool {
	return r.PTRegistrationID != nil
}

// PrependNote дописывает строку "label: reason" в начало заметок
func (r *Reservation) PrependNote(label, reason string) {
	r.Notes = fmt.Sprintf("%s: %s\n\n%s", label, reason, r.Notes)
}

// ReservationFilter фильтр списков бронирований
type ReservationFilter struct {
	MemberID  *int64
	TrainerID *int64
	StartDate *time.Time // включительно
	EndDate   *time.Time // включительно
	Statuses  []ReservationStatus
}
