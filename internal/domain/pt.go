package domain

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// PTRegistration купленный членом клуба пакет PT занятий
// Инвариант: 0 <= RemainingSessions <= TotalSessions
type PTRegistration struct {
	ID                int64
	MemberID          int64
	TrainerID         *int64
	TotalSessions     int
	RemainingSessions int
	Status            string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// HasRemainingSessions возвращает true, если в пакете остались занятия
func (p *PTRegistration) HasRemainingSessions() bool {
	return p.RemainingSessions > 0
}

// PTRecord запись о проведённом PT занятии, ровно одна на завершённое бронирование
type PTRecord struct {
	ID              int64
	ReservationID   int64
	TrainerID       int64
	MemberID        int64
	WorkoutDate     time.Time
	WorkoutTime     types.TimeString
	DurationMinutes int
	Content         string
	MemberCondition string
	TrainerNotes    string
	IsCompleted     bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PTRecordFilter фильтр списка записей о занятиях
type PTRecordFilter struct {
	MemberID  *int64
	TrainerID *int64
	StartDate *time.Time // включительно
	EndDate   *time.Time // включительно
}
