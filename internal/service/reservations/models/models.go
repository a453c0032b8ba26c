package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")

	// ErrInvalidPeriod возвращается, когда начало периода позже конца
	ErrInvalidPeriod = errors.New("startDate must not be after endDate")

	// ErrOwnerRequired возвращается, когда в запросе записей не указан ни тренер, ни член клуба
	ErrOwnerRequired = errors.New("trainerId or memberId is required")
)

// Request модели

// ListMemberReservationsRequest запрос на получение бронирований члена клуба
type ListMemberReservationsRequest struct {
	MemberID  int64      `json:"memberId"`
	StartDate *time.Time `json:"startDate,omitempty"` // Начало периода (опционально, включительно)
	EndDate   *time.Time `json:"endDate,omitempty"`   // Конец периода (опционально, включительно)
	Status    *string    `json:"status,omitempty"`    // Фильтр по статусу (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListMemberReservationsRequest) ToDomainFilter() (domain.ReservationFilter, error) {
	filter := domain.ReservationFilter{
		MemberID:  &r.MemberID,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}

	if r.StartDate != nil && r.EndDate != nil && r.StartDate.After(*r.EndDate) {
		return filter, ErrInvalidPeriod
	}

	statuses, err := toStatuses(r.Status)
	if err != nil {
		return filter, err
	}
	filter.Statuses = statuses

	return filter, nil
}

// ListTrainerReservationsRequest запрос на получение бронирований тренера
type ListTrainerReservationsRequest struct {
	TrainerID int64      `json:"trainerId"`
	Date      *time.Time `json:"date,omitempty"`   // Конкретная дата (опционально)
	Status    *string    `json:"status,omitempty"` // Фильтр по статусу (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListTrainerReservationsRequest) ToDomainFilter() (domain.ReservationFilter, error) {
	filter := domain.ReservationFilter{
		TrainerID: &r.TrainerID,
		StartDate: r.Date,
		EndDate:   r.Date,
	}

	statuses, err := toStatuses(r.Status)
	if err != nil {
		return filter, err
	}
	filter.Statuses = statuses

	return filter, nil
}

// ListRecordsRequest запрос на получение записей о занятиях тренера или члена клуба
type ListRecordsRequest struct {
	TrainerID *int64     `json:"trainerId,omitempty"`
	MemberID  *int64     `json:"memberId,omitempty"`
	StartDate *time.Time `json:"startDate,omitempty"` // Начало периода (опционально, включительно)
	EndDate   *time.Time `json:"endDate,omitempty"`   // Конец периода (опционально, включительно)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListRecordsRequest) ToDomainFilter() (domain.PTRecordFilter, error) {
	filter := domain.PTRecordFilter{
		TrainerID: r.TrainerID,
		MemberID:  r.MemberID,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}

	if r.TrainerID == nil && r.MemberID == nil {
		return filter, ErrOwnerRequired
	}
	if r.StartDate != nil && r.EndDate != nil && r.StartDate.After(*r.EndDate) {
		return filter, ErrInvalidPeriod
	}

	return filter, nil
}

func toStatuses(status *string) ([]domain.ReservationStatus, error) {
	if status == nil || *status == "" {
		return nil, nil
	}
	s, err := domain.ParseReservationStatus(*status)
	if err != nil {
		return nil, ErrInvalidStatus
	}
	return []domain.ReservationStatus{s}, nil
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID               int64   `json:"id"`
	MemberID         int64   `json:"memberId"`
	TrainerID        int64   `json:"trainerId"`
	PTRegistrationID *int64  `json:"ptRegistrationId,omitempty"`
	ReservationDate  string  `json:"reservationDate"` // "2025-10-15"
	StartTime        string  `json:"startTime"`       // "10:00"
	EndTime          string  `json:"endTime"`         // "10:30"
	DurationMinutes  int     `json:"durationMinutes"`
	Status           string  `json:"status"`
	RepeatPolicy     string  `json:"repeatPolicy"`
	RepeatEndDate    *string `json:"repeatEndDate,omitempty"`
	Notes            string  `json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// ChangeLogEntryResponse запись журнала изменений
type ChangeLogEntryResponse struct {
	ID             int64     `json:"id"`
	ReservationID  int64     `json:"reservationId"`
	ChangeType     string    `json:"changeType"`
	ChangedBy      string    `json:"changedBy"`
	PreviousStatus *string   `json:"previousStatus,omitempty"`
	NewStatus      string    `json:"newStatus"`
	Reason         string    `json:"reason,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ChangeLogResponse журнал изменений бронирования, новые записи первыми
type ChangeLogResponse struct {
	ReservationID int64                    `json:"reservationId"`
	Entries       []ChangeLogEntryResponse `json:"entries"`
}

// PTRecordResponse запись о проведённом занятии
type PTRecordResponse struct {
	ID              int64     `json:"id"`
	ReservationID   int64     `json:"reservationId"`
	TrainerID       int64     `json:"trainerId"`
	MemberID        int64     `json:"memberId"`
	WorkoutDate     string    `json:"workoutDate"`
	WorkoutTime     string    `json:"workoutTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Content         string    `json:"content,omitempty"`
	MemberCondition string    `json:"memberCondition,omitempty"`
	TrainerNotes    string    `json:"trainerNotes,omitempty"`
	IsCompleted     bool      `json:"isCompleted"`
	CreatedAt       time.Time `json:"createdAt"`
}

// PTRecordListResponse ответ со списком записей о занятиях
type PTRecordListResponse struct {
	Records []PTRecordResponse `json:"records"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:               r.ID,
		MemberID:         r.MemberID,
		TrainerID:        r.TrainerID,
		PTRegistrationID: r.PTRegistrationID,
		ReservationDate:  r.Date.Format(domain.DateFormat),
		StartTime:        r.StartTime.String(),
		EndTime:          r.EndTime.String(),
		DurationMinutes:  r.DurationMinutes,
		Status:           string(r.Status),
		RepeatPolicy:     string(r.RepeatPolicy),
		Notes:            r.Notes,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}

	if r.RepeatEndDate != nil {
		endStr := r.RepeatEndDate.Format(domain.DateFormat)
		resp.RepeatEndDate = &endStr
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}

	for _, r := range reservations {
		if item := FromDomainReservation(r); item != nil {
			resp.Reservations = append(resp.Reservations, *item)
		}
	}

	return resp
}

// FromDomainChangeLog конвертирует журнал изменений в DTO
func FromDomainChangeLog(reservationID int64, entries []*domain.ChangeLogEntry) *ChangeLogResponse {
	resp := &ChangeLogResponse{
		ReservationID: reservationID,
		Entries:       make([]ChangeLogEntryResponse, 0, len(entries)),
	}

	for _, e := range entries {
		item := ChangeLogEntryResponse{
			ID:            e.ID,
			ReservationID: e.ReservationID,
			ChangeType:    string(e.ChangeType),
			ChangedBy:     e.ChangedBy,
			NewStatus:     string(e.NewStatus),
			Reason:        e.Reason,
			CreatedAt:     e.CreatedAt,
		}
		if e.PreviousStatus != "" {
			prev := string(e.PreviousStatus)
			item.PreviousStatus = &prev
		}
		resp.Entries = append(resp.Entries, item)
	}

	return resp
}

// FromDomainPTRecord конвертирует запись о занятии в DTO
func FromDomainPTRecord(r *domain.PTRecord) *PTRecordResponse {
	if r == nil {
		return nil
	}

	return &PTRecordResponse{
		ID:              r.ID,
		ReservationID:   r.ReservationID,
		TrainerID:       r.TrainerID,
		MemberID:        r.MemberID,
		WorkoutDate:     r.WorkoutDate.Format(domain.DateFormat),
		WorkoutTime:     r.WorkoutTime.String(),
		DurationMinutes: r.DurationMinutes,
		Content:         r.Content,
		MemberCondition: r.MemberCondition,
		TrainerNotes:    r.TrainerNotes,
		IsCompleted:     r.IsCompleted,
		CreatedAt:       r.CreatedAt,
	}
}

// FromDomainPTRecordList конвертирует список записей о занятиях в DTO
func FromDomainPTRecordList(records []*domain.PTRecord) *PTRecordListResponse {
	resp := &PTRecordListResponse{
		Records: make([]PTRecordResponse, 0, len(records)),
	}

	for _, r := range records {
		if item := FromDomainPTRecord(r); item != nil {
			resp.Records = append(resp.Records, *item)
		}
	}

	return resp
}
