package memory

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/ptrecord"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/ptregistration"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/schedule"
)

// ReservationRepository бронирования в памяти
type ReservationRepository struct {
	store *Store
}

// LockTrainerDay ничего не делает: транзакция уже держит мьютекс хранилища
func (r *ReservationRepository) LockTrainerDay(ctx context.Context, trainerID int64, date time.Time) error {
	return ctx.Err()
}

// Create сохраняет бронирование, отклоняя пересечение с активными бронированиями тренера
func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	data := r.store.data
	if res.Status.IsActive() {
		for _, existing := range data.reservations {
			if existing.TrainerID == res.TrainerID &&
				domain.SameDate(existing.Date, res.Date) &&
				existing.IsActive() &&
				existing.OverlapsWith(res.StartTime, res.EndTime) {
				return nil, reservation.ErrSlotNotAvailable
			}
		}
	}

	now := r.store.now()
	data.nextReservationID++
	res.ID = data.nextReservationID
	res.Date = domain.DateOnly(res.Date)
	res.CreatedAt = now
	res.UpdatedAt = now
	data.reservations[res.ID] = *res

	return res, nil
}

// GetByID получает бронирование по ID
func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	res, ok := r.store.data.reservations[id]
	if !ok {
		return nil, reservation.ErrReservationNotFound
	}
	return &res, nil
}

// GetByIDForUpdate совпадает с GetByID
func (r *ReservationRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Reservation, error) {
	return r.GetByID(ctx, id)
}

// GetActiveByTrainerAndDate бронирования тренера на дату в статусах pending/confirmed
func (r *ReservationRepository) GetActiveByTrainerAndDate(ctx context.Context, trainerID int64, date time.Time) ([]*domain.Reservation, error) {
	return r.List(ctx, domain.ReservationFilter{
		TrainerID: &trainerID,
		StartDate: &date,
		EndDate:   &date,
		Statuses:  domain.ActiveStatuses,
	})
}

// List бронирования по фильтру, по возрастанию даты и времени начала
func (r *ReservationRepository) List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	result := make([]*domain.Reservation, 0)
	for _, res := range r.store.data.reservations {
		if !matches(res, filter) {
			continue
		}
		res := res
		result = append(result, &res)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		if result[i].StartTime != result[j].StartTime {
			return result[i].StartTime.IsBefore(result[j].StartTime)
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// UpdateStatus обновляет статус и заметки
func (r *ReservationRepository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus, notes string) (*domain.Reservation, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	res, ok := r.store.data.reservations[id]
	if !ok {
		return nil, reservation.ErrReservationNotFound
	}
	res.Status = status
	res.Notes = notes
	res.UpdatedAt = r.store.now()
	r.store.data.reservations[id] = res

	return &res, nil
}

func matches(res domain.Reservation, filter domain.ReservationFilter) bool {
	if filter.MemberID != nil && res.MemberID != *filter.MemberID {
		return false
	}
	if filter.TrainerID != nil && res.TrainerID != *filter.TrainerID {
		return false
	}
	if filter.StartDate != nil && res.Date.Before(domain.DateOnly(*filter.StartDate)) {
		return false
	}
	if filter.EndDate != nil && res.Date.After(domain.DateOnly(*filter.EndDate)) {
		return false
	}
	if len(filter.Statuses) > 0 {
		found := false
		for _, s := range filter.Statuses {
			if res.Status == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// ChangeLogRepository append-only журнал в памяти
type ChangeLogRepository struct {
	store *Store
}

// Append добавляет запись в журнал
func (r *ChangeLogRepository) Append(ctx context.Context, entry *domain.ChangeLogEntry) (*domain.ChangeLogEntry, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	data := r.store.data
	data.nextChangeLogID++
	entry.ID = data.nextChangeLogID
	entry.CreatedAt = r.store.now()
	data.changeLogs = append(data.changeLogs, *entry)

	return entry, nil
}

// ListByReservation журнал бронирования, новые записи первыми
func (r *ChangeLogRepository) ListByReservation(ctx context.Context, reservationID int64) ([]*domain.ChangeLogEntry, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	entries := make([]*domain.ChangeLogEntry, 0)
	logs := r.store.data.changeLogs
	for i := len(logs) - 1; i >= 0; i-- {
		if logs[i].ReservationID == reservationID {
			entry := logs[i]
			entries = append(entries, &entry)
		}
	}
	return entries, nil
}

// RegistrationRepository пакеты PT занятий в памяти
type RegistrationRepository struct {
	store *Store
}

// GetByID получает пакет по ID
func (r *RegistrationRepository) GetByID(ctx context.Context, id int64) (*domain.PTRegistration, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	reg, ok := r.store.data.registrations[id]
	if !ok {
		return nil, ptregistration.ErrRegistrationNotFound
	}
	return &reg, nil
}

// DecrementRemainingSessions списывает одно занятие, не опуская остаток ниже нуля
func (r *RegistrationRepository) DecrementRemainingSessions(ctx context.Context, id int64) (*domain.PTRegistration, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	reg, ok := r.store.data.registrations[id]
	if !ok {
		return nil, ptregistration.ErrRegistrationNotFound
	}
	if reg.RemainingSessions > 0 {
		reg.RemainingSessions--
	}
	reg.UpdatedAt = r.store.now()
	r.store.data.registrations[id] = reg

	return &reg, nil
}

// RecordRepository записи о занятиях в памяти
type RecordRepository struct {
	store *Store
}

// Create создает запись; одна запись на бронирование
func (r *RecordRepository) Create(ctx context.Context, record *domain.PTRecord) (*domain.PTRecord, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	data := r.store.data
	if _, exists := data.records[record.ReservationID]; exists {
		return nil, ptrecord.ErrRecordExists
	}

	now := r.store.now()
	data.nextRecordID++
	record.ID = data.nextRecordID
	record.CreatedAt = now
	record.UpdatedAt = now
	data.records[record.ReservationID] = *record

	return record, nil
}

// GetByReservationID получает запись по ID бронирования
func (r *RecordRepository) GetByReservationID(ctx context.Context, reservationID int64) (*domain.PTRecord, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	record, ok := r.store.data.records[reservationID]
	if !ok {
		return nil, ptrecord.ErrRecordNotFound
	}
	return &record, nil
}

// List записи о занятиях по фильтру, новые занятия первыми
func (r *RecordRepository) List(ctx context.Context, filter domain.PTRecordFilter) ([]*domain.PTRecord, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	result := make([]*domain.PTRecord, 0)
	for _, record := range r.store.data.records {
		if filter.MemberID != nil && record.MemberID != *filter.MemberID {
			continue
		}
		if filter.TrainerID != nil && record.TrainerID != *filter.TrainerID {
			continue
		}
		if filter.StartDate != nil && record.WorkoutDate.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && record.WorkoutDate.After(*filter.EndDate) {
			continue
		}
		record := record
		result = append(result, &record)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].WorkoutDate.Equal(result[j].WorkoutDate) {
			return result[i].WorkoutDate.After(result[j].WorkoutDate)
		}
		if result[i].WorkoutTime != result[j].WorkoutTime {
			return result[j].WorkoutTime.IsBefore(result[i].WorkoutTime)
		}
		return result[i].ID > result[j].ID
	})

	return result, nil
}

// ScheduleRepository расписание тренеров в памяти
type ScheduleRepository struct {
	store *Store
}

// GetWeeklySchedule рабочие часы тренера на день недели
func (r *ScheduleRepository) GetWeeklySchedule(ctx context.Context, trainerID int64, dayOfWeek int) (*domain.WeeklySchedule, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	ws, ok := r.store.data.weekly[weeklyKey{trainerID: trainerID, dayOfWeek: dayOfWeek}]
	if !ok {
		return nil, schedule.ErrScheduleNotFound
	}
	return &ws, nil
}

// ListWeeklyByTrainer недельная сетка тренера по дням недели
func (r *ScheduleRepository) ListWeeklyByTrainer(ctx context.Context, trainerID int64) ([]*domain.WeeklySchedule, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	result := make([]*domain.WeeklySchedule, 0)
	for key, ws := range r.store.data.weekly {
		if key.trainerID != trainerID {
			continue
		}
		ws := ws
		result = append(result, &ws)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DayOfWeek < result[j].DayOfWeek })

	return result, nil
}

// GetBlockedIntervals блокировки тренера на дату
func (r *ScheduleRepository) GetBlockedIntervals(ctx context.Context, trainerID int64, date time.Time) ([]*domain.BlockedInterval, error) {
	return r.ListBlockedIntervals(ctx, trainerID, date, date)
}

// ListBlockedIntervals блокировки тренера за период [from, to]
func (r *ScheduleRepository) ListBlockedIntervals(ctx context.Context, trainerID int64, from, to time.Time) ([]*domain.BlockedInterval, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	from, to = domain.DateOnly(from), domain.DateOnly(to)
	result := make([]*domain.BlockedInterval, 0)
	for _, b := range r.store.data.blocked {
		if b.TrainerID != trainerID || b.Date.Before(from) || b.Date.After(to) {
			continue
		}
		b := b
		result = append(result, &b)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].StartTime.IsBefore(result[j].StartTime)
	})

	return result, nil
}

// UpsertWeeklySchedule создает или заменяет рабочие часы тренера на день недели
func (r *ScheduleRepository) UpsertWeeklySchedule(ctx context.Context, ws *domain.WeeklySchedule) (*domain.WeeklySchedule, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	saved := r.store.putWeeklySchedule(*ws)
	return &saved, nil
}

// CreateBlockedInterval добавляет блокировку тренера
func (r *ScheduleRepository) CreateBlockedInterval(ctx context.Context, b *domain.BlockedInterval) (*domain.BlockedInterval, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	b.ID = 0
	saved := r.store.addBlockedInterval(*b)
	return &saved, nil
}

// DeleteBlockedInterval удаляет блокировку тренера
func (r *ScheduleRepository) DeleteBlockedInterval(ctx context.Context, trainerID, id int64) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	blocked := r.store.data.blocked
	for i, b := range blocked {
		if b.ID == id && b.TrainerID == trainerID {
			r.store.data.blocked = append(blocked[:i:i], blocked[i+1:]...)
			return nil
		}
	}
	return schedule.ErrBlockedIntervalNotFound
}
