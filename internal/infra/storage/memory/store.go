package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Store хранилище в памяти для локальной разработки и тестов
// Возвращает те же sentinel-ошибки, что и postgres-репозитории, и так же не допускает
// пересечения активных бронирований одного тренера.
//
// Транзакция держит общий мьютекс до завершения fn; при ошибке состояние откатывается к снимку.
type Store struct {
	mu   sync.Mutex
	data *state
	now  func() time.Time
}

type state struct {
	reservations  map[int64]domain.Reservation
	changeLogs    []domain.ChangeLogEntry
	registrations map[int64]domain.PTRegistration
	records       map[int64]domain.PTRecord // ключ: reservation_id
	weekly        map[weeklyKey]domain.WeeklySchedule
	blocked       []domain.BlockedInterval

	nextReservationID int64
	nextChangeLogID   int64
	nextRecordID      int64
	nextScheduleID    int64
	nextBlockedID     int64
}

type weeklyKey struct {
	trainerID int64
	dayOfWeek int
}

// Seed начальные данные, которые в production ведут другие сервисы
type Seed struct {
	Schedules     []domain.WeeklySchedule
	Blocked       []domain.BlockedInterval
	Registrations []domain.PTRegistration
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		data: newState(),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func newState() *state {
	return &state{
		reservations:  make(map[int64]domain.Reservation),
		registrations: make(map[int64]domain.PTRegistration),
		records:       make(map[int64]domain.PTRecord),
		weekly:        make(map[weeklyKey]domain.WeeklySchedule),
	}
}

// Load загружает начальные данные
func (s *Store) Load(seed Seed) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ws := range seed.Schedules {
		s.putWeeklySchedule(ws)
	}
	for _, b := range seed.Blocked {
		s.addBlockedInterval(b)
	}
	for _, reg := range seed.Registrations {
		s.data.registrations[reg.ID] = reg
	}
}

// PutWeeklySchedule создает или заменяет рабочие часы тренера на день недели
func (s *Store) PutWeeklySchedule(ws domain.WeeklySchedule) domain.WeeklySchedule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.putWeeklySchedule(ws)
}

func (s *Store) putWeeklySchedule(ws domain.WeeklySchedule) domain.WeeklySchedule {
	key := weeklyKey{trainerID: ws.TrainerID, dayOfWeek: ws.DayOfWeek}
	if existing, ok := s.data.weekly[key]; ok {
		ws.ID = existing.ID
	} else if ws.ID == 0 {
		s.data.nextScheduleID++
		ws.ID = s.data.nextScheduleID
	}
	s.data.weekly[key] = ws
	return ws
}

// AddBlockedInterval добавляет блокировку тренера
func (s *Store) AddBlockedInterval(b domain.BlockedInterval) domain.BlockedInterval {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addBlockedInterval(b)
}

func (s *Store) addBlockedInterval(b domain.BlockedInterval) domain.BlockedInterval {
	if b.ID == 0 {
		s.data.nextBlockedID++
		b.ID = s.data.nextBlockedID
	}
	b.Date = domain.DateOnly(b.Date)
	s.data.blocked = append(s.data.blocked, b)
	return b
}

// PutRegistration создает или заменяет пакет PT занятий
func (s *Store) PutRegistration(reg domain.PTRegistration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.registrations[reg.ID] = reg
}

// Reservations репозиторий бронирований
func (s *Store) Reservations() *ReservationRepository {
	return &ReservationRepository{store: s}
}

// ChangeLogs репозиторий журнала изменений
func (s *Store) ChangeLogs() *ChangeLogRepository {
	return &ChangeLogRepository{store: s}
}

// Registrations репозиторий пакетов PT занятий
func (s *Store) Registrations() *RegistrationRepository {
	return &RegistrationRepository{store: s}
}

// Records репозиторий записей о занятиях
func (s *Store) Records() *RecordRepository {
	return &RecordRepository{store: s}
}

// Schedules репозиторий расписания тренеров
func (s *Store) Schedules() *ScheduleRepository {
	return &ScheduleRepository{store: s}
}

// TxManager менеджер транзакций поверх хранилища
func (s *Store) TxManager() *TxManager {
	return &TxManager{store: s}
}

type txKey struct{}

func (s *Store) inTx(ctx context.Context) bool {
	owner, ok := ctx.Value(txKey{}).(*Store)
	return ok && owner == s
}

// lock берёт мьютекс, если вызов не внутри транзакции этого хранилища
func (s *Store) lock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) runTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	committed := false
	defer func() {
		if !committed {
			s.data = snapshot
		}
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		return err
	}

	committed = true
	return nil
}

func (st *state) clone() *state {
	c := &state{
		reservations:      make(map[int64]domain.Reservation, len(st.reservations)),
		changeLogs:        make([]domain.ChangeLogEntry, len(st.changeLogs)),
		registrations:     make(map[int64]domain.PTRegistration, len(st.registrations)),
		records:           make(map[int64]domain.PTRecord, len(st.records)),
		weekly:            make(map[weeklyKey]domain.WeeklySchedule, len(st.weekly)),
		blocked:           make([]domain.BlockedInterval, len(st.blocked)),
		nextReservationID: st.nextReservationID,
		nextChangeLogID:   st.nextChangeLogID,
		nextRecordID:      st.nextRecordID,
		nextScheduleID:    st.nextScheduleID,
		nextBlockedID:     st.nextBlockedID,
	}
	for k, v := range st.reservations {
		c.reservations[k] = v
	}
	copy(c.changeLogs, st.changeLogs)
	for k, v := range st.registrations {
		c.registrations[k] = v
	}
	for k, v := range st.records {
		c.records[k] = v
	}
	for k, v := range st.weekly {
		c.weekly[k] = v
	}
	copy(c.blocked, st.blocked)
	return c
}

// TxManager транзакции хранилища в памяти
// Транзакции выполняются строго последовательно
type TxManager struct {
	store *Store
}

// DoSerializable выполняет fn атомарно
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.store.runTx(ctx, fn)
}

