package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-ReservationService/internal/config"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	changeLogRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/changelog"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/memory"
	recordRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/ptrecord"
	registrationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/ptregistration"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	scheduleRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
	"github.com/m04kA/SMC-ReservationService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

// Объединение методов, которые нужны сервисам; реализуют и postgres, и memory репозитории
type (
	reservationStore interface {
		LockTrainerDay(ctx context.Context, trainerID int64, date time.Time) error
		Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
		GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
		GetByIDForUpdate(ctx context.Context, id int64) (*domain.Reservation, error)
		GetActiveByTrainerAndDate(ctx context.Context, trainerID int64, date time.Time) ([]*domain.Reservation, error)
		List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
		UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus, notes string) (*domain.Reservation, error)
	}

	changeLogStore interface {
		Append(ctx context.Context, entry *domain.ChangeLogEntry) (*domain.ChangeLogEntry, error)
		ListByReservation(ctx context.Context, reservationID int64) ([]*domain.ChangeLogEntry, error)
	}

	registrationStore interface {
		GetByID(ctx context.Context, id int64) (*domain.PTRegistration, error)
		DecrementRemainingSessions(ctx context.Context, id int64) (*domain.PTRegistration, error)
	}

	recordStore interface {
		Create(ctx context.Context, record *domain.PTRecord) (*domain.PTRecord, error)
		GetByReservationID(ctx context.Context, reservationID int64) (*domain.PTRecord, error)
		List(ctx context.Context, filter domain.PTRecordFilter) ([]*domain.PTRecord, error)
	}

	scheduleStore interface {
		GetWeeklySchedule(ctx context.Context, trainerID int64, dayOfWeek int) (*domain.WeeklySchedule, error)
		ListWeeklyByTrainer(ctx context.Context, trainerID int64) ([]*domain.WeeklySchedule, error)
		GetBlockedIntervals(ctx context.Context, trainerID int64, date time.Time) ([]*domain.BlockedInterval, error)
		ListBlockedIntervals(ctx context.Context, trainerID int64, from, to time.Time) ([]*domain.BlockedInterval, error)
		UpsertWeeklySchedule(ctx context.Context, ws *domain.WeeklySchedule) (*domain.WeeklySchedule, error)
		CreateBlockedInterval(ctx context.Context, b *domain.BlockedInterval) (*domain.BlockedInterval, error)
		DeleteBlockedInterval(ctx context.Context, trainerID, id int64) error
	}

	txManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
)

type storage struct {
	reservations  reservationStore
	changeLogs    changeLogStore
	registrations registrationStore
	records       recordStore
	schedules     scheduleStore
	txManager     txManager
	close         func()
}

// openStorage поднимает хранилище согласно storage.driver
func openStorage(cfg *config.Config, m *metrics.Metrics, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		store := memory.NewStore()
		schedules, registrations := cfg.Storage.Seed.ToDomain()
		store.Load(memory.Seed{Schedules: schedules, Registrations: registrations})
		log.Info("Using in-memory storage (seeded %d schedules, %d registrations)", len(schedules), len(registrations))

		return &storage{
			reservations:  store.Reservations(),
			changeLogs:    store.ChangeLogs(),
			registrations: store.Registrations(),
			records:       store.Records(),
			schedules:     store.Schedules(),
			txManager:     store.TxManager(),
			close:         func() {},
		}, nil
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if m == nil {
		return &storage{
			reservations:  reservationRepo.NewRepository(db),
			changeLogs:    changeLogRepo.NewRepository(db),
			registrations: registrationRepo.NewRepository(db),
			records:       recordRepo.NewRepository(db),
			schedules:     scheduleRepo.NewRepository(db),
			txManager:     simpletxmanager.NewTransactionManager(db),
			close:         func() { _ = db.Close() },
		}, nil
	}

	stopMetricsCh := make(chan struct{})
	wrappedDB := dbmetrics.WrapWithDefault(db, m, cfg.Metrics.ServiceName, stopMetricsCh)
	log.Info("Database metrics collection started")

	return &storage{
		reservations:  reservationRepo.NewRepository(wrappedDB),
		changeLogs:    changeLogRepo.NewRepository(wrappedDB),
		registrations: registrationRepo.NewRepository(wrappedDB),
		records:       recordRepo.NewRepository(wrappedDB),
		schedules:     scheduleRepo.NewRepository(wrappedDB),
		txManager:     txmanager.NewTransactionManager(wrappedDB),
		close: func() {
			close(stopMetricsCh)
			_ = db.Close()
		},
	}, nil
}
