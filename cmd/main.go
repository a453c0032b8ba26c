package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron"

	changeStatusHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/change_reservation_status"
	createReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/create_reservation"
	getAvailabilityHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_availability"
	getChangeLogHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_change_log"
	getMemberReservationsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_member_reservations"
	getPTRecordsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_pt_records"
	getReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_reservation"
	getTrainerReservationsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_trainer_reservations"
	getTrainerScheduleHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_trainer_schedule"
	runRemindersHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/run_reminders"
	updateTrainerScheduleHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/update_trainer_schedule"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/config"
	kafkaSink "github.com/m04kA/SMC-ReservationService/internal/infra/events/kafka"
	"github.com/m04kA/SMC-ReservationService/internal/infra/events/logsink"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/notificationservice"
	"github.com/m04kA/SMC-ReservationService/internal/service/availability"
	"github.com/m04kA/SMC-ReservationService/internal/service/events"
	"github.com/m04kA/SMC-ReservationService/internal/service/ledger"
	"github.com/m04kA/SMC-ReservationService/internal/service/lifecycle"
	"github.com/m04kA/SMC-ReservationService/internal/service/recurrence"
	reservationsService "github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	scheduleService "github.com/m04kA/SMC-ReservationService/internal/service/schedule"
	createReservationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
	getAvailabilityUC "github.com/m04kA/SMC-ReservationService/internal/usecase/get_availability"
	sendRemindersUC "github.com/m04kA/SMC-ReservationService/internal/usecase/send_reminders"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
)

const reminderRunTimeout = 5 * time.Minute

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-ReservationService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище: postgres или память
	store, err := openStorage(cfg, metricsCollector, log)
	if err != nil {
		log.Fatal("Failed to open storage: %v", err)
	}
	defer store.close()

	// Получатель событий
	sink, closeSink := newSink(cfg, log)
	defer closeSink()
	emitter := events.NewEmitter(sink, metricsCollector, log, time.Duration(cfg.Events.PublishTimeout)*time.Second)

	// Инициализируем сервисы
	availabilitySvc := availability.NewService(store.schedules, store.reservations, cfg.Reservations.SlotMinutes, log)
	expander := recurrence.NewExpander(availabilitySvc, store.reservations, store.changeLogs, log)
	sessionLedger := ledger.NewLedger(store.registrations, log)
	lifecycleSvc := lifecycle.NewService(
		store.reservations,
		store.changeLogs,
		store.records,
		sessionLedger,
		emitter,
		store.txManager,
		metricsCollector,
		log,
		lifecycle.Options{
			NotifyOnPendingCancel: cfg.Lifecycle.NotifyOnPendingCancel,
			MaxDurationMinutes:    cfg.Reservations.MaxDurationMinutes,
		},
	)
	reservationsSvc := reservationsService.NewService(store.reservations, store.changeLogs, store.records, log)
	scheduleSvc := scheduleService.NewService(store.schedules, log)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		store.reservations,
		store.changeLogs,
		store.registrations,
		availabilitySvc,
		expander,
		emitter,
		store.txManager,
		metricsCollector,
		log,
		createReservationUC.Options{
			MinDurationMinutes: cfg.Reservations.MinDurationMinutes,
			MaxDurationMinutes: cfg.Reservations.MaxDurationMinutes,
		},
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(availabilitySvc, log)
	sendRemindersUseCase := sendRemindersUC.NewUseCase(store.reservations, emitter, log)

	// Напоминания о завтрашних занятиях
	if cfg.Reminders.Enabled {
		scheduler := cron.New()
		err := scheduler.AddFunc(cfg.Reminders.Cron, func() {
			ctx, cancel := context.WithTimeout(context.Background(), reminderRunTimeout)
			defer cancel()
			if _, err := sendRemindersUseCase.Execute(ctx, nil); err != nil {
				log.Error("Reminders run failed: %v", err)
			}
		})
		if err != nil {
			log.Fatal("Failed to schedule reminders: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
		log.Info("Reminders scheduled (%s)", cfg.Reminders.Cron)
	}

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	getChangeLog := getChangeLogHandler.NewHandler(reservationsSvc, log)
	getMemberReservations := getMemberReservationsHandler.NewHandler(reservationsSvc, log)
	getTrainerReservations := getTrainerReservationsHandler.NewHandler(reservationsSvc, log)
	getPTRecords := getPTRecordsHandler.NewHandler(reservationsSvc, log)
	getTrainerSchedule := getTrainerScheduleHandler.NewHandler(scheduleSvc, log)
	updateTrainerSchedule := updateTrainerScheduleHandler.NewHandler(scheduleSvc, log)
	changeStatus := changeStatusHandler.NewHandler(lifecycleSvc, log)
	runReminders := runRemindersHandler.NewHandler(sendRemindersUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (чтение)
	// ============================================================

	api.HandleFunc("/trainers/{trainerId}/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/trainers/{trainerId}/schedule", getTrainerSchedule.Handle).Methods(http.MethodGet)
	api.HandleFunc("/trainers/{trainerId}/reservations", getTrainerReservations.Handle).Methods(http.MethodGet)
	api.HandleFunc("/members/{memberId}/reservations", getMemberReservations.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{reservationId}/changelog", getChangeLog.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{reservationId}/record", getPTRecords.ByReservation).Methods(http.MethodGet)
	api.HandleFunc("/trainers/{trainerId}/records", getPTRecords.ByTrainer).Methods(http.MethodGet)
	api.HandleFunc("/members/{memberId}/records", getPTRecords.ByMember).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Actor-ID и X-Actor-Role)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}/confirm", changeStatus.Confirm).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/reject", changeStatus.Reject).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/cancel", changeStatus.Cancel).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/no-show", changeStatus.MarkNoShow).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/complete", changeStatus.Complete).Methods(http.MethodPost)

	// --- Расписание тренера ---
	protected.HandleFunc("/trainers/{trainerId}/schedule/weekly", updateTrainerSchedule.UpsertWeekly).Methods(http.MethodPut)
	protected.HandleFunc("/trainers/{trainerId}/blocked-intervals", updateTrainerSchedule.AddBlocked).Methods(http.MethodPost)
	protected.HandleFunc("/trainers/{trainerId}/blocked-intervals/{intervalId}", updateTrainerSchedule.DeleteBlocked).Methods(http.MethodDelete)

	// --- Администрирование ---
	protected.HandleFunc("/reminders/run", runReminders.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

// newSink выбирает транспорт событий согласно events.sink
func newSink(cfg *config.Config, log *logger.Logger) (events.Sink, func()) {
	switch cfg.Events.Sink {
	case config.SinkKafka:
		publisher := kafkaSink.NewPublisher(cfg.Events.Kafka.Brokers, cfg.Events.Kafka.Topic)
		log.Info("Events are published to Kafka topic %s (brokers=%v)", cfg.Events.Kafka.Topic, cfg.Events.Kafka.Brokers)
		return publisher, func() {
			if err := publisher.Close(); err != nil {
				log.Error("Failed to close Kafka publisher: %v", err)
			}
		}
	case config.SinkHTTP:
		client := notificationservice.NewClient(
			cfg.Events.NotificationService.URL,
			time.Duration(cfg.Events.NotificationService.Timeout)*time.Second,
			log,
		)
		log.Info("Events are sent to NotificationService at %s", cfg.Events.NotificationService.URL)
		return client, func() {}
	default:
		log.Info("Events are written to the service log")
		return logsink.New(log), func() {}
	}
}
