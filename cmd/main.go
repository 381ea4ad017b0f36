package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	createBookingHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/get_booking"
	getBookingCommunicationsHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/get_booking_communications"
	listBookingsHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/list_bookings"
	"github.com/m04kA/SMC-ClinicBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicBooking/internal/config"
	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/internal/jobs/reminders"
	bookingsService "github.com/m04kA/SMC-ClinicBooking/internal/service/bookings"
	calendarService "github.com/m04kA/SMC-ClinicBooking/internal/service/calendar"
	communicationsService "github.com/m04kA/SMC-ClinicBooking/internal/service/communications"
	createBookingUC "github.com/m04kA/SMC-ClinicBooking/internal/usecase/create_booking"
	searchSlotsUC "github.com/m04kA/SMC-ClinicBooking/internal/usecase/search_slots"
	"github.com/m04kA/SMC-ClinicBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicBooking/pkg/logger"
	"github.com/m04kA/SMC-ClinicBooking/pkg/metrics"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
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

	log.Info("Starting SMC-ClinicBooking...")
	log.Info("Configuration loaded from %s (storage=%s)", configPath, cfg.Storage.Driver)

	clinicLocation, err := cfg.Scheduling.Location()
	if err != nil {
		log.Fatal("Failed to load clinic timezone: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем хранилища выбранного драйвера
	var store *backend

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		configurePool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime)

		// Проверяем соединение
		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		var wrappedDB *dbmetrics.DB
		if cfg.Metrics.Enabled {
			// Запускаем сбор метрик connection pool
			wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
			log.Info("Database metrics collection started")
		} else {
			wrappedDB = dbmetrics.Wrap(db)
		}

		store = newPostgresBackend(wrappedDB, wrappedDB)

	case config.DriverMemory:
		store = newMemoryBackend()
		log.Warn("In-memory storage is used, data will be lost on restart")
	}

	// nil *metrics.Metrics нельзя передавать как интерфейс
	var (
		outcomeRecorder  createBookingUC.OutcomeRecorder
		dispatchRecorder communicationsService.DispatchRecorder
	)
	if metricsCollector != nil {
		outcomeRecorder = metricsCollector
		dispatchRecorder = metricsCollector
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(store.ledger, log)
	communicationSvc := communicationsService.NewService(store.communications, clinicLocation, dispatchRecorder, log)
	calendarSvc := calendarService.NewService(store.providers, store.slots, store.txManager, log)

	// Заполняем демо-календари
	if cfg.Seed.Enabled {
		seedReqs := make([]*calendarService.SeedRequest, 0, len(cfg.Seed.Providers))
		today := time.Now().In(clinicLocation)
		for _, p := range cfg.Seed.Providers {
			seedReqs = append(seedReqs, &calendarService.SeedRequest{
				Provider: domain.Provider{
					ID:        p.ID,
					Name:      p.Name,
					Specialty: p.Specialty,
					Location:  p.Location,
				},
				From:         time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC),
				Days:         cfg.Seed.Days,
				DayStart:     cfg.Seed.DayStart,
				DayEnd:       cfg.Seed.DayEnd,
				SkipWeekends: cfg.Seed.SkipWeekends,
			})
		}

		total, err := seedCalendars(context.Background(), calendarSvc, seedReqs)
		if err != nil {
			log.Fatal("Failed to seed calendars: %v", err)
		}
		log.Info("Demo calendars seeded: providers=%d, slots=%d", len(seedReqs), total)
	}

	// Инициализируем use cases
	searchSlotsUseCase := searchSlotsUC.NewUseCase(store.slots, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		store.slots,
		store.ledger,
		store.providers,
		store.txManager,
		outcomeRecorder,
		log,
	)

	// Запускаем рассылку напоминаний
	var reminderWorker *reminders.Worker
	if cfg.Reminders.Enabled {
		reminderWorker = reminders.NewWorker(communicationSvc, cfg.Reminders.Schedule, cfg.Reminders.BatchSize, log)
		reminderWorker.Start(context.Background())
	}

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, communicationSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(searchSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBookingCommunications := getBookingCommunicationsHandler.NewHandler(bookingSvc, communicationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recovery(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Поиск ---
	api.HandleFunc("/providers/{providerId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/communications", getBookingCommunications.Handle).Methods(http.MethodGet)

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

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if reminderWorker != nil {
		reminderWorker.Stop()
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

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
