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

	cancelBookingHandler "github.com/m04kA/SMC-ChaletBookingService/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/m04kA/SMC-ChaletBookingService/internal/api/handlers/check_availability"
	confirmBookingHandler "github.com/m04kA/SMC-ChaletBookingService/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/m04kA/SMC-ChaletBookingService/internal/api/handlers/create_booking"
	getBookedDatesHandler "github.com/m04kA/SMC-ChaletBookingService/internal/api/handlers/get_booked_dates"
	getBookingHandler "github.com/m04kA/SMC-ChaletBookingService/internal/api/handlers/get_booking"
	listBookingsHandler "github.com/m04kA/SMC-ChaletBookingService/internal/api/handlers/list_bookings"
	runAutoCancelHandler "github.com/m04kA/SMC-ChaletBookingService/internal/api/handlers/run_auto_cancel_sweep"
	suggestDepositHandler "github.com/m04kA/SMC-ChaletBookingService/internal/api/handlers/suggest_deposit"
	"github.com/m04kA/SMC-ChaletBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-ChaletBookingService/internal/config"
	"github.com/m04kA/SMC-ChaletBookingService/internal/domain"
	"github.com/m04kA/SMC-ChaletBookingService/internal/infra/events"
	"github.com/m04kA/SMC-ChaletBookingService/internal/infra/lock"
	bookingRepo "github.com/m04kA/SMC-ChaletBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ChaletBookingService/internal/infra/storage/memory"
	chaletServiceClient "github.com/m04kA/SMC-ChaletBookingService/internal/integrations/chaletservice"
	availabilityService "github.com/m04kA/SMC-ChaletBookingService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-ChaletBookingService/internal/service/bookings"
	autoCancelUC "github.com/m04kA/SMC-ChaletBookingService/internal/usecase/auto_cancel"
	createBookingUC "github.com/m04kA/SMC-ChaletBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ChaletBookingService/internal/worker/autocancel"
	"github.com/m04kA/SMC-ChaletBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ChaletBookingService/pkg/logger"
	"github.com/m04kA/SMC-ChaletBookingService/pkg/metrics"
	"github.com/m04kA/SMC-ChaletBookingService/pkg/txmanager"
)

// bookingStore реестр бронирований: PostgreSQL или память
type bookingStore interface {
	createBookingUC.BookingRepository
	autoCancelUC.BookingRepository
	availabilityService.BookingRepository
	bookingsService.BookingRepository
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting SMC-ChaletBookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Реестр бронирований и менеджер транзакций
	var (
		store bookingStore
		txMgr createBookingUC.TransactionManager
	)

	switch cfg.Database.Driver {
	case config.DriverMemory:
		store = memory.NewRepository()
		txMgr = memory.NewTxManager()
		log.Warn("Using in-memory booking registry, data is lost on restart")

	default:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		var wrappedDB *dbmetrics.DB
		if cfg.Metrics.Enabled {
			wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
			log.Info("Database metrics collection started")
		} else {
			wrappedDB = dbmetrics.Wrap(db, nil)
		}

		store = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	}

	// Каталог шале
	chaletClient := chaletServiceClient.NewClient(
		cfg.ChaletService.URL,
		time.Duration(cfg.ChaletService.Timeout)*time.Second,
		log,
	)
	log.Info("Chalet catalog client initialized (url=%s, timeout=%ds)", cfg.ChaletService.URL, cfg.ChaletService.Timeout)

	// События смены статуса
	var publisher interface {
		createBookingUC.EventPublisher
		Close() error
	} = events.NopPublisher{}

	if cfg.Kafka.Enabled {
		publisher = events.NewKafkaPublisher(events.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic), cfg.Kafka.Producer)
		log.Info("Kafka publisher enabled (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("Failed to close event publisher: %v", err)
		}
	}()

	// Блокировка автоотмены между экземплярами
	var locker autocancel.Locker = lock.NopLocker{}
	if cfg.Redis.Enabled {
		rdb := lock.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer rdb.Close()
		locker = lock.NewRedisLocker(rdb, cfg.Sweeper.LockKey, time.Duration(cfg.Sweeper.LockTTLSeconds)*time.Second)
		log.Info("Redis sweep lock enabled (addr=%s, key=%s)", cfg.Redis.Addr, cfg.Sweeper.LockKey)
	}

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(store, log)
	bookingSvc := bookingsService.NewService(
		store,
		chaletClient,
		publisher,
		metricsCollector,
		bookingsService.Config{CommissionRate: cfg.Booking.CommissionRate},
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(store, txMgr, publisher, metricsCollector, log)
	autoCancelUseCase := autoCancelUC.NewUseCase(store, publisher, metricsCollector, log)

	// Фоновая автоотмена
	workerCtx, stopWorker := context.WithCancel(context.Background())
	workerDone := make(chan struct{})
	if cfg.Sweeper.Enabled {
		runner := autocancel.NewRunner(
			autoCancelUseCase,
			locker,
			time.Duration(cfg.Sweeper.IntervalSeconds)*time.Second,
			log,
		)
		go func() {
			defer close(workerDone)
			runner.Run(workerCtx)
		}()
		log.Info("Auto-cancel sweeper started (interval=%ds)", cfg.Sweeper.IntervalSeconds)
	} else {
		close(workerDone)
	}

	// Инициализируем handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(availabilitySvc, log)
	getBookedDates := getBookedDatesHandler.NewHandler(availabilitySvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	suggestDeposit := suggestDepositHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	runAutoCancel := runAutoCancelHandler.NewHandler(autoCancelUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (гость, без аутентификации)
	// ============================================================

	api.HandleFunc("/chalets/{chaletId}/availability", checkAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/chalets/{chaletId}/booked-dates", getBookedDates.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (X-User-ID и X-User-Role: owner или admin)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)
	protected.Use(middleware.RequireRole(domain.RoleOwner, domain.RoleAdmin))

	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/deposit-suggestion", suggestDeposit.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// --- Администрирование ---
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth)
	admin.Use(middleware.RequireRole(domain.RoleAdmin))

	admin.HandleFunc("/sweeps", runAutoCancel.Handle).Methods(http.MethodPost)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем автоотмену и ждём текущий прогон
	stopWorker()
	select {
	case <-workerDone:
	case <-shutdownCtx.Done():
		log.Warn("Auto-cancel sweeper did not stop in time")
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
