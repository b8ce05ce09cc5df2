package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	cancelBookingHandler "github.com/m04kA/SMC-StudioScheduler/internal/api/handlers/cancel_booking"
	createBlockHandler "github.com/m04kA/SMC-StudioScheduler/internal/api/handlers/create_block"
	createBookingHandler "github.com/m04kA/SMC-StudioScheduler/internal/api/handlers/create_booking"
	deleteBlockHandler "github.com/m04kA/SMC-StudioScheduler/internal/api/handlers/delete_block"
	getAvailabilityHandler "github.com/m04kA/SMC-StudioScheduler/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/m04kA/SMC-StudioScheduler/internal/api/handlers/get_available_slots"
	getProjectHandler "github.com/m04kA/SMC-StudioScheduler/internal/api/handlers/get_project"
	rescheduleBookingHandler "github.com/m04kA/SMC-StudioScheduler/internal/api/handlers/reschedule_booking"
	updateAvailabilityHandler "github.com/m04kA/SMC-StudioScheduler/internal/api/handlers/update_availability"
	"github.com/m04kA/SMC-StudioScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-StudioScheduler/internal/config"
	"github.com/m04kA/SMC-StudioScheduler/internal/domain"
	"github.com/m04kA/SMC-StudioScheduler/internal/infra/lock"
	availabilityRepo "github.com/m04kA/SMC-StudioScheduler/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-StudioScheduler/internal/infra/storage/booking"
	commitmentRepo "github.com/m04kA/SMC-StudioScheduler/internal/infra/storage/commitment"
	dependentsRepo "github.com/m04kA/SMC-StudioScheduler/internal/infra/storage/dependents"
	projectRepo "github.com/m04kA/SMC-StudioScheduler/internal/infra/storage/project"
	"github.com/m04kA/SMC-StudioScheduler/internal/infra/storage/sequence"
	sessionRepo "github.com/m04kA/SMC-StudioScheduler/internal/infra/storage/session"
	sessiontypeRepo "github.com/m04kA/SMC-StudioScheduler/internal/infra/storage/sessiontype"
	"github.com/m04kA/SMC-StudioScheduler/internal/integrations/calendar"
	"github.com/m04kA/SMC-StudioScheduler/internal/integrations/notifier"
	availabilityService "github.com/m04kA/SMC-StudioScheduler/internal/service/availability"
	projectsService "github.com/m04kA/SMC-StudioScheduler/internal/service/projects"
	cancelBookingUC "github.com/m04kA/SMC-StudioScheduler/internal/usecase/cancel_booking"
	createBookingUC "github.com/m04kA/SMC-StudioScheduler/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-StudioScheduler/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/m04kA/SMC-StudioScheduler/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-StudioScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioScheduler/pkg/logger"
	"github.com/m04kA/SMC-StudioScheduler/pkg/metrics"
	"github.com/m04kA/SMC-StudioScheduler/pkg/tracing"
	"github.com/m04kA/SMC-StudioScheduler/pkg/txmanager"
)

// calendarAdapter объединение контрактов календаря всех use cases
type calendarAdapter interface {
	CheckAvailability(ctx context.Context, start, end time.Time) (bool, error)
	CreateEvent(ctx context.Context, meta calendar.EventMeta) (string, error)
	DeleteEvent(ctx context.Context, eventID string) error
}

type slotLocker interface {
	Acquire(ctx context.Context, interval domain.Interval) (lock.Lease, error)
}

func main() {
	configPath := "config.toml"
	if p := os.Getenv("SMC_CONFIG"); p != "" {
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

	log.Info("Starting SMC-StudioScheduler...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Scheduling.Location()
	if err != nil {
		log.Fatal("Invalid studio timezone: %v", err)
	}

	// Инициализируем метрики (если включены). nil коллектор безопасен для всех потребителей
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Трассировка
	shutdownTracing, err := tracing.Setup(context.Background(), tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRatio:  cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal("Failed to setup tracing: %v", err)
	}
	if cfg.Tracing.Enabled {
		log.Info("Tracing enabled, exporting to %s", cfg.Tracing.OTLPEndpoint)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	projectRepository := projectRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	sessionRepository := sessionRepo.NewRepository(wrappedDB)
	commitmentRepository := commitmentRepo.NewRepository(wrappedDB)
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)
	serviceRepository := sessiontypeRepo.NewRepository(wrappedDB)
	dependentsRepository := dependentsRepo.NewRepository(wrappedDB)
	allocator := sequence.NewAllocator(wrappedDB, cfg.Sequence.Name, cfg.Sequence.Timeout())

	// Внешний календарь
	var calendarClient calendarAdapter = calendar.Disabled{}
	if cfg.Calendar.URL != "" {
		calendarClient = calendar.NewClient(
			cfg.Calendar.URL,
			cfg.Calendar.APIKey,
			cfg.Calendar.CalendarID,
			cfg.Calendar.Timeout(),
			log,
		)
		log.Info("Calendar integration enabled (url=%s, timeout=%s)", cfg.Calendar.URL, cfg.Calendar.Timeout())
	} else {
		log.Warn("Calendar integration disabled: calendar.url is empty")
	}

	// Блокировка слотов в Redis
	var locker slotLocker = lock.Noop{}
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			// Блокировка best-effort: сервис работает и без Redis
			log.Warn("Redis ping failed, slot locks will fail open: %v", err)
		}
		locker = lock.NewSlotLocker(rdb, cfg.Redis.LockTTL(), cfg.Redis.KeyPrefix, cfg.Scheduling.GranularityMinutes)
		log.Info("Slot locking enabled (redis=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.LockTTL())
	}

	// Уведомления в Kafka
	publisher := notifier.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.TopicPrefix, cfg.Kafka.Timeout(), log)

	// Инициализируем сервисы
	projectSvc := projectsService.NewService(
		projectRepository,
		bookingRepository,
		sessionRepository,
		txMgr,
		log,
	)
	availabilitySvc := availabilityService.NewService(
		availabilityRepository,
		commitmentRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		serviceRepository,
		availabilityRepository,
		commitmentRepository,
		metricsCollector,
		getAvailableSlotsUC.Options{
			GranularityMinutes: cfg.Scheduling.GranularityMinutes,
			ApplyBreakWindow:   cfg.Scheduling.ApplyBreakWindow,
		},
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		serviceRepository,
		projectRepository,
		bookingRepository,
		sessionRepository,
		commitmentRepository,
		availabilityRepository,
		allocator,
		calendarClient,
		locker,
		publisher,
		txMgr,
		metricsCollector,
		log,
	)

	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		serviceRepository,
		projectRepository,
		bookingRepository,
		sessionRepository,
		commitmentRepository,
		availabilityRepository,
		calendarClient,
		locker,
		publisher,
		txMgr,
		metricsCollector,
		log,
	)

	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		projectRepository,
		bookingRepository,
		sessionRepository,
		dependentsRepository,
		calendarClient,
		publisher,
		txMgr,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, location, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, location, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, location, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getProject := getProjectHandler.NewHandler(projectSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	updateAvailability := updateAvailabilityHandler.NewHandler(availabilitySvc, log)
	createBlock := createBlockHandler.NewHandler(availabilitySvc, log)
	deleteBlock := deleteBlockHandler.NewHandler(availabilitySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recovery(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Слоты ---
	api.HandleFunc("/services/{serviceId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Бронирование проектов ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/projects/{projectId}", getProject.Handle).Methods(http.MethodGet)
	api.HandleFunc("/projects/{projectId}/schedule", rescheduleBooking.Handle).Methods(http.MethodPut)
	api.HandleFunc("/projects/{projectId}", cancelBooking.Handle).Methods(http.MethodDelete)

	// --- Расписание студии ---
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/{day}", updateAvailability.Handle).Methods(http.MethodPut)
	api.HandleFunc("/blocks", createBlock.Handle).Methods(http.MethodPost)
	api.HandleFunc("/blocks/{blockId}", deleteBlock.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      otelhttp.NewHandler(r, cfg.Metrics.ServiceName),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

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

	// Дожидаемся фоновых уведомлений
	if err := publisher.Close(); err != nil {
		log.Error("Failed to close notification publisher: %v", err)
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
}
