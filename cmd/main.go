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

	addCustomSlotHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/add_custom_slot"
	createDayHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/create_day"
	deleteDayHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/delete_day"
	deleteSlotHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/delete_slot"
	getDaySlotsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_day_slots"
	getMonthGridHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_month_grid"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/config"
	calendarCache "github.com/m04kA/SMC-AvailabilityService/internal/infra/cache/calendar"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/events"
	availabilityRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/availability"
	availabilityService "github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
	addCustomSlotUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/add_custom_slot"
	createDayUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/create_day"
	getDaySlotsUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_day_slots"
	getMonthGridUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_month_grid"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
)

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

	log.Info("Starting SMC-AvailabilityService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
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

	// Инициализируем репозиторий и transaction manager (с метриками или без)
	var repository *availabilityRepo.Repository

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		repository = availabilityRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		repository = availabilityRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем кэш календарных сеток (опционально)
	var gridCache *calendarCache.Cache
	if cfg.Cache.Enabled {
		gridCache, err = calendarCache.NewCache(
			cfg.Cache.Addr,
			cfg.Cache.Password,
			cfg.Cache.DB,
			time.Duration(cfg.Cache.TTLSeconds)*time.Second,
		)
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		log.Info("Calendar grid cache enabled (addr=%s, ttl=%ds)", cfg.Cache.Addr, cfg.Cache.TTLSeconds)
	}

	// Инициализируем публикацию событий (опционально)
	var publisher *events.Publisher
	if cfg.Events.Enabled {
		publisher, err = events.NewPublisher(cfg.Events.URL, cfg.Events.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to rabbitmq: %v", err)
		}
		defer publisher.Close()
		log.Info("Event publishing enabled (exchange=%s)", cfg.Events.Exchange)
	}

	// Инициализируем сервис удаления
	availabilitySvc := availabilityService.NewService(repository, txMgr, log)

	// Инициализируем use cases
	createDayUseCase := createDayUC.NewUseCase(
		repository,
		txMgr,
		cfg.Scheduling.DefaultTimezone,
		cfg.Scheduling.DefaultSlotDurationMinutes,
		log,
	)
	addCustomSlotUseCase := addCustomSlotUC.NewUseCase(
		repository,
		txMgr,
		cfg.Scheduling.DefaultTimezone,
		log,
	)
	getDaySlotsUseCase := getDaySlotsUC.NewUseCase(
		repository,
		cfg.Scheduling.DefaultTimezone,
		log,
	)
	getMonthGridUseCase := getMonthGridUC.NewUseCase(
		repository,
		cfg.Scheduling.DefaultTimezone,
		log,
	)

	// Подключаем кэш и события туда, где они нужны
	if gridCache != nil {
		getMonthGridUseCase.SetCache(gridCache)
		createDayUseCase.SetCache(gridCache)
		addCustomSlotUseCase.SetCache(gridCache)
		availabilitySvc.SetCache(gridCache)
	}
	if publisher != nil {
		createDayUseCase.SetPublisher(publisher)
		addCustomSlotUseCase.SetPublisher(publisher)
		availabilitySvc.SetPublisher(publisher)
	}

	// Инициализируем handlers
	createDay := createDayHandler.NewHandler(createDayUseCase, log)
	addCustomSlot := addCustomSlotHandler.NewHandler(addCustomSlotUseCase, log)
	deleteDay := deleteDayHandler.NewHandler(availabilitySvc, log)
	deleteSlot := deleteSlotHandler.NewHandler(availabilitySvc, log)
	getDaySlots := getDaySlotsHandler.NewHandler(getDaySlotsUseCase, log)
	getMonthGrid := getMonthGridHandler.NewHandler(getMonthGridUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Календарная сетка месяца
	api.HandleFunc("/owners/{ownerId}/calendar", getMonthGrid.Handle).Methods(http.MethodGet)

	// Слоты одного дня (по дате или dayId)
	api.HandleFunc("/owners/{ownerId}/slots", getDaySlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Создание (или пересоздание) дней доступности
	protected.HandleFunc("/owners/{ownerId}/days", createDay.Handle).Methods(http.MethodPost)

	// Ручное добавление слота в существующий день
	protected.HandleFunc("/days/{dayId}/slots", addCustomSlot.Handle).Methods(http.MethodPost)

	// Удаление дня со всеми слотами
	protected.HandleFunc("/days/{dayId}", deleteDay.Handle).Methods(http.MethodDelete)

	// Удаление одного слота
	protected.HandleFunc("/slots/{slotId}", deleteSlot.Handle).Methods(http.MethodDelete)

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

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
