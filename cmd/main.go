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
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/feelmetown/FMT-BookingService/internal/api/handlers/cancel_booking"
	getAvailabilityHandler "github.com/feelmetown/FMT-BookingService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/feelmetown/FMT-BookingService/internal/api/handlers/get_booking"
	getCustomerBookingsHandler "github.com/feelmetown/FMT-BookingService/internal/api/handlers/get_customer_bookings"
	getVenueBookingsHandler "github.com/feelmetown/FMT-BookingService/internal/api/handlers/get_venue_bookings"
	reserveSlotHandler "github.com/feelmetown/FMT-BookingService/internal/api/handlers/reserve_slot"
	resumeBookingHandler "github.com/feelmetown/FMT-BookingService/internal/api/handlers/resume_booking"
	subscribeEventsHandler "github.com/feelmetown/FMT-BookingService/internal/api/handlers/subscribe_events"
	syncSignalHandler "github.com/feelmetown/FMT-BookingService/internal/api/handlers/sync_signal"
	"github.com/feelmetown/FMT-BookingService/internal/api/middleware"
	"github.com/feelmetown/FMT-BookingService/internal/config"
	"github.com/feelmetown/FMT-BookingService/internal/infra/notify"
	bookingRepo "github.com/feelmetown/FMT-BookingService/internal/infra/storage/booking"
	venueCatalogClient "github.com/feelmetown/FMT-BookingService/internal/integrations/venuecatalog"
	bookingsService "github.com/feelmetown/FMT-BookingService/internal/service/bookings"
	cancelBookingUC "github.com/feelmetown/FMT-BookingService/internal/usecase/cancel_booking"
	getAvailabilityUC "github.com/feelmetown/FMT-BookingService/internal/usecase/get_availability"
	reserveSlotUC "github.com/feelmetown/FMT-BookingService/internal/usecase/reserve_slot"
	resumeBookingUC "github.com/feelmetown/FMT-BookingService/internal/usecase/resume_booking"
	"github.com/feelmetown/FMT-BookingService/pkg/dbmetrics"
	"github.com/feelmetown/FMT-BookingService/pkg/keymutex"
	"github.com/feelmetown/FMT-BookingService/pkg/logger"
	"github.com/feelmetown/FMT-BookingService/pkg/metrics"
	"github.com/feelmetown/FMT-BookingService/pkg/simpletxmanager"
	"github.com/feelmetown/FMT-BookingService/pkg/txmanager"
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

	log.Info("Starting FMT-BookingService...")
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

	// Подключаемся к Redis (транспорт шины уведомлений)
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		pingCancel()
		log.Fatal("Failed to ping redis: %v", err)
	}
	pingCancel()
	log.Info("Successfully connected to redis (addr=%s)", cfg.Redis.Addr)

	// Инициализируем клиент внешнего каталога площадок
	catalogClient := venueCatalogClient.NewClient(
		cfg.VenueCatalog.URL,
		time.Duration(cfg.VenueCatalog.Timeout)*time.Second,
		log,
	)
	log.Info("Venue catalog client initialized (url=%s, timeout=%ds)",
		cfg.VenueCatalog.URL, cfg.VenueCatalog.Timeout)

	// Инициализируем репозиторий и transaction manager (с метриками или без)
	var bookingRepository *bookingRepo.Repository

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем шину уведомлений об изменении слотов
	hub := notify.NewHub()
	var busMetrics notify.Metrics
	if cfg.Metrics.Enabled {
		busMetrics = metricsCollector
	}
	bus := notify.NewBus(rdb, hub, log, busMetrics)

	busCtx, busCancel := context.WithCancel(context.Background())
	defer busCancel()
	go func() {
		if err := bus.Run(busCtx); err != nil && busCtx.Err() == nil {
			log.Error("Notify bus listener stopped unexpectedly: %v", err)
		}
	}()

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)

	// Инициализируем use cases
	reserveSlotUseCase := reserveSlotUC.NewUseCase(
		bookingRepository,
		catalogClient,
		txMgr,
		keymutex.New(),
		bus,
		&reserveSlotUC.RealTimeProvider{},
		log,
	)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		catalogClient,
		log,
	)

	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		bus,
		&cancelBookingUC.RealTimeProvider{},
		log,
	)

	resumeBookingUseCase := resumeBookingUC.NewUseCase(
		bookingRepository,
		log,
		resumeBookingUC.Options{
			MaxAttempts:    cfg.Resume.MaxAttempts,
			BackoffStep:    time.Duration(cfg.Resume.BackoffSeconds) * time.Second,
			AttemptTimeout: time.Duration(cfg.Resume.AttemptTimeout) * time.Second,
		},
	)

	// Инициализируем handlers
	reserveSlot := reserveSlotHandler.NewHandler(reserveSlotUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	resumeBooking := resumeBookingHandler.NewHandler(resumeBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	getVenueBookings := getVenueBookingsHandler.NewHandler(bookingSvc, log)
	subscribeEvents := subscribeEventsHandler.NewHandler(hub, log)
	syncSignal := syncSignalHandler.NewHandler(bus, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	r.Use(middleware.Recovery(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Доступность слотов площадки на дату
	api.HandleFunc("/venues/{venueId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Дневная сводка бронирований площадки
	api.HandleFunc("/venues/{venueId}/bookings", getVenueBookings.Handle).Methods(http.MethodGet)

	// Бронирование слота
	api.HandleFunc("/bookings", reserveSlot.Handle).Methods(http.MethodPost)

	// Возобновление незавершённого бронирования по ссылке из письма
	api.HandleFunc("/bookings/{bookingRef}/resume", resumeBooking.Handle).Methods(http.MethodGet)

	// Получение бронирования по номеру
	api.HandleFunc("/bookings/{bookingRef}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	api.HandleFunc("/bookings/{bookingRef}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	api.HandleFunc("/customers/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

	// SSE-поток сигналов об изменении слотов
	api.HandleFunc("/events", subscribeEvents.Handle).Methods(http.MethodGet)

	// Широковещательный сигнал для внутренних систем
	r.HandleFunc("/internal/events/sync", syncSignal.Handle).Methods(http.MethodPost)

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

	// Останавливаем слушатель шины и сбор метрик connection pool
	busCancel()
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
