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

	cancelBookingHandler "github.com/salonbook/SalonBook-BookingService/internal/api/handlers/cancel_booking"
	completeBookingHandler "github.com/salonbook/SalonBook-BookingService/internal/api/handlers/complete_booking"
	getBookingHandler "github.com/salonbook/SalonBook-BookingService/internal/api/handlers/get_booking"
	getOccupiedSlotsHandler "github.com/salonbook/SalonBook-BookingService/internal/api/handlers/get_occupied_slots"
	getSalonHandler "github.com/salonbook/SalonBook-BookingService/internal/api/handlers/get_salon"
	getSalonBookingsHandler "github.com/salonbook/SalonBook-BookingService/internal/api/handlers/get_salon_bookings"
	getUserBookingsHandler "github.com/salonbook/SalonBook-BookingService/internal/api/handlers/get_user_bookings"
	listSalonServicesHandler "github.com/salonbook/SalonBook-BookingService/internal/api/handlers/list_salon_services"
	listSalonsHandler "github.com/salonbook/SalonBook-BookingService/internal/api/handlers/list_salons"
	markNoShowHandler "github.com/salonbook/SalonBook-BookingService/internal/api/handlers/mark_no_show"
	placeBookingHandler "github.com/salonbook/SalonBook-BookingService/internal/api/handlers/place_booking"
	"github.com/salonbook/SalonBook-BookingService/internal/api/middleware"
	"github.com/salonbook/SalonBook-BookingService/internal/config"
	"github.com/salonbook/SalonBook-BookingService/internal/domain"
	bookingRepo "github.com/salonbook/SalonBook-BookingService/internal/infra/storage/booking"
	salonRepo "github.com/salonbook/SalonBook-BookingService/internal/infra/storage/salon"
	serviceRepo "github.com/salonbook/SalonBook-BookingService/internal/infra/storage/service"
	trustServiceClient "github.com/salonbook/SalonBook-BookingService/internal/integrations/trustservice"
	bookingsService "github.com/salonbook/SalonBook-BookingService/internal/service/bookings"
	salonsService "github.com/salonbook/SalonBook-BookingService/internal/service/salons"
	getOccupiedSlotsUC "github.com/salonbook/SalonBook-BookingService/internal/usecase/get_occupied_slots"
	placeBookingUC "github.com/salonbook/SalonBook-BookingService/internal/usecase/place_booking"
	"github.com/salonbook/SalonBook-BookingService/pkg/dbmetrics"
	"github.com/salonbook/SalonBook-BookingService/pkg/logger"
	"github.com/salonbook/SalonBook-BookingService/pkg/metrics"
	"github.com/salonbook/SalonBook-BookingService/pkg/simpletxmanager"
	"github.com/salonbook/SalonBook-BookingService/pkg/txmanager"
	"github.com/salonbook/SalonBook-BookingService/pkg/types"
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

	log.Info("Starting SalonBook-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Сетка слотов из конфигурации; значения уже прошли валидацию в config.Load
	openTime, _ := types.NewTimeStringFromString(cfg.Booking.OpenTime)
	closeTime, _ := types.NewTimeStringFromString(cfg.Booking.CloseTime)
	grid := domain.SlotGrid{
		OpenTime:    openTime,
		CloseTime:   closeTime,
		StepMinutes: cfg.Booking.SlotDurationMinutes,
	}

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

	// Инициализируем клиента TrustService
	trustClient := trustServiceClient.NewClient(
		cfg.TrustService.URL,
		time.Duration(cfg.TrustService.Timeout)*time.Second,
		log,
	)
	log.Info("TrustService client initialized (url=%s, timeout=%ds)",
		cfg.TrustService.URL, cfg.TrustService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		salonRepository   *salonRepo.Repository
		serviceRepository *serviceRepo.Repository
		txMgr             placeBookingUC.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		salonRepository = salonRepo.NewRepository(wrappedDB)
		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		salonRepository = salonRepo.NewRepository(db)
		serviceRepository = serviceRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		salonRepository,
		trustClient,
		log,
	)
	salonSvc := salonsService.NewService(
		salonRepository,
		serviceRepository,
		log,
	)

	// Инициализируем use cases
	placeBookingUseCase := placeBookingUC.NewUseCase(
		bookingRepository,
		salonRepository,
		serviceRepository,
		txMgr,
		grid,
		cfg.Booking.MaxActiveBookings,
		log,
	)

	getOccupiedSlotsUseCase := getOccupiedSlotsUC.NewUseCase(
		bookingRepository,
		salonRepository,
		grid,
		log,
	)

	// Инициализируем handlers
	placeBooking := placeBookingHandler.NewHandler(placeBookingUseCase, log)
	getOccupiedSlots := getOccupiedSlotsHandler.NewHandler(getOccupiedSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	completeBooking := completeBookingHandler.NewHandler(bookingSvc, log)
	markNoShow := markNoShowHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getSalonBookings := getSalonBookingsHandler.NewHandler(bookingSvc, log)
	listSalons := listSalonsHandler.NewHandler(salonSvc, log)
	getSalon := getSalonHandler.NewHandler(salonSvc, log)
	listSalonServices := listSalonServicesHandler.NewHandler(salonSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог салонов и услуг
	api.HandleFunc("/salons", listSalons.Handle).Methods(http.MethodGet)
	api.HandleFunc("/salons/{id}", getSalon.Handle).Methods(http.MethodGet)
	api.HandleFunc("/salons/{id}/services", listSalonServices.Handle).Methods(http.MethodGet)

	// Занятость слотов (клиент опрашивает периодически)
	api.HandleFunc("/salons/{id}/occupied-slots", getOccupiedSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", placeBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{id}", getBooking.Handle).Methods(http.MethodGet)

	// Жизненный цикл бронирования
	protected.HandleFunc("/bookings/{id}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{id}/complete", completeBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{id}/no-show", markNoShow.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{id}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Дашборд владельца салона ---
	protected.HandleFunc("/salons/{id}/bookings", getSalonBookings.Handle).Methods(http.MethodGet)

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
