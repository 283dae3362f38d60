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

	bookingStatsHandler "github.com/autotrack/garage-booking-service/internal/api/handlers/booking_stats"
	cancelBookingHandler "github.com/autotrack/garage-booking-service/internal/api/handlers/cancel_booking"
	completeBookingHandler "github.com/autotrack/garage-booking-service/internal/api/handlers/complete_booking"
	confirmBookingHandler "github.com/autotrack/garage-booking-service/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/autotrack/garage-booking-service/internal/api/handlers/create_booking"
	createReviewHandler "github.com/autotrack/garage-booking-service/internal/api/handlers/create_review"
	getAvailableSlotsHandler "github.com/autotrack/garage-booking-service/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/autotrack/garage-booking-service/internal/api/handlers/get_booking"
	getReviewHandler "github.com/autotrack/garage-booking-service/internal/api/handlers/get_review"
	listAvailabilityHandler "github.com/autotrack/garage-booking-service/internal/api/handlers/list_availability"
	listBookingsHandler "github.com/autotrack/garage-booking-service/internal/api/handlers/list_bookings"
	markNoShowHandler "github.com/autotrack/garage-booking-service/internal/api/handlers/mark_no_show"
	remindersHandler "github.com/autotrack/garage-booking-service/internal/api/handlers/reminders"
	startBookingHandler "github.com/autotrack/garage-booking-service/internal/api/handlers/start_booking"
	"github.com/autotrack/garage-booking-service/internal/api/middleware"
	"github.com/autotrack/garage-booking-service/internal/config"
	availabilityRepo "github.com/autotrack/garage-booking-service/internal/infra/storage/availability"
	bookingRepo "github.com/autotrack/garage-booking-service/internal/infra/storage/booking"
	reviewRepo "github.com/autotrack/garage-booking-service/internal/infra/storage/review"
	garageServiceClient "github.com/autotrack/garage-booking-service/internal/integrations/garageservice"
	notifyServiceClient "github.com/autotrack/garage-booking-service/internal/integrations/notifyservice"
	vehicleServiceClient "github.com/autotrack/garage-booking-service/internal/integrations/vehicleservice"
	availabilityService "github.com/autotrack/garage-booking-service/internal/service/availability"
	bookingsService "github.com/autotrack/garage-booking-service/internal/service/bookings"
	reviewsService "github.com/autotrack/garage-booking-service/internal/service/reviews"
	statsService "github.com/autotrack/garage-booking-service/internal/service/stats"
	createBookingUC "github.com/autotrack/garage-booking-service/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/autotrack/garage-booking-service/internal/usecase/get_available_slots"
	remindersWorker "github.com/autotrack/garage-booking-service/internal/worker/reminders"
	"github.com/autotrack/garage-booking-service/pkg/logger"
	"github.com/autotrack/garage-booking-service/pkg/metrics"
	"github.com/autotrack/garage-booking-service/pkg/txmanager"
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

	log.Info("Starting GarageBookingService...")

	// Инициализируем метрики
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)

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

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционных клиентов
	garageClient := garageServiceClient.NewClient(
		cfg.GarageService.URL,
		time.Duration(cfg.GarageService.Timeout)*time.Second,
		log,
	)
	vehicleClient := vehicleServiceClient.NewClient(
		cfg.VehicleService.URL,
		time.Duration(cfg.VehicleService.Timeout)*time.Second,
		log,
	)
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (GarageService=%s, VehicleService=%s, NotifyService=%s)",
		cfg.GarageService.URL, cfg.VehicleService.URL, cfg.NotifyService.URL)

	// Инициализируем репозитории и transaction manager
	bookingRepository := bookingRepo.NewRepository(db)
	availabilityRepository := availabilityRepo.NewRepository(db)
	reviewRepository := reviewRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, garageClient, notifyClient, log)
	reviewSvc := reviewsService.NewService(reviewRepository, bookingRepository, log)
	statsSvc := statsService.NewService(bookingRepository, reviewRepository, garageClient, log)
	availabilitySvc := availabilityService.NewService(availabilityRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		garageClient,
		vehicleClient,
		notifyClient,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, metricsCollector, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	listAvailability := listAvailabilityHandler.NewHandler(availabilitySvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	startBooking := startBookingHandler.NewHandler(bookingSvc, log)
	completeBooking := completeBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, metricsCollector, log)
	markNoShow := markNoShowHandler.NewHandler(bookingSvc, log)
	createReview := createReviewHandler.NewHandler(reviewSvc, log)
	getReview := getReviewHandler.NewHandler(reviewSvc, log)
	bookingStats := bookingStatsHandler.NewHandler(statsSvc, log)
	remindersAPI := remindersHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Внутренние endpoints для джобов рассылки, без пользовательской
	// аутентификации - доступ ограничен на уровне сети
	internal := r.PathPrefix("/internal").Subrouter()
	internal.HandleFunc("/bookings/reminders", remindersAPI.HandleListDue).Methods(http.MethodGet)
	internal.HandleFunc("/bookings/{bookingID}/reminder-sent", remindersAPI.HandleMarkSent).Methods(http.MethodPost)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Публичные маршруты (без аутентификации)
	api.HandleFunc("/garages/{garageID}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/garages/{garageID}/availability", listAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingID}/review", getReview.Handle).Methods(http.MethodGet)

	// Защищенные маршруты (требуют X-User-ID header)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/stats", bookingStats.HandleUserStats).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingID}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingID}/confirm", confirmBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingID}/start", startBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingID}/complete", completeBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingID}/cancel", cancelBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingID}/no-show", markNoShow.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingID}/review", createReview.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/garages/{garageID}/bookings/stats", bookingStats.HandleGarageStats).Methods(http.MethodGet)

	// Запускаем воркер напоминаний
	var worker *remindersWorker.Worker
	if cfg.Reminders.Enabled {
		worker = remindersWorker.NewWorker(bookingSvc, notifyClient, metricsCollector, cfg.Reminders.CronSpec, log)
		if err := worker.Start(); err != nil {
			log.Fatal("Failed to start reminders worker: %v", err)
		}
	}

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

	if worker != nil {
		worker.Stop()
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
