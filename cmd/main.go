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

	adminActivityHandler "github.com/david021dp/salon-booking/internal/api/handlers/admin_activity"
	blockTimeHandler "github.com/david021dp/salon-booking/internal/api/handlers/block_time"
	cancelAppointmentHandler "github.com/david021dp/salon-booking/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/david021dp/salon-booking/internal/api/handlers/create_appointment"
	editAppointmentHandler "github.com/david021dp/salon-booking/internal/api/handlers/edit_appointment"
	getAppointmentHandler "github.com/david021dp/salon-booking/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/david021dp/salon-booking/internal/api/handlers/get_available_slots"
	getUserAppointmentsHandler "github.com/david021dp/salon-booking/internal/api/handlers/get_user_appointments"
	getWorkerAppointmentsHandler "github.com/david021dp/salon-booking/internal/api/handlers/get_worker_appointments"
	listServicesHandler "github.com/david021dp/salon-booking/internal/api/handlers/list_services"
	notificationsHandler "github.com/david021dp/salon-booking/internal/api/handlers/notifications"
	"github.com/david021dp/salon-booking/internal/api/middleware"
	"github.com/david021dp/salon-booking/internal/config"
	"github.com/david021dp/salon-booking/internal/infra/events"
	adminLogRepo "github.com/david021dp/salon-booking/internal/infra/storage/adminlog"
	appointmentRepo "github.com/david021dp/salon-booking/internal/infra/storage/appointment"
	catalogRepo "github.com/david021dp/salon-booking/internal/infra/storage/catalog"
	notificationRepo "github.com/david021dp/salon-booking/internal/infra/storage/notification"
	userServiceClient "github.com/david021dp/salon-booking/internal/integrations/userservice"
	appointmentsService "github.com/david021dp/salon-booking/internal/service/appointments"
	auditService "github.com/david021dp/salon-booking/internal/service/audit"
	catalogService "github.com/david021dp/salon-booking/internal/service/catalog"
	notificationsService "github.com/david021dp/salon-booking/internal/service/notifications"
	blockTimeUC "github.com/david021dp/salon-booking/internal/usecase/block_time"
	cancelAppointmentUC "github.com/david021dp/salon-booking/internal/usecase/cancel_appointment"
	createAppointmentUC "github.com/david021dp/salon-booking/internal/usecase/create_appointment"
	editAppointmentUC "github.com/david021dp/salon-booking/internal/usecase/edit_appointment"
	getAvailableSlotsUC "github.com/david021dp/salon-booking/internal/usecase/get_available_slots"
	"github.com/david021dp/salon-booking/migrations"
	"github.com/david021dp/salon-booking/pkg/dbmetrics"
	"github.com/david021dp/salon-booking/pkg/logger"
	"github.com/david021dp/salon-booking/pkg/metrics"
	"github.com/david021dp/salon-booking/pkg/txmanager"
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

	log.Info("Starting salon-booking...")
	log.Info("Configuration loaded from %s", configPath)

	location, _ := cfg.Booking.Location() // проверено в config.Validate

	// Метрики (nil-коллектор безопасен: счетчики просто не пишутся)
	var metricsCollector *metrics.Metrics
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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	if err := db.PingContext(startupCtx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(startupCtx, db); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		version, err := migrations.Version(startupCtx, db)
		if err != nil {
			log.Warn("Failed to read schema version: %v", err)
		}
		log.Info("Migrations applied, schema version=%d", version)
	}

	wrappedDB := dbmetrics.Wrap(db, metricsCollector)
	if cfg.Metrics.Enabled {
		wrappedDB.StartPoolStatsCollector(15*time.Second, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	}

	// Репозитории и менеджер транзакций
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	notificationRepository := notificationRepo.NewRepository(wrappedDB)
	adminLogRepository := adminLogRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Интеграции
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	log.Info("UserService client initialized (url=%s, timeout=%ds)", cfg.UserService.URL, cfg.UserService.Timeout)

	// Kafka опциональна: без нее уведомления только сохраняются в БД
	var publisher notificationsService.EventPublisher
	var kafkaPublisher *events.Publisher
	if cfg.Kafka.Enabled {
		kafkaPublisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		publisher = kafkaPublisher
		log.Info("Kafka publisher initialized (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}

	// Сервисы
	catalogSvc := catalogService.NewService(catalogRepository, log)
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, log)
	notifier := notificationsService.NewService(
		notificationRepository,
		publisher,
		metricsCollector,
		time.Duration(cfg.Booking.NotificationTimeout)*time.Second,
		log,
	)

	// Use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		catalogSvc,
		location,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		catalogSvc,
		userClient,
		txMgr,
		notifier,
		adminLogRepository,
		metricsCollector,
		createAppointmentUC.Options{
			Location:         location,
			DailyClientLimit: cfg.Booking.DailyClientLimit,
		},
		log,
	)
	editAppointmentUseCase := editAppointmentUC.NewUseCase(
		appointmentRepository,
		catalogSvc,
		userClient,
		txMgr,
		notifier,
		adminLogRepository,
		metricsCollector,
		log,
	)
	cancelAppointmentUseCase := cancelAppointmentUC.NewUseCase(
		appointmentRepository,
		userClient,
		txMgr,
		notifier,
		adminLogRepository,
		metricsCollector,
		log,
	)
	blockTimeUseCase := blockTimeUC.NewUseCase(
		appointmentRepository,
		userClient,
		txMgr,
		notifier,
		adminLogRepository,
		metricsCollector,
		log,
	)

	// Handlers
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	editAppointment := editAppointmentHandler.NewHandler(editAppointmentUseCase, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(cancelAppointmentUseCase, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getWorkerAppointments := getWorkerAppointmentsHandler.NewHandler(appointmentsSvc, log)
	blockTime := blockTimeHandler.NewHandler(blockTimeUseCase, log)
	inbox := notificationsHandler.NewHandler(notifier, log)
	adminActivity := adminActivityHandler.NewHandler(auditService.NewService(adminLogRepository, log), log)

	// Rate limiting
	var redisClient *redis.Client
	rateLimit := func(middleware.Policy) mux.MiddlewareFunc {
		return func(next http.Handler) http.Handler { return next }
	}
	if cfg.RateLimit.Enabled {
		var limiter middleware.Limiter
		switch cfg.RateLimit.Backend {
		case "redis":
			redisClient = redis.NewClient(&redis.Options{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			if err := redisClient.Ping(startupCtx).Err(); err != nil {
				log.Warn("Redis is not reachable at %s: %v", cfg.Redis.Addr, err)
			}
			limiter = middleware.NewRedisLimiter(redisClient, "salon:ratelimit:")
		default:
			limiter = middleware.NewMemoryLimiter()
		}
		rateLimit = func(p middleware.Policy) mux.MiddlewareFunc {
			return middleware.RateLimit(limiter, p, metricsCollector, cfg.RateLimit.FailOpen, log)
		}
		log.Info("Rate limiting enabled (backend=%s, fail_open=%t)", cfg.RateLimit.Backend, cfg.RateLimit.FailOpen)
	}

	generalPolicy := middleware.Policy{
		Name:       "general",
		Requests:   cfg.RateLimit.General.Requests,
		Window:     cfg.RateLimit.General.Window(),
		TrustProxy: cfg.RateLimit.TrustProxy,
		Scope:      middleware.ScopeEveryone,
	}
	clientAppointmentsPolicy := middleware.Policy{
		Name:       "client_appointments",
		Requests:   cfg.RateLimit.ClientAppointments.Requests,
		Window:     cfg.RateLimit.ClientAppointments.Window(),
		TrustProxy: cfg.RateLimit.TrustProxy,
		Scope:      middleware.ScopeClients,
	}
	adminMutationsPolicy := middleware.Policy{
		Name:       "admin_mutations",
		Requests:   cfg.RateLimit.AdminMutations.Requests,
		Window:     cfg.RateLimit.AdminMutations.Window(),
		TrustProxy: cfg.RateLimit.TrustProxy,
		Scope:      middleware.ScopeAdmins,
	}

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recovery(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.MaxBody(cfg.Server.MaxBodyBytes))

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	public.Use(rateLimit(generalPolicy))

	// Каталог услуг
	public.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (X-User-ID и X-User-Role от gateway)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth, rateLimit(generalPolicy))

	// Свободные слоты мастера
	protected.HandleFunc("/workers/{workerId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Запись, история, отмена
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/me/appointments", getUserAppointments.Handle).Methods(http.MethodGet)

	mutations := protected.PathPrefix("").Subrouter()
	mutations.Use(rateLimit(clientAppointmentsPolicy), rateLimit(adminMutationsPolicy))
	mutations.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	mutations.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Ящик уведомлений текущего пользователя
	protected.HandleFunc("/notifications", inbox.List).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/read-all", inbox.MarkAllRead).Methods(http.MethodPatch)
	protected.HandleFunc("/notifications/{notificationId}/read", inbox.MarkRead).Methods(http.MethodPatch)

	// ============================================================
	// ADMIN ROUTES
	// ============================================================

	admin := protected.PathPrefix("").Subrouter()
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/workers/{workerId}/appointments", getWorkerAppointments.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/admin/activity", adminActivity.Handle).Methods(http.MethodGet)

	adminMutations := admin.PathPrefix("").Subrouter()
	adminMutations.Use(rateLimit(adminMutationsPolicy))
	adminMutations.HandleFunc("/appointments/{appointmentId}", editAppointment.Handle).Methods(http.MethodPatch)
	adminMutations.HandleFunc("/workers/{workerId}/blocks", blockTime.Handle).Methods(http.MethodPost)

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

	close(stopMetricsCh)

	// Доставляем уведомления из очереди до закрытия Kafka и БД
	if err := notifier.Close(shutdownCtx); err != nil {
		log.Error("Failed to drain notification queue: %v", err)
	}

	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			log.Error("Failed to close Kafka publisher: %v", err)
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
