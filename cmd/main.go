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

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	authHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/auth"
	controllersHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/controllers"
	calculateTariffHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/calculate_tariff"
	checkInHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/check_in"
	checkOutHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/check_out"
	entriesHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/entries"
	parkingLotsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/parking_lots"
	reportsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/reports"
	schedulesHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/schedules"
	tariffsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/tariffs"
	updateEntryHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/update_entry"
	usersHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/users"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/config"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	controllerRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/controller"
	entryRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/entry"
	parkingLotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/parkinglot"
	reportRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/report"
	scheduleRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/schedule"
	tariffRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/tariff"
	userRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-ParkingService/internal/jobs"
	authService "github.com/m04kA/SMC-ParkingService/internal/service/auth"
	controllersService "github.com/m04kA/SMC-ParkingService/internal/service/controllers"
	entriesService "github.com/m04kA/SMC-ParkingService/internal/service/entries"
	parkingLotsService "github.com/m04kA/SMC-ParkingService/internal/service/parkinglots"
	reportsService "github.com/m04kA/SMC-ParkingService/internal/service/reports"
	schedulesService "github.com/m04kA/SMC-ParkingService/internal/service/schedules"
	tariffsService "github.com/m04kA/SMC-ParkingService/internal/service/tariffs"
	usersService "github.com/m04kA/SMC-ParkingService/internal/service/users"
	calculateTariffUC "github.com/m04kA/SMC-ParkingService/internal/usecase/calculate_tariff"
	checkInUC "github.com/m04kA/SMC-ParkingService/internal/usecase/check_in"
	checkOutUC "github.com/m04kA/SMC-ParkingService/internal/usecase/check_out"
	updateEntryUC "github.com/m04kA/SMC-ParkingService/internal/usecase/update_entry"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
	"github.com/m04kA/SMC-ParkingService/pkg/txmanager"
)

// recoveryLogger адаптер логгера для gorilla RecoveryHandler
type recoveryLogger struct {
	log *logger.Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.log.Error("Recovered from panic: %v", fmt.Sprint(v...))
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

	log.Info("Starting SMC-ParkingService...")
	log.Info("Configuration loaded from config.toml")

	location, err := cfg.Tariffs.Location()
	if err != nil {
		log.Fatal("Invalid tariffs timezone: %v", err)
	}
	log.Info("Tariff timezone: %s", location)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	// Закрывается при остановке: сбор метрик пула и очистка rate limiter
	stopCh := make(chan struct{})

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

	// С выключенными метриками обертка только пробрасывает запросы
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	entryRepository := entryRepo.NewRepository(wrappedDB)
	tariffRepository := tariffRepo.NewRepository(wrappedDB)
	parkingLotRepository := parkingLotRepo.NewRepository(wrappedDB)
	userRepository := userRepo.NewRepository(wrappedDB)
	controllerRepository := controllerRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)
	reportRepository := reportRepo.NewRepository(wrappedDB, location)

	// Инициализируем сервисы
	authSvc := authService.NewService(userRepository, controllerRepository, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL(), log)
	usersSvc := usersService.NewService(userRepository, log)
	controllersSvc := controllersService.NewService(controllerRepository, log)
	schedulesSvc := schedulesService.NewService(scheduleRepository, parkingLotRepository, txMgr, log)
	entriesSvc := entriesService.NewService(entryRepository, log)
	tariffsSvc := tariffsService.NewService(tariffRepository, log)
	parkingLotsSvc := parkingLotsService.NewService(parkingLotRepository, log)
	reportsSvc := reportsService.NewService(reportRepository, parkingLotRepository, log)

	// Первый администратор для пустой базы
	bootstrapCtx, cancelBootstrap := context.WithTimeout(context.Background(), 10*time.Second)
	created, err := usersSvc.EnsureAdmin(bootstrapCtx,
		cfg.Auth.BootstrapAdminName, cfg.Auth.BootstrapAdminEmail, cfg.Auth.BootstrapAdminPassword)
	cancelBootstrap()
	if err != nil {
		log.Fatal("Failed to create bootstrap admin: %v", err)
	}
	if created {
		log.Info("Bootstrap admin %q created", cfg.Auth.BootstrapAdminName)
	}

	// Инициализируем use cases
	calculateTariffUseCase := calculateTariffUC.NewUseCase(tariffRepository, location, log)
	checkInUseCase := checkInUC.NewUseCase(entryRepository, parkingLotRepository, txMgr, metricsCollector, log)
	checkOutUseCase := checkOutUC.NewUseCase(entryRepository, calculateTariffUseCase, metricsCollector, log)
	updateEntryUseCase := updateEntryUC.NewUseCase(entryRepository, parkingLotRepository, txMgr, log)

	// Инициализируем handlers
	auth := authHandler.NewHandler(authSvc, log)
	checkIn := checkInHandler.NewHandler(checkInUseCase, log)
	checkOut := checkOutHandler.NewHandler(checkOutUseCase, log)
	updateEntry := updateEntryHandler.NewHandler(updateEntryUseCase, log)
	entries := entriesHandler.NewHandler(entriesSvc, log)
	calculateTariff := calculateTariffHandler.NewHandler(calculateTariffUseCase, location, log)
	tariffs := tariffsHandler.NewHandler(tariffsSvc, log)
	parkingLots := parkingLotsHandler.NewHandler(parkingLotsSvc, log)
	reports := reportsHandler.NewHandler(reportsSvc, log)
	users := usersHandler.NewHandler(usersSvc, log)
	controllers := controllersHandler.NewHandler(controllersSvc, log)
	schedules := schedulesHandler.NewHandler(schedulesSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	loginLimiter := middleware.NewRateLimiter(cfg.Auth.LoginRatePerMinute, cfg.Auth.LoginBurst, log)
	go loginLimiter.RunCleanup(time.Minute, stopCh)

	userLogin := loginLimiter.Middleware(http.HandlerFunc(auth.Login))
	controllerLogin := loginLimiter.Middleware(http.HandlerFunc(auth.LoginController))
	api.Handle("/auth/login", userLogin).Methods(http.MethodPost)
	api.Handle("/auth/usuarios", userLogin).Methods(http.MethodPost)
	api.Handle("/auth/controlador", controllerLogin).Methods(http.MethodPost)
	api.Handle("/auth/controladores", controllerLogin).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют Authorization: Bearer <token>)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(authSvc))

	adminOnly := middleware.RequireRole(domain.RoleAdmin)
	admin := func(h http.HandlerFunc) http.Handler {
		return adminOnly(h)
	}

	// --- Entradas ---
	protected.HandleFunc("/entradas", entries.List).Methods(http.MethodGet)
	protected.HandleFunc("/entradas", checkIn.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/entradas/buscar/{criterio}/{valor}", entries.Search).Methods(http.MethodGet)
	protected.HandleFunc("/entradas/salida/{id}", checkOut.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/entradas/{id}/salida", checkOut.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/entradas/{id}", entries.Get).Methods(http.MethodGet)
	protected.HandleFunc("/entradas/{id}", updateEntry.Handle).Methods(http.MethodPut)
	protected.Handle("/entradas/{id}", admin(entries.Delete)).Methods(http.MethodDelete)

	// --- Tarifas ---
	protected.HandleFunc("/tarifas/calcular", calculateTariff.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/tarifas", tariffs.List).Methods(http.MethodGet)
	protected.Handle("/tarifas", admin(tariffs.Create)).Methods(http.MethodPost)
	protected.HandleFunc("/tarifas/buscar/{criterio}/{valor}", tariffs.Search).Methods(http.MethodGet)
	protected.HandleFunc("/tarifas/{id}", tariffs.Get).Methods(http.MethodGet)
	protected.Handle("/tarifas/{id}", admin(tariffs.Update)).Methods(http.MethodPut)
	protected.Handle("/tarifas/{id}", admin(tariffs.Delete)).Methods(http.MethodDelete)

	// --- Parqueaderos ---
	protected.HandleFunc("/parqueaderos", parkingLots.List).Methods(http.MethodGet)
	protected.Handle("/parqueaderos", admin(parkingLots.Create)).Methods(http.MethodPost)
	protected.HandleFunc("/parqueaderos/buscar/{criterio}/{valor}", parkingLots.Search).Methods(http.MethodGet)
	protected.HandleFunc("/parqueaderos/{id}", parkingLots.Get).Methods(http.MethodGet)
	protected.Handle("/parqueaderos/{id}", admin(parkingLots.Update)).Methods(http.MethodPut)
	protected.Handle("/parqueaderos/{id}", admin(parkingLots.Delete)).Methods(http.MethodDelete)

	// --- Reportes (только администратор) ---
	protected.Handle("/reportes/ingresos", admin(reports.RevenueByLot)).Methods(http.MethodGet)
	protected.Handle("/reportes/ingresos/{parqueadero_id}", admin(reports.RevenueForLot)).Methods(http.MethodGet)
	protected.Handle("/reportes/ingresos/{parqueadero_id}/periodo", admin(reports.RevenueForPeriod)).Methods(http.MethodGet)
	protected.Handle("/reportes/ingresos/{parqueadero_id}/vehiculos", admin(reports.RevenueByVehicle)).Methods(http.MethodGet)
	protected.Handle("/reportes/ocupacion", admin(reports.Occupancy)).Methods(http.MethodGet)
	protected.Handle("/reportes/ingresos-periodo/{parqueadero_id}", admin(reports.RevenueForPeriod)).Methods(http.MethodGet)
	protected.Handle("/reportes/ingresos-vehiculo/{parqueadero_id}", admin(reports.RevenueByVehicle)).Methods(http.MethodGet)

	// --- Horarios ---
	protected.HandleFunc("/horarios", schedules.List).Methods(http.MethodGet)
	protected.Handle("/horarios", admin(schedules.Create)).Methods(http.MethodPost)
	protected.HandleFunc("/horarios/buscar/{criterio}/{valor}", schedules.Search).Methods(http.MethodGet)
	protected.HandleFunc("/horarios/{id}", schedules.Get).Methods(http.MethodGet)
	protected.Handle("/horarios/{id}", admin(schedules.Update)).Methods(http.MethodPut)
	protected.Handle("/horarios/{id}", admin(schedules.Delete)).Methods(http.MethodDelete)

	// --- Controladores ---
	protected.HandleFunc("/controllers", controllers.List).Methods(http.MethodGet)
	protected.Handle("/controllers", admin(controllers.Create)).Methods(http.MethodPost)
	protected.HandleFunc("/controllers/buscar/{criterio}/{valor}", controllers.Search).Methods(http.MethodGet)
	protected.HandleFunc("/controllers/{id}", controllers.Get).Methods(http.MethodGet)
	protected.Handle("/controllers/{id}", admin(controllers.Update)).Methods(http.MethodPut)
	protected.Handle("/controllers/{id}", admin(controllers.Delete)).Methods(http.MethodDelete)

	// --- Usuarios (только администратор) ---
	protected.Handle("/users", admin(users.List)).Methods(http.MethodGet)
	protected.Handle("/users", admin(users.Create)).Methods(http.MethodPost)
	protected.Handle("/users/buscar/{criterio}/{valor}", admin(users.Search)).Methods(http.MethodGet)
	protected.Handle("/users/{id}", admin(users.Get)).Methods(http.MethodGet)
	protected.Handle("/users/{id}", admin(users.Update)).Methods(http.MethodPut)
	protected.Handle("/users/{id}", admin(users.Delete)).Methods(http.MethodDelete)

	// CORS для SPA клиента и перехват паник
	var handler http.Handler = r
	handler = gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins(cfg.Server.AllowedOrigins),
		gorillaHandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		gorillaHandlers.AllowedHeaders([]string{"Authorization", "Content-Type", middleware.HeaderRequestID}),
		gorillaHandlers.ExposedHeaders([]string{middleware.HeaderRequestID}),
	)(handler)
	handler = gorillaHandlers.RecoveryHandler(
		gorillaHandlers.RecoveryLogger(recoveryLogger{log: log}),
	)(handler)

	// Фоновые задачи
	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler, err = jobs.NewScheduler(jobs.Config{
			RevenueSnapshot: cfg.Jobs.RevenueSnapshot,
			StaleEntries:    cfg.Jobs.StaleEntries,
			StaleAfter:      time.Duration(cfg.Jobs.StaleEntryHours) * time.Hour,
		}, reportRepository, location, log)
		if err != nil {
			log.Fatal("Failed to configure jobs: %v", err)
		}
		scheduler.Start()
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
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

	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем сбор метрик connection pool и очистку rate limiter
	close(stopCh)

	log.Info("Server stopped gracefully")
}
