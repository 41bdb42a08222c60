package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelReservationHandler "github.com/m04kA/SMC-LoungeService/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/m04kA/SMC-LoungeService/internal/api/handlers/create_reservation"
	getLoungesHandler "github.com/m04kA/SMC-LoungeService/internal/api/handlers/get_lounges"
	getReservationHandler "github.com/m04kA/SMC-LoungeService/internal/api/handlers/get_reservation"
	getScheduleHandler "github.com/m04kA/SMC-LoungeService/internal/api/handlers/get_schedule"
	getUserReservationsHandler "github.com/m04kA/SMC-LoungeService/internal/api/handlers/get_user_reservations"
	syncScheduleHandler "github.com/m04kA/SMC-LoungeService/internal/api/handlers/sync_schedule"
	"github.com/m04kA/SMC-LoungeService/internal/api/middleware"
	"github.com/m04kA/SMC-LoungeService/internal/config"
	loungeRepo "github.com/m04kA/SMC-LoungeService/internal/infra/storage/lounge"
	reservationRepo "github.com/m04kA/SMC-LoungeService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-LoungeService/internal/schedule"
	reservationsService "github.com/m04kA/SMC-LoungeService/internal/service/reservations"
	"github.com/m04kA/SMC-LoungeService/internal/sheetsync"
	createReservationUC "github.com/m04kA/SMC-LoungeService/internal/usecase/create_reservation"
	getScheduleUC "github.com/m04kA/SMC-LoungeService/internal/usecase/get_schedule"
	"github.com/m04kA/SMC-LoungeService/pkg/dbmetrics"
	"github.com/m04kA/SMC-LoungeService/pkg/logger"
	"github.com/m04kA/SMC-LoungeService/pkg/metrics"
	"github.com/m04kA/SMC-LoungeService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-LoungeService/pkg/txmanager"
)

// noopNotifier заглушка синхронизатора, когда внешняя таблица выключена
type noopNotifier struct{}

func (noopNotifier) ReservationChanged(time.Time) {}

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

	log.Info("Starting SMC-LoungeService...")
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

	// Календарь слотов из политики конфигурации
	windows := make([]schedule.WindowConfig, 0, len(cfg.Schedule.Windows))
	for _, w := range cfg.Schedule.Windows {
		windows = append(windows, schedule.WindowConfig{
			Weekdays: w.Weekdays,
			Start:    w.Start,
			End:      w.End,
		})
	}
	calendar, err := schedule.NewCalendar(cfg.Schedule.Timezone, cfg.Schedule.SlotDurationMinutes, windows)
	if err != nil {
		log.Fatal("Failed to build slot calendar: %v", err)
	}
	log.Info("Slot calendar initialized (timezone=%s, slot=%dm, windows=%d)",
		cfg.Schedule.Timezone, cfg.Schedule.SlotDurationMinutes, len(cfg.Schedule.Windows))

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		loungeRepository      *loungeRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		loungeRepository = loungeRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		loungeRepository = loungeRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Синхронизатор внешней таблицы (если включен)
	var notifier interface{ ReservationChanged(time.Time) } = noopNotifier{}
	var syncer *sheetsync.Syncer

	if cfg.Sheets.Enabled {
		loungeColumns := make(map[int]string, len(cfg.Sheets.LoungeColumns))
		for number, column := range cfg.Sheets.LoungeColumns {
			n, err := strconv.Atoi(number)
			if err != nil {
				log.Fatal("Invalid lounge number %q in sheets.lounge_columns", number)
			}
			loungeColumns[n] = column
		}

		sink, err := sheetsync.NewSheetsSink(context.Background(), sheetsync.SheetsConfig{
			SpreadsheetID:  cfg.Sheets.SpreadsheetID,
			WorksheetTitle: cfg.Sheets.WorksheetTitle,
			TitleCell:      cfg.Sheets.TitleCell,
			TimeColumn:     cfg.Sheets.TimeColumn,
			LoungeColumns:  loungeColumns,
			FirstRow:       cfg.Sheets.FirstRow,
			MaxRows:        cfg.Sheets.MaxRows,
		}, log)
		if err != nil {
			log.Fatal("Failed to initialize sheets sink: %v", err)
		}

		// Типизированный nil в интерфейсе не считается отсутствием метрик
		var syncMetrics sheetsync.Metrics
		if metricsCollector != nil {
			syncMetrics = metricsCollector
		}

		projector := sheetsync.NewProjector(reservationRepository, loungeRepository, calendar, cfg.Sheets.TitleFormat)
		syncer = sheetsync.NewSyncer(projector, sink, syncMetrics, log, sheetsync.Options{
			Workers:      cfg.Sheets.Workers,
			QueueSize:    cfg.Sheets.QueueSize,
			MaxRetries:   cfg.Sheets.MaxRetries,
			RetryBackoff: time.Duration(cfg.Sheets.RetryBackoffSeconds) * time.Second,
		})
		notifier = syncer
		log.Info("Sheet synchronizer started (spreadsheet=%s, workers=%d)",
			cfg.Sheets.SpreadsheetID, cfg.Sheets.Workers)
	} else {
		log.Info("Sheet synchronization disabled")
	}

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(reservationRepository, notifier, log)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		loungeRepository,
		calendar,
		txMgr,
		notifier,
		log,
	)
	getScheduleUseCase := getScheduleUC.NewUseCase(
		reservationRepository,
		loungeRepository,
		calendar,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getSchedule := getScheduleHandler.NewHandler(getScheduleUseCase, log)
	getLounges := getLoungesHandler.NewHandler(loungeRepository, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Logging(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Сетка дня: слоты, лаунжи, занятые ячейки
	api.HandleFunc("/schedule", getSchedule.Handle).Methods(http.MethodGet)

	// Список лаунжей
	api.HandleFunc("/lounges", getLounges.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Создание бронирования
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/reservations/{reservationId}", cancelReservation.Handle).Methods(http.MethodDelete)

	// Бронирования пользователя
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// Принудительная синхронизация внешней таблицы
	if syncer != nil {
		syncSchedule := syncScheduleHandler.NewHandler(syncer, calendar.Location(), log)
		protected.HandleFunc("/sync", syncSchedule.Handle).Methods(http.MethodPost)
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

	// Дожидаемся публикации уже поставленных в очередь событий
	if syncer != nil {
		syncer.Close()
		log.Info("Sheet synchronizer stopped")
	}

	log.Info("Server stopped gracefully")
}
