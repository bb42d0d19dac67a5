package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"parlour-api/config"
	"parlour-api/config/middleware"
	"parlour-api/handlers"
	"parlour-api/pkg/logger"
	"parlour-api/pkg/metrics"
	"parlour-api/pkg/notify"
	"parlour-api/pkg/paseto"
	"parlour-api/pkg/realtime"
	"parlour-api/repository"
	"parlour-api/router"
	"parlour-api/services"
)

const shutdownTimeout = 15 * time.Second

// @title Parlour API
// @version 1.0
// @description Employees, tasks and attendance punches for the parlour dashboard, with realtime attendance updates over /ws.
//
// @host localhost:3000
// @BasePath /api
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the PASETO token.
//
// @tag.name Auth
// @tag.name Attendance
// @tag.name Employees
// @tag.name Tasks
// @tag.name Dashboard
func main() {
	if err := logger.Init("info"); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Named("main")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Error(ctx, "failed to load config", logger.Error(err))
		os.Exit(1)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level, falling back to info", logger.String("log_level", cfg.LogLevel))
		_ = logger.SetLevelString("info")
	}

	if err := run(ctx, cfg); err != nil {
		log.Error(ctx, "server stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.AppConfig) error {
	log := logger.Named("main")
	m := metrics.NewManager()

	client, err := config.MongoConnect(ctx, cfg.MongoURI)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error(ctx, "failed to disconnect from mongodb", logger.Error(err))
		}
	}()
	db := client.Database(cfg.DBName)
	if err := config.InitDatabase(ctx, db); err != nil {
		return err
	}
	log.Info(ctx, "connected to mongodb", logger.String("db", cfg.DBName))

	userRepo := repository.NewUserRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	tokens, err := paseto.NewPasetoMaker(cfg.PasetoSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}

	hub := realtime.NewHub(
		realtime.WithSendBuffer(cfg.RealtimeSendBuffer),
		realtime.WithPingInterval(cfg.RealtimePingInterval),
		realtime.WithLogger(logger.Named("realtime")),
		realtime.WithMetrics(m),
	)

	serviceOpts := []services.Option{
		services.WithNotifier(hub),
		services.WithLocation(cfg.Location()),
		services.WithMaxClockSkew(cfg.PunchMaxClockSkew),
		services.WithStatusConcurrency(cfg.StatusConcurrency),
		services.WithLogger(logger.Named("attendance")),
		services.WithMetrics(m),
	}

	if cfg.TelegramEnabled() {
		bot, err := notify.NewTelegramBot(cfg.TelegramToken)
		if err != nil {
			return err
		}
		telegram := notify.NewTelegramNotifier(bot, cfg.TelegramChatID,
			notify.WithLocation(cfg.Location()),
			notify.WithMetrics(m))
		go telegram.Run(ctx)
		defer telegram.Close()
		serviceOpts = append(serviceOpts, services.WithNotifier(telegram))
		log.Info(ctx, "telegram notifications enabled", logger.Any("chat", cfg.TelegramChatID))
	}

	attendanceService := services.NewAttendanceService(attendanceRepo, employeeRepo, serviceOpts...)

	app := fiber.New(fiber.Config{
		AppName:      "parlour-api",
		ReadTimeout:  cfg.RequestTimeout + 5*time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
	})
	app.Use(recover.New())
	config.SetupCORS(app, cfg.Origins())
	app.Use(fiberlogger.New())
	app.Use(middleware.Metrics(m))

	router.SetupRoutes(app, router.Handlers{
		Auth:       handlers.NewAuthHandler(userRepo, tokens, cfg.RequestTimeout),
		Attendance: handlers.NewAttendanceHandler(attendanceService, cfg.RequestTimeout),
		Employee:   handlers.NewEmployeeHandler(employeeRepo, cfg.RequestTimeout),
		Task:       handlers.NewTaskHandler(taskRepo, employeeRepo, cfg.RequestTimeout),
		Dashboard:  handlers.NewDashboardHandler(employeeRepo, taskRepo, attendanceService, cfg.RequestTimeout),
		Socket:     handlers.NewSocketHandler(hub, tokens, userRepo, cfg.RealtimeRequireAuth, cfg.RealtimePongWait),
	}, router.Security{Tokens: tokens, Users: userRepo}, m)

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("port", cfg.Port))
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info(context.Background(), "shutting down server")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Error(context.Background(), "server shutdown failed", logger.Error(err))
	}
	log.Info(context.Background(), "server stopped")
	return nil
}
