package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	httpadp "agricredit-backend/internal/adapter/http"
	mw "agricredit-backend/internal/adapter/middleware"
	"agricredit-backend/internal/adapter/notify"
	"agricredit-backend/internal/adapter/repository/mysql"
	"agricredit-backend/internal/config"
	"agricredit-backend/internal/infrastructure/cache"
	"agricredit-backend/internal/infrastructure/db"
	"agricredit-backend/internal/infrastructure/storage"
	"agricredit-backend/internal/jobs"
	"agricredit-backend/internal/logger"
	"agricredit-backend/internal/scheduler"
	"agricredit-backend/internal/security"
	accUC "agricredit-backend/internal/usecase/account"
	appUC "agricredit-backend/internal/usecase/application"
	authUC "agricredit-backend/internal/usecase/auth"
	docUC "agricredit-backend/internal/usecase/document"
	notifUC "agricredit-backend/internal/usecase/notification"
	profUC "agricredit-backend/internal/usecase/profile"
	progUC "agricredit-backend/internal/usecase/program"
	simUC "agricredit-backend/internal/usecase/simulation"
	userUC "agricredit-backend/internal/usecase/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("load config")
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, ServiceName: "agricredit-api"})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	// amounts go out as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dial, err := db.Dialector(cfg.DBDriver, cfg.MySQLDSN(), cfg.SQLitePath)
	if err != nil {
		log.Fatal().Err(err).Msg("db dialector")
	}
	gdb, err := db.OpenGorm(dial, log)
	if err != nil {
		log.Fatal().Err(err).Msg("open db")
	}
	if cfg.AutoMigrate {
		if err := db.Migrate(gdb); err != nil {
			log.Fatal().Err(err).Msg("migrate")
		}
	}

	rdb, err := cache.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal().Err(err).Msg("open redis")
	}
	defer rdb.Close()

	store, err := storage.NewLocal(cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("upload dir")
	}

	users := mysql.NewUserRepository(gdb)
	profiles := mysql.NewProfileRepository(gdb)
	programs := mysql.NewProgramRepository(gdb)
	tx := mysql.NewGormUoW(gdb)
	bus := notify.NewRedis(rdb, log)
	effort := decimal.NewFromFloat(cfg.DefaultEffortRate)

	profileUC := profUC.NewUsecase(profiles, log)
	if err := profileUC.Seed(ctx); err != nil {
		log.Fatal().Err(err).Msg("seed profiles")
	}
	usersUC := userUC.NewUsecase(users, profiles, profileUC, log)
	if err := usersUC.SeedAdmin(ctx, userUC.AdminSeed{
		Name:     cfg.AdminName,
		Phone:    cfg.AdminPhone,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	}); err != nil {
		log.Fatal().Err(err).Msg("seed admin")
	}

	authn := authUC.NewUsecase(users, profiles, security.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL()), log)
	apps := appUC.NewUsecase(mysql.NewApplicationRepository(gdb), programs, tx, bus, effort, log)
	docs := docUC.NewUsecase(mysql.NewDocumentRepository(gdb), store, apps, tx, cfg.MaxUploadBytes(), log)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = httpadp.NewValidator()
	e.HTTPErrorHandler = httpadp.NewErrorHandler(log, !cfg.IsProduction())
	e.Use(middleware.Recover(), requestLogger(log))

	httpadp.RegisterRoutes(e, httpadp.Handlers{
		Health:        httpadp.NewHandler(healthChecks(gdb, rdb)),
		Auth:          httpadp.NewAuthHandler(authn),
		Applications:  httpadp.NewApplicationHandler(apps, docs),
		Programs:      httpadp.NewProgramHandler(progUC.NewUsecase(programs, effort, log)),
		Simulation:    httpadp.NewSimulationHandler(simUC.NewUsecase(programs, effort)),
		Accounts:      httpadp.NewAccountHandler(accUC.NewUsecase(mysql.NewAccountRepository(gdb), tx, bus, log)),
		Notifications: httpadp.NewNotificationHandler(notifUC.NewUsecase(mysql.NewNotificationRepository(gdb), bus, log)),
		Profiles:      httpadp.NewProfileHandler(profileUC),
		Users:         httpadp.NewUserHandler(usersUC),
		Documents:     httpadp.NewDocumentHandler(docs),
	}, authn, mw.Idempotency(rdb, cfg.IdempotencyTTL(), log))

	sched, err := scheduler.New(jobs.NewJobRunner(apps, 0, 0, log), scheduler.Specs{ReconcileAccounts: cfg.ReconcileCron}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("scheduler")
	}
	sched.Start()

	go func() {
		addr := ":" + cfg.AppPort
		log.Info().Str("addr", addr).Str("env", cfg.AppEnv).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	sched.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("stopped")
}

func healthChecks(gdb *gorm.DB, rdb *redis.Client) map[string]httpadp.Check {
	return map[string]httpadp.Check{
		"database": func(ctx context.Context) error {
			sqlDB, err := gdb.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		"redis": func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	}
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURIPath:  true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("path", v.URIPath).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
