// Package main provides the entry point for the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/festy23/nations_league/internal/archive"
	"github.com/festy23/nations_league/internal/config"
	dbConfig "github.com/festy23/nations_league/internal/database/config"
	"github.com/festy23/nations_league/internal/database/database"
	"github.com/festy23/nations_league/internal/database/migrate"
	"github.com/festy23/nations_league/internal/health"
	leaderboardModel "github.com/festy23/nations_league/internal/leaderboard/model"
	leaderboardRepository "github.com/festy23/nations_league/internal/leaderboard/repository"
	leaderboardService "github.com/festy23/nations_league/internal/leaderboard/service"
	matchModel "github.com/festy23/nations_league/internal/match/model"
	"github.com/festy23/nations_league/internal/match/resolver"
	matchRouter "github.com/festy23/nations_league/internal/match/router"
	matchService "github.com/festy23/nations_league/internal/match/service"
	"github.com/festy23/nations_league/internal/metrics"
	"github.com/festy23/nations_league/internal/middleware"
	"github.com/festy23/nations_league/internal/narrative"
	"github.com/festy23/nations_league/internal/notify"
	"github.com/festy23/nations_league/internal/realtime"
	"github.com/festy23/nations_league/internal/squad"
	statisticsRouter "github.com/festy23/nations_league/internal/statistics/router"
	teamModel "github.com/festy23/nations_league/internal/team/model"
	teamRouter "github.com/festy23/nations_league/internal/team/router"
	tournamentModel "github.com/festy23/nations_league/internal/tournament/model"
	tournamentRouter "github.com/festy23/nations_league/internal/tournament/router"
	tournamentService "github.com/festy23/nations_league/internal/tournament/service"
	userModel "github.com/festy23/nations_league/internal/user/model"
	userRouter "github.com/festy23/nations_league/internal/user/router"
	"github.com/festy23/nations_league/pkg/logger"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	sugar, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = sugar.Sync() }()

	if err := run(cfg, sugar); err != nil {
		sugar.Fatalw("server stopped with error", "error", err)
	}
}

func run(cfg config.Config, logger *zap.SugaredLogger) error {
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbCfg := dbConfig.LoadConfigFromEnv()
	db, err := database.Open(ctx, dbCfg)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()

	err = migrate.Run(db, dbCfg.Driver,
		&userModel.User{},
		&teamModel.Team{},
		&teamModel.Player{},
		&matchModel.Match{},
		&matchModel.GoalEvent{},
		&leaderboardModel.Entry{},
		&tournamentModel.Tournament{},
	)
	if err != nil {
		return err
	}
	if dbCfg.Driver == dbConfig.DriverPostgres {
		version, dirty, err := migrate.Version(db)
		if err != nil {
			return err
		}
		logger.Infow("database ready", "driver", dbCfg.Driver, "schema_version", version, "dirty", dirty)
	} else {
		logger.Infow("database ready", "driver", dbCfg.Driver)
	}

	recorder := metrics.NewRecorder()
	dispatcher := notify.NewDispatcher(
		config.GetEnvInt("TASK_CONCURRENCY", notify.DefaultLimit),
		config.GetEnvDuration("TASK_TIMEOUT", notify.DefaultTimeout),
		logger,
	)

	hub := realtime.NewHub(logger)
	go hub.Run(ctx)

	collab := matchService.Collaborators{Dispatcher: dispatcher, Metrics: recorder}
	if cfg.Narrative.Enabled {
		collab.Narrative = narrative.NewClient(cfg.Narrative, logger)
		logger.Infow("narrative commentary enabled", "model", cfg.Narrative.Model)
	}
	if cfg.Mail.Enabled {
		collab.Mailer = notify.NewSMTPSender(cfg.Mail, logger)
		logger.Infow("match result mail enabled", "smtp_host", cfg.Mail.Host)
	}

	tournamentCollab := tournamentService.Collaborators{
		Broadcaster: hub,
		Tasks:       dispatcher,
		Metrics:     recorder,
	}
	if cfg.Archive.Enabled {
		uploader, err := archive.New(ctx, cfg.Archive, logger)
		if err != nil {
			return err
		}
		tournamentCollab.Archiver = uploader
		logger.Infow("bracket archive enabled", "bucket", cfg.Archive.Bucket)
	}

	users := userRouter.NewService(db, cfg.Auth, logger)
	teams := teamRouter.NewService(db, squad.NewGenerator(nil), logger)
	matches := matchRouter.NewService(db, resolver.New(nil, logger), collab, logger)
	tournaments := tournamentRouter.NewService(db, matches, nil, tournamentCollab, logger)
	leaders := leaderboardService.New(leaderboardRepository.New(db, logger), db, logger)

	r := gin.New()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger, "/health", "/metrics"))

	r.GET("/health", health.New(db, logger).Check)
	metrics.RegisterRoutes(r, recorder)
	userRouter.RegisterRoutes(r, users, logger)
	teamRouter.RegisterRoutes(r, teams, users, logger)
	matchRouter.RegisterRoutes(r, matches, logger)
	tournamentRouter.RegisterRoutes(r, tournaments, leaders, users, logger)
	statisticsRouter.RegisterRoutes(r, statisticsRouter.NewService(db, logger), logger)
	realtime.RegisterRoutes(r, hub, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr: cfg.Server.GetAddress(),
		Handler: cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORS.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		})(r),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Infow("server starting", "address", srv.Addr, "gin_mode", cfg.GinMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		logger.Infow("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("http server shutdown failed", "error", err)
	}
	if err := dispatcher.Shutdown(shutdownCtx); err != nil {
		logger.Warnw("background tasks did not finish before shutdown", "error", err)
	}

	logger.Infow("server stopped", "shutdown_budget", cfg.Server.ShutdownTimeout.String())
	return nil
}
