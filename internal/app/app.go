package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-league-portal/internal/config"
	"github.com/riskibarqy/fantasy-league-portal/internal/domain/session"
	"github.com/riskibarqy/fantasy-league-portal/internal/domain/team"
	"github.com/riskibarqy/fantasy-league-portal/internal/infrastructure/jobqueue"
	"github.com/riskibarqy/fantasy-league-portal/internal/infrastructure/leagueapi"
	cacherepo "github.com/riskibarqy/fantasy-league-portal/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/fantasy-league-portal/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-league-portal/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fantasy-league-portal/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/fantasy-league-portal/internal/platform/cache"
	idgen "github.com/riskibarqy/fantasy-league-portal/internal/platform/id"
	"github.com/riskibarqy/fantasy-league-portal/internal/platform/logging"
	"github.com/riskibarqy/fantasy-league-portal/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const dbPingTimeout = 5 * time.Second

// App owns the HTTP server and everything that has to be closed with it.
type App struct {
	Server    *http.Server
	db        *sqlx.DB
	scheduler *sessionPurgeScheduler
	logger    *logging.Logger
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{logger: logger}

	sessionRepo, err := a.sessionRepository(cfg)
	if err != nil {
		return nil, err
	}

	leagueClient := leagueapi.NewClient(leagueapi.ClientConfig{
		BaseURL:        cfg.LeagueAPIBaseURL,
		Timeout:        cfg.LeagueAPITimeout,
		Logger:         logger,
		CircuitBreaker: cfg.LeagueAPICircuit,
	})

	var teamRepo team.Repository = leagueClient
	if cfg.CacheEnabled {
		teamRepo = cacherepo.NewTeamRepository(leagueClient, basecache.NewStore(cfg.CacheTTL))
	}

	var queue usecase.JobQueue = usecase.NewNoopJobQueue()
	if cfg.QStashEnabled {
		publisher := jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
			CircuitBreaker:   cfg.QStashCircuit,
		}, logger)
		if publisher.Configured() {
			queue = publisher
		} else {
			logger.Warn("qstash enabled without credentials, publish jobs are dropped")
		}
	}

	sessionSvc := usecase.NewSessionService(leagueClient, sessionRepo, idgen.NewUUIDGenerator(), cfg.SessionTTL, logger)
	lineupEditorSvc := usecase.NewLineupEditorService(leagueClient, teamRepo, leagueClient, leagueClient, logger)
	teamHistorySvc := usecase.NewTeamHistoryService(teamRepo, leagueClient, leagueClient, logger)
	chipBoardSvc := usecase.NewChipBoardService(teamRepo, leagueClient, cfg.ChipBoardWorkers, logger)
	adminSvc := usecase.NewAdminService(leagueClient, queue, usecase.AdminConfig{
		FacebookPublishPath: cfg.FacebookPublishPath,
	}, logger)

	a.scheduler, err = newSessionPurgeScheduler(sessionSvc, cfg.SessionPurgeInterval, logger)
	if err != nil {
		a.closeDB()
		return nil, err
	}

	handler := httpapi.NewHandler(
		sessionSvc,
		lineupEditorSvc,
		teamHistorySvc,
		chipBoardSvc,
		adminSvc,
		usecase.NewEditWindowWatcher(nil),
		logger,
	)
	router := httpapi.NewRouter(handler, sessionSvc, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return a, nil
}

func (a *App) sessionRepository(cfg config.Config) (session.Repository, error) {
	if cfg.SessionStore != config.SessionStorePostgres {
		a.logger.Info("using in-memory session store")
		return memory.NewSessionRepository(), nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}
	a.db = db
	a.logger.Info("using postgres session store", "db_name", dbNameFromURL(cfg.DBURL))
	return postgres.NewSessionRepository(db), nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := NormalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), dbPingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// Start runs the background jobs. The HTTP server is started by the caller.
func (a *App) Start() {
	a.scheduler.Start()
}

// Shutdown stops the HTTP server first so no request sees a closed store.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if a.Server != nil {
		if err := a.Server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
		}
	}
	if a.scheduler != nil {
		if err := a.scheduler.Stop(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := a.closeDB(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (a *App) closeDB() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	if err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}
