package app

import (
	"context"
	"database/sql"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"ecocharge/internal/activity"
	appconfig "ecocharge/internal/config"
	"ecocharge/internal/db"
	httpserver "ecocharge/internal/http"
	"ecocharge/internal/http/handlers"
	"ecocharge/internal/http/middleware"
	"ecocharge/internal/models"
	"ecocharge/internal/password"
	"ecocharge/internal/redis"
	"ecocharge/internal/repository"
	"ecocharge/internal/service"
)

// App wires dependencies for the API service.
type App struct {
	server      *httpserver.Server
	db          *sql.DB
	redisClient *goredis.Client
	sessions    *repository.SessionRepository
	logger      *zap.Logger
}

// New builds the application graph.
func New(cfg *appconfig.Config, logger *zap.Logger) (*App, error) {
	if err := db.Migrate(cfg.Database.MigrationsDir, cfg.Database.DSN); err != nil {
		return nil, err
	}

	sqlDB, err := db.NewPostgres(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	// The idle guard is optional: without redis only the absolute session
	// expiry applies.
	var redisClient *goredis.Client
	var idleGuard *activity.Store
	if cfg.Redis.Addr != "" {
		redisClient, err = redis.NewClient(cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			sqlDB.Close()
			return nil, err
		}
		idleGuard = activity.NewStore(redisClient, cfg.IdleTimeout())
	}

	userRepo := repository.NewUserRepository(sqlDB)
	sessionRepo := repository.NewSessionRepository(sqlDB)
	stationRepo := repository.NewStationRepository(sqlDB)
	reservationRepo := repository.NewReservationRepository(sqlDB)
	vehicleRepo := repository.NewVehicleRepository(sqlDB)
	statsRepo := repository.NewStatsRepository(sqlDB)

	hasher := password.NewBcryptHasher(0)
	sessionSvc := service.NewSessionService(sessionRepo, cfg.SessionTTL(), logger)

	var tracker service.ActivityTracker
	var guard middleware.ActivityGuard
	if idleGuard != nil {
		tracker = idleGuard
		guard = idleGuard
	}

	authSvc := service.NewAuthService(userRepo, hasher, sessionSvc, tracker, logger)
	bookingSvc := service.NewBookingService(reservationRepo, vehicleRepo, cfg.MaxBookingDuration(), logger)
	stationSvc := service.NewStationService(stationRepo, reservationRepo, logger)
	userSvc := service.NewUserService(userRepo, hasher, logger)
	statsSvc := service.NewStatsService(statsRepo)

	gates := httpserver.Gates{
		Any:   middleware.RequireRole(sessionSvc, guard, "", logger),
		User:  middleware.RequireRole(sessionSvc, guard, models.RoleUser, logger),
		Admin: middleware.RequireRole(sessionSvc, guard, models.RoleAdmin, logger),
	}

	deps := httpserver.RouterDeps{
		Login:      handlers.NewLoginHandler(authSvc),
		Logout:     handlers.NewLogoutHandler(authSvc),
		Book:       handlers.NewBookHandler(bookingSvc),
		Stats:      handlers.NewStatsHandler(statsSvc),
		SessionsMe: handlers.NewSessionsMeHandler(bookingSvc),
		VehiclesMe: handlers.NewVehiclesMeHandler(bookingSvc),
		Health:     handlers.NewHealthHandler(),
		Stations:   handlers.NewStationsHandlers(stationSvc, logger),
		Users:      handlers.NewUsersHandlers(userSvc, logger),
	}

	router := httpserver.NewRouter(deps, gates, middleware.RequestID(logger))
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server:      server,
		db:          sqlDB,
		redisClient: redisClient,
		sessions:    sessionRepo,
		logger:      logger,
	}, nil
}

// Run starts serving HTTP traffic until context cancellation.
func (a *App) Run(ctx context.Context) error {
	go a.sweepExpiredSessions(ctx)
	return a.server.Run(ctx)
}

// sweepExpiredSessions garbage-collects expired session rows every hour.
func (a *App) sweepExpiredSessions(ctx context.Context) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := a.sessions.DeleteExpired(ctx)
			if err != nil {
				a.logger.Warn("session sweep failed", zap.Error(err))
				continue
			}
			if removed > 0 {
				a.logger.Info("expired sessions removed", zap.Int64("count", removed))
			}
		}
	}
}

// Close releases acquired resources.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
