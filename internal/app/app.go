package app

import (
	"context"
	"fmt"
	"time"

	"tasklist/internal/config"
	"tasklist/internal/httpmw"
	"tasklist/internal/repo"
	"tasklist/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type App struct {
	cfg    config.Config
	logger zerolog.Logger
	db     *pgxpool.Pool
	redis  *redis.Client
	router *gin.Engine
}

func New(cfg config.Config, logger zerolog.Logger) (*App, error) {
	a := &App{cfg: cfg, logger: logger}

	store, err := a.newStore()
	if err != nil {
		a.closeClients()
		return nil, err
	}
	logger.Info().
		Str("driver", cfg.Store.Driver).
		Msg("task store ready")

	svc := service.NewTaskService(store)
	a.router = newRouter(cfg, logger, svc)
	return a, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Close(_ context.Context) error {
	a.closeClients()
	return nil
}

func (a *App) closeClients() {
	if a.redis != nil {
		_ = a.redis.Close()
		a.redis = nil
	}
	if a.db != nil {
		a.db.Close()
		a.db = nil
	}
}

func (a *App) newStore() (repo.TaskStore, error) {
	switch a.cfg.Store.Driver {
	case config.DriverMemory:
		return repo.NewMemoryTaskStore(), nil
	case config.DriverFile:
		return repo.NewFileTaskStore(a.cfg.Store.File, a.cfg.Store.Forgiving, a.logger), nil
	case config.DriverRedis:
		rdb, err := newRedis(a.cfg.Redis)
		if err != nil {
			return nil, err
		}
		a.redis = rdb
		return repo.NewRedisTaskStore(rdb, a.cfg.Redis.Key), nil
	case config.DriverPostgres:
		if a.cfg.PG.Migrate {
			if err := runMigrations(a.cfg.PG.DSN); err != nil {
				return nil, err
			}
			a.logger.Info().Msg("migrations applied")
		}
		db, err := newPostgres(a.cfg.PG.DSN)
		if err != nil {
			return nil, err
		}
		a.db = db
		return repo.NewPGTaskStore(db), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", a.cfg.Store.Driver)
}

func newPostgres(dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("pg parse config: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MinConns = 2
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("pg connect: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg ping: %w", err)
	}

	return pool, nil
}

func newRedis(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return rdb, nil
}

func runMigrations(dsn string) error {
	db, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return fmt.Errorf("goose open db: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(repo.Migrations)
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

func newRouter(cfg config.Config, logger zerolog.Logger, svc *service.TaskService) *gin.Engine {
	if cfg.App.Env == config.EnvProd {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(httpmw.RequestID(), httpmw.AccessLog(logger), httpmw.Recover(logger))

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", httpmw.HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", "Content-Type", httpmw.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}))

	Setup(r, cfg, logger, svc)
	return r
}
