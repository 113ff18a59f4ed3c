package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"

	"github.com/vncsmyrnk/playervote/internal/adapters/handler/http"
	"github.com/vncsmyrnk/playervote/internal/adapters/notifier/logsink"
	"github.com/vncsmyrnk/playervote/internal/adapters/notifier/rabbitmq"
	"github.com/vncsmyrnk/playervote/internal/adapters/oauth/google"
	"github.com/vncsmyrnk/playervote/internal/adapters/ratelimit/redis"
	"github.com/vncsmyrnk/playervote/internal/adapters/repository/disabled"
	"github.com/vncsmyrnk/playervote/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/playervote/internal/config"
	"github.com/vncsmyrnk/playervote/internal/core/ports"
	"github.com/vncsmyrnk/playervote/internal/core/services"
)

type repositories struct {
	players ports.PlayerRepository
	votes   ports.VoteRepository
	results ports.ResultsRepository
	users   ports.UserRepository
	tokens  ports.AuthRepository
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(cfg.Log.Logger(os.Stdout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, db, err := openStorage(ctx, cfg)
	if err != nil {
		slog.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
	}

	var notifier ports.Notifier
	if cfg.RabbitMQ.URL != "" {
		notifier = rabbitmq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue)
	} else {
		notifier = logsink.New(slog.Default())
	}

	var voteLimiter func(stdhttp.Handler) stdhttp.Handler
	if cfg.RateLimit.Enabled() {
		rdb := openRedis(ctx, cfg.Redis)
		if rdb != nil {
			defer rdb.Close()
		}
		voteLimiter = redis.NewLimiter(rdb, cfg.RateLimit.Limit, cfg.RateLimit.Window).Middleware
	} else {
		slog.Info("vote rate limiting disabled")
	}

	playerSvc := services.NewPlayerService(repos.players)
	voteSvc := services.NewVoteService(repos.players, repos.votes, notifier)
	resultsSvc := services.NewResultsService(repos.results, repos.votes)
	summarySvc := services.NewSummaryService(resultsSvc, notifier)
	adminSvc := services.NewAdminService(repos.players, repos.votes, summarySvc)
	userSvc := services.NewUserService(repos.users)
	authSvc := services.NewAuthService(repos.users, repos.tokens, google.NewVerifier(), services.AuthConfig{
		JWTSecret:      cfg.Auth.JWTSecret,
		GoogleClientID: cfg.Auth.GoogleClientID,
		OwnerOpenID:    cfg.Auth.OwnerOpenID,
		OwnerEmail:     cfg.Auth.OwnerEmail,
	})

	var pinger http.Pinger
	if db != nil {
		pinger = db
	}

	handler := http.NewHandler(http.Handlers{
		Players:        http.NewPlayerHandler(playerSvc),
		Results:        http.NewResultsHandler(resultsSvc),
		Votes:          http.NewVoteHandler(voteSvc),
		Admin:          http.NewAdminHandler(adminSvc),
		Auth:           http.NewAuthHandler(authSvc, cfg.Auth.RedirectURL, cfg.Auth.CookieDomain, stdhttp.SameSiteLaxMode),
		Users:          http.NewUserHandler(userSvc),
		Health:         http.NewHealthHandler(pinger),
		Authenticator:  http.NewAuthenticator(authSvc),
		VoteLimiter:    voteLimiter,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	server := &stdhttp.Server{Addr: cfg.HTTPAddr, Handler: handler}

	go func() {
		slog.Info("server listening", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
}

func openStorage(ctx context.Context, cfg *config.Config) (repositories, *sql.DB, error) {
	if cfg.StorageMode == config.StorageModeDisabled {
		slog.Warn("storage is disabled, votes will not be persisted")
		return repositories{
			players: disabled.NewPlayerRepository(),
			votes:   disabled.NewVoteRepository(),
			results: disabled.NewResultsRepository(),
			users:   disabled.NewUserRepository(),
			tokens:  disabled.NewAuthRepository(),
		}, nil, nil
	}

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return repositories{}, nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return repositories{}, nil, err
	}
	if err := postgres.MigrateUp(ctx, db); err != nil {
		db.Close()
		return repositories{}, nil, err
	}

	return repositories{
		players: postgres.NewPlayerRepository(db),
		votes:   postgres.NewVoteRepository(db),
		results: postgres.NewResultsRepository(db),
		users:   postgres.NewUserRepository(db),
		tokens:  postgres.NewAuthRepository(db),
	}, db, nil
}

// openRedis returns nil when no address is configured or the server cannot be
// reached, which leaves vote casting unthrottled.
func openRedis(ctx context.Context, cfg config.RedisConfig) *goredis.Client {
	if cfg.Addr == "" {
		return nil
	}

	rdb := goredis.NewClient(&goredis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		slog.Warn("redis unavailable, vote rate limiting disabled", "addr", cfg.Addr, "error", err)
		rdb.Close()
		return nil
	}
	return rdb
}
