package main

import (
	"context"
	"database/sql"
	"errors"
	stdhttp "net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/lively-votes/api/internal/adapters/broadcast"
	handler "github.com/lively-votes/api/internal/adapters/handler/http"
	repo "github.com/lively-votes/api/internal/adapters/repository/postgres"
	"github.com/lively-votes/api/internal/config"
	"github.com/lively-votes/api/internal/core/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal(err)
	}

	db, err := sql.Open("postgres", cfg.DB.ConnString())
	if err != nil {
		logrus.Fatal(err)
	}
	defer db.Close()

	userRepo := repo.NewUserRepository(db)
	pollRepo := repo.NewPollRepository(db)
	voteRepo := repo.NewVoteRepository(db)

	broker := broadcast.NewMemoryBroker()
	defer broker.Close()

	tokenService := services.NewTokenService(
		cfg.AccessTokenSecret, cfg.RefreshTokenSecret,
		cfg.AccessTokenTTL, cfg.RefreshTokenTTL,
	)
	authService := services.NewAuthService(userRepo, tokenService)
	userService := services.NewUserService(userRepo)
	pollService := services.NewPollService(pollRepo, userRepo)
	voteService := services.NewVoteService(pollRepo, voteRepo, userRepo, broker)

	router := handler.NewHandler(
		handler.NewAuthHandler(authService, cfg.RefreshTokenTTL),
		handler.NewUserHandler(userService),
		handler.NewPollHandler(pollService),
		handler.NewVoteHandler(voteService),
		handler.NewRealtimeHandler(broker, cfg.AllowedOrigins),
		authService,
		cfg.AllowedOrigins,
	)

	server := &stdhttp.Server{Addr: cfg.Addr, Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logrus.Infof("listening on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			logrus.Fatal(err)
		}
	}()

	<-ctx.Done()
	logrus.Info("gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Fatal(err)
	}
}
