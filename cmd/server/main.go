package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/emonshikder007/chat-app/config"
	"github.com/emonshikder007/chat-app/internal/events"
	"github.com/emonshikder007/chat-app/internal/gateway"
	groupRepository "github.com/emonshikder007/chat-app/internal/group/repository"
	groupUsecase "github.com/emonshikder007/chat-app/internal/group/usecase"
	messageRepository "github.com/emonshikder007/chat-app/internal/message/repository"
	messageUsecase "github.com/emonshikder007/chat-app/internal/message/usecase"
	"github.com/emonshikder007/chat-app/internal/server"
	userRepository "github.com/emonshikder007/chat-app/internal/user/repository"
	userUsecase "github.com/emonshikder007/chat-app/internal/user/usecase"
	"github.com/emonshikder007/chat-app/pkg/logger"
)

func main() {
	v, err := config.LoadConfig("config")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg, err := config.ParseConfig(v)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	lg, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}

	connector := pgdriver.NewConnector(pgdriver.WithDSN(cfg.Bun.DSN))
	sqlDB := sql.OpenDB(connector)
	db := bun.NewDB(sqlDB, pgdialect.New())
	defer db.Close()

	if err := db.PingContext(context.Background()); err != nil {
		log.Fatalf("failed to ping db: %v", err)
	}

	userRepo := userRepository.NewUserRepository(db, *lg)
	groupRepo := groupRepository.NewGroupRepository(db, *lg)
	messageRepo := messageRepository.NewMessageRepository(db, *lg)

	var bus events.Bus
	if cfg.Nats.Enabled {
		natsBus, err := events.NewNatsBus(cfg.Nats.URL, *lg)
		if err != nil {
			log.Fatalf("failed to connect to NATS: %v", err)
		}
		defer natsBus.Close()
		bus = natsBus
	} else {
		bus = events.NewLocalBus()
	}

	users := userUsecase.NewUserUsecase(userRepo, *lg, *cfg)
	groups := groupUsecase.NewGroupUsecase(groupRepo, *lg)
	messages := messageUsecase.NewMessageUsecase(messageRepo, groupRepo, bus, *lg)

	hub := gateway.NewHub(groupRepo, *lg)
	go hub.Run()

	for _, subject := range []string{events.SubjectNewMessage, events.SubjectNewGroupMessage} {
		if _, err := bus.Subscribe(subject, hub.Route); err != nil {
			log.Fatalf("failed to subscribe hub to %s: %v", subject, err)
		}
	}

	handler := server.NewHandler(users, groups, messages, *lg)
	router := server.NewRouter(handler, hub, *cfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		lg.Info("server listening", "port", cfg.Server.Port, "env", cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	lg.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		lg.Error("http shutdown failed", "err", err)
	}
	hub.Shutdown()

	lg.Info("server stopped")
}
