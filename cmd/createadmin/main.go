// Package main provides a one-shot command that creates the league admin account.
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/festy23/nations_league/internal/config"
	dbConfig "github.com/festy23/nations_league/internal/database/config"
	"github.com/festy23/nations_league/internal/database/database"
	"github.com/festy23/nations_league/internal/database/migrate"
	userModel "github.com/festy23/nations_league/internal/user/model"
	userRouter "github.com/festy23/nations_league/internal/user/router"
	"github.com/festy23/nations_league/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.LoadFromEnv()
	sugar, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = sugar.Sync() }()

	email := config.GetEnv("ADMIN_EMAIL", "admin@africanleague.com")
	password := config.GetEnv("ADMIN_PASSWORD", "")
	if password == "" {
		sugar.Fatalw("ADMIN_PASSWORD is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	dbCfg := dbConfig.LoadConfigFromEnv()
	db, err := database.Open(ctx, dbCfg)
	if err != nil {
		sugar.Fatalw("failed to connect to database", "error", err)
	}
	defer func() { _ = database.Close(db) }()

	if err := migrate.Run(db, dbCfg.Driver, &userModel.User{}); err != nil {
		sugar.Fatalw("failed to migrate database", "error", err)
	}

	user, created, err := userRouter.NewService(db, cfg.Auth, sugar).EnsureAdmin(ctx, email, password)
	if err != nil {
		sugar.Fatalw("failed to create admin", "email", email, "error", err)
	}
	if !created {
		sugar.Infow("admin already exists", "email", user.Email, "role", user.Role)
		return
	}
	sugar.Infow("admin created", "email", user.Email, "user_id", user.ID)
}
