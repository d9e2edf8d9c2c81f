package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"findash/internal/config"
	"findash/internal/database"
	"findash/internal/logger"
	"findash/internal/services"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("create-user error: %v", err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return fmt.Errorf("usage: create-user <name>")
	}
	name := strings.Join(os.Args[1:], " ")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	if err := dbManager.RunMigrations(cfg.Policy()); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	user, err := services.NewUserService(dbManager.DB()).CreateUser(context.Background(), name)
	if err != nil {
		return err
	}

	logger.Get().Infow("user created", "user_id", user.ID, "name", user.Name)
	fmt.Printf("created user %q id=%d\n", user.Name, user.ID)
	return nil
}
