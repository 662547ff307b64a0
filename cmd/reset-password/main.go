package main

import (
	"context"
	"flag"
	"os"

	"go-commerce-api/internal/config"
	"go-commerce-api/internal/repository"
	"go-commerce-api/internal/service"
	"go-commerce-api/pkg/database"
	"go-commerce-api/pkg/logger"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	email := flag.String("email", "", "email of the user to reset")
	password := flag.String("password", "", "new password (min 6 characters)")
	flag.Parse()

	if *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	appLog := logger.Setup(cfg.LogLevel, "console", os.Stderr)

	db, err := database.Connect(database.Options{DSN: cfg.DSN(), LogLevel: zerolog.WarnLevel, MaxOpenConns: 1}, appLog)
	if err != nil {
		appLog.Fatal().Err(err).Msg("connect database")
	}

	users := service.NewUserService(repository.NewUserRepo(db), repository.NewRoleRepo(db))
	if err := users.SetPassword(context.Background(), *email, *password); err != nil {
		appLog.Fatal().Err(err).Str("email", *email).Msg("reset password")
	}

	appLog.Info().Str("email", *email).Msg("password reset, existing sessions ended")
}
