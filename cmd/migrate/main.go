package main

import (
	"github.com/joho/godotenv"
	"github.com/shorechef/backend/config"
	"github.com/shorechef/backend/internal/database"
	"github.com/shorechef/backend/internal/logging"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}

	db, err := database.Open(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer database.Close(db)

	if err := database.RunMigrations(db, log); err != nil {
		log.WithError(err).Fatal("Failed to apply migrations")
	}
	log.WithField("driver", cfg.StoreDriver).Info("All migrations applied successfully")
}
