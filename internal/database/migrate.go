package database

import (
	"fmt"

	"github.com/shorechef/backend/internal/store"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RunMigrations creates the recipe document schema. PostgreSQL also gets
// the pgvector extension.
func RunMigrations(db *gorm.DB, log logrus.FieldLogger) error {
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
			return fmt.Errorf("database: enabling pgvector: %w", err)
		}
	}

	if err := db.AutoMigrate(&store.Document{}); err != nil {
		return fmt.Errorf("database: migrating %s: %w", store.Document{}.TableName(), err)
	}

	log.WithField("dialect", db.Dialector.Name()).Info("Database schema is up to date")
	return nil
}
