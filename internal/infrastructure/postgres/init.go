package postgres

import (
	"log"

	"github.com/CosmiCloud/othub-processor/internal/config"
	"github.com/CosmiCloud/othub-processor/internal/infrastructure/logger"
	"github.com/CosmiCloud/othub-processor/internal/infrastructure/migrate"
	"github.com/CosmiCloud/othub-processor/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.ProcessorConfig) *gorm.DB {
	dsn := cfg.OthubDB.Dsn()
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	// Versioned migrations own txn_header when a path is configured;
	// AutoMigrate is the dev fallback.
	if cfg.OthubDB.MigrationsPath != "" {
		if err := migrate.Run(db, cfg.OthubDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v\n", err.Error())
		}
	} else {
		db.AutoMigrate(&models.TxnHeaderModel{})
	}
	db.AutoMigrate(&logger.TxnAttemptEvent{})

	return db
}
