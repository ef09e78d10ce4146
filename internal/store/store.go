package store

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/ashstar-ai/mainframe/internal/config"
	"github.com/ashstar-ai/mainframe/internal/model/chat"
	"github.com/ashstar-ai/mainframe/internal/model/review"
	"github.com/ashstar-ai/mainframe/internal/model/user"
)

// Store is the record store backing users, sessions, turns and reviews.
type Store struct {
	db *gorm.DB
}

// Open connects to postgres when a DSN is configured, otherwise to an
// embedded sqlite file, and migrates the record schemas.
func Open(cfg config.DBConfig) (*Store, error) {
	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	var dialector gorm.Dialector
	if cfg.PostgresDSN != "" {
		dialector = postgres.Open(cfg.PostgresDSN)
	} else {
		dialector = sqlite.Open(cfg.SQLitePath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("failed to open record store: %w", err)
	}

	return NewWithDB(db)
}

// NewWithDB wraps an existing connection, migrating the record schemas.
// Tests use this with an in-memory sqlite database.
func NewWithDB(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&user.User{}, &chat.Session{}, &chat.Turn{}, &review.Review{}); err != nil {
		return nil, fmt.Errorf("failed to migrate record store: %w", err)
	}
	return &Store{db: db}, nil
}
