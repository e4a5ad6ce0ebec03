package repositories

import (
	"errors"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rohits-web03/sharevault/internal/models"
)

const sqlitePrefix = "sqlite:"

var ErrNoDatabaseURL = errors.New("database url is empty")

// ConnectDatabase opens the document store behind dsn and runs migrations.
// A postgres:// or postgresql:// url selects Postgres, a "sqlite:" prefix
// selects a SQLite file (or ":memory:").
func ConnectDatabase(dsn string, l *log.Logger) (*gorm.DB, error) {
	if dsn == "" {
		return nil, ErrNoDatabaseURL
	}

	var dialector gorm.Dialector
	if strings.HasPrefix(dsn, sqlitePrefix) {
		dialector = sqlite.Open(strings.TrimPrefix(dsn, sqlitePrefix))
	} else {
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(l, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}

	if dialector.Name() == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// SQLite allows a single writer.
		sqlDB.SetMaxOpenConns(1)
	}

	// Run migrations
	if err := db.AutoMigrate(&models.User{}, &models.File{}); err != nil {
		return nil, err
	}
	l.WithField("dialect", dialector.Name()).Info("successfully connected to database")
	return db, nil
}
