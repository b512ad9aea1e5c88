package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AmbHasan/My-quran-journey/model"
	"github.com/AmbHasan/My-quran-journey/shared"
)

type PostgresService struct {
	appContext.DefaultService
	db *gorm.DB

	driver       string
	database     string
	maxOpenConns int
	maxIdleConns int
}

const POSTGRES_SVC = "postgres_svc"

func (ds PostgresService) Id() string {
	return POSTGRES_SVC
}

func (ds PostgresService) Db() *gorm.DB {
	return ds.db
}

func (ds *PostgresService) Configure(ctx *appContext.Context) error {
	ds.driver = strings.ToLower(os.Getenv("DB_DRIVER"))
	if ds.driver == "" {
		ds.driver = "postgres"
	}

	ds.database = os.Getenv("DATABASE_URL")
	if ds.database == "" && ds.driver == "sqlite" {
		ds.database = "quran_journey.db"
	}
	if ds.database == "" {
		// Fallback to individual environment variables
		host := envOrDefault("DB_HOST", "localhost")
		port := envOrDefault("DB_PORT", "5432")
		user := envOrDefault("DB_USER", "postgres")
		password := envOrDefault("DB_PASSWORD", "postgres")
		dbname := envOrDefault("DB_NAME", "quran_app")
		sslmode := envOrDefault("DB_SSLMODE", "disable")
		timezone := envOrDefault("DB_TIMEZONE", "UTC")

		ds.database = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
			host, user, password, dbname, port, sslmode, timezone)
	}

	ds.maxOpenConns = envIntOrDefault("DB_MAX_OPEN_CONNS", 50)
	ds.maxIdleConns = envIntOrDefault("DB_MAX_IDLE_CONNS", 10)

	return ds.DefaultService.Configure(ctx)
}

func (ds *PostgresService) dialector() gorm.Dialector {
	if ds.driver == "sqlite" {
		return sqlite.Open(ds.database)
	}
	return postgres.Open(ds.database)
}

func (ds *PostgresService) Start() (err error) {
	// Retry connection with exponential backoff
	maxRetries := 10
	retryDelay := time.Second

	for attempt := 1; attempt <= maxRetries; attempt++ {
		log.WithFields(log.Fields{"driver": ds.driver, "attempt": attempt}).Info("Connecting to database")

		ds.db, err = gorm.Open(ds.dialector(), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Error),
			TranslateError: true,
		})

		if err == nil {
			err = ds.Ping(context.Background())
			if err == nil {
				break
			}
		}

		if attempt == maxRetries {
			log.WithError(err).Errorf("Failed to connect to database after %d attempts", maxRetries)
			return err
		}

		log.WithError(err).Warnf("Database connection failed, retrying in %v", retryDelay)
		time.Sleep(retryDelay)

		retryDelay *= 2
		if retryDelay > 10*time.Second {
			retryDelay = 10 * time.Second
		}
	}

	if sqlDB, dbErr := ds.db.DB(); dbErr == nil {
		sqlDB.SetMaxOpenConns(ds.maxOpenConns)
		sqlDB.SetMaxIdleConns(ds.maxIdleConns)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err = Migrate(ds.db); err != nil {
		log.WithError(err).Error("Failed to migrate database")
		return err
	}

	log.Info("Database connected and migrated successfully")
	return nil
}

// Migrate creates or updates every table the application uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.LearningSession{},
		&model.UserProgress{},
	)
}

func (ds *PostgresService) Ping(ctx context.Context) error {
	if ds.db == nil {
		return errors.New("database not connected")
	}
	sqlDB, err := ds.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (ds *PostgresService) Shutdown() {
	if ds.db == nil {
		return
	}
	sqlDB, err := ds.db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

// HandleDBError logs err with a classification and wraps it so callers can
// still match the gorm sentinel.
func HandleDBError(err error) error {
	if err == nil {
		return nil
	}

	var statusCode int
	var errorType string

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		statusCode = http.StatusNotFound
		errorType = "NOT_FOUND"
	case errors.Is(err, gorm.ErrDuplicatedKey):
		statusCode = http.StatusConflict
		errorType = "CONFLICT"
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		statusCode = http.StatusBadRequest
		errorType = "FOREIGN_KEY_VIOLATION"
	case errors.Is(err, gorm.ErrInvalidTransaction):
		statusCode = http.StatusInternalServerError
		errorType = "TRANSACTION_ERROR"
	default:
		if isUniqueViolation(err) {
			statusCode = http.StatusConflict
			errorType = "UNIQUE_CONSTRAINT"
		} else if strings.Contains(err.Error(), "connection refused") {
			statusCode = http.StatusServiceUnavailable
			errorType = "DATABASE_CONNECTION_ERROR"
		} else {
			statusCode = http.StatusInternalServerError
			errorType = "INTERNAL_ERROR"
		}
	}

	logEntry := log.WithFields(log.Fields{
		"status_code": statusCode,
		"error_type":  errorType,
		"error":       err.Error(),
	})

	if statusCode >= 500 {
		logEntry.Error("Database error occurred")
	} else {
		logEntry.Warn("Database operation failed")
	}

	return fmt.Errorf("%s: %w", errorType, err)
}

// wrapPersistence classifies a storage error and marks it as ErrPersistence.
func wrapPersistence(err error) error {
	return fmt.Errorf("%w: %w", shared.ErrPersistence, HandleDBError(err))
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOrDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.WithField("key", key).Warnf("Invalid integer %q, using %d", v, def)
		return def
	}
	return n
}

func envDurationOrDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.WithField("key", key).Warnf("Invalid duration %q, using %v", v, def)
		return def
	}
	return d
}
