// Package store persists user feedback on review results in postgres.
package store

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"resumelens/internal/config"
	"resumelens/internal/errors"
)

// FeedbackNote is a free-text note left by a user. Name and email are
// optional, the message is not.
type FeedbackNote struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"type:text" json:"name,omitempty"`
	Email     string    `gorm:"type:text" json:"email,omitempty"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (FeedbackNote) TableName() string {
	return "feedback_notes"
}

// InitDatabase opens the postgres connection and migrates the schema
func InitDatabase(cfg *config.DatabaseConfig, logger *errors.Logger, debug bool) (*gorm.DB, error) {
	logLevel := gormlogger.Silent
	if debug {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed,
			"Failed to connect to database", err)
	}

	if err := db.AutoMigrate(&FeedbackNote{}); err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed,
			"Failed to migrate database schema", err)
	}

	logger.Info("Database connected", "host", cfg.Host, "database", cfg.Name)
	return db, nil
}

// FeedbackRepository stores and lists feedback notes
type FeedbackRepository interface {
	Create(note *FeedbackNote) error
	Recent(limit int) ([]FeedbackNote, error)
	Count() (int64, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository creates a postgres-backed feedback repository
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(note *FeedbackNote) error {
	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}
	if err := r.db.Create(note).Error; err != nil {
		return errors.NewStorageError(errors.ErrCodeStorageFailed,
			"Failed to store feedback", err)
	}
	return nil
}

func (r *feedbackRepository) Recent(limit int) ([]FeedbackNote, error) {
	var notes []FeedbackNote
	err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Find(&notes).Error
	if err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed,
			"Failed to list feedback", err)
	}
	return notes, nil
}

func (r *feedbackRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&FeedbackNote{}).Count(&count).Error; err != nil {
		return 0, errors.NewStorageError(errors.ErrCodeStorageFailed,
			"Failed to count feedback", err)
	}
	return count, nil
}
