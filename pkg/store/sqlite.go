package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/cashlink-hq/cashlinkd/pkg/models"
)

// intentRecord is the sqlite row backing an intent
type intentRecord struct {
	ID          string    `gorm:"primaryKey;size:66"`
	Sender      string    `gorm:"not null;size:42"`
	Amount      string    `gorm:"not null"`
	Description string    `gorm:"size:400"`
	Status      string    `gorm:"not null;index"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (intentRecord) TableName() string {
	return "intents"
}

// SqliteStore persists intent records in a local sqlite database
type SqliteStore struct {
	db *gorm.DB
}

// NewSqliteStore opens (creating if needed) the sqlite database at path and
// runs migrations
func NewSqliteStore(path string) (*SqliteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path+"?_journal_mode=WAL"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open intent store: %w", err)
	}

	if err := db.AutoMigrate(&intentRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate intent store: %w", err)
	}

	return &SqliteStore{db: db}, nil
}

// SaveIntent inserts a new intent record. A duplicate id is rejected with
// ErrAlreadyExists rather than overwriting what the first sender stored.
func (s *SqliteStore) SaveIntent(ctx context.Context, intent models.Intent) error {
	record := intentRecord{
		ID:          intent.ID,
		Sender:      intent.Sender,
		Amount:      intent.Amount,
		Description: intent.Description,
		Status:      string(intent.Status),
		CreatedAt:   intent.CreatedAt,
		UpdatedAt:   intent.UpdatedAt,
	}

	// The primary key enforces uniqueness; a racing duplicate surfaces as a
	// constraint violation rather than slipping past a pre-check
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrAlreadyExists
		}
		return fmt.Errorf("failed to save intent: %w", err)
	}
	return nil
}

// GetIntent fetches the record for id
func (s *SqliteStore) GetIntent(ctx context.Context, id string) (models.Intent, error) {
	var record intentRecord
	err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Intent{}, ErrNotFound
	}
	if err != nil {
		return models.Intent{}, fmt.Errorf("failed to get intent: %w", err)
	}

	return models.Intent{
		ID:          record.ID,
		Sender:      record.Sender,
		Amount:      record.Amount,
		Description: record.Description,
		Status:      models.Status(record.Status),
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}, nil
}

// MarkClaimed transitions the record for id to claimed. Re-marking a claimed
// record or marking an unknown id succeeds without touching anything.
func (s *SqliteStore) MarkClaimed(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Model(&intentRecord{}).
		Where("id = ? AND status = ?", id, string(models.StatusPending)).
		Updates(map[string]interface{}{
			"status":     string(models.StatusClaimed),
			"updated_at": time.Now().UTC(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to mark intent claimed: %w", err)
	}
	return nil
}

// Ping checks the database connection is still usable
func (s *SqliteStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying database handle
func (s *SqliteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
