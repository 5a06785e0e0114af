package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"comment-pulse/internal/models"
	"comment-pulse/shared/config"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ErrReportNotFound indicates no report exists under the requested id.
var ErrReportNotFound = errors.New("analysis report not found")

// Store persists analysis reports in a SQLite database. Reports are
// created once and read back by id; there is no update or delete path.
type Store struct {
	db *gorm.DB
}

func Open(cfg *config.StorageConfig) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", cfg.DatabasePath, err)
	}

	if err := db.AutoMigrate(&models.AnalysisReport{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Store{db: db}, nil
}

// Create stores a new report and returns its assigned id.
func (s *Store) Create(ctx context.Context, report *models.AnalysisReport) (string, error) {
	report.ID = uuid.NewString()
	report.CreatedAt = time.Now()

	if err := s.db.WithContext(ctx).Create(report).Error; err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}

	return report.ID, nil
}

// FindByID loads a previously stored report. Unknown ids return
// ErrReportNotFound.
func (s *Store) FindByID(ctx context.Context, id string) (*models.AnalysisReport, error) {
	var report models.AnalysisReport
	if err := s.db.WithContext(ctx).First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to load report %s: %w", id, err)
	}

	return &report, nil
}
