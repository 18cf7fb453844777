package database

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/deskkit/applauncher/internal/models"
)

// skipBatchSize bounds the rows per insert statement for skip diagnostics
const skipBatchSize = 100

// Repository handles all database operations for scan history
type Repository struct {
	db *DB
}

// NewRepository creates a new repository instance
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// CreateRun inserts a run summary and its skips in one transaction
func (r *Repository) CreateRun(run *models.ScanRun) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Skips").Create(run).Error; err != nil {
			return errors.Wrap(err, "failed to insert scan run")
		}

		if len(run.Skips) == 0 {
			return nil
		}

		for i := range run.Skips {
			run.Skips[i].ScanRunID = run.ID
		}
		if err := tx.CreateInBatches(&run.Skips, skipBatchSize).Error; err != nil {
			return errors.Wrap(err, "failed to insert scan skips")
		}

		return nil
	})
}

// GetByRunID retrieves a run and its skips by run id
func (r *Repository) GetByRunID(runID string) (*models.ScanRun, error) {
	var run models.ScanRun
	result := r.db.Preload("Skips").Where("run_id = ?", runID).First(&run)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, errors.Wrap(result.Error, "failed to get scan run")
	}
	return &run, nil
}

// RecentRuns returns up to limit runs, newest first, with their skips
func (r *Repository) RecentRuns(limit int) ([]models.ScanRun, error) {
	var runs []models.ScanRun
	query := r.db.Preload("Skips").Order("started_at DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&runs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to query scan runs")
	}
	return runs, nil
}

// CountRuns returns the number of recorded runs
func (r *Repository) CountRuns() (int64, error) {
	var count int64
	if err := r.db.Model(&models.ScanRun{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count scan runs")
	}
	return count, nil
}

// Clear removes all recorded runs and skips
func (r *Repository) Clear() error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM scan_skips").Error; err != nil {
			return errors.Wrap(err, "failed to clear scan skips")
		}
		if err := tx.Exec("DELETE FROM scan_runs").Error; err != nil {
			return errors.Wrap(err, "failed to clear scan runs")
		}
		return nil
	})
}
