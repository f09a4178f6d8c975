package repository

import (
	"time"

	"gorm.io/gorm"

	"drivesync/internal/model"
)

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Save(outcome model.Outcome) error {
	errMsg := ""
	if outcome.Err != nil {
		errMsg = outcome.Err.Error()
	}

	transfer := model.Transfer{
		FileID:   outcome.FileID,
		Name:     outcome.Name,
		Key:      outcome.Key,
		Status:   outcome.Status,
		Reason:   outcome.Reason,
		Bytes:    outcome.Bytes,
		ErrMsg:   errMsg,
		SyncedAt: time.Now(),
	}

	return r.db.Create(&transfer).Error
}

func (r *HistoryRepository) GetRecent(limit int) ([]model.Transfer, error) {
	var transfers []model.Transfer
	result := r.db.
		Order("synced_at desc").
		Limit(limit).
		Find(&transfers)

	return transfers, result.Error
}

func (r *HistoryRepository) GetFailed() ([]model.Transfer, error) {
	var transfers []model.Transfer
	result := r.db.
		Where("status = ?", model.StatusFailed).
		Order("synced_at desc").
		Find(&transfers)

	return transfers, result.Error
}
