package model

import (
	"time"

	"gorm.io/gorm"
)

// Transfer is the persisted history row for one file outcome.
type Transfer struct {
	gorm.Model
	FileID   string        `gorm:"not null;index"`
	Name     string        `gorm:"not null"`
	Key      string        `gorm:"not null"`
	Status   OutcomeStatus `gorm:"not null"`
	Reason   string
	Bytes    int64
	ErrMsg   string
	SyncedAt time.Time `gorm:"not null;index"`
}
