package models

import (
	"time"

	"gorm.io/datatypes"
)

// SnapshotRecord stores the whole dataset as one JSON document when the
// store is backed by a SQL database instead of a file.
type SnapshotRecord struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:64;uniqueIndex" json:"name"`
	Payload   datatypes.JSON `gorm:"column:payload" json:"payload"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (SnapshotRecord) TableName() string { return "snapshots" }
