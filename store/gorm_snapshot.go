package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/2582034744-ui/yisu-hotel-platform/models"
)

const defaultSnapshotName = "default"

// GormSnapshotter keeps the snapshot document in a single row of the
// snapshots table of any gorm-supported database.
type GormSnapshotter struct {
	DB   *gorm.DB
	name string
}

// NewGormSnapshotter migrates the snapshots table and returns a snapshotter
// bound to the default row.
func NewGormSnapshotter(db *gorm.DB) (*GormSnapshotter, error) {
	if err := db.AutoMigrate(&models.SnapshotRecord{}); err != nil {
		return nil, fmt.Errorf("migrate snapshots table: %w", err)
	}
	return &GormSnapshotter{DB: db, name: defaultSnapshotName}, nil
}

func (g *GormSnapshotter) Name() string {
	return "gorm:" + g.DB.Dialector.Name()
}

func (g *GormSnapshotter) Load(ctx context.Context) ([]byte, error) {
	var rec models.SnapshotRecord
	err := g.DB.WithContext(ctx).Where("name = ?", g.name).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot row: %w", err)
	}
	return []byte(rec.Payload), nil
}

func (g *GormSnapshotter) Save(ctx context.Context, doc []byte) error {
	rec := models.SnapshotRecord{
		Name:    g.name,
		Payload: datatypes.JSON(doc),
	}
	err := g.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&rec).Error
	if err != nil {
		return fmt.Errorf("upsert snapshot row: %w", err)
	}
	return nil
}
