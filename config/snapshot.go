package config

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/2582034744-ui/yisu-hotel-platform/store"
)

// OpenSnapshotter builds the backend named by cfg.Backend. The returned
// close func releases any database connection.
func OpenSnapshotter(cfg Config) (store.Snapshotter, func() error, error) {
	noop := func() error { return nil }

	if cfg.Backend == BackendFile {
		return store.NewFileSnapshotter(cfg.DataFile), noop, nil
	}

	db, err := ConnectDatabase(cfg)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("get sql.DB: %w", err)
	}

	snap, err := store.NewGormSnapshotter(db)
	if err != nil {
		sqlDB.Close()
		return nil, nil, err
	}
	logrus.WithField("backend", snap.Name()).Info("database snapshot backend ready")
	return snap, sqlDB.Close, nil
}
