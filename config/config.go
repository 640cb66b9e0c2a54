// Package config reads the process configuration from the environment and
// builds the snapshot backend it selects.
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/2582034744-ui/yisu-hotel-platform/utils"
)

// Backend names where the dataset snapshot is kept.
type Backend string

const (
	BackendFile     Backend = "file"
	BackendMySQL    Backend = "mysql"
	BackendPostgres Backend = "postgres"
	BackendSQLite   Backend = "sqlite"
)

type Config struct {
	Port        string
	GinMode     string
	LogLevel    string
	CORSOrigins []string

	Backend    Backend
	DataFile   string
	SQLitePath string
	Autosave   bool

	UploadDir string
}

// Load reads every variable, applying defaults. Only an unknown backend is
// an error.
func Load() (Config, error) {
	cfg := Config{
		Port:        utils.EnvOrDefault("PORT", "3001"),
		GinMode:     utils.EnvOrDefault("GIN_MODE", ""),
		LogLevel:    utils.EnvOrDefault("LOG_LEVEL", "info"),
		CORSOrigins: utils.EnvList("CORS_ORIGINS"),
		Backend:     Backend(strings.ToLower(utils.EnvOrDefault("DATA_BACKEND", string(BackendFile)))),
		DataFile:    utils.EnvOrDefault("DATA_FILE", "data/hotels-data.json"),
		SQLitePath:  utils.EnvOrDefault("SQLITE_PATH", "hotel_snapshot.db"),
		Autosave:    utils.EnvBool("AUTOSAVE", true),
		UploadDir:   utils.EnvOrDefault("UPLOAD_DIR", "uploads"),
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}

	switch cfg.Backend {
	case BackendFile, BackendMySQL, BackendPostgres, BackendSQLite:
	default:
		return Config{}, fmt.Errorf("unknown DATA_BACKEND %q", cfg.Backend)
	}
	return cfg, nil
}

// SetupLogging configures the standard logrus logger.
func SetupLogging(level string) {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.WithField("level", level).Warn("unknown LOG_LEVEL, using info")
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}
