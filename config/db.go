package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	gomysql "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/2582034744-ui/yisu-hotel-platform/utils"
)

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	cfg := baseMySQLConfig()
	cfg.User = u.User.Username()
	cfg.Passwd, _ = u.User.Password()
	cfg.Addr = net.JoinHostPort(u.Hostname(), port)
	cfg.DBName = dbName
	for key, values := range u.Query() {
		if len(values) == 0 {
			continue
		}
		switch key {
		case "parseTime", "loc":
			// fixed by baseMySQLConfig
		default:
			cfg.Params[key] = values[0]
		}
	}
	return cfg.FormatDSN(), nil
}

func baseMySQLConfig() *gomysql.Config {
	cfg := gomysql.NewConfig()
	cfg.Net = "tcp"
	cfg.ParseTime = true
	cfg.Loc = time.Local
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg
}

// resolveMySQLDSN prefers MYSQL_URL, then DATABASE_URL, then the DB_* parts.
// A URL that is not mysql:// is taken as a ready DSN.
func resolveMySQLDSN() (string, error) {
	raw := utils.EnvOrDefault("MYSQL_URL", os.Getenv("DATABASE_URL"))
	raw = strings.TrimSpace(raw)
	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	cfg := baseMySQLConfig()
	cfg.User = utils.EnvOrDefault("DB_USER", "root")
	cfg.Passwd = utils.EnvOrDefault("DB_PASS", "")
	cfg.Addr = net.JoinHostPort(utils.EnvOrDefault("DB_HOST", "127.0.0.1"), utils.EnvOrDefault("DB_PORT", "3306"))
	cfg.DBName = utils.EnvOrDefault("DB_NAME", "yisu_hotel")
	return cfg.FormatDSN(), nil
}

// resolvePostgresDSN accepts DATABASE_URL as-is (URL or keyword form) or
// builds a keyword DSN from the DB_* parts.
func resolvePostgresDSN() string {
	if raw := utils.EnvOrDefault("DATABASE_URL", ""); raw != "" {
		return raw
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		utils.EnvOrDefault("DB_HOST", "127.0.0.1"),
		utils.EnvOrDefault("DB_PORT", "5432"),
		utils.EnvOrDefault("DB_USER", "postgres"),
		utils.EnvOrDefault("DB_PASS", ""),
		utils.EnvOrDefault("DB_NAME", "yisu_hotel"),
		utils.EnvOrDefault("DB_SSLMODE", "disable"),
	)
}

func dialector(cfg Config) (gorm.Dialector, error) {
	switch cfg.Backend {
	case BackendMySQL:
		dsn, err := resolveMySQLDSN()
		if err != nil {
			return nil, fmt.Errorf("resolve mysql dsn: %w", err)
		}
		return mysql.Open(dsn), nil
	case BackendPostgres:
		return postgres.Open(resolvePostgresDSN()), nil
	case BackendSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
		return sqlite.Open(cfg.SQLitePath), nil
	}
	return nil, fmt.Errorf("backend %q has no database", cfg.Backend)
}

// ConnectDatabase opens the database behind a gorm-backed snapshot. SQL
// logging goes through logrus and only slow or failed statements show up.
func ConnectDatabase(cfg Config) (*gorm.DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	gormLogger := logger.New(
		logrus.WithField("component", "gorm"),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := gorm.Open(d, &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Backend, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	return db, nil
}
