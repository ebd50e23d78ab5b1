package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"agri_holding/config"
	"agri_holding/internal/logger"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

// Tên driver database/sql tương ứng với DATA_SOURCE
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// OpenSQL mở kết nối database/sql cho driver mysql hoặc sqlite và ping thử.
// SQLite in-memory bị giới hạn 1 connection để mọi truy vấn dùng chung một database.
func OpenSQL(driver, dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("%s DSN is empty", driver)
	}
	if driver != DriverMySQL && driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported sql driver: %s", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	switch driver {
	case DriverSQLite:
		db.SetMaxOpenConns(1)
	case DriverMySQL:
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(2)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", driver, err)
	}

	logger.WithModule("database").WithField("driver", driver).Info("Đã kết nối SQL database")
	return db, nil
}

// OpenSQLFromConfig mở kết nối SQL theo DATA_SOURCE trong cấu hình
func OpenSQLFromConfig(c *config.Configuration) (*sql.DB, error) {
	switch c.DataSource {
	case config.SourceMySQL:
		return OpenSQL(DriverMySQL, c.MySQL_DSN)
	case config.SourceSQLite:
		return OpenSQL(DriverSQLite, c.SQLite_Path)
	default:
		return nil, fmt.Errorf("DATA_SOURCE %s không dùng SQL", c.DataSource)
	}
}

// CloseSQL đóng kết nối SQL
func CloseSQL(db *sql.DB) error {
	if db == nil {
		return nil
	}
	if err := db.Close(); err != nil {
		logger.WithModule("database").WithError(err).Error("Không thể đóng kết nối SQL")
		return err
	}
	return nil
}
