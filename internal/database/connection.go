// internal/database/connection.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"himadash/internal/config"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// DB holds the database connection
var DB *sqlx.DB

// DSN builds a MySQL DSN from config. A configured socket path wins over
// host/port.
func DSN(cfg config.DatabaseConfig) string {
	mc := gomysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.DBName = cfg.Database
	mc.ParseTime = true
	if cfg.Socket != "" {
		mc.Net = "unix"
		mc.Addr = cfg.Socket
	} else {
		mc.Net = "tcp"
		mc.Addr = fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	}
	return mc.FormatDSN()
}

// Connect establishes a connection to the MySQL database
func Connect(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("mysql", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Small pool: the dashboard is a read-only internal tool with a
	// handful of concurrent viewers.
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(10 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	// Test the connection with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set global DB variable for easy access
	DB = db

	log.Println("✅ Successfully connected to MySQL database")
	return db, nil
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		log.Println("🔒 Closing database connections...")
		return DB.Close()
	}
	return nil
}

// Health checks the database connection health with timeout
func Health() error {
	if DB == nil {
		return fmt.Errorf("database connection is nil")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return DB.PingContext(ctx)
}

// Stats returns database connection statistics
func Stats() sql.DBStats {
	if DB == nil {
		return sql.DBStats{}
	}
	return DB.Stats()
}
