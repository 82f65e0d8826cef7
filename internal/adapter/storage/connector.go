package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

type Config struct {
	Host     string
	User     string
	Password string
	Name     string
}

func (c Config) dsn(database string) string {
	mc := mysql.NewConfig()
	mc.User = c.User
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = c.Host
	mc.DBName = database
	mc.ParseTime = true
	return mc.FormatDSN()
}

// Connect opens a pool scoped to the named database and verifies
// connectivity. An empty database name connects at the server level, which
// bootstrap uses before the database exists. Closing the returned pool is
// safe to do more than once.
func Connect(ctx context.Context, cfg Config, database string) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.dsn(database))
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return db, nil
}
