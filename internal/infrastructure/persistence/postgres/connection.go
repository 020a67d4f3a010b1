package postgres

import (
	"database/sql"
	"time"

	_ "github.com/lib/pq"

	"github.com/openmarket/marketplace-service/internal/config"
)

type Connection struct {
	db *sql.DB
}

// NewConnection opens the pool and verifies it with a ping. Schema setup is a
// separate step (RunMigrations), invoked once at process start.
func NewConnection(cfg config.DatabaseConfig) (*Connection, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(30 * time.Minute)

	return &Connection{db: db}, nil
}

func NewConnectionFromDB(db *sql.DB) *Connection {
	return &Connection{db: db}
}

func (c *Connection) Close() error {
	return c.db.Close()
}

func (c *Connection) GetDB() *sql.DB {
	return c.db
}
