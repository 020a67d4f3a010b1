package postgres

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/openmarket/marketplace-service/internal/config"
	"github.com/openmarket/marketplace-service/internal/pkg/logger"
)

// RunMigrations applies the *.up.sql files under the configured directory in
// lexical order, tracking applied names in a migrations table.
func RunMigrations(conn *Connection, cfg config.DatabaseConfig, log *logger.Logger) error {
	db := conn.GetDB()

	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	rows, err := db.Query("SELECT name FROM migrations")
	if err != nil {
		return fmt.Errorf("failed to query migrations table: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		applied[name] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	files, err := os.ReadDir(cfg.MigrationsPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory %s: %w", cfg.MigrationsPath, err)
	}

	var migrations []string
	for _, file := range files {
		if !file.IsDir() && strings.HasSuffix(file.Name(), ".up.sql") {
			migrations = append(migrations, file.Name())
		}
	}
	sort.Strings(migrations)

	for _, migration := range migrations {
		if applied[migration] {
			continue
		}

		contents, err := os.ReadFile(filepath.Join(cfg.MigrationsPath, migration))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", migration, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(contents)); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to apply migration %s: %w", migration, err)
		}
		if _, err := tx.Exec("INSERT INTO migrations (name) VALUES ($1)", migration); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %s: %w", migration, err)
		}
		if err := tx.Commit(); err != nil {
			return err
		}

		log.Info("migration applied", "name", migration)
	}

	return nil
}
