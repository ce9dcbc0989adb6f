package db

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

type migration struct {
	version string
	sql     string
}

var migrations = []migration{
	{
		version: "000_create_accounts",
		sql: `
			CREATE TABLE IF NOT EXISTS accounts (
				id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				email         VARCHAR(255) NOT NULL UNIQUE,
				password_hash VARCHAR(255) NOT NULL,
				created_at    DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at    DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
			)`,
	},
	{
		version: "001_create_users",
		sql: `
			CREATE TABLE IF NOT EXISTS users (
				id                 BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				account_id         BIGINT UNSIGNED NOT NULL,
				name               VARCHAR(100) NOT NULL,
				email              VARCHAR(255),
				age                INT,
				height             DOUBLE,
				weight             DOUBLE,
				medical_conditions TEXT,
				address            VARCHAR(255),
				phone              VARCHAR(30),
				avatar             VARCHAR(255),
				created_at         DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at         DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
				INDEX idx_users_account (account_id),
				FOREIGN KEY (account_id) REFERENCES accounts(id) ON DELETE CASCADE
			)`,
	},
	{
		version: "002_create_user_metrics",
		sql: `
			CREATE TABLE IF NOT EXISTS user_metrics (
				id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				user_id     BIGINT UNSIGNED NOT NULL,
				date        VARCHAR(20) NOT NULL,
				weight      DOUBLE NOT NULL,
				height      DOUBLE NOT NULL,
				bmi         DOUBLE NOT NULL,
				weight_diff DOUBLE,
				body_metric VARCHAR(30) NOT NULL,
				created_at  VARCHAR(30) NOT NULL,
				INDEX idx_user_metrics_user (user_id, created_at),
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
			)`,
	},
	{
		version: "003_create_password_reset_tokens",
		sql: `
			CREATE TABLE IF NOT EXISTS password_reset_tokens (
				id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				account_id BIGINT UNSIGNED NOT NULL,
				token      VARCHAR(10) NOT NULL,
				expires_at DATETIME NOT NULL,
				used       TINYINT(1) NOT NULL DEFAULT 0,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (account_id) REFERENCES accounts(id) ON DELETE CASCADE
			)`,
	},
	{
		version: "004_create_meals",
		sql: `
			CREATE TABLE IF NOT EXISTS meals (
				id         CHAR(36) PRIMARY KEY,
				user_id    BIGINT UNSIGNED NOT NULL,
				name       VARCHAR(150) NOT NULL,
				calories   INT NOT NULL DEFAULT 0,
				protein    DOUBLE NOT NULL DEFAULT 0,
				carbs      DOUBLE NOT NULL DEFAULT 0,
				fat        DOUBLE NOT NULL DEFAULT 0,
				category   VARCHAR(20) NOT NULL,
				date       VARCHAR(10) NOT NULL,
				time       VARCHAR(10),
				created_at DATETIME(6) DEFAULT CURRENT_TIMESTAMP(6),
				INDEX idx_meals_user_date (user_id, date),
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
			)`,
	},
	{
		version: "005_create_goals",
		sql: `
			CREATE TABLE IF NOT EXISTS goals (
				id             BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				user_id        BIGINT UNSIGNED NOT NULL,
				type           VARCHAR(30) NOT NULL,
				target         VARCHAR(255) NOT NULL,
				target_weight  DOUBLE,
				duration_weeks INT NOT NULL,
				progress       INT NOT NULL DEFAULT 0,
				start_date     VARCHAR(10) NOT NULL,
				created_at     DATETIME DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
			)`,
	},
}

// RunMigrations applies, in order, every migration not yet recorded in
// schema_migrations. Each one runs in its own transaction.
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    VARCHAR(255) PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	applied, err := appliedVersions(db)
	if err != nil {
		return err
	}

	pending := 0
	for _, m := range migrations {
		if applied[m.version] {
			continue
		}
		if err := apply(db, m); err != nil {
			return err
		}
		pending++
		logger.Info("applied migration", zap.String("version", m.version))
	}

	logger.Info("schema up to date", zap.Int("applied", pending), zap.Int("total", len(migrations)))
	return nil
}

func appliedVersions(db *sql.DB) (map[string]bool, error) {
	rows, err := db.Query(`SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema_migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

func apply(db *sql.DB, m migration) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("migration %s: begin: %w", m.version, err)
	}

	if _, err := tx.Exec(m.sql); err != nil {
		tx.Rollback()
		return fmt.Errorf("migration %s: %w", m.version, err)
	}
	if _, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, m.version); err != nil {
		tx.Rollback()
		return fmt.Errorf("migration %s: record version: %w", m.version, err)
	}

	return tx.Commit()
}
