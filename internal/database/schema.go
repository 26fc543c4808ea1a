package database

import (
	"context"
	"database/sql"
)

// schema lists every table the service needs.  Statements are idempotent
// so EnsureSchema can run on every startup.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id CHAR(36) PRIMARY KEY,
		club_id CHAR(36) NOT NULL DEFAULT '',
		club_name VARCHAR(255) NOT NULL DEFAULT '',
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(16) NOT NULL,
		must_change_password TINYINT(1) NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_email (email),
		KEY idx_users_club (club_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id CHAR(36) NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_refresh_hash (token_hash),
		KEY idx_refresh_user (user_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS items (
		id CHAR(36) PRIMARY KEY,
		club_id CHAR(36) NOT NULL,
		name VARCHAR(255) NOT NULL,
		category VARCHAR(255) NOT NULL DEFAULT 'General',
		quantity INT NOT NULL DEFAULT 0,
		description TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY idx_items_club (club_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS reservations (
		id CHAR(36) PRIMARY KEY,
		club_id CHAR(36) NOT NULL,
		coach_id CHAR(36) NOT NULL,
		coach_name VARCHAR(255) NOT NULL,
		res_date DATE NOT NULL,
		start_time CHAR(5) NOT NULL,
		end_time CHAR(5) NOT NULL,
		status VARCHAR(16) NOT NULL DEFAULT 'active',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY idx_reservations_club (club_id),
		KEY idx_reservations_coach (coach_id),
		KEY idx_reservations_date (res_date)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS reservation_lines (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		reservation_id CHAR(36) NOT NULL,
		item_id CHAR(36) NOT NULL,
		item_name VARCHAR(255) NOT NULL,
		quantity INT NOT NULL,
		KEY idx_lines_reservation (reservation_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS damage_reports (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		reservation_id CHAR(36) NOT NULL,
		item_id CHAR(36) NOT NULL,
		item_name VARCHAR(255) NOT NULL,
		quantity_damaged INT NOT NULL,
		description TEXT NOT NULL,
		reported_by VARCHAR(255) NOT NULL,
		reported_at DATETIME NOT NULL,
		is_resolved TINYINT(1) NOT NULL DEFAULT 0,
		KEY idx_damage_reservation (reservation_id),
		KEY idx_damage_item (item_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS subscriptions (
		id CHAR(36) PRIMARY KEY,
		user_id CHAR(36) NOT NULL,
		status VARCHAR(16) NOT NULL DEFAULT 'trial',
		end_date DATETIME NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_subscriptions_user (user_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates any missing tables.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
