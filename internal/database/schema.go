package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// statements create the five listing tables. Dependent rows reference
// users(id) with ON DELETE CASCADE, so deleting a user is the single root
// for removing its specialization, genre links and shows. The driver
// runs one statement per Exec, hence the slice.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		type VARCHAR(6) NOT NULL,
		name VARCHAR(255) NOT NULL,
		city VARCHAR(120) NOT NULL,
		state VARCHAR(120) NOT NULL,
		phone VARCHAR(120) NOT NULL DEFAULT '',
		image_link VARCHAR(500) NOT NULL DEFAULT '',
		facebook_link VARCHAR(120) NOT NULL DEFAULT '',
		website VARCHAR(120) NOT NULL DEFAULT '',
		is_seeking BOOLEAN NOT NULL DEFAULT FALSE,
		seeking_description VARCHAR(250) NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT chk_users_type CHECK (type IN ('Venue', 'Artist')),
		INDEX idx_users_type (type),
		INDEX idx_users_city_state (city, state)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS venues (
		user_id BIGINT PRIMARY KEY,
		address VARCHAR(150) NOT NULL,
		CONSTRAINT fk_venues_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS artists (
		user_id BIGINT PRIMARY KEY,
		CONSTRAINT fk_artists_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS genres (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(64) NOT NULL,
		CONSTRAINT uq_genres_name UNIQUE (name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS user_genres (
		user_id BIGINT NOT NULL,
		genre_id BIGINT NOT NULL,
		PRIMARY KEY (user_id, genre_id),
		CONSTRAINT fk_user_genres_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
		CONSTRAINT fk_user_genres_genre FOREIGN KEY (genre_id) REFERENCES genres(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS shows (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		artist_id BIGINT NOT NULL,
		venue_id BIGINT NOT NULL,
		start_time DATETIME NOT NULL,
		CONSTRAINT fk_shows_artist FOREIGN KEY (artist_id) REFERENCES artists(user_id) ON DELETE CASCADE,
		CONSTRAINT fk_shows_venue FOREIGN KEY (venue_id) REFERENCES venues(user_id) ON DELETE CASCADE,
		INDEX idx_shows_start_time (start_time)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates missing tables. Safe to call on every start.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for i, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
