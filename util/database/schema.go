package database

import (
	"context"
	"database/sql"
)

// InitSchema creates the tables and the uniqueness constraints the
// services rely on. The unique indexes on users.email, leases.booking_id
// and reviews(student_id, property_id) are load-bearing: duplicate
// inserts surface as unique violations instead of racing past a check.
func InitSchema(ctx context.Context, db *sql.DB) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		phone         TEXT,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL CHECK (role IN ('STUDENT','LANDLORD','ADMIN')),
		verified      BOOLEAN NOT NULL DEFAULT FALSE,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS properties (
		id                  BIGSERIAL PRIMARY KEY,
		landlord_id         BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title               TEXT NOT NULL,
		description         TEXT NOT NULL,
		price_monthly       DOUBLE PRECISION NOT NULL,
		price_weekly        DOUBLE PRECISION,
		location            TEXT NOT NULL,
		latitude            DOUBLE PRECISION,
		longitude           DOUBLE PRECISION,
		rooms               INT NOT NULL,
		bathrooms           INT NOT NULL,
		furnished           BOOLEAN NOT NULL DEFAULT FALSE,
		wifi                BOOLEAN NOT NULL DEFAULT FALSE,
		electricity_backup  BOOLEAN NOT NULL DEFAULT FALSE,
		water               BOOLEAN NOT NULL DEFAULT FALSE,
		security            BOOLEAN NOT NULL DEFAULT FALSE,
		room_type           TEXT NOT NULL CHECK (room_type IN ('SINGLE','SELF_CON','MINI_FLAT')),
		distance_from_campus DOUBLE PRECISION,
		available_from      TIMESTAMPTZ NOT NULL,
		approved            BOOLEAN NOT NULL DEFAULT FALSE,
		created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS bookings (
		id          BIGSERIAL PRIMARY KEY,
		student_id  BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		property_id BIGINT NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
		status      TEXT NOT NULL DEFAULT 'PENDING' CHECK (status IN ('PENDING','APPROVED','REJECTED')),
		lease_start TIMESTAMPTZ NOT NULL,
		lease_end   TIMESTAMPTZ NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK (lease_end > lease_start)
	);
	CREATE INDEX IF NOT EXISTS bookings_property_status_idx ON bookings (property_id, status);

	CREATE TABLE IF NOT EXISTS leases (
		id           BIGSERIAL PRIMARY KEY,
		booking_id   BIGINT NOT NULL UNIQUE REFERENCES bookings(id) ON DELETE CASCADE,
		document_url TEXT NOT NULL,
		signed_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS reviews (
		id          BIGSERIAL PRIMARY KEY,
		student_id  BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		property_id BIGINT NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
		rating      INT NOT NULL CHECK (rating BETWEEN 1 AND 5),
		comment     TEXT,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (student_id, property_id)
	);

	CREATE TABLE IF NOT EXISTS maintenance_requests (
		id          BIGSERIAL PRIMARY KEY,
		property_id BIGINT NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
		student_id  BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		description TEXT NOT NULL,
		status      TEXT NOT NULL DEFAULT 'OPEN' CHECK (status IN ('OPEN','IN_PROGRESS','RESOLVED')),
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS messages (
		id          BIGSERIAL PRIMARY KEY,
		sender_id   BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		receiver_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		property_id BIGINT REFERENCES properties(id) ON DELETE SET NULL,
		content     TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS documents (
		id         BIGSERIAL PRIMARY KEY,
		user_id    BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		type       TEXT NOT NULL,
		file_url   TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`
	_, err := db.ExecContext(ctx, schema)
	return err
}
