//go:build e2e

// Package dbtest seeds reference data for database-backed tests.
package dbtest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Rooms seeded for every e2e database, keyed by room number.
var SeedRoomIDs = map[string]uuid.UUID{
	"classic-101": uuid.MustParse("11111111-1111-1111-1111-111111111101"),
	"classic-102": uuid.MustParse("11111111-1111-1111-1111-111111111102"),
	"deluxe-201":  uuid.MustParse("11111111-1111-1111-1111-111111111201"),
	"w-301":       uuid.MustParse("11111111-1111-1111-1111-111111111301"),
	"b-401":       uuid.MustParse("11111111-1111-1111-1111-111111111401"),
	"maint-501":   uuid.MustParse("11111111-1111-1111-1111-111111111501"),
}

// ResetDB clears mutable state between subtests; the room inventory stays.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := pool.Exec(ctx, "TRUNCATE holds, reservations"); err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}
	return nil
}

func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rooms := []struct {
		number  string
		zone    string
		quality string
		status  string
		price   int32
	}{
		{"classic-101", "business", "classic", "available", 5000},
		{"classic-102", "business", "classic", "available", 6000},
		{"deluxe-201", "couples", "deluxe", "available", 12000},
		{"w-301", "women-only", "classic", "available", 5500},
		{"b-401", "business", "classic", "available", 7000},
		{"maint-501", "business", "classic", "maintenance", 4000},
	}

	for _, r := range rooms {
		_, err := pool.Exec(ctx, `
INSERT INTO rooms (id, number, zone, quality, status, nightly_price_cents)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO NOTHING`,
			SeedRoomIDs[r.number], r.number, r.zone, r.quality, r.status, r.price)
		if err != nil {
			return fmt.Errorf("failed to seed room %s: %w", r.number, err)
		}
	}
	return nil
}
