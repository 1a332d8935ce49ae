package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("Connected to PostgreSQL")

	if err := initSchema(pool); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	if os.Getenv("SEED_DEV_DATA") == "1" {
		if err := seedDevData(pool); err != nil {
			log.Fatal("Failed to seed dev data:", err)
		}
	}

	return pool
}

// initSchema creates or updates the database schema
func initSchema(pool *pgxpool.Pool) error {
	ctx := context.Background()

	// -------------------------------
	// CANTEENS
	// -------------------------------
	canteensSQL := `
		CREATE TABLE IF NOT EXISTS canteens (
			id TEXT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			with_air_conditioning BOOLEAN NOT NULL DEFAULT FALSE
		)
	`
	if _, err := pool.Exec(ctx, canteensSQL); err != nil {
		return err
	}

	// -------------------------------
	// STORES
	// -------------------------------
	storesSQL := `
		CREATE TABLE IF NOT EXISTS stores (
			id TEXT PRIMARY KEY,
			canteen_id TEXT NOT NULL REFERENCES canteens(id),
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT ''
		)
	`
	if _, err := pool.Exec(ctx, storesSQL); err != nil {
		return err
	}

	// -------------------------------
	// OPENING HOURS
	// one entry per store and weekday; no entry = closed that day
	// -------------------------------
	openingHoursSQL := `
		CREATE TABLE IF NOT EXISTS opening_hours (
			id SERIAL PRIMARY KEY,
			store_id TEXT NOT NULL REFERENCES stores(id),
			day_of_week VARCHAR(16) NOT NULL,
			start_time VARCHAR(5) NOT NULL,
			end_time VARCHAR(5) NOT NULL,
			UNIQUE (store_id, day_of_week)
		)
	`
	if _, err := pool.Exec(ctx, openingHoursSQL); err != nil {
		return err
	}

	// -------------------------------
	// MENU ITEMS
	// -------------------------------
	menuItemsSQL := `
		CREATE TABLE IF NOT EXISTS menu_items (
			id SERIAL PRIMARY KEY,
			store_id TEXT NOT NULL REFERENCES stores(id),
			name VARCHAR(255) NOT NULL,
			category VARCHAR(32) NOT NULL,
			sub_category VARCHAR(64) NOT NULL DEFAULT 'others',
			price NUMERIC NOT NULL CHECK (price >= 0)
		)
	`
	if _, err := pool.Exec(ctx, menuItemsSQL); err != nil {
		return err
	}

	// -------------------------------
	// STORE RATINGS
	// at most one row per (store, client fingerprint)
	// -------------------------------
	storeRatingsSQL := `
		CREATE TABLE IF NOT EXISTS store_ratings (
			id SERIAL PRIMARY KEY,
			store_id TEXT NOT NULL REFERENCES stores(id),
			client_fingerprint VARCHAR(128) NOT NULL,
			rating NUMERIC NOT NULL CHECK (rating >= 0 AND rating <= 5),
			UNIQUE (store_id, client_fingerprint)
		)
	`
	if _, err := pool.Exec(ctx, storeRatingsSQL); err != nil {
		return err
	}

	log.Println("Schema initialized successfully")
	return nil
}

// seedDevData loads a small canteen fixture into an empty database. It only
// runs when SEED_DEV_DATA=1 and never touches a database that already holds
// canteens.
func seedDevData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM canteens`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	canteens := []struct {
		id     string
		name   string
		aircon bool
	}{
		{"lakeside", "Lakeside Canteen", true},
		{"hilltop", "Hilltop Canteen", false},
	}
	for _, c := range canteens {
		if _, err := pool.Exec(ctx, `
			INSERT INTO canteens (id, name, with_air_conditioning)
			VALUES ($1, $2, $3)
		`, c.id, c.name, c.aircon); err != nil {
			return err
		}
	}

	stores := []struct {
		id, canteenID, name, description string
	}{
		{"lakeside-noodles", "lakeside", "Noodle Corner", "Boat noodles and tom yum"},
		{"lakeside-drinks", "lakeside", "Fresh Cup", "Teas, sodas and smoothies"},
		{"hilltop-rice", "hilltop", "Rice & Curry House", "Curries over rice"},
	}
	for _, s := range stores {
		if _, err := pool.Exec(ctx, `
			INSERT INTO stores (id, canteen_id, name, description)
			VALUES ($1, $2, $3, $4)
		`, s.id, s.canteenID, s.name, s.description); err != nil {
			return err
		}
	}

	items := []struct {
		storeID, name, category, subCategory string
		price                                float64
	}{
		{"lakeside-noodles", "Boat noodles", "FOOD", "noodles", 45},
		{"lakeside-noodles", "Tom yum noodles", "FOOD", "soup_curry", 55},
		{"lakeside-drinks", "Thai iced tea", "DRINK", "drink", 25},
		{"lakeside-drinks", "Lime soda", "DRINK", "drink", 20},
		{"lakeside-drinks", "Tapioca pearls", "DRINK", "toppings", 10},
		{"hilltop-rice", "Green curry rice", "FOOD", "rice_curry", 50},
		{"hilltop-rice", "Khao man gai", "FOOD", "chicken_rice", 45},
	}
	for _, m := range items {
		if _, err := pool.Exec(ctx, `
			INSERT INTO menu_items (store_id, name, category, sub_category, price)
			VALUES ($1, $2, $3, $4, $5)
		`, m.storeID, m.name, m.category, m.subCategory, m.price); err != nil {
			return err
		}
	}

	days := []string{"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY"}
	for _, s := range stores {
		for _, day := range days {
			if _, err := pool.Exec(ctx, `
				INSERT INTO opening_hours (store_id, day_of_week, start_time, end_time)
				VALUES ($1, $2, $3, $4)
			`, s.id, day, "08:00", "16:00"); err != nil {
				return err
			}
		}
	}

	log.Println("Seeded dev data")
	return nil
}
