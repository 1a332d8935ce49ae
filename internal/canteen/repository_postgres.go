package canteen

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindAll(ctx context.Context) ([]Canteen, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, with_air_conditioning
		FROM canteens
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var canteens []Canteen
	canteenIndex := map[string]int{}
	for rows.Next() {
		var c Canteen
		if err := rows.Scan(&c.ID, &c.Name, &c.WithAirConditioning); err != nil {
			return nil, err
		}
		canteenIndex[c.ID] = len(canteens)
		canteens = append(canteens, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	storeRows, err := r.db.Query(ctx, `
		SELECT id, canteen_id, name, description
		FROM stores
		ORDER BY canteen_id, name
	`)
	if err != nil {
		return nil, err
	}
	defer storeRows.Close()

	storeIndex := map[string][2]int{}
	for storeRows.Next() {
		var s Store
		if err := storeRows.Scan(&s.ID, &s.CanteenID, &s.Name, &s.Description); err != nil {
			return nil, err
		}
		ci, ok := canteenIndex[s.CanteenID]
		if !ok {
			continue
		}
		storeIndex[s.ID] = [2]int{ci, len(canteens[ci].Stores)}
		canteens[ci].Stores = append(canteens[ci].Stores, s)
	}
	if err := storeRows.Err(); err != nil {
		return nil, err
	}

	menuRows, err := r.db.Query(ctx, `
		SELECT store_id, name, category, sub_category, price
		FROM menu_items
		ORDER BY store_id, name, category, price
	`)
	if err != nil {
		return nil, err
	}
	defer menuRows.Close()

	for menuRows.Next() {
		var storeID string
		var item MenuItem
		if err := menuRows.Scan(&storeID, &item.Name, &item.Category, &item.SubCategory, &item.Price); err != nil {
			return nil, err
		}
		if pos, ok := storeIndex[storeID]; ok {
			store := &canteens[pos[0]].Stores[pos[1]]
			store.Menu = append(store.Menu, item)
		}
	}
	if err := menuRows.Err(); err != nil {
		return nil, err
	}

	hourRows, err := r.db.Query(ctx, `
		SELECT store_id, day_of_week, start_time, end_time
		FROM opening_hours
		ORDER BY store_id, day_of_week
	`)
	if err != nil {
		return nil, err
	}
	defer hourRows.Close()

	for hourRows.Next() {
		var storeID string
		var oh OpeningHour
		if err := hourRows.Scan(&storeID, &oh.DayOfWeek, &oh.Start, &oh.End); err != nil {
			return nil, err
		}
		if pos, ok := storeIndex[storeID]; ok {
			store := &canteens[pos[0]].Stores[pos[1]]
			store.OpeningHours = append(store.OpeningHours, oh)
		}
	}
	if err := hourRows.Err(); err != nil {
		return nil, err
	}

	ratingRows, err := r.db.Query(ctx, `
		SELECT store_id, client_fingerprint, rating
		FROM store_ratings
		ORDER BY store_id, client_fingerprint
	`)
	if err != nil {
		return nil, err
	}
	defer ratingRows.Close()

	for ratingRows.Next() {
		var rt Rating
		if err := ratingRows.Scan(&rt.StoreID, &rt.ClientFingerprint, &rt.Rating); err != nil {
			return nil, err
		}
		if pos, ok := storeIndex[rt.StoreID]; ok {
			store := &canteens[pos[0]].Stores[pos[1]]
			store.Ratings = append(store.Ratings, rt)
		}
	}
	return canteens, ratingRows.Err()
}
