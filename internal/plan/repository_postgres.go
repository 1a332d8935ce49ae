package plan

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Chanakan5591/FlavorFind/internal/canteen"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Canteens eligible for planning
// --------------------------------------------------
func (r *PostgresRepository) FindCanteens(ctx context.Context, filter CanteenFilter) ([]canteen.Canteen, error) {
	var ids []string
	if len(filter.IDs) > 0 {
		ids = filter.IDs
	}

	// Stable ordering matters: candidate order feeds the deterministic
	// shuffle, so two identical requests must see identical row order.
	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.name, c.with_air_conditioning
		FROM canteens c
		WHERE ($1::text[] IS NULL OR c.id = ANY($1))
		  AND ($2::boolean IS NULL OR c.with_air_conditioning = $2)
		  AND EXISTS (
			SELECT 1
			FROM stores s
			JOIN menu_items m ON m.store_id = s.id
			WHERE s.canteen_id = c.id
			  AND m.category <> 'DRINK'
			  AND m.price >= $3
			  AND m.price <= $4
		  )
		ORDER BY c.id
	`, ids, filter.WithAirConditioning, filter.PriceRange[0], filter.PriceRange[1])
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var canteens []canteen.Canteen
	index := map[string]int{}
	for rows.Next() {
		var c canteen.Canteen
		if err := rows.Scan(&c.ID, &c.Name, &c.WithAirConditioning); err != nil {
			return nil, err
		}
		index[c.ID] = len(canteens)
		canteens = append(canteens, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(canteens) == 0 {
		return canteens, nil
	}

	canteenIDs := make([]string, 0, len(canteens))
	for _, c := range canteens {
		canteenIDs = append(canteenIDs, c.ID)
	}

	storeRows, err := r.db.Query(ctx, `
		SELECT id, canteen_id, name, description
		FROM stores
		WHERE canteen_id = ANY($1)
		ORDER BY id
	`, canteenIDs)
	if err != nil {
		return nil, err
	}
	defer storeRows.Close()

	for storeRows.Next() {
		var s canteen.Store
		if err := storeRows.Scan(&s.ID, &s.CanteenID, &s.Name, &s.Description); err != nil {
			return nil, err
		}
		if i, ok := index[s.CanteenID]; ok {
			canteens[i].Stores = append(canteens[i].Stores, s)
		}
	}
	return canteens, storeRows.Err()
}

// --------------------------------------------------
// Stores with eligible food / drink menus
// --------------------------------------------------
func (r *PostgresRepository) FindFoodStores(ctx context.Context, canteenIDs []string, priceRange [2]float64, subFilter SubCategoryFilter) ([]canteen.Store, error) {
	stores, err := r.queryStores(ctx, `
		SELECT DISTINCT s.id, s.canteen_id, s.name, s.description
		FROM stores s
		JOIN menu_items m ON m.store_id = s.id
		WHERE s.canteen_id = ANY($1)
		  AND m.category <> 'DRINK'
		  AND m.price >= $2
		  AND m.price <= $3
		  AND (
			NOT $4::boolean
			OR m.sub_category = ANY($5)
			OR ($6::boolean AND NOT (m.sub_category = ANY($7)))
		  )
		ORDER BY s.id
	`, canteenIDs, priceRange[0], priceRange[1],
		subFilter.active(), subFilter.Named, subFilter.Others, canteen.FoodSubCategories)
	if err != nil {
		return nil, err
	}
	return r.loadStoreDetails(ctx, stores)
}

func (r *PostgresRepository) FindDrinkStores(ctx context.Context, canteenIDs []string, priceRange [2]float64) ([]canteen.Store, error) {
	stores, err := r.queryStores(ctx, `
		SELECT DISTINCT s.id, s.canteen_id, s.name, s.description
		FROM stores s
		JOIN menu_items m ON m.store_id = s.id
		WHERE s.canteen_id = ANY($1)
		  AND m.category = 'DRINK'
		  AND m.price >= $2
		  AND m.price <= $3
		ORDER BY s.id
	`, canteenIDs, priceRange[0], priceRange[1])
	if err != nil {
		return nil, err
	}
	return r.loadStoreDetails(ctx, stores)
}

func (r *PostgresRepository) queryStores(ctx context.Context, query string, args ...any) ([]canteen.Store, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stores []canteen.Store
	for rows.Next() {
		var s canteen.Store
		if err := rows.Scan(&s.ID, &s.CanteenID, &s.Name, &s.Description); err != nil {
			return nil, err
		}
		stores = append(stores, s)
	}
	return stores, rows.Err()
}

// loadStoreDetails attaches full menus and weekly opening hours to the given
// stores. The resolver and selector need both in memory.
func (r *PostgresRepository) loadStoreDetails(ctx context.Context, stores []canteen.Store) ([]canteen.Store, error) {
	if len(stores) == 0 {
		return stores, nil
	}

	ids := make([]string, 0, len(stores))
	index := make(map[string]int, len(stores))
	for i, s := range stores {
		ids = append(ids, s.ID)
		index[s.ID] = i
	}

	menuRows, err := r.db.Query(ctx, `
		SELECT store_id, name, category, sub_category, price
		FROM menu_items
		WHERE store_id = ANY($1)
		ORDER BY store_id, name, category, price
	`, ids)
	if err != nil {
		return nil, err
	}
	defer menuRows.Close()

	for menuRows.Next() {
		var storeID string
		var item canteen.MenuItem
		if err := menuRows.Scan(&storeID, &item.Name, &item.Category, &item.SubCategory, &item.Price); err != nil {
			return nil, err
		}
		i := index[storeID]
		stores[i].Menu = append(stores[i].Menu, item)
	}
	if err := menuRows.Err(); err != nil {
		return nil, err
	}

	hourRows, err := r.db.Query(ctx, `
		SELECT store_id, day_of_week, start_time, end_time
		FROM opening_hours
		WHERE store_id = ANY($1)
		ORDER BY store_id, day_of_week
	`, ids)
	if err != nil {
		return nil, err
	}
	defer hourRows.Close()

	for hourRows.Next() {
		var storeID string
		var oh canteen.OpeningHour
		if err := hourRows.Scan(&storeID, &oh.DayOfWeek, &oh.Start, &oh.End); err != nil {
			return nil, err
		}
		i := index[storeID]
		stores[i].OpeningHours = append(stores[i].OpeningHours, oh)
	}
	return stores, hourRows.Err()
}
