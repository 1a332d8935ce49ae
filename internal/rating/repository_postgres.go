package rating

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

func (r *PostgresRepository) Upsert(ctx context.Context, storeID, clientFingerprint string, rating float64) (*canteen.Store, error) {
	_, err := r.db.Exec(ctx, `
		INSERT INTO store_ratings (store_id, client_fingerprint, rating)
		VALUES ($1, $2, $3)
		ON CONFLICT (store_id, client_fingerprint)
		DO UPDATE SET rating = EXCLUDED.rating
	`, storeID, clientFingerprint, rating)
	if err != nil {
		return nil, err
	}

	var store canteen.Store
	err = r.db.QueryRow(ctx, `
		SELECT id, canteen_id, name, description
		FROM stores
		WHERE id = $1
	`, storeID).Scan(&store.ID, &store.CanteenID, &store.Name, &store.Description)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT store_id, client_fingerprint, rating
		FROM store_ratings
		WHERE store_id = $1
		ORDER BY client_fingerprint
	`, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var rt canteen.Rating
		if err := rows.Scan(&rt.StoreID, &rt.ClientFingerprint, &rt.Rating); err != nil {
			return nil, err
		}
		store.Ratings = append(store.Ratings, rt)
	}
	return &store, rows.Err()
}
