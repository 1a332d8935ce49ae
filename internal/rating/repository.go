package rating

import (
	"context"

	"github.com/Chanakan5591/FlavorFind/internal/canteen"
)

type Repository interface {
	// Upsert stores one rating per (store, client fingerprint) pair, last
	// write wins, and returns the store with its refreshed ratings.
	Upsert(ctx context.Context, storeID, clientFingerprint string, rating float64) (*canteen.Store, error)
}
