package rating

import (
	"context"
	"errors"

	"github.com/Chanakan5591/FlavorFind/internal/canteen"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RateStore records one user's rating of a store. A repeated rating from the
// same fingerprint overwrites the previous one.
func (s *Service) RateStore(ctx context.Context, storeID, clientFingerprint string, rating float64) (*canteen.Store, error) {
	if storeID == "" || clientFingerprint == "" {
		return nil, errors.New("missing store or client identity")
	}
	if rating < 0 || rating > 5 {
		return nil, errors.New("rating out of range")
	}
	return s.repo.Upsert(ctx, storeID, clientFingerprint, rating)
}
