package plan

import (
	"context"

	"github.com/Chanakan5591/FlavorFind/internal/canteen"
)

// CanteenFilter narrows the canteens a plan may draw from. A nil
// WithAirConditioning means no aircon filtering; an empty IDs slice means all
// canteens. PriceRange restricts to canteens owning at least one food item
// inside the range.
type CanteenFilter struct {
	IDs                 []string
	WithAirConditioning *bool
	PriceRange          [2]float64
}

// SubCategoryFilter expresses the active dietary filters at query level.
// Named lists the selected named sub-categories; Others additionally admits
// any sub-category outside the named food set. The zero value means no
// sub-category filtering.
type SubCategoryFilter struct {
	Named  []string
	Others bool
}

func (f SubCategoryFilter) active() bool {
	return len(f.Named) > 0 || f.Others
}

func subCategoryFilterOf(filters Filters) SubCategoryFilter {
	if !filters.foodFilterActive() {
		return SubCategoryFilter{}
	}
	return SubCategoryFilter{
		Named:  filters.activeSubCategories(),
		Others: filters.Others,
	}
}

// Repository is the read-only storage interface the plan core consumes. All
// reads are treated as idempotent, consistent snapshots for the duration of
// one plan computation.
type Repository interface {
	// FindCanteens returns canteens matching the filter that own at least
	// one store.
	FindCanteens(ctx context.Context, filter CanteenFilter) ([]canteen.Canteen, error)

	// FindFoodStores returns stores in the given canteens whose menu holds
	// at least one food item inside the price range passing the sub-category
	// filter. Menus and opening hours are fully loaded.
	FindFoodStores(ctx context.Context, canteenIDs []string, priceRange [2]float64, subFilter SubCategoryFilter) ([]canteen.Store, error)

	// FindDrinkStores returns stores in the given canteens with at least one
	// drink item inside the price range, menus and opening hours loaded.
	FindDrinkStores(ctx context.Context, canteenIDs []string, priceRange [2]float64) ([]canteen.Store, error)
}
