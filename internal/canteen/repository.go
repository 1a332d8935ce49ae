package canteen

import "context"

type Repository interface {
	// FindAll returns every canteen with stores, menus, opening hours and
	// ratings fully loaded, ready for browse rendering.
	FindAll(ctx context.Context) ([]Canteen, error)
}
