package canteen

import (
	"context"
	"errors"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListFilter narrows the browse listing. Zero values mean "no filtering":
// all canteens, any price, first page with the default size.
type ListFilter struct {
	CanteenIDs []string
	MinPrice   float64
	MaxPrice   float64
	Page       int
	PageSize   int
}

const defaultPageSize = 10

type Page struct {
	Canteens   []Canteen `json:"canteens"`
	Page       int       `json:"page"`
	PageSize   int       `json:"pageSize"`
	TotalItems int       `json:"totalItems"`
	TotalPages int       `json:"totalPages"`
}

// List returns one page of canteens. Filtering is plain in-memory slicing
// over the loaded snapshot; the dataset is a handful of canteens, not
// something worth pushing into SQL.
func (s *Service) List(ctx context.Context, filter ListFilter) (*Page, error) {
	if filter.Page < 0 || filter.PageSize < 0 {
		return nil, errors.New("invalid pagination")
	}
	if filter.MinPrice > 0 && filter.MaxPrice > 0 && filter.MinPrice > filter.MaxPrice {
		return nil, errors.New("invalid price range")
	}

	canteens, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if len(filter.CanteenIDs) > 0 {
		wanted := map[string]bool{}
		for _, id := range filter.CanteenIDs {
			if id != "" {
				wanted[id] = true
			}
		}
		if len(wanted) > 0 {
			kept := canteens[:0]
			for _, c := range canteens {
				if wanted[c.ID] {
					kept = append(kept, c)
				}
			}
			canteens = kept
		}
	}

	if filter.MinPrice > 0 || filter.MaxPrice > 0 {
		for i := range canteens {
			var stores []Store
			for _, store := range canteens[i].Stores {
				if storeHasItemInRange(store, filter.MinPrice, filter.MaxPrice) {
					stores = append(stores, store)
				}
			}
			canteens[i].Stores = stores
		}
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	total := len(canteens)
	totalPages := (total + pageSize - 1) / pageSize
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return &Page{
		Canteens:   canteens[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

func storeHasItemInRange(store Store, minPrice, maxPrice float64) bool {
	for _, item := range store.Menu {
		if minPrice > 0 && item.Price < minPrice {
			continue
		}
		if maxPrice > 0 && item.Price > maxPrice {
			continue
		}
		return true
	}
	return false
}
