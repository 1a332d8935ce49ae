package plan

import (
	"context"
	"errors"
	"fmt"

	"github.com/Chanakan5591/FlavorFind/internal/canteen"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// StoreSummary is a store with its menu stripped off; the renderer never
// needs the full menu and it should not be re-serialized into every plan.
type StoreSummary struct {
	ID          string `json:"id"`
	CanteenID   string `json:"canteenId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func summarize(store *canteen.Store) *StoreSummary {
	if store == nil {
		return nil
	}
	return &StoreSummary{
		ID:          store.ID,
		CanteenID:   store.CanteenID,
		Name:        store.Name,
		Description: store.Description,
	}
}

// PlannedMeal is one rendered slot. Store and PickedMeal are nil when no
// eligible food store existed for the slot.
type PlannedMeal struct {
	Meal        MealSlot          `json:"meal"`
	CanteenName string            `json:"canteenName,omitempty"`
	Store       *StoreSummary     `json:"store"`
	PickedMeal  *canteen.MenuItem `json:"pickedMeal"`
	DrinkStore  *StoreSummary     `json:"drinkStore"`
	DrinkMenu   *canteen.MenuItem `json:"drinkMenu"`
}

type Plan struct {
	SelectedMenu         []PlannedMeal `json:"selectedMenu"`
	BudgetUsed           float64       `json:"budgetUsed"`
	TotalPlannedBudgets  float64       `json:"totalPlannedBudgets"`
	BudgetUsedPercentage float64       `json:"budgetUsedPercentage"`
}

// GeneratePlan computes the meal plan for one request. It is deterministic:
// the same constraints, plan id and underlying data always produce the same
// plan, and a fresh plan id produces an independently derived one. All
// randomness state (generators, dedup sets) is local to this call.
//
// Two phases: a seeded randomized pass, then, only if that pass exceeds the
// budget, a cheapest-item fallback over the same store choices.
func (s *Service) GeneratePlan(ctx context.Context, cons Constraints, planID string) (*Plan, error) {
	seed := hashSeed(planID)

	canteens, err := s.repo.FindCanteens(ctx, CanteenFilter{
		IDs:                 cons.SelectedCanteens,
		WithAirConditioning: cons.Filters.airconPreference(),
		PriceRange:          cons.PriceRange,
	})
	if err != nil {
		return nil, fmt.Errorf("find canteens: %w", err)
	}

	allowed := make([]canteen.Canteen, 0, len(canteens))
	for _, c := range canteens {
		if len(c.Stores) > 0 {
			allowed = append(allowed, c)
		}
	}
	if len(allowed) > 1 {
		shuffle(allowed, seed)
	}

	canteenIDs := make([]string, 0, len(allowed))
	canteenNames := make(map[string]string, len(allowed))
	for _, c := range allowed {
		canteenIDs = append(canteenIDs, c.ID)
		canteenNames[c.ID] = c.Name
	}

	foodStores, err := s.repo.FindFoodStores(ctx, canteenIDs, cons.PriceRange, subCategoryFilterOf(cons.Filters))
	if err != nil {
		return nil, fmt.Errorf("find food stores: %w", err)
	}
	drinkStores, err := s.repo.FindDrinkStores(ctx, canteenIDs, cons.PriceRange)
	if err != nil {
		return nil, fmt.Errorf("find drink stores: %w", err)
	}

	candidates := resolveCandidates(cons.Meals, foodStores, drinkStores)
	selections := selectStores(candidates, planID)
	for i := range selections {
		if selections[i].FoodStore != nil {
			selections[i].CanteenName = canteenNames[selections[i].FoodStore.CanteenID]
		}
	}

	randomized := s.buildRandomizedMenu(selections, cons, planID)
	totalA := menuTotal(randomized)
	if totalA <= cons.TotalPlannedBudgets {
		return assemblePlan(randomized, totalA, cons.TotalPlannedBudgets)
	}

	fallback := s.buildCheapestMenu(selections, cons)
	return assemblePlan(fallback, menuTotal(fallback), cons.TotalPlannedBudgets)
}

// buildRandomizedMenu is phase A: seeded item picks with cross-slot dedup.
func (s *Service) buildRandomizedMenu(selections []storeSelection, cons Constraints, planID string) []PlannedMeal {
	usedMeals := map[string]bool{}
	usedDrinks := map[string]bool{}

	menu := make([]PlannedMeal, 0, len(selections))
	for _, sel := range selections {
		if sel.FoodStore == nil {
			menu = append(menu, PlannedMeal{Meal: sel.Meal})
			continue
		}

		filteredMenu := eligibleFoodItems(*sel.FoodStore, cons)
		drinkOptions := eligibleDrinkItems(sel.DrinkStore, cons.PriceRange)

		food, drink := pickMealAndDrink(
			cons.WithBeverage,
			*sel.FoodStore,
			filteredMenu,
			drinkOptions,
			sel.DrinkStore,
			usedMeals,
			usedDrinks,
			planID,
		)

		menu = append(menu, PlannedMeal{
			Meal:        sel.Meal,
			CanteenName: sel.CanteenName,
			Store:       summarize(sel.FoodStore),
			PickedMeal:  food,
			DrinkStore:  summarize(sel.DrinkStore),
			DrinkMenu:   drink,
		})
	}
	return menu
}

// buildCheapestMenu is phase B: same stores as phase A, items replaced by the
// cheapest eligible choice per slot. No dedup; repetition is acceptable when
// minimizing cost.
func (s *Service) buildCheapestMenu(selections []storeSelection, cons Constraints) []PlannedMeal {
	menu := make([]PlannedMeal, 0, len(selections))
	for _, sel := range selections {
		if sel.FoodStore == nil {
			menu = append(menu, PlannedMeal{Meal: sel.Meal})
			continue
		}

		filteredMenu := eligibleFoodItems(*sel.FoodStore, cons)
		drinkOptions := eligibleDrinkItems(sel.DrinkStore, cons.PriceRange)
		food, drink := pickCheapestMealAndDrink(cons.WithBeverage, filteredMenu, drinkOptions)

		menu = append(menu, PlannedMeal{
			Meal:        sel.Meal,
			CanteenName: sel.CanteenName,
			Store:       summarize(sel.FoodStore),
			PickedMeal:  food,
			DrinkStore:  summarize(sel.DrinkStore),
			DrinkMenu:   drink,
		})
	}
	return menu
}

func menuTotal(menu []PlannedMeal) float64 {
	var total float64
	for _, meal := range menu {
		if meal.PickedMeal != nil {
			total += meal.PickedMeal.Price
		}
		if meal.DrinkMenu != nil {
			total += meal.DrinkMenu.Price
		}
	}
	return total
}

func assemblePlan(menu []PlannedMeal, budgetUsed, totalBudget float64) (*Plan, error) {
	pct, err := budgetPercentage(budgetUsed, totalBudget)
	if err != nil {
		return nil, err
	}
	return &Plan{
		SelectedMenu:         menu,
		BudgetUsed:           budgetUsed,
		TotalPlannedBudgets:  totalBudget,
		BudgetUsedPercentage: pct,
	}, nil
}

// budgetPercentage clamps to 100 when the fallback plan still exceeds the
// budget; it is the best achievable with the given data. Negative usage can
// not arise from non-negative prices and is treated as a hard error.
func budgetPercentage(used, total float64) (float64, error) {
	if used < 0 {
		return 0, errors.New("budget used out of range")
	}
	if total <= 0 {
		if used > 0 {
			return 100, nil
		}
		return 0, nil
	}
	if used > total {
		return 100, nil
	}
	return used / total * 100, nil
}
