package plan

import (
	"strconv"

	"github.com/Chanakan5591/FlavorFind/internal/canteen"
)

// storeSelection is the per-slot outcome of phase A store picking. A nil
// FoodStore means no eligible store existed for the slot.
type storeSelection struct {
	Meal        MealSlot
	CanteenName string
	FoodStore   *canteen.Store
	DrinkStore  *canteen.Store
}

// menuItemKey is the dedup key for picked items. Two distinct items sharing
// name, category and price collide on purpose; they are indistinguishable to
// the eater anyway.
func menuItemKey(item canteen.MenuItem) string {
	return item.Name + "-" + item.Category + "-" + formatNumber(item.Price)
}

// selectStores picks one food store per meal slot, and a drink store from the
// same canteen when one exists. Picks are seeded from the plan id, the slot
// ordinal, a purpose tag and a retry offset, so the whole pass is a pure
// function of (plan id, candidates). A store already used for an earlier slot
// is retried away from, at most len(candidates)+1 times; after that reuse is
// allowed, since a small eligible set may have to serve several slots.
func selectStores(candidates []mealCandidates, planID string) []storeSelection {
	selections := make([]storeSelection, 0, len(candidates))
	usedFoodStores := map[string]bool{}
	usedDrinkStores := map[string]bool{}

	for _, mc := range candidates {
		if len(mc.FoodStores) == 0 {
			selections = append(selections, storeSelection{Meal: mc.Meal})
			continue
		}

		mealNumber := strconv.Itoa(mc.Meal.MealNumber)

		var foodStore canteen.Store
		for offset := 0; ; offset++ {
			seed := hashSeed(planID + mealNumber + strconv.Itoa(offset))
			foodStore = seededPick(mc.FoodStores, seed)
			if !usedFoodStores[foodStore.ID] || offset >= len(mc.FoodStores) {
				break
			}
		}
		usedFoodStores[foodStore.ID] = true

		var sameCanteenDrinks []canteen.Store
		for _, store := range mc.DrinkStores {
			if store.CanteenID == foodStore.CanteenID {
				sameCanteenDrinks = append(sameCanteenDrinks, store)
			}
		}

		var drinkStore *canteen.Store
		if len(sameCanteenDrinks) > 0 {
			var picked canteen.Store
			for offset := 0; ; offset++ {
				seed := hashSeed(planID + mealNumber + "drink" + strconv.Itoa(offset))
				picked = seededPick(sameCanteenDrinks, seed)
				if !usedDrinkStores[picked.ID] || offset >= len(sameCanteenDrinks) {
					break
				}
			}
			usedDrinkStores[picked.ID] = true
			drinkStore = &picked
		}

		food := foodStore
		selections = append(selections, storeSelection{
			Meal:       mc.Meal,
			FoodStore:  &food,
			DrinkStore: drinkStore,
		})
	}

	return selections
}

// eligibleFoodItems filters a store's menu down to food items inside the
// price range that pass the active sub-category filters.
func eligibleFoodItems(store canteen.Store, c Constraints) []canteen.MenuItem {
	var items []canteen.MenuItem
	for _, item := range store.Menu {
		if item.Category == canteen.CategoryDrink {
			continue
		}
		if item.Price < c.PriceRange[0] || item.Price > c.PriceRange[1] {
			continue
		}
		if !c.Filters.matchesSubCategory(item.SubCategory) {
			continue
		}
		items = append(items, item)
	}
	return items
}

// eligibleDrinkItems filters a drink store's menu to priced drinks,
// excluding toppings.
func eligibleDrinkItems(store *canteen.Store, priceRange [2]float64) []canteen.MenuItem {
	if store == nil {
		return nil
	}
	var items []canteen.MenuItem
	for _, item := range store.Menu {
		if item.Category != canteen.CategoryDrink {
			continue
		}
		if item.SubCategory == canteen.SubCategoryToppings {
			continue
		}
		if item.Price < priceRange[0] || item.Price > priceRange[1] {
			continue
		}
		items = append(items, item)
	}
	return items
}

// pickMealAndDrink is the phase-A item pick for one slot: seeded choices with
// cross-slot dedup on (name, category, price). The used sets are cleared once
// every candidate has been consumed, so small menus wrap around instead of
// starving. When the priced drink pool is empty the store's non-topping
// drinks are retried without the price constraint under a separate seed tag.
func pickMealAndDrink(
	withBeverage bool,
	foodStore canteen.Store,
	filteredMenu []canteen.MenuItem,
	drinkOptions []canteen.MenuItem,
	drinkStore *canteen.Store,
	usedMeals map[string]bool,
	usedDrinks map[string]bool,
	planID string,
) (pickedFood, pickedDrink *canteen.MenuItem) {
	if withBeverage && len(drinkOptions) > 0 {
		var lastCand canteen.MenuItem
		for attempt := 0; attempt < len(drinkOptions)+1 && pickedDrink == nil; attempt++ {
			if len(usedDrinks) >= len(drinkOptions) {
				clear(usedDrinks)
			}
			seed := hashSeed(foodStore.ID + planID + "drink" + strconv.Itoa(attempt))
			cand := seededPick(drinkOptions, seed)
			lastCand = cand
			if usedDrinks[menuItemKey(cand)] {
				continue
			}
			usedDrinks[menuItemKey(cand)] = true
			pickedDrink = &cand
		}
		// Every attempt collided with an already-used key. Reuse the last
		// candidate; an in-range drink always beats relaxing the price bound.
		if pickedDrink == nil {
			usedDrinks[menuItemKey(lastCand)] = true
			pickedDrink = &lastCand
		}
	}

	if withBeverage && pickedDrink == nil && drinkStore != nil && len(drinkStore.Menu) > 0 {
		var relaxed []canteen.MenuItem
		for _, item := range drinkStore.Menu {
			if item.Category == canteen.CategoryDrink && item.SubCategory != canteen.SubCategoryToppings {
				relaxed = append(relaxed, item)
			}
		}
		if len(relaxed) > 0 {
			var cand canteen.MenuItem
			for attempt := 0; ; attempt++ {
				seed := hashSeed(foodStore.ID + planID + "drinkRelaxed" + strconv.Itoa(attempt))
				cand = seededPick(relaxed, seed)
				if !usedDrinks[menuItemKey(cand)] || attempt >= len(relaxed) {
					break
				}
			}
			usedDrinks[menuItemKey(cand)] = true
			pickedDrink = &cand
		}
	}

	for attempt := 0; len(filteredMenu) > 0 && attempt < len(filteredMenu)+1 && pickedFood == nil; attempt++ {
		if len(usedMeals) >= len(filteredMenu) {
			clear(usedMeals)
		}
		seed := hashSeed(foodStore.ID + planID + "meal" + strconv.Itoa(attempt))
		cand := seededPick(filteredMenu, seed)
		if usedMeals[menuItemKey(cand)] {
			continue
		}
		usedMeals[menuItemKey(cand)] = true
		pickedFood = &cand
	}
	if pickedFood == nil && len(filteredMenu) > 0 {
		first := filteredMenu[0]
		pickedFood = &first
	}

	return pickedFood, pickedDrink
}

// pickCheapestMealAndDrink is the phase-B item pick: the single cheapest
// eligible food and drink per slot, no dedup, strictly cost minimization.
func pickCheapestMealAndDrink(
	withBeverage bool,
	filteredMenu []canteen.MenuItem,
	drinkOptions []canteen.MenuItem,
) (pickedFood, pickedDrink *canteen.MenuItem) {
	if len(filteredMenu) > 0 {
		cheapest := filteredMenu[0]
		for _, item := range filteredMenu[1:] {
			if item.Price < cheapest.Price {
				cheapest = item
			}
		}
		pickedFood = &cheapest
	}

	if withBeverage && len(drinkOptions) > 0 {
		cheapest := drinkOptions[0]
		for _, item := range drinkOptions[1:] {
			if item.Price < cheapest.Price {
				cheapest = item
			}
		}
		pickedDrink = &cheapest
	}

	return pickedFood, pickedDrink
}
