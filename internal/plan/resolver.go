package plan

import (
	"strconv"
	"strings"

	"github.com/Chanakan5591/FlavorFind/internal/canteen"
)

// mealCandidates pairs a meal slot with every store that could serve it.
type mealCandidates struct {
	Meal        MealSlot
	FoodStores  []canteen.Store
	DrinkStores []canteen.Store
}

func timeToMinutes(hhmm string) (int, bool) {
	h, m, ok := strings.Cut(hhmm, ":")
	if !ok {
		return 0, false
	}
	hours, err := strconv.Atoi(h)
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return hours*60 + minutes, true
}

// withinOpeningHours applies the 30-minute pre-close buffer: a meal must
// start early enough to be finished before the store closes.
func withinOpeningHours(mealMinutes, openMinutes, closeMinutes int) bool {
	return mealMinutes >= openMinutes && mealMinutes <= closeMinutes-30
}

// storeOpenForSlot checks a store's weekly schedule against one meal slot.
// No weekday and no time means every store qualifies. A weekday with no
// schedule entry means closed. A slot with only a weekday qualifies as long
// as the store opens that day at all.
func storeOpenForSlot(store canteen.Store, slot MealSlot) bool {
	var dayHours *canteen.OpeningHour
	if slot.DayOfWeek != "" {
		for i := range store.OpeningHours {
			if store.OpeningHours[i].DayOfWeek == slot.DayOfWeek {
				dayHours = &store.OpeningHours[i]
				break
			}
		}
		if dayHours == nil {
			return false
		}
	}

	if slot.Time == "" {
		return true
	}
	mealMinutes, ok := timeToMinutes(slot.Time)
	if !ok {
		return true
	}

	if dayHours == nil {
		for _, oh := range store.OpeningHours {
			open, okOpen := timeToMinutes(oh.Start)
			closeAt, okClose := timeToMinutes(oh.End)
			if okOpen && okClose && withinOpeningHours(mealMinutes, open, closeAt) {
				return true
			}
		}
		return false
	}

	open, okOpen := timeToMinutes(dayHours.Start)
	closeAt, okClose := timeToMinutes(dayHours.End)
	if !okOpen || !okClose {
		return false
	}
	return withinOpeningHours(mealMinutes, open, closeAt)
}

// resolveCandidates intersects the resolved food and drink stores with each
// meal slot's opening-hours window. A slot may legitimately end up with zero
// eligible stores; the selector turns that into a null pick, never an error.
func resolveCandidates(meals []MealSlot, foodStores, drinkStores []canteen.Store) []mealCandidates {
	candidates := make([]mealCandidates, 0, len(meals))
	for _, meal := range meals {
		mc := mealCandidates{Meal: meal}
		for _, store := range foodStores {
			if storeOpenForSlot(store, meal) {
				mc.FoodStores = append(mc.FoodStores, store)
			}
		}
		for _, store := range drinkStores {
			if storeOpenForSlot(store, meal) {
				mc.DrinkStores = append(mc.DrinkStores, store)
			}
		}
		candidates = append(candidates, mc)
	}
	return candidates
}
