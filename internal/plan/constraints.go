package plan

import (
	"strconv"
	"strings"
	"time"

	"github.com/Chanakan5591/FlavorFind/internal/canteen"
)

// Filters is the fixed-shape set of canteen and dietary toggles carried by a
// planning request.
type Filters struct {
	WithAircon         bool `json:"withAircon"`
	NoAircon           bool `json:"noAircon"`
	Noodles            bool `json:"noodles"`
	SoupCurry          bool `json:"soup_curry"`
	ChickenRice        bool `json:"chicken_rice"`
	RiceCurry          bool `json:"rice_curry"`
	SomtumNortheastern bool `json:"somtum_northeastern"`
	Steak              bool `json:"steak"`
	Japanese           bool `json:"japanese"`
	Beverage           bool `json:"beverage"`
	Others             bool `json:"others"`
}

// airconPreference collapses the two aircon checkboxes into a tri-state:
// both or neither checked means no filtering at all.
func (f Filters) airconPreference() *bool {
	if f.WithAircon == f.NoAircon {
		return nil
	}
	v := f.WithAircon
	return &v
}

func (f Filters) foodFilterActive() bool {
	return f.Noodles || f.SoupCurry || f.ChickenRice || f.RiceCurry ||
		f.SomtumNortheastern || f.Steak || f.Japanese || f.Others
}

// activeSubCategories lists the named sub-categories currently selected.
// "others" is intentionally absent: it is matched by exclusion.
func (f Filters) activeSubCategories() []string {
	var subs []string
	if f.Noodles {
		subs = append(subs, "noodles")
	}
	if f.SoupCurry {
		subs = append(subs, "soup_curry")
	}
	if f.ChickenRice {
		subs = append(subs, "chicken_rice")
	}
	if f.RiceCurry {
		subs = append(subs, "rice_curry")
	}
	if f.SomtumNortheastern {
		subs = append(subs, "somtum_northeastern")
	}
	if f.Steak {
		subs = append(subs, "steak")
	}
	if f.Japanese {
		subs = append(subs, "japanese")
	}
	return subs
}

// matchesSubCategory reports whether a food item's sub-category passes the
// active filters. With no food filter active everything passes. "others"
// matches any sub-category that is not one of the named food categories.
func (f Filters) matchesSubCategory(sub string) bool {
	if !f.foodFilterActive() {
		return true
	}
	for _, s := range f.activeSubCategories() {
		if sub == s {
			return true
		}
	}
	if f.Others {
		named := false
		for _, s := range canteen.FoodSubCategories {
			if sub == s {
				named = true
				break
			}
		}
		return !named
	}
	return false
}

// MealSlot is one planned meal: a 0-based ordinal plus optional calendar date
// and wall-clock time. DayOfWeek is derived from Date when present. A slot
// with neither date nor time matches any opening hours.
type MealSlot struct {
	MealNumber int    `json:"mealNumber"`
	Date       string `json:"date,omitempty"`
	DayOfWeek  string `json:"dayOfWeek,omitempty"`
	Time       string `json:"time,omitempty"`
}

// Constraints is the decoded planning request. It is an immutable value
// threaded through the resolver and selector; nothing in the pipeline
// mutates it.
type Constraints struct {
	PriceRange          [2]float64 `json:"priceRange"`
	SelectedCanteens    []string   `json:"selectedCanteens"`
	MealsPlanningAmount int        `json:"mealsPlanningAmount"`
	WithBeverage        bool       `json:"withBeverage"`
	TotalPlannedBudgets float64    `json:"totalPlannedBudgets"`
	Filters             Filters    `json:"filters"`
	Meals               []MealSlot `json:"meals"`
}

var weekdayNames = map[time.Weekday]string{
	time.Monday:    "MONDAY",
	time.Tuesday:   "TUESDAY",
	time.Wednesday: "WEDNESDAY",
	time.Thursday:  "THURSDAY",
	time.Friday:    "FRIDAY",
	time.Saturday:  "SATURDAY",
	time.Sunday:    "SUNDAY",
}

// weekdayOf derives the weekday name from a "YYYY-MM-DD" date. An
// unparseable date yields "", which downstream means "matches any day".
func weekdayOf(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	return weekdayNames[t.Weekday()]
}

// extractMealSlots builds the ordered slot list from the packed date and time
// strings ("index#value" pairs joined by "|", wrapped in single quotes).
// Slots without an entry keep empty date/time and match everything.
func extractMealSlots(mealsDate, mealsTime string, amount int) []MealSlot {
	dates := map[int]string{}
	times := map[int]string{}

	parseEntries := func(packed string, into map[int]string) {
		packed = strings.ReplaceAll(packed, "'", "")
		if packed == "" {
			return
		}
		for _, entry := range strings.Split(packed, "|") {
			idx, value, ok := strings.Cut(entry, "#")
			if !ok || idx == "" {
				continue
			}
			n, err := strconv.Atoi(idx)
			if err != nil {
				continue
			}
			into[n] = value
		}
	}

	parseEntries(mealsDate, dates)
	parseEntries(mealsTime, times)

	meals := make([]MealSlot, 0, amount)
	for i := 0; i < amount; i++ {
		slot := MealSlot{MealNumber: i}
		if d, ok := dates[i]; ok {
			slot.Date = d
			slot.DayOfWeek = weekdayOf(d)
		}
		if t, ok := times[i]; ok {
			slot.Time = t
		}
		meals = append(meals, slot)
	}
	return meals
}
