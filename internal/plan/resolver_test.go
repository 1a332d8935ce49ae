package plan

import (
	"testing"

	"github.com/Chanakan5591/FlavorFind/internal/canteen"
)

func storeWithHours(id string, hours ...canteen.OpeningHour) canteen.Store {
	return canteen.Store{ID: id, CanteenID: "c1", Name: id, OpeningHours: hours}
}

func TestStoreOpenForSlotTimeWindow(t *testing.T) {
	store := storeWithHours("s1", canteen.OpeningHour{
		DayOfWeek: "MONDAY", Start: "08:00", End: "15:00",
	})

	cases := []struct {
		time string
		want bool
	}{
		{"07:59", false}, // before opening
		{"08:00", true},  // at opening
		{"12:00", true},
		{"14:30", true},  // exactly close minus buffer
		{"14:31", false}, // inside the 30 minute pre-close buffer
		{"15:00", false},
	}

	for _, tc := range cases {
		slot := MealSlot{DayOfWeek: "MONDAY", Time: tc.time}
		if got := storeOpenForSlot(store, slot); got != tc.want {
			t.Errorf("time %s: got %v, want %v", tc.time, got, tc.want)
		}
	}
}

func TestStoreOpenForSlotClosedDay(t *testing.T) {
	store := storeWithHours("s1", canteen.OpeningHour{
		DayOfWeek: "MONDAY", Start: "08:00", End: "15:00",
	})

	slot := MealSlot{DayOfWeek: "TUESDAY"}
	if storeOpenForSlot(store, slot) {
		t.Fatal("store has no Tuesday hours but matched a Tuesday slot")
	}

	// Day matches, no time given: open that day is enough.
	slot = MealSlot{DayOfWeek: "MONDAY"}
	if !storeOpenForSlot(store, slot) {
		t.Fatal("store open on Monday should match a Monday slot without time")
	}
}

func TestStoreOpenForSlotTimeWithoutDay(t *testing.T) {
	store := storeWithHours("s1",
		canteen.OpeningHour{DayOfWeek: "MONDAY", Start: "08:00", End: "10:00"},
		canteen.OpeningHour{DayOfWeek: "FRIDAY", Start: "16:00", End: "20:00"},
	)

	// Any day's window may satisfy the time when no date is given.
	if !storeOpenForSlot(store, MealSlot{Time: "17:00"}) {
		t.Fatal("17:00 fits the Friday window")
	}
	if storeOpenForSlot(store, MealSlot{Time: "12:00"}) {
		t.Fatal("12:00 fits no window")
	}
}

func TestStoreOpenForSlotUnconstrained(t *testing.T) {
	// No date, no time: every store is eligible, even without any hours.
	store := canteen.Store{ID: "s1", CanteenID: "c1"}
	if !storeOpenForSlot(store, MealSlot{}) {
		t.Fatal("unconstrained slot must match every store")
	}
}

func TestResolveCandidatesPerSlot(t *testing.T) {
	weekdayStore := storeWithHours("weekday", canteen.OpeningHour{
		DayOfWeek: "MONDAY", Start: "08:00", End: "18:00",
	})
	weekendStore := storeWithHours("weekend", canteen.OpeningHour{
		DayOfWeek: "SATURDAY", Start: "10:00", End: "20:00",
	})
	drinkStore := storeWithHours("drinks", canteen.OpeningHour{
		DayOfWeek: "MONDAY", Start: "08:00", End: "18:00",
	})

	meals := []MealSlot{
		{MealNumber: 0, DayOfWeek: "MONDAY", Time: "12:00"},
		{MealNumber: 1, DayOfWeek: "SATURDAY", Time: "12:00"},
	}

	candidates := resolveCandidates(meals,
		[]canteen.Store{weekdayStore, weekendStore},
		[]canteen.Store{drinkStore},
	)

	if len(candidates) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(candidates))
	}
	if len(candidates[0].FoodStores) != 1 || candidates[0].FoodStores[0].ID != "weekday" {
		t.Fatalf("Monday slot candidates wrong: %+v", candidates[0].FoodStores)
	}
	if len(candidates[0].DrinkStores) != 1 {
		t.Fatalf("Monday slot should see the drink store")
	}
	if len(candidates[1].FoodStores) != 1 || candidates[1].FoodStores[0].ID != "weekend" {
		t.Fatalf("Saturday slot candidates wrong: %+v", candidates[1].FoodStores)
	}
	if len(candidates[1].DrinkStores) != 0 {
		t.Fatalf("drink store is closed Saturday")
	}
}
