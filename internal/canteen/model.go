package canteen

// Menu item categories. Everything that is not DRINK counts as food when
// resolving meal candidates.
const (
	CategoryFood  = "FOOD"
	CategoryDrink = "DRINK"
)

// Named food sub-categories. Items carrying any other tag (including the
// literal "others") fall under the "others" filter.
var FoodSubCategories = []string{
	"noodles",
	"soup_curry",
	"chicken_rice",
	"rice_curry",
	"somtum_northeastern",
	"steak",
	"japanese",
}

// SubCategoryToppings marks drink add-ons that are never picked as a beverage.
const SubCategoryToppings = "toppings"

type Canteen struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	WithAirConditioning bool    `json:"withAirConditioning"`
	Stores              []Store `json:"stores,omitempty"`
}

type Store struct {
	ID           string        `json:"id"`
	CanteenID    string        `json:"canteenId"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Menu         []MenuItem    `json:"menu,omitempty"`
	OpeningHours []OpeningHour `json:"openingHours,omitempty"`
	Ratings      []Rating      `json:"ratings,omitempty"`
}

// MenuItem has no identity of its own; (name, category, price) is used as the
// dedup key during plan selection.
type MenuItem struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	SubCategory string  `json:"sub_category"`
	Price       float64 `json:"price"`
}

// OpeningHour is one weekly schedule entry. At most one entry per day; a day
// without an entry means the store is closed that day. Times are "HH:MM"
// wall-clock local to the venue.
type OpeningHour struct {
	DayOfWeek string `json:"dayOfWeek"`
	Start     string `json:"start"`
	End       string `json:"end"`
}

type Rating struct {
	StoreID           string  `json:"storeId"`
	ClientFingerprint string  `json:"clientFingerprint"`
	Rating            float64 `json:"rating"`
}
