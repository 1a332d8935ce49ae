package plan

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMalformedToken marks a constraint token that could not be decoded. It is
// a client input error, not a server failure.
var ErrMalformedToken = errors.New("malformed constraint token")

// Static abbreviation table for the constraint token wire format. The
// assembled "key=value;..." string is raw-DEFLATE compressed and base64url
// encoded without padding.
var tokenFieldOrder = []string{
	"mD", "mT", "wB", "mPA", "sC", "pR", "tPB",
	"wA", "nA", "n", "sp", "c_", "r_", "s_", "s", "j", "b", "o",
}

var tokenFieldNames = map[string]string{
	"mD":  "mealsDate",
	"mT":  "mealsTime",
	"wB":  "withBeverage",
	"mPA": "mealsPlanningAmount",
	"sC":  "selectedCanteens",
	"pR":  "priceRange",
	"tPB": "totalPlannedBudgets",
	"wA":  "withAircon",
	"nA":  "noAircon",
	"n":   "noodles",
	"sp":  "soup_curry",
	"c_":  "chicken_rice",
	"r_":  "rice_curry",
	"s_":  "somtum_northeastern",
	"s":   "steak",
	"j":   "japanese",
	"b":   "beverage",
	"o":   "others",
}

func boolToken(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// EncodeToken serializes constraints into the compact URL-safe token.
func EncodeToken(c Constraints) (string, error) {
	var mealsDate, mealsTime []string
	for _, meal := range c.Meals {
		if meal.Date != "" {
			mealsDate = append(mealsDate, fmt.Sprintf("%d#%s", meal.MealNumber, meal.Date))
		}
		if meal.Time != "" {
			mealsTime = append(mealsTime, fmt.Sprintf("%d#%s", meal.MealNumber, meal.Time))
		}
	}

	values := map[string]string{
		"mD":  "",
		"mT":  "",
		"wB":  boolToken(c.WithBeverage),
		"mPA": strconv.Itoa(c.MealsPlanningAmount),
		"sC":  strings.Join(c.SelectedCanteens, ","),
		"pR":  formatNumber(c.PriceRange[0]) + "," + formatNumber(c.PriceRange[1]),
		"tPB": formatNumber(c.TotalPlannedBudgets),
		"wA":  boolToken(c.Filters.WithAircon),
		"nA":  boolToken(c.Filters.NoAircon),
		"n":   boolToken(c.Filters.Noodles),
		"sp":  boolToken(c.Filters.SoupCurry),
		"c_":  boolToken(c.Filters.ChickenRice),
		"r_":  boolToken(c.Filters.RiceCurry),
		"s_":  boolToken(c.Filters.SomtumNortheastern),
		"s":   boolToken(c.Filters.Steak),
		"j":   boolToken(c.Filters.Japanese),
		"b":   boolToken(c.Filters.Beverage),
		"o":   boolToken(c.Filters.Others),
	}
	if len(mealsDate) > 0 {
		values["mD"] = "'" + strings.Join(mealsDate, "|") + "'"
	}
	if len(mealsTime) > 0 {
		values["mT"] = "'" + strings.Join(mealsTime, "|") + "'"
	}

	pairs := make([]string, 0, len(tokenFieldOrder))
	for _, key := range tokenFieldOrder {
		pairs = append(pairs, key+"="+values[key])
	}
	raw := strings.Join(pairs, ";")

	var buf bytes.Buffer
	zw, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		return "", err
	}
	if _, err := zw.Write([]byte(raw)); err != nil {
		return "", err
	}
	if err := zw.Close(); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeToken reverses EncodeToken. Any failure (bad base64, bad DEFLATE
// stream, malformed pair, unknown key) is reported as ErrMalformedToken.
func DecodeToken(token string) (Constraints, error) {
	var c Constraints

	compressed, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(token, "="))
	if err != nil {
		return c, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	zr := flate.NewReader(bytes.NewReader(compressed))
	raw, err := io.ReadAll(zr)
	if err != nil {
		return c, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	_ = zr.Close()

	fields := map[string]string{}
	for _, pair := range strings.Split(string(raw), ";") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return c, fmt.Errorf("%w: pair %q", ErrMalformedToken, pair)
		}
		name, known := tokenFieldNames[key]
		if !known {
			return c, fmt.Errorf("%w: unknown key %q", ErrMalformedToken, key)
		}
		fields[name] = value
	}

	priceRange, err := parsePriceRange(fields["priceRange"])
	if err != nil {
		return c, err
	}
	c.PriceRange = priceRange

	if raw := fields["selectedCanteens"]; raw != "" {
		c.SelectedCanteens = strings.Split(raw, ",")
	}

	amount, err := strconv.Atoi(fields["mealsPlanningAmount"])
	if err != nil || amount < 1 || amount > 5 {
		return c, fmt.Errorf("%w: mealsPlanningAmount %q", ErrMalformedToken, fields["mealsPlanningAmount"])
	}
	c.MealsPlanningAmount = amount

	budget, err := strconv.ParseFloat(fields["totalPlannedBudgets"], 64)
	if err != nil {
		return c, fmt.Errorf("%w: totalPlannedBudgets %q", ErrMalformedToken, fields["totalPlannedBudgets"])
	}
	c.TotalPlannedBudgets = budget

	c.WithBeverage = fields["withBeverage"] == "1"
	c.Filters = Filters{
		WithAircon:         fields["withAircon"] == "1",
		NoAircon:           fields["noAircon"] == "1",
		Noodles:            fields["noodles"] == "1",
		SoupCurry:          fields["soup_curry"] == "1",
		ChickenRice:        fields["chicken_rice"] == "1",
		RiceCurry:          fields["rice_curry"] == "1",
		SomtumNortheastern: fields["somtum_northeastern"] == "1",
		Steak:              fields["steak"] == "1",
		Japanese:           fields["japanese"] == "1",
		Beverage:           fields["beverage"] == "1",
		Others:             fields["others"] == "1",
	}

	c.Meals = extractMealSlots(fields["mealsDate"], fields["mealsTime"], amount)

	return c, nil
}

func parsePriceRange(raw string) ([2]float64, error) {
	var pr [2]float64
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return pr, fmt.Errorf("%w: priceRange %q", ErrMalformedToken, raw)
	}
	for i, part := range parts {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return pr, fmt.Errorf("%w: priceRange %q", ErrMalformedToken, raw)
		}
		pr[i] = v
	}
	return pr, nil
}
