package menu

import (
	"math"
	"strconv"
	"strings"
)

// Raw attribute keys carried by FoodPro menu items.
const (
	AttrProtein  = "data-protein"
	AttrCarbs    = "data-total-carb"
	AttrFat      = "data-total-fat"
	AttrCalories = "data-calories"
)

// FoodRecord is a single normalized menu offering.
//
// Records are only built by NewFoodRecord and are passed by value; every
// field holds a usable zero value when the source omitted or malformed it.
type FoodRecord struct {
	Name          string     `json:"name"`
	Calories      float64    `json:"calories"`
	Protein       float64    `json:"protein"`
	Carbs         float64    `json:"carbs"`
	Fat           float64    `json:"fat"`
	Location      string     `json:"location"`
	Category      string     `json:"category"`
	MealPeriod    MealPeriod `json:"meal_period"`
	Allergens     string     `json:"allergens"`
	DietaryTags   []string   `json:"dietary_tags"`
	Ingredients   string     `json:"ingredients"`
	ServingSize   string     `json:"serving_size"`
	Healthfulness string     `json:"healthfulness"`
}

// Meta is the placement of a raw item inside a menu payload.
type Meta struct {
	Location   string
	Category   string
	MealPeriod MealPeriod
}

// NewFoodRecord builds a FoodRecord from a loosely typed raw item. It returns
// false when the item has no usable name.
func NewFoodRecord(item map[string]any, meta Meta) (FoodRecord, bool) {
	name := strings.TrimSpace(stringField(item, "name"))
	if name == "" {
		return FoodRecord{}, false
	}

	rec := FoodRecord{
		Name:          name,
		Calories:      ParseNutrition(item["calories"]),
		Location:      meta.Location,
		Category:      meta.Category,
		MealPeriod:    meta.MealPeriod,
		Allergens:     stringField(item, "allergens"),
		Ingredients:   stringField(item, "ingredients"),
		ServingSize:   stringField(item, "serving_size"),
		Healthfulness: stringField(item, "healthfulness"),
	}
	if rec.MealPeriod == "" {
		rec.MealPeriod = PeriodUnknown
	}

	if attrs, ok := item["raw_attrs"].(map[string]any); ok {
		rec.Protein = ParseNutrition(attrs[AttrProtein])
		rec.Carbs = ParseNutrition(attrs[AttrCarbs])
		rec.Fat = ParseNutrition(attrs[AttrFat])
		if rec.Calories == 0 {
			rec.Calories = ParseNutrition(attrs[AttrCalories])
		}
	} else {
		rec.Protein = ParseNutrition(item["protein"])
		rec.Carbs = ParseNutrition(item["carbs"])
		rec.Fat = ParseNutrition(item["fat"])
	}

	diet := stringField(item, "clean_diet")
	if diet == "" {
		diet = stringField(item, "dietary_tags")
	}
	rec.DietaryTags = SplitTags(diet)
	if list, ok := item["dietary_tags"].([]any); ok {
		for _, v := range list {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				rec.DietaryTags = append(rec.DietaryTags, strings.TrimSpace(s))
			}
		}
	}

	return rec, true
}

// HasTag reports whether any dietary tag contains marker, ignoring case and
// the separators "-", "_" and " ".
func (f FoodRecord) HasTag(marker string) bool {
	want := foldTag(marker)
	for _, t := range f.DietaryTags {
		if strings.Contains(foldTag(t), want) {
			return true
		}
	}
	return false
}

// ParseNutrition converts a raw nutrition value such as 12, "6.5g" or
// "230 kcal" to a non-negative float. Anything unparseable yields 0.
func ParseNutrition(v any) float64 {
	var n float64
	switch val := v.(type) {
	case float64:
		n = val
	case float32:
		n = float64(val)
	case int:
		n = float64(val)
	case int64:
		n = float64(val)
	case string:
		n = parseLooseNumber(val)
	default:
		return 0
	}
	if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return 0
	}
	return n
}

// SplitTags splits a free-text diet string ("Halal, Antibiotic Free") into tags.
func SplitTags(s string) []string {
	tags := []string{}
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' || r == '|' }) {
		if t := strings.TrimSpace(part); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// parseLooseNumber drops everything but digits, dots and minus signs, then
// reads the leading number: "<1g" is 1, "1,200" is 1200, "10-15g" is 10.
func parseLooseNumber(s string) float64 {
	kept := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)

	end := 0
	dot := false
	for end < len(kept) {
		c := kept[end]
		switch {
		case c >= '0' && c <= '9':
		case c == '-' && end == 0:
		case c == '.' && !dot:
			dot = true
		default:
			n, _ := strconv.ParseFloat(kept[:end], 64)
			return n
		}
		end++
	}
	n, err := strconv.ParseFloat(kept, 64)
	if err != nil {
		return 0
	}
	return n
}

func stringField(item map[string]any, key string) string {
	s, _ := item[key].(string)
	return s
}

func foldTag(s string) string {
	r := strings.NewReplacer("-", "", "_", "", " ", "")
	return strings.ToLower(r.Replace(s))
}
