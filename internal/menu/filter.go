package menu

import "strings"

// ByMealPeriod keeps records served during p.
func ByMealPeriod(records []FoodRecord, p MealPeriod) []FoodRecord {
	out := []FoodRecord{}
	for _, r := range records {
		if r.MealPeriod == p {
			out = append(out, r)
		}
	}
	return out
}

// ByCategory keeps records whose category equals category, ignoring case.
func ByCategory(records []FoodRecord, category string) []FoodRecord {
	out := []FoodRecord{}
	for _, r := range records {
		if strings.EqualFold(r.Category, category) {
			out = append(out, r)
		}
	}
	return out
}

// Search keeps records whose name or ingredients contain term, ignoring case.
// An empty term matches everything.
func Search(records []FoodRecord, term string) []FoodRecord {
	term = strings.ToLower(strings.TrimSpace(term))
	out := []FoodRecord{}
	for _, r := range records {
		if term == "" ||
			strings.Contains(strings.ToLower(r.Name), term) ||
			strings.Contains(strings.ToLower(r.Ingredients), term) {
			out = append(out, r)
		}
	}
	return out
}

// Categories lists the distinct categories of records in first-seen order.
func Categories(records []FoodRecord) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, r := range records {
		if !seen[r.Category] {
			seen[r.Category] = true
			out = append(out, r.Category)
		}
	}
	return out
}
