package menu

import (
	"sort"
)

// Payload is a decoded upstream menu: meal period key -> category key -> items.
type Payload map[string]any

// Normalize flattens a dining hall menu payload into FoodRecords.
//
// Each category value may be a plain item array, an object with an "items"
// array, or a nested object whose values are (eventually) arrays. Anything
// else contributes no records. Output order is deterministic for a given
// payload: meal periods in canonical order, categories and nested keys sorted.
func Normalize(payload Payload, hall string) []FoodRecord {
	records := []FoodRecord{}
	mealKeys := sortedKeys(payload)
	sortMealKeys(mealKeys)

	for _, mealKey := range mealKeys {
		categories, ok := payload[mealKey].(map[string]any)
		if !ok {
			continue
		}
		period := ParseMealPeriod(mealKey)
		for _, category := range sortedKeys(categories) {
			meta := Meta{Location: hall, Category: category, MealPeriod: period}
			for _, raw := range resolveItems(categories[category]) {
				item, ok := raw.(map[string]any)
				if !ok {
					continue
				}
				if rec, ok := NewFoodRecord(item, meta); ok {
					records = append(records, rec)
				}
			}
		}
	}
	return records
}

// NormalizeResponse flattens a single-hall envelope of the form {"menu": {...}}.
// A missing or malformed menu yields no records.
func NormalizeResponse(envelope map[string]any, hall string) []FoodRecord {
	if envelope == nil {
		return []FoodRecord{}
	}
	m, ok := envelope["menu"].(map[string]any)
	if !ok {
		return []FoodRecord{}
	}
	return Normalize(m, hall)
}

// NormalizeAll flattens an all-halls envelope {hall: {"menu": {...}}}, halls
// in sorted order.
func NormalizeAll(data map[string]any) []FoodRecord {
	records := []FoodRecord{}
	for _, hall := range sortedKeys(data) {
		envelope, ok := data[hall].(map[string]any)
		if !ok {
			continue
		}
		records = append(records, NormalizeResponse(envelope, hall)...)
	}
	return records
}

// resolveItems applies the three accepted category shapes in priority order.
func resolveItems(category any) []any {
	switch v := category.(type) {
	case []any:
		return v
	case map[string]any:
		if items, ok := v["items"].([]any); ok {
			return items
		}
		return collectNested(v)
	default:
		return nil
	}
}

func collectNested(obj map[string]any) []any {
	var items []any
	for _, key := range sortedKeys(obj) {
		switch v := obj[key].(type) {
		case []any:
			items = append(items, v...)
		case map[string]any:
			items = append(items, collectNested(v)...)
		}
	}
	return items
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
