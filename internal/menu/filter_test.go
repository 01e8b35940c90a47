package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleRecords() []FoodRecord {
	return []FoodRecord{
		{Name: "Pancakes", Category: "Griddle", MealPeriod: PeriodBreakfast, Ingredients: "flour, milk"},
		{Name: "Chicken Wrap", Category: "Deli", MealPeriod: PeriodLunch, Ingredients: "tortilla, chicken"},
		{Name: "Caesar Salad", Category: "deli", MealPeriod: PeriodLunch, Ingredients: "romaine, parmesan"},
		{Name: "Roast Chicken", Category: "Entree", MealPeriod: PeriodDinner},
	}
}

func TestByMealPeriod(t *testing.T) {
	assert.Equal(t, []string{"Chicken Wrap", "Caesar Salad"}, names(ByMealPeriod(sampleRecords(), PeriodLunch)))
	assert.Empty(t, ByMealPeriod(sampleRecords(), PeriodMidnight))
}

func TestByCategory(t *testing.T) {
	assert.Equal(t, []string{"Chicken Wrap", "Caesar Salad"}, names(ByCategory(sampleRecords(), "DELI")))
}

func TestSearch(t *testing.T) {
	assert.Equal(t, []string{"Chicken Wrap", "Roast Chicken"}, names(Search(sampleRecords(), "chicken")))
	assert.Equal(t, []string{"Caesar Salad"}, names(Search(sampleRecords(), "Parmesan")))
	assert.Len(t, Search(sampleRecords(), "  "), 4)
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{"Griddle", "Deli", "deli", "Entree"}, Categories(sampleRecords()))
}
