package recommend

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masspath/masspath/backend/internal/menu"
)

func food(name string, protein, calories float64, tags ...string) menu.FoodRecord {
	return menu.FoodRecord{
		Name:        name,
		Protein:     protein,
		Calories:    calories,
		Location:    "Worcester",
		MealPeriod:  menu.PeriodLunch,
		DietaryTags: tags,
	}
}

func topNames(res Result) []string {
	out := []string{}
	for _, e := range res.Top {
		out = append(out, e.Name)
	}
	return out
}

func TestScoreClampsAndTags(t *testing.T) {
	res := Score([]menu.FoodRecord{food("Steak", 35, 520, "Antibiotic Free")})
	require.Len(t, res.All, 1)

	e := res.All[0]
	assert.Equal(t, MaxScore, e.MatchScore)
	assert.Equal(t, []string{TagHighProtein, TagFilling}, e.Tags)
	assert.Equal(t, DistanceRotation[0], e.Distance)
	assert.Equal(t, AvailableLunch, e.Availability)
	assert.Equal(t, 1, e.Rank)
}

func TestAdmissionBand(t *testing.T) {
	tests := []struct {
		name string
		rec  menu.FoodRecord
		want bool
	}{
		{"inside", food("a", 25, 300), true},
		{"protein at threshold", food("b", 20, 300), false},
		{"calories at lower bound", food("c", 25, 200), true},
		{"calories below", food("d", 25, 199.9), false},
		{"calories at upper bound", food("e", 25, 800), false},
		{"zero", food("f", 0, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Admit(tt.rec))
		})
	}
}

func TestScoreBoundsAndTagCount(t *testing.T) {
	var records []menu.FoodRecord
	for p := 0.0; p <= 60; p += 5 {
		for c := 0.0; c <= 900; c += 50 {
			records = append(records, food(fmt.Sprintf("p%.0f-c%.0f", p, c), p, c, "Halal", "Plant Based", "Antibiotic Free"))
		}
	}
	for _, r := range records {
		if !Admit(r) {
			continue
		}
		score := MatchScore(r)
		assert.GreaterOrEqual(t, score, BaseScore)
		assert.LessOrEqual(t, score, MaxScore)

		tags := Tags(r)
		assert.GreaterOrEqual(t, len(tags), 1)
		assert.LessOrEqual(t, len(tags), MaxTags)
		assert.NotContains(t, tags, TagBalanced)
	}
}

func TestTagsBalancedOnlyWhenNothingApplies(t *testing.T) {
	assert.Equal(t, []string{TagBalanced}, Tags(food("Plain", 25, 450)))
	assert.Equal(t, []string{TagLight}, Tags(food("Salad", 25, 300)))
	assert.Equal(t, []string{TagLight, TagVegetarian, TagHalal}, Tags(food("Bowl", 22, 350, "plant-based", "HALAL")))
	assert.Equal(t, []string{TagHighProtein, TagLight, TagVegetarian}, Tags(food("Tofu", 31, 350, "Plant Based", "Halal")))
}

func TestMatchScoreMonotonicInProtein(t *testing.T) {
	prev := 0
	for p := 21.0; p <= 60; p++ {
		s := MatchScore(food("x", p, 450))
		assert.GreaterOrEqual(t, s, prev)
		prev = s
	}
}

func TestScoreWindowIsFirstTenAdmitted(t *testing.T) {
	var records []menu.FoodRecord
	records = append(records, food("rejected", 5, 100))
	for i := 0; i < 12; i++ {
		records = append(records, food(fmt.Sprintf("item-%02d", i), 25, 300))
	}

	res := Score(records)
	require.Len(t, res.All, MaxScored)
	assert.Equal(t, "item-00", res.All[0].Name)
	assert.Equal(t, "item-09", res.All[9].Name)
	assert.Len(t, res.Top, TopN)

	for i, e := range res.All {
		assert.Equal(t, DistanceRotation[i%3], e.Distance)
	}
}

func TestTopThreeInvariantUnderReorderingBelow(t *testing.T) {
	top := []menu.FoodRecord{
		food("Steak", 40, 500, "Antibiotic Free"),
		food("Chicken", 35, 450),
		food("Salmon", 33, 420),
	}
	var rest []menu.FoodRecord
	for i := 0; i < 9; i++ {
		rest = append(rest, food(fmt.Sprintf("side-%d", i), 22, 300+float64(i)))
	}

	base := Score(append(append([]menu.FoodRecord{}, top...), rest...))
	assert.Equal(t, []string{"Steak", "Chicken", "Salmon"}, topNames(base))

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10; i++ {
		shuffled := append([]menu.FoodRecord{}, rest[:7]...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		input := append(append([]menu.FoodRecord{}, top...), shuffled...)
		input = append(input, rest[7:]...)

		res := Score(input)
		assert.Equal(t, topNames(base), topNames(res))
	}
}

func TestTopTieBreak(t *testing.T) {
	res := Score([]menu.FoodRecord{
		food("Beta", 25, 450),
		food("Alpha", 25, 450),
		food("Heavy", 28, 450),
		food("Alpha", 25, 450),
	})
	require.Len(t, res.Top, 3)
	assert.Equal(t, "Heavy", res.Top[0].Name)
	assert.Equal(t, "Alpha", res.Top[1].Name)
	assert.Equal(t, "Alpha", res.Top[2].Name)
	assert.Equal(t, DistanceRotation[1], res.Top[1].Distance)
	assert.Equal(t, DistanceRotation[0], res.Top[2].Distance)
	assert.Equal(t, 4, res.All[0].Rank)
}

func TestScoreEmpty(t *testing.T) {
	res := Score(nil)
	assert.Empty(t, res.All)
	assert.Empty(t, res.Top)

	res = Score([]menu.FoodRecord{food("Water", 0, 0)})
	assert.Empty(t, res.All)
}

func TestScoreRoundsNutrition(t *testing.T) {
	r := food("Wrap", 24.6, 399.5)
	r.Carbs = 40.4
	r.Fat = 10.5
	res := Score([]menu.FoodRecord{r})
	require.Len(t, res.All, 1)
	assert.Equal(t, 25, res.All[0].Protein)
	assert.Equal(t, 400, res.All[0].Calories)
	assert.Equal(t, 40, res.All[0].Carbs)
	assert.Equal(t, 11, res.All[0].Fat)
	// banding uses the unrounded calories
	assert.Equal(t, BaseScore, res.All[0].MatchScore)
	assert.Contains(t, res.All[0].Tags, TagLight)
}

func TestParseFilter(t *testing.T) {
	for in, want := range map[string]Filter{
		"":             FilterAll,
		"all":          FilterAll,
		"High-Protein": FilterHighProtein,
		"high_protein": FilterHighProtein,
		"vegetarian":   FilterVegetarian,
		"light":        FilterLight,
	} {
		got, err := ParseFilter(in)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseFilter("spicy")
	assert.ErrorIs(t, err, ErrUnknownFilter)
}

func TestFilterApply(t *testing.T) {
	res := Score([]menu.FoodRecord{
		food("Steak", 40, 650),
		food("Tofu", 22, 300, "Plant Based"),
		food("Rice Bowl", 21, 450),
	})

	assert.Len(t, FilterAll.Apply(res), 3)
	assert.Equal(t, "Steak", FilterHighProtein.Apply(res)[0].Name)
	assert.Equal(t, "Tofu", FilterVegetarian.Apply(res)[0].Name)
	assert.Len(t, FilterLight.Apply(res), 1)
	assert.Empty(t, FilterHighProtein.Apply(Result{}))
}

func TestAvailability(t *testing.T) {
	assert.Equal(t, AvailableBreakfast, Availability(menu.PeriodBreakfast))
	assert.Equal(t, AvailableDinner, Availability(menu.PeriodDinner))
	assert.Equal(t, AvailableMidnight, Availability(menu.PeriodMidnight))
	assert.Equal(t, AvailableToday, Availability(menu.PeriodUnknown))
}
