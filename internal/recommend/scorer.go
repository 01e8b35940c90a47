// Package recommend ranks normalized menu records with fixed nutrition rules.
package recommend

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/masspath/masspath/backend/internal/menu"
)

// Admission band, score deltas and window sizes.
const (
	MinProtein      = 20.0 // exclusive
	MinCalories     = 200.0
	MaxCalories     = 800.0 // exclusive
	MaxScored       = 10
	TopN            = 3
	MaxTags         = 3
	BaseScore       = 70
	MaxScore        = 99
	HighProtein     = 30.0 // exclusive
	BandLow         = 400.0
	BandHigh        = 600.0 // exclusive
	LightBelow      = 400.0
	FillingAbove    = 500.0
	BonusProtein    = 15
	BonusBand       = 10
	BonusAntibiotic = 5
)

// Tag names in priority order.
const (
	TagHighProtein = "High Protein"
	TagLight       = "Light"
	TagFilling     = "Filling"
	TagVegetarian  = "Vegetarian"
	TagHalal       = "Halal"
	TagBalanced    = "Balanced"
)

// Dietary markers matched against a record's tags.
const (
	MarkerAntibioticFree = "antibiotic free"
	MarkerPlantBased     = "plant based"
	MarkerVegetarian     = "vegetarian"
	MarkerHalal          = "halal"
)

// DistanceRotation is the placeholder walking distance, indexed by position
// among admitted records.
var DistanceRotation = [3]string{"0.2 mi", "0.4 mi", "0.6 mi"}

// Availability strings per meal period.
const (
	AvailableBreakfast = "Until 10:30 AM"
	AvailableLunch     = "Until 3:00 PM"
	AvailableDinner    = "Until 9:00 PM"
	AvailableMidnight  = "Until 12:00 AM"
	AvailableToday     = "Today"
)

// Entry is a scored recommendation.
type Entry struct {
	Rank         int             `json:"rank"`
	Name         string          `json:"name"`
	Location     string          `json:"location"`
	Category     string          `json:"category"`
	MealPeriod   menu.MealPeriod `json:"meal_period"`
	Calories     int             `json:"calories"`
	Protein      int             `json:"protein"`
	Carbs        int             `json:"carbs"`
	Fat          int             `json:"fat"`
	MatchScore   int             `json:"match_score"`
	Tags         []string        `json:"tags"`
	Availability string          `json:"availability"`
	Distance     string          `json:"distance"`

	position   int
	proteinRaw float64
}

// HasTag reports whether tag was assigned to e.
func (e Entry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Result holds every scored entry in admitted order and the ranked shortlist.
type Result struct {
	All []Entry `json:"all"`
	Top []Entry `json:"top"`
}

// Admit reports whether r falls inside the admission band.
func Admit(r menu.FoodRecord) bool {
	return r.Protein > MinProtein && r.Calories >= MinCalories && r.Calories < MaxCalories
}

// MatchScore computes the clamped additive score of an admitted record.
func MatchScore(r menu.FoodRecord) int {
	score := BaseScore
	if r.Protein > HighProtein {
		score += BonusProtein
	}
	if r.Calories >= BandLow && r.Calories < BandHigh {
		score += BonusBand
	}
	if r.HasTag(MarkerAntibioticFree) {
		score += BonusAntibiotic
	}
	if score > MaxScore {
		score = MaxScore
	}
	return score
}

// Tags assigns at most MaxTags descriptive tags in fixed priority order.
func Tags(r menu.FoodRecord) []string {
	var tags []string
	if r.Protein > HighProtein {
		tags = append(tags, TagHighProtein)
	}
	if r.Calories < LightBelow {
		tags = append(tags, TagLight)
	}
	if r.Calories > FillingAbove {
		tags = append(tags, TagFilling)
	}
	if r.HasTag(MarkerPlantBased) || r.HasTag(MarkerVegetarian) {
		tags = append(tags, TagVegetarian)
	}
	if r.HasTag(MarkerHalal) {
		tags = append(tags, TagHalal)
	}
	if len(tags) == 0 {
		return []string{TagBalanced}
	}
	if len(tags) > MaxTags {
		tags = tags[:MaxTags]
	}
	return tags
}

// Availability maps a meal period to its display window.
func Availability(p menu.MealPeriod) string {
	switch p {
	case menu.PeriodBreakfast:
		return AvailableBreakfast
	case menu.PeriodLunch:
		return AvailableLunch
	case menu.PeriodDinner:
		return AvailableDinner
	case menu.PeriodMidnight:
		return AvailableMidnight
	default:
		return AvailableToday
	}
}

// Score filters, scores and ranks records. Empty input yields an empty Result.
func Score(records []menu.FoodRecord) Result {
	all := make([]Entry, 0, MaxScored)
	for _, r := range records {
		if !Admit(r) {
			continue
		}
		i := len(all)
		all = append(all, Entry{
			Name:         r.Name,
			Location:     r.Location,
			Category:     r.Category,
			MealPeriod:   r.MealPeriod,
			Calories:     round(r.Calories),
			Protein:      round(r.Protein),
			Carbs:        round(r.Carbs),
			Fat:          round(r.Fat),
			MatchScore:   MatchScore(r),
			Tags:         Tags(r),
			Availability: Availability(r.MealPeriod),
			Distance:     DistanceRotation[i%len(DistanceRotation)],
			position:     i,
			proteinRaw:   r.Protein,
		})
		if len(all) == MaxScored {
			break
		}
	}

	ranked := make([]Entry, len(all))
	copy(ranked, all)
	sort.SliceStable(ranked, func(i, j int) bool { return ranksBefore(ranked[i], ranked[j]) })
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	for i := range all {
		all[i].Rank = rankOf(ranked, all[i].position)
	}

	n := TopN
	if len(ranked) < n {
		n = len(ranked)
	}
	return Result{All: all, Top: ranked[:n]}
}

func ranksBefore(a, b Entry) bool {
	if a.MatchScore != b.MatchScore {
		return a.MatchScore > b.MatchScore
	}
	if a.proteinRaw != b.proteinRaw {
		return a.proteinRaw > b.proteinRaw
	}
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.position < b.position
}

func rankOf(ranked []Entry, position int) int {
	for _, e := range ranked {
		if e.position == position {
			return e.Rank
		}
	}
	return 0
}

func round(v float64) int {
	return int(math.Round(v))
}

// ErrUnknownFilter is returned by ParseFilter for names it does not know.
var ErrUnknownFilter = errors.New("unknown recommendation filter")

// Filter names a post-hoc view over the scored set.
type Filter string

const (
	FilterAll         Filter = "all"
	FilterHighProtein Filter = "high-protein"
	FilterVegetarian  Filter = "vegetarian"
	FilterLight       Filter = "light"
)

// ParseFilter accepts "", "all", "high-protein", "vegetarian" and "light".
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FilterAll:
		return FilterAll, nil
	case FilterHighProtein, "high_protein", "highprotein":
		return FilterHighProtein, nil
	case FilterVegetarian, FilterLight:
		return f, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownFilter, s)
	}
}

// Apply returns the entries of res.All visible under f, in admitted order.
func (f Filter) Apply(res Result) []Entry {
	want := ""
	switch f {
	case FilterHighProtein:
		want = TagHighProtein
	case FilterVegetarian:
		want = TagVegetarian
	case FilterLight:
		want = TagLight
	}
	out := []Entry{}
	for _, e := range res.All {
		if want == "" || e.HasTag(want) {
			out = append(out, e)
		}
	}
	return out
}
