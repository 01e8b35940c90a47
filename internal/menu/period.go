package menu

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MealPeriod is a coarse time-of-day bucket of a dining hall menu.
type MealPeriod string

const (
	PeriodBreakfast MealPeriod = "breakfast"
	PeriodLunch     MealPeriod = "lunch"
	PeriodDinner    MealPeriod = "dinner"
	PeriodMidnight  MealPeriod = "midnight"
	PeriodUnknown   MealPeriod = "unknown"
)

var periodOrder = map[MealPeriod]int{
	PeriodBreakfast: 0,
	PeriodLunch:     1,
	PeriodDinner:    2,
	PeriodMidnight:  3,
}

// ParseMealPeriod maps upstream meal keys ("lunch", "lunch_menu", "Late Night")
// onto a MealPeriod. Unrecognized keys map to PeriodUnknown.
func ParseMealPeriod(key string) MealPeriod {
	k := strings.ToLower(strings.TrimSpace(key))
	k = strings.TrimSuffix(k, "_menu")
	k = strings.TrimSuffix(k, " menu")
	k = strings.NewReplacer("_", "", "-", "", " ", "").Replace(k)
	switch k {
	case "breakfast", "brunch":
		return PeriodBreakfast
	case "lunch":
		return PeriodLunch
	case "dinner":
		return PeriodDinner
	case "midnight", "latenight", "late":
		return PeriodMidnight
	default:
		return PeriodUnknown
	}
}

// ErrUnknownMealPeriod is returned by ParsePeriodFilter for names it does not know.
var ErrUnknownMealPeriod = errors.New("unknown meal period")

// ParsePeriodFilter parses a client-supplied period. Unlike ParseMealPeriod
// it rejects anything that is not breakfast, lunch, dinner or midnight.
func ParsePeriodFilter(s string) (MealPeriod, error) {
	p := ParseMealPeriod(s)
	if p == PeriodUnknown {
		return "", fmt.Errorf("%w: %q", ErrUnknownMealPeriod, s)
	}
	return p, nil
}

// Label is the display form of the period, e.g. "Breakfast".
func (p MealPeriod) Label() string {
	if p == PeriodMidnight {
		return "Late Night"
	}
	return cases.Title(language.English).String(string(p))
}

// sortMealKeys orders raw meal keys canonically: breakfast, lunch, dinner,
// midnight, then everything else alphabetically.
func sortMealKeys(keys []string) {
	sort.SliceStable(keys, func(i, j int) bool {
		pi, iok := periodOrder[ParseMealPeriod(keys[i])]
		pj, jok := periodOrder[ParseMealPeriod(keys[j])]
		switch {
		case iok && jok && pi != pj:
			return pi < pj
		case iok != jok:
			return iok
		default:
			return keys[i] < keys[j]
		}
	})
}
