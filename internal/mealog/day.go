// Package mealog keeps the per-day running totals of logged meals.
package mealog

import (
	"errors"
	"math"
	"time"
)

// ErrNotFound is returned when removing an id that is not in the day.
var ErrNotFound = errors.New("meal entry not found")

// Entry is one logged meal as seen by the running total.
type Entry struct {
	ID       string
	Name     string
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
	LoggedAt time.Time
}

// Macros are gram totals.
type Macros struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

// Day is the ordered meal log of a single calendar day. The zero value is an
// empty day. Totals are always summed over the entries in log order, so
// adding and then removing an entry restores the previous total bit for bit.
type Day struct {
	Date    time.Time
	entries []Entry
}

// NewDay returns a day holding entries in the given order.
func NewDay(date time.Time, entries ...Entry) *Day {
	d := &Day{Date: date}
	d.entries = append(d.entries, entries...)
	return d
}

// Add appends e to the log.
func (d *Day) Add(e Entry) {
	d.entries = append(d.entries, e)
}

// Remove deletes the entry with the given id.
func (d *Day) Remove(id string) (Entry, error) {
	for i, e := range d.entries {
		if e.ID == id {
			d.entries = append(d.entries[:i:i], d.entries[i+1:]...)
			return e, nil
		}
	}
	return Entry{}, ErrNotFound
}

// Len is the number of logged entries.
func (d *Day) Len() int { return len(d.entries) }

// Total is the calorie sum of the day.
func (d *Day) Total() float64 {
	var total float64
	for _, e := range d.entries {
		total += e.Calories
	}
	return total
}

// Macros sums protein, carbs and fat.
func (d *Day) Macros() Macros {
	var m Macros
	for _, e := range d.entries {
		m.Protein += e.Protein
		m.Carbs += e.Carbs
		m.Fat += e.Fat
	}
	return m
}

// Progress describes the day against a calorie target.
type Progress struct {
	Total     float64 `json:"total"`
	Target    float64 `json:"target"`
	Remaining float64 `json:"remaining"`
	Percent   float64 `json:"percent"`
}

// Progress reports the total against target. Percent is capped at 100 and
// Remaining never goes below 0.
func (d *Day) Progress(target float64) Progress {
	total := d.Total()
	p := Progress{Total: total, Target: target}
	if target <= 0 {
		return p
	}
	p.Remaining = math.Max(0, target-total)
	p.Percent = math.Min(100, math.Round(total/target*1000)/10)
	return p
}
