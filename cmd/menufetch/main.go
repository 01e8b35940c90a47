// Command menufetch scrapes FoodPro menus for one day and writes them as
// JSON keyed by hall, with the embedded HTML expanded into dishes.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/masspath/masspath/backend/config"
	"github.com/masspath/masspath/backend/internal/logger"
	"github.com/masspath/masspath/backend/internal/menu"
	"github.com/masspath/masspath/backend/internal/service"
)

const defaultOut = "umass_menu_parsed.json"

type target struct {
	name string
	tid  int
}

type hallResult struct {
	TID   int    `json:"tid"`
	Date  string `json:"date"`
	Menu  any    `json:"menu,omitempty"`
	Error string `json:"error,omitempty"`
}

func main() {
	date := flag.String("date", "", "Date to fetch (YYYY-MM-DD or MM/DD/YYYY). Defaults to tomorrow.")
	names := flag.String("names", "", "Comma-separated hall names (e.g. Hampshire,Berkshire). Default: all.")
	tids := flag.String("tids", "", "Comma-separated FoodPro location ids. Overrides -names.")
	out := flag.String("out", defaultOut, "Output file, - for stdout")
	endpoint := flag.String("endpoint", "https://umassdining.com/foodpro-menu-ajax", "FoodPro menu endpoint")
	verbose := flag.Bool("verbose", false, "Verbose logging")
	flag.Parse()

	level := "info"
	if *verbose {
		level = "debug"
	}
	logger.Init(logger.Config{Level: level, Format: "text", Output: os.Stderr})

	day, err := parseDate(*date, time.Now())
	if err != nil {
		logger.Error("invalid date", "error", err)
		os.Exit(2)
	}
	targets, err := selectTargets(*names, *tids)
	if err != nil {
		logger.Error("invalid targets", "error", err)
		os.Exit(2)
	}
	logger.Debug("menufetch config", "date", day.Format("01/02/2006"), "targets", len(targets), "out", *out)

	source := service.NewFoodProSource(*endpoint, 20*time.Second)
	result := scrape(context.Background(), source, targets, day)

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Error("failed to encode menus", "error", err)
		os.Exit(1)
	}
	if *out == "-" {
		fmt.Println(string(data))
		return
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		logger.Error("failed to write menus", "file", *out, "error", err)
		os.Exit(1)
	}
	logger.Info("saved parsed menus", "file", *out)
}

type locationFetcher interface {
	FetchLocation(ctx context.Context, tid int, date time.Time) (map[string]any, error)
}

func scrape(ctx context.Context, source locationFetcher, targets []target, day time.Time) map[string]hallResult {
	date := day.Format("01/02/2006")
	result := make(map[string]hallResult, len(targets))
	for _, t := range targets {
		logger.Debug("fetching menu", "hall", t.name, "tid", t.tid, "date", date)
		raw, err := source.FetchLocation(ctx, t.tid, day)
		if err != nil {
			logger.Warn("failed to fetch menu", "hall", t.name, "tid", t.tid, "error", err)
			result[t.name] = hallResult{TID: t.tid, Date: date, Error: err.Error()}
			continue
		}
		result[t.name] = hallResult{TID: t.tid, Date: date, Menu: menu.ExpandHTML(raw)}
	}
	return result
}

// parseDate accepts YYYY-MM-DD, YYYY/MM/DD and MM/DD/YYYY; empty means tomorrow
func parseDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now.AddDate(0, 0, 1), nil
	}
	for _, layout := range []string{"2006-01-02", "2006/01/02", "01/02/2006", "1/2/2006"} {
		if d, err := time.ParseInLocation(layout, s, now.Location()); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %s", s)
}

// selectTargets resolves the halls to fetch. Explicit ids win over names;
// unknown names are skipped with a warning.
func selectTargets(names, tids string) ([]target, error) {
	if ids := splitList(tids); len(ids) > 0 {
		out := make([]target, 0, len(ids))
		for _, id := range ids {
			tid, err := strconv.Atoi(id)
			if err != nil {
				return nil, fmt.Errorf("bad tid %q: %w", id, err)
			}
			out = append(out, target{name: "tid_" + id, tid: tid})
		}
		return out, nil
	}

	wanted := splitList(names)
	if len(wanted) == 0 {
		wanted = config.DefaultHalls
	}
	var out []target
	for _, n := range wanted {
		tid, ok := service.FoodProLocations[n]
		if !ok {
			logger.Warn("hall not in default mapping, skipping", "name", n)
			continue
		}
		out = append(out, target{name: n, tid: tid})
	}
	return out, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
