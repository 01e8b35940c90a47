package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/masspath/masspath/backend/internal/logger"
	"github.com/masspath/masspath/backend/internal/menu"
)

// MenuSource fetches the raw menu envelope {"menu": {...}} of one dining hall.
type MenuSource interface {
	FetchHall(ctx context.Context, hall string, date time.Time) (map[string]any, error)
}

// HTTPMenuSource reads menus from the MassPath menu API, which answers
// GET {base}/menu/{hall} with {"success": bool, "data": {"menu": {...}}}.
type HTTPMenuSource struct {
	baseURL string
	client  *http.Client
}

// NewHTTPMenuSource creates a source for the menu API at baseURL
func NewHTTPMenuSource(baseURL string, timeout time.Duration) *HTTPMenuSource {
	return &HTTPMenuSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type menuAPIResponse struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data"`
	Error   string         `json:"error"`
}

// FetchHall implements MenuSource
func (s *HTTPMenuSource) FetchHall(ctx context.Context, hall string, date time.Time) (map[string]any, error) {
	endpoint := fmt.Sprintf("%s/menu/%s?date=%s", s.baseURL, url.PathEscape(strings.ToLower(hall)), date.Format("2006-01-02"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create menu request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch menu for %s: %w", hall, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrUpstream, hall, resp.StatusCode)
	}

	var body menuAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode menu response: %w", err)
	}
	if !body.Success {
		return nil, fmt.Errorf("%w: %s", ErrUpstream, body.Error)
	}
	if body.Data == nil {
		return map[string]any{}, nil
	}
	return body.Data, nil
}

// FoodProLocations maps dining hall names to FoodPro location ids
var FoodProLocations = map[string]int{
	"Berkshire": 1,
	"Franklin":  2,
	"Worcester": 3,
	"Hampshire": 4,
}

// FoodProSource scrapes the FoodPro menu ajax endpoint directly
type FoodProSource struct {
	endpoint string
	client   *http.Client
	retries  int
	backoff  time.Duration
}

// NewFoodProSource creates a FoodPro scraper for endpoint
func NewFoodProSource(endpoint string, timeout time.Duration) *FoodProSource {
	return &FoodProSource{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		retries:  2,
		backoff:  time.Second,
	}
}

// WithRetry overrides the retry count and the delay between attempts
func (s *FoodProSource) WithRetry(retries int, backoff time.Duration) *FoodProSource {
	s.retries = retries
	s.backoff = backoff
	return s
}

// FetchHall implements MenuSource
func (s *FoodProSource) FetchHall(ctx context.Context, hall string, date time.Time) (map[string]any, error) {
	tid, ok := FoodProLocations[hall]
	if !ok {
		if n, err := strconv.Atoi(hall); err == nil {
			tid = n
		} else {
			return nil, fmt.Errorf("%w: %s", ErrUnknownHall, hall)
		}
	}

	raw, err := s.FetchLocation(ctx, tid, date)
	if err != nil {
		return nil, err
	}
	return map[string]any{"menu": menu.ExpandHTML(raw)}, nil
}

// FetchLocation returns the decoded FoodPro JSON of one location id with the
// HTML fragments left in place.
func (s *FoodProSource) FetchLocation(ctx context.Context, tid int, date time.Time) (map[string]any, error) {
	q := url.Values{}
	q.Set("tid", strconv.Itoa(tid))
	q.Set("date", date.Format("01/02/2006"))
	endpoint := s.endpoint + "?" + q.Encode()

	var lastErr error
	for attempt := 0; attempt <= s.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.backoff):
			}
		}

		data, err := s.get(ctx, endpoint)
		if err == nil {
			return data, nil
		}
		lastErr = err
		logger.Warn("foodpro request failed", "tid", tid, "attempt", attempt+1, "error", err)
	}
	return nil, fmt.Errorf("failed to fetch foodpro location %d: %w", tid, lastErr)
}

func (s *FoodProSource) get(ctx context.Context, endpoint string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; MassPathMenuFetcher/1.0)")
	req.Header.Set("Accept", "application/json, text/javascript, */*; q=0.01")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode foodpro response: %w", err)
	}
	return out, nil
}
