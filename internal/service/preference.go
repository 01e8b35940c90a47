package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/masspath/masspath/backend/internal/logger"
	"github.com/masspath/masspath/backend/internal/types"
)

// Preference tags reported by the inferrers
const (
	PrefHighProtein = "high_protein"
	PrefVegetarian  = "vegetarian"
	PrefLight       = "light"
	PrefFilling     = "filling"
	PrefHalal       = "halal"
)

// PreferenceTags lists the inferred tags in report order
var PreferenceTags = []string{PrefHighProtein, PrefVegetarian, PrefLight, PrefFilling, PrefHalal}

var preferenceKeywords = map[string][]string{
	PrefHighProtein: {"chicken", "beef", "steak", "turkey", "pork", "salmon", "tuna", "fish", "shrimp", "egg", "protein", "tofu"},
	PrefVegetarian:  {"vegetarian", "vegan", "veggie", "tofu", "plant", "salad", "bean", "lentil", "falafel", "hummus"},
	PrefLight:       {"salad", "soup", "fruit", "yogurt", "steamed", "broth", "greens", "wrap"},
	PrefFilling:     {"burger", "burrito", "pasta", "pizza", "rice", "bowl", "sandwich", "fries", "mac"},
	PrefHalal:       {"halal"},
}

var preferenceSuggestions = map[string]string{
	PrefHighProtein: "Try a grilled chicken or salmon plate to keep your protein up.",
	PrefVegetarian:  "Look for a plant based bowl or a tofu stir fry.",
	PrefLight:       "A soup and salad combo would keep your next meal light.",
	PrefFilling:     "A grain bowl with a lean protein will keep you full.",
	PrefHalal:       "Check the halal station for your next meal.",
}

const defaultSuggestion = "Try something new from a station you have not visited yet."

// HeuristicInferrer infers preferences from keyword hits in meal names
type HeuristicInferrer struct{}

var _ IPreferenceInferrer = HeuristicInferrer{}

// Infer implements IPreferenceInferrer. Each weight is the share of meals
// mentioning one of the tag's keywords.
func (HeuristicInferrer) Infer(_ context.Context, meals []string) (*types.PreferenceResult, error) {
	names := cleanMeals(meals)
	if len(names) == 0 {
		return nil, ErrNoMeals
	}

	prefs := make(map[string]float64, len(PreferenceTags))
	for _, tag := range PreferenceTags {
		hits := 0
		for _, name := range names {
			if mentionsAny(name, preferenceKeywords[tag]) {
				hits++
			}
		}
		prefs[tag] = clamp01(float64(hits) / float64(len(names)))
	}

	return &types.PreferenceResult{
		Preferences: prefs,
		Suggestion:  suggestionFor(prefs),
		Source:      "heuristic",
	}, nil
}

func cleanMeals(meals []string) []string {
	out := make([]string, 0, len(meals))
	for _, m := range meals {
		m = strings.ToLower(strings.TrimSpace(m))
		if m != "" {
			out = append(out, m)
		}
	}
	return out
}

func mentionsAny(name string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(name, k) {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, math.Round(v*100)/100))
}

// suggestionFor picks the suggestion of the strongest tag; ties go to the
// earlier tag in PreferenceTags.
func suggestionFor(prefs map[string]float64) string {
	best, bestWeight := "", 0.0
	for _, tag := range PreferenceTags {
		if prefs[tag] > bestWeight {
			best, bestWeight = tag, prefs[tag]
		}
	}
	if best == "" {
		return defaultSuggestion
	}
	return preferenceSuggestions[best]
}

// TextGenerator produces a text completion for a prompt
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiGenerator is a TextGenerator on the Gemini API
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a Gemini client for model
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

// Generate implements TextGenerator
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	model := g.client.GenerativeModel(g.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected gemini response part %T", resp.Candidates[0].Content.Parts[0])
	}
	return strings.TrimSpace(string(text)), nil
}

// Close releases the Gemini client
func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}

// LLMInferrer keeps the heuristic weights and asks a TextGenerator for the
// suggestion. Generator failures fall back to the heuristic suggestion.
type LLMInferrer struct {
	generator TextGenerator
	fallback  HeuristicInferrer
}

var _ IPreferenceInferrer = (*LLMInferrer)(nil)

// NewLLMInferrer creates an LLMInferrer on generator
func NewLLMInferrer(generator TextGenerator) *LLMInferrer {
	return &LLMInferrer{generator: generator}
}

// Infer implements IPreferenceInferrer
func (i *LLMInferrer) Infer(ctx context.Context, meals []string) (*types.PreferenceResult, error) {
	result, err := i.fallback.Infer(ctx, meals)
	if err != nil {
		return nil, err
	}

	suggestion, err := i.generator.Generate(ctx, suggestionPrompt(meals, result.Preferences))
	if err != nil {
		logger.Warn("preference suggestion failed, using heuristic", "error", err)
		return result, nil
	}
	if suggestion != "" {
		result.Suggestion = suggestion
		result.Source = "gemini"
	}
	return result, nil
}

func suggestionPrompt(meals []string, prefs map[string]float64) string {
	var b strings.Builder
	b.WriteString("You are a campus dining assistant. A student recently ate:\n")
	for _, m := range meals {
		if m = strings.TrimSpace(m); m != "" {
			fmt.Fprintf(&b, "- %s\n", m)
		}
	}
	b.WriteString("Their inferred preferences (0 to 1):\n")
	for _, tag := range PreferenceTags {
		fmt.Fprintf(&b, "- %s: %.2f\n", tag, prefs[tag])
	}
	b.WriteString("Suggest their next dining hall meal in one short sentence. Reply with the sentence only.")
	return b.String()
}
