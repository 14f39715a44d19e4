package recommend

import (
	"strings"

	"content-dna/internal/models"
)

// exampleValues fill common placeholders when the user supplies nothing.
var exampleValues = map[string]string{
	"action":           "Optimized My Workflow",
	"positive_outcome": "Save 10 Hours Every Week",
	"number":           "3",
	"tools/methods":    "Simple Tools",
	"goal":             "Boost Productivity",
	"timeframe":        "30 Days",
	"fitness_method":   "Intermittent Fasting",
	"ai_tool":          "GPT-4",
}

// ExampleValue returns the built-in example for a placeholder, if any.
func ExampleValue(placeholder string) (string, bool) {
	v, ok := exampleValues[placeholder]
	return v, ok
}

// DraftTitles fills every suggested template, in suggestion order. User values
// take precedence over the built-in examples; placeholders left without a
// value stay in braces and are reported in Missing.
func DraftTitles(suggestions []models.TitleSuggestion, values map[string]string) []models.TitleDraft {
	merged := make(map[string]string, len(exampleValues)+len(values))
	for k, v := range exampleValues {
		merged[k] = v
	}
	for k, v := range values {
		if strings.TrimSpace(v) != "" {
			merged[k] = v
		}
	}

	drafts := make([]models.TitleDraft, 0, len(suggestions))
	for _, s := range suggestions {
		title, missing := s.Template.Fill(merged)
		drafts = append(drafts, models.TitleDraft{
			Pattern:  s.Pattern,
			CTRScore: s.CTRScore,
			Title:    title,
			Missing:  missing,
		})
	}
	return drafts
}
