package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"content-dna/internal/models"
	"content-dna/shared/config"
	"content-dna/shared/recommend"

	"google.golang.org/genai"
)

const maxReferenceTitles = 5

// ErrNoPlaceholders is returned when none of the suggested templates need values.
var ErrNoPlaceholders = errors.New("title templates have no placeholders to fill")

// TitleWriter asks Gemini for placeholder values and fills the title templates
// with them. It never changes pattern order or scores.
type TitleWriter struct {
	client *genai.Client
	model  string
}

func NewTitleWriter(ctx context.Context, cfg *config.AIConfig) (*TitleWriter, error) {
	if cfg == nil || cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &TitleWriter{
		client: client,
		model:  cfg.Model,
	}, nil
}

// FillTitles drafts one title per suggestion for a video about topic.
// references are stored videos whose titles are shown to the model as examples.
func (w *TitleWriter) FillTitles(ctx context.Context, niche, topic string, suggestions []models.TitleSuggestion, references []*models.VideoRecord) ([]models.TitleDraft, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("topic is required for AI title drafting")
	}

	placeholders := collectPlaceholders(suggestions)
	if len(placeholders) == 0 {
		return nil, ErrNoPlaceholders
	}

	prompt := buildTitlePrompt(niche, topic, suggestions, placeholders, references)
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	result, err := w.client.Models.GenerateContent(ctx, w.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate title values for %s: %w", niche, err)
	}

	responseText := result.Text()
	if responseText == "" {
		return nil, fmt.Errorf("no response received for %s title values", niche)
	}

	values, err := parsePlaceholderValues(responseText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse title values: %w", err)
	}

	log.Printf("Gemini filled %d of %d placeholders for %s", countFilled(values, placeholders), len(placeholders), niche)

	return recommend.DraftTitles(suggestions, values), nil
}

func collectPlaceholders(suggestions []models.TitleSuggestion) []string {
	seen := make(map[string]bool)
	var names []string
	for _, s := range suggestions {
		for _, p := range s.Template.Placeholders() {
			if !seen[p] {
				seen[p] = true
				names = append(names, p)
			}
		}
	}
	return names
}

func buildTitlePrompt(niche, topic string, suggestions []models.TitleSuggestion, placeholders []string, references []*models.VideoRecord) string {
	var patterns strings.Builder
	for _, s := range suggestions {
		fmt.Fprintf(&patterns, "- %s\n", s.Pattern)
	}

	var keys strings.Builder
	for i, p := range placeholders {
		if i > 0 {
			keys.WriteString(",\n")
		}
		fmt.Fprintf(&keys, "  %q: string", p)
	}

	var examples strings.Builder
	for i, r := range references {
		if i == maxReferenceTitles {
			break
		}
		fmt.Fprintf(&examples, "- %s (%d views)\n", r.Title, r.ViewCount)
	}
	if examples.Len() == 0 {
		examples.WriteString("- (none stored yet)\n")
	}

	return fmt.Sprintf(`You write YouTube titles for the %s niche.

The next video is about: %s

TITLE PATTERNS (placeholders are in braces):
%s
SUCCESSFUL TITLES IN THIS NICHE:
%s
INSTRUCTIONS:
1. Choose one value for every placeholder so that each pattern becomes a natural, specific title for this video
2. Keep each value short (1-6 words) and in title case
3. Do not repeat the surrounding pattern text inside a value
4. Do not add placeholders that are not listed below

Respond with a single JSON object in this format:
{
%s
}`,
		niche,
		topic,
		patterns.String(),
		examples.String(),
		keys.String(),
	)
}

// parsePlaceholderValues extracts the JSON object from a model response.
// Non-string values are converted to text.
func parsePlaceholderValues(response string) (map[string]string, error) {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")

	if startIdx == -1 || endIdx == -1 || endIdx < startIdx {
		return nil, fmt.Errorf("no JSON found in response: %s", response)
	}

	jsonStr := response[startIdx : endIdx+1]

	var raw map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		sanitizedJSON := sanitizeJSON(jsonStr)
		if sanitizedErr := json.Unmarshal([]byte(sanitizedJSON), &raw); sanitizedErr != nil {
			return nil, fmt.Errorf("failed to unmarshal JSON '%s': %w (sanitized version also failed: %v)", jsonStr, err, sanitizedErr)
		}
		log.Printf("Warning: Had to sanitize malformed JSON in title values")
	}

	values := make(map[string]string, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case nil:
			continue
		case string:
			values[k] = strings.TrimSpace(val)
		default:
			values[k] = fmt.Sprint(val)
		}
	}

	return values, nil
}

func countFilled(values map[string]string, placeholders []string) int {
	n := 0
	for _, p := range placeholders {
		if strings.TrimSpace(values[p]) != "" {
			n++
		}
	}
	return n
}

// sanitizeJSON escapes stray quotes inside string values, which models
// sometimes emit for titles like "The "Lazy" Way".
func sanitizeJSON(jsonStr string) string {
	lines := strings.Split(jsonStr, "\n")
	for i, line := range lines {
		lines[i] = escapeValueQuotes(strings.TrimSpace(line))
	}
	return strings.Join(lines, "\n")
}

// escapeValueQuotes rewrites a `"key": "value",` line so every quote inside
// value is escaped. Placeholder names never contain `":`.
func escapeValueQuotes(line string) string {
	key, value, ok := strings.Cut(line, `":`)
	if !ok {
		return line
	}
	value = strings.TrimSpace(value)
	end := strings.LastIndex(value, `"`)
	if !strings.HasPrefix(value, `"`) || end <= 0 {
		return line
	}

	inner := strings.ReplaceAll(value[1:end], `\"`, `"`)
	inner = strings.ReplaceAll(inner, `"`, `\"`)
	return key + `": "` + inner + `"` + value[end+1:]
}
