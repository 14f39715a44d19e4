// Package recommend turns a niche's pattern bundle and its stored videos into
// title, script and thumbnail recommendations.
package recommend

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"content-dna/internal/models"
)

const maxTopRecords = 5

// BundleSource resolves a niche to its pattern bundle.
type BundleSource interface {
	GetBundle(niche string) (*models.PatternBundle, error)
}

// Engine holds no mutable state; Recommend is a pure function of its inputs.
type Engine struct {
	patterns BundleSource
	settings SettingsTable
}

func New(patterns BundleSource) *Engine {
	return &Engine{patterns: patterns, settings: defaultSettings}
}

// Recommend builds the recommendation for niche. Records are used for
// advisory insights only and never change pattern order or scores.
func (e *Engine) Recommend(niche string, records []*models.VideoRecord) (*models.Recommendation, error) {
	bundle, err := e.patterns.GetBundle(niche)
	if err != nil {
		return nil, err
	}

	rec := &models.Recommendation{
		Niche:       niche,
		RecordCount: len(records),
		Titles:      rankTitles(bundle.TitlePatterns, records),
		Script:      scriptSuggestion(bundle.ScriptPatterns, records),
		Thumbnail:   thumbnailSuggestion(bundle.ThumbnailPatterns),
		Insights:    insights(records),
	}

	if len(records) == 0 {
		rec.Advisories = append(rec.Advisories,
			fmt.Sprintf("No stored videos for %s yet; recommendations use pattern data only.", niche))
	} else {
		matched := 0
		for _, hm := range rec.Script.HookMatches {
			matched += hm.Records
		}
		if matched == 0 {
			rec.Advisories = append(rec.Advisories,
				fmt.Sprintf("None of the %d stored titles mention a hook keyword; consider opening with one of: %s.",
					len(records), strings.Join(bundle.ScriptPatterns.HookTypes, ", ")))
		}

		patternMatches := 0
		for _, ts := range rec.Titles {
			patternMatches += ts.MatchedRecords
		}
		if patternMatches == 0 {
			rec.Advisories = append(rec.Advisories,
				"No stored title follows a known title pattern.")
		}
	}

	return rec, nil
}

// rankTitles orders patterns by descending ctr_score; declaration order breaks ties.
func rankTitles(patterns []models.TitlePattern, records []*models.VideoRecord) []models.TitleSuggestion {
	ranked := make([]models.TitlePattern, len(patterns))
	copy(ranked, patterns)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CTRScore > ranked[j].CTRScore
	})

	suggestions := make([]models.TitleSuggestion, 0, len(ranked))
	for i, tp := range ranked {
		matched := 0
		for _, r := range records {
			if tp.Template.Matches(r.Title) {
				matched++
			}
		}

		placeholders := tp.Template.Placeholders()
		if placeholders == nil {
			placeholders = []string{}
		}

		suggestions = append(suggestions, models.TitleSuggestion{
			Rank:           i + 1,
			Pattern:        tp.Pattern,
			CTRScore:       tp.CTRScore,
			Placeholders:   placeholders,
			MatchedRecords: matched,
			Template:       tp.Template.Clone(),
		})
	}
	return suggestions
}

func scriptSuggestion(sp models.ScriptPattern, records []*models.VideoRecord) models.ScriptSuggestion {
	out := models.ScriptSuggestion{
		HookTypes:        append([]string{}, sp.HookTypes...),
		Structure:        append([]string{}, sp.OptimalStructure...),
		RetentionMarkers: append([]models.RetentionMarker{}, sp.RetentionMarkers...),
	}

	for _, m := range sp.RetentionMarkers {
		if m.Importance == models.ImportanceCritical {
			out.Notes = append(out.Notes,
				fmt.Sprintf("%s at %s is critical for retention.", humanize(m.Element), m.Position))
		}
	}

	titleWords := make([][]string, len(records))
	for i, r := range records {
		titleWords[i] = words(r.Title)
	}

	for _, hook := range sp.HookTypes {
		keywords := hookKeywords(hook)
		count := 0
		for _, tw := range titleWords {
			if containsKeyword(tw, keywords) {
				count++
			}
		}
		out.HookMatches = append(out.HookMatches, models.HookMatch{
			HookType: hook,
			Keywords: keywords,
			Records:  count,
		})
	}

	return out
}

func thumbnailSuggestion(tp models.ThumbnailPattern) models.ThumbnailSuggestion {
	out := models.ThumbnailSuggestion{
		ColorSchemes: append([]string{}, tp.ColorSchemes...),
		Elements:     append([]string{}, tp.Elements...),
		Items:        make([]string, 0, len(tp.ColorSchemes)+len(tp.Elements)),
	}
	for _, c := range tp.ColorSchemes {
		out.Items = append(out.Items, "color scheme: "+c)
	}
	for _, el := range tp.Elements {
		out.Items = append(out.Items, "element: "+el)
	}
	return out
}

var emotionalWords = []string{"amazing", "shocking", "surprising", "incredible", "best", "worst"}

// Title signals, in report order.
const (
	SignalNumber    = "number_in_title"
	SignalQuestion  = "question_title"
	SignalHowTo     = "how_to_title"
	SignalEmotional = "emotional_title"
)

func insights(records []*models.VideoRecord) models.RecordInsights {
	var out models.RecordInsights
	if len(records) == 0 {
		return out
	}

	var likeSum, commentSum float64
	var withViews int
	counts := map[string]int{}

	for _, r := range records {
		out.TotalViews += r.ViewCount
		if r.ViewCount > 0 {
			likeSum += r.LikeRatio()
			commentSum += r.CommentRatio()
			withViews++
		}
		for _, signal := range titleSignals(r.Title) {
			counts[signal]++
		}
	}

	out.AverageViews = out.TotalViews / int64(len(records))
	if withViews > 0 {
		out.AvgLikeRatio = likeSum / float64(withViews)
		out.AvgCommentRatio = commentSum / float64(withViews)
	}

	for _, signal := range []string{SignalNumber, SignalQuestion, SignalHowTo, SignalEmotional} {
		out.TitleSignals = append(out.TitleSignals, models.SignalCount{Signal: signal, Count: counts[signal]})
	}

	top := make([]*models.VideoRecord, len(records))
	copy(top, records)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].ViewCount > top[j].ViewCount
	})
	if len(top) > maxTopRecords {
		top = top[:maxTopRecords]
	}
	for _, r := range top {
		c := *r
		out.TopRecords = append(out.TopRecords, &c)
	}

	return out
}

// titleSignals reports which structural traits a title has.
func titleSignals(title string) []string {
	lower := strings.ToLower(strings.TrimSpace(title))
	var signals []string

	if strings.IndexFunc(lower, unicode.IsDigit) >= 0 {
		signals = append(signals, SignalNumber)
	}
	if strings.Contains(lower, "?") {
		signals = append(signals, SignalQuestion)
	}
	if strings.HasPrefix(lower, "how to") || strings.HasPrefix(lower, "how i") {
		signals = append(signals, SignalHowTo)
	}
	for _, w := range emotionalWords {
		if strings.Contains(lower, w) {
			signals = append(signals, SignalEmotional)
			break
		}
	}

	return signals
}

// hookKeywords splits a hook tag like "health_myth_debunk" into its words of
// four or more letters.
func hookKeywords(hook string) []string {
	keywords := []string{}
	for _, w := range strings.FieldsFunc(strings.ToLower(hook), func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	}) {
		if len([]rune(w)) >= 4 {
			keywords = append(keywords, w)
		}
	}
	return keywords
}

func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// containsKeyword matches a keyword against the start of any title word, so
// "result" also matches "results".
func containsKeyword(titleWords, keywords []string) bool {
	for _, kw := range keywords {
		for _, w := range titleWords {
			if strings.HasPrefix(w, kw) {
				return true
			}
		}
	}
	return false
}

func humanize(tag string) string {
	s := strings.ReplaceAll(tag, "_", " ")
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
