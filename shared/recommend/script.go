package recommend

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"content-dna/internal/models"
)

const (
	wordsPerMinute      = 150
	hookLength          = 100
	markerContextWords  = 25
	summaryLength       = 200
	scriptKeywords      = 5
	descriptionKeywords = 15
	keywordHashtags     = 5
	maxHashtags         = 10
)

var ErrEmptyScript = errors.New("script is empty")

var (
	keywordPattern  = regexp.MustCompile(`\b[a-z]{3,15}\b`)
	sentencePattern = regexp.MustCompile(`[.!?]+`)
)

var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "you": true, "your": true, "that": true,
	"this": true, "with": true, "are": true, "was": true, "but": true, "not": true,
	"have": true, "has": true, "can": true, "will": true, "from": true, "they": true,
	"them": true, "our": true, "all": true, "just": true, "what": true, "how": true,
	"who": true, "why": true, "when": true, "then": true, "than": true, "into": true,
	"about": true, "out": true, "one": true, "get": true, "like": true, "also": true,
	"more": true, "very": true, "there": true, "their": true, "here": true, "some": true,
	"any": true, "been": true, "were": true, "which": true, "would": true, "could": true,
	"should": true, "these": true, "those": true, "don": true, "let": true, "going": true,
}

// Optimize analyzes a script for niche and drafts its description and upload
// settings. An empty title is replaced by the best-ranked title draft.
func (e *Engine) Optimize(niche, title, script string) (*models.ScriptReport, error) {
	bundle, err := e.patterns.GetBundle(niche)
	if err != nil {
		return nil, err
	}

	tokens := strings.Fields(script)
	if len(tokens) == 0 {
		return nil, ErrEmptyScript
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = defaultTitle(bundle.TitlePatterns)
	}

	settings := e.settings.For(niche)
	analysis := analyzeScript(bundle.ScriptPatterns, script, tokens)

	return &models.ScriptReport{
		Niche:       niche,
		Title:       title,
		Analysis:    analysis,
		Description: describe(title, script, tokens, analysis.Sections, settings),
		Settings:    videoSettings(niche, len(tokens), settings),
	}, nil
}

// defaultTitle is the first fully filled draft, best score first.
func defaultTitle(patterns []models.TitlePattern) string {
	drafts := DraftTitles(rankTitles(patterns, nil), nil)
	if len(drafts) == 0 {
		return ""
	}
	for _, d := range drafts {
		if len(d.Missing) == 0 {
			return d.Title
		}
	}
	return drafts[0].Title
}

func analyzeScript(sp models.ScriptPattern, script string, tokens []string) models.ScriptAnalysis {
	wc := len(tokens)

	sentences := 0
	for _, s := range sentencePattern.Split(script, -1) {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}
	sentences = max(sentences, 1)

	hook := tokens[:min(hookLength, wc)]
	out := models.ScriptAnalysis{
		WordCount:         wc,
		SentenceCount:     sentences,
		AvgSentenceLength: round2(float64(wc) / float64(sentences)),
		EstimatedMinutes:  round2(float64(wc) / wordsPerMinute),
		Hook:              strings.Join(hook, " "),
		HookWordCount:     len(hook),
		Markers:           []models.MarkerPlacement{},
		Keywords:          topKeywords(script, scriptKeywords, 1),
	}

	hookWords := words(out.Hook)
	for _, ht := range sp.HookTypes {
		if containsKeyword(hookWords, hookKeywords(ht)) {
			out.HookTypes = append(out.HookTypes, ht)
		}
	}
	if len(out.HookTypes) == 0 && len(sp.HookTypes) > 0 {
		out.Advice = append(out.Advice, fmt.Sprintf(
			"The first %d words do not match any proven hook type; consider opening with one of: %s.",
			out.HookWordCount, strings.Join(sp.HookTypes, ", ")))
	}

	for _, m := range sp.RetentionMarkers {
		placement := models.MarkerPlacement{Marker: m, WordPosition: -1}
		pos, known := markerWord(m.Position, wc)
		switch {
		case !known:
			out.Advice = append(out.Advice, fmt.Sprintf("Could not place the %q marker in the script.", m.Position))
		case pos >= wc:
			out.Advice = append(out.Advice, fmt.Sprintf(
				"The script ends before %s, where %s belongs.", m.Position, humanize(m.Element)))
		default:
			placement.WordPosition = pos
			placement.Timestamp = timestamp(pos)
			placement.Context = strings.Join(tokens[max(0, pos-markerContextWords):min(wc, pos+markerContextWords)], " ")
			if m.Importance == models.ImportanceCritical {
				out.Advice = append(out.Advice, fmt.Sprintf(
					"%s (around %s) is critical: make sure %s lands there, with a visual change or pattern interrupt.",
					m.Position, placement.Timestamp, humanize(m.Element)))
			}
		}
		out.Markers = append(out.Markers, placement)
	}

	out.Sections = approximateSections(sp.OptimalStructure, tokens)
	if len(out.Sections) < len(sp.OptimalStructure) {
		out.MissingSections = append([]string{}, sp.OptimalStructure[len(out.Sections):]...)
		out.Advice = append(out.Advice, fmt.Sprintf(
			"The script is too short for the full structure; add: %s.", strings.Join(out.MissingSections, ", ")))
	}

	if len(out.Keywords) > 0 {
		kw := make([]string, len(out.Keywords))
		for i, k := range out.Keywords {
			kw[i] = k.Word
		}
		out.Advice = append(out.Advice, fmt.Sprintf(
			"Most frequent words: %s. Use them in the title and description.", strings.Join(kw, ", ")))
	}

	return out
}

// markerWord converts a position tag ("0-15s", "1min", "midpoint", "75%") to a
// word offset. known is false for tags it cannot read.
func markerWord(position string, wordCount int) (int, bool) {
	p := strings.ToLower(strings.TrimSpace(position))
	number := func(s string) (float64, bool) {
		// "0-15s" starts at 0
		s, _, _ = strings.Cut(s, "-")
		n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return n, err == nil && n >= 0
	}

	switch {
	case p == "start" || p == "beginning":
		return 0, true
	case p == "midpoint" || p == "middle":
		return wordCount / 2, true
	case p == "end":
		return wordCount - 1, true
	case strings.HasSuffix(p, "%"):
		n, ok := number(strings.TrimSuffix(p, "%"))
		return int(float64(wordCount) * n / 100), ok && n <= 100
	case strings.HasSuffix(p, "min"):
		n, ok := number(strings.TrimSuffix(p, "min"))
		return int(n * wordsPerMinute), ok
	case strings.HasSuffix(p, "s"):
		n, ok := number(strings.TrimSuffix(p, "s"))
		return int(n * wordsPerMinute / 60), ok
	}
	return 0, false
}

// approximateSections splits the script into equal runs of words, one per
// stage. The last section takes the remainder.
func approximateSections(stages []string, tokens []string) []models.ScriptSection {
	sections := []models.ScriptSection{}
	if len(stages) == 0 {
		return sections
	}

	size := max(1, len(tokens)/len(stages))
	for i, stage := range stages {
		start := i * size
		if start >= len(tokens) {
			break
		}
		end := min(len(tokens), start+size)
		if i == len(stages)-1 {
			end = len(tokens)
		}
		sections = append(sections, models.ScriptSection{
			Stage:     stage,
			StartWord: start,
			Timestamp: timestamp(start),
			Text:      strings.Join(tokens[start:end], " "),
		})
	}
	return sections
}

// topKeywords counts lowercase words of 3-15 letters, skipping stop words.
// Ties keep first-appearance order.
func topKeywords(text string, limit, minCount int) []models.KeywordCount {
	counts := map[string]int{}
	var order []string
	for _, w := range keywordPattern.FindAllString(strings.ToLower(text), -1) {
		if stopWords[w] {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	out := []models.KeywordCount{}
	for _, w := range order {
		if len(out) == limit || counts[w] < minCount {
			break
		}
		out = append(out, models.KeywordCount{Word: w, Count: counts[w]})
	}
	return out
}

func describe(title, script string, tokens []string, sections []models.ScriptSection, s NicheSettings) models.VideoDescription {
	intro := title
	if !strings.HasPrefix(title, "How") {
		intro = strings.ToLower(title)
	}

	summary := strings.Join(tokens[:min(summaryLength, len(tokens))], " ")
	if cut := strings.LastIndexAny(summary, ".!?"); cut != -1 {
		summary = summary[:cut+1]
	}

	out := models.VideoDescription{
		Keywords:   []string{},
		Hashtags:   []string{},
		Timestamps: make([]string, 0, len(sections)),
	}
	for _, sec := range sections {
		out.Timestamps = append(out.Timestamps, sec.Timestamp+" "+humanize(sec.Stage))
	}
	for _, k := range topKeywords(script, descriptionKeywords, 2) {
		out.Keywords = append(out.Keywords, k.Word)
	}

	seen := map[string]bool{}
	addTag := func(tag string) {
		if len(out.Hashtags) < maxHashtags && !seen[tag] {
			seen[tag] = true
			out.Hashtags = append(out.Hashtags, tag)
		}
	}
	for _, kw := range out.Keywords[:min(keywordHashtags, len(out.Keywords))] {
		addTag("#" + kw)
	}
	for _, tag := range s.Hashtags {
		addTag(tag)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "In this video, I share %s.\n\n", intro)
	fmt.Fprintf(&b, "%s\n\n", summary)
	b.WriteString("TIMESTAMPS:\n")
	for _, ts := range out.Timestamps {
		b.WriteString(ts + "\n")
	}
	if len(s.CallsToAction) > 0 {
		b.WriteString("\n" + strings.Join(s.CallsToAction, "\n") + "\n")
	}
	if len(out.Hashtags) > 0 {
		b.WriteString("\n" + strings.Join(out.Hashtags, " ") + "\n")
	}
	out.Text = b.String()

	return out
}

func videoSettings(niche string, wordCount int, s NicheSettings) models.VideoSettings {
	minutes := float64(wordCount) / wordsPerMinute
	lo, hi := s.OptimalMinutes[0], s.OptimalMinutes[1]

	var advice string
	switch {
	case minutes < float64(lo):
		advice = fmt.Sprintf("Shorter than the %d-%d minute range for %s; expand on the key points.", lo, hi, niche)
	case minutes > float64(hi):
		advice = fmt.Sprintf("Longer than the %d-%d minute range for %s; tighten the script.", lo, hi, niche)
	default:
		advice = fmt.Sprintf("Within the %d-%d minute range for %s.", lo, hi, niche)
	}

	return models.VideoSettings{
		EstimatedMinutes: round2(minutes),
		OptimalMinutes:   [2]int{lo, hi},
		LengthAdvice:     advice,
		UploadTimes:      append([]string{}, s.UploadTimes...),
		Category:         s.Category,
		Tags:             s.Tags,
		CardPlacement:    s.CardPlacement,
		Tips: []string{
			"Include your main keyword in the first 25 words of the description.",
			"Add 2-3 hashtags directly relevant to the video.",
			"Use a custom thumbnail whose text reinforces the title.",
			fmt.Sprintf("Add end screen elements at %s of the video to increase session time.", s.CardPlacement),
		},
	}
}

// timestamp converts a word offset to mm:ss at the assumed speaking rate.
func timestamp(word int) string {
	secs := word * 60 / wordsPerMinute
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
