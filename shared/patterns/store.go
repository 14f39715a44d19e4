// Package patterns holds the read-only table of title, script and thumbnail
// patterns per niche.
package patterns

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"content-dna/internal/models"
)

//go:embed patterns.json
var defaultPatterns []byte

// ErrUnknownNiche matches any *UnknownNicheError through errors.Is.
var ErrUnknownNiche = errors.New("unknown niche")

// UnknownNicheError reports a niche that has no pattern bundle.
type UnknownNicheError struct {
	Niche string
	Known []string
}

func (e *UnknownNicheError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("unknown niche %q", e.Niche)
	}
	return fmt.Sprintf("unknown niche %q (known: %s)", e.Niche, strings.Join(e.Known, ", "))
}

func (e *UnknownNicheError) Is(target error) bool {
	return target == ErrUnknownNiche
}

// Store maps niche names to pattern bundles. It is immutable once loaded.
type Store struct {
	bundles map[string]*models.PatternBundle
	niches  []string
}

// Load reads the pattern document at path, or the built-in document when
// path is empty.
func Load(path string) (*Store, error) {
	if path == "" {
		return Parse(defaultPatterns)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pattern file %s: %w", path, err)
	}

	store, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("pattern file %s: %w", path, err)
	}
	return store, nil
}

// docBundle mirrors models.PatternBundle for decoding so a missing ctr_score
// can be told apart from a zero one.
type docBundle struct {
	TitlePatterns     []docTitlePattern       `json:"title_patterns"`
	ScriptPatterns    models.ScriptPattern    `json:"script_patterns"`
	ThumbnailPatterns models.ThumbnailPattern `json:"thumbnail_patterns"`
}

type docTitlePattern struct {
	Pattern  string   `json:"pattern"`
	CTRScore *float64 `json:"ctr_score"`
}

// Parse decodes and validates a pattern document. Unknown keys are rejected.
func Parse(data []byte) (*Store, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var doc map[string]*docBundle
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode pattern document: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after pattern document")
	}
	if len(doc) == 0 {
		return nil, fmt.Errorf("pattern document defines no niches")
	}

	s := &Store{bundles: make(map[string]*models.PatternBundle, len(doc))}
	for niche, raw := range doc {
		if strings.TrimSpace(niche) == "" {
			return nil, fmt.Errorf("pattern document contains an empty niche name")
		}
		if raw == nil {
			return nil, fmt.Errorf("niche %q has no bundle", niche)
		}
		bundle, err := prepare(raw)
		if err != nil {
			return nil, fmt.Errorf("niche %q: %w", niche, err)
		}
		s.bundles[niche] = bundle
		s.niches = append(s.niches, niche)
	}
	sort.Strings(s.niches)

	return s, nil
}

// prepare parses title templates and checks that every section a
// recommendation draws on is populated.
func prepare(raw *docBundle) (*models.PatternBundle, error) {
	if len(raw.TitlePatterns) == 0 {
		return nil, fmt.Errorf("no title patterns")
	}

	b := &models.PatternBundle{
		TitlePatterns:     make([]models.TitlePattern, 0, len(raw.TitlePatterns)),
		ScriptPatterns:    raw.ScriptPatterns,
		ThumbnailPatterns: raw.ThumbnailPatterns,
	}
	for _, tp := range raw.TitlePatterns {
		if tp.CTRScore == nil {
			return nil, fmt.Errorf("title pattern %q: missing ctr_score", tp.Pattern)
		}
		score := *tp.CTRScore
		if score < 0 || score > 1 {
			return nil, fmt.Errorf("title pattern %q: ctr_score %.2f outside [0,1]", tp.Pattern, score)
		}
		tmpl, err := models.ParseTitleTemplate(tp.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid title pattern: %w", err)
		}
		b.TitlePatterns = append(b.TitlePatterns, models.TitlePattern{
			Pattern:  tp.Pattern,
			CTRScore: score,
			Template: tmpl,
		})
	}

	sp := b.ScriptPatterns
	switch {
	case len(sp.HookTypes) == 0:
		return nil, fmt.Errorf("no hook types")
	case len(sp.OptimalStructure) == 0:
		return nil, fmt.Errorf("no optimal structure")
	case len(sp.RetentionMarkers) == 0:
		return nil, fmt.Errorf("no retention markers")
	}
	for _, m := range sp.RetentionMarkers {
		if !m.Importance.Valid() {
			return nil, fmt.Errorf("retention marker %q at %q: unknown importance %q", m.Element, m.Position, m.Importance)
		}
	}

	if len(b.ThumbnailPatterns.ColorSchemes) == 0 {
		return nil, fmt.Errorf("no thumbnail color schemes")
	}
	if len(b.ThumbnailPatterns.Elements) == 0 {
		return nil, fmt.Errorf("no thumbnail elements")
	}
	return b, nil
}

// GetBundle returns a copy of the niche's bundle.
func (s *Store) GetBundle(niche string) (*models.PatternBundle, error) {
	bundle, ok := s.bundles[niche]
	if !ok {
		return nil, &UnknownNicheError{Niche: niche, Known: s.Niches()}
	}
	return bundle.Clone(), nil
}

func (s *Store) Has(niche string) bool {
	_, ok := s.bundles[niche]
	return ok
}

// Niches returns the niche names in sorted order.
func (s *Store) Niches() []string {
	return append([]string(nil), s.niches...)
}
