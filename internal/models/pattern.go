package models

// Importance grades a retention marker.
type Importance string

const (
	ImportanceCritical Importance = "critical"
	ImportanceHigh     Importance = "high"
	ImportanceMedium   Importance = "medium"
	ImportanceLow      Importance = "low"
)

func (i Importance) Valid() bool {
	switch i {
	case ImportanceCritical, ImportanceHigh, ImportanceMedium, ImportanceLow:
		return true
	}
	return false
}

// PatternBundle is the static set of title, script and thumbnail patterns for
// one niche. The JSON layout is the pattern document schema and must not change.
type PatternBundle struct {
	TitlePatterns     []TitlePattern   `json:"title_patterns"`
	ScriptPatterns    ScriptPattern    `json:"script_patterns"`
	ThumbnailPatterns ThumbnailPattern `json:"thumbnail_patterns"`
}

type TitlePattern struct {
	Pattern  string  `json:"pattern"`
	CTRScore float64 `json:"ctr_score"`

	// Template is parsed from Pattern when the bundle is loaded.
	Template TitleTemplate `json:"-"`
}

type ScriptPattern struct {
	HookTypes        []string          `json:"hook_types"`
	OptimalStructure []string          `json:"optimal_structure"`
	RetentionMarkers []RetentionMarker `json:"retention_markers"`
}

// RetentionMarker is a structural cue at a point in the video, e.g.
// "75%: unexpected_insight (medium)".
type RetentionMarker struct {
	Position   string     `json:"position"`
	Element    string     `json:"element"`
	Importance Importance `json:"importance"`
}

type ThumbnailPattern struct {
	ColorSchemes []string `json:"color_schemes"`
	Elements     []string `json:"elements"`
}

// Clone returns a deep copy so callers cannot reach the store's slices.
func (b *PatternBundle) Clone() *PatternBundle {
	out := &PatternBundle{
		TitlePatterns: make([]TitlePattern, len(b.TitlePatterns)),
		ScriptPatterns: ScriptPattern{
			HookTypes:        append([]string(nil), b.ScriptPatterns.HookTypes...),
			OptimalStructure: append([]string(nil), b.ScriptPatterns.OptimalStructure...),
			RetentionMarkers: append([]RetentionMarker(nil), b.ScriptPatterns.RetentionMarkers...),
		},
		ThumbnailPatterns: ThumbnailPattern{
			ColorSchemes: append([]string(nil), b.ThumbnailPatterns.ColorSchemes...),
			Elements:     append([]string(nil), b.ThumbnailPatterns.Elements...),
		},
	}
	for i, tp := range b.TitlePatterns {
		out.TitlePatterns[i] = TitlePattern{
			Pattern:  tp.Pattern,
			CTRScore: tp.CTRScore,
			Template: tp.Template.Clone(),
		}
	}
	return out
}
