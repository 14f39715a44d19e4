package models

// Recommendation is derived from a niche's pattern bundle and its stored
// records. It is never persisted.
type Recommendation struct {
	Niche       string              `json:"niche"`
	RecordCount int                 `json:"record_count"`
	Titles      []TitleSuggestion   `json:"titles"`
	Script      ScriptSuggestion    `json:"script"`
	Thumbnail   ThumbnailSuggestion `json:"thumbnail"`
	Insights    RecordInsights      `json:"insights"`
	Advisories  []string            `json:"advisories,omitempty"`
}

type TitleSuggestion struct {
	Rank           int           `json:"rank"`
	Pattern        string        `json:"pattern"`
	CTRScore       float64       `json:"ctr_score"`
	Placeholders   []string      `json:"placeholders"`
	MatchedRecords int           `json:"matched_records"`
	Template       TitleTemplate `json:"-"`
}

type ScriptSuggestion struct {
	HookTypes        []string          `json:"hook_types"`
	Structure        []string          `json:"structure"`
	RetentionMarkers []RetentionMarker `json:"retention_markers"`
	HookMatches      []HookMatch       `json:"hook_matches,omitempty"`
	Notes            []string          `json:"notes,omitempty"`
}

// HookMatch counts the records whose titles mention one of the hook type's keywords.
type HookMatch struct {
	HookType string   `json:"hook_type"`
	Keywords []string `json:"keywords"`
	Records  int      `json:"records"`
}

type ThumbnailSuggestion struct {
	ColorSchemes []string `json:"color_schemes"`
	Elements     []string `json:"elements"`
	Items        []string `json:"items"`
}

type RecordInsights struct {
	TotalViews      int64          `json:"total_views"`
	AverageViews    int64          `json:"average_views"`
	AvgLikeRatio    float64        `json:"avg_like_ratio"`
	AvgCommentRatio float64        `json:"avg_comment_ratio"`
	TitleSignals    []SignalCount  `json:"title_signals,omitempty"`
	TopRecords      []*VideoRecord `json:"top_records,omitempty"`
}

type SignalCount struct {
	Signal string `json:"signal"`
	Count  int    `json:"count"`
}

// TitleDraft is a title pattern filled with concrete values.
type TitleDraft struct {
	Pattern  string   `json:"pattern"`
	CTRScore float64  `json:"ctr_score"`
	Title    string   `json:"title"`
	Missing  []string `json:"missing,omitempty"`
}
