package models

// ScriptReport bundles everything the optimizer derives from one script.
type ScriptReport struct {
	Niche       string           `json:"niche"`
	Title       string           `json:"title"`
	Analysis    ScriptAnalysis   `json:"analysis"`
	Description VideoDescription `json:"description"`
	Settings    VideoSettings    `json:"settings"`
}

// ScriptAnalysis measures a script against a niche's script patterns.
// Positions are word offsets at an assumed speaking rate.
type ScriptAnalysis struct {
	WordCount         int               `json:"word_count"`
	SentenceCount     int               `json:"sentence_count"`
	AvgSentenceLength float64           `json:"avg_sentence_length"`
	EstimatedMinutes  float64           `json:"estimated_minutes"`
	Hook              string            `json:"hook"`
	HookWordCount     int               `json:"hook_word_count"`
	HookTypes         []string          `json:"hook_types,omitempty"`
	Markers           []MarkerPlacement `json:"markers"`
	Sections          []ScriptSection   `json:"sections"`
	MissingSections   []string          `json:"missing_sections,omitempty"`
	Keywords          []KeywordCount    `json:"keywords"`
	Advice            []string          `json:"advice"`
}

// MarkerPlacement locates a retention marker in the script. WordPosition is
// -1 when the marker's position tag is not understood or falls past the end.
type MarkerPlacement struct {
	Marker       RetentionMarker `json:"marker"`
	WordPosition int             `json:"word_position"`
	Timestamp    string          `json:"timestamp,omitempty"`
	Context      string          `json:"context,omitempty"`
}

// ScriptSection is an equal-length slice of the script assigned to one stage
// of the optimal structure.
type ScriptSection struct {
	Stage     string `json:"stage"`
	StartWord int    `json:"start_word"`
	Timestamp string `json:"timestamp"`
	Text      string `json:"text"`
}

type KeywordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

type VideoDescription struct {
	Text       string   `json:"text"`
	Keywords   []string `json:"keywords"`
	Hashtags   []string `json:"hashtags"`
	Timestamps []string `json:"timestamps"`
}

// VideoSettings are upload recommendations for a niche.
type VideoSettings struct {
	EstimatedMinutes float64  `json:"estimated_minutes"`
	OptimalMinutes   [2]int   `json:"optimal_minutes"`
	LengthAdvice     string   `json:"length_advice"`
	UploadTimes      []string `json:"upload_times"`
	Category         string   `json:"category"`
	Tags             string   `json:"tags"`
	CardPlacement    string   `json:"card_placement"`
	Tips             []string `json:"tips"`
}
