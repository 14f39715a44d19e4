// Package contentdna wires the pattern store, the record store, the YouTube
// provider and the recommendation engine into the Content DNA workflows.
package contentdna

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"content-dna/internal/models"
	"content-dna/shared/ai"
	"content-dna/shared/config"
	"content-dna/shared/monitoring"
	"content-dna/shared/patterns"
	"content-dna/shared/recommend"
	"content-dna/shared/storage"
	"content-dna/shared/youtube"
)

var ErrNotInitialized = errors.New("agent not initialized")

// VideoProvider fetches video metadata. *youtube.Client implements it.
type VideoProvider interface {
	SearchVideos(ctx context.Context, query string, maxResults int64) ([]*models.VideoRecord, error)
	GetVideos(ctx context.Context, ids []string) ([]*models.VideoRecord, error)
}

// TitleFiller drafts titles with model-chosen placeholder values. *ai.TitleWriter implements it.
type TitleFiller interface {
	FillTitles(ctx context.Context, niche, topic string, suggestions []models.TitleSuggestion, references []*models.VideoRecord) ([]models.TitleDraft, error)
}

type Agent struct {
	config      *config.Config
	patterns    *patterns.Store
	records     *storage.RecordStore
	engine      *recommend.Engine
	provider    VideoProvider
	titleWriter TitleFiller
	monitor     *monitoring.Monitor
}

func NewAgent(cfg *config.Config) *Agent {
	return &Agent{
		config:  cfg,
		monitor: monitoring.NewMonitor(),
	}
}

func (a *Agent) Name() string {
	return "Content DNA"
}

func (a *Agent) Monitor() *monitoring.Monitor {
	return a.monitor
}

// Initialize loads the pattern store and opens the record store. The YouTube
// and Gemini clients are created on first use since they need API keys.
func (a *Agent) Initialize() error {
	if a.patterns == nil {
		store, err := patterns.Load(a.config.Patterns.File)
		if err != nil {
			return fmt.Errorf("failed to load patterns: %w", err)
		}
		a.patterns = store
		a.engine = recommend.New(store)
		log.Printf("Pattern store loaded (%d niches)", len(store.Niches()))
	}

	if a.records == nil {
		records, err := storage.NewRecordStore(a.config.Storage.DataDir)
		if err != nil {
			return fmt.Errorf("failed to open record store: %w", err)
		}
		a.records = records
		log.Printf("Record store opened at %s (%d videos stored)", records.Path(), records.Count())
	}

	return nil
}

func (a *Agent) ready() error {
	if a.patterns == nil || a.records == nil || a.engine == nil {
		return ErrNotInitialized
	}
	return nil
}

func (a *Agent) videoProvider(ctx context.Context) (VideoProvider, error) {
	if a.provider != nil {
		return a.provider, nil
	}

	if err := a.config.ValidateYouTube(); err != nil {
		return nil, err
	}

	client, err := youtube.NewClient(ctx, &a.config.YouTube)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube client: %w", err)
	}
	a.provider = client
	log.Println("YouTube client initialized")

	return a.provider, nil
}

func (a *Agent) titleFiller(ctx context.Context) (TitleFiller, error) {
	if a.titleWriter != nil {
		return a.titleWriter, nil
	}

	if err := a.config.ValidateAI(); err != nil {
		return nil, err
	}

	writer, err := ai.NewTitleWriter(ctx, &a.config.AI)
	if err != nil {
		return nil, fmt.Errorf("failed to create title writer: %w", err)
	}
	a.titleWriter = writer
	log.Println("Gemini title writer initialized")

	return a.titleWriter, nil
}

// checkNiche fails with *patterns.UnknownNicheError for niches without a bundle.
func (a *Agent) checkNiche(niche string) error {
	if _, err := a.patterns.GetBundle(niche); err != nil {
		return err
	}
	return nil
}

// FindCandidates searches YouTube for niche videos that are not stored yet.
// An empty query uses the niche's configured search term.
func (a *Agent) FindCandidates(ctx context.Context, niche, query string, maxResults int64) ([]*models.VideoRecord, CollectMetrics, error) {
	var metrics CollectMetrics

	if err := a.ready(); err != nil {
		return nil, metrics, err
	}
	if err := a.checkNiche(niche); err != nil {
		return nil, metrics, err
	}

	provider, err := a.videoProvider(ctx)
	if err != nil {
		return nil, metrics, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		query = a.config.SearchTerm(niche)
	}
	if maxResults <= 0 {
		maxResults = a.config.YouTube.MaxResults
	}

	log.Printf("Searching YouTube for %q (%s, max %d)...", query, niche, maxResults)
	videos, err := provider.SearchVideos(ctx, query, maxResults)
	if err != nil {
		return nil, metrics, fmt.Errorf("failed to search videos: %w", err)
	}

	metrics.Query = query
	metrics.Found = len(videos)

	candidates := make([]*models.VideoRecord, 0, len(videos))
	for _, video := range videos {
		if a.records.Contains(video.ID) {
			metrics.AlreadyStored++
			continue
		}
		video.Niche = niche
		candidates = append(candidates, video)
	}
	metrics.New = len(candidates)

	log.Printf("Found %d videos (%d new, %d already stored)", metrics.Found, metrics.New, metrics.AlreadyStored)

	return candidates, metrics, nil
}

// StoreSelected adds the candidates at the given 0-based indexes under niche.
// Duplicates are counted and skipped; any other failure stops the run.
func (a *Agent) StoreSelected(niche string, candidates []*models.VideoRecord, indexes []int) (StoreMetrics, error) {
	metrics := StoreMetrics{Selected: len(indexes)}

	if err := a.ready(); err != nil {
		return metrics, err
	}
	if err := a.checkNiche(niche); err != nil {
		return metrics, err
	}

	for _, i := range indexes {
		if i < 0 || i >= len(candidates) {
			return metrics, fmt.Errorf("selection %d is out of range (1-%d)", i+1, len(candidates))
		}

		record := *candidates[i]
		record.Niche = niche

		if err := a.records.Add(&record); err != nil {
			if errors.Is(err, storage.ErrDuplicateRecord) {
				log.Printf("Skipping %s: %v", record.ID, err)
				metrics.Skipped++
				continue
			}
			return metrics, fmt.Errorf("failed to store video %s: %w", record.ID, err)
		}

		log.Printf("Stored %s: %s", record.ID, record.Title)
		metrics.Stored++
	}

	return metrics, nil
}

// AddByURL fetches one video by URL or ID and stores it under niche.
func (a *Agent) AddByURL(ctx context.Context, niche, input string) (*models.VideoRecord, error) {
	if err := a.ready(); err != nil {
		return nil, err
	}
	if err := a.checkNiche(niche); err != nil {
		return nil, err
	}

	id, err := youtube.ExtractVideoID(input)
	if err != nil {
		return nil, err
	}

	// Fail before spending quota on a video that is already stored.
	if existing, err := a.records.Get(id); err == nil {
		return nil, &storage.DuplicateRecordError{ID: id, Niche: existing.Niche}
	}

	provider, err := a.videoProvider(ctx)
	if err != nil {
		return nil, err
	}

	videos, err := provider.GetVideos(ctx, []string{id})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video %s: %w", id, err)
	}
	if len(videos) == 0 {
		return nil, fmt.Errorf("%w: %s", youtube.ErrVideoNotFound, id)
	}

	record := videos[0]
	record.Niche = niche
	if err := a.records.Add(record); err != nil {
		return nil, err
	}

	stored, err := a.records.Get(id)
	if err != nil {
		return nil, err
	}
	log.Printf("Stored %s: %s", stored.ID, stored.Title)

	return stored, nil
}

// Analyze runs the recommendation engine over the niche's stored videos.
func (a *Agent) Analyze(niche string) (*models.Recommendation, error) {
	if err := a.ready(); err != nil {
		return nil, err
	}
	return a.engine.Recommend(niche, a.records.ListByNiche(niche))
}

// Titles drafts one title per pattern, best score first, filled with values
// and the built-in examples.
func (a *Agent) Titles(niche string, values map[string]string) ([]models.TitleDraft, error) {
	rec, err := a.Analyze(niche)
	if err != nil {
		return nil, err
	}
	return recommend.DraftTitles(rec.Titles, values), nil
}

// AITitles lets Gemini choose placeholder values for a video about topic.
func (a *Agent) AITitles(ctx context.Context, niche, topic string) ([]models.TitleDraft, error) {
	rec, err := a.Analyze(niche)
	if err != nil {
		return nil, err
	}

	writer, err := a.titleFiller(ctx)
	if err != nil {
		return nil, err
	}

	return writer.FillTitles(ctx, niche, topic, rec.Titles, rec.Insights.TopRecords)
}

func (a *Agent) Thumbnails(niche string) (models.ThumbnailSuggestion, error) {
	rec, err := a.Analyze(niche)
	if err != nil {
		return models.ThumbnailSuggestion{}, err
	}
	return rec.Thumbnail, nil
}

// Optimize analyzes a script against the niche's script patterns and drafts
// its description and upload settings. An empty title uses the best title draft.
func (a *Agent) Optimize(niche, title, script string) (*models.ScriptReport, error) {
	if err := a.ready(); err != nil {
		return nil, err
	}

	report, err := a.engine.Optimize(niche, title, script)
	if err != nil {
		return nil, fmt.Errorf("failed to optimize script for %s: %w", niche, err)
	}
	log.Printf("Optimized %d-word script for %s", report.Analysis.WordCount, niche)
	return report, nil
}

// Records lists stored videos for niche, or every stored video when niche is empty.
func (a *Agent) Records(niche string) ([]*models.VideoRecord, error) {
	if err := a.ready(); err != nil {
		return nil, err
	}
	if niche == "" {
		return a.records.List(), nil
	}
	return a.records.ListByNiche(niche), nil
}

func (a *Agent) Remove(id string) error {
	if err := a.ready(); err != nil {
		return err
	}

	id = strings.TrimSpace(id)
	if parsed, err := youtube.ExtractVideoID(id); err == nil {
		id = parsed
	}

	if err := a.records.Remove(id); err != nil {
		return err
	}
	log.Printf("Removed %s", id)
	return nil
}

func (a *Agent) Niches() []string {
	if a.patterns == nil {
		return nil
	}
	return a.patterns.Niches()
}
