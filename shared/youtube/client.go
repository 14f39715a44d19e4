package youtube

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"content-dna/internal/models"
	"content-dna/shared/config"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// videos.list accepts at most 50 IDs per call.
const batchSize = 50

type Client struct {
	service *youtube.Service
	config  *config.YouTubeConfig
}

// NewClient creates an API-key authenticated YouTube Data API client. Extra
// options are passed to the underlying service.
func NewClient(ctx context.Context, cfg *config.YouTubeConfig, opts ...option.ClientOption) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, fmt.Errorf("YouTube API key is required")
	}

	opts = append([]option.ClientOption{option.WithAPIKey(cfg.APIKey)}, opts...)
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &Client{
		service: service,
		config:  cfg,
	}, nil
}

// SearchVideos finds videos for query ordered by view count and returns
// their full details in search order.
func (c *Client) SearchVideos(ctx context.Context, query string, maxResults int64) ([]*models.VideoRecord, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}
	if maxResults <= 0 {
		maxResults = c.config.MaxResults
	}
	if maxResults > batchSize {
		maxResults = batchSize
	}

	call := c.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		Order("viewCount").
		MaxResults(maxResults).
		Context(ctx)
	if c.config.RegionCode != "" {
		call = call.RegionCode(c.config.RegionCode)
	}

	response, err := call.Do()
	if err != nil {
		return nil, newProviderError("search", err)
	}

	var ids []string
	seen := make(map[string]bool)
	for _, item := range response.Items {
		if item.Id == nil || item.Id.VideoId == "" || seen[item.Id.VideoId] {
			continue
		}
		seen[item.Id.VideoId] = true
		ids = append(ids, item.Id.VideoId)
	}

	log.Printf("Search %q returned %d videos", query, len(ids))

	if len(ids) == 0 {
		return []*models.VideoRecord{}, nil
	}

	return c.GetVideos(ctx, ids)
}

// GetVideos fetches snippet, content details and statistics for ids. The
// result follows the order of ids; IDs YouTube does not return are skipped.
func (c *Client) GetVideos(ctx context.Context, ids []string) ([]*models.VideoRecord, error) {
	byID := make(map[string]*models.VideoRecord, len(ids))

	for i := 0; i < len(ids); i += batchSize {
		end := i + batchSize
		if end > len(ids) {
			end = len(ids)
		}

		response, err := c.service.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
			Id(strings.Join(ids[i:end], ",")).
			Context(ctx).
			Do()
		if err != nil {
			return nil, newProviderError("videos.list", err)
		}

		for _, item := range response.Items {
			byID[item.Id] = toRecord(item)
		}
	}

	videos := make([]*models.VideoRecord, 0, len(byID))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			videos = append(videos, v)
			delete(byID, id)
		}
	}

	return videos, nil
}

func toRecord(item *youtube.Video) *models.VideoRecord {
	video := &models.VideoRecord{ID: item.Id}

	if item.Snippet != nil {
		video.Title = item.Snippet.Title
		video.Description = item.Snippet.Description
		video.ChannelID = item.Snippet.ChannelId
		video.ChannelTitle = item.Snippet.ChannelTitle
		video.Tags = item.Snippet.Tags
		if publishedAt, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
			video.PublishedAt = publishedAt
		}
	}

	if item.ContentDetails != nil {
		video.DurationSeconds = parseDurationSeconds(item.ContentDetails.Duration)
	}

	if item.Statistics != nil {
		video.ViewCount = int64(item.Statistics.ViewCount)
		video.LikeCount = int64(item.Statistics.LikeCount)
		video.CommentCount = int64(item.Statistics.CommentCount)
	}

	return video
}

var durationPattern = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// parseDurationSeconds converts an ISO 8601 duration such as "PT1M30S" or
// "P1DT2H" to seconds. Anything else is 0.
func parseDurationSeconds(duration string) int {
	m := durationPattern.FindStringSubmatch(duration)
	if m == nil {
		return 0
	}

	total := 0
	for i, unit := range []int{86400, 3600, 60, 1} {
		if n, err := strconv.Atoi(m[i+1]); err == nil {
			total += n * unit
		}
	}
	return total
}
