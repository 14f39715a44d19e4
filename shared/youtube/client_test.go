package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"content-dna/shared/config"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// newTestClient points a Client at a local server speaking the Data API.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	service, err := youtube.NewService(context.Background(),
		option.WithHTTPClient(srv.Client()),
		option.WithEndpoint(srv.URL+"/"),
	)
	if err != nil {
		t.Fatalf("Failed to create YouTube service: %v", err)
	}

	return &Client{
		service: service,
		config:  &config.YouTubeConfig{APIKey: "test-key", MaxResults: 10},
	}
}

const videosResponse = `{
  "items": [
    {
      "id": "bbbbbbbbbbb",
      "snippet": {
        "title": "5 Tools to Focus in 10 Minutes",
        "channelId": "chan-b",
        "channelTitle": "Channel B",
        "publishedAt": "2024-03-01T12:00:00Z",
        "tags": ["focus", "tools"]
      },
      "contentDetails": {"duration": "PT12M30S"},
      "statistics": {"viewCount": "2000", "likeCount": "100", "commentCount": "10"}
    },
    {
      "id": "aaaaaaaaaaa",
      "snippet": {
        "title": "How I Doubled My Output to Save Time",
        "channelId": "chan-a",
        "channelTitle": "Channel A",
        "publishedAt": "2024-02-01T08:30:00Z"
      },
      "contentDetails": {"duration": "PT1H"},
      "statistics": {"viewCount": "50000", "likeCount": "2500", "commentCount": "300"}
    }
  ]
}`

func TestSearchVideos(t *testing.T) {
	var searchQuery, searchOrder, searchType, videoIDs string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/youtube/v3/search":
			searchQuery = r.URL.Query().Get("q")
			searchOrder = r.URL.Query().Get("order")
			searchType = r.URL.Query().Get("type")
			fmt.Fprint(w, `{"items": [
				{"id": {"kind": "youtube#video", "videoId": "aaaaaaaaaaa"}},
				{"id": {"kind": "youtube#video", "videoId": "bbbbbbbbbbb"}},
				{"id": {"kind": "youtube#video", "videoId": "aaaaaaaaaaa"}}
			]}`)
		case "/youtube/v3/videos":
			videoIDs = r.URL.Query().Get("id")
			fmt.Fprint(w, videosResponse)
		default:
			http.NotFound(w, r)
		}
	})

	videos, err := client.SearchVideos(context.Background(), "productivity tips", 5)
	if err != nil {
		t.Fatalf("SearchVideos error: %v", err)
	}

	if searchQuery != "productivity tips" || searchOrder != "viewCount" || searchType != "video" {
		t.Errorf("unexpected search params: q=%q order=%q type=%q", searchQuery, searchOrder, searchType)
	}
	if videoIDs != "aaaaaaaaaaa,bbbbbbbbbbb" {
		t.Errorf("videos.list id = %q, want deduplicated search IDs", videoIDs)
	}

	if len(videos) != 2 {
		t.Fatalf("got %d videos, want 2", len(videos))
	}
	if videos[0].ID != "aaaaaaaaaaa" || videos[1].ID != "bbbbbbbbbbb" {
		t.Errorf("videos not in search order: %s, %s", videos[0].ID, videos[1].ID)
	}

	first := videos[0]
	if first.Title != "How I Doubled My Output to Save Time" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.ChannelTitle != "Channel A" || first.ChannelID != "chan-a" {
		t.Errorf("channel = %q/%q", first.ChannelID, first.ChannelTitle)
	}
	if first.ViewCount != 50000 || first.LikeCount != 2500 || first.CommentCount != 300 {
		t.Errorf("statistics = %d/%d/%d", first.ViewCount, first.LikeCount, first.CommentCount)
	}
	if first.DurationSeconds != 3600 {
		t.Errorf("DurationSeconds = %d, want 3600", first.DurationSeconds)
	}
	if first.PublishedAt.IsZero() {
		t.Error("PublishedAt was not parsed")
	}
	if len(videos[1].Tags) != 2 {
		t.Errorf("Tags = %v", videos[1].Tags)
	}
}

func TestSearchVideosEmptyResult(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/youtube/v3/search" {
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"items": []}`)
	})

	videos, err := client.SearchVideos(context.Background(), "nothing here", 5)
	if err != nil {
		t.Fatalf("SearchVideos error: %v", err)
	}
	if videos == nil || len(videos) != 0 {
		t.Errorf("expected empty non-nil result, got %v", videos)
	}
}

func TestSearchVideosRejectsEmptyQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	})

	if _, err := client.SearchVideos(context.Background(), "  ", 5); err == nil {
		t.Error("expected error for empty query")
	}
}

func TestGetVideosBatches(t *testing.T) {
	var calls int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		ids := strings.Split(r.URL.Query().Get("id"), ",")
		if len(ids) > batchSize {
			t.Errorf("batch of %d IDs exceeds %d", len(ids), batchSize)
		}
		var items []string
		for _, id := range ids {
			items = append(items, fmt.Sprintf(`{"id": %q, "snippet": {"title": "video %s"}}`, id, id))
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"items": [%s]}`, strings.Join(items, ","))
	})

	var ids []string
	for i := 0; i < 120; i++ {
		ids = append(ids, fmt.Sprintf("id%08d", i))
	}

	videos, err := client.GetVideos(context.Background(), ids)
	if err != nil {
		t.Fatalf("GetVideos error: %v", err)
	}
	if calls != 3 {
		t.Errorf("made %d calls, want 3", calls)
	}
	if len(videos) != 120 {
		t.Fatalf("got %d videos, want 120", len(videos))
	}
	if videos[119].ID != ids[119] {
		t.Errorf("last video = %s, want %s", videos[119].ID, ids[119])
	}
}

func TestProviderErrors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		reason    string
		wantQuota bool
	}{
		{"QuotaExceeded", http.StatusForbidden, "quotaExceeded", true},
		{"DailyLimit", http.StatusForbidden, "dailyLimitExceeded", true},
		{"RateLimit", http.StatusForbidden, "rateLimitExceeded", true},
		{"BadRequest", http.StatusBadRequest, "invalidParameter", false},
		{"Forbidden", http.StatusForbidden, "forbidden", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				fmt.Fprintf(w, `{"error": {"code": %d, "message": "request failed", "errors": [{"reason": %q, "message": "request failed"}]}}`, tt.status, tt.reason)
			})

			_, err := client.SearchVideos(context.Background(), "productivity tips", 5)
			if err == nil {
				t.Fatal("expected error")
			}

			var pe *ProviderError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ProviderError, got %T: %v", err, err)
			}
			if pe.Op != "search" {
				t.Errorf("Op = %q, want search", pe.Op)
			}
			if pe.QuotaExceeded != tt.wantQuota {
				t.Errorf("QuotaExceeded = %v, want %v", pe.QuotaExceeded, tt.wantQuota)
			}
			if errors.Is(err, ErrQuotaExceeded) != tt.wantQuota {
				t.Errorf("errors.Is(err, ErrQuotaExceeded) = %v, want %v", !tt.wantQuota, tt.wantQuota)
			}
			if calls != 1 {
				t.Errorf("made %d calls, want exactly 1 (no retries)", calls)
			}
		})
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(context.Background(), &config.YouTubeConfig{}); err == nil {
		t.Error("expected error without API key")
	}
	if _, err := NewClient(context.Background(), nil); err == nil {
		t.Error("expected error for nil config")
	}
}

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"BareID", "dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"Watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"WatchExtraParams", "https://youtube.com/watch?feature=share&v=dQw4w9WgXcQ&t=42", "dQw4w9WgXcQ", false},
		{"Mobile", "https://m.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"Short", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"ShortNoScheme", "youtu.be/dQw4w9WgXcQ?t=10", "dQw4w9WgXcQ", false},
		{"Embed", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"V", "https://www.youtube.com/v/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"Shorts", "https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"Whitespace", "  dQw4w9WgXcQ \n", "dQw4w9WgXcQ", false},
		{"Empty", "", "", true},
		{"OtherHost", "https://vimeo.com/123456789", "", true},
		{"Playlist", "https://www.youtube.com/playlist?list=PL123", "", true},
		{"BadID", "https://www.youtube.com/watch?v=short", "", true},
		{"Channel", "https://www.youtube.com/@somechannel", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractVideoID(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ExtractVideoID(%q) = %q, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractVideoID(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ExtractVideoID(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDurationSeconds(t *testing.T) {
	tests := []struct {
		name     string
		duration string
		expected int
	}{
		{"Empty", "", 0},
		{"Seconds only", "PT45S", 45},
		{"Minutes only", "PT2M", 120},
		{"Hours only", "PT1H", 3600},
		{"Minutes and seconds", "PT1M30S", 90},
		{"Hours and minutes", "PT2H15M", 8100},
		{"Full format", "PT2H15M30S", 8130},
		{"Invalid format", "invalid", 0},
		{"No time components", "PT", 0},
		{"Days and hours", "P1DT2H", 93600},
		{"Trailing garbage", "PT5Mx", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseDurationSeconds(tt.duration)
			if result != tt.expected {
				t.Errorf("parseDurationSeconds(%s) = %d, want %d", tt.duration, result, tt.expected)
			}
		})
	}
}
