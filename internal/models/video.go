package models

import (
	"fmt"
	"time"
)

// VideoRecord is one fetched YouTube video stored under a niche. Records are
// never mutated after they are added to the store.
type VideoRecord struct {
	ID              string    `json:"id"`
	Niche           string    `json:"niche"`
	Title           string    `json:"title"`
	ChannelID       string    `json:"channel_id,omitempty"`
	ChannelTitle    string    `json:"channel_title,omitempty"`
	Description     string    `json:"description,omitempty"`
	Tags            []string  `json:"tags,omitempty"`
	PublishedAt     time.Time `json:"published_at"`
	DurationSeconds int       `json:"duration_seconds"`
	ViewCount       int64     `json:"view_count"`
	LikeCount       int64     `json:"like_count"`
	CommentCount    int64     `json:"comment_count"`
	AddedAt         time.Time `json:"added_at"`
}

func (v *VideoRecord) URL() string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", v.ID)
}

// LikeRatio returns likes per view as a percentage, or 0 when there are no views.
func (v *VideoRecord) LikeRatio() float64 {
	if v.ViewCount <= 0 {
		return 0
	}
	return float64(v.LikeCount) / float64(v.ViewCount) * 100
}

// CommentRatio returns comments per view as a percentage, or 0 when there are no views.
func (v *VideoRecord) CommentRatio() float64 {
	if v.ViewCount <= 0 {
		return 0
	}
	return float64(v.CommentCount) / float64(v.ViewCount) * 100
}
