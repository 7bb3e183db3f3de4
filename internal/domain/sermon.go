package domain

import "time"

// Sermon is a published sermon recording listed on the member portal.
type Sermon struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Speaker     string    `json:"speaker"`
	Category    string    `json:"category,omitempty"`
	CategoryID  string    `json:"category_id,omitempty"`
	Description string    `json:"description,omitempty"`
	VideoURL    string    `json:"video_url,omitempty"`
	PreachedAt  time.Time `json:"preached_at,omitempty"`
}

// SermonCategory groups sermons for browsing.
type SermonCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
