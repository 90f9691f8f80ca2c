package domain

import "time"

// Link is the persisted mapping from a short code to its target URL.
// The JSON field names are the wire and storage contract.
type Link struct {
	Code        string     `json:"code"`
	TargetURL   string     `json:"targetUrl"`
	Clicks      int64      `json:"clicks"`
	LastClicked *time.Time `json:"lastClicked"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type CreateLinkRequest struct {
	TargetURL  string `json:"targetUrl"`
	CustomCode string `json:"customCode,omitempty"`
}

type CreateLinkResponse struct {
	Code      string `json:"code"`
	TargetURL string `json:"targetUrl"`
	ShortURL  string `json:"shortUrl"`
}
