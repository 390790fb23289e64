package models

import "time"

type UploadResponse struct {
	ID       string          `json:"id"`
	Analysis *AnalysisResult `json:"analysis"`
}

// ResumeSummary is one row of the history listing.
type ResumeSummary struct {
	ID        string       `json:"id"`
	Filename  string       `json:"filename"`
	CreatedAt time.Time    `json:"createdAt"`
	Analysis  AnalysisJSON `json:"analysis"`
}

// SearchHit is one row of a semantic search response.
type SearchHit struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"createdAt"`
	Score     float32   `json:"score"`
	Snippet   string    `json:"snippet"`
}
