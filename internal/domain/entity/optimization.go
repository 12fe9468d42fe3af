package entity

import "time"

// Optimization is a team note describing a change made to a campaign.
type Optimization struct {
	ID                int64     `json:"id"`
	Brand             string    `json:"brand"`
	Platform          string    `json:"platform"`
	Date              string    `json:"date"`
	Campaign          string    `json:"campaign"`
	Optimization      string    `json:"optimization"`
	Changes           string    `json:"changes"`
	OptimizationScore string    `json:"optimization_score"`
	ResultsNextStep   string    `json:"results_next_step"`
	DateChanges       string    `json:"date_changes"`
	OptimizationBy    string    `json:"optimization_by"`
	CreatedAt         time.Time `json:"created_at"`
}

// OptimizationQuery selects notes for a brand. StartDate and EndDate are
// ISO dates and only apply when both are set.
type OptimizationQuery struct {
	Brand     string
	StartDate string
	EndDate   string
	Platform  string
}
