package models

import "time"

// Draft is an in-progress lost-item report, auto-saved on every change and
// cleared on successful submission.
type Draft struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	Category     string    `json:"category,omitempty"`
	RewardAmount *float64  `json:"rewardAmount,omitempty"`
	SavedAt      time.Time `json:"savedAt"`
}
