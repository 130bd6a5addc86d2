package model

import "time"

// Project groups polls and surveys under a single creator-owned umbrella.
// ID 0 means "does not exist"; real ids start at 1.
type Project struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Creator     string    `json:"creator"`
	CreatedAt   time.Time `json:"created_at"`
	Active      bool      `json:"active"`

	// Append-only references to child items, in creation order.
	PollIDs   []uint64 `json:"poll_ids"`
	SurveyIDs []uint64 `json:"survey_ids"`
}
