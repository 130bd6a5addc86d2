package model

import "time"

// Event types emitted by state-mutating operations, for external indexing.
const (
	EventProjectCreated     = "project_created"
	EventProjectUpdated     = "project_updated"
	EventProjectDeactivated = "project_deactivated"
	EventPollCreated        = "poll_created"
	EventSurveyCreated      = "survey_created"
	EventItemFunded         = "item_funded"
	EventItemResponded      = "item_responded"
	EventItemEnded          = "item_ended"
	EventItemCancelled      = "item_cancelled"
	EventRewardClaimed      = "reward_claimed"
)

// Event is one structured notification record.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	ProjectID uint64    `json:"project_id,omitempty"`
	ItemID    uint64    `json:"item_id,omitempty"`
	Actor     string    `json:"actor,omitempty"`
	Amount    int64     `json:"amount,omitempty"`
	Name      string    `json:"name,omitempty"` // project name or item title
	CreatedAt time.Time `json:"created_at"`
}
