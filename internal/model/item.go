package model

import "time"

// ItemKind distinguishes polls from surveys at the presentation layer.
// Lifecycle and funding rules are identical for both.
type ItemKind string

const (
	KindPoll   ItemKind = "poll"
	KindSurvey ItemKind = "survey"
)

// ItemStatus is the lifecycle state of an item.
// Active is the initial state; Ended and Cancelled are terminal.
type ItemStatus string

const (
	StatusActive    ItemStatus = "active"
	StatusEnded     ItemStatus = "ended"
	StatusCancelled ItemStatus = "cancelled"
)

// Item is a poll or survey with an attached funding pool.
// ID 0 means "does not exist"; real ids start at 1.
type Item struct {
	ID          uint64     `json:"id"`
	Kind        ItemKind   `json:"kind"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Creator     string     `json:"creator"`
	ProjectID   uint64     `json:"project_id"` // 0 = standalone
	CreatedAt   time.Time  `json:"created_at"`
	EndTime     time.Time  `json:"end_time"`
	Status      ItemStatus `json:"status"`

	// FundingPool is the custodied balance in the smallest currency unit.
	// It only decreases via the cancel refund or per-responder claims.
	FundingPool    int64 `json:"funding_pool"`
	TotalResponses int   `json:"total_responses"`

	// Responders holds unique responder addresses in submission order.
	// hasResponded mirrors it as a set for O(1) membership checks.
	Responders []string `json:"responders"`

	hasResponded map[string]bool
	hasClaimed   map[string]bool
}

// HasResponded reports whether addr has already submitted a response.
func (i *Item) HasResponded(addr string) bool {
	return i.hasResponded[addr]
}

// AddResponder records a response from addr. Returns false if addr
// already responded; the item is unchanged in that case.
func (i *Item) AddResponder(addr string) bool {
	if i.hasResponded == nil {
		i.hasResponded = make(map[string]bool)
	}
	if i.hasResponded[addr] {
		return false
	}
	i.hasResponded[addr] = true
	i.Responders = append(i.Responders, addr)
	i.TotalResponses++
	return true
}

// HasClaimed reports whether addr has already claimed its reward share.
func (i *Item) HasClaimed(addr string) bool {
	return i.hasClaimed[addr]
}

// MarkClaimed records that addr claimed its share.
func (i *Item) MarkClaimed(addr string) {
	if i.hasClaimed == nil {
		i.hasClaimed = make(map[string]bool)
	}
	i.hasClaimed[addr] = true
}

// ClaimedAddresses returns the addresses that have claimed, in responder order.
func (i *Item) ClaimedAddresses() []string {
	var out []string
	for _, addr := range i.Responders {
		if i.hasClaimed[addr] {
			out = append(out, addr)
		}
	}
	return out
}

// RestoreResponder re-adds a persisted responder without ordering checks.
// Intended for repository loads only.
func (i *Item) RestoreResponder(addr string, claimed bool) {
	if i.hasResponded == nil {
		i.hasResponded = make(map[string]bool)
	}
	i.hasResponded[addr] = true
	i.Responders = append(i.Responders, addr)
	if claimed {
		i.MarkClaimed(addr)
	}
}

// PotentialReward is the read-only projection of the claim formula:
// the floored equal share of the current pool. Returns 0 when the pool
// is empty or nobody responded.
func (i *Item) PotentialReward() int64 {
	if i.FundingPool <= 0 || i.TotalResponses == 0 {
		return 0
	}
	return i.FundingPool / int64(i.TotalResponses)
}

// Clone returns a deep copy, used by repositories to keep stored state
// isolated from callers and by services for rollback snapshots.
func (i *Item) Clone() *Item {
	c := *i
	c.Responders = append([]string(nil), i.Responders...)
	c.hasResponded = make(map[string]bool, len(i.hasResponded))
	for k, v := range i.hasResponded {
		c.hasResponded[k] = v
	}
	c.hasClaimed = make(map[string]bool, len(i.hasClaimed))
	for k, v := range i.hasClaimed {
		c.hasClaimed[k] = v
	}
	return &c
}
