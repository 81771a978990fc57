package journal

import "time"

// #region snapshot

// Snapshot is a persisted state snapshot row.
type Snapshot struct {
	ID        string
	ParentID  string
	State     map[string]any
	CreatedAt time.Time
}

// #endregion snapshot

// #region outcome

// Outcome is a persisted record of one planning call.
type Outcome struct {
	RequestHash   string
	Algorithm     string
	Success       bool
	Cost          float64
	Length        int
	NodesExpanded int
	PlanningMs    float64
	Reason        string
	CreatedAt     time.Time
}

// #endregion outcome
