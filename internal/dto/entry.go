package dto

// CreateEntryRequest is the JSON body for POST /entry.
type CreateEntryRequest struct {
	Content string `json:"content" binding:"required,max=100"`
}

// UpdateEntryRequest is the JSON body for PUT /entry. Both fields are
// required: the update is a full replace, not a partial merge.
type UpdateEntryRequest struct {
	Content   string `json:"content" binding:"required,max=100"`
	Completed *bool  `json:"completed" binding:"required"`
}

// DelegateEntryRequest is the JSON body for POST /entry/delegate.
type DelegateEntryRequest struct {
	TargetIdentity string `json:"target_identity" binding:"required"`
	Content        string `json:"content" binding:"required,max=100"`
}

// AssignPriorityRequest is the JSON body for PUT /entry/priority.
type AssignPriorityRequest struct {
	Tier int `json:"tier" binding:"required"`
}

// ConfigureDeadlineRequest is the JSON body for PUT /entry/deadline.
type ConfigureDeadlineRequest struct {
	DurationBlocks int64 `json:"duration_blocks" binding:"required"`
}

// EntryResponse is the canonical view of an entry.
type EntryResponse struct {
	Identity  string `json:"identity"`
	Content   string `json:"content"`
	Completed bool   `json:"completed"`
}

// PriorityResponse is returned after a priority assignment.
type PriorityResponse struct {
	Identity string `json:"identity"`
	Tier     int    `json:"tier"`
}

// DeadlineResponse is returned after a deadline configuration.
type DeadlineResponse struct {
	Identity string `json:"identity"`
	Deadline uint64 `json:"deadline"`
	Notified bool   `json:"notified"`
}

// CompletionResponse is the result of GET /entry/completed.
type CompletionResponse struct {
	Completed bool `json:"completed"`
}

// DiagnosticsResponse is the result of GET /entry/diagnostics. It is
// returned with 200 whether or not the entry exists.
type DiagnosticsResponse struct {
	Exists        bool `json:"exists"`
	ContentLength uint `json:"content_length"`
	Completed     bool `json:"completed"`
}

// HeightResponse reports the current block counter.
type HeightResponse struct {
	Height uint64 `json:"height"`
}
