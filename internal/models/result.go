package models

// TryMatchRequest is the body of POST /trymatch.
type TryMatchRequest struct {
	EmployerID  int    `json:"employerId" validate:"required,gt=0"`
	Requirement string `json:"requirement" validate:"required"`
}

// TryMatchResponse is returned on a completed run. Partial per-candidate
// failures are not surfaced here; callers can compare TotalProcessed
// against the candidate pool size out-of-band.
type TryMatchResponse struct {
	Msg            string  `json:"msg"`
	TotalProcessed int     `json:"totalProcessed"`
	Matches        []Match `json:"matches"`
}

// MatchSummary is the orchestrator's aggregate result for one run.
type MatchSummary struct {
	RunID          string
	TotalProcessed int
	Matches        []Match
}

// MatchNotification is the denormalized copy of one evaluation published
// to the notification queue.
type MatchNotification struct {
	UserID      int    `json:"userId"`
	EmployerID  int    `json:"employerId"`
	Requirement string `json:"requirement"`
	Score       int    `json:"score"`
	Match       bool   `json:"match"`
}

// MatchListResponse is the body of GET /matches/:employerId.
type MatchListResponse struct {
	Matches []Match `json:"matches"`
}
