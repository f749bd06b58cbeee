package domain

// SyncStats summarizes one catalog synchronization pass. Only LastSynced is
// persisted beyond the call; the tallies are informational.
type SyncStats struct {
	Added      int    `json:"added"`
	Updated    int    `json:"updated"`
	Deleted    int    `json:"deleted"`
	LastSynced string `json:"lastSynced"`
}

// SyncHealth reports sync freshness and duration statistics for the status
// endpoint.
type SyncHealth struct {
	LastSynced   string  `json:"lastSynced"`
	AgeSeconds   int64   `json:"ageSeconds"`
	ProductCount int     `json:"productCount"`
	SyncRuns     int     `json:"syncRuns"`
	DurationMean float64 `json:"durationMeanMs"`
	DurationP50  float64 `json:"durationP50Ms"`
	DurationP95  float64 `json:"durationP95Ms"`
}
