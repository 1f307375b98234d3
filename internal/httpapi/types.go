package httpapi

import "time"

// recordPayload is the JSON shape for creating a record and for list
// responses. Optional timestamps are pointers so "absent" round-trips.
type recordPayload struct {
	ID                  int64      `json:"id,omitempty"`
	Company             string     `json:"company"`
	Industry            string     `json:"industry,omitempty"`
	JobType             string     `json:"jobType,omitempty"`
	Status              string     `json:"status"`
	CreatedAt           time.Time  `json:"createdAt"`
	StatusChangedAt     *time.Time `json:"statusChangedAt,omitempty"`
	ApplicationDeadline *time.Time `json:"applicationDeadline,omitempty"`
	SourceID            string     `json:"sourceId,omitempty"`
}

type statusPayload struct {
	Status    string     `json:"status"`
	ChangedAt *time.Time `json:"changedAt,omitempty"`
}

type importResult struct {
	Parsed  int `json:"parsed"`
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

type insightsResponse struct {
	Insights []string `json:"insights"`
}
