package events

import (
	"encoding/json"
	"time"
)

// Event types published by the engine. The UI refetches on records_changed
// and redraws the dashboard on summary_refreshed.
const (
	TypeRecordsChanged   = "records_changed"
	TypeSummaryRefreshed = "summary_refreshed"
)

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

func Make(reqID, typ string, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:      typ,
		Version:   1,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}
