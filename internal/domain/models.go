package domain

import "time"

// Sample is the JSON view of one probe. Only the most recent one is ever
// kept around.
type Sample struct {
	Target    string    `json:"target"`
	Address   string    `json:"address"`
	Endpoint  string    `json:"endpoint,omitempty"`
	Fallback  bool      `json:"fallback,omitempty"`
	OK        bool      `json:"ok"`
	RTTMS     float64   `json:"rtt_ms"`
	Error     string    `json:"error,omitempty"`
	Kind      string    `json:"kind,omitempty"` // "resolution" | "timeout" | "refused" | "io"
	CheckedAt time.Time `json:"checked_at"`
}
