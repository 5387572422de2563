package types

import "time"

// LookupEvent records one pipeline invocation for the audit trail.
type LookupEvent struct {
	ID                 string    `json:"id"`
	Query              string    `json:"query"`
	Title              string    `json:"title,omitempty"`
	Outcome            string    `json:"outcome"`
	SummaryDegraded    bool      `json:"summary_degraded"`
	ParagraphsDegraded bool      `json:"paragraphs_degraded"`
	ParagraphCount     int       `json:"paragraph_count"`
	DurationMS         int64     `json:"duration_ms"`
	OccurredAt         time.Time `json:"occurred_at"`
}
