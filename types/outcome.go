package types

import "fmt"

// Reason classifies why a lookup did not produce a Result.
type Reason string

const (
	ReasonMissingQuery    Reason = "missing_query"
	ReasonNoMatch         Reason = "no_match"
	ReasonInternalFailure Reason = "internal_failure"
)

// OutcomeError is the failure side of a lookup.
type OutcomeError struct {
	Reason Reason
	Query  string
	Detail string
}

func (e *OutcomeError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (query=%q): %s", e.Reason, e.Query, e.Detail)
	}
	return fmt.Sprintf("%s (query=%q)", e.Reason, e.Query)
}

// Outcome is the result of one lookup: exactly one of Result and Err is set.
type Outcome struct {
	Result *Result
	Err    *OutcomeError
}

// Succeeded builds a successful Outcome.
func Succeeded(r *Result) Outcome {
	return Outcome{Result: r}
}

// Failed builds a failed Outcome.
func Failed(reason Reason, query, detail string) Outcome {
	return Outcome{Err: &OutcomeError{Reason: reason, Query: query, Detail: detail}}
}

// Label returns "ok" for a successful outcome, otherwise the failure reason.
func (o Outcome) Label() string {
	if o.Err != nil {
		return string(o.Err.Reason)
	}
	return "ok"
}
