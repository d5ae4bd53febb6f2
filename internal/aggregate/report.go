// ABOUTME: Aggregation report describing what each source contributed to a page
// ABOUTME: Records state transitions, cache use, timings, and classified per-source errors

package aggregate

import (
	"errors"
	"time"

	"github.com/harper/matchday/internal/fetch"
	"github.com/harper/matchday/internal/models"
	"github.com/harper/matchday/internal/normalize"
	"github.com/harper/matchday/internal/parse"
)

// State is the orchestrator's progress through one aggregation call.
type State string

const (
	StateIdle        State = "idle"
	StateFetchingAll State = "fetching_all"
	StateMerging     State = "merging"
	StateDone        State = "done"
)

// ErrorKind classifies a source failure.
type ErrorKind string

const (
	ErrorNone       ErrorKind = ""
	ErrorTransport  ErrorKind = "transport"
	ErrorParse      ErrorKind = "parse"
	ErrorValidation ErrorKind = "validation"
)

// SourceReport is one source's contribution to an aggregation call.
type SourceReport struct {
	Label     string            `json:"label"`
	Kind      models.SourceKind `json:"kind"`
	Items     int               `json:"items"`
	Dropped   int               `json:"dropped,omitempty"`
	FromCache bool              `json:"from_cache"`
	Stale     bool              `json:"stale"`
	Duration  time.Duration     `json:"duration_ns"`
	ErrorKind ErrorKind         `json:"error_kind,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// Report is the result of one aggregation call.
type Report[T any] struct {
	Page        string             `json:"page"`
	Content     models.ContentKind `json:"content"`
	Items       []T                `json:"items"`
	Fallback    bool               `json:"fallback"`
	State       State              `json:"state"`
	Transitions []State            `json:"transitions"`
	Sources     []SourceReport     `json:"sources"`
	GeneratedAt time.Time          `json:"generated_at"`
}

func (r *Report[T]) enter(s State) {
	r.State = s
	r.Transitions = append(r.Transitions, s)
}

// Classify maps a pipeline error onto an ErrorKind.
func Classify(err error) ErrorKind {
	var te *fetch.TransportError
	switch {
	case err == nil:
		return ErrorNone
	case errors.As(err, &te):
		return ErrorTransport
	case errors.Is(err, parse.ErrMalformed):
		return ErrorParse
	case errors.Is(err, normalize.ErrValidation):
		return ErrorValidation
	}
	return ErrorTransport
}
