// ABOUTME: Maps parsed records onto display-ready Articles and Events
// ABOUTME: Sanitizes text, stamps provenance, derives IDs, and drops records missing mandatory fields

package normalize

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/harper/matchday/internal/content"
	"github.com/harper/matchday/internal/models"
)

// ErrValidation matches every *ValidationError.
var ErrValidation = errors.New("record failed validation")

// Drop reasons.
const (
	ReasonNoTitleOrLink = "missing title and link"
	ReasonNoTitle       = "missing title"
	ReasonNoStart       = "missing start time"
)

// ValidationError counts the records one source lost during normalization.
type ValidationError struct {
	Source  string
	Dropped int
	Reasons map[string]int
}

func (e *ValidationError) Error() string {
	reasons := make([]string, 0, len(e.Reasons))
	for reason, n := range e.Reasons {
		reasons = append(reasons, fmt.Sprintf("%s: %d", reason, n))
	}
	sort.Strings(reasons)
	return fmt.Sprintf("%s: dropped %d invalid records (%s)", e.Source, e.Dropped, strings.Join(reasons, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) drop(reason string) {
	e.Dropped++
	e.Reasons[reason]++
}

// orNil returns nil when nothing was dropped.
func (e *ValidationError) orNil() error {
	if e.Dropped == 0 {
		return nil
	}
	return e
}

// Articles normalizes parsed articles from one source. The returned error, if
// any, is a *ValidationError describing the dropped records; the valid
// articles are returned either way, in input order.
func Articles(in []models.Article, label string, external bool) ([]models.Article, error) {
	verr := &ValidationError{Source: label, Reasons: map[string]int{}}
	out := make([]models.Article, 0, len(in))

	for _, a := range in {
		a.Title = content.SanitizeTitle(a.Title)
		a.Link = strings.TrimSpace(a.Link)
		if a.Title == "" && a.Link == "" {
			verr.drop(ReasonNoTitleOrLink)
			continue
		}
		if a.Title == "" {
			a.Title = a.Link
		}

		a.Snippet = content.SanitizeSnippet(a.Snippet)
		a.Thumbnail = strings.TrimSpace(a.Thumbnail)
		a.SourceLabel = label
		a.IsExternal = external
		if a.PublishedAt != nil {
			t := a.PublishedAt.UTC()
			a.PublishedAt = &t
		}
		a.ID = models.DeriveID(a.Link, a.Title)

		out = append(out, a)
	}

	return out, verr.orNil()
}

// Events normalizes parsed events from one source. Events need a title and a
// start time; everything else is optional.
func Events(in []models.Event, label string) ([]models.Event, error) {
	verr := &ValidationError{Source: label, Reasons: map[string]int{}}
	out := make([]models.Event, 0, len(in))

	for _, e := range in {
		e.Title = content.SanitizeTitle(e.Title)
		if e.Title == "" {
			verr.drop(ReasonNoTitle)
			continue
		}
		if e.StartTime.IsZero() {
			verr.drop(ReasonNoStart)
			continue
		}

		e.Link = strings.TrimSpace(e.Link)
		e.SportType = content.SanitizeTitle(e.SportType)
		e.Thumbnail = strings.TrimSpace(e.Thumbnail)
		e.StartTime = e.StartTime.UTC()
		e.SourceLabel = label
		e.ID = models.DeriveID(e.Link, e.Title)

		out = append(out, e)
	}

	return out, verr.orNil()
}
