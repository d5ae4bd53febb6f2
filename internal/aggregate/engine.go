// ABOUTME: Orchestrator that fans out fetch, parse, and normalize per source, then merges
// ABOUTME: Applies dedupe and temporal rules, and substitutes a static dataset when nothing survives

package aggregate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/harper/matchday/internal/fetch"
	"github.com/harper/matchday/internal/models"
	"github.com/harper/matchday/internal/normalize"
	"github.com/harper/matchday/internal/parse"
	"github.com/harper/matchday/internal/timeutil"
)

// ErrUnknownPage is returned for a page name that is not configured.
var ErrUnknownPage = errors.New("unknown page")

// ErrWrongContent is returned when a page is requested as the wrong content kind.
var ErrWrongContent = errors.New("page serves a different content kind")

// Fetcher retrieves the payload for one source.
type Fetcher interface {
	Fetch(ctx context.Context, d models.SourceDescriptor) (*fetch.Result, error)
}

// Options configures an Engine.
type Options struct {
	Fetcher Fetcher
	Sources []models.SourceDescriptor
	Pages   []models.Page
	Clock   timeutil.Clock
	Logger  *slog.Logger
}

// Engine aggregates configured sources into page-sized lists. It holds no
// per-call state; the fetcher's cache is the only thing shared between calls.
type Engine struct {
	fetcher Fetcher
	sources []models.SourceDescriptor
	pages   map[string]models.Page
	order   []string
	now     timeutil.Clock
	logger  *slog.Logger
}

// NewEngine validates the page table and builds an Engine.
func NewEngine(opts Options) (*Engine, error) {
	if opts.Fetcher == nil {
		return nil, errors.New("engine requires a fetcher")
	}

	e := &Engine{
		fetcher: opts.Fetcher,
		sources: opts.Sources,
		pages:   make(map[string]models.Page, len(opts.Pages)),
		now:     opts.Clock,
		logger:  opts.Logger,
	}
	if e.now == nil {
		e.now = timeutil.SystemClock
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}

	for _, p := range opts.Pages {
		if p.Name == "" {
			return nil, errors.New("page name is required")
		}
		if !p.Content.Valid() {
			return nil, fmt.Errorf("page %s: unknown content kind %q", p.Name, p.Content)
		}
		if _, dup := e.pages[p.Name]; dup {
			return nil, fmt.Errorf("page %s defined twice", p.Name)
		}
		e.pages[p.Name] = p
		e.order = append(e.order, p.Name)
	}

	return e, nil
}

// Pages returns the configured pages in definition order.
func (e *Engine) Pages() []models.Page {
	out := make([]models.Page, 0, len(e.order))
	for _, name := range e.order {
		out = append(out, e.pages[name])
	}
	return out
}

// Sources returns the active source descriptors.
func (e *Engine) Sources() []models.SourceDescriptor {
	return e.sources
}

// Page looks up a page by name.
func (e *Engine) Page(name string) (models.Page, bool) {
	p, ok := e.pages[name]
	return p, ok
}

// Articles aggregates an article page. Source failures never surface as
// errors; only an unknown page or a page of the wrong kind does.
func (e *Engine) Articles(ctx context.Context, page string) (*Report[models.Article], error) {
	p, err := e.lookup(page, models.ContentArticles)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	report := newReport[models.Article](p)
	now := e.now()

	items := gather(ctx, e, p, report, func(d models.SourceDescriptor, payload []byte) ([]models.Article, error) {
		var (
			raw    []models.Article
			decErr error
		)
		if d.Kind == models.KindStore {
			raw, decErr = parse.DecodeStoreArticles(payload, d.Label)
		} else {
			raw, decErr = parse.DecodeFeed(payload, d.Label)
		}
		items, normErr := normalize.Articles(raw, d.Label, d.IsExternal())
		return items, errors.Join(decErr, normErr)
	})

	report.enter(StateMerging)
	capN := p.Cap
	if capN <= 0 {
		capN = DefaultArticleCap
	}
	report.Items = Cap(NewestArticles(DedupeArticles(items)), capN)

	if len(report.Items) == 0 {
		fallback, _ := normalize.Articles(fallbackArticles(now), FallbackLabel, false)
		report.Items = Cap(NewestArticles(DedupeArticles(fallback)), capN)
		report.Fallback = true
	}

	finish(e, report, now, start)
	return report, nil
}

// Events aggregates an event page, keeping only events that have not started.
func (e *Engine) Events(ctx context.Context, page string) (*Report[models.Event], error) {
	p, err := e.lookup(page, models.ContentEvents)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	report := newReport[models.Event](p)
	now := e.now()

	items := gather(ctx, e, p, report, func(d models.SourceDescriptor, payload []byte) ([]models.Event, error) {
		var (
			raw    []models.Event
			decErr error
		)
		if d.Kind == models.KindStore {
			raw, decErr = parse.DecodeStoreEvents(payload, d.Label)
		} else {
			raw, decErr = parse.DecodeScoreboard(payload, d.Label)
		}
		items, normErr := normalize.Events(raw, d.Label)
		return items, errors.Join(decErr, normErr)
	})

	report.enter(StateMerging)
	report.Items = Cap(UpcomingEvents(DedupeEvents(items), now), p.Cap)

	if len(report.Items) == 0 {
		fallback, _ := normalize.Events(fallbackEvents(now), FallbackLabel)
		report.Items = Cap(UpcomingEvents(DedupeEvents(fallback), now), p.Cap)
		report.Fallback = true
	}

	finish(e, report, now, start)
	return report, nil
}

func (e *Engine) lookup(name string, want models.ContentKind) (models.Page, error) {
	p, ok := e.pages[name]
	if !ok {
		return models.Page{}, fmt.Errorf("%w: %s", ErrUnknownPage, name)
	}
	if p.Content != want {
		return models.Page{}, fmt.Errorf("%w: %s serves %s", ErrWrongContent, name, p.Content)
	}
	return p, nil
}

// sourcesFor returns the page's sources in merge order: store sources first,
// then external sources, each group in descriptor order.
func (e *Engine) sourcesFor(p models.Page) []models.SourceDescriptor {
	var selected []models.SourceDescriptor
	for _, d := range e.sources {
		if p.Uses(d) {
			selected = append(selected, d)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		return !selected[i].IsExternal() && selected[j].IsExternal()
	})
	return selected
}

func newReport[T any](p models.Page) *Report[T] {
	r := &Report[T]{Page: p.Name, Content: p.Content}
	r.enter(StateIdle)
	return r
}

func finish[T any](e *Engine, report *Report[T], now, start time.Time) {
	report.GeneratedAt = now
	report.enter(StateDone)

	failed := 0
	for _, s := range report.Sources {
		if s.ErrorKind == ErrorTransport || s.ErrorKind == ErrorParse {
			failed++
		}
	}
	e.logger.Info("aggregated page",
		"page", report.Page,
		"items", len(report.Items),
		"sources", len(report.Sources),
		"failed", failed,
		"fallback", report.Fallback,
		"duration", time.Since(start),
	)
}

// gather runs fetch, decode, and normalize for every page source concurrently
// and concatenates the results in merge order once all of them have settled.
func gather[T any](
	ctx context.Context,
	e *Engine,
	p models.Page,
	report *Report[T],
	decode func(models.SourceDescriptor, []byte) ([]T, error),
) []T {
	sources := e.sourcesFor(p)
	results := make([][]T, len(sources))
	report.Sources = make([]SourceReport, len(sources))

	report.enter(StateFetchingAll)

	// Goroutines never return errors, so one source cannot cancel another.
	var g errgroup.Group
	for i, d := range sources {
		g.Go(func() error {
			results[i], report.Sources[i] = runSource(ctx, e, d, decode)
			return nil
		})
	}
	_ = g.Wait()

	var merged []T
	for _, items := range results {
		merged = append(merged, items...)
	}
	return merged
}

// runSource is one sub-pipeline: fetch, decode, normalize. Every failure is
// recorded in the returned SourceReport; a stale cached payload is still used.
func runSource[T any](
	ctx context.Context,
	e *Engine,
	d models.SourceDescriptor,
	decode func(models.SourceDescriptor, []byte) ([]T, error),
) ([]T, SourceReport) {
	start := time.Now()
	rep := SourceReport{Label: d.Label, Kind: d.Kind}
	log := e.logger.With("source", d.Label, "kind", d.Kind)

	res, fetchErr := e.fetcher.Fetch(ctx, d)
	if res != nil {
		rep.FromCache = res.FromCache
		rep.Stale = res.Stale
	}
	if fetchErr != nil {
		rep.ErrorKind = ErrorTransport
		rep.Error = fetchErr.Error()
		log.Warn("source fetch failed", "error", fetchErr, "stale", rep.Stale)
	}
	if res == nil {
		rep.Duration = time.Since(start)
		return nil, rep
	}

	items, err := decode(d, res.Payload)
	rep.Items = len(items)

	var verr *normalize.ValidationError
	if errors.As(err, &verr) {
		rep.Dropped = verr.Dropped
	}
	if err != nil && rep.ErrorKind == ErrorNone {
		rep.ErrorKind = Classify(err)
		rep.Error = err.Error()
	}
	if err != nil {
		log.Debug("source decode issues", "error", err, "items", len(items))
	}

	rep.Duration = time.Since(start)
	return items, rep
}
