package analyzer

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/pemistahl/lingua-go"
)

// chartLabels name the categories in ChartData, in score order.
var chartLabels = []string{"Technical", "SEO", "UX", "Conversion"}

// MarkupFetcher retrieves the markup of a page. Any error means the content
// is unavailable; it never aborts an analysis on its own.
type MarkupFetcher interface {
	FetchMarkup(ctx context.Context, url string) (string, error)
}

// errNoFetcher is the fallback reason when no fetcher is configured.
var errNoFetcher = errors.New("no markup fetcher configured")

// Analyzer scores landing pages. It holds configuration only, so a single
// instance can serve concurrent analyses.
type Analyzer struct {
	fetcher     MarkupFetcher
	sources     SourceFactory
	rubric      Rubric
	logger      *slog.Logger
	pageInfo    bool
	detector    lingua.LanguageDetector
	detectorSet bool
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithSources sets the random source factory used for simulated profiles.
func WithSources(f SourceFactory) Option {
	return func(a *Analyzer) { a.sources = f }
}

// WithRubric replaces the default weights and grade bands.
func WithRubric(r Rubric) Option {
	return func(a *Analyzer) { a.rubric = r }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// WithPageInfo toggles readability metadata on live results.
func WithPageInfo(enabled bool) Option {
	return func(a *Analyzer) { a.pageInfo = enabled }
}

// WithLanguageDetector sets the detector used when a page does not declare
// its language. A nil detector disables detection.
func WithLanguageDetector(d lingua.LanguageDetector) Option {
	return func(a *Analyzer) {
		a.detector = d
		a.detectorSet = true
	}
}

// New creates a new Analyzer that retrieves content through fetcher.
func New(fetcher MarkupFetcher, opts ...Option) *Analyzer {
	a := &Analyzer{
		fetcher:  fetcher,
		sources:  RandomSources(),
		rubric:   DefaultRubric,
		logger:   slog.Default(),
		pageInfo: true,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.pageInfo && !a.detectorSet {
		a.detector = NewLanguageDetector()
	}
	return a
}

// Analyze fetches rawURL and scores it. When the content cannot be retrieved
// the result is built from a simulated profile instead. The only error is the
// context's, returned when ctx ends before the fetch resolves; no partial
// result is produced in that case.
func (a *Analyzer) Analyze(ctx context.Context, rawURL string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	markup, err := a.fetch(ctx, rawURL)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		a.logger.Warn("content unavailable, simulating profile",
			"url", rawURL,
			"error", err,
		)
		result := a.Simulate(rawURL, err.Error())
		a.logResult(result, start)
		return result, nil
	}

	result := a.AnalyzeMarkup(rawURL, markup)
	a.logResult(result, start)
	return result, nil
}

func (a *Analyzer) fetch(ctx context.Context, rawURL string) (string, error) {
	if a.fetcher == nil {
		return "", errNoFetcher
	}
	return a.fetcher.FetchMarkup(ctx, rawURL)
}

// AnalyzeMarkup scores markup that was already retrieved for rawURL. The
// result depends only on its arguments.
func (a *Analyzer) AnalyzeMarkup(rawURL, markup string) *Result {
	doc, err := ParseDocument(markup)
	if err != nil {
		return a.Simulate(rawURL, err.Error())
	}

	var page *PageInfo
	if a.pageInfo {
		page = describePage(a.logger, a.detector, rawURL, markup)
	}
	return a.assemble(rawURL, SourceLive, "", Extract(doc, rawURL, markup), page)
}

// Simulate scores a generated profile for rawURL. reason is recorded as the
// result's fallback reason.
func (a *Analyzer) Simulate(rawURL, reason string) *Result {
	r := rand.New(a.sources())
	return a.assemble(rawURL, SourceSimulated, reason, SimulateProfile(rawURL, r), nil)
}

func (a *Analyzer) assemble(rawURL string, source Source, reason string, profile FeatureProfile, page *PageInfo) *Result {
	scored := Score(profile)
	final := a.rubric.FinalScore(scored)

	return &Result{
		URL:            rawURL,
		Source:         source,
		FallbackReason: reason,
		Metrics:        scored,
		FinalScore:     final,
		Grade:          a.rubric.Grade(final),
		Feedback:       GenerateFeedback(scored),
		ChartData: ChartData{
			Labels: append([]string(nil), chartLabels...),
			Values: []float64{
				scored.Technical.Score,
				scored.SEO.Score,
				scored.UX.Score,
				scored.Conversion.Score,
			},
		},
		Page: page,
	}
}

func (a *Analyzer) logResult(r *Result, start time.Time) {
	a.logger.Info("analysis complete",
		"url", r.URL,
		"source", r.Source,
		"score", r.FinalScore,
		"grade", r.Grade,
		"duration", time.Since(start),
	)
}
