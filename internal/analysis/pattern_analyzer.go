package analysis

import (
	"context"
	"sort"

	"gomood/adapters/stats/detectors"
	"gomood/domain/core"
	"gomood/domain/emotion"
	"gomood/domain/pattern"
	"gomood/internal"
	"gomood/internal/config"
	"gomood/ports"

	"golang.org/x/sync/errgroup"
)

// MinPatternSamples is the smallest sequence pattern detection will look at.
const MinPatternSamples = 3

// PatternAnalyzer sorts a sample sequence, runs every registered detector over
// it and keeps the candidates above the confidence floor.
//
// A PatternAnalyzer holds no per-call state and may be shared between goroutines.
type PatternAnalyzer struct {
	registry    *detectors.Registry
	ids         ports.PatternIDGenerator
	floor       float64
	parallelism int
	logger      *internal.Logger
}

// Option configures a PatternAnalyzer
type Option func(*PatternAnalyzer)

// WithIDGenerator sets the pattern id source. The default is a counter owned by the analyzer.
func WithIDGenerator(ids ports.PatternIDGenerator) Option {
	return func(a *PatternAnalyzer) { a.ids = ids }
}

// WithLogger replaces the default logger
func WithLogger(logger *internal.Logger) Option {
	return func(a *PatternAnalyzer) { a.logger = logger }
}

// WithRegistry replaces the default detector set. The analyzer keeps its own
// copy, so r is never modified.
func WithRegistry(r *detectors.Registry) Option {
	return func(a *PatternAnalyzer) { a.registry = detectors.NewRegistry(r.Detectors()...) }
}

// WithDetectors registers additional detectors after the configured ones
func WithDetectors(ds ...detectors.Detector) Option {
	return func(a *PatternAnalyzer) {
		for _, d := range ds {
			a.registry.Register(d)
		}
	}
}

// NewPatternAnalyzer builds an analyzer from configuration
func NewPatternAnalyzer(cfg config.AnalyzerConfig, opts ...Option) *PatternAnalyzer {
	parallelism := cfg.Parallelism
	if parallelism < 1 {
		parallelism = 1
	}
	floor := cfg.ConfidenceFloor
	if floor < pattern.MinConfidenceFloor {
		floor = pattern.MinConfidenceFloor
	}
	a := &PatternAnalyzer{
		registry:    detectors.DefaultRegistry(cfg.Detectors()),
		ids:         core.NewCounterGenerator("pattern"),
		floor:       floor,
		parallelism: parallelism,
		logger:      internal.DefaultLogger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Detectors lists the registered detector names in execution order
func (a *PatternAnalyzer) Detectors() []string {
	return a.registry.Names()
}

// AnalyzeMultidimensionalPatterns detects trends, cycles, shifts and stability
// runs in maps. history is the matching emotion-analysis record set; it is only
// used for logging context.
//
// Fewer than MinPatternSamples maps yields an empty, non-nil slice. A cancelled
// ctx stops detectors that have not started; whatever finished is still returned.
// The caller's slice is never reordered.
func (a *PatternAnalyzer) AnalyzeMultidimensionalPatterns(ctx context.Context, history []emotion.Analysis, maps []emotion.DimensionalMap) []pattern.Pattern {
	if len(maps) < MinPatternSamples {
		a.logger.Warn("insufficient samples for pattern detection: have %d, need %d", len(maps), MinPatternSamples)
		return []pattern.Pattern{}
	}

	sorted := SortByTimestamp(maps)
	candidates := a.runDetectors(ctx, sorted)
	kept := pattern.FilterByConfidence(candidates, a.floor)
	for i := range kept {
		kept[i].ID = a.ids.NextID()
	}

	a.logger.WithFields(map[string]interface{}{
		"samples":  len(sorted),
		"analyses": len(history),
	}).Info("pattern detection found %d candidates, kept %d above confidence %.2f", len(candidates), len(kept), a.floor)

	return kept
}

func (a *PatternAnalyzer) runDetectors(ctx context.Context, samples []emotion.DimensionalMap) []pattern.Pattern {
	ds := a.registry.Detectors()
	results := make([][]pattern.Pattern, len(ds))

	var g errgroup.Group
	g.SetLimit(a.parallelism)
	for i, d := range ds {
		if err := ctx.Err(); err != nil {
			a.logger.Warn("pattern detection interrupted before %s: %v", d.Name(), err)
			break
		}
		g.Go(func() error {
			results[i] = d.Detect(samples)
			a.logger.Debug("detector %s produced %d candidates", d.Name(), len(results[i]))
			return nil
		})
	}
	_ = g.Wait()

	total := 0
	for _, r := range results {
		total += len(r)
	}
	out := make([]pattern.Pattern, 0, total)
	for _, r := range results {
		out = append(out, r...)
	}
	return out
}

// SortByTimestamp returns a copy of maps in ascending timestamp order.
// Samples with equal timestamps keep their relative order.
func SortByTimestamp(maps []emotion.DimensionalMap) []emotion.DimensionalMap {
	sorted := make([]emotion.DimensionalMap, len(maps))
	copy(sorted, maps)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	return sorted
}
