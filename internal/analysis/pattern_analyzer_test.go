package analysis

import (
	"context"
	"fmt"
	"io"
	"testing"

	"gomood/adapters/stats/detectors"
	"gomood/domain/core"
	"gomood/domain/emotion"
	"gomood/domain/pattern"
	"gomood/internal"
	"gomood/internal/config"
	"gomood/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockIDGenerator struct {
	mock.Mock
}

func (m *mockIDGenerator) NextID() core.PatternID {
	args := m.Called()
	return args.Get(0).(core.PatternID)
}

func quietLogger() *internal.Logger {
	return internal.NewLoggerWithOutput(internal.LogLevelError, io.Discard)
}

func newTestAnalyzer(opts ...Option) *PatternAnalyzer {
	return NewPatternAnalyzer(config.DefaultAnalyzerConfig(), append([]Option{WithLogger(quietLogger())}, opts...)...)
}

func analyze(a *PatternAnalyzer, maps []emotion.DimensionalMap) []pattern.Pattern {
	return a.AnalyzeMultidimensionalPatterns(context.Background(), testkit.ToAnalyses(maps), maps)
}

func valenceRamp(gen *testkit.VADGenerator) []emotion.DimensionalMap {
	return gen.Ramp(10, emotion.Dimensions{Valence: -0.5}, emotion.Dimensions{Valence: 0.5})
}

func TestPatternAnalyzer_TooFewSamples(t *testing.T) {
	gen := testkit.NewVADGenerator(testkit.DefaultVADConfig())
	a := newTestAnalyzer()

	for n := 0; n < MinPatternSamples; n++ {
		got := analyze(a, gen.Constant(n, emotion.Dimensions{Valence: 0.3}))
		assert.NotNil(t, got)
		assert.Empty(t, got, "n=%d", n)
	}
}

func TestPatternAnalyzer_IdenticalSamplesYieldOneStability(t *testing.T) {
	gen := testkit.NewVADGenerator(testkit.DefaultVADConfig())
	maps := gen.Constant(8, emotion.Dimensions{Valence: 0.2, Arousal: 0.3, Dominance: 0.1})

	got := analyze(newTestAnalyzer(), maps)

	require.Len(t, got, 1)
	assert.Equal(t, pattern.TypeStability, got[0].Type)
	assert.Equal(t, "Stable emotional state over 8 data points", got[0].Description)
	assert.InDelta(t, 1.0, got[0].Confidence, 1e-12)
	assert.Equal(t, core.PatternID("pattern-1"), got[0].ID)
	assert.Equal(t, maps[0].Timestamp, got[0].TimeRange.Start)
	assert.Equal(t, maps[7].Timestamp, got[0].TimeRange.End)
}

func TestPatternAnalyzer_LinearRamp(t *testing.T) {
	gen := testkit.NewVADGenerator(testkit.DefaultVADConfig())

	got := analyze(newTestAnalyzer(), valenceRamp(gen))

	counts := pattern.CountByType(got)
	assert.Equal(t, 8, counts[pattern.TypeTrend])
	assert.Equal(t, 1, counts[pattern.TypeStability])
	assert.Zero(t, counts[pattern.TypeCycle])
	assert.Zero(t, counts[pattern.TypeShift])

	require.Len(t, got, 9)
	assert.Equal(t, "Improving emotional valence", got[0].Description)
	assert.Greater(t, got[0].Confidence, 0.9)
	assert.Equal(t, pattern.TypeStability, got[8].Type)
}

func TestPatternAnalyzer_PeriodicSignal(t *testing.T) {
	gen := testkit.NewVADGenerator(testkit.DefaultVADConfig())

	got := analyze(newTestAnalyzer(), gen.Periodic(12, 6, 0.9, 0.2))

	var cycles []pattern.Pattern
	for _, p := range got {
		if p.Type == pattern.TypeCycle {
			cycles = append(cycles, p)
		}
	}
	require.Len(t, cycles, 1)
	assert.Greater(t, cycles[0].Confidence, 0.6)
	assert.Greater(t, cycles[0].Significance, 0.6)
}

func TestPatternAnalyzer_IDsFollowOutputOrder(t *testing.T) {
	gen := testkit.NewVADGenerator(testkit.DefaultVADConfig())

	got := analyze(newTestAnalyzer(WithIDGenerator(core.NewCounterGenerator("p"))), valenceRamp(gen))

	require.Len(t, got, 9)
	for i, p := range got {
		assert.Equal(t, core.PatternID(fmt.Sprintf("p-%d", i+1)), p.ID)
	}
}

func TestPatternAnalyzer_UsesInjectedIDGenerator(t *testing.T) {
	gen := testkit.NewVADGenerator(testkit.DefaultVADConfig())
	ids := &mockIDGenerator{}
	ids.On("NextID").Return(core.PatternID("fixed")).Times(9)

	got := analyze(newTestAnalyzer(WithIDGenerator(ids)), valenceRamp(gen))

	require.Len(t, got, 9)
	for _, p := range got {
		assert.Equal(t, core.PatternID("fixed"), p.ID)
	}
	ids.AssertExpectations(t)
	ids.AssertNumberOfCalls(t, "NextID", 9)
}

func TestPatternAnalyzer_OutputGroupedInRegistrationOrder(t *testing.T) {
	gen := testkit.NewVADGenerator(testkit.DefaultVADConfig())
	low := emotion.Dimensions{}
	high := emotion.Dimensions{Valence: 0.8, Arousal: 0.8, Dominance: 0.8}

	got := analyze(newTestAnalyzer(), gen.Plateau(10, 5, low, high))

	rank := map[pattern.Type]int{
		pattern.TypeTrend:     0,
		pattern.TypeCycle:     1,
		pattern.TypeShift:     2,
		pattern.TypeStability: 3,
	}
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, rank[got[i-1].Type], rank[got[i].Type], "pattern %d out of order", i)
	}
}

func TestPatternAnalyzer_PlateauShift(t *testing.T) {
	gen := testkit.NewVADGenerator(testkit.DefaultVADConfig())
	low := emotion.Dimensions{}
	high := emotion.Dimensions{Valence: 0.8, Arousal: 0.8, Dominance: 0.8}
	maps := gen.Plateau(10, 5, low, high)

	got := analyze(newTestAnalyzer(), maps)

	var shifts []pattern.Pattern
	for _, p := range got {
		if p.Type == pattern.TypeShift {
			shifts = append(shifts, p)
		}
	}
	require.Len(t, shifts, 1)
	assert.Equal(t, maps[4].Timestamp, shifts[0].TimeRange.Start)
	assert.Equal(t, maps[6].Timestamp, shifts[0].TimeRange.End)
	assert.Equal(t, "Shift to more positive emotions, Increased emotional intensity, Shift to more emotional control", shifts[0].Description)
	assert.Equal(t, 2, pattern.CountByType(got)[pattern.TypeStability])
}

func TestPatternAnalyzer_ConfidenceAboveFloor(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		cfg := testkit.DefaultVADConfig()
		cfg.Seed = seed
		gen := testkit.NewVADGenerator(cfg)

		for _, p := range analyze(newTestAnalyzer(), gen.Noisy(60)) {
			assert.Greater(t, p.Confidence, 0.5, "seed %d: %s", seed, p.Description)
			assert.LessOrEqual(t, p.Confidence, 1.0, "seed %d: %s", seed, p.Description)
			assert.NotEmpty(t, p.ID)
			assert.False(t, p.TimeRange.End.Before(p.TimeRange.Start))
		}
	}
}

func TestPatternAnalyzer_CustomFloor(t *testing.T) {
	gen := testkit.NewVADGenerator(testkit.DefaultVADConfig())
	cfg := config.DefaultAnalyzerConfig()
	cfg.ConfidenceFloor = 0.8

	got := analyze(NewPatternAnalyzer(cfg, WithLogger(quietLogger())), valenceRamp(gen))

	// The ramp's stability run scores 1 - 2/9 and drops below the raised floor.
	assert.Len(t, got, 8)
	assert.Zero(t, pattern.CountByType(got)[pattern.TypeStability])
}

func TestPatternAnalyzer_FloorBelowMinimumIsRaised(t *testing.T) {
	cfg := config.DefaultAnalyzerConfig()
	cfg.ConfidenceFloor = 0.1

	for seed := int64(1); seed <= 5; seed++ {
		vad := testkit.DefaultVADConfig()
		vad.Seed = seed
		gen := testkit.NewVADGenerator(vad)

		got := analyze(NewPatternAnalyzer(cfg, WithLogger(quietLogger())), gen.Noisy(60))

		for _, p := range got {
			assert.Greater(t, p.Confidence, pattern.MinConfidenceFloor, "seed %d: %s", seed, p.Description)
		}
	}
}

func TestPatternAnalyzer_InputOrderDoesNotMatter(t *testing.T) {
	gen := testkit.NewVADGenerator(testkit.DefaultVADConfig())
	sorted := valenceRamp(gen)
	shuffled := gen.Shuffled(sorted)
	original := make([]emotion.DimensionalMap, len(shuffled))
	copy(original, shuffled)

	want := analyze(newTestAnalyzer(), sorted)
	got := analyze(newTestAnalyzer(), shuffled)

	assert.Equal(t, want, got)
	assert.Equal(t, original, shuffled, "caller slice must not be reordered")
}

func TestPatternAnalyzer_Deterministic(t *testing.T) {
	gen := testkit.NewVADGenerator(testkit.DefaultVADConfig())
	maps := gen.Noisy(40)

	first := analyze(newTestAnalyzer(), maps)
	second := analyze(newTestAnalyzer(), maps)

	assert.Equal(t, first, second)
}

func TestPatternAnalyzer_SequentialMatchesParallel(t *testing.T) {
	gen := testkit.NewVADGenerator(testkit.DefaultVADConfig())
	maps := gen.Plateau(12, 6, emotion.Dimensions{}, emotion.Dimensions{Valence: 0.9})

	serialCfg := config.DefaultAnalyzerConfig()
	serialCfg.Parallelism = 1

	serial := analyze(NewPatternAnalyzer(serialCfg, WithLogger(quietLogger())), maps)
	parallel := analyze(newTestAnalyzer(), maps)

	assert.Equal(t, serial, parallel)
}

func TestPatternAnalyzer_CancelledContext(t *testing.T) {
	gen := testkit.NewVADGenerator(testkit.DefaultVADConfig())
	maps := valenceRamp(gen)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := newTestAnalyzer().AnalyzeMultidimensionalPatterns(ctx, nil, maps)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPatternAnalyzer_WithDetectors(t *testing.T) {
	gen := testkit.NewVADGenerator(testkit.DefaultVADConfig())
	maps := gen.Constant(8, emotion.Dimensions{Valence: 0.5})

	marker := detectors.NewFunc("marker", "emits one fixed pattern", func(samples []emotion.DimensionalMap) []pattern.Pattern {
		return []pattern.Pattern{{
			Type:        pattern.Type("marker"),
			TimeRange:   core.NewTimeRange(samples[0].Timestamp, samples[len(samples)-1].Timestamp),
			Description: "marker",
			Confidence:  0.9,
		}}
	})
	a := newTestAnalyzer(WithDetectors(marker))

	assert.Equal(t, []string{"trend", "cycle", "shift", "stability", "marker"}, a.Detectors())

	got := analyze(a, maps)
	require.Len(t, got, 2)
	assert.Equal(t, pattern.TypeStability, got[0].Type)
	assert.Equal(t, "marker", got[1].Description)
	assert.Equal(t, core.PatternID("pattern-2"), got[1].ID)
}

func TestPatternAnalyzer_WithRegistry(t *testing.T) {
	gen := testkit.NewVADGenerator(testkit.DefaultVADConfig())
	a := newTestAnalyzer(WithRegistry(detectors.NewRegistry(detectors.NewTrendDetector(detectors.DefaultConfig()))))

	got := analyze(a, valenceRamp(gen))

	assert.Equal(t, []string{"trend"}, a.Detectors())
	assert.Len(t, got, 8)
}

func TestPatternAnalyzer_WithRegistryDoesNotModifyCallerRegistry(t *testing.T) {
	gen := testkit.NewVADGenerator(testkit.DefaultVADConfig())
	shared := detectors.NewRegistry(detectors.NewStabilityDetector(detectors.DefaultConfig()))
	extra := detectors.NewFunc("extra", "emits nothing", func([]emotion.DimensionalMap) []pattern.Pattern { return nil })

	withExtra := newTestAnalyzer(WithRegistry(shared), WithDetectors(extra))
	plain := newTestAnalyzer(WithRegistry(shared))

	assert.Equal(t, []string{"stability", "extra"}, withExtra.Detectors())
	assert.Equal(t, []string{"stability"}, plain.Detectors())
	assert.Equal(t, 1, shared.Len())
	assert.Len(t, analyze(plain, gen.Constant(8, emotion.Dimensions{})), 1)
}

func TestSortByTimestamp_StableForEqualTimestamps(t *testing.T) {
	gen := testkit.NewVADGenerator(testkit.DefaultVADConfig())
	ts := gen.At(0)
	maps := []emotion.DimensionalMap{
		emotion.NewDimensionalMap(gen.At(2), emotion.Dimensions{Valence: 0.3}),
		emotion.NewDimensionalMap(ts, emotion.Dimensions{Valence: 0.1}),
		emotion.NewDimensionalMap(ts, emotion.Dimensions{Valence: 0.2}),
	}

	sorted := SortByTimestamp(maps)

	require.Len(t, sorted, 3)
	first, _ := sorted[0].Dimensions.Get()
	second, _ := sorted[1].Dimensions.Get()
	assert.Equal(t, 0.1, first.Valence)
	assert.Equal(t, 0.2, second.Valence)
	assert.Equal(t, gen.At(2), sorted[2].Timestamp)
	assert.Equal(t, gen.At(2), maps[0].Timestamp, "input untouched")
}
