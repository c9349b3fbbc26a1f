package testkit

import (
	"math"
	"math/rand"
	"time"

	"gomood/domain/emotion"
)

// VADGeneratorConfig configures the synthetic VAD sequence generator
type VADGeneratorConfig struct {
	StartDate time.Time     `json:"start_date"`
	Interval  time.Duration `json:"interval"`
	Seed      int64         `json:"seed"`
}

// DefaultVADConfig returns sensible defaults for fixture generation
func DefaultVADConfig() VADGeneratorConfig {
	return VADGeneratorConfig{
		StartDate: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		Interval:  time.Minute,
		Seed:      42,
	}
}

// VADGenerator builds dimensional-map sequences with known shapes.
type VADGenerator struct {
	config VADGeneratorConfig
	rng    *rand.Rand
}

// NewVADGenerator creates a new generator
func NewVADGenerator(config VADGeneratorConfig) *VADGenerator {
	if config.Interval <= 0 {
		config.Interval = time.Minute
	}
	return &VADGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// At returns the timestamp of sample i.
func (g *VADGenerator) At(i int) time.Time {
	return g.config.StartDate.Add(time.Duration(i) * g.config.Interval)
}

// FromDimensions timestamps a list of points in order.
func (g *VADGenerator) FromDimensions(points []emotion.Dimensions) []emotion.DimensionalMap {
	maps := make([]emotion.DimensionalMap, len(points))
	for i, d := range points {
		maps[i] = emotion.NewDimensionalMap(g.At(i), d)
	}
	return maps
}

// Constant repeats d n times.
func (g *VADGenerator) Constant(n int, d emotion.Dimensions) []emotion.DimensionalMap {
	points := make([]emotion.Dimensions, n)
	for i := range points {
		points[i] = d
	}
	return g.FromDimensions(points)
}

// Ramp interpolates linearly from one point to another over n samples.
func (g *VADGenerator) Ramp(n int, from, to emotion.Dimensions) []emotion.DimensionalMap {
	points := make([]emotion.Dimensions, n)
	for i := range points {
		f := 0.0
		if n > 1 {
			f = float64(i) / float64(n-1)
		}
		points[i] = emotion.Dimensions{
			Valence:   from.Valence + f*(to.Valence-from.Valence),
			Arousal:   from.Arousal + f*(to.Arousal-from.Arousal),
			Dominance: from.Dominance + f*(to.Dominance-from.Dominance),
		}
	}
	return g.FromDimensions(points)
}

// Periodic sets every axis to base + amplitude*sin(2πi/period).
func (g *VADGenerator) Periodic(n, period int, base, amplitude float64) []emotion.DimensionalMap {
	points := make([]emotion.Dimensions, n)
	for i := range points {
		v := base + amplitude*math.Sin(2*math.Pi*float64(i)/float64(period))
		points[i] = emotion.Dimensions{Valence: v, Arousal: v, Dominance: v}
	}
	return g.FromDimensions(points)
}

// Plateau holds low before jumpAt and high from jumpAt onward.
func (g *VADGenerator) Plateau(n, jumpAt int, low, high emotion.Dimensions) []emotion.DimensionalMap {
	points := make([]emotion.Dimensions, n)
	for i := range points {
		if i < jumpAt {
			points[i] = low
		} else {
			points[i] = high
		}
	}
	return g.FromDimensions(points)
}

// Noisy draws n points uniformly from [-1, 1] on every axis.
func (g *VADGenerator) Noisy(n int) []emotion.DimensionalMap {
	points := make([]emotion.Dimensions, n)
	for i := range points {
		points[i] = emotion.Dimensions{
			Valence:   g.rng.Float64()*2 - 1,
			Arousal:   g.rng.Float64()*2 - 1,
			Dominance: g.rng.Float64()*2 - 1,
		}
	}
	return g.FromDimensions(points)
}

// WithGaps returns a copy of maps whose samples at the given indices carry no dimensions.
func WithGaps(maps []emotion.DimensionalMap, indices ...int) []emotion.DimensionalMap {
	out := make([]emotion.DimensionalMap, len(maps))
	copy(out, maps)
	for _, i := range indices {
		if i >= 0 && i < len(out) {
			out[i] = emotion.NewGap(out[i].Timestamp)
		}
	}
	return out
}

// Shuffled returns a seeded permutation of maps.
func (g *VADGenerator) Shuffled(maps []emotion.DimensionalMap) []emotion.DimensionalMap {
	out := make([]emotion.DimensionalMap, len(maps))
	copy(out, maps)
	g.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// ToAnalyses wraps each map as an emotion-analysis record.
func ToAnalyses(maps []emotion.DimensionalMap) []emotion.Analysis {
	out := make([]emotion.Analysis, len(maps))
	for i, m := range maps {
		out[i] = emotion.Analysis{Timestamp: m.Timestamp, Dimensions: m.Dimensions}
	}
	return out
}
