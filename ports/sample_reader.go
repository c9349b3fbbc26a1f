package ports

import (
	"context"

	"gomood/domain/emotion"
)

// SampleReader loads emotion-analysis records from an external source.
// Records are returned in source order; the engine sorts where it needs to.
type SampleReader interface {
	ReadAnalyses(ctx context.Context) ([]emotion.Analysis, error)
}

// DimensionalMaps projects analyses onto their timestamped dimensions.
func DimensionalMaps(analyses []emotion.Analysis) []emotion.DimensionalMap {
	maps := make([]emotion.DimensionalMap, len(analyses))
	for i, a := range analyses {
		maps[i] = a.DimensionalMap()
	}
	return maps
}
