package ports

import (
	"gomood/domain/core"
)

// PatternIDGenerator supplies identifiers for detected patterns.
// Identifiers must not depend on the wall clock when deterministic output is required;
// core.CounterGenerator satisfies that, core.UUIDGenerator does not.
type PatternIDGenerator interface {
	// NextID must be safe for concurrent use.
	NextID() core.PatternID
}
