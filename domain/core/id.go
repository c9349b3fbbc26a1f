package core

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// PatternID identifies a detected pattern within one analysis call.
type PatternID ID

func (id PatternID) String() string { return ID(id).String() }

// ParsePatternID parses a string into PatternID
func ParsePatternID(s string) (PatternID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("pattern ID cannot be empty")
	}
	return PatternID(s), nil
}

// CounterGenerator produces "<prefix>-1", "<prefix>-2", ... and never consults a clock,
// so two analyses of the same input with fresh generators yield the same ids.
type CounterGenerator struct {
	prefix string
	next   atomic.Uint64
}

// NewCounterGenerator creates a monotonic generator. An empty prefix defaults to "pattern".
func NewCounterGenerator(prefix string) *CounterGenerator {
	if prefix == "" {
		prefix = "pattern"
	}
	return &CounterGenerator{prefix: prefix}
}

// NextID returns the next identifier in sequence
func (g *CounterGenerator) NextID() PatternID {
	n := g.next.Add(1)
	return PatternID(fmt.Sprintf("%s-%d", g.prefix, n))
}

// UUIDGenerator produces UUID v7 identifiers.
type UUIDGenerator struct{}

// NextID returns a fresh UUID
func (UUIDGenerator) NextID() PatternID {
	return PatternID(NewID())
}
