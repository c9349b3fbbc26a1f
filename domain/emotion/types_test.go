package emotion

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalDimensions_ZeroValueIsAbsent(t *testing.T) {
	var o OptionalDimensions
	_, ok := o.Get()
	assert.False(t, ok)
	assert.False(t, o.IsPresent())

	d, ok := Some(Dimensions{Valence: 0.3}).Get()
	assert.True(t, ok)
	assert.Equal(t, 0.3, d.Valence)
}

func TestOptionalDimensions_JSONNullIsGap(t *testing.T) {
	input := `[
		{"timestamp": "2024-01-01T00:00:00Z", "dimensions": {"valence": 0.5, "arousal": -0.2, "dominance": 0.1}},
		{"timestamp": "2024-01-01T01:00:00Z", "dimensions": null},
		{"timestamp": "2024-01-01T02:00:00Z"}
	]`

	var maps []DimensionalMap
	require.NoError(t, json.Unmarshal([]byte(input), &maps))
	require.Len(t, maps, 3)

	d, ok := maps[0].Dimensions.Get()
	assert.True(t, ok)
	assert.Equal(t, Dimensions{Valence: 0.5, Arousal: -0.2, Dominance: 0.1}, d)
	assert.False(t, maps[1].Dimensions.IsPresent())
	assert.False(t, maps[2].Dimensions.IsPresent())

	out, err := json.Marshal(NewGap(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.JSONEq(t, `{"timestamp":"2024-01-01T00:00:00Z","dimensions":null}`, string(out))
}

func TestDimensions_Arithmetic(t *testing.T) {
	a := Dimensions{Valence: 0, Arousal: 0, Dominance: 0}
	b := Dimensions{Valence: 3, Arousal: 4, Dominance: 0}

	assert.InDelta(t, 5.0, a.Distance(b), 1e-12)
	assert.InDelta(t, 7.0/3.0, b.Average(), 1e-12)
	assert.Equal(t, Dimensions{Valence: 3, Arousal: 4}, b.Sub(a))
	assert.False(t, math.IsNaN(a.Distance(a)))
}
