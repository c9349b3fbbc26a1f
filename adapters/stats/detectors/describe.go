package detectors

import (
	"strings"

	"gomood/domain/emotion"
)

// phrasebook names movement along each axis, split by sign.
type phrasebook struct {
	valenceUp, valenceDown     string
	arousalUp, arousalDown     string
	dominanceUp, dominanceDown string
	fallback                   string
}

var trendPhrases = phrasebook{
	valenceUp:     "Improving emotional valence",
	valenceDown:   "Declining emotional valence",
	arousalUp:     "Increasing emotional arousal",
	arousalDown:   "Decreasing emotional arousal",
	dominanceUp:   "Gaining emotional control",
	dominanceDown: "Losing emotional control",
	fallback:      "Subtle emotional trend",
}

var shiftPhrases = phrasebook{
	valenceUp:     "Shift to more positive emotions",
	valenceDown:   "Shift to more negative emotions",
	arousalUp:     "Increased emotional intensity",
	arousalDown:   "Decreased emotional intensity",
	dominanceUp:   "Shift to more emotional control",
	dominanceDown: "Shift to less emotional control",
	fallback:      "Sudden emotional state change",
}

// describe joins the phrase for every axis whose magnitude exceeds threshold.
func (p phrasebook) describe(v emotion.Dimensions, threshold float64) string {
	var parts []string
	pick := func(x float64, up, down string) {
		switch {
		case x > threshold:
			parts = append(parts, up)
		case x < -threshold:
			parts = append(parts, down)
		}
	}
	pick(v.Valence, p.valenceUp, p.valenceDown)
	pick(v.Arousal, p.arousalUp, p.arousalDown)
	pick(v.Dominance, p.dominanceUp, p.dominanceDown)

	if len(parts) == 0 {
		return p.fallback
	}
	return strings.Join(parts, ", ")
}
