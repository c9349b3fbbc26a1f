package excel

// ColumnConfig names the spreadsheet columns an analysis row is read from.
// Header matching is case-insensitive.
type ColumnConfig struct {
	Sheet           string `json:"sheet"`
	ID              string `json:"id"`
	Timestamp       string `json:"timestamp"`
	Valence         string `json:"valence"`
	Arousal         string `json:"arousal"`
	Dominance       string `json:"dominance"`
	DominantEmotion string `json:"dominant_emotion"`
}

// DefaultColumnConfig reads Sheet1 with snake_case headers
func DefaultColumnConfig() ColumnConfig {
	return ColumnConfig{
		Sheet:           "Sheet1",
		ID:              "id",
		Timestamp:       "timestamp",
		Valence:         "valence",
		Arousal:         "arousal",
		Dominance:       "dominance",
		DominantEmotion: "dominant_emotion",
	}
}
