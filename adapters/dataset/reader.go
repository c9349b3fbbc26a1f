// Package dataset reads emotion-analysis histories from JSON and YAML documents.
//
// A document is either a bare list of records or an object with an "analyses"
// list. Timestamps are ISO-8601 strings; "dimensions" may be null or omitted.
package dataset

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gomood/adapters/excel"
	"gomood/domain/core"
	"gomood/domain/emotion"
	"gomood/internal"
	"gomood/ports"

	"gopkg.in/yaml.v3"
)

// Format identifies a document encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks a format from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", core.ErrUnsupportedFormat, filepath.Ext(path))
	}
}

type dimensionsRecord struct {
	Valence   *float64 `json:"valence" yaml:"valence"`
	Arousal   *float64 `json:"arousal" yaml:"arousal"`
	Dominance *float64 `json:"dominance" yaml:"dominance"`
}

type emotionRecord struct {
	Label string  `json:"label" yaml:"label"`
	Score float64 `json:"score" yaml:"score"`
}

type analysisRecord struct {
	ID              string            `json:"id" yaml:"id"`
	Timestamp       string            `json:"timestamp" yaml:"timestamp"`
	Emotions        []emotionRecord   `json:"emotions" yaml:"emotions"`
	DominantEmotion string            `json:"dominant_emotion" yaml:"dominant_emotion"`
	Dimensions      *dimensionsRecord `json:"dimensions" yaml:"dimensions"`
}

type document struct {
	Analyses []analysisRecord `json:"analyses" yaml:"analyses"`
}

// Decode parses a whole document from r.
func Decode(r io.Reader, format Format) ([]emotion.Analysis, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s document: %w", format, err)
	}

	var records []analysisRecord
	switch format {
	case FormatJSON:
		records, err = decodeJSON(raw)
	case FormatYAML:
		records, err = decodeYAML(raw)
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrMalformedRecord, err)
	}

	analyses := make([]emotion.Analysis, len(records))
	for i, rec := range records {
		a, err := rec.toAnalysis()
		if err != nil {
			return nil, core.NewMalformedRecordError(i+1, err)
		}
		analyses[i] = a
	}
	return analyses, nil
}

func decodeJSON(raw []byte) ([]analysisRecord, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []analysisRecord
		err := json.Unmarshal(trimmed, &records)
		return records, err
	}
	var doc document
	err := json.Unmarshal(trimmed, &doc)
	return doc.Analyses, err
}

func decodeYAML(raw []byte) ([]analysisRecord, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}
	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		var records []analysisRecord
		err := root.Decode(&records)
		return records, err
	}
	var doc document
	err := root.Decode(&doc)
	return doc.Analyses, err
}

func (r analysisRecord) toAnalysis() (emotion.Analysis, error) {
	ts, err := core.ParseTimestamp(r.Timestamp)
	if err != nil {
		return emotion.Analysis{}, err
	}

	dims := emotion.None()
	if d := r.Dimensions; d != nil {
		if d.Valence == nil || d.Arousal == nil || d.Dominance == nil {
			return emotion.Analysis{}, fmt.Errorf("%w: valence, arousal and dominance are all required", core.ErrInvalidDimension)
		}
		dims = emotion.Some(emotion.Dimensions{Valence: *d.Valence, Arousal: *d.Arousal, Dominance: *d.Dominance})
	}

	var scores []emotion.EmotionScore
	for _, e := range r.Emotions {
		scores = append(scores, emotion.EmotionScore{Label: e.Label, Score: e.Score})
	}

	return emotion.Analysis{
		ID:              r.ID,
		Timestamp:       ts,
		Emotions:        scores,
		DominantEmotion: r.DominantEmotion,
		Dimensions:      dims,
	}, nil
}

// FileReader reads a JSON or YAML file
type FileReader struct {
	path   string
	format Format
	logger *internal.Logger
}

// NewFileReader creates a reader for a .json, .yaml or .yml file
func NewFileReader(path string) (*FileReader, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	return &FileReader{path: path, format: format, logger: internal.DefaultLogger}, nil
}

func (r *FileReader) ReadAnalyses(ctx context.Context) ([]emotion.Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", r.path, err)
	}
	defer f.Close()

	analyses, err := Decode(f, r.format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.path, err)
	}
	r.logger.Debug("read %d analyses from %s", len(analyses), r.path)
	return analyses, nil
}

// NewReader picks a SampleReader for path by extension: JSON and YAML are
// decoded here, .xlsx and .csv go through the spreadsheet reader.
func NewReader(path string, logger *internal.Logger) (ports.SampleReader, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".csv":
		return excel.NewDataReader(path).WithLogger(logger), nil
	}
	r, err := NewFileReader(path)
	if err != nil {
		return nil, err
	}
	r.logger = logger
	return r, nil
}
