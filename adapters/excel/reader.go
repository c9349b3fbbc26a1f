package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gomood/domain/core"
	"gomood/domain/emotion"
	"gomood/internal"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading emotion-analysis rows from Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	columns  ColumnConfig
	logger   *internal.Logger
}

// NewDataReader creates a reader for an .xlsx or .csv file using the default columns
func NewDataReader(filePath string) *DataReader {
	return NewDataReaderWithColumns(filePath, DefaultColumnConfig())
}

// NewDataReaderWithColumns creates a reader with a custom column mapping
func NewDataReaderWithColumns(filePath string, columns ColumnConfig) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	if columns.Sheet == "" {
		columns.Sheet = "Sheet1"
	}
	return &DataReader{
		filePath: filePath,
		fileType: fileType,
		columns:  columns,
		logger:   internal.DefaultLogger,
	}
}

// WithLogger replaces the reader's logger
func (r *DataReader) WithLogger(logger *internal.Logger) *DataReader {
	r.logger = logger
	return r
}

// ReadAnalyses reads the file and converts every data row into an analysis record.
// A row whose three dimension cells are all blank becomes a record without dimensions.
func (r *DataReader) ReadAnalyses(ctx context.Context) ([]emotion.Analysis, error) {
	data, err := r.ReadData()
	if err != nil {
		return nil, err
	}
	if !data.HasColumn(r.columns.Timestamp) {
		return nil, fmt.Errorf("%w: missing %q column", core.ErrMalformedRecord, r.columns.Timestamp)
	}

	analyses := make([]emotion.Analysis, 0, len(data.Rows))
	for i, row := range data.Rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		a, err := r.rowToAnalysis(row)
		if err != nil {
			// +2: header row plus 1-based numbering, matching the spreadsheet row
			return nil, core.NewMalformedRecordError(i+2, err)
		}
		analyses = append(analyses, a)
	}

	r.logger.Debug("[DataReader] converted %d rows from %s", len(analyses), r.filePath)
	return analyses, nil
}

// ReadData reads data from Excel or CSV files into structured format
func (r *DataReader) ReadData() (*SheetData, error) {
	r.logger.Debug("[DataReader] Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSVData()
	case "xlsx":
		return r.readExcelData()
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedFormat, r.fileType)
	}
}

// readExcelData reads the configured sheet into structured format
func (r *DataReader) readExcelData() (*SheetData, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.columns.Sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.columns.Sheet, err)
	}
	r.logger.Debug("[DataReader] %s read in %.2fms (%d rows)",
		r.columns.Sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: Excel file must have at least a header row and one data row", core.ErrMalformedRecord)
	}

	return r.processRows(rows), nil
}

// readCSVData reads CSV data into structured format
func (r *DataReader) readCSVData() (*SheetData, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	r.logger.Debug("[DataReader] CSV file read in %.2fms (%d rows)",
		float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: CSV file must have at least a header row and one data row", core.ErrMalformedRecord)
	}

	return r.processRows(rows), nil
}

// processRows converts raw string rows into SheetData, keyed by normalized header
func (r *DataReader) processRows(rows [][]string) *SheetData {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}

	dataRows := make([]RawRowData, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		rowData := make(RawRowData, len(headers))
		for j, cell := range row {
			if j < len(headers) {
				rowData[normalizeHeader(headers[j])] = strings.TrimSpace(cell)
			}
		}
		dataRows = append(dataRows, rowData)
	}

	r.logger.Debug("[DataReader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(dataRows))

	return &SheetData{
		Headers: headers,
		Rows:    dataRows,
	}
}

func (r *DataReader) rowToAnalysis(row RawRowData) (emotion.Analysis, error) {
	ts, err := core.ParseTimestamp(row[normalizeHeader(r.columns.Timestamp)])
	if err != nil {
		return emotion.Analysis{}, err
	}

	dims, err := r.rowDimensions(row)
	if err != nil {
		return emotion.Analysis{}, err
	}

	return emotion.Analysis{
		ID:              row[normalizeHeader(r.columns.ID)],
		Timestamp:       ts,
		DominantEmotion: row[normalizeHeader(r.columns.DominantEmotion)],
		Dimensions:      dims,
	}, nil
}

func (r *DataReader) rowDimensions(row RawRowData) (emotion.OptionalDimensions, error) {
	cells := [3]string{
		row[normalizeHeader(r.columns.Valence)],
		row[normalizeHeader(r.columns.Arousal)],
		row[normalizeHeader(r.columns.Dominance)],
	}
	if cells[0] == "" && cells[1] == "" && cells[2] == "" {
		return emotion.None(), nil
	}

	var values [3]float64
	for i, cell := range cells {
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return emotion.None(), fmt.Errorf("%w %q", core.ErrInvalidDimension, cell)
		}
		values[i] = v
	}
	return emotion.Some(emotion.Dimensions{Valence: values[0], Arousal: values[1], Dominance: values[2]}), nil
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
