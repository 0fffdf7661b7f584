package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"gosurvey/domain/core"
	"gosurvey/domain/survey"
)

// Sheet names used by survey workbook exports. SchemaSheet is optional:
// workbooks without one fall back to the single-sheet layout where question
// kinds are inferred from header text.
const (
	SchemaSheet = "schema"
	DataSheet   = "raw data"
)

// DataReader loads survey datasets from Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// Loader adapts DataReader to the ports.DatasetLoader contract
type Loader struct{}

// NewLoader creates a dataset loader
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads a survey file fully into an immutable dataset snapshot
func (l *Loader) Load(ctx context.Context, source string) (*survey.Dataset, error) {
	return NewDataReader(source).Read(ctx)
}

// Read loads the survey file into a dataset snapshot
func (r *DataReader) Read(ctx context.Context) (*survey.Dataset, error) {
	log.Printf("[DataReader] Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, core.NewLoadError(r.filePath, fmt.Errorf("file not found"))
	}
	if err := ctx.Err(); err != nil {
		return nil, core.NewLoadError(r.filePath, err)
	}

	var (
		ds  *survey.Dataset
		err error
	)
	switch r.fileType {
	case "csv":
		ds, err = r.readCSV()
	default:
		ds, err = r.readExcel()
	}
	if err != nil {
		return nil, err
	}

	ds.SnapshotID = uuid.New().String()[:8]
	ds.Source = r.filePath
	ds.LoadedAt = time.Now()

	log.Printf("[DataReader] Loaded snapshot %s (%d questions, %d respondents)",
		ds.SnapshotID, ds.Registry.Len(), ds.Responses.Len())
	return ds, nil
}

func (r *DataReader) readExcel() (*survey.Dataset, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, core.NewLoadError(r.filePath, err)
	}
	defer f.Close()
	log.Printf("[DataReader] Excel file opened in %.2fms", float64(time.Since(startTime).Nanoseconds())/1e6)

	// Schema sheet is optional; when present its declared kinds win over
	// the header-text heuristic.
	schema := map[string]survey.Kind{}
	labels := map[string]string{}
	if schemaRows, err := f.GetRows(SchemaSheet); err == nil && len(schemaRows) > 1 {
		for _, row := range schemaRows[1:] { // skip header row
			if len(row) < 3 {
				continue
			}
			key := strings.TrimSpace(row[0])
			if key == "" {
				continue
			}
			labels[key] = strings.TrimSpace(row[1])
			if kind, ok := survey.ParseKind(row[2]); ok {
				schema[key] = kind
			}
		}
		log.Printf("[DataReader] Schema sheet parsed (%d declared questions)", len(schema))
	}

	dataSheet := DataSheet
	rows, err := f.GetRows(dataSheet)
	if err != nil {
		// Single-sheet layout: survey data in the first sheet that is not
		// the schema sheet.
		dataSheet = ""
		for _, sheet := range f.GetSheetList() {
			if !strings.EqualFold(sheet, SchemaSheet) {
				dataSheet = sheet
				break
			}
		}
		if dataSheet == "" {
			return nil, core.NewParsingError("no data worksheet found")
		}
		rows, err = f.GetRows(dataSheet)
		if err != nil {
			return nil, core.NewLoadError(r.filePath, err)
		}
	}

	return buildDataset(rows, schema, labels)
}

func (r *DataReader) readCSV() (*survey.Dataset, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, core.NewLoadError(r.filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, core.NewLoadError(r.filePath, err)
	}
	log.Printf("[DataReader] CSV file read in %.2fms (%d rows)",
		float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return buildDataset(rows, nil, nil)
}

// buildDataset converts raw string rows into the registry + response table.
// The first row is the header: each column becomes one question, with its
// kind taken from the schema declaration when available and inferred from
// the header text otherwise.
func buildDataset(rows [][]string, schema map[string]survey.Kind, labels map[string]string) (*survey.Dataset, error) {
	if len(rows) == 0 {
		return nil, core.NewParsingError("no header row found")
	}

	headerRow := rows[0]
	questions := make([]survey.Question, 0, len(headerRow))
	for i, header := range headerRow {
		key := strings.TrimSpace(header)
		label := key
		if l, ok := labels[key]; ok && l != "" {
			label = l
		}
		kind, declared := schema[key]
		if !declared {
			kind = survey.InferKind(label)
		}
		questions = append(questions, survey.Question{
			ID:    i,
			Key:   key,
			Label: label,
			Kind:  kind,
		})
	}

	records := make([]survey.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(survey.Record)
		for j, cell := range row {
			if j >= len(questions) {
				break
			}
			value := strings.TrimSpace(cell)
			if value == "" {
				// Absent answers are represented by absence of the key.
				continue
			}
			rec[j] = value
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, core.ErrEmptyDataset
	}

	return &survey.Dataset{
		Registry:  survey.NewRegistry(questions),
		Responses: survey.NewResponseTable(records),
	}, nil
}
