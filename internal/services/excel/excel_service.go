package excel

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/formteam/formtrack-backend/internal/models"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Submissions"

// Service builds spreadsheet exports of form submissions
type Service struct{}

// NewExcelService creates a new Excel service instance
func NewExcelService() *Service {
	return &Service{}
}

// ExportSubmissions renders the submissions of a form into an xlsx workbook.
// Payload objects are flattened with dot-joined keys, arrays are joined with
// "; ", column headers are uppercased, and a SUBMITTED_AT column is appended.
// Missing keys across rows are filled with "".
func (s *Service) ExportSubmissions(submissions []*models.Submission) (*excelize.File, error) {
	rows := make([]map[string]string, 0, len(submissions))
	for _, submission := range submissions {
		flat := FlattenPayload(submission.Data)
		flat["SUBMITTED_AT"] = submission.SubmittedAt.Format("2006-01-02 15:04:05")
		rows = append(rows, flat)
	}

	headers := collectHeaders(rows)

	f := excelize.NewFile()
	f.SetSheetName(f.GetSheetName(0), sheetName)

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}

		// Width loosely tracks the header, clamped to a readable range.
		width := float64(len(header) + 2)
		if width < 15 {
			width = 15
		}
		if width > 40 {
			width = 40
		}
		colName, _ := excelize.ColumnNumberToName(col + 1)
		if err := f.SetColWidth(sheetName, colName, colName, width); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for rowIdx, row := range rows {
		for col, header := range headers {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return nil, fmt.Errorf("failed to address cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, row[header]); err != nil {
				return nil, fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	return f, nil
}

// FlattenPayload flattens a submission payload into a single-level map with
// uppercased, dot-joined keys
func FlattenPayload(data models.SubmissionData) map[string]string {
	if len(data) == 0 {
		return map[string]string{"NO_DATA": "No data submitted"}
	}

	flat := make(map[string]string)
	flattenValue(map[string]interface{}(data), "", flat)

	upper := make(map[string]string, len(flat))
	for k, v := range flat {
		upper[strings.ToUpper(k)] = v
	}
	return upper
}

func flattenValue(value interface{}, prefix string, out map[string]string) {
	switch v := value.(type) {
	case map[string]interface{}:
		for key, child := range v {
			newKey := key
			if prefix != "" {
				newKey = prefix + "." + key
			}
			flattenValue(child, newKey, out)
		}
	case []interface{}:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = scalarString(item)
		}
		key := prefix
		if key == "" {
			key = "array_data"
		}
		out[key] = strings.Join(parts, "; ")
	default:
		key := prefix
		if key == "" {
			key = "value"
		}
		out[key] = scalarString(v)
	}
}

func scalarString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case map[string]interface{}, []interface{}:
		// Nested structures inside arrays keep their JSON-ish shape.
		return fmt.Sprintf("%v", v)
	}
	return fmt.Sprintf("%v", value)
}

// collectHeaders returns the union of keys across rows, sorted for a stable
// column order with SUBMITTED_AT last
func collectHeaders(rows []map[string]string) []string {
	seen := make(map[string]bool)
	for _, row := range rows {
		for k := range row {
			seen[k] = true
		}
	}

	headers := make([]string, 0, len(seen))
	for k := range seen {
		if k == "SUBMITTED_AT" {
			continue
		}
		headers = append(headers, k)
	}
	sort.Strings(headers)
	if seen["SUBMITTED_AT"] {
		headers = append(headers, "SUBMITTED_AT")
	}
	return headers
}
