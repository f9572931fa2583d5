package excel

import (
	"reflect"
	"testing"
	"time"

	"github.com/formteam/formtrack-backend/internal/models"
)

func TestFlattenPayloadScalars(t *testing.T) {
	got := FlattenPayload(models.SubmissionData{
		"name":       "Jane",
		"age":        float64(30),
		"subscribed": true,
	})

	want := map[string]string{
		"NAME":       "Jane",
		"AGE":        "30",
		"SUBSCRIBED": "true",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FlattenPayload = %v, want %v", got, want)
	}
}

func TestFlattenPayloadNestedObjects(t *testing.T) {
	got := FlattenPayload(models.SubmissionData{
		"address": map[string]interface{}{
			"city": "Hanoi",
			"geo": map[string]interface{}{
				"lat": float64(21.02),
			},
		},
	})

	want := map[string]string{
		"ADDRESS.CITY":    "Hanoi",
		"ADDRESS.GEO.LAT": "21.02",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FlattenPayload = %v, want %v", got, want)
	}
}

func TestFlattenPayloadArrays(t *testing.T) {
	got := FlattenPayload(models.SubmissionData{
		"interests": []interface{}{"golf", "chess", float64(7)},
	})

	if got["INTERESTS"] != "golf; chess; 7" {
		t.Errorf("INTERESTS = %q, want %q", got["INTERESTS"], "golf; chess; 7")
	}
}

func TestFlattenPayloadEmpty(t *testing.T) {
	got := FlattenPayload(models.SubmissionData{})

	if got["NO_DATA"] != "No data submitted" {
		t.Errorf("empty payload flattened to %v", got)
	}
}

func TestCollectHeadersUnionWithSubmittedAtLast(t *testing.T) {
	headers := collectHeaders([]map[string]string{
		{"EMAIL": "a@b.test", "SUBMITTED_AT": "2025-01-09 10:30:00"},
		{"NAME": "Jane", "SUBMITTED_AT": "2025-01-09 10:31:00"},
	})

	want := []string{"EMAIL", "NAME", "SUBMITTED_AT"}
	if !reflect.DeepEqual(headers, want) {
		t.Errorf("collectHeaders = %v, want %v", headers, want)
	}
}

func TestExportSubmissionsBuildsWorkbook(t *testing.T) {
	svc := NewExcelService()
	submittedAt := time.Date(2025, 1, 9, 10, 30, 0, 0, time.UTC)

	file, err := svc.ExportSubmissions([]*models.Submission{
		{
			FormID:      "K7Q2M9X1B4",
			Data:        models.SubmissionData{"email": "a@b.test", "name": "Jane"},
			SubmittedAt: submittedAt,
		},
		{
			FormID:      "K7Q2M9X1B4",
			Data:        models.SubmissionData{"email": "c@d.test", "phone": "555"},
			SubmittedAt: submittedAt,
		},
	})
	if err != nil {
		t.Fatalf("ExportSubmissions failed: %v", err)
	}

	rows, err := file.GetRows("Submissions")
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2 data rows", len(rows))
	}

	wantHeader := []string{"EMAIL", "NAME", "PHONE", "SUBMITTED_AT"}
	if !reflect.DeepEqual(rows[0], wantHeader) {
		t.Errorf("header row = %v, want %v", rows[0], wantHeader)
	}

	// Missing keys fill with "". excelize trims trailing empty cells, so
	// compare by index up to what it returns.
	first := rows[1]
	if first[0] != "a@b.test" || first[1] != "Jane" {
		t.Errorf("first data row = %v", first)
	}
	if first[3] != "2025-01-09 10:30:00" {
		t.Errorf("SUBMITTED_AT = %q", first[3])
	}
}
