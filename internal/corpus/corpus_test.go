package corpus

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"cvmatch/internal/errors"
	"cvmatch/internal/types"
)

func writeTestWorkbook(t *testing.T, path string, rows [][]any) {
	t.Helper()

	wb := excelize.NewFile()
	defer wb.Close()

	sheet := wb.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell coordinates: %v", err)
		}
		if err := wb.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if err := wb.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
}

func TestLoaderLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.xlsx")
	writeTestWorkbook(t, path, [][]any{
		{"title", "company", "location", "job_field", "kategori", "requirement", "level", "link"},
		{"Backend Developer", "PT Contoh", "Jakarta", "Information Technology", "teknologi", "Go and SQL", "Senior", "https://example.com/1"},
		{"Data Intern", "PT Data", "Bandung", "Data", "data", "Python", "", "https://example.com/2"},
		{"", "PT Kosong", "Jakarta", "", "", "", "", ""},
	})

	loader := NewLoader("", nil)
	records, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("Load() returned %d records, want 2 (empty-title row skipped)", len(records))
	}

	first := records[0]
	if first.Title != "Backend Developer" || first.Company != "PT Contoh" ||
		first.Category != "teknologi" || first.Level != "Senior" {
		t.Errorf("unexpected first record: %+v", first)
	}

	// Empty level column is backfilled from the title.
	if records[1].Level != "Intern" {
		t.Errorf("records[1].Level = %q, want inferred Intern", records[1].Level)
	}
}

func TestLoaderLoadHeaderAliases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.xlsx")
	writeTestWorkbook(t, path, [][]any{
		{"Title", "JOBFIELD", "date_posted", "Category"},
		{"QA Tester", "Software", "2026-01-02", "teknologi"},
	})

	loader := NewLoader("", nil)
	records, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Load() returned %d records, want 1", len(records))
	}
	rec := records[0]
	if rec.JobField != "Software" || rec.Posted != "2026-01-02" || rec.Category != "teknologi" {
		t.Errorf("header aliases not applied: %+v", rec)
	}
}

func TestLoaderLoadMissingFile(t *testing.T) {
	loader := NewLoader("", nil)

	_, err := loader.Load(filepath.Join(t.TempDir(), "nope.xlsx"))
	if err == nil {
		t.Fatal("Load() expected error for missing file")
	}
	appErr, ok := err.(*errors.AppError)
	if !ok {
		t.Fatalf("Load() error type = %T, want *errors.AppError", err)
	}
	if appErr.Code != errors.ErrCodeFileNotFound {
		t.Errorf("error code = %q, want %q", appErr.Code, errors.ErrCodeFileNotFound)
	}
}

func TestLoaderLoadUnrecognizedColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.xlsx")
	writeTestWorkbook(t, path, [][]any{
		{"foo", "bar"},
		{"a", "b"},
	})

	loader := NewLoader("", nil)
	_, err := loader.Load(path)
	if err == nil {
		t.Fatal("Load() expected error for unrecognized header row")
	}
}

func TestWriteWorkbookRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filtered.xlsx")
	records := []types.JobRecord{
		{Title: "Backend Developer", Company: "PT Contoh", Location: "Jakarta",
			JobField: "Information Technology", Requirement: "Go", Category: "teknologi", Level: "Senior"},
		{Title: "Data Intern", Company: "PT Data", Location: "Bandung", Level: "Intern"},
	}

	if err := WriteWorkbook(records, path); err != nil {
		t.Fatalf("WriteWorkbook() error = %v", err)
	}

	loader := NewLoader("", nil)
	got, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load() after write error = %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("round trip returned %d records, want %d", len(got), len(records))
	}
	for i := range records {
		if got[i] != records[i] {
			t.Errorf("record %d = %+v, want %+v", i, got[i], records[i])
		}
	}
}
