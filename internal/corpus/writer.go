package corpus

import (
	"github.com/xuri/excelize/v2"

	"cvmatch/internal/errors"
	"cvmatch/internal/types"
)

var writerHeaders = []string{
	"title", "company", "location", "job_field", "work_type", "salary",
	"requirement", "posted", "link", "kategori", "level",
}

// WriteWorkbook writes records to a new xlsx workbook using the same column
// layout the scraper produces, so the output can be fed back in as a corpus.
func WriteWorkbook(records []types.JobRecord, path string) error {
	wb := excelize.NewFile()
	defer wb.Close()

	sheet := wb.GetSheetName(0)

	if err := wb.SetSheetRow(sheet, "A1", &writerHeaders); err != nil {
		return errors.NewIOError(errors.ErrCodeCorpusUnreadable,
			"Failed to write corpus header row", err).WithContext("path", path)
	}

	for i, rec := range records {
		row := []any{
			rec.Title, rec.Company, rec.Location, rec.JobField, rec.WorkType,
			rec.Salary, rec.Requirement, rec.Posted, rec.Link, rec.Category,
			rec.Level,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.NewInternalError(errors.ErrCodeInvalidFormat,
				"Failed to compute cell coordinates", err)
		}
		if err := wb.SetSheetRow(sheet, cell, &row); err != nil {
			return errors.NewIOError(errors.ErrCodeCorpusUnreadable,
				"Failed to write corpus row", err).WithContext("path", path)
		}
	}

	if err := wb.SaveAs(path); err != nil {
		return errors.NewIOError(errors.ErrCodeFileNotReadable,
			"Failed to save filtered corpus", err).WithContext("path", path)
	}
	return nil
}
