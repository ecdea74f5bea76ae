// Package corpus loads and filters the externally maintained job corpus. The
// corpus is an xlsx workbook produced by a scraping pipeline; this package
// never writes derived values back to it.
package corpus

import (
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"cvmatch/internal/errors"
	"cvmatch/internal/types"
)

// Loader reads job records out of an xlsx workbook.
type Loader struct {
	sheet  string // empty means first sheet
	logger *errors.Logger
}

func NewLoader(sheet string, logger *errors.Logger) *Loader {
	return &Loader{sheet: sheet, logger: logger}
}

// columnFor maps a header cell to a JobRecord field name. Header matching is
// case-insensitive and tolerates the Indonesian "kategori" column name the
// scraper emits.
func columnFor(header string) string {
	switch strings.ToLower(strings.TrimSpace(header)) {
	case "title":
		return "title"
	case "company":
		return "company"
	case "location":
		return "location"
	case "job_field", "jobfield":
		return "job_field"
	case "work_type", "worktype":
		return "work_type"
	case "salary":
		return "salary"
	case "requirement":
		return "requirement"
	case "posted", "date_posted":
		return "posted"
	case "link":
		return "link"
	case "kategori", "category":
		return "category"
	case "level":
		return "level"
	default:
		return ""
	}
}

// Load reads every data row from the workbook. A missing or unreadable file
// is an unrecoverable input error. Rows whose title cell is empty are
// skipped; an empty level column is filled by InferLevel.
func (l *Loader) Load(path string) ([]types.JobRecord, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewIOError(errors.ErrCodeFileNotFound,
				"Corpus file does not exist", err).WithContext("path", path)
		}
		return nil, errors.NewIOError(errors.ErrCodeCorpusUnreadable,
			"Cannot access corpus file", err).WithContext("path", path)
	}

	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewIOError(errors.ErrCodeCorpusUnreadable,
			"Cannot open corpus workbook", err).WithContext("path", path)
	}
	defer wb.Close()

	sheet := l.sheet
	if sheet == "" {
		sheet = wb.GetSheetName(0)
	}

	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, errors.NewIOError(errors.ErrCodeCorpusUnreadable,
			"Cannot read corpus sheet", err).
			WithContext("path", path).WithContext("sheet", sheet)
	}
	if len(rows) == 0 {
		return nil, errors.NewIOError(errors.ErrCodeCorpusUnreadable,
			"Corpus sheet is empty", nil).
			WithContext("path", path).WithContext("sheet", sheet)
	}

	// Header row establishes the column layout for the whole sheet.
	columns := make(map[int]string)
	for i, header := range rows[0] {
		if field := columnFor(header); field != "" {
			columns[i] = field
		}
	}
	if len(columns) == 0 {
		return nil, errors.NewIOError(errors.ErrCodeCorpusUnreadable,
			"Corpus sheet has no recognized columns", nil).
			WithContext("path", path).WithContext("sheet", sheet)
	}

	records := make([]types.JobRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := recordFromRow(row, columns)
		if strings.TrimSpace(rec.Title) == "" {
			continue
		}
		if rec.Level == "" {
			rec.Level = InferLevel(rec.Title)
		}
		records = append(records, rec)
	}

	if l.logger != nil {
		l.logger.Info("Corpus loaded",
			"path", path,
			"sheet", sheet,
			"records", len(records))
	}
	return records, nil
}

func recordFromRow(row []string, columns map[int]string) types.JobRecord {
	var rec types.JobRecord
	for i, cell := range row {
		value := strings.TrimSpace(cell)
		switch columns[i] {
		case "title":
			rec.Title = value
		case "company":
			rec.Company = value
		case "location":
			rec.Location = value
		case "job_field":
			rec.JobField = value
		case "work_type":
			rec.WorkType = value
		case "salary":
			rec.Salary = value
		case "requirement":
			rec.Requirement = value
		case "posted":
			rec.Posted = value
		case "link":
			rec.Link = value
		case "category":
			rec.Category = value
		case "level":
			rec.Level = value
		}
	}
	return rec
}
