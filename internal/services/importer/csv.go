package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"paylens/internal/core/experience"
)

// requiredColumns are the headers every import file must carry
var requiredColumns = []string{
	"email", "University", "Major", "Industry", "Occupation",
	"Experience", "City", "Salary", "Submission_Date",
}

// Row is one validated import line ready for insertion
type Row struct {
	Email              string
	University         string
	Major              string
	Industry           string
	Occupation         string
	ExperienceCategory string
	City               string
	SalaryEUR          float64
	SubmissionDate     time.Time
}

// RowError names a rejected line, row numbers count the header as line 1
type RowError struct {
	RowNumber int
	Err       string
	Raw       map[string]string
}

// dateFormats are tried in order, best effort like the source files demand
var dateFormats = []string{"2006-01-02", "01/02/2006", "02/01/2006"}

func parseDate(s string, fallback time.Time) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	for _, f := range dateFormats {
		if t, err := time.Parse(f, s); err == nil {
			return t.UTC()
		}
	}
	return fallback
}

// ParseCSV reads and validates the whole file.
// a malformed header fails the parse, malformed lines become RowErrors
func ParseCSV(r io.Reader, now time.Time) ([]Row, []RowError, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	// excel exports prepend a BOM to the first header cell
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	idx := map[string]int{}
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, nil, fmt.Errorf("missing column: %s", col)
		}
	}

	var (
		rows     []Row
		failures []RowError
	)
	for lineNo := 2; ; lineNo++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		raw := rawMap(header, rec)
		if err != nil {
			failures = append(failures, RowError{RowNumber: lineNo, Err: err.Error(), Raw: raw})
			continue
		}

		row, perr := parseRow(idx, rec, now)
		if perr != "" {
			failures = append(failures, RowError{RowNumber: lineNo, Err: perr, Raw: raw})
			continue
		}
		rows = append(rows, row)
	}
	return rows, failures, nil
}

func rawMap(header, rec []string) map[string]string {
	m := make(map[string]string, len(header))
	for i, h := range header {
		if i < len(rec) {
			m[strings.TrimSpace(h)] = rec[i]
		}
	}
	return m
}

func parseRow(idx map[string]int, rec []string, now time.Time) (Row, string) {
	field := func(name string) string {
		i := idx[name]
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	row := Row{
		Email:              field("email"),
		University:         field("University"),
		Major:              field("Major"),
		Industry:           field("Industry"),
		Occupation:         field("Occupation"),
		ExperienceCategory: field("Experience"),
		City:               field("City"),
	}

	if !experience.Valid(row.ExperienceCategory) {
		return Row{}, fmt.Sprintf("invalid Experience: %s", row.ExperienceCategory)
	}

	salaryRaw := field("Salary")
	if row.University == "" || row.Major == "" || row.Industry == "" ||
		row.Occupation == "" || row.City == "" || salaryRaw == "" {
		return Row{}, "empty required field"
	}

	salary, err := strconv.ParseFloat(salaryRaw, 64)
	if err != nil {
		return Row{}, fmt.Sprintf("invalid Salary: %s", salaryRaw)
	}
	if salary <= 0 {
		return Row{}, "Salary must be positive"
	}
	row.SalaryEUR = salary
	row.SubmissionDate = parseDate(field("Submission_Date"), now)
	return row, ""
}
