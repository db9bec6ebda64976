package importer

import (
	"strings"
	"testing"
	"time"
)

const header = "email,University,Major,Industry,Occupation,Experience,City,Salary,Submission_Date\n"

var clock = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func TestParseCSVValidRows(t *testing.T) {
	in := header +
		"a@x.io,TU Delft,CS,Tech,Engineer,1-3 years,Amsterdam,62000,2025-03-01\n" +
		",Oslo U,Math,Finance,Analyst,above 10 years,Oslo,88000.50,03/15/2024\n"

	rows, failures, err := ParseCSV(strings.NewReader(in), clock)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(failures) != 0 {
		t.Fatalf("failures = %+v", failures)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[0].SalaryEUR != 62000 || rows[0].SubmissionDate.Year() != 2025 {
		t.Fatalf("row 0 = %+v", rows[0])
	}
	if rows[1].Email != "" || rows[1].SalaryEUR != 88000.50 {
		t.Fatalf("row 1 = %+v", rows[1])
	}
	if rows[1].SubmissionDate.Month() != time.March {
		t.Fatalf("date = %v", rows[1].SubmissionDate)
	}
}

func TestParseCSVHeaderBOM(t *testing.T) {
	in := "\uFEFF" + header +
		"a@x.io,TU Delft,CS,Tech,Engineer,1-3 years,Amsterdam,62000,2025-03-01\n"

	rows, _, err := ParseCSV(strings.NewReader(in), clock)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d", len(rows))
	}
}

func TestParseCSVMissingColumn(t *testing.T) {
	in := "email,University,Major\na@x.io,TU Delft,CS\n"
	if _, _, err := ParseCSV(strings.NewReader(in), clock); err == nil {
		t.Fatal("expected header error")
	}
}

func TestParseCSVRowFailures(t *testing.T) {
	in := header +
		"a@x.io,TU Delft,CS,Tech,Engineer,forever,Amsterdam,62000,2025-03-01\n" +
		"b@x.io,TU Delft,CS,Tech,Engineer,1-3 years,Amsterdam,not-a-number,2025-03-01\n" +
		"c@x.io,TU Delft,CS,Tech,Engineer,1-3 years,Amsterdam,-5,2025-03-01\n" +
		"d@x.io,,CS,Tech,Engineer,1-3 years,Amsterdam,100,2025-03-01\n" +
		"e@x.io,TU Delft,CS,Tech,Engineer,1-3 years,Amsterdam,100,garbage-date\n"

	rows, failures, err := ParseCSV(strings.NewReader(in), clock)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	// the garbage date falls back to now, only the first four rows fail
	if len(rows) != 1 {
		t.Fatalf("rows = %+v", rows)
	}
	if !rows[0].SubmissionDate.Equal(clock) {
		t.Fatalf("fallback date = %v", rows[0].SubmissionDate)
	}
	if len(failures) != 4 {
		t.Fatalf("failures = %+v", failures)
	}
	// header is line 1
	if failures[0].RowNumber != 2 {
		t.Fatalf("row number = %d", failures[0].RowNumber)
	}
	if !strings.Contains(failures[0].Err, "invalid Experience") {
		t.Fatalf("err = %q", failures[0].Err)
	}
	if !strings.Contains(failures[1].Err, "invalid Salary") {
		t.Fatalf("err = %q", failures[1].Err)
	}
	if failures[2].Err != "Salary must be positive" {
		t.Fatalf("err = %q", failures[2].Err)
	}
	if failures[3].Err != "empty required field" {
		t.Fatalf("err = %q", failures[3].Err)
	}
}

func TestBatchStatus(t *testing.T) {
	if got := batchStatus(0, 3); got != StatusFailed {
		t.Fatalf("got %q", got)
	}
	if got := batchStatus(2, 1); got != StatusPartial {
		t.Fatalf("got %q", got)
	}
	if got := batchStatus(2, 0); got != StatusSuccess {
		t.Fatalf("got %q", got)
	}
}
