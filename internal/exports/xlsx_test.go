package exports

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

var sampleRows = []Row{
	{Name: "Jane Doe", PhoneNumber: "+15551234567", Status: "Completed", Disposition: "Interested", DurationMin: 2.0833, Cost: 2.06},
	{Name: "John Roe", PhoneNumber: "+15559876543", Status: "Failed", Disposition: "No Answer", DurationMin: 0, Cost: 0},
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, "Leads", sampleRows); err != nil {
		t.Fatalf("WriteXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Leads")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header plus 2", len(rows))
	}
	if rows[0][0] != "Name" || rows[0][5] != "Cost ($)" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "Jane Doe" || rows[1][3] != "Interested" {
		t.Errorf("first row = %v", rows[1])
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleRows); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("reparse csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want 3", len(records))
	}
	if records[2][2] != "Failed" {
		t.Errorf("second row status = %q", records[2][2])
	}
	if records[1][5] != "2.06" {
		t.Errorf("cost = %q, want 2.06", records[1][5])
	}
}

func TestSanitizeSheetName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "Export"},
		{"Spring Campaign", "Spring Campaign"},
		{"Q3: East/West?", "Q3  East West"},
		{strings.Repeat("x", 40), strings.Repeat("x", 31)},
	}
	for _, tt := range tests {
		if got := sanitizeSheetName(tt.in); got != tt.want {
			t.Errorf("sanitizeSheetName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
