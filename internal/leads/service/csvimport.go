package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"callcampaign_backend/platform/phone"
)

// ImportRow is one parsed lead candidate from an uploaded CSV file.
type ImportRow struct {
	Name  string
	Phone string
	Line  int
}

// ParseCSV reads a comma-delimited, quoted-field-aware lead file. The header
// row must contain a name-like column and a phone-like column; rows missing a
// phone value are reported as skipped, not fatal.
func ParseCSV(r io.Reader) ([]ImportRow, []string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv header: %w", err)
	}

	nameIdx, phoneIdx := detectColumns(header)
	if phoneIdx < 0 {
		return nil, nil, fmt.Errorf("no phone column found in header")
	}

	var rows []ImportRow
	var skipped []string
	line := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			skipped = append(skipped, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		rawPhone := field(record, phoneIdx)
		if strings.TrimSpace(rawPhone) == "" {
			skipped = append(skipped, fmt.Sprintf("line %d: missing phone number", line))
			continue
		}

		name := strings.TrimSpace(field(record, nameIdx))
		if name == "" {
			name = "Unknown"
		}

		rows = append(rows, ImportRow{
			Name:  name,
			Phone: phone.NormalizeE164(rawPhone),
			Line:  line,
		})
	}

	return rows, skipped, nil
}

// detectColumns finds the name and phone column indexes. Exact matches are
// preferred over substring matches so "phone number" beats "phone_id"-style
// columns. Returns -1 when a column is absent.
func detectColumns(header []string) (nameIdx, phoneIdx int) {
	nameIdx, phoneIdx = -1, -1

	nameExact := []string{"name", "lead name", "contact"}
	phoneExact := []string{"phone", "phone number", "mobile", "telephone", "cell"}

	for i, col := range header {
		c := strings.ToLower(strings.TrimSpace(col))

		if nameIdx < 0 && containsAny(c, nameExact) {
			nameIdx = i
		}
		if phoneIdx < 0 && containsAny(c, phoneExact) {
			phoneIdx = i
		}
	}

	if nameIdx < 0 {
		for i, col := range header {
			if strings.Contains(strings.ToLower(col), "name") {
				nameIdx = i
				break
			}
		}
	}
	if phoneIdx < 0 {
		for i, col := range header {
			if strings.Contains(strings.ToLower(col), "phone") {
				phoneIdx = i
				break
			}
		}
	}

	return nameIdx, phoneIdx
}

func containsAny(value string, exact []string) bool {
	for _, e := range exact {
		if value == e {
			return true
		}
	}
	return false
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}
