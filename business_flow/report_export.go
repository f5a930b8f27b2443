package businessflow

import (
	"fmt"

	"github.com/amirphl/retail-inventory/reporting"
	"github.com/xuri/excelize/v2"
)

const summarySheet = "summary"

type sheetSummary struct {
	Query          string  `json:"query"`
	RowCount       int     `json:"row_count"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
}

// buildWorkbook writes a summary sheet followed by one sheet per query
func buildWorkbook(snaps []querySnapshot) ([]byte, error) {
	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	if err := xl.SetSheetName(xl.GetSheetName(0), summarySheet); err != nil {
		return nil, fmt.Errorf("failed to rename default sheet: %w", err)
	}

	summary := make([]sheetSummary, len(snaps))
	used := map[string]bool{summarySheet: true}
	for i, s := range snaps {
		summary[i] = sheetSummary{Query: s.name, RowCount: s.count, ElapsedSeconds: s.elapsed}

		name := reporting.SanitizeSheetName(s.name)
		base := name
		for n := 2; used[name]; n++ {
			name = reporting.SanitizeSheetName(fmt.Sprintf("%s_%d", base, n))
		}
		used[name] = true

		if err := reporting.WriteSheet(xl, name, s.rows); err != nil {
			return nil, err
		}
	}

	if err := reporting.WriteSheet(xl, summarySheet, summary); err != nil {
		return nil, err
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
