package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

func WeekDir(week int) string { return fmt.Sprintf("week_%02d", week) }

func WorkbookName(week int) string { return fmt.Sprintf("All_Data_Week_%02d.xlsx", week) }

func csvName(table string, week int) string {
	prefix := map[string]string{
		TableProducts:  "All_Data",
		TableEmotions:  "Emotion_Analysis",
		TableTopics:    "Topic_Analysis",
		TablePlatforms: "Platform_Comparison",
		TableSummary:   "Summary",
	}[table]
	return fmt.Sprintf("%s_Week_%02d.csv", prefix, week)
}

// Workbook sheet per table; matched case-insensitively.
var sheetNames = map[string]string{
	TableProducts:  "Products",
	TableEmotions:  "Emotions",
	TableTopics:    "Topics",
	TablePlatforms: "Platforms",
	TableSummary:   "Summary",
}

// ReadCSV reads a whole CSV file into a table. Ragged rows are accepted.
func ReadCSV(name string, r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	rows, err := cr.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("read %s csv: %w", name, err)
	}
	return NewTable(name, rows), nil
}

// ReadWorkbook reads every known sheet of a weekly workbook. Tables whose
// sheet is missing are returned empty. If the workbook has no Products sheet
// its first sheet is taken as the product table.
func ReadWorkbook(r io.Reader) (map[string]Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	byLower := map[string]string{}
	for _, s := range sheets {
		byLower[strings.ToLower(strings.TrimSpace(s))] = s
	}

	out := map[string]Table{}
	for table, sheet := range sheetNames {
		actual, ok := byLower[strings.ToLower(sheet)]
		if !ok && table == TableProducts {
			actual, ok = sheets[0], true
		}
		if !ok {
			out[table] = NewTable(table, nil)
			continue
		}
		rows, err := f.GetRows(actual)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", actual, err)
		}
		out[table] = NewTable(table, rows)
	}
	return out, nil
}
