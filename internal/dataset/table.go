package dataset

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Table is one raw sheet or CSV file: a header row and string cells.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
	index  map[string]int
}

// NewTable treats the first row as the header. Blank rows are dropped.
func NewTable(name string, rows [][]string) Table {
	t := Table{Name: name, index: map[string]int{}}
	if len(rows) == 0 {
		return t
	}
	t.Header = rows[0]
	for i, h := range t.Header {
		key := normalizeHeader(h)
		if canonical, ok := headerAliases[key]; ok {
			key = canonical
		}
		if _, dup := t.index[key]; !dup {
			t.index[key] = i
		}
	}
	for _, r := range rows[1:] {
		if blank(r) {
			continue
		}
		t.Rows = append(t.Rows, r)
	}
	return t
}

// Alternative spellings found in exported weekly files.
var headerAliases = map[string]string{
	"id":                 "product_id",
	"rank":               "product_id",
	"product_rank":       "product_id",
	"name":               "product_name",
	"product":            "product_name",
	"category":           "product_category",
	"subcategory":        "product_subcategory",
	"track":              "track_type",
	"price":              "price_avg",
	"price_usd":          "price_avg",
	"sales_estimate":     "sales_volume",
	"sales":              "sales_volume",
	"ai_target_audience": "target_audience",
	"emotion_type":       "emotion",
	"pct":                "percentage",
	"percent":            "percentage",
	"sample_count":       "count",
	"growth":             "growth_rate",
	"type":               "platform_type",
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(h)
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func (t Table) Has(col string) bool {
	_, ok := t.index[col]
	return ok
}

// Empty reports a table with no header at all (file absent or blank).
func (t Table) Empty() bool {
	return len(t.Header) == 0
}

func (t Table) Cell(row []string, col string) string {
	i, ok := t.index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Float parses a numeric cell, tolerating thousands separators, currency and
// percent signs. Unparseable, absent or non-finite cells (nan, inf) read as 0.
func (t Table) Float(row []string, col string) float64 {
	s := numberCleaner.Replace(t.Cell(row, col))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

var numberCleaner = strings.NewReplacer(",", "", "$", "", "%", "", "¥", "", " ", "")

func (t Table) Int(row []string, col string) int {
	return int(t.Float(row, col))
}

// List reads a list-valued cell written either as a JSON array or as a
// comma (or 、) separated string. Absent cells give an empty list.
func (t Table) List(row []string, col string) []string {
	s := t.Cell(row, col)
	out := []string{}
	if s == "" {
		return out
	}
	if strings.HasPrefix(s, "[") {
		var parsed []string
		if err := json.Unmarshal([]byte(s), &parsed); err == nil {
			for _, p := range parsed {
				if p = strings.TrimSpace(p); p != "" {
					out = append(out, p)
				}
			}
			return out
		}
		s = strings.Trim(s, "[]")
	}
	for _, p := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '、' || r == '，' }) {
		if p = strings.Trim(strings.TrimSpace(p), `"'`); p != "" {
			out = append(out, p)
		}
	}
	return out
}
