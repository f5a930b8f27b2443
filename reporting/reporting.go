// Package reporting renders query result rows as text tables, compact strings and spreadsheet sheets.
// Rows are slices of structs; the json tag of each field names its column and embedded structs are flattened.
package reporting

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var ErrNotRowSlice = errors.New("rows must be a slice of structs")

var (
	decimalType  = reflect.TypeOf(decimal.Decimal{})
	durationType = reflect.TypeOf(time.Duration(0))
)

type column struct {
	name  string
	index []int
}

// columnsOf lists the exported fields of t in declaration order
func columnsOf(t reflect.Type) []column {
	var cols []column
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type.Kind() == reflect.Struct && f.Type != decimalType {
			for _, inner := range columnsOf(f.Type) {
				inner.index = append([]int{i}, inner.index...)
				cols = append(cols, inner)
			}
			continue
		}
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("json"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		cols = append(cols, column{name: name, index: []int{i}})
	}
	return cols
}

// inspect validates rows and returns the slice value with its element columns
func inspect(rows any) (reflect.Value, []column, error) {
	v := reflect.ValueOf(rows)
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Slice {
		return reflect.Value{}, nil, fmt.Errorf("%w: got %T", ErrNotRowSlice, rows)
	}
	et := v.Type().Elem()
	for et.Kind() == reflect.Pointer {
		et = et.Elem()
	}
	if et.Kind() != reflect.Struct {
		return reflect.Value{}, nil, fmt.Errorf("%w: got %T", ErrNotRowSlice, rows)
	}
	return v, columnsOf(et), nil
}

func rowValue(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// FormatValue renders one cell; decimals always carry two places
func FormatValue(v reflect.Value) string {
	if !v.IsValid() {
		return ""
	}
	switch v.Type() {
	case decimalType:
		return v.Interface().(decimal.Decimal).StringFixed(2)
	case durationType:
		return fmt.Sprintf("%.6f", v.Interface().(time.Duration).Seconds())
	}
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return ""
		}
		return FormatValue(v.Elem())
	}
	return fmt.Sprint(v.Interface())
}

// Headers returns the column names of a row slice
func Headers(rows any) ([]string, error) {
	_, cols, err := inspect(rows)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.name
	}
	return names, nil
}

// Records returns every row as formatted cells, in column order
func Records(rows any) ([][]string, error) {
	v, cols, err := inspect(rows)
	if err != nil {
		return nil, err
	}
	records := make([][]string, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		row := rowValue(v.Index(i))
		record := make([]string, len(cols))
		if row.IsValid() {
			for j, c := range cols {
				record[j] = FormatValue(row.FieldByIndex(c.index))
			}
		}
		records = append(records, record)
	}
	return records, nil
}

// Table renders rows as left aligned text columns under a header line
func Table(rows any) string {
	headers, err := Headers(rows)
	if err != nil {
		return fmt.Sprint(rows)
	}
	records, _ := Records(rows)

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, r := range records {
		for i, cell := range r {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	writeLine := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				b.WriteString(" | ")
			}
			if i == len(cells)-1 {
				b.WriteString(cell)
			} else {
				b.WriteString(runewidth.FillRight(cell, widths[i]))
			}
		}
		b.WriteByte('\n')
	}

	writeLine(headers)
	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	writeLine(sep)
	for _, r := range records {
		writeLine(r)
	}
	fmt.Fprintf(&b, "(%d rows)\n", len(records))
	return b.String()
}

// Stringify renders rows compactly as a list of tuples
func Stringify(rows any) string {
	records, err := Records(rows)
	if err != nil {
		return fmt.Sprint(rows)
	}
	parts := make([]string, len(records))
	for i, r := range records {
		parts[i] = "(" + strings.Join(r, ", ") + ")"
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// cellValue keeps numbers numeric in the workbook
func cellValue(v reflect.Value) any {
	if !v.IsValid() {
		return ""
	}
	switch v.Type() {
	case decimalType:
		return v.Interface().(decimal.Decimal).InexactFloat64()
	case durationType:
		return v.Interface().(time.Duration).Seconds()
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint()
	case reflect.Float32, reflect.Float64:
		return v.Float()
	case reflect.Bool:
		return v.Bool()
	case reflect.Pointer:
		if v.IsNil() {
			return ""
		}
		return cellValue(v.Elem())
	}
	return FormatValue(v)
}

// WriteSheet writes a header row and one row per element into sheet, creating it when missing
func WriteSheet(f *excelize.File, sheet string, rows any) error {
	v, cols, err := inspect(rows)
	if err != nil {
		return err
	}

	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return fmt.Errorf("failed to look up sheet %s: %w", sheet, err)
	}
	if idx == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}
	}

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.name
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header of sheet %s: %w", sheet, err)
	}

	for ri := 0; ri < v.Len(); ri++ {
		row := rowValue(v.Index(ri))
		record := make([]any, len(cols))
		for j, c := range cols {
			if row.IsValid() {
				record[j] = cellValue(row.FieldByIndex(c.index))
			}
		}
		cellRef, _ := excelize.CoordinatesToCellName(1, ri+2)
		if err := f.SetSheetRow(sheet, cellRef, &record); err != nil {
			return fmt.Errorf("failed to write row %d of sheet %s: %w", ri+1, sheet, err)
		}
	}
	return nil
}

// SanitizeSheetName strips characters a sheet name cannot hold and keeps it within 31 characters
func SanitizeSheetName(name string) string {
	replacer := strings.NewReplacer(":", "_", "\\", "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_")
	safe := strings.TrimSpace(replacer.Replace(name))
	if r := []rune(safe); len(r) > 31 {
		safe = string(r[:31])
	}
	if safe == "" {
		return "Sheet"
	}
	return safe
}
