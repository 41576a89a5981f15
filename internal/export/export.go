// Package export renders report tables as CSV or SpreadsheetML 2003 workbooks.
package export

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bookstore/bookstore-admin/internal/domain/model"
	"github.com/bookstore/bookstore-admin/internal/util"
)

// Format is an export file format.
type Format string

const (
	FormatCSV         Format = "csv"
	FormatSpreadsheet Format = "xls"
)

// ParseFormat normalizes a format name. "excel" and "xml" select the workbook.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "csv":
		return FormatCSV, nil
	case "xls", "excel", "xml":
		return FormatSpreadsheet, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (want csv or xls)", s)
	}
}

// Extension returns the file extension including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatSpreadsheet {
		return "application/vnd.ms-excel"
	}
	return "text/csv;charset=utf-8"
}

// Cell is one value in a table. Numeric cells are written unquoted in CSV
// and typed Number in workbooks.
type Cell struct {
	Value   string
	Numeric bool
}

// Text returns a string cell.
func Text(s string) Cell { return Cell{Value: s} }

// Number returns a numeric cell.
func Number(s string) Cell { return Cell{Value: s, Numeric: true} }

// Table is a titled grid of cells.
type Table struct {
	Sheet   string
	Columns []string
	Rows    [][]Cell
}

// Write renders t to w in format f.
func Write(w io.Writer, f Format, t Table) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, t)
	case FormatSpreadsheet:
		return WriteSpreadsheet(w, t)
	default:
		return fmt.Errorf("unsupported export format %q", f)
	}
}

const utf8BOM = "\ufeff"

// WriteCSV writes t as CSV prefixed with a UTF-8 byte order mark.
// Headers and text cells are always quoted; rows end with "\n".
func WriteCSV(w io.Writer, t Table) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(utf8BOM); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	header := make([]Cell, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = Text(c)
	}
	if err := writeCSVRow(bw, header); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		if err := writeCSVRow(bw, row); err != nil {
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func writeCSVRow(bw *bufio.Writer, row []Cell) error {
	for i, c := range row {
		if i > 0 {
			if err := bw.WriteByte(','); err != nil {
				return fmt.Errorf("write csv: %w", err)
			}
		}
		v := c.Value
		if !c.Numeric {
			v = `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
		}
		if _, err := bw.WriteString(v); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	return nil
}

const (
	spreadsheetHeader = `<?xml version="1.0"?><?mso-application progid="Excel.Sheet"?>`
	workbookOpen      = `<Workbook xmlns="urn:schemas-microsoft-com:office:spreadsheet" ` +
		`xmlns:ss="urn:schemas-microsoft-com:office:spreadsheet">`
	workbookClose = `</Workbook>`
	defaultSheet  = "Sheet1"
)

// xmlWriter keeps the first write error so markup can be emitted without per-call checks.
type xmlWriter struct {
	w   *bufio.Writer
	err error
}

func (x *xmlWriter) raw(s string) {
	if x.err == nil {
		_, x.err = x.w.WriteString(s)
	}
}

func (x *xmlWriter) text(s string) {
	if x.err == nil {
		x.err = xml.EscapeText(x.w, []byte(s))
	}
}

func (x *xmlWriter) row(cells []Cell) {
	x.raw("<Row>")
	for _, c := range cells {
		typ := "String"
		if c.Numeric {
			typ = "Number"
		}
		x.raw(`<Cell><Data ss:Type="` + typ + `">`)
		x.text(c.Value)
		x.raw("</Data></Cell>")
	}
	x.raw("</Row>")
}

// WriteSpreadsheet writes t as a single-sheet SpreadsheetML 2003 workbook.
func WriteSpreadsheet(w io.Writer, t Table) error {
	x := &xmlWriter{w: bufio.NewWriter(w)}
	sheet := t.Sheet
	if strings.TrimSpace(sheet) == "" {
		sheet = defaultSheet
	}
	x.raw(spreadsheetHeader)
	x.raw(workbookOpen)
	x.raw(`<Worksheet ss:Name="`)
	x.text(sheet)
	x.raw(`"><Table>`)

	header := make([]Cell, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = Text(c)
	}
	x.row(header)
	for _, r := range t.Rows {
		x.row(r)
	}
	x.raw(`</Table></Worksheet>`)
	x.raw(workbookClose)
	if x.err == nil {
		x.err = x.w.Flush()
	}
	if x.err != nil {
		return fmt.Errorf("write workbook: %w", x.err)
	}
	return nil
}

// TransactionColumns are the headers of a ledger export.
var TransactionColumns = []string{"Date", "Type", "Amount", "Description", "Reference"}

// Transactions formats ledger entries as an export table.
func Transactions(txns []model.Transaction) Table {
	rows := make([][]Cell, 0, len(txns))
	for _, t := range txns {
		date := ""
		if !t.TransactionDate.IsZero() {
			date = t.TransactionDate.Format(util.DateTimeLayout)
		}
		rows = append(rows, []Cell{
			Text(date),
			Text(t.TransactionType.Label()),
			Number(t.Amount.String()),
			Text(t.Description),
			Text(t.ReferenceNumber),
		})
	}
	return Table{Sheet: "Transactions", Columns: TransactionColumns, Rows: rows}
}

// TopBooks formats the best sellers report as an export table.
func TopBooks(books []model.TopBook) Table {
	rows := make([][]Cell, 0, len(books))
	for i, b := range books {
		rows = append(rows, []Cell{
			Number(strconv.Itoa(i + 1)),
			Text(b.ISBN),
			Text(b.Name),
			Text(b.Author),
			Number(strconv.Itoa(b.TotalQuantity)),
			Number(b.TotalRevenue.String()),
		})
	}
	return Table{
		Sheet:   "Top Books",
		Columns: []string{"Rank", "ISBN", "Name", "Author", "Quantity", "Revenue"},
		Rows:    rows,
	}
}

// TrendPoints formats the sales trend report as an export table.
func TrendPoints(points []model.TrendPoint) Table {
	rows := make([][]Cell, 0, len(points))
	for _, p := range points {
		rows = append(rows, []Cell{
			Text(p.Period),
			Number(p.Income.String()),
			Number(p.Expense.String()),
			Number((p.Income - p.Expense).String()),
		})
	}
	return Table{
		Sheet:   "Sales Trend",
		Columns: []string{"Period", "Income", "Expense", "Profit"},
		Rows:    rows,
	}
}

// Categories formats the revenue-by-category report as an export table.
func Categories(cats []model.CategoryRevenue) Table {
	rows := make([][]Cell, 0, len(cats))
	for _, c := range cats {
		rows = append(rows, []Cell{
			Text(c.Category),
			Number(strconv.Itoa(c.TotalQuantity)),
			Number(c.TotalRevenue.String()),
		})
	}
	return Table{
		Sheet:   "Revenue by Category",
		Columns: []string{"Category", "Quantity", "Revenue"},
		Rows:    rows,
	}
}

// Filename builds "<base>.<ext>" for f.
func Filename(base string, f Format) string {
	base = strings.TrimSpace(base)
	if base == "" {
		base = "export"
	}
	return base + f.Extension()
}
