package export

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	quoteSheet   = "Quote"
	moneyNumFmt  = `"$"#,##0.00`
	qtyNumFmt    = "#,##0.##"
	xlsxNameColW = 42
)

type xlsxWriter struct {
	f      *excelize.File
	row    int
	bold   int
	money  int
	qty    int
	header int
	err    error
}

// XLSX writes the quote as a one-sheet workbook with numeric cells.
func XLSX(w io.Writer, doc Document) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", quoteSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	x := &xlsxWriter{f: f, row: 1}
	if err := x.styles(); err != nil {
		return err
	}
	if err := f.SetColWidth(quoteSheet, "A", "A", xlsxNameColW); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if err := f.SetColWidth(quoteSheet, "B", "D", 16); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	title := "Quote"
	if doc.Name != "" {
		title += ": " + doc.Name
	}
	x.cells(x.bold, title)
	for _, r := range doc.Building {
		x.cells(0, r.Label, r.Value)
	}

	for _, s := range doc.Sections {
		x.row++
		x.cells(x.header, s.Label, "Qty", "Unit", "Total")
		for _, l := range s.Lines {
			x.line(l.Name, l.Quantity, l.UnitPrice, l.Total)
		}
		x.total("Subtotal", s.Subtotal)
	}

	x.row++
	for _, r := range doc.Rollup {
		x.cells(0, r.Label, r.Value)
	}
	x.total("Final price", doc.FinalPrice)

	x.row++
	x.cells(x.bold, "Assumptions (not included in the total)")
	for _, r := range doc.Assumptions {
		x.cells(0, r.Label, r.Value)
	}

	if x.err != nil {
		return x.err
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func (x *xlsxWriter) styles() error {
	var err error
	if x.bold, err = x.f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	money := moneyNumFmt
	if x.money, err = x.f.NewStyle(&excelize.Style{CustomNumFmt: &money}); err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	qty := qtyNumFmt
	if x.qty, err = x.f.NewStyle(&excelize.Style{CustomNumFmt: &qty}); err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	x.header, err = x.f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E6E6E6"}},
	})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	return nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// set records the first cell error; later writes become no-ops.
func (x *xlsxWriter) set(err error) {
	if x.err == nil && err != nil {
		x.err = fmt.Errorf("write cell on row %d: %w", x.row, err)
	}
}

func (x *xlsxWriter) str(col int, v string) {
	if x.err == nil {
		x.set(x.f.SetCellStr(quoteSheet, cell(col, x.row), v))
	}
}

func (x *xlsxWriter) num(col int, v decimal.Decimal, prec int) {
	if x.err == nil {
		x.set(x.f.SetCellFloat(quoteSheet, cell(col, x.row), v.Round(2).InexactFloat64(), prec, 64))
	}
}

func (x *xlsxWriter) style(from, to, style int) {
	if x.err == nil {
		x.set(x.f.SetCellStyle(quoteSheet, cell(from, x.row), cell(to, x.row), style))
	}
}

// cells writes string values across the current row. A zero style leaves
// the default.
func (x *xlsxWriter) cells(style int, values ...string) {
	for i, v := range values {
		x.str(i+1, v)
	}
	if style != 0 {
		x.style(1, len(values), style)
	}
	x.row++
}

func (x *xlsxWriter) line(name string, qty, unit, total decimal.Decimal) {
	x.str(1, name)
	x.num(2, qty, -1)
	x.num(3, unit, 2)
	x.num(4, total, 2)
	x.style(2, 2, x.qty)
	x.style(3, 4, x.money)
	x.row++
}

func (x *xlsxWriter) total(label string, v decimal.Decimal) {
	x.str(1, label)
	x.num(4, v, 2)
	x.style(1, 1, x.bold)
	x.style(4, 4, x.money)
	x.row++
}
