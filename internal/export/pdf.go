package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// Page layout constants (A4 portrait in mm).
const (
	pdfMarginLeft  = 15.0
	pdfMarginTop   = 15.0
	pdfContentW    = 210.0 - 2*pdfMarginLeft
	pdfRowH        = 6.0
	pdfColQty      = 22.0
	pdfColUnit     = 28.0
	pdfColTotal    = 30.0
	pdfColName     = pdfContentW - pdfColQty - pdfColUnit - pdfColTotal
	pdfSummaryLabW = 70.0
)

// PDF writes the quote as a single-column A4 document.
func PDF(w io.Writer, doc Document) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginLeft)
	pdf.SetAutoPageBreak(true, pdfMarginTop)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	title := "Quote"
	if doc.Name != "" {
		title += ": " + doc.Name
	}
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(pdfContentW, 10, tr(title), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, r := range doc.Building {
		summaryRow(pdf, tr, r, false)
	}

	for _, s := range doc.Sections {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetFillColor(230, 230, 230)
		pdf.CellFormat(pdfColName, pdfRowH+1, tr(s.Label), "B", 0, "L", true, 0, "")
		pdf.CellFormat(pdfColQty, pdfRowH+1, "Qty", "B", 0, "R", true, 0, "")
		pdf.CellFormat(pdfColUnit, pdfRowH+1, "Unit", "B", 0, "R", true, 0, "")
		pdf.CellFormat(pdfColTotal, pdfRowH+1, "Total", "B", 1, "R", true, 0, "")

		pdf.SetFont("Helvetica", "", 9)
		for _, l := range s.Lines {
			pdf.CellFormat(pdfColName, pdfRowH, tr(l.Name), "", 0, "L", false, 0, "")
			pdf.CellFormat(pdfColQty, pdfRowH, Quantity(l.Quantity), "", 0, "R", false, 0, "")
			pdf.CellFormat(pdfColUnit, pdfRowH, Money(l.UnitPrice), "", 0, "R", false, 0, "")
			pdf.CellFormat(pdfColTotal, pdfRowH, Money(l.Total), "", 1, "R", false, 0, "")
		}
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(pdfContentW-pdfColTotal, pdfRowH, "Subtotal", "T", 0, "R", false, 0, "")
		pdf.CellFormat(pdfColTotal, pdfRowH, Money(s.Subtotal), "T", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 10)
	for _, r := range doc.Rollup {
		summaryRow(pdf, tr, r, true)
	}
	pdf.SetFont("Helvetica", "B", 12)
	summaryRow(pdf, tr, Row{Label: "Final price", Value: Money(doc.FinalPrice)}, true)

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(pdfContentW, 5, "Assumptions (not included in the total)", "", 1, "L", false, 0, "")
	for _, r := range doc.Assumptions {
		summaryRow(pdf, tr, r, false)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

func summaryRow(pdf *fpdf.Fpdf, tr func(string) string, r Row, alignRight bool) {
	align := "L"
	if alignRight {
		align = "R"
	}
	pdf.CellFormat(pdfSummaryLabW, 5, tr(r.Label), "", 0, "L", false, 0, "")
	pdf.CellFormat(pdfContentW-pdfSummaryLabW, 5, tr(r.Value), "", 1, align, false, 0, "")
}
