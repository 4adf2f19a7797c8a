package export

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Simplici0/framequote/internal/catalog"
	"github.com/Simplici0/framequote/internal/estimate"
	"github.com/Simplici0/framequote/internal/geometry"
)

func referenceState(t *testing.T) estimate.State {
	t.Helper()
	ctx := context.Background()
	logger, _ := test.NewNullLogger()
	eng := estimate.NewEngine(catalog.NewMemoryPrices(), logger)
	s, err := eng.New(ctx, "machine shed")
	require.NoError(t, err)
	s, err = eng.ApplyAll(ctx, s,
		estimate.SetDimensions{Dimensions: geometry.Dimensions{Width: 40, Length: 50, Height: 16}},
		estimate.ToggleItem{ItemID: 14},
	)
	require.NoError(t, err)
	return s
}

func TestMoney(t *testing.T) {
	tests := map[string]string{
		"0":          "$0.00",
		"12.345":     "$12.35",
		"999.994":    "$999.99",
		"1234.5":     "$1,234.50",
		"37695":      "$37,695.00",
		"1234567.89": "$1,234,567.89",
		"-1500":      "-$1,500.00",
	}
	for in, want := range tests {
		assert.Equal(t, want, Money(decimal.RequireFromString(in)), in)
	}
}

func TestBuild_GroupsVisibleEnabledRows(t *testing.T) {
	s := referenceState(t)
	doc := Build(s)
	result := s.Rollup()

	require.NotEmpty(t, doc.Sections)
	assert.Equal(t, catalog.CategoryFraming, doc.Sections[0].Category)

	sum := decimal.Zero
	for _, sec := range doc.Sections {
		assert.True(t, sec.Subtotal.Equal(result.Subtotal(sec.Category)), sec.Label)
		lines := decimal.Zero
		for _, l := range sec.Lines {
			assert.NotEqual(t, 14, l.ID, "disabled row exported")
			assert.NotEqual(t, catalog.IDPosts, l.ID, "hidden post row exported")
			lines = lines.Add(l.Total)
		}
		assert.True(t, lines.Equal(sec.Subtotal), sec.Label)
		sum = sum.Add(sec.Subtotal)
	}
	assert.True(t, sum.Equal(result.Breakdown.MaterialTotal.Add(result.Breakdown.TradesTotal)))
	assert.True(t, doc.FinalPrice.Equal(result.Totals.FinalPrice))
}

func TestBuild_PostFrameShowsPostsNotAddOns(t *testing.T) {
	s := referenceState(t)
	logger, _ := test.NewNullLogger()
	eng := estimate.NewEngine(catalog.NewMemoryPrices(), logger)
	s, err := eng.Apply(context.Background(), s, estimate.SetFrameType{FrameType: catalog.FramePost})
	require.NoError(t, err)

	var ids []int
	for _, sec := range Build(s).Sections {
		for _, l := range sec.Lines {
			ids = append(ids, l.ID)
		}
	}
	assert.Contains(t, ids, catalog.IDPosts)
	assert.NotContains(t, ids, 104)
	assert.NotContains(t, ids, catalog.IDStuds)
}

func TestText(t *testing.T) {
	doc := Build(referenceState(t))
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, doc))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "Quote: machine shed\n"))
	assert.Contains(t, out, "FRAMING")
	assert.Contains(t, out, "Floor area:")
	assert.Contains(t, out, "2000 sq ft")
	assert.Contains(t, out, "in overhang")
	assert.Contains(t, out, "FINAL PRICE:")
	assert.Contains(t, out, Money(doc.FinalPrice))
	assert.NotContains(t, out, "Door Handles")
}

func TestPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PDF(&buf, Build(referenceState(t))))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 1000)
}

func TestXLSX(t *testing.T) {
	doc := Build(referenceState(t))
	var buf bytes.Buffer
	require.NoError(t, XLSX(&buf, doc))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{quoteSheet}, f.GetSheetList())
	title, err := f.GetCellValue(quoteSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Quote: machine shed", title)

	rows, err := f.GetRows(quoteSheet)
	require.NoError(t, err)
	var found bool
	for _, r := range rows {
		if len(r) > 0 && r[0] == "Final price" {
			found = true
		}
	}
	assert.True(t, found, "final price row missing")
}

func TestXLSXWriter_KeepsFirstCellError(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	// The quote sheet was never created, so every write fails.
	x := &xlsxWriter{f: f, row: 1}
	x.cells(0, "Quote")
	x.line("Studs", decimal.NewFromInt(2), decimal.NewFromInt(3), decimal.NewFromInt(6))

	require.Error(t, x.err)
	assert.Contains(t, x.err.Error(), "row 1")
	assert.Equal(t, 3, x.row)
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, []string{"pdf", "txt", "xlsx"}, Extensions())
	for _, ext := range Extensions() {
		f, ok := FormatFor(ext)
		require.True(t, ok)
		assert.Equal(t, ext, f.Ext)
		assert.NotEmpty(t, f.ContentType)
	}
	_, ok := FormatFor("doc")
	assert.False(t, ok)
}
