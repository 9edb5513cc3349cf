package docgen

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitGST(t *testing.T) {
	base, gst := SplitGST(1180)
	assert.Equal(t, 1000.00, base)
	assert.Equal(t, 180.00, gst)

	base, gst = SplitGST(0)
	assert.Equal(t, 0.00, base)
	assert.Equal(t, 0.00, gst)
}

func TestSplitGSTPartsSumToTotal(t *testing.T) {
	for _, total := range []float64{1180, 999.99, 4500, 12345.67, 0.01} {
		base, gst := SplitGST(total)
		assert.InDelta(t, total, base+gst, 0.001, "total %.2f", total)
	}
}

func TestAmountInWords(t *testing.T) {
	assert.Equal(t, "one thousand rupees only", AmountInWords(1000))
	assert.Contains(t, AmountInWords(1000.50), "paise")
}

func TestWriteInvoicePDF(t *testing.T) {
	var buf bytes.Buffer
	err := WriteInvoicePDF(&buf, InvoiceData{
		InvoiceNo:   "INV-advance-0001",
		Date:        time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
		BilledTo:    "Asha Rao",
		Email:       "asha@example.com",
		Description: "advance payment for E-commerce Platform",
		Total:       11800,
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")), "output should be a PDF document")
}

func TestWriteTablePDFAndXLSX(t *testing.T) {
	table := Table{
		Title:   "Students",
		Headers: []string{"Name", "Email"},
		Rows: [][]interface{}{
			{"Asha Rao", "asha@example.com"},
			{"Ben Kim", "ben@example.com"},
		},
	}

	var pdfBuf bytes.Buffer
	require.NoError(t, WriteTablePDF(&pdfBuf, table))
	assert.True(t, bytes.HasPrefix(pdfBuf.Bytes(), []byte("%PDF")))

	var xlsxBuf bytes.Buffer
	require.NoError(t, WriteXLSX(&xlsxBuf, table))
	// XLSX files are zip archives
	assert.True(t, bytes.HasPrefix(xlsxBuf.Bytes(), []byte("PK")))
}
