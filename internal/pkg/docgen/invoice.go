package docgen

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/divan/num2words"
	"github.com/jung-kurt/gofpdf"
)

const gstRate = 0.18

// InvoiceData carries everything printed on an invoice PDF
type InvoiceData struct {
	InvoiceNo   string
	Date        time.Time
	BilledTo    string
	Email       string
	Description string
	Total       float64 // GST-inclusive
}

// SplitGST decomposes a GST-inclusive total into base and tax parts.
// Both parts are rounded to two decimals and always sum to the total.
func SplitGST(total float64) (base, gst float64) {
	gst = round2(total - total/(1+gstRate))
	base = round2(total - gst)
	return base, gst
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// AmountInWords spells out a rupee amount, e.g. "one thousand rupees only"
func AmountInWords(v float64) string {
	whole := int(math.Floor(v))
	words := strings.TrimSpace(num2words.Convert(whole))
	paise := int(math.Round((v - float64(whole)) * 100))
	if paise > 0 {
		return fmt.Sprintf("%s rupees and %s paise only", words, strings.TrimSpace(num2words.Convert(paise)))
	}
	return words + " rupees only"
}

// WriteInvoicePDF renders an A4 invoice to w
func WriteInvoicePDF(w io.Writer, data InvoiceData) error {
	base, gst := SplitGST(data.Total)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+data.InvoiceNo, false)
	pdf.AddPage()

	// Header band
	pdf.SetFillColor(41, 77, 155)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetXY(12, 8)
	pdf.CellFormat(0, 10, "TalentDesk", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(12, 17)
	pdf.CellFormat(0, 6, "TAX INVOICE", "", 1, "L", false, 0, "")

	pdf.SetTextColor(33, 33, 33)
	pdf.SetXY(12, 36)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(95, 6, "Invoice No: "+data.InvoiceNo, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Date: "+data.Date.Format("02 Jan 2006"), "", 1, "R", false, 0, "")

	pdf.Ln(4)
	pdf.SetX(12)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, "Billed To", "", 1, "L", false, 0, "")
	pdf.SetX(12)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, data.BilledTo, "", 1, "L", false, 0, "")
	if data.Email != "" {
		pdf.SetX(12)
		pdf.CellFormat(0, 5, data.Email, "", 1, "L", false, 0, "")
	}

	// Line item table
	pdf.Ln(8)
	pdf.SetX(12)
	pdf.SetFillColor(235, 239, 248)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(136, 8, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(50, 8, "Amount (INR)", "1", 1, "R", true, 0, "")

	pdf.SetX(12)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(136, 8, data.Description, "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, fmt.Sprintf("%.2f", base), "1", 1, "R", false, 0, "")

	rows := []struct {
		label string
		value float64
		bold  bool
	}{
		{"Taxable Value", base, false},
		{"GST (18%)", gst, false},
		{"Total", data.Total, true},
	}
	for _, row := range rows {
		pdf.SetX(12)
		if row.bold {
			pdf.SetFont("Helvetica", "B", 10)
		} else {
			pdf.SetFont("Helvetica", "", 10)
		}
		pdf.CellFormat(136, 8, row.label, "1", 0, "R", false, 0, "")
		pdf.CellFormat(50, 8, fmt.Sprintf("%.2f", row.value), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetX(12)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, "Amount in words: "+AmountInWords(data.Total), "", 1, "L", false, 0, "")

	pdf.SetY(-30)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 5, "This is a computer generated invoice and does not require a signature.", "", 1, "C", false, 0, "")

	return pdf.Output(w)
}
