package docgen

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/edupro/talentdesk/internal/app/models"
	"github.com/edupro/talentdesk/internal/pkg/helpers"
)

// PayslipData pairs a payslip snapshot with employee display details
type PayslipData struct {
	EmployeeName string
	EmployeeNo   string
	Designation  string
	Payslip      models.Payslip
}

// WritePayslipPDF renders an A4 payslip to w
func WritePayslipPDF(w io.Writer, data PayslipData) error {
	p := data.Payslip

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payslip "+p.Month, false)
	pdf.AddPage()

	pdf.SetFillColor(41, 77, 155)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(12, 8)
	pdf.CellFormat(0, 10, "TalentDesk", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(12, 17)
	pdf.CellFormat(0, 6, "Payslip for "+helpers.MonthLabel(p.Month), "", 1, "L", false, 0, "")

	pdf.SetTextColor(33, 33, 33)
	pdf.SetXY(12, 36)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(95, 6, "Employee: "+data.EmployeeName, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Employee No: "+data.EmployeeNo, "", 1, "R", false, 0, "")
	if data.Designation != "" {
		pdf.SetX(12)
		pdf.CellFormat(0, 6, "Designation: "+data.Designation, "", 1, "L", false, 0, "")
	}

	writeSection := func(title string, lines []models.PayslipLine, total float64) {
		pdf.Ln(6)
		pdf.SetX(12)
		pdf.SetFillColor(235, 239, 248)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(136, 8, title, "1", 0, "L", true, 0, "")
		pdf.CellFormat(50, 8, "Amount (INR)", "1", 1, "R", true, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, line := range lines {
			pdf.SetX(12)
			pdf.CellFormat(136, 7, line.Name, "1", 0, "L", false, 0, "")
			pdf.CellFormat(50, 7, fmt.Sprintf("%.2f", line.Amount), "1", 1, "R", false, 0, "")
		}
		pdf.SetX(12)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(136, 7, "Total "+title, "1", 0, "R", false, 0, "")
		pdf.CellFormat(50, 7, fmt.Sprintf("%.2f", total), "1", 1, "R", false, 0, "")
	}

	earnings := append([]models.PayslipLine{{Name: "Basic", Amount: p.Basic}}, p.Earnings...)
	writeSection("Earnings", earnings, p.Gross)
	writeSection("Deductions", p.Deductions, p.TotalDeduct)

	pdf.Ln(6)
	pdf.SetX(12)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(136, 9, "Net Pay", "1", 0, "R", false, 0, "")
	pdf.CellFormat(50, 9, fmt.Sprintf("%.2f", p.Net), "1", 1, "R", false, 0, "")

	pdf.SetX(12)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 8, "In words: "+AmountInWords(p.Net), "", 1, "L", false, 0, "")

	pdf.SetY(-30)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 5, "This is a computer generated payslip and does not require a signature.", "", 1, "C", false, 0, "")

	return pdf.Output(w)
}
