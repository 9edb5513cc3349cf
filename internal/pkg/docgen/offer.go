package docgen

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// OfferData carries the fields printed on an offer letter
type OfferData struct {
	CandidateName string
	Position      string
	CTC           float64
	JoiningDate   *time.Time
	Date          time.Time
}

// WriteOfferPDF renders an offer letter to w
func WriteOfferPDF(w io.Writer, data OfferData) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Offer Letter", false)
	pdf.AddPage()

	pdf.SetFillColor(41, 77, 155)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(12, 9)
	pdf.CellFormat(0, 10, "TalentDesk", "", 1, "L", false, 0, "")

	pdf.SetTextColor(33, 33, 33)
	pdf.SetXY(12, 38)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, data.Date.Format("02 Jan 2006"), "", 1, "R", false, 0, "")

	pdf.Ln(4)
	pdf.SetX(12)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, "Offer of Employment", "", 1, "L", false, 0, "")

	pdf.Ln(2)
	pdf.SetX(12)
	pdf.SetFont("Helvetica", "", 11)
	body := fmt.Sprintf(
		"Dear %s,\n\nWe are pleased to offer you the position of %s at TalentDesk. "+
			"Your annual compensation will be INR %.2f (%s).",
		data.CandidateName, data.Position, data.CTC, AmountInWords(data.CTC))
	if data.JoiningDate != nil {
		body += fmt.Sprintf("\n\nYour expected date of joining is %s.", data.JoiningDate.Format("02 Jan 2006"))
	}
	body += "\n\nPlease confirm your acceptance by replying to this letter. We look forward to working with you.\n\nSincerely,\nThe TalentDesk Team"
	pdf.MultiCell(186, 6, body, "", "L", false)

	return pdf.Output(w)
}
