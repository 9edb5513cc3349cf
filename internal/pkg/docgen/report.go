package docgen

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// Table is a generic dataset for report exports
type Table struct {
	Title   string
	Headers []string
	Rows    [][]interface{}
}

// WriteXLSX renders the table as a spreadsheet to w
func WriteXLSX(w io.Writer, table Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	if table.Title != "" {
		if err := f.SetSheetName(sheet, table.Title); err == nil {
			sheet = table.Title
		}
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"EBEFF8"}},
	})
	if err != nil {
		return err
	}

	for col, header := range table.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}
	if len(table.Headers) > 0 {
		first, _ := excelize.CoordinatesToCellName(1, 1)
		last, _ := excelize.CoordinatesToCellName(len(table.Headers), 1)
		if err := f.SetCellStyle(sheet, first, last, style); err != nil {
			return err
		}
	}

	for i, row := range table.Rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	_, err = f.WriteTo(w)
	return err
}

// WriteTablePDF renders the table as a landscape A4 PDF to w
func WriteTablePDF(w io.Writer, table Table) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(table.Title, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, table.Title, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	if len(table.Headers) == 0 {
		return pdf.Output(w)
	}
	colWidth := 277.0 / float64(len(table.Headers))

	pdf.SetFillColor(235, 239, 248)
	pdf.SetFont("Helvetica", "B", 9)
	for _, header := range table.Headers {
		pdf.CellFormat(colWidth, 8, header, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range table.Rows {
		for _, value := range row {
			pdf.CellFormat(colWidth, 7, fmt.Sprintf("%v", value), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}
