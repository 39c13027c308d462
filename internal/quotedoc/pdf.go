package quotedoc

import (
	"fmt"
	"io"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/hardwarehub/alucalc/internal/money"
)

// PDF writes a printable A4 quote. Core fonts cannot print the rupee sign, so
// amounts use money.FormatPlain.
func PDF(w io.Writer, q Quote, printedAt time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(q.ApprovedName, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Quotation: "+q.Title)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	for _, row := range [][2]string{
		{"Reference", q.Reference},
		{"Date", printedAt.Format("02 Jan 2006")},
		{"Item", q.ApprovedName},
		{"Size (H x W)", q.SizeDisplay},
		{"Thickness", q.Thickness},
		{"Glass", q.Glass},
		{"Area", fmt.Sprintf("%.2f sqft", q.Area)},
		{"Rates", q.RatesVersion},
	} {
		if row[1] == "" {
			continue
		}
		pdf.CellFormat(40, 6, row[0]+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(55, 8, "Component", "1", 0, "L", true, 0, "")
	pdf.CellFormat(45, 8, "Measure", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "Rate", "1", 0, "R", true, 0, "")
	pdf.CellFormat(50, 8, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, line := range q.Lines {
		pdf.CellFormat(55, 7, line.Label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 7, line.Detail, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, line.RateText(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(50, 7, plainAmount(line), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(130, 8, "Base Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(50, 8, money.FormatPlain(q.Total), "1", 1, "R", false, 0, "")
	pdf.CellFormat(130, 8, "Total with Add-ons", "1", 0, "R", false, 0, "")
	pdf.CellFormat(50, 8, money.FormatPlain(q.Total+q.AddonsTotal), "1", 1, "R", false, 0, "")

	comparePDF(pdf, q)

	for _, warning := range q.Warnings {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, warning, "", "L", false)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render quote pdf: %w", err)
	}
	return nil
}

// comparePDF prints the per-thickness rate comparison of lines whose rate
// depends on thickness.
func comparePDF(pdf *gofpdf.Fpdf, q Quote) {
	if len(q.ThicknessLabels) == 0 {
		return
	}
	width := 120 / float64(len(q.ThicknessLabels))

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Thickness comparison")
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(60, 8, "Item", "1", 0, "L", true, 0, "")
	for i, label := range q.ThicknessLabels {
		ln := 0
		if i == len(q.ThicknessLabels)-1 {
			ln = 1
		}
		pdf.CellFormat(width, 8, label, "1", ln, "C", true, 0, "")
	}

	pdf.SetFont("Helvetica", "", 11)
	for _, line := range q.Lines {
		if len(line.Compare) == 0 {
			continue
		}
		pdf.CellFormat(60, 7, line.Label, "1", 0, "L", false, 0, "")
		for i, c := range line.Compare {
			text := rateText(c.Rate)
			if c.Current {
				text = plainAmount(line)
			}
			ln := 0
			if i == len(line.Compare)-1 {
				ln = 1
			}
			pdf.CellFormat(width, 7, text, "1", ln, "C", false, 0, "")
		}
	}
}

func plainAmount(line Line) string {
	if !line.Selected {
		return "Not Selected"
	}
	return money.FormatPlain(line.Amount)
}
