package report

import (
	"fmt"
	"os"

	"github.com/go-pdf/fpdf"
)

// MenuPDF renders the takeout menu as a letter-size two-column PDF and writes
// it to path. logoPath, when non-empty and readable, is placed above the
// restaurant name.
func MenuPDF(layout MenuLayout, logoPath, path string) error {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(12, 12, 12)
	pdf.SetAutoPageBreak(false, 12)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	contentW := pageW - 24

	y := 12.0
	if logoPath != "" {
		if _, err := os.Stat(logoPath); err == nil {
			logoW := 40.0
			pdf.ImageOptions(logoPath, (pageW-logoW)/2, y, logoW, 0, false,
				fpdf.ImageOptions{ReadDpi: true}, 0, "")
			y += 24
		}
	}

	pdf.SetY(y)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(contentW, 10, layout.Restaurant.RestaurantName, "", 1, "C", false, 0, "")
	if layout.Restaurant.RestaurantTagline != "" {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(contentW, 6, layout.Restaurant.RestaurantTagline, "", 1, "C", false, 0, "")
	}
	pdf.Ln(2)
	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(3)

	// Two columns, filled top to bottom then left to right.
	colW := (contentW - 8) / 2
	colX := [2]float64{12, 12 + colW + 8}
	topY := pdf.GetY()
	bottomY := pageH - 30
	col := 0
	pdf.SetXY(colX[col], topY)

	nextLine := func(h float64) {
		if pdf.GetY()+h > bottomY {
			col++
			if col > 1 {
				pdf.AddPage()
				col = 0
				topY = 12
			}
			pdf.SetXY(colX[col], topY)
		} else {
			pdf.SetX(colX[col])
		}
	}

	for _, groupName := range layout.GroupOrder {
		items := layout.Groups[groupName]
		if len(items) == 0 {
			continue
		}

		nextLine(8)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(colW, 7, groupName, "B", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 9)
		for _, item := range items {
			nextLine(5)
			name := truncateName(item.Name, 38)
			if layout.ShowPrices && item.FormattedPrice != "" {
				pdf.CellFormat(colW*0.78, 5, name, "", 0, "L", false, 0, "")
				pdf.CellFormat(colW*0.22, 5, item.FormattedPrice, "", 1, "R", false, 0, "")
			} else {
				pdf.CellFormat(colW, 5, name, "", 1, "L", false, 0, "")
			}
		}
		nextLine(3)
		pdf.Ln(3)
	}

	// Footer on the last page
	pdf.SetY(pageH - 24)
	pdf.SetFont("Helvetica", "", 8)
	for _, line := range []string{
		layout.Restaurant.RestaurantAddress,
		layout.Restaurant.RestaurantPhone,
		layout.Restaurant.RestaurantWebsite,
	} {
		if line != "" {
			pdf.CellFormat(contentW, 4, line, "", 1, "C", false, 0, "")
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("writing menu pdf: %w", err)
	}
	return nil
}

// truncateName shortens a name to max runes, never splitting a multibyte
// character.
func truncateName(name string, max int) string {
	runes := []rune(name)
	if len(runes) <= max {
		return name
	}
	return string(runes[:max-1]) + "..."
}
