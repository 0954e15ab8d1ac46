// Package export renders trip and expense data as downloadable documents.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"

	"travella-service/internal/domain/entity"
)

// TripExport bundles everything that goes into one export document.
type TripExport struct {
	Trips       []*entity.Trip
	Expenses    []*entity.Expense
	GeneratedAt time.Time
}

// RenderPDF writes the export as a PDF document
func RenderPDF(data TripExport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Travella Export")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Generated: %s", data.GeneratedAt.UTC().Format("2 Jan 2006 15:04 MST")))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, "Trips")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 11)
	if len(data.Trips) == 0 {
		pdf.Cell(0, 8, "No trips recorded")
		pdf.Ln(8)
	}
	for _, trip := range data.Trips {
		pdf.Cell(0, 8, fmt.Sprintf("%s - %s (%s)", trip.Title, trip.Destination, trip.Status))
		pdf.Ln(6)
		if trip.StartDate > 0 {
			pdf.SetFont("Arial", "I", 9)
			pdf.Cell(0, 6, fmt.Sprintf("    %s to %s", formatMillis(trip.StartDate), formatMillis(trip.EndDate)))
			pdf.SetFont("Arial", "", 11)
			pdf.Ln(6)
		}
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, "Expenses")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(70, 7, "Title", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Amount", "1", 0, "R", false, 0, "")
	pdf.CellFormat(20, 7, "Currency", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 7, "USD", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, "Category", "1", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	var totalUSD float64
	for _, exp := range data.Expenses {
		pdf.CellFormat(70, 7, exp.Title, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", exp.Amount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 7, exp.Currency, "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", exp.AmountUSD), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, exp.Category, "1", 1, "L", false, 0, "")
		totalUSD += exp.AmountUSD
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(120, 7, "Total (USD)", "1", 0, "R", false, 0, "")
	pdf.CellFormat(70, 7, fmt.Sprintf("%.2f", totalUSD), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func formatMillis(millis int64) string {
	if millis == 0 {
		return "?"
	}
	return time.UnixMilli(millis).UTC().Format("2 Jan 2006")
}
