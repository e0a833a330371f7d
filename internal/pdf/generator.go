package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/runsheet/logistics-data/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	// Report content is ASCII, the built-in core font suffices.
	return &Generator{fontName: "Helvetica"}
}

// Generate renders the fleet operations report as a single-page landscape
// document: the summary block followed by the per-truck table.
func (g *Generator) Generate(report model.FleetReport) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, "Fleet Operations Report", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s", formatDateTime(report.GeneratedAt)), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Operational state: %s", stateLabel(report.State)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	summaryLines := []string{
		fmt.Sprintf("Total trucks: %d", report.Summary.TotalTrucks),
		fmt.Sprintf("Active: %d, on time: %d, delayed: %d",
			report.Summary.ActiveTrucks, report.Summary.OnTimeTrucks, report.Summary.DelayedTrucks),
		fmt.Sprintf("Average delay: %.1f min", report.Summary.AverageDelay),
	}
	for _, line := range summaryLines {
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Fleet", "", 1, "L", false, 0, "")

	headers := []string{"Truck", "Driver", "Status", "From", "To", "Km", "ETA", "Cargo"}
	colWidths := []float64{24, 36, 22, 42, 42, 14, 34, 52}
	drawTableRow(pdf, g.fontName, headers, colWidths, true)

	for _, truck := range report.Trucks {
		row := []string{
			truck.TruckID,
			truck.DriverName,
			statusLabel(truck.Status),
			truck.CurrentLocation.Name,
			truck.Destination.Name,
			fmt.Sprintf("%.0f", truck.Route.Distance),
			formatDateTime(truck.EstimatedArrival),
			cargoLabel(truck.Cargo),
		}
		drawTableRow(pdf, g.fontName, row, colWidths, false)
	}

	if report.Summary.DelayedTrucks > report.Summary.OnTimeTrucks {
		pdf.Ln(4)
		pdf.SetTextColor(200, 0, 0)
		pdf.MultiCell(0, 6, "Attention: more trucks are delayed than on time.", "", "L", false)
		pdf.SetTextColor(0, 0, 0)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 9)
	for i, col := range cols {
		align := "L"
		if i == 5 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func stateLabel(state model.DemoState) string {
	return strings.ReplaceAll(string(state), "_", " ")
}

func statusLabel(status string) string {
	return strings.ReplaceAll(status, "_", " ")
}

func cargoLabel(cargo *model.Cargo) string {
	if cargo == nil {
		return ""
	}
	return fmt.Sprintf("%s (%.0f kg)", cargo.Type, cargo.Weight)
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}
