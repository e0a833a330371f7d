package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/runsheet/logistics-data/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders a fleet operations report workbook: a summary sheet plus
// one sheet listing every truck.
func (g *Generator) Generate(report model.FleetReport) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Summary"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, report); err != nil {
		return nil, err
	}

	fleetSheet := "Fleet"
	file.NewSheet(fleetSheet)
	if err := g.writeFleet(file, fleetSheet, report); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, report model.FleetReport) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Fleet Operations Report")
	set("A2", "Generated")
	set("B2", formatDateTime(report.GeneratedAt))
	set("A3", "Operational State")
	set("B3", stateLabel(report.State))
	set("A5", "Total Trucks")
	set("B5", report.Summary.TotalTrucks)
	set("A6", "Active Trucks")
	set("B6", report.Summary.ActiveTrucks)
	set("A7", "On Time")
	set("B7", report.Summary.OnTimeTrucks)
	set("A8", "Delayed")
	set("B8", report.Summary.DelayedTrucks)
	set("A9", "Average Delay, min")
	set("B9", fmt.Sprintf("%.1f", report.Summary.AverageDelay))

	_ = file.SetColWidth(sheet, "A", "A", 28)
	_ = file.SetColWidth(sheet, "B", "B", 22)
	return nil
}

func (g *Generator) writeFleet(file *excelize.File, sheet string, report model.FleetReport) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{
		"Truck",
		"Driver",
		"Status",
		"Current Location",
		"Destination",
		"Route, km",
		"ETA",
		"Cargo",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}

	for i, truck := range report.Trucks {
		row := 2 + i
		set(fmt.Sprintf("A%d", row), truck.TruckID)
		set(fmt.Sprintf("B%d", row), truck.DriverName)
		set(fmt.Sprintf("C%d", row), statusLabel(truck.Status))
		set(fmt.Sprintf("D%d", row), truck.CurrentLocation.Name)
		set(fmt.Sprintf("E%d", row), truck.Destination.Name)
		set(fmt.Sprintf("F%d", row), fmt.Sprintf("%.0f", truck.Route.Distance))
		set(fmt.Sprintf("G%d", row), formatDateTime(truck.EstimatedArrival))
		set(fmt.Sprintf("H%d", row), cargoLabel(truck.Cargo))
	}

	_ = file.SetColWidth(sheet, "A", "B", 18)
	_ = file.SetColWidth(sheet, "C", "C", 12)
	_ = file.SetColWidth(sheet, "D", "E", 24)
	_ = file.SetColWidth(sheet, "F", "F", 10)
	_ = file.SetColWidth(sheet, "G", "G", 20)
	_ = file.SetColWidth(sheet, "H", "H", 36)
	return nil
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
	return t.Format("2006-01-02 15:04:05")
}
