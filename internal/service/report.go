package service

import (
	"context"
	"fmt"
	"time"

	"github.com/runsheet/logistics-data/internal/model"
)

type ExcelGenerator interface {
	Generate(report model.FleetReport) ([]byte, error)
}

type PDFGenerator interface {
	Generate(report model.FleetReport) ([]byte, error)
}

// StateProvider reports the platform's current operational state.
type StateProvider interface {
	CurrentState(ctx context.Context) (model.DemoStatus, error)
}

// ReportService assembles the fleet operations report and renders it through
// the pluggable generators.
type ReportService struct {
	data  *DataService
	state StateProvider
	excel ExcelGenerator
	pdf   PDFGenerator
	now   func() time.Time
}

func NewReportService(data *DataService, state StateProvider, excel ExcelGenerator, pdf PDFGenerator) *ReportService {
	return &ReportService{data: data, state: state, excel: excel, pdf: pdf, now: time.Now}
}

type ReportResult struct {
	FileName string
	Content  []byte
}

// Build assembles the report input from the current snapshot.
func (s *ReportService) Build(ctx context.Context) (model.FleetReport, error) {
	summary, err := s.data.FleetSummary(ctx)
	if err != nil {
		return model.FleetReport{}, err
	}
	trucks, err := s.data.Trucks(ctx, "")
	if err != nil {
		return model.FleetReport{}, err
	}
	status, err := s.state.CurrentState(ctx)
	if err != nil {
		return model.FleetReport{}, err
	}

	return model.FleetReport{
		GeneratedAt: s.now().UTC(),
		State:       status.State,
		Summary:     summary,
		Trucks:      trucks,
	}, nil
}

func (s *ReportService) GenerateExcel(ctx context.Context) (*ReportResult, error) {
	report, err := s.Build(ctx)
	if err != nil {
		return nil, err
	}
	content, err := s.excel.Generate(report)
	if err != nil {
		return nil, fmt.Errorf("render excel report: %w", err)
	}
	return &ReportResult{
		FileName: reportFileName(report.GeneratedAt, "xlsx"),
		Content:  content,
	}, nil
}

func (s *ReportService) GeneratePDF(ctx context.Context) (*ReportResult, error) {
	report, err := s.Build(ctx)
	if err != nil {
		return nil, err
	}
	content, err := s.pdf.Generate(report)
	if err != nil {
		return nil, fmt.Errorf("render pdf report: %w", err)
	}
	return &ReportResult{
		FileName: reportFileName(report.GeneratedAt, "pdf"),
		Content:  content,
	}, nil
}

func reportFileName(generatedAt time.Time, ext string) string {
	return fmt.Sprintf("fleet-report-%s.%s", generatedAt.Format("20060102-150405"), ext)
}
