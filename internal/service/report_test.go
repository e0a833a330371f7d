package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runsheet/logistics-data/internal/model"
	"github.com/runsheet/logistics-data/internal/store"
)

type stubGenerator struct {
	got     model.FleetReport
	content []byte
}

func (g *stubGenerator) Generate(report model.FleetReport) ([]byte, error) {
	g.got = report
	return g.content, nil
}

type stubState struct {
	status model.DemoStatus
}

func (s *stubState) CurrentState(_ context.Context) (model.DemoStatus, error) {
	return s.status, nil
}

func TestReportBuildAssemblesSnapshot(t *testing.T) {
	mem := store.NewMemory()
	seedFleet(t, mem)

	data := NewDataService(mem, zerolog.Nop())
	state := &stubState{status: model.DemoStatus{State: model.StateAfternoon, BatchID: "afternoon_ops"}}
	excelGen := &stubGenerator{content: []byte("xlsx")}
	pdfGen := &stubGenerator{content: []byte("pdf")}
	svc := NewReportService(data, state, excelGen, pdfGen)

	report, err := svc.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.StateAfternoon, report.State)
	assert.Equal(t, 4, report.Summary.TotalTrucks)
	assert.Len(t, report.Trucks, 4)
	assert.False(t, report.GeneratedAt.IsZero())
}

func TestReportGenerateExcelAndPDF(t *testing.T) {
	mem := store.NewMemory()
	seedFleet(t, mem)

	data := NewDataService(mem, zerolog.Nop())
	state := &stubState{status: model.DemoStatus{State: model.StateMorningBaseline}}
	excelGen := &stubGenerator{content: []byte("xlsx-bytes")}
	pdfGen := &stubGenerator{content: []byte("pdf-bytes")}
	svc := NewReportService(data, state, excelGen, pdfGen)
	ctx := context.Background()

	excelResult, err := svc.GenerateExcel(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx-bytes"), excelResult.Content)
	assert.Contains(t, excelResult.FileName, "fleet-report-")
	assert.Contains(t, excelResult.FileName, ".xlsx")
	assert.Len(t, excelGen.got.Trucks, 4)

	pdfResult, err := svc.GeneratePDF(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf-bytes"), pdfResult.Content)
	assert.Contains(t, pdfResult.FileName, ".pdf")
}
