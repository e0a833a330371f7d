package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/runsheet/logistics-data/internal/batch"
	"github.com/runsheet/logistics-data/internal/model"
	"github.com/runsheet/logistics-data/internal/seeder"
	"github.com/runsheet/logistics-data/internal/store"
)

// Result summarizes one ingested upload.
type Result struct {
	Collection  string `json:"collection"`
	RecordCount int    `json:"record_count"`
	Skipped     int    `json:"skipped"`
	BatchID     string `json:"batch_id"`
	DataVersion string `json:"data_version"`
}

// Pipeline turns uploaded files and JSON payloads into stamped batch upserts.
// Parsing is row-tolerant: a record that cannot yield an identity or carries
// an unparsable numeric is skipped and counted, never failing the upload
// around it.
type Pipeline struct {
	store  store.Store
	seeder *seeder.Seeder
	log    zerolog.Logger
}

func New(st store.Store, sd *seeder.Seeder, log zerolog.Logger) *Pipeline {
	return &Pipeline{store: st, seeder: sd, log: log}
}

// IngestCSV parses a CSV stream with a header row and upserts its records.
func (p *Pipeline) IngestCSV(ctx context.Context, collection string, r io.Reader, batchID, operationalTime string) (Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return Result{}, fmt.Errorf("read csv header: %w", err)
	}

	var records []map[string]any
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("read csv row: %w", err)
		}
		records = append(records, rowToRecord(header, row))
	}
	return p.IngestRecords(ctx, collection, records, batchID, operationalTime)
}

// IngestXLSX parses the first sheet of a workbook, first row as header.
func (p *Pipeline) IngestXLSX(ctx context.Context, collection string, r io.Reader, batchID, operationalTime string) (Result, error) {
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return Result{}, fmt.Errorf("open workbook: %w", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return Result{}, fmt.Errorf("workbook has no sheets")
	}
	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return Result{}, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return Result{}, fmt.Errorf("sheet %s is empty", sheets[0])
	}

	header := rows[0]
	records := make([]map[string]any, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, rowToRecord(header, row))
	}
	return p.IngestRecords(ctx, collection, records, batchID, operationalTime)
}

// IngestRecords converts raw records into typed documents and upserts them as
// one batch. Records without a resolvable identity or with a malformed
// numeric field are dropped and counted in the result; everything else is
// written.
func (p *Pipeline) IngestRecords(ctx context.Context, collection string, records []map[string]any, batchID, operationalTime string) (Result, error) {
	resolved, ok := model.ResolveCollection(collection)
	if !ok {
		return Result{}, fmt.Errorf("unknown collection %q", collection)
	}
	if _, _, err := batch.ParseOperationalTime(operationalTime); err != nil {
		return Result{}, err
	}

	var locations *locator
	if resolved == model.CollectionTrucks {
		var err error
		if locations, err = newLocator(ctx, p.store); err != nil {
			return Result{}, fmt.Errorf("load locations: %w", err)
		}
	}

	docs := make([]model.Document, 0, len(records))
	skipped := 0
	for i, record := range records {
		id, err := batch.ResolveIdentity(resolved, record)
		if err != nil {
			skipped++
			p.log.Warn().Err(err).Int("row", i+1).Str("collection", resolved).Msg("skipping record")
			continue
		}
		doc, err := p.convert(resolved, id, record, locations)
		if err != nil {
			skipped++
			p.log.Warn().Err(err).Int("row", i+1).Str("collection", resolved).Msg("skipping record")
			continue
		}
		docs = append(docs, doc)
	}

	result := Result{
		Collection:  resolved,
		Skipped:     skipped,
		BatchID:     batchID,
		DataVersion: batch.DataVersion(batchID),
	}
	if len(docs) == 0 {
		p.log.Warn().Str("collection", resolved).Int("skipped", skipped).Msg("upload produced no writable records")
		return result, nil
	}

	count, err := p.seeder.UpsertBatch(ctx, resolved, docs, batchID, operationalTime)
	if err != nil {
		return Result{}, err
	}
	result.RecordCount = count
	return result, nil
}

func (p *Pipeline) convert(collection, id string, record map[string]any, locations *locator) (model.Document, error) {
	switch collection {
	case model.CollectionTrucks:
		return convertTruck(id, record, locations.resolve), nil
	case model.CollectionLocations:
		return convertLocation(id, record), nil
	case model.CollectionOrders:
		return convertOrder(id, record)
	case model.CollectionInventory:
		return convertInventory(id, record)
	case model.CollectionSupportTickets:
		return convertTicket(id, record), nil
	default:
		return convertAnalyticsEvent(id, record), nil
	}
}

func rowToRecord(header, row []string) map[string]any {
	record := make(map[string]any, len(header))
	for i, name := range header {
		if i >= len(row) {
			break
		}
		record[name] = row[i]
	}
	return record
}
