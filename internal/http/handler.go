package http

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/runsheet/logistics-data/internal/batch"
	"github.com/runsheet/logistics-data/internal/ingest"
	"github.com/runsheet/logistics-data/internal/model"
	"github.com/runsheet/logistics-data/internal/seeder"
	"github.com/runsheet/logistics-data/internal/service"
	"github.com/runsheet/logistics-data/internal/store"
)

type Handler struct {
	data         *service.DataService
	analytics    *service.AnalyticsService
	search       *service.SearchService
	reports      *service.ReportService
	seeder       *seeder.Seeder
	pipeline     *ingest.Pipeline
	baselineTime string
	log          zerolog.Logger
}

func NewHandler(
	data *service.DataService,
	analytics *service.AnalyticsService,
	search *service.SearchService,
	reports *service.ReportService,
	sd *seeder.Seeder,
	pipeline *ingest.Pipeline,
	baselineTime string,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		data:         data,
		analytics:    analytics,
		search:       search,
		reports:      reports,
		seeder:       sd,
		pipeline:     pipeline,
		baselineTime: baselineTime,
		log:          log,
	}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.GET("/", h.root)
	router.GET("/health", h.health)

	api := router.Group("/api")
	api.GET("/health", h.health)
	api.GET("/fleet/summary", h.fleetSummary)
	api.GET("/fleet/trucks", h.listTrucks)
	api.GET("/fleet/trucks/:id", h.getTruck)
	api.GET("/orders", h.listOrders)
	api.GET("/inventory", h.listInventory)
	api.GET("/support/tickets", h.listTickets)
	api.GET("/analytics/metrics", h.analyticsMetrics)
	api.GET("/analytics/routes", h.analyticsRoutes)
	api.GET("/analytics/delay-causes", h.analyticsDelayCauses)
	api.GET("/analytics/regional", h.analyticsRegional)
	api.GET("/analytics/time-series", h.analyticsTimeSeries)
	api.GET("/search", h.searchAll)
	api.GET("/demo/status", h.demoStatus)

	protected := api.Group("/")
	protected.Use(authMiddleware)
	protected.POST("/upload/csv", h.uploadFile)
	protected.POST("/upload/batch", h.uploadBatch)
	protected.POST("/upload/selective", h.uploadSelective)
	protected.POST("/data/cleanup", h.dataCleanup)
	protected.POST("/data/seed", h.dataSeed)
	protected.POST("/demo/reset", h.demoReset)
	protected.POST("/reports/fleet", h.reportExcel)
	protected.POST("/reports/fleet/pdf", h.reportPDF)
}

// respond wraps every successful payload the same way; the frontend relies on
// the envelope shape.
func respond(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"data":      data,
		"success":   true,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func fail(c *gin.Context, status int, detail string) {
	c.JSON(status, gin.H{"detail": detail})
}

func (h *Handler) root(c *gin.Context) {
	respond(c, http.StatusOK, gin.H{
		"service": "runsheet logistics data service",
		"docs":    "/api",
	})
}

func (h *Handler) health(c *gin.Context) {
	respond(c, http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) fleetSummary(c *gin.Context) {
	summary, err := h.data.FleetSummary(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, summary)
}

func (h *Handler) listTrucks(c *gin.Context) {
	trucks, err := h.data.Trucks(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, trucks)
}

func (h *Handler) getTruck(c *gin.Context) {
	truck, err := h.data.Truck(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, truck)
}

func (h *Handler) listOrders(c *gin.Context) {
	orders, err := h.data.Orders(c.Request.Context(), c.Query("status"), c.Query("region"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, orders)
}

func (h *Handler) listInventory(c *gin.Context) {
	items, err := h.data.Inventory(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, items)
}

func (h *Handler) listTickets(c *gin.Context) {
	tickets, err := h.data.Tickets(c.Request.Context(), c.Query("status"), c.Query("priority"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, tickets)
}

func (h *Handler) analyticsMetrics(c *gin.Context) {
	metrics, err := h.analytics.Metrics(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, metrics)
}

func (h *Handler) analyticsRoutes(c *gin.Context) {
	routes, err := h.analytics.Routes(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, routes)
}

func (h *Handler) analyticsDelayCauses(c *gin.Context) {
	causes, err := h.analytics.DelayCauses(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, causes)
}

func (h *Handler) analyticsRegional(c *gin.Context) {
	regions, err := h.analytics.Regional(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, regions)
}

func (h *Handler) analyticsTimeSeries(c *gin.Context) {
	hours := 24
	if raw := c.Query("hours"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			fail(c, http.StatusBadRequest, "hours must be a positive integer")
			return
		}
		hours = parsed
	}

	points, err := h.analytics.TimeSeries(c.Request.Context(), c.Query("metric"), hours)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, points)
}

func (h *Handler) searchAll(c *gin.Context) {
	limit := int64(0)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			fail(c, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = parsed
	}

	results, err := h.search.Search(c.Request.Context(), c.Query("q"), c.Query("index"), limit)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, results)
}

// uploadFile ingests a CSV or XLSX upload into one collection.
func (h *Handler) uploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, "file is required")
		return
	}
	// The frontend sends dataType; accept the snake_case spelling too.
	dataType := strings.TrimSpace(c.PostForm("dataType"))
	if dataType == "" {
		dataType = strings.TrimSpace(c.PostForm("data_type"))
	}
	collection, ok := model.ResolveCollection(dataType)
	if !ok {
		fail(c, http.StatusBadRequest, "unknown dataType "+strconv.Quote(dataType))
		return
	}
	batchID := strings.TrimSpace(c.PostForm("batch_id"))
	if batchID == "" {
		fail(c, http.StatusBadRequest, "batch_id is required")
		return
	}
	operationalTime := strings.TrimSpace(c.PostForm("operational_time"))
	if operationalTime == "" {
		operationalTime = seeder.DefaultOperationalTime(batchID)
	}

	file, err := fileHeader.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, "cannot read upload")
		return
	}
	defer file.Close()

	var result ingest.Result
	switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
	case ".xlsx":
		result, err = h.pipeline.IngestXLSX(c.Request.Context(), collection, file, batchID, operationalTime)
	default:
		result, err = h.pipeline.IngestCSV(c.Request.Context(), collection, file, batchID, operationalTime)
	}
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, result)
}

type batchUploadRequest struct {
	BatchID         string                      `json:"batch_id" binding:"required"`
	OperationalTime string                      `json:"operational_time"`
	Data            map[string][]map[string]any `json:"data"`
}

// uploadBatch ingests a multi-collection JSON payload, or, when no data is
// supplied, generates the canned document set the batch id's time-of-day
// token names.
func (h *Handler) uploadBatch(c *gin.Context) {
	var req batchUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.OperationalTime == "" {
		req.OperationalTime = seeder.DefaultOperationalTime(req.BatchID)
	}

	if len(req.Data) > 0 {
		h.ingestPayload(c, req)
		return
	}

	sets, ok := seeder.DemoBatch(req.BatchID, time.Now().UTC())
	if !ok {
		h.emptyBatch(c, req.BatchID)
		return
	}
	h.upsertSets(c, sets, req.BatchID, req.OperationalTime, nil)
}

// emptyBatch answers a canned-generation request whose batch id carries no
// time-of-day token. Nothing matched means nothing to upsert, not a failure.
func (h *Handler) emptyBatch(c *gin.Context, batchID string) {
	h.log.Warn().Str("batch_id", batchID).Msg("no time-of-day token in batch_id, nothing generated")
	respond(c, http.StatusOK, gin.H{
		"batch_id":     batchID,
		"data_version": batch.DataVersion(batchID),
		"collections":  map[string]int{},
	})
}

func (h *Handler) ingestPayload(c *gin.Context, req batchUploadRequest) {
	counts := map[string]int{}
	skipped := 0
	for name, records := range req.Data {
		collection, ok := model.ResolveCollection(name)
		if !ok {
			fail(c, http.StatusBadRequest, "unknown collection "+strconv.Quote(name))
			return
		}
		result, err := h.pipeline.IngestRecords(c.Request.Context(), collection, records, req.BatchID, req.OperationalTime)
		if err != nil {
			h.handleError(c, err)
			return
		}
		counts[collection] = result.RecordCount
		skipped += result.Skipped
	}
	respond(c, http.StatusOK, gin.H{
		"batch_id":     req.BatchID,
		"data_version": batch.DataVersion(req.BatchID),
		"collections":  counts,
		"skipped":      skipped,
	})
}

type selectiveUploadRequest struct {
	BatchID         string   `json:"batch_id" binding:"required"`
	OperationalTime string   `json:"operational_time"`
	Collections     []string `json:"collections" binding:"required"`
}

// uploadSelective generates the canned set for the batch id's token but only
// writes the requested collections, leaving the rest untouched.
func (h *Handler) uploadSelective(c *gin.Context) {
	var req selectiveUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.OperationalTime == "" {
		req.OperationalTime = seeder.DefaultOperationalTime(req.BatchID)
	}

	wanted := map[string]bool{}
	for _, name := range req.Collections {
		collection, ok := model.ResolveCollection(name)
		if !ok {
			fail(c, http.StatusBadRequest, "unknown collection "+strconv.Quote(name))
			return
		}
		wanted[collection] = true
	}

	sets, ok := seeder.DemoBatch(req.BatchID, time.Now().UTC())
	if !ok {
		h.emptyBatch(c, req.BatchID)
		return
	}
	h.upsertSets(c, sets, req.BatchID, req.OperationalTime, wanted)
}

func (h *Handler) upsertSets(c *gin.Context, sets map[string][]model.Document, batchID, operationalTime string, wanted map[string]bool) {
	counts := map[string]int{}
	for _, collection := range model.SeedOrder {
		docs, ok := sets[collection]
		if !ok || (wanted != nil && !wanted[collection]) {
			continue
		}
		count, err := h.seeder.UpsertBatch(c.Request.Context(), collection, docs, batchID, operationalTime)
		if err != nil {
			h.handleError(c, err)
			return
		}
		counts[collection] = count
	}
	respond(c, http.StatusOK, gin.H{
		"batch_id":     batchID,
		"data_version": batch.DataVersion(batchID),
		"collections":  counts,
	})
}

// dataCleanup clears every collection; reseed=true additionally restores the
// default demo dataset in one call.
func (h *Handler) dataCleanup(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.seeder.ClearAll(ctx); err != nil {
		h.handleError(c, err)
		return
	}
	reseeded := false
	if c.Query("reseed") == "true" {
		if err := h.seeder.SeedIfEmpty(ctx); err != nil {
			h.handleError(c, err)
			return
		}
		reseeded = true
	}
	respond(c, http.StatusOK, gin.H{"cleared": model.SeedOrder, "reseeded": reseeded})
}

// dataSeed seeds default demo data; force=true bypasses the emptiness check
// and reseeds from scratch.
func (h *Handler) dataSeed(c *gin.Context) {
	var err error
	if c.Query("force") == "true" {
		err = h.seeder.ForceReseed(c.Request.Context())
	} else {
		err = h.seeder.SeedIfEmpty(c.Request.Context())
	}
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"seeded": true})
}

// demoReset returns the demo to the morning baseline: everything is cleared
// and reseeded with the baseline batch.
func (h *Handler) demoReset(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.seeder.ClearAll(ctx); err != nil {
		h.handleError(c, err)
		return
	}
	if err := h.seeder.SeedBaseline(ctx, h.baselineTime); err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"state":            model.StateMorningBaseline,
		"operational_time": h.baselineTime,
	})
}

func (h *Handler) demoStatus(c *gin.Context) {
	status, err := h.seeder.CurrentState(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	respond(c, http.StatusOK, status)
}

func (h *Handler) reportExcel(c *gin.Context) {
	result, err := h.reports.GenerateExcel(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	contentType := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, contentType, result.Content)
}

func (h *Handler) reportPDF(c *gin.Context) {
	result, err := h.reports.GeneratePDF(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/pdf", result.Content)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var partial *store.PartialBulkWriteError
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, batch.ErrInvalidOperationalTime),
		errors.Is(err, batch.ErrMissingIdentity):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrStoreUnavailable):
		h.log.Error().Err(err).Msg("store unavailable")
		fail(c, http.StatusInternalServerError, "document store unavailable")
	case errors.As(err, &partial):
		h.log.Error().Err(err).Str("collection", partial.Collection).
			Strs("failed_ids", partial.FailedIDs).Msg("partial bulk write")
		fail(c, http.StatusInternalServerError, err.Error())
	default:
		h.log.Error().Err(err).Msg("request failed")
		fail(c, http.StatusInternalServerError, "internal error")
	}
}
