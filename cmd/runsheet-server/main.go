package main

import (
	"context"
	"fmt"
	"os"

	"github.com/runsheet/logistics-data/internal/auth"
	"github.com/runsheet/logistics-data/internal/batch"
	"github.com/runsheet/logistics-data/internal/config"
	"github.com/runsheet/logistics-data/internal/excel"
	httphandler "github.com/runsheet/logistics-data/internal/http"
	"github.com/runsheet/logistics-data/internal/http/middleware"
	"github.com/runsheet/logistics-data/internal/ingest"
	"github.com/runsheet/logistics-data/internal/logger"
	"github.com/runsheet/logistics-data/internal/pdf"
	"github.com/runsheet/logistics-data/internal/seeder"
	"github.com/runsheet/logistics-data/internal/service"
	"github.com/runsheet/logistics-data/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)
	ctx := context.Background()

	mongo, err := store.NewMongo(ctx, cfg.Mongo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect document store")
	}
	defer mongo.Close(ctx)

	if err := mongo.EnsureCollections(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to prepare collections")
	}

	sd := seeder.New(mongo, batch.NewStamper(), log)
	if cfg.Seed.OnBoot {
		if err := sd.SeedIfEmpty(ctx); err != nil {
			log.Fatal().Err(err).Msg("boot seeding failed")
		}
	}

	dataService := service.NewDataService(mongo, log)
	analyticsService := service.NewAnalyticsService(mongo, log)
	searchService := service.NewSearchService(mongo, log)
	reportService := service.NewReportService(dataService, sd, excel.NewGenerator(), pdf.NewGenerator())
	pipeline := ingest.New(mongo, sd, log)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(
		dataService, analyticsService, searchService, reportService,
		sd, pipeline, cfg.Seed.BaselineTime, log,
	)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment, cfg.CORSOrigins)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting runsheet server")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
