package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"rental-radar/client"
	"rental-radar/config"
	"rental-radar/geo"
	"rental-radar/mapsync"
	"rental-radar/models"
	"rental-radar/pipeline"
	"rental-radar/render"
	"rental-radar/services"
	"rental-radar/storage"
	"rental-radar/utils"
)

// collection binds a backend endpoint to its region tables and link
// rules. Four of these exist: {SF, Stanford} x {portal, classifieds}.
type collection struct {
	id     string
	name   string
	path   string
	region *geo.Region
	rates  services.MarketRates
	rules  render.LinkRules
}

func collections() []collection {
	sfRules := render.LinkRules{
		ClassifiedsBase:      "https://sfbay.craigslist.org",
		ClassifiedsSearchURL: "https://sfbay.craigslist.org/search/sfc/apa",
		PortalSearchURL:      "https://www.apartments.com/san-francisco-ca/",
	}
	stanfordRules := render.LinkRules{
		ClassifiedsBase:      "https://sfbay.craigslist.org",
		ClassifiedsSearchURL: "https://sfbay.craigslist.org/search/pen/apa",
		PortalSearchURL:      "https://www.apartments.com/palo-alto-ca/",
	}

	return []collection{
		{
			id: "sf-portal", name: "SF Portal",
			path:   "/api/apartments/portal",
			region: geo.SF, rates: services.SFMarketRates(), rules: sfRules,
		},
		{
			id: "sf-classifieds", name: "SF Classifieds",
			path:   "/api/apartments",
			region: geo.SF, rates: services.SFMarketRates(), rules: sfRules,
		},
		{
			id: "stanford-portal", name: "Stanford Portal",
			path:   "/api/apartments/portal/stanford",
			region: geo.Stanford, rates: services.StanfordMarketRates(), rules: stanfordRules,
		},
		{
			id: "stanford-classifieds", name: "Stanford Classifieds",
			path:   "/api/apartments/stanford",
			region: geo.Stanford, rates: services.StanfordMarketRates(), rules: stanfordRules,
		},
	}
}

func main() {
	cfg := config.Load()
	logger := utils.NewLogger(cfg.Verbose)

	logger.Info("=== Rental Radar starting ===")
	logger.Info("Config — api: %s | concurrency: %d | rate: %dms | timeout: %s",
		cfg.APIBaseURL, cfg.MaxConcurrency, cfg.RateLimitMs, cfg.FetchTimeout())

	csvWriter, err := storage.NewCSVWriter(cfg.CSVOutputPath)
	if err != nil {
		logger.Error("Failed to create CSV writer: %v", err)
		os.Exit(1)
	}
	defer csvWriter.Close()

	var pgWriter *storage.PostgresWriter
	if cfg.SnapshotToDB {
		pgWriter, err = storage.NewPostgresWriter(cfg.DSN())
		if err != nil {
			logger.Error("Failed to connect to PostgreSQL: %v", err)
			logger.Error("Make sure Docker is running: docker compose up -d")
			os.Exit(1)
		}
		defer pgWriter.Close()
	}

	api := client.New(cfg, logger)
	sanitizer := services.NewSanitizer(logger)
	insightSvc := services.NewInsightService(logger)
	doc := mapsync.NewDocument()
	mapController := mapsync.NewController(doc, doc, logger)

	type outcome struct {
		col    collection
		count  int
		report *models.InsightReport
		err    error
	}

	pool := utils.NewWorkerPool(cfg.MaxConcurrency, cfg.RateLimitMs)
	var mu sync.Mutex
	var outcomes []outcome

	for _, col := range collections() {
		col := col
		pool.Submit(func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout())
			defer cancel()

			report, count, err := processCollection(ctx, col, cfg, logger, api,
				sanitizer, insightSvc, csvWriter, pgWriter, doc, mapController)

			mu.Lock()
			outcomes = append(outcomes, outcome{col: col, count: count, report: report, err: err})
			mu.Unlock()
		})
	}
	pool.Wait()

	succeeded := 0
	for _, o := range outcomes {
		if o.err != nil {
			logger.Error("[%s] failed: %v", o.col.id, o.err)
			continue
		}
		succeeded++
		logger.Info("[%s] %d listings rendered", o.col.id, o.count)
		insightSvc.Print(o.col.name, o.report)
	}

	if succeeded == 0 {
		logger.Error("All collections failed. Exiting.")
		os.Exit(1)
	}

	fmt.Printf("  Done. %d/%d collections rendered → %s | snapshot CSV → %s\n\n",
		succeeded, len(outcomes), cfg.OutputDir, cfg.CSVOutputPath)
}

// processCollection runs one collection end to end: fetch, sanitize,
// enrich, score, pipe through the filter/sort pipeline, render cards
// and map markers to the output dir, and snapshot the raw set.
func processCollection(
	ctx context.Context,
	col collection,
	cfg *config.Config,
	logger *utils.Logger,
	api *client.Client,
	sanitizer *services.Sanitizer,
	insightSvc *services.InsightService,
	csvWriter *storage.CSVWriter,
	pgWriter *storage.PostgresWriter,
	doc *mapsync.Document,
	mapController *mapsync.Controller,
) (*models.InsightReport, int, error) {
	renderer := render.NewCollectionRenderer(logger, col.rules, col.region)
	p := pipeline.New(col.id, logger)
	p.Register(renderer)
	p.Register(mapController)

	var resp *models.ListingsResponse
	var err error

	if cfg.RefreshFirst && p.BeginRefresh() {
		resp, err = api.RefreshCollection(ctx, col.path+"/refresh")
		p.EndRefresh()
		if err != nil {
			var rl *client.RateLimitedError
			if errors.As(err, &rl) {
				logger.Warn("[%s] Refresh rate-limited (retry after %s), using cached data", col.id, rl.RetryAfter)
			} else {
				logger.Warn("[%s] Refresh failed: %v — falling back to cached data", col.id, err)
			}
			resp = nil
		}
	}

	if resp == nil {
		resp, err = api.FetchListings(ctx, col.path)
		if err != nil {
			return nil, 0, fmt.Errorf("fetch: %w", err)
		}
	}
	logger.Info("[%s] Fetched %d listings (backend total %d, updated %s)",
		col.id, len(resp.Apartments), resp.Stats.Total, resp.LastUpdated)

	listings := sanitizer.Sanitize(resp.Apartments)

	inferred := geo.NewIndex(col.region).InferNeighborhood(listings)
	if inferred > 0 {
		logger.Info("[%s] Inferred neighborhoods for %d listings from coordinates", col.id, inferred)
	}

	services.NewDealScorer(col.rates, logger).ScoreAll(listings)

	p.SetListings(listings)

	if err := writeOutputs(cfg.OutputDir, col.id, renderer, doc); err != nil {
		return nil, 0, fmt.Errorf("write outputs: %w", err)
	}

	if err := csvWriter.WriteSnapshot(col.id, listings); err != nil {
		logger.Error("[%s] CSV snapshot failed: %v", col.id, err)
	}
	if pgWriter != nil {
		if err := pgWriter.WriteSnapshot(col.id, listings); err != nil {
			logger.Error("[%s] PostgreSQL snapshot failed: %v", col.id, err)
		}
	}

	return insightSvc.Generate(listings), len(listings), nil
}

// writeOutputs persists the rendered card list and the marker set for a
// collection under the output dir.
func writeOutputs(outputDir, collectionID string, renderer *render.CollectionRenderer, doc *mapsync.Document) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	htmlPath := filepath.Join(outputDir, collectionID+".html")
	if err := os.WriteFile(htmlPath, []byte(renderer.HTML(collectionID)), 0644); err != nil {
		return err
	}

	markers, err := doc.MarkersJSON(collectionID)
	if err != nil {
		return err
	}
	markersPath := filepath.Join(outputDir, collectionID+".markers.json")
	return os.WriteFile(markersPath, markers, 0644)
}
