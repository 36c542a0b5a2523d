package core

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/AgitatedBuddha/protein-analyser/internal/contract"
	"github.com/AgitatedBuddha/protein-analyser/schema"
)

// scoreRecords fans the batch out over a worker pool. Every worker scores
// records against the same immutable ScoringParams, so there is no
// coordination beyond the channels; results are re-sorted by brand so worker
// scheduling never shows in the output. Run tracking is wired through the
// context when a store was configured.
func scoreRecords(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, records []schema.ProductRecord) []schema.ScoreReport {
	if !shouldSuppressHeader(ctx) {
		logScoreHeader(cfg, len(records))
	}

	// Add store manager to context for use in worker goroutines
	ctx = contextWithStoreManager(ctx, mgr)

	// --- 0. Begin Run Tracking (if configured) ---
	var runID int64
	store := getScoreStore(mgr)
	if store != nil {
		startTime := time.Now()
		configParams := map[string]any{
			"mode":            string(cfg.Mode),
			"input_path":      cfg.InputPath,
			"workers":         cfg.Workers,
			"result_limit":    cfg.ResultLimit,
			"scoring_version": cfg.Scoring.Version,
		}
		var err error
		runID, err = store.BeginRun(startTime, cfg.Scoring.Version, configParams)
		if err != nil {
			contract.LogWarn("Run tracking initialization failed", err)
		} else if runID > 0 {
			// Add run ID to context for use in product scoring
			ctx = withRunID(ctx, runID)
		}
	}

	// --- 1. Fan-out Scoring ---
	reports := scoreBatch(ctx, cfg, records)

	// --- 2. End Run Tracking ---
	if store != nil && runID > 0 {
		endTime := time.Now()
		if err := store.EndRun(runID, endTime, countByModeStatus(reports, cfg.Mode)); err != nil {
			contract.LogWarn("Failed to finalize run tracking", err)
		} else if !shouldSuppressHeader(ctx) {
			fmt.Printf("💾 Run %d recorded (%d products)\n", runID, len(reports))
		}
	}

	return reports
}

// scoreBatch processes all records in parallel using a worker pool.
// It spawns cfg.Workers goroutines that consume a record channel and
// aggregates their reports, re-sorted by brand for deterministic output.
func scoreBatch(ctx context.Context, cfg *contract.Config, records []schema.ProductRecord) []schema.ScoreReport {
	// Initialize channels based on the final number of records to be processed.
	recordCh := make(chan *schema.ProductRecord, len(records))
	reportCh := make(chan schema.ScoreReport, len(records))
	var wg sync.WaitGroup

	// Start worker pool
	for range cfg.Workers {
		wg.Go(func() {
			for rec := range recordCh {
				report := scoreProduct(ctx, cfg, rec)
				reportCh <- report
			}
		})
	}

	// Send records to worker channel
	for i := range records {
		recordCh <- &records[i]
	}
	close(recordCh)

	// Wait for all workers to finish processing
	wg.Wait()
	close(reportCh)

	// Aggregate results and restore deterministic brand order
	reports := make([]schema.ScoreReport, 0, len(records))
	for r := range reportCh {
		reports = append(reports, r)
	}
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Brand < reports[j].Brand
	})

	return reports
}

// scoreProduct builds the full report for a single record and records it to
// the results store when run tracking is active.
func scoreProduct(ctx context.Context, cfg *contract.Config, rec *schema.ProductRecord) schema.ScoreReport {
	report := buildScoreReport(cfg.Scoring, rec)

	if runID, ok := getRunID(ctx); ok && runID > 0 {
		recordProductScore(ctx, runID, &report)
	}

	return report
}

// recordProductScore persists one product's scores without disrupting the run.
func recordProductScore(ctx context.Context, runID int64, report *schema.ScoreReport) {
	mgr := storeManagerFromContext(ctx)
	store := getScoreStore(mgr)
	if store == nil {
		return
	}

	if err := store.RecordProductScore(runID, report); err != nil {
		contract.LogWarn(fmt.Sprintf("Run tracking failed for %s", report.Brand), err)
	}
}

// getScoreStore unwraps the manager, tolerating an absent store.
func getScoreStore(mgr contract.StoreManager) contract.ScoreStore {
	if mgr == nil {
		return nil
	}
	return mgr.GetScoreStore()
}

// countByModeStatus classifies each report by the selected mode's pipeline
// outcome for the run summary row.
func countByModeStatus(reports []schema.ScoreReport, mode schema.ScoringMode) schema.RunCounts {
	counts := schema.RunCounts{Records: len(reports)}
	for i := range reports {
		switch reports[i].ModeScoreFor(mode).Status {
		case schema.StatusScored:
			counts.Scored++
		case schema.StatusRejected:
			counts.Rejected++
		case schema.StatusIndeterminate:
			counts.Indeterminate++
		}
	}
	return counts
}
