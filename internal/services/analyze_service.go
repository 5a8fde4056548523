// Package services wires the classification run end to end: sources in,
// workbook, text export and durable store out.
package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"hotzaot/internal/aggregate"
	"hotzaot/internal/classify"
	"hotzaot/internal/config"
	"hotzaot/internal/log"
	"hotzaot/internal/report"
	"hotzaot/internal/rows"
	"hotzaot/internal/sheets"
	"hotzaot/internal/storage"
	"hotzaot/internal/summary"
)

// LearnedPublisher announces interactively learned pairs after a run.
type LearnedPublisher interface {
	PublishLearned(ctx context.Context, runID string, learned map[string]string) error
}

// AnalyzeService orchestrates one classification run. The repository,
// publisher and summary writer are optional; a nil value disables that
// side effect.
type AnalyzeService struct {
	cfg       *config.Config
	resolver  classify.Resolver
	repo      *storage.ClassificationRepository
	publisher LearnedPublisher
	sheetSync sheets.SummaryWriter
	logger    *log.Logger
}

func NewAnalyzeService(cfg *config.Config, resolver classify.Resolver, repo *storage.ClassificationRepository, publisher LearnedPublisher, sheetSync sheets.SummaryWriter, logger *log.Logger) *AnalyzeService {
	return &AnalyzeService{
		cfg:       cfg,
		resolver:  resolver,
		repo:      repo,
		publisher: publisher,
		sheetSync: sheetSync,
		logger:    logger.WithComponent(log.ComponentAggregate),
	}
}

// Run discovers the sources, classifies them against the configured store
// and writes every output. The workbook, the text export and the store
// update are required; event publishing and sheet sync are best-effort
// because the run's results are already durable by then.
func (s *AnalyzeService) Run(ctx context.Context) (aggregate.Result, error) {
	store, err := s.loadStore(ctx)
	if err != nil {
		return aggregate.Result{}, err
	}

	columns := rows.Columns{Name: s.cfg.NameCol, Amount: s.cfg.AmountCol, Date: s.cfg.DateCol}
	sources, err := rows.Discover(s.cfg.SourceDir, columns, s.cfg.MarkerPhrase)
	if err != nil {
		return aggregate.Result{}, err
	}
	s.logger.InfoContext(ctx, "Discovered expense sources",
		log.FieldOperation, log.OpAnalyze, "sources", len(sources), "dir", s.cfg.SourceDir)

	result, err := aggregate.New(store, s.resolver).Run(ctx, sources)
	if err != nil {
		return result, err
	}

	if err := s.writeOutputs(ctx, result); err != nil {
		return result, err
	}
	if err := s.persistStore(ctx, store, result.Learned); err != nil {
		return result, err
	}

	s.publish(ctx, result)
	s.syncSheet(ctx, result)

	s.logger.InfoContext(ctx, "Analysis run complete",
		log.FieldRunID, result.RunID,
		log.FieldCommitted, len(result.Ledger),
		"categories", len(result.Totals),
		log.FieldSkipped, result.Skipped,
		"failed_sources", result.FailedSources)
	return result, nil
}

func (s *AnalyzeService) loadStore(ctx context.Context) (*classify.Store, error) {
	if s.cfg.ClassificationsBackend == "sqlite" {
		if s.repo == nil {
			return nil, fmt.Errorf("sqlite backend configured without repository")
		}
		m, err := s.repo.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load classifications from sqlite: %w", err)
		}
		return classify.FromMap(m), nil
	}
	return classify.LoadFile(s.cfg.ClassificationsFile)
}

func (s *AnalyzeService) writeOutputs(ctx context.Context, result aggregate.Result) error {
	if err := os.MkdirAll(s.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	xlsxPath := filepath.Join(s.cfg.OutputDir, s.cfg.SummaryXlsxName)
	if err := report.WriteWorkbook(xlsxPath, result.Totals, result.Ledger); err != nil {
		return err
	}

	txtPath := filepath.Join(s.cfg.OutputDir, s.cfg.SummaryTxtName)
	f, err := os.Create(txtPath)
	if err != nil {
		return fmt.Errorf("create summary text %s: %w", txtPath, err)
	}
	if err := summary.Encode(f, result.Index); err != nil {
		f.Close()
		return fmt.Errorf("write summary text: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close summary text: %w", err)
	}
	if err := summary.DedupeFile(txtPath); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Wrote run outputs",
		log.FieldOperation, log.OpExport, log.FieldFile, xlsxPath, "text", txtPath)
	return nil
}

func (s *AnalyzeService) persistStore(ctx context.Context, store *classify.Store, learned map[string]string) error {
	if s.cfg.ClassificationsBackend == "sqlite" {
		return s.repo.UpsertAll(ctx, learned)
	}
	if s.cfg.ClassificationsFile == "" {
		return nil
	}
	return classify.SaveFile(s.cfg.ClassificationsFile, store)
}

func (s *AnalyzeService) publish(ctx context.Context, result aggregate.Result) {
	if s.publisher == nil || len(result.Learned) == 0 {
		return
	}
	if err := s.publisher.PublishLearned(ctx, result.RunID, result.Learned); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish learned classifications",
			log.FieldRunID, result.RunID, log.FieldError, err)
	}
}

func (s *AnalyzeService) syncSheet(ctx context.Context, result aggregate.Result) {
	if s.sheetSync == nil {
		return
	}
	if err := s.sheetSync.WriteSummary(ctx, report.SortedTotals(result.Totals)); err != nil {
		s.logger.ErrorContext(ctx, "Failed to sync summary to Google Sheets",
			log.FieldRunID, result.RunID, log.FieldError, err)
	}
}
