package services

import (
	"context"
	"fmt"
	"os"

	"hotzaot/internal/config"
	"hotzaot/internal/log"
	"hotzaot/internal/summary"
)

// MergeService combines two summary text files into one merged report.
type MergeService struct {
	cfg    *config.Config
	logger *log.Logger
}

func NewMergeService(cfg *config.Config, logger *log.Logger) *MergeService {
	return &MergeService{
		cfg:    cfg,
		logger: logger.WithComponent(log.ComponentMerge),
	}
}

// Run decodes both inputs, unions their items per category and writes the
// merged report. A missing input file contributes nothing rather than
// failing the merge.
func (s *MergeService) Run(ctx context.Context) error {
	first, err := summary.DecodeFile(s.cfg.MergeFile1)
	if err != nil {
		return fmt.Errorf("read %s: %w", s.cfg.MergeFile1, err)
	}
	second, err := summary.DecodeFile(s.cfg.MergeFile2)
	if err != nil {
		return fmt.Errorf("read %s: %w", s.cfg.MergeFile2, err)
	}

	merged := summary.Merge(first, second)

	out, err := os.Create(s.cfg.MergeOutputFile)
	if err != nil {
		return fmt.Errorf("create %s: %w", s.cfg.MergeOutputFile, err)
	}
	if err := summary.RenderMerged(out, merged); err != nil {
		out.Close()
		return fmt.Errorf("write merged summary: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", s.cfg.MergeOutputFile, err)
	}

	s.logger.InfoContext(ctx, "Merged summaries",
		log.FieldOperation, log.OpMerge,
		"categories", len(merged.Categories()),
		log.FieldFile, s.cfg.MergeOutputFile)
	return nil
}
