package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hotzaot/internal/aggregate"
	"hotzaot/internal/amqp"
	"hotzaot/internal/classify"
	"hotzaot/internal/cli"
	"hotzaot/internal/log"
	"hotzaot/internal/services"
	"hotzaot/internal/sheets"
	gsheet "hotzaot/internal/sheets/google"
	"hotzaot/internal/storage"
)

var rootCmd = &cobra.Command{
	Use:   "hotzaot",
	Short: "Classify bank expense exports and build category summaries",
	Long: `hotzaot reads xlsx bank exports, classifies each expense into a
category (asking interactively for names it has not seen before) and
writes a summary workbook plus a plain-text category report.`,
	SilenceUsage: true,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Classify every export in the source directory and write reports",
	RunE:  runAnalyze,
}

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge two summary text files into one report",
	RunE:  runMerge,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(mergeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)
	ctx := cmd.Context()

	var repo *storage.ClassificationRepository
	if cfg.ClassificationsBackend == "sqlite" {
		repo = cli.InitSQLite(logger, cfg.SQLiteDBPath)
		defer repo.Close()
	}

	var publisher services.LearnedPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to connect to AMQP broker", log.FieldError, err)
			return err
		}
		defer client.Close()
		publisher = client
	}

	var sheetSync sheets.SummaryWriter
	if cfg.GoogleSpreadsheetID != "" {
		client, err := gsheet.NewFromEnv(ctx)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", log.FieldError, err)
			return err
		}
		sheetSync = client
	}

	resolver := classify.NewPromptResolver(os.Stdin, os.Stdout)
	svc := services.NewAnalyzeService(cfg, resolver, repo, publisher, sheetSync, logger)

	result, err := svc.Run(ctx)
	if err != nil {
		if errors.Is(err, aggregate.ErrEmptyInput) {
			logger.Error("No expense rows found in any source", "dir", cfg.SourceDir)
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Classified %d expenses into %d categories (%d rows skipped).\n",
		len(result.Ledger), len(result.Totals), result.Skipped)
	if result.FailedSources > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Warning: %d source file(s) could not be read.\n", result.FailedSources)
	}
	return nil
}

func runMerge(cmd *cobra.Command, _ []string) error {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	cfg := cli.LoadAndValidateConfig(logger)
	if err := cfg.ValidateMerge(); err != nil {
		logger.Error("Merge configuration invalid", log.FieldError, err)
		return err
	}

	if err := services.NewMergeService(cfg, logger).Run(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Merged %s and %s into %s.\n",
		cfg.MergeFile1, cfg.MergeFile2, cfg.MergeOutputFile)
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
