package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/google/uuid"

	"mask-compare/config"
	"mask-compare/internal/api/telegram"
	app "mask-compare/internal/application"
	"mask-compare/internal/container"
	"mask-compare/internal/domain/entity"
	"mask-compare/internal/domain/port"
	"mask-compare/internal/infrastructure/progress"
	"mask-compare/internal/infrastructure/storage"
	"mask-compare/internal/infrastructure/vision"
)

func main() {
	var jobPath, outPath, csvPath, exportDir string
	var strict, quiet bool
	flag.StringVar(&jobPath, "job", "job.yaml", "YAML manifest describing the folders to compare")
	flag.StringVar(&outPath, "out", "", "Where to write the JSON report (stdout if empty)")
	flag.StringVar(&csvPath, "csv", "", "Where to write the flattened CSV scores")
	flag.StringVar(&exportDir, "export", "", "Export all compared images into this folder")
	flag.BoolVar(&strict, "strict", false, "Leave failed scores out instead of recording 0.0")
	flag.BoolVar(&quiet, "quiet", false, "Do not print progress")
	flag.Parse()

	if err := run(jobPath, outPath, csvPath, exportDir, strict, quiet); err != nil {
		fmt.Fprintln(os.Stderr, "maskcmp:", err)
		os.Exit(1)
	}
}

func run(jobPath, outPath, csvPath, exportDir string, strict, quiet bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := config.NewLogger(cfg.LogLevel)

	job, err := config.LoadJob(jobPath)
	if err != nil {
		return err
	}
	if exportDir != "" {
		job.Export = &config.JobExport{Destination: exportDir}
	}

	c := container.New(
		storage.NewFolderScanner().WithLogger(logger),
		vision.Default(),
		storage.NewLocalExportStore(),
		app.ComparisonOptions{Strict: strict || cfg.StrictScores},
		logger,
	)

	report, err := c.Validator.Validate(job.Folders())
	if err != nil {
		return err
	}
	if !report.IsValid {
		report.MissingFiles.Each(func(folder string, files []string) {
			logger.Warn("folder is missing files", "folder", folder, "files", files)
		})
		return fmt.Errorf("folders share no common images")
	}

	runID := uuid.New().String()
	sinks := progress.Fanout{}
	if !quiet {
		sinks = append(sinks, progress.Func(func(e entity.ProgressEvent) {
			fmt.Fprintf(os.Stderr, "\r[%3.0f%%] %d/%d %-40s", e.Percentage, e.Current, e.Total, e.CurrentFile)
			if e.Done() {
				fmt.Fprintln(os.Stderr)
			}
		}))
	}
	var tg *telegram.Client
	var tgQueue *progress.Dispatcher
	if cfg.TelegramEnabled() {
		api, err := telegram.NewBotAPI(cfg.TelegramToken)
		if err != nil {
			return err
		}
		tg = telegram.NewClient(api, cfg.TelegramChatID, cfg.TelegramProgressStep, logger)
		tgQueue = progress.NewDispatcher(tg.RunSink(runID), cfg.ProgressBuffer, logger)
		sinks = append(sinks, tgQueue)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var sink port.ProgressSink
	if len(sinks) > 0 {
		sink = sinks
	}
	results, compareErr := c.Comparison.Compare(ctx, app.BatchRequest{
		OriginalFolder:    job.Original,
		GroundTruthFolder: job.GroundTruth,
		ResultFolder:      job.Result,
		Sources:           job.Comparisons,
		Files:             report.CommonFiles,
	}, sink)
	if tgQueue != nil {
		tgQueue.Close()
	}
	if compareErr != nil {
		logger.Warn("comparison interrupted, writing partial report", "done", len(results), "err", compareErr)
	}

	if err := writeJSON(outPath, newReport(runID, report, results)); err != nil {
		return err
	}
	if csvPath != "" {
		if err := writeCSV(csvPath, results); err != nil {
			return err
		}
	}
	if compareErr != nil {
		return compareErr
	}

	if job.Export != nil {
		outcome, err := c.Export.ExportSelected(job.Export.Destination, selectionsFor(results, job.Export.Files))
		if tg != nil {
			tg.ExportFinished(outcome, err)
		}
		if err != nil {
			return err
		}
		logger.Info(outcome.Message())
	}
	return nil
}

func writeJSON(path string, v any) error {
	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create report: %w", err)
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCSV(path string, results []*entity.ComparisonResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()
	if err := marshalRows(f, results); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
