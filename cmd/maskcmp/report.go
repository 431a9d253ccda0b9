package main

import (
	"io"

	"github.com/gocarina/gocsv"

	app "mask-compare/internal/application"
	"mask-compare/internal/domain/entity"
)

// Report итоговый JSON-отчёт запуска
type Report struct {
	RunID      string                     `json:"run_id"`
	Validation *entity.ValidationReport   `json:"validation"`
	Results    []*entity.ComparisonResult `json:"results"`
	Cases      []entity.CaseAnalysis      `json:"cases"`
}

func newReport(runID string, validation *entity.ValidationReport, results []*entity.ComparisonResult) Report {
	return Report{
		RunID:      runID,
		Validation: validation,
		Results:    results,
		Cases:      app.Analyze(results),
	}
}

// ScoreRow строка CSV: один файл и один источник
type ScoreRow struct {
	Filename string  `csv:"filename"`
	Source   string  `csv:"source"`
	IOU      float64 `csv:"iou"`
	Accuracy float64 `csv:"accuracy"`
	Scored   bool    `csv:"scored"`
}

func scoreRows(results []*entity.ComparisonResult) []*ScoreRow {
	rows := []*ScoreRow{}
	for _, r := range results {
		for _, source := range r.Sources() {
			iou, _ := r.IOUScores.Get(source)
			acc, _ := r.AccuracyScores.Get(source)
			rows = append(rows, &ScoreRow{
				Filename: r.Filename,
				Source:   source,
				IOU:      iou,
				Accuracy: acc,
				Scored:   r.Scored(source, entity.MetricIOU) && r.Scored(source, entity.MetricAccuracy),
			})
		}
	}
	return rows
}

func marshalRows(w io.Writer, results []*entity.ComparisonResult) error {
	return gocsv.Marshal(scoreRows(results), w)
}

// selectionsFor выбирает файлы для экспорта; пустой список означает все
func selectionsFor(results []*entity.ComparisonResult, files []string) []entity.ExportSelection {
	want := make(map[string]bool, len(files))
	for _, f := range files {
		want[f] = true
	}

	var out []entity.ExportSelection
	for _, r := range results {
		if len(want) > 0 && !want[r.Filename] {
			continue
		}
		out = append(out, entity.ExportSelection{Filename: r.Filename, Paths: r.Paths})
	}
	return out
}
