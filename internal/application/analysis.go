package app

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"mask-compare/internal/domain/entity"
)

// SortKey поле сортировки разборов
type SortKey string

const (
	SortByFilename    SortKey = "filename"
	SortByAvgIOU      SortKey = "avg_iou"
	SortByMaxIOU      SortKey = "max_iou"
	SortByMinIOU      SortKey = "min_iou"
	SortByIOUVariance SortKey = "iou_variance"
	SortByAvgAccuracy SortKey = "avg_accuracy"
	SortByMyAdvantage SortKey = "my_advantage"
)

// Пороги категорий
const (
	advantageMargin   = 0.2
	advantageMinIOU   = 0.6
	bestAvgIOU        = 0.8
	worstAvgIOU       = 0.3
	highVarianceLevel = 0.1
)

// Analyze считает сводные показатели и категорию каждого файла
func Analyze(results []*entity.ComparisonResult) []entity.CaseAnalysis {
	cases := make([]entity.CaseAnalysis, 0, len(results))
	for _, r := range results {
		cases = append(cases, analyzeOne(r))
	}
	return cases
}

func analyzeOne(r *entity.ComparisonResult) entity.CaseAnalysis {
	c := entity.CaseAnalysis{Filename: r.Filename}

	var ious, others []float64
	r.IOUScores.Each(func(label string, v float64) {
		ious = append(ious, v)
		if label == entity.LabelPrimary {
			c.MyIOU = v
		} else {
			others = append(others, v)
		}
	})
	var accs []float64
	r.AccuracyScores.Each(func(_ string, v float64) {
		accs = append(accs, v)
	})

	if len(ious) > 0 {
		c.AvgIOU = mean(ious)
		c.MaxIOU, c.MinIOU = ious[0], ious[0]
		for _, v := range ious[1:] {
			c.MaxIOU = math.Max(c.MaxIOU, v)
			c.MinIOU = math.Min(c.MinIOU, v)
		}
	}
	if len(ious) > 1 {
		var sum float64
		for _, v := range ious {
			sum += (v - c.AvgIOU) * (v - c.AvgIOU)
		}
		c.IOUVariance = sum / float64(len(ious))
	}
	c.AvgAccuracy = mean(accs)
	c.OthersAvgIOU = mean(others)
	c.MyAdvantage = c.MyIOU - c.OthersAvgIOU

	switch {
	case c.MyAdvantage > advantageMargin && c.MyIOU > advantageMinIOU:
		c.Category = entity.CategoryMyAdvantage
	case c.AvgIOU >= bestAvgIOU:
		c.Category = entity.CategoryBest
	case c.AvgIOU <= worstAvgIOU:
		c.Category = entity.CategoryWorst
	case c.IOUVariance > highVarianceLevel:
		c.Category = entity.CategoryHighVariance
	default:
		c.Category = entity.CategoryTypical
	}
	return c
}

// SortCases сортирует разборы по ключу; неизвестный ключ сортирует по avg_iou
func SortCases(cases []entity.CaseAnalysis, key SortKey, desc bool) {
	if key == SortByFilename {
		sort.SliceStable(cases, func(i, j int) bool {
			if desc {
				return strings.Compare(cases[i].Filename, cases[j].Filename) > 0
			}
			return cases[i].Filename < cases[j].Filename
		})
		return
	}

	value := caseValue(key)
	sort.SliceStable(cases, func(i, j int) bool {
		if desc {
			return value(cases[i]) > value(cases[j])
		}
		return value(cases[i]) < value(cases[j])
	})
}

// ParseSortKey проверяет имя ключа сортировки
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case SortByFilename, SortByAvgIOU, SortByMaxIOU, SortByMinIOU,
		SortByIOUVariance, SortByAvgAccuracy, SortByMyAdvantage:
		return k, nil
	case "":
		return SortByMyAdvantage, nil
	default:
		return "", fmt.Errorf("unknown sort key %q", s)
	}
}

// FilterCases оставляет разборы заданной категории; пустая категория не фильтрует
func FilterCases(cases []entity.CaseAnalysis, category entity.CaseCategory) []entity.CaseAnalysis {
	if category == "" {
		return cases
	}
	out := make([]entity.CaseAnalysis, 0, len(cases))
	for _, c := range cases {
		if c.Category == category {
			out = append(out, c)
		}
	}
	return out
}

func caseValue(key SortKey) func(entity.CaseAnalysis) float64 {
	switch key {
	case SortByMaxIOU:
		return func(c entity.CaseAnalysis) float64 { return c.MaxIOU }
	case SortByMinIOU:
		return func(c entity.CaseAnalysis) float64 { return c.MinIOU }
	case SortByIOUVariance:
		return func(c entity.CaseAnalysis) float64 { return c.IOUVariance }
	case SortByAvgAccuracy:
		return func(c entity.CaseAnalysis) float64 { return c.AvgAccuracy }
	case SortByMyAdvantage:
		return func(c entity.CaseAnalysis) float64 { return c.MyAdvantage }
	default:
		return func(c entity.CaseAnalysis) float64 { return c.AvgIOU }
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
