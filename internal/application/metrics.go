package app

import (
	"mask-compare/internal/domain/entity"
	"mask-compare/internal/domain/port"
)

// MetricsCalculator считает IOU и точность между двумя масками.
// Результаты не кэшируются: каждый вызов заново декодирует файлы.
type MetricsCalculator struct {
	loader port.MaskLoader
}

// NewMetricsCalculator создаёт калькулятор поверх декодера
func NewMetricsCalculator(loader port.MaskLoader) *MetricsCalculator {
	return &MetricsCalculator{loader: loader}
}

// IOU пересечение над объединением переднего плана
func (c *MetricsCalculator) IOU(pathA, pathB string) (float64, error) {
	counts, err := c.count(pathA, pathB)
	if err != nil {
		return 0, err
	}
	return counts.IOU(), nil
}

// Accuracy доля пикселей с одинаковой классификацией
func (c *MetricsCalculator) Accuracy(pathA, pathB string) (float64, error) {
	counts, err := c.count(pathA, pathB)
	if err != nil {
		return 0, err
	}
	return counts.Accuracy(), nil
}

// Pair загружает обе маски и проверяет совпадение размеров
func (c *MetricsCalculator) Pair(pathA, pathB string) (entity.PixelMaskPair, error) {
	a, err := c.loader.Load(pathA)
	if err != nil {
		return entity.PixelMaskPair{}, &entity.DecodeError{Side: "first", Path: pathA, Err: err}
	}
	b, err := c.loader.Load(pathB)
	if err != nil {
		return entity.PixelMaskPair{}, &entity.DecodeError{Side: "second", Path: pathB, Err: err}
	}
	if a.Size != b.Size {
		return entity.PixelMaskPair{}, &entity.DimensionMismatchError{
			PathA: pathA, SizeA: a.Size,
			PathB: pathB, SizeB: b.Size,
		}
	}
	return entity.PixelMaskPair{A: a, B: b}, nil
}

func (c *MetricsCalculator) count(pathA, pathB string) (entity.PairCounts, error) {
	pair, err := c.Pair(pathA, pathB)
	if err != nil {
		return entity.PairCounts{}, err
	}
	return pair.Count(), nil
}
