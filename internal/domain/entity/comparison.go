package entity

// Metric имя вычисляемой метрики
type Metric string

const (
	MetricIOU      Metric = "iou"
	MetricAccuracy Metric = "accuracy"
)

// MetricFailure не удалось посчитать метрику для пары файл/источник
type MetricFailure struct {
	Source string `json:"source"`
	Metric Metric `json:"metric"`
	Reason string `json:"reason"`
}

// ComparisonResult оценки одного общего файла по всем источникам.
// Порядок меток совпадает с порядком источников в запросе.
type ComparisonResult struct {
	Filename       string               `json:"filename"`
	IOUScores      *LabeledMap[float64] `json:"iou_scores"`
	AccuracyScores *LabeledMap[float64] `json:"accuracy_scores"`
	Paths          *LabeledMap[string]  `json:"paths"`
	Failures       []MetricFailure      `json:"failures,omitempty"`
}

// NewComparisonResult создаёт пустую запись для файла
func NewComparisonResult(filename string) *ComparisonResult {
	return &ComparisonResult{
		Filename:       filename,
		IOUScores:      NewLabeledMap[float64](),
		AccuracyScores: NewLabeledMap[float64](),
		Paths:          NewLabeledMap[string](),
	}
}

// Scored сообщает, посчитана ли метрика для источника.
// Отличает настоящий 0.0 от подставленного при ошибке.
func (r *ComparisonResult) Scored(source string, metric Metric) bool {
	for _, f := range r.Failures {
		if f.Source == source && f.Metric == metric {
			return false
		}
	}
	var ok bool
	switch metric {
	case MetricIOU:
		_, ok = r.IOUScores.Get(source)
	case MetricAccuracy:
		_, ok = r.AccuracyScores.Get(source)
	}
	return ok
}

// Sources метки источников, для которых есть оценки (основной результат первым)
func (r *ComparisonResult) Sources() []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range []*LabeledMap[float64]{r.IOUScores, r.AccuracyScores} {
		for _, label := range m.Labels() {
			if !seen[label] {
				seen[label] = true
				out = append(out, label)
			}
		}
	}
	for _, f := range r.Failures {
		if !seen[f.Source] {
			seen[f.Source] = true
			out = append(out, f.Source)
		}
	}
	return out
}
