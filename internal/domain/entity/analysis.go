package entity

// CaseCategory класс случая по результатам сравнения
type CaseCategory string

const (
	CategoryMyAdvantage  CaseCategory = "my_advantage"
	CategoryBest         CaseCategory = "best"
	CategoryWorst        CaseCategory = "worst"
	CategoryHighVariance CaseCategory = "high_variance"
	CategoryTypical      CaseCategory = "typical"
)

// CaseAnalysis сводные показатели одного файла
type CaseAnalysis struct {
	Filename     string       `json:"filename"`
	AvgIOU       float64      `json:"avg_iou"`
	MaxIOU       float64      `json:"max_iou"`
	MinIOU       float64      `json:"min_iou"`
	IOUVariance  float64      `json:"iou_variance"`
	AvgAccuracy  float64      `json:"avg_accuracy"`
	MyIOU        float64      `json:"my_iou"`
	OthersAvgIOU float64      `json:"others_avg_iou"`
	MyAdvantage  float64      `json:"my_advantage"`
	Category     CaseCategory `json:"category"`
}
