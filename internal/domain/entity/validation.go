package entity

// ValidationReport итог проверки набора папок.
// IsValid истинно тогда и только тогда, когда MissingFiles пуст и CommonFiles не пуст.
type ValidationReport struct {
	IsValid      bool                  `json:"is_valid"`
	CommonFiles  []string              `json:"common_files"`
	MissingFiles *LabeledMap[[]string] `json:"missing_files"`
}

// NewValidationReport собирает отчёт и вычисляет флаг валидности
func NewValidationReport(common []string, missing *LabeledMap[[]string]) *ValidationReport {
	if common == nil {
		common = []string{}
	}
	if missing == nil {
		missing = NewLabeledMap[[]string]()
	}
	return &ValidationReport{
		IsValid:      missing.Len() == 0 && len(common) > 0,
		CommonFiles:  common,
		MissingFiles: missing,
	}
}
