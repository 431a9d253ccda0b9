package entity

// ProgressEventName имя канала уведомлений о прогрессе
const ProgressEventName = "progress_update"

// ProgressCompleteLabel метка финального события
const ProgressCompleteLabel = "completed"

// ProgressEvent один тик прогресса пакетного сравнения
type ProgressEvent struct {
	Current     int     `json:"current"`      // обработано файлов
	Total       int     `json:"total"`        // всего файлов
	Percentage  float64 `json:"percentage"`   // 0..100
	CurrentFile string  `json:"current_file"` // текущий файл или метка завершения
}

// NewProgressEvent событие перед обработкой файла с индексом current
func NewProgressEvent(current, total int, file string) ProgressEvent {
	var pct float64
	if total > 0 {
		pct = float64(current) / float64(total) * 100
	}
	return ProgressEvent{
		Current:     current,
		Total:       total,
		Percentage:  pct,
		CurrentFile: file,
	}
}

// CompletedProgressEvent финальное событие, всегда 100%
func CompletedProgressEvent(total int) ProgressEvent {
	return ProgressEvent{
		Current:     total,
		Total:       total,
		Percentage:  100,
		CurrentFile: ProgressCompleteLabel,
	}
}

// Done сообщает, что событие финальное
func (e ProgressEvent) Done() bool {
	return e.Current == e.Total && e.Percentage == 100
}
