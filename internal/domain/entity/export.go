package entity

import (
	"fmt"
	"strings"
)

// ExportSelection выбранный файл и пути его версий по меткам источников
type ExportSelection struct {
	Filename string              `json:"filename"`
	Paths    *LabeledMap[string] `json:"model_paths"`
}

// ExportOutcome итог экспорта
type ExportOutcome struct {
	Exported    int      `json:"exported"`    // выборок, для которых создана папка
	Copied      int      `json:"copied"`      // успешно скопированных файлов
	Total       int      `json:"total"`       // выборок в запросе
	Failures    []string `json:"failures"`    // сообщения об ошибках по порядку
	Destination string   `json:"destination"` // корень экспорта
}

// Message сводка для пользователя
func (o ExportOutcome) Message() string {
	if len(o.Failures) == 0 {
		return fmt.Sprintf("exported %d images to %s", o.Exported, o.Destination)
	}
	return fmt.Sprintf("partially exported (%d/%d): %s", o.Exported, o.Total, strings.Join(o.Failures, "; "))
}

// ImageDirName имя подпапки для файла: все точки заменяются на подчёркивания
func ImageDirName(filename string) string {
	return strings.ReplaceAll(filename, ".", "_")
}

var labelReplacer = strings.NewReplacer("/", "_", "\\", "_", ":", "_")

// ExportFileName имя копии внутри подпапки: {метка}_{файл}
func ExportFileName(label, filename string) string {
	return labelReplacer.Replace(label) + "_" + filename
}
