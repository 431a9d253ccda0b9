package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"mask-compare/internal/domain/entity"
)

// Job описание пакетного запуска для CLI
type Job struct {
	Original    string                    `yaml:"original"`
	GroundTruth string                    `yaml:"ground_truth"`
	Result      string                    `yaml:"result"`
	Comparisons []entity.ComparisonSource `yaml:"comparisons"`
	Export      *JobExport                `yaml:"export"`
}

// JobExport настройки экспорта; пустой список файлов означает все общие файлы
type JobExport struct {
	Destination string   `yaml:"destination"`
	Files       []string `yaml:"files"`
}

// LoadJob читает YAML-манифест; относительные пути считаются от каталога манифеста
func LoadJob(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read job: %w", err)
	}

	var job Job
	if err := yaml.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("parse job %s: %w", path, err)
	}
	if err := job.Validate(); err != nil {
		return nil, fmt.Errorf("job %s: %w", path, err)
	}

	job.resolve(filepath.Dir(path))
	return &job, nil
}

// Validate проверяет обязательные поля
func (j *Job) Validate() error {
	var errs []error
	if j.GroundTruth == "" {
		errs = append(errs, errors.New("ground_truth is required"))
	}
	if j.Result == "" {
		errs = append(errs, errors.New("result is required"))
	}
	seen := make(map[string]bool)
	for i, c := range j.Comparisons {
		if c.Name == "" || c.Path == "" {
			errs = append(errs, fmt.Errorf("comparisons[%d]: name and path are required", i))
			continue
		}
		if seen[c.Name] {
			errs = append(errs, fmt.Errorf("comparisons[%d]: duplicate name %q", i, c.Name))
		}
		seen[c.Name] = true
	}
	if j.Export != nil && j.Export.Destination == "" {
		errs = append(errs, errors.New("export.destination is required"))
	}
	return errors.Join(errs...)
}

// Folders список папок для валидации в порядке ролей.
// Без папки оригиналов её место занимает эталон.
func (j *Job) Folders() []string {
	first := j.Original
	if first == "" {
		first = j.GroundTruth
	}
	folders := []string{first, j.GroundTruth, j.Result}
	for _, c := range j.Comparisons {
		folders = append(folders, c.Path)
	}
	return folders
}

func (j *Job) resolve(base string) {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	j.Original = abs(j.Original)
	j.GroundTruth = abs(j.GroundTruth)
	j.Result = abs(j.Result)
	for i := range j.Comparisons {
		j.Comparisons[i].Path = abs(j.Comparisons[i].Path)
	}
	if j.Export != nil {
		j.Export.Destination = abs(j.Export.Destination)
	}
}
