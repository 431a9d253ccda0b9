package httpapi

import "mask-compare/internal/domain/entity"

type scanRequest struct {
	Path string `json:"path" binding:"required"`
}

type scanResponse struct {
	Files []string `json:"files"`
}

type probeResponse struct {
	IsFile bool `json:"is_file"`
}

type validateRequest struct {
	Folders []string `json:"folders"`
}

type compareRequest struct {
	OriginalFolder    string                    `json:"original_folder"`
	GroundTruthFolder string                    `json:"gt_folder" binding:"required"`
	ResultFolder      string                    `json:"my_folder" binding:"required"`
	ComparisonFolders []entity.ComparisonSource `json:"comparison_folders"`
	CommonFiles       []string                  `json:"common_files"`
	Progress          bool                      `json:"progress"`
}

type compareResponse struct {
	RunID   string                     `json:"run_id"`
	Results []*entity.ComparisonResult `json:"results"`
}

type exportRequest struct {
	ExportFolder string                   `json:"export_folder" binding:"required"`
	ImageFiles   []entity.ExportSelection `json:"image_files"`
}

type exportResponse struct {
	*entity.ExportOutcome
	Message string `json:"message"`
}

type analysisRequest struct {
	Results  []*entity.ComparisonResult `json:"results"`
	SortBy   string                     `json:"sort_by"`
	Desc     *bool                      `json:"desc"`
	Category entity.CaseCategory        `json:"category"`
}

type analysisResponse struct {
	Cases []entity.CaseAnalysis `json:"cases"`
}
