package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateFileRequest struct {
	FileName        string                 `json:"fileName" validate:"required,min=1"`
	JsonData        map[string]interface{} `json:"jsonData" validate:"required"`
	Summary         interface{}            `json:"summary"`
	Overview        interface{}            `json:"overview"`
	Recommendations interface{}            `json:"recommendations"`
}

type AppendVersionRequest struct {
	JsonData        map[string]interface{} `json:"jsonData" validate:"required"`
	Summary         interface{}            `json:"summary"`
	Overview        interface{}            `json:"overview"`
	Recommendations interface{}            `json:"recommendations"`
	NumberOfRefines int                    `json:"number_of_refines" validate:"omitempty,gte=0"`
}

type SetAnalysisRequest struct {
	Analysis string `json:"analysis" validate:"required"`
}

type FileResponse struct {
	Id              uuid.UUID              `json:"id"`
	Name            string                 `json:"name"`
	OriginalVersion map[string]interface{} `json:"original_version,omitempty"`
	Analysis        *string                `json:"analysis,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

type VersionResponse struct {
	Version         int                    `json:"version"`
	Content         map[string]interface{} `json:"content"`
	Summary         interface{}            `json:"summary,omitempty"`
	Overview        interface{}            `json:"overview,omitempty"`
	Recommendations interface{}            `json:"recommendations,omitempty"`
	AllVersions     []int                  `json:"all_versions"`
}

// AppendVersionResponse carries the complete annotation maps after an
// edit, keyed by version number, not just the newest entry.
type AppendVersionResponse struct {
	Version         int                    `json:"version"`
	AllVersions     []int                  `json:"all_versions"`
	Summary         map[string]interface{} `json:"summary"`
	Overview        map[string]interface{} `json:"overview"`
	Recommendations map[string]interface{} `json:"recommendations"`
}

type FileListItem struct {
	Id           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	UserId       uuid.UUID `json:"user_id,omitempty"`
	VersionCount int       `json:"version_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
