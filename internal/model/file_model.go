package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// File stores the version history as JSONB maps keyed by the version
// number as a string. Keys are parsed back to integers at the mapper
// boundary; comparisons are always numeric.
type File struct {
	Id              uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name            string            `gorm:"type:varchar(255);not null"`
	UserId          uuid.UUID         `gorm:"type:uuid;not null;index"`
	OriginalVersion datatypes.JSONMap `gorm:"type:jsonb"`
	EditVersions    datatypes.JSONMap `gorm:"type:jsonb"`
	Summary         datatypes.JSONMap `gorm:"type:jsonb"`
	Overview        datatypes.JSONMap `gorm:"type:jsonb"`
	Recommendations datatypes.JSONMap `gorm:"type:jsonb"`
	Analysis        *string           `gorm:"type:text"`
	CreatedAt       time.Time         `gorm:"autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime"`
}

func (File) TableName() string {
	return "files"
}
