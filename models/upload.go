package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Upload storage backends.
const (
	StorageBackendGCS   = "gcs"
	StorageBackendLocal = "local"
)

// AdminUpload records one attachment uploaded through the admin API.
// ObjectName/ObjectLink identify the stored object in whichever backend
// took the file; Metadata keeps whatever extra attributes the backend
// reported (content type, size, generation).
type AdminUpload struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"     json:"id"`
	FileName       string         `gorm:"size:255;not null"        json:"fileName"`
	Description    string         `gorm:"type:text"                json:"description"`
	StorageBackend string         `gorm:"size:20;not null"         json:"storageBackend"`
	ObjectName     string         `gorm:"size:512;not null;index"  json:"objectName"`
	ObjectLink     string         `gorm:"size:1024"                json:"objectLink"`
	Metadata       datatypes.JSON `gorm:"type:jsonb"               json:"metadata,omitempty"`
	UploadedAt     time.Time      `gorm:"autoCreateTime"           json:"uploadedAt"`
}

func (AdminUpload) TableName() string {
	return "admin_uploads"
}

func (u *AdminUpload) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}
