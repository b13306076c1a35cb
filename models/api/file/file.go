package fileapimodels

import (
	"time"

	dbmodels "ops-tools-backend/models/db"
)

type FileView struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	FileType    dbmodels.FileType `json:"file_type"`
	ContentType string            `json:"content_type"`
	Size        int64             `json:"size"`
	CreatedAt   time.Time         `json:"created_at"`
}

func FileConvert(rec dbmodels.FileStorage) FileView {
	return FileView{
		ID:          rec.ID,
		Name:        rec.Name,
		FileType:    rec.FileType,
		ContentType: rec.ContentType,
		Size:        rec.Size,
		CreatedAt:   rec.CreatedAt,
	}
}
