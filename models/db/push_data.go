package dbmodels

import "ops-tools-backend/models"

// PushData - не доставленные пуши, отправляются при переподключении клиента
type PushData struct {
	BaseModel
	UserID string          `gorm:"type:varchar(36);index:idx_user"`
	Code   models.PushCode `gorm:"type:varchar(255);index:idx_push_code"`
	Msg    string
	Title  string
}
