package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"ops-tools-backend/models"
)

type Approval struct {
	BaseSpaceModel
	LeaveRequestID string     `gorm:"type:varchar(36);index:idx_leave_request"`
	ApproverID     string     `gorm:"type:varchar(36)"`
	Approver       *SpaceUser `gorm:"foreignKey:ApproverID"`
	// ApprovalOrder - 1-based позиция в цепочке, уникальна в пределах заявки,
	// назначается при создании заявки и не меняется
	ApprovalOrder int                   `gorm:"index:idx_leave_request"`
	Status        models.ApprovalStatus `gorm:"type:varchar(20)"`
	Comment       string
	DecidedAt     *time.Time
}

type ApprovalHistory struct {
	BaseSpaceModel
	LeaveRequestID string                `gorm:"type:varchar(36);index:idx_history_leave"`
	ApprovalID     string                `gorm:"type:varchar(36)"`
	ApproverID     string                `gorm:"type:varchar(36)"`
	Approver       *SpaceUser            `gorm:"foreignKey:ApproverID"`
	Status         models.ApprovalStatus `gorm:"type:varchar(20)"`
	Comment        string
	Changes        EntityChanges         `gorm:"type:jsonb"`
}

type EntityChanges struct {
	Description string         `json:"description"` // Комментрий
	Data        []FieldChanges `json:"data"`        // Список изменений
}

type FieldChanges struct {
	Field    string `json:"field"`     // Измененное поле
	OldValue any    `json:"old_value"` // Старое значение
	NewValue any    `json:"new_value"` // Новое значение
}

func (j EntityChanges) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *EntityChanges) Scan(value any) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}
