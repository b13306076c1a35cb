package dbmodels

import (
	"ops-tools-backend/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Task struct {
	BaseSpaceModel
	ProjectID   string `gorm:"type:varchar(36);index:idx_project"`
	Name        string `gorm:"type:varchar(255)"`
	Description string
	Status      models.TaskStatus `gorm:"type:varchar(20)"`
	// BlockReason - причина ручной блокировки, обязательна при статусе BLOCKED.
	// Ручная блокировка не зависит от блокировки по графу зависимостей.
	BlockReason string
	AssigneeID  *string    `gorm:"type:varchar(36)"`
	Assignee    *SpaceUser `gorm:"foreignKey:AssigneeID"`
}

func (t *Task) AfterDelete(tx *gorm.DB) (err error) {
	if t.ID == "" {
		return nil
	}
	tx.Clauses(clause.Returning{}).Where("task_id = ? OR depends_on_id = ?", t.ID, t.ID).Delete(&TaskDependency{})
	return
}

func (t *Task) Validate() error {
	if err := t.BaseSpaceModel.Validate(); err != nil {
		return err
	}
	if t.ProjectID == "" {
		return errors.New("отсутсвует ссылка на проект")
	}
	if t.Name == "" {
		return errors.New("не указано название задачи")
	}
	if !t.Status.IsValid() {
		return errors.Errorf("неизвестный статус задачи: %v", t.Status)
	}
	if t.Status == models.TaskStatusBlocked && t.BlockReason == "" {
		return errors.New("не указана причина блокировки")
	}
	return nil
}

// TaskDependency - ребро "task зависит от depends_on" в пределах одного проекта.
// Создаётся и удаляется целиком, не изменяется.
type TaskDependency struct {
	BaseSpaceModel
	ProjectID   string `gorm:"type:varchar(36);index:idx_dep_project"`
	TaskID      string `gorm:"type:varchar(36);uniqueIndex:idx_dep_edge"`
	DependsOnID string `gorm:"type:varchar(36);uniqueIndex:idx_dep_edge"`
	DependsOn   *Task  `gorm:"foreignKey:DependsOnID"`
}
