package taskapimodels

import (
	"time"

	"ops-tools-backend/models"
	dbmodels "ops-tools-backend/models/db"

	"github.com/pkg/errors"
)

type ProjectCreateData struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (p ProjectCreateData) Validate() error {
	if p.Name == "" {
		return errors.New("не указано название проекта")
	}
	return nil
}

type TaskCreateData struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	AssigneeID  *string `json:"assignee_id"`
}

func (t TaskCreateData) Validate() error {
	if t.Name == "" {
		return errors.New("не указано название задачи")
	}
	return nil
}

type TaskStatusData struct {
	Status      models.TaskStatus `json:"status"`
	BlockReason string            `json:"block_reason,omitempty"`
}

func (t TaskStatusData) Validate() error {
	if !t.Status.IsValid() {
		return errors.Errorf("неизвестный статус задачи: %v", t.Status)
	}
	if t.Status == models.TaskStatusBlocked && t.BlockReason == "" {
		return errors.New("не указана причина блокировки")
	}
	return nil
}

type TaskView struct {
	ID          string            `json:"id"`
	ProjectID   string            `json:"project_id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
	StatusName  string            `json:"status_name"`
	BlockReason string            `json:"block_reason,omitempty"`
	AssigneeID  *string           `json:"assignee_id,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

func TaskConvert(rec dbmodels.Task) TaskView {
	return TaskView{
		ID:          rec.ID,
		ProjectID:   rec.ProjectID,
		Name:        rec.Name,
		Description: rec.Description,
		Status:      rec.Status,
		StatusName:  rec.Status.ToHuman(),
		BlockReason: rec.BlockReason,
		AssigneeID:  rec.AssigneeID,
		CreatedAt:   rec.CreatedAt,
	}
}
