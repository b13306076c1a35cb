package taskapimodels

import (
	"ops-tools-backend/models"
	dbmodels "ops-tools-backend/models/db"

	"github.com/pkg/errors"
)

// DependencyAddData - пакетное добавление зависимостей, применяется целиком либо никак
type DependencyAddData struct {
	DependsOnTaskIDs []string `json:"depends_on_task_ids"`
}

func (d DependencyAddData) Validate() error {
	if len(d.DependsOnTaskIDs) == 0 {
		return errors.New("не указаны блокирующие задачи")
	}
	seen := make(map[string]bool, len(d.DependsOnTaskIDs))
	for _, id := range d.DependsOnTaskIDs {
		if id == "" {
			return errors.New("пустой идентификатор задачи")
		}
		if seen[id] {
			return errors.Errorf("задача %v указана повторно", id)
		}
		seen[id] = true
	}
	return nil
}

type TaskRef struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Status     models.TaskStatus `json:"status"`
	StatusName string            `json:"status_name"`
}

func TaskRefConvert(rec dbmodels.Task) TaskRef {
	return TaskRef{
		ID:         rec.ID,
		Name:       rec.Name,
		Status:     rec.Status,
		StatusName: rec.Status.ToHuman(),
	}
}

type DependencyView struct {
	ID        string  `json:"id"`
	DependsOn TaskRef `json:"depends_on"`
}

// DependencyInfoView - прямые зависимости задачи и вычисленное состояние блокировки.
// Считается на каждый запрос, на задаче не кэшируется.
type DependencyInfoView struct {
	Dependencies  []DependencyView `json:"dependencies"`
	IsBlocked     bool             `json:"is_blocked"`
	BlockingTasks []TaskRef        `json:"blocking_tasks"`
}
