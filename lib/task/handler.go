package taskhandler

import (
	"ops-tools-backend/db"
	pushhandler "ops-tools-backend/lib/push"
	taskdependencystore "ops-tools-backend/lib/task-dependency/store"
	taskstore "ops-tools-backend/lib/task/store"
	"ops-tools-backend/models"
	taskapimodels "ops-tools-backend/models/api/task"
	dbmodels "ops-tools-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(spaceID, projectID string, data taskapimodels.TaskCreateData) (id string, err error)
	GetByID(spaceID, projectID, id string) (taskapimodels.TaskView, error)
	ListByProject(spaceID, projectID string) ([]taskapimodels.TaskView, error)
	ChangeStatus(spaceID, projectID, id string, data taskapimodels.TaskStatusData) (taskapimodels.TaskView, error)
	Delete(spaceID, projectID, id string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:    taskstore.NewInstance(db.DB),
		depStore: taskdependencystore.NewInstance(db.DB),
	}
}

type impl struct {
	store    taskstore.Provider
	depStore taskdependencystore.Provider
}

func (i impl) getLogger(spaceID, projectID string) *log.Entry {
	return log.
		WithField("space_id", spaceID).
		WithField("project_id", projectID)
}

func (i impl) Create(spaceID, projectID string, data taskapimodels.TaskCreateData) (id string, err error) {
	logger := i.getLogger(spaceID, projectID)
	if err = data.Validate(); err != nil {
		return "", err
	}
	rec := dbmodels.Task{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		ProjectID:   projectID,
		Name:        data.Name,
		Description: data.Description,
		Status:      models.TaskStatusTodo,
		AssigneeID:  data.AssigneeID,
	}
	if err = rec.Validate(); err != nil {
		return "", err
	}
	id, err = i.store.Create(rec)
	if err != nil {
		logger.WithError(err).Error("ошибка создания задачи")
		return "", err
	}
	logger.
		WithField("rec_id", id).
		Info("создана задача")
	return id, nil
}

func (i impl) GetByID(spaceID, projectID, id string) (taskapimodels.TaskView, error) {
	rec, err := i.getRec(spaceID, projectID, id)
	if err != nil {
		return taskapimodels.TaskView{}, err
	}
	return taskapimodels.TaskConvert(*rec), nil
}

func (i impl) ListByProject(spaceID, projectID string) ([]taskapimodels.TaskView, error) {
	recList, err := i.store.ListByProject(spaceID, projectID)
	if err != nil {
		i.getLogger(spaceID, projectID).
			WithError(err).
			Error("ошибка получения списка задач")
		return nil, err
	}
	result := make([]taskapimodels.TaskView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, taskapimodels.TaskConvert(rec))
	}
	return result, nil
}

// ChangeStatus меняет статус задачи. Смена статуса никогда не блокируется
// зависимостями - блокировка это вычисляемое свойство, а не ограничение
// переходов. После перевода в завершённый статус зависимые задачи,
// оставшиеся без блокирующих, получают уведомление.
func (i impl) ChangeStatus(spaceID, projectID, id string, data taskapimodels.TaskStatusData) (taskapimodels.TaskView, error) {
	logger := i.getLogger(spaceID, projectID).
		WithField("rec_id", id)
	if err := data.Validate(); err != nil {
		return taskapimodels.TaskView{}, err
	}
	rec, err := i.getRec(spaceID, projectID, id)
	if err != nil {
		return taskapimodels.TaskView{}, err
	}

	wasBlocking := rec.Status.Blocks()
	updMap := map[string]interface{}{
		"status":       data.Status,
		"block_reason": data.BlockReason,
	}
	if err = i.store.Update(spaceID, id, updMap); err != nil {
		logger.WithError(err).Error("ошибка смены статуса задачи")
		return taskapimodels.TaskView{}, err
	}
	logger.
		WithField("status", data.Status).
		Info("изменён статус задачи")

	if wasBlocking && data.Status.IsFinished() {
		go i.notifyUnblocked(spaceID, id)
	}

	rec.Status = data.Status
	rec.BlockReason = data.BlockReason
	return taskapimodels.TaskConvert(*rec), nil
}

func (i impl) Delete(spaceID, projectID, id string) error {
	logger := i.getLogger(spaceID, projectID).
		WithField("rec_id", id)
	rec, err := i.getRec(spaceID, projectID, id)
	if err != nil {
		return err
	}
	if err = i.store.Delete(spaceID, rec.ID); err != nil {
		logger.WithError(err).Error("ошибка удаления задачи")
		return err
	}
	logger.Info("задача удалена")
	return nil
}

// notifyUnblocked уведомляет исполнителей задач, которые после завершения
// prerequisiteID остались без блокирующих зависимостей
func (i impl) notifyUnblocked(spaceID, prerequisiteID string) {
	logger := log.
		WithField("space_id", spaceID).
		WithField("rec_id", prerequisiteID)
	dependents, err := i.depStore.ListDependents(spaceID, prerequisiteID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения зависимых задач")
		return
	}
	for _, edge := range dependents {
		edges, err := i.depStore.ListByTask(spaceID, edge.TaskID)
		if err != nil {
			logger.WithError(err).Error("ошибка получения зависимостей задачи")
			continue
		}
		if hasBlocking(edges) {
			continue
		}
		task, err := i.store.GetByID(spaceID, edge.TaskID)
		if err != nil || task == nil {
			continue
		}
		if task.AssigneeID == nil || *task.AssigneeID == "" {
			continue
		}
		if pushhandler.Instance != nil {
			pushhandler.Instance.SendNotification([]string{*task.AssigneeID},
				models.GetPushTaskUnblocked(task.Name))
		}
	}
}

func hasBlocking(edges []dbmodels.TaskDependency) bool {
	for _, edge := range edges {
		if edge.DependsOn != nil && edge.DependsOn.Status.Blocks() {
			return true
		}
	}
	return false
}

func (i impl) getRec(spaceID, projectID, id string) (*dbmodels.Task, error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		i.getLogger(spaceID, projectID).
			WithField("rec_id", id).
			WithError(err).
			Error("ошибка получения задачи")
		return nil, err
	}
	if rec == nil || rec.ProjectID != projectID {
		return nil, errors.Wrapf(models.ErrUnknownTask, "задача %v", id)
	}
	return rec, nil
}
