package taskdependencyhandler

import (
	"context"
	"strings"
	"time"

	"ops-tools-backend/db"
	"ops-tools-backend/lib/task-dependency/graph"
	taskdependencystore "ops-tools-backend/lib/task-dependency/store"
	taskstore "ops-tools-backend/lib/task/store"
	"ops-tools-backend/lib/utils/lock"
	"ops-tools-backend/models"
	taskapimodels "ops-tools-backend/models/api/task"
	dbmodels "ops-tools-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const lockWait = 3 * time.Second

type Provider interface {
	Add(ctx context.Context, spaceID, projectID, taskID string, data taskapimodels.DependencyAddData) error
	Remove(ctx context.Context, spaceID, projectID, dependencyID string) error
	DependencyInfo(spaceID, projectID, taskID string) (taskapimodels.DependencyInfoView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:     taskdependencystore.NewInstance(db.DB),
		taskStore: taskstore.NewInstance(db.DB),
	}
}

type impl struct {
	store     taskdependencystore.Provider
	taskStore taskstore.Provider
}

func (i impl) getLogger(spaceID, projectID string) *log.Entry {
	return log.
		WithField("space_id", spaceID).
		WithField("project_id", projectID)
}

// Add добавляет пакет рёбер "taskID зависит от depends_on". Пакет применяется
// целиком либо никак: первое нарушение откатывает все рёбра пакета.
// Проверки выполняются под блокировкой графа проекта, чтобы параллельные
// запросы не собрали цикл из двух по отдельности корректных рёбер.
func (i impl) Add(ctx context.Context, spaceID, projectID, taskID string, data taskapimodels.DependencyAddData) error {
	logger := i.getLogger(spaceID, projectID).
		WithField("task_id", taskID)
	if err := data.Validate(); err != nil {
		return err
	}

	locked, err := lock.WithDelay(ctx, "project_deps:"+projectID, lockWait, func() error {
		return db.DB.Transaction(func(tx *gorm.DB) error {
			store := taskdependencystore.NewInstance(tx)
			tStore := taskstore.NewInstance(tx)

			tasks, err := tStore.ListByProject(spaceID, projectID)
			if err != nil {
				return errors.Wrap(err, "ошибка получения задач проекта")
			}
			edges, err := store.ListByProject(spaceID, projectID)
			if err != nil {
				return errors.Wrap(err, "ошибка получения зависимостей проекта")
			}
			g, known := buildGraph(tasks, edges)

			for _, dependsOnID := range data.DependsOnTaskIDs {
				if err = checkEdge(g, known, taskID, dependsOnID); err != nil {
					return err
				}
				// ребро участвует в проверках остатка пакета
				g.AddEdge(taskID, dependsOnID)
				rec := dbmodels.TaskDependency{
					BaseSpaceModel: dbmodels.BaseSpaceModel{
						SpaceID: spaceID,
					},
					ProjectID:   projectID,
					TaskID:      taskID,
					DependsOnID: dependsOnID,
				}
				if _, err = store.Create(rec); err != nil {
					return errors.Wrap(err, "ошибка сохранения зависимости")
				}
			}
			return nil
		})
	})
	if err != nil {
		if !models.IsDomainError(err) {
			logger.WithError(err).Error("ошибка добавления зависимостей")
		}
		return err
	}
	if !locked {
		return errors.New("граф проекта изменяется другим запросом, повторите попытку")
	}
	logger.
		WithField("edge_count", len(data.DependsOnTaskIDs)).
		Info("добавлены зависимости задачи")
	return nil
}

// Remove удаляет одно ребро. Удаление не может сломать ацикличность,
// поэтому проверяется только существование ребра.
func (i impl) Remove(ctx context.Context, spaceID, projectID, dependencyID string) error {
	logger := i.getLogger(spaceID, projectID).
		WithField("rec_id", dependencyID)

	locked, err := lock.WithDelay(ctx, "project_deps:"+projectID, lockWait, func() error {
		rec, err := i.store.GetByID(spaceID, dependencyID)
		if err != nil {
			return err
		}
		if rec == nil || rec.ProjectID != projectID {
			return errors.New("зависимость не найдена")
		}
		return i.store.Delete(spaceID, dependencyID)
	})
	if err != nil {
		logger.WithError(err).Error("ошибка удаления зависимости")
		return err
	}
	if !locked {
		return errors.New("граф проекта изменяется другим запросом, повторите попытку")
	}
	logger.Info("зависимость удалена")
	return nil
}

// DependencyInfo - прямые зависимости задачи и состояние блокировки.
// Блокировка вычисляется на каждый запрос по текущим статусам зависимостей
// и нигде не хранится.
func (i impl) DependencyInfo(spaceID, projectID, taskID string) (taskapimodels.DependencyInfoView, error) {
	logger := i.getLogger(spaceID, projectID).
		WithField("task_id", taskID)
	task, err := i.taskStore.GetByID(spaceID, taskID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения задачи")
		return taskapimodels.DependencyInfoView{}, err
	}
	if task == nil || task.ProjectID != projectID {
		return taskapimodels.DependencyInfoView{}, models.ErrUnknownTask
	}

	edges, err := i.store.ListByTask(spaceID, taskID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения зависимостей задачи")
		return taskapimodels.DependencyInfoView{}, err
	}

	result := taskapimodels.DependencyInfoView{
		Dependencies:  make([]taskapimodels.DependencyView, 0, len(edges)),
		BlockingTasks: []taskapimodels.TaskRef{},
	}
	for _, edge := range edges {
		if edge.DependsOn == nil {
			continue
		}
		result.Dependencies = append(result.Dependencies, taskapimodels.DependencyView{
			ID:        edge.ID,
			DependsOn: taskapimodels.TaskRefConvert(*edge.DependsOn),
		})
		if edge.DependsOn.Status.Blocks() {
			result.BlockingTasks = append(result.BlockingTasks, taskapimodels.TaskRefConvert(*edge.DependsOn))
		}
	}
	result.IsBlocked = len(result.BlockingTasks) > 0
	return result, nil
}

func buildGraph(tasks []dbmodels.Task, edges []dbmodels.TaskDependency) (g *graph.Graph, known map[string]bool) {
	g = graph.New()
	known = make(map[string]bool, len(tasks))
	for _, task := range tasks {
		known[task.ID] = true
	}
	for _, edge := range edges {
		g.AddEdge(edge.TaskID, edge.DependsOnID)
	}
	return g, known
}

// checkEdge проверяет допустимость ребра "taskID зависит от dependsOnID"
// относительно графа g. Порядок проверок фиксирован: сначала дешёвые
// структурные, цикл - последней.
func checkEdge(g *graph.Graph, known map[string]bool, taskID, dependsOnID string) error {
	if taskID == dependsOnID {
		return models.ErrSelfDependency
	}
	if !known[taskID] {
		return errors.Wrapf(models.ErrUnknownTask, "задача %v", taskID)
	}
	if !known[dependsOnID] {
		return errors.Wrapf(models.ErrUnknownTask, "задача %v", dependsOnID)
	}
	if g.HasEdge(taskID, dependsOnID) {
		return models.ErrDuplicateEdge
	}
	// цикл возникает, если зависимая задача уже достижима из блокирующей
	if path := g.PathTo(dependsOnID, taskID); path != nil {
		return errors.Wrapf(models.ErrCycleDetected, "путь %v -> %v",
			strings.Join(path, " -> "), dependsOnID)
	}
	return nil
}
