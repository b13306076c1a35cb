package taskdependencyhandler

import (
	"testing"

	"ops-tools-backend/models"
	dbmodels "ops-tools-backend/models/db"

	"github.com/stretchr/testify/require"
)

func makeTasks(ids ...string) []dbmodels.Task {
	tasks := make([]dbmodels.Task, 0, len(ids))
	for _, id := range ids {
		task := dbmodels.Task{Status: models.TaskStatusTodo}
		task.ID = id
		tasks = append(tasks, task)
	}
	return tasks
}

func makeEdges(pairs ...[2]string) []dbmodels.TaskDependency {
	edges := make([]dbmodels.TaskDependency, 0, len(pairs))
	for _, pair := range pairs {
		edges = append(edges, dbmodels.TaskDependency{
			TaskID:      pair[0],
			DependsOnID: pair[1],
		})
	}
	return edges
}

func TestCheckEdge(t *testing.T) {
	t.Run(`зависимость от самой себя отклоняется`, func(t *testing.T) {
		g, known := buildGraph(makeTasks("x"), nil)
		err := checkEdge(g, known, "x", "x")
		require.ErrorIs(t, err, models.ErrSelfDependency)
	})

	t.Run(`зависимость с неизвестной задачей отклоняется`, func(t *testing.T) {
		g, known := buildGraph(makeTasks("x"), nil)
		err := checkEdge(g, known, "x", "ghost")
		require.ErrorIs(t, err, models.ErrUnknownTask)

		err = checkEdge(g, known, "ghost", "x")
		require.ErrorIs(t, err, models.ErrUnknownTask)
	})

	t.Run(`повторное ребро отклоняется`, func(t *testing.T) {
		g, known := buildGraph(makeTasks("x", "y"), makeEdges([2]string{"x", "y"}))
		err := checkEdge(g, known, "x", "y")
		require.ErrorIs(t, err, models.ErrDuplicateEdge)
	})

	t.Run(`обратное ребро - цикл из двух задач`, func(t *testing.T) {
		g, known := buildGraph(makeTasks("x", "y"), makeEdges([2]string{"x", "y"}))
		err := checkEdge(g, known, "y", "x")
		require.ErrorIs(t, err, models.ErrCycleDetected)
	})

	t.Run(`длинный цикл обнаруживается по транзитивной достижимости`, func(t *testing.T) {
		// X -> Y -> Z, ребро Z -> X замкнуло бы цикл
		g, known := buildGraph(makeTasks("x", "y", "z"),
			makeEdges([2]string{"x", "y"}, [2]string{"y", "z"}))
		err := checkEdge(g, known, "z", "x")
		require.ErrorIs(t, err, models.ErrCycleDetected)
		// в тексте ошибки виден путь, через который замкнулся бы цикл
		require.Contains(t, err.Error(), "x -> y -> z")
	})

	t.Run(`корректное ребро проходит все проверки`, func(t *testing.T) {
		g, known := buildGraph(makeTasks("x", "y", "z"), makeEdges([2]string{"x", "y"}))
		require.Nil(t, checkEdge(g, known, "y", "z"))
		require.Nil(t, checkEdge(g, known, "x", "z"))
	})

	t.Run(`ребро допустимо после удаления встречного`, func(t *testing.T) {
		g, known := buildGraph(makeTasks("x", "y"), nil)
		require.Nil(t, checkEdge(g, known, "y", "x"))
	})

	t.Run(`рёбра пакета участвуют в проверке цикла`, func(t *testing.T) {
		g, known := buildGraph(makeTasks("x", "y", "z"), nil)
		require.Nil(t, checkEdge(g, known, "x", "y"))
		g.AddEdge("x", "y")
		require.Nil(t, checkEdge(g, known, "y", "z"))
		g.AddEdge("y", "z")
		err := checkEdge(g, known, "z", "x")
		require.ErrorIs(t, err, models.ErrCycleDetected)
	})
}
