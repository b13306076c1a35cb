package taskhandler

import (
	"testing"

	"ops-tools-backend/models"
	dbmodels "ops-tools-backend/models/db"

	"github.com/stretchr/testify/require"
)

func TestHasBlocking(t *testing.T) {
	edgeWithStatus := func(status models.TaskStatus) dbmodels.TaskDependency {
		return dbmodels.TaskDependency{DependsOn: &dbmodels.Task{Status: status}}
	}

	t.Run(`задача без зависимостей не заблокирована`, func(t *testing.T) {
		require.False(t, hasBlocking(nil))
	})

	t.Run(`незавершённая зависимость блокирует`, func(t *testing.T) {
		require.True(t, hasBlocking([]dbmodels.TaskDependency{
			edgeWithStatus(models.TaskStatusTodo),
		}))
		require.True(t, hasBlocking([]dbmodels.TaskDependency{
			edgeWithStatus(models.TaskStatusInProgress),
		}))
		require.True(t, hasBlocking([]dbmodels.TaskDependency{
			edgeWithStatus(models.TaskStatusBlocked),
		}))
	})

	t.Run(`завершённые зависимости не блокируют`, func(t *testing.T) {
		require.False(t, hasBlocking([]dbmodels.TaskDependency{
			edgeWithStatus(models.TaskStatusDone),
			edgeWithStatus(models.TaskStatusApproved),
		}))
	})

	t.Run(`одна незавершённая среди завершённых блокирует`, func(t *testing.T) {
		require.True(t, hasBlocking([]dbmodels.TaskDependency{
			edgeWithStatus(models.TaskStatusDone),
			edgeWithStatus(models.TaskStatusInProgress),
			edgeWithStatus(models.TaskStatusApproved),
		}))
	})
}

func TestTaskStatusBlocks(t *testing.T) {
	t.Run(`ручная блокировка и работа блокируют зависимые`, func(t *testing.T) {
		require.True(t, models.TaskStatusTodo.Blocks())
		require.True(t, models.TaskStatusInProgress.Blocks())
		require.True(t, models.TaskStatusBlocked.Blocks())
	})

	t.Run(`завершённые статусы не блокируют`, func(t *testing.T) {
		require.False(t, models.TaskStatusDone.Blocks())
		require.False(t, models.TaskStatusApproved.Blocks())
	})
}
