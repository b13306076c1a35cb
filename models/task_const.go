package models

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusBlocked    TaskStatus = "BLOCKED"
	TaskStatusDone       TaskStatus = "DONE"
	TaskStatusApproved   TaskStatus = "APPROVED"
)

var taskStatusHumanName = map[TaskStatus]string{
	TaskStatusTodo:       "К выполнению",
	TaskStatusInProgress: "В работе",
	TaskStatusBlocked:    "Заблокирована",
	TaskStatusDone:       "Выполнена",
	TaskStatusApproved:   "Принята",
}

func (s TaskStatus) ToHuman() string {
	if human, exist := taskStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s TaskStatus) IsValid() bool {
	_, exist := taskStatusHumanName[s]
	return exist
}

// Blocks - задача в этом статусе блокирует зависящие от неё задачи
func (s TaskStatus) Blocks() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusBlocked:
		return true
	case TaskStatusDone, TaskStatusApproved:
		return false
	}
	return false
}

// IsFinished - задача завершена и не блокирует зависимые
func (s TaskStatus) IsFinished() bool {
	return !s.Blocks()
}
