package models

import "github.com/pkg/errors"

// Ошибки согласования заявок на отпуск.
// Возвращаются движком согласования как есть и отдаются клиенту с кодом 400.
var (
	ErrLeaveNotFound      = errors.New("заявка на отпуск не найдена")
	ErrAlreadyResolved    = errors.New("заявка уже находится в терминальном статусе")
	ErrNotCurrentApprover = errors.New("за текущий этап согласования отвечает другой сотрудник")
	// ErrOutOfOrder - нарушение инварианта цепочки: этап ниже указателя остался без решения.
	// При корректной работе недостижимо, проверяется из-за возможных гонок.
	ErrOutOfOrder   = errors.New("нарушен порядок согласования: предыдущий этап без решения")
	ErrNotRequester = errors.New("отменить заявку может только её автор")
)

// Ошибки графа зависимостей задач.
var (
	ErrSelfDependency = errors.New("задача не может зависеть от самой себя")
	ErrUnknownTask    = errors.New("задача не найдена в проекте")
	ErrDuplicateEdge  = errors.New("такая зависимость уже существует")
	ErrCycleDetected  = errors.New("зависимость образует цикл")
)

// IsDomainError - структурная ошибка запроса, отдаётся клиенту как 400 без ретраев
func IsDomainError(err error) bool {
	for _, domainErr := range []error{
		ErrLeaveNotFound,
		ErrAlreadyResolved,
		ErrNotCurrentApprover,
		ErrOutOfOrder,
		ErrNotRequester,
		ErrSelfDependency,
		ErrUnknownTask,
		ErrDuplicateEdge,
		ErrCycleDetected,
	} {
		if errors.Is(err, domainErr) {
			return true
		}
	}
	return false
}
