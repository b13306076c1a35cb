package approvalhandler

import (
	"time"

	"ops-tools-backend/models"
	dbmodels "ops-tools-backend/models/db"

	"github.com/pkg/errors"
)

// transitionResult - результат решения по текущему этапу цепочки.
type transitionResult struct {
	// Approval - этап, по которому принято решение, с новым статусом
	Approval      dbmodels.Approval
	LeaveStatus   models.LeaveStatus
	ApprovalLevel int
	// NextApproverID - согласующий, чей этап стал актуальным после решения
	NextApproverID string
}

// transition применяет решение согласующего к агрегату заявки и возвращает
// новое состояние, не изменяя ничего в хранилище. Вызывается над
// свежепрочитанным агрегатом под блокировкой заявки: проверки действительны
// только для состояния, прочитанного внутри критической секции.
//
// Порядок проверок: терминальный статус, целостность цепочки ниже указателя,
// полномочия действующего согласующего.
func transition(rec dbmodels.LeaveRequest, actorID string, decision models.ApprovalDecision, comment string, now time.Time) (transitionResult, error) {
	if rec.Status.IsTerminal() {
		return transitionResult{}, models.ErrAlreadyResolved
	}
	// этапы ниже указателя обязаны иметь решение; нарушение возможно только
	// при гонке или порче данных и отдаётся наружу, а не чинится молча
	for _, approval := range rec.Approvals {
		if approval.ApprovalOrder <= rec.CurrentApprovalLevel && !approval.Status.IsDecided() {
			return transitionResult{}, models.ErrOutOfOrder
		}
	}
	isLast, current := rec.GetCurrentApproval()
	if current == nil {
		return transitionResult{}, errors.Errorf("в цепочке согласования нет этапа %v", rec.CurrentApprovalLevel+1)
	}
	if current.Status.IsDecided() {
		// решение по текущему этапу уже есть, а указатель не сдвинут - гонка
		return transitionResult{}, models.ErrOutOfOrder
	}
	if current.ApproverID != actorID {
		return transitionResult{}, models.ErrNotCurrentApprover
	}

	result := transitionResult{
		Approval:      *current,
		ApprovalLevel: rec.CurrentApprovalLevel,
	}
	result.Approval.Comment = comment
	result.Approval.DecidedAt = &now

	switch decision {
	case models.DecisionReject:
		// отклонение терминально: указатель не двигается, этапы выше
		// остаются без решения и больше не посещаются
		result.Approval.Status = models.AStatusRejected
		result.LeaveStatus = models.LeaveStatusRejected
	case models.DecisionApprove:
		result.Approval.Status = models.AStatusApproved
		result.ApprovalLevel = rec.CurrentApprovalLevel + 1
		if isLast {
			result.LeaveStatus = models.LeaveStatusApproved
		} else {
			result.LeaveStatus = models.LeaveStatusPending
			for _, approval := range rec.Approvals {
				if approval.ApprovalOrder == result.ApprovalLevel+1 {
					result.NextApproverID = approval.ApproverID
					break
				}
			}
		}
	default:
		return transitionResult{}, errors.Errorf("неизвестное решение: %v", decision)
	}
	return result, nil
}
