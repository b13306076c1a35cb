package approvalhandler

import (
	"testing"
	"time"

	"ops-tools-backend/models"
	dbmodels "ops-tools-backend/models/db"

	"github.com/stretchr/testify/require"
)

func makeLeaveRequest(level int, approverIDs ...string) dbmodels.LeaveRequest {
	rec := dbmodels.LeaveRequest{
		EmployeeID:           "employee",
		Status:               models.LeaveStatusPending,
		CurrentApprovalLevel: level,
		TotalApprovalLevels:  len(approverIDs),
	}
	for idx, approverID := range approverIDs {
		status := models.AStatusPending
		if idx < level {
			status = models.AStatusApproved
		}
		rec.Approvals = append(rec.Approvals, dbmodels.Approval{
			ApproverID:    approverID,
			ApprovalOrder: idx + 1,
			Status:        status,
		})
	}
	return rec
}

func TestTransition(t *testing.T) {
	now := time.Now()

	t.Run(`согласование не последнего этапа двигает указатель и оставляет заявку на согласовании`, func(t *testing.T) {
		rec := makeLeaveRequest(0, "a", "b", "c")
		result, err := transition(rec, "a", models.DecisionApprove, "", now)
		require.Nil(t, err)
		require.Equal(t, models.AStatusApproved, result.Approval.Status)
		require.Equal(t, models.LeaveStatusPending, result.LeaveStatus)
		require.Equal(t, 1, result.ApprovalLevel)
		require.Equal(t, "b", result.NextApproverID)
	})

	t.Run(`согласование последнего этапа завершает заявку`, func(t *testing.T) {
		rec := makeLeaveRequest(2, "a", "b", "c")
		result, err := transition(rec, "c", models.DecisionApprove, "ок", now)
		require.Nil(t, err)
		require.Equal(t, models.LeaveStatusApproved, result.LeaveStatus)
		require.Equal(t, 3, result.ApprovalLevel)
		require.Equal(t, "", result.NextApproverID)
	})

	t.Run(`заявка согласована только после решения всех этапов`, func(t *testing.T) {
		rec := makeLeaveRequest(0, "a", "b")
		result, err := transition(rec, "a", models.DecisionApprove, "", now)
		require.Nil(t, err)
		require.Equal(t, models.LeaveStatusPending, result.LeaveStatus)

		rec = makeLeaveRequest(result.ApprovalLevel, "a", "b")
		result, err = transition(rec, "b", models.DecisionApprove, "", now)
		require.Nil(t, err)
		require.Equal(t, models.LeaveStatusApproved, result.LeaveStatus)
	})

	t.Run(`решение не текущего согласующего отклоняется`, func(t *testing.T) {
		rec := makeLeaveRequest(0, "a", "b", "c")
		_, err := transition(rec, "b", models.DecisionApprove, "", now)
		require.ErrorIs(t, err, models.ErrNotCurrentApprover)

		_, err = transition(rec, "c", models.DecisionReject, "против", now)
		require.ErrorIs(t, err, models.ErrNotCurrentApprover)
	})

	t.Run(`отклонение терминально и не двигает указатель`, func(t *testing.T) {
		rec := makeLeaveRequest(1, "a", "b", "c")
		result, err := transition(rec, "b", models.DecisionReject, "не согласен", now)
		require.Nil(t, err)
		require.Equal(t, models.AStatusRejected, result.Approval.Status)
		require.Equal(t, models.LeaveStatusRejected, result.LeaveStatus)
		require.Equal(t, 1, result.ApprovalLevel)
	})

	t.Run(`после отклонения следующий этап получает ошибку терминального статуса, а не полномочий`, func(t *testing.T) {
		rec := makeLeaveRequest(1, "a", "b", "c")
		rec.Status = models.LeaveStatusRejected
		rec.Approvals[1].Status = models.AStatusRejected

		_, err := transition(rec, "c", models.DecisionApprove, "", now)
		require.ErrorIs(t, err, models.ErrAlreadyResolved)
	})

	t.Run(`решение по отменённой заявке отклоняется`, func(t *testing.T) {
		rec := makeLeaveRequest(0, "a", "b")
		rec.Status = models.LeaveStatusCancelled
		_, err := transition(rec, "a", models.DecisionApprove, "", now)
		require.ErrorIs(t, err, models.ErrAlreadyResolved)
	})

	t.Run(`повторное решение по согласованной заявке отклоняется`, func(t *testing.T) {
		rec := makeLeaveRequest(2, "a", "b")
		rec.Status = models.LeaveStatusApproved
		_, err := transition(rec, "b", models.DecisionApprove, "", now)
		require.ErrorIs(t, err, models.ErrAlreadyResolved)
	})

	t.Run(`этап без решения ниже указателя - нарушение порядка`, func(t *testing.T) {
		rec := makeLeaveRequest(1, "a", "b", "c")
		rec.Approvals[0].Status = models.AStatusPending
		_, err := transition(rec, "b", models.DecisionApprove, "", now)
		require.ErrorIs(t, err, models.ErrOutOfOrder)
	})

	t.Run(`решённый текущий этап при несдвинутом указателе - нарушение порядка`, func(t *testing.T) {
		rec := makeLeaveRequest(0, "a", "b")
		rec.Approvals[0].Status = models.AStatusApproved
		_, err := transition(rec, "a", models.DecisionApprove, "", now)
		require.ErrorIs(t, err, models.ErrOutOfOrder)
	})

	t.Run(`комментарий и время решения сохраняются в этапе`, func(t *testing.T) {
		rec := makeLeaveRequest(0, "a")
		result, err := transition(rec, "a", models.DecisionReject, "причина", now)
		require.Nil(t, err)
		require.Equal(t, "причина", result.Approval.Comment)
		require.NotNil(t, result.Approval.DecidedAt)
		require.Equal(t, now, *result.Approval.DecidedAt)
	})

	t.Run(`неизвестное решение отклоняется`, func(t *testing.T) {
		rec := makeLeaveRequest(0, "a")
		_, err := transition(rec, "a", models.ApprovalDecision("MAYBE"), "", now)
		require.NotNil(t, err)
	})

	t.Run(`указатель только растёт при последовательных согласованиях`, func(t *testing.T) {
		approvers := []string{"a", "b", "c", "d"}
		level := 0
		for _, approver := range approvers {
			rec := makeLeaveRequest(level, approvers...)
			result, err := transition(rec, approver, models.DecisionApprove, "", now)
			require.Nil(t, err)
			require.Greater(t, result.ApprovalLevel, level)
			level = result.ApprovalLevel
		}
		require.Equal(t, len(approvers), level)
	})
}
