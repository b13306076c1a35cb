package dbmodels

import (
	"testing"
	"time"

	"ops-tools-backend/models"

	"github.com/stretchr/testify/require"
)

func date(value string) time.Time {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCalcDayCount(t *testing.T) {
	t.Run(`дни считаются включительно`, func(t *testing.T) {
		require.Equal(t, float64(1), CalcDayCount(date("2026-08-03"), date("2026-08-03"), false))
		require.Equal(t, float64(5), CalcDayCount(date("2026-08-03"), date("2026-08-07"), false))
	})

	t.Run(`полдня - всегда 0.5`, func(t *testing.T) {
		require.Equal(t, 0.5, CalcDayCount(date("2026-08-03"), date("2026-08-03"), true))
	})
}

func TestGetCurrentApproval(t *testing.T) {
	rec := LeaveRequest{
		CurrentApprovalLevel: 1,
		TotalApprovalLevels:  3,
		Approvals: []Approval{
			{ApproverID: "a", ApprovalOrder: 1, Status: models.AStatusApproved},
			{ApproverID: "b", ApprovalOrder: 2, Status: models.AStatusPending},
			{ApproverID: "c", ApprovalOrder: 3, Status: models.AStatusPending},
		},
	}

	t.Run(`текущим считается этап с порядком указатель+1`, func(t *testing.T) {
		isLast, current := rec.GetCurrentApproval()
		require.NotNil(t, current)
		require.Equal(t, "b", current.ApproverID)
		require.False(t, isLast)
	})

	t.Run(`последний этап помечается признаком`, func(t *testing.T) {
		rec := rec
		rec.CurrentApprovalLevel = 2
		isLast, current := rec.GetCurrentApproval()
		require.NotNil(t, current)
		require.Equal(t, "c", current.ApproverID)
		require.True(t, isLast)
	})

	t.Run(`за пределами цепочки этапа нет`, func(t *testing.T) {
		rec := rec
		rec.CurrentApprovalLevel = 3
		_, current := rec.GetCurrentApproval()
		require.Nil(t, current)
	})
}

func TestLeaveRequestValidate(t *testing.T) {
	makeRec := func() LeaveRequest {
		rec := LeaveRequest{
			EmployeeID:          "employee",
			LeaveType:           models.LeaveTypeAnnual,
			StartDate:           date("2026-08-03"),
			EndDate:             date("2026-08-07"),
			Status:              models.LeaveStatusPending,
			TotalApprovalLevels: 2,
			Approvals: []Approval{
				{ApprovalOrder: 1, Status: models.AStatusPending},
				{ApprovalOrder: 2, Status: models.AStatusPending},
			},
		}
		rec.SpaceID = "space"
		return rec
	}

	t.Run(`корректная заявка проходит проверку`, func(t *testing.T) {
		rec := makeRec()
		require.Nil(t, rec.Validate())
	})

	t.Run(`дата окончания раньше даты начала`, func(t *testing.T) {
		rec := makeRec()
		rec.StartDate = date("2026-08-07")
		rec.EndDate = date("2026-08-03")
		require.NotNil(t, rec.Validate())
	})

	t.Run(`полдня допустимы только в пределах одного дня`, func(t *testing.T) {
		rec := makeRec()
		rec.HalfDay = true
		require.NotNil(t, rec.Validate())

		rec.EndDate = rec.StartDate
		require.Nil(t, rec.Validate())
	})

	t.Run(`разрыв в цепочке этапов отклоняется`, func(t *testing.T) {
		rec := makeRec()
		rec.Approvals[1].ApprovalOrder = 3
		require.NotNil(t, rec.Validate())
	})

	t.Run(`повтор этапа отклоняется`, func(t *testing.T) {
		rec := makeRec()
		rec.Approvals[1].ApprovalOrder = 1
		require.NotNil(t, rec.Validate())
	})

	t.Run(`число этапов обязано совпадать с длиной цепочки`, func(t *testing.T) {
		rec := makeRec()
		rec.TotalApprovalLevels = 3
		require.NotNil(t, rec.Validate())
	})

	t.Run(`указатель вне диапазона отклоняется`, func(t *testing.T) {
		rec := makeRec()
		rec.CurrentApprovalLevel = 3
		require.NotNil(t, rec.Validate())

		rec.CurrentApprovalLevel = -1
		require.NotNil(t, rec.Validate())
	})

	t.Run(`неизвестный тип отпуска отклоняется`, func(t *testing.T) {
		rec := makeRec()
		rec.LeaveType = "SABBATICAL"
		require.NotNil(t, rec.Validate())
	})
}
