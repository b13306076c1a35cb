package leaveapimodels

import (
	"time"

	"ops-tools-backend/models"
	apimodels "ops-tools-backend/models/api"
	dbmodels "ops-tools-backend/models/db"

	"github.com/pkg/errors"
)

type LeaveRequestCreateData struct {
	LeaveType      models.LeaveType      `json:"leave_type"`
	StartDate      time.Time             `json:"start_date"`
	EndDate        time.Time             `json:"end_date"`
	HalfDay        bool                  `json:"half_day"`
	HalfDaySession models.HalfDaySession `json:"half_day_session,omitempty"`
	Reason         string                `json:"reason"`
}

func (r LeaveRequestCreateData) Validate() error {
	if !r.LeaveType.IsValid() {
		return errors.Errorf("неизвестный тип отпуска: %v", r.LeaveType)
	}
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return errors.New("не указан период отпуска")
	}
	if r.EndDate.Before(r.StartDate) {
		return errors.New("дата окончания раньше даты начала")
	}
	if r.HalfDay {
		if !r.StartDate.Equal(r.EndDate) {
			return errors.New("отпуск на полдня допустим только в пределах одного дня")
		}
		if r.HalfDaySession != models.HalfDayMorning && r.HalfDaySession != models.HalfDayEvening {
			return errors.New("не указана половина дня")
		}
	}
	return nil
}

type LeaveRequestView struct {
	ID                   string                `json:"id"`
	EmployeeID           string                `json:"employee_id"`
	EmployeeName         string                `json:"employee_name"`
	LeaveType            models.LeaveType      `json:"leave_type"`
	LeaveTypeName        string                `json:"leave_type_name"`
	StartDate            time.Time             `json:"start_date"`
	EndDate              time.Time             `json:"end_date"`
	DayCount             float64               `json:"day_count"`
	HalfDay              bool                  `json:"half_day"`
	HalfDaySession       models.HalfDaySession `json:"half_day_session,omitempty"`
	Reason               string                `json:"reason"`
	Status               models.LeaveStatus    `json:"status"`
	StatusName           string                `json:"status_name"`
	CurrentApprovalLevel int                   `json:"current_approval_level"`
	TotalApprovalLevels  int                   `json:"total_approval_levels"`
	Approvals            []ApprovalView        `json:"approvals,omitempty"`
	CreatedAt            time.Time             `json:"created_at"`
}

func LeaveRequestConvert(rec dbmodels.LeaveRequest) LeaveRequestView {
	view := LeaveRequestView{
		ID:                   rec.ID,
		EmployeeID:           rec.EmployeeID,
		LeaveType:            rec.LeaveType,
		LeaveTypeName:        rec.LeaveType.ToHuman(),
		StartDate:            rec.StartDate,
		EndDate:              rec.EndDate,
		DayCount:             rec.DayCount,
		HalfDay:              rec.HalfDay,
		HalfDaySession:       rec.HalfDaySession,
		Reason:               rec.Reason,
		Status:               rec.Status,
		StatusName:           rec.Status.ToHuman(),
		CurrentApprovalLevel: rec.CurrentApprovalLevel,
		TotalApprovalLevels:  rec.TotalApprovalLevels,
		CreatedAt:            rec.CreatedAt,
	}
	if rec.Employee != nil {
		view.EmployeeName = rec.Employee.GetFullName()
	}
	view.Approvals = make([]ApprovalView, 0, len(rec.Approvals))
	for _, approval := range rec.Approvals {
		view.Approvals = append(view.Approvals, ApprovalConvert(approval))
	}
	return view
}

type LeaveFilter struct {
	apimodels.Pagination
	EmployeeID string             `json:"employee_id"`
	Status     models.LeaveStatus `json:"status"`
	LeaveType  models.LeaveType   `json:"leave_type"`
	DateFrom   *time.Time         `json:"date_from"`
	DateTo     *time.Time         `json:"date_to"`
}
