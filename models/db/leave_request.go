package dbmodels

import (
	"time"

	"ops-tools-backend/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LeaveRequest struct {
	BaseSpaceModel
	EmployeeID     string                `gorm:"type:varchar(36);index:idx_employee"`
	Employee       *SpaceUser            `gorm:"foreignKey:EmployeeID"`
	LeaveType      models.LeaveType      `gorm:"type:varchar(50)"`
	StartDate      time.Time             `gorm:"type:date"`
	EndDate        time.Time             `gorm:"type:date"`
	DayCount       float64
	HalfDay        bool
	HalfDaySession models.HalfDaySession `gorm:"type:varchar(20)"`
	Reason         string
	Status         models.LeaveStatus    `gorm:"type:varchar(20);index:idx_leave_status"`
	// CurrentApprovalLevel - 0-based указатель прогресса цепочки, только растёт.
	// Решение принимает этап с ApprovalOrder == CurrentApprovalLevel+1.
	CurrentApprovalLevel int
	TotalApprovalLevels  int
	Approvals            []Approval `gorm:"foreignKey:LeaveRequestID"`
}

func (l *LeaveRequest) AfterDelete(tx *gorm.DB) (err error) {
	if l.ID == "" {
		return nil
	}
	tx.Clauses(clause.Returning{}).Where("leave_request_id = ?", l.ID).Delete(&Approval{})
	return
}

// GetCurrentApproval возвращает этап, ожидающий решения, и признак последнего этапа.
// nil - если указатель прошёл все этапы либо этап не найден.
func (l LeaveRequest) GetCurrentApproval() (isLast bool, approval *Approval) {
	currentOrder := l.CurrentApprovalLevel + 1
	for idx := range l.Approvals {
		if l.Approvals[idx].ApprovalOrder == currentOrder {
			return currentOrder == l.TotalApprovalLevels, &l.Approvals[idx]
		}
	}
	return false, nil
}

func (l *LeaveRequest) Validate() error {
	if err := l.BaseSpaceModel.Validate(); err != nil {
		return err
	}
	if l.EmployeeID == "" {
		return errors.New("не указан сотрудник")
	}
	if !l.LeaveType.IsValid() {
		return errors.Errorf("неизвестный тип отпуска: %v", l.LeaveType)
	}
	if l.StartDate.IsZero() || l.EndDate.IsZero() {
		return errors.New("не указан период отпуска")
	}
	if l.EndDate.Before(l.StartDate) {
		return errors.New("дата окончания раньше даты начала")
	}
	if l.HalfDay && !l.StartDate.Equal(l.EndDate) {
		return errors.New("отпуск на полдня допустим только в пределах одного дня")
	}
	if l.CurrentApprovalLevel < 0 || l.CurrentApprovalLevel > l.TotalApprovalLevels {
		return errors.New("указатель согласования вне диапазона цепочки")
	}
	return validateChain(l.Approvals, l.TotalApprovalLevels)
}

// validateChain проверяет, что этапы образуют непрерывную цепочку 1..total без повторов
func validateChain(approvals []Approval, total int) error {
	if len(approvals) == 0 {
		// цепочка подгружается не всегда, пустой список не проверяем
		return nil
	}
	if len(approvals) != total {
		return errors.Errorf("число этапов %v не совпадает с длиной цепочки %v", len(approvals), total)
	}
	seen := make(map[int]bool, len(approvals))
	for _, a := range approvals {
		if a.ApprovalOrder < 1 || a.ApprovalOrder > total {
			return errors.Errorf("этап %v вне диапазона 1..%v", a.ApprovalOrder, total)
		}
		if seen[a.ApprovalOrder] {
			return errors.Errorf("этап %v указан повторно", a.ApprovalOrder)
		}
		seen[a.ApprovalOrder] = true
	}
	return nil
}

// CalcDayCount - число дней отпуска включительно, 0.5 для отпуска на полдня
func CalcDayCount(start, end time.Time, halfDay bool) float64 {
	if halfDay {
		return 0.5
	}
	days := end.Sub(start).Hours()/24 + 1
	if days < 1 {
		return 1
	}
	return float64(int(days))
}
