package models

type LeaveType string

const (
	LeaveTypeAnnual LeaveType = "ANNUAL"
	LeaveTypeSick   LeaveType = "SICK"
	LeaveTypeUnpaid LeaveType = "UNPAID"
	LeaveTypeDayOff LeaveType = "DAY_OFF"
)

var leaveTypeHumanName = map[LeaveType]string{
	LeaveTypeAnnual: "Ежегодный отпуск",
	LeaveTypeSick:   "Больничный",
	LeaveTypeUnpaid: "Отпуск без сохранения ЗП",
	LeaveTypeDayOff: "Отгул",
}

func (t LeaveType) ToHuman() string {
	if human, exist := leaveTypeHumanName[t]; exist {
		return human
	}
	return string(t)
}

func (t LeaveType) IsValid() bool {
	_, exist := leaveTypeHumanName[t]
	return exist
}

type HalfDaySession string

const (
	HalfDayMorning HalfDaySession = "MORNING"
	HalfDayEvening HalfDaySession = "EVENING"
)

type LeaveStatus string

const (
	LeaveStatusPending   LeaveStatus = "PENDING"
	LeaveStatusApproved  LeaveStatus = "APPROVED"
	LeaveStatusRejected  LeaveStatus = "REJECTED"
	LeaveStatusCancelled LeaveStatus = "CANCELLED"
)

var leaveStatusHumanName = map[LeaveStatus]string{
	LeaveStatusPending:   "На согласовании",
	LeaveStatusApproved:  "Согласована",
	LeaveStatusRejected:  "Отклонена",
	LeaveStatusCancelled: "Отменена",
}

func (s LeaveStatus) ToHuman() string {
	if human, exist := leaveStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

// IsTerminal - из терминального статуса заявка больше не переходит
func (s LeaveStatus) IsTerminal() bool {
	switch s {
	case LeaveStatusApproved, LeaveStatusRejected, LeaveStatusCancelled:
		return true
	case LeaveStatusPending:
		return false
	}
	return false
}

func (s LeaveStatus) AllowDecision() bool {
	return s == LeaveStatusPending
}

func (s LeaveStatus) AllowCancel() bool {
	return s == LeaveStatusPending
}

type ApprovalStatus string

const (
	AStatusPending  ApprovalStatus = "PENDING"
	AStatusApproved ApprovalStatus = "APPROVED"
	AStatusRejected ApprovalStatus = "REJECTED"
)

var approvalStatusHumanName = map[ApprovalStatus]string{
	AStatusPending:  "Ожидает решения",
	AStatusApproved: "Согласовано",
	AStatusRejected: "Отклонено",
}

func (s ApprovalStatus) ToHuman() string {
	if human, exist := approvalStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

// IsDecided - решение по этапу принято и больше не меняется
func (s ApprovalStatus) IsDecided() bool {
	return s == AStatusApproved || s == AStatusRejected
}

type ApprovalDecision string

const (
	DecisionApprove ApprovalDecision = "APPROVE"
	DecisionReject  ApprovalDecision = "REJECT"
)

func (d ApprovalDecision) IsValid() bool {
	return d == DecisionApprove || d == DecisionReject
}
