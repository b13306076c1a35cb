package leaveapimodels

import (
	"time"

	"ops-tools-backend/models"
	dbmodels "ops-tools-backend/models/db"

	"github.com/pkg/errors"
)

type ApprovalDecisionData struct {
	Comment string `json:"comment"`
}

// разрешение на отклонение требует пояснения, согласование - нет
func (d ApprovalDecisionData) ValidateReject() error {
	if d.Comment == "" {
		return errors.New("отсутсвует комментарий")
	}
	return nil
}

type ApprovalView struct {
	ID            string                `json:"id"`
	ApproverID    string                `json:"approver_id"`
	ApproverName  string                `json:"approver_name"`
	ApprovalOrder int                   `json:"approval_order"`
	Status        models.ApprovalStatus `json:"status"`
	StatusName    string                `json:"status_name"`
	Comment       string                `json:"comment"`
	DecidedAt     *time.Time            `json:"decided_at"`
}

func ApprovalConvert(rec dbmodels.Approval) ApprovalView {
	view := ApprovalView{
		ID:            rec.ID,
		ApproverID:    rec.ApproverID,
		ApprovalOrder: rec.ApprovalOrder,
		Status:        rec.Status,
		StatusName:    rec.Status.ToHuman(),
		Comment:       rec.Comment,
		DecidedAt:     rec.DecidedAt,
	}
	if rec.Approver != nil {
		view.ApproverName = rec.Approver.GetFullName()
	}
	return view
}

type ApprovalHistoryView struct {
	LeaveRequestID string                 `json:"leave_request_id"`
	ApprovalID     string                 `json:"approval_id"`
	ApproverID     string                 `json:"approver_id"`
	ApproverName   string                 `json:"approver_name"`
	Status         models.ApprovalStatus  `json:"status"`
	Comment        string                 `json:"comment"`
	CreatedAt      time.Time              `json:"created_at"`
	Changes        dbmodels.EntityChanges `json:"changes"` // Изменения
}

func ApprovalHistoryConvert(rec dbmodels.ApprovalHistory) ApprovalHistoryView {
	view := ApprovalHistoryView{
		LeaveRequestID: rec.LeaveRequestID,
		ApprovalID:     rec.ApprovalID,
		ApproverID:     rec.ApproverID,
		Status:         rec.Status,
		Comment:        rec.Comment,
		CreatedAt:      rec.CreatedAt,
		Changes:        rec.Changes,
	}
	if rec.Approver != nil {
		view.ApproverName = rec.Approver.GetFullName()
	}
	return view
}
