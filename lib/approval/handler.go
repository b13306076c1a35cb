package approvalhandler

import (
	"context"
	"time"

	"ops-tools-backend/db"
	approvalhistorystore "ops-tools-backend/lib/approval/history-store"
	approvalstore "ops-tools-backend/lib/approval/store"
	leavereqstore "ops-tools-backend/lib/leave-req/store"
	pushhandler "ops-tools-backend/lib/push"
	"ops-tools-backend/lib/utils/lock"
	"ops-tools-backend/models"
	leaveapimodels "ops-tools-backend/models/api/leave"
	dbmodels "ops-tools-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// lockWait - сколько запрос ждёт освобождения заявки, занятой
// конкурентным решением, прежде чем вернуть ошибку
const lockWait = 3 * time.Second

type Provider interface {
	ApplyDecision(ctx context.Context, spaceID, leaveRequestID, actorID string, decision models.ApprovalDecision, comment string) (leaveapimodels.LeaveRequestView, error)
	Get(spaceID, leaveRequestID string) ([]leaveapimodels.ApprovalView, error)
	History(spaceID, leaveRequestID string) ([]leaveapimodels.ApprovalHistoryView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:        approvalstore.NewInstance(db.DB),
		historyStore: approvalhistorystore.NewInstance(db.DB),
		leaveStore:   leavereqstore.NewInstance(db.DB),
	}
}

type impl struct {
	store        approvalstore.Provider
	historyStore approvalhistorystore.Provider
	leaveStore   leavereqstore.Provider
}

func (i impl) getLogger(spaceID, leaveRequestID string) *log.Entry {
	logger := log.
		WithField("space_id", spaceID).
		WithField("leave_request_id", leaveRequestID)
	return logger
}

func (i impl) ApplyDecision(ctx context.Context, spaceID, leaveRequestID, actorID string, decision models.ApprovalDecision, comment string) (leaveapimodels.LeaveRequestView, error) {
	logger := i.getLogger(spaceID, leaveRequestID).
		WithField("user_id", actorID).
		WithField("decision", string(decision))

	var updated *dbmodels.LeaveRequest
	var result transitionResult
	locked, err := lock.WithDelay(ctx, "leave_approval:"+leaveRequestID, lockWait, func() error {
		return db.DB.Transaction(func(tx *gorm.DB) error {
			leaveStore := leavereqstore.NewInstance(tx)
			// повторное чтение под блокировкой: состояние, прочитанное до неё,
			// могло устареть из-за конкурентного решения
			rec, err := leaveStore.GetByID(spaceID, leaveRequestID)
			if err != nil {
				return err
			}
			if rec == nil {
				return models.ErrLeaveNotFound
			}
			result, err = transition(*rec, actorID, decision, comment, time.Now())
			if err != nil {
				return err
			}

			store := approvalstore.NewInstance(tx)
			updMap := map[string]interface{}{
				"status":     result.Approval.Status,
				"comment":    result.Approval.Comment,
				"decided_at": result.Approval.DecidedAt,
			}
			if err = store.Update(spaceID, result.Approval.ID, updMap); err != nil {
				return errors.Wrap(err, "ошибка обновления этапа согласования")
			}
			leaveUpd := map[string]interface{}{
				"status":                 result.LeaveStatus,
				"current_approval_level": result.ApprovalLevel,
			}
			if err = leaveStore.Update(spaceID, leaveRequestID, leaveUpd); err != nil {
				return errors.Wrap(err, "ошибка обновления заявки")
			}
			i.audit(tx, spaceID, *rec, result)

			updated, err = leaveStore.GetByID(spaceID, leaveRequestID)
			return err
		})
	})
	if err != nil {
		if !models.IsDomainError(err) {
			logger.WithError(err).Error("ошибка применения решения по заявке")
		}
		return leaveapimodels.LeaveRequestView{}, err
	}
	if !locked {
		return leaveapimodels.LeaveRequestView{}, errors.New("заявка обрабатывается другим запросом, повторите попытку")
	}
	logger.
		WithField("new_status", string(result.LeaveStatus)).
		Info("решение по заявке применено")

	// уведомления после фиксации транзакции, без ожидания
	go i.notify(*updated, result)
	return leaveapimodels.LeaveRequestConvert(*updated), nil
}

func (i impl) Get(spaceID, leaveRequestID string) ([]leaveapimodels.ApprovalView, error) {
	list, err := i.store.List(spaceID, leaveRequestID)
	if err != nil {
		return nil, err
	}
	result := make([]leaveapimodels.ApprovalView, 0, len(list))
	for _, rec := range list {
		result = append(result, leaveapimodels.ApprovalConvert(rec))
	}
	return result, nil
}

func (i impl) History(spaceID, leaveRequestID string) ([]leaveapimodels.ApprovalHistoryView, error) {
	list, err := i.historyStore.List(spaceID, leaveRequestID)
	if err != nil {
		return nil, err
	}
	result := make([]leaveapimodels.ApprovalHistoryView, 0, len(list))
	for _, rec := range list {
		result = append(result, leaveapimodels.ApprovalHistoryConvert(rec))
	}
	return result, nil
}

func (i impl) audit(tx *gorm.DB, spaceID string, old dbmodels.LeaveRequest, result transitionResult) {
	rec := dbmodels.ApprovalHistory{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		LeaveRequestID: old.ID,
		ApprovalID:     result.Approval.ID,
		ApproverID:     result.Approval.ApproverID,
		Status:         result.Approval.Status,
		Comment:        result.Approval.Comment,
		Changes: dbmodels.EntityChanges{
			Description: "Решение по этапу согласования",
			Data: []dbmodels.FieldChanges{
				{Field: "status", OldValue: string(old.Status), NewValue: string(result.LeaveStatus)},
				{Field: "current_approval_level", OldValue: old.CurrentApprovalLevel, NewValue: result.ApprovalLevel},
			},
		},
	}
	_, err := approvalhistorystore.NewInstance(tx).Create(rec)
	if err != nil {
		i.getLogger(spaceID, old.ID).WithError(err).Error("ошибка добавления истории согласования")
	}
}

func (i impl) notify(rec dbmodels.LeaveRequest, result transitionResult) {
	if pushhandler.Instance == nil {
		return
	}
	employeeName := ""
	if rec.Employee != nil {
		employeeName = rec.Employee.GetFullName()
	}
	approverName := ""
	for _, approval := range rec.Approvals {
		if approval.ID == result.Approval.ID && approval.Approver != nil {
			approverName = approval.Approver.GetFullName()
		}
	}
	switch rec.Status {
	case models.LeaveStatusApproved:
		pushhandler.Instance.SendNotification([]string{rec.EmployeeID},
			models.GetPushLeaveApproved(rec.LeaveType.ToHuman(), approverName))
	case models.LeaveStatusRejected:
		pushhandler.Instance.SendNotification([]string{rec.EmployeeID},
			models.GetPushLeaveRejected(rec.LeaveType.ToHuman(), approverName))
	case models.LeaveStatusPending:
		if result.NextApproverID != "" {
			pushhandler.Instance.SendNotification([]string{result.NextApproverID},
				models.GetPushLeaveAdvanced(employeeName, result.ApprovalLevel))
		}
	}
}
