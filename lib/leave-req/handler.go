package leavereqhandler

import (
	"context"
	"fmt"
	"time"

	"ops-tools-backend/db"
	approvalpolicyhandler "ops-tools-backend/lib/approval-policy"
	approvalstore "ops-tools-backend/lib/approval/store"
	xlsexport "ops-tools-backend/lib/export/xls"
	filestorage "ops-tools-backend/lib/file-storage"
	leavereqstore "ops-tools-backend/lib/leave-req/store"
	pushhandler "ops-tools-backend/lib/push"
	spaceusersstore "ops-tools-backend/lib/space/users/store"
	"ops-tools-backend/lib/utils/lock"
	"ops-tools-backend/models"
	leaveapimodels "ops-tools-backend/models/api/leave"
	dbmodels "ops-tools-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	lockWait        = 3 * time.Second
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type Provider interface {
	Create(spaceID, employeeID string, data leaveapimodels.LeaveRequestCreateData) (id string, err error)
	GetByID(spaceID, id string) (leaveapimodels.LeaveRequestView, error)
	List(spaceID string, filter leaveapimodels.LeaveFilter) (list []leaveapimodels.LeaveRequestView, rowCount int64, err error)
	Cancel(ctx context.Context, spaceID, id, requesterID string) (leaveapimodels.LeaveRequestView, error)
	Delete(spaceID, id string) error
	Export(ctx context.Context, spaceID string, filter leaveapimodels.LeaveFilter) (fileName string, body []byte, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:           leavereqstore.NewInstance(db.DB),
		spaceUsersStore: spaceusersstore.NewInstance(db.DB),
	}
}

type impl struct {
	store           leavereqstore.Provider
	spaceUsersStore spaceusersstore.Provider
}

func (i impl) getLogger(spaceID string) *log.Entry {
	return log.WithField("space_id", spaceID)
}

func (i impl) Create(spaceID, employeeID string, data leaveapimodels.LeaveRequestCreateData) (id string, err error) {
	logger := i.getLogger(spaceID).WithField("employee_id", employeeID)
	employee, err := i.spaceUsersStore.GetByID(employeeID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения сотрудника")
		return "", err
	}
	if employee == nil || employee.SpaceID != spaceID {
		return "", errors.New("сотрудник не найден в справочнике сотрудников")
	}

	var approverIDs []string
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		policy := approvalpolicyhandler.NewHandlerWithTx(tx)
		approverIDs, err = policy.ResolveChain(spaceID, *employee)
		if err != nil {
			return err
		}

		rec := dbmodels.LeaveRequest{
			BaseSpaceModel: dbmodels.BaseSpaceModel{
				SpaceID: spaceID,
			},
			EmployeeID:     employeeID,
			LeaveType:      data.LeaveType,
			StartDate:      data.StartDate,
			EndDate:        data.EndDate,
			DayCount:       dbmodels.CalcDayCount(data.StartDate, data.EndDate, data.HalfDay),
			HalfDay:        data.HalfDay,
			HalfDaySession: data.HalfDaySession,
			Reason:         data.Reason,
			Status:         models.LeaveStatusPending,
			// указатель и длина цепочки фиксируются при создании и дальше
			// меняются только движком согласования
			CurrentApprovalLevel: 0,
			TotalApprovalLevels:  len(approverIDs),
		}
		if err = rec.Validate(); err != nil {
			return err
		}
		store := leavereqstore.NewInstance(tx)
		id, err = store.Create(rec)
		if err != nil {
			return errors.Wrap(err, "ошибка создания заявки")
		}

		aStore := approvalstore.NewInstance(tx)
		for idx, approverID := range approverIDs {
			approval := dbmodels.Approval{
				BaseSpaceModel: dbmodels.BaseSpaceModel{
					SpaceID: spaceID,
				},
				LeaveRequestID: id,
				ApproverID:     approverID,
				ApprovalOrder:  idx + 1,
				Status:         models.AStatusPending,
			}
			if _, err = aStore.Create(approval); err != nil {
				return errors.Wrapf(err, "ошибка сохранения цепочки согласования, этап=%v", idx+1)
			}
		}

		return nil
	})
	if err != nil {
		return "", err
	}
	logger.
		WithField("rec_id", id).
		Info("создана заявка на отпуск")

	// уведомление первого согласующего после фиксации транзакции
	if pushhandler.Instance != nil && len(approverIDs) > 0 {
		go pushhandler.Instance.SendNotification([]string{approverIDs[0]},
			models.GetPushLeaveSubmitted(employee.GetFullName(), data.LeaveType.ToHuman()))
	}
	return id, nil
}

func (i impl) GetByID(spaceID, id string) (leaveapimodels.LeaveRequestView, error) {
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return leaveapimodels.LeaveRequestView{}, err
	}
	return leaveapimodels.LeaveRequestConvert(*rec), nil
}

func (i impl) List(spaceID string, filter leaveapimodels.LeaveFilter) (list []leaveapimodels.LeaveRequestView, rowCount int64, err error) {
	logger := i.getLogger(spaceID)
	rowCount, err = i.store.ListCount(spaceID, filter)
	if err != nil {
		return nil, 0, err
	}

	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	if int64(offset) > rowCount {
		return []leaveapimodels.LeaveRequestView{}, rowCount, nil
	}

	recList, err := i.store.List(spaceID, filter)
	if err != nil {
		logger.
			WithError(err).
			Error("ошибка получения списка заявок")
		return nil, 0, err
	}
	result := make([]leaveapimodels.LeaveRequestView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, leaveapimodels.LeaveRequestConvert(rec))
	}
	return result, rowCount, nil
}

// Cancel переводит заявку в CANCELLED. Доступна только автору и только пока
// заявка на согласовании; этапы цепочки не трогаются - они остаются PENDING,
// но становятся неактуальными из-за терминального статуса родителя.
func (i impl) Cancel(ctx context.Context, spaceID, id, requesterID string) (leaveapimodels.LeaveRequestView, error) {
	logger := i.getLogger(spaceID).
		WithField("rec_id", id).
		WithField("user_id", requesterID)

	var updated *dbmodels.LeaveRequest
	locked, err := lock.WithDelay(ctx, "leave_approval:"+id, lockWait, func() error {
		return db.DB.Transaction(func(tx *gorm.DB) error {
			store := leavereqstore.NewInstance(tx)
			rec, err := store.GetByID(spaceID, id)
			if err != nil {
				return err
			}
			if rec == nil {
				return models.ErrLeaveNotFound
			}
			if rec.EmployeeID != requesterID {
				return models.ErrNotRequester
			}
			if !rec.Status.AllowCancel() {
				return models.ErrAlreadyResolved
			}
			updMap := map[string]interface{}{
				"status": models.LeaveStatusCancelled,
			}
			if err = store.Update(spaceID, id, updMap); err != nil {
				return errors.Wrap(err, "ошибка отмены заявки")
			}
			updated, err = store.GetByID(spaceID, id)
			return err
		})
	})
	if err != nil {
		if !models.IsDomainError(err) {
			logger.WithError(err).Error("ошибка отмены заявки")
		}
		return leaveapimodels.LeaveRequestView{}, err
	}
	if !locked {
		return leaveapimodels.LeaveRequestView{}, errors.New("заявка обрабатывается другим запросом, повторите попытку")
	}
	logger.Info("заявка отменена")

	if pushhandler.Instance != nil {
		employeeName := ""
		if updated.Employee != nil {
			employeeName = updated.Employee.GetFullName()
		}
		if _, current := updated.GetCurrentApproval(); current != nil {
			go pushhandler.Instance.SendNotification([]string{current.ApproverID},
				models.GetPushLeaveCancelled(employeeName))
		}
	}
	return leaveapimodels.LeaveRequestConvert(*updated), nil
}

func (i impl) Delete(spaceID, id string) error {
	logger := i.getLogger(spaceID).
		WithField("rec_id", id)
	err := i.store.Delete(spaceID, id)
	if err != nil {
		logger.
			WithError(err).
			Error("ошибка удаления заявки")
		return err
	}
	logger.Info("заявка удалена")
	return nil
}

// Export формирует xlsx-реестр заявок и кладёт копию в архив выгрузок
func (i impl) Export(ctx context.Context, spaceID string, filter leaveapimodels.LeaveFilter) (fileName string, body []byte, err error) {
	logger := i.getLogger(spaceID)
	recList, err := i.store.ListAll(spaceID, filter)
	if err != nil {
		logger.WithError(err).Error("ошибка получения списка заявок для выгрузки")
		return "", nil, err
	}
	buf, err := xlsexport.Instance.ExportLeaveRegister(recList)
	if err != nil {
		logger.WithError(err).Error("ошибка формирования выгрузки")
		return "", nil, err
	}
	body = buf.Bytes()
	fileName = fmt.Sprintf("Реестр отпусков %v.xlsx", time.Now().Format("02.01.2006"))
	if filestorage.Instance != nil {
		if _, err := filestorage.Instance.SaveReport(ctx, spaceID, fileName, xlsxContentType, body); err != nil {
			// архивная копия не критична для выгрузки
			logger.WithError(err).Warn("не удалось сохранить выгрузку в архив")
		}
	}
	return fileName, body, nil
}

func (i impl) getRec(spaceID, id string) (*dbmodels.LeaveRequest, error) {
	logger := i.getLogger(spaceID).
		WithField("rec_id", id)
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		logger.
			WithError(err).
			Error("ошибка получения заявки")
		return nil, err
	}
	if rec == nil {
		return nil, models.ErrLeaveNotFound
	}
	return rec, nil
}
