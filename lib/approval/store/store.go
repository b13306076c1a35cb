package approvalstore

import (
	dbmodels "ops-tools-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Approval) (id string, err error)
	GetByID(spaceID, id string) (rec *dbmodels.Approval, err error)
	Update(spaceID, id string, updMap map[string]interface{}) error
	DeleteByLeaveRequest(spaceID, leaveRequestID string) error
	List(spaceID, leaveRequestID string) (list []dbmodels.Approval, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Approval) (id string, err error) {
	err = i.db.
		Omit("Approver").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.Approval, error) {
	rec := dbmodels.Approval{}
	err := i.db.
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Preload("Approver").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Update(spaceID, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.Approval{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) DeleteByLeaveRequest(spaceID, leaveRequestID string) error {
	return i.db.Model(&dbmodels.Approval{}).
		Where("space_id = ?", spaceID).
		Where("leave_request_id = ?", leaveRequestID).
		Delete(&dbmodels.Approval{}).
		Error
}

func (i impl) List(spaceID, leaveRequestID string) (list []dbmodels.Approval, err error) {
	err = i.db.Model(dbmodels.Approval{}).
		Where("space_id = ?", spaceID).
		Where("leave_request_id = ?", leaveRequestID).
		Preload("Approver").
		Order("approval_order").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
