package approvalhistorystore

import (
	dbmodels "ops-tools-backend/models/db"

	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.ApprovalHistory) (id string, err error)
	List(spaceID, leaveRequestID string) (list []dbmodels.ApprovalHistory, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ApprovalHistory) (id string, err error) {
	err = i.db.
		Omit("Approver").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) List(spaceID, leaveRequestID string) (list []dbmodels.ApprovalHistory, err error) {
	err = i.db.Model(dbmodels.ApprovalHistory{}).
		Where("space_id = ?", spaceID).
		Where("leave_request_id = ?", leaveRequestID).
		Preload("Approver").
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
