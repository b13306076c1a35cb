package leavereqstore

import (
	leaveapimodels "ops-tools-backend/models/api/leave"
	dbmodels "ops-tools-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.LeaveRequest) (id string, err error)
	GetByID(spaceID, id string) (rec *dbmodels.LeaveRequest, err error)
	Update(spaceID, id string, updMap map[string]interface{}) error
	Delete(spaceID, id string) error
	List(spaceID string, filter leaveapimodels.LeaveFilter) (list []dbmodels.LeaveRequest, err error)
	ListAll(spaceID string, filter leaveapimodels.LeaveFilter) (list []dbmodels.LeaveRequest, err error)
	ListCount(spaceID string, filter leaveapimodels.LeaveFilter) (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.LeaveRequest) (id string, err error) {
	err = i.db.
		Omit("Employee").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.LeaveRequest, error) {
	rec := dbmodels.LeaveRequest{}
	err := i.db.
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Preload("Employee").
		Preload("Approvals", func(db *gorm.DB) *gorm.DB {
			return db.Order("approval_order")
		}).
		Preload("Approvals.Approver").
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
		Model(&dbmodels.LeaveRequest{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) Delete(spaceID, id string) error {
	rec := dbmodels.LeaveRequest{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			BaseModel: dbmodels.BaseModel{ID: id},
			SpaceID:   spaceID,
		},
	}
	return i.db.
		Delete(&rec).
		Error
}

func (i impl) List(spaceID string, filter leaveapimodels.LeaveFilter) (list []dbmodels.LeaveRequest, err error) {
	tx := i.db.Model(dbmodels.LeaveRequest{})
	i.applyFilter(tx, spaceID, filter)
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	err = tx.
		Offset(offset).
		Limit(limit).
		Preload("Employee").
		Preload("Approvals", func(db *gorm.DB) *gorm.DB {
			return db.Order("approval_order")
		}).
		Preload("Approvals.Approver").
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListAll - без пагинации, для выгрузки реестра
func (i impl) ListAll(spaceID string, filter leaveapimodels.LeaveFilter) (list []dbmodels.LeaveRequest, err error) {
	tx := i.db.Model(dbmodels.LeaveRequest{})
	i.applyFilter(tx, spaceID, filter)
	err = tx.
		Preload("Employee").
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(spaceID string, filter leaveapimodels.LeaveFilter) (count int64, err error) {
	tx := i.db.Model(dbmodels.LeaveRequest{})
	i.applyFilter(tx, spaceID, filter)
	err = tx.Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) applyFilter(tx *gorm.DB, spaceID string, filter leaveapimodels.LeaveFilter) {
	tx.Where("space_id = ?", spaceID)
	if filter.EmployeeID != "" {
		tx.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		tx.Where("status = ?", filter.Status)
	}
	if filter.LeaveType != "" {
		tx.Where("leave_type = ?", filter.LeaveType)
	}
	if filter.DateFrom != nil {
		tx.Where("end_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		tx.Where("start_date <= ?", *filter.DateTo)
	}
}
