package spaceusersstore

import (
	dbmodels "ops-tools-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.SpaceUser) (string, error)
	Update(userID string, updMap map[string]interface{}) error
	Delete(userID string) error
	GetList(spaceID string, page, limit int) (userList []dbmodels.SpaceUser, err error)
	FindByEmail(email string) (rec *dbmodels.SpaceUser, err error)
	GetByID(userID string) (rec *dbmodels.SpaceUser, err error)
	FindSpaceAdmin(spaceID string) (rec *dbmodels.SpaceUser, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.SpaceUser) (string, error) {
	err := i.db.
		Omit("Department").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(userID string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.SpaceUser{}).
		Where("id = ?", userID).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) Delete(userID string) error {
	return i.db.
		Where("id = ?", userID).
		Delete(&dbmodels.SpaceUser{}).
		Error
}

func (i impl) GetList(spaceID string, page, limit int) (userList []dbmodels.SpaceUser, err error) {
	tx := i.db.Model(dbmodels.SpaceUser{})
	i.setPage(tx, page, limit)
	err = tx.
		Where("space_id = ?", spaceID).
		Preload(clause.Associations).
		Find(&userList).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return userList, nil
}

func (i impl) FindByEmail(email string) (rec *dbmodels.SpaceUser, err error) {
	err = i.db.Model(dbmodels.SpaceUser{}).
		Where("email = ?", email).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) GetByID(userID string) (rec *dbmodels.SpaceUser, err error) {
	err = i.db.Model(dbmodels.SpaceUser{}).
		Where("id = ?", userID).
		Preload(clause.Associations).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) FindSpaceAdmin(spaceID string) (rec *dbmodels.SpaceUser, err error) {
	err = i.db.Model(dbmodels.SpaceUser{}).
		Where("space_id = ?", spaceID).
		Where("role = ?", "SPACE_ADMIN_ROLE").
		Where("is_active = true").
		Order("created_at").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) setPage(tx *gorm.DB, page, limit int) {
	if page > 0 && limit > 0 {
		offset := (page - 1) * limit
		tx.Offset(offset).Limit(limit)
	}
}
