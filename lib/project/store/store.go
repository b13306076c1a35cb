package projectstore

import (
	dbmodels "ops-tools-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Project) (id string, err error)
	GetByID(spaceID, id string) (rec *dbmodels.Project, err error)
	Delete(spaceID, id string) error
	List(spaceID string) (list []dbmodels.Project, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Project) (id string, err error) {
	err = i.db.
		Omit("Tasks").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.Project, error) {
	rec := dbmodels.Project{}
	err := i.db.
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
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

func (i impl) Delete(spaceID, id string) error {
	rec := dbmodels.Project{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			BaseModel: dbmodels.BaseModel{ID: id},
			SpaceID:   spaceID,
		},
	}
	return i.db.
		Delete(&rec).
		Error
}

func (i impl) List(spaceID string) (list []dbmodels.Project, err error) {
	err = i.db.Model(dbmodels.Project{}).
		Where("space_id = ?", spaceID).
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
