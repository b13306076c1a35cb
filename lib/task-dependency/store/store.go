package taskdependencystore

import (
	dbmodels "ops-tools-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.TaskDependency) (id string, err error)
	GetByID(spaceID, id string) (rec *dbmodels.TaskDependency, err error)
	Delete(spaceID, id string) error
	ListByProject(spaceID, projectID string) (list []dbmodels.TaskDependency, err error)
	ListByTask(spaceID, taskID string) (list []dbmodels.TaskDependency, err error)
	ListDependents(spaceID, prerequisiteID string) (list []dbmodels.TaskDependency, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.TaskDependency) (id string, err error) {
	err = i.db.
		Omit("DependsOn").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.TaskDependency, error) {
	rec := dbmodels.TaskDependency{}
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
	rec := dbmodels.TaskDependency{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			BaseModel: dbmodels.BaseModel{ID: id},
			SpaceID:   spaceID,
		},
	}
	return i.db.
		Delete(&rec).
		Error
}

func (i impl) ListByProject(spaceID, projectID string) (list []dbmodels.TaskDependency, err error) {
	err = i.db.Model(dbmodels.TaskDependency{}).
		Where("space_id = ?", spaceID).
		Where("project_id = ?", projectID).
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListByTask(spaceID, taskID string) (list []dbmodels.TaskDependency, err error) {
	err = i.db.Model(dbmodels.TaskDependency{}).
		Where("space_id = ?", spaceID).
		Where("task_id = ?", taskID).
		Preload("DependsOn").
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListDependents(spaceID, prerequisiteID string) (list []dbmodels.TaskDependency, err error) {
	err = i.db.Model(dbmodels.TaskDependency{}).
		Where("space_id = ?", spaceID).
		Where("depends_on_id = ?", prerequisiteID).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
