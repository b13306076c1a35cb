package dbmodels

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Project struct {
	BaseSpaceModel
	Name        string `gorm:"type:varchar(255)"`
	Description string
	OwnerID     string `gorm:"type:varchar(36)"`
	Tasks       []Task `gorm:"foreignKey:ProjectID"`
}

func (p *Project) AfterDelete(tx *gorm.DB) (err error) {
	if p.ID == "" {
		return nil
	}
	tx.Clauses(clause.Returning{}).Where("project_id = ?", p.ID).Delete(&TaskDependency{})
	tx.Clauses(clause.Returning{}).Where("project_id = ?", p.ID).Delete(&Task{})
	return
}

func (p *Project) Validate() error {
	if err := p.BaseSpaceModel.Validate(); err != nil {
		return err
	}
	if p.Name == "" {
		return errors.New("не указано название проекта")
	}
	return nil
}
