package dbmodels

import (
	"github.com/pkg/errors"
)

type Department struct {
	BaseSpaceModel
	ParentID string     `gorm:"type:varchar(36);index:idx_parent"`
	Name     string     `gorm:"type:varchar(255)"`
	HeadID   *string    `gorm:"type:varchar(36)"` // руководитель подразделения, второй этап согласования
	Head     *SpaceUser `gorm:"foreignKey:HeadID"`
}

func (d *Department) Validate() error {
	if err := d.BaseSpaceModel.Validate(); err != nil {
		return err
	}
	if d.Name == "" {
		return errors.New("не указано название подразделения")
	}
	return nil
}
