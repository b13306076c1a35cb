package projecthandler

import (
	"ops-tools-backend/db"
	projectstore "ops-tools-backend/lib/project/store"
	taskapimodels "ops-tools-backend/models/api/task"
	dbmodels "ops-tools-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(spaceID, ownerID string, data taskapimodels.ProjectCreateData) (id string, err error)
	GetByID(spaceID, id string) (*dbmodels.Project, error)
	List(spaceID string) ([]dbmodels.Project, error)
	Delete(spaceID, id string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: projectstore.NewInstance(db.DB),
	}
}

type impl struct {
	store projectstore.Provider
}

func (i impl) Create(spaceID, ownerID string, data taskapimodels.ProjectCreateData) (id string, err error) {
	logger := log.WithField("space_id", spaceID)
	if err = data.Validate(); err != nil {
		return "", err
	}
	rec := dbmodels.Project{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		Name:        data.Name,
		Description: data.Description,
		OwnerID:     ownerID,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		logger.WithError(err).Error("ошибка создания проекта")
		return "", err
	}
	logger.
		WithField("rec_id", id).
		Info("создан проект")
	return id, nil
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.Project, error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.New("проект не найден")
	}
	return rec, nil
}

func (i impl) List(spaceID string) ([]dbmodels.Project, error) {
	return i.store.List(spaceID)
}

// Delete удаляет проект вместе с задачами и рёбрами зависимостей (хук AfterDelete)
func (i impl) Delete(spaceID, id string) error {
	logger := log.
		WithField("space_id", spaceID).
		WithField("rec_id", id)
	if err := i.store.Delete(spaceID, id); err != nil {
		logger.WithError(err).Error("ошибка удаления проекта")
		return err
	}
	logger.Info("проект удалён")
	return nil
}
