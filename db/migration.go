package db

import (
	dbmodels "ops-tools-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	migrations := []struct {
		name  string
		model interface{}
	}{
		{"Space", &dbmodels.Space{}},
		{"Department", &dbmodels.Department{}},
		{"SpaceUser", &dbmodels.SpaceUser{}},
		{"LeaveRequest", &dbmodels.LeaveRequest{}},
		{"Approval", &dbmodels.Approval{}},
		{"ApprovalHistory", &dbmodels.ApprovalHistory{}},
		{"Project", &dbmodels.Project{}},
		{"Task", &dbmodels.Task{}},
		{"TaskDependency", &dbmodels.TaskDependency{}},
		{"PushData", &dbmodels.PushData{}},
		{"FileStorage", &dbmodels.FileStorage{}},
	}
	for _, m := range migrations {
		if err := DB.AutoMigrate(m.model); err != nil {
			return errors.Wrapf(err, "ошибка создания структуры %v", m.name)
		}
	}
	log.Info("Миграция прошла успешно")
	return nil
}
