package approvalpolicyhandler

import (
	"ops-tools-backend/db"
	spaceusersstore "ops-tools-backend/lib/space/users/store"
	dbmodels "ops-tools-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Политика согласования отпусков: непосредственный руководитель,
// затем руководитель подразделения. Если у сотрудника нет руководителя -
// согласует администратор организации. Цепочка фиксируется при создании заявки.

type Provider interface {
	ResolveChain(spaceID string, employee dbmodels.SpaceUser) (approverIDs []string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		spaceUsersStore: spaceusersstore.NewInstance(db.DB),
		db:              db.DB,
	}
}

func NewHandlerWithTx(tx *gorm.DB) Provider {
	return impl{
		spaceUsersStore: spaceusersstore.NewInstance(tx),
		db:              tx,
	}
}

type impl struct {
	spaceUsersStore spaceusersstore.Provider
	db              *gorm.DB
}

func (i impl) ResolveChain(spaceID string, employee dbmodels.SpaceUser) ([]string, error) {
	approverIDs := make([]string, 0, 2)
	seen := map[string]bool{employee.ID: true} // сотрудник не согласует собственную заявку

	if employee.ManagerID != nil && *employee.ManagerID != "" {
		manager, err := i.spaceUsersStore.GetByID(*employee.ManagerID)
		if err != nil {
			return nil, err
		}
		if manager != nil && manager.SpaceID == spaceID && manager.IsActive && !seen[manager.ID] {
			approverIDs = append(approverIDs, manager.ID)
			seen[manager.ID] = true
		}
	}

	if employee.DepartmentID != nil && *employee.DepartmentID != "" {
		head, err := i.getDepartmentHead(spaceID, *employee.DepartmentID)
		if err != nil {
			return nil, err
		}
		if head != nil && head.IsActive && !seen[head.ID] {
			approverIDs = append(approverIDs, head.ID)
			seen[head.ID] = true
		}
	}

	if len(approverIDs) == 0 {
		admin, err := i.spaceUsersStore.FindSpaceAdmin(spaceID)
		if err != nil {
			return nil, err
		}
		if admin == nil || seen[admin.ID] {
			return nil, errors.New("не удалось определить согласующих для заявки")
		}
		approverIDs = append(approverIDs, admin.ID)
	}
	return approverIDs, nil
}

func (i impl) getDepartmentHead(spaceID, departmentID string) (*dbmodels.SpaceUser, error) {
	rec := dbmodels.Department{}
	err := i.db.
		Where("id = ?", departmentID).
		Where("space_id = ?", spaceID).
		Preload("Head").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec.Head, nil
}
