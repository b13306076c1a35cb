package spaceapimodels

import (
	"errors"
)

type SpaceUser struct {
	ID string `json:"id"`
	SpaceUserCommonData
}

type SpaceUserCommonData struct {
	SpaceID      string `json:"space_id"`
	Email        string `json:"email"` // Email пользователя
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	PhoneNumber  string `json:"phone_number"`
	IsAdmin      bool   `json:"is_admin"`
	Role         string `json:"role"`
	DepartmentID string `json:"department_id"` // Идентификатор подразделения
	ManagerID    string `json:"manager_id"`    // Идентификатор руководителя
}

func (r SpaceUserCommonData) Validate() error {
	if r.Email == "" {
		return errors.New("не указан емайл")
	}
	if r.FirstName == "" && r.LastName == "" {
		return errors.New("не указаны имя и фамилия")
	}
	return nil
}
