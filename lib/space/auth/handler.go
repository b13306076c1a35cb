package spaceauthhandler

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"ops-tools-backend/db"
	spaceusersstore "ops-tools-backend/lib/space/users/store"
	authutils "ops-tools-backend/lib/utils/auth-utils"
	authapimodels "ops-tools-backend/models/api/auth"
	spaceapimodels "ops-tools-backend/models/api/space"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Login(email, password string) (authapimodels.JWTResponse, error)
	Me(userID string) (spaceapimodels.SpaceUser, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		spaceUsersStore: spaceusersstore.NewInstance(db.DB),
	}
}

type impl struct {
	spaceUsersStore spaceusersstore.Provider
}

func (i impl) Login(email, password string) (authapimodels.JWTResponse, error) {
	logger := log.WithField("email", email)
	user, err := i.spaceUsersStore.FindByEmail(email)
	if err != nil {
		logger.WithError(err).Error("ошибка поиска пользователя")
		return authapimodels.JWTResponse{}, err
	}
	if user == nil || !user.IsActive || user.Password != hashPassword(password) {
		return authapimodels.JWTResponse{}, errors.New("неверный логин или пароль")
	}
	token, err := authutils.GetToken(user.ID, user.GetFullName(), user.SpaceID, user.Role.IsSpaceAdmin(), user.Role)
	if err != nil {
		logger.WithError(err).Error("ошибка выпуска токена")
		return authapimodels.JWTResponse{}, err
	}
	refresh, err := authutils.GetRefreshToken(user.ID, user.GetFullName())
	if err != nil {
		logger.WithError(err).Error("ошибка выпуска refresh токена")
		return authapimodels.JWTResponse{}, err
	}
	updMap := map[string]interface{}{
		"last_login": time.Now(),
	}
	if err := i.spaceUsersStore.Update(user.ID, updMap); err != nil {
		logger.WithError(err).Warn("ошибка обновления времени входа")
	}
	return authapimodels.JWTResponse{
		Token:        token,
		RefreshToken: refresh,
	}, nil
}

func (i impl) Me(userID string) (spaceapimodels.SpaceUser, error) {
	user, err := i.spaceUsersStore.GetByID(userID)
	if err != nil {
		return spaceapimodels.SpaceUser{}, err
	}
	if user == nil || !user.IsActive {
		return spaceapimodels.SpaceUser{}, errors.New("пользователь не найден")
	}
	return user.ToModel(), nil
}

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
