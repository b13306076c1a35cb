package pushhandler

import (
	"time"

	"ops-tools-backend/config"
	"ops-tools-backend/db"
	pushdatastore "ops-tools-backend/lib/push/data-store"
	"ops-tools-backend/lib/smtp"
	spaceusersstore "ops-tools-backend/lib/space/users/store"
	connectionhub "ops-tools-backend/lib/ws/hub/connection-hub"
	"ops-tools-backend/models"
	dbmodels "ops-tools-backend/models/db"
	wsmodels "ops-tools-backend/models/ws"

	log "github.com/sirupsen/logrus"
)

// Доставка событий fire-and-forget: вызывается после фиксации транзакции,
// ошибки доставки логируются и не влияют на результат операции.

type Provider interface {
	SendNotification(userIDs []string, data models.NotificationData)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		spaceUserStore: spaceusersstore.NewInstance(db.DB),
		pushDataStore:  pushdatastore.NewInstance(db.DB),
	}
}

type impl struct {
	spaceUserStore spaceusersstore.Provider
	pushDataStore  pushdatastore.Provider
}

func (i impl) getLogger(userID string, code models.PushCode) *log.Entry {
	logger := log.
		WithField("user_id", userID).
		WithField("event_code", string(code))
	return logger
}

func (i impl) SendNotification(userIDs []string, data models.NotificationData) {
	for _, userID := range userIDs {
		i.sendToUser(userID, data)
	}
}

func (i impl) sendToUser(userID string, data models.NotificationData) {
	logger := i.getLogger(userID, data.Code)
	user, err := i.spaceUserStore.GetByID(userID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения пользователя")
		return
	}
	if user == nil {
		logger.Error("пользователь не найден")
		return
	}
	if user.PushEnabled {
		if connectionhub.Instance != nil && connectionhub.Instance.IsConnected(userID) {
			connectionhub.Instance.SendMessage(wsmodels.ServerMessage{
				ToUserID: userID,
				Time:     time.Now().Format("02.01.2006 15:04:05"),
				Code:     string(data.Code),
				Title:    data.Title,
				Msg:      data.Msg,
			})
		} else {
			// клиент оффлайн, событие будет доотправлено при подключении
			err = i.pushDataStore.Create(dbmodels.PushData{
				UserID: userID,
				Code:   data.Code,
				Msg:    data.Msg,
				Title:  data.Title,
			})
			if err != nil {
				logger.WithError(err).Error("ошибка сохранения отложенного события")
			}
		}
	}
	if user.EmailNotify && user.Email != "" {
		err = smtp.Instance.SendEMail(config.Conf.Smtp.User, user.Email, data.Msg, data.Title)
		if err != nil {
			logger.WithError(err).Error("ошибка отправки письма с уведомлением")
		}
	}
}
