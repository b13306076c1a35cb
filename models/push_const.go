package models

import "fmt"

type PushCode string

const (
	PushLeaveSubmitted PushCode = "PushLeaveSubmitted"
	PushLeaveAdvanced  PushCode = "PushLeaveAdvanced"
	PushLeaveApproved  PushCode = "PushLeaveApproved"
	PushLeaveRejected  PushCode = "PushLeaveRejected"
	PushLeaveCancelled PushCode = "PushLeaveCancelled"

	PushTaskUnblocked PushCode = "PushTaskUnblocked"
)

type PushTpl struct {
	Name  string
	Title string
	Msg   string
}

var PushCodeMap = map[PushCode]PushTpl{
	PushLeaveSubmitted: {Name: "Новая заявка на согласование", Title: "Заявка ожидает согласования", Msg: "Заявка на отпуск сотрудника %v (%v) ожидает вашего решения."},
	PushLeaveAdvanced:  {Name: "Заявка передана на следующий этап", Title: "Заявка ожидает согласования", Msg: "Заявка на отпуск сотрудника %v согласована на этапе %v и ожидает вашего решения."},
	PushLeaveApproved:  {Name: "Согласование заявки", Title: "Заявка согласована", Msg: "Ваша заявка на отпуск (%v) была согласована пользователем %v."},
	PushLeaveRejected:  {Name: "Отклонение заявки", Title: "Заявка отклонена", Msg: "Ваша заявка на отпуск (%v) была отклонена пользователем %v."},
	PushLeaveCancelled: {Name: "Отмена заявки", Title: "Заявка отменена", Msg: "Заявка на отпуск сотрудника %v отменена автором."},

	PushTaskUnblocked: {Name: "Задача разблокирована", Title: "Задача разблокирована", Msg: "Все блокирующие задачи завершены, задача «%v» готова к работе."},
}

type NotificationData struct {
	Code  PushCode
	Msg   string
	Title string
}

func GetPushLeaveSubmitted(employeeName, leaveType string) NotificationData {
	code := PushLeaveSubmitted
	return NotificationData{
		Code:  code,
		Title: PushCodeMap[code].Title,
		Msg:   fmt.Sprintf(PushCodeMap[code].Msg, employeeName, leaveType),
	}
}

func GetPushLeaveAdvanced(employeeName string, level int) NotificationData {
	code := PushLeaveAdvanced
	return NotificationData{
		Code:  code,
		Title: PushCodeMap[code].Title,
		Msg:   fmt.Sprintf(PushCodeMap[code].Msg, employeeName, level),
	}
}

func GetPushLeaveApproved(leaveType, approverName string) NotificationData {
	code := PushLeaveApproved
	return NotificationData{
		Code:  code,
		Title: PushCodeMap[code].Title,
		Msg:   fmt.Sprintf(PushCodeMap[code].Msg, leaveType, approverName),
	}
}

func GetPushLeaveRejected(leaveType, approverName string) NotificationData {
	code := PushLeaveRejected
	return NotificationData{
		Code:  code,
		Title: PushCodeMap[code].Title,
		Msg:   fmt.Sprintf(PushCodeMap[code].Msg, leaveType, approverName),
	}
}

func GetPushLeaveCancelled(employeeName string) NotificationData {
	code := PushLeaveCancelled
	return NotificationData{
		Code:  code,
		Title: PushCodeMap[code].Title,
		Msg:   fmt.Sprintf(PushCodeMap[code].Msg, employeeName),
	}
}

func GetPushTaskUnblocked(taskName string) NotificationData {
	code := PushTaskUnblocked
	return NotificationData{
		Code:  code,
		Title: PushCodeMap[code].Title,
		Msg:   fmt.Sprintf(PushCodeMap[code].Msg, taskName),
	}
}
