package xlsexport

import (
	"bytes"
	"fmt"

	dbmodels "ops-tools-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportLeaveRegister(list []dbmodels.LeaveRequest) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var leaveHeaders = []string{"Сотрудник", "Тип отпуска", "Дата начала", "Дата окончания", "Дней", "Статус", "Этап согласования", "Комментарий"}

func (i impl) ExportLeaveRegister(list []dbmodels.LeaveRequest) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, leaveHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		row, err = writeLeaveData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	f.SetSheetName(sheet, "Отпуска")
	return f.WriteToBuffer()
}

func writeLeaveData(f *excelize.File, sheet string, list []dbmodels.LeaveRequest, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(leaveHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Сотрудник"
		col := 1
		employeeName := ""
		if item.Employee != nil {
			employeeName = item.Employee.GetFullName()
		}
		if err := writeColumn(f, sheet, col, row, employeeName); err != nil {
			return row, err
		}

		// "Тип отпуска"
		col++
		if err := writeColumn(f, sheet, col, row, item.LeaveType.ToHuman()); err != nil {
			return row, err
		}

		// "Дата начала"
		col++
		if err := writeColumn(f, sheet, col, row, item.StartDate.Format("02.01.2006")); err != nil {
			return row, err
		}

		// "Дата окончания"
		col++
		if err := writeColumn(f, sheet, col, row, item.EndDate.Format("02.01.2006")); err != nil {
			return row, err
		}

		// "Дней"
		col++
		if err := writeColumn(f, sheet, col, row, item.DayCount); err != nil {
			return row, err
		}

		// "Статус"
		col++
		if err := writeColumn(f, sheet, col, row, item.Status.ToHuman()); err != nil {
			return row, err
		}

		// "Этап согласования"
		col++
		stage := ""
		if item.Status.AllowDecision() {
			stage = fmt.Sprintf("%v из %v", item.CurrentApprovalLevel+1, item.TotalApprovalLevels)
		}
		if err := writeColumn(f, sheet, col, row, stage); err != nil {
			return row, err
		}

		// "Комментарий"
		col++
		if err := writeColumn(f, sheet, col, row, item.Reason); err != nil {
			return row, err
		}
	}
	return row, nil
}
