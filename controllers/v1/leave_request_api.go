package apiv1

import (
	"net/url"

	"ops-tools-backend/controllers"
	approvalhandler "ops-tools-backend/lib/approval"
	leavereqhandler "ops-tools-backend/lib/leave-req"
	"ops-tools-backend/middleware"
	"ops-tools-backend/models"
	apimodels "ops-tools-backend/models/api"
	leaveapimodels "ops-tools-backend/models/api/leave"

	"github.com/gofiber/fiber/v2"
)

type leaveReqApiController struct {
	controllers.BaseAPIController
}

func InitLeaveRequestApiRouters(app *fiber.App) {
	controller := leaveReqApiController{}
	app.Route("leave_request", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Post("export", controller.export)
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Delete("", controller.delete)
			idRoute.Put("approve", controller.approve)
			idRoute.Put("reject", controller.reject)
			idRoute.Put("cancel", controller.cancel)
			idRoute.Get("approvals", controller.getApprovals)
			idRoute.Get("approval_history", controller.getApprovalHistory)
		})
	})
}

// @Summary Создание заявки на отпуск
// @Tags Заявки на отпуск
// @Description Создание заявки на отпуск
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 leaveapimodels.LeaveRequestCreateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/leave_request [post]
func (c *leaveReqApiController) create(ctx *fiber.Ctx) error {
	var payload leaveapimodels.LeaveRequestCreateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	id, err := leavereqhandler.Instance.Create(spaceID, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания заявки на отпуск")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Список заявок на отпуск
// @Tags Заявки на отпуск
// @Description Список заявок на отпуск
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 leaveapimodels.LeaveFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]leaveapimodels.LeaveRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/leave_request/list [post]
func (c *leaveReqApiController) list(ctx *fiber.Ctx) error {
	var payload leaveapimodels.LeaveFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	list, rowCount, err := leavereqhandler.Instance.List(spaceID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка заявок на отпуск")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Выгрузка реестра заявок в Excel
// @Tags Заявки на отпуск
// @Description Выгрузка реестра заявок в Excel
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 leaveapimodels.LeaveFilter	true	"request body"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/leave_request/export [post]
func (c *leaveReqApiController) export(ctx *fiber.Ctx) error {
	var payload leaveapimodels.LeaveFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	fileName, body, err := leavereqhandler.Instance.Export(ctx.UserContext(), spaceID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки реестра заявок")
	}
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+url.PathEscape(fileName)+`"`)
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return ctx.Status(fiber.StatusOK).Send(body)
}

// @Summary Получение заявки на отпуск
// @Tags Заявки на отпуск
// @Description Получение заявки на отпуск
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response{data=leaveapimodels.LeaveRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/leave_request/{id} [get]
func (c *leaveReqApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	result, err := leavereqhandler.Instance.GetByID(spaceID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения заявки на отпуск")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Удаление заявки на отпуск
// @Tags Заявки на отпуск
// @Description Удаление заявки на отпуск
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/leave_request/{id} [delete]
func (c *leaveReqApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	if err = leavereqhandler.Instance.Delete(spaceID, id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления заявки на отпуск")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Согласовать заявку
// @Tags Заявки на отпуск
// @Description Согласовать заявку на текущем этапе цепочки
// @Param   Authorization		header	string								true	"Authorization token"
// @Param	body 				body	leaveapimodels.ApprovalDecisionData	true	"request body"
// @Param   id          		path    string  							true    "rec ID"
// @Success 200 {object} apimodels.Response{data=leaveapimodels.LeaveRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/leave_request/{id}/approve [put]
func (c *leaveReqApiController) approve(ctx *fiber.Ctx) error {
	return c.applyDecision(ctx, models.DecisionApprove)
}

// @Summary Отклонить заявку
// @Tags Заявки на отпуск
// @Description Отклонить заявку, комментарий обязателен
// @Param   Authorization		header	string								true	"Authorization token"
// @Param	body 				body	leaveapimodels.ApprovalDecisionData	true	"request body"
// @Param   id          		path    string  							true    "rec ID"
// @Success 200 {object} apimodels.Response{data=leaveapimodels.LeaveRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/leave_request/{id}/reject [put]
func (c *leaveReqApiController) reject(ctx *fiber.Ctx) error {
	return c.applyDecision(ctx, models.DecisionReject)
}

func (c *leaveReqApiController) applyDecision(ctx *fiber.Ctx, decision models.ApprovalDecision) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload leaveapimodels.ApprovalDecisionData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if decision == models.DecisionReject {
		if err = payload.ValidateReject(); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
	}

	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	result, err := approvalhandler.Instance.ApplyDecision(ctx.UserContext(), spaceID, id, userID, decision, payload.Comment)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка применения решения по заявке")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Отменить заявку
// @Tags Заявки на отпуск
// @Description Отмена заявки автором до завершения согласования
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response{data=leaveapimodels.LeaveRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/leave_request/{id}/cancel [put]
func (c *leaveReqApiController) cancel(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	result, err := leavereqhandler.Instance.Cancel(ctx.UserContext(), spaceID, id, userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отмены заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Цепочка согласования заявки
// @Tags Заявки на отпуск
// @Description Цепочка согласования заявки
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response{data=[]leaveapimodels.ApprovalView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/leave_request/{id}/approvals [get]
func (c *leaveReqApiController) getApprovals(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	result, err := approvalhandler.Instance.Get(spaceID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения цепочки согласования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary История решений по заявке
// @Tags Заявки на отпуск
// @Description История решений по заявке
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response{data=[]leaveapimodels.ApprovalHistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/leave_request/{id}/approval_history [get]
func (c *leaveReqApiController) getApprovalHistory(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	result, err := approvalhandler.Instance.History(spaceID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения истории согласования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}
