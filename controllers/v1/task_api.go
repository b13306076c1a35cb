package apiv1

import (
	"ops-tools-backend/controllers"
	taskhandler "ops-tools-backend/lib/task"
	taskdependencyhandler "ops-tools-backend/lib/task-dependency"
	"ops-tools-backend/middleware"
	apimodels "ops-tools-backend/models/api"
	taskapimodels "ops-tools-backend/models/api/task"

	"github.com/gofiber/fiber/v2"
)

type taskApiController struct {
	controllers.BaseAPIController
}

func InitTaskApiRouters(app *fiber.App) {
	controller := taskApiController{}
	app.Route("project/:projectId/tasks/:id", func(router fiber.Router) {
		router.Get("", controller.get)
		router.Delete("", controller.delete)
		router.Put("status", controller.changeStatus)
		router.Get("dependencies", controller.getDependencies)
		router.Post("dependencies", controller.addDependencies)
		router.Delete("dependencies/:depId", controller.removeDependency)
	})
}

// @Summary Получение задачи
// @Tags Задачи
// @Description Получение задачи
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   projectId   		path    string  true    "project ID"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response{data=taskapimodels.TaskView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/project/{projectId}/tasks/{id} [get]
func (c *taskApiController) get(ctx *fiber.Ctx) error {
	projectID, id, err := c.getIDs(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	result, err := taskhandler.Instance.GetByID(spaceID, projectID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения задачи")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Удаление задачи
// @Tags Задачи
// @Description Удаление задачи вместе с рёбрами зависимостей в обе стороны
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   projectId   		path    string  true    "project ID"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/project/{projectId}/tasks/{id} [delete]
func (c *taskApiController) delete(ctx *fiber.Ctx) error {
	projectID, id, err := c.getIDs(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	if err = taskhandler.Instance.Delete(spaceID, projectID, id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления задачи")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Смена статуса задачи
// @Tags Задачи
// @Description Смена статуса задачи, для BLOCKED обязательна причина
// @Param   Authorization		header	string							true	"Authorization token"
// @Param	body 				body	taskapimodels.TaskStatusData	true	"request body"
// @Param   projectId   		path    string  						true    "project ID"
// @Param   id          		path    string  						true    "rec ID"
// @Success 200 {object} apimodels.Response{data=taskapimodels.TaskView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/project/{projectId}/tasks/{id}/status [put]
func (c *taskApiController) changeStatus(ctx *fiber.Ctx) error {
	projectID, id, err := c.getIDs(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload taskapimodels.TaskStatusData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	result, err := taskhandler.Instance.ChangeStatus(spaceID, projectID, id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка смены статуса задачи")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Зависимости задачи
// @Tags Задачи
// @Description Прямые зависимости задачи и вычисленное состояние блокировки
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   projectId   		path    string  true    "project ID"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response{data=taskapimodels.DependencyInfoView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/project/{projectId}/tasks/{id}/dependencies [get]
func (c *taskApiController) getDependencies(ctx *fiber.Ctx) error {
	projectID, id, err := c.getIDs(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	result, err := taskdependencyhandler.Instance.DependencyInfo(spaceID, projectID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения зависимостей задачи")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Добавление зависимостей задачи
// @Tags Задачи
// @Description Пакетное добавление зависимостей, применяется целиком либо никак
// @Param   Authorization		header	string								true	"Authorization token"
// @Param	body 				body	taskapimodels.DependencyAddData		true	"request body"
// @Param   projectId   		path    string  							true    "project ID"
// @Param   id          		path    string  							true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/project/{projectId}/tasks/{id}/dependencies [post]
func (c *taskApiController) addDependencies(ctx *fiber.Ctx) error {
	projectID, id, err := c.getIDs(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload taskapimodels.DependencyAddData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	if err = taskdependencyhandler.Instance.Add(ctx.UserContext(), spaceID, projectID, id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка добавления зависимостей задачи")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление зависимости задачи
// @Tags Задачи
// @Description Удаление зависимости задачи
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   projectId   		path    string  true    "project ID"
// @Param   id          		path    string  true    "rec ID"
// @Param   depId          		path    string  true    "dependency rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/project/{projectId}/tasks/{id}/dependencies/{depId} [delete]
func (c *taskApiController) removeDependency(ctx *fiber.Ctx) error {
	projectID, err := c.GetIDByKey(ctx, "projectId")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	depID, err := c.GetIDByKey(ctx, "depId")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	if err = taskdependencyhandler.Instance.Remove(ctx.UserContext(), spaceID, projectID, depID); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления зависимости задачи")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

func (c *taskApiController) getIDs(ctx *fiber.Ctx) (projectID, id string, err error) {
	projectID, err = c.GetIDByKey(ctx, "projectId")
	if err != nil {
		return "", "", err
	}
	id, err = c.GetID(ctx)
	if err != nil {
		return "", "", err
	}
	return projectID, id, nil
}
