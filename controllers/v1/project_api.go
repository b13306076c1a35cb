package apiv1

import (
	"ops-tools-backend/controllers"
	projecthandler "ops-tools-backend/lib/project"
	taskhandler "ops-tools-backend/lib/task"
	"ops-tools-backend/middleware"
	apimodels "ops-tools-backend/models/api"
	taskapimodels "ops-tools-backend/models/api/task"

	"github.com/gofiber/fiber/v2"
)

type projectApiController struct {
	controllers.BaseAPIController
}

func InitProjectApiRouters(app *fiber.App) {
	controller := projectApiController{}
	app.Route("project", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Delete("", controller.delete)
			idRoute.Get("tasks", controller.listTasks)
			idRoute.Post("tasks", controller.createTask)
		})
	})
}

// @Summary Создание проекта
// @Tags Проекты
// @Description Создание проекта
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 taskapimodels.ProjectCreateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/project [post]
func (c *projectApiController) create(ctx *fiber.Ctx) error {
	var payload taskapimodels.ProjectCreateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	id, err := projecthandler.Instance.Create(spaceID, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания проекта")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Список проектов
// @Tags Проекты
// @Description Список проектов
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/project [get]
func (c *projectApiController) list(ctx *fiber.Ctx) error {
	spaceID := middleware.GetUserSpace(ctx)
	result, err := projecthandler.Instance.List(spaceID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка проектов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Получение проекта
// @Tags Проекты
// @Description Получение проекта
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/project/{id} [get]
func (c *projectApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	result, err := projecthandler.Instance.GetByID(spaceID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения проекта")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Удаление проекта
// @Tags Проекты
// @Description Удаление проекта вместе с задачами и зависимостями
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/project/{id} [delete]
func (c *projectApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	if err = projecthandler.Instance.Delete(spaceID, id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления проекта")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Создание задачи
// @Tags Проекты
// @Description Создание задачи в проекте
// @Param   Authorization		header	string							true	"Authorization token"
// @Param	body 				body	taskapimodels.TaskCreateData	true	"request body"
// @Param   id          		path    string  						true    "rec ID"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/project/{id}/tasks [post]
func (c *projectApiController) createTask(ctx *fiber.Ctx) error {
	projectID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload taskapimodels.TaskCreateData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	id, err := taskhandler.Instance.Create(spaceID, projectID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания задачи")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Список задач проекта
// @Tags Проекты
// @Description Список задач проекта
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response{data=[]taskapimodels.TaskView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/project/{id}/tasks [get]
func (c *projectApiController) listTasks(ctx *fiber.Ctx) error {
	projectID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	result, err := taskhandler.Instance.ListByProject(spaceID, projectID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка задач")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}
