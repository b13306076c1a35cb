package apiv1

import (
	"net/url"

	"ops-tools-backend/controllers"
	filestorage "ops-tools-backend/lib/file-storage"
	"ops-tools-backend/middleware"
	apimodels "ops-tools-backend/models/api"
	fileapimodels "ops-tools-backend/models/api/file"

	"github.com/gofiber/fiber/v2"
)

type fileApiController struct {
	controllers.BaseAPIController
}

func InitReportApiRouters(app *fiber.App) {
	controller := fileApiController{}
	app.Route("reports", func(router fiber.Router) {
		// архив содержит реестры по всем сотрудникам, доступен только администратору
		router.Use(middleware.SpaceAdminRequired())
		router.Get("", controller.list)
		router.Get(":id", controller.download)
	})
}

// @Summary Архив выгрузок
// @Tags Выгрузки
// @Description Список сформированных ранее выгрузок
// @Param   Authorization		header	string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]fileapimodels.FileView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/reports [get]
func (c *fileApiController) list(ctx *fiber.Ctx) error {
	spaceID := middleware.GetUserSpace(ctx)
	recList, err := filestorage.Instance.ListReports(spaceID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка выгрузок")
	}
	result := make([]fileapimodels.FileView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, fileapimodels.FileConvert(rec))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Скачивание выгрузки
// @Tags Выгрузки
// @Description Скачивание сформированной ранее выгрузки
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/reports/{id} [get]
func (c *fileApiController) download(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	rec, body, err := filestorage.Instance.GetFile(ctx.UserContext(), spaceID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка скачивания выгрузки")
	}
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+url.PathEscape(rec.Name)+`"`)
	ctx.Set(fiber.HeaderContentType, rec.ContentType)
	return ctx.Status(fiber.StatusOK).Send(body)
}
