package controller

import (
	"campus_backend/internal/service"
	"campus_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type ManualController struct {
	CatalogService *service.CatalogService
}

func NewManualController(catalogService *service.CatalogService) *ManualController {
	return &ManualController{CatalogService: catalogService}
}

// List godoc
// @Summary Listar manuales
// @Description Devuelve la biblioteca de manuales sin el cuerpo del documento
// @Tags manuales
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.ManualSummary} "Success"
// @Router /api/manuals [get]
func (c *ManualController) List(ctx *gin.Context) {
	manuals, err := c.CatalogService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, manuals)
}

// Get godoc
// @Summary Obtener un manual
// @Description Devuelve un manual completo, incluido el documento en base64
// @Tags manuales
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Id del manual"
// @Success 200 {object} util.Response{data=model.Manual} "Success"
// @Failure 404 {object} util.Response "Manual no encontrado"
// @Router /api/manuals/{id} [get]
func (c *ManualController) Get(ctx *gin.Context) {
	m, err := c.CatalogService.Get(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, m)
}

// Upload godoc
// @Summary Subir un manual
// @Description Añade un manual a la biblioteca; el documento viaja en base64
// @Tags manuales
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.UploadManualInput true "Manual a subir"
// @Success 201 {object} util.Response{data=model.Manual} "Creado"
// @Failure 400 {object} util.Response "Documento o categoría inválidos"
// @Router /api/manuals [post]
func (c *ManualController) Upload(ctx *gin.Context) {
	var req service.UploadManualInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	m, err := c.CatalogService.Upload(ctx.Request.Context(), req)
	if err != nil {
		if errors.Is(err, util.ErrValidation) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, m)
}

// Delete godoc
// @Summary Eliminar un manual
// @Description Borra un manual de la biblioteca; borrar un id inexistente no es un error
// @Tags manuales
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Id del manual"
// @Success 200 {object} util.Response "Success"
// @Router /api/manuals/{id} [delete]
func (c *ManualController) Delete(ctx *gin.Context) {
	if err := c.CatalogService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Reset godoc
// @Summary Restaurar la biblioteca
// @Description Sustituye toda la biblioteca por los manuales por defecto, descartando los subidos
// @Tags manuales
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response "Success"
// @Router /api/manuals/reset [post]
func (c *ManualController) Reset(ctx *gin.Context) {
	if err := c.CatalogService.Reset(); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
