package controller

import (
	"campus_backend/internal/model"
	"campus_backend/internal/service"
	"campus_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type ResultController struct {
	ResultService *service.ResultService
}

func NewResultController(resultService *service.ResultService) *ResultController {
	return &ResultController{ResultService: resultService}
}

func resultError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrValidation):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrNotFound):
		util.NotFound(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

// MyHistory godoc
// @Summary Historial propio
// @Description Devuelve el historial de resultados del empleado autenticado, el más reciente primero
// @Tags resultados
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.QuizResult} "Success"
// @Router /api/results/me [get]
func (c *ResultController) MyHistory(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	results, err := c.ResultService.ListByStudent(user.Name)
	if err != nil {
		resultError(ctx, err)
		return
	}
	util.Success(ctx, results)
}

// StudentHistory godoc
// @Summary Historial de un empleado
// @Description Devuelve el historial de un empleado concreto; un empleado desconocido devuelve lista vacía
// @Tags resultados
// @Produce  json
// @Security ApiKeyAuth
// @Param   student path string true "Nombre compuesto del empleado, p.ej. 1234 (Haro)"
// @Success 200 {object} util.Response{data=[]model.QuizResult} "Success"
// @Router /api/students/{student}/results [get]
func (c *ResultController) StudentHistory(ctx *gin.Context) {
	results, err := c.ResultService.ListByStudent(ctx.Param("student"))
	if err != nil {
		resultError(ctx, err)
		return
	}
	util.Success(ctx, results)
}

// DeleteResult godoc
// @Summary Eliminar un resultado
// @Description Borra un intento del historial de un empleado; idempotente
// @Tags resultados
// @Produce  json
// @Security ApiKeyAuth
// @Param   student path string true "Nombre compuesto del empleado"
// @Param   id path string true "Id del resultado"
// @Success 200 {object} util.Response "Success"
// @Router /api/students/{student}/results/{id} [delete]
func (c *ResultController) DeleteResult(ctx *gin.Context) {
	if err := c.ResultService.DeleteResult(ctx.Param("student"), ctx.Param("id")); err != nil {
		resultError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ClearHistory godoc
// @Summary Vaciar el historial
// @Description Elimina todos los resultados de un empleado sin borrar al empleado
// @Tags resultados
// @Produce  json
// @Security ApiKeyAuth
// @Param   student path string true "Nombre compuesto del empleado"
// @Success 200 {object} util.Response "Success"
// @Router /api/students/{student}/results [delete]
func (c *ResultController) ClearHistory(ctx *gin.Context) {
	if err := c.ResultService.ClearHistory(ctx.Param("student")); err != nil {
		resultError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// DeleteStudent godoc
// @Summary Eliminar un empleado
// @Description Borra al empleado y todo su registro de resultados
// @Tags resultados
// @Produce  json
// @Security ApiKeyAuth
// @Param   student path string true "Nombre compuesto del empleado"
// @Success 200 {object} util.Response "Success"
// @Router /api/students/{student} [delete]
func (c *ResultController) DeleteStudent(ctx *gin.Context) {
	if err := c.ResultService.DeleteStudent(ctx.Param("student")); err != nil {
		resultError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type CertificateRequest struct {
	CertificateName string `json:"certificateName" binding:"required"`
}

// SetCertificateName godoc
// @Summary Nombre para el diploma
// @Description Registra el nombre legal completo sobre un resultado aprobado para emitir el diploma
// @Tags resultados
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   student path string true "Nombre compuesto del empleado"
// @Param   id path string true "Id del resultado"
// @Param   body body CertificateRequest true "Nombre legal completo"
// @Success 200 {object} util.Response "Success"
// @Failure 404 {object} util.Response "Resultado no encontrado"
// @Router /api/students/{student}/results/{id}/certificate [put]
func (c *ResultController) SetCertificateName(ctx *gin.Context) {
	var req CertificateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.ResultService.SetCertificateName(ctx.Param("student"), ctx.Param("id"), req.CertificateName)
	if err != nil {
		resultError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Stores godoc
// @Summary Tiendas disponibles
// @Description Devuelve la lista fija de tiendas de la cadena para el formulario de acceso
// @Tags resultados
// @Produce  json
// @Success 200 {object} util.Response{data=[]string} "Success"
// @Router /api/stores [get]
func (c *ResultController) Stores(ctx *gin.Context) {
	util.Success(ctx, model.Stores)
}
