package controller

import (
	"campus_backend/internal/service"
	"campus_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	StatsService *service.StatsService
}

func NewStatsController(statsService *service.StatsService) *StatsController {
	return &StatsController{StatsService: statsService}
}

// Students godoc
// @Summary Evolución por empleado
// @Description Estadísticas agregadas por empleado, ordenadas por nota media descendente; filtrable por tienda
// @Tags estadísticas
// @Produce  json
// @Security ApiKeyAuth
// @Param   store query string false "Tienda por la que filtrar"
// @Success 200 {object} util.Response{data=[]model.StudentStats} "Success"
// @Router /api/stats/students [get]
func (c *StatsController) Students(ctx *gin.Context) {
	stats, err := c.StatsService.GetStudentsEvolution(ctx.Query("store"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// Categories godoc
// @Summary Medias por categoría
// @Description Nota media por categoría de manual sobre intentos oficiales; los de práctica no cuentan
// @Tags estadísticas
// @Produce  json
// @Security ApiKeyAuth
// @Param   store query string false "Tienda por la que filtrar"
// @Success 200 {object} util.Response{data=[]service.CategoryAverage} "Success"
// @Router /api/stats/categories [get]
func (c *StatsController) Categories(ctx *gin.Context) {
	averages, err := c.StatsService.GetCategoryAverages(ctx.Query("store"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, averages)
}

// Global godoc
// @Summary Estadísticas globales
// @Description Nota media, número de intentos y tasa de aprobados de todo el portal
// @Tags estadísticas
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.GlobalStats} "Success"
// @Router /api/stats/global [get]
func (c *StatsController) Global(ctx *gin.Context) {
	stats, err := c.StatsService.GetGlobalStats()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// StudentProfile godoc
// @Summary Perfil de un empleado
// @Description Estadísticas de un empleado más su perfil de competencias por categoría
// @Tags estadísticas
// @Produce  json
// @Security ApiKeyAuth
// @Param   student path string true "Nombre compuesto del empleado"
// @Success 200 {object} util.Response "Success"
// @Router /api/stats/students/{student} [get]
func (c *StatsController) StudentProfile(ctx *gin.Context) {
	stats, radar, err := c.StatsService.GetStudentProfile(ctx.Param("student"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"stats": stats, "categories": radar})
}

// MyProfile godoc
// @Summary Perfil propio
// @Description Estadísticas del empleado autenticado para su panel personal
// @Tags estadísticas
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response "Success"
// @Router /api/stats/me [get]
func (c *StatsController) MyProfile(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	stats, radar, err := c.StatsService.GetStudentProfile(user.Name)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"stats": stats, "categories": radar})
}
