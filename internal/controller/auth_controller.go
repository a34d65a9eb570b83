package controller

import (
	"campus_backend/internal/service"
	"campus_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// StudentLogin godoc
// @Summary Acceso de empleado
// @Description Identifica al empleado con los 4 últimos dígitos del DNI y su tienda, y devuelve un token JWT
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body service.StudentLoginInput true "Identidad del empleado"
// @Success 200 {object} util.Response{data=service.LoginOutput} "Success"
// @Failure 400 {object} util.Response "Identificador inválido"
// @Router /api/auth/student/login [post]
func (c *AuthController) StudentLogin(ctx *gin.Context) {
	var req service.StudentLoginInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	out, err := c.AuthService.StudentLogin(req)
	if err != nil {
		if errors.Is(err, util.ErrValidation) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, out)
}

// TrainerLogin godoc
// @Summary Acceso de formador
// @Description Valida la contraseña compartida del formador y devuelve un token JWT
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body service.TrainerLoginInput true "Credenciales del formador"
// @Success 200 {object} util.Response{data=service.LoginOutput} "Success"
// @Failure 401 {object} util.Response "Contraseña incorrecta"
// @Router /api/auth/trainer/login [post]
func (c *AuthController) TrainerLogin(ctx *gin.Context) {
	var req service.TrainerLoginInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	out, err := c.AuthService.TrainerLogin(req)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.Error(ctx, 401, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, out)
}

type RotatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// RotatePassword godoc
// @Summary Cambiar contraseña del formador
// @Description Sustituye la contraseña compartida tras verificar la actual
// @Tags auth
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body RotatePasswordRequest true "Contraseñas actual y nueva"
// @Success 200 {object} util.Response "Success"
// @Failure 401 {object} util.Response "Contraseña actual incorrecta"
// @Router /api/auth/trainer/password [put]
func (c *AuthController) RotatePassword(ctx *gin.Context) {
	var req RotatePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.AuthService.RotateTrainerPassword(req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidCredentials):
			util.Error(ctx, 401, err.Error())
		case errors.Is(err, util.ErrValidation):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
