package controller

import (
	"campus_backend/internal/service"
	"campus_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	ChatService *service.ChatService
}

func NewChatController(chatService *service.ChatService) *ChatController {
	return &ChatController{ChatService: chatService}
}

type ChatRequest struct {
	Question string `json:"question" binding:"required"`
}

// Ask godoc
// @Summary Asistente de manuales
// @Description Responde una duda operativa buscando en toda la biblioteca de manuales y citando las fuentes
// @Tags asistente
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body ChatRequest true "Pregunta del empleado"
// @Success 200 {object} util.Response{data=object} "Success"
// @Failure 502 {object} util.Response "El asistente no está disponible"
// @Router /api/chat [post]
func (c *ChatController) Ask(ctx *gin.Context) {
	var req ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	answer, err := c.ChatService.Ask(ctx.Request.Context(), req.Question)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrValidation):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrGeneration):
			util.Error(ctx, 502, "Error al conectar con el asistente.")
		case errors.Is(err, util.ErrNotFound):
			util.Error(ctx, 404, "no hay manuales en la biblioteca")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"answer": answer})
}
