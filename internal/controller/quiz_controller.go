package controller

import (
	"campus_backend/internal/service"
	"campus_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

func quizError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrValidation):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrNoActiveSession):
		util.Error(ctx, 404, "no hay ningún examen en curso")
	case errors.Is(err, util.ErrSessionCompleted):
		util.Error(ctx, 409, "el examen ya está finalizado")
	case errors.Is(err, util.ErrGeneration):
		util.Error(ctx, 502, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// Start godoc
// @Summary Iniciar o reanudar un examen
// @Description Lanza un examen generado por IA, o devuelve la sesión en curso si el empleado ya tenía una para ese manual
// @Tags examen
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.StartQuizInput true "Configuración del examen"
// @Success 200 {object} util.Response{data=model.QuizSession} "Success"
// @Failure 502 {object} util.Response "La generación falló; se puede reintentar"
// @Router /api/quiz/start [post]
func (c *QuizController) Start(ctx *gin.Context) {
	var req service.StartQuizInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetUserFromContext(ctx)
	session, err := c.QuizService.Start(ctx.Request.Context(), user.Name, req)
	if err != nil {
		quizError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

// Retry godoc
// @Summary Reintentar la generación
// @Description Vuelve a generar las preguntas de una sesión cuya generación falló, con la misma configuración
// @Tags examen
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.QuizSession} "Success"
// @Failure 502 {object} util.Response "La generación volvió a fallar"
// @Router /api/quiz/retry [post]
func (c *QuizController) Retry(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	session, err := c.QuizService.Retry(ctx.Request.Context(), user.Name)
	if err != nil {
		quizError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

// Current godoc
// @Summary Sesión en curso
// @Description Devuelve la sesión activa del empleado para reanudarla tras una reconexión
// @Tags examen
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.QuizSession} "Success"
// @Failure 404 {object} util.Response "Sin examen en curso"
// @Router /api/quiz/session [get]
func (c *QuizController) Current(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	session, err := c.QuizService.Current(ctx.Request.Context(), user.Name)
	if err != nil {
		quizError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

type AnswerRequest struct {
	QuestionID int    `json:"questionId" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
}

// Answer godoc
// @Summary Responder una pregunta
// @Description Registra la respuesta de una pregunta; puede cambiarse hasta finalizar el examen
// @Tags examen
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body AnswerRequest true "Respuesta"
// @Success 200 {object} util.Response{data=model.QuizSession} "Success"
// @Router /api/quiz/answer [post]
func (c *QuizController) Answer(ctx *gin.Context) {
	var req AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetUserFromContext(ctx)
	session, err := c.QuizService.Answer(ctx.Request.Context(), user.Name, req.QuestionID, req.Answer)
	if err != nil {
		quizError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

type MatchingAnswerRequest struct {
	QuestionID int         `json:"questionId" binding:"required"`
	Pairs      map[int]int `json:"pairs" binding:"required"`
}

// AnswerMatching godoc
// @Summary Responder una pregunta de relación
// @Description Registra las parejas concepto-definición de una pregunta de relación
// @Tags examen
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body MatchingAnswerRequest true "Parejas índice de concepto a índice de definición"
// @Success 200 {object} util.Response{data=model.QuizSession} "Success"
// @Router /api/quiz/answer/matching [post]
func (c *QuizController) AnswerMatching(ctx *gin.Context) {
	var req MatchingAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetUserFromContext(ctx)
	session, err := c.QuizService.AnswerMatching(ctx.Request.Context(), user.Name, req.QuestionID, req.Pairs)
	if err != nil {
		quizError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

type NavigateRequest struct {
	Index int `json:"index"`
}

// Navigate godoc
// @Summary Cambiar de pregunta
// @Description Mueve el cursor de la sesión; retroceder es libre, avanzar exige haber respondido todas las preguntas anteriores
// @Tags examen
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body NavigateRequest true "Índice de pregunta destino"
// @Success 200 {object} util.Response{data=model.QuizSession} "Success"
// @Router /api/quiz/navigate [post]
func (c *QuizController) Navigate(ctx *gin.Context) {
	var req NavigateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetUserFromContext(ctx)
	session, err := c.QuizService.Navigate(ctx.Request.Context(), user.Name, req.Index)
	if err != nil {
		quizError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

type SyncTimeRequest struct {
	TimeLeft int `json:"timeLeft"`
}

// SyncTime godoc
// @Summary Sincronizar el temporizador
// @Description Persiste el tiempo restante; con el cierre automático activado, llegar a cero finaliza el examen
// @Tags examen
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body SyncTimeRequest true "Segundos restantes"
// @Success 200 {object} util.Response "Sesión, o resultado si el examen se cerró"
// @Router /api/quiz/time [post]
func (c *QuizController) SyncTime(ctx *gin.Context) {
	var req SyncTimeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetUserFromContext(ctx)
	session, result, err := c.QuizService.SyncTime(ctx.Request.Context(), user.Name, req.TimeLeft)
	if err != nil {
		quizError(ctx, err)
		return
	}
	if result != nil {
		util.Success(ctx, gin.H{"finished": true, "result": result})
		return
	}
	util.Success(ctx, gin.H{"finished": false, "session": session})
}

// Finish godoc
// @Summary Finalizar el examen
// @Description Corrige el examen, guarda el resultado y elimina la sesión
// @Tags examen
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.QuizResult} "Success"
// @Failure 500 {object} util.Response "El guardado falló; la sesión se conserva para reintentar"
// @Router /api/quiz/finish [post]
func (c *QuizController) Finish(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	result, err := c.QuizService.Finish(ctx.Request.Context(), user.Name)
	if err != nil {
		quizError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// Abandon godoc
// @Summary Abandonar el examen
// @Description Descarta la sesión en curso sin corregirla ni guardar resultado
// @Tags examen
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response "Success"
// @Router /api/quiz/session [delete]
func (c *QuizController) Abandon(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if err := c.QuizService.Abandon(ctx.Request.Context(), user.Name); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
