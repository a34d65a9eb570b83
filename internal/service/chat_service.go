package service

import (
	"campus_backend/internal/config"
	"campus_backend/internal/model"
	"campus_backend/internal/util"
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const chatSystemPrompt = `Eres el 'Asistente Senior del Campus Maspormenos'. Tu misión es resolver dudas operativas de los empleados de tienda.

REGLAS DE ORO:
1. ACCESO TOTAL: Tienes acceso a MÚLTIPLES manuales. Busca en todos ellos para dar una respuesta completa.
2. CITADO: Indica SIEMPRE de qué manual o manuales has extraído la información.
3. PRECISIÓN: Si no encuentras la información exacta en los documentos, indícalo educadamente. No inventes procedimientos.
4. TONO: Profesional, servicial y experto en retail.`

// ChatService answers single-turn operational questions grounded on the
// manual library. Stateless: each question carries the full corpus.
type ChatService struct {
	api     *openai.Client
	model   string
	Catalog *CatalogService
	logger  *zap.Logger
}

func NewChatService(cfg config.AIConfig, catalog *CatalogService, logger *zap.Logger) *ChatService {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &ChatService{
		api:     openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		Catalog: catalog,
		logger:  logger,
	}
}

// Ask sends the question with every manual in the library as grounding
// context and returns the assistant's answer.
func (s *ChatService) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("%w: la pregunta está vacía", util.ErrValidation)
	}

	files, err := s.Catalog.CollectFiles(model.AllManualsID)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, f := range files {
		sb.WriteString("=== MANUAL ===\n")
		sb.WriteString(decodePayload(f.Data))
		sb.WriteString("\n\n")
	}
	sb.WriteString("PREGUNTA DEL EMPLEADO: ")
	sb.WriteString(question)

	resp, err := s.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: chatSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: sb.String()},
		},
		Temperature: 0.2,
	})
	if err != nil {
		s.logger.Error("manual chatbot call failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", util.ErrGeneration, err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "No hay información disponible.", nil
	}
	return resp.Choices[0].Message.Content, nil
}
