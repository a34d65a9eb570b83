package service

import (
	"campus_backend/internal/config"
	"campus_backend/internal/model"
	"campus_backend/internal/util"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// GenerationService produces exam questions from manual content through an
// OpenAI-compatible chat API. Any failure, transport or malformed output,
// surfaces as util.ErrGeneration so the quiz layer can offer a retry.
type GenerationService struct {
	api    *openai.Client
	model  string
	logger *zap.Logger
}

func NewGenerationService(cfg config.AIConfig, logger *zap.Logger) *GenerationService {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &GenerationService{
		api:    openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: logger,
	}
}

func generationSystemPrompt(count int) string {
	var sb strings.Builder
	sb.WriteString("Eres un experto formador corporativo senior para la cadena de tiendas de deporte 'Maspormenos'.\n")
	sb.WriteString("Tu objetivo es evaluar a los empleados con el máximo rigor pedagógico basándote EXCLUSIVAMENTE en el material proporcionado.\n\n")
	sb.WriteString("CRITERIOS DE EXAMEN:\n")
	sb.WriteString(fmt.Sprintf("1. Generarás exactamente %d preguntas.\n", count))
	sb.WriteString("2. Tipos de preguntas a incluir obligatoriamente:\n")
	sb.WriteString("   - 'true_false': Exactamente dos opciones [\"Verdadero\", \"Falso\"]. (30% del test)\n")
	sb.WriteString("   - 'multiple_choice': 4 opciones plausibles. (40% del test)\n")
	sb.WriteString("   - 'matching': Relación de conceptos. Ideal para terminología técnica, procesos PDA o categorías visuales. (30% del test)\n")
	sb.WriteString("3. Formato para 'matching':\n")
	sb.WriteString("   - 'options': Lista de 4-5 conceptos cortos (ej: \"Gore-Tex\", \"Vibram\").\n")
	sb.WriteString("   - 'matchingOptions': Lista de 4-5 definiciones correspondientes pero DESORDENADAS.\n")
	sb.WriteString("   - 'correctAnswer': Una cadena con los índices correctos del tipo \"0:2, 1:0, 2:1\" donde el primer número es el índice de 'options' y el segundo el de 'matchingOptions'.\n")
	sb.WriteString("4. Rigurosidad: Si el material es técnico, las preguntas deben ser precisas en datos y flujos.\n")
	sb.WriteString("5. Identificación: Indica en 'sourceManual' el nombre del manual del que extraes la pregunta.\n")
	sb.WriteString("6. Formato: Devuelve ÚNICAMENTE un objeto JSON {\"questions\": [...]} donde cada pregunta tiene los campos: id, type, questionText, options, matchingOptions, correctAnswer, explanation, referenceContext, sourceManual.\n")
	return sb.String()
}

func buildGenerationPrompt(cfg model.QuizConfig, files []model.ManualFile) string {
	var sb strings.Builder

	for _, f := range files {
		sb.WriteString("=== MATERIAL DE FORMACIÓN ===\n")
		sb.WriteString(decodePayload(f.Data))
		sb.WriteString("\n\n")
	}

	mode := "OFICIAL"
	if cfg.IsPractice {
		mode = "DE PRÁCTICA"
	}
	scope := "ESPECÍFICO: " + cfg.ManualName
	if cfg.ManualID == model.AllManualsID {
		scope = "CERTIFICACIÓN GLOBAL"
	}
	sb.WriteString(fmt.Sprintf("Genera un examen de formación %s con %d preguntas variadas.\n", mode, cfg.QuestionCount))
	sb.WriteString("Contexto: " + scope + "\n")
	sb.WriteString(fmt.Sprintf("Nivel de dificultad: %s.\n", cfg.Difficulty))
	sb.WriteString("Incluye preguntas de relación de conceptos (matching) para evaluar el dominio de términos técnicos y flujos de trabajo.\n")
	return sb.String()
}

// decodePayload turns a stored base64 manual body back into text. Payloads
// that are not valid base64 pass through unchanged.
func decodePayload(data string) string {
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return data
	}
	return string(decoded)
}

type questionEnvelope struct {
	Questions []model.Question `json:"questions"`
}

// Generate builds the question set for one quiz launch. The returned slice
// has exactly the questions the model produced after validation; a set that
// is empty or structurally broken is an ErrGeneration, never a zero-question
// quiz.
func (s *GenerationService) Generate(ctx context.Context, cfg model.QuizConfig, files []model.ManualFile) ([]model.Question, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no hay material para generar el examen", util.ErrGeneration)
	}

	resp, err := s.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: generationSystemPrompt(cfg.QuestionCount)},
			{Role: openai.ChatMessageRoleUser, Content: buildGenerationPrompt(cfg, files)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.3,
	})
	if err != nil {
		s.logger.Error("quiz generation call failed", zap.String("manual", cfg.ManualName), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", util.ErrGeneration, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: respuesta vacía del modelo", util.ErrGeneration)
	}

	raw := resp.Choices[0].Message.Content
	questions, err := parseQuestions(raw)
	if err != nil {
		s.logger.Error("quiz generation returned malformed payload",
			zap.String("manual", cfg.ManualName), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", util.ErrGeneration, err)
	}

	s.logger.Info("quiz generated",
		zap.String("manual", cfg.ManualName),
		zap.String("difficulty", cfg.Difficulty),
		zap.Int("questions", len(questions)))
	return questions, nil
}

// parseQuestions accepts both the {"questions": [...]} envelope and a bare
// array, then validates each question structurally.
func parseQuestions(raw string) ([]model.Question, error) {
	var questions []model.Question

	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal([]byte(trimmed), &questions); err != nil {
			return nil, fmt.Errorf("parse question array: %w", err)
		}
	} else {
		var env questionEnvelope
		if err := json.Unmarshal([]byte(trimmed), &env); err != nil {
			return nil, fmt.Errorf("parse question envelope: %w", err)
		}
		questions = env.Questions
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("el modelo no devolvió preguntas")
	}
	for i := range questions {
		q := &questions[i]
		if q.ID == 0 {
			q.ID = i + 1
		}
		if q.QuestionText == "" || q.CorrectAnswer == "" {
			return nil, fmt.Errorf("question %d missing text or answer", q.ID)
		}
		if len(q.Options) == 0 {
			return nil, fmt.Errorf("question %d has no options", q.ID)
		}
		if err := model.ValidateMatching(*q); err != nil {
			return nil, err
		}
	}
	return questions, nil
}
