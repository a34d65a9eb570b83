package service

import (
	"campus_backend/internal/config"
	"campus_backend/internal/model"
	"campus_backend/internal/util"
	"campus_backend/pkg/monitoring"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Narrow collaborator views so the state machine can be exercised against
// in-memory fakes.
type SessionStore interface {
	Get(ctx context.Context, studentName string) (*model.QuizSession, error)
	Save(ctx context.Context, session *model.QuizSession) error
	Delete(ctx context.Context, studentName string) error
}

type ResultStore interface {
	Create(result *model.QuizResult) error
}

type QuestionGenerator interface {
	Generate(ctx context.Context, cfg model.QuizConfig, files []model.ManualFile) ([]model.Question, error)
}

type LaunchResolver interface {
	ResolveLaunch(manualID string) (string, model.ManualCategory, []model.ManualFile, error)
}

// QuizService runs the attempt lifecycle: launch, answer, navigate, score.
// One active session per student; every mutation is written back so a
// reconnect resumes mid-question with the same generated set.
type QuizService struct {
	Sessions  SessionStore
	Results   ResultStore
	Generator QuestionGenerator
	Catalog   LaunchResolver
	Quiz      config.QuizConfig
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
}

func NewQuizService(sessions SessionStore, results ResultStore, generator QuestionGenerator, catalog LaunchResolver, quizCfg config.QuizConfig, logger *zap.Logger) *QuizService {
	return &QuizService{
		Sessions:  sessions,
		Results:   results,
		Generator: generator,
		Catalog:   catalog,
		Quiz:      quizCfg,
		logger:    logger,
		now:       time.Now,
		newID:     func() string { return uuid.NewString() },
	}
}

type StartQuizInput struct {
	ManualID      string `json:"manualId" binding:"required"`
	Difficulty    string `json:"difficulty"`
	QuestionCount int    `json:"questionCount"`
	IsPractice    bool   `json:"isPractice"`
}

// Start launches a quiz or resumes the student's unfinished one. A session
// already in progress for the same manual is returned as-is, questions
// untouched; launching a different manual abandons the old snapshot.
func (s *QuizService) Start(ctx context.Context, studentName string, in StartQuizInput) (*model.QuizSession, error) {
	existing, err := s.Sessions.Get(ctx, studentName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrStorage, err)
	}
	if existing != nil && existing.Status == model.SessionInProgress && existing.Config.ManualID == in.ManualID {
		s.logger.Info("quiz resumed",
			zap.String("student", studentName),
			zap.String("manual", in.ManualID),
			zap.Int("answered", existing.AnsweredCount()))
		return existing, nil
	}

	if in.QuestionCount <= 0 {
		in.QuestionCount = defaultQuestionCount(in.ManualID, in.IsPractice)
	}
	if in.Difficulty == "" {
		in.Difficulty = model.DifficultyIntermedio
	}

	manualName, category, files, err := s.Catalog.ResolveLaunch(in.ManualID)
	if err != nil {
		return nil, err
	}

	cfg := model.QuizConfig{
		ManualID:      in.ManualID,
		ManualName:    manualName,
		Difficulty:    in.Difficulty,
		QuestionCount: in.QuestionCount,
		IsPractice:    in.IsPractice,
		Category:      category,
	}

	session := &model.QuizSession{
		StudentName: studentName,
		Config:      cfg,
		UserAnswers: map[int]string{},
		TimeLeft:    in.QuestionCount * s.Quiz.SecondsPerQuestion,
	}

	questions, err := s.Generator.Generate(ctx, cfg, files)
	if err != nil {
		monitoring.GenerationFailures.Inc()
		session.Status = model.SessionFailed
		if saveErr := s.Sessions.Save(ctx, session); saveErr != nil {
			s.logger.Error("could not persist failed session", zap.String("student", studentName), zap.Error(saveErr))
		}
		return nil, err
	}

	session.Status = model.SessionInProgress
	session.Questions = questions
	session.TimeLeft = len(questions) * s.Quiz.SecondsPerQuestion
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrStorage, err)
	}

	s.logger.Info("quiz started",
		zap.String("student", studentName),
		zap.String("manual", in.ManualID),
		zap.Int("questions", len(questions)),
		zap.Bool("practice", in.IsPractice))
	return session, nil
}

// Retry regenerates questions for a session whose generation failed, keeping
// the original launch configuration.
func (s *QuizService) Retry(ctx context.Context, studentName string) (*model.QuizSession, error) {
	session, err := s.activeSession(ctx, studentName)
	if err != nil {
		return nil, err
	}
	if session.Status != model.SessionFailed {
		return nil, fmt.Errorf("%w: la sesión no está en estado fallido", util.ErrValidation)
	}

	_, _, files, err := s.Catalog.ResolveLaunch(session.Config.ManualID)
	if err != nil {
		return nil, err
	}
	questions, err := s.Generator.Generate(ctx, session.Config, files)
	if err != nil {
		monitoring.GenerationFailures.Inc()
		return nil, err
	}

	session.Status = model.SessionInProgress
	session.Questions = questions
	session.CurrentIndex = 0
	session.UserAnswers = map[int]string{}
	session.TimeLeft = len(questions) * s.Quiz.SecondsPerQuestion
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrStorage, err)
	}
	return session, nil
}

// Current returns the student's live session, ErrNoActiveSession when there
// is none.
func (s *QuizService) Current(ctx context.Context, studentName string) (*model.QuizSession, error) {
	return s.activeSession(ctx, studentName)
}

func (s *QuizService) activeSession(ctx context.Context, studentName string) (*model.QuizSession, error) {
	session, err := s.Sessions.Get(ctx, studentName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrStorage, err)
	}
	if session == nil {
		return nil, util.ErrNoActiveSession
	}
	if session.Status == model.SessionCompleted {
		return nil, util.ErrSessionCompleted
	}
	return session, nil
}

func (s *QuizService) inProgress(ctx context.Context, studentName string) (*model.QuizSession, error) {
	session, err := s.activeSession(ctx, studentName)
	if err != nil {
		return nil, err
	}
	if session.Status != model.SessionInProgress {
		return nil, fmt.Errorf("%w: la generación del examen falló, reinténtalo", util.ErrGeneration)
	}
	return session, nil
}

// Answer records the serialized answer for one question. Answers can be
// changed until the quiz is finished.
func (s *QuizService) Answer(ctx context.Context, studentName string, questionID int, answer string) (*model.QuizSession, error) {
	session, err := s.inProgress(ctx, studentName)
	if err != nil {
		return nil, err
	}
	if findQuestion(session, questionID) == nil {
		return nil, fmt.Errorf("%w: la pregunta %d no pertenece al examen", util.ErrValidation, questionID)
	}
	session.UserAnswers[questionID] = answer
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrStorage, err)
	}
	return session, nil
}

// AnswerMatching commits the pair set of a matching question, serialized in
// the canonical "l:r, l:r" form so scoring can compare strings directly.
func (s *QuizService) AnswerMatching(ctx context.Context, studentName string, questionID int, pairs map[int]int) (*model.QuizSession, error) {
	session, err := s.inProgress(ctx, studentName)
	if err != nil {
		return nil, err
	}
	q := findQuestion(session, questionID)
	if q == nil {
		return nil, fmt.Errorf("%w: la pregunta %d no pertenece al examen", util.ErrValidation, questionID)
	}
	if q.Type != model.Matching {
		return nil, fmt.Errorf("%w: la pregunta %d no es de relación", util.ErrValidation, questionID)
	}

	n := len(q.Options)
	seen := make(map[int]bool, len(pairs))
	for l, r := range pairs {
		if l < 0 || l >= n || r < 0 || r >= len(q.MatchingOptions) {
			return nil, fmt.Errorf("%w: índice de pareja fuera de rango", util.ErrValidation)
		}
		if seen[r] {
			return nil, fmt.Errorf("%w: definición %d usada dos veces", util.ErrValidation, r)
		}
		seen[r] = true
	}

	session.UserAnswers[questionID] = model.FormatMatchingAnswer(pairs)
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrStorage, err)
	}
	return session, nil
}

// Navigate moves the cursor. Moving backward is free; moving forward
// requires every question before the target to be answered, with matching
// questions carrying their full pair set. A jump cannot skip over an
// unanswered question.
func (s *QuizService) Navigate(ctx context.Context, studentName string, index int) (*model.QuizSession, error) {
	session, err := s.inProgress(ctx, studentName)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(session.Questions) {
		return nil, fmt.Errorf("%w: índice de pregunta fuera de rango", util.ErrValidation)
	}
	if index > session.CurrentIndex {
		for _, q := range session.Questions[:index] {
			if err := answeredInFull(session, q); err != nil {
				return nil, err
			}
		}
	}
	session.CurrentIndex = index
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrStorage, err)
	}
	return session, nil
}

// SyncTime persists the advisory countdown. When auto submit is enabled and
// the clock hits zero the attempt is scored immediately and the finished
// result is returned.
func (s *QuizService) SyncTime(ctx context.Context, studentName string, timeLeft int) (*model.QuizSession, *model.QuizResult, error) {
	session, err := s.inProgress(ctx, studentName)
	if err != nil {
		return nil, nil, err
	}
	if timeLeft < 0 {
		timeLeft = 0
	}
	session.TimeLeft = timeLeft

	if s.Quiz.AutoSubmit && timeLeft == 0 {
		result, err := s.finish(ctx, session)
		if err != nil {
			return nil, nil, err
		}
		return nil, result, nil
	}

	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", util.ErrStorage, err)
	}
	return session, nil, nil
}

// Finish scores the attempt and persists the result.
func (s *QuizService) Finish(ctx context.Context, studentName string) (*model.QuizResult, error) {
	session, err := s.inProgress(ctx, studentName)
	if err != nil {
		return nil, err
	}
	return s.finish(ctx, session)
}

func (s *QuizService) finish(ctx context.Context, session *model.QuizSession) (*model.QuizResult, error) {
	if session.PendingResultID == "" {
		session.PendingResultID = s.newID()
	}

	result := ScoreSession(session)
	result.ID = session.PendingResultID
	result.Date = s.now()

	// Persist first, clean up after. If the write fails the snapshot stays,
	// id included, so a resubmit stores the same result instead of a
	// duplicate.
	if err := s.Results.Create(result); err != nil {
		s.logger.Error("result save failed, keeping session for resubmit",
			zap.String("student", session.StudentName), zap.Error(err))
		if saveErr := s.Sessions.Save(ctx, session); saveErr != nil {
			s.logger.Error("could not persist pending result id", zap.String("student", session.StudentName), zap.Error(saveErr))
		}
		return nil, fmt.Errorf("%w: %v", util.ErrStorage, err)
	}
	if err := s.Sessions.Delete(ctx, session.StudentName); err != nil {
		s.logger.Warn("completed session cleanup failed", zap.String("student", session.StudentName), zap.Error(err))
	}

	mode := "official"
	if result.IsPractice {
		mode = "practice"
	}
	outcome := "failed"
	if result.Passed() {
		outcome = "passed"
	}
	monitoring.QuizCompletions.WithLabelValues(mode, outcome).Inc()

	s.logger.Info("quiz finished",
		zap.String("student", session.StudentName),
		zap.String("manual", session.Config.ManualName),
		zap.Float64("score", result.Score),
		zap.String("outcome", outcome))
	return result, nil
}

// Abandon discards the active session without scoring it.
func (s *QuizService) Abandon(ctx context.Context, studentName string) error {
	if err := s.Sessions.Delete(ctx, studentName); err != nil {
		return fmt.Errorf("%w: %v", util.ErrStorage, err)
	}
	return nil
}

// ScoreSession grades an attempt. Pure: exact string comparison per
// question, unanswered questions recorded with the unanswered marker, score
// as the exact percentage of correct answers.
func ScoreSession(session *model.QuizSession) *model.QuizResult {
	correct := 0
	details := make([]model.ResultDetail, len(session.Questions))
	for i, q := range session.Questions {
		answer, ok := session.UserAnswers[q.ID]
		if !ok || answer == "" {
			answer = model.UnansweredMarker
		}
		isCorrect := answer == q.CorrectAnswer
		if isCorrect {
			correct++
		}
		details[i] = model.ResultDetail{
			QuestionID:    q.ID,
			QuestionText:  q.QuestionText,
			UserAnswer:    answer,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     isCorrect,
			Explanation:   q.Explanation,
			SourceManual:  q.SourceManual,
		}
	}

	score := 0.0
	if len(session.Questions) > 0 {
		score = 100 * float64(correct) / float64(len(session.Questions))
	}

	return &model.QuizResult{
		StudentName:    session.StudentName,
		ManualName:     session.Config.ManualName,
		Category:       session.Config.Category,
		Score:          score,
		TotalQuestions: len(session.Questions),
		CorrectAnswers: correct,
		Difficulty:     session.Config.Difficulty,
		IsPractice:     session.Config.IsPractice,
		Details:        details,
	}
}

// defaultQuestionCount mirrors the launch presets: 10 for a single-manual
// practice run, 20 for an official manual or block certification, 30 for the
// global one.
func defaultQuestionCount(manualID string, practice bool) int {
	switch {
	case manualID == model.AllManualsID:
		return 30
	case strings.HasPrefix(manualID, model.BlockManualPrefix):
		return 20
	case practice:
		return 10
	default:
		return 20
	}
}

// answeredInFull reports whether a question carries a complete answer. For
// matching questions that means a parsed pair per left-column option.
func answeredInFull(session *model.QuizSession, q model.Question) error {
	answer := session.UserAnswers[q.ID]
	if answer == "" {
		return fmt.Errorf("%w: responde la pregunta %d antes de continuar", util.ErrValidation, q.ID)
	}
	if q.Type == model.Matching {
		pairs, err := model.ParseMatchingAnswer(answer)
		if err != nil || len(pairs) != len(q.Options) {
			return fmt.Errorf("%w: completa todas las parejas de la pregunta %d antes de continuar", util.ErrValidation, q.ID)
		}
	}
	return nil
}

func findQuestion(session *model.QuizSession, questionID int) *model.Question {
	for i := range session.Questions {
		if session.Questions[i].ID == questionID {
			return &session.Questions[i]
		}
	}
	return nil
}
