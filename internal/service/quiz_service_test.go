package service

import (
	"campus_backend/internal/config"
	"campus_backend/internal/model"
	"campus_backend/internal/util"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeSessionStore struct {
	sessions map[string]*model.QuizSession
	saveErr  error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]*model.QuizSession{}}
}

func (f *fakeSessionStore) Get(ctx context.Context, student string) (*model.QuizSession, error) {
	s, ok := f.sessions[student]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSessionStore) Save(ctx context.Context, s *model.QuizSession) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	copied := *s
	f.sessions[s.StudentName] = &copied
	return nil
}

func (f *fakeSessionStore) Delete(ctx context.Context, student string) error {
	delete(f.sessions, student)
	return nil
}

type fakeResultStore struct {
	results   []*model.QuizResult
	createErr error
}

func (f *fakeResultStore) Create(r *model.QuizResult) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.results = append(f.results, r)
	return nil
}

type fakeGenerator struct {
	questions []model.Question
	err       error
	calls     int
}

func (f *fakeGenerator) Generate(ctx context.Context, cfg model.QuizConfig, files []model.ManualFile) ([]model.Question, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.questions, nil
}

type fakeResolver struct{}

func (fakeResolver) ResolveLaunch(manualID string) (string, model.ManualCategory, []model.ManualFile, error) {
	return "Manual PDA", model.CategoryOperativa, []model.ManualFile{{Data: "ZGF0YQ==", MimeType: "text/plain"}}, nil
}

func sampleQuestions() []model.Question {
	return []model.Question{
		{ID: 1, Type: model.MultipleChoice, QuestionText: "¿Flujo SFT?", Options: []string{"A", "B", "C", "D"}, CorrectAnswer: "B"},
		{ID: 2, Type: model.TrueFalse, QuestionText: "¿La PDA imprime etiquetas?", Options: []string{"Verdadero", "Falso"}, CorrectAnswer: "Verdadero"},
		{ID: 3, Type: model.Matching, QuestionText: "Relaciona", Options: []string{"Gore-Tex", "Vibram"}, MatchingOptions: []string{"suela", "membrana"}, CorrectAnswer: "0:1, 1:0"},
		{ID: 4, Type: model.MultipleChoice, QuestionText: "¿Umbral stock?", Options: []string{"1", "2", "3", "4"}, CorrectAnswer: "3"},
	}
}

func newTestQuizService(sessions SessionStore, results ResultStore, gen QuestionGenerator) *QuizService {
	svc := NewQuizService(sessions, results, gen, fakeResolver{}, config.QuizConfig{SecondsPerQuestion: 60}, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC) }
	svc.newID = func() string { return "result-1" }
	return svc
}

const student = "1234 (Haro)"

func TestStartCreatesSession(t *testing.T) {
	gen := &fakeGenerator{questions: sampleQuestions()}
	svc := newTestQuizService(newFakeSessionStore(), &fakeResultStore{}, gen)

	session, err := svc.Start(context.Background(), student, StartQuizInput{ManualID: "m_ope_02", Difficulty: model.DifficultyBasico})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if session.Status != model.SessionInProgress {
		t.Errorf("status = %q", session.Status)
	}
	if len(session.Questions) != 4 {
		t.Errorf("questions = %d, want 4", len(session.Questions))
	}
	if session.TimeLeft != 4*60 {
		t.Errorf("timeLeft = %d, want 240", session.TimeLeft)
	}
	if session.Config.ManualName != "Manual PDA" || session.Config.Category != model.CategoryOperativa {
		t.Errorf("launch config not resolved: %+v", session.Config)
	}
}

func TestStartResumesWithoutRegenerating(t *testing.T) {
	gen := &fakeGenerator{questions: sampleQuestions()}
	store := newFakeSessionStore()
	svc := newTestQuizService(store, &fakeResultStore{}, gen)

	ctx := context.Background()
	in := StartQuizInput{ManualID: "m_ope_02"}
	if _, err := svc.Start(ctx, student, in); err != nil {
		t.Fatalf("first Start: %v", err)
	}
	if _, err := svc.Answer(ctx, student, 1, "B"); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if _, err := svc.Navigate(ctx, student, 1); err != nil {
		t.Fatalf("Navigate: %v", err)
	}

	resumed, err := svc.Start(ctx, student, in)
	if err != nil {
		t.Fatalf("second Start: %v", err)
	}
	if gen.calls != 1 {
		t.Errorf("generator called %d times, resume must not regenerate", gen.calls)
	}
	if resumed.CurrentIndex != 1 {
		t.Errorf("resumed index = %d, want 1", resumed.CurrentIndex)
	}
	if resumed.UserAnswers[1] != "B" {
		t.Errorf("resumed answers lost: %+v", resumed.UserAnswers)
	}
}

func TestStartDifferentManualReplacesSession(t *testing.T) {
	gen := &fakeGenerator{questions: sampleQuestions()}
	svc := newTestQuizService(newFakeSessionStore(), &fakeResultStore{}, gen)

	ctx := context.Background()
	if _, err := svc.Start(ctx, student, StartQuizInput{ManualID: "m_ope_02"}); err != nil {
		t.Fatalf("first Start: %v", err)
	}
	session, err := svc.Start(ctx, student, StartQuizInput{ManualID: "m_prod_01"})
	if err != nil {
		t.Fatalf("second Start: %v", err)
	}
	if gen.calls != 2 {
		t.Errorf("generator calls = %d, want 2 for a new manual", gen.calls)
	}
	if session.Config.ManualID != "m_prod_01" {
		t.Errorf("session kept old manual: %+v", session.Config)
	}
}

func TestStartGenerationFailureThenRetry(t *testing.T) {
	gen := &fakeGenerator{err: fmt.Errorf("%w: upstream timeout", util.ErrGeneration)}
	store := newFakeSessionStore()
	svc := newTestQuizService(store, &fakeResultStore{}, gen)

	ctx := context.Background()
	_, err := svc.Start(ctx, student, StartQuizInput{ManualID: "m_ope_02"})
	if !errors.Is(err, util.ErrGeneration) {
		t.Fatalf("Start error = %v, want ErrGeneration", err)
	}
	saved := store.sessions[student]
	if saved == nil || saved.Status != model.SessionFailed {
		t.Fatalf("failed session not persisted: %+v", saved)
	}

	gen.err = nil
	gen.questions = sampleQuestions()
	session, err := svc.Retry(ctx, student)
	if err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if session.Status != model.SessionInProgress {
		t.Errorf("status after retry = %q", session.Status)
	}
	if len(session.Questions) != 4 {
		t.Errorf("retry produced %d questions", len(session.Questions))
	}
}

func TestRetryRequiresFailedSession(t *testing.T) {
	gen := &fakeGenerator{questions: sampleQuestions()}
	svc := newTestQuizService(newFakeSessionStore(), &fakeResultStore{}, gen)

	ctx := context.Background()
	if _, err := svc.Retry(ctx, student); !errors.Is(err, util.ErrNoActiveSession) {
		t.Errorf("Retry without session = %v, want ErrNoActiveSession", err)
	}

	if _, err := svc.Start(ctx, student, StartQuizInput{ManualID: "m_ope_02"}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := svc.Retry(ctx, student); !errors.Is(err, util.ErrValidation) {
		t.Errorf("Retry on healthy session = %v, want ErrValidation", err)
	}
}

func TestAnswerMatchingCanonicalForm(t *testing.T) {
	gen := &fakeGenerator{questions: sampleQuestions()}
	svc := newTestQuizService(newFakeSessionStore(), &fakeResultStore{}, gen)

	ctx := context.Background()
	if _, err := svc.Start(ctx, student, StartQuizInput{ManualID: "m_ope_02"}); err != nil {
		t.Fatalf("Start: %v", err)
	}

	session, err := svc.AnswerMatching(ctx, student, 3, map[int]int{1: 0, 0: 1})
	if err != nil {
		t.Fatalf("AnswerMatching: %v", err)
	}
	if got := session.UserAnswers[3]; got != "0:1, 1:0" {
		t.Errorf("serialized answer = %q, want canonical %q", got, "0:1, 1:0")
	}

	if _, err := svc.AnswerMatching(ctx, student, 3, map[int]int{0: 0, 1: 0}); !errors.Is(err, util.ErrValidation) {
		t.Errorf("duplicate right index accepted: %v", err)
	}
	if _, err := svc.AnswerMatching(ctx, student, 3, map[int]int{0: 5}); !errors.Is(err, util.ErrValidation) {
		t.Errorf("out-of-range index accepted: %v", err)
	}
	if _, err := svc.AnswerMatching(ctx, student, 1, map[int]int{0: 1}); !errors.Is(err, util.ErrValidation) {
		t.Errorf("matching answer on multiple choice accepted: %v", err)
	}
}

func TestNavigateBounds(t *testing.T) {
	gen := &fakeGenerator{questions: sampleQuestions()}
	svc := newTestQuizService(newFakeSessionStore(), &fakeResultStore{}, gen)

	ctx := context.Background()
	if _, err := svc.Start(ctx, student, StartQuizInput{ManualID: "m_ope_02"}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := svc.Navigate(ctx, student, -1); !errors.Is(err, util.ErrValidation) {
		t.Errorf("negative index accepted: %v", err)
	}
	if _, err := svc.Navigate(ctx, student, 4); !errors.Is(err, util.ErrValidation) {
		t.Errorf("index past the end accepted: %v", err)
	}
	if _, err := svc.Answer(ctx, student, 1, "B"); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if _, err := svc.Navigate(ctx, student, 1); err != nil {
		t.Errorf("forward move with answered current question rejected: %v", err)
	}
	if _, err := svc.Navigate(ctx, student, 0); err != nil {
		t.Errorf("backward move rejected: %v", err)
	}
}

func TestNavigateCannotSkipUnanswered(t *testing.T) {
	gen := &fakeGenerator{questions: sampleQuestions()}
	svc := newTestQuizService(newFakeSessionStore(), &fakeResultStore{}, gen)

	ctx := context.Background()
	if _, err := svc.Start(ctx, student, StartQuizInput{ManualID: "m_ope_02"}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	// The first question is answered but the second is not, so a jump over
	// it must be rejected even though the cursor's own question is complete.
	if _, err := svc.Answer(ctx, student, 1, "B"); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if _, err := svc.Navigate(ctx, student, 3); !errors.Is(err, util.ErrValidation) {
		t.Errorf("jump over unanswered question accepted: %v", err)
	}
	if _, err := svc.Answer(ctx, student, 2, "Verdadero"); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if _, err := svc.AnswerMatching(ctx, student, 3, map[int]int{0: 1, 1: 0}); err != nil {
		t.Fatalf("AnswerMatching: %v", err)
	}
	if _, err := svc.Navigate(ctx, student, 3); err != nil {
		t.Errorf("jump with all prior questions answered rejected: %v", err)
	}
}

func TestNavigateForwardRequiresAnswer(t *testing.T) {
	gen := &fakeGenerator{questions: sampleQuestions()}
	svc := newTestQuizService(newFakeSessionStore(), &fakeResultStore{}, gen)

	ctx := context.Background()
	if _, err := svc.Start(ctx, student, StartQuizInput{ManualID: "m_ope_02"}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := svc.Navigate(ctx, student, 1); !errors.Is(err, util.ErrValidation) {
		t.Errorf("forward move past unanswered question accepted: %v", err)
	}

	// A matching question with a partial pair set also blocks.
	if _, err := svc.Answer(ctx, student, 1, "B"); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if _, err := svc.Answer(ctx, student, 2, "Verdadero"); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if _, err := svc.Navigate(ctx, student, 2); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if _, err := svc.AnswerMatching(ctx, student, 3, map[int]int{0: 1}); err != nil {
		t.Fatalf("AnswerMatching: %v", err)
	}
	if _, err := svc.Navigate(ctx, student, 3); !errors.Is(err, util.ErrValidation) {
		t.Errorf("forward move with partial matching answer accepted: %v", err)
	}
	if _, err := svc.AnswerMatching(ctx, student, 3, map[int]int{0: 1, 1: 0}); err != nil {
		t.Fatalf("AnswerMatching: %v", err)
	}
	if _, err := svc.Navigate(ctx, student, 3); err != nil {
		t.Errorf("forward move with full bijection rejected: %v", err)
	}
}

func TestDefaultQuestionCounts(t *testing.T) {
	tests := []struct {
		name     string
		manualID string
		practice bool
		want     int
	}{
		{"official single manual", "m_ope_02", false, 20},
		{"practice single manual", "m_ope_02", true, 10},
		{"block certification", "block_Operativa", false, 20},
		{"global certification", model.AllManualsID, false, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := defaultQuestionCount(tt.manualID, tt.practice); got != tt.want {
				t.Errorf("defaultQuestionCount(%q, %t) = %d, want %d", tt.manualID, tt.practice, got, tt.want)
			}
		})
	}
}

func TestFinishScoresAndCleansUp(t *testing.T) {
	gen := &fakeGenerator{questions: sampleQuestions()}
	store := newFakeSessionStore()
	results := &fakeResultStore{}
	svc := newTestQuizService(store, results, gen)

	ctx := context.Background()
	if _, err := svc.Start(ctx, student, StartQuizInput{ManualID: "m_ope_02", Difficulty: model.DifficultyAvanzado}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	// 1 correct, 2 wrong, 3 correct via matching, 4 unanswered.
	if _, err := svc.Answer(ctx, student, 1, "B"); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if _, err := svc.Answer(ctx, student, 2, "Falso"); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if _, err := svc.AnswerMatching(ctx, student, 3, map[int]int{0: 1, 1: 0}); err != nil {
		t.Fatalf("AnswerMatching: %v", err)
	}

	result, err := svc.Finish(ctx, student)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if result.CorrectAnswers != 2 || result.TotalQuestions != 4 {
		t.Errorf("correct/total = %d/%d, want 2/4", result.CorrectAnswers, result.TotalQuestions)
	}
	if result.Score != 50 {
		t.Errorf("score = %v, want 50", result.Score)
	}
	if result.ID != "result-1" || !result.Date.Equal(time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("identity fields not stamped: %+v", result)
	}
	if len(result.Details) != 4 {
		t.Fatalf("details = %d, want 4", len(result.Details))
	}
	if result.Details[3].UserAnswer != model.UnansweredMarker {
		t.Errorf("unanswered question recorded %q, want %q", result.Details[3].UserAnswer, model.UnansweredMarker)
	}
	if result.Details[3].IsCorrect {
		t.Error("unanswered question marked correct")
	}

	if len(results.results) != 1 {
		t.Fatalf("persisted %d results, want 1", len(results.results))
	}
	if _, ok := store.sessions[student]; ok {
		t.Error("session not deleted after finish")
	}
	if _, err := svc.Current(context.Background(), student); !errors.Is(err, util.ErrNoActiveSession) {
		t.Errorf("Current after finish = %v, want ErrNoActiveSession", err)
	}
}

func TestFinishKeepsSessionWhenSaveFails(t *testing.T) {
	gen := &fakeGenerator{questions: sampleQuestions()}
	store := newFakeSessionStore()
	results := &fakeResultStore{createErr: errors.New("connection reset")}
	svc := newTestQuizService(store, results, gen)
	ids := 0
	svc.newID = func() string {
		ids++
		return fmt.Sprintf("result-%d", ids)
	}

	ctx := context.Background()
	if _, err := svc.Start(ctx, student, StartQuizInput{ManualID: "m_ope_02"}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := svc.Finish(ctx, student); !errors.Is(err, util.ErrStorage) {
		t.Fatalf("Finish error = %v, want ErrStorage", err)
	}
	if _, ok := store.sessions[student]; !ok {
		t.Fatal("session discarded even though the result was never saved")
	}

	// A later submit succeeds once storage recovers and reuses the id stamped
	// on the first attempt.
	results.createErr = nil
	result, err := svc.Finish(ctx, student)
	if err != nil {
		t.Fatalf("second Finish: %v", err)
	}
	if len(results.results) != 1 {
		t.Errorf("persisted %d results, want 1", len(results.results))
	}
	if result.ID != "result-1" {
		t.Errorf("result id = %q, want the id from the first attempt", result.ID)
	}
}

func TestSyncTimeAdvisoryByDefault(t *testing.T) {
	gen := &fakeGenerator{questions: sampleQuestions()}
	store := newFakeSessionStore()
	svc := newTestQuizService(store, &fakeResultStore{}, gen)

	ctx := context.Background()
	if _, err := svc.Start(ctx, student, StartQuizInput{ManualID: "m_ope_02"}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	session, finished, err := svc.SyncTime(ctx, student, 0)
	if err != nil {
		t.Fatalf("SyncTime: %v", err)
	}
	if finished != nil {
		t.Fatal("advisory timer must not auto-submit")
	}
	if session.TimeLeft != 0 {
		t.Errorf("timeLeft = %d, want 0", session.TimeLeft)
	}
	if _, ok := store.sessions[student]; !ok {
		t.Error("session lost after time sync")
	}
}

func TestSyncTimeAutoSubmit(t *testing.T) {
	gen := &fakeGenerator{questions: sampleQuestions()}
	store := newFakeSessionStore()
	results := &fakeResultStore{}
	svc := NewQuizService(store, results, gen, fakeResolver{}, config.QuizConfig{SecondsPerQuestion: 60, AutoSubmit: true}, zap.NewNop())

	ctx := context.Background()
	if _, err := svc.Start(ctx, student, StartQuizInput{ManualID: "m_ope_02"}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := svc.Answer(ctx, student, 1, "B"); err != nil {
		t.Fatalf("Answer: %v", err)
	}

	_, finished, err := svc.SyncTime(ctx, student, -5)
	if err != nil {
		t.Fatalf("SyncTime: %v", err)
	}
	if finished == nil {
		t.Fatal("expected auto-submitted result at zero")
	}
	if finished.CorrectAnswers != 1 {
		t.Errorf("correct = %d, want 1", finished.CorrectAnswers)
	}
	if _, ok := store.sessions[student]; ok {
		t.Error("session not deleted after auto submit")
	}
}

func TestAbandonDiscardsWithoutResult(t *testing.T) {
	gen := &fakeGenerator{questions: sampleQuestions()}
	store := newFakeSessionStore()
	results := &fakeResultStore{}
	svc := newTestQuizService(store, results, gen)

	ctx := context.Background()
	if _, err := svc.Start(ctx, student, StartQuizInput{ManualID: "m_ope_02"}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := svc.Abandon(ctx, student); err != nil {
		t.Fatalf("Abandon: %v", err)
	}
	if len(results.results) != 0 {
		t.Error("abandon must not record a result")
	}
	if _, ok := store.sessions[student]; ok {
		t.Error("session still present after abandon")
	}
}

func TestScoreSessionExactStringComparison(t *testing.T) {
	session := &model.QuizSession{
		StudentName: student,
		Config:      model.QuizConfig{ManualName: "Manual PDA", Category: model.CategoryOperativa, Difficulty: model.DifficultyBasico},
		Questions:   sampleQuestions(),
		UserAnswers: map[int]string{
			1: "b",          // case differs, wrong
			3: "1:0, 0:1",   // non-canonical order, wrong
			2: "Verdadero ", // trailing space, wrong
		},
	}

	result := ScoreSession(session)
	if result.CorrectAnswers != 0 {
		t.Errorf("correct = %d, scoring must be exact string comparison", result.CorrectAnswers)
	}
	if result.Score != 0 {
		t.Errorf("score = %v, want 0", result.Score)
	}
}
