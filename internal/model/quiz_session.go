package model

// SessionStatus state of an in-flight quiz attempt
type SessionStatus string

const (
	SessionInProgress SessionStatus = "in_progress"
	SessionFailed     SessionStatus = "failed" // generation failed, retry allowed
	SessionCompleted  SessionStatus = "completed"
)

// QuizConfig is the ephemeral launch configuration of one quiz. It is built
// per launch and never persisted outside the session snapshot.
type QuizConfig struct {
	ManualID      string         `json:"manualId"`
	ManualName    string         `json:"manualName"`
	Difficulty    string         `json:"difficulty"` // Básico | Intermedio | Avanzado
	QuestionCount int            `json:"questionCount"`
	IsPractice    bool           `json:"isPractice"`
	Category      ManualCategory `json:"category"`
}

const (
	DifficultyBasico     = "Básico"
	DifficultyIntermedio = "Intermedio"
	DifficultyAvanzado   = "Avanzado"
)

// Virtual manual ids for block and global certifications.
const (
	BlockManualPrefix = "block_"
	AllManualsID      = "all_manuals"
)

// QuizSession is the resumable snapshot of an attempt, keyed by student.
// Every state change (index, answers, time) is written back so a reconnect
// resumes exactly where the student left off, with the same question set.
type QuizSession struct {
	StudentName  string         `json:"studentName"`
	Config       QuizConfig     `json:"config"`
	Status       SessionStatus  `json:"status"`
	Questions    []Question     `json:"questions"`
	CurrentIndex int            `json:"currentQuestionIndex"`
	UserAnswers  map[int]string `json:"userAnswers"` // question id -> serialized answer
	TimeLeft     int            `json:"timeLeft"`    // seconds, advisory countdown

	// PendingResultID is stamped on the first finish attempt so a retry after
	// a failed save writes the same result id instead of a duplicate.
	PendingResultID string `json:"pendingResultId,omitempty"`
}

// AnsweredCount reports how many questions carry a non-empty answer.
func (s *QuizSession) AnsweredCount() int {
	n := 0
	for _, a := range s.UserAnswers {
		if a != "" {
			n++
		}
	}
	return n
}
