package model

import "time"

// UnansweredMarker is recorded as the user answer for questions left blank.
const UnansweredMarker = "Sin responder"

// ResultDetail is the per-question record attached to a quiz result.
type ResultDetail struct {
	QuestionID    int    `json:"questionId"`
	QuestionText  string `json:"questionText"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
	Explanation   string `json:"explanation"`
	SourceManual  string `json:"sourceManual,omitempty"`
}

// QuizResult is the persisted outcome of one finished attempt. Created
// exactly once at quiz completion and never mutated afterwards, except for
// CertificateName (set by a trainer for diploma issuance) and explicit
// trainer deletes.
//
// swagger:model QuizResult
type QuizResult struct {
	ID              string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	StudentName     string         `gorm:"size:120;index;not null" json:"studentName"`
	ManualName      string         `gorm:"size:255;not null" json:"manualName"`
	Category        ManualCategory `gorm:"size:50;index" json:"category,omitempty"`
	Score           float64        `gorm:"not null" json:"score"` // 0-100, exact 100*correct/total
	TotalQuestions  int            `gorm:"not null" json:"totalQuestions"`
	CorrectAnswers  int            `gorm:"not null" json:"correctAnswers"`
	Date            time.Time      `gorm:"index;not null" json:"date"`
	Difficulty      string         `gorm:"size:20" json:"difficulty"`
	IsPractice      bool           `gorm:"default:false" json:"isPractice"`
	CertificateName string         `gorm:"size:255" json:"certificateName,omitempty"`
	Details         []ResultDetail `gorm:"serializer:json;type:json" json:"details"`
}

func (QuizResult) TableName() string {
	return "quiz_results"
}

// Passed reports whether the attempt clears the fixed certification cutoff.
func (r QuizResult) Passed() bool {
	return r.Score >= PassThreshold
}

// PassThreshold is the certification cutoff, inclusive, used by every
// dashboard.
const PassThreshold = 80.0
