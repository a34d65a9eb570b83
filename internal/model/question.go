package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// QuestionType kinds produced by the generation collaborator
type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	Matching       QuestionType = "matching"
	CaseStudy      QuestionType = "case_study"
)

// Question is a generated exam question. Questions are never persisted on
// their own; they live inside a quiz session snapshot until the attempt is
// scored.
//
// For matching questions, Options holds the left-column concepts and
// MatchingOptions the scrambled right-column definitions. CorrectAnswer
// encodes the left→right index mapping as "0:2, 1:0, 2:1".
type Question struct {
	ID               int          `json:"id"`
	Type             QuestionType `json:"type"`
	QuestionText     string       `json:"questionText"`
	Options          []string     `json:"options"`
	MatchingOptions  []string     `json:"matchingOptions,omitempty"`
	CorrectAnswer    string       `json:"correctAnswer"`
	Explanation      string       `json:"explanation"`
	ReferenceContext string       `json:"referenceContext"`
	SourceManual     string       `json:"sourceManual,omitempty"`
}

// MatchingPair is one committed left→right association.
type MatchingPair struct {
	Left  int `json:"left"`
	Right int `json:"right"`
}

// FormatMatchingAnswer serializes committed pairs in the canonical form:
// ascending left index, "l:r" joined by ", ". Scoring compares answer
// strings byte for byte, so both sides must use this exact serialization.
func FormatMatchingAnswer(pairs map[int]int) string {
	lefts := make([]int, 0, len(pairs))
	for l := range pairs {
		lefts = append(lefts, l)
	}
	sort.Ints(lefts)
	parts := make([]string, len(lefts))
	for i, l := range lefts {
		parts[i] = fmt.Sprintf("%d:%d", l, pairs[l])
	}
	return strings.Join(parts, ", ")
}

// ParseMatchingAnswer parses a "0:2, 1:0" mapping string.
func ParseMatchingAnswer(s string) ([]MatchingPair, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var pairs []MatchingPair
	for _, part := range strings.Split(s, ",") {
		fields := strings.Split(strings.TrimSpace(part), ":")
		if len(fields) != 2 {
			return nil, fmt.Errorf("malformed matching pair %q", part)
		}
		left, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return nil, fmt.Errorf("malformed left index in %q", part)
		}
		right, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil {
			return nil, fmt.Errorf("malformed right index in %q", part)
		}
		pairs = append(pairs, MatchingPair{Left: left, Right: right})
	}
	return pairs, nil
}

// ValidateMatching checks the structural invariant of a matching question:
// options and matchingOptions have equal length and the correct answer is a
// full bijection over {0..n-1} on both sides.
func ValidateMatching(q Question) error {
	if q.Type != Matching {
		return nil
	}
	n := len(q.Options)
	if n == 0 {
		return fmt.Errorf("matching question %d has no options", q.ID)
	}
	if len(q.MatchingOptions) != n {
		return fmt.Errorf("matching question %d: %d options vs %d definitions", q.ID, n, len(q.MatchingOptions))
	}
	pairs, err := ParseMatchingAnswer(q.CorrectAnswer)
	if err != nil {
		return fmt.Errorf("matching question %d: %w", q.ID, err)
	}
	if len(pairs) != n {
		return fmt.Errorf("matching question %d: %d pairs for %d options", q.ID, len(pairs), n)
	}
	leftSeen := make(map[int]bool, n)
	rightSeen := make(map[int]bool, n)
	for _, p := range pairs {
		if p.Left < 0 || p.Left >= n || leftSeen[p.Left] {
			return fmt.Errorf("matching question %d: invalid or duplicate left index %d", q.ID, p.Left)
		}
		if p.Right < 0 || p.Right >= n || rightSeen[p.Right] {
			return fmt.Errorf("matching question %d: invalid or duplicate right index %d", q.ID, p.Right)
		}
		leftSeen[p.Left] = true
		rightSeen[p.Right] = true
	}
	return nil
}
