package model

import "testing"

func TestFormatMatchingAnswer(t *testing.T) {
	tests := []struct {
		name  string
		pairs map[int]int
		want  string
	}{
		{"empty", map[int]int{}, ""},
		{"single", map[int]int{0: 2}, "0:2"},
		{"ordered by left index", map[int]int{2: 1, 0: 2, 1: 0}, "0:2, 1:0, 2:1"},
		{"insertion order irrelevant", map[int]int{1: 3, 3: 1, 0: 0, 2: 2}, "0:0, 1:3, 2:2, 3:1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatMatchingAnswer(tt.pairs)
			if got != tt.want {
				t.Errorf("FormatMatchingAnswer(%v) = %q, want %q", tt.pairs, got, tt.want)
			}
		})
	}
}

func TestParseMatchingAnswerRoundTrip(t *testing.T) {
	pairs := map[int]int{0: 2, 1: 0, 2: 1}
	encoded := FormatMatchingAnswer(pairs)

	parsed, err := ParseMatchingAnswer(encoded)
	if err != nil {
		t.Fatalf("ParseMatchingAnswer(%q) error: %v", encoded, err)
	}
	if len(parsed) != len(pairs) {
		t.Fatalf("parsed %d pairs, want %d", len(parsed), len(pairs))
	}
	for _, p := range parsed {
		if pairs[p.Left] != p.Right {
			t.Errorf("pair %d:%d does not match source map", p.Left, p.Right)
		}
	}
}

func TestParseMatchingAnswerMalformed(t *testing.T) {
	for _, input := range []string{"0", "a:1", "0:b", "0:1:2"} {
		if _, err := ParseMatchingAnswer(input); err == nil {
			t.Errorf("ParseMatchingAnswer(%q) expected error, got nil", input)
		}
	}
}

func TestValidateMatching(t *testing.T) {
	base := Question{
		ID:              1,
		Type:            Matching,
		Options:         []string{"Gore-Tex", "Vibram", "Primaloft"},
		MatchingOptions: []string{"suela", "membrana", "relleno"},
	}

	tests := []struct {
		name    string
		mutate  func(q *Question)
		wantErr bool
	}{
		{"valid bijection", func(q *Question) { q.CorrectAnswer = "0:1, 1:0, 2:2" }, false},
		{"duplicate right index", func(q *Question) { q.CorrectAnswer = "0:1, 1:1, 2:2" }, true},
		{"duplicate left index", func(q *Question) { q.CorrectAnswer = "0:1, 0:0, 2:2" }, true},
		{"out of range", func(q *Question) { q.CorrectAnswer = "0:1, 1:0, 2:5" }, true},
		{"incomplete mapping", func(q *Question) { q.CorrectAnswer = "0:1, 1:0" }, true},
		{"length mismatch", func(q *Question) {
			q.CorrectAnswer = "0:1, 1:0, 2:2"
			q.MatchingOptions = q.MatchingOptions[:2]
		}, true},
		{"no options", func(q *Question) {
			q.Options = nil
			q.CorrectAnswer = ""
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := base
			tt.mutate(&q)
			err := ValidateMatching(q)
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateMatchingIgnoresOtherTypes(t *testing.T) {
	q := Question{ID: 7, Type: MultipleChoice, CorrectAnswer: "whatever"}
	if err := ValidateMatching(q); err != nil {
		t.Errorf("non-matching question should not be validated: %v", err)
	}
}
