package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// NoStore is the sentinel store for student names without a parenthesized
// store suffix.
const NoStore = "Sin Tienda"

var storeSuffix = regexp.MustCompile(`\(([^)]+)\)`)

// StudentIdentity separates the composite key from its rendering. The
// persisted key stays in the legacy "1234 (Haro)" display form so existing
// result documents keep resolving.
type StudentIdentity struct {
	ID    string `json:"id"`    // last 4 DNI digits
	Store string `json:"store"` // store name
}

// DisplayName renders the identity in the persisted composite form.
func (s StudentIdentity) DisplayName() string {
	return fmt.Sprintf("%s (%s)", s.ID, s.Store)
}

// ParseStudentName splits a "1234 (Haro)" display name back into its parts.
// Names without a parenthesized suffix get the NoStore sentinel.
func ParseStudentName(name string) StudentIdentity {
	id := name
	store := NoStore
	if m := storeSuffix.FindStringSubmatch(name); m != nil {
		store = m[1]
		id = strings.TrimSpace(name[:strings.Index(name, "(")])
	} else {
		id = strings.TrimSpace(name)
	}
	return StudentIdentity{ID: id, Store: store}
}

// ExtractStore returns the store component of a student display name.
func ExtractStore(name string) string {
	return ParseStudentName(name).Store
}

// Trend direction of a student's last two scores
type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
)

// StudentStats is a materialized view over a student's result list. It is
// recomputed from the raw results on every read and never stored.
type StudentStats struct {
	Name         string       `json:"name"`
	AverageScore float64      `json:"averageScore"`
	TotalTests   int          `json:"totalTests"`
	PassedCount  int          `json:"passedCount"`
	LastTestDate time.Time    `json:"lastTestDate"`
	Improvement  Trend        `json:"improvement"`
	History      []QuizResult `json:"history"` // most recent first
}
