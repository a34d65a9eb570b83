package service

import (
	"campus_backend/internal/model"
	"campus_backend/internal/repository"
	"fmt"
	"sort"
)

// StatsService derives trainer dashboard statistics from raw quiz results.
// All aggregation is pure: the repository fetches, the functions below only
// transform, so calling them twice on the same input yields the same output.
type StatsService struct {
	ResultRepo *repository.ResultRepository
}

func NewStatsService(resultRepo *repository.ResultRepository) *StatsService {
	return &StatsService{ResultRepo: resultRepo}
}

// GlobalStats portal-wide aggregates for the trainer dashboard header
type GlobalStats struct {
	AvgScore   float64 `json:"avgScore"`
	TotalTests int     `json:"totalTests"`
	PassRate   float64 `json:"passRate"`
}

// CategoryAverage one radar chart axis
type CategoryAverage struct {
	Category model.ManualCategory `json:"category"`
	Average  float64              `json:"average"`
}

// AggregateByStudent groups results by student and computes each student's
// materialized stats. Trend compares the last two scores in chronological
// order; fewer than two results, or a tie, is neutral. The returned list is
// sorted by average score descending; each student's history is most recent
// first.
func AggregateByStudent(results []model.QuizResult) []model.StudentStats {
	groups := make(map[string][]model.QuizResult)
	order := []string{}
	for _, r := range results {
		if _, seen := groups[r.StudentName]; !seen {
			order = append(order, r.StudentName)
		}
		groups[r.StudentName] = append(groups[r.StudentName], r)
	}

	stats := make([]model.StudentStats, 0, len(groups))
	for _, name := range order {
		list := groups[name]
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Date.Before(list[j].Date)
		})

		total := 0.0
		passed := 0
		for _, r := range list {
			total += r.Score
			if r.Passed() {
				passed++
			}
		}

		trend := model.TrendNeutral
		if len(list) >= 2 {
			last := list[len(list)-1].Score
			prev := list[len(list)-2].Score
			if last > prev {
				trend = model.TrendUp
			} else if last < prev {
				trend = model.TrendDown
			}
		}

		history := make([]model.QuizResult, len(list))
		for i, r := range list {
			history[len(list)-1-i] = r
		}

		stats = append(stats, model.StudentStats{
			Name:         name,
			AverageScore: total / float64(len(list)),
			TotalTests:   len(list),
			PassedCount:  passed,
			LastTestDate: list[len(list)-1].Date,
			Improvement:  trend,
			History:      history,
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].AverageScore > stats[j].AverageScore
	})
	return stats
}

// AggregateByCategory computes the competency profile: per-category average
// over official attempts only. Practice attempts exist so students can
// rehearse without touching their record, so they never count here. A
// category with no official results averages 0.
func AggregateByCategory(results []model.QuizResult, categories []model.ManualCategory) []float64 {
	averages := make([]float64, len(categories))
	for i, cat := range categories {
		sum := 0.0
		n := 0
		for _, r := range results {
			if r.Category == cat && !r.IsPractice {
				sum += r.Score
				n++
			}
		}
		if n > 0 {
			averages[i] = sum / float64(n)
		}
	}
	return averages
}

// ComputeGlobalStats portal-wide average, count and pass rate.
func ComputeGlobalStats(results []model.QuizResult) GlobalStats {
	if len(results) == 0 {
		return GlobalStats{}
	}
	total := 0.0
	passed := 0
	for _, r := range results {
		total += r.Score
		if r.Passed() {
			passed++
		}
	}
	return GlobalStats{
		AvgScore:   total / float64(len(results)),
		TotalTests: len(results),
		PassRate:   float64(passed) / float64(len(results)) * 100,
	}
}

// FilterByStore keeps results whose student belongs to the given store.
// An empty store (or "Todas") keeps everything.
func FilterByStore(results []model.QuizResult, store string) []model.QuizResult {
	if store == "" || store == "Todas" {
		return results
	}
	filtered := make([]model.QuizResult, 0, len(results))
	for _, r := range results {
		if model.ExtractStore(r.StudentName) == store {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func (s *StatsService) GetStudentsEvolution(store string) ([]model.StudentStats, error) {
	results, err := s.ResultRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}
	return AggregateByStudent(FilterByStore(results, store)), nil
}

func (s *StatsService) GetCategoryAverages(store string) ([]CategoryAverage, error) {
	results, err := s.ResultRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}
	averages := AggregateByCategory(FilterByStore(results, store), model.Categories)
	out := make([]CategoryAverage, len(model.Categories))
	for i, cat := range model.Categories {
		out[i] = CategoryAverage{Category: cat, Average: averages[i]}
	}
	return out, nil
}

func (s *StatsService) GetGlobalStats() (GlobalStats, error) {
	results, err := s.ResultRepo.ListAll()
	if err != nil {
		return GlobalStats{}, fmt.Errorf("load results: %w", err)
	}
	return ComputeGlobalStats(results), nil
}

// GetStudentProfile returns one student's stats plus their competency
// profile, for the trainer's per-student view and the student dashboard.
func (s *StatsService) GetStudentProfile(studentName string) (*model.StudentStats, []CategoryAverage, error) {
	results, err := s.ResultRepo.ListByStudent(studentName)
	if err != nil {
		return nil, nil, fmt.Errorf("load student results: %w", err)
	}

	averages := AggregateByCategory(results, model.Categories)
	radar := make([]CategoryAverage, len(model.Categories))
	for i, cat := range model.Categories {
		radar[i] = CategoryAverage{Category: cat, Average: averages[i]}
	}

	if len(results) == 0 {
		return &model.StudentStats{Name: studentName, Improvement: model.TrendNeutral}, radar, nil
	}
	stats := AggregateByStudent(results)
	return &stats[0], radar, nil
}

// ListStores returns the distinct stores seen across all results, for the
// dashboard's store filter.
func (s *StatsService) ListStores() ([]string, error) {
	results, err := s.ResultRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}
	seen := map[string]bool{}
	stores := []string{}
	for _, r := range results {
		store := model.ExtractStore(r.StudentName)
		if !seen[store] {
			seen[store] = true
			stores = append(stores, store)
		}
	}
	sort.Strings(stores)
	return stores, nil
}
