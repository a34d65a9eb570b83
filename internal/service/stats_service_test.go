package service

import (
	"campus_backend/internal/model"
	"testing"
	"time"
)

func result(student string, score float64, daysAgo int, category model.ManualCategory, practice bool) model.QuizResult {
	return model.QuizResult{
		StudentName: student,
		Score:       score,
		Date:        time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC).AddDate(0, 0, -daysAgo),
		Category:    category,
		IsPractice:  practice,
	}
}

func TestAggregateByStudent(t *testing.T) {
	results := []model.QuizResult{
		result("1234 (Haro)", 60, 3, model.CategoryOperativa, false),
		result("1234 (Haro)", 90, 1, model.CategoryOperativa, false),
		result("5678 (Getafe)", 85, 2, model.CategoryProducto, false),
	}

	stats := AggregateByStudent(results)
	if len(stats) != 2 {
		t.Fatalf("got %d students, want 2", len(stats))
	}

	// Sorted by average descending: 5678 (85) before 1234 (75).
	if stats[0].Name != "5678 (Getafe)" {
		t.Errorf("first student = %q, want highest average first", stats[0].Name)
	}

	var haro model.StudentStats
	for _, s := range stats {
		if s.Name == "1234 (Haro)" {
			haro = s
		}
	}
	if haro.AverageScore != 75 {
		t.Errorf("average = %v, want 75", haro.AverageScore)
	}
	if haro.TotalTests != 2 {
		t.Errorf("totalTests = %d, want 2", haro.TotalTests)
	}
	if haro.PassedCount != 1 {
		t.Errorf("passedCount = %d, want 1", haro.PassedCount)
	}
	if haro.Improvement != model.TrendUp {
		t.Errorf("improvement = %q, want up (60 then 90)", haro.Improvement)
	}
	if len(haro.History) != 2 || haro.History[0].Score != 90 {
		t.Errorf("history should be most recent first, got %+v", haro.History)
	}
}

func TestAggregateByStudentTrends(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64 // oldest first
		want   model.Trend
	}{
		{"single result", []float64{80}, model.TrendNeutral},
		{"improving", []float64{50, 70}, model.TrendUp},
		{"declining", []float64{90, 40}, model.TrendDown},
		{"tie", []float64{75, 75}, model.TrendNeutral},
		{"only last two matter", []float64{100, 20, 60}, model.TrendUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var results []model.QuizResult
			for i, score := range tt.scores {
				results = append(results, result("1234 (Haro)", score, len(tt.scores)-i, model.CategoryOperativa, false))
			}
			stats := AggregateByStudent(results)
			if len(stats) != 1 {
				t.Fatalf("got %d students, want 1", len(stats))
			}
			if stats[0].Improvement != tt.want {
				t.Errorf("improvement = %q, want %q", stats[0].Improvement, tt.want)
			}
		})
	}
}

func TestAggregateByStudentIdempotent(t *testing.T) {
	results := []model.QuizResult{
		result("1234 (Haro)", 60, 2, model.CategoryOperativa, false),
		result("1234 (Haro)", 90, 1, model.CategoryOperativa, false),
	}

	first := AggregateByStudent(results)
	second := AggregateByStudent(results)
	if first[0].AverageScore != second[0].AverageScore ||
		first[0].Improvement != second[0].Improvement ||
		first[0].TotalTests != second[0].TotalTests {
		t.Errorf("repeated aggregation diverged: %+v vs %+v", first[0], second[0])
	}
}

func TestAggregateByStudentEmpty(t *testing.T) {
	if stats := AggregateByStudent(nil); len(stats) != 0 {
		t.Errorf("expected no stats for no results, got %d", len(stats))
	}
}

func TestAggregateByCategory(t *testing.T) {
	results := []model.QuizResult{
		result("1234 (Haro)", 80, 3, model.CategoryOperativa, false),
		result("5678 (Getafe)", 60, 2, model.CategoryOperativa, false),
		result("1234 (Haro)", 100, 1, model.CategoryOperativa, true), // practice, excluded
		result("1234 (Haro)", 90, 1, model.CategoryProducto, false),
	}

	averages := AggregateByCategory(results, model.Categories)
	byCat := map[model.ManualCategory]float64{}
	for i, cat := range model.Categories {
		byCat[cat] = averages[i]
	}

	if byCat[model.CategoryOperativa] != 70 {
		t.Errorf("Operativa = %v, want 70 (practice excluded)", byCat[model.CategoryOperativa])
	}
	if byCat[model.CategoryProducto] != 90 {
		t.Errorf("Producto = %v, want 90", byCat[model.CategoryProducto])
	}
	if byCat[model.CategoryVisual] != 0 {
		t.Errorf("category without results = %v, want 0", byCat[model.CategoryVisual])
	}
}

func TestComputeGlobalStats(t *testing.T) {
	results := []model.QuizResult{
		result("1234 (Haro)", 80, 2, model.CategoryOperativa, false),
		result("5678 (Getafe)", 60, 1, model.CategoryOperativa, false),
	}

	stats := ComputeGlobalStats(results)
	if stats.AvgScore != 70 {
		t.Errorf("avgScore = %v, want 70", stats.AvgScore)
	}
	if stats.TotalTests != 2 {
		t.Errorf("totalTests = %d, want 2", stats.TotalTests)
	}
	if stats.PassRate != 50 {
		t.Errorf("passRate = %v, want 50 (80 passes, 60 fails)", stats.PassRate)
	}

	empty := ComputeGlobalStats(nil)
	if empty.AvgScore != 0 || empty.TotalTests != 0 || empty.PassRate != 0 {
		t.Errorf("empty input should yield zero stats, got %+v", empty)
	}
}

func TestFilterByStore(t *testing.T) {
	results := []model.QuizResult{
		result("1234 (Haro)", 80, 2, model.CategoryOperativa, false),
		result("5678 (Getafe)", 60, 1, model.CategoryOperativa, false),
		result("9012", 70, 1, model.CategoryOperativa, false),
	}

	haro := FilterByStore(results, "Haro")
	if len(haro) != 1 || haro[0].StudentName != "1234 (Haro)" {
		t.Errorf("store filter gave %+v", haro)
	}

	if all := FilterByStore(results, ""); len(all) != 3 {
		t.Errorf("empty store should keep everything, got %d", len(all))
	}
	if all := FilterByStore(results, "Todas"); len(all) != 3 {
		t.Errorf("Todas should keep everything, got %d", len(all))
	}

	noStore := FilterByStore(results, model.NoStore)
	if len(noStore) != 1 || noStore[0].StudentName != "9012" {
		t.Errorf("NoStore filter gave %+v", noStore)
	}
}
