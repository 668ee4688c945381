package analyzer

import "testing"

func TestDefaultRubric_WeightsSumToOne(t *testing.T) {
	r := DefaultRubric
	sum := r.TechnicalWeight + r.SEOWeight + r.UXWeight + r.ConversionWeight
	if !almostEqual(sum, 1) {
		t.Errorf("weights sum to %v, want 1", sum)
	}
}

func TestRubric_Grade(t *testing.T) {
	tests := []struct {
		score float64
		want  Grade
	}{
		{100, GradeA},
		{90, GradeA},
		{89.999, GradeB},
		{80, GradeB},
		{79.9, GradeC},
		{70, GradeC},
		{69.5, GradeD},
		{60, GradeD},
		{59.99, GradeF},
		{0, GradeF},
	}
	for _, tt := range tests {
		if got := DefaultRubric.Grade(tt.score); got != tt.want {
			t.Errorf("Grade(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestRubric_GradeMonotonic(t *testing.T) {
	rank := map[Grade]int{GradeF: 0, GradeD: 1, GradeC: 2, GradeB: 3, GradeA: 4}
	prev := rank[DefaultRubric.Grade(0)]
	for s := 0.0; s <= 100; s += 0.25 {
		cur := rank[DefaultRubric.Grade(s)]
		if cur < prev {
			t.Fatalf("grade decreased at score %v", s)
		}
		prev = cur
	}
}

func TestRubric_FinalScore(t *testing.T) {
	p := FeatureProfile{
		Technical:  TechnicalMetrics{Score: 80},
		SEO:        SEOMetrics{Score: 60},
		UX:         UXMetrics{Score: 100},
		Conversion: ConversionMetrics{Score: 40},
	}
	// 28 + 15 + 25 + 6
	if got := DefaultRubric.FinalScore(p); !almostEqual(got, 74) {
		t.Errorf("FinalScore = %v, want 74", got)
	}
	if got := DefaultRubric.Grade(DefaultRubric.FinalScore(p)); got != GradeC {
		t.Errorf("Grade = %s, want C", got)
	}
}

func TestRubric_FinalScoreBounds(t *testing.T) {
	all := func(v float64) FeatureProfile {
		return FeatureProfile{
			Technical:  TechnicalMetrics{Score: v},
			SEO:        SEOMetrics{Score: v},
			UX:         UXMetrics{Score: v},
			Conversion: ConversionMetrics{Score: v},
		}
	}
	if got := DefaultRubric.FinalScore(all(100)); !almostEqual(got, 100) {
		t.Errorf("FinalScore(all 100) = %v, want 100", got)
	}
	if got := DefaultRubric.FinalScore(all(0)); got != 0 {
		t.Errorf("FinalScore(all 0) = %v, want 0", got)
	}
}

func TestRubric_Custom(t *testing.T) {
	r := Rubric{
		TechnicalWeight:  0.30,
		SEOWeight:        0.25,
		UXWeight:         0.25,
		ConversionWeight: 0.20,
		MinA:             85,
		MinB:             70,
		MinC:             55,
		MinD:             40,
	}
	if got := r.Grade(86); got != GradeA {
		t.Errorf("Grade(86) = %s, want A", got)
	}
	if got := r.Grade(45); got != GradeD {
		t.Errorf("Grade(45) = %s, want D", got)
	}
}
