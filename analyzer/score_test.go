package analyzer

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScore_Technical(t *testing.T) {
	p := FeatureProfile{Technical: TechnicalMetrics{
		HTTPS:             true,
		PageSize:          500_000,
		Responsive:        true,
		IsLandin:          true,
		ImageOptimization: 100,
		PageSpeed:         90,
	}}
	got := Score(p).Technical.Score
	// 20 + 18 + 15 + 20 + 15 + 10
	if !almostEqual(got, 98) {
		t.Errorf("Technical.Score = %v, want 98", got)
	}
}

func TestScore_DoesNotModifyInput(t *testing.T) {
	p := FeatureProfile{
		SEO:        SEOMetrics{TitleLength: 55},
		Conversion: ConversionMetrics{Forms: []FormStats{{FieldCount: 2}}},
	}
	scored := Score(p)
	if p.SEO.TitleScore != 0 || p.SEO.Score != 0 {
		t.Error("Score modified its argument")
	}
	if scored.SEO.TitleScore != 100 {
		t.Errorf("TitleScore = %v, want 100", scored.SEO.TitleScore)
	}
}

func TestScorePageSize(t *testing.T) {
	tests := []struct {
		size int
		want float64
	}{
		{0, 100},
		{bytesPerMB - 1, 100},
		{bytesPerMB, 80},
		{3*bytesPerMB - 1, 80},
		{3 * bytesPerMB, 50},
		{5 * bytesPerMB, 20},
	}
	for _, tt := range tests {
		if got := scorePageSize(tt.size); got != tt.want {
			t.Errorf("scorePageSize(%d) = %v, want %v", tt.size, got, tt.want)
		}
	}
}

func TestScoreTitleLength(t *testing.T) {
	tests := []struct {
		length int
		want   float64
	}{
		{55, 100},
		{50, 100},
		{60, 100},
		{65, 70},
		{70, 70},
		{30, 70},
		{29, 30},
		{71, 30},
		{10, 30},
		{0, 30},
	}
	for _, tt := range tests {
		if got := scoreTitleLength(tt.length); got != tt.want {
			t.Errorf("scoreTitleLength(%d) = %v, want %v", tt.length, got, tt.want)
		}
	}
}

func TestScoreMetaDescLength(t *testing.T) {
	tests := []struct {
		length int
		want   float64
	}{
		{140, 100},
		{120, 100},
		{160, 100},
		{80, 70},
		{161, 70},
		{200, 70},
		{79, 30},
		{201, 30},
		{0, 30},
	}
	for _, tt := range tests {
		if got := scoreMetaDescLength(tt.length); got != tt.want {
			t.Errorf("scoreMetaDescLength(%d) = %v, want %v", tt.length, got, tt.want)
		}
	}
}

func TestScoreHeadingStructure(t *testing.T) {
	tests := []struct {
		h1, h2 int
		want   float64
	}{
		{1, 3, 100},
		{1, 0, 80},
		{2, 4, 50},
		{0, 5, 0},
	}
	for _, tt := range tests {
		if got := scoreHeadingStructure(tt.h1, tt.h2); got != tt.want {
			t.Errorf("scoreHeadingStructure(%d, %d) = %v, want %v", tt.h1, tt.h2, got, tt.want)
		}
	}
}

func TestScoreCTAs(t *testing.T) {
	tests := []struct {
		count int
		want  float64
	}{
		{0, 40},
		{1, 100},
		{3, 100},
		{4, 70},
		{5, 70},
		{6, 40},
	}
	for _, tt := range tests {
		if got := scoreCTAs(tt.count); got != tt.want {
			t.Errorf("scoreCTAs(%d) = %v, want %v", tt.count, got, tt.want)
		}
	}
}

func TestScoreForms(t *testing.T) {
	tests := []struct {
		name  string
		forms []FormStats
		want  float64
	}{
		{"no forms", nil, 50},
		{"short form", []FormStats{{FieldCount: 3}}, 100},
		{"average of two", []FormStats{{FieldCount: 2}, {FieldCount: 6}}, 70},
		{"long form", []FormStats{{FieldCount: 9}}, 40},
		{"empty form", []FormStats{{FieldCount: 0}}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoreForms(tt.forms); got != tt.want {
				t.Errorf("scoreForms = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreTrustSignals(t *testing.T) {
	for count, want := range map[int]float64{0: 0, 1: 50, 2: 50, 3: 100, 10: 100} {
		if got := scoreTrustSignals(count); got != want {
			t.Errorf("scoreTrustSignals(%d) = %v, want %v", count, got, want)
		}
	}
}

func TestScore_CategoryComposition(t *testing.T) {
	p := FeatureProfile{
		SEO: SEOMetrics{
			HasTitle:       true,
			TitleLength:    55,
			HasMetaDesc:    true,
			MetaDescLength: 90,
			H1Count:        1,
			H2Count:        0,
			AltTagsScore:   30,
		},
		UX: UXMetrics{
			CTACount:        4,
			ContrastScore:   80,
			WhitespaceScore: 100,
			MobileFriendly:  false,
		},
		Conversion: ConversionMetrics{
			Forms:            []FormStats{{FieldCount: 2}},
			SocialProofCount: 0,
			TrustSignalCount: 1,
			ContactInfo:      2,
			USPScore:         60,
		},
	}
	s := Score(p)

	// 30 + 17.5 + 20 + 6
	if !almostEqual(s.SEO.Score, 73.5) {
		t.Errorf("SEO.Score = %v, want 73.5", s.SEO.Score)
	}
	// 28 + 16 + 20 + 0
	if !almostEqual(s.UX.Score, 64) {
		t.Errorf("UX.Score = %v, want 64", s.UX.Score)
	}
	// 25 + 0 + 12.5 + 12.5 + 7.5
	if !almostEqual(s.Conversion.Score, 57.5) {
		t.Errorf("Conversion.Score = %v, want 57.5", s.Conversion.Score)
	}
}

func TestScore_ClampedToRange(t *testing.T) {
	p := FeatureProfile{
		Technical: TechnicalMetrics{
			HTTPS:             true,
			Responsive:        true,
			IsLandin:          true,
			PageSpeed:         400,
			ImageOptimization: 400,
		},
		SEO:        SEOMetrics{AltTagsScore: -500},
		UX:         UXMetrics{ContrastScore: 1000, WhitespaceScore: 1000, CTACount: 2, MobileFriendly: true},
		Conversion: ConversionMetrics{USPScore: -1000},
	}
	s := Score(p)
	for name, v := range map[string]float64{
		"technical":  s.Technical.Score,
		"seo":        s.SEO.Score,
		"ux":         s.UX.Score,
		"conversion": s.Conversion.Score,
	} {
		if v < 0 || v > 100 {
			t.Errorf("%s score %v outside [0, 100]", name, v)
		}
	}
	if s.Technical.Score != 100 {
		t.Errorf("Technical.Score = %v, want 100", s.Technical.Score)
	}
	if s.SEO.Score != 0 {
		t.Errorf("SEO.Score = %v, want 0", s.SEO.Score)
	}
}
