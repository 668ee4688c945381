package analyzer

// Rubric holds the category weights and the grade bands used to turn a
// scored profile into a final score and a letter.
type Rubric struct {
	TechnicalWeight  float64
	SEOWeight        float64
	UXWeight         float64
	ConversionWeight float64

	// Minimum final score for each grade. Anything below D is an F.
	MinA, MinB, MinC, MinD float64
}

// DefaultRubric is the content-aware rubric. Weights sum to 1.0.
var DefaultRubric = Rubric{
	TechnicalWeight:  0.35,
	SEOWeight:        0.25,
	UXWeight:         0.25,
	ConversionWeight: 0.15,
	MinA:             90,
	MinB:             80,
	MinC:             70,
	MinD:             60,
}

// FinalScore returns the weighted sum of the category scores of p, in [0, 100].
func (r Rubric) FinalScore(p FeatureProfile) float64 {
	return clampScore(p.Technical.Score*r.TechnicalWeight +
		p.SEO.Score*r.SEOWeight +
		p.UX.Score*r.UXWeight +
		p.Conversion.Score*r.ConversionWeight)
}

// Grade maps a final score to its letter.
func (r Rubric) Grade(score float64) Grade {
	switch {
	case score >= r.MinA:
		return GradeA
	case score >= r.MinB:
		return GradeB
	case score >= r.MinC:
		return GradeC
	case score >= r.MinD:
		return GradeD
	default:
		return GradeF
	}
}
