package analyzer

import "math/rand/v2"

// SourceFactory returns a fresh random source for a single simulated
// analysis. Sources are never shared between analyses.
type SourceFactory func() rand.Source

// RandomSources seeds every source from the runtime's global generator.
func RandomSources() SourceFactory {
	return func() rand.Source {
		return rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
}

// SeededSources returns the same sequence for every analysis, which makes
// simulated results reproducible.
func SeededSources(seed uint64) SourceFactory {
	return func() rand.Source {
		return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	}
}

// SimulateProfile generates a plausible unscored profile for rawURL when its content
// could not be retrieved. Every field is an independent uniform draw; pages
// recognised as brand pages by URL draw from narrower, higher ranges.
func SimulateProfile(rawURL string, r *rand.Rand) FeatureProfile {
	brand := IsBrandURL(rawURL)

	p := FeatureProfile{}

	p.Technical = TechnicalMetrics{
		HTTPS:    isSecureURL(rawURL),
		IsLandin: brand,
	}
	if brand {
		p.Technical.PageSize = int(uniform(r, 800_000, 2_000_000))
		p.Technical.Responsive = true
		p.Technical.ImageOptimization = uniform(r, 80, 20)
		p.Technical.PageSpeed = uniform(r, 80, 15)
	} else {
		p.Technical.PageSize = int(uniform(r, 500_000, 3_000_000))
		p.Technical.Responsive = r.Float64() > 0.2
		p.Technical.ImageOptimization = uniform(r, 60, 40)
		p.Technical.PageSpeed = uniform(r, 60, 30)
	}

	p.SEO = SEOMetrics{
		HasTitle: true,
		H1Count:  1,
	}
	if brand {
		p.SEO.TitleLength = 50 + r.IntN(20)
		p.SEO.HasMetaDesc = true
		p.SEO.MetaDescLength = 120 + r.IntN(40)
		p.SEO.H2Count = 3 + r.IntN(3)
		p.SEO.AltTagsScore = uniform(r, 75, 20)
		p.SEO.URLScore = uniform(r, 70, 20)
	} else {
		p.SEO.TitleLength = 30 + r.IntN(40)
		p.SEO.HasMetaDesc = r.Float64() > 0.3
		p.SEO.MetaDescLength = 100 + r.IntN(80)
		p.SEO.H2Count = 2 + r.IntN(4)
		p.SEO.AltTagsScore = uniform(r, 50, 40)
		p.SEO.URLScore = uniform(r, 40, 50)
	}

	// Contrast and whitespace cannot be estimated without content.
	p.UX = UXMetrics{
		ContrastScore:   80,
		WhitespaceScore: 70,
	}
	if brand {
		p.UX.CTACount = 2 + r.IntN(2)
		p.UX.MobileFriendly = true
	} else {
		p.UX.CTACount = 1 + r.IntN(4)
		p.UX.MobileFriendly = r.Float64() > 0.3
	}

	var formCount, fieldCount int
	c := &p.Conversion
	if brand {
		formCount = 1
		fieldCount = 2 + r.IntN(3)
		c.SocialProofCount = 2 + r.IntN(2)
		c.TrustSignalCount = 1 + r.IntN(2)
		c.ContactInfo = 2 + r.IntN(2)
		c.USPScore = uniform(r, 75, 20)
	} else {
		formCount = r.IntN(2)
		fieldCount = 2 + r.IntN(6)
		c.SocialProofCount = r.IntN(4)
		c.TrustSignalCount = r.IntN(3)
		c.ContactInfo = 1 + r.IntN(2)
		c.USPScore = uniform(r, 40, 50)
	}
	c.Forms = make([]FormStats, formCount)
	for i := range c.Forms {
		c.Forms[i] = FormStats{FieldCount: fieldCount}
	}

	return p
}

// uniform draws from [lo, lo+span).
func uniform(r *rand.Rand, lo, span float64) float64 {
	return lo + r.Float64()*span
}
