package analyzer

const bytesPerMB = 1024 * 1024

// Score returns a copy of p with every sub-score and category score filled in.
// It is deterministic and does not modify p.
func Score(p FeatureProfile) FeatureProfile {
	p.Technical.Score = scoreTechnical(p.Technical)

	p.SEO.TitleScore = scoreTitleLength(p.SEO.TitleLength)
	p.SEO.MetaDescScore = scoreMetaDescLength(p.SEO.MetaDescLength)
	p.SEO.HeadingScore = scoreHeadingStructure(p.SEO.H1Count, p.SEO.H2Count)
	p.SEO.Score = clampScore(p.SEO.TitleScore/100*30 +
		p.SEO.MetaDescScore/100*25 +
		p.SEO.HeadingScore/100*25 +
		p.SEO.AltTagsScore/100*20)

	p.UX.CTAScore = scoreCTAs(p.UX.CTACount)
	p.UX.Score = clampScore(p.UX.CTAScore/100*40 +
		p.UX.ContrastScore/100*20 +
		p.UX.WhitespaceScore/100*20 +
		boolPoints(p.UX.MobileFriendly, 20))

	c := &p.Conversion
	c.FormScore = scoreForms(c.Forms)
	c.SocialProofScore = presenceScore(c.SocialProofCount)
	c.TrustScore = scoreTrustSignals(c.TrustSignalCount)
	c.ContactScore = presenceScore(c.ContactInfo)
	c.Score = clampScore(c.FormScore/100*25 +
		c.SocialProofScore/100*25 +
		c.TrustScore/100*25 +
		c.ContactScore/100*12.5 +
		c.USPScore/100*12.5)

	return p
}

func scoreTechnical(t TechnicalMetrics) float64 {
	score := boolPoints(t.IsLandin, 20)
	score += t.PageSpeed / 100 * 20
	score += scorePageSize(t.PageSize) / 100 * 15
	score += boolPoints(t.HTTPS, 20)
	score += boolPoints(t.Responsive, 15)
	score += t.ImageOptimization / 100 * 10
	return clampScore(score)
}

func scorePageSize(size int) float64 {
	mb := float64(size) / bytesPerMB
	switch {
	case mb < 1:
		return 100
	case mb < 3:
		return 80
	case mb < 5:
		return 50
	default:
		return 20
	}
}

func scoreTitleLength(length int) float64 {
	switch {
	case length >= 50 && length <= 60:
		return 100
	case (length >= 30 && length < 50) || (length > 60 && length <= 70):
		return 70
	default:
		return 30
	}
}

func scoreMetaDescLength(length int) float64 {
	switch {
	case length >= 120 && length <= 160:
		return 100
	case (length >= 80 && length < 120) || (length > 160 && length <= 200):
		return 70
	default:
		return 30
	}
}

func scoreHeadingStructure(h1, h2 int) float64 {
	switch {
	case h1 == 1 && h2 >= 1:
		return 100
	case h1 == 1:
		return 80
	case h1 > 1:
		return 50
	default:
		return 0
	}
}

func scoreCTAs(count int) float64 {
	switch {
	case count >= 1 && count <= 3:
		return 100
	case count >= 4 && count <= 5:
		return 70
	default:
		return 40
	}
}

// scoreForms rates forms by their mean field count. A page without forms
// gets a neutral 50.
func scoreForms(forms []FormStats) float64 {
	if len(forms) == 0 {
		return 50
	}
	total := 0
	for _, f := range forms {
		total += f.FieldCount
	}
	avg := float64(total) / float64(len(forms))
	switch {
	case avg <= 3:
		return 100
	case avg <= 6:
		return 70
	default:
		return 40
	}
}

func scoreTrustSignals(count int) float64 {
	switch {
	case count >= 3:
		return 100
	case count >= 1:
		return 50
	default:
		return 0
	}
}

func presenceScore(count int) float64 {
	if count > 0 {
		return 100
	}
	return 0
}

func boolPoints(ok bool, points float64) float64 {
	if ok {
		return points
	}
	return 0
}

// clampScore restricts v to the range [0, 100].
func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
