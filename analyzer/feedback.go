package analyzer

type verdict int

const (
	verdictNone verdict = iota
	verdictPositive
	verdictWarning
	verdictNegative
)

// feedbackRule turns one signal of a scored profile into at most one message.
// An empty message silences its band.
type feedbackRule struct {
	signal   string
	judge    func(p *FeatureProfile) verdict
	positive string
	warning  string
	negative string
}

// atLeast grades a higher-is-better value: >= high is positive, >= mid is a
// warning, anything else negative.
func atLeast(value func(p *FeatureProfile) float64, high, mid float64) func(p *FeatureProfile) verdict {
	return func(p *FeatureProfile) verdict {
		v := value(p)
		switch {
		case v >= high:
			return verdictPositive
		case v >= mid:
			return verdictWarning
		default:
			return verdictNegative
		}
	}
}

// below grades a lower-is-better value: < good is positive, < fair is a
// warning, anything else negative.
func below(value func(p *FeatureProfile) float64, good, fair float64) func(p *FeatureProfile) verdict {
	return func(p *FeatureProfile) verdict {
		v := value(p)
		switch {
		case v < good:
			return verdictPositive
		case v < fair:
			return verdictWarning
		default:
			return verdictNegative
		}
	}
}

func flag(value func(p *FeatureProfile) bool) func(p *FeatureProfile) verdict {
	return func(p *FeatureProfile) verdict {
		if value(p) {
			return verdictPositive
		}
		return verdictNegative
	}
}

// feedbackRules is evaluated in order: technical, seo, ux, conversion.
var feedbackRules = []feedbackRule{
	// Technical
	{
		signal:   "brand",
		judge:    flag(func(p *FeatureProfile) bool { return p.Technical.IsLandin }),
		positive: "Page is built with a professional landing page builder",
	},
	{
		signal:   "pageSpeed",
		judge:    atLeast(func(p *FeatureProfile) float64 { return p.Technical.PageSpeed }, 80, 60),
		positive: "Page loads quickly",
		warning:  "Page load speed could be improved",
		negative: "Page loads slowly; visitors may leave before it renders",
	},
	{
		signal:   "https",
		judge:    flag(func(p *FeatureProfile) bool { return p.Technical.HTTPS }),
		positive: "Served over a secure HTTPS connection",
		negative: "Not served over HTTPS; browsers will flag it as insecure",
	},
	{
		signal:   "responsive",
		judge:    flag(func(p *FeatureProfile) bool { return p.Technical.Responsive }),
		positive: "Layout adapts to mobile screens",
		negative: "No viewport meta tag; the layout will not adapt to mobile screens",
	},
	{
		signal:   "pageSize",
		judge:    below(func(p *FeatureProfile) float64 { return float64(p.Technical.PageSize) / bytesPerMB }, 1, 3),
		positive: "Page weight is reasonable",
		warning:  "Page is somewhat heavy",
		negative: "Page is very heavy and will load slowly on weak connections",
	},

	// SEO
	{
		signal:   "title",
		judge:    atLeast(func(p *FeatureProfile) float64 { return p.SEO.TitleScore }, 80, 60),
		positive: "Title tag length is well tuned",
		warning:  "Title tag could be improved (aim for 50-60 characters)",
		negative: "Title tag is missing or poorly sized",
	},
	{
		signal:   "metaDescription",
		judge:    atLeast(func(p *FeatureProfile) float64 { return p.SEO.MetaDescScore }, 80, 60),
		positive: "Meta description is well written",
		warning:  "Meta description could be improved (aim for 120-160 characters)",
		negative: "Meta description is missing or badly sized",
	},
	{
		signal:   "headings",
		judge:    atLeast(func(p *FeatureProfile) float64 { return p.SEO.HeadingScore }, 80, 60),
		positive: "Heading structure is well organized",
		negative: "Heading structure is disorganized; use one H1 followed by H2 sections",
	},
	{
		signal:   "altText",
		judge:    atLeast(func(p *FeatureProfile) float64 { return p.SEO.AltTagsScore }, 80, 60),
		positive: "Images have descriptive alt text",
		negative: "Many images are missing alt text",
	},
	{
		signal:   "urlStructure",
		judge:    atLeast(func(p *FeatureProfile) float64 { return p.SEO.URLScore }, 70, 40),
		positive: "URL structure is clean and canonical",
		warning:  "URL structure could be cleaner",
		negative: "URL is long or lacks a canonical link",
	},

	// UX
	{
		signal:   "cta",
		judge:    atLeast(func(p *FeatureProfile) float64 { return p.UX.CTAScore }, 80, 60),
		positive: "Calls to action are clear and focused",
		warning:  "Consider reducing the number of calls to action",
		negative: "Calls to action are missing or too numerous",
	},
	{
		signal:   "contrast",
		judge:    atLeast(func(p *FeatureProfile) float64 { return p.UX.ContrastScore }, 80, 60),
		positive: "Text contrast looks good",
		negative: "Text contrast is poor",
	},
	{
		signal:   "whitespace",
		judge:    atLeast(func(p *FeatureProfile) float64 { return p.UX.WhitespaceScore }, 80, 60),
		positive: "Layout has comfortable whitespace",
		warning:  "Layout is slightly dense",
		negative: "Layout is too dense; add whitespace around content",
	},
	{
		signal:   "mobile",
		judge:    flag(func(p *FeatureProfile) bool { return p.UX.MobileFriendly }),
		positive: "Comfortable to use on mobile devices",
		negative: "Hard to use on mobile devices",
	},

	// Conversion
	{
		signal:   "forms",
		judge:    atLeast(func(p *FeatureProfile) float64 { return p.Conversion.FormScore }, 80, 60),
		positive: "Forms are short and easy to complete",
		negative: "No short lead form; forms are missing or too long",
	},
	{
		signal:   "socialProof",
		judge:    atLeast(func(p *FeatureProfile) float64 { return p.Conversion.SocialProofScore }, 80, 60),
		positive: "Shows testimonials, reviews or customer logos",
		negative: "No testimonials, reviews or ratings",
	},
	{
		signal:   "trust",
		judge:    atLeast(func(p *FeatureProfile) float64 { return p.Conversion.TrustScore }, 80, 60),
		positive: "Displays trust signals",
		negative: "Few or no trust signals such as security badges or guarantees",
	},
	{
		signal:   "contact",
		judge:    atLeast(func(p *FeatureProfile) float64 { return p.Conversion.ContactScore }, 80, 60),
		positive: "Contact options are easy to find",
		negative: "No visible contact information",
	},
	{
		signal:   "valueProposition",
		judge:    atLeast(func(p *FeatureProfile) float64 { return p.Conversion.USPScore }, 90, 70),
		positive: "Headlines state a clear value proposition",
		warning:  "Value proposition could be stated more clearly in the headlines",
		negative: "Headlines do not communicate a value proposition",
	},
}

// GenerateFeedback evaluates the rule table against a scored profile.
func GenerateFeedback(p FeatureProfile) Feedback {
	fb := Feedback{
		Positive: []string{},
		Warning:  []string{},
		Negative: []string{},
	}
	for _, rule := range feedbackRules {
		switch rule.judge(&p) {
		case verdictPositive:
			fb.Positive = appendMessage(fb.Positive, rule.positive)
		case verdictWarning:
			fb.Warning = appendMessage(fb.Warning, rule.warning)
		case verdictNegative:
			fb.Negative = appendMessage(fb.Negative, rule.negative)
		}
	}
	return fb
}

func appendMessage(list []string, msg string) []string {
	if msg == "" {
		return list
	}
	return append(list, msg)
}
