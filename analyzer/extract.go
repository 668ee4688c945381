package analyzer

import (
	"math"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

const (
	viewportSelector  = `meta[name="viewport"]`
	metaDescSelector  = `meta[name="description"]`
	canonicalSelector = `link[rel="canonical"]`
)

var resourceSelectors = []string{"script", `link[rel="stylesheet"]`, "img"}

var ctaSelectors = []string{
	"button",
	`a[href*="signup"]`, `a[href*="register"]`, `a[href*="buy"]`,
	`a[href*="order"]`, `a[href*="purchase"]`, `a[href*="contact"]`,
	".cta", ".btn", ".button", `[class*="call-to-action"]`,
}

var formFieldSelectors = []string{
	`input[type="text"]`, `input[type="email"]`, `input[type="tel"]`,
	"textarea", "select",
}

var socialProofSelectors = []string{
	".testimonial", ".review", ".rating", ".customer-logo",
	`[class*="testimonial"]`, `[class*="review"]`, `[class*="rating"]`,
	`img[src*="logo"]`, `[class*="trust"]`, `[class*="badge"]`,
}

var trustSignalSelectors = []string{
	`[class*="secure"]`, `[class*="guarantee"]`, `[class*="warranty"]`,
	`img[src*="ssl"]`, `img[src*="secure"]`, `img[src*="trust"]`,
	`[class*="certified"]`, `[class*="verified"]`,
}

var contactLinkSelectors = []string{`a[href^="tel:"]`, `a[href^="mailto:"]`}

var prominentSelectors = []string{"h1", "h2", ".hero", `[class*="headline"]`}

// uspKeywords are value proposition words in Persian and English.
var uspKeywords = []string{
	"فقط", "منحصر", "بهترین", "رایگان", "سریع", "آسان", "تضمین",
	"exclusive", "best", "free", "fast", "easy", "guarantee",
}

var (
	phonePattern = regexp.MustCompile(`\+?\d{1,4}[-.\s]?\(?\d{1,4}\)?[-.\s]?\d{1,4}[-.\s]?\d{1,9}`)
	emailPattern = regexp.MustCompile(`[\w._%+-]+@[\w.-]+\.[A-Za-z]{2,}`)
)

// Extract builds an unscored feature profile from markup fetched for rawURL.
func Extract(doc Document, rawURL, markup string) FeatureProfile {
	brand := isBrandPage(rawURL, markup)
	coverage := imageAltCoverage(doc)
	viewport := doc.Count(viewportSelector) > 0

	title, hasTitle := doc.FirstText("title")
	metaDesc, _ := doc.Attr(metaDescSelector, "content")

	forms := make([]FormStats, 0)
	for _, n := range doc.CountWithin("form", formFieldSelectors...) {
		forms = append(forms, FormStats{FieldCount: n})
	}

	return FeatureProfile{
		Technical: TechnicalMetrics{
			HTTPS:             isSecureURL(rawURL),
			PageSize:          len(markup),
			Responsive:        viewport,
			IsLandin:          brand,
			ImageOptimization: coverage,
			PageSpeed:         estimatePageSpeed(doc.Count(resourceSelectors...), brand),
		},
		SEO: SEOMetrics{
			HasTitle:       hasTitle,
			TitleLength:    utf8.RuneCountInString(title),
			HasMetaDesc:    doc.Count(metaDescSelector) > 0,
			MetaDescLength: utf8.RuneCountInString(metaDesc),
			H1Count:        doc.Count("h1"),
			H2Count:        doc.Count("h2"),
			AltTagsScore:   altTagsBucket(coverage),
			URLScore:       scoreURLStructure(rawURL, doc.Count(canonicalSelector) > 0),
		},
		UX: UXMetrics{
			CTACount:        doc.Count(ctaSelectors...),
			ContrastScore:   estimateContrast(),
			WhitespaceScore: whitespaceBucket(textRatio(markup)),
			MobileFriendly:  viewport,
		},
		Conversion: ConversionMetrics{
			Forms:            forms,
			SocialProofCount: doc.Count(socialProofSelectors...),
			TrustSignalCount: doc.Count(trustSignalSelectors...),
			ContactInfo:      countContactInfo(doc, markup),
			USPScore:         scoreUSP(doc.Text(prominentSelectors...), brand),
		},
	}
}

func isSecureURL(rawURL string) bool {
	return strings.HasPrefix(strings.ToLower(rawURL), "https:")
}

// imageAltCoverage returns the percentage of images with a non-empty alt
// attribute, or 100 when the page has no images.
func imageAltCoverage(doc Document) float64 {
	alts := doc.AttrAll("img", "alt")
	if len(alts) == 0 {
		return 100
	}
	withAlt := 0
	for _, alt := range alts {
		if strings.TrimSpace(alt) != "" {
			withAlt++
		}
	}
	return float64(withAlt) / float64(len(alts)) * 100
}

func altTagsBucket(coverage float64) float64 {
	switch {
	case coverage >= 90:
		return 100
	case coverage >= 60:
		return 70
	default:
		return 30
	}
}

// estimatePageSpeed approximates load speed from the number of resource
// elements. Brand pages start from a higher baseline.
func estimatePageSpeed(resources int, brand bool) float64 {
	base := 85.0
	if brand {
		base = 90
	}
	penalty := math.Min(float64(resources)*1.5, 25)
	return math.Max(base-penalty, 60)
}

func scoreURLStructure(rawURL string, hasCanonical bool) float64 {
	score := 0.0
	if hasCanonical {
		score += 40
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return score
	}
	if len(u.RawQuery) < 50 {
		score += 30
	}
	if pathSegments(u.Path) <= 6 {
		score += 30
	}
	return score
}

func pathSegments(path string) int {
	n := 0
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			n++
		}
	}
	return n
}

// estimateContrast is a fixed estimate; computed styles are not available
// without rendering the page.
func estimateContrast() float64 {
	return 80
}

// textRatio is the length of the markup with all tags removed, relative to
// the full markup length. Both are counted in runes.
func textRatio(markup string) float64 {
	total := utf8.RuneCountInString(markup)
	if total == 0 {
		return 0
	}
	return float64(strippedTextLength(markup)) / float64(total)
}

func strippedTextLength(markup string) int {
	z := html.NewTokenizer(strings.NewReader(markup))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return utf8.RuneCountInString(strings.TrimSpace(b.String()))
		case html.TextToken:
			b.Write(z.Raw())
		}
	}
}

func whitespaceBucket(ratio float64) float64 {
	switch {
	case ratio < 0.3:
		return 100
	case ratio < 0.5:
		return 70
	default:
		return 40
	}
}

func countContactInfo(doc Document, markup string) int {
	text := doc.Text("body")
	if strings.TrimSpace(text) == "" {
		text = markup
	}
	phones := len(phonePattern.FindAllStringIndex(text, -1))
	emails := len(emailPattern.FindAllStringIndex(text, -1))
	return phones + emails + doc.Count(contactLinkSelectors...)
}

func scoreUSP(prominentText string, brand bool) float64 {
	lower := strings.ToLower(prominentText)
	for _, keyword := range uspKeywords {
		if strings.Contains(lower, keyword) {
			return 100
		}
	}
	if brand {
		return 80
	}
	return 60
}
