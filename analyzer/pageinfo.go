package analyzer

import (
	"log/slog"
	nurl "net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
	"github.com/pemistahl/lingua-go"
)

// detectedLanguages are the languages the page language detector chooses from.
var detectedLanguages = []lingua.Language{
	lingua.English,
	lingua.Persian,
	lingua.Arabic,
	lingua.Turkish,
	lingua.French,
	lingua.German,
	lingua.Spanish,
}

// NewLanguageDetector builds the detector used for PageInfo.Language.
func NewLanguageDetector() lingua.LanguageDetector {
	return lingua.NewLanguageDetectorBuilder().
		FromLanguages(detectedLanguages...).
		Build()
}

// describePage runs readability over fetched markup to collect descriptive
// metadata. Failures leave the corresponding fields empty.
func describePage(logger *slog.Logger, detector lingua.LanguageDetector, rawURL, markup string) *PageInfo {
	info := &PageInfo{}

	parsedURL, err := nurl.Parse(rawURL)
	if err != nil {
		logger.Warn("page info: invalid url", "url", rawURL, "error", err)
		return info
	}

	article, err := readability.FromReader(strings.NewReader(markup), parsedURL)
	if err != nil {
		logger.Debug("page info: readability failed", "url", rawURL, "error", err)
		return info
	}

	info.Title = strings.TrimSpace(article.Title)
	info.SiteName = article.SiteName
	info.Byline = article.Byline
	info.Excerpt = article.Excerpt
	info.Language = normalizeLanguage(article.Language)

	if info.Language == "" && detector != nil {
		if lang, ok := detector.DetectLanguageOf(article.TextContent); ok {
			info.Language = strings.ToLower(lang.IsoCode639_1().String())
		}
	}
	return info
}

// normalizeLanguage reduces a declared language such as "en-US" to "en".
func normalizeLanguage(declared string) string {
	declared = strings.TrimSpace(strings.ToLower(declared))
	if i := strings.IndexAny(declared, "-_"); i > 0 {
		declared = declared[:i]
	}
	return declared
}
