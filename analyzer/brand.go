package analyzer

import "strings"

// brandMarkers identify pages built with the Landin page builder. They are
// matched case-insensitively against the URL.
var brandMarkers = []string{
	"landin.ir",
	"templates.landin",
	"landin",
}

// brandNativeToken is the brand name in Persian script.
const brandNativeToken = "لندین"

// markupBrandMarker is looked for in fetched markup, along with
// brandNativeToken.
const markupBrandMarker = "landin"

// IsBrandURL reports whether the URL alone identifies a brand page.
func IsBrandURL(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, marker := range brandMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return strings.Contains(rawURL, brandNativeToken)
}

// isBrandPage reports whether the URL or the markup identifies a brand page.
func isBrandPage(rawURL, markup string) bool {
	if IsBrandURL(rawURL) {
		return true
	}
	return strings.Contains(strings.ToLower(markup), markupBrandMarker) ||
		strings.Contains(markup, brandNativeToken)
}
