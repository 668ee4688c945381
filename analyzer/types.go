package analyzer

// Source records where the feature profile of a result came from.
type Source string

const (
	// SourceLive means the profile was extracted from fetched markup.
	SourceLive Source = "live"
	// SourceSimulated means the fetch failed and the profile was generated.
	SourceSimulated Source = "simulated"
)

// Grade is the letter classification of a final score.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// Result represents the complete analysis of a landing page.
// It is built once per analysis and never modified after it is returned.
type Result struct {
	URL            string         `json:"url" yaml:"url"`
	Source         Source         `json:"source" yaml:"source"`
	FallbackReason string         `json:"fallbackReason,omitempty" yaml:"fallbackReason,omitempty"`
	Metrics        FeatureProfile `json:"metrics" yaml:"metrics"`
	FinalScore     float64        `json:"finalScore" yaml:"finalScore"`
	Grade          Grade          `json:"grade" yaml:"grade"`
	Feedback       Feedback       `json:"feedback" yaml:"feedback"`
	ChartData      ChartData      `json:"chartData" yaml:"chartData"`
	Page           *PageInfo      `json:"page,omitempty" yaml:"page,omitempty"`
}

// FeatureProfile holds the raw signals of a page grouped by category.
// The Score fields are zero until the profile has been passed through Score.
type FeatureProfile struct {
	Technical  TechnicalMetrics  `json:"technical" yaml:"technical"`
	SEO        SEOMetrics        `json:"seo" yaml:"seo"`
	UX         UXMetrics         `json:"ux" yaml:"ux"`
	Conversion ConversionMetrics `json:"conversion" yaml:"conversion"`
}

type TechnicalMetrics struct {
	HTTPS             bool    `json:"https" yaml:"https"`
	PageSize          int     `json:"pageSize" yaml:"pageSize"`
	Responsive        bool    `json:"responsive" yaml:"responsive"`
	IsLandin          bool    `json:"isLandin" yaml:"isLandin"`
	ImageOptimization float64 `json:"imageOptimization" yaml:"imageOptimization"`
	PageSpeed         float64 `json:"pageSpeed" yaml:"pageSpeed"`
	Score             float64 `json:"score" yaml:"score"`
}

type SEOMetrics struct {
	HasTitle       bool    `json:"hasTitle" yaml:"hasTitle"`
	TitleLength    int     `json:"titleLength" yaml:"titleLength"`
	TitleScore     float64 `json:"titleScore" yaml:"titleScore"`
	HasMetaDesc    bool    `json:"hasMetaDesc" yaml:"hasMetaDesc"`
	MetaDescLength int     `json:"metaDescLength" yaml:"metaDescLength"`
	MetaDescScore  float64 `json:"metaDescScore" yaml:"metaDescScore"`
	H1Count        int     `json:"h1Count" yaml:"h1Count"`
	H2Count        int     `json:"h2Count" yaml:"h2Count"`
	HeadingScore   float64 `json:"headingStructureScore" yaml:"headingStructureScore"`
	AltTagsScore   float64 `json:"altTagsScore" yaml:"altTagsScore"`
	URLScore       float64 `json:"urlScore" yaml:"urlScore"`
	Score          float64 `json:"score" yaml:"score"`
}

type UXMetrics struct {
	CTACount        int     `json:"ctaCount" yaml:"ctaCount"`
	CTAScore        float64 `json:"ctaScore" yaml:"ctaScore"`
	ContrastScore   float64 `json:"contrastScore" yaml:"contrastScore"`
	WhitespaceScore float64 `json:"whitespaceScore" yaml:"whitespaceScore"`
	MobileFriendly  bool    `json:"mobileFriendly" yaml:"mobileFriendly"`
	Score           float64 `json:"score" yaml:"score"`
}

type ConversionMetrics struct {
	Forms            []FormStats `json:"forms" yaml:"forms"`
	FormScore        float64     `json:"formScore" yaml:"formScore"`
	SocialProofCount int         `json:"socialProofCount" yaml:"socialProofCount"`
	SocialProofScore float64     `json:"socialProof" yaml:"socialProof"`
	TrustSignalCount int         `json:"trustSignalCount" yaml:"trustSignalCount"`
	TrustScore       float64     `json:"trustScore" yaml:"trustScore"`
	ContactInfo      int         `json:"contactInfo" yaml:"contactInfo"`
	ContactScore     float64     `json:"contactScore" yaml:"contactScore"`
	USPScore         float64     `json:"uspScore" yaml:"uspScore"`
	Score            float64     `json:"score" yaml:"score"`
}

// FormStats describes a single form on the page.
type FormStats struct {
	FieldCount int `json:"fieldCount" yaml:"fieldCount"`
}

// Feedback groups human readable findings. Order follows rule evaluation order.
type Feedback struct {
	Positive []string `json:"positive" yaml:"positive"`
	Warning  []string `json:"warning" yaml:"warning"`
	Negative []string `json:"negative" yaml:"negative"`
}

// ChartData is the per-category series rendered by clients.
type ChartData struct {
	Labels []string  `json:"labels" yaml:"labels"`
	Values []float64 `json:"values" yaml:"values"`
}

// PageInfo is descriptive metadata about fetched content. It does not
// influence scoring and is absent on simulated results.
type PageInfo struct {
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
	SiteName string `json:"siteName,omitempty" yaml:"siteName,omitempty"`
	Byline   string `json:"byline,omitempty" yaml:"byline,omitempty"`
	Excerpt  string `json:"excerpt,omitempty" yaml:"excerpt,omitempty"`
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
}
