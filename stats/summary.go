package stats

import (
	"cmp"
	"slices"
)

// URLCount is one entry of the popular URL ranking.
type URLCount struct {
	URL   string `json:"url"`
	Count int    `json:"count"`
}

// Summary is the public view of the current month's counters.
type Summary struct {
	Month             string         `json:"month"`
	TotalAnalyses     int            `json:"totalAnalyses"`
	LiveAnalyses      int            `json:"liveAnalyses"`
	SimulatedAnalyses int            `json:"simulatedAnalyses"`
	SimulatedRate     float64        `json:"simulatedRate"`
	ErrorRate         float64        `json:"errorRate"`
	AverageScore      float64        `json:"averageScore"`
	AverageLoadTime   float64        `json:"averageLoadTime"`
	Grades            map[string]int `json:"grades"`
	PopularURLs       []URLCount     `json:"popularUrls,omitempty"`
	// Months lists every month with stored statistics, newest first.
	Months []string `json:"months,omitempty"`
}

// Summary returns the current month's counters. Popular URLs and the list of
// stored months are only included in development mode.
func (s *Storage) Summary(devMode bool) Summary {
	month := s.currentMonth()
	m, _ := s.GetMonthlyStats(month)

	grades := m.Grades
	if grades == nil {
		grades = map[string]int{}
	}

	sum := Summary{
		Month:             month,
		TotalAnalyses:     m.Analyses,
		LiveAnalyses:      m.Live,
		SimulatedAnalyses: m.Simulated,
		SimulatedRate:     m.SimulatedRate(),
		ErrorRate:         m.ErrorRate(),
		AverageScore:      m.AverageScore(),
		AverageLoadTime:   m.AverageDurationMs(),
		Grades:            grades,
	}
	if devMode {
		sum.PopularURLs = topURLs(m.PopularURLs, 5)
		sum.Months = s.GetAllMonths()
	}
	return sum
}

// topURLs returns the n most frequent URLs, ties broken alphabetically.
func topURLs(counts map[string]int, n int) []URLCount {
	ranked := make([]URLCount, 0, len(counts))
	for u, c := range counts {
		ranked = append(ranked, URLCount{URL: u, Count: c})
	}
	slices.SortFunc(ranked, func(a, b URLCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.URL, b.URL)
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
