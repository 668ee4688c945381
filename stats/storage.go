package stats

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"
)

const monthLayout = "2006-01"

// MonthlyStats holds the usage counters for one month. Results themselves
// are never stored.
type MonthlyStats struct {
	Analyses        int            `json:"analyses"`
	Live            int            `json:"live"`
	Simulated       int            `json:"simulated"`
	Errors          int            `json:"errors"`
	Grades          map[string]int `json:"grades"`
	ScoreTotal      float64        `json:"score_total"`
	DurationTotalMs float64        `json:"duration_total_ms"`
	PopularURLs     map[string]int `json:"popular_urls"`
	LastUpdated     time.Time      `json:"last_updated"`
}

// AverageScore returns the mean final score, or 0 with no analyses.
func (m MonthlyStats) AverageScore() float64 {
	if m.Analyses == 0 {
		return 0
	}
	return m.ScoreTotal / float64(m.Analyses)
}

// AverageDurationMs returns the mean analysis time in milliseconds.
func (m MonthlyStats) AverageDurationMs() float64 {
	if m.Analyses == 0 {
		return 0
	}
	return m.DurationTotalMs / float64(m.Analyses)
}

// ErrorRate returns failed requests as a percentage of all requests.
func (m MonthlyStats) ErrorRate() float64 {
	total := m.Analyses + m.Errors
	if total == 0 {
		return 0
	}
	return float64(m.Errors) / float64(total) * 100
}

// SimulatedRate returns the percentage of analyses that fell back to a
// simulated profile.
func (m MonthlyStats) SimulatedRate() float64 {
	if m.Analyses == 0 {
		return 0
	}
	return float64(m.Simulated) / float64(m.Analyses) * 100
}

func (m MonthlyStats) clone() MonthlyStats {
	m.Grades = maps.Clone(m.Grades)
	m.PopularURLs = maps.Clone(m.PopularURLs)
	return m
}

// Event describes one completed analysis.
type Event struct {
	URL       string
	Simulated bool
	Grade     string
	Score     float64
	Duration  time.Duration
}

// Storage handles persistent storage of statistics
type Storage struct {
	mutex       sync.RWMutex
	stats       map[string]*MonthlyStats // key: "YYYY-MM"
	filePath    string
	lastWrite   time.Time
	writeBuffer chan struct{}
	done        chan struct{}
	stopped     chan struct{}
	closeOnce   sync.Once
	logger      *slog.Logger
	now         func() time.Time
}

// NewStorage creates a new statistics storage instance
func NewStorage(dataDir string, logger *slog.Logger) (*Storage, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &Storage{
		stats:       make(map[string]*MonthlyStats),
		filePath:    filepath.Join(dataDir, "stats.json"),
		writeBuffer: make(chan struct{}, 1),
		done:        make(chan struct{}),
		stopped:     make(chan struct{}),
		logger:      logger,
		now:         time.Now,
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}

	go s.backgroundWriter(5 * time.Minute)

	return s, nil
}

func (s *Storage) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	return json.Unmarshal(data, &s.stats)
}

// save writes statistics to a temporary file and renames it into place.
func (s *Storage) save() error {
	s.mutex.RLock()
	data, err := json.Marshal(s.stats)
	s.mutex.RUnlock()

	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	tempFile := s.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := os.Rename(tempFile, s.filePath); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}
	return nil
}

func (s *Storage) backgroundWriter(interval time.Duration) {
	defer close(s.stopped)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.writeBuffer:
		case <-ticker.C:
		case <-s.done:
			return
		}
		if err := s.save(); err != nil {
			s.logger.Error("failed to persist statistics", "error", err)
		}
	}
}

// requestWrite signals that a write to disk is needed
func (s *Storage) requestWrite() {
	select {
	case s.writeBuffer <- struct{}{}:
	default:
		// write already pending
	}
}

func (s *Storage) currentMonth() string {
	return s.now().Format(monthLayout)
}

// month returns the counters for key, creating them. Callers hold the lock.
func (s *Storage) month(key string) *MonthlyStats {
	m, ok := s.stats[key]
	if !ok {
		m = &MonthlyStats{}
		s.stats[key] = m
	}
	if m.Grades == nil {
		m.Grades = make(map[string]int)
	}
	if m.PopularURLs == nil {
		m.PopularURLs = make(map[string]int)
	}
	return m
}

// RecordAnalysis adds a completed analysis to the current month.
func (s *Storage) RecordAnalysis(e Event) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	m := s.month(s.currentMonth())
	m.Analyses++
	if e.Simulated {
		m.Simulated++
	} else {
		m.Live++
	}
	if e.Grade != "" {
		m.Grades[e.Grade]++
	}
	if cleaned := cleanURL(e.URL); cleaned != "" {
		m.PopularURLs[cleaned]++
	}
	m.ScoreTotal += e.Score
	m.DurationTotalMs += float64(e.Duration) / float64(time.Millisecond)
	m.LastUpdated = s.now()

	s.maybeRequestWrite()
}

// RecordError counts a request that produced no result.
func (s *Storage) RecordError() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	m := s.month(s.currentMonth())
	m.Errors++
	m.LastUpdated = s.now()

	s.maybeRequestWrite()
}

// maybeRequestWrite asks for a write at most once a minute. Callers hold
// the lock.
func (s *Storage) maybeRequestWrite() {
	if s.now().Sub(s.lastWrite) > time.Minute {
		s.requestWrite()
		s.lastWrite = s.now()
	}
}

// GetCurrentStats returns statistics for the current month
func (s *Storage) GetCurrentStats() MonthlyStats {
	stats, _ := s.GetMonthlyStats(s.currentMonth())
	return stats
}

// GetMonthlyStats returns statistics for a specific month
func (s *Storage) GetMonthlyStats(yearMonth string) (MonthlyStats, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if stats, exists := s.stats[yearMonth]; exists {
		return stats.clone(), true
	}
	return MonthlyStats{}, false
}

// GetAllMonths returns all months that have statistics, newest first.
func (s *Storage) GetAllMonths() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	months := slices.Collect(maps.Keys(s.stats))
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months
}

// Cleanup removes statistics older than the given number of months,
// counting the current month.
func (s *Storage) Cleanup(retainMonths int) {
	if retainMonths < 1 {
		retainMonths = 1
	}
	now := s.now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	oldest := first.AddDate(0, -(retainMonths - 1), 0).Format(monthLayout)

	s.mutex.Lock()
	removed := 0
	for key := range s.stats {
		if key < oldest {
			delete(s.stats, key)
			removed++
		}
	}
	s.mutex.Unlock()

	s.requestWrite()
	s.logger.Info("statistics cleanup", "oldestRetained", oldest, "removed", removed)
}

// Flush writes the statistics to disk immediately.
func (s *Storage) Flush() error {
	return s.save()
}

// Close stops the background writer and performs a final save.
func (s *Storage) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		<-s.stopped
	})
	return s.save()
}

// cleanURL reduces a URL to scheme, host and path. Local addresses are not
// tracked.
func cleanURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}

	host := strings.ToLower(u.Hostname())
	if host == "localhost" || host == "127.0.0.1" || host == "::1" {
		return ""
	}

	cleaned := u.Scheme + "://" + strings.ToLower(u.Host)
	if u.Path != "" && u.Path != "/" {
		cleaned += u.Path
	}
	return strings.TrimSuffix(cleaned, "/")
}
