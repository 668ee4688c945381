package stats

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func newTestStorage(t *testing.T, dir string) *Storage {
	t.Helper()
	storage, err := NewStorage(dir, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	t.Cleanup(func() { storage.Close() })
	return storage
}

func TestStorage(t *testing.T) {
	tempDir := t.TempDir()
	storage := newTestStorage(t, tempDir)

	t.Run("RecordAnalysis", func(t *testing.T) {
		storage.RecordAnalysis(Event{URL: "https://shop.example/offer?utm=x", Grade: "B", Score: 84, Duration: 120 * time.Millisecond})
		storage.RecordAnalysis(Event{URL: "https://shop.example/offer", Simulated: true, Grade: "D", Score: 62, Duration: 80 * time.Millisecond})
		storage.RecordError()

		stats := storage.GetCurrentStats()
		if stats.Analyses != 2 || stats.Live != 1 || stats.Simulated != 1 {
			t.Errorf("counts = %+v", stats)
		}
		if stats.Errors != 1 {
			t.Errorf("Expected 1 error, got %d", stats.Errors)
		}
		if stats.Grades["B"] != 1 || stats.Grades["D"] != 1 {
			t.Errorf("Grades = %v", stats.Grades)
		}
		if stats.PopularURLs["https://shop.example/offer"] != 2 {
			t.Errorf("PopularURLs = %v", stats.PopularURLs)
		}
		if stats.AverageScore() != 73 {
			t.Errorf("AverageScore = %v, want 73", stats.AverageScore())
		}
		if stats.AverageDurationMs() != 100 {
			t.Errorf("AverageDurationMs = %v, want 100", stats.AverageDurationMs())
		}
		if rate := stats.ErrorRate(); rate < 33.3 || rate > 33.4 {
			t.Errorf("ErrorRate = %v", rate)
		}
	})

	t.Run("ReturnedStatsAreCopies", func(t *testing.T) {
		stats := storage.GetCurrentStats()
		stats.Grades["A"] = 99
		if storage.GetCurrentStats().Grades["A"] != 0 {
			t.Error("mutating returned stats changed the storage")
		}
	})

	t.Run("Persistence", func(t *testing.T) {
		if err := storage.Flush(); err != nil {
			t.Fatalf("Flush: %v", err)
		}

		storage2 := newTestStorage(t, tempDir)
		stats := storage2.GetCurrentStats()
		if stats.Analyses != 2 {
			t.Errorf("Expected 2 analyses after reload, got %d", stats.Analyses)
		}
		if stats.Grades["B"] != 1 {
			t.Errorf("Grades after reload = %v", stats.Grades)
		}
	})

	t.Run("Cleanup", func(t *testing.T) {
		now := time.Now()
		old := now.AddDate(0, -3, 0).Format(monthLayout)
		recent := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0).Format(monthLayout)

		storage.mutex.Lock()
		storage.stats[old] = &MonthlyStats{Analyses: 100}
		storage.stats[recent] = &MonthlyStats{Analyses: 10}
		storage.mutex.Unlock()

		storage.Cleanup(2)

		if _, ok := storage.GetMonthlyStats(old); ok {
			t.Error("Old stats should have been cleaned up")
		}
		if _, ok := storage.GetMonthlyStats(recent); !ok {
			t.Error("Previous month should be retained")
		}
		months := storage.GetAllMonths()
		if len(months) != 2 || months[0] != now.Format(monthLayout) {
			t.Errorf("GetAllMonths = %v", months)
		}
	})

	t.Run("FileSize", func(t *testing.T) {
		if err := storage.Flush(); err != nil {
			t.Fatalf("Flush: %v", err)
		}

		info, err := os.Stat(filepath.Join(tempDir, "stats.json"))
		if err != nil {
			t.Fatalf("Failed to stat file: %v", err)
		}
		if info.Size() > 2048 {
			t.Errorf("File size too large: %d bytes", info.Size())
		}
	})

	t.Run("ConcurrentAccess", func(t *testing.T) {
		before := storage.GetCurrentStats().Analyses

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					storage.RecordAnalysis(Event{URL: "https://a.example", Grade: "C", Score: 70})
					storage.GetCurrentStats()
				}
			}()
		}
		wg.Wait()

		if got := storage.GetCurrentStats().Analyses - before; got != 1000 {
			t.Errorf("Expected 1000 new analyses, got %d", got)
		}
	})
}

func TestStorage_Summary(t *testing.T) {
	storage := newTestStorage(t, t.TempDir())
	for i := 0; i < 3; i++ {
		storage.RecordAnalysis(Event{URL: "https://b.example", Grade: "A", Score: 95})
	}
	storage.RecordAnalysis(Event{URL: "https://a.example", Simulated: true, Grade: "F", Score: 35})

	prod := storage.Summary(false)
	if prod.TotalAnalyses != 4 || prod.SimulatedAnalyses != 1 {
		t.Errorf("Summary = %+v", prod)
	}
	if prod.SimulatedRate != 25 {
		t.Errorf("SimulatedRate = %v, want 25", prod.SimulatedRate)
	}
	if prod.PopularURLs != nil || prod.Months != nil {
		t.Error("development details must not be exposed outside development mode")
	}

	dev := storage.Summary(true)
	if len(dev.PopularURLs) != 2 || dev.PopularURLs[0].URL != "https://b.example" || dev.PopularURLs[0].Count != 3 {
		t.Errorf("PopularURLs = %+v", dev.PopularURLs)
	}
	if len(dev.Months) != 1 || dev.Months[0] != dev.Month {
		t.Errorf("Months = %v, want [%s]", dev.Months, dev.Month)
	}
}

func TestStorage_EmptySummary(t *testing.T) {
	sum := newTestStorage(t, t.TempDir()).Summary(true)
	if sum.TotalAnalyses != 0 || sum.AverageScore != 0 || sum.ErrorRate != 0 {
		t.Errorf("empty Summary = %+v", sum)
	}
	if sum.Grades == nil {
		t.Error("Grades should be an empty map")
	}
}

func TestCleanURL(t *testing.T) {
	tests := map[string]string{
		"https://Shop.Example/offer/?a=1": "https://shop.example/offer",
		"https://shop.example/":           "https://shop.example",
		"http://localhost:8082/api/x":     "",
		"http://127.0.0.1/page":           "",
		"not a url":                       "",
	}
	for in, want := range tests {
		if got := cleanURL(in); got != want {
			t.Errorf("cleanURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTopURLs(t *testing.T) {
	counts := map[string]int{"c": 1, "a": 5, "b": 5, "d": 2, "e": 1, "f": 1}
	got := topURLs(counts, 3)
	want := []string{"a", "b", "d"}
	if len(got) != len(want) {
		t.Fatalf("topURLs = %+v", got)
	}
	for i, w := range want {
		if got[i].URL != w {
			t.Errorf("rank %d = %q, want %q", i, got[i].URL, w)
		}
	}
}
