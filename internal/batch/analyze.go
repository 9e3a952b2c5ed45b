package batch

import (
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pranshuparmar/procargs/pkg/model"
)

// ExtractAsync reads the command lines of pids concurrently.
// Results stream to the returned channel as they complete.
func ExtractAsync(src Source, pids []int, concurrency int) <-chan model.Result {
	if concurrency < 1 {
		concurrency = 1
	}
	results := make(chan model.Result)
	semaphore := make(chan struct{}, concurrency) // Limit concurrent workers
	var wg sync.WaitGroup

	for _, pid := range pids {
		wg.Add(1)
		go func(pid int) {
			defer wg.Done()
			semaphore <- struct{}{}        // Acquire
			defer func() { <-semaphore }() // Release

			results <- src.Result(pid)
		}(pid)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// Collect runs ExtractAsync and gathers the results in the order the PIDs
// were given.
func Collect(src Source, pids []int, concurrency int) Summary {
	start := time.Now()
	log := logrus.WithField("component", "batch")

	order := make(map[int]int, len(pids))
	for i, pid := range pids {
		if _, ok := order[pid]; !ok {
			order[pid] = i
		}
	}

	summary := Summary{Results: make([]model.Result, 0, len(pids))}
	for r := range ExtractAsync(src, pids, concurrency) {
		if !r.Known() {
			summary.Unknown++
			log.WithField("pid", r.PID).Debug("command line unknown")
		}
		summary.Results = append(summary.Results, r)
	}
	sort.SliceStable(summary.Results, func(i, j int) bool {
		return order[summary.Results[i].PID] < order[summary.Results[j].PID]
	})

	summary.Total = len(summary.Results)
	summary.Elapsed = time.Since(start)
	return summary
}

// ShortenPath replaces home directory with ~ for display
func ShortenPath(path string) string {
	if path == "" {
		return "-"
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}

// Truncate shortens a string to maxLen runes
func Truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
