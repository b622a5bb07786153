// Package scan runs the analyzer over many files at once, fanning work
// out to a fixed pool of goroutines.
package scan

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/JuanJml01/Lector/internal/analyzer"
	"github.com/JuanJml01/Lector/internal/filestore"
	"github.com/JuanJml01/Lector/internal/source"
)

// FileResult is the outcome of analyzing a single file.
type FileResult struct {
	Path     string            `json:"path"`
	Language analyzer.Language `json:"language"`
	Result   *analyzer.Result  `json:"result,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// Summary aggregates totals over a scan run.
type Summary struct {
	Files     int `json:"files"`
	Functions int `json:"functions"`
	Classes   int `json:"classes"`
	Errored   int `json:"errored"`
	Skipped   int `json:"skipped"`
}

// Progress is called after each file completes. done counts completed
// files, total is the number queued.
type Progress func(done, total int, path string)

// Scanner analyzes batches of files through a registry.
type Scanner struct {
	registry *analyzer.Registry
	workers  int
}

// NewScanner creates a scanner with the given worker count. Counts below
// one are raised to one.
func NewScanner(registry *analyzer.Registry, workers int) *Scanner {
	if workers < 1 {
		workers = 1
	}
	return &Scanner{
		registry: registry,
		workers:  workers,
	}
}

// ScanFiles analyzes the given files, resolving each path against root.
// Per-file failures are recorded in the result list and never stop the
// run. Results come back in input order.
func (s *Scanner) ScanFiles(ctx context.Context, root string, files []string, progress Progress) ([]FileResult, *Summary) {
	runID := uuid.New().String()[:8]
	logger := log.With().Str("run_id", runID).Logger()

	logger.Info().
		Int("files", len(files)).
		Int("workers", s.workers).
		Msg("scan started")

	results := make([]FileResult, len(files))
	jobs := make(chan int)

	var done int
	var mu sync.Mutex

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = s.scanOne(root, files[idx])

				mu.Lock()
				done++
				d := done
				mu.Unlock()

				if progress != nil {
					progress(d, len(files), files[idx])
				}
			}
		}()
	}

enqueue:
	for i := range files {
		select {
		case <-ctx.Done():
			break enqueue
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	summary := summarize(results)

	logger.Info().
		Int("functions", summary.Functions).
		Int("classes", summary.Classes).
		Int("errored", summary.Errored).
		Msg("scan complete")

	return results, summary
}

func (s *Scanner) scanOne(root, path string) FileResult {
	lang := source.DetectLanguage(path)
	fr := FileResult{Path: path, Language: lang}

	abs := path
	if root != "" {
		abs = filepath.Join(root, path)
	}

	content, err := filestore.ReadRange(abs, 0, 0)
	if err != nil {
		fr.Error = err.Error()
		return fr
	}

	result, err := s.registry.Dispatch(string(lang), content)
	if err != nil {
		fr.Error = err.Error()
		return fr
	}

	fr.Result = result
	return fr
}

func summarize(results []FileResult) *Summary {
	s := &Summary{Files: len(results)}
	for _, fr := range results {
		if fr.Error != "" {
			s.Errored++
			continue
		}
		if fr.Result == nil {
			continue
		}
		if fr.Language == analyzer.LanguageUnknown {
			s.Skipped++
			continue
		}
		s.Functions += len(fr.Result.Functions)
		s.Classes += len(fr.Result.Classes)
		for _, c := range fr.Result.Classes {
			s.Functions += len(c.Methods)
		}
	}
	return s
}
