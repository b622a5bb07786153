package scan

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JuanJml01/Lector/internal/analyzer"
	"github.com/JuanJml01/Lector/internal/testutil"
)

func TestScanner_ScanFiles(t *testing.T) {
	root := testutil.WriteSourceTree(t, map[string]string{
		"ok.py":     "def add(a, b):\n    return a + b\n",
		"broken.py": "def f(:\n",
		"app.js":    "class Cart {\n  add(item) {}\n}\n",
		"notes.txt": "plain text\n",
	})

	s := NewScanner(analyzer.NewRegistry(), 2)
	files := []string{"ok.py", "broken.py", "app.js", "notes.txt"}
	results, summary := s.ScanFiles(context.Background(), root, files, nil)

	require.Len(t, results, 4)

	// Results keep input order regardless of which worker ran them.
	assert.Equal(t, "ok.py", results[0].Path)
	assert.Equal(t, analyzer.LanguagePython, results[0].Language)
	require.NotNil(t, results[0].Result)
	require.Len(t, results[0].Result.Functions, 1)
	assert.Equal(t, "add", results[0].Result.Functions[0].Name)

	assert.Equal(t, "broken.py", results[1].Path)
	assert.Nil(t, results[1].Result)
	assert.NotEmpty(t, results[1].Error)

	require.NotNil(t, results[2].Result)
	require.Len(t, results[2].Result.Classes, 1)

	// Unknown extension dispatches to an empty result, not an error.
	assert.Equal(t, analyzer.LanguageUnknown, results[3].Language)
	assert.Empty(t, results[3].Error)
	require.NotNil(t, results[3].Result)
	assert.Empty(t, results[3].Result.Functions)

	assert.Equal(t, 4, summary.Files)
	assert.Equal(t, 2, summary.Functions) // add + Cart.add
	assert.Equal(t, 1, summary.Classes)
	assert.Equal(t, 1, summary.Errored)
	assert.Equal(t, 1, summary.Skipped)
}

func TestScanner_ScanFiles_MissingFile(t *testing.T) {
	s := NewScanner(analyzer.NewRegistry(), 1)
	results, summary := s.ScanFiles(context.Background(), t.TempDir(), []string{"gone.py"}, nil)

	require.Len(t, results, 1)
	assert.NotEmpty(t, results[0].Error)
	assert.Equal(t, 1, summary.Errored)
}

func TestScanner_ScanFiles_Progress(t *testing.T) {
	root := testutil.WriteSourceTree(t, map[string]string{
		"a.py": "x = 1\n",
		"b.py": "y = 2\n",
		"c.py": "z = 3\n",
	})

	var mu sync.Mutex
	var calls int
	var lastDone int
	progress := func(done, total int, path string) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if done > lastDone {
			lastDone = done
		}
		assert.Equal(t, 3, total)
	}

	s := NewScanner(analyzer.NewRegistry(), 2)
	s.ScanFiles(context.Background(), root, []string{"a.py", "b.py", "c.py"}, progress)

	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, lastDone)
}

func TestScanner_WorkerFloor(t *testing.T) {
	s := NewScanner(analyzer.NewRegistry(), 0)
	assert.Equal(t, 1, s.workers)
}
