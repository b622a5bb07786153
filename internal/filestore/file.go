package filestore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File is a handle to a file whose content is loaded into memory at open
// and kept synchronized with disk by every mutating method.
type File struct {
	path    string
	name    string
	ext     string
	hidden  bool
	content string
}

// Open loads the file at path into memory. The file must exist.
func Open(path string) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	name := filepath.Base(abs)
	return &File{
		path:    abs,
		name:    name,
		ext:     filepath.Ext(name),
		hidden:  strings.HasPrefix(name, "."),
		content: string(data),
	}, nil
}

// Content returns the in-memory content.
func (f *File) Content() string { return f.content }

// Name returns the base name of the file.
func (f *File) Name() string { return f.name }

// Path returns the absolute path.
func (f *File) Path() string { return f.path }

// Ext returns the file extension, dot included.
func (f *File) Ext() string { return f.ext }

// Hidden reports whether the file name starts with a dot.
func (f *File) Hidden() bool { return f.hidden }

// Rewrite replaces the whole content on disk and in memory.
func (f *File) Rewrite(content string) error {
	if err := os.WriteFile(f.path, []byte(content), 0644); err != nil {
		return fmt.Errorf("rewrite %s: %w", f.path, err)
	}
	f.content = content
	return nil
}

// Clear truncates the file on disk and in memory.
func (f *File) Clear() error {
	return f.Rewrite("")
}

// ReplaceLines replaces the lines [start, end] with the lines of content.
// start of 0 or less defaults to the first line; a start beyond the last
// line clamps to it and forces end to the end of file; end of 0 or beyond
// the last line clamps to the end of file; end before start is an error.
func (f *File) ReplaceLines(content string, start, end int) error {
	lines := splitLines(f.content)
	total := len(lines)

	if start <= 0 {
		start = 1
	} else if start > total {
		start = total
		if start == 0 {
			start = 1
		}
		end = 0
	}
	if end == 0 || end > total {
		end = total
	} else if end < start {
		return fmt.Errorf("%w: end %d before start %d", ErrInvalidRange, end, start)
	}

	updated := spliceLines(f.content, content, start, end)
	if err := os.WriteFile(f.path, []byte(updated), 0644); err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	f.content = updated
	return nil
}
