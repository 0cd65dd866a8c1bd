// Package targets reads and edits the line-delimited target list.
package targets

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNotFound is returned by Remove when the URL is not in the list
var ErrNotFound = errors.New("target not found")

// File is a target source backed by a text file with one URL per line
type File struct {
	Path string
}

// NewFile creates a target source for path
func NewFile(path string) *File {
	return &File{Path: path}
}

// Load reads the file from disk. Every line is a target, empty ones included.
func (f *File) Load() ([]string, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open target list: %w", err)
	}
	defer file.Close()

	// Lines have no length limit
	var urls []string
	reader := bufio.NewReader(file)
	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read target list: %w", err)
		}

		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			urls = append(urls, strings.TrimSuffix(line, "\r"))
		}
		if err != nil {
			return urls, nil
		}
	}
}

// Add appends url to the list, creating the file when needed
func (f *File) Add(url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return errors.New("target URL is required")
	}

	existing, err := f.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	for _, u := range existing {
		if u == url {
			return fmt.Errorf("target '%s' already exists", url)
		}
	}

	existing = append(existing, url)
	return f.save(existing)
}

// Remove deletes every line equal to url
func (f *File) Remove(url string) error {
	existing, err := f.Load()
	if err != nil {
		return err
	}

	kept := existing[:0]
	removed := false
	for _, u := range existing {
		if u == url {
			removed = true
			continue
		}
		kept = append(kept, u)
	}

	if !removed {
		return fmt.Errorf("%w: %s", ErrNotFound, url)
	}
	return f.save(kept)
}

func (f *File) save(urls []string) error {
	var b strings.Builder
	for _, u := range urls {
		b.WriteString(u)
		b.WriteByte('\n')
	}

	if err := os.WriteFile(f.Path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write target list: %w", err)
	}
	return nil
}
