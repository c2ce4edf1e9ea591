package kv

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// fileData is the on-disk representation of the file store.
type fileData struct {
	Version string                     `json:"version"`
	Entries map[string]json.RawMessage `json:"entries"`
}

// File keeps every key in a single JSON document on disk. The document is
// read once on first access and rewritten in full on every Set.
type File struct {
	mu       sync.Mutex
	filePath string
	entries  map[string]json.RawMessage
	loaded   bool
}

// NewFile creates a file store backed by path. The file is created on the
// first Set.
func NewFile(path string) *File {
	return &File{filePath: path}
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.filePath
}

// load reads the store file. A missing file starts empty; so does a file that
// is not valid JSON, which is replaced on the next Set.
func (f *File) load() error {
	if f.loaded {
		return nil
	}
	f.entries = make(map[string]json.RawMessage)

	raw, err := os.ReadFile(f.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			f.loaded = true
			return nil
		}
		return err
	}

	var data fileData
	if err := json.Unmarshal(raw, &data); err != nil {
		// Invalid JSON - start fresh
		f.loaded = true
		return nil
	}
	// Entries are re-indented on save; keep them compact in memory.
	for key, v := range data.Entries {
		var buf bytes.Buffer
		if err := json.Compact(&buf, v); err != nil {
			continue
		}
		f.entries[key] = buf.Bytes()
	}
	f.loaded = true
	return nil
}

// Get implements Store.
func (f *File) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.load(); err != nil {
		return nil, err
	}
	v, ok := f.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set implements Store. value must be a JSON document.
func (f *File) Set(_ context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !json.Valid(value) {
		return fmt.Errorf("value for %s is not valid JSON", key)
	}
	if err := f.load(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, value); err != nil {
		return err
	}

	prev, had := f.entries[key]
	f.entries[key] = buf.Bytes()
	if err := f.save(); err != nil {
		if had {
			f.entries[key] = prev
		} else {
			delete(f.entries, key)
		}
		return err
	}
	return nil
}

// save writes the document to a temp file and renames it into place so a
// failed write never leaves a truncated store behind.
func (f *File) save() error {
	dir := filepath.Dir(f.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(fileData{Version: "1", Entries: f.entries}, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.filePath)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, f.filePath)
}

// Close implements Store.
func (f *File) Close() error {
	return nil
}
