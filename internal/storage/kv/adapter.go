// Package kv implements the Provider contract on top of a flat key-value
// adapter, mirroring a browser-local store: one habit at a time, records
// held under a single key. The adapter surface is get/set/remove/clear
// with last-write-wins per key and a distinguishable quota failure.
package kv

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/keiki-saito/habit100-app/internal/storage"
)

// Adapter is an abstract key-value store. Values are opaque JSON blobs.
type Adapter interface {
	// Get returns the value for key and whether it was present.
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Remove(key string) error
	Clear() error
}

// FileAdapter persists all keys in a single JSON document on disk,
// rewritten on every Set. Writes that fail for lack of disk space map to
// storage.ErrQuotaExceeded.
type FileAdapter struct {
	path string
}

func NewFileAdapter(path string) *FileAdapter {
	return &FileAdapter{path: path}
}

func (a *FileAdapter) Get(key string) ([]byte, bool, error) {
	doc, err := a.read()
	if err != nil {
		return nil, false, err
	}
	v, ok := doc[key]
	return v, ok, nil
}

func (a *FileAdapter) Set(key string, value []byte) error {
	doc, err := a.read()
	if err != nil {
		return err
	}
	doc[key] = value
	return a.write(doc)
}

func (a *FileAdapter) Remove(key string) error {
	doc, err := a.read()
	if err != nil {
		return err
	}
	if _, ok := doc[key]; !ok {
		return nil
	}
	delete(doc, key)
	return a.write(doc)
}

func (a *FileAdapter) Clear() error {
	err := os.Remove(a.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (a *FileAdapter) read() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(a.path)
	if os.IsNotExist(err) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, err
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("corrupt store file %s: %w", a.path, err)
	}
	if doc == nil {
		doc = map[string]json.RawMessage{}
	}
	return doc, nil
}

func (a *FileAdapter) write(doc map[string]json.RawMessage) error {
	dir := filepath.Dir(a.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	// Write to a temp file and rename so a failed write never clobbers
	// the previous state.
	tmp := a.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		os.Remove(tmp)
		if errors.Is(err, syscall.ENOSPC) {
			return storage.ErrQuotaExceeded
		}
		return err
	}
	return os.Rename(tmp, a.path)
}

// MemoryAdapter is an in-memory Adapter for tests. A nonzero MaxBytes
// caps the total stored size, after which Set fails with
// storage.ErrQuotaExceeded.
type MemoryAdapter struct {
	MaxBytes int
	data     map[string][]byte
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{data: map[string][]byte{}}
}

func (a *MemoryAdapter) Get(key string) ([]byte, bool, error) {
	v, ok := a.data[key]
	return v, ok, nil
}

func (a *MemoryAdapter) Set(key string, value []byte) error {
	if a.MaxBytes > 0 {
		total := len(value)
		for k, v := range a.data {
			if k != key {
				total += len(v)
			}
		}
		if total > a.MaxBytes {
			return storage.ErrQuotaExceeded
		}
	}
	a.data[key] = value
	return nil
}

func (a *MemoryAdapter) Remove(key string) error {
	delete(a.data, key)
	return nil
}

func (a *MemoryAdapter) Clear() error {
	a.data = map[string][]byte{}
	return nil
}
