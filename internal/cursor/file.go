package cursor

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps cursor values in a JSON object on disk.
//
// Every Get and Set re-reads the file, so edits made while the process is
// stopped are picked up. Set writes the whole object to a temp file in the
// same directory, syncs it, then renames it over the target.
type FileStore struct {
	path     string
	defaults map[string]string
	mu       sync.Mutex
}

// NewFileStore opens the store at path, creating it with defaults if it does
// not exist yet. An existing file is left untouched.
func NewFileStore(path string, defaults map[string]string) (*FileStore, error) {
	s := &FileStore{
		path:     path,
		defaults: maps.Clone(defaults),
	}

	_, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		data := maps.Clone(defaults)
		if data == nil {
			data = map[string]string{}
		}
		if err := s.write(data); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, &PersistenceError{Op: "stat", Path: path, Err: err}
	}

	return s, nil
}

// Path returns the file the store writes to.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read()
	if err != nil {
		return "", err
	}
	if v, ok := data[key]; ok {
		return v, nil
	}
	return lookupDefault(s.defaults, key)
}

func (s *FileStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read()
	if err != nil {
		return err
	}
	data[key] = value
	return s.write(data)
}

func (s *FileStore) read() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &PersistenceError{Op: "read", Path: s.path, Err: err}
	}

	data := map[string]string{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, &PersistenceError{Op: "decode", Path: s.path, Err: err}
	}
	if data == nil {
		// The file held a JSON null.
		data = map[string]string{}
	}
	return data, nil
}

func (s *FileStore) write(data map[string]string) (err error) {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return &PersistenceError{Op: "encode", Path: s.path, Err: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return &PersistenceError{Op: "write", Path: s.path, Err: err}
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(raw); err != nil {
		return &PersistenceError{Op: "write", Path: s.path, Err: err}
	}
	if err = tmp.Sync(); err != nil {
		return &PersistenceError{Op: "sync", Path: s.path, Err: err}
	}
	if err = tmp.Close(); err != nil {
		return &PersistenceError{Op: "write", Path: s.path, Err: err}
	}
	if err = os.Rename(tmp.Name(), s.path); err != nil {
		return &PersistenceError{Op: "rename", Path: s.path, Err: err}
	}
	return nil
}
