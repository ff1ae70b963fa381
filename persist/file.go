package persist

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// File is a YAML document of integers on disk. Reads are served from memory;
// every write rewrites the whole file.
type File struct {
	path string
	mem  *Memory
	mu   sync.Mutex
}

// OpenFile loads path. A missing file is an empty store.
func OpenFile(path string) (*File, error) {
	f := &File{path: path, mem: NewMemory()}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("persist: read %s: %w", path, err)
	}

	var values map[string]int
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("persist: parse %s: %w", path, err)
	}
	for k, v := range values {
		f.mem.SetInt(k, v)
	}
	return f, nil
}

func (f *File) GetInt(key string, def int) int {
	return f.mem.GetInt(key, def)
}

func (f *File) Lookup(key string) (int, bool) {
	return f.mem.Lookup(key)
}

// SetInt stores value and writes the file. A failed write is logged; the value
// stays readable for the rest of the process.
func (f *File) SetInt(key string, value int) {
	f.mem.SetInt(key, value)
	if err := f.flush(); err != nil {
		log.Printf("persist: %v", err)
	}
}

func (f *File) flush() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := yaml.Marshal(f.mem.Snapshot())
	if err != nil {
		return fmt.Errorf("encode %s: %w", f.path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*")
	if err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	return nil
}
