package kv

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const maxRotatingBackups = 10

// File keeps every key in one JSON object on disk. Each Set rewrites the
// whole document through a temporary file and an atomic rename, after
// copying the previous document to .bak and a rotating timestamped backup.
type File struct {
	path  string
	items map[string]string
}

// OpenFile loads the document at path. A missing file starts empty. A corrupt
// file is moved aside and replaced by the newest valid backup, or by an empty
// document when no backup can be read. A document that cannot be read at all
// also starts empty; later writes to it fail and are reported by Set.
func OpenFile(path string, logger *log.Logger) (*File, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	items, status, err := loadWithRecovery(path)
	if err != nil {
		logger.Error("unreadable storage; starting empty", "path", path, "err", err)
		return &File{path: path, items: map[string]string{}}, nil
	}
	if status != "" {
		logger.Warn(status, "path", path)
	}
	return &File{path: path, items: items}, nil
}

// Path returns the location of the document.
func (f *File) Path() string {
	return f.path
}

func (f *File) Get(key string) (string, error) {
	v, ok := f.items[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set writes the document with key updated. On failure the in-memory view is
// left as it was before the call.
func (f *File) Set(key, value string) error {
	next := maps.Clone(f.items)
	next[key] = value
	if err := save(f.path, next); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	f.items = next
	return nil
}

func (f *File) Delete(key string) error {
	if _, ok := f.items[key]; !ok {
		return nil
	}
	next := maps.Clone(f.items)
	delete(next, key)
	if err := save(f.path, next); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	f.items = next
	return nil
}

func (f *File) Close() error {
	return nil
}

func load(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeDocument(data)
}

func decodeDocument(data []byte) (map[string]string, error) {
	var items map[string]string
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = map[string]string{}
	}
	return items, nil
}

// loadWithRecovery loads path, repairing a corrupt document. The returned
// status is non-empty when a repair happened and describes it.
func loadWithRecovery(path string) (map[string]string, string, error) {
	items, err := load(path)
	if err == nil || !isCorrupt(err) {
		return items, "", err
	}

	moved, err := quarantine(path)
	if err != nil {
		return nil, "", fmt.Errorf("move corrupt storage file: %w", err)
	}

	status := "corrupt storage without valid backup; started empty"
	items, from := newestValidBackup(path)
	if from != "" {
		status = fmt.Sprintf("corrupt storage recovered from %s", filepath.Base(from))
	} else {
		items = map[string]string{}
	}
	if moved != "" {
		status += fmt.Sprintf(" (bad file moved to %s)", filepath.Base(moved))
	}

	if err := save(path, items); err != nil {
		return nil, "", fmt.Errorf("restore storage: %w", err)
	}
	return items, status, nil
}

// save replaces the document at path through a temporary file and a rename.
// The document being replaced is kept as path.bak and as a rotating copy.
func save(path string, items map[string]string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := keepPrevious(path); err != nil {
		return fmt.Errorf("backup: %w", err)
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// keepPrevious copies the current document to path.bak and to a timestamped
// path.bak.<ts>, keeping at most maxRotatingBackups of the latter.
func keepPrevious(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(path+".bak", data, 0o644); err != nil {
		return err
	}
	stamp := time.Now().UTC().Format("20060102-150405.000000000")
	if err := os.WriteFile(path+".bak."+stamp, data, 0o644); err != nil {
		return err
	}

	rotating, _ := filepath.Glob(path + ".bak.*")
	if len(rotating) <= maxRotatingBackups {
		return nil
	}
	sort.Strings(rotating)
	for _, old := range rotating[:len(rotating)-maxRotatingBackups] {
		if err := os.Remove(old); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

// newestValidBackup returns the contents of the most recently written backup
// that still decodes, and its path. The path is empty when there is none.
func newestValidBackup(path string) (map[string]string, string) {
	type backupFile struct {
		path    string
		modTime time.Time
	}

	names, _ := filepath.Glob(path + ".bak.*")
	names = append(names, path+".bak")

	backups := make([]backupFile, 0, len(names))
	for _, name := range names {
		info, err := os.Stat(name)
		if err != nil {
			continue
		}
		backups = append(backups, backupFile{path: name, modTime: info.ModTime()})
	}
	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].modTime.Equal(backups[j].modTime) {
			return backups[i].path > backups[j].path
		}
		return backups[i].modTime.After(backups[j].modTime)
	})

	for _, b := range backups {
		data, err := os.ReadFile(b.path)
		if err != nil {
			continue
		}
		if items, err := decodeDocument(data); err == nil {
			return items, b.path
		}
	}
	return nil, ""
}

// quarantine renames a corrupt document to name.corrupt-<ts>.ext next to it.
func quarantine(path string) (string, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	ext := filepath.Ext(path)
	stamp := time.Now().UTC().Format("20060102-150405")
	moved := fmt.Sprintf("%s.corrupt-%s%s", strings.TrimSuffix(path, ext), stamp, ext)
	if err := os.Rename(path, moved); err != nil {
		return "", err
	}
	return moved, nil
}

func isCorrupt(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF)
}
