package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileStore is a [Store] backed by a plain directory tree:
//
//	<root>/<namespace>/<id>.json
//
// Each record is one JSON file. Writes go to a temporary sibling file which
// is then renamed onto the final path, so a concurrent reader observes
// either the old record or the new one, never a partial write. There is no
// locking: concurrent writes to the same key race and the last rename wins,
// which is the intended last-write-wins contract.
//
// For backwards compatibility with older writers, ReadAll also accepts flat
// records directly under the root (<root>/<id>.json) carrying their
// namespace inside the payload.
type FileStore struct {
	root string
}

// NewFileStore creates a [FileStore] rooted at dir.
//
// The directory is not created until the first write; a missing root is a
// valid, empty store on the read side.
func NewFileStore(dir string) *FileStore {
	return &FileStore{root: dir}
}

// Root returns the store's root directory.
func (s *FileStore) Root() string {
	return s.root
}

// validateKey rejects key components that would escape the store root or
// collide with the temp-file naming scheme.
func validateKey(kind, v string) error {
	if v == "" {
		return fmt.Errorf("%s must not be empty", kind)
	}
	if strings.ContainsAny(v, `/\`) || v == "." || v == ".." {
		return fmt.Errorf("%s %q must not contain path separators", kind, v)
	}
	return nil
}

// recordPath returns the final on-disk path for a key.
func (s *FileStore) recordPath(namespace, id string) string {
	return filepath.Join(s.root, namespace, id+".json")
}

// Write persists rec under (namespace, id), replacing any previous record.
//
// The namespace directory is created on demand. The record's Namespace and
// ID fields are overwritten from the key so the payload can never disagree
// with its location; a zero UpdatedAt is stamped with the current UTC time.
func (s *FileStore) Write(namespace, id string, rec Record) error {
	if err := validateKey("namespace", namespace); err != nil {
		return err
	}
	if err := validateKey("id", id); err != nil {
		return err
	}

	rec.Namespace = namespace
	rec.ID = id
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now().UTC()
	} else {
		rec.UpdatedAt = rec.UpdatedAt.UTC()
	}

	dir := filepath.Join(s.root, namespace)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create namespace dir: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	// Write to a temp sibling, then atomically rename onto the final path.
	tmp, err := os.CreateTemp(dir, id+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.recordPath(namespace, id)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace record: %w", err)
	}
	return nil
}

// ReadAll scans the store and returns every readable record grouped by
// namespace, in directory order.
//
// Entries that fail to parse are skipped: a file read mid-write by another
// process, or hand-edited into invalid JSON, silently vanishes from the
// result until rewritten. Both the nested layout and the legacy flat layout
// are merged into one logical view. A record with a zero UpdatedAt is
// backfilled from the file's modification time; a record with an empty ID
// is backfilled from the file name.
func (s *FileStore) ReadAll() (map[string][]Record, error) {
	out := make(map[string][]Record)

	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return nil, fmt.Errorf("scan store root: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			s.readNamespaceDir(entry.Name(), out)
			continue
		}
		// Flat layout: the namespace lives in the payload.
		if !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(s.root, entry.Name())
		rec, ok := readRecordFile(path)
		if !ok {
			continue
		}
		if rec.ID == "" {
			rec.ID = strings.TrimSuffix(entry.Name(), ".json")
		}
		if rec.Namespace == "" {
			rec.Namespace = DefaultNamespace
		}
		out[rec.Namespace] = append(out[rec.Namespace], rec)
	}
	return out, nil
}

// readNamespaceDir collects the records of one namespace directory into out.
func (s *FileStore) readNamespaceDir(namespace string, out map[string][]Record) {
	dir := filepath.Join(s.root, namespace)
	entries, err := os.ReadDir(dir)
	if err != nil {
		// Directory vanished between listing and reading: a normal race
		// with a concurrent clear, not an error.
		return
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		rec, ok := readRecordFile(filepath.Join(dir, entry.Name()))
		if !ok {
			continue
		}
		// The directory is authoritative for the namespace.
		rec.Namespace = namespace
		if rec.ID == "" {
			rec.ID = strings.TrimSuffix(entry.Name(), ".json")
		}
		out[namespace] = append(out[namespace], rec)
	}
}

// readRecordFile reads and decodes a single record file. The second return
// value is false for any unreadable or unparseable entry.
func readRecordFile(path string) (Record, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, false
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, false
	}
	if rec.UpdatedAt.IsZero() {
		if fi, err := os.Stat(path); err == nil {
			rec.UpdatedAt = fi.ModTime().UTC()
		}
	}
	return rec, true
}

// Clear removes the record for (namespace, id) and reports whether a record
// was removed. An emptied namespace directory is garbage-collected.
func (s *FileStore) Clear(namespace, id string) (bool, error) {
	if err := validateKey("namespace", namespace); err != nil {
		return false, err
	}
	if err := validateKey("id", id); err != nil {
		return false, err
	}

	path := s.recordPath(namespace, id)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("remove record: %w", err)
	}

	// Remove the namespace dir if this was its last record. os.Remove
	// refuses to delete a non-empty directory, which is exactly the check
	// we want; losing the race against a concurrent writer is fine.
	_ = os.Remove(filepath.Dir(path))
	return true, nil
}
