package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Record is one logical entry, keyed by field name. A record destined for a
// given media type must carry exactly that type's configured fields.
type Record map[string]interface{}

// Schema is the in-memory form of one media type's store document:
// parallel columns of equal length, one per configured field.
type Schema struct {
	fields  []string
	columns map[string][]interface{}
}

func newSchema(fields []string) *Schema {
	columns := make(map[string][]interface{}, len(fields))
	for _, f := range fields {
		columns[f] = []interface{}{}
	}
	return &Schema{fields: fields, columns: columns}
}

// Len returns the number of entries.
func (s *Schema) Len() int {
	if len(s.fields) == 0 {
		return 0
	}
	return len(s.columns[s.fields[0]])
}

// Column returns the value sequence for one field.
func (s *Schema) Column(name string) []interface{} {
	return s.columns[name]
}

// appendRecord adds one value per configured field. A record missing any
// configured field is a programming error in the caller's normalizer.
func (s *Schema) appendRecord(rec Record) error {
	for _, f := range s.fields {
		if _, ok := rec[f]; !ok {
			return fmt.Errorf("record missing field %q", f)
		}
	}
	for _, f := range s.fields {
		s.columns[f] = append(s.columns[f], rec[f])
	}
	return nil
}

// Entries transposes the columns back into one Record per entry.
func (s *Schema) Entries() []Record {
	entries := make([]Record, s.Len())
	for i := range entries {
		rec := make(Record, len(s.fields))
		for _, f := range s.fields {
			rec[f] = s.columns[f][i]
		}
		entries[i] = rec
	}
	return entries
}

// aligned reports whether every configured column exists with equal length.
func (s *Schema) aligned() bool {
	n := -1
	for _, f := range s.fields {
		col, ok := s.columns[f]
		if !ok {
			return false
		}
		if n == -1 {
			n = len(col)
		} else if len(col) != n {
			return false
		}
	}
	return true
}

// Store reads and writes the per-media-type JSON documents.
// It assumes a single writer; there is no file locking.
type Store struct {
	dir     string
	layouts map[MediaType]StoreLayout
}

// NewStore creates a store rooted at dir using the given layout table.
func NewStore(dir string, layouts map[MediaType]StoreLayout) *Store {
	return &Store{dir: dir, layouts: layouts}
}

// Path returns the backing file path for one media type.
func (st *Store) Path(mediaType MediaType) string {
	return filepath.Join(st.dir, st.layouts[mediaType].File)
}

// Load returns the persisted schema for mediaType. A missing, empty, or
// unparseable file yields a fresh schema with every field an empty column.
// Resetting on corruption is lossy but keeps the tool usable; the damaged
// file is only overwritten on the next successful Append.
func (st *Store) Load(ctx context.Context, mediaType MediaType) *Schema {
	layout := st.layouts[mediaType]
	schema := newSchema(layout.Fields)

	path := st.Path(mediaType)
	data, err := os.ReadFile(path) // #nosec G304 - path comes from the layout table
	if err != nil || len(data) == 0 {
		return schema
	}

	var columns map[string][]interface{}
	if err := json.Unmarshal(data, &columns); err != nil {
		LogWarn(ctx, "Store file %s is corrupt: %v (starting fresh)", path, err)
		return schema
	}

	schema.columns = columns
	if !schema.aligned() {
		LogWarn(ctx, "Store file %s has misaligned columns (starting fresh)", path)
		return newSchema(layout.Fields)
	}
	return schema
}

// Append adds one record to mediaType's store and rewrites the backing file.
// The write goes through a temp file in the same directory plus a rename, so
// a crash mid-write leaves the previous document intact.
func (st *Store) Append(ctx context.Context, mediaType MediaType, rec Record) error {
	schema := st.Load(ctx, mediaType)
	if err := schema.appendRecord(rec); err != nil {
		return fmt.Errorf("append %s record: %w", mediaType, err)
	}

	if err := os.MkdirAll(st.dir, StatsDirPerms); err != nil {
		return fmt.Errorf("create stats directory: %w", err)
	}

	data, err := json.MarshalIndent(schema.columns, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal %s store: %w", mediaType, err)
	}

	path := st.Path(mediaType)
	tmp, err := os.CreateTemp(st.dir, "."+st.layouts[mediaType].File+".*")
	if err != nil {
		return fmt.Errorf("create temp store file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()          //nolint:errcheck // best effort close
		os.Remove(tmp.Name()) //nolint:errcheck // best effort cleanup
		return fmt.Errorf("write store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name()) //nolint:errcheck // best effort cleanup
		return fmt.Errorf("close store file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), StatsFilePerms); err != nil {
		os.Remove(tmp.Name()) //nolint:errcheck // best effort cleanup
		return fmt.Errorf("chmod store file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name()) //nolint:errcheck // best effort cleanup
		return fmt.Errorf("replace store file: %w", err)
	}

	LogDebug(ctx, "[STORE] Appended %s entry (%d total) to %s", mediaType, schema.Len(), path)
	return nil
}

// Entries returns every stored entry for mediaType in insertion order.
func (st *Store) Entries(ctx context.Context, mediaType MediaType) []Record {
	return st.Load(ctx, mediaType).Entries()
}
