package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"content-dna/internal/models"
)

const (
	recordsFileName = "video_records.json"
	schemaVersion   = "1"
)

// RecordStore is the on-disk collection of stored video records. Every
// mutating call is flushed to disk before it returns.
type RecordStore struct {
	filePath string
	records  []*models.VideoRecord
	index    map[string]int // video ID -> position in records
	mu       sync.RWMutex
}

type recordFile struct {
	Version   string                `json:"version"`
	UpdatedAt time.Time             `json:"updated_at"`
	Records   []*models.VideoRecord `json:"records"`
}

// NewRecordStore opens (or creates) the record file inside dataDir.
func NewRecordStore(dataDir string) (*RecordStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	store := &RecordStore{
		filePath: filepath.Join(dataDir, recordsFileName),
		index:    make(map[string]int),
	}

	if err := store.load(); err != nil {
		return nil, fmt.Errorf("failed to load video records: %w", err)
	}

	return store, nil
}

// Path returns the location of the record file.
func (rs *RecordStore) Path() string {
	return rs.filePath
}

// Add appends a record. The store is left unchanged when Add fails.
func (rs *RecordStore) Add(record *models.VideoRecord) error {
	if record == nil {
		return fmt.Errorf("record cannot be nil")
	}
	if strings.TrimSpace(record.ID) == "" {
		return fmt.Errorf("record ID is required")
	}
	if strings.TrimSpace(record.Niche) == "" {
		return fmt.Errorf("record %s has no niche", record.ID)
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	if pos, exists := rs.index[record.ID]; exists {
		return &DuplicateRecordError{ID: record.ID, Niche: rs.records[pos].Niche}
	}

	stored := copyRecord(record)
	if stored.AddedAt.IsZero() {
		stored.AddedAt = time.Now().UTC()
	}

	rs.records = append(rs.records, stored)
	rs.index[stored.ID] = len(rs.records) - 1

	if err := rs.save(); err != nil {
		rs.records = rs.records[:len(rs.records)-1]
		delete(rs.index, stored.ID)
		return fmt.Errorf("failed to save record %s: %w", stored.ID, err)
	}

	return nil
}

// ListByNiche returns the niche's records in insertion order.
func (rs *RecordStore) ListByNiche(niche string) []*models.VideoRecord {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	out := make([]*models.VideoRecord, 0)
	for _, r := range rs.records {
		if r.Niche == niche {
			out = append(out, copyRecord(r))
		}
	}
	return out
}

// List returns every record in insertion order.
func (rs *RecordStore) List() []*models.VideoRecord {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	out := make([]*models.VideoRecord, 0, len(rs.records))
	for _, r := range rs.records {
		out = append(out, copyRecord(r))
	}
	return out
}

func (rs *RecordStore) Get(id string) (*models.VideoRecord, error) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	pos, exists := rs.index[id]
	if !exists {
		return nil, &NotFoundError{ID: id}
	}
	return copyRecord(rs.records[pos]), nil
}

func (rs *RecordStore) Contains(id string) bool {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	_, exists := rs.index[id]
	return exists
}

func (rs *RecordStore) Count() int {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return len(rs.records)
}

// Remove deletes the record with the given ID.
func (rs *RecordStore) Remove(id string) error {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	pos, exists := rs.index[id]
	if !exists {
		return &NotFoundError{ID: id}
	}

	previous := rs.records
	remaining := make([]*models.VideoRecord, 0, len(previous)-1)
	remaining = append(remaining, previous[:pos]...)
	remaining = append(remaining, previous[pos+1:]...)

	rs.records = remaining
	rs.reindex()

	if err := rs.save(); err != nil {
		rs.records = previous
		rs.reindex()
		return fmt.Errorf("failed to save after removing %s: %w", id, err)
	}

	return nil
}

func (rs *RecordStore) reindex() {
	rs.index = make(map[string]int, len(rs.records))
	for i, r := range rs.records {
		rs.index[r.ID] = i
	}
}

// load reads the record file; a missing file means an empty store.
func (rs *RecordStore) load() error {
	data, err := os.ReadFile(rs.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read record file: %w", err)
	}

	var file recordFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to decode record file %s: %w", rs.filePath, err)
	}

	for i, r := range file.Records {
		if r == nil {
			return fmt.Errorf("record file %s: entry %d is null", rs.filePath, i)
		}
		if r.ID == "" {
			return fmt.Errorf("record file %s: entry %d has no video id", rs.filePath, i)
		}
		if _, dup := rs.index[r.ID]; dup {
			return fmt.Errorf("record file %s contains video %s twice", rs.filePath, r.ID)
		}
		rs.records = append(rs.records, r)
		rs.index[r.ID] = len(rs.records) - 1
	}

	return nil
}

// save writes all records through a temp file and fsync before renaming.
func (rs *RecordStore) save() error {
	file := recordFile{
		Version:   schemaVersion,
		UpdatedAt: time.Now().UTC(),
		Records:   rs.records,
	}
	if file.Records == nil {
		file.Records = []*models.VideoRecord{}
	}

	writer, err := newAtomicWriter(rs.filePath)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(file); err != nil {
		writer.abort()
		return fmt.Errorf("failed to encode records: %w", err)
	}

	return writer.commit()
}

func copyRecord(r *models.VideoRecord) *models.VideoRecord {
	c := *r
	c.Tags = append([]string(nil), r.Tags...)
	return &c
}
