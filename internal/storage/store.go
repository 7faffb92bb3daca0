package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/springbar/internal/dynamo"
	"github.com/san-kum/springbar/internal/progress"
)

// ErrNotFound is returned when a saved run does not exist.
var ErrNotFound = errors.New("storage: not found")

// Document is one saved group of bars.
type Document struct {
	ID        string                 `json:"id" yaml:"id"`
	Name      string                 `json:"name" yaml:"name"`
	Timestamp time.Time              `json:"timestamp" yaml:"timestamp"`
	Dt        float64                `json:"dt,omitempty" yaml:"dt,omitempty"`
	Group     progress.GroupSnapshot `json:"group" yaml:"group"`
	Metrics   map[string]float64     `json:"metrics,omitempty" yaml:"metrics,omitempty"`
}

// Store keeps documents and trajectories in one directory per run under
// baseDir.
type Store struct {
	baseDir  string
	encoding Encoding
	now      func() time.Time
}

func New(baseDir string, enc Encoding) *Store {
	return &Store{baseDir: baseDir, encoding: enc, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

func (s *Store) docPath(id string, enc Encoding) string {
	return filepath.Join(s.baseDir, id, "snapshot"+enc.Ext())
}

// Save writes doc under a fresh run ID derived from doc.Name and returns
// the ID.
func (s *Store) Save(doc Document) (string, error) {
	if doc.Name == "" || filepath.Base(doc.Name) != doc.Name {
		return "", dynamo.InvalidArgument("storage.Save", "name", doc.Name, "must be a plain file name")
	}
	now := s.now()
	doc.ID = fmt.Sprintf("%s_%d", doc.Name, now.UnixNano())
	doc.Timestamp = now

	runDir := filepath.Join(s.baseDir, doc.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	f, err := os.Create(s.docPath(doc.ID, s.encoding))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := Encode(f, s.encoding, doc); err != nil {
		return "", fmt.Errorf("write %s: %w", doc.ID, err)
	}
	return doc.ID, nil
}

// Load reads a run in whichever encoding it was saved with.
func (s *Store) Load(id string) (*Document, error) {
	for _, enc := range []Encoding{s.encoding, JSON, YAML} {
		f, err := os.Open(s.docPath(id, enc))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		defer f.Close()

		var doc Document
		if err := Decode(f, enc, &doc); err != nil {
			return nil, fmt.Errorf("read %s: %w", id, err)
		}
		for _, ns := range doc.Group.Bars {
			if err := ns.Validate(); err != nil {
				return nil, fmt.Errorf("read %s: bar %q: %w", id, ns.Name, err)
			}
		}
		return &doc, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// List returns every readable run, oldest first. Unreadable runs are
// skipped.
func (s *Store) List() ([]Document, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Document{}, nil
		}
		return nil, err
	}

	docs := make([]Document, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		doc, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		docs = append(docs, *doc)
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].Timestamp.Before(docs[j].Timestamp)
	})
	return docs, nil
}

// Delete removes a run and everything saved with it.
func (s *Store) Delete(id string) error {
	if id == "" || filepath.Base(id) != id {
		return dynamo.InvalidArgument("storage.Delete", "id", id, "must be a plain file name")
	}
	runDir := filepath.Join(s.baseDir, id)
	if _, err := os.Stat(runDir); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return err
	}
	return os.RemoveAll(runDir)
}
