package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/cockroachdb/pebble"
)

const snapshotPrefix = "snapshot/"

// KVStore keeps the latest document per name in a pebble database. It is
// the history-free counterpart of Store for hosts that checkpoint often.
type KVStore struct {
	db *pebble.DB
}

// OpenKV opens or creates the database directory at path.
func OpenKV(path string) (*KVStore, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, err
	}
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open kv store: %w", err)
	}
	return &KVStore{db: db}, nil
}

func (kv *KVStore) Close() error {
	return kv.db.Close()
}

func snapshotKey(name string) []byte {
	return []byte(snapshotPrefix + name)
}

// Put replaces the document stored under doc.Name.
func (kv *KVStore) Put(doc Document) error {
	if doc.Name == "" {
		return fmt.Errorf("kv put: empty name")
	}
	value, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return kv.db.Set(snapshotKey(doc.Name), value, pebble.Sync)
}

// Get returns the document stored under name, or ErrNotFound.
func (kv *KVStore) Get(name string) (*Document, error) {
	value, closer, err := kv.db.Get(snapshotKey(name))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, err
	}
	defer closer.Close()

	var doc Document
	if err := Decode(bytes.NewReader(value), JSON, &doc); err != nil {
		return nil, fmt.Errorf("kv get %s: %w", name, err)
	}
	return &doc, nil
}

func (kv *KVStore) Delete(name string) error {
	return kv.db.Delete(snapshotKey(name), pebble.Sync)
}

// Names lists stored document names in key order.
func (kv *KVStore) Names() ([]string, error) {
	iter, err := kv.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(snapshotPrefix),
		UpperBound: prefixEnd([]byte(snapshotPrefix)),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var names []string
	for iter.First(); iter.Valid(); iter.Next() {
		names = append(names, string(iter.Key()[len(snapshotPrefix):]))
	}
	return names, iter.Error()
}

// Clear deletes every stored document in one batch.
func (kv *KVStore) Clear() error {
	names, err := kv.Names()
	if err != nil {
		return err
	}
	batch := kv.db.NewBatch()
	defer batch.Close()
	for _, name := range names {
		if err := batch.Delete(snapshotKey(name), nil); err != nil {
			return err
		}
	}
	return kv.db.Apply(batch, pebble.Sync)
}

// prefixEnd returns the smallest key greater than every key with prefix.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}
