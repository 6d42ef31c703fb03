// Package cache stores rendered output in a bbolt database, keyed by run
// parameters and invalidated when any header that fed it changes.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"go.etcd.io/bbolt"
)

var bucketOutputs = []byte("outputs")

// absent stamps a file that did not exist when the entry was written.
const absent int64 = -1

// Store is an output cache backed by a bbolt file.
type Store struct {
	db *bbolt.DB
}

type entry struct {
	Output string           `json:"output"`
	Stamps map[string]int64 `json:"stamps"`
}

// Open opens or creates the cache database at path.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening cache %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketOutputs)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Key joins the parameters that select an output.
func Key(parts ...string) string {
	return strings.Join(parts, "\x00")
}

// Get returns the cached output for key if every file recorded with it still
// has the same modification time and every file recorded as absent is still
// missing.
func (s *Store) Get(key string) (string, bool, error) {
	var e entry
	found := false
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketOutputs).Get([]byte(key))
		if data == nil {
			return nil
		}
		found = true
		return json.Unmarshal(data, &e)
	})
	if err != nil || !found {
		return "", false, err
	}

	for path, stamp := range e.Stamps {
		fi, err := os.Stat(path)
		if stamp == absent {
			if err == nil {
				return "", false, nil
			}
			continue
		}
		if err != nil || fi.ModTime().UnixNano() != stamp {
			return "", false, nil
		}
	}
	return e.Output, true, nil
}

// Put records output for key together with the current modification time
// of each file. Paths in missing must not exist; creating one later makes
// the entry stale.
func (s *Store) Put(key, output string, files, missing []string) error {
	e := entry{Output: output, Stamps: make(map[string]int64, len(files)+len(missing))}
	for _, path := range missing {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s exists", path)
		}
		e.Stamps[path] = absent
	}
	for _, path := range files {
		fi, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		e.Stamps[path] = fi.ModTime().UnixNano()
	}

	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketOutputs).Put([]byte(key), data)
	})
}
