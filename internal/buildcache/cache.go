// Package buildcache remembers which layouts were generated from which files,
// so a batch build can skip layouts whose inputs have not changed. Records
// live in a bbolt database, one key per layout.
package buildcache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const bucketLayouts = "layouts"

// ErrNoRecord is returned by Get for a layout that was never recorded.
var ErrNoRecord = errors.New("no build record")

// Dep is the fingerprint of one input file.
type Dep struct {
	Path    string `json:"path"`
	ModTime int64  `json:"mtime"`
	Size    int64  `json:"size"`
}

// Record is what the cache stores for a generated layout.
type Record struct {
	Deps    []Dep  `json:"deps"`
	Output  string `json:"output"`
	Version string `json:"version"`
}

// Cache is a build record store. It is safe for concurrent use.
type Cache struct {
	db *bolt.DB
	// Version invalidates records written by a different generator.
	Version string
}

// Open opens or creates the database at path.
func Open(path, version string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open build cache %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketLayouts))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize build cache: %w", err)
	}
	return &Cache{db: db, Version: version}, nil
}

// Close closes the database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Fingerprint stats every path.
func Fingerprint(paths []string) ([]Dep, error) {
	deps := make([]Dep, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		deps = append(deps, Dep{Path: p, ModTime: info.ModTime().UnixNano(), Size: info.Size()})
	}
	return deps, nil
}

// Get returns the record of a layout.
func (c *Cache) Get(name string) (Record, error) {
	var r Record
	err := c.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketLayouts)).Get([]byte(name))
		if v == nil {
			return ErrNoRecord
		}
		return json.Unmarshal(v, &r)
	})
	return r, err
}

// Put records that name was generated into output from the files in deps.
func (c *Cache) Put(name string, deps []string, output string) error {
	fp, err := Fingerprint(deps)
	if err != nil {
		return fmt.Errorf("failed to fingerprint '%s': %w", name, err)
	}
	data, err := json.Marshal(Record{Deps: fp, Output: output, Version: c.Version})
	if err != nil {
		return err
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketLayouts)).Put([]byte(name), data)
	})
}

// Fresh reports whether name's output exists and none of its recorded inputs
// changed since it was generated.
func (c *Cache) Fresh(name string) (bool, error) {
	r, err := c.Get(name)
	if errors.Is(err, ErrNoRecord) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if r.Version != c.Version {
		return false, nil
	}
	if _, err := os.Stat(r.Output); err != nil {
		return false, nil
	}
	paths := make([]string, len(r.Deps))
	for i, d := range r.Deps {
		paths[i] = d.Path
	}
	now, err := Fingerprint(paths)
	if err != nil {
		return false, nil
	}
	for i := range now {
		if now[i] != r.Deps[i] {
			return false, nil
		}
	}
	return true, nil
}

// Delete removes the record of name.
func (c *Cache) Delete(name string) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketLayouts)).Delete([]byte(name))
	})
}

// Names returns every recorded layout in key order.
func (c *Cache) Names() ([]string, error) {
	var names []string
	err := c.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketLayouts)).ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	return names, err
}

// Clear removes every record.
func (c *Cache) Clear() error {
	return c.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketLayouts)); err != nil {
			return err
		}
		_, err := tx.CreateBucket([]byte(bucketLayouts))
		return err
	})
}
