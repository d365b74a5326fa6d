// Package cache stores read results on disk keyed by file content and
// reader options.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"lyread/internal/dump"
)

// SchemaVersion is bumped whenever dump.File or Payload changes shape;
// entries written by other versions are treated as misses.
const SchemaVersion uint16 = 1

// Key identifies a cache entry.
type Key [sha256.Size]byte

func (k Key) String() string { return hex.EncodeToString(k[:]) }

// KeyFor combines a content hash with the options that influence the result.
func KeyFor(content [sha256.Size]byte, options ...string) Key {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, o := range options {
		_, _ = h.Write([]byte{0})
		_, _ = h.Write([]byte(o))
	}
	var k Key
	copy(k[:], h.Sum(nil))
	return k
}

// Payload is the stored form of an entry.
type Payload struct {
	Schema uint16    `msgpack:"schema"`
	Stored time.Time `msgpack:"stored"`
	File   dump.File `msgpack:"file"`
}

// DiskCache is safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// Open uses dir, creating it if needed.
func Open(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDefault opens $XDG_CACHE_HOME/app, falling back to ~/.cache/app.
func OpenDefault(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return Open(filepath.Join(base, app))
}

// Dir returns the cache directory.
func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key Key) string {
	s := key.String()
	// два символа на подкаталог, чтобы не складывать всё в одну папку
	return filepath.Join(c.dir, "read", s[:2], s+".mp")
}

// Put writes f atomically. Document handles are per-process and are not stored.
func (c *DiskCache) Put(key Key, f dump.File) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	f.Document = ""
	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = msgpack.NewEncoder(tmp).Encode(&Payload{Schema: SchemaVersion, Stored: time.Now(), File: f}); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	// атомарная замена
	return os.Rename(tmp.Name(), p)
}

// Get reads the entry for key. Entries of another schema are misses.
func (c *DiskCache) Get(key Key) (dump.File, bool, error) {
	if c == nil {
		return dump.File{}, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if errors.Is(err, os.ErrNotExist) {
		return dump.File{}, false, nil
	}
	if err != nil {
		return dump.File{}, false, err
	}
	var payload Payload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return dump.File{}, false, fmt.Errorf("decode cache entry %s: %w", key, err)
	}
	if payload.Schema != SchemaVersion {
		return dump.File{}, false, nil
	}
	return payload.File, true, nil
}

// DropAll removes every entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405.000000000")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
