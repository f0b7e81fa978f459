package cache

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

const entryExt = ".json"

// FileCache stores solve results as flat JSON files named by the key hash.
// Each file records the full key, so a file that does not belong to the
// requested key is treated as a miss.
type FileCache struct {
	dir string
	now func() time.Time
}

// NewFileCache opens the result store in dir, creating it if needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir, now: time.Now}, nil
}

// storedResult is the on-disk envelope around a cached value.
type storedResult struct {
	Key       string    `json:"key"`
	StoredAt  time.Time `json:"stored_at"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
	Data      []byte    `json:"data"`
}

func (e storedResult) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// Stats summarises the entries currently on disk.
type Stats struct {
	Entries int
	Expired int
	Bytes   int64
}

// Get returns the value stored for key. Unreadable, expired and foreign
// entries are dropped and reported as misses.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	file := c.fileFor(key)
	entry, err := readEntry(file)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, false, nil
	case errors.Is(err, errBadEntry):
		_ = os.Remove(file)
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}
	if entry.Key != key || entry.expired(c.now()) {
		_ = os.Remove(file)
		return nil, false, nil
	}
	return entry.Data, true, nil
}

// Set writes data for key through a temporary file, so a reader never sees
// a partially written entry.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	now := c.now()
	entry := storedResult{Key: key, StoredAt: now, Data: data}
	if ttl > 0 {
		entry.ExpiresAt = now.Add(ttl)
	}
	encoded, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(c.dir, "put-*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), c.fileFor(key))
}

// Delete removes the entry for key if there is one.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	if err := os.Remove(c.fileFor(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Clear removes every stored result and returns how many were deleted.
func (c *FileCache) Clear() (int, error) {
	files, err := c.entryFiles()
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, f := range files {
		if err := os.Remove(f); err == nil {
			removed++
		}
	}
	return removed, nil
}

// Stat counts the stored results and their size on disk.
func (c *FileCache) Stat() (Stats, error) {
	var st Stats
	files, err := c.entryFiles()
	if err != nil {
		return st, err
	}
	now := c.now()
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			continue
		}
		st.Entries++
		st.Bytes += info.Size()
		if entry, err := readEntry(f); err != nil || entry.expired(now) {
			st.Expired++
		}
	}
	return st, nil
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string {
	return c.dir
}

func (c *FileCache) Close() error {
	return nil
}

func (c *FileCache) fileFor(key string) string {
	return filepath.Join(c.dir, Hash([]byte(key))+entryExt)
}

func (c *FileCache) entryFiles() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(c.dir, "*"+entryExt))
	if err != nil {
		return nil, err
	}
	return files, nil
}

var errBadEntry = errors.New("unreadable cache entry")

func readEntry(file string) (storedResult, error) {
	var entry storedResult
	raw, err := os.ReadFile(file)
	if err != nil {
		return entry, err
	}
	if err := json.Unmarshal(raw, &entry); err != nil {
		return entry, errBadEntry
	}
	return entry, nil
}

var _ Cache = (*FileCache)(nil)
