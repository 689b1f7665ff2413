package cache

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
)

// entryExt marks cache entries; anything else under the directory is left alone.
const entryExt = ".json.zst"

// FileCache stores artifacts as zstd-compressed JSON files under dir, sharded
// by the first two hex digits of the hashed key:
//
//	<dir>/3f/a9c1...e2.json.zst
type FileCache struct {
	dir string
}

// NewFileCache opens (and creates) a cache rooted at dir.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// The codecs carry no per-stream state, so one pair serves every entry.
var (
	codecOnce sync.Once
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder
	codecErr  error
)

func codecs() (*zstd.Encoder, *zstd.Decoder, error) {
	codecOnce.Do(func() {
		if encoder, codecErr = zstd.NewWriter(nil); codecErr != nil {
			return
		}
		decoder, codecErr = zstd.NewReader(nil)
	})
	return encoder, decoder, codecErr
}

type fileEntry struct {
	Data      []byte    `json:"data"`
	StoredAt  time.Time `json:"stored_at"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

func (e fileEntry) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:]+entryExt)
}

// read decodes the entry at path. ok is false for a missing or unreadable entry.
func read(path string) (e fileEntry, ok bool, err error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return e, false, nil
	}
	if err != nil {
		return e, false, err
	}
	_, dec, err := codecs()
	if err != nil {
		return e, false, err
	}
	plain, err := dec.DecodeAll(raw, nil)
	if err != nil || json.Unmarshal(plain, &e) != nil {
		return e, false, nil
	}
	return e, true, nil
}

// Get returns the artifact stored under key. Expired and corrupt entries
// are removed and reported as misses.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	p := c.path(key)
	e, ok, err := read(p)
	if err != nil {
		return nil, false, err
	}
	if !ok || e.expired(time.Now()) {
		_ = os.Remove(p)
		return nil, false, nil
	}
	return e.Data, true, nil
}

// Set stores data under key. A zero ttl never expires. The entry is written
// to a temporary file and renamed so readers never see a partial entry.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	now := time.Now()
	e := fileEntry{Data: data, StoredAt: now}
	if ttl > 0 {
		e.ExpiresAt = now.Add(ttl)
	}
	plain, err := json.Marshal(e)
	if err != nil {
		return err
	}
	enc, _, err := codecs()
	if err != nil {
		return err
	}

	p := c.path(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(p), ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(enc.EncodeAll(plain, nil)); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), p)
}

func (c *FileCache) Delete(ctx context.Context, key string) error {
	if err := os.Remove(c.path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (c *FileCache) Close() error { return nil }

// Dir returns the cache root.
func (c *FileCache) Dir() string { return c.dir }

// walk calls fn for every entry file, then removes shards left empty.
func (c *FileCache) walk(fn func(path string, info fs.FileInfo)) error {
	err := filepath.WalkDir(c.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), entryExt) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		fn(p, info)
		return nil
	})
	if err != nil {
		return err
	}
	shards, _ := os.ReadDir(c.dir)
	for _, s := range shards {
		if s.IsDir() {
			_ = os.Remove(filepath.Join(c.dir, s.Name())) // fails unless empty
		}
	}
	return nil
}

// Clear removes every entry and returns how many were removed.
func (c *FileCache) Clear() (int, error) {
	n := 0
	err := c.walk(func(p string, _ fs.FileInfo) {
		if os.Remove(p) == nil {
			n++
		}
	})
	return n, err
}

// Prune removes expired and unreadable entries and returns how many went.
func (c *FileCache) Prune() (int, error) {
	now := time.Now()
	n := 0
	err := c.walk(func(p string, _ fs.FileInfo) {
		e, ok, err := read(p)
		if err != nil || (ok && !e.expired(now)) {
			return
		}
		if os.Remove(p) == nil {
			n++
		}
	})
	return n, err
}

// Usage summarizes the cache contents.
type Usage struct {
	Entries int
	Expired int
	Bytes   int64 // compressed size on disk
	Oldest  time.Time
}

// Usage walks the cache and reports its size.
func (c *FileCache) Usage() (Usage, error) {
	now := time.Now()
	var u Usage
	err := c.walk(func(p string, info fs.FileInfo) {
		u.Entries++
		u.Bytes += info.Size()
		e, ok, err := read(p)
		if err != nil || !ok || e.expired(now) {
			u.Expired++
			return
		}
		if u.Oldest.IsZero() || e.StoredAt.Before(u.Oldest) {
			u.Oldest = e.StoredAt
		}
	})
	return u, err
}

var _ Cache = (*FileCache)(nil)
