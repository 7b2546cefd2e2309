// Package store implements the device-local persistent state using BoltDB
// with an in-memory promotion cache for hot-path reads.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rsilveira/licoes/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketSession = []byte("session")
	bucketSeen    = []byte("seen")
	bucketFilters = []byte("filters")
)

// Keys within the session bucket
const keyAuthUID = "auth_uid"

// LocalStore implements domain.LocalStore using BoltDB.
type LocalStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// NewLocalStore opens (or creates) the local database under baseDir.
// An empty baseDir gives a memory-only store with no persistence.
func NewLocalStore(baseDir string) (*LocalStore, error) {
	if baseDir == "" {
		// Memory-only mode (no persistence)
		return &LocalStore{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(baseDir, "licoes.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketSession, bucketSeen, bucketFilters} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &LocalStore{db: db, cache: make(map[string][]byte)}, nil
}

// Close closes the underlying database
func (s *LocalStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *LocalStore) get(bucket []byte, key string, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	// Read from BoltDB
	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *LocalStore) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	// Update memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), data)
	})
}

func (s *LocalStore) clearBucket(bucket []byte) error {
	s.mu.Lock()
	prefix := string(bucket) + ":"
	for k := range s.cache {
		if strings.HasPrefix(k, prefix) {
			delete(s.cache, k)
		}
	}
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// === Session ===

func (s *LocalStore) GetSessionUID() (string, bool) {
	var uid string
	ok := s.get(bucketSession, keyAuthUID, &uid)
	return uid, ok && uid != ""
}

func (s *LocalStore) SaveSessionUID(uid string) error {
	return s.set(bucketSession, keyAuthUID, uid)
}

// === Seen sets ===

func (s *LocalStore) GetSeen(key string) ([]string, bool) {
	var ids []string
	ok := s.get(bucketSeen, key, &ids)
	return ids, ok
}

func (s *LocalStore) SaveSeen(key string, ids []string) error {
	return s.set(bucketSeen, key, ids)
}

// === Persisted filters ===

func (s *LocalStore) GetFilters(kind domain.Kind) (string, bool) {
	var query string
	ok := s.get(bucketFilters, kind.Collection(), &query)
	return query, ok
}

func (s *LocalStore) SaveFilters(kind domain.Kind, query string) error {
	return s.set(bucketFilters, kind.Collection(), query)
}

// === User-state reset ===

// ClearUserState wipes everything tied to the signed-in user. Called when
// a different account signs in on the same device, so seen-state never
// leaks or merges between users.
func (s *LocalStore) ClearUserState() error {
	for _, bucket := range [][]byte{bucketSession, bucketSeen, bucketFilters} {
		if err := s.clearBucket(bucket); err != nil {
			return err
		}
	}
	return nil
}
