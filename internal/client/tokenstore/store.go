package tokenstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.etcd.io/bbolt"
)

var (
	bucketAuth = []byte("auth")
	recordKey  = []byte("current")
)

// ErrNoToken is returned by Load when no valid token is stored. An
// expired record is indistinguishable from an absent one.
var ErrNoToken = errors.New("no stored token")

// Record is the single persisted token slot. IssuedAt is the local save
// time; validity is recomputed from it on every read.
type Record struct {
	Token    string    `json:"token"`
	IssuedAt time.Time `json:"issued_at"`
}

// Store persists one token record in a bbolt file and re-checks its
// validity window on every Load. The window must not exceed the server's
// token TTL: the store discards tokens slightly before the server would
// reject them. The mutex serializes Save and Clear from overlapping
// login and logout flows.
type Store struct {
	db  *bbolt.DB
	ttl time.Duration
	mu  sync.Mutex
	now func() time.Time
}

// Open creates or opens the token store at path.
func Open(path string, ttl time.Duration) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open token store: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketAuth)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init token store: %w", err)
	}

	return &Store{db: db, ttl: ttl, now: time.Now}, nil
}

// Save stores the token, overwriting any previous record.
func (s *Store) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := Record{Token: token, IssuedAt: s.now()}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal token record: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketAuth).Put(recordKey, data)
	})
}

// Load returns the stored token if its local validity window has not
// elapsed. A stale record is cleared inside the same transaction, so
// callers never observe a token the store considers dead.
func (s *Store) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var token string
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		data := bucket.Get(recordKey)
		if data == nil {
			return ErrNoToken
		}

		var record Record
		if err := json.Unmarshal(data, &record); err != nil {
			// unreadable record is as good as absent
			_ = bucket.Delete(recordKey)
			return ErrNoToken
		}

		if s.now().Sub(record.IssuedAt) >= s.ttl {
			if err := bucket.Delete(recordKey); err != nil {
				return fmt.Errorf("clear expired token: %w", err)
			}
			return ErrNoToken
		}

		token = record.Token
		return nil
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

// Clear removes the stored record (logout). Clearing an empty store is
// not an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketAuth).Delete(recordKey)
	})
}

// Close releases the underlying database file.
func (s *Store) Close() error {
	return s.db.Close()
}
