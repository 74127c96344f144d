// Package session persists the signed-in user's token between client runs
// in a small bbolt key/value file.
package session

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/khonsu303/estudio/internal/filex"
	"go.etcd.io/bbolt"
)

const fileName = "session.db"

var bucket = []byte("session")

// Keys stored in the session bucket.
const (
	KeyToken = "token"
	KeyEmail = "email"
	KeyName  = "name"
)

type Store struct {
	db *bbolt.DB
}

// Open creates dir if needed and opens the session file inside it.
func Open(dir string) (*Store, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}

	db, err := bbolt.Open(filepath.Join(abs, fileName), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value for key, or "" when unset.
func (s *Store) Get(key string) (string, error) {
	var value string
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return errors.New("session bucket not found")
		}
		value = string(b.Get([]byte(key)))
		return nil
	})
	return value, err
}

func (s *Store) Set(key, value string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), []byte(value))
	})
}

// Save records a fresh login in one transaction.
func (s *Store) Save(token, email, name string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucket)
		for k, v := range map[string]string{KeyToken: token, KeyEmail: email, KeyName: name} {
			if err := b.Put([]byte(k), []byte(v)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Clear forgets everything, e.g. on logout.
func (s *Store) Clear() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucket)
		var keys [][]byte
		if err := b.ForEach(func(k, _ []byte) error {
			keys = append(keys, append([]byte(nil), k...))
			return nil
		}); err != nil {
			return err
		}
		for _, k := range keys {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}
