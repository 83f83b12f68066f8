// Package store is the durable persistence layer: a single bbolt
// bucket holding the four POS collections under fixed keys, each
// serialized as JSON. It is constructed once at process start and
// handed to consumers; there is no locking beyond what bbolt provides,
// so two processes sharing a store file race and the last writer wins.
package store

import (
	"os"
	"path/filepath"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"

	"github.com/tillworks/tillpos/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var bucketName = []byte("tillpos")

// Storage keys, stable across releases; renaming any of them orphans
// previously saved data.
const (
	KeyProducts     = "pos_products"
	KeyCustomers    = "pos_customers"
	KeyTransactions = "pos_transactions"
	KeySettings     = "pos_settings"
)

var ErrNotFound = errors.New("store: key not found")

type Store struct {
	db   *bolt.DB
	path string
}

// Open creates or opens the store file, ensuring its directory and
// bucket exist.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "create store dir")
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "open store %s", path)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "create bucket")
	}
	return &Store{db: db, path: path}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Path returns the store file location.
func (s *Store) Path() string { return s.path }

func (s *Store) put(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "marshal %s", key)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), data)
	})
	return errors.Wrapf(err, "save %s", key)
}

func (s *Store) get(key string, out interface{}) error {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketName).Get([]byte(key))
		if v == nil {
			return ErrNotFound
		}
		data = append(data, v...)
		return nil
	})
	if err != nil {
		return err
	}
	return errors.Wrapf(json.Unmarshal(data, out), "decode %s", key)
}

func (s *Store) delete(keys ...string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		for _, k := range keys {
			if err := b.Delete([]byte(k)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) SaveProducts(products []domain.Product) error {
	return s.put(KeyProducts, products)
}

// LoadProducts returns the stored catalog, or an empty one when
// nothing has ever been saved.
func (s *Store) LoadProducts() ([]domain.Product, error) {
	var out []domain.Product
	if err := s.get(KeyProducts, &out); err != nil {
		if errors.Is(err, ErrNotFound) {
			return []domain.Product{}, nil
		}
		return nil, err
	}
	if out == nil {
		out = []domain.Product{}
	}
	return out, nil
}

func (s *Store) SaveCustomers(customers []domain.Customer) error {
	return s.put(KeyCustomers, customers)
}

func (s *Store) LoadCustomers() ([]domain.Customer, error) {
	var out []domain.Customer
	if err := s.get(KeyCustomers, &out); err != nil {
		if errors.Is(err, ErrNotFound) {
			return []domain.Customer{}, nil
		}
		return nil, err
	}
	if out == nil {
		out = []domain.Customer{}
	}
	return out, nil
}

func (s *Store) SaveTransactions(transactions []domain.Transaction) error {
	return s.put(KeyTransactions, transactions)
}

func (s *Store) LoadTransactions() ([]domain.Transaction, error) {
	var out []domain.Transaction
	if err := s.get(KeyTransactions, &out); err != nil {
		if errors.Is(err, ErrNotFound) {
			return []domain.Transaction{}, nil
		}
		return nil, err
	}
	if out == nil {
		out = []domain.Transaction{}
	}
	return out, nil
}

func (s *Store) SaveSettings(settings domain.Settings) error {
	return s.put(KeySettings, settings)
}

// HasSettings reports whether a settings record was ever saved.
func (s *Store) HasSettings() (bool, error) {
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		found = tx.Bucket(bucketName).Get([]byte(KeySettings)) != nil
		return nil
	})
	return found, err
}

// LoadSettings falls back to DefaultSettings when none were ever
// saved. The defaults are not written back here; first-run seeding
// decides when to persist them.
func (s *Store) LoadSettings() (domain.Settings, error) {
	var out domain.Settings
	if err := s.get(KeySettings, &out); err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.DefaultSettings(), nil
		}
		return domain.Settings{}, err
	}
	return out, nil
}

// ClearAll removes the four stored collections.
func (s *Store) ClearAll() error {
	return errors.Wrap(
		s.delete(KeyProducts, KeyCustomers, KeyTransactions, KeySettings),
		"clear store")
}
