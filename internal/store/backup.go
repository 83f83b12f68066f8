package store

import (
	"time"

	"github.com/pkg/errors"

	"github.com/tillworks/tillpos/internal/domain"
)

// importDocument mirrors BackupDocument with pointer collections so an
// absent key can be told apart from an empty one.
type importDocument struct {
	Products     *[]domain.Product     `json:"products"`
	Customers    *[]domain.Customer    `json:"customers"`
	Transactions *[]domain.Transaction `json:"transactions"`
	Settings     *domain.Settings      `json:"settings"`
}

// ExportAll serializes the four loaded collections plus an export
// timestamp as pretty-printed JSON, suitable for writing to a
// pos-backup-<date>.json file.
func (s *Store) ExportAll() ([]byte, error) {
	doc := domain.BackupDocument{
		ExportDate: time.Now().Format(time.RFC3339),
	}
	var err error
	if doc.Products, err = s.LoadProducts(); err != nil {
		return nil, err
	}
	if doc.Customers, err = s.LoadCustomers(); err != nil {
		return nil, err
	}
	if doc.Transactions, err = s.LoadTransactions(); err != nil {
		return nil, err
	}
	if doc.Settings, err = s.LoadSettings(); err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshal backup")
	}
	return data, nil
}

// ImportAll parses a backup document and overwrites each collection
// whose key is present. A parse failure rejects the whole document
// with no effect; once applying begins, keys are written independently
// in sequence and a later failure does not roll back earlier writes.
func (s *Store) ImportAll(data []byte) error {
	var doc importDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(err, "parse backup")
	}
	if doc.Products != nil {
		if err := s.SaveProducts(*doc.Products); err != nil {
			return err
		}
	}
	if doc.Customers != nil {
		if err := s.SaveCustomers(*doc.Customers); err != nil {
			return err
		}
	}
	if doc.Transactions != nil {
		if err := s.SaveTransactions(*doc.Transactions); err != nil {
			return err
		}
	}
	if doc.Settings != nil {
		if err := s.SaveSettings(*doc.Settings); err != nil {
			return err
		}
	}
	return nil
}
