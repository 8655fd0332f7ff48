package ventas

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps the table in a single JSONL file. Like the remote sheet
// it stands in for, it has no revision tracking: concurrent writers are
// last-writer-wins. Use sqlstore for lost-update detection.
type FileStore struct {
	path string
}

// NewFileStore creates a store over the given file. The file does not
// need to exist yet.
func NewFileStore(path string) *FileStore { return &FileStore{path: path} }

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// ReadAll implements LedgerStore. A missing file is an empty table, not
// an error.
func (s *FileStore) ReadAll(ctx context.Context) (*Ledger, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open ledger file %q: %w", s.path, err)
	}
	defer f.Close()

	l, err := DecodeLedger(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger file %q: %w", s.path, err)
	}
	return l, nil
}

// ReplaceAll implements LedgerStore. The table is written to a temporary
// file and renamed over the old one, so readers never see a half-written
// table.
func (s *FileStore) ReplaceAll(ctx context.Context, l *Ledger) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create ledger directory %q: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("could not create temporary ledger file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := EncodeLedger(tmp, l); err != nil {
		tmp.Close()
		return fmt.Errorf("could not encode ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not close temporary ledger file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("could not replace ledger file %q: %w", s.path, err)
	}
	return nil
}
