package adapters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

// localReceiptStorage implements adapter.ReceiptStorage on the local filesystem.
type localReceiptStorage struct {
	root string
}

// NewLocalReceiptStorage creates storage rooted at dir, creating it when missing.
func NewLocalReceiptStorage(dir string) (adapter.ReceiptStorage, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve upload dir: %w", err)
	}
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &localReceiptStorage{root: root}, nil
}

// Save writes src to a temp file and renames it into place.
func (s *localReceiptStorage) Save(ctx context.Context, key string, src io.Reader) error {
	dest, err := s.Path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		return fmt.Errorf("failed to create receipt dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, src); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write receipt: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close receipt: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("failed to store receipt: %w", err)
	}
	return nil
}

// Path resolves key inside the storage root, rejecting traversal.
func (s *localReceiptStorage) Path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid receipt key %q", key)
	}
	return filepath.Join(s.root, clean), nil
}

// Delete removes the receipt. Missing files are not an error.
func (s *localReceiptStorage) Delete(ctx context.Context, key string) error {
	dest, err := s.Path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(dest); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete receipt: %w", err)
	}
	return nil
}
