package adapter

import (
	"context"
	"io"
)

// ReceiptStorage stores receipt files by key.
type ReceiptStorage interface {
	// Save writes src under key, replacing any existing file.
	Save(ctx context.Context, key string, src io.Reader) error

	// Path resolves key to a readable local path.
	Path(key string) (string, error)

	// Delete removes the file stored under key. Missing files are not an error.
	Delete(ctx context.Context, key string) error
}
