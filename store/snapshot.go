package store

import (
	"context"
	"errors"
)

// ErrNoSnapshot is returned by a Snapshotter that has nothing stored yet.
var ErrNoSnapshot = errors.New("no snapshot stored")

// Snapshotter persists the encoded dataset as one document. Save replaces
// the previous document wholesale.
type Snapshotter interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, doc []byte) error
	Name() string
}
