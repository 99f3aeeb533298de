package interfaces

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by BlobStore.GetData when the key holds no
	// data. Backends that cannot distinguish an absent key from an empty
	// value (the on-chain contract among them) report both as ErrNotFound.
	ErrNotFound = errors.New("key not found in blob store")

	// ErrStoreUnavailable is returned when the blob store surface is not
	// accessible at all.
	ErrStoreUnavailable = errors.New("blob store unavailable")

	// ErrNoTransactOpts is returned when a write is attempted without an
	// authorized transactor configured.
	ErrNoTransactOpts = errors.New("no authorized transactor available")

	// ErrRecordNotFound is returned when an operation targets an
	// experiment id whose record blob is absent from the store.
	ErrRecordNotFound = errors.New("experiment not found")
)

// BlobStore is the external key→bytes storage surface. Reads are free and
// side-effect-free. Writes are signed, asynchronous operations: SetData
// returns only once the write reached a terminal outcome (accepted or
// rejected), and an accepted write is durable.
//
// The surface offers no cross-key atomicity and no compare-and-swap. Any
// read-modify-write built on it (the index append in particular) can race
// with other writers; that limitation is documented where it applies rather
// than hidden here.
type BlobStore interface {
	// GetData retrieves the blob stored under key. Absent or empty keys
	// yield ErrNotFound.
	GetData(ctx context.Context, key string) ([]byte, error)

	// SetData stores value under key, waiting for the terminal outcome of
	// the remote write. May fail with ErrNoTransactOpts, a user-declined
	// signing action, or any transport/contract error.
	SetData(ctx context.Context, key string, value []byte) error

	// Available is a liveness probe of the store surface. It is used for
	// standalone status checks, never on the read/write path.
	Available(ctx context.Context) bool

	// Name returns an identifier for logging.
	Name() string

	// LocationURI returns the URI identifying this store.
	LocationURI() string
}

// AccountSource reports which account is acting. The wallet manager
// implements it; the answer may change between calls when the user switches
// accounts. A new account value takes effect for subsequent operations only,
// never retroactively.
type AccountSource interface {
	// Current returns the active account identifier, or "" when no
	// account is connected.
	Current() string
}
