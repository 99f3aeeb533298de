package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/fhelabs/experiment-registry/codec"
	"github.com/fhelabs/experiment-registry/interfaces"
)

// Registry reads and writes experiment records and the index blob through a
// BlobStore.
type Registry struct {
	store interfaces.BlobStore
	log   *slog.Logger
}

// New creates a registry over the given store.
func New(store interfaces.BlobStore, log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}
	return &Registry{store: store, log: log}
}

// LoadIndex reads the current index. An absent or empty index blob is an
// empty index; a malformed blob is treated as empty with a logged warning so
// that a corrupted index never blocks creating a new one. Transport failures
// are returned to the caller.
func (r *Registry) LoadIndex(ctx context.Context) ([]interfaces.ExperimentID, error) {
	data, err := r.store.GetData(ctx, interfaces.IndexKey)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read experiment index: %w", err)
	}

	ids, err := codec.DecodeIndex(data)
	if err != nil {
		r.log.Warn("Discarding malformed experiment index",
			slog.String("key", interfaces.IndexKey),
			slog.Int("size", len(data)),
			"err", err)
		return nil, nil
	}
	return ids, nil
}

// AppendID adds id to the index if not already present and writes the index
// back. The call is idempotent against duplicate submission. It is NOT safe
// against concurrent writers: the read-modify-write has no isolation and a
// racing append can be lost (see the package comment).
func (r *Registry) AppendID(ctx context.Context, id interfaces.ExperimentID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	ids, err := r.LoadIndex(ctx)
	if err != nil {
		return err
	}

	for _, existing := range ids {
		if existing == id {
			r.log.Debug("Experiment id already indexed", slog.String("id", id.String()))
			return nil
		}
	}

	data, err := codec.EncodeIndex(append(ids, id))
	if err != nil {
		return err
	}
	if err := r.store.SetData(ctx, interfaces.IndexKey, data); err != nil {
		return fmt.Errorf("failed to write experiment index: %w", err)
	}

	r.log.Debug("Appended experiment id to index",
		slog.String("id", id.String()),
		slog.Int("indexSize", len(ids)+1))
	return nil
}

// ReadRecord fetches and decodes one record by id. An absent blob yields
// ErrRecordNotFound.
func (r *Registry) ReadRecord(ctx context.Context, id interfaces.ExperimentID) (interfaces.ExperimentRecord, error) {
	data, err := r.store.GetData(ctx, id.RecordKey())
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return interfaces.ExperimentRecord{}, interfaces.ErrRecordNotFound
		}
		return interfaces.ExperimentRecord{}, fmt.Errorf("failed to read experiment %s: %w", id, err)
	}

	rec, err := codec.DecodeRecord(data)
	if err != nil {
		return interfaces.ExperimentRecord{}, err
	}
	rec.ID = id
	return rec, nil
}

// WriteRecord encodes and stores one record under its derived key. Writes by
// key are idempotent; retrying a failed creation re-writes the same blob.
func (r *Registry) WriteRecord(ctx context.Context, rec interfaces.ExperimentRecord) error {
	if err := rec.ID.Validate(); err != nil {
		return err
	}

	data, err := codec.EncodeRecord(rec)
	if err != nil {
		return err
	}
	if err := r.store.SetData(ctx, rec.ID.RecordKey(), data); err != nil {
		return fmt.Errorf("failed to write experiment %s: %w", rec.ID, err)
	}

	r.log.Debug("Stored experiment record",
		slog.String("id", rec.ID.String()),
		slog.String("status", rec.Status.String()),
		slog.Int("size", len(data)))
	return nil
}

// Refresh rebuilds the full experiment view: it loads the index, reads and
// decodes every record it names, and returns the survivors ordered by
// creation timestamp descending (ties keep index order). A record that
// cannot be read or decoded is skipped with a logged warning — partial data
// loss never fails the whole refresh.
func (r *Registry) Refresh(ctx context.Context) ([]interfaces.ExperimentRecord, error) {
	ids, err := r.LoadIndex(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]interfaces.ExperimentRecord, 0, len(ids))
	for _, id := range ids {
		rec, err := r.ReadRecord(ctx, id)
		if err != nil {
			r.log.Warn("Skipping unreadable experiment record",
				slog.String("id", id.String()),
				"err", err)
			continue
		}
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp > records[j].Timestamp
	})
	return records, nil
}

// Available probes the underlying store surface.
func (r *Registry) Available(ctx context.Context) bool {
	return r.store.Available(ctx)
}

// StoreURI identifies the underlying store.
func (r *Registry) StoreURI() string {
	return r.store.LocationURI()
}
