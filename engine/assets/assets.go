// Package assets implements a registry of heterogeneous assets. Assets are
// stored type-erased and can only be retrieved back as their exact type.
package assets

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spaghettifunk/oxide/engine/core"
)

// Entry describes one loaded asset.
type Entry struct {
	ID       uuid.UUID
	Path     string
	Kind     string
	LoadedAt time.Time
}

type record struct {
	Entry
	asset Asset
}

// Registry is an append-only store of loaded assets, addressed by the
// order they were loaded in. It shares each asset with the callers that
// loaded or fetched it and is not safe for concurrent use.
type Registry struct {
	fs      FileSystem
	now     func() time.Time
	records []record
}

type Option func(*Registry)

// WithFileSystem replaces the OS filesystem the assets are read from.
func WithFileSystem(fs FileSystem) Option {
	return func(r *Registry) {
		r.fs = fs
	}
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		fs:  osFileSystem{},
		now: time.Now,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Load reads path, builds a T from its content and stores it. The returned
// pointer is shared with the registry. On failure a *core.LoadError is
// returned and the registry is left untouched.
func Load[T any, PT interface {
	*T
	Loadable
}](r *Registry, path string) (PT, error) {
	data, err := r.fs.ReadFile(path)
	if err != nil {
		return nil, &core.LoadError{Path: path, Err: err}
	}

	asset := PT(new(T))
	if err := asset.Load(path, data); err != nil {
		if !errors.Is(err, core.ErrMalformedAsset) {
			err = fmt.Errorf("%w: %w", core.ErrMalformedAsset, err)
		}
		return nil, &core.LoadError{Path: path, Err: err}
	}

	r.records = append(r.records, record{
		Entry: Entry{
			ID:       uuid.New(),
			Path:     path,
			Kind:     asset.Kind(),
			LoadedAt: r.now(),
		},
		asset: asset,
	})
	core.LogDebug("loaded %s asset '%s' at index %d", asset.Kind(), path, len(r.records)-1)

	return asset, nil
}

// Get returns the asset at index when it was loaded as a T. An index out of
// range or an asset of any other type yields false.
func Get[T any, PT interface {
	*T
	Loadable
}](r *Registry, index int) (PT, bool) {
	if index < 0 || index >= len(r.records) {
		return nil, false
	}
	asset, ok := r.records[index].asset.(PT)
	if !ok {
		return nil, false
	}
	return asset, true
}

// Len returns the number of loaded assets.
func (r *Registry) Len() int {
	return len(r.records)
}

// Entries returns the metadata of every asset in load order.
func (r *Registry) Entries() []Entry {
	entries := make([]Entry, len(r.records))
	for i, rec := range r.records {
		entries[i] = rec.Entry
	}
	return entries
}

// Close drops the registry's references to its assets. Handles already
// returned by Load or Get stay valid and are reclaimed once their last
// holder lets go of them.
func (r *Registry) Close() {
	core.LogDebug("asset registry closed, %d references dropped", len(r.records))
	r.records = nil
}
