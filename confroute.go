// Package confroute provides routed, atomic read/modify/write access to
// hierarchical JSON and YAML documents addressed by a path of keys.
//
// The facade orchestrates: select codec, load the document, run the routed
// traversal or mutation, and (for writes) persist the result atomically.
// Error semantics follow a strict two-way split:
//
//   - Filesystem errors (not-found, permission, disk full) always propagate.
//   - Semantic failures (missing route, type conflict, malformed document,
//     unsupported format) never abort the caller: reads report "absent" and
//     writes report a false outcome with the document unchanged on disk.
//
// In-memory documents can be manipulated without any file involved through
// the engine package, which the facade is a thin layer over.
package confroute

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/confroute/confroute/codec"
	"github.com/confroute/confroute/document"
	"github.com/confroute/confroute/engine"
	"github.com/confroute/confroute/internal/fsio"
	"github.com/confroute/confroute/journal"
	"github.com/confroute/confroute/route"
)

// Get reads the document at path and returns the value addressed by r.
// The empty route returns the whole document.
//
// The boolean result distinguishes presence: (value, true, nil) on success,
// (nil, false, nil) when the route is missing, the document is malformed, or
// the format is unsupported. A non-nil error is always a filesystem error.
func Get(ctx context.Context, path string, r route.Route, opts ...Option) (document.Value, bool, error) {
	o := buildOptions(opts)

	c, err := codec.Infer(path, o.codec)
	if err != nil {
		// Unsupported format reads as "not found"
		return nil, false, nil
	}

	data, err := fsio.ReadFile(path)
	if err != nil {
		return nil, false, err
	}

	doc, err := decodeOn(ctx, o.exec, c, data)
	if err != nil {
		if codec.IsSyntaxError(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	val, err := engine.Resolve(doc, r)
	if err != nil {
		// engine failures are recoverable by construction
		return nil, false, nil
	}
	return val, true, nil
}

// Set installs value at r inside the document at path and persists the
// result atomically. The empty route replaces the whole document.
//
// It returns true when the file was rewritten. A false outcome with nil
// error means the update could not be applied (unsupported format, malformed
// document, or a route conflict under the Strict policy) and the file is
// unchanged on disk. A non-nil error is a filesystem or journal error.
func Set(ctx context.Context, path string, r route.Route, value document.Value, opts ...Option) (bool, error) {
	o := buildOptions(opts)

	c, err := codec.Infer(path, o.codec)
	if err != nil {
		return false, nil
	}

	data, err := fsio.ReadFile(path)
	if err != nil {
		return false, err
	}

	doc, err := decodeOn(ctx, o.exec, c, data)
	if err != nil {
		if codec.IsSyntaxError(err) {
			return false, nil
		}
		return false, err
	}

	updated, err := engine.Assoc(doc, r, value, o.policy)
	if err != nil {
		return false, nil
	}

	if err := persist(ctx, o.exec, c, path, updated); err != nil {
		return false, err
	}

	if o.journal != nil {
		if err := record(ctx, o.journal, journal.OpSet, path, r, value, updated); err != nil {
			return true, err
		}
	}
	return true, nil
}

// Delete removes the value at r from the document at path and persists the
// result atomically. With WithPrune, mapping ancestors emptied by the
// removal are dropped as well. The empty route clears the whole document.
//
// Outcome semantics match Set: false with nil error means nothing was
// removed (missing route, unsupported format, malformed document) and the
// file is unchanged on disk.
func Delete(ctx context.Context, path string, r route.Route, opts ...Option) (bool, error) {
	o := buildOptions(opts)

	c, err := codec.Infer(path, o.codec)
	if err != nil {
		return false, nil
	}

	data, err := fsio.ReadFile(path)
	if err != nil {
		return false, err
	}

	doc, err := decodeOn(ctx, o.exec, c, data)
	if err != nil {
		if codec.IsSyntaxError(err) {
			return false, nil
		}
		return false, err
	}

	updated, err := engine.Dissoc(doc, r, o.prune)
	if err != nil {
		return false, nil
	}

	if err := persist(ctx, o.exec, c, path, updated); err != nil {
		return false, err
	}

	if o.journal != nil {
		if err := record(ctx, o.journal, journal.OpDelete, path, r, nil, updated); err != nil {
			return true, err
		}
	}
	return true, nil
}

// decodeOn parses data on the configured executor.
func decodeOn(ctx context.Context, exec Executor, c codec.Codec, data []byte) (document.Value, error) {
	var (
		doc  document.Value
		derr error
	)
	if err := exec.Run(ctx, func() { doc, derr = c.Decode(data) }); err != nil {
		return nil, err
	}
	return doc, derr
}

// persist serializes doc on the configured executor and writes it atomically.
func persist(ctx context.Context, exec Executor, c codec.Codec, path string, doc document.Value) error {
	var (
		data []byte
		eerr error
	)
	if err := exec.Run(ctx, func() { data, eerr = c.Encode(doc) }); err != nil {
		return err
	}
	if eerr != nil {
		return eerr
	}
	return fsio.WriteFileAtomic(path, data)
}

func record(ctx context.Context, j *journal.Journal, op journal.Op, path string, r route.Route, value, updated document.Value) error {
	hash, err := document.ContentHash(updated)
	if err != nil {
		return fmt.Errorf("journal: %w", err)
	}

	ch := journal.Change{
		ID:      uuid.NewString(),
		Path:    path,
		Route:   r.String(),
		Op:      op,
		DocHash: hash,
	}
	if op == journal.OpSet {
		canonical, err := document.MarshalCanonical(value)
		if err != nil {
			return fmt.Errorf("journal: %w", err)
		}
		ch.Value = string(canonical)
	}

	if err := j.Record(ctx, ch); err != nil {
		return fmt.Errorf("journal: %w", err)
	}
	return nil
}
