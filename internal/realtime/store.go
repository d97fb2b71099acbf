// Package realtime abstracts the realtime key-value store that holds partner
// presence, active orders, route cache entries and user locations. Every path
// is a slash-separated node; Patch performs a partial-field merge at one node,
// which is the only write primitive services use for mutable records.
package realtime

import (
	"context"
	"errors"
)

// ErrUnavailable is returned by every operation of a store that never became
// ready (missing credentials or endpoint). Services translate it into the
// neutral "unavailable" result instead of failing the caller.
var ErrUnavailable = errors.New("realtime store unavailable")

// Store is the capability handed to services by the process entry point.
type Store interface {
	// Ready reports whether the store can serve operations.
	Ready() bool
	// Get decodes the node at path into v. A missing node leaves v untouched.
	Get(ctx context.Context, path string, v any) error
	// Set replaces the node at path wholesale.
	Set(ctx context.Context, path string, v any) error
	// Patch merges the given fields into the node at path, leaving all other
	// fields of the node intact. A single Patch call is atomic at the store.
	Patch(ctx context.Context, path string, fields map[string]any) error
	// Delete removes the node at path. Deleting a missing node is not an error.
	Delete(ctx context.Context, path string) error
}

// Unavailable is the degraded store used when configuration is absent.
type Unavailable struct{}

func (Unavailable) Ready() bool { return false }

func (Unavailable) Get(context.Context, string, any) error { return ErrUnavailable }

func (Unavailable) Set(context.Context, string, any) error { return ErrUnavailable }

func (Unavailable) Patch(context.Context, string, map[string]any) error { return ErrUnavailable }

func (Unavailable) Delete(context.Context, string) error { return ErrUnavailable }
