// Package resource locates template images, fonts and data files by identifier.
//
// An identifier is a path-like string, conventionally written with a leading
// "/" (for example "/templates/certificate-template.png"). A Resolver tries an
// ordered list of strategies and returns the first hit. A missing resource is
// not an error: Resolve reports it as absent and the caller decides whether
// that is fatal.
package resource

import (
	"errors"
	"fmt"
	"io"
)

// ErrNotFound is returned by callers that treat an absent resource as fatal.
var ErrNotFound = errors.New("resource not found")

// Strategy looks up a resource in one place.
// An absent resource yields (nil, false, nil).
type Strategy interface {
	Open(id string) (io.ReadCloser, bool, error)
}

// Resolver tries strategies in order.
type Resolver struct {
	strategies []Strategy
}

// New creates a resolver trying the strategies in the given order.
func New(strategies ...Strategy) *Resolver {
	return &Resolver{strategies: strategies}
}

// Resolve returns a handle on the first strategy that has id.
// The caller must close the handle.
func (r *Resolver) Resolve(id string) (io.ReadCloser, bool, error) {
	for _, s := range r.strategies {
		rc, ok, err := s.Open(id)
		if err != nil {
			return nil, false, fmt.Errorf("failed to open %s: %w", id, err)
		}
		if ok {
			return rc, true, nil
		}
	}
	return nil, false, nil
}

// Open makes a Resolver usable as a Strategy of another Resolver.
func (r *Resolver) Open(id string) (io.ReadCloser, bool, error) {
	return r.Resolve(id)
}

// ReadAll resolves id and reads it fully, closing the handle on every path.
func (r *Resolver) ReadAll(id string) ([]byte, bool, error) {
	rc, ok, err := r.Resolve(id)
	if err != nil || !ok {
		return nil, ok, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", id, err)
	}
	return data, true, nil
}
