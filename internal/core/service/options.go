package service

import "github.com/google/uuid"

// Observer receives the outcome of successful mutations and integrity
// conflicts. The metrics package provides the production implementation.
type Observer interface {
	Created(entity string)
	// Deleted reports a removed record and how many dependents went with it.
	Deleted(entity string, dependents int64)
	Conflict(entity, reason string)
}

type nopObserver struct{}

func (nopObserver) Created(string)          {}
func (nopObserver) Deleted(string, int64)   {}
func (nopObserver) Conflict(string, string) {}

type options struct {
	observer Observer
	newID    func() uuid.UUID
}

// Option customises an entity service.
type Option func(*options)

func WithObserver(o Observer) Option {
	return func(opts *options) {
		if o != nil {
			opts.observer = o
		}
	}
}

// WithIDGenerator overrides identifier generation (uuid.New by default).
func WithIDGenerator(fn func() uuid.UUID) Option {
	return func(opts *options) {
		if fn != nil {
			opts.newID = fn
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{observer: nopObserver{}, newID: uuid.New}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
