// Package store keeps JSON-encoded values under string keys on a storage
// medium. Reads fall back to a default and writes are best effort: a broken
// medium costs persistence, never the session.
package store

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/charmbracelet/log"
)

var (
	// ErrQuotaExceeded is returned by a medium that is out of space.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	// ErrDisabled is returned by a medium that refuses all access.
	ErrDisabled = errors.New("storage disabled")
)

// Medium is the raw string key-value storage behind a Store.
type Medium interface {
	// GetItem returns ok=false when key is absent.
	GetItem(key string) (value string, ok bool, err error)
	// SetItem overwrites whatever is stored under key.
	SetItem(key, value string) error
	// RemoveItem deletes key. Removing an absent key is not an error.
	RemoveItem(key string) error
}

// Store loads and saves a single value of type T under one key.
type Store[T any] struct {
	medium   Medium
	key      string
	def      func() T
	validate func(raw []byte) error
	logger   *log.Logger
}

// Option configures a Store.
type Option func(*options)

type options struct {
	validate func(raw []byte) error
	logger   *log.Logger
}

// WithValidator checks the raw blob before decoding. A rejected blob is
// treated like a corrupt one.
func WithValidator(fn func(raw []byte) error) Option {
	return func(o *options) { o.validate = fn }
}

// WithLogger sets where recovered failures are reported (debug level).
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New binds a store to key on m. def produces the value Load returns when
// nothing usable is stored; it is called fresh each time so callers never
// share a default.
func New[T any](m Medium, key string, def func() T, opts ...Option) *Store[T] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	return &Store[T]{
		medium:   m,
		key:      key,
		def:      def,
		validate: o.validate,
		logger:   o.logger.With("key", key),
	}
}

// Key returns the storage key.
func (s *Store[T]) Key() string { return s.key }

// Load reads the stored value. Absent, unreadable, rejected, or
// undecodable data all yield the default.
func (s *Store[T]) Load() T {
	raw, ok, err := s.medium.GetItem(s.key)
	if err != nil {
		s.logger.Debug("load: read failed, using default", "err", err)
		return s.def()
	}
	if !ok {
		return s.def()
	}
	if s.validate != nil {
		if err := s.validate([]byte(raw)); err != nil {
			s.logger.Debug("load: stored value rejected, using default", "err", err)
			return s.def()
		}
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		s.logger.Debug("load: decode failed, using default", "err", err)
		return s.def()
	}
	return v
}

// Save overwrites the stored value with v. Failures are logged and dropped.
func (s *Store[T]) Save(v T) {
	b, err := json.Marshal(v)
	if err != nil {
		s.logger.Debug("save: encode failed", "err", err)
		return
	}
	if err := s.medium.SetItem(s.key, string(b)); err != nil {
		s.logger.Debug("save: write failed", "err", err)
	}
}

// Clear removes the stored value. Failures are logged and dropped.
func (s *Store[T]) Clear() {
	if err := s.medium.RemoveItem(s.key); err != nil {
		s.logger.Debug("clear: remove failed", "err", err)
	}
}
