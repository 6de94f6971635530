package store

import (
	"time"

	"eltranslit/internal/platform/logger"
)

// Option mutates Store during Open
type Option func(*Store) error

// WithLogger sets the logger used by subclients
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

// WithSleep replaces the backoff sleep used while waiting for postgres
func WithSleep(fn func(time.Duration)) Option {
	return func(s *Store) error {
		if fn != nil {
			s.sleep = fn
		}
		return nil
	}
}
