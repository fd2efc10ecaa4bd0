package database

import (
	"strings"
	"time"
)

const (
	retryAttempts = 5
	retryDelay    = 200 * time.Millisecond
)

// IsTransient reports whether err looks like storage contention that can be
// expected to resolve on retry: a held SQLite lock, or a PostgreSQL
// serialization failure or deadlock.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "could not serialize access") ||
		strings.Contains(msg, "deadlock detected")
}

// WithRetry runs fn, retrying transient contention errors a fixed number of
// times with a fixed delay. Non-transient errors and the final transient
// error are returned as-is.
func WithRetry(fn func() error) error {
	var err error
	for attempt := 0; attempt < retryAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if !IsTransient(err) {
			return err
		}
		time.Sleep(retryDelay)
	}
	return err
}
