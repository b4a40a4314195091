package couchbase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/couchbase/gocb/v2"
	"github.com/rs/zerolog/log"
)

const (
	lockDocumentID = "db_lock"
	lockTTL        = time.Hour
)

// ErrLockHeld is returned by Lock when another process already holds the lock
var ErrLockHeld = errors.New("database is already locked")

type lockDocument struct {
	Locked    bool      `json:"locked"`
	LockedAt  time.Time `json:"lockedAt"`
	LockedBy  string    `json:"lockedBy"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// DatabaseLocker keeps bulk imports from running concurrently. The lock is a
// document in the bucket's default collection that expires on its own if the
// holder dies. It does not gate ordinary reads or writes.
type DatabaseLocker struct {
	bucket *gocb.Bucket

	mu       sync.RWMutex
	holding  bool
	lockedBy string
}

// NewDatabaseLocker creates a new database locker
func NewDatabaseLocker(bucket *gocb.Bucket) *DatabaseLocker {
	return &DatabaseLocker{bucket: bucket}
}

// Lock takes the lock for owner. It fails with ErrLockHeld if any lock document exists.
func (l *DatabaseLocker) Lock(ctx context.Context, owner string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.holding {
		return fmt.Errorf("lock already held by %s: %w", l.lockedBy, ErrLockHeld)
	}

	now := time.Now().UTC()
	doc := lockDocument{
		Locked:    true,
		LockedAt:  now,
		LockedBy:  owner,
		ExpiresAt: now.Add(lockTTL),
	}

	col := l.bucket.DefaultCollection()
	_, err := col.Insert(lockDocumentID, doc, &gocb.InsertOptions{
		Expiry:  lockTTL,
		Context: ctx,
	})
	if err != nil {
		if errors.Is(err, gocb.ErrDocumentExists) {
			return ErrLockHeld
		}
		return fmt.Errorf("failed to create lock document: %w", err)
	}

	l.holding = true
	l.lockedBy = owner
	log.Info().Str("owner", owner).Msg("Database locked successfully")
	return nil
}

// Unlock releases a lock taken by Lock
func (l *DatabaseLocker) Unlock(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.holding {
		return fmt.Errorf("database is not locked by this process")
	}

	col := l.bucket.DefaultCollection()
	_, err := col.Remove(lockDocumentID, &gocb.RemoveOptions{Context: ctx})
	if err != nil && !errors.Is(err, gocb.ErrDocumentNotFound) {
		return fmt.Errorf("failed to remove lock document: %w", err)
	}

	l.holding = false
	log.Info().Str("owner", l.lockedBy).Msg("Database unlocked successfully")
	l.lockedBy = ""
	return nil
}

// IsLocked reports whether this process holds the lock
func (l *DatabaseLocker) IsLocked() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.holding
}
