package staging

import (
	"hash/fnv"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/remedian-lab/remedian/pkg/domain/model"
)

// Sentinel errors for store access
var (
	// ErrNotFound is returned when the action ID is absent or belongs to a
	// different session. The two cases are deliberately indistinguishable so
	// that pending actions cannot be enumerated across sessions.
	ErrNotFound = goerr.New("pending action not found")

	// ErrExpired is returned when the action's TTL has passed. The entry is
	// removed as a side effect.
	ErrExpired = goerr.New("pending action expired")

	// ErrDuplicateID is returned when Put observes an action ID collision.
	// With UUID action IDs this is structurally unreachable.
	ErrDuplicateID = goerr.New("duplicate action ID")
)

// numShards is the number of hash partitions of the store. Staging and
// resolving unrelated actions land on different shards and never contend.
const numShards = 16

type shard struct {
	mu      sync.RWMutex
	actions map[model.ActionID]*model.PendingAction
}

// Store is a sharded, concurrent, TTL-indexed holder of staged actions keyed
// by action ID. Entries expire lazily: an action past its TTL is logically
// gone even before any call observes it, and is removed on first access via
// TakeIfOwned or Remove. No background sweep is required for correctness.
type Store struct {
	shards [numShards]*shard
	now    func() time.Time
}

// Option is a functional option for Store configuration
type Option func(*Store)

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an empty pending action store
func NewStore(opts ...Option) *Store {
	s := &Store{
		now: time.Now,
	}
	for i := range s.shards {
		s.shards[i] = &shard{
			actions: make(map[model.ActionID]*model.PendingAction),
		}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) shardFor(id model.ActionID) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return s.shards[h.Sum32()%numShards]
}

// Put inserts a staged action. Action IDs are UUIDs, so a collision indicates
// a broken generator and is rejected rather than overwritten.
func (s *Store) Put(action *model.PendingAction) error {
	sh := s.shardFor(action.ActionID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if _, exists := sh.actions[action.ActionID]; exists {
		return goerr.Wrap(ErrDuplicateID, "action ID already staged",
			goerr.V("actionID", action.ActionID))
	}

	sh.actions[action.ActionID] = action
	return nil
}

// TakeIfOwned atomically removes and returns the action if it exists, belongs
// to the given session, and has not expired. An ownership mismatch is
// reported as ErrNotFound, identically to absence. An expired entry owned by
// the session is removed and reported as ErrExpired.
//
// Two concurrent calls for the same action ID yield exactly one success; the
// loser observes ErrNotFound.
func (s *Store) TakeIfOwned(actionID model.ActionID, sessionID string) (*model.PendingAction, error) {
	sh := s.shardFor(actionID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	action, exists := sh.actions[actionID]
	if !exists || !action.BelongsTo(sessionID) {
		return nil, goerr.Wrap(ErrNotFound, "no pending action for session",
			goerr.V("actionID", actionID))
	}

	delete(sh.actions, actionID)

	if action.Expired(s.now()) {
		return nil, goerr.Wrap(ErrExpired, "pending action timed out",
			goerr.V("actionID", actionID),
			goerr.V("expiredAt", action.ExpiresAt))
	}

	return action, nil
}

// Remove deletes the action on behalf of a cancel. Ownership and expiry rules
// are identical to TakeIfOwned.
func (s *Store) Remove(actionID model.ActionID, sessionID string) error {
	_, err := s.TakeIfOwned(actionID, sessionID)
	return err
}

// ListBySession returns the non-expired actions staged by the given session,
// newest first. Expired entries are skipped but not removed; only TakeIfOwned
// and Remove materialize expiry. The listing must not be used to authorize
// resolution.
func (s *Store) ListBySession(sessionID string) []*model.PendingAction {
	now := s.now()
	var result []*model.PendingAction

	for _, sh := range s.shards {
		sh.mu.RLock()
		for _, action := range sh.actions {
			if action.BelongsTo(sessionID) && !action.Expired(now) {
				result = append(result, action)
			}
		}
		sh.mu.RUnlock()
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

// CountBySession returns the number of non-expired actions staged by the
// given session. Used to enforce the per-session cap before Put.
func (s *Store) CountBySession(sessionID string) int {
	now := s.now()
	count := 0

	for _, sh := range s.shards {
		sh.mu.RLock()
		for _, action := range sh.actions {
			if action.BelongsTo(sessionID) && !action.Expired(now) {
				count++
			}
		}
		sh.mu.RUnlock()
	}

	return count
}

// Sweep removes all expired entries and returns the number removed. It is
// purely opportunistic; correctness never depends on it running.
func (s *Store) Sweep() int {
	now := s.now()
	removed := 0

	for _, sh := range s.shards {
		sh.mu.Lock()
		for id, action := range sh.actions {
			if action.Expired(now) {
				delete(sh.actions, id)
				removed++
			}
		}
		sh.mu.Unlock()
	}

	return removed
}
