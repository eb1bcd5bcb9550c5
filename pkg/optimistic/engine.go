package optimistic

import (
	"github.com/redvista/social-cli/pkg/cache"
	apperrors "github.com/redvista/social-cli/pkg/errors"
	"github.com/redvista/social-cli/pkg/logger"
)

// Mutation is one optimistic write: a speculative patch over a fixed
// set of cache keys, a remote call, and an optional reconcile step for
// the server's authoritative response.
type Mutation struct {
	// Name labels the action in errors and logs, e.g. "like post"
	Name string

	// Keys is every cache key the mutation may touch. The snapshot,
	// the speculative apply, and a rollback all cover exactly this set.
	Keys []string

	// Apply computes the speculative value for one key. It receives
	// the prior value (nil when absent) and must not mutate it in
	// place. Returning prior unchanged leaves the key as it was.
	Apply func(key string, prior interface{}) interface{}

	// Action performs the remote call and returns the server response
	Action func() (interface{}, error)

	// Reconcile overwrites cached state with the authoritative
	// response. Optional; when nil the speculative values stand until
	// invalidation forces a refetch.
	Reconcile func(store *cache.Store, response interface{})
}

type snapshot struct {
	value   interface{}
	present bool
}

// Engine runs optimistic mutations against a cache store. On remote
// failure every touched key is restored to its captured snapshot,
// including re-deleting keys that were absent. Touched keys are
// invalidated on settle either way, so readers refetch.
//
// Two overlapping mutations in flight are not serialized against each
// other; a rollback restores the snapshot its own mutation captured.
type Engine struct {
	store *cache.Store
}

// NewEngine creates an engine writing into store
func NewEngine(store *cache.Store) *Engine {
	return &Engine{store: store}
}

// Run executes one mutation to completion
func (e *Engine) Run(m Mutation) error {
	snapshots := make(map[string]snapshot, len(m.Keys))
	for _, key := range m.Keys {
		value, present := e.store.Read(key)
		snapshots[key] = snapshot{value: value, present: present}
	}

	for _, key := range m.Keys {
		k := key
		e.store.Write(k, func(prior interface{}) interface{} {
			return m.Apply(k, prior)
		})
	}

	response, err := m.Action()
	if err != nil {
		logger.Debug("Mutation failed, rolling back", "action", m.Name, "error", err)
		e.rollback(m.Keys, snapshots)
		e.invalidate(m.Keys)
		return apperrors.MutationError(m.Name, err)
	}

	if m.Reconcile != nil {
		m.Reconcile(e.store, response)
	}
	e.invalidate(m.Keys)
	return nil
}

// rollback restores every key to its snapshot verbatim
func (e *Engine) rollback(keys []string, snapshots map[string]snapshot) {
	for _, key := range keys {
		snap := snapshots[key]
		if !snap.present {
			e.store.Delete(key)
			continue
		}
		e.store.Write(key, func(interface{}) interface{} {
			return snap.value
		})
	}
}

func (e *Engine) invalidate(keys []string) {
	for _, key := range keys {
		e.store.Invalidate(key)
	}
}
