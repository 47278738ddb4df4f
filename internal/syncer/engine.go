package syncer

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/webmall/storesync/internal/domain"
	"github.com/webmall/storesync/internal/port"
	"go.uber.org/zap"
)

// Engine is the reconciling store shared by the cart and the wishlist. It
// owns the in-memory item list for the active identity, mirrors every change
// into that identity's local partition, and runs the load/merge procedure on
// identity transitions. The collection facades layer their mutation semantics
// and remote calls on top.
//
// Local state is authoritative for the session: remote calls run in the
// background and their failures are logged, never surfaced.
type Engine[T any] struct {
	collection   string
	kv           port.KeyValueStore
	remote       port.RemoteStore[T]
	mergeOnLogin bool
	log          *zap.Logger
	onChange     func([]T)

	mu       sync.Mutex
	identity domain.Identity
	items    []T
	loading  bool
	gen      uint64

	lastPartition string
	lastPayload   string

	bg sync.WaitGroup
}

func newEngine[T any](collection string, kv port.KeyValueStore, remote port.RemoteStore[T], mergeOnLogin bool, log *zap.Logger) *Engine[T] {
	return &Engine[T]{
		collection:   collection,
		kv:           kv,
		remote:       remote,
		mergeOnLogin: mergeOnLogin,
		log:          log.With(zap.String("collection", collection)),
	}
}

// OnChange registers a hook invoked with a snapshot of the list after every
// change, so a UI layer can re-render. Register before the first identity
// transition; the field is not synchronized afterwards.
func (e *Engine[T]) OnChange(fn func([]T)) {
	e.onChange = fn
}

// SetIdentity runs the reconciliation procedure for an identity transition.
// The loading flag is raised for its whole duration. A later transition
// supersedes an earlier in-flight one: the stale load's result is discarded
// when it finally completes instead of overwriting newer state.
func (e *Engine[T]) SetIdentity(ctx context.Context, id domain.Identity) {
	e.mu.Lock()
	e.gen++
	gen := e.gen
	e.loading = true
	e.identity = id
	e.mu.Unlock()

	items := e.reconcile(ctx, id)

	e.mu.Lock()
	if gen != e.gen {
		e.mu.Unlock()
		return
	}
	e.items = items
	e.loading = false
	changed := e.persistLocked(ctx)
	snapshot := e.snapshotLocked()
	e.mu.Unlock()

	if changed && e.onChange != nil {
		e.onChange(snapshot)
	}
}

// reconcile picks the source of truth for the new identity.
//
// Authenticated: the remote list wins; a non-empty guest partition is first
// sent to the server for merging (cart only) and then cleared so it cannot
// resurface in a later guest session. If the remote is unreachable the user's
// own partition carries the session, with one best-effort push scheduled.
//
// Guest (or unresolved identity): the guest partition only, remote untouched.
func (e *Engine[T]) reconcile(ctx context.Context, id domain.Identity) []T {
	if !id.Authenticated() {
		return e.loadPartition(ctx, id.PartitionKey(e.collection))
	}

	userKey := id.PartitionKey(e.collection)
	guestKey := domain.Guest().PartitionKey(e.collection)

	remoteItems, err := e.remote.Fetch(ctx)
	if err != nil {
		e.log.Info("remote fetch failed, falling back to local partition", zap.Error(err))

		local := e.loadPartition(ctx, userKey)
		if len(local) > 0 {
			e.Background(func(ctx context.Context) error {
				return e.remote.Push(ctx, local)
			})
		}
		return local
	}

	if e.mergeOnLogin {
		if guest := e.loadPartition(ctx, guestKey); len(guest) > 0 {
			merged, err := e.remote.MergeInto(ctx, guest)
			if err != nil {
				e.log.Warn("guest merge failed, keeping server copy", zap.Error(err))
				return remoteItems
			}

			// The guest items now belong to this user.
			if err := e.kv.Delete(ctx, guestKey); err != nil {
				e.log.Warn("clearing guest partition failed", zap.Error(err))
			}
			return merged
		}
	}

	return remoteItems
}

// Loading reports whether a reconciliation is still in flight; the UI gates
// rendering on it so a stale or empty list is never shown mid-transition.
func (e *Engine[T]) Loading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loading
}

// Items returns a snapshot of the in-memory list.
func (e *Engine[T]) Items() []T {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Update applies fn to a copy of the current list, adopts the result, and
// mirrors it into the active partition. It is synchronous: callers observe
// the new state as soon as it returns, regardless of any remote outcome.
func (e *Engine[T]) Update(ctx context.Context, fn func(items []T) []T) {
	e.mu.Lock()
	e.items = fn(e.snapshotLocked())
	changed := e.persistLocked(ctx)
	snapshot := e.snapshotLocked()
	e.mu.Unlock()

	if changed && e.onChange != nil {
		e.onChange(snapshot)
	}
}

// Background runs a fire-and-forget remote call for the active identity.
// Guests never talk to the remote store. Failures are logged only; there is
// no retry and no user-visible error.
func (e *Engine[T]) Background(fn func(ctx context.Context) error) {
	e.mu.Lock()
	authenticated := e.identity.Authenticated()
	e.mu.Unlock()

	if !authenticated {
		return
	}

	e.bg.Add(1)
	go func() {
		defer e.bg.Done()

		if err := fn(context.Background()); err != nil {
			e.log.Warn("background sync failed", zap.Error(err))
		}
	}()
}

// Wait blocks until all fire-and-forget remote calls have finished.
func (e *Engine[T]) Wait() {
	e.bg.Wait()
}

func (e *Engine[T]) snapshotLocked() []T {
	out := make([]T, len(e.items))
	copy(out, e.items)
	return out
}

func (e *Engine[T]) loadPartition(ctx context.Context, key string) []T {
	raw, ok, err := e.kv.Get(ctx, key)
	if err != nil {
		e.log.Warn("reading local partition failed", zap.String("key", key), zap.Error(err))
		return nil
	}
	if !ok || raw == "" {
		return nil
	}

	// Corrupt content degrades to an empty list rather than failing the session.
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		e.log.Warn("local partition is corrupt, treating as empty", zap.String("key", key), zap.Error(err))
		return nil
	}

	return items
}

// persistLocked mirrors the current list into the active partition. The
// write is skipped when neither the serialized list nor the partition changed
// since the last write. Reports whether the list content or partition moved.
func (e *Engine[T]) persistLocked(ctx context.Context) bool {
	payload, err := json.Marshal(e.items)
	if err != nil {
		e.log.Warn("serializing items failed", zap.Error(err))
		return false
	}

	key := e.identity.PartitionKey(e.collection)
	if key == e.lastPartition && string(payload) == e.lastPayload {
		return false
	}

	if err := e.kv.Set(ctx, key, string(payload)); err != nil {
		e.log.Warn("writing local partition failed", zap.String("key", key), zap.Error(err))
		return true
	}

	e.lastPartition = key
	e.lastPayload = string(payload)
	return true
}
