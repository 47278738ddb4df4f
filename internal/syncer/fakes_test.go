package syncer_test

import (
	"context"
	"sync"

	"github.com/webmall/storesync/internal/domain"
	"github.com/webmall/storesync/internal/port"
	"github.com/webmall/storesync/internal/repository"
)

type fakeCartRemote struct {
	mu           sync.Mutex
	items        []domain.CartItem
	fetchErr     error
	mergeErr     error
	fetchGate    chan struct{} // when set, Fetch blocks until the gate closes
	fetchEntered chan struct{} // when set, Fetch signals before blocking

	mutations []port.CartMutation
	pushes    [][]domain.CartItem
	clears    int
}

func (f *fakeCartRemote) Fetch(_ context.Context) ([]domain.CartItem, error) {
	f.mu.Lock()
	gate, entered := f.fetchGate, f.fetchEntered
	f.mu.Unlock()

	if gate != nil {
		if entered != nil {
			entered <- struct{}{}
		}
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return append([]domain.CartItem(nil), f.items...), nil
}

// MergeInto mirrors the server-side rule: quantities add for the same
// product and variant, other lines are unioned.
func (f *fakeCartRemote) MergeInto(_ context.Context, items []domain.CartItem) ([]domain.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mergeErr != nil {
		return nil, f.mergeErr
	}

outer:
	for _, in := range items {
		for i := range f.items {
			if f.items[i].LineKey() == in.LineKey() {
				f.items[i].Quantity += in.Quantity
				continue outer
			}
		}
		f.items = append(f.items, in)
	}

	return append([]domain.CartItem(nil), f.items...), nil
}

func (f *fakeCartRemote) Push(_ context.Context, items []domain.CartItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushes = append(f.pushes, append([]domain.CartItem(nil), items...))
	return nil
}

func (f *fakeCartRemote) Apply(_ context.Context, m port.CartMutation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mutations = append(f.mutations, m)
	return nil
}

func (f *fakeCartRemote) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clears++
	f.items = nil
	return nil
}

func (f *fakeCartRemote) recordedMutations() []port.CartMutation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]port.CartMutation(nil), f.mutations...)
}

func (f *fakeCartRemote) recordedPushes() [][]domain.CartItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]domain.CartItem(nil), f.pushes...)
}

func (f *fakeCartRemote) clearCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.clears
}

type fakeWishlistRemote struct {
	mu       sync.Mutex
	items    []domain.WishlistItem
	fetchErr error

	adds    []string
	removes []string
	pushes  [][]domain.WishlistItem
	clears  int
}

func (f *fakeWishlistRemote) Fetch(_ context.Context) ([]domain.WishlistItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return append([]domain.WishlistItem(nil), f.items...), nil
}

func (f *fakeWishlistRemote) MergeInto(_ context.Context, _ []domain.WishlistItem) ([]domain.WishlistItem, error) {
	panic("wishlist does not merge on login")
}

func (f *fakeWishlistRemote) Push(_ context.Context, items []domain.WishlistItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushes = append(f.pushes, append([]domain.WishlistItem(nil), items...))
	return nil
}

func (f *fakeWishlistRemote) Add(_ context.Context, productID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.adds = append(f.adds, productID)
	return nil
}

func (f *fakeWishlistRemote) Remove(_ context.Context, productID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removes = append(f.removes, productID)
	return nil
}

func (f *fakeWishlistRemote) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clears++
	return nil
}

func (f *fakeWishlistRemote) recordedAdds() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.adds...)
}

// countingKV counts writes so tests can assert redundant persists are skipped.
type countingKV struct {
	*repository.MemoryKV
	mu   sync.Mutex
	sets int
}

func newCountingKV() *countingKV {
	return &countingKV{MemoryKV: repository.NewMemoryKV()}
}

func (s *countingKV) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	s.sets++
	s.mu.Unlock()
	return s.MemoryKV.Set(ctx, key, value)
}

func (s *countingKV) setCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sets
}
