package catalog

import "sync/atomic"

// Store holds the loaded collection. It is filled at most once; until then it
// reports an empty collection so the table renders empty while loading.
type Store struct {
	products atomic.Pointer[Collection]
}

// NewStore returns an empty, unfilled store.
func NewStore() *Store {
	return &Store{}
}

// Fill publishes products. Only the first call has an effect; it returns
// false when the store was already filled.
func (s *Store) Fill(products Collection) bool {
	if products == nil {
		products = Collection{}
	}
	return s.products.CompareAndSwap(nil, &products)
}

// Products returns the loaded collection, or an empty one before Fill.
// Callers must not modify the returned slice.
func (s *Store) Products() Collection {
	if p := s.products.Load(); p != nil {
		return *p
	}
	return Collection{}
}

// Loaded reports whether Fill has been called.
func (s *Store) Loaded() bool {
	return s.products.Load() != nil
}
