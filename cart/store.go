package cart

import (
	"context"
	"log"
	"sync"
	"time"

	"zwmart/models"
	"zwmart/utils"
)

// Store holds the authoritative cart for one user session. All reads and
// writes go through the in-memory collection; every mutation re-persists the
// full snapshot locally and schedules a best-effort remote mirror write.
// Mirror failures are logged and never surfaced to the caller, and never roll
// back local state: local state is the source of truth, the mirror is a
// convenience cache for cross-device continuity.
type Store struct {
	mu     sync.Mutex
	userID string
	items  []models.CartItem
	local  *Snapshot
	mirror Mirror
}

// NewStore builds a store for userID. It loads the local snapshot when one
// exists; on a true cold start (no local snapshot) it falls back to the
// remote mirror — the only point where the mirror is read authoritatively.
func NewStore(userID string, local *Snapshot, mirror Mirror) *Store {
	s := &Store{userID: userID, local: local, mirror: mirror}

	if local != nil {
		items, ok, err := local.Load()
		if err != nil {
			log.Println("cart: snapshot load error:", err)
		}
		if ok {
			s.items = items
			return s
		}
	}

	if mirror != nil && userID != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		items, err := mirror.Load(ctx, userID)
		if err != nil {
			log.Println("cart: mirror cold-start load error:", err)
		} else if len(items) > 0 {
			s.mu.Lock()
			s.items = items
			s.persistLocal()
			s.mu.Unlock()
		}
	}

	return s
}

// AddItem coalesces by product identity: adding an already-present product
// increments its quantity instead of duplicating a row. An item with no
// product identity gets a synthesized placeholder one. Never fails.
func (s *Store) AddItem(item models.CartItem, qty int) models.CartItem {
	if qty < 1 {
		qty = 1
	}

	s.mu.Lock()
	if item.ProductID == "" {
		item.ProductID = utils.NewID("unk")
		if item.Name == "" {
			item.Name = "Unknown item"
		}
	}
	if item.Price < 0 {
		item.Price = 0
	}

	var stored models.CartItem
	found := false
	for i := range s.items {
		if s.items[i].ProductID == item.ProductID {
			s.items[i].Quantity += qty
			stored = s.items[i]
			found = true
			break
		}
	}
	if !found {
		item.ID = utils.NewID("cit")
		item.UserID = s.userID
		item.Quantity = qty
		item.AddedAt = time.Now()
		s.items = append(s.items, item)
		stored = item
	}

	s.persistLocal()
	s.mu.Unlock()

	s.mirrorUpsert(stored)
	return stored
}

// RemoveItem deletes the entry. Absent ids are a no-op, not an error.
func (s *Store) RemoveItem(itemID string) {
	s.mu.Lock()
	var removed *models.CartItem
	for i := range s.items {
		if s.items[i].ID == itemID {
			it := s.items[i]
			removed = &it
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	if removed != nil {
		s.persistLocal()
	}
	s.mu.Unlock()

	if removed != nil {
		s.mirrorRemove(removed.ProductID)
	}
}

// UpdateQuantity replaces the quantity in place; anything below 1 removes
// the item, so the cart never holds a zero or negative quantity entry.
func (s *Store) UpdateQuantity(itemID string, quantity int) {
	if quantity < 1 {
		s.RemoveItem(itemID)
		return
	}

	s.mu.Lock()
	var updated *models.CartItem
	for i := range s.items {
		if s.items[i].ID == itemID {
			s.items[i].Quantity = quantity
			it := s.items[i]
			updated = &it
			break
		}
	}
	if updated != nil {
		s.persistLocal()
	}
	s.mu.Unlock()

	if updated != nil {
		s.mirrorUpsert(*updated)
	}
}

// Clear empties the collection.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.persistLocal()
	s.mu.Unlock()

	s.mirrorClear()
}

// Items returns a copy of the current cart contents.
func (s *Store) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Count is the sum of all quantities, not the number of rows: badge counts
// reflect total units.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, it := range s.items {
		total += it.Quantity
	}
	return total
}

// Total is the tax-free sum of price*quantity across all entries.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0.0
	for _, it := range s.items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// persistLocal writes the full collection to the local snapshot.
// Caller must hold s.mu.
func (s *Store) persistLocal() {
	if s.local == nil {
		return
	}
	if err := s.local.Save(s.items); err != nil {
		log.Println("cart: snapshot save error:", err)
	}
}

func (s *Store) mirrorUpsert(item models.CartItem) {
	if s.mirror == nil || s.userID == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.mirror.Upsert(ctx, item); err != nil {
			log.Println("cart: mirror upsert error:", err)
		}
	}()
}

func (s *Store) mirrorRemove(productID string) {
	if s.mirror == nil || s.userID == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.mirror.Remove(ctx, s.userID, productID); err != nil {
			log.Println("cart: mirror remove error:", err)
		}
	}()
}

func (s *Store) mirrorClear() {
	if s.mirror == nil || s.userID == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.mirror.Clear(ctx, s.userID); err != nil {
			log.Println("cart: mirror clear error:", err)
		}
	}()
}
