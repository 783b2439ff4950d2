package cart

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"zwmart/models"
)

type fakeMirror struct {
	mu      sync.Mutex
	upserts []models.CartItem
	removed []string
	cleared int
	seed    []models.CartItem
	signal  chan struct{}
}

func newFakeMirror() *fakeMirror {
	return &fakeMirror{signal: make(chan struct{}, 16)}
}

func (f *fakeMirror) Upsert(_ context.Context, item models.CartItem) error {
	f.mu.Lock()
	f.upserts = append(f.upserts, item)
	f.mu.Unlock()
	f.signal <- struct{}{}
	return nil
}

func (f *fakeMirror) Remove(_ context.Context, _, productID string) error {
	f.mu.Lock()
	f.removed = append(f.removed, productID)
	f.mu.Unlock()
	f.signal <- struct{}{}
	return nil
}

func (f *fakeMirror) Clear(_ context.Context, _ string) error {
	f.mu.Lock()
	f.cleared++
	f.mu.Unlock()
	f.signal <- struct{}{}
	return nil
}

func (f *fakeMirror) Load(_ context.Context, _ string) ([]models.CartItem, error) {
	return f.seed, nil
}

func (f *fakeMirror) wait(t *testing.T) {
	t.Helper()
	select {
	case <-f.signal:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for mirror write")
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore("u1", NewSnapshot(t.TempDir(), "u1"), nil)
}

func TestAddItemCoalesces(t *testing.T) {
	s := newTestStore(t)

	first := s.AddItem(models.CartItem{ProductID: "p1", Name: "Day-old bread", Price: 25}, 1)
	second := s.AddItem(models.CartItem{ProductID: "p1", Name: "Day-old bread", Price: 25}, 1)

	items := s.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 row after duplicate add, got %d", len(items))
	}
	if items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", items[0].Quantity)
	}
	if first.ID != second.ID {
		t.Fatalf("coalesced add returned a different row: %s vs %s", first.ID, second.ID)
	}
}

func TestAddItemPlaceholder(t *testing.T) {
	s := newTestStore(t)

	got := s.AddItem(models.CartItem{}, 1)
	if got.ProductID == "" {
		t.Fatal("expected synthesized product identity")
	}
	if got.Name != "Unknown item" {
		t.Fatalf("expected placeholder name, got %q", got.Name)
	}
}

func TestAddItemQuantityFloor(t *testing.T) {
	s := newTestStore(t)

	got := s.AddItem(models.CartItem{ProductID: "p1", Name: "Jam", Price: 80}, 0)
	if got.Quantity != 1 {
		t.Fatalf("expected quantity coerced to 1, got %d", got.Quantity)
	}
}

func TestUpdateQuantityFloorRemoves(t *testing.T) {
	s := newTestStore(t)

	for _, q := range []int{0, -3} {
		it := s.AddItem(models.CartItem{ProductID: "p1", Name: "Jam", Price: 80}, 2)
		s.UpdateQuantity(it.ID, q)
		if len(s.Items()) != 0 {
			t.Fatalf("quantity %d should remove the item, cart has %d rows", q, len(s.Items()))
		}
	}
}

func TestRemoveItemAbsentIsNoop(t *testing.T) {
	s := newTestStore(t)
	s.AddItem(models.CartItem{ProductID: "p1", Name: "Jam", Price: 80}, 1)

	s.RemoveItem("no-such-id")
	if len(s.Items()) != 1 {
		t.Fatal("removing an absent id must not change the cart")
	}
}

func TestCountAndTotal(t *testing.T) {
	s := newTestStore(t)
	s.AddItem(models.CartItem{ProductID: "p1", Name: "Bread", Price: 25}, 2)
	s.AddItem(models.CartItem{ProductID: "p2", Name: "Milk", Price: 30.5}, 3)

	if got := s.Count(); got != 5 {
		t.Fatalf("Count: expected 5 units, got %d", got)
	}
	want := 25*2 + 30.5*3
	if got := s.Total(); got != want {
		t.Fatalf("Total: expected %v, got %v", want, got)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	snap := NewSnapshot(dir, "u1")

	s := NewStore("u1", snap, nil)
	s.AddItem(models.CartItem{ProductID: "p1", Name: "Bread", Price: 25}, 2)
	s.AddItem(models.CartItem{ProductID: "p2", Name: "Milk", Price: 30.5}, 1)
	before := s.Items()

	// Simulate a restart: a fresh store over the same snapshot file.
	reloaded := NewStore("u1", NewSnapshot(dir, "u1"), nil)
	after := reloaded.Items()

	if len(after) != len(before) {
		t.Fatalf("expected %d rows after reload, got %d", len(before), len(after))
	}
	for i := range before {
		if before[i].ID != after[i].ID ||
			before[i].Quantity != after[i].Quantity ||
			before[i].Price != after[i].Price {
			t.Fatalf("row %d changed across reload: %+v vs %+v", i, before[i], after[i])
		}
	}
}

func TestColdStartLoadsFromMirror(t *testing.T) {
	dir := t.TempDir()
	mirror := newFakeMirror()
	mirror.seed = []models.CartItem{
		{ID: "cit-1", ProductID: "p1", UserID: "u1", Name: "Bread", Price: 25, Quantity: 2},
	}

	s := NewStore("u1", NewSnapshot(dir, "u1"), mirror)

	items := s.Items()
	if len(items) != 1 || items[0].ProductID != "p1" {
		t.Fatalf("expected mirror contents on cold start, got %+v", items)
	}

	// The cold-start load must also seed the local snapshot: a second
	// store over the same directory, with no mirror, sees the same cart.
	reloaded := NewStore("u1", NewSnapshot(dir, "u1"), nil)
	if got := reloaded.Items(); len(got) != 1 || got[0].ID != "cit-1" {
		t.Fatalf("cold-start contents not persisted locally, got %+v", got)
	}
}

func TestLocalSnapshotWinsOverMirror(t *testing.T) {
	dir := t.TempDir()
	snap := NewSnapshot(dir, "u1")
	if err := snap.Save([]models.CartItem{
		{ID: "cit-local", ProductID: "p9", UserID: "u1", Name: "Local", Price: 10, Quantity: 1},
	}); err != nil {
		t.Fatal(err)
	}

	mirror := newFakeMirror()
	mirror.seed = []models.CartItem{
		{ID: "cit-remote", ProductID: "p1", UserID: "u1", Name: "Remote", Price: 25, Quantity: 2},
	}

	s := NewStore("u1", snap, mirror)
	items := s.Items()
	if len(items) != 1 || items[0].ID != "cit-local" {
		t.Fatalf("local snapshot must win over the mirror, got %+v", items)
	}
}

func TestMirrorWritesAreBestEffort(t *testing.T) {
	mirror := newFakeMirror()
	s := NewStore("u1", NewSnapshot(t.TempDir(), "u1"), mirror)

	it := s.AddItem(models.CartItem{ProductID: "p1", Name: "Bread", Price: 25}, 1)
	mirror.wait(t)

	mirror.mu.Lock()
	upserts := len(mirror.upserts)
	mirror.mu.Unlock()
	if upserts != 1 {
		t.Fatalf("expected 1 mirror upsert, got %d", upserts)
	}

	s.RemoveItem(it.ID)
	mirror.wait(t)

	mirror.mu.Lock()
	defer mirror.mu.Unlock()
	if len(mirror.removed) != 1 || mirror.removed[0] != "p1" {
		t.Fatalf("expected mirror remove for p1, got %v", mirror.removed)
	}
}

func TestSnapshotVersionMismatchDiscarded(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cart-u1.json")
	stale := `{"version":99,"items":[{"id":"cit-1","productId":"p1","quantity":1}]}`
	if err := os.WriteFile(path, []byte(stale), 0644); err != nil {
		t.Fatal(err)
	}

	items, ok, err := NewSnapshot(dir, "u1").Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok || items != nil {
		t.Fatalf("stale-version snapshot must be discarded, got items=%v ok=%v", items, ok)
	}
}

func TestItemsNeverNil(t *testing.T) {
	s := newTestStore(t)
	if items := s.Items(); items == nil {
		t.Fatal("Items must return an empty slice, not nil")
	}
}

func TestClearEmptiesCartAndMirror(t *testing.T) {
	dir := t.TempDir()
	mirror := newFakeMirror()
	s := NewStore("u1", NewSnapshot(dir, "u1"), mirror)

	s.AddItem(models.CartItem{ProductID: "p1", Name: "Milk", Price: 30}, 2)
	mirror.wait(t)

	s.Clear()
	mirror.wait(t)

	if len(s.Items()) != 0 || s.Count() != 0 {
		t.Fatalf("expected empty cart after clear, got %d items", len(s.Items()))
	}

	mirror.mu.Lock()
	cleared := mirror.cleared
	mirror.mu.Unlock()
	if cleared != 1 {
		t.Fatalf("expected 1 mirror clear, got %d", cleared)
	}

	// The empty snapshot must be rewritten: a fresh store over the same
	// directory stays empty even when the mirror still holds stale rows.
	mirror.seed = []models.CartItem{
		{ID: "cit-stale", ProductID: "p1", UserID: "u1", Name: "Milk", Price: 30, Quantity: 2},
	}
	reloaded := NewStore("u1", NewSnapshot(dir, "u1"), mirror)
	if got := reloaded.Items(); len(got) != 0 {
		t.Fatalf("cleared snapshot must win over mirror contents, got %+v", got)
	}
}
