package cart

import (
	"context"
	"testing"
)

func newTestStore() *Store {
	return NewStore(NewInMemoryRepository())
}

func line(id int, title string, price int64) Line {
	return Line{ProductID: id, Title: title, Price: price, Image: "img"}
}

func TestAddItem_SameTupleAccumulates(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	ch := s.AddItem(ctx, 1, line(1, "X", 1000))
	if ch.Kind != ChangeAdded {
		t.Fatalf("expected ChangeAdded on first add, got %v", ch.Kind)
	}
	ch = s.AddItem(ctx, 1, line(1, "X", 1000))
	if ch.Kind != ChangeQuantityIncremented || ch.Quantity != 2 {
		t.Fatalf("expected quantity increment to 2, got kind=%v qty=%d", ch.Kind, ch.Quantity)
	}

	items := s.Items(ctx, 1)
	if len(items) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(items))
	}
	if items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", items[0].Quantity)
	}
	if total := s.Total(ctx, 1); total != 2000 {
		t.Fatalf("expected total 2000, got %d", total)
	}
}

func TestAddItem_VariantsAreDistinctLines(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	red := line(1, "Shirt", 500)
	red.Color = "Red"
	blue := line(1, "Shirt", 500)
	blue.Color = "Blue"

	s.AddItem(ctx, 1, red)
	s.AddItem(ctx, 1, blue)

	if got := len(s.Items(ctx, 1)); got != 2 {
		t.Fatalf("expected 2 distinct lines, got %d", got)
	}
	if _, ok := s.GetItem(ctx, 1, 1, Variant{Color: "Red"}); !ok {
		t.Fatalf("expected red variant present")
	}
	if _, ok := s.GetItem(ctx, 1, 1, Variant{Color: "Green"}); ok {
		t.Fatalf("did not expect green variant")
	}
}

func TestUpdateQuantity_ZeroRemoves(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	s.AddItem(ctx, 1, line(1, "X", 100))
	ch := s.UpdateQuantity(ctx, 1, 1, 0, Variant{})
	if ch.Kind != ChangeRemoved {
		t.Fatalf("expected ChangeRemoved, got %v", ch.Kind)
	}
	if got := len(s.Items(ctx, 1)); got != 0 {
		t.Fatalf("expected empty cart, got %d entries", got)
	}
}

func TestUpdateQuantity_SetAndNoOp(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	s.AddItem(ctx, 1, line(1, "X", 100))
	s.UpdateQuantity(ctx, 1, 1, 3, Variant{})

	// 3 -> 1 changes the quantity and reports it
	ch := s.UpdateQuantity(ctx, 1, 1, 1, Variant{})
	if ch.Kind != ChangeQuantityUpdated || ch.Quantity != 1 {
		t.Fatalf("expected update to 1, got kind=%v qty=%d", ch.Kind, ch.Quantity)
	}

	// setting the same quantity again is silent
	ch = s.UpdateQuantity(ctx, 1, 1, 1, Variant{})
	if ch.Kind != ChangeNone {
		t.Fatalf("expected ChangeNone for unchanged quantity, got %v", ch.Kind)
	}

	// absent entries are a no-op
	ch = s.UpdateQuantity(ctx, 1, 99, 5, Variant{})
	if ch.Kind != ChangeNone {
		t.Fatalf("expected ChangeNone for absent entry, got %v", ch.Kind)
	}
}

func TestRemoveItem_AbsentIsNoOp(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	s.AddItem(ctx, 1, line(1, "X", 100))
	ch := s.RemoveItem(ctx, 1, 42, Variant{})
	if ch.Kind != ChangeNone {
		t.Fatalf("expected ChangeNone, got %v", ch.Kind)
	}
	if got := len(s.Items(ctx, 1)); got != 1 {
		t.Fatalf("store changed by no-op removal: %d entries", got)
	}
}

func TestClear(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	// clearing an empty cart never notifies
	if ch := s.Clear(ctx, 1, false); ch.Kind != ChangeNone {
		t.Fatalf("expected ChangeNone on empty clear, got %v", ch.Kind)
	}

	s.AddItem(ctx, 1, line(1, "X", 100))
	if ch := s.Clear(ctx, 1, true); ch.Kind != ChangeNone {
		t.Fatalf("expected silent clear to report ChangeNone, got %v", ch.Kind)
	}

	s.AddItem(ctx, 1, line(1, "X", 100))
	if ch := s.Clear(ctx, 1, false); ch.Kind != ChangeCleared {
		t.Fatalf("expected ChangeCleared, got %v", ch.Kind)
	}
	if total := s.Total(ctx, 1); total != 0 {
		t.Fatalf("expected total 0 after clear, got %d", total)
	}
}

func TestTotalAndItemCount(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	if s.Total(ctx, 1) != 0 || s.ItemCount(ctx, 1) != 0 {
		t.Fatalf("expected empty cart to report 0")
	}

	s.AddItem(ctx, 1, line(1, "A", 1000))
	s.AddItem(ctx, 1, line(1, "A", 1000))
	s.AddItem(ctx, 1, line(2, "B", 250))

	if total := s.Total(ctx, 1); total != 2250 {
		t.Fatalf("expected total 2250, got %d", total)
	}
	if count := s.ItemCount(ctx, 1); count != 3 {
		t.Fatalf("expected item count 3, got %d", count)
	}
}

func TestStore_WriteThroughAndReload(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	s := NewStore(repo)
	s.AddItem(ctx, 7, line(3, "C", 300))
	s.AddItem(ctx, 7, line(1, "A", 100))
	s.AddItem(ctx, 7, line(2, "B", 200))
	s.UpdateQuantity(ctx, 7, 1, 4, Variant{})

	// a fresh store over the same repository recovers the exact state,
	// insertion order included
	reloaded := NewStore(repo)
	items := reloaded.Items(ctx, 7)
	if len(items) != 3 {
		t.Fatalf("expected 3 entries after reload, got %d", len(items))
	}
	wantOrder := []int{3, 1, 2}
	for i, want := range wantOrder {
		if items[i].ProductID != want {
			t.Fatalf("order not preserved: position %d has product %d, want %d", i, items[i].ProductID, want)
		}
	}
	if items[1].Quantity != 4 {
		t.Fatalf("expected reloaded quantity 4, got %d", items[1].Quantity)
	}

	// carts are per user
	if got := len(reloaded.Items(ctx, 8)); got != 0 {
		t.Fatalf("expected user 8 cart to be empty, got %d entries", got)
	}
}
