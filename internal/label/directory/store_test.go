package directory

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemStore_LookupAndUpsert(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemStore()

	if _, err := store.Lookup(ctx, "Alice Chen"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Lookup() on empty store error = %v, want ErrNotFound", err)
	}

	if err := store.Upsert(ctx, Person{Name: "Alice Chen", Email: "alice@example.com"}); err != nil {
		t.Fatalf("Upsert() unexpected error: %v", err)
	}

	p, err := store.Lookup(ctx, "alice chen")
	if err != nil {
		t.Fatalf("Lookup() unexpected error: %v", err)
	}
	if p.Name != "Alice Chen" {
		t.Errorf("Name = %q, want 'Alice Chen'", p.Name)
	}
	if p.Email != "alice@example.com" {
		t.Errorf("Email = %q, want 'alice@example.com'", p.Email)
	}
	if p.FirstSeen.IsZero() || p.LastSeen.IsZero() {
		t.Error("FirstSeen/LastSeen should be set on insert")
	}
}

func TestMemStore_UpsertKeepsExistingFields(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemStore()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	if err := store.Upsert(ctx, Person{Name: "Bob Park", Email: "bob@example.com", Role: "pm"}); err != nil {
		t.Fatalf("Upsert() unexpected error: %v", err)
	}

	now = now.Add(time.Hour)
	if err := store.Upsert(ctx, Person{Name: "bob park", Email: "other@example.com"}); err != nil {
		t.Fatalf("Upsert() unexpected error: %v", err)
	}

	p, err := store.Lookup(ctx, "Bob Park")
	if err != nil {
		t.Fatalf("Lookup() unexpected error: %v", err)
	}
	if p.Email != "bob@example.com" {
		t.Errorf("Email = %q, existing value should not be overwritten", p.Email)
	}
	if p.Role != "pm" {
		t.Errorf("Role = %q, want 'pm'", p.Role)
	}
	if !p.LastSeen.Equal(now) {
		t.Errorf("LastSeen = %v, want refreshed to %v", p.LastSeen, now)
	}
	if p.LastSeen.Sub(p.FirstSeen) != time.Hour {
		t.Errorf("FirstSeen should stay at insert time, got delta %v", p.LastSeen.Sub(p.FirstSeen))
	}
}

func TestMemStore_UpsertFillsEmptyFields(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemStore(Person{Name: "Carol Díaz"})

	if err := store.Upsert(ctx, Person{Name: "Carol Díaz", Email: "carol@example.com", Role: "designer"}); err != nil {
		t.Fatalf("Upsert() unexpected error: %v", err)
	}

	p, err := store.Lookup(ctx, "Carol Díaz")
	if err != nil {
		t.Fatalf("Lookup() unexpected error: %v", err)
	}
	if p.Email != "carol@example.com" {
		t.Errorf("Email = %q, want filled in", p.Email)
	}
	if p.Role != "designer" {
		t.Errorf("Role = %q, want filled in", p.Role)
	}
}

func TestMemStore_UpsertEmptyName(t *testing.T) {
	t.Parallel()

	store := NewMemStore()
	if err := store.Upsert(context.Background(), Person{Name: "  "}); err == nil {
		t.Fatal("Upsert() expected error for empty name")
	}
}

func TestMemStore_ListSorted(t *testing.T) {
	t.Parallel()

	store := NewMemStore(
		Person{Name: "Zoe Wright"},
		Person{Name: "Alice Chen"},
		Person{Name: "Bob Park"},
	)

	people, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(people) != 3 {
		t.Fatalf("List() returned %d people, want 3", len(people))
	}
	want := []string{"Alice Chen", "Bob Park", "Zoe Wright"}
	for i, name := range want {
		if people[i].Name != name {
			t.Errorf("people[%d].Name = %q, want %q", i, people[i].Name, name)
		}
	}
}
