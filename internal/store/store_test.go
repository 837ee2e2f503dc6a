package store

import (
	"testing"
	"time"
)

func TestPutGet(t *testing.T) {
	s := New()
	rec := s.Put("Trip", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), []byte(`{"title":"Trip"}`))

	if rec.ID == "" {
		t.Fatal("expected non-empty id")
	}
	got := s.Get(rec.ID)
	if got == nil || got.Title != "Trip" {
		t.Fatalf("expected stored record, got %#v", got)
	}
	if string(got.JSON) != `{"title":"Trip"}` {
		t.Errorf("stored bytes changed: %q", got.JSON)
	}
}

func TestContentAddressedIDs(t *testing.T) {
	s := New()
	a := s.Put("A", time.Now(), []byte("same"))
	b := s.Put("B", time.Now(), []byte("same"))
	c := s.Put("C", time.Now(), []byte("different"))

	if a.ID != b.ID {
		t.Errorf("identical content produced different ids: %q %q", a.ID, b.ID)
	}
	if a.ID == c.ID {
		t.Error("different content produced the same id")
	}
	if len(a.ID) != 16 {
		t.Errorf("expected 16-char id, got %q", a.ID)
	}
}

func TestDelete(t *testing.T) {
	s := New()
	rec := s.Put("Trip", time.Now(), []byte("doc"))

	if !s.Delete(rec.ID) {
		t.Fatal("expected delete to succeed")
	}
	if s.Get(rec.ID) != nil {
		t.Error("record still present after delete")
	}
	if s.Delete(rec.ID) {
		t.Error("second delete reported success")
	}
}

func TestList_MostRecentFirst(t *testing.T) {
	s := New()
	t0 := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	s.Put("old", t0, []byte("a"))
	s.Put("new", t0.Add(time.Hour), []byte("b"))

	list := s.List()
	if len(list) != 2 {
		t.Fatalf("expected 2 records, got %d", len(list))
	}
	if list[0].Title != "new" || list[1].Title != "old" {
		t.Errorf("unexpected order: %q, %q", list[0].Title, list[1].Title)
	}
}
