package importer

import (
	"testing"
	"time"
)

func TestDrafts_ReplaceNotMerge(t *testing.T) {
	d := NewDrafts()

	first := &Result{ImportID: "a"}
	second := &Result{ImportID: "b"}

	d.Put("event-1", d.Ticket(), first)
	d.Put("event-1", d.Ticket(), second)

	got, ok := d.Get("event-1")
	if !ok || got != second {
		t.Errorf("Get() = %v, %v, want second result", got, ok)
	}
}

func TestDrafts_LastStartedWins(t *testing.T) {
	d := NewDrafts()

	older := d.Ticket()
	newer := d.Ticket()

	if !d.Put("event-1", newer, &Result{ImportID: "newer"}) {
		t.Fatal("Put(newer) = false, want true")
	}
	if d.Put("event-1", older, &Result{ImportID: "older"}) {
		t.Error("Put(older) after newer = true, want false")
	}

	got, _ := d.Get("event-1")
	if got.ImportID != "newer" {
		t.Errorf("ImportID = %q, want %q", got.ImportID, "newer")
	}
}

func TestDrafts_NilResultClears(t *testing.T) {
	d := NewDrafts()

	d.Put("event-1", d.Ticket(), &Result{ImportID: "a"})
	d.Put("event-1", d.Ticket(), nil)

	if _, ok := d.Get("event-1"); ok {
		t.Error("Get() after nil Put found a result, want none")
	}
}

func TestDrafts_Discard(t *testing.T) {
	d := NewDrafts()
	d.Put("event-1", d.Ticket(), &Result{})

	if !d.Discard("event-1") {
		t.Error("Discard(existing) = false, want true")
	}
	if d.Discard("event-1") {
		t.Error("Discard(missing) = true, want false")
	}
	if d.Len() != 0 {
		t.Errorf("Len() = %d, want 0", d.Len())
	}
}

func TestDrafts_Sweep(t *testing.T) {
	d := NewDrafts()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return now }

	d.Put("old", d.Ticket(), &Result{})
	now = now.Add(2 * time.Hour)
	d.Put("fresh", d.Ticket(), &Result{})

	if n := d.Sweep(time.Hour); n != 1 {
		t.Errorf("Sweep() = %d, want 1", n)
	}
	if _, ok := d.Get("old"); ok {
		t.Error("old draft survived Sweep")
	}
	if _, ok := d.Get("fresh"); !ok {
		t.Error("fresh draft removed by Sweep")
	}
}
