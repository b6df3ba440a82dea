package cache

import (
	"testing"
	"time"
)

func TestSetGetDelete(t *testing.T) {
	m := NewMemory()

	if _, ok := m.Get("surnames", "李"); ok {
		t.Fatal("empty cache returned a hit")
	}

	m.Set("surnames", "李", "plum")
	v, ok := m.Get("surnames", "李")
	if !ok || v.(string) != "plum" {
		t.Fatalf("Get = (%v, %v), want (plum, true)", v, ok)
	}

	m.Delete("surnames", "李")
	if _, ok := m.Get("surnames", "李"); ok {
		t.Error("deleted entry still readable")
	}
}

func TestCategoryTTLExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemoryWithClock(func() time.Time { return now })

	m.Set("popular_names", "top", []string{"李慧涵"})
	m.Set("surnames", "李", "plum")

	// 16 minutes: past the popular_names TTL, within the surnames TTL.
	now = now.Add(16 * time.Minute)
	if _, ok := m.Get("popular_names", "top"); ok {
		t.Error("popular_names entry survived its 15m TTL")
	}
	if _, ok := m.Get("surnames", "李"); !ok {
		t.Error("surnames entry expired before its 2h TTL")
	}
}

func TestUncategorizedDefaultTTL(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemoryWithClock(func() time.Time { return now })

	m.Set("misc", "k", 1)
	now = now.Add(4 * time.Minute)
	if _, ok := m.Get("misc", "k"); !ok {
		t.Error("default-TTL entry expired early")
	}
	now = now.Add(2 * time.Minute)
	if _, ok := m.Get("misc", "k"); ok {
		t.Error("default-TTL entry survived past five minutes")
	}
}

func TestLenCountsLiveEntriesOnly(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemoryWithClock(func() time.Time { return now })

	m.Set("poetry", "梅", []string{"墨梅"})
	m.Set("misc", "k", 1)
	if m.Len() != 2 {
		t.Fatalf("Len = %d, want 2", m.Len())
	}

	now = now.Add(10 * time.Minute)
	if m.Len() != 1 {
		t.Errorf("Len = %d after default TTL lapsed, want 1", m.Len())
	}
}
