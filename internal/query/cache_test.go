package query

import (
	"testing"
	"time"

	"github.com/retroterm/retroterm/internal/api"
)

func TestGetReturnsWhatWasSet(t *testing.T) {
	c := New()
	c.Set("teams", []string{"t1", "t2"})

	value, ok := c.Get("teams")
	if !ok {
		t.Fatal("expected a cache hit")
	}
	teams, ok := value.([]string)
	if !ok || len(teams) != 2 {
		t.Fatalf("unexpected cached value: %v", value)
	}
}

func TestGetMissesUnknownKey(t *testing.T) {
	c := New()
	if _, ok := c.Get("retros/r1/cards"); ok {
		t.Fatal("expected a miss for an unset key")
	}
}

func TestStaleEntriesAreDropped(t *testing.T) {
	c := NewWithStaleAfter(time.Minute)
	base := time.Now()
	c.now = func() time.Time { return base }
	c.Set("teams", "fresh")

	c.now = func() time.Time { return base.Add(2 * time.Minute) }
	if _, ok := c.Get("teams"); ok {
		t.Fatal("entry past the staleness window should miss")
	}
	if c.Len() != 0 {
		t.Fatalf("stale entry should be evicted, cache holds %d", c.Len())
	}
}

func TestNonPositiveWindowNeverGoesStale(t *testing.T) {
	c := NewWithStaleAfter(0)
	base := time.Now()
	c.now = func() time.Time { return base }
	c.Set("teams", "forever")

	c.now = func() time.Time { return base.Add(24 * time.Hour) }
	if _, ok := c.Get("teams"); !ok {
		t.Fatal("zero window should disable staleness")
	}
}

func TestInvalidateRemovesMatchingPrefixOnly(t *testing.T) {
	c := New()
	c.Set(KeyCards("r1"), "r1 cards")
	c.Set(KeyRetro("r1"), "r1 detail")
	c.Set(KeyCards("r2"), "r2 cards")
	c.Set(KeyTeams(), "teams")

	removed := c.Invalidate(KeyCards("r1"))
	if removed != 1 {
		t.Fatalf("expected 1 removal, got %d", removed)
	}
	if _, ok := c.Get(KeyCards("r1")); ok {
		t.Fatal("invalidated key still present")
	}
	if _, ok := c.Get(KeyCards("r2")); !ok {
		t.Fatal("sibling retro's cards should survive")
	}
	if _, ok := c.Get(KeyTeams()); !ok {
		t.Fatal("unrelated key should survive")
	}
}

func TestInvalidatePrefixTakesFilteredVariants(t *testing.T) {
	c := New()
	c.Set(KeyActionItems("t1", api.ActionItemFilters{}), "all")
	c.Set(KeyActionItems("t1", api.ActionItemFilters{Status: api.StatusOpen}), "open")
	c.Set(KeyActionItems("t2", api.ActionItemFilters{}), "other team")

	removed := c.Invalidate(KeyActionItemsPrefix("t1"))
	if removed != 2 {
		t.Fatalf("expected both t1 variants removed, got %d", removed)
	}
	if _, ok := c.Get(KeyActionItems("t2", api.ActionItemFilters{})); !ok {
		t.Fatal("t2 listing should survive t1 invalidation")
	}
}

func TestInvalidateTeamListLeavesTeamScopedEntries(t *testing.T) {
	c := New()
	c.Set(KeyTeams(), "list")
	c.Set(KeyTeam("t1"), "detail")
	c.Set(KeyTeamMembers("t1"), "members")
	c.Set(KeyRetros("t1", api.RetroFilters{}), "retros")
	c.Set(KeyActionItems("t1", api.ActionItemFilters{}), "items")

	removed := c.Invalidate(KeyTeams())
	if removed != 1 {
		t.Fatalf("team-list invalidation should drop only the list, removed %d", removed)
	}
	for _, key := range []string{
		KeyTeam("t1"),
		KeyTeamMembers("t1"),
		KeyRetros("t1", api.RetroFilters{}),
		KeyActionItems("t1", api.ActionItemFilters{}),
	} {
		if _, ok := c.Get(key); !ok {
			t.Fatalf("team-scoped entry %q swept by team-list invalidation", key)
		}
	}
}

func TestClearEmptiesEverything(t *testing.T) {
	c := New()
	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()
	if c.Len() != 0 {
		t.Fatalf("expected empty cache, got %d entries", c.Len())
	}
}

func TestKeysAreStableForEqualFilters(t *testing.T) {
	a := KeyRetros("t1", api.RetroFilters{Search: "sprint", StartDate: "2026-01-01"})
	b := KeyRetros("t1", api.RetroFilters{Search: "sprint", StartDate: "2026-01-01"})
	if a != b {
		t.Fatalf("equal filters produced different keys: %q vs %q", a, b)
	}
	c := KeyRetros("t1", api.RetroFilters{Search: "other"})
	if a == c {
		t.Fatal("different filters must produce different keys")
	}
}
