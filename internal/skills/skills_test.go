package skills

import (
	"math/rand"
	"testing"
)

func newTestCatalog() *StaticCatalog {
	return NewStaticCatalog(rand.New(rand.NewSource(1)))
}

func TestSkillsByTypeCountAndUniqueness(t *testing.T) {
	c := newTestCatalog()
	got := c.SkillsByType("fire", 12)
	if len(got) != 12 {
		t.Fatalf("want 12 skills, got %d", len(got))
	}

	seen := map[string]bool{}
	for _, s := range got {
		if seen[s.ID] {
			t.Fatalf("duplicate skill %s in loadout", s.ID)
		}
		seen[s.ID] = true
		if s.Power <= 0 {
			t.Fatalf("status move %s leaked into loadout", s.ID)
		}
	}
}

func TestSkillsByTypeBiasesSameType(t *testing.T) {
	c := newTestCatalog()
	got := c.SkillsByType("water", 12)

	same := 0
	for _, s := range got {
		if s.Type == "water" {
			same++
		}
	}
	if same < 4 {
		t.Fatalf("want at least the full same-type band, got %d water moves", same)
	}
}

func TestSkillsByTypeStableOrder(t *testing.T) {
	c := newTestCatalog()
	got := c.SkillsByType("grass", 12)
	for i := 1; i < len(got); i++ {
		if got[i-1].ID >= got[i].ID {
			t.Fatalf("loadout not id-ordered at %d: %s >= %s", i, got[i-1].ID, got[i].ID)
		}
	}
}

func TestSkillsByTypeUnknownTypeStillFills(t *testing.T) {
	c := newTestCatalog()
	got := c.SkillsByType("cosmic", 12)
	if len(got) != 12 {
		t.Fatalf("unknown type should fill from the rest of the catalog, got %d", len(got))
	}
}
