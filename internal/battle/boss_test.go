package battle

import (
	"math/rand"
	"testing"

	"github.com/genpoke/battle-backend/internal/skills"
)

type stubCatalog struct {
	skills []skills.Skill
}

func (s stubCatalog) SkillsByType(string, int) []skills.Skill { return s.skills }

func testMoves() []skills.Skill {
	return []skills.Skill{
		{ID: "s1", Name: "Jab", Type: "fire", Power: 40},
		{ID: "s2", Name: "Burst", Type: "fire", Power: 60},
		{ID: "s3", Name: "Blaze", Type: "fire", Power: 80},
		{ID: "s4", Name: "Inferno", Type: "fire", Power: 100},
		{ID: "s5", Name: "Nova", Type: "fire", Power: 120},
		{ID: "s6", Name: "Spark", Type: "fire", Power: 30},
		{ID: "s7", Name: "Flare", Type: "fire", Power: 55},
	}
}

func TestGenerateBossScaling(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	catalog := stubCatalog{skills: testMoves()}

	boss := GenerateBoss(2, 1000, 500, "fire", catalog, rng)

	if boss.MaxHP != 1500 {
		t.Fatalf("2-player boss hp: want 1500, got %d", boss.MaxHP)
	}
	if boss.CurrentHP != boss.MaxHP {
		t.Fatalf("boss should start at full health")
	}
	if boss.Level != 20 {
		t.Fatalf("2-player boss level: want 20, got %d", boss.Level)
	}
	if boss.Type != "fire" {
		t.Fatalf("boss type: want fire, got %s", boss.Type)
	}
	// difficulty 1.3 with two players
	if boss.Attack != 104 || boss.Defense != 78 || boss.Speed != 91 {
		t.Fatalf("boss stats: got atk=%d def=%d spd=%d", boss.Attack, boss.Defense, boss.Speed)
	}
	if len(boss.Skills) == 0 || len(boss.Skills) > 4 {
		t.Fatalf("boss skill pool size: got %d", len(boss.Skills))
	}
}

func TestGenerateBossRandomTypeIsValid(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	boss := GenerateBoss(3, 1000, 500, "", stubCatalog{skills: testMoves()}, rng)
	if !ValidType(boss.Type) {
		t.Fatalf("boss got invalid type %q", boss.Type)
	}
	if boss.Name == "" {
		t.Fatal("boss must have a name")
	}
}

func TestSelectSkillFavorsHighPower(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	boss := &Boss{Type: "fire", Skills: testMoves()}

	const draws = 2000
	top := 0
	for i := 0; i < draws; i++ {
		if boss.SelectSkill(rng).ID == "s5" {
			top++
		}
	}
	// 70% plus a uniform share; anything above 60% is comfortably biased.
	if top < draws*6/10 {
		t.Fatalf("highest-power skill picked %d/%d times, expected a strong majority", top, draws)
	}
}

func TestSelectSkillEmptyPoolFallsBack(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	boss := &Boss{Type: "ghost"}
	s := boss.SelectSkill(rng)
	if s.Power <= 0 {
		t.Fatal("fallback skill must have power")
	}
	if s.Type != "ghost" {
		t.Fatalf("fallback skill should use the boss type, got %s", s.Type)
	}
}

func TestTakeDamageFloorsAtZero(t *testing.T) {
	boss := &Boss{CurrentHP: 50, MaxHP: 100}

	actual, defeated := boss.TakeDamage(30)
	if actual != 30 || defeated {
		t.Fatalf("partial damage: actual=%d defeated=%v", actual, defeated)
	}

	actual, defeated = boss.TakeDamage(100)
	if actual != 20 || !defeated {
		t.Fatalf("overkill: actual=%d defeated=%v", actual, defeated)
	}
	if boss.CurrentHP != 0 {
		t.Fatalf("boss hp should floor at 0, got %d", boss.CurrentHP)
	}
}
