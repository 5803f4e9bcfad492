package battle

import (
	"math/rand"
	"sort"

	"github.com/genpoke/battle-backend/internal/skills"
)

// Boss is the session's shared opponent. Created once per session at battle
// start; only the running orchestrator mutates it, via its room's lock.
type Boss struct {
	Name      string
	Type      string
	Level     int
	CurrentHP int
	MaxHP     int
	Attack    int
	Defense   int
	Speed     int
	Skills    []skills.Skill
}

var bossNames = map[string]string{
	"normal":   "Monarch of the Mundane",
	"fire":     "Blaze Tyrant",
	"water":    "Abyssal Leviathan",
	"electric": "Storm Sovereign",
	"grass":    "Warden of the Grove",
	"ice":      "Glacier Wyrm",
	"fighting": "Grandmaster Brawler",
	"poison":   "Miasma Lord",
	"ground":   "Terra Titan",
	"flying":   "Skyborne Overlord",
	"psychic":  "Mindrender",
	"bug":      "Swarm Queen",
	"rock":     "Stone Colossus",
	"ghost":    "Phantom Regent",
	"dragon":   "Dragon Emperor",
	"dark":     "Umbral Despot",
	"steel":    "Iron Juggernaut",
	"fairy":    "Fey Empress",
}

// GenerateBoss builds a boss scaled to the player count. An empty bossType
// picks a random element. HP is base + (players-1) × perPlayerHP; the other
// stats grow by 30% per extra player.
func GenerateBoss(playerCount, baseHP, perPlayerHP int, bossType string, catalog skills.Catalog, rng *rand.Rand) *Boss {
	if !ValidType(bossType) {
		bossType = Types[rng.Intn(len(Types))]
	}

	name, ok := bossNames[bossType]
	if !ok {
		name = "Unknown Terror"
	}

	level := 10 + playerCount*5
	maxHP := baseHP + (playerCount-1)*perPlayerHP
	difficulty := 1.0 + float64(playerCount-1)*0.3

	return &Boss{
		Name:      name,
		Type:      bossType,
		Level:     level,
		CurrentHP: maxHP,
		MaxHP:     maxHP,
		Attack:    int(80 * difficulty),
		Defense:   int(60 * difficulty),
		Speed:     int(70 * difficulty),
		Skills:    bossSkillPool(bossType, catalog, rng),
	}
}

// bossSkillPool picks four moves biased toward power: two from the top five
// by power, two from the next ten.
func bossSkillPool(bossType string, catalog skills.Catalog, rng *rand.Rand) []skills.Skill {
	pool := catalog.SkillsByType(bossType, 20)
	sort.Slice(pool, func(i, j int) bool { return pool[i].Power > pool[j].Power })

	pick := func(ss []skills.Skill, n int) []skills.Skill {
		if n > len(ss) {
			n = len(ss)
		}
		idx := rng.Perm(len(ss))[:n]
		out := make([]skills.Skill, 0, n)
		for _, i := range idx {
			out = append(out, ss[i])
		}
		return out
	}

	var chosen []skills.Skill
	if len(pool) > 5 {
		chosen = append(chosen, pick(pool[:5], 2)...)
		chosen = append(chosen, pick(pool[5:min(15, len(pool))], 2)...)
	} else {
		chosen = append(chosen, pick(pool, 4)...)
	}
	return chosen
}

// SelectSkill picks the boss's move for a turn: 70% of the time the highest
// power move in its pool, otherwise uniform.
func (b *Boss) SelectSkill(rng *rand.Rand) skills.Skill {
	if len(b.Skills) == 0 {
		// No catalog coverage for this type; fall back to a bare tackle.
		return skills.Skill{ID: "skill_000", Name: "Tackle", Type: b.Type, Power: 40, Accuracy: 100}
	}

	if rng.Float64() < 0.7 {
		best := b.Skills[0]
		for _, s := range b.Skills[1:] {
			if s.Power > best.Power {
				best = s
			}
		}
		return best
	}
	return b.Skills[rng.Intn(len(b.Skills))]
}

// TakeDamage applies damage floored at zero health and reports the amount
// actually dealt and whether the boss is defeated.
func (b *Boss) TakeDamage(damage int) (actual int, defeated bool) {
	if damage > b.CurrentHP {
		damage = b.CurrentHP
	}
	b.CurrentHP -= damage
	return damage, b.CurrentHP == 0
}
