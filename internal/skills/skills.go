// Package skills provides the skill catalog consumed by the battle core.
// The production catalog is fed from an external move database; the static
// catalog here carries enough attacking moves to run sessions without it.
package skills

import (
	"math/rand"
	"sort"
	"sync"
)

type Skill struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Power       int    `json:"power"`
	Accuracy    int    `json:"accuracy"`
	PP          int    `json:"pp"`
	Description string `json:"description"`
}

// Catalog serves attacking skills by element type. Implementations must be
// safe for concurrent use.
type Catalog interface {
	// SkillsByType returns up to count skills biased toward elementType:
	// same-type moves first with a weak/medium/strong power mix, then
	// normal-type filler, then anything else.
	SkillsByType(elementType string, count int) []Skill
}

type StaticCatalog struct {
	mu     sync.Mutex
	rng    *rand.Rand
	byType map[string][]Skill
	all    []Skill
}

// NewStaticCatalog builds a catalog over the built-in move list. rng drives
// the selection shuffle; pass a seeded source in tests for determinism.
func NewStaticCatalog(rng *rand.Rand) *StaticCatalog {
	c := &StaticCatalog{
		rng:    rng,
		byType: make(map[string][]Skill),
	}
	for _, s := range defaultSkills {
		if s.Power <= 0 {
			continue // status moves can't drive the damage formula
		}
		c.byType[s.Type] = append(c.byType[s.Type], s)
		c.all = append(c.all, s)
	}
	return c
}

func (c *StaticCatalog) SkillsByType(elementType string, count int) []Skill {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := make([]Skill, 0, count)
	seen := make(map[string]bool)
	add := func(ss []Skill, limit int) {
		for _, s := range ss {
			if len(result) >= count || limit == 0 {
				return
			}
			if seen[s.ID] {
				continue
			}
			seen[s.ID] = true
			result = append(result, s)
			limit--
		}
	}

	// Same-type moves: balance weak / medium / strong bands.
	same := c.byType[elementType]
	var weak, medium, strong []Skill
	for _, s := range same {
		switch {
		case s.Power <= 50:
			weak = append(weak, s)
		case s.Power <= 80:
			medium = append(medium, s)
		default:
			strong = append(strong, s)
		}
	}
	add(c.shuffled(weak), 3)
	add(c.shuffled(medium), 3)
	add(c.shuffled(strong), 2)
	if len(result) < 8 {
		add(c.shuffled(same), 8-len(result))
	}

	// Normal-type filler, then anything else.
	if elementType != "normal" {
		add(c.shuffled(c.byType["normal"]), 2)
	}
	add(c.shuffled(c.all), count-len(result))

	// Stable order so the lowest-indexed default skill is predictable.
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (c *StaticCatalog) shuffled(ss []Skill) []Skill {
	out := make([]Skill, len(ss))
	copy(out, ss)
	c.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
