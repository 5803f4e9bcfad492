package battle

import "testing"

func TestCalculateDamage(t *testing.T) {
	cases := []struct {
		name         string
		power        int
		skillType    string
		defenderType string
		bonus        float64
		wantDamage   int
		wantEff      float64
	}{
		{
			name:  "super effective fire vs grass",
			power: 90, skillType: "fire", defenderType: "grass",
			wantDamage: 112, wantEff: EffStrong, // floor(90 * 1.25)
		},
		{
			name:  "immune ground vs flying",
			power: 40, skillType: "ground", defenderType: "flying",
			wantDamage: 0, wantEff: EffImmune,
		},
		{
			name:  "neutral pair",
			power: 50, skillType: "fire", defenderType: "electric",
			wantDamage: 50, wantEff: EffNeutral,
		},
		{
			name:  "not very effective",
			power: 100, skillType: "water", defenderType: "grass",
			wantDamage: 80, wantEff: EffWeak,
		},
		{
			name:  "bonus stacks with effectiveness",
			power: 90, skillType: "fire", defenderType: "grass", bonus: 0.5,
			wantDamage: 157, wantEff: EffStrong, // floor(90 * 1.75)
		},
		{
			name:  "damage floors at one",
			power: 1, skillType: "water", defenderType: "grass",
			wantDamage: 1, wantEff: EffWeak,
		},
		{
			name:  "unknown types fall back to normal",
			power: 60, skillType: "cosmic", defenderType: "void",
			wantDamage: 60, wantEff: EffNeutral,
		},
		{
			name:  "unknown attacker vs ghost is immune via normal",
			power: 60, skillType: "cosmic", defenderType: "ghost",
			wantDamage: 0, wantEff: EffImmune,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dmg, eff, _ := CalculateDamage(tc.power, tc.skillType, tc.defenderType, tc.bonus)
			if dmg != tc.wantDamage {
				t.Fatalf("damage: want %d, got %d", tc.wantDamage, dmg)
			}
			if eff != tc.wantEff {
				t.Fatalf("effectiveness: want %v, got %v", tc.wantEff, eff)
			}
		})
	}
}

func TestDamageNeverNegativeAndZeroOnlyWhenImmune(t *testing.T) {
	powers := []int{0, 1, 40, 150}
	bonuses := []float64{0, 0.1, 0.5}
	for _, atk := range Types {
		for _, def := range Types {
			for _, p := range powers {
				for _, b := range bonuses {
					dmg, eff, _ := CalculateDamage(p, atk, def, b)
					if dmg < 0 {
						t.Fatalf("negative damage for %s vs %s", atk, def)
					}
					if eff == EffImmune && dmg != 0 {
						t.Fatalf("immune pair %s vs %s dealt %d", atk, def, dmg)
					}
					if eff != EffImmune && dmg < 1 {
						t.Fatalf("non-immune pair %s vs %s dealt %d", atk, def, dmg)
					}
				}
			}
		}
	}
}

func TestEffectivenessMessage(t *testing.T) {
	if msg := EffectivenessMessage(EffImmune); msg != "It had no effect..." {
		t.Fatalf("unexpected immune message: %q", msg)
	}
	if msg := EffectivenessMessage(EffNeutral); msg != "" {
		t.Fatalf("neutral should have no message, got %q", msg)
	}
	if msg := EffectivenessMessage(EffStrong); msg == "" {
		t.Fatal("expected a super-effective message")
	}
}
