package battle

// CalculateDamage computes damage for one action using the simplified model:
//
//	damage = floor(power × (1 + effectiveness + bonus))
//
// bonus is the tactical-prompt multiplier in [0, 0.5] supplied by the caller;
// this function performs no I/O and no randomness. Damage is floored at 1
// except when the defender is immune, in which case it is exactly 0.
func CalculateDamage(power int, skillType, defenderType string, bonus float64) (damage int, effectiveness float64, message string) {
	eff := TypeEffectiveness(skillType, defenderType)
	msg := EffectivenessMessage(eff)

	if eff == EffImmune {
		return 0, eff, msg
	}

	dmg := int(float64(power) * (1 + eff + bonus))
	if dmg < 1 {
		dmg = 1
	}
	return dmg, eff, msg
}
