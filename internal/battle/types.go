package battle

// Types lists the 18 element types in chart order.
var Types = []string{
	"normal", "fire", "water", "electric", "grass", "ice",
	"fighting", "poison", "ground", "flying", "psychic", "bug",
	"rock", "ghost", "dragon", "dark", "steel", "fairy",
}

// Effectiveness values are additive modifiers, not classic multipliers:
// the damage formula is power × (1 + effectiveness + bonus).
const (
	EffImmune  = -1.0
	EffWeak    = -0.2
	EffNeutral = 0.0
	EffStrong  = 0.25
)

// typeChart[attacking][defending]; pairs absent from the chart are neutral.
var typeChart = map[string]map[string]float64{
	"normal": {
		"rock": EffWeak, "ghost": EffImmune, "steel": EffWeak,
	},
	"fire": {
		"fire": EffWeak, "water": EffWeak, "grass": EffStrong, "ice": EffStrong,
		"bug": EffStrong, "rock": EffWeak, "dragon": EffWeak, "steel": EffStrong,
	},
	"water": {
		"fire": EffStrong, "water": EffWeak, "grass": EffWeak, "ground": EffStrong,
		"rock": EffStrong, "dragon": EffWeak,
	},
	"electric": {
		"water": EffStrong, "electric": EffWeak, "grass": EffWeak,
		"ground": EffImmune, "flying": EffStrong, "dragon": EffWeak,
	},
	"grass": {
		"fire": EffWeak, "water": EffStrong, "grass": EffWeak, "poison": EffWeak,
		"ground": EffStrong, "flying": EffWeak, "bug": EffWeak, "rock": EffStrong,
		"dragon": EffWeak, "steel": EffWeak,
	},
	"ice": {
		"fire": EffWeak, "water": EffWeak, "grass": EffStrong, "ice": EffWeak,
		"ground": EffStrong, "flying": EffStrong, "dragon": EffStrong, "steel": EffWeak,
	},
	"fighting": {
		"normal": EffStrong, "ice": EffStrong, "poison": EffWeak, "flying": EffWeak,
		"psychic": EffWeak, "bug": EffWeak, "rock": EffStrong, "ghost": EffImmune,
		"dark": EffStrong, "steel": EffStrong, "fairy": EffWeak,
	},
	"poison": {
		"grass": EffStrong, "poison": EffWeak, "ground": EffWeak, "rock": EffWeak,
		"ghost": EffWeak, "steel": EffImmune, "fairy": EffStrong,
	},
	"ground": {
		"fire": EffStrong, "electric": EffStrong, "grass": EffWeak, "poison": EffStrong,
		"flying": EffImmune, "bug": EffWeak, "rock": EffStrong, "steel": EffStrong,
	},
	"flying": {
		"electric": EffWeak, "grass": EffStrong, "fighting": EffStrong,
		"bug": EffStrong, "rock": EffWeak, "steel": EffWeak,
	},
	"psychic": {
		"fighting": EffStrong, "poison": EffStrong, "psychic": EffWeak,
		"dark": EffImmune, "steel": EffWeak,
	},
	"bug": {
		"fire": EffWeak, "grass": EffStrong, "fighting": EffWeak, "poison": EffWeak,
		"flying": EffWeak, "psychic": EffStrong, "ghost": EffWeak, "dark": EffStrong,
		"steel": EffWeak, "fairy": EffWeak,
	},
	"rock": {
		"fire": EffStrong, "ice": EffStrong, "fighting": EffWeak, "ground": EffWeak,
		"flying": EffStrong, "bug": EffStrong, "steel": EffWeak,
	},
	"ghost": {
		"normal": EffImmune, "psychic": EffStrong, "ghost": EffStrong, "dark": EffWeak,
	},
	"dragon": {
		"dragon": EffStrong, "steel": EffWeak, "fairy": EffImmune,
	},
	"dark": {
		"fighting": EffWeak, "psychic": EffStrong, "ghost": EffStrong,
		"dark": EffWeak, "fairy": EffWeak,
	},
	"steel": {
		"fire": EffWeak, "water": EffWeak, "electric": EffWeak, "ice": EffStrong,
		"rock": EffStrong, "steel": EffWeak, "fairy": EffStrong,
	},
	"fairy": {
		"fire": EffWeak, "fighting": EffStrong, "poison": EffWeak,
		"dragon": EffStrong, "dark": EffStrong, "steel": EffWeak,
	},
}

// ValidType reports whether t is one of the 18 known types.
func ValidType(t string) bool {
	_, ok := typeChart[t]
	return ok
}

// TypeEffectiveness looks up the modifier for an attack of type attack
// against a defender of type defend. Unknown types are treated as normal;
// unlisted pairs are neutral.
func TypeEffectiveness(attack, defend string) float64 {
	if !ValidType(attack) {
		attack = "normal"
	}
	if !ValidType(defend) {
		defend = "normal"
	}
	return typeChart[attack][defend]
}

// EffectivenessMessage renders the modifier as battle-log flavor text.
func EffectivenessMessage(eff float64) string {
	switch eff {
	case EffImmune:
		return "It had no effect..."
	case EffWeak:
		return "It's not very effective..."
	case EffStrong:
		return "It's super effective!"
	default:
		return ""
	}
}
