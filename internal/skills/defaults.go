package skills

// Built-in attacking moves, id-ordered. IDs are zero-padded so lexical order
// matches numeric order.
var defaultSkills = []Skill{
	// normal
	{ID: "skill_001", Name: "Tackle", Type: "normal", Category: "physical", Power: 40, Accuracy: 100, PP: 35, Description: "A full-body charge attack."},
	{ID: "skill_002", Name: "Scratch", Type: "normal", Category: "physical", Power: 40, Accuracy: 100, PP: 35, Description: "Rakes the target with sharp claws."},
	{ID: "skill_003", Name: "Slash", Type: "normal", Category: "physical", Power: 70, Accuracy: 100, PP: 20, Description: "A slashing attack with sharp claws."},
	{ID: "skill_004", Name: "Body Slam", Type: "normal", Category: "physical", Power: 85, Accuracy: 100, PP: 15, Description: "Drops the full body onto the target."},
	{ID: "skill_005", Name: "Hyper Beam", Type: "normal", Category: "special", Power: 150, Accuracy: 90, PP: 5, Description: "A severely damaging beam of energy."},
	// fire
	{ID: "skill_010", Name: "Ember", Type: "fire", Category: "special", Power: 40, Accuracy: 100, PP: 25, Description: "A weak jet of flame."},
	{ID: "skill_011", Name: "Fire Punch", Type: "fire", Category: "physical", Power: 75, Accuracy: 100, PP: 15, Description: "A fiery punch that may burn."},
	{ID: "skill_012", Name: "Flamethrower", Type: "fire", Category: "special", Power: 90, Accuracy: 100, PP: 15, Description: "A powerful stream of fire."},
	{ID: "skill_013", Name: "Fire Blast", Type: "fire", Category: "special", Power: 110, Accuracy: 85, PP: 5, Description: "An all-consuming star of flame."},
	// water
	{ID: "skill_020", Name: "Water Gun", Type: "water", Category: "special", Power: 40, Accuracy: 100, PP: 25, Description: "Squirts water at the target."},
	{ID: "skill_021", Name: "Bubble Beam", Type: "water", Category: "special", Power: 65, Accuracy: 100, PP: 20, Description: "A forceful spray of bubbles."},
	{ID: "skill_022", Name: "Surf", Type: "water", Category: "special", Power: 90, Accuracy: 100, PP: 15, Description: "Swamps the area with a huge wave."},
	{ID: "skill_023", Name: "Hydro Pump", Type: "water", Category: "special", Power: 110, Accuracy: 80, PP: 5, Description: "Blasts water at high pressure."},
	// electric
	{ID: "skill_030", Name: "Thunder Shock", Type: "electric", Category: "special", Power: 40, Accuracy: 100, PP: 30, Description: "A jolt of electricity."},
	{ID: "skill_031", Name: "Spark", Type: "electric", Category: "physical", Power: 65, Accuracy: 100, PP: 20, Description: "An electrified tackle."},
	{ID: "skill_032", Name: "Thunderbolt", Type: "electric", Category: "special", Power: 90, Accuracy: 100, PP: 15, Description: "A strong electric blast."},
	{ID: "skill_033", Name: "Thunder", Type: "electric", Category: "special", Power: 110, Accuracy: 70, PP: 10, Description: "A wicked thunderbolt from above."},
	// grass
	{ID: "skill_040", Name: "Vine Whip", Type: "grass", Category: "physical", Power: 45, Accuracy: 100, PP: 25, Description: "Strikes with slender vines."},
	{ID: "skill_041", Name: "Razor Leaf", Type: "grass", Category: "physical", Power: 55, Accuracy: 95, PP: 25, Description: "Cuts with sharp-edged leaves."},
	{ID: "skill_042", Name: "Seed Bomb", Type: "grass", Category: "physical", Power: 80, Accuracy: 100, PP: 15, Description: "Hurls a barrage of hard seeds."},
	{ID: "skill_043", Name: "Solar Beam", Type: "grass", Category: "special", Power: 120, Accuracy: 100, PP: 10, Description: "Absorbs light, then fires a beam."},
	// ice
	{ID: "skill_050", Name: "Ice Shard", Type: "ice", Category: "physical", Power: 40, Accuracy: 100, PP: 30, Description: "Hurls a chunk of ice."},
	{ID: "skill_051", Name: "Ice Beam", Type: "ice", Category: "special", Power: 90, Accuracy: 100, PP: 10, Description: "A freezing beam that may freeze."},
	{ID: "skill_052", Name: "Blizzard", Type: "ice", Category: "special", Power: 110, Accuracy: 70, PP: 5, Description: "A howling ice storm."},
	// fighting
	{ID: "skill_060", Name: "Karate Chop", Type: "fighting", Category: "physical", Power: 50, Accuracy: 100, PP: 25, Description: "A sharp chop attack."},
	{ID: "skill_061", Name: "Brick Break", Type: "fighting", Category: "physical", Power: 75, Accuracy: 100, PP: 15, Description: "A chop that shatters barriers."},
	{ID: "skill_062", Name: "Close Combat", Type: "fighting", Category: "physical", Power: 120, Accuracy: 100, PP: 5, Description: "Fights up close without guarding."},
	// poison
	{ID: "skill_070", Name: "Poison Sting", Type: "poison", Category: "physical", Power: 15, Accuracy: 100, PP: 35, Description: "A toxic barb that may poison."},
	{ID: "skill_071", Name: "Sludge Bomb", Type: "poison", Category: "special", Power: 90, Accuracy: 100, PP: 10, Description: "Hurls filthy sludge at the target."},
	// ground
	{ID: "skill_080", Name: "Mud-Slap", Type: "ground", Category: "special", Power: 20, Accuracy: 100, PP: 10, Description: "Hurls mud at the target's face."},
	{ID: "skill_081", Name: "Dig", Type: "ground", Category: "physical", Power: 80, Accuracy: 100, PP: 10, Description: "Burrows, then strikes from below."},
	{ID: "skill_082", Name: "Earthquake", Type: "ground", Category: "physical", Power: 100, Accuracy: 100, PP: 10, Description: "A ground-shaking quake."},
	// flying
	{ID: "skill_090", Name: "Gust", Type: "flying", Category: "special", Power: 40, Accuracy: 100, PP: 35, Description: "Whips up a damaging gust."},
	{ID: "skill_091", Name: "Wing Attack", Type: "flying", Category: "physical", Power: 60, Accuracy: 100, PP: 35, Description: "Strikes with spread wings."},
	{ID: "skill_092", Name: "Brave Bird", Type: "flying", Category: "physical", Power: 120, Accuracy: 100, PP: 15, Description: "A reckless full-speed dive."},
	// psychic
	{ID: "skill_100", Name: "Confusion", Type: "psychic", Category: "special", Power: 50, Accuracy: 100, PP: 25, Description: "A weak telekinetic strike."},
	{ID: "skill_101", Name: "Psybeam", Type: "psychic", Category: "special", Power: 65, Accuracy: 100, PP: 20, Description: "A peculiar beam that may confuse."},
	{ID: "skill_102", Name: "Psychic", Type: "psychic", Category: "special", Power: 90, Accuracy: 100, PP: 10, Description: "A strong telekinetic attack."},
	// bug
	{ID: "skill_110", Name: "Bug Bite", Type: "bug", Category: "physical", Power: 60, Accuracy: 100, PP: 20, Description: "Bites the target."},
	{ID: "skill_111", Name: "X-Scissor", Type: "bug", Category: "physical", Power: 80, Accuracy: 100, PP: 15, Description: "Slashes in a cross pattern."},
	// rock
	{ID: "skill_120", Name: "Rock Throw", Type: "rock", Category: "physical", Power: 50, Accuracy: 90, PP: 15, Description: "Hurls a small rock."},
	{ID: "skill_121", Name: "Rock Slide", Type: "rock", Category: "physical", Power: 75, Accuracy: 90, PP: 10, Description: "Drops large boulders."},
	{ID: "skill_122", Name: "Stone Edge", Type: "rock", Category: "physical", Power: 100, Accuracy: 80, PP: 5, Description: "Impales with sharpened stones."},
	// ghost
	{ID: "skill_130", Name: "Lick", Type: "ghost", Category: "physical", Power: 30, Accuracy: 100, PP: 30, Description: "A long tongue attack."},
	{ID: "skill_131", Name: "Shadow Ball", Type: "ghost", Category: "special", Power: 80, Accuracy: 100, PP: 15, Description: "Hurls a shadowy blob."},
	// dragon
	{ID: "skill_140", Name: "Dragon Breath", Type: "dragon", Category: "special", Power: 60, Accuracy: 100, PP: 20, Description: "A gust of destructive breath."},
	{ID: "skill_141", Name: "Dragon Claw", Type: "dragon", Category: "physical", Power: 80, Accuracy: 100, PP: 15, Description: "Slashes with huge claws."},
	{ID: "skill_142", Name: "Outrage", Type: "dragon", Category: "physical", Power: 120, Accuracy: 100, PP: 10, Description: "A rampaging thrash."},
	// dark
	{ID: "skill_150", Name: "Bite", Type: "dark", Category: "physical", Power: 60, Accuracy: 100, PP: 25, Description: "Bites with vicious fangs."},
	{ID: "skill_151", Name: "Crunch", Type: "dark", Category: "physical", Power: 80, Accuracy: 100, PP: 15, Description: "Crunches with sharp fangs."},
	{ID: "skill_152", Name: "Dark Pulse", Type: "dark", Category: "special", Power: 80, Accuracy: 100, PP: 15, Description: "A horrible aura of dark thoughts."},
	// steel
	{ID: "skill_160", Name: "Metal Claw", Type: "steel", Category: "physical", Power: 50, Accuracy: 95, PP: 35, Description: "Rakes with steel claws."},
	{ID: "skill_161", Name: "Iron Head", Type: "steel", Category: "physical", Power: 80, Accuracy: 100, PP: 15, Description: "Slams a steel-hard head."},
	{ID: "skill_162", Name: "Flash Cannon", Type: "steel", Category: "special", Power: 80, Accuracy: 100, PP: 10, Description: "Fires gathered light energy."},
	// fairy
	{ID: "skill_170", Name: "Fairy Wind", Type: "fairy", Category: "special", Power: 40, Accuracy: 100, PP: 30, Description: "A stirring fairy wind."},
	{ID: "skill_171", Name: "Dazzling Gleam", Type: "fairy", Category: "special", Power: 80, Accuracy: 100, PP: 10, Description: "A powerful flash of light."},
	{ID: "skill_172", Name: "Moonblast", Type: "fairy", Category: "special", Power: 95, Accuracy: 100, PP: 15, Description: "Attacks with lunar power."},
}
