// Package enemies holds the archetype tables and composes waves from them.
// Archetypes differ only in data; every enemy moves and takes damage the same
// way.
package enemies

// Archetype is a template of base stats
type Archetype struct {
	Key     string  `yaml:"key" json:"key"`
	Name    string  `yaml:"name" json:"name"`
	Color   string  `yaml:"color" json:"color"`
	HP      float64 `yaml:"hp" json:"hp"`
	Speed   float64 `yaml:"speed" json:"speed"`
	Gold    int     `yaml:"gold" json:"gold"`
	Size    float64 `yaml:"size" json:"size"`
	Weight  float64 `yaml:"weight" json:"weight"`
	MinWave int     `yaml:"min_wave" json:"min_wave"`
	MaxWave int     `yaml:"max_wave" json:"max_wave"`

	// Scaling factors damp or amplify wave growth: 1 follows the growth
	// curve exactly, 0 ignores it
	HealthScaling float64 `yaml:"health_scaling" json:"health_scaling"`
	SpeedScaling  float64 `yaml:"speed_scaling" json:"speed_scaling"`
}

// InWave reports whether wave falls within [MinWave, MaxWave]
func (a Archetype) InWave(wave int) bool {
	return wave >= a.MinWave && wave <= a.MaxWave
}

// EliteModifier is a multiplicative overlay applied to a regular enemy
type EliteModifier struct {
	Key             string  `yaml:"key" json:"key"`
	Name            string  `yaml:"name" json:"name"`
	Color           string  `yaml:"color" json:"color"`
	HPMultiplier    float64 `yaml:"hp_multiplier" json:"hp_multiplier"`
	SpeedMultiplier float64 `yaml:"speed_multiplier" json:"speed_multiplier"`
	GoldMultiplier  float64 `yaml:"gold_multiplier" json:"gold_multiplier"`
}

// Tier fixes composition probabilities for a range of waves
type Tier struct {
	Name        string  `yaml:"name" json:"name"`
	MinWave     int     `yaml:"min_wave" json:"min_wave"`
	MaxWave     int     `yaml:"max_wave" json:"max_wave"`
	MaxEnemies  int     `yaml:"max_enemies" json:"max_enemies"`
	BossChance  float64 `yaml:"boss_chance" json:"boss_chance"`
	EliteChance float64 `yaml:"elite_chance" json:"elite_chance"`
}

// Catalog is the full enemy table. The zero value is empty; use
// DefaultCatalog for the built-in roster.
type Catalog struct {
	Archetypes []Archetype     `yaml:"archetypes" json:"archetypes"`
	Bosses     []Archetype     `yaml:"bosses" json:"bosses"`
	Elites     []EliteModifier `yaml:"elites" json:"elites"`
	Tiers      []Tier          `yaml:"tiers" json:"tiers"`

	// LegacyBoss is the single boss of the legacy progression
	LegacyBoss Archetype `yaml:"legacy_boss" json:"legacy_boss"`
}

// Tier returns the tier whose range contains wave. Waves past every tier
// fall into the last one.
func (c *Catalog) Tier(wave int) Tier {
	for _, t := range c.Tiers {
		if wave >= t.MinWave && wave <= t.MaxWave {
			return t
		}
	}
	if len(c.Tiers) == 0 {
		return Tier{}
	}
	return c.Tiers[len(c.Tiers)-1]
}

// Available returns the regular archetypes allowed in wave, in table order
func (c *Catalog) Available(wave int) []Archetype {
	return filterWave(c.Archetypes, wave)
}

// AvailableBosses returns the bosses allowed in wave, in table order
func (c *Catalog) AvailableBosses(wave int) []Archetype {
	return filterWave(c.Bosses, wave)
}

func filterWave(in []Archetype, wave int) []Archetype {
	out := make([]Archetype, 0, len(in))
	for _, a := range in {
		if a.InWave(wave) {
			out = append(out, a)
		}
	}
	return out
}

// DefaultCatalog returns the built-in roster
func DefaultCatalog() *Catalog {
	c := &Catalog{
		Archetypes: make([]Archetype, len(defaultArchetypes)),
		Bosses:     make([]Archetype, len(defaultBosses)),
		Elites:     make([]EliteModifier, len(defaultElites)),
		Tiers:      make([]Tier, len(defaultTiers)),
		LegacyBoss: legacyBoss,
	}
	copy(c.Archetypes, defaultArchetypes)
	copy(c.Bosses, defaultBosses)
	copy(c.Elites, defaultElites)
	copy(c.Tiers, defaultTiers)
	return c
}

var defaultArchetypes = []Archetype{
	{Key: "basic", Name: "Basic Enemy", Color: "#ff4444", HP: 30, Speed: 30, Gold: 5, Size: 15, Weight: 70, MinWave: 1, MaxWave: 20, HealthScaling: 0.9, SpeedScaling: 1.0},
	{Key: "fast", Name: "Fast Enemy", Color: "#44ff44", HP: 20, Speed: 60, Gold: 8, Size: 12, Weight: 50, MinWave: 2, MaxWave: 25, HealthScaling: 0.6, SpeedScaling: 1.5},
	{Key: "tank", Name: "Tank Enemy", Color: "#4444ff", HP: 80, Speed: 15, Gold: 15, Size: 20, Weight: 30, MinWave: 3, MaxWave: 30, HealthScaling: 1.0, SpeedScaling: 0.5},
	{Key: "heavy", Name: "Heavy Enemy", Color: "#ff8844", HP: 120, Speed: 25, Gold: 20, Size: 18, Weight: 20, MinWave: 5, MaxWave: 35, HealthScaling: 1.0, SpeedScaling: 0.6},
	{Key: "armored", Name: "Armored Enemy", Color: "#8844ff", HP: 150, Speed: 20, Gold: 25, Size: 22, Weight: 15, MinWave: 7, MaxWave: 40, HealthScaling: 1.0, SpeedScaling: 0.5},
	{Key: "berserker", Name: "Berserker", Color: "#ff4488", HP: 60, Speed: 45, Gold: 18, Size: 16, Weight: 25, MinWave: 6, MaxWave: 30, HealthScaling: 0.5, SpeedScaling: 1.2},
	{Key: "elite", Name: "Elite Warrior", Color: "#ffaa44", HP: 200, Speed: 35, Gold: 35, Size: 24, Weight: 10, MinWave: 10, MaxWave: 50, HealthScaling: 0.8, SpeedScaling: 1.0},
	{Key: "destroyer", Name: "Destroyer", Color: "#aa44ff", HP: 300, Speed: 30, Gold: 50, Size: 26, Weight: 8, MinWave: 15, MaxWave: 60, HealthScaling: 0.9, SpeedScaling: 0.8},
	{Key: "nightmare", Name: "Nightmare", Color: "#ff44aa", HP: 250, Speed: 50, Gold: 45, Size: 20, Weight: 6, MinWave: 18, MaxWave: 65, HealthScaling: 0.6, SpeedScaling: 1.2},
	{Key: "titan", Name: "Titan", Color: "#44aaff", HP: 500, Speed: 20, Gold: 80, Size: 30, Weight: 5, MinWave: 25, MaxWave: 100, HealthScaling: 1.0, SpeedScaling: 0.5},
}

var defaultBosses = []Archetype{
	{Key: "megaTank", Name: "Mega Tank", Color: "#ff0000", HP: 600, Speed: 18, Gold: 150, Size: 35, Weight: 40, MinWave: 10, MaxWave: 100, HealthScaling: 0.3, SpeedScaling: 0.5},
	{Key: "speedDemon", Name: "Speed Demon", Color: "#00ff00", HP: 300, Speed: 80, Gold: 120, Size: 25, Weight: 35, MinWave: 12, MaxWave: 100, HealthScaling: 0.3, SpeedScaling: 0.5},
	{Key: "shadowLord", Name: "Shadow Lord", Color: "#8800ff", HP: 800, Speed: 25, Gold: 200, Size: 40, Weight: 25, MinWave: 20, MaxWave: 100, HealthScaling: 0.3, SpeedScaling: 0.5},
	{Key: "voidBringer", Name: "Void Bringer", Color: "#000088", HP: 1000, Speed: 30, Gold: 300, Size: 45, Weight: 15, MinWave: 30, MaxWave: 100, HealthScaling: 0.3, SpeedScaling: 0.5},
}

var defaultElites = []EliteModifier{
	{Key: "reinforced", Name: "Reinforced", Color: "#ffaa00", HPMultiplier: 1.5, SpeedMultiplier: 1.0, GoldMultiplier: 1.8},
	{Key: "swift", Name: "Swift", Color: "#00aaff", HPMultiplier: 1.2, SpeedMultiplier: 1.4, GoldMultiplier: 1.6},
	{Key: "brutal", Name: "Brutal", Color: "#aa0000", HPMultiplier: 1.8, SpeedMultiplier: 0.9, GoldMultiplier: 2.2},
	{Key: "blessed", Name: "Blessed", Color: "#ffffff", HPMultiplier: 1.3, SpeedMultiplier: 1.2, GoldMultiplier: 2.0},
}

var defaultTiers = []Tier{
	{Name: "early", MinWave: 1, MaxWave: 5, MaxEnemies: 8, BossChance: 0, EliteChance: 0.05},
	{Name: "mid", MinWave: 6, MaxWave: 15, MaxEnemies: 12, BossChance: 0.1, EliteChance: 0.15},
	{Name: "late", MinWave: 16, MaxWave: 30, MaxEnemies: 15, BossChance: 0.2, EliteChance: 0.25},
	{Name: "endgame", MinWave: 31, MaxWave: 100, MaxEnemies: 20, BossChance: 0.3, EliteChance: 0.35},
}

var legacyBoss = Archetype{
	Key: "boss", Name: "Boss", Color: "#000000", HP: 300, Speed: 15, Gold: 100, Size: 30,
	Weight: 1, MinWave: 1, MaxWave: 1 << 30, HealthScaling: 0.3, SpeedScaling: 0.5,
}
