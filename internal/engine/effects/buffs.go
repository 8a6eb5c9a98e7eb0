package effects

import (
	"github.com/KirkDiggler/tower-defense/internal/entities"
)

// Bonus accumulates percentage and flat modifiers for one stat
type Bonus struct {
	Percentage float64 `json:"percentage"`
	Flat       float64 `json:"flat"`
}

// Buffs is the sum of all equipped effects. It is derived, never stored.
type Buffs struct {
	Damage      Bonus `json:"damage"`
	Range       Bonus `json:"range"`
	AttackSpeed Bonus `json:"attack_speed"`
}

// For returns the bonus for a concrete stat, nil for StatAll or unknown stats
func (b *Buffs) For(stat entities.Stat) *Bonus {
	switch stat {
	case entities.StatDamage:
		return &b.Damage
	case entities.StatRange:
		return &b.Range
	case entities.StatAttackSpeed:
		return &b.AttackSpeed
	default:
		return nil
	}
}

// Effective applies the bonus for stat to base: base*(1+percentage)+flat
func (b Buffs) Effective(stat entities.Stat, base float64) float64 {
	bonus := b.For(stat)
	if bonus == nil {
		return base
	}
	return base*(1+bonus.Percentage) + bonus.Flat
}

// Aggregate reduces items into Buffs. Items whose effect cannot be resolved
// contribute nothing. Pure: safe to call after every inventory change.
func Aggregate(catalog Resolver, items []*entities.Item) Buffs {
	var buffs Buffs

	for _, item := range items {
		if item == nil || item.EffectID == "" {
			continue
		}
		effect, ok := catalog.Get(item.EffectID)
		if !ok {
			continue
		}

		if effect.TargetStat == entities.StatAll {
			for _, stat := range entities.TowerStats {
				buffs.add(entities.Modifier{TargetStat: stat, Kind: effect.Kind, Value: effect.Value})
			}
		} else {
			buffs.add(effect.Modifier)
		}

		if effect.NegativeEffect != nil {
			buffs.add(*effect.NegativeEffect)
		}
	}

	return buffs
}

func (b *Buffs) add(m entities.Modifier) {
	bonus := b.For(m.TargetStat)
	if bonus == nil {
		return
	}
	switch m.Kind {
	case entities.ModifierPercentage:
		bonus.Percentage += m.Value
	case entities.ModifierFlat:
		bonus.Flat += m.Value
	}
}
