package testutils

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"
)

// ScriptedRoller replays a fixed list of draws in [0, 1), wrapping around when
// exhausted. It satisfies both rng.Source and dice.Roller.
type ScriptedRoller struct {
	values []float64
	pos    int
}

// NewScriptedRoller creates a roller that returns values in order
func NewScriptedRoller(values ...float64) *ScriptedRoller {
	if len(values) == 0 {
		values = []float64{0}
	}
	return &ScriptedRoller{values: values}
}

// Next returns the next scripted draw
func (r *ScriptedRoller) Next() float64 {
	v := r.values[r.pos%len(r.values)]
	r.pos++
	return v
}

// Roll maps the next draw onto [1, size]
func (r *ScriptedRoller) Roll(size int) (int, error) {
	return int(r.Next()*float64(size)) + 1, nil
}

// RollN rolls count dice
func (r *ScriptedRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		out[i], _ = r.Roll(size)
	}
	return out, nil
}

// Calls reports how many draws have been consumed
func (r *ScriptedRoller) Calls() int {
	return r.pos
}

var _ dice.Roller = (*ScriptedRoller)(nil)
