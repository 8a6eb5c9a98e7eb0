// Package wave schedules the enemies of the current wave onto the field and
// rolls over to the next wave once the field is clear.
package wave

import (
	"log/slog"
	"math"

	"github.com/KirkDiggler/tower-defense/internal/engine/enemies"
	"github.com/KirkDiggler/tower-defense/internal/engine/spawn"
	"github.com/KirkDiggler/tower-defense/internal/entities"
	"github.com/KirkDiggler/tower-defense/internal/errors"
)

// DefaultGracePeriod is the pause before a wave's first spawn
const DefaultGracePeriod = 3.0

// Entry is an enemy waiting to enter the field
type Entry struct {
	Enemy *entities.Enemy
	Due   float64 // seconds since the wave started
}

// Config configures a Manager
type Config struct {
	Composer   *enemies.Composer
	Positioner *spawn.Positioner
	Target     entities.Vec2 // the tower enemies converge on

	// PostHealthGrowth, when positive, scales composed health by wave after
	// composition
	PostHealthGrowth float64
	GracePeriod      float64 // defaults to DefaultGracePeriod
}

// Validate validates the config
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if cfg.Composer == nil {
		vb.RequiredField("Composer")
	}
	if cfg.Positioner == nil {
		vb.RequiredField("Positioner")
	}
	if cfg.PostHealthGrowth < 0 {
		vb.Field("PostHealthGrowth", "must not be negative")
	}
	if cfg.GracePeriod < 0 {
		vb.Field("GracePeriod", "must not be negative")
	}
	return vb.Build()
}

// Manager owns the spawn queue of the current wave
type Manager struct {
	composer   *enemies.Composer
	positioner *spawn.Positioner
	target     entities.Vec2
	postGrowth float64
	grace      float64

	number   int
	tier     string
	interval float64
	elapsed  float64
	queue    []Entry
	boss     bool
}

// New creates a manager with wave 1 queued
func New(cfg *Config) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	m := &Manager{
		composer:   cfg.Composer,
		positioner: cfg.Positioner,
		target:     cfg.Target,
		postGrowth: cfg.PostHealthGrowth,
		grace:      cfg.GracePeriod,
	}
	if m.grace == 0 {
		m.grace = DefaultGracePeriod
	}
	m.Start(1)
	return m, nil
}

// Interval returns the spawn interval for wave
func Interval(wave int) float64 {
	return math.Max(0.2, 1.5-0.05*float64(wave))
}

// Start composes and queues wave number, replacing whatever was pending
func (m *Manager) Start(number int) {
	roster := m.composer.Compose(number)
	if m.postGrowth > 0 {
		enemies.ApplyBlitzScaling(roster, number, m.postGrowth)
	}

	m.number = number
	m.tier = m.composer.Catalog().Tier(number).Name
	m.interval = Interval(number)
	m.elapsed = 0
	m.boss = false

	positions := m.positioner.Generate(len(roster), number, m.target)
	m.queue = make([]Entry, 0, len(roster))
	for i, e := range roster {
		e.Position = positions[i].Point
		due := math.Max(positions[i].Delay, float64(i)*m.interval)
		m.queue = append(m.queue, Entry{Enemy: e, Due: m.grace + due})
		if e.IsBoss {
			m.boss = true
		}
	}

	slog.Debug("wave queued",
		"wave", number,
		"tier", m.tier,
		"enemies", len(roster),
		"boss", m.boss)
}

// Update advances the wave clock by dt and returns the enemies now due, in
// queue order
func (m *Manager) Update(dt float64) []*entities.Enemy {
	m.elapsed += dt

	n := 0
	for n < len(m.queue) && m.queue[n].Due <= m.elapsed {
		n++
	}
	if n == 0 {
		return nil
	}

	spawned := make([]*entities.Enemy, n)
	for i := 0; i < n; i++ {
		spawned[i] = m.queue[i].Enemy
	}
	m.queue = m.queue[n:]
	return spawned
}

// Complete starts the next wave when nothing is queued and live is zero. It
// reports whether a new wave began.
func (m *Manager) Complete(live int) bool {
	if live > 0 || len(m.queue) > 0 {
		return false
	}
	m.Start(m.number + 1)
	return true
}

// Number is the current wave, starting at 1
func (m *Manager) Number() int {
	return m.number
}

// Tier names the composition tier of the current wave
func (m *Manager) Tier() string {
	return m.tier
}

// HasBoss reports whether the current wave contains a boss
func (m *Manager) HasBoss() bool {
	return m.boss
}

// SpawnInterval is the gap between spawns in the current wave
func (m *Manager) SpawnInterval() float64 {
	return m.interval
}

// Pending returns the number of enemies still queued
func (m *Manager) Pending() int {
	return len(m.queue)
}

// Queue returns a copy of the pending entries
func (m *Manager) Queue() []Entry {
	out := make([]Entry, len(m.queue))
	copy(out, m.queue)
	return out
}
