// Package spawn decides where enemies enter the playfield. All placement is
// drawn from the match seed so a shared seed reproduces the same geometry.
package spawn

import (
	"log/slog"
	"math"

	"github.com/KirkDiggler/tower-defense/internal/engine/rng"
	"github.com/KirkDiggler/tower-defense/internal/entities"
	"github.com/KirkDiggler/tower-defense/internal/errors"
)

// ZoneName identifies a spawn zone
type ZoneName string

// Spawn zones
const (
	ZoneLeft     ZoneName = "left"
	ZoneTop      ZoneName = "top"
	ZoneRight    ZoneName = "right"
	ZoneTopLeft  ZoneName = "top-left"
	ZoneTopRight ZoneName = "top-right"
)

// Placement constants
const (
	ConeAngle      = math.Pi / 3
	MinDistance    = 100.0
	MaxDistance    = 300.0
	MinSeparation  = 30.0
	MaxAttempts    = 20
	ConeDelayStep  = 0.2
	ZoneDelayStep  = 0.15
	SpawnableRatio = 0.8 // the bottom fifth of the field never hosts spawns
)

// Zone is a named spawn area
type Zone struct {
	Name ZoneName `json:"name"`
	entities.Rect
}

// Position is one planned spawn
type Position struct {
	Point entities.Vec2 `json:"point"`
	Zone  ZoneName      `json:"zone"`
	Delay float64       `json:"delay"` // seconds after the wave's spawning starts
}

// Config configures a Positioner
type Config struct {
	Width  float64
	Height float64
	Seed   int64
}

// Validate validates the config
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidatePositive("Width", cfg.Width, vb)
	errors.ValidatePositive("Height", cfg.Height, vb)
	if cfg.Seed < 0 {
		vb.Field("Seed", "must not be negative")
	}
	return vb.Build()
}

// Positioner plans spawn positions
type Positioner struct {
	width  float64
	height float64
	rng    *rng.Seeded
	zones  []Zone
}

// New creates a positioner for a width x height field
func New(cfg *Config) (*Positioner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	w, h := cfg.Width, cfg.Height
	return &Positioner{
		width:  w,
		height: h,
		rng:    rng.New(cfg.Seed),
		zones: []Zone{
			{Name: ZoneLeft, Rect: entities.Rect{X: 0, Y: 0, Width: 50, Height: h * SpawnableRatio}},
			{Name: ZoneTop, Rect: entities.Rect{X: 0, Y: 0, Width: w, Height: 50}},
			{Name: ZoneRight, Rect: entities.Rect{X: w - 50, Y: 0, Width: 50, Height: h * SpawnableRatio}},
			{Name: ZoneTopLeft, Rect: entities.Rect{X: 0, Y: 0, Width: w * 0.3, Height: h * 0.3}},
			{Name: ZoneTopRight, Rect: entities.Rect{X: w * 0.7, Y: 0, Width: w * 0.3, Height: h * 0.3}},
		},
	}, nil
}

// Seed returns the seed placement draws from
func (p *Positioner) Seed() int64 {
	return p.rng.Seed()
}

// Reseed restarts the placement stream
func (p *Positioner) Reseed(seed int64) {
	p.rng.Reseed(seed)
}

// Zones returns every spawn zone
func (p *Positioner) Zones() []Zone {
	out := make([]Zone, len(p.zones))
	copy(out, p.zones)
	return out
}

// AllowedZones lists the zones open in wave: the early tier only uses the
// left and top edges, the mid tier adds the right edge
func (p *Positioner) AllowedZones(wave int) []Zone {
	switch {
	case wave <= 5:
		return p.pick(ZoneLeft, ZoneTop)
	case wave <= 15:
		return p.pick(ZoneLeft, ZoneTop, ZoneRight)
	default:
		return p.Zones()
	}
}

// Zone draws one of the zones allowed in wave
func (p *Positioner) Zone(wave int) Zone {
	allowed := p.AllowedZones(wave)
	return allowed[rng.Intn(p.rng, len(allowed))]
}

// Generate places count enemies in a cone behind a random point of a zone,
// facing the tower
func (p *Positioner) Generate(count, wave int, tower entities.Vec2) []Position {
	zone := p.Zone(wave)

	base := entities.Vec2{
		X: zone.X + p.rng.Next()*zone.Width,
		Y: zone.Y + p.rng.Next()*zone.Height,
	}
	bearing := tower.Sub(base).Angle()

	positions := make([]Position, 0, count)
	for i := 0; i < count; i++ {
		var candidate entities.Vec2
		for attempt := 0; attempt < MaxAttempts; attempt++ {
			angle := bearing + (p.rng.Next()-0.5)*ConeAngle + math.Pi
			dist := MinDistance + p.rng.Next()*(MaxDistance-MinDistance)
			candidate = p.clamp(base.Add(entities.FromAngle(angle).Scale(dist)))
			if !tooClose(candidate, positions) {
				break
			}
		}

		positions = append(positions, Position{
			Point: candidate,
			Zone:  zone.Name,
			Delay: float64(i) * ConeDelayStep,
		})
	}
	return positions
}

// GenerateInZone scatters count enemies uniformly inside a named zone. An
// unknown zone falls back to Generate for the first wave.
func (p *Positioner) GenerateInZone(name ZoneName, count int, tower entities.Vec2) []Position {
	zone, ok := p.find(name)
	if !ok {
		slog.Warn("unknown spawn zone, using cone placement", "zone", name)
		return p.Generate(count, 1, tower)
	}

	positions := make([]Position, 0, count)
	for i := 0; i < count; i++ {
		positions = append(positions, Position{
			Point: entities.Vec2{
				X: zone.X + p.rng.Next()*zone.Width,
				Y: zone.Y + p.rng.Next()*zone.Height,
			},
			Zone:  name,
			Delay: float64(i) * ZoneDelayStep,
		})
	}
	return positions
}

func (p *Positioner) clamp(v entities.Vec2) entities.Vec2 {
	return entities.Vec2{
		X: math.Max(0, math.Min(p.width, v.X)),
		Y: math.Max(0, math.Min(p.height*SpawnableRatio, v.Y)),
	}
}

func (p *Positioner) find(name ZoneName) (Zone, bool) {
	for _, z := range p.zones {
		if z.Name == name {
			return z, true
		}
	}
	return Zone{}, false
}

func (p *Positioner) pick(names ...ZoneName) []Zone {
	out := make([]Zone, 0, len(names))
	for _, n := range names {
		if z, ok := p.find(n); ok {
			out = append(out, z)
		}
	}
	return out
}

func tooClose(v entities.Vec2, placed []Position) bool {
	for _, pos := range placed {
		if pos.Point.Dist(v) < MinSeparation {
			return true
		}
	}
	return false
}
