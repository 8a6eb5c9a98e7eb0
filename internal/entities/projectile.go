package entities

// Projectile defaults
const (
	ProjectileRadius = 5.0
	ProjectileSpeed  = 300.0 // units per second
)

// Projectile flies along the heading fixed when it was fired
type Projectile struct {
	Position Vec2    `json:"position"`
	Velocity Vec2    `json:"velocity"` // unit heading
	Speed    float64 `json:"speed"`
	Radius   float64 `json:"radius"`
	Damage   float64 `json:"damage"`
	Active   bool    `json:"active"`
}

// NewProjectile aims a projectile from origin at target carrying damage
func NewProjectile(origin, target Vec2, damage float64) *Projectile {
	return &Projectile{
		Position: origin,
		Velocity: FromAngle(target.Sub(origin).Angle()),
		Speed:    ProjectileSpeed,
		Radius:   ProjectileRadius,
		Damage:   damage,
		Active:   true,
	}
}

// Update moves the projectile and deactivates it once it leaves the field
func (p *Projectile) Update(dt, width, height float64) {
	p.Position = p.Position.Add(p.Velocity.Scale(p.Speed * dt))
	if p.Position.X < 0 || p.Position.X > width || p.Position.Y < 0 || p.Position.Y > height {
		p.Active = false
	}
}

// Hits reports whether the projectile overlaps e
func (p *Projectile) Hits(e *Enemy) bool {
	return p.Position.Dist(e.Position)-e.Radius-p.Radius < 1
}
