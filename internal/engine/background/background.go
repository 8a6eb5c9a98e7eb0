// Package background derives the playfield's decorative layout from the match
// seed. It produces data only; drawing is left to the client.
package background

import (
	"github.com/KirkDiggler/tower-defense/internal/engine/rng"
	"github.com/KirkDiggler/tower-defense/internal/entities"
)

// Theme is the terrain style
type Theme string

// Themes, in seed order
const (
	ThemeGrassland Theme = "grassland"
	ThemeDesert    Theme = "desert"
	ThemeSnow      Theme = "snow"
	ThemeVolcanic  Theme = "volcanic"
)

var themes = []Theme{ThemeGrassland, ThemeDesert, ThemeSnow, ThemeVolcanic}

// Decoration kinds
const (
	KindGrass      = "grass"
	KindFlower     = "flower"
	KindDune       = "dune"
	KindRock       = "rock"
	KindSnowPatch  = "snow_patch"
	KindIceCrystal = "ice_crystal"
	KindLava       = "lava_stream"
	KindEmber      = "ember"
)

// Decoration is one element laid over the gradient
type Decoration struct {
	Kind     string         `json:"kind"`
	Position entities.Vec2  `json:"position"`
	End      *entities.Vec2 `json:"end,omitempty"` // lava streams run from Position to End
	Size     float64        `json:"size"`
	Hue      float64        `json:"hue,omitempty"` // flowers only
	Color    string         `json:"color"`
}

// Layout is the full background description
type Layout struct {
	Seed        int64        `json:"seed"`
	Theme       Theme        `json:"theme"`
	Width       float64      `json:"width"`
	Height      float64      `json:"height"`
	Gradient    [2]string    `json:"gradient"` // top, bottom
	Decorations []Decoration `json:"decorations"`
}

// Generate builds the layout for seed. The same seed and size always give
// the same layout.
func Generate(seed int64, width, height float64) *Layout {
	g := &generator{r: rng.New(seed), w: width, h: height}

	theme := themes[rng.Intn(g.r, len(themes))]
	layout := &Layout{Seed: seed, Theme: theme, Width: width, Height: height}

	switch theme {
	case ThemeGrassland:
		layout.Gradient = [2]string{"#7CB342", "#4CAF50"}
		g.scatter(KindGrass, 200, "rgba(56, 142, 60, 0.3)", 2, 4)
		for i := 0; i < 15; i++ {
			p := g.point()
			g.add(Decoration{Kind: KindFlower, Position: p, Size: 2, Hue: g.r.Next() * 360})
		}
	case ThemeDesert:
		layout.Gradient = [2]string{"#FFE0B2", "#FFCC02"}
		g.scatter(KindDune, 10, "rgba(255, 193, 7, 0.3)", 30, 80)
		g.scatter(KindRock, 25, "rgba(121, 85, 72, 0.6)", 3, 8)
	case ThemeSnow:
		layout.Gradient = [2]string{"#E3F2FD", "#BBDEFB"}
		g.scatter(KindSnowPatch, 30, "rgba(255, 255, 255, 0.4)", 10, 40)
		g.scatter(KindIceCrystal, 50, "rgba(179, 229, 252, 0.8)", 2, 6)
	case ThemeVolcanic:
		layout.Gradient = [2]string{"#3E2723", "#5D4037"}
		for i := 0; i < 8; i++ {
			start := entities.Vec2{X: g.r.Next() * width, Y: g.r.Next() * height * 0.3}
			end := entities.Vec2{X: start.X + (g.r.Next()-0.5)*200, Y: height}
			g.add(Decoration{
				Kind: KindLava, Position: start, End: &end,
				Size: 5 + g.r.Next()*15, Color: "rgba(255, 87, 34, 0.6)",
			})
		}
		g.scatter(KindRock, 40, "rgba(33, 33, 33, 0.8)", 4, 12)
		g.scatter(KindEmber, 20, "rgba(255, 152, 0, 0.7)", 1, 2)
	}

	layout.Decorations = g.out
	return layout
}

type generator struct {
	r   *rng.Seeded
	w   float64
	h   float64
	out []Decoration
}

func (g *generator) point() entities.Vec2 {
	return entities.Vec2{X: g.r.Next() * g.w, Y: g.r.Next() * g.h}
}

// scatter places n decorations of size base + draw*spread
func (g *generator) scatter(kind string, n int, color string, base, spread float64) {
	for i := 0; i < n; i++ {
		p := g.point()
		g.add(Decoration{Kind: kind, Position: p, Size: base + g.r.Next()*spread, Color: color})
	}
}

func (g *generator) add(d Decoration) {
	g.out = append(g.out, d)
}

// Clone returns a deep copy
func (l *Layout) Clone() *Layout {
	if l == nil {
		return nil
	}
	out := *l
	out.Decorations = make([]Decoration, len(l.Decorations))
	for i, d := range l.Decorations {
		if d.End != nil {
			end := *d.End
			d.End = &end
		}
		out.Decorations[i] = d
	}
	return &out
}
