package main

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/slotarena/arena"
	"github.com/lixenwraith/slotarena/registry"
)

// Renderable is the draw-pass capability: the renderer discovers
// everything drawable through capability iteration, without a static
// component list.
type Renderable interface {
	Draw(screen tcell.Screen)
}

// Steppable is the update-pass capability.
type Steppable interface {
	// Step advances the component. Returns true when it hit a wall,
	// so the step system can emit a bounce event.
	Step(w, h int, dt time.Duration) bool
}

// Bouncer is a glyph bouncing around the screen.
type Bouncer struct {
	X, Y   float64
	VX, VY float64 // cells per second
	Glyph  rune
	Style  tcell.Style
}

func (b *Bouncer) Draw(screen tcell.Screen) {
	screen.SetContent(int(b.X), int(b.Y), b.Glyph, nil, b.Style)
}

func (b *Bouncer) Step(w, h int, dt time.Duration) bool {
	b.X += b.VX * dt.Seconds()
	b.Y += b.VY * dt.Seconds()

	bounced := false
	if b.X < 0 {
		b.X, b.VX = 0, -b.VX
		bounced = true
	}
	if b.X >= float64(w) {
		b.X, b.VX = float64(w-1), -b.VX
		bounced = true
	}
	if b.Y < 1 { // row 0 is the banner line
		b.Y, b.VY = 1, -b.VY
		bounced = true
	}
	if b.Y >= float64(h) {
		b.Y, b.VY = float64(h-1), -b.VY
		bounced = true
	}
	return bounced
}

// Banner is a static status line. It demonstrates a second concrete
// type behind the same capability, and lives as a registry singleton
// rather than an arena slot.
type Banner struct {
	Text  string
	Style tcell.Style
}

func (bn *Banner) Draw(screen tcell.Screen) {
	for i, r := range bn.Text {
		screen.SetContent(i, 0, r, nil, bn.Style)
	}
}

func init() {
	registry.Bind(func(as *arena.Arenas) {
		arena.Implements[Renderable, Bouncer](as)
		arena.Implements[Steppable, Bouncer](as)
		arena.Implements[Renderable, Banner](as)
	})
}
