// arena-demo: a terminal playground for the slotarena core.
//
// Space spawns a bouncer, d removes the most recent one (consuming its
// owned key), f frees the whole bouncer arena at once, q or Escape
// quits. Drawing discovers everything on screen through capability
// iteration; nothing in the render loop names a component type.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/slotarena/arena"
	"github.com/lixenwraith/slotarena/audio"
	"github.com/lixenwraith/slotarena/engine"
	"github.com/lixenwraith/slotarena/status"
)

const eventBounce engine.EventType = iota

var (
	tickFlag  = flag.Duration("tick", 33*time.Millisecond, "Tick interval")
	startFlag = flag.Int("bouncers", 5, "Number of bouncers to spawn at start")
)

// stepSystem advances every Steppable and queues a bounce event per
// wall hit.
type stepSystem struct {
	screen tcell.Screen
	queue  *engine.EventQueue
}

func (s *stepSystem) Update(w *engine.World, dt time.Duration) {
	width, height := s.screen.Size()
	arena.EachCapability(w.Arenas, func(st Steppable) bool {
		if st.Step(width, height, dt) {
			s.queue.Push(engine.Event{Type: eventBounce})
		}
		return true
	})
}

func (s *stepSystem) Priority() int { return 0 }

// bounceHandler plays a chime for each bounce event.
type bounceHandler struct {
	player *audio.Player
	cfg    *audio.Config
}

func (h *bounceHandler) HandleEvent(w *engine.World, ev engine.Event) {
	h.player.Play(audio.Chime(h.cfg, 660, 80*time.Millisecond))
}

func (h *bounceHandler) EventTypes() []engine.EventType {
	return []engine.EventType{eventBounce}
}

func spawnBouncer(w *engine.World) arena.OwnedKey[Bouncer] {
	styles := []tcell.Style{
		tcell.StyleDefault.Foreground(tcell.ColorGreen),
		tcell.StyleDefault.Foreground(tcell.ColorBlue),
		tcell.StyleDefault.Foreground(tcell.ColorYellow),
		tcell.StyleDefault.Foreground(tcell.ColorPurple),
	}
	return arena.Insert(w.Arenas, Bouncer{
		X:     float64(1 + rand.Intn(40)),
		Y:     float64(1 + rand.Intn(15)),
		VX:    5 + rand.Float64()*15,
		VY:    3 + rand.Float64()*8,
		Glyph: rune('0' + rand.Intn(10)),
		Style: styles[rand.Intn(len(styles))],
	})
}

func main() {
	flag.Parse()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "screen init: %v\n", err)
		os.Exit(1)
	}

	// Restore the terminal even if the demo crashes
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "arena-demo crashed: %v\n", r)
			fmt.Fprintf(os.Stderr, "%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	audioCfg := audio.LoadConfig()
	player := audio.NewPlayer(audioCfg)
	if err := player.Initialize(); err != nil {
		// Headless terminals have no audio device; run silent
		audioCfg.Enabled = false
	}
	defer player.Cleanup()

	world := engine.NewWorld()
	sched := engine.NewScheduler(world, *tickFlag)
	world.AddSystem(&stepSystem{screen: screen, queue: sched.Queue()})
	sched.RegisterHandler(&bounceHandler{player: player, cfg: audioCfg})

	arena.SetSingleton(world.Arenas, Banner{
		Text:  "slotarena demo | space: spawn  d: remove  f: free arena  q: quit",
		Style: tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy),
	})
	statusReg := engine.MustGetResource[*status.Registry](world.Resources)
	statTicks := statusReg.Ints.Get("engine.ticks")
	statTickSec := statusReg.Floats.Get("engine.tick.seconds")

	var owned []arena.OwnedKey[Bouncer]
	for i := 0; i < *startFlag; i++ {
		owned = append(owned, spawnBouncer(world))
	}

	// Input goroutine feeding key events to the tick loop
	keys := make(chan *tcell.EventKey, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			switch tev := ev.(type) {
			case *tcell.EventKey:
				keys <- tev
			case *tcell.EventResize:
				screen.Sync()
			case nil:
				close(keys)
				return
			}
		}
	}()

	ticker := time.NewTicker(*tickFlag)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-keys:
			if !ok {
				return
			}
			switch {
			case ev.Key() == tcell.KeyEscape, ev.Rune() == 'q':
				return
			case ev.Rune() == ' ':
				owned = append(owned, spawnBouncer(world))
			case ev.Rune() == 'd':
				if n := len(owned); n > 0 {
					arena.Remove(world.Arenas, owned[n-1])
					owned = owned[:n-1]
				}
			case ev.Rune() == 'f':
				arena.FreeArena[Bouncer](world.Arenas)
				owned = owned[:0] // keys are dead with the arena
			}
		case now := <-ticker.C:
			sched.Tick(now)

			if banner, ok := arena.Singleton[Banner](world.Arenas); ok {
				banner.Text = fmt.Sprintf(
					"slotarena demo | bouncers: %d  ticks: %d  dt: %.1fms | space: spawn  d: remove  f: free arena  q: quit",
					arena.CountOf[Bouncer](world.Arenas), statTicks.Load(),
					statTickSec.Get()*1000)
			}

			screen.Clear()
			arena.EachCapability(world.Arenas, func(r Renderable) bool {
				r.Draw(screen)
				return true
			})
			screen.Show()
		}
	}
}
