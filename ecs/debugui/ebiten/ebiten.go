// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/okit/ecs"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
// Use this to integrate Dear ImGui rendering into Ebiten game loops.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// Game implements ebiten.Game by running one Scheduler frame per Ebiten
// update, wrapped in an ImGui frame so debug panels can draw.
type Game struct {
	Scheduler *ecs.Scheduler
	Backend   *ImguiBackend
	// DrawFunc draws game content beneath the ImGui overlay.
	DrawFunc func(screen *ebiten.Image)
}

func NewGame(scheduler *ecs.Scheduler, backend *ImguiBackend) *Game {
	return &Game{Scheduler: scheduler, Backend: backend}
}

// DeltaTime is the fixed step passed to the scheduler, one Ebiten tick.
func (g *Game) DeltaTime() float64 {
	return 1.0 / float64(ebiten.TPS())
}

func (g *Game) Update() error {
	if g.Backend == nil {
		g.Scheduler.Once(g.DeltaTime())
		return nil
	}

	// Begin ImGui frame before executing systems
	g.Backend.BeginFrame()

	// Execute all ECS systems (including ImguiSystem)
	g.Scheduler.Once(g.DeltaTime())

	// End ImGui frame after systems complete
	g.Backend.EndFrame()

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.DrawFunc != nil {
		g.DrawFunc(screen)
	}

	// Draw ImGui overlay on top
	if g.Backend != nil {
		g.Backend.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.Backend != nil {
		g.Backend.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

var _ ebiten.Game = (*Game)(nil)
