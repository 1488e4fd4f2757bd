package ecs_test

import (
	"context"
	"fmt"
	"time"

	"github.com/plus3/okit/ecs"
)

var (
	TransformType = ecs.NewComponentType("example.Transform")
	HitpointsType = ecs.NewComponentType("example.Hitpoints")
)

type Transform struct {
	ecs.Base
	X, Y   float64
	DX, DY float64
}

func (t *Transform) Type() ecs.ComponentType { return TransformType }

func (t *Transform) Update(dt float64) {
	t.X += t.DX * dt
	t.Y += t.DY * dt
}

type Hitpoints struct {
	ecs.Base
	Current, Max int
	RegenRate    float64
}

func (h *Hitpoints) Type() ecs.ComponentType { return HitpointsType }

func (h *Hitpoints) Update(dt float64) {
	h.Current = min(h.Max, h.Current+int(h.RegenRate*dt))
}

// ExampleScheduler demonstrates building a game loop from component systems.
// Each ComponentSystem registered with the Scheduler is connected to the
// scene, so components attached to scene entities are picked up without
// further bookkeeping. Systems run in registration order, and every member
// of a system is updated in the order it was added.
func ExampleScheduler() {
	scene := ecs.NewScene("level")
	scheduler := ecs.NewScheduler(scene)
	scheduler.Register(ecs.NewComponentSystem[*Transform]())
	scheduler.Register(ecs.NewComponentSystem[*Hitpoints]())

	scene.NewEntity("hero",
		&Transform{DX: 10, DY: 5},
		&Hitpoints{Current: 80, Max: 100, RegenRate: 10},
	)
	scene.NewEntity("ghost",
		&Transform{X: 100, Y: 100, DX: -5, DY: -5},
		&Hitpoints{Current: 50, Max: 100, RegenRate: 10},
	)

	scheduler.Once(1.0)

	fmt.Printf("After frame %d:\n", scheduler.CurrentFrame())
	for _, e := range scene.Entities() {
		t, _ := ecs.Get[*Transform](e)
		h, _ := ecs.Get[*Hitpoints](e)
		fmt.Printf("%s: (%.0f, %.0f), Health: %d/%d\n", e.Name(), t.X, t.Y, h.Current, h.Max)
	}

	// Output:
	// After frame 1:
	// hero: (10, 5), Health: 90/100
	// ghost: (95, 95), Health: 60/100
}

// ExampleScheduler_Run demonstrates running a continuous game loop.
// The Run method blocks and executes all systems at a fixed interval
// until the context is cancelled.
func ExampleScheduler_Run() {
	scene := ecs.NewScene("level")
	scene.NewEntity("mover", &Transform{DX: 1, DY: 1})

	scheduler := ecs.NewScheduler(scene)
	scheduler.Register(ecs.NewComponentSystem[*Transform]())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	scheduler.Run(ctx, 16*time.Millisecond)

	fmt.Println("Scheduler stopped")
	// Output:
	// Scheduler stopped
}
