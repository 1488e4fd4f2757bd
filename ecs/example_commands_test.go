package ecs_test

import (
	"fmt"

	"github.com/plus3/okit/ecs"
)

type CleanupSystem struct {
	Health *ecs.ComponentSystem[*Hitpoints]
}

func (s *CleanupSystem) Execute(frame *ecs.UpdateFrame) {
	deadCount := 0
	for _, h := range s.Health.Components() {
		if h.Current <= 0 {
			frame.Commands.Destroy(h.Entity())
			deadCount++
		}
	}
	if deadCount > 0 {
		fmt.Printf("Queued %d dead entities for removal\n", deadCount)
	}
}

// ExampleCommands demonstrates using command buffers to defer scene changes.
// Removing an entity while a system walks its members would change the
// membership being iterated, so the change is queued and applied by the
// Scheduler once every system has run.
func ExampleCommands() {
	scene := ecs.NewScene("level")
	scene.NewEntity("alive", &Hitpoints{Current: 10, Max: 10})
	scene.NewEntity("dead", &Hitpoints{Current: 0, Max: 10})
	scene.NewEntity("also dead", &Hitpoints{Current: -5, Max: 10})

	health := ecs.NewComponentSystem[*Hitpoints]()
	scheduler := ecs.NewScheduler(scene)
	scheduler.Register(health)
	scheduler.Register(&CleanupSystem{Health: health})

	fmt.Printf("Before: %d entities\n", scene.Len())
	scheduler.Once(0.1)
	fmt.Printf("After: %d entities\n", scene.Len())

	for _, e := range scene.Entities() {
		fmt.Println("Remaining:", e.Name())
	}

	// Output:
	// Before: 3 entities
	// Queued 2 dead entities for removal
	// After: 1 entities
	// Remaining: alive
}
