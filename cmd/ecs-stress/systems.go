package main

import (
	"math/rand"

	"github.com/plus3/okit/ecs"
	"github.com/plus3/okit/framelog"
)

// ReaperSystem destroys entities whose lifetime expired and spawns a
// replacement for each, keeping the population stable.
type ReaperSystem struct {
	Lifetimes   *ecs.ComponentSystem[*Lifetime]
	MaxLifetime float64
	Counters    *Counters
	Log         *framelog.Log
	rng         *rand.Rand
}

func (s *ReaperSystem) Execute(frame *ecs.UpdateFrame) {
	reaped := 0
	for _, l := range s.Lifetimes.Components() {
		if !l.expired {
			continue
		}
		l.expired = false
		frame.Commands.Destroy(l.Entity())
		frame.Commands.Spawn(newStressEntity(s.rng, s.MaxLifetime, s.Log))
		reaped++
	}
	if reaped > 0 {
		s.Counters.Destroyed += int64(reaped)
		s.Counters.Spawned += int64(reaped)
		s.Log.Addf("reaped and respawned %d entities", reaped)
	}
}

// ChurnSystem replaces tags and moves relays between entities every frame.
type ChurnSystem struct {
	Tags     *ecs.ComponentSystem[*Tag]
	PerFrame int
	Counters *Counters
	rng      *rand.Rand
}

func (s *ChurnSystem) Execute(frame *ecs.UpdateFrame) {
	tags := s.Tags.Components()
	if len(tags) == 0 {
		return
	}

	for range s.PerFrame {
		old := tags[s.rng.Intn(len(tags))]
		e := old.Entity()
		if e == nil {
			continue
		}
		frame.Commands.AddComponent(e, &Tag{Generation: old.Generation + 1})
		s.Counters.Replaced++

		target := tags[s.rng.Intn(len(tags))]
		if target != old && target.Entity() != nil {
			frame.Commands.AddComponent(e, ecs.NewRelay(target))
			s.Counters.Relays++
		}
	}
}
