package main

import (
	"math/rand"

	"github.com/plus3/okit/ecs"
	"github.com/plus3/okit/framelog"
)

var (
	ParticleType = ecs.NewComponentType("stress.Particle")
	LifetimeType = ecs.NewComponentType("stress.Lifetime")
	TagType      = ecs.NewComponentType("stress.Tag")
)

type Particle struct {
	ecs.Base
	X, Y   float64
	DX, DY float64
}

func (p *Particle) Type() ecs.ComponentType { return ParticleType }

func (p *Particle) Update(dt float64) {
	p.X += p.DX * dt
	p.Y += p.DY * dt
}

// Lifetime asks for its entity's removal once it runs out.
type Lifetime struct {
	ecs.Base
	Remaining float64
	expired   bool
}

func (l *Lifetime) Type() ecs.ComponentType { return LifetimeType }

func (l *Lifetime) Update(dt float64) {
	l.Remaining -= dt
	if l.Remaining <= 0 {
		l.expired = true
	}
}

// Tag carries no behavior; it is swapped out regularly to exercise
// component replacement.
type Tag struct {
	ecs.Base
	Generation int
}

func (t *Tag) Type() ecs.ComponentType { return TagType }

// Counters accumulates churn totals for the report.
type Counters struct {
	Spawned   int64
	Destroyed int64
	Replaced  int64
	Relays    int64
}

func randomParticle(rng *rand.Rand) *Particle {
	return &Particle{
		X:  rng.Float64() * 1000,
		Y:  rng.Float64() * 1000,
		DX: rng.Float64()*20 - 10,
		DY: rng.Float64()*20 - 10,
	}
}

// newStressEntity builds an entity with a particle, a lifetime of up to
// maxLifetime seconds and a tag.
func newStressEntity(rng *rand.Rand, maxLifetime float64, log *framelog.Log) *ecs.Entity {
	e := ecs.NewEntity("", ecs.WithLog(log))
	e.AddComponents(
		randomParticle(rng),
		&Lifetime{Remaining: rng.Float64() * maxLifetime},
		&Tag{},
	)
	return e
}
