package ecs_test

import (
	"fmt"

	"github.com/plus3/okit/ecs"
)

// Common test component types
var (
	MovementType = ecs.NewComponentType("test.Movement")
	HealthType   = ecs.NewComponentType("test.Health")
	SpriteType   = ecs.NewComponentType("test.Sprite")
	HookedType   = ecs.NewComponentType("test.Hooked")
	RemoverType  = ecs.NewComponentType("test.Remover")
)

type Movement struct {
	ecs.Base
	Velocity float64
	X        float64
	Updates  int
	trace    *[]string
}

func (m *Movement) Type() ecs.ComponentType { return MovementType }

func (m *Movement) Update(dt float64) {
	m.Updates++
	m.X += m.Velocity * dt
	if m.trace != nil {
		*m.trace = append(*m.trace, fmt.Sprintf("movement v=%g", m.Velocity))
	}
}

type Health struct {
	ecs.Base
	Current, Max int
	trace        *[]string
}

func (h *Health) Type() ecs.ComponentType { return HealthType }

func (h *Health) Update(float64) {
	if h.Current < h.Max {
		h.Current++
	}
	if h.trace != nil {
		*h.trace = append(*h.trace, fmt.Sprintf("health %d", h.Current))
	}
}

// Sprite has no per-frame behavior and relies on the Base no-op Update.
type Sprite struct {
	ecs.Base
	Image string
}

func (s *Sprite) Type() ecs.ComponentType { return SpriteType }

// Drawable is implemented by several component types.
type Drawable interface {
	ecs.Component
	Layer() int
}

func (m *Movement) Layer() int { return 1 }
func (s *Sprite) Layer() int   { return 2 }

// Hooked counts its lifecycle hook calls.
type Hooked struct {
	ecs.Base
	Attached, Detached int
	Owners             []string
}

func (h *Hooked) Type() ecs.ComponentType { return HookedType }

func (h *Hooked) Attach(e *ecs.Entity) {
	h.Attached++
	h.Owners = append(h.Owners, e.Name())
}

func (h *Hooked) Detach(*ecs.Entity) {
	h.Detached++
}

// Remover withdraws itself from its entity during Update and destroys
// Victim first when set.
type Remover struct {
	ecs.Base
	Victim *ecs.Entity
	trace  *[]string
}

func (r *Remover) Type() ecs.ComponentType { return RemoverType }

func (r *Remover) Update(float64) {
	if r.trace != nil {
		*r.trace = append(*r.trace, "remover")
	}
	if r.Victim != nil {
		r.Victim.Destroy()
	}
	if e := r.Entity(); e != nil {
		e.RemoveComponent(RemoverType)
	}
}

// recordingDelegate captures delegate callbacks in order.
type recordingDelegate struct {
	events       []string
	rejectSpawns bool
	spawned      []*ecs.Entity
	removed      []*ecs.Entity
}

func (d *recordingDelegate) describe(c ecs.Component) string {
	if m, ok := c.(*Movement); ok {
		return fmt.Sprintf("Movement(v=%g)", m.Velocity)
	}
	return c.Type().Name()
}

func (d *recordingDelegate) ComponentAdded(e *ecs.Entity, c ecs.Component) {
	d.events = append(d.events, "added "+d.describe(c))
}

func (d *recordingDelegate) ComponentWillBeRemoved(e *ecs.Entity, c ecs.Component) {
	d.events = append(d.events, "will-remove "+d.describe(c))
}

func (d *recordingDelegate) EntitySpawned(parent, child *ecs.Entity) bool {
	if d.rejectSpawns {
		return false
	}
	d.spawned = append(d.spawned, child)
	return true
}

func (d *recordingDelegate) EntityRequestedRemoval(e *ecs.Entity) {
	d.removed = append(d.removed, e)
}
