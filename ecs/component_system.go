package ecs

import (
	"reflect"
	"slices"

	"github.com/plus3/okit/framelog"
)

// Resolver extracts the member a ComponentSystem should track from an entity.
type Resolver[T Component] func(e *Entity) (T, bool)

// DirectOnly resolves only components the entity owns itself.
func DirectOnly[T Component](e *Entity) (T, bool) {
	return GetDirect[T](e)
}

// FollowRelays also resolves the targets of the entity's relays.
func FollowRelays[T Component](e *Entity) (T, bool) {
	return Get[T](e)
}

// ComponentSystem batches components of one kind for per-frame updates.
// Members are updated in the order they were added.
type ComponentSystem[T Component] struct {
	name     string
	members  []T
	set      map[Component]struct{}
	resolver Resolver[T]
	log      *framelog.Log

	// routes counts the scene paths holding a member: its owner plus any
	// relays to it. relayed maps each counted relay to its target.
	routes  map[Component]int
	relayed map[Component]Component
}

// NewComponentSystem creates an empty system. T may be a concrete component
// type or an interface that several component types implement.
func NewComponentSystem[T Component]() *ComponentSystem[T] {
	return &ComponentSystem[T]{
		name:     "ComponentSystem[" + reflect.TypeFor[T]().String() + "]",
		set:      make(map[Component]struct{}),
		resolver: DirectOnly[T],
		routes:   make(map[Component]int),
		relayed:  make(map[Component]Component),
	}
}

func (s *ComponentSystem[T]) Name() string { return s.name }

func (s *ComponentSystem[T]) SetName(name string) {
	s.name = name
}

// SetResolver changes how AddFoundIn and Scene routing find members.
func (s *ComponentSystem[T]) SetResolver(r Resolver[T]) {
	if r == nil {
		r = DirectOnly[T]
	}
	s.resolver = r
}

// SetLog sends the system's advisory messages to l.
func (s *ComponentSystem[T]) SetLog(l *framelog.Log) {
	s.log = l
}

// Add appends c unless it is already a member.
func (s *ComponentSystem[T]) Add(c T) bool {
	key := Component(c)
	if key == nil {
		return false
	}
	if _, ok := s.set[key]; ok {
		s.log.Add(c.Type().Name()+" already in "+s.name, framelog.Function("Add"))
		return false
	}
	s.insert(key, c)
	return true
}

func (s *ComponentSystem[T]) insert(key Component, c T) {
	s.set[key] = struct{}{}
	s.members = append(s.members, c)
}

// AddFoundIn adds the matching component of each entity, in entity order.
func (s *ComponentSystem[T]) AddFoundIn(entities ...*Entity) {
	for _, e := range entities {
		if c, ok := s.resolver(e); ok {
			s.Add(c)
		}
	}
}

// Remove drops c from the system, keeping the order of the others.
func (s *ComponentSystem[T]) Remove(c T) bool {
	key := Component(c)
	if _, ok := s.set[key]; !ok {
		return false
	}
	delete(s.set, key)
	delete(s.routes, key)
	for r, target := range s.relayed {
		if target == key {
			delete(s.relayed, r)
		}
	}
	i := slices.IndexFunc(s.members, func(m T) bool { return Component(m) == key })
	s.members = slices.Delete(s.members, i, i+1)
	return true
}

// RemoveFoundIn removes the matching component of each entity.
func (s *ComponentSystem[T]) RemoveFoundIn(entities ...*Entity) {
	for _, e := range entities {
		if c, ok := s.resolver(e); ok {
			s.Remove(c)
		}
	}
}

func (s *ComponentSystem[T]) Contains(c T) bool {
	_, ok := s.set[Component(c)]
	return ok
}

func (s *ComponentSystem[T]) Len() int {
	return len(s.members)
}

// Components returns the members in update order.
func (s *ComponentSystem[T]) Components() []T {
	return slices.Clone(s.members)
}

// Update calls Update on every member in insertion order. Members removed
// by an earlier Update in the same pass are skipped; members added during
// the pass are first updated on the next call.
func (s *ComponentSystem[T]) Update(dt float64) {
	for _, c := range slices.Clone(s.members) {
		if _, ok := s.set[Component(c)]; !ok {
			continue
		}
		c.Update(dt)
	}
}

// Execute runs the system as part of a Scheduler frame.
func (s *ComponentSystem[T]) Execute(frame *UpdateFrame) {
	s.Update(frame.DeltaTime)
}

// accept and discard let a Scene route components without knowing T.

func (s *ComponentSystem[T]) accept(e *Entity, c Component) {
	r, isRelay := c.(Relayer)
	if !isRelay {
		if m, ok := c.(T); ok {
			s.hold(m)
		}
		return
	}
	if _, ok := s.relayed[c]; ok {
		return
	}
	if m, ok := s.resolver(e); ok && Component(m) == r.Target() {
		s.relayed[c] = r.Target()
		s.hold(m)
	}
}

func (s *ComponentSystem[T]) discard(_ *Entity, c Component) {
	if _, isRelay := c.(Relayer); !isRelay {
		s.release(c)
		return
	}
	if target, ok := s.relayed[c]; ok {
		delete(s.relayed, c)
		s.release(target)
	}
}

// hold adds a route to m, making it a member on the first one.
func (s *ComponentSystem[T]) hold(m T) {
	key := Component(m)
	if s.routes[key] == 0 {
		if _, member := s.set[key]; !member {
			s.insert(key, m)
		}
	}
	s.routes[key]++
}

// release drops a route and withdraws the member when none are left.
func (s *ComponentSystem[T]) release(key Component) {
	n, ok := s.routes[key]
	if !ok {
		return
	}
	if n > 1 {
		s.routes[key] = n - 1
		return
	}
	delete(s.routes, key)
	if m, ok := key.(T); ok {
		s.Remove(m)
	}
}

func (s *ComponentSystem[T]) useLog(l *framelog.Log) {
	if s.log == nil {
		s.log = l
	}
}

// router is the type-erased view of a ComponentSystem used by Scene.
type router interface {
	System
	accept(e *Entity, c Component)
	discard(e *Entity, c Component)
	useLog(l *framelog.Log)
	resolveIn(e *Entity)
}

func (s *ComponentSystem[T]) resolveIn(e *Entity) {
	for _, c := range e.components {
		s.accept(e, c)
	}
}
