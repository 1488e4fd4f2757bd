package ecs

import (
	"slices"

	"github.com/google/uuid"
	"github.com/plus3/okit/framelog"
)

// Scene owns a set of entities and acts as their delegate, keeping every
// registered component system in sync with the components they hold.
type Scene struct {
	name     string
	entities []*Entity
	byID     map[uuid.UUID]*Entity
	routers  []router
	log      *framelog.Log
}

type SceneOption func(*Scene)

// WithSceneLog sets the log used by the scene, its entities and its
// component systems when they have none of their own.
func WithSceneLog(l *framelog.Log) SceneOption {
	return func(s *Scene) { s.log = l }
}

func NewScene(name string, opts ...SceneOption) *Scene {
	s := &Scene{
		name: name,
		byID: make(map[uuid.UUID]*Entity),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scene) Name() string       { return s.name }
func (s *Scene) Log() *framelog.Log { return s.log }

// NewEntity creates an entity, adds it to the scene and attaches components.
func (s *Scene) NewEntity(name string, components ...Component) *Entity {
	e := NewEntity(name, WithLog(s.log))
	s.AddEntity(e)
	e.AddComponents(components...)
	return e
}

// AddEntity makes the scene the entity's delegate and registers its current
// components with every component system. It returns false if the entity
// is already part of the scene.
func (s *Scene) AddEntity(e *Entity) bool {
	if e == nil {
		return false
	}
	if _, ok := s.byID[e.ID()]; ok {
		s.log.Add("entity already in scene: "+e.String(), framelog.Object(s.name))
		return false
	}

	e.SetDelegate(s)
	if e.log == nil {
		e.log = s.log
	}
	s.entities = append(s.entities, e)
	s.byID[e.ID()] = e

	for _, r := range s.routers {
		r.resolveIn(e)
	}
	return true
}

// RemoveEntity withdraws the entity's components from all component systems
// and detaches the entity from the scene. The entity keeps its components.
func (s *Scene) RemoveEntity(e *Entity) bool {
	if e == nil {
		return false
	}
	if _, ok := s.byID[e.ID()]; !ok {
		return false
	}

	for _, c := range e.components {
		for _, r := range s.routers {
			r.discard(e, c)
		}
	}

	delete(s.byID, e.ID())
	i := slices.Index(s.entities, e)
	s.entities = slices.Delete(s.entities, i, i+1)
	if e.Delegate() == EntityDelegate(s) {
		e.SetDelegate(nil)
	}
	return true
}

// AddSystem connects a component system to the scene and collects the
// matching components of entities already present. Systems that are not
// component systems are ignored and false is returned.
func (s *Scene) AddSystem(system System) bool {
	r, ok := system.(router)
	if !ok {
		return false
	}
	if slices.Contains(s.routers, r) {
		return false
	}
	r.useLog(s.log)
	s.routers = append(s.routers, r)
	for _, e := range s.entities {
		r.resolveIn(e)
	}
	return true
}

// Entity returns the first entity with the given name.
func (s *Scene) Entity(name string) *Entity {
	for _, e := range s.entities {
		if e.Name() == name {
			return e
		}
	}
	return nil
}

func (s *Scene) EntityByID(id uuid.UUID) *Entity {
	return s.byID[id]
}

// Entities returns the scene's entities in the order they were added.
func (s *Scene) Entities() []*Entity {
	return slices.Clone(s.entities)
}

func (s *Scene) Len() int {
	return len(s.entities)
}

// Destroy removes and destroys every entity, newest first.
func (s *Scene) Destroy() {
	for len(s.entities) > 0 {
		e := s.entities[len(s.entities)-1]
		s.RemoveEntity(e)
		e.Destroy()
	}
}

func (s *Scene) ComponentAdded(e *Entity, c Component) {
	for _, r := range s.routers {
		r.accept(e, c)
	}
}

func (s *Scene) ComponentWillBeRemoved(e *Entity, c Component) {
	for _, r := range s.routers {
		r.discard(e, c)
	}
}

func (s *Scene) EntitySpawned(parent, child *Entity) bool {
	if !s.AddEntity(child) {
		return false
	}
	s.log.Add(parent.String()+" spawned "+child.String(), framelog.Object(s.name))
	return true
}

func (s *Scene) EntityRequestedRemoval(e *Entity) {
	s.RemoveEntity(e)
}
