package ecs

import (
	"slices"

	"github.com/google/uuid"
	"github.com/kamstrup/intmap"
	"github.com/plus3/okit/framelog"
)

// EntityDelegate is notified about an entity's structural changes.
// Scene is the usual implementation.
type EntityDelegate interface {
	ComponentAdded(e *Entity, c Component)
	ComponentWillBeRemoved(e *Entity, c Component)
	// EntitySpawned returns false to reject child.
	EntitySpawned(parent, child *Entity) bool
	EntityRequestedRemoval(e *Entity)
}

// Entity is a named container owning at most one component per ComponentType.
type Entity struct {
	id         uuid.UUID
	name       string
	components []Component
	index      *intmap.Map[ComponentType, Component]
	delegate   EntityDelegate
	log        *framelog.Log
}

type EntityOption func(*Entity)

// WithLog sends the entity's advisory messages to l.
func WithLog(l *framelog.Log) EntityOption {
	return func(e *Entity) { e.log = l }
}

func WithDelegate(d EntityDelegate) EntityOption {
	return func(e *Entity) { e.delegate = d }
}

// WithID overrides the randomly generated identifier.
func WithID(id uuid.UUID) EntityOption {
	return func(e *Entity) { e.id = id }
}

// NewEntity creates an empty entity. name may be empty and need not be unique.
func NewEntity(name string, opts ...EntityOption) *Entity {
	e := &Entity{
		id:    uuid.New(),
		name:  name,
		index: intmap.New[ComponentType, Component](8),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Entity) ID() uuid.UUID { return e.id }
func (e *Entity) Name() string  { return e.name }
func (e *Entity) SetName(name string) {
	e.name = name
}

func (e *Entity) Delegate() EntityDelegate {
	return e.delegate
}

// SetDelegate replaces the delegate. The entity does not own it.
func (e *Entity) SetDelegate(d EntityDelegate) {
	e.delegate = d
}

func (e *Entity) String() string {
	if e.name != "" {
		return e.name
	}
	return e.id.String()
}

// AddComponent attaches c, moving it from its current owner if needed and
// replacing any component of the same type. The delegate is told about
// every removal before it happens and about the addition afterwards.
func (e *Entity) AddComponent(c Component) {
	if c == nil {
		return
	}

	owner := c.Entity()
	if owner == e {
		if existing, ok := e.index.Get(c.Type()); ok && existing == c {
			e.log.Add("component already attached: "+c.Type().Name(), framelog.Object(e))
			return
		}
	}

	if owner != nil && owner != e {
		owner.removeInstance(c)
	}

	if existing, ok := e.index.Get(c.Type()); ok {
		e.log.Add("replacing component "+c.Type().Name(), framelog.Object(e))
		e.removeInstance(existing)
	}

	e.components = append(e.components, c)
	e.index.Put(c.Type(), c)
	c.setEntity(e)

	if a, ok := c.(Attachable); ok {
		a.Attach(e)
	}
	if e.delegate != nil {
		e.delegate.ComponentAdded(e, c)
	}
}

// AddComponents adds each component in order.
func (e *Entity) AddComponents(cs ...Component) {
	for _, c := range cs {
		e.AddComponent(c)
	}
}

// RemoveComponent removes the component of exactly type t.
func (e *Entity) RemoveComponent(t ComponentType) bool {
	c, ok := e.index.Get(t)
	if !ok {
		return false
	}
	e.removeInstance(c)
	return true
}

func (e *Entity) removeInstance(c Component) {
	i := slices.IndexFunc(e.components, func(x Component) bool { return x == c })
	if i < 0 {
		return
	}

	if e.delegate != nil {
		e.delegate.ComponentWillBeRemoved(e, c)
	}
	if d, ok := c.(Detachable); ok {
		d.Detach(e)
	}

	// The delegate or hook may have changed the slice.
	i = slices.IndexFunc(e.components, func(x Component) bool { return x == c })
	if i < 0 {
		return
	}
	e.components = slices.Delete(e.components, i, i+1)
	if current, ok := e.index.Get(c.Type()); ok && current == c {
		e.index.Del(c.Type())
	}
	c.setEntity(nil)
}

// Component returns the component of type t. A direct component wins over
// a relay whose target has type t.
func (e *Entity) Component(t ComponentType) Component {
	if c, ok := e.index.Get(t); ok {
		return c
	}
	if r, ok := e.index.Get(RelayTypeOf(t)); ok {
		if relay, ok := r.(Relayer); ok {
			return relay.Target()
		}
	}
	return nil
}

// Has reports whether the entity owns a component of exactly type t.
func (e *Entity) Has(t ComponentType) bool {
	_, ok := e.index.Get(t)
	return ok
}

// Components returns the owned components in attachment order.
func (e *Entity) Components() []Component {
	return slices.Clone(e.components)
}

func (e *Entity) Len() int {
	return len(e.components)
}

// Spawn asks the delegate to accept child. Without a delegate nothing
// can accept it and false is returned.
func (e *Entity) Spawn(child *Entity) bool {
	if e.delegate == nil {
		e.log.Add("cannot spawn "+child.String()+": no delegate", framelog.Object(e))
		return false
	}
	return e.delegate.EntitySpawned(e, child)
}

// RequestRemoval asks the delegate to remove the entity.
func (e *Entity) RequestRemoval() {
	if e.delegate != nil {
		e.delegate.EntityRequestedRemoval(e)
	}
}

// Destroy removes every component one at a time, newest first, so each
// teardown hook runs exactly once, then asks the delegate to forget the
// entity and drops it.
func (e *Entity) Destroy() {
	for len(e.components) > 0 {
		e.removeInstance(e.components[len(e.components)-1])
	}
	e.index.Clear()
	if d := e.delegate; d != nil {
		d.EntityRequestedRemoval(e)
		e.delegate = nil
	}
}

// Get returns the first component assignable to T, preferring direct
// components over relay targets. T may be an interface type.
func Get[T Component](e *Entity) (T, bool) {
	if c, ok := GetDirect[T](e); ok {
		return c, true
	}
	for _, c := range e.components {
		if r, ok := c.(Relayer); ok {
			if target, ok := r.Target().(T); ok {
				return target, true
			}
		}
	}
	var zero T
	return zero, false
}

// GetDirect is Get without relay resolution.
func GetDirect[T Component](e *Entity) (T, bool) {
	for _, c := range e.components {
		if _, isRelay := c.(Relayer); isRelay {
			continue
		}
		if v, ok := c.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
