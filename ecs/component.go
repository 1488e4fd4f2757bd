package ecs

import (
	"fmt"
	"sync"
	"weak"

	"github.com/cespare/xxhash/v2"
)

// ComponentType is the stable identifier a component reports for itself.
// An entity holds at most one component per ComponentType.
type ComponentType uint64

type typeRegistry struct {
	mu     sync.RWMutex
	names  map[ComponentType]string
	relays map[ComponentType]ComponentType
}

var componentTypes = &typeRegistry{
	names:  make(map[ComponentType]string),
	relays: make(map[ComponentType]ComponentType),
}

// NewComponentType derives a ComponentType from name and registers it.
// Calling it twice with the same name returns the same value. It panics if
// two different names hash to the same value.
func NewComponentType(name string) ComponentType {
	t := ComponentType(xxhash.Sum64String(name))

	componentTypes.mu.Lock()
	defer componentTypes.mu.Unlock()

	if existing, ok := componentTypes.names[t]; ok {
		if existing != name {
			panic(fmt.Sprintf("ecs: component type %q collides with %q", name, existing))
		}
		return t
	}
	componentTypes.names[t] = name
	return t
}

// Name returns the name t was registered with.
func (t ComponentType) Name() string {
	componentTypes.mu.RLock()
	defer componentTypes.mu.RUnlock()
	if name, ok := componentTypes.names[t]; ok {
		return name
	}
	return fmt.Sprintf("ComponentType(%#x)", uint64(t))
}

func (t ComponentType) String() string {
	return t.Name()
}

// RelayTypeOf returns the type reported by relays targeting components of type t.
func RelayTypeOf(t ComponentType) ComponentType {
	componentTypes.mu.RLock()
	relay, ok := componentTypes.relays[t]
	componentTypes.mu.RUnlock()
	if ok {
		return relay
	}

	relay = NewComponentType("relay<" + t.Name() + ">")

	componentTypes.mu.Lock()
	componentTypes.relays[t] = relay
	componentTypes.mu.Unlock()
	return relay
}

// Component is a unit of data and behavior attached to at most one Entity.
// Implementations embed Base.
type Component interface {
	// Type identifies the component's concrete kind.
	Type() ComponentType
	// Update is called once per frame by every ComponentSystem the
	// component belongs to.
	Update(dt float64)
	// Entity returns the owning entity, or nil.
	Entity() *Entity

	setEntity(e *Entity)
}

// Attachable is implemented by components that need setup once attached.
type Attachable interface {
	Attach(e *Entity)
}

// Detachable is implemented by components that release resources when
// they are removed from their entity.
type Detachable interface {
	Detach(e *Entity)
}

// Base provides the entity back-reference and a no-op Update.
// The reference is weak: a component never keeps its entity alive.
type Base struct {
	entity weak.Pointer[Entity]
}

func (b *Base) Entity() *Entity {
	return b.entity.Value()
}

func (b *Base) Update(float64) {}

func (b *Base) setEntity(e *Entity) {
	if e == nil {
		b.entity = weak.Pointer[Entity]{}
		return
	}
	b.entity = weak.Make(e)
}

// Relayer is a component that stands in for a target component, which may
// belong to another entity.
type Relayer interface {
	Component
	Target() Component
}

// Relay forwards lookups to a target component without taking ownership of it.
// A relay does not displace a direct component of the target's type.
type Relay struct {
	Base
	target Component
}

// NewRelay creates a relay for target.
func NewRelay(target Component) *Relay {
	return &Relay{target: target}
}

func (r *Relay) Type() ComponentType {
	return RelayTypeOf(r.target.Type())
}

func (r *Relay) Target() Component {
	return r.target
}
