package ecs

// Commands provides a buffer for deferred structural changes that are applied at the end of a frame.
// This keeps entity and system membership stable while systems are iterating.
type Commands struct {
	spawns   []*Entity
	removals []removeEntityCommand
	adds     []addComponentCommand
	removes  []removeComponentCommand
	defers   []deferCommand
}

func newCommands() *Commands {
	return &Commands{}
}

type deferCommand struct {
	fn func()
}

type removeEntityCommand struct {
	entity  *Entity
	destroy bool
}

type addComponentCommand struct {
	entity    *Entity
	component Component
}

type removeComponentCommand struct {
	entity   *Entity
	compType ComponentType
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Spawn queues adding an entity, with any components it already holds, to the scene.
func (c *Commands) Spawn(entity *Entity) {
	c.spawns = append(c.spawns, entity)
}

// Remove queues taking an entity out of the scene. Its components stay attached.
func (c *Commands) Remove(entity *Entity) {
	c.removals = append(c.removals, removeEntityCommand{entity: entity})
}

// Destroy queues removing an entity from the scene and destroying it.
func (c *Commands) Destroy(entity *Entity) {
	c.removals = append(c.removals, removeEntityCommand{entity: entity, destroy: true})
}

// AddComponent queues a component addition operation.
func (c *Commands) AddComponent(entity *Entity, component Component) {
	c.adds = append(c.adds, addComponentCommand{
		entity:    entity,
		component: component,
	})
}

// RemoveComponent queues a component removal operation.
func (c *Commands) RemoveComponent(entity *Entity, compType ComponentType) {
	c.removes = append(c.removes, removeComponentCommand{
		entity:   entity,
		compType: compType,
	})
}

// Flush applies all commands to the scene, resetting the buffer state
func (c *Commands) Flush(scene *Scene) {
	removed := make(map[*Entity]bool)

	for _, cmd := range c.removals {
		scene.RemoveEntity(cmd.entity)
		if cmd.destroy {
			cmd.entity.Destroy()
		}
		removed[cmd.entity] = true
	}

	for _, cmd := range c.removes {
		if !removed[cmd.entity] {
			cmd.entity.RemoveComponent(cmd.compType)
		}
	}

	for _, cmd := range c.adds {
		if !removed[cmd.entity] {
			cmd.entity.AddComponent(cmd.component)
		}
	}

	for _, entity := range c.spawns {
		scene.AddEntity(entity)
	}

	for _, df := range c.defers {
		df.fn()
	}

	c.spawns = c.spawns[:0]
	c.removals = c.removals[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
}
