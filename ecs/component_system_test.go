package ecs_test

import (
	"testing"

	"github.com/plus3/okit/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentSystem(t *testing.T) {
	t.Run("updates members in insertion order", func(t *testing.T) {
		var trace []string
		sys := ecs.NewComponentSystem[ecs.Component]()

		sys.Add(&Movement{Velocity: 2, trace: &trace})
		sys.Add(&Health{Current: 1, Max: 5, trace: &trace})
		sys.Add(&Movement{Velocity: 1, trace: &trace})

		sys.Update(0.5)

		assert.Equal(t, []string{"movement v=2", "health 2", "movement v=1"}, trace)
	})

	t.Run("members removed during update", func(t *testing.T) {
		var trace []string
		scene := ecs.NewScene("level")
		sys := ecs.NewComponentSystem[ecs.Component]()
		scene.AddSystem(sys)

		scene.NewEntity("a", &Remover{trace: &trace})
		scene.NewEntity("b", &Movement{Velocity: 1, trace: &trace})
		scene.NewEntity("c", &Movement{Velocity: 2, trace: &trace})

		require.NotPanics(t, func() { sys.Update(1) })
		assert.Equal(t, []string{"remover", "movement v=1", "movement v=2"}, trace)
		assert.Equal(t, 2, sys.Len())

		trace = nil
		sys.Update(1)
		assert.Equal(t, []string{"movement v=1", "movement v=2"}, trace)
	})

	t.Run("members withdrawn by an earlier update are skipped", func(t *testing.T) {
		var trace []string
		scene := ecs.NewScene("level")
		sys := ecs.NewComponentSystem[ecs.Component]()
		scene.AddSystem(sys)

		late := &Movement{Velocity: 2, trace: &trace}
		victim := ecs.NewEntity("victim")
		scene.NewEntity("a", &Remover{Victim: victim, trace: &trace})
		scene.NewEntity("b", &Movement{Velocity: 1, trace: &trace})
		scene.AddEntity(victim)
		victim.AddComponent(late)

		require.NotPanics(t, func() { sys.Update(1) })
		assert.Equal(t, []string{"remover", "movement v=1"}, trace)
		assert.Equal(t, 0, late.Updates)
		assert.Equal(t, 1, sys.Len())
		assert.Nil(t, scene.Entity("victim"))
	})

	t.Run("duplicates are ignored", func(t *testing.T) {
		sys := ecs.NewComponentSystem[*Movement]()
		sys.SetLog(newTestLog(t))
		m := &Movement{Velocity: 1}

		assert.True(t, sys.Add(m))
		assert.False(t, sys.Add(m))
		assert.Equal(t, 1, sys.Len())

		sys.Update(1)
		assert.Equal(t, 1, m.Updates)
		assert.Equal(t, 1.0, m.X)
	})

	t.Run("duplicate add is logged", func(t *testing.T) {
		l := newTestLog(t)
		sys := ecs.NewComponentSystem[*Movement]()
		sys.SetLog(l)
		m := &Movement{}

		sys.Add(m)
		sys.Add(m)

		require.Equal(t, 1, l.Len())
		assert.Equal(t, "test.Movement already in ComponentSystem[*ecs_test.Movement]", l.Entry(0).Text)
	})

	t.Run("remove keeps order", func(t *testing.T) {
		sys := ecs.NewComponentSystem[*Movement]()
		a, b, c := &Movement{Velocity: 1}, &Movement{Velocity: 2}, &Movement{Velocity: 3}
		sys.Add(a)
		sys.Add(b)
		sys.Add(c)

		assert.True(t, sys.Remove(b))
		assert.False(t, sys.Remove(b))
		assert.Equal(t, []*Movement{a, c}, sys.Components())
		assert.False(t, sys.Contains(b))
		assert.True(t, sys.Contains(c))
	})

	t.Run("add found in entities", func(t *testing.T) {
		m1 := &Movement{}
		m2 := &Movement{}
		e1 := ecs.NewEntity("e1")
		e1.AddComponent(m1)
		e2 := ecs.NewEntity("e2")
		e2.AddComponent(&Health{})
		e3 := ecs.NewEntity("e3")
		e3.AddComponent(m2)

		sys := ecs.NewComponentSystem[*Movement]()
		sys.AddFoundIn(e1, e2, e3)

		assert.Equal(t, []*Movement{m1, m2}, sys.Components())

		sys.RemoveFoundIn(e1)
		assert.Equal(t, []*Movement{m2}, sys.Components())
	})

	t.Run("direct resolver ignores relays", func(t *testing.T) {
		remote := &Movement{}
		e := ecs.NewEntity("e")
		e.AddComponent(ecs.NewRelay(remote))

		sys := ecs.NewComponentSystem[*Movement]()
		sys.AddFoundIn(e)
		assert.Equal(t, 0, sys.Len())
	})

	t.Run("relay resolver follows relays", func(t *testing.T) {
		remote := &Movement{}
		e := ecs.NewEntity("e")
		e.AddComponent(ecs.NewRelay(remote))

		sys := ecs.NewComponentSystem[*Movement]()
		sys.SetResolver(ecs.FollowRelays[*Movement])
		sys.AddFoundIn(e)
		assert.Equal(t, []*Movement{remote}, sys.Components())
	})

	t.Run("name", func(t *testing.T) {
		sys := ecs.NewComponentSystem[*Health]()
		assert.Equal(t, "ComponentSystem[*ecs_test.Health]", sys.Name())
		sys.SetName("health")
		assert.Equal(t, "health", sys.Name())
	})

	t.Run("execute uses frame delta time", func(t *testing.T) {
		sys := ecs.NewComponentSystem[*Movement]()
		m := &Movement{Velocity: 4}
		sys.Add(m)

		sys.Execute(&ecs.UpdateFrame{DeltaTime: 0.25})
		assert.Equal(t, 1.0, m.X)
	})
}
