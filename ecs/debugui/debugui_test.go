package debugui_test

import (
	"reflect"
	"testing"

	"github.com/plus3/okit/ecs"
	"github.com/plus3/okit/ecs/debugui"
	"github.com/plus3/okit/framelog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	crateType  = ecs.NewComponentType("debugui_test.Crate")
	beaconType = ecs.NewComponentType("debugui_test.Beacon")
)

type Crate struct {
	ecs.Base
	Weight  float64
	Label   string
	Count   uint8
	Sealed  bool
	private int
}

func (*Crate) Type() ecs.ComponentType { return crateType }

type Beacon struct {
	ecs.Base
}

func (*Beacon) Type() ecs.ComponentType { return beaconType }

func newTestScene() *ecs.Scene {
	scene := ecs.NewScene("test")
	crate := &Crate{Weight: 3}
	scene.NewEntity("alpha", crate)
	scene.NewEntity("bravo", &Crate{}, &Beacon{})
	scene.NewEntity("charlie", ecs.NewRelay(crate))
	return scene
}

func TestEntityBrowser(t *testing.T) {
	t.Run("lists and sorts scene entities", func(t *testing.T) {
		browser := debugui.NewEntityBrowserComponent(newTestScene(), 10)
		browser.Refresh()

		names := func() []string {
			var out []string
			for _, info := range browser.FilteredEntities() {
				out = append(out, info.Name)
			}
			return out
		}

		assert.Equal(t, []string{"alpha", "bravo", "charlie"}, names())

		browser.SortBy(3, false)
		assert.Equal(t, "bravo", names()[0])

		browser.SortBy(0, false)
		assert.Equal(t, []string{"charlie", "bravo", "alpha"}, names())
	})

	t.Run("filters by text and type", func(t *testing.T) {
		browser := debugui.NewEntityBrowserComponent(newTestScene(), 10)
		browser.Refresh()

		browser.SetFilter("beacon")
		require.Len(t, browser.FilteredEntities(), 1)
		assert.Equal(t, "bravo", browser.FilteredEntities()[0].Name)

		browser.SetFilter("")
		browser.SetTypeFilter("debugui_test.Crate")
		assert.Len(t, browser.FilteredEntities(), 2)
	})

	t.Run("selection is dropped when the entity leaves", func(t *testing.T) {
		scene := newTestScene()
		browser := debugui.NewEntityBrowserComponent(scene, 10)
		e := scene.Entity("alpha")
		browser.Select(e)
		browser.Refresh()
		assert.Same(t, e, browser.Selected())

		scene.RemoveEntity(e)
		browser.Refresh()
		assert.Nil(t, browser.Selected())
	})
}

func TestTypeViewer(t *testing.T) {
	scene := newTestScene()
	browser := debugui.NewEntityBrowserComponent(scene, 10)
	viewer := debugui.NewTypeViewerComponent(scene, browser)
	viewer.Refresh()

	assert.Equal(t, []debugui.TypeInfo{
		{Name: "debugui_test.Crate", EntityCount: 2, RelayCount: 1},
		{Name: "debugui_test.Beacon", EntityCount: 1},
	}, viewer.Types())

	viewer.SortBy(0, true)
	assert.Equal(t, "debugui_test.Beacon", viewer.Types()[0].Name)
}

func TestQueryDebugger(t *testing.T) {
	scene := newTestScene()
	qd := debugui.NewQueryDebuggerComponent(scene)
	qd.Refresh()

	assert.Equal(t, []string{"debugui_test.Beacon", "debugui_test.Crate"}, qd.ComponentTypes())

	qd.SetSelected("debugui_test.Crate", true)
	names := func() []string {
		var out []string
		for _, e := range qd.Match() {
			out = append(out, e.Name())
		}
		return out
	}
	assert.Equal(t, []string{"alpha", "bravo", "charlie"}, names())

	qd.SetSelected("debugui_test.Beacon", true)
	assert.Equal(t, []string{"bravo"}, names())

	qd.SetSelected("debugui_test.Beacon", false)
	qd.SetSelected("debugui_test.Crate", false)
	assert.Empty(t, names())
}

func TestLogViewer(t *testing.T) {
	frames := &counter{}
	hub := framelog.NewHub(
		framelog.WithConsole(framelog.Discard),
		framelog.WithFrameCounter(frames),
	)
	defer hub.Close()
	l := hub.NewLog("Game", "")

	frames.n = 1
	l.Add("spawned crate", framelog.Topic("Scene"), framelog.Function("spawn"))
	l.Add("moved crate", framelog.Topic("Scene"), framelog.Function("update"))
	frames.n = 2
	l.Add("spawned beacon", framelog.Topic("Scene"), framelog.Function("spawn"))

	viewer := debugui.NewLogViewerComponent(l)
	assert.Len(t, viewer.Filtered(), 3)

	viewer.SetFilter("SPAWN")
	assert.Len(t, viewer.Filtered(), 2)

	viewer.SetFilter("")
	viewer.SetNewFrameOnly(true)
	got := viewer.Filtered()
	require.Len(t, got, 2)
	assert.Equal(t, "spawned crate", got[0].Text)
	assert.Equal(t, "spawned beacon", got[1].Text)
}

type counter struct{ n uint64 }

func (c *counter) CurrentFrame() uint64 { return c.n }

func TestSetField(t *testing.T) {
	crate := &Crate{}
	val := reflect.ValueOf(crate).Elem()

	assert.True(t, debugui.SetField(val.FieldByName("Weight"), 2.5))
	assert.True(t, debugui.SetField(val.FieldByName("Label"), "fragile"))
	assert.True(t, debugui.SetField(val.FieldByName("Sealed"), true))
	assert.True(t, debugui.SetField(val.FieldByName("Count"), uint64(7)))
	assert.False(t, debugui.SetField(val.FieldByName("Count"), uint64(300)))
	assert.False(t, debugui.SetField(val.FieldByName("Label"), int64(1)))
	assert.False(t, debugui.SetField(val.FieldByName("private"), int64(1)))

	assert.Equal(t, &Crate{Weight: 2.5, Label: "fragile", Count: 7, Sealed: true}, crate)
}

type Dimensions struct {
	Width, Depth float64
}

type Pallet struct {
	ecs.Base
	Dimensions
	Stack *Crate
	Tag   string
}

func TestFieldCache(t *testing.T) {
	var cache debugui.FieldCache

	t.Run("exported fields in declaration order", func(t *testing.T) {
		fields := cache.Fields(reflect.TypeFor[Crate]())

		var names []string
		for _, f := range fields {
			names = append(names, f.Name)
		}
		assert.Equal(t, []string{"Weight", "Label", "Count", "Sealed"}, names)
		assert.Equal(t, fields, cache.Fields(reflect.TypeFor[Crate]()))
	})

	t.Run("promoted fields and pointers", func(t *testing.T) {
		fields := cache.Fields(reflect.TypeFor[Pallet]())
		require.Len(t, fields, 4)
		assert.Equal(t, "Width", fields[0].Name)
		assert.Equal(t, "Depth", fields[1].Name)
		assert.Equal(t, "Stack", fields[2].Name)
		assert.True(t, fields[2].Ptr)
		assert.Equal(t, reflect.Struct, fields[2].Kind)

		pallet := &Pallet{Dimensions: Dimensions{Width: 1.2}, Tag: "dock"}
		val := reflect.ValueOf(pallet).Elem()

		width, ok := fields[0].Value(val)
		require.True(t, ok)
		assert.True(t, debugui.SetField(width, 2.0))
		assert.Equal(t, 2.0, pallet.Width)

		_, ok = fields[2].Value(val)
		assert.False(t, ok)

		pallet.Stack = &Crate{Label: "top"}
		stack, ok := fields[2].Value(val)
		require.True(t, ok)
		assert.Equal(t, "top", stack.FieldByName("Label").String())
	})

	t.Run("non-struct types have no fields", func(t *testing.T) {
		assert.Empty(t, cache.Fields(reflect.TypeFor[int]()))
	})
}

func TestPerformanceStats(t *testing.T) {
	ps := debugui.NewPerformanceStatsComponent(ecs.NewScheduler(nil), 4)
	ps.Record(0.010)
	ps.Record(0.030)
	assert.InDelta(t, 10.0, ps.AverageFrameTime(), 0.001)
}

func TestSpawnDebugUI(t *testing.T) {
	scheduler := ecs.NewScheduler(nil)
	imguiSystem := debugui.NewImguiSystem()
	scheduler.Register(imguiSystem)

	hub := framelog.NewHub(framelog.WithConsole(framelog.Discard))
	defer hub.Close()

	panels := debugui.SpawnDebugUI(scheduler, hub.Aggregate())
	assert.Equal(t, 6, panels.Entity.Len())
	assert.Equal(t, 6, imguiSystem.Len())
	assert.Same(t, panels.Entity, scheduler.Scene().Entity("debugui"))

	item := debugui.NewImguiItem(func() {})
	scheduler.Scene().NewEntity("custom", item)
	assert.True(t, imguiSystem.Contains(item))
	assert.Equal(t, "ImguiSystem", scheduler.GetStats().Systems[0].Name)

	noLog := debugui.SpawnDebugUI(ecs.NewScheduler(nil), nil)
	assert.Nil(t, noLog.LogViewer)
	assert.Equal(t, 5, noLog.Entity.Len())
}
