package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/okit/ecs"
)

type QueryDebuggerCache struct {
	componentTypes []string
	byName         map[string]ecs.ComponentType
}

// NewQueryDebuggerComponent creates a panel that lists the entities of
// scene holding every selected component type. Relay targets count.
func NewQueryDebuggerComponent(scene *ecs.Scene) *QueryDebuggerComponent {
	return &QueryDebuggerComponent{
		scene:                  scene,
		selectedComponentTypes: make(map[string]bool),
		cache: &QueryDebuggerCache{
			byName: make(map[string]ecs.ComponentType),
		},
	}
}

func (qd *QueryDebuggerComponent) Render(*ecs.UpdateFrame) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	qd.Refresh()

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		qd.selectedComponentTypes = make(map[string]bool)
	}

	for _, compType := range qd.cache.componentTypes {
		selected := qd.selectedComponentTypes[compType]
		if imgui.Checkbox(compType, &selected) {
			qd.SetSelected(compType, selected)
		}
	}

	imgui.Separator()

	if len(qd.selectedComponentTypes) == 0 {
		imgui.Text("No component types selected")
		imgui.End()
		return
	}

	matching := qd.Match()
	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(matching)))

	if imgui.TreeNodeStr("Entity Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("QueryEntityTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Entity")
			imgui.TableSetupColumn("All Components")
			imgui.TableHeadersRow()

			for _, e := range matching {
				imgui.TableNextRow()

				imgui.TableSetColumnIndex(0)
				imgui.Text(e.String())

				imgui.TableSetColumnIndex(1)
				componentNames := make([]string, 0, e.Len())
				for _, c := range e.Components() {
					componentNames = append(componentNames, c.Type().Name())
				}
				imgui.Text(strings.Join(componentNames, ", "))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

// Refresh collects the component types present in the scene.
func (qd *QueryDebuggerComponent) Refresh() {
	clear(qd.cache.byName)

	for _, e := range qd.scene.Entities() {
		for _, c := range e.Components() {
			if relay, ok := c.(ecs.Relayer); ok {
				c = relay.Target()
			}
			qd.cache.byName[c.Type().Name()] = c.Type()
		}
	}

	qd.cache.componentTypes = qd.cache.componentTypes[:0]
	for typeName := range qd.cache.byName {
		qd.cache.componentTypes = append(qd.cache.componentTypes, typeName)
	}

	sort.Strings(qd.cache.componentTypes)
}

func (qd *QueryDebuggerComponent) ComponentTypes() []string {
	return qd.cache.componentTypes
}

func (qd *QueryDebuggerComponent) SetSelected(typeName string, selected bool) {
	if selected {
		qd.selectedComponentTypes[typeName] = true
	} else {
		delete(qd.selectedComponentTypes, typeName)
	}
}

// Match returns the scene's entities that resolve every selected type.
// Nothing matches an empty selection.
func (qd *QueryDebuggerComponent) Match() []*ecs.Entity {
	if len(qd.selectedComponentTypes) == 0 {
		return nil
	}

	required := make([]ecs.ComponentType, 0, len(qd.selectedComponentTypes))
	for typeName := range qd.selectedComponentTypes {
		t, ok := qd.cache.byName[typeName]
		if !ok {
			return nil
		}
		required = append(required, t)
	}

	matching := make([]*ecs.Entity, 0)
	for _, e := range qd.scene.Entities() {
		if hasAllTypes(e, required) {
			matching = append(matching, e)
		}
	}
	return matching
}

func hasAllTypes(e *ecs.Entity, required []ecs.ComponentType) bool {
	for _, t := range required {
		if e.Component(t) == nil {
			return false
		}
	}
	return true
}
