// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// Panels are components: attach them to an entity in the scene and the
// ImguiSystem renders them every frame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/okit/ecs"
)

// Widget is a component that draws ImGui output once per frame.
type Widget interface {
	ecs.Component
	Render(frame *ecs.UpdateFrame)
}

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	ecs.Base
	RenderFunc func()
}

func NewImguiItem(render func()) *ImguiItem {
	return &ImguiItem{RenderFunc: render}
}

func (i *ImguiItem) Type() ecs.ComponentType { return ImguiItemType }

func (i *ImguiItem) Render(*ecs.UpdateFrame) {
	if i.RenderFunc != nil {
		i.RenderFunc()
	}
}

// ImguiInputState tracks Dear ImGui's input capture state.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem collects every Widget in the scene and defers its render
// function to the end of the frame, after all other systems have run.
// It also refreshes InputState with the current input capture state.
type ImguiSystem struct {
	*ecs.ComponentSystem[Widget]
	InputState ImguiInputState
}

func NewImguiSystem() *ImguiSystem {
	widgets := ecs.NewComponentSystem[Widget]()
	widgets.SetName("ImguiSystem")
	return &ImguiSystem{ComponentSystem: widgets}
}

// Execute updates input state and queues all ImGui render functions for execution.
func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	i.InputState.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
	i.InputState.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()

	for _, w := range i.Components() {
		frame.Commands.Defer(func() { w.Render(frame) })
	}
}
