// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// It manages ImGui rendering and input state through ECS components and systems.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/santa/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state as a singleton component.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem queries all ImguiItem components and defers their render functions.
// It also updates the ImguiInputState singleton with current input capture state.
// Register it in the last stage so the deferred widgets see the frame's final state.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

// Execute updates input state and queues all ImGui render functions for execution.
func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	state := i.InputState.MustGet()
	io := imgui.CurrentIO()
	state.WantCaptureMouse = io.WantCaptureMouse()
	state.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for item := range i.Items.Iter() {
		frame.Commands.Defer(item.Render)
	}
}

// StatsSource reports scheduler statistics; *ecs.Scheduler implements it.
type StatsSource interface {
	GetStats() *ecs.SchedulerStats
}

// Install registers the overlay components on storage and spawns the standard
// panels: performance statistics, an entity browser and a component inspector
// for the browsed entity. The returned system must be registered with the
// scheduler that drives storage.
func Install(storage *ecs.Storage, stats StatsSource) *ImguiSystem {
	registry := storage.Registry()
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.NewSingleton(storage, ImguiInputState{})

	perf := NewPerformanceStats(120, stats)
	browser := NewEntityBrowser(100)
	inspector := &ComponentInspector{}

	storage.Spawn(ImguiItem{Render: func() { perf.Render(storage) }})
	storage.Spawn(ImguiItem{Render: func() {
		browser.Render(storage)
		id, ok := browser.Selected()
		inspector.Render(storage, id, ok)
	}})

	return &ImguiSystem{}
}
