package debugui

import (
	"github.com/plus3/okit/ecs"
	"github.com/plus3/okit/framelog"
)

// Panels groups the standard debug panels attached by SpawnDebugUI.
type Panels struct {
	Entity             *ecs.Entity
	EntityBrowser      *EntityBrowserComponent
	ComponentInspector *ComponentInspectorComponent
	TypeViewer         *TypeViewerComponent
	PerformanceStats   *PerformanceStatsComponent
	QueryDebugger      *QueryDebuggerComponent
	LogViewer          *LogViewerComponent
}

// SpawnDebugUI adds a "debugui" entity holding every standard panel to the
// scheduler's scene. The log viewer is omitted when log is nil.
func SpawnDebugUI(scheduler *ecs.Scheduler, log *framelog.Log) *Panels {
	scene := scheduler.Scene()
	browser := NewEntityBrowserComponent(scene, 100)

	p := &Panels{
		EntityBrowser:      browser,
		ComponentInspector: NewComponentInspectorComponent(browser),
		TypeViewer:         NewTypeViewerComponent(scene, browser),
		PerformanceStats:   NewPerformanceStatsComponent(scheduler, 120),
		QueryDebugger:      NewQueryDebuggerComponent(scene),
	}

	components := []ecs.Component{
		p.EntityBrowser,
		p.ComponentInspector,
		p.TypeViewer,
		p.PerformanceStats,
		p.QueryDebugger,
	}
	if log != nil {
		p.LogViewer = NewLogViewerComponent(log)
		components = append(components, p.LogViewer)
	}

	p.Entity = scene.NewEntity("debugui", components...)
	return p
}
