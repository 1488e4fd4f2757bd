package debugui

import (
	"github.com/plus3/okit/ecs"
	"github.com/plus3/okit/framelog"
)

var (
	ImguiItemType          = ecs.NewComponentType("debugui.ImguiItem")
	EntityBrowserType      = ecs.NewComponentType("debugui.EntityBrowser")
	ComponentInspectorType = ecs.NewComponentType("debugui.ComponentInspector")
	TypeViewerType         = ecs.NewComponentType("debugui.TypeViewer")
	PerformanceStatsType   = ecs.NewComponentType("debugui.PerformanceStats")
	QueryDebuggerType      = ecs.NewComponentType("debugui.QueryDebugger")
	LogViewerType          = ecs.NewComponentType("debugui.LogViewer")
)

type EntityBrowserComponent struct {
	ecs.Base
	scene              *ecs.Scene
	cache              *EntityBrowserCache
	selected           *ecs.Entity
	filterText         string
	filterType         string
	maxEntitiesPerPage int
	currentPage        int
}

func (*EntityBrowserComponent) Type() ecs.ComponentType { return EntityBrowserType }

type ComponentInspectorComponent struct {
	ecs.Base
	browser *EntityBrowserComponent
}

func (*ComponentInspectorComponent) Type() ecs.ComponentType { return ComponentInspectorType }

type TypeViewerComponent struct {
	ecs.Base
	scene        *ecs.Scene
	browser      *EntityBrowserComponent
	cache        *TypeViewerCache
	selectedType string
}

func (*TypeViewerComponent) Type() ecs.ComponentType { return TypeViewerType }

type PerformanceStatsComponent struct {
	ecs.Base
	scheduler     *ecs.Scheduler
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

func (*PerformanceStatsComponent) Type() ecs.ComponentType { return PerformanceStatsType }

type QueryDebuggerComponent struct {
	ecs.Base
	scene                  *ecs.Scene
	selectedComponentTypes map[string]bool
	cache                  *QueryDebuggerCache
}

func (*QueryDebuggerComponent) Type() ecs.ComponentType { return QueryDebuggerType }

type LogViewerComponent struct {
	ecs.Base
	log          *framelog.Log
	filterText   string
	newFrameOnly bool
	autoScroll   bool
	lastLen      int
}

func (*LogViewerComponent) Type() ecs.ComponentType { return LogViewerType }
