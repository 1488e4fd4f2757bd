package ecs

import (
	"context"
	"reflect"
	"sync/atomic"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Frame           uint64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler is the frame loop: it numbers frames and executes systems in order.
// It implements framelog.FrameCounter so logs can stamp entries with the
// frame being processed.
type Scheduler struct {
	scene       *Scene
	systems     []System
	systemStats []*systemStatsInternal
	frame       atomic.Uint64
}

// NewScheduler creates a new scheduler for the given scene. A nil scene is
// replaced by an empty one.
func NewScheduler(scene *Scene) *Scheduler {
	if scene == nil {
		scene = NewScene("")
	}
	return &Scheduler{
		scene:   scene,
		systems: make([]System, 0),
	}
}

func (s *Scheduler) Scene() *Scene {
	return s.scene
}

// Register adds a system to the scheduler. Component systems are also
// connected to the scene so they pick up components as entities change.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, system)
	s.scene.AddSystem(system)

	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        systemName(system),
		minDuration: time.Duration(1<<63 - 1),
	})
}

func systemName(system System) string {
	if named, ok := system.(Named); ok {
		return named.Name()
	}
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	return systemType.Name()
}

// CurrentFrame returns the number of the frame being executed, or of the
// last one executed. It is zero before the first frame.
func (s *Scheduler) CurrentFrame() uint64 {
	return s.frame.Load()
}

// ResetFrames starts numbering again from zero, e.g. after switching scenes.
func (s *Scheduler) ResetFrames() {
	s.frame.Store(0)
}

// Once executes all registered systems once with the given delta time.
func (s *Scheduler) Once(dt float64) {
	frame := newUpdateFrame(dt, s.frame.Add(1), s.scene)

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	frame.Commands.Flush(s.scene)
}

// Run executes all systems repeatedly at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Frame:       s.CurrentFrame(),
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
