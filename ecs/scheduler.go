package ecs

import (
	"context"
	"reflect"
	"slices"
	"time"
)

// DefaultStage is the stage created when NewScheduler is called without stage names.
const DefaultStage = "update"

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	Frames          int64
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	Stage          string
	ExecutionCount int64
	SkipCount      int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemEntry struct {
	system     System
	conditions []Condition
	stats      SystemStats
}

type stage struct {
	name    string
	systems []*systemEntry
}

// Scheduler runs systems in a fixed order of stages. After every stage the
// frame's command buffer is flushed, so a stage always observes the structural
// changes of the stages before it. Events are cleared once the frame ends.
type Scheduler struct {
	storage *Storage
	stages  []*stage
	frames  int64
}

// NewScheduler creates a new scheduler for the given storage with the given
// ordered stages. Without stage names a single DefaultStage is used.
func NewScheduler(storage *Storage, stages ...string) *Scheduler {
	if len(stages) == 0 {
		stages = []string{DefaultStage}
	}
	s := &Scheduler{storage: storage}
	for _, name := range stages {
		if slices.ContainsFunc(s.stages, func(st *stage) bool { return st.name == name }) {
			panic("ecs: duplicate stage " + name)
		}
		s.stages = append(s.stages, &stage{name: name})
	}
	return s
}

type registration struct {
	stage      string
	conditions []Condition
}

// Option configures a system registration.
type Option func(*registration)

// InStage places the system in the named stage instead of the first one.
func InStage(name string) Option {
	return func(r *registration) {
		r.stage = name
	}
}

// RunIf gates the system on cond; all conditions must hold for it to run.
func RunIf(cond Condition) Option {
	return func(r *registration) {
		r.conditions = append(r.conditions, cond)
	}
}

// Register adds a system to the scheduler and binds its Query, Singleton and
// Events fields to the scheduler's storage.
func (s *Scheduler) Register(system System, opts ...Option) {
	reg := registration{stage: s.stages[0].name}
	for _, opt := range opts {
		opt(&reg)
	}

	idx := slices.IndexFunc(s.stages, func(st *stage) bool { return st.name == reg.stage })
	if idx == -1 {
		panic("ecs: unknown stage " + reg.stage)
	}

	s.bindFields(system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.stages[idx].systems = append(s.stages[idx].systems, &systemEntry{
		system:     system,
		conditions: reg.conditions,
		stats: SystemStats{
			Name:        systemType.Name(),
			Stage:       reg.stage,
			MinDuration: time.Duration(1<<63 - 1),
		},
	})
}

type storageBinder interface {
	Init(storage *Storage)
}

// bindFields calls Init(storage) on every exported struct field of system whose
// address implements it (Query, Singleton, Events and user types alike).
func (s *Scheduler) bindFields(system System) {
	v := reflect.ValueOf(system)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}
		if binder, ok := field.Addr().Interface().(storageBinder); ok {
			binder.Init(s.storage)
		}
	}
}

// Stages returns the stage names in execution order.
func (s *Scheduler) Stages() []string {
	names := make([]string, len(s.stages))
	for i, st := range s.stages {
		names[i] = st.name
	}
	return names
}

// Storage returns the storage the scheduler runs against.
func (s *Scheduler) Storage() *Storage {
	return s.storage
}

// Once executes every stage once with the given delta time.
func (s *Scheduler) Once(dt float64) {
	frame := newUpdateFrame(dt, s.storage)

	for _, st := range s.stages {
		frame.Stage = st.name
		for _, entry := range st.systems {
			if !entry.ready(s.storage) {
				entry.stats.SkipCount++
				continue
			}

			start := time.Now()
			entry.system.Execute(frame)
			entry.record(time.Since(start))
		}
		frame.Commands.Flush(s.storage)
	}

	s.storage.clearEvents()
	s.frames++
}

func (e *systemEntry) ready(storage *Storage) bool {
	for _, cond := range e.conditions {
		if !cond(storage) {
			return false
		}
	}
	return true
}

func (e *systemEntry) record(d time.Duration) {
	st := &e.stats
	st.ExecutionCount++
	st.LastDuration = d
	st.TotalDuration += d
	if d < st.MinDuration {
		st.MinDuration = d
	}
	if d > st.MaxDuration {
		st.MaxDuration = d
	}
}

// Run executes all systems at the given interval until the context is cancelled
// or stop returns true after a frame. A nil stop never stops.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration, stop func() bool) {
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
			if stop != nil && stop() {
				return
			}
		}
	}
}

// Frames returns how many frames Once has completed.
func (s *Scheduler) Frames() int64 {
	return s.frames
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{Frames: s.frames}

	for _, st := range s.stages {
		for _, entry := range st.systems {
			sys := entry.stats
			if sys.ExecutionCount > 0 {
				sys.AvgDuration = sys.TotalDuration / time.Duration(sys.ExecutionCount)
			} else {
				sys.MinDuration = 0
			}
			stats.Systems = append(stats.Systems, sys)
			stats.TotalExecutions += sys.ExecutionCount
		}
	}

	stats.SystemCount = len(stats.Systems)
	return stats
}
