// Package stage is the scene container the grass field and ground plane
// are added to, and the context object handed to their constructors.
package stage

import (
	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/engine/timer"
	"github.com/Faultbox/meadow/pkg/math"
)

// Drawable is anything the stage can render and release.
type Drawable interface {
	Draw(viewProj math.Mat4)
	// Dispose releases GPU resources. It must be safe to call twice.
	Dispose()
}

// Stage holds the drawables rendered each frame, in insertion order.
type Stage struct {
	drawables []Drawable
}

// New creates an empty stage.
func New() *Stage {
	return &Stage{}
}

// Add appends drawables. Adding one already present is a no-op.
func (s *Stage) Add(ds ...Drawable) {
	for _, d := range ds {
		if d == nil || s.Contains(d) {
			continue
		}
		s.drawables = append(s.drawables, d)
	}
}

// Remove detaches drawables and disposes them.
func (s *Stage) Remove(ds ...Drawable) {
	for _, d := range ds {
		if d == nil {
			continue
		}
		for i, cur := range s.drawables {
			if cur == d {
				s.drawables = append(s.drawables[:i], s.drawables[i+1:]...)
				break
			}
		}
		d.Dispose()
	}
}

// Contains reports whether d is on the stage.
func (s *Stage) Contains(d Drawable) bool {
	for _, cur := range s.drawables {
		if cur == d {
			return true
		}
	}
	return false
}

// Len returns the number of drawables.
func (s *Stage) Len() int {
	return len(s.drawables)
}

// Draw renders every drawable in order.
func (s *Stage) Draw(viewProj math.Mat4) {
	for _, d := range s.drawables {
		d.Draw(viewProj)
	}
}

// Clear removes and disposes everything.
func (s *Stage) Clear() {
	ds := s.drawables
	s.drawables = nil
	for _, d := range ds {
		d.Dispose()
	}
}

// Context carries the collaborators a scene object needs at construction.
type Context struct {
	Stage     *Stage
	Scheduler *timer.Scheduler
	Log       *zap.Logger
}

// NewContext fills nil collaborators with working defaults: an empty stage,
// a wall-clock scheduler and a no-op logger.
func NewContext(st *Stage, sched *timer.Scheduler, log *zap.Logger) *Context {
	if st == nil {
		st = New()
	}
	if sched == nil {
		sched = timer.NewScheduler(timer.SystemClock{})
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Context{Stage: st, Scheduler: sched, Log: log}
}
