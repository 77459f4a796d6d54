package rig

import (
	"github.com/mogaika/rig2d/utils"
)

// MixBlend controls how a timeline value composes with the pose already
// applied this frame.
type MixBlend int

const (
	// MixBlendSetup blends from the setup pose value.
	MixBlendSetup MixBlend = iota
	// MixBlendFirst blends from the current pose toward the timeline
	// value, snapping unkeyed properties back to setup.
	MixBlendFirst
	// MixBlendReplace blends from the current pose toward the timeline value.
	MixBlendReplace
	// MixBlendAdd adds the timeline value on top of the current pose.
	MixBlendAdd
)

// MixDirection tells a timeline whether it is being mixed in or out, which
// decides how attachment/draw-order style one-shot values are handled.
type MixDirection int

const (
	MixIn MixDirection = iota
	MixOut
)

// Timeline computes a value for a skeleton property at a time and applies
// it with the given weight and blend.
type Timeline interface {
	// Apply poses the skeleton at time. lastTime is the previous applied
	// time for event firing; fired holds queued events when non-nil.
	Apply(skeleton *Skeleton, lastTime, time float32, fired *[]*Event, alpha float32, blend MixBlend, direction MixDirection)
	// PropertyID identifies the (timeline kind, target) pair for
	// conflict detection during crossfades.
	PropertyID() int
}

// Timeline kind tags for PropertyID. One tag per animatable property.
const (
	timelineRotate = iota << 24
	timelineTranslate
	timelineScale
	timelineShear
	timelineColor
	timelineTwoColor
	timelineAttachment
	timelineDeform
	timelineSequence
	timelineEvent
	timelineDrawOrder
	timelineIkConstraint
	timelineTransformConstraint
	timelinePathConstraintPosition
	timelinePathConstraintSpacing
	timelinePathConstraintMix
)

// Animation is an immutable named set of timelines.
type Animation struct {
	Name      string
	Duration  float32
	Timelines []Timeline

	propertyIDs map[int]bool
}

func NewAnimation(name string, timelines []Timeline, duration float32) *Animation {
	a := &Animation{
		Name:        name,
		Duration:    duration,
		Timelines:   timelines,
		propertyIDs: make(map[int]bool, len(timelines)),
	}
	for _, timeline := range timelines {
		a.propertyIDs[timeline.PropertyID()] = true
	}
	return a
}

func (a *Animation) HasTimeline(propertyID int) bool {
	return a.propertyIDs[propertyID]
}

// Apply poses the skeleton for time. When loop is true, time wraps by
// duration; events between lastTime and time are appended to fired.
func (a *Animation) Apply(skeleton *Skeleton, lastTime, time float32, loop bool, fired *[]*Event, alpha float32, blend MixBlend, direction MixDirection) {
	if loop && a.Duration != 0 {
		time = utils.Mod(time, a.Duration)
		if lastTime > 0 {
			lastTime = utils.Mod(lastTime, a.Duration)
		}
	}
	for _, timeline := range a.Timelines {
		timeline.Apply(skeleton, lastTime, time, fired, alpha, blend, direction)
	}
}

// BinarySearch returns the first frame index (in floats) whose starting
// time is at or after target, minus one step. frames is grouped in step
// sized entries with the time first.
func BinarySearch(frames []float32, target float32, step int) int {
	low := 0
	high := len(frames)/step - 2
	if high == 0 {
		return step
	}
	current := high >> 1
	for {
		if frames[(current+1)*step] <= target {
			low = current + 1
		} else {
			high = current
		}
		if low == high {
			return (low + 1) * step
		}
		current = (low + high) >> 1
	}
}

func searchFrames(frames []float32, target float32) int {
	return BinarySearch(frames, target, 1)
}

// Per-keyframe interpolation. The curves array stores one entry of
// curveSize floats per frame: [type] for linear/stepped, or [type, then 9
// precomputed (x, y) samples of the Bezier] for curved frames.
const (
	curveLinear  = float32(0)
	curveStepped = float32(1)
	curveBezier  = float32(2)
	bezierSize   = 10*2 - 1
)

// CurveTimeline is the base of timelines with per-frame interpolation.
type CurveTimeline struct {
	curves []float32
}

func newCurveTimeline(frameCount int) CurveTimeline {
	return CurveTimeline{curves: make([]float32, (frameCount-1)*bezierSize)}
}

func (t *CurveTimeline) SetLinear(frame int) {
	t.curves[frame*bezierSize] = curveLinear
}

func (t *CurveTimeline) SetStepped(frame int) {
	t.curves[frame*bezierSize] = curveStepped
}

// SetCurve makes the frame interpolate along a cubic Bezier with control
// points (cx1,cy1) and (cx2,cy2) in 0..1 normalized frame space.
func (t *CurveTimeline) SetCurve(frame int, cx1, cy1, cx2, cy2 float32) {
	tmpx := (-cx1*2 + cx2) * 0.03
	tmpy := (-cy1*2 + cy2) * 0.03
	dddfx := ((cx1-cx2)*3 + 1) * 0.006
	dddfy := ((cy1-cy2)*3 + 1) * 0.006
	ddfx := tmpx*2 + dddfx
	ddfy := tmpy*2 + dddfy
	dfx := cx1*0.3 + tmpx + dddfx*0.16666667
	dfy := cy1*0.3 + tmpy + dddfy*0.16666667

	i := frame * bezierSize
	t.curves[i] = curveBezier
	i++

	x, y := dfx, dfy
	for n := i + bezierSize - 1; i < n; i += 2 {
		t.curves[i] = x
		t.curves[i+1] = y
		dfx += ddfx
		dfy += ddfy
		ddfx += dddfx
		ddfy += dddfy
		x += dfx
		y += dfy
	}
}

// CurvePercent maps a 0..1 position within the frame through the frame's
// interpolation curve.
func (t *CurveTimeline) CurvePercent(frame int, percent float32) float32 {
	percent = utils.Clamp(percent, 0, 1)
	i := frame * bezierSize
	switch t.curves[i] {
	case curveLinear:
		return percent
	case curveStepped:
		return 0
	}
	i++
	x := float32(0)
	for start, n := i, i+bezierSize-1; i < n; i += 2 {
		x = t.curves[i]
		if x >= percent {
			if i == start {
				return t.curves[i+1] * percent / x
			}
			prevX, prevY := t.curves[i-2], t.curves[i-1]
			return prevY + (t.curves[i+1]-prevY)*(percent-prevX)/(x-prevX)
		}
	}
	y := t.curves[i-1]
	return y + (1-y)*(percent-x)/(1-x)
}
