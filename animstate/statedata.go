// Package animstate layers timed animation playback on top of a posed
// skeleton: multiple tracks, queued entries and crossfade mixing between
// them.
package animstate

import (
	"github.com/pkg/errors"

	"github.com/mogaika/rig2d/rig"
)

type mixKey struct {
	from, to *rig.Animation
}

// StateData holds crossfade durations shared by every AnimationState
// created from it.
type StateData struct {
	SkeletonData *rig.SkeletonData

	// DefaultMix is the crossfade duration used when no explicit pair
	// duration was set.
	DefaultMix float32

	mixTimes map[mixKey]float32
}

func NewStateData(skeletonData *rig.SkeletonData) *StateData {
	return &StateData{
		SkeletonData: skeletonData,
		mixTimes:     make(map[mixKey]float32),
	}
}

// SetMix sets the crossfade duration when changing from one animation to
// another.
func (d *StateData) SetMix(from, to *rig.Animation, duration float32) {
	d.mixTimes[mixKey{from, to}] = duration
}

// SetMixByName is SetMix with animation name lookup in the skeleton data.
func (d *StateData) SetMixByName(fromName, toName string, duration float32) error {
	from := d.SkeletonData.FindAnimation(fromName)
	if from == nil {
		return errors.Errorf("animstate: animation %q not found", fromName)
	}
	to := d.SkeletonData.FindAnimation(toName)
	if to == nil {
		return errors.Errorf("animstate: animation %q not found", toName)
	}
	d.SetMix(from, to, duration)
	return nil
}

// Mix returns the crossfade duration for the pair, falling back to
// DefaultMix.
func (d *StateData) Mix(from, to *rig.Animation) float32 {
	if duration, ok := d.mixTimes[mixKey{from, to}]; ok {
		return duration
	}
	return d.DefaultMix
}
