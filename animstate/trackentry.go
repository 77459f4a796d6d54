package animstate

import (
	"math"

	"github.com/mogaika/rig2d/rig"
)

// TrackEntry is the playback state of one animation on one track. Entries
// form two chains: Next for queued playback and mixingFrom for fading
// layers. Entries are plain garbage-collected values; after the dispose
// event fires an entry must not be touched again.
type TrackEntry struct {
	Animation  *rig.Animation
	TrackIndex int

	// Next plays on this track when this entry's Delay elapses.
	Next *TrackEntry

	Loop bool

	// HoldPrevious keeps the fading-out animation applied at full
	// strength while this entry fades in.
	HoldPrevious bool

	// ShortestRotation blends rotations along the shortest path instead
	// of preserving the winding direction from previous frames.
	ShortestRotation bool

	// Thresholds stop applying events, attachment changes and draw order
	// changes from a fading-out entry once the mix passes them.
	EventThreshold      float32
	AttachmentThreshold float32
	DrawOrderThreshold  float32

	// AnimationStart and AnimationEnd window the animation's timelines.
	AnimationStart float32
	AnimationEnd   float32
	AnimationLast  float32

	// Delay postpones the start of this entry, in track time.
	Delay     float32
	TrackTime float32
	TrackEnd  float32
	TimeScale float32

	Alpha       float32
	MixTime     float32
	MixDuration float32
	MixBlend    rig.MixBlend

	// Listener receives playback events for this entry only, before the
	// state's listeners.
	Listener Listener

	mixingFrom *TrackEntry
	mixingTo   *TrackEntry

	nextAnimationLast float32
	trackLast         float32
	nextTrackLast     float32

	interruptAlpha float32
	totalAlpha     float32

	timelineMode      []int
	timelineHoldMix   []*TrackEntry
	timelinesRotation []float32
}

func newTrackEntry(trackIndex int, animation *rig.Animation, loop bool, last *TrackEntry, data *StateData) *TrackEntry {
	entry := &TrackEntry{
		Animation:  animation,
		TrackIndex: trackIndex,
		Loop:       loop,

		AnimationEnd:      animation.Duration,
		AnimationLast:     -1,
		nextAnimationLast: -1,
		trackLast:         -1,
		nextTrackLast:     -1,
		TrackEnd:          float32(math.MaxFloat32),

		TimeScale:      1,
		Alpha:          1,
		interruptAlpha: 1,
		MixBlend:       rig.MixBlendReplace,
	}
	if last != nil {
		entry.MixDuration = data.Mix(last.Animation, animation)
	}
	return entry
}

// AnimationTime converts TrackTime into a time inside the animation
// window, wrapping when looping.
func (e *TrackEntry) AnimationTime() float32 {
	if e.Loop {
		duration := e.AnimationEnd - e.AnimationStart
		if duration == 0 {
			return e.AnimationStart
		}
		return float32(math.Mod(float64(e.TrackTime), float64(duration))) + e.AnimationStart
	}
	if t := e.TrackTime + e.AnimationStart; t < e.AnimationEnd {
		return t
	}
	return e.AnimationEnd
}

// MixingFrom is the entry this one is fading in over, or nil.
func (e *TrackEntry) MixingFrom() *TrackEntry { return e.mixingFrom }

// MixingTo is the entry fading in over this one, or nil.
func (e *TrackEntry) MixingTo() *TrackEntry { return e.mixingTo }

// IsComplete reports whether playback reached the animation end at least
// once.
func (e *TrackEntry) IsComplete() bool {
	return e.TrackTime >= e.AnimationEnd-e.AnimationStart
}

// ResetRotationDirections discards accumulated rotation winding so the
// next applied frame mixes rotations by the shortest path.
func (e *TrackEntry) ResetRotationDirections() {
	e.timelinesRotation = e.timelinesRotation[:0]
}
