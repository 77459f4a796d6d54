package animstate

import (
	"github.com/pkg/errors"

	"github.com/mogaika/rig2d/rig"
	"github.com/mogaika/rig2d/utils"
)

// Timeline apply modes for a crossfading entry, computed per timeline when
// the track layout changes. They decide how a fading-out timeline's
// property is handled so a later entry keying the same property does not
// pop.
const (
	subsequent = iota
	first
	holdSubsequent
	holdFirst
	holdMix
)

// emptyAnimation is a sentinel with no timelines used to mix to or from
// the setup pose.
var emptyAnimation = rig.NewAnimation("<empty>", nil, 0)

// State plays animations on numbered tracks over one skeleton's pose.
// Higher tracks are applied later and layer over lower ones.
type State struct {
	Data *StateData

	// TimeScale scales every delta passed to Update.
	TimeScale float32

	tracks    []*TrackEntry
	events    []*rig.Event
	listeners []Listener
	queue     eventQueue

	animationsChanged bool
	propertyIDs       map[int]bool
}

func NewState(data *StateData) *State {
	s := &State{
		Data:        data,
		TimeScale:   1,
		propertyIDs: make(map[int]bool),
	}
	s.queue.state = s
	return s
}

// AddListener registers a listener for every track's playback events.
func (s *State) AddListener(listener Listener) {
	s.listeners = append(s.listeners, listener)
}

// ClearListeners removes state-level listeners. Per-entry listeners stay.
func (s *State) ClearListeners() {
	s.listeners = s.listeners[:0]
}

// Tracks returns the current entry per track; entries may be nil.
func (s *State) Tracks() []*TrackEntry { return s.tracks }

// GetCurrent returns the current entry on a track, or nil.
func (s *State) GetCurrent(trackIndex int) *TrackEntry {
	if trackIndex >= len(s.tracks) {
		return nil
	}
	return s.tracks[trackIndex]
}

// Update advances every track by delta seconds: delays count down, queued
// entries become current, finished mixes are ended.
func (s *State) Update(delta float32) {
	delta *= s.TimeScale
	for i := 0; i < len(s.tracks); i++ {
		current := s.tracks[i]
		if current == nil {
			continue
		}
		current.AnimationLast = current.nextAnimationLast
		current.trackLast = current.nextTrackLast

		currentDelta := delta * current.TimeScale
		if current.Delay > 0 {
			current.Delay -= currentDelta
			if current.Delay > 0 {
				continue
			}
			currentDelta = -current.Delay
			current.Delay = 0
		}

		if next := current.Next; next != nil {
			// Change to the queued entry once its delay passed,
			// carrying leftover time over.
			nextTime := current.trackLast - next.Delay
			if nextTime >= 0 {
				next.Delay = 0
				if current.TimeScale != 0 {
					next.TrackTime += (nextTime/current.TimeScale + delta) * next.TimeScale
				}
				current.TrackTime += currentDelta
				s.setCurrent(i, next, true)
				for next.mixingFrom != nil {
					next.MixTime += delta
					next = next.mixingFrom
				}
				continue
			}
		} else if current.TrackTime > current.TrackEnd && current.mixingFrom == nil {
			// The track end passed with nothing queued.
			s.tracks[i] = nil
			s.queue.end(current)
			s.disposeNext(current)
			continue
		}
		if current.mixingFrom != nil && s.updateMixingFrom(current, delta) {
			// All mixes below this entry completed.
			from := current.mixingFrom
			current.mixingFrom = nil
			if from != nil {
				from.mixingTo = nil
			}
			for from != nil {
				s.queue.end(from)
				from = from.mixingFrom
			}
		}

		current.TrackTime += currentDelta
	}
	s.queue.drain()
}

// updateMixingFrom advances the mixingFrom chain below to and reports
// whether every mix in the chain finished.
func (s *State) updateMixingFrom(to *TrackEntry, delta float32) bool {
	from := to.mixingFrom
	if from == nil {
		return true
	}
	finished := s.updateMixingFrom(from, delta)

	from.AnimationLast = from.nextAnimationLast
	from.trackLast = from.nextTrackLast

	// The from entry must have been applied at least once before it can
	// end, so a zero-duration mix still poses one frame.
	if to.MixTime > 0 && to.MixTime >= to.MixDuration {
		if from.totalAlpha == 0 || to.MixDuration == 0 {
			to.mixingFrom = from.mixingFrom
			if from.mixingFrom != nil {
				from.mixingFrom.mixingTo = to
			}
			to.interruptAlpha = from.interruptAlpha
			s.queue.end(from)
		}
		return finished
	}

	from.TrackTime += delta * from.TimeScale
	to.MixTime += delta
	return false
}

// Apply poses the skeleton from every track, lowest first. Returns true
// when at least one entry was applied.
func (s *State) Apply(skeleton *rig.Skeleton) bool {
	if s.animationsChanged {
		s.recomputeTimelineModes()
	}

	applied := false
	for i, current := range s.tracks {
		if current == nil || current.Delay > 0 {
			continue
		}
		applied = true

		blend := current.MixBlend
		if i == 0 {
			blend = rig.MixBlendFirst
		}

		mix := current.Alpha
		if current.mixingFrom != nil {
			mix *= s.applyMixingFrom(current, skeleton, blend)
		} else if current.TrackTime >= current.TrackEnd && current.Next == nil {
			mix = 0
		}

		animationLast := current.AnimationLast
		animationTime := current.AnimationTime()
		timelines := current.Animation.Timelines

		if (i == 0 && mix == 1) || blend == rig.MixBlendAdd {
			for _, timeline := range timelines {
				timeline.Apply(skeleton, animationLast, animationTime, &s.events, mix, blend, rig.MixIn)
			}
		} else {
			firstFrame := len(current.timelinesRotation) == 0
			if firstFrame {
				current.timelinesRotation = resizeFloats(current.timelinesRotation, len(timelines)*2)
			}
			for ii, timeline := range timelines {
				timelineBlend := rig.MixBlendSetup
				if current.timelineMode[ii] == subsequent {
					timelineBlend = blend
				}
				if rotate, ok := timeline.(*rig.RotateTimeline); ok && !current.ShortestRotation {
					s.applyRotateTimeline(rotate, skeleton, animationTime, mix, timelineBlend,
						current.timelinesRotation, ii<<1, firstFrame)
				} else {
					timeline.Apply(skeleton, animationLast, animationTime, &s.events, mix, timelineBlend, rig.MixIn)
				}
			}
		}
		s.queueEvents(current, animationTime)
		s.events = s.events[:0]
		current.nextAnimationLast = animationTime
		current.nextTrackLast = current.TrackTime
	}

	s.queue.drain()
	return applied
}

// applyMixingFrom applies the entries to is fading in over and returns
// the mix amount for to itself.
func (s *State) applyMixingFrom(to *TrackEntry, skeleton *rig.Skeleton, blend rig.MixBlend) float32 {
	from := to.mixingFrom
	if from.mixingFrom != nil {
		s.applyMixingFrom(from, skeleton, blend)
	}

	var mix float32
	if to.MixDuration == 0 {
		// Single frame mix to undo the mixingFrom's pose.
		mix = 1
		if blend == rig.MixBlendFirst {
			blend = rig.MixBlendSetup
		}
	} else {
		mix = to.MixTime / to.MixDuration
		if mix > 1 {
			mix = 1
		}
		if blend != rig.MixBlendFirst {
			blend = from.MixBlend
		}
	}

	var events *[]*rig.Event
	if mix < from.EventThreshold {
		events = &s.events
	}
	attachments := mix < from.AttachmentThreshold
	drawOrder := mix < from.DrawOrderThreshold

	animationLast := from.AnimationLast
	animationTime := from.AnimationTime()
	timelines := from.Animation.Timelines
	alphaHold := from.Alpha * to.interruptAlpha
	alphaMix := alphaHold * (1 - mix)

	if blend == rig.MixBlendAdd {
		for _, timeline := range timelines {
			timeline.Apply(skeleton, animationLast, animationTime, events, alphaMix, blend, rig.MixOut)
		}
	} else {
		firstFrame := len(from.timelinesRotation) == 0
		if firstFrame {
			from.timelinesRotation = resizeFloats(from.timelinesRotation, len(timelines)*2)
		}
		from.totalAlpha = 0
		for ii, timeline := range timelines {
			direction := rig.MixOut
			var timelineBlend rig.MixBlend
			var alpha float32
			switch from.timelineMode[ii] {
			case subsequent:
				if !drawOrder {
					if _, ok := timeline.(*rig.DrawOrderTimeline); ok {
						continue
					}
				}
				timelineBlend = blend
				alpha = alphaMix
			case first:
				timelineBlend = rig.MixBlendSetup
				alpha = alphaMix
			case holdSubsequent:
				timelineBlend = blend
				alpha = alphaHold
			case holdFirst:
				timelineBlend = rig.MixBlendSetup
				alpha = alphaHold
			default: // holdMix
				timelineBlend = rig.MixBlendSetup
				hold := from.timelineHoldMix[ii]
				alpha = alphaHold
				if hold.MixDuration > 0 {
					if f := 1 - hold.MixTime/hold.MixDuration; f > 0 {
						alpha = alphaHold * f
					} else {
						alpha = 0
					}
				}
			}
			from.totalAlpha += alpha

			if rotate, ok := timeline.(*rig.RotateTimeline); ok && !from.ShortestRotation {
				s.applyRotateTimeline(rotate, skeleton, animationTime, alpha, timelineBlend,
					from.timelinesRotation, ii<<1, firstFrame)
				continue
			}
			if timelineBlend == rig.MixBlendSetup {
				switch timeline.(type) {
				case *rig.AttachmentTimeline:
					if attachments {
						direction = rig.MixIn
					}
				case *rig.DrawOrderTimeline:
					if drawOrder {
						direction = rig.MixIn
					}
				}
			}
			timeline.Apply(skeleton, animationLast, animationTime, events, alpha, timelineBlend, direction)
		}
	}

	if to.MixDuration > 0 {
		s.queueEvents(from, animationTime)
	}
	s.events = s.events[:0]
	from.nextAnimationLast = animationTime
	from.nextTrackLast = from.TrackTime

	return mix
}

// applyRotateTimeline blends a rotation while preserving the winding
// direction chosen on earlier frames, using two floats of scratch per
// timeline: the accumulated total and the last frame's diff.
func (s *State) applyRotateTimeline(timeline *rig.RotateTimeline, skeleton *rig.Skeleton, time, alpha float32,
	blend rig.MixBlend, timelinesRotation []float32, i int, firstFrame bool) {

	if firstFrame {
		timelinesRotation[i] = 0
	}
	if alpha == 1 {
		timeline.Apply(skeleton, 0, time, nil, 1, blend, rig.MixIn)
		return
	}

	bone := skeleton.Bones[timeline.BoneIndex]
	if !bone.Active {
		return
	}
	frames := timeline.Frames
	if time < frames[0] {
		if blend == rig.MixBlendSetup {
			bone.Rotation = bone.Data.Rotation
		}
		return
	}

	var r2 float32
	if time >= frames[len(frames)-2] {
		r2 = bone.Data.Rotation + frames[len(frames)-1]
	} else {
		frame := rig.BinarySearch(frames, time, 2)
		prevRotation := frames[frame-1]
		frameTime := frames[frame]
		percent := timeline.CurvePercent(frame/2-1, 1-(time-frameTime)/(frames[frame-2]-frameTime))
		r2 = frames[frame+1] - prevRotation
		r2 = prevRotation + utils.WrapDeg(r2)*percent + bone.Data.Rotation
		r2 = utils.WrapDeg(r2)
	}

	r1 := bone.Rotation
	if blend == rig.MixBlendSetup {
		r1 = bone.Data.Rotation
	}

	var total float32
	diff := utils.WrapDeg(r2 - r1)
	if diff == 0 {
		total = timelinesRotation[i]
	} else {
		var lastTotal, lastDiff float32
		if firstFrame {
			lastTotal = 0
			lastDiff = diff
		} else {
			lastTotal = timelinesRotation[i]
			lastDiff = timelinesRotation[i+1]
		}
		current := diff > 0
		dir := lastTotal >= 0
		// Detect the winding crossing zero, as opposed to 180 degrees.
		if utils.Signum(lastDiff) != utils.Signum(diff) && utils.Abs(lastDiff) <= 90 {
			if utils.Abs(lastTotal) > 180 {
				lastTotal += 360 * utils.Signum(lastTotal)
			}
			dir = current
		}
		total = diff + lastTotal - utils.Mod(lastTotal, 360)
		if dir != current {
			total += 360 * utils.Signum(lastTotal)
		}
		timelinesRotation[i] = total
	}
	timelinesRotation[i+1] = diff
	bone.Rotation = utils.WrapDeg(r1 + total*alpha)
}

// queueEvents splits fired events around the loop/complete boundary so
// listeners observe them in playback order.
func (s *State) queueEvents(entry *TrackEntry, animationTime float32) {
	animationStart, animationEnd := entry.AnimationStart, entry.AnimationEnd
	duration := animationEnd - animationStart
	trackLastWrapped := entry.trackLast
	if duration != 0 {
		trackLastWrapped = utils.Mod(entry.trackLast, duration)
	}

	i, n := 0, len(s.events)
	for ; i < n; i++ {
		event := s.events[i]
		if event.Time < trackLastWrapped {
			break
		}
		if event.Time > animationEnd {
			continue
		}
		s.queue.event(entry, event)
	}

	var complete bool
	if entry.Loop {
		complete = duration == 0 || trackLastWrapped > utils.Mod(entry.TrackTime, duration)
	} else {
		complete = animationTime >= animationEnd && entry.AnimationLast < animationEnd
	}
	if complete {
		s.queue.complete(entry)
	}

	for ; i < n; i++ {
		event := s.events[i]
		if event.Time < animationStart {
			continue
		}
		s.queue.event(entry, event)
	}
}

// ClearTracks ends every track's entries and resets the state.
func (s *State) ClearTracks() {
	oldDrainDisabled := s.queue.drainDisabled
	s.queue.drainDisabled = true
	for i := range s.tracks {
		s.ClearTrack(i)
	}
	s.tracks = s.tracks[:0]
	s.queue.drainDisabled = oldDrainDisabled
	s.queue.drain()
}

// ClearTrack ends the track's current entry, its mixing chain and its
// queued entries. The track keeps whatever pose was last applied.
func (s *State) ClearTrack(trackIndex int) {
	if trackIndex >= len(s.tracks) {
		return
	}
	current := s.tracks[trackIndex]
	if current == nil {
		return
	}

	s.queue.end(current)
	s.disposeNext(current)

	entry := current
	for {
		from := entry.mixingFrom
		if from == nil {
			break
		}
		s.queue.end(from)
		entry.mixingFrom = nil
		entry.mixingTo = nil
		entry = from
	}

	s.tracks[current.TrackIndex] = nil
	s.queue.drain()
}

func (s *State) setCurrent(index int, current *TrackEntry, interrupt bool) {
	from := s.expandToIndex(index)
	s.tracks[index] = current

	if from != nil {
		if interrupt {
			s.queue.interrupt(from)
		}
		current.mixingFrom = from
		from.mixingTo = current
		current.MixTime = 0

		// An interrupted mix weakens everything below it in the chain.
		if from.mixingFrom != nil && from.MixDuration > 0 {
			f := from.MixTime / from.MixDuration
			if f > 1 {
				f = 1
			}
			current.interruptAlpha *= f
		}
		from.timelinesRotation = from.timelinesRotation[:0]
	}

	s.queue.start(current)
}

// SetAnimation plays an animation on a track, mixing from the previous
// entry using the state data's mix duration.
func (s *State) SetAnimation(trackIndex int, animation *rig.Animation, loop bool) *TrackEntry {
	interrupt := true
	current := s.expandToIndex(trackIndex)
	if current != nil {
		if current.nextTrackLast == -1 {
			// The current entry was never applied; replace it outright.
			s.tracks[trackIndex] = current.mixingFrom
			s.queue.interrupt(current)
			s.queue.end(current)
			s.disposeNext(current)
			current = current.mixingFrom
			interrupt = false
		} else {
			s.disposeNext(current)
		}
	}
	entry := newTrackEntry(trackIndex, animation, loop, current, s.Data)
	s.setCurrent(trackIndex, entry, interrupt)
	s.queue.drain()
	return entry
}

// SetAnimationByName is SetAnimation with name lookup.
func (s *State) SetAnimationByName(trackIndex int, animationName string, loop bool) (*TrackEntry, error) {
	animation := s.Data.SkeletonData.FindAnimation(animationName)
	if animation == nil {
		return nil, errors.Errorf("animstate: animation %q not found", animationName)
	}
	return s.SetAnimation(trackIndex, animation, loop), nil
}

// AddAnimation queues an animation after the track's last entry. A delay
// <= 0 starts the mix so it completes exactly when the previous entry
// finishes.
func (s *State) AddAnimation(trackIndex int, animation *rig.Animation, loop bool, delay float32) *TrackEntry {
	last := s.expandToIndex(trackIndex)
	if last != nil {
		for last.Next != nil {
			last = last.Next
		}
	}

	entry := newTrackEntry(trackIndex, animation, loop, last, s.Data)

	if last == nil {
		s.setCurrent(trackIndex, entry, true)
		s.queue.drain()
	} else {
		last.Next = entry
		if delay <= 0 {
			duration := last.AnimationEnd - last.AnimationStart
			if duration != 0 {
				if last.Loop {
					delay += duration * float32(1+int(last.TrackTime/duration))
				} else if last.TrackTime > duration {
					delay += last.TrackTime
				} else {
					delay += duration
				}
				delay -= s.Data.Mix(last.Animation, animation)
			} else {
				delay = last.TrackTime
			}
		}
	}

	entry.Delay = delay
	return entry
}

// AddAnimationByName is AddAnimation with name lookup.
func (s *State) AddAnimationByName(trackIndex int, animationName string, loop bool, delay float32) (*TrackEntry, error) {
	animation := s.Data.SkeletonData.FindAnimation(animationName)
	if animation == nil {
		return nil, errors.Errorf("animstate: animation %q not found", animationName)
	}
	return s.AddAnimation(trackIndex, animation, loop, delay), nil
}

// SetEmptyAnimation mixes the track out to the setup pose over
// mixDuration, then holds it.
func (s *State) SetEmptyAnimation(trackIndex int, mixDuration float32) *TrackEntry {
	entry := s.SetAnimation(trackIndex, emptyAnimation, false)
	entry.MixDuration = mixDuration
	entry.TrackEnd = mixDuration
	return entry
}

// AddEmptyAnimation queues a mix out to the setup pose after the track's
// last entry.
func (s *State) AddEmptyAnimation(trackIndex int, mixDuration, delay float32) *TrackEntry {
	if delay <= 0 {
		delay -= mixDuration
	}
	entry := s.AddAnimation(trackIndex, emptyAnimation, false, delay)
	entry.MixDuration = mixDuration
	entry.TrackEnd = mixDuration
	return entry
}

// SetEmptyAnimations mixes every track out to the setup pose.
func (s *State) SetEmptyAnimations(mixDuration float32) {
	oldDrainDisabled := s.queue.drainDisabled
	s.queue.drainDisabled = true
	for i, current := range s.tracks {
		if current != nil {
			s.SetEmptyAnimation(i, mixDuration)
		}
	}
	s.queue.drainDisabled = oldDrainDisabled
	s.queue.drain()
}

func (s *State) expandToIndex(index int) *TrackEntry {
	if index < len(s.tracks) {
		return s.tracks[index]
	}
	for len(s.tracks) <= index {
		s.tracks = append(s.tracks, nil)
	}
	return nil
}

func (s *State) disposeNext(entry *TrackEntry) {
	for next := entry.Next; next != nil; next = next.Next {
		s.queue.dispose(next)
	}
	entry.Next = nil
}

// recomputeTimelineModes walks every mixing chain and classifies each
// timeline of each entry, lowest track first.
func (s *State) recomputeTimelineModes() {
	s.animationsChanged = false

	for id := range s.propertyIDs {
		delete(s.propertyIDs, id)
	}
	for _, entry := range s.tracks {
		if entry == nil {
			continue
		}
		for entry.mixingFrom != nil {
			entry = entry.mixingFrom
		}
		for entry != nil {
			if entry.mixingTo == nil || entry.MixBlend != rig.MixBlendAdd {
				s.computeHold(entry)
			}
			entry = entry.mixingTo
		}
	}
}

func (s *State) computeHold(entry *TrackEntry) {
	to := entry.mixingTo
	timelines := entry.Animation.Timelines
	entry.timelineMode = resizeInts(entry.timelineMode, len(timelines))
	entry.timelineHoldMix = resizeEntries(entry.timelineHoldMix, len(timelines))

	if to != nil && to.HoldPrevious {
		for i := range timelines {
			mode := holdSubsequent
			if id := timelines[i].PropertyID(); !s.propertyIDs[id] {
				s.propertyIDs[id] = true
				mode = holdFirst
			}
			entry.timelineMode[i] = mode
		}
		return
	}

outer:
	for i, timeline := range timelines {
		id := timeline.PropertyID()
		if s.propertyIDs[id] {
			entry.timelineMode[i] = subsequent
			continue
		}
		s.propertyIDs[id] = true

		oneShot := false
		switch timeline.(type) {
		case *rig.AttachmentTimeline, *rig.DrawOrderTimeline, *rig.EventTimeline:
			oneShot = true
		}
		if to == nil || oneShot || !to.Animation.HasTimeline(id) {
			entry.timelineMode[i] = first
			continue
		}
		for next := to.mixingTo; next != nil; next = next.mixingTo {
			if next.Animation.HasTimeline(id) {
				continue
			}
			if next.MixDuration > 0 {
				entry.timelineMode[i] = holdMix
				entry.timelineHoldMix[i] = next
				continue outer
			}
			break
		}
		entry.timelineMode[i] = holdFirst
	}
}

func resizeFloats(buf []float32, n int) []float32 {
	if cap(buf) < n {
		return make([]float32, n)
	}
	buf = buf[:n]
	for i := range buf {
		buf[i] = 0
	}
	return buf
}

func resizeInts(buf []int, n int) []int {
	if cap(buf) < n {
		return make([]int, n)
	}
	return buf[:n]
}

func resizeEntries(buf []*TrackEntry, n int) []*TrackEntry {
	if cap(buf) < n {
		return make([]*TrackEntry, n)
	}
	return buf[:n]
}
