package rig

// IkConstraintTimeline keys an IK constraint's runtime settings. Frames
// are (time, mix, softness, bendDirection, compress, stretch).
type IkConstraintTimeline struct {
	CurveTimeline
	ConstraintIndex int
	Frames          []float32
}

const ikEntries = 6

func NewIkConstraintTimeline(frameCount, constraintIndex int) *IkConstraintTimeline {
	return &IkConstraintTimeline{
		CurveTimeline:   newCurveTimeline(frameCount),
		ConstraintIndex: constraintIndex,
		Frames:          make([]float32, frameCount*ikEntries),
	}
}

func (t *IkConstraintTimeline) PropertyID() int { return timelineIkConstraint + t.ConstraintIndex }

func (t *IkConstraintTimeline) SetFrame(frame int, time, mix, softness float32, bendDirection int, compress, stretch bool) {
	frame *= ikEntries
	t.Frames[frame] = time
	t.Frames[frame+1] = mix
	t.Frames[frame+2] = softness
	t.Frames[frame+3] = float32(bendDirection)
	if compress {
		t.Frames[frame+4] = 1
	}
	if stretch {
		t.Frames[frame+5] = 1
	}
}

func (t *IkConstraintTimeline) Apply(skeleton *Skeleton, lastTime, time float32, fired *[]*Event, alpha float32, blend MixBlend, direction MixDirection) {
	constraint := skeleton.IkConstraints[t.ConstraintIndex]
	if !constraint.Active {
		return
	}
	frames := t.Frames
	data := constraint.IkData
	if time < frames[0] {
		switch blend {
		case MixBlendSetup:
			constraint.Mix = data.Mix
			constraint.Softness = data.Softness
			constraint.BendDirection = data.BendDirection
			constraint.Compress = data.Compress
			constraint.Stretch = data.Stretch
		case MixBlendFirst:
			constraint.Mix += (data.Mix - constraint.Mix) * alpha
			constraint.Softness += (data.Softness - constraint.Softness) * alpha
			constraint.BendDirection = data.BendDirection
			constraint.Compress = data.Compress
			constraint.Stretch = data.Stretch
		}
		return
	}

	var mix, softness float32
	var frame int
	if time >= frames[len(frames)-ikEntries] {
		frame = len(frames) - ikEntries
		mix = frames[frame+1]
		softness = frames[frame+2]
	} else {
		frame = BinarySearch(frames, time, ikEntries)
		mix = frames[frame-5]
		softness = frames[frame-4]
		frameTime := frames[frame]
		percent := t.CurvePercent(frame/ikEntries-1,
			1-(time-frameTime)/(frames[frame-ikEntries]-frameTime))
		mix += (frames[frame+1] - mix) * percent
		softness += (frames[frame+2] - softness) * percent
		frame -= ikEntries
	}

	if blend == MixBlendSetup {
		constraint.Mix = data.Mix + (mix-data.Mix)*alpha
		constraint.Softness = data.Softness + (softness-data.Softness)*alpha
		if direction == MixOut {
			constraint.BendDirection = data.BendDirection
			constraint.Compress = data.Compress
			constraint.Stretch = data.Stretch
		} else {
			constraint.BendDirection = int(frames[frame+3])
			constraint.Compress = frames[frame+4] != 0
			constraint.Stretch = frames[frame+5] != 0
		}
	} else {
		constraint.Mix += (mix - constraint.Mix) * alpha
		constraint.Softness += (softness - constraint.Softness) * alpha
		if direction == MixIn {
			constraint.BendDirection = int(frames[frame+3])
			constraint.Compress = frames[frame+4] != 0
			constraint.Stretch = frames[frame+5] != 0
		}
	}
}

// TransformConstraintTimeline keys a transform constraint's mixes.
// Frames are (time, rotate, translate, scale, shear).
type TransformConstraintTimeline struct {
	CurveTimeline
	ConstraintIndex int
	Frames          []float32
}

const transformEntries = 5

func NewTransformConstraintTimeline(frameCount, constraintIndex int) *TransformConstraintTimeline {
	return &TransformConstraintTimeline{
		CurveTimeline:   newCurveTimeline(frameCount),
		ConstraintIndex: constraintIndex,
		Frames:          make([]float32, frameCount*transformEntries),
	}
}

func (t *TransformConstraintTimeline) PropertyID() int {
	return timelineTransformConstraint + t.ConstraintIndex
}

func (t *TransformConstraintTimeline) SetFrame(frame int, time, rotate, translate, scale, shear float32) {
	frame *= transformEntries
	t.Frames[frame] = time
	t.Frames[frame+1] = rotate
	t.Frames[frame+2] = translate
	t.Frames[frame+3] = scale
	t.Frames[frame+4] = shear
}

func (t *TransformConstraintTimeline) Apply(skeleton *Skeleton, lastTime, time float32, fired *[]*Event, alpha float32, blend MixBlend, direction MixDirection) {
	constraint := skeleton.TransformConstraints[t.ConstraintIndex]
	if !constraint.Active {
		return
	}
	frames := t.Frames
	data := constraint.TransformData
	if time < frames[0] {
		switch blend {
		case MixBlendSetup:
			constraint.RotateMix = data.RotateMix
			constraint.TranslateMix = data.TranslateMix
			constraint.ScaleMix = data.ScaleMix
			constraint.ShearMix = data.ShearMix
		case MixBlendFirst:
			constraint.RotateMix += (data.RotateMix - constraint.RotateMix) * alpha
			constraint.TranslateMix += (data.TranslateMix - constraint.TranslateMix) * alpha
			constraint.ScaleMix += (data.ScaleMix - constraint.ScaleMix) * alpha
			constraint.ShearMix += (data.ShearMix - constraint.ShearMix) * alpha
		}
		return
	}

	var rotate, translate, scale, shear float32
	if time >= frames[len(frames)-transformEntries] {
		i := len(frames) - 1
		rotate = frames[i-3]
		translate = frames[i-2]
		scale = frames[i-1]
		shear = frames[i]
	} else {
		frame := BinarySearch(frames, time, transformEntries)
		rotate = frames[frame-4]
		translate = frames[frame-3]
		scale = frames[frame-2]
		shear = frames[frame-1]
		frameTime := frames[frame]
		percent := t.CurvePercent(frame/transformEntries-1,
			1-(time-frameTime)/(frames[frame-transformEntries]-frameTime))
		rotate += (frames[frame+1] - rotate) * percent
		translate += (frames[frame+2] - translate) * percent
		scale += (frames[frame+3] - scale) * percent
		shear += (frames[frame+4] - shear) * percent
	}

	if blend == MixBlendSetup {
		constraint.RotateMix = data.RotateMix + (rotate-data.RotateMix)*alpha
		constraint.TranslateMix = data.TranslateMix + (translate-data.TranslateMix)*alpha
		constraint.ScaleMix = data.ScaleMix + (scale-data.ScaleMix)*alpha
		constraint.ShearMix = data.ShearMix + (shear-data.ShearMix)*alpha
	} else {
		constraint.RotateMix += (rotate - constraint.RotateMix) * alpha
		constraint.TranslateMix += (translate - constraint.TranslateMix) * alpha
		constraint.ScaleMix += (scale - constraint.ScaleMix) * alpha
		constraint.ShearMix += (shear - constraint.ShearMix) * alpha
	}
}

// PathConstraintPositionTimeline keys a path constraint's position.
type PathConstraintPositionTimeline struct {
	CurveTimeline
	ConstraintIndex int
	Frames          []float32
}

const pathValueEntries = 2

func NewPathConstraintPositionTimeline(frameCount, constraintIndex int) *PathConstraintPositionTimeline {
	return &PathConstraintPositionTimeline{
		CurveTimeline:   newCurveTimeline(frameCount),
		ConstraintIndex: constraintIndex,
		Frames:          make([]float32, frameCount*pathValueEntries),
	}
}

func (t *PathConstraintPositionTimeline) PropertyID() int {
	return timelinePathConstraintPosition + t.ConstraintIndex
}

func (t *PathConstraintPositionTimeline) SetFrame(frame int, time, value float32) {
	t.Frames[frame*pathValueEntries] = time
	t.Frames[frame*pathValueEntries+1] = value
}

// frameValue interpolates the keyed value at time.
func (t *PathConstraintPositionTimeline) frameValue(time float32) float32 {
	frames := t.Frames
	if time >= frames[len(frames)-pathValueEntries] {
		return frames[len(frames)-1]
	}
	frame := BinarySearch(frames, time, pathValueEntries)
	value := frames[frame-1]
	frameTime := frames[frame]
	percent := t.CurvePercent(frame/pathValueEntries-1,
		1-(time-frameTime)/(frames[frame-pathValueEntries]-frameTime))
	return value + (frames[frame+1]-value)*percent
}

func (t *PathConstraintPositionTimeline) Apply(skeleton *Skeleton, lastTime, time float32, fired *[]*Event, alpha float32, blend MixBlend, direction MixDirection) {
	constraint := skeleton.PathConstraints[t.ConstraintIndex]
	if !constraint.Active {
		return
	}
	if time < t.Frames[0] {
		switch blend {
		case MixBlendSetup:
			constraint.Position = constraint.PathData.Position
		case MixBlendFirst:
			constraint.Position += (constraint.PathData.Position - constraint.Position) * alpha
		}
		return
	}
	position := t.frameValue(time)
	if blend == MixBlendSetup {
		constraint.Position = constraint.PathData.Position + (position-constraint.PathData.Position)*alpha
	} else {
		constraint.Position += (position - constraint.Position) * alpha
	}
}

// PathConstraintSpacingTimeline keys a path constraint's spacing.
type PathConstraintSpacingTimeline struct {
	PathConstraintPositionTimeline
}

func NewPathConstraintSpacingTimeline(frameCount, constraintIndex int) *PathConstraintSpacingTimeline {
	return &PathConstraintSpacingTimeline{
		PathConstraintPositionTimeline: *NewPathConstraintPositionTimeline(frameCount, constraintIndex),
	}
}

func (t *PathConstraintSpacingTimeline) PropertyID() int {
	return timelinePathConstraintSpacing + t.ConstraintIndex
}

func (t *PathConstraintSpacingTimeline) Apply(skeleton *Skeleton, lastTime, time float32, fired *[]*Event, alpha float32, blend MixBlend, direction MixDirection) {
	constraint := skeleton.PathConstraints[t.ConstraintIndex]
	if !constraint.Active {
		return
	}
	if time < t.Frames[0] {
		switch blend {
		case MixBlendSetup:
			constraint.Spacing = constraint.PathData.Spacing
		case MixBlendFirst:
			constraint.Spacing += (constraint.PathData.Spacing - constraint.Spacing) * alpha
		}
		return
	}
	spacing := t.frameValue(time)
	if blend == MixBlendSetup {
		constraint.Spacing = constraint.PathData.Spacing + (spacing-constraint.PathData.Spacing)*alpha
	} else {
		constraint.Spacing += (spacing - constraint.Spacing) * alpha
	}
}

// PathConstraintMixTimeline keys a path constraint's rotate and translate
// mixes. Frames are (time, rotate, translate).
type PathConstraintMixTimeline struct {
	CurveTimeline
	ConstraintIndex int
	Frames          []float32
}

const pathMixEntries = 3

func NewPathConstraintMixTimeline(frameCount, constraintIndex int) *PathConstraintMixTimeline {
	return &PathConstraintMixTimeline{
		CurveTimeline:   newCurveTimeline(frameCount),
		ConstraintIndex: constraintIndex,
		Frames:          make([]float32, frameCount*pathMixEntries),
	}
}

func (t *PathConstraintMixTimeline) PropertyID() int {
	return timelinePathConstraintMix + t.ConstraintIndex
}

func (t *PathConstraintMixTimeline) SetFrame(frame int, time, rotate, translate float32) {
	frame *= pathMixEntries
	t.Frames[frame] = time
	t.Frames[frame+1] = rotate
	t.Frames[frame+2] = translate
}

func (t *PathConstraintMixTimeline) Apply(skeleton *Skeleton, lastTime, time float32, fired *[]*Event, alpha float32, blend MixBlend, direction MixDirection) {
	constraint := skeleton.PathConstraints[t.ConstraintIndex]
	if !constraint.Active {
		return
	}
	frames := t.Frames
	data := constraint.PathData
	if time < frames[0] {
		switch blend {
		case MixBlendSetup:
			constraint.RotateMix = data.RotateMix
			constraint.TranslateMix = data.TranslateMix
		case MixBlendFirst:
			constraint.RotateMix += (data.RotateMix - constraint.RotateMix) * alpha
			constraint.TranslateMix += (data.TranslateMix - constraint.TranslateMix) * alpha
		}
		return
	}

	var rotate, translate float32
	if time >= frames[len(frames)-pathMixEntries] {
		rotate = frames[len(frames)-2]
		translate = frames[len(frames)-1]
	} else {
		frame := BinarySearch(frames, time, pathMixEntries)
		rotate = frames[frame-2]
		translate = frames[frame-1]
		frameTime := frames[frame]
		percent := t.CurvePercent(frame/pathMixEntries-1,
			1-(time-frameTime)/(frames[frame-pathMixEntries]-frameTime))
		rotate += (frames[frame+1] - rotate) * percent
		translate += (frames[frame+2] - translate) * percent
	}

	if blend == MixBlendSetup {
		constraint.RotateMix = data.RotateMix + (rotate-data.RotateMix)*alpha
		constraint.TranslateMix = data.TranslateMix + (translate-data.TranslateMix)*alpha
	} else {
		constraint.RotateMix += (rotate - constraint.RotateMix) * alpha
		constraint.TranslateMix += (translate - constraint.TranslateMix) * alpha
	}
}
