package rig

import (
	"github.com/mogaika/rig2d/utils"
)

// RotateTimeline keys Bone.Rotation. Frames are (time, degrees) pairs.
type RotateTimeline struct {
	CurveTimeline
	BoneIndex int
	Frames    []float32
}

const rotateEntries = 2

func NewRotateTimeline(frameCount, boneIndex int) *RotateTimeline {
	return &RotateTimeline{
		CurveTimeline: newCurveTimeline(frameCount),
		BoneIndex:     boneIndex,
		Frames:        make([]float32, frameCount*rotateEntries),
	}
}

func (t *RotateTimeline) PropertyID() int { return timelineRotate + t.BoneIndex }

func (t *RotateTimeline) SetFrame(frame int, time, degrees float32) {
	t.Frames[frame*rotateEntries] = time
	t.Frames[frame*rotateEntries+1] = degrees
}

func (t *RotateTimeline) Apply(skeleton *Skeleton, lastTime, time float32, fired *[]*Event, alpha float32, blend MixBlend, direction MixDirection) {
	bone := skeleton.Bones[t.BoneIndex]
	if !bone.Active {
		return
	}
	frames := t.Frames
	if time < frames[0] {
		switch blend {
		case MixBlendSetup:
			bone.Rotation = bone.Data.Rotation
		case MixBlendFirst:
			bone.Rotation += utils.WrapDeg(bone.Data.Rotation-bone.Rotation) * alpha
		}
		return
	}

	if time >= frames[len(frames)-rotateEntries] {
		r := frames[len(frames)-1]
		switch blend {
		case MixBlendSetup:
			bone.Rotation = bone.Data.Rotation + r*alpha
		case MixBlendFirst, MixBlendReplace:
			r = utils.WrapDeg(r + bone.Data.Rotation - bone.Rotation)
			fallthrough
		case MixBlendAdd:
			bone.Rotation += r * alpha
		}
		return
	}

	frame := BinarySearch(frames, time, rotateEntries)
	prevRotation := frames[frame-1]
	frameTime := frames[frame]
	percent := t.CurvePercent(frame/rotateEntries-1,
		1-(time-frameTime)/(frames[frame-rotateEntries]-frameTime))

	r := frames[frame+1] - prevRotation
	r = prevRotation + utils.WrapDeg(r)*percent
	switch blend {
	case MixBlendSetup:
		bone.Rotation = bone.Data.Rotation + utils.WrapDeg(r)*alpha
	case MixBlendFirst, MixBlendReplace:
		r += bone.Data.Rotation - bone.Rotation
		fallthrough
	case MixBlendAdd:
		bone.Rotation += utils.WrapDeg(r) * alpha
	}
}

// TranslateTimeline keys Bone.X and Bone.Y. Frames are (time, x, y).
type TranslateTimeline struct {
	CurveTimeline
	BoneIndex int
	Frames    []float32
}

const translateEntries = 3

func NewTranslateTimeline(frameCount, boneIndex int) *TranslateTimeline {
	return &TranslateTimeline{
		CurveTimeline: newCurveTimeline(frameCount),
		BoneIndex:     boneIndex,
		Frames:        make([]float32, frameCount*translateEntries),
	}
}

func (t *TranslateTimeline) PropertyID() int { return timelineTranslate + t.BoneIndex }

func (t *TranslateTimeline) SetFrame(frame int, time, x, y float32) {
	frame *= translateEntries
	t.Frames[frame] = time
	t.Frames[frame+1] = x
	t.Frames[frame+2] = y
}

// frameValues interpolates the two non-time components at time.
func (t *TranslateTimeline) frameValues(time float32) (x, y float32) {
	frames := t.Frames
	if time >= frames[len(frames)-translateEntries] {
		return frames[len(frames)-2], frames[len(frames)-1]
	}
	frame := BinarySearch(frames, time, translateEntries)
	x = frames[frame-2]
	y = frames[frame-1]
	frameTime := frames[frame]
	percent := t.CurvePercent(frame/translateEntries-1,
		1-(time-frameTime)/(frames[frame-translateEntries]-frameTime))
	x += (frames[frame+1] - x) * percent
	y += (frames[frame+2] - y) * percent
	return x, y
}

func (t *TranslateTimeline) Apply(skeleton *Skeleton, lastTime, time float32, fired *[]*Event, alpha float32, blend MixBlend, direction MixDirection) {
	bone := skeleton.Bones[t.BoneIndex]
	if !bone.Active {
		return
	}
	if time < t.Frames[0] {
		switch blend {
		case MixBlendSetup:
			bone.X = bone.Data.X
			bone.Y = bone.Data.Y
		case MixBlendFirst:
			bone.X += (bone.Data.X - bone.X) * alpha
			bone.Y += (bone.Data.Y - bone.Y) * alpha
		}
		return
	}
	x, y := t.frameValues(time)
	switch blend {
	case MixBlendSetup:
		bone.X = bone.Data.X + x*alpha
		bone.Y = bone.Data.Y + y*alpha
	case MixBlendFirst, MixBlendReplace:
		bone.X += (bone.Data.X + x - bone.X) * alpha
		bone.Y += (bone.Data.Y + y - bone.Y) * alpha
	case MixBlendAdd:
		bone.X += x * alpha
		bone.Y += y * alpha
	}
}

// ScaleTimeline keys Bone.ScaleX and Bone.ScaleY as multipliers of the
// setup scale.
type ScaleTimeline struct {
	TranslateTimeline
}

func NewScaleTimeline(frameCount, boneIndex int) *ScaleTimeline {
	return &ScaleTimeline{TranslateTimeline: *NewTranslateTimeline(frameCount, boneIndex)}
}

func (t *ScaleTimeline) PropertyID() int { return timelineScale + t.BoneIndex }

func (t *ScaleTimeline) Apply(skeleton *Skeleton, lastTime, time float32, fired *[]*Event, alpha float32, blend MixBlend, direction MixDirection) {
	bone := skeleton.Bones[t.BoneIndex]
	if !bone.Active {
		return
	}
	if time < t.Frames[0] {
		switch blend {
		case MixBlendSetup:
			bone.ScaleX = bone.Data.ScaleX
			bone.ScaleY = bone.Data.ScaleY
		case MixBlendFirst:
			bone.ScaleX += (bone.Data.ScaleX - bone.ScaleX) * alpha
			bone.ScaleY += (bone.Data.ScaleY - bone.ScaleY) * alpha
		}
		return
	}
	x, y := t.frameValues(time)
	x *= bone.Data.ScaleX
	y *= bone.Data.ScaleY
	if alpha == 1 {
		if blend == MixBlendAdd {
			bone.ScaleX += x - bone.Data.ScaleX
			bone.ScaleY += y - bone.Data.ScaleY
		} else {
			bone.ScaleX = x
			bone.ScaleY = y
		}
		return
	}
	// Mixed scale keeps the current sign so flips do not pass through
	// zero while blending.
	var bx, by float32
	if direction == MixOut {
		switch blend {
		case MixBlendSetup:
			bx = bone.Data.ScaleX
			by = bone.Data.ScaleY
			bone.ScaleX = bx + (utils.Abs(x)*utils.Signum(bx)-bx)*alpha
			bone.ScaleY = by + (utils.Abs(y)*utils.Signum(by)-by)*alpha
		case MixBlendFirst, MixBlendReplace:
			bx = bone.ScaleX
			by = bone.ScaleY
			bone.ScaleX = bx + (utils.Abs(x)*utils.Signum(bx)-bx)*alpha
			bone.ScaleY = by + (utils.Abs(y)*utils.Signum(by)-by)*alpha
		case MixBlendAdd:
			bx = bone.ScaleX
			by = bone.ScaleY
			bone.ScaleX = bx + (utils.Abs(x)*utils.Signum(bx)-bone.Data.ScaleX)*alpha
			bone.ScaleY = by + (utils.Abs(y)*utils.Signum(by)-bone.Data.ScaleY)*alpha
		}
	} else {
		switch blend {
		case MixBlendSetup:
			bx = utils.Abs(bone.Data.ScaleX) * utils.Signum(x)
			by = utils.Abs(bone.Data.ScaleY) * utils.Signum(y)
			bone.ScaleX = bx + (x-bx)*alpha
			bone.ScaleY = by + (y-by)*alpha
		case MixBlendFirst, MixBlendReplace:
			bx = utils.Abs(bone.ScaleX) * utils.Signum(x)
			by = utils.Abs(bone.ScaleY) * utils.Signum(y)
			bone.ScaleX = bx + (x-bx)*alpha
			bone.ScaleY = by + (y-by)*alpha
		case MixBlendAdd:
			bx = utils.Signum(x)
			by = utils.Signum(y)
			bone.ScaleX = utils.Abs(bone.ScaleX)*bx + (x-utils.Abs(bone.Data.ScaleX)*bx)*alpha
			bone.ScaleY = utils.Abs(bone.ScaleY)*by + (y-utils.Abs(bone.Data.ScaleY)*by)*alpha
		}
	}
}

// ShearTimeline keys Bone.ShearX and Bone.ShearY.
type ShearTimeline struct {
	TranslateTimeline
}

func NewShearTimeline(frameCount, boneIndex int) *ShearTimeline {
	return &ShearTimeline{TranslateTimeline: *NewTranslateTimeline(frameCount, boneIndex)}
}

func (t *ShearTimeline) PropertyID() int { return timelineShear + t.BoneIndex }

func (t *ShearTimeline) Apply(skeleton *Skeleton, lastTime, time float32, fired *[]*Event, alpha float32, blend MixBlend, direction MixDirection) {
	bone := skeleton.Bones[t.BoneIndex]
	if !bone.Active {
		return
	}
	if time < t.Frames[0] {
		switch blend {
		case MixBlendSetup:
			bone.ShearX = bone.Data.ShearX
			bone.ShearY = bone.Data.ShearY
		case MixBlendFirst:
			bone.ShearX += (bone.Data.ShearX - bone.ShearX) * alpha
			bone.ShearY += (bone.Data.ShearY - bone.ShearY) * alpha
		}
		return
	}
	x, y := t.frameValues(time)
	switch blend {
	case MixBlendSetup:
		bone.ShearX = bone.Data.ShearX + x*alpha
		bone.ShearY = bone.Data.ShearY + y*alpha
	case MixBlendFirst, MixBlendReplace:
		bone.ShearX += (bone.Data.ShearX + x - bone.ShearX) * alpha
		bone.ShearY += (bone.Data.ShearY + y - bone.ShearY) * alpha
	case MixBlendAdd:
		bone.ShearX += x * alpha
		bone.ShearY += y * alpha
	}
}

// ColorTimeline keys Slot.Color. Frames are (time, r, g, b, a).
type ColorTimeline struct {
	CurveTimeline
	SlotIndex int
	Frames    []float32
}

const colorEntries = 5

func NewColorTimeline(frameCount, slotIndex int) *ColorTimeline {
	return &ColorTimeline{
		CurveTimeline: newCurveTimeline(frameCount),
		SlotIndex:     slotIndex,
		Frames:        make([]float32, frameCount*colorEntries),
	}
}

func (t *ColorTimeline) PropertyID() int { return timelineColor + t.SlotIndex }

func (t *ColorTimeline) SetFrame(frame int, time, r, g, b, a float32) {
	frame *= colorEntries
	t.Frames[frame] = time
	t.Frames[frame+1] = r
	t.Frames[frame+2] = g
	t.Frames[frame+3] = b
	t.Frames[frame+4] = a
}

func (t *ColorTimeline) Apply(skeleton *Skeleton, lastTime, time float32, fired *[]*Event, alpha float32, blend MixBlend, direction MixDirection) {
	slot := skeleton.Slots[t.SlotIndex]
	if !slot.Bone.Active {
		return
	}
	frames := t.Frames
	if time < frames[0] {
		switch blend {
		case MixBlendSetup:
			slot.Color = slot.Data.Color
		case MixBlendFirst:
			slot.Color.Lerp(&slot.Data.Color, alpha)
		}
		return
	}

	var r, g, b, a float32
	if time >= frames[len(frames)-colorEntries] {
		i := len(frames) - 1
		r, g, b, a = frames[i-3], frames[i-2], frames[i-1], frames[i]
	} else {
		frame := BinarySearch(frames, time, colorEntries)
		r = frames[frame-4]
		g = frames[frame-3]
		b = frames[frame-2]
		a = frames[frame-1]
		frameTime := frames[frame]
		percent := t.CurvePercent(frame/colorEntries-1,
			1-(time-frameTime)/(frames[frame-colorEntries]-frameTime))
		r += (frames[frame+1] - r) * percent
		g += (frames[frame+2] - g) * percent
		b += (frames[frame+3] - b) * percent
		a += (frames[frame+4] - a) * percent
	}
	if alpha == 1 {
		slot.Color.Set(r, g, b, a)
	} else {
		if blend == MixBlendSetup {
			slot.Color = slot.Data.Color
		}
		slot.Color.LerpValues(r, g, b, a, alpha)
	}
}

// TwoColorTimeline keys Slot.Color and Slot.DarkColor. Frames are
// (time, r, g, b, a, r2, g2, b2).
type TwoColorTimeline struct {
	CurveTimeline
	SlotIndex int
	Frames    []float32
}

const twoColorEntries = 8

func NewTwoColorTimeline(frameCount, slotIndex int) *TwoColorTimeline {
	return &TwoColorTimeline{
		CurveTimeline: newCurveTimeline(frameCount),
		SlotIndex:     slotIndex,
		Frames:        make([]float32, frameCount*twoColorEntries),
	}
}

func (t *TwoColorTimeline) PropertyID() int { return timelineTwoColor + t.SlotIndex }

func (t *TwoColorTimeline) SetFrame(frame int, time, r, g, b, a, r2, g2, b2 float32) {
	frame *= twoColorEntries
	t.Frames[frame] = time
	t.Frames[frame+1] = r
	t.Frames[frame+2] = g
	t.Frames[frame+3] = b
	t.Frames[frame+4] = a
	t.Frames[frame+5] = r2
	t.Frames[frame+6] = g2
	t.Frames[frame+7] = b2
}

func (t *TwoColorTimeline) Apply(skeleton *Skeleton, lastTime, time float32, fired *[]*Event, alpha float32, blend MixBlend, direction MixDirection) {
	slot := skeleton.Slots[t.SlotIndex]
	if !slot.Bone.Active || slot.DarkColor == nil {
		return
	}
	frames := t.Frames
	if time < frames[0] {
		switch blend {
		case MixBlendSetup:
			slot.Color = slot.Data.Color
			*slot.DarkColor = *slot.Data.DarkColor
		case MixBlendFirst:
			slot.Color.Lerp(&slot.Data.Color, alpha)
			slot.DarkColor.Lerp(slot.Data.DarkColor, alpha)
		}
		return
	}

	var r, g, b, a, r2, g2, b2 float32
	if time >= frames[len(frames)-twoColorEntries] {
		i := len(frames) - 1
		r, g, b, a = frames[i-6], frames[i-5], frames[i-4], frames[i-3]
		r2, g2, b2 = frames[i-2], frames[i-1], frames[i]
	} else {
		frame := BinarySearch(frames, time, twoColorEntries)
		r = frames[frame-7]
		g = frames[frame-6]
		b = frames[frame-5]
		a = frames[frame-4]
		r2 = frames[frame-3]
		g2 = frames[frame-2]
		b2 = frames[frame-1]
		frameTime := frames[frame]
		percent := t.CurvePercent(frame/twoColorEntries-1,
			1-(time-frameTime)/(frames[frame-twoColorEntries]-frameTime))
		r += (frames[frame+1] - r) * percent
		g += (frames[frame+2] - g) * percent
		b += (frames[frame+3] - b) * percent
		a += (frames[frame+4] - a) * percent
		r2 += (frames[frame+5] - r2) * percent
		g2 += (frames[frame+6] - g2) * percent
		b2 += (frames[frame+7] - b2) * percent
	}
	if alpha == 1 {
		slot.Color.Set(r, g, b, a)
		slot.DarkColor.Set(r2, g2, b2, 1)
	} else {
		if blend == MixBlendSetup {
			slot.Color = slot.Data.Color
			*slot.DarkColor = *slot.Data.DarkColor
		}
		slot.Color.LerpValues(r, g, b, a, alpha)
		slot.DarkColor.LerpValues(r2, g2, b2, 1, alpha)
	}
}

// AttachmentTimeline swaps Slot attachments at keyed times.
type AttachmentTimeline struct {
	SlotIndex       int
	Frames          []float32
	AttachmentNames []string
}

func NewAttachmentTimeline(frameCount, slotIndex int) *AttachmentTimeline {
	return &AttachmentTimeline{
		SlotIndex:       slotIndex,
		Frames:          make([]float32, frameCount),
		AttachmentNames: make([]string, frameCount),
	}
}

func (t *AttachmentTimeline) PropertyID() int { return timelineAttachment + t.SlotIndex }

func (t *AttachmentTimeline) SetFrame(frame int, time float32, attachmentName string) {
	t.Frames[frame] = time
	t.AttachmentNames[frame] = attachmentName
}

func (t *AttachmentTimeline) setAttachment(skeleton *Skeleton, slot *Slot, name string) {
	if name == "" {
		slot.SetAttachment(nil)
	} else {
		slot.SetAttachment(skeleton.GetAttachment(t.SlotIndex, name))
	}
}

func (t *AttachmentTimeline) Apply(skeleton *Skeleton, lastTime, time float32, fired *[]*Event, alpha float32, blend MixBlend, direction MixDirection) {
	slot := skeleton.Slots[t.SlotIndex]
	if !slot.Bone.Active {
		return
	}
	if direction == MixOut {
		if blend == MixBlendSetup {
			t.setAttachment(skeleton, slot, slot.Data.AttachmentName)
		}
		return
	}
	if time < t.Frames[0] {
		if blend == MixBlendSetup || blend == MixBlendFirst {
			t.setAttachment(skeleton, slot, slot.Data.AttachmentName)
		}
		return
	}
	var frame int
	if time >= t.Frames[len(t.Frames)-1] {
		frame = len(t.Frames) - 1
	} else {
		frame = searchFrames(t.Frames, time) - 1
	}
	t.setAttachment(skeleton, slot, t.AttachmentNames[frame])
}

// DeformTimeline keys free-form vertex offsets for one vertex attachment
// in one slot.
type DeformTimeline struct {
	CurveTimeline
	SlotIndex  int
	Attachment *VertexAttachment
	Frames     []float32
	Vertices   [][]float32
}

func NewDeformTimeline(frameCount, slotIndex int, attachment *VertexAttachment) *DeformTimeline {
	return &DeformTimeline{
		CurveTimeline: newCurveTimeline(frameCount),
		SlotIndex:     slotIndex,
		Attachment:    attachment,
		Frames:        make([]float32, frameCount),
		Vertices:      make([][]float32, frameCount),
	}
}

func (t *DeformTimeline) PropertyID() int { return timelineDeform + t.SlotIndex }

func (t *DeformTimeline) SetFrame(frame int, time float32, vertices []float32) {
	t.Frames[frame] = time
	t.Vertices[frame] = vertices
}

func (t *DeformTimeline) Apply(skeleton *Skeleton, lastTime, time float32, fired *[]*Event, alpha float32, blend MixBlend, direction MixDirection) {
	slot := skeleton.Slots[t.SlotIndex]
	if !slot.Bone.Active {
		return
	}
	vertexAttachment, ok := slot.Attachment().(interface {
		VertexBase() *VertexAttachment
	})
	if !ok || vertexAttachment.VertexBase().DeformTarget() != t.Attachment.DeformTarget() {
		return
	}

	vertexCount := len(t.Vertices[0])
	weighted := len(t.Attachment.BoneIndices) > 0

	if time < t.Frames[0] {
		switch blend {
		case MixBlendSetup:
			slot.Deform = slot.Deform[:0]
		case MixBlendFirst:
			if alpha == 1 {
				slot.Deform = slot.Deform[:0]
				return
			}
			deform := resize(slot.Deform, vertexCount)
			if weighted {
				// Setup deform is zero for weighted vertices.
				for i := range deform {
					deform[i] *= 1 - alpha
				}
			} else {
				setup := t.Attachment.Vertices
				for i := range deform {
					deform[i] += (setup[i] - deform[i]) * alpha
				}
			}
			slot.Deform = deform
		}
		return
	}

	deform := resize(slot.Deform, vertexCount)
	slot.Deform = deform

	if time >= t.Frames[len(t.Frames)-1] {
		last := t.Vertices[len(t.Vertices)-1]
		if alpha == 1 {
			if blend == MixBlendAdd && !weighted {
				setup := t.Attachment.Vertices
				for i := range deform {
					deform[i] += last[i] - setup[i]
				}
			} else {
				copy(deform, last)
			}
			return
		}
		t.blendFrame(deform, last, last, 0, alpha, blend, weighted)
		return
	}

	frame := searchFrames(t.Frames, time)
	prev := t.Vertices[frame-1]
	next := t.Vertices[frame]
	frameTime := t.Frames[frame]
	percent := t.CurvePercent(frame-1, 1-(time-frameTime)/(t.Frames[frame-1]-frameTime))

	if alpha == 1 {
		if blend == MixBlendAdd && !weighted {
			setup := t.Attachment.Vertices
			for i := range deform {
				p := prev[i]
				deform[i] += p + (next[i]-p)*percent - setup[i]
			}
		} else {
			for i := range deform {
				p := prev[i]
				deform[i] = p + (next[i]-p)*percent
			}
		}
		return
	}
	t.blendFrame(deform, prev, next, percent, alpha, blend, weighted)
}

func (t *DeformTimeline) blendFrame(deform, prev, next []float32, percent, alpha float32, blend MixBlend, weighted bool) {
	switch blend {
	case MixBlendSetup:
		if weighted {
			for i := range deform {
				p := prev[i]
				deform[i] = (p + (next[i]-p)*percent) * alpha
			}
		} else {
			setup := t.Attachment.Vertices
			for i := range deform {
				s := setup[i]
				p := prev[i]
				deform[i] = s + (p+(next[i]-p)*percent-s)*alpha
			}
		}
	case MixBlendFirst, MixBlendReplace:
		for i := range deform {
			p := prev[i]
			deform[i] += (p + (next[i]-p)*percent - deform[i]) * alpha
		}
	case MixBlendAdd:
		if weighted {
			for i := range deform {
				p := prev[i]
				deform[i] += (p + (next[i]-p)*percent) * alpha
			}
		} else {
			setup := t.Attachment.Vertices
			for i := range deform {
				p := prev[i]
				deform[i] += (p + (next[i]-p)*percent - setup[i]) * alpha
			}
		}
	}
}

// SequenceTimeline keys Slot.SequenceIndex, stepped.
type SequenceTimeline struct {
	SlotIndex int
	Frames    []float32
	Indices   []int
}

func NewSequenceTimeline(frameCount, slotIndex int) *SequenceTimeline {
	return &SequenceTimeline{
		SlotIndex: slotIndex,
		Frames:    make([]float32, frameCount),
		Indices:   make([]int, frameCount),
	}
}

func (t *SequenceTimeline) PropertyID() int { return timelineSequence + t.SlotIndex }

func (t *SequenceTimeline) SetFrame(frame int, time float32, index int) {
	t.Frames[frame] = time
	t.Indices[frame] = index
}

func (t *SequenceTimeline) Apply(skeleton *Skeleton, lastTime, time float32, fired *[]*Event, alpha float32, blend MixBlend, direction MixDirection) {
	slot := skeleton.Slots[t.SlotIndex]
	if !slot.Bone.Active {
		return
	}
	if direction == MixOut {
		if blend == MixBlendSetup {
			slot.SequenceIndex = -1
		}
		return
	}
	if time < t.Frames[0] {
		if blend == MixBlendSetup || blend == MixBlendFirst {
			slot.SequenceIndex = -1
		}
		return
	}
	var frame int
	if time >= t.Frames[len(t.Frames)-1] {
		frame = len(t.Frames) - 1
	} else {
		frame = searchFrames(t.Frames, time) - 1
	}
	slot.SequenceIndex = t.Indices[frame]
}

// EventTimeline fires events when playback crosses their frame times.
type EventTimeline struct {
	Frames []float32
	Events []*Event
}

func NewEventTimeline(frameCount int) *EventTimeline {
	return &EventTimeline{
		Frames: make([]float32, frameCount),
		Events: make([]*Event, frameCount),
	}
}

func (t *EventTimeline) PropertyID() int { return timelineEvent }

func (t *EventTimeline) SetFrame(frame int, event *Event) {
	t.Frames[frame] = event.Time
	t.Events[frame] = event
}

func (t *EventTimeline) Apply(skeleton *Skeleton, lastTime, time float32, fired *[]*Event, alpha float32, blend MixBlend, direction MixDirection) {
	if fired == nil {
		return
	}
	frames := t.Frames
	// A looped pass fires the tail then restarts from zero.
	if lastTime > time {
		t.Apply(skeleton, lastTime, frames[len(frames)-1]+1, fired, alpha, blend, direction)
		lastTime = -1
	} else if lastTime >= frames[len(frames)-1] {
		return
	}
	if time < frames[0] {
		return
	}

	var frame int
	if lastTime >= frames[0] {
		frame = searchFrames(frames, lastTime)
		frameTime := frames[frame]
		for frame > 0 && frames[frame-1] == frameTime {
			frame--
		}
	}
	for ; frame < len(frames) && time >= frames[frame]; frame++ {
		*fired = append(*fired, t.Events[frame])
	}
}

// DrawOrderTimeline keys slot draw order. A nil order means setup order.
type DrawOrderTimeline struct {
	Frames     []float32
	DrawOrders [][]int
}

func NewDrawOrderTimeline(frameCount int) *DrawOrderTimeline {
	return &DrawOrderTimeline{
		Frames:     make([]float32, frameCount),
		DrawOrders: make([][]int, frameCount),
	}
}

func (t *DrawOrderTimeline) PropertyID() int { return timelineDrawOrder }

func (t *DrawOrderTimeline) SetFrame(frame int, time float32, drawOrder []int) {
	t.Frames[frame] = time
	t.DrawOrders[frame] = drawOrder
}

func (t *DrawOrderTimeline) Apply(skeleton *Skeleton, lastTime, time float32, fired *[]*Event, alpha float32, blend MixBlend, direction MixDirection) {
	if direction == MixOut {
		if blend == MixBlendSetup {
			copy(skeleton.DrawOrder, skeleton.Slots)
		}
		return
	}
	if time < t.Frames[0] {
		if blend == MixBlendSetup || blend == MixBlendFirst {
			copy(skeleton.DrawOrder, skeleton.Slots)
		}
		return
	}
	var frame int
	if time >= t.Frames[len(t.Frames)-1] {
		frame = len(t.Frames) - 1
	} else {
		frame = searchFrames(t.Frames, time) - 1
	}
	order := t.DrawOrders[frame]
	if order == nil {
		copy(skeleton.DrawOrder, skeleton.Slots)
	} else {
		for i, slotIndex := range order {
			skeleton.DrawOrder[i] = skeleton.Slots[slotIndex]
		}
	}
}
