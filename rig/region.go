package rig

import (
	"github.com/mogaika/rig2d/utils"
)

// RegionAttachment is a textured quad positioned relative to a bone.
type RegionAttachment struct {
	AttachmentName string
	TexturePath    string

	X, Y, Rotation float32
	ScaleX, ScaleY float32
	Width, Height  float32
	Color          utils.ColorFloat

	// SequenceFrames > 0 marks a flipbook region; the texture frame is
	// selected by Slot.SequenceIndex, binding happens outside the core.
	SequenceFrames int

	// Offset holds the four local corners, filled by UpdateOffset.
	Offset [8]float32
	UVs    [8]float32
}

func NewRegionAttachment(name string) *RegionAttachment {
	return &RegionAttachment{
		AttachmentName: name,
		ScaleX:         1,
		ScaleY:         1,
		Color:          utils.ColorFloat{1, 1, 1, 1},
	}
}

func (r *RegionAttachment) Name() string { return r.AttachmentName }

// UpdateOffset recomputes the local corner positions. Call after changing
// position, rotation, scale or size.
func (r *RegionAttachment) UpdateOffset() {
	localX := -r.Width / 2 * r.ScaleX
	localY := -r.Height / 2 * r.ScaleY
	localX2 := -localX
	localY2 := -localY
	cos, sin := utils.CosDeg(r.Rotation), utils.SinDeg(r.Rotation)

	localXCos := localX*cos + r.X
	localXSin := localX * sin
	localYCos := localY*cos + r.Y
	localYSin := localY * sin
	localX2Cos := localX2*cos + r.X
	localX2Sin := localX2 * sin
	localY2Cos := localY2*cos + r.Y
	localY2Sin := localY2 * sin

	r.Offset[0] = localXCos - localYSin
	r.Offset[1] = localYCos + localXSin
	r.Offset[2] = localXCos - localY2Sin
	r.Offset[3] = localY2Cos + localXSin
	r.Offset[4] = localX2Cos - localY2Sin
	r.Offset[5] = localY2Cos + localX2Sin
	r.Offset[6] = localX2Cos - localYSin
	r.Offset[7] = localYCos + localX2Sin
}

// ComputeWorldVertices writes the four world corners as x,y pairs into
// worldVertices at offset, stride floats apart.
func (r *RegionAttachment) ComputeWorldVertices(bone *Bone, worldVertices []float32, offset, stride int) {
	x, y := bone.WorldX, bone.WorldY
	a, b, c, d := bone.A, bone.B, bone.C, bone.D
	for i := 0; i < 8; i += 2 {
		ox, oy := r.Offset[i], r.Offset[i+1]
		worldVertices[offset] = ox*a + oy*b + x
		worldVertices[offset+1] = ox*c + oy*d + y
		offset += stride
	}
}
