package rig

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/rig2d/utils"
)

// PointAttachment marks a position and rotation on a bone, used by hosts
// to spawn props or effects.
type PointAttachment struct {
	AttachmentName string

	X, Y     float32
	Rotation float32
}

func NewPointAttachment(name string) *PointAttachment {
	return &PointAttachment{AttachmentName: name}
}

func (p *PointAttachment) Name() string { return p.AttachmentName }

func (p *PointAttachment) ComputeWorldPosition(bone *Bone) mgl32.Vec2 {
	return bone.LocalToWorld(mgl32.Vec2{p.X, p.Y})
}

func (p *PointAttachment) ComputeWorldRotation(bone *Bone) float32 {
	cos, sin := utils.CosDeg(p.Rotation), utils.SinDeg(p.Rotation)
	x := cos*bone.A + sin*bone.B
	y := cos*bone.C + sin*bone.D
	return utils.Atan2(y, x) * utils.RadDeg
}
