package rig

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/rig2d/utils"
)

// Bone is the per-instance state of one bone: the local pose set by
// animations or the host, the applied pose the last world computation was
// made from, and the resulting world transform (a,b,c,d,worldX,worldY).
type Bone struct {
	Data     *BoneData
	Skeleton *Skeleton
	Parent   *Bone
	Children []*Bone

	// Local pose.
	X, Y, Rotation float32
	ScaleX, ScaleY float32
	ShearX, ShearY float32

	// Applied pose: the local values the world transform was computed
	// from. Diverges from the local pose after a constraint runs.
	AX, AY, ARotation float32
	AScaleX, AScaleY  float32
	AShearX, AShearY  float32
	AppliedValid      bool

	// World transform.
	A, B, C, D     float32
	WorldX, WorldY float32

	// Active is false while the bone is disabled by skin requirements.
	// An inactive bone keeps its last world transform.
	Active bool
}

func NewBone(data *BoneData, skeleton *Skeleton, parent *Bone) *Bone {
	b := &Bone{Data: data, Skeleton: skeleton, Parent: parent}
	b.SetToSetupPose()
	return b
}

func (b *Bone) SetToSetupPose() {
	d := b.Data
	b.X, b.Y, b.Rotation = d.X, d.Y, d.Rotation
	b.ScaleX, b.ScaleY = d.ScaleX, d.ScaleY
	b.ShearX, b.ShearY = d.ShearX, d.ShearY
}

// UpdateWorldTransform computes the world transform from the local pose.
func (b *Bone) UpdateWorldTransform() {
	b.UpdateWorldTransformWith(b.X, b.Y, b.Rotation, b.ScaleX, b.ScaleY, b.ShearX, b.ShearY)
}

// UpdateWorldTransformWith computes the world transform from the given
// local pose and stores that pose as the applied pose.
func (b *Bone) UpdateWorldTransformWith(x, y, rotation, scaleX, scaleY, shearX, shearY float32) {
	b.AX, b.AY = x, y
	b.ARotation = rotation
	b.AScaleX, b.AScaleY = scaleX, scaleY
	b.AShearX, b.AShearY = shearX, shearY
	b.AppliedValid = true

	skeleton := b.Skeleton
	parent := b.Parent
	if parent == nil {
		rotationY := rotation + 90 + shearY
		sx, sy := skeleton.ScaleX, skeleton.ScaleY
		b.A = utils.CosDeg(rotation+shearX) * scaleX * sx
		b.B = utils.CosDeg(rotationY) * scaleY * sx
		b.C = utils.SinDeg(rotation+shearX) * scaleX * sy
		b.D = utils.SinDeg(rotationY) * scaleY * sy
		b.WorldX = x*sx + skeleton.X
		b.WorldY = y*sy + skeleton.Y
		return
	}

	pa, pb, pc, pd := parent.A, parent.B, parent.C, parent.D
	b.WorldX = pa*x + pb*y + parent.WorldX
	b.WorldY = pc*x + pd*y + parent.WorldY

	switch b.Data.TransformMode {
	case TransformNormal:
		rotationY := rotation + 90 + shearY
		la := utils.CosDeg(rotation+shearX) * scaleX
		lb := utils.CosDeg(rotationY) * scaleY
		lc := utils.SinDeg(rotation+shearX) * scaleX
		ld := utils.SinDeg(rotationY) * scaleY
		b.A = pa*la + pb*lc
		b.B = pa*lb + pb*ld
		b.C = pc*la + pd*lc
		b.D = pc*lb + pd*ld
		return

	case TransformOnlyTranslation:
		rotationY := rotation + 90 + shearY
		b.A = utils.CosDeg(rotation+shearX) * scaleX
		b.B = utils.CosDeg(rotationY) * scaleY
		b.C = utils.SinDeg(rotation+shearX) * scaleX
		b.D = utils.SinDeg(rotationY) * scaleY

	case TransformNoRotationOrReflection:
		s := pa*pa + pc*pc
		var prx float32
		if s > 0.0001 {
			s = utils.Abs(pa*pd-pb*pc) / s
			pa /= skeleton.ScaleX
			pc /= skeleton.ScaleY
			pb = pc * s
			pd = pa * s
			prx = utils.Atan2(pc, pa) * utils.RadDeg
		} else {
			pa, pc = 0, 0
			prx = 90 - utils.Atan2(pd, pb)*utils.RadDeg
		}
		rx := rotation + shearX - prx
		ry := rotation + shearY - prx + 90
		la := utils.CosDeg(rx) * scaleX
		lb := utils.CosDeg(ry) * scaleY
		lc := utils.SinDeg(rx) * scaleX
		ld := utils.SinDeg(ry) * scaleY
		b.A = pa*la - pb*lc
		b.B = pa*lb - pb*ld
		b.C = pc*la + pd*lc
		b.D = pc*lb + pd*ld

	case TransformNoScale, TransformNoScaleOrReflection:
		cos, sin := utils.CosDeg(rotation), utils.SinDeg(rotation)
		za := (pa*cos + pb*sin) / skeleton.ScaleX
		zc := (pc*cos + pd*sin) / skeleton.ScaleY
		s := utils.Sqrt(za*za + zc*zc)
		if s > 0.00001 {
			s = 1 / s
		}
		za *= s
		zc *= s
		s = utils.Sqrt(za*za + zc*zc)
		if b.Data.TransformMode == TransformNoScale &&
			(pa*pd-pb*pc < 0) != ((skeleton.ScaleX < 0) != (skeleton.ScaleY < 0)) {
			s = -s
		}
		r := math.Pi/2 + utils.Atan2(zc, za)
		zb := utils.Cos(r) * s
		zd := utils.Sin(r) * s
		la := utils.CosDeg(shearX) * scaleX
		lb := utils.CosDeg(90+shearY) * scaleY
		lc := utils.SinDeg(shearX) * scaleX
		ld := utils.SinDeg(90+shearY) * scaleY
		b.A = za*la + zb*lc
		b.B = za*lb + zb*ld
		b.C = zc*la + zd*lc
		b.D = zc*lb + zd*ld
	}

	b.A *= skeleton.ScaleX
	b.B *= skeleton.ScaleX
	b.C *= skeleton.ScaleY
	b.D *= skeleton.ScaleY
}

// UpdateAppliedTransform recovers the applied pose from the current world
// transform. Needed after a constraint writes the world transform directly.
func (b *Bone) UpdateAppliedTransform() {
	b.AppliedValid = true
	parent := b.Parent
	if parent == nil {
		b.AX = b.WorldX - b.Skeleton.X
		b.AY = b.WorldY - b.Skeleton.Y
		b.ARotation = utils.Atan2(b.C, b.A) * utils.RadDeg
		b.AScaleX = utils.Sqrt(b.A*b.A + b.C*b.C)
		b.AScaleY = utils.Sqrt(b.B*b.B + b.D*b.D)
		b.AShearX = 0
		b.AShearY = utils.Atan2(b.A*b.B+b.C*b.D, b.A*b.D-b.B*b.C) * utils.RadDeg
		return
	}
	pa, pb, pc, pd := parent.A, parent.B, parent.C, parent.D
	pid := 1 / (pa*pd - pb*pc)
	dx, dy := b.WorldX-parent.WorldX, b.WorldY-parent.WorldY
	b.AX = dx*pd*pid - dy*pb*pid
	b.AY = dy*pa*pid - dx*pc*pid
	ia := pid * pd
	id := pid * pa
	ib := pid * pb
	ic := pid * pc
	ra := ia*b.A - ib*b.C
	rb := ia*b.B - ib*b.D
	rc := id*b.C - ic*b.A
	rd := id*b.D - ic*b.B
	b.AShearX = 0
	b.AScaleX = utils.Sqrt(ra*ra + rc*rc)
	if b.AScaleX > 0.0001 {
		det := ra*rd - rb*rc
		b.AScaleY = det / b.AScaleX
		b.AShearY = utils.Atan2(ra*rb+rc*rd, det) * utils.RadDeg
		b.ARotation = utils.Atan2(rc, ra) * utils.RadDeg
	} else {
		b.AScaleX = 0
		b.AScaleY = utils.Sqrt(rb*rb + rd*rd)
		b.AShearY = 0
		b.ARotation = 90 - utils.Atan2(rd, rb)*utils.RadDeg
	}
}

func (b *Bone) WorldRotationX() float32 {
	return utils.Atan2(b.C, b.A) * utils.RadDeg
}

func (b *Bone) WorldRotationY() float32 {
	return utils.Atan2(b.D, b.B) * utils.RadDeg
}

func (b *Bone) WorldScaleX() float32 {
	return utils.Sqrt(b.A*b.A + b.C*b.C)
}

func (b *Bone) WorldScaleY() float32 {
	return utils.Sqrt(b.B*b.B + b.D*b.D)
}

// LocalToWorld transforms a point in the bone's coordinate space to world.
func (b *Bone) LocalToWorld(local mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{
		local[0]*b.A + local[1]*b.B + b.WorldX,
		local[0]*b.C + local[1]*b.D + b.WorldY,
	}
}

// WorldToLocal transforms a world point into the bone's coordinate space.
func (b *Bone) WorldToLocal(world mgl32.Vec2) mgl32.Vec2 {
	invDet := 1 / (b.A*b.D - b.B*b.C)
	x, y := world[0]-b.WorldX, world[1]-b.WorldY
	return mgl32.Vec2{
		x*b.D*invDet - y*b.B*invDet,
		y*b.A*invDet - x*b.C*invDet,
	}
}

// WorldToLocalRotation converts a world rotation (degrees) to local.
func (b *Bone) WorldToLocalRotation(worldRotation float32) float32 {
	sin, cos := utils.SinDeg(worldRotation), utils.CosDeg(worldRotation)
	return utils.Atan2(b.A*sin-b.C*cos, b.D*cos-b.B*sin)*utils.RadDeg +
		b.Rotation - b.ShearX
}

// LocalToWorldRotation converts a local rotation (degrees) to world.
func (b *Bone) LocalToWorldRotation(localRotation float32) float32 {
	localRotation -= b.Rotation - b.ShearX
	sin, cos := utils.SinDeg(localRotation), utils.CosDeg(localRotation)
	return utils.Atan2(cos*b.C+sin*b.D, cos*b.A+sin*b.B) * utils.RadDeg
}

// RotateWorld rotates the world transform by degrees, leaving worldX/worldY
// untouched. The applied pose becomes stale.
func (b *Bone) RotateWorld(degrees float32) {
	cos, sin := utils.CosDeg(degrees), utils.SinDeg(degrees)
	a, bb, c, d := b.A, b.B, b.C, b.D
	b.A = cos*a - sin*c
	b.B = cos*bb - sin*d
	b.C = sin*a + cos*c
	b.D = sin*bb + cos*d
	b.AppliedValid = false
}
