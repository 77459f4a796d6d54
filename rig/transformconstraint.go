package rig

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/rig2d/utils"
)

// TransformConstraint copies rotation, translation, scale and shear from a
// target bone onto constrained bones, each channel by its own mix ratio,
// absolute or relative, in world or local space.
type TransformConstraint struct {
	TransformData *TransformConstraintData
	Bones         []*Bone
	Target        *Bone

	RotateMix, TranslateMix float32
	ScaleMix, ShearMix      float32

	Active bool
}

func NewTransformConstraint(data *TransformConstraintData, skeleton *Skeleton) *TransformConstraint {
	c := &TransformConstraint{
		TransformData: data,
		Target:        skeleton.Bones[data.Target.Index],
		RotateMix:     data.RotateMix,
		TranslateMix:  data.TranslateMix,
		ScaleMix:      data.ScaleMix,
		ShearMix:      data.ShearMix,
	}
	for _, boneData := range data.Bones {
		c.Bones = append(c.Bones, skeleton.Bones[boneData.Index])
	}
	return c
}

func (c *TransformConstraint) Data() ConstraintData { return c.TransformData }
func (c *TransformConstraint) IsActive() bool       { return c.Active }

func (c *TransformConstraint) SetToSetupPose() {
	d := c.TransformData
	c.RotateMix = d.RotateMix
	c.TranslateMix = d.TranslateMix
	c.ScaleMix = d.ScaleMix
	c.ShearMix = d.ShearMix
}

func (c *TransformConstraint) Update() {
	if c.RotateMix == 0 && c.TranslateMix == 0 && c.ScaleMix == 0 && c.ShearMix == 0 {
		return
	}
	if c.TransformData.Local {
		if c.TransformData.Relative {
			c.applyRelativeLocal()
		} else {
			c.applyAbsoluteLocal()
		}
	} else {
		if c.TransformData.Relative {
			c.applyRelativeWorld()
		} else {
			c.applyAbsoluteWorld()
		}
	}
	for _, bone := range c.Bones {
		updateDescendants(bone)
	}
}

func (c *TransformConstraint) applyAbsoluteWorld() {
	data := c.TransformData
	target := c.Target
	ta, tb, tc, td := target.A, target.B, target.C, target.D
	degRadReflect := float32(utils.DegRad)
	if ta*td-tb*tc < 0 {
		degRadReflect = -degRadReflect
	}
	offsetRotation := data.OffsetRotation * degRadReflect
	offsetShearY := data.OffsetShearY * degRadReflect

	for _, bone := range c.Bones {
		modified := false

		if c.RotateMix != 0 {
			a, b, bc, d := bone.A, bone.B, bone.C, bone.D
			r := utils.Atan2(tc, ta) - utils.Atan2(bc, a) + offsetRotation
			if r > math.Pi {
				r -= 2 * math.Pi
			} else if r < -math.Pi {
				r += 2 * math.Pi
			}
			r *= c.RotateMix
			cos, sin := utils.Cos(r), utils.Sin(r)
			bone.A = cos*a - sin*bc
			bone.B = cos*b - sin*d
			bone.C = sin*a + cos*bc
			bone.D = sin*b + cos*d
			modified = true
		}

		if c.TranslateMix != 0 {
			world := target.LocalToWorld(mgl32.Vec2{data.OffsetX, data.OffsetY})
			bone.WorldX += (world[0] - bone.WorldX) * c.TranslateMix
			bone.WorldY += (world[1] - bone.WorldY) * c.TranslateMix
			modified = true
		}

		if c.ScaleMix > 0 {
			s := utils.Sqrt(bone.A*bone.A + bone.C*bone.C)
			ts := utils.Sqrt(ta*ta + tc*tc)
			if s > 0.00001 {
				s = (s + (ts-s+data.OffsetScaleX)*c.ScaleMix) / s
			}
			bone.A *= s
			bone.C *= s
			s = utils.Sqrt(bone.B*bone.B + bone.D*bone.D)
			ts = utils.Sqrt(tb*tb + td*td)
			if s > 0.00001 {
				s = (s + (ts-s+data.OffsetScaleY)*c.ScaleMix) / s
			}
			bone.B *= s
			bone.D *= s
			modified = true
		}

		if c.ShearMix > 0 {
			b, d := bone.B, bone.D
			by := utils.Atan2(d, b)
			r := utils.Atan2(td, tb) - utils.Atan2(tc, ta) - (by - utils.Atan2(bone.C, bone.A))
			if r > math.Pi {
				r -= 2 * math.Pi
			} else if r < -math.Pi {
				r += 2 * math.Pi
			}
			r = by + (r+offsetShearY)*c.ShearMix
			s := utils.Sqrt(b*b + d*d)
			bone.B = utils.Cos(r) * s
			bone.D = utils.Sin(r) * s
			modified = true
		}

		if modified {
			bone.AppliedValid = false
		}
	}
}

func (c *TransformConstraint) applyRelativeWorld() {
	data := c.TransformData
	target := c.Target
	ta, tb, tc, td := target.A, target.B, target.C, target.D
	degRadReflect := float32(utils.DegRad)
	if ta*td-tb*tc < 0 {
		degRadReflect = -degRadReflect
	}
	offsetRotation := data.OffsetRotation * degRadReflect
	offsetShearY := data.OffsetShearY * degRadReflect

	for _, bone := range c.Bones {
		modified := false

		if c.RotateMix != 0 {
			a, b, bc, d := bone.A, bone.B, bone.C, bone.D
			r := utils.Atan2(tc, ta) + offsetRotation
			if r > math.Pi {
				r -= 2 * math.Pi
			} else if r < -math.Pi {
				r += 2 * math.Pi
			}
			r *= c.RotateMix
			cos, sin := utils.Cos(r), utils.Sin(r)
			bone.A = cos*a - sin*bc
			bone.B = cos*b - sin*d
			bone.C = sin*a + cos*bc
			bone.D = sin*b + cos*d
			modified = true
		}

		if c.TranslateMix != 0 {
			world := target.LocalToWorld(mgl32.Vec2{data.OffsetX, data.OffsetY})
			bone.WorldX += world[0] * c.TranslateMix
			bone.WorldY += world[1] * c.TranslateMix
			modified = true
		}

		if c.ScaleMix > 0 {
			s := (utils.Sqrt(ta*ta+tc*tc)-1+data.OffsetScaleX)*c.ScaleMix + 1
			bone.A *= s
			bone.C *= s
			s = (utils.Sqrt(tb*tb+td*td)-1+data.OffsetScaleY)*c.ScaleMix + 1
			bone.B *= s
			bone.D *= s
			modified = true
		}

		if c.ShearMix > 0 {
			r := utils.Atan2(td, tb) - utils.Atan2(tc, ta)
			if r > math.Pi {
				r -= 2 * math.Pi
			} else if r < -math.Pi {
				r += 2 * math.Pi
			}
			b, d := bone.B, bone.D
			r = utils.Atan2(d, b) + (r-math.Pi/2+offsetShearY)*c.ShearMix
			s := utils.Sqrt(b*b + d*d)
			bone.B = utils.Cos(r) * s
			bone.D = utils.Sin(r) * s
			modified = true
		}

		if modified {
			bone.AppliedValid = false
		}
	}
}

func (c *TransformConstraint) applyAbsoluteLocal() {
	data := c.TransformData
	target := c.Target
	if !target.AppliedValid {
		target.UpdateAppliedTransform()
	}
	for _, bone := range c.Bones {
		if !bone.AppliedValid {
			bone.UpdateAppliedTransform()
		}

		rotation := bone.ARotation
		if c.RotateMix != 0 {
			r := target.ARotation - rotation + data.OffsetRotation
			rotation += utils.WrapDeg(r) * c.RotateMix
		}

		x, y := bone.AX, bone.AY
		if c.TranslateMix != 0 {
			x += (target.AX - x + data.OffsetX) * c.TranslateMix
			y += (target.AY - y + data.OffsetY) * c.TranslateMix
		}

		scaleX, scaleY := bone.AScaleX, bone.AScaleY
		if c.ScaleMix != 0 {
			scaleX += (target.AScaleX - scaleX + data.OffsetScaleX) * c.ScaleMix
			scaleY += (target.AScaleY - scaleY + data.OffsetScaleY) * c.ScaleMix
		}

		shearY := bone.AShearY
		if c.ShearMix != 0 {
			r := target.AShearY - shearY + data.OffsetShearY
			shearY += utils.WrapDeg(r) * c.ShearMix
		}

		bone.UpdateWorldTransformWith(x, y, rotation, scaleX, scaleY, bone.AShearX, shearY)
	}
}

func (c *TransformConstraint) applyRelativeLocal() {
	data := c.TransformData
	target := c.Target
	if !target.AppliedValid {
		target.UpdateAppliedTransform()
	}
	for _, bone := range c.Bones {
		if !bone.AppliedValid {
			bone.UpdateAppliedTransform()
		}

		rotation := bone.ARotation + (target.ARotation+data.OffsetRotation)*c.RotateMix
		x := bone.AX + (target.AX+data.OffsetX)*c.TranslateMix
		y := bone.AY + (target.AY+data.OffsetY)*c.TranslateMix
		scaleX := bone.AScaleX * ((target.AScaleX-1+data.OffsetScaleX)*c.ScaleMix + 1)
		scaleY := bone.AScaleY * ((target.AScaleY-1+data.OffsetScaleY)*c.ScaleMix + 1)
		shearY := bone.AShearY + (target.AShearY+data.OffsetShearY)*c.ShearMix

		bone.UpdateWorldTransformWith(x, y, rotation, scaleX, scaleY, bone.AShearX, shearY)
	}
}
