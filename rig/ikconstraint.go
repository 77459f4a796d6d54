package rig

import (
	"math"

	"github.com/mogaika/rig2d/utils"
)

// IkConstraint rotates 1 or 2 bones so the chain tip reaches the target
// bone's world position.
type IkConstraint struct {
	IkData *IkConstraintData
	Bones  []*Bone
	Target *Bone

	BendDirection int
	Compress      bool
	Stretch       bool
	Mix           float32
	Softness      float32

	Active bool
}

func NewIkConstraint(data *IkConstraintData, skeleton *Skeleton) *IkConstraint {
	c := &IkConstraint{
		IkData:        data,
		Target:        skeleton.Bones[data.Target.Index],
		BendDirection: data.BendDirection,
		Compress:      data.Compress,
		Stretch:       data.Stretch,
		Mix:           data.Mix,
		Softness:      data.Softness,
	}
	for _, boneData := range data.Bones {
		c.Bones = append(c.Bones, skeleton.Bones[boneData.Index])
	}
	return c
}

func (c *IkConstraint) Data() ConstraintData { return c.IkData }
func (c *IkConstraint) IsActive() bool       { return c.Active }

func (c *IkConstraint) SetToSetupPose() {
	d := c.IkData
	c.BendDirection = d.BendDirection
	c.Compress = d.Compress
	c.Stretch = d.Stretch
	c.Mix = d.Mix
	c.Softness = d.Softness
}

func (c *IkConstraint) Update() {
	if c.Mix == 0 {
		return
	}
	target := c.Target
	switch len(c.Bones) {
	case 1:
		applyIk1(c.Bones[0], target.WorldX, target.WorldY, c.Compress, c.Stretch, c.IkData.Uniform, c.Mix)
		updateDescendants(c.Bones[0])
	case 2:
		applyIk2(c.Bones[0], c.Bones[1], target.WorldX, target.WorldY, c.BendDirection, c.Stretch, c.Softness, c.Mix)
		updateDescendants(c.Bones[0])
	}
}

// applyIk1 rotates the bone so its local X axis points at the target.
func applyIk1(bone *Bone, targetX, targetY float32, compress, stretch, uniform bool, alpha float32) {
	if !bone.AppliedValid {
		bone.UpdateAppliedTransform()
	}
	p := bone.Parent

	var tx, ty float32
	rotationIK := -bone.AShearX - bone.ARotation

	if p == nil {
		tx = targetX - bone.WorldX
		ty = targetY - bone.WorldY
	} else {
		pa, pb, pc, pd := p.A, p.B, p.C, p.D
		switch bone.Data.TransformMode {
		case TransformOnlyTranslation:
			tx = targetX - bone.WorldX
			ty = targetY - bone.WorldY
		case TransformNoRotationOrReflection:
			s := utils.Abs(pa*pd-pb*pc) / (pa*pa + pc*pc)
			sa := pa / bone.Skeleton.ScaleX
			sc := pc / bone.Skeleton.ScaleY
			pb = -sc * s * bone.Skeleton.ScaleX
			pd = sa * s * bone.Skeleton.ScaleY
			rotationIK += utils.Atan2(sc, sa) * utils.RadDeg
			fallthrough
		default:
			x := targetX - p.WorldX
			y := targetY - p.WorldY
			d := pa*pd - pb*pc
			tx = (x*pd-y*pb)/d - bone.AX
			ty = (y*pa-x*pc)/d - bone.AY
		}
	}

	rotationIK += utils.Atan2(ty, tx) * utils.RadDeg
	if bone.AScaleX < 0 {
		rotationIK += 180
	}
	if rotationIK > 180 {
		rotationIK -= 360
	} else if rotationIK < -180 {
		rotationIK += 360
	}

	sx, sy := bone.AScaleX, bone.AScaleY
	if compress || stretch {
		switch bone.Data.TransformMode {
		case TransformNoScale, TransformNoScaleOrReflection:
			tx = targetX - bone.WorldX
			ty = targetY - bone.WorldY
		}
		b := bone.Data.Length * sx
		dd := utils.Sqrt(tx*tx + ty*ty)
		if ((compress && dd < b) || (stretch && dd > b)) && b > 0.0001 {
			s := (dd/b-1)*alpha + 1
			sx *= s
			if uniform {
				sy *= s
			}
		}
	}

	bone.UpdateWorldTransformWith(bone.AX, bone.AY, bone.ARotation+rotationIK*alpha,
		sx, sy, bone.AShearX, bone.AShearY)
}

// applyIk2 solves the two-bone case analytically (law of cosines), with
// softness easing the fully-extended boundary and stretch scaling the
// parent when the target is past reach.
func applyIk2(parent, child *Bone, targetX, targetY float32, bendDir int, stretch bool, softness, alpha float32) {
	if alpha == 0 {
		child.UpdateWorldTransform()
		return
	}
	if !parent.AppliedValid {
		parent.UpdateAppliedTransform()
	}
	if !child.AppliedValid {
		child.UpdateAppliedTransform()
	}

	px, py := parent.AX, parent.AY
	psx, psy := parent.AScaleX, parent.AScaleY
	sx := psx
	csx := child.AScaleX
	var os1, os2, s2 int
	if psx < 0 {
		psx = -psx
		os1 = 180
		s2 = -1
	} else {
		os1 = 0
		s2 = 1
	}
	if psy < 0 {
		psy = -psy
		s2 = -s2
	}
	if csx < 0 {
		csx = -csx
		os2 = 180
	} else {
		os2 = 0
	}

	cx := child.AX
	var cy, cwx, cwy float32
	a, b, c, d := parent.A, parent.B, parent.C, parent.D
	u := utils.Abs(psx-psy) <= 0.0001
	if !u {
		cy = 0
		cwx = a*cx + parent.WorldX
		cwy = c*cx + parent.WorldY
	} else {
		cy = child.AY
		cwx = a*cx + b*cy + parent.WorldX
		cwy = c*cx + d*cy + parent.WorldY
	}

	pp := parent.Parent
	if pp == nil {
		// Parent is the root; solve in skeleton space.
		a, b, c, d = parent.Skeleton.ScaleX, 0, 0, parent.Skeleton.ScaleY
	} else {
		a, b, c, d = pp.A, pp.B, pp.C, pp.D
	}
	id := 1 / (a*d - b*c)
	var ppWorldX, ppWorldY float32
	if pp != nil {
		ppWorldX, ppWorldY = pp.WorldX, pp.WorldY
	} else {
		ppWorldX, ppWorldY = parent.Skeleton.X, parent.Skeleton.Y
	}
	x := cwx - ppWorldX
	y := cwy - ppWorldY
	dx := (x*d-y*b)*id - px
	dy := (y*a-x*c)*id - py
	l1 := utils.Sqrt(dx*dx + dy*dy)
	l2 := child.Data.Length * csx
	var a1, a2 float32

	if l1 < 0.0001 {
		applyIk1(parent, targetX, targetY, false, stretch, false, alpha)
		child.UpdateWorldTransformWith(cx, cy, 0, child.AScaleX, child.AScaleY, child.AShearX, child.AShearY)
		return
	}

	x = targetX - ppWorldX
	y = targetY - ppWorldY
	tx := (x*d-y*b)*id - px
	ty := (y*a-x*c)*id - py
	dd := tx*tx + ty*ty

	if softness != 0 {
		softness *= psx * (csx + 1) / 2
		td := utils.Sqrt(dd)
		sd := td - l1 - l2*psx + softness
		if sd > 0 {
			p := float32(math.Min(1, float64(sd/(softness*2)))) - 1
			p = (sd - softness*(1-p*p)) / td
			tx -= p * tx
			ty -= p * ty
			dd = tx*tx + ty*ty
		}
	}

	solved := false
	if u {
		l2 *= psx
		cos := (dd - l1*l1 - l2*l2) / (2 * l1 * l2)
		if cos < -1 {
			cos = -1
		} else if cos > 1 {
			cos = 1
			if stretch {
				sx *= (utils.Sqrt(dd)/(l1+l2)-1)*alpha + 1
			}
		}
		a2 = float32(math.Acos(float64(cos))) * float32(bendDir)
		a = l1 + l2*cos
		b = l2 * utils.Sin(a2)
		a1 = utils.Atan2(ty*a-tx*b, tx*a+ty*b)
		solved = true
	} else {
		a = psx * l2
		b = psy * l2
		aa, bb := a*a, b*b
		ta := utils.Atan2(ty, tx)
		c = bb*l1*l1 + aa*dd - aa*bb
		c1 := -2 * bb * l1
		c2 := bb - aa
		d = c1*c1 - 4*c2*c
		if d >= 0 {
			q := utils.Sqrt(d)
			if c1 < 0 {
				q = -q
			}
			q = -(c1 + q) / 2
			r0, r1 := q/c2, c/q
			r := r0
			if utils.Abs(r1) < utils.Abs(r0) {
				r = r1
			}
			if r*r <= dd {
				y = utils.Sqrt(dd-r*r) * float32(bendDir)
				a1 = ta - utils.Atan2(y, r)
				a2 = utils.Atan2(y/psy, (r-l1)/psx)
				solved = true
			}
		}
		if !solved {
			minAngle, minX, minY := float32(math.Pi), l1-a, float32(0)
			minDist := minX * minX
			maxAngle, maxX, maxY := float32(0), l1+a, float32(0)
			maxDist := maxX * maxX
			c = -a * l1 / (aa - bb)
			if c >= -1 && c <= 1 {
				c = float32(math.Acos(float64(c)))
				x = a*utils.Cos(c) + l1
				y = b * utils.Sin(c)
				d = x*x + y*y
				if d < minDist {
					minAngle, minDist, minX, minY = c, d, x, y
				}
				if d > maxDist {
					maxAngle, maxDist, maxX, maxY = c, d, x, y
				}
			}
			if dd <= (minDist+maxDist)/2 {
				a1 = ta - utils.Atan2(minY*float32(bendDir), minX)
				a2 = minAngle * float32(bendDir)
			} else {
				a1 = ta - utils.Atan2(maxY*float32(bendDir), maxX)
				a2 = maxAngle * float32(bendDir)
			}
		}
	}

	os := utils.Atan2(cy, cx) * float32(s2)
	rotation := parent.ARotation
	a1 = (a1-os)*utils.RadDeg + float32(os1) - rotation
	if a1 > 180 {
		a1 -= 360
	} else if a1 < -180 {
		a1 += 360
	}
	parent.UpdateWorldTransformWith(px, py, rotation+a1*alpha, sx, parent.AScaleY, 0, 0)

	rotation = child.ARotation
	a2 = ((a2+os)*utils.RadDeg-child.AShearX)*float32(s2) + float32(os2) - rotation
	if a2 > 180 {
		a2 -= 360
	} else if a2 < -180 {
		a2 += 360
	}
	child.UpdateWorldTransformWith(cx, cy, rotation+a2*alpha, child.AScaleX, child.AScaleY, child.AShearX, child.AShearY)
}
