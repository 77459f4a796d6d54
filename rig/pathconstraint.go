package rig

import (
	"math"

	"github.com/mogaika/rig2d/utils"
)

const pathEpsilon = 0.00001

// PathConstraint positions and rotates a chain of bones along the path
// attachment of a target slot.
type PathConstraint struct {
	PathData *PathConstraintData
	Bones    []*Bone
	Target   *Slot

	Position, Spacing       float32
	RotateMix, TranslateMix float32

	Active bool

	// Scratch buffers reused between frames.
	spaces, positions []float32
	world, curves     []float32
	lengths           []float32
	segments          [10]float32
}

func NewPathConstraint(data *PathConstraintData, skeleton *Skeleton) *PathConstraint {
	c := &PathConstraint{
		PathData:     data,
		Target:       skeleton.Slots[data.Target.Index],
		Position:     data.Position,
		Spacing:      data.Spacing,
		RotateMix:    data.RotateMix,
		TranslateMix: data.TranslateMix,
	}
	for _, boneData := range data.Bones {
		c.Bones = append(c.Bones, skeleton.Bones[boneData.Index])
	}
	return c
}

func (c *PathConstraint) Data() ConstraintData { return c.PathData }
func (c *PathConstraint) IsActive() bool       { return c.Active }

func (c *PathConstraint) SetToSetupPose() {
	d := c.PathData
	c.Position = d.Position
	c.Spacing = d.Spacing
	c.RotateMix = d.RotateMix
	c.TranslateMix = d.TranslateMix
}

func resize(buf []float32, n int) []float32 {
	if cap(buf) < n {
		return make([]float32, n)
	}
	return buf[:n]
}

func (c *PathConstraint) Update() {
	path, ok := c.Target.Attachment().(*PathAttachment)
	if !ok {
		return
	}
	rotate := c.RotateMix > 0
	translate := c.TranslateMix > 0
	if !rotate && !translate {
		return
	}

	data := c.PathData
	tangents := data.RotateMode == RotateTangent
	scale := data.RotateMode == RotateChainScale
	boneCount := len(c.Bones)
	spacesCount := boneCount + 1
	if tangents {
		spacesCount = boneCount
	}
	c.spaces = resize(c.spaces, spacesCount)
	spaces := c.spaces
	spaces[0] = 0
	spacing := c.Spacing

	var lengths []float32
	percentSpacing := data.SpacingMode == SpacingPercent
	switch {
	case data.SpacingMode == SpacingProportional:
		// Spaces are fractions of the whole path, sized by each bone's
		// world length; resolved against pathLength like percent spacing.
		c.lengths = resize(c.lengths, boneCount)
		lengths = c.lengths
		var sum float32
		for i := 0; i < spacesCount-1; i++ {
			bone := c.Bones[i]
			setupLength := bone.Data.Length
			x := setupLength * bone.A
			y := setupLength * bone.C
			length := utils.Sqrt(x*x + y*y)
			lengths[i] = length
			sum += length
		}
		if sum > 0 {
			for i := 1; i < spacesCount; i++ {
				spaces[i] = lengths[i-1] / sum
			}
		}
		if !scale {
			lengths = nil
		}
		percentSpacing = true
	case scale || data.SpacingMode != SpacingPercent:
		if scale {
			c.lengths = resize(c.lengths, boneCount)
			lengths = c.lengths
		}
		lengthSpacing := data.SpacingMode == SpacingLength
		for i := 0; i < spacesCount-1; i++ {
			bone := c.Bones[i]
			setupLength := bone.Data.Length
			if setupLength < pathEpsilon {
				if scale {
					lengths[i] = 0
				}
				spaces[i+1] = 0
			} else {
				x := setupLength * bone.A
				y := setupLength * bone.C
				length := utils.Sqrt(x*x + y*y)
				if scale {
					lengths[i] = length
				}
				if lengthSpacing {
					spaces[i+1] = (setupLength + spacing) * length / setupLength
				} else {
					spaces[i+1] = spacing * length / setupLength
				}
			}
		}
	default:
		for i := 1; i < spacesCount; i++ {
			spaces[i] = spacing
		}
	}

	positions := c.computeWorldPositions(path, spacesCount, tangents,
		data.PositionMode == PositionPercent, percentSpacing)
	boneX, boneY := positions[0], positions[1]
	offsetRotation := data.OffsetRotation
	var tip bool
	if offsetRotation == 0 {
		tip = data.RotateMode == RotateChain
	} else {
		tip = false
		p := c.Target.Bone
		if p.A*p.D-p.B*p.C > 0 {
			offsetRotation *= utils.DegRad
		} else {
			offsetRotation *= -utils.DegRad
		}
	}

	for i, p := 0, 3; i < boneCount; i, p = i+1, p+3 {
		bone := c.Bones[i]
		bone.WorldX += (boneX - bone.WorldX) * c.TranslateMix
		bone.WorldY += (boneY - bone.WorldY) * c.TranslateMix
		x, y := positions[p], positions[p+1]
		dx, dy := x-boneX, y-boneY
		if scale {
			length := lengths[i]
			if length >= pathEpsilon {
				s := (utils.Sqrt(dx*dx+dy*dy)/length-1)*c.RotateMix + 1
				bone.A *= s
				bone.C *= s
			}
		}
		boneX, boneY = x, y
		if rotate {
			a, b, bc, d := bone.A, bone.B, bone.C, bone.D
			var r, cos, sin float32
			if tangents {
				r = positions[p-1]
			} else if spaces[i+1] < pathEpsilon {
				r = positions[p+2]
			} else {
				r = utils.Atan2(dy, dx)
			}
			r -= utils.Atan2(bc, a)
			if tip {
				cos = utils.Cos(r)
				sin = utils.Sin(r)
				length := bone.Data.Length
				boneX += (length*(cos*a-sin*bc) - dx) * c.RotateMix
				boneY += (length*(sin*a+cos*bc) - dy) * c.RotateMix
			} else {
				r += offsetRotation
			}
			if r > math.Pi {
				r -= 2 * math.Pi
			} else if r < -math.Pi {
				r += 2 * math.Pi
			}
			r *= c.RotateMix
			cos = utils.Cos(r)
			sin = utils.Sin(r)
			bone.A = cos*a - sin*bc
			bone.B = cos*b - sin*d
			bone.C = sin*a + cos*bc
			bone.D = sin*b + cos*d
		}
		bone.AppliedValid = false
	}
	for _, bone := range c.Bones {
		updateDescendants(bone)
	}
}

const (
	prevCurveNone   = -1
	prevCurveBefore = -2
	prevCurveAfter  = -3
)

// computeWorldPositions resamples the path into spacesCount (x, y, rotation)
// triples plus a trailing pair, in constant-speed or natural
// parameterization.
func (c *PathConstraint) computeWorldPositions(path *PathAttachment, spacesCount int, tangents, percentPosition, percentSpacing bool) []float32 {
	target := c.Target
	position := c.Position
	spaces := c.spaces
	c.positions = resize(c.positions, spacesCount*3+2)
	out := c.positions
	closed := path.Closed
	verticesLength := path.WorldVerticesLength
	curveCount := verticesLength / 6
	prevCurve := prevCurveNone

	if !path.ConstantSpeed {
		lengths := path.Lengths
		if closed {
			curveCount--
		} else {
			curveCount -= 2
		}
		pathLength := lengths[curveCount]
		if percentPosition {
			position *= pathLength
		}
		if percentSpacing {
			for i := 1; i < spacesCount; i++ {
				spaces[i] *= pathLength
			}
		}
		c.world = resize(c.world, 8)
		world := c.world
		curve := 0
		for i, o := 0, 0; i < spacesCount; i, o = i+1, o+3 {
			space := spaces[i]
			position += space
			p := position
			if closed {
				p = utils.Mod(p, pathLength)
				if p < 0 {
					p += pathLength
				}
				curve = 0
			} else if p < 0 {
				if prevCurve != prevCurveBefore {
					prevCurve = prevCurveBefore
					path.ComputeWorldVertices(target, 2, 4, world, 0, 2)
				}
				addBeforePosition(p, world, 0, out, o)
				continue
			} else if p > pathLength {
				if prevCurve != prevCurveAfter {
					prevCurve = prevCurveAfter
					path.ComputeWorldVertices(target, verticesLength-6, 4, world, 0, 2)
				}
				addAfterPosition(p-pathLength, world, 0, out, o)
				continue
			}
			for ; ; curve++ {
				length := lengths[curve]
				if p > length {
					continue
				}
				if curve == 0 {
					p /= length
				} else {
					prev := lengths[curve-1]
					p = (p - prev) / (length - prev)
				}
				break
			}
			if curve != prevCurve {
				prevCurve = curve
				if closed && curve == curveCount {
					path.ComputeWorldVertices(target, verticesLength-4, 4, world, 0, 2)
					path.ComputeWorldVertices(target, 0, 4, world, 4, 2)
				} else {
					path.ComputeWorldVertices(target, curve*6+2, 8, world, 0, 2)
				}
			}
			addCurvePosition(p, world[0], world[1], world[2], world[3], world[4], world[5], world[6], world[7],
				out, o, tangents || (i > 0 && space < pathEpsilon))
		}
		return out
	}

	// Constant speed: flatten every curve into an arc-length table.
	var world []float32
	if closed {
		verticesLength += 2
		c.world = resize(c.world, verticesLength)
		world = c.world
		path.ComputeWorldVertices(target, 2, verticesLength-4, world, 0, 2)
		path.ComputeWorldVertices(target, 0, 2, world, verticesLength-4, 2)
		world[verticesLength-2] = world[0]
		world[verticesLength-1] = world[1]
	} else {
		curveCount--
		verticesLength -= 4
		c.world = resize(c.world, verticesLength)
		world = c.world
		path.ComputeWorldVertices(target, 2, verticesLength, world, 0, 2)
	}

	c.curves = resize(c.curves, curveCount)
	curves := c.curves
	var pathLength float32
	x1, y1 := world[0], world[1]
	var cx1, cy1, cx2, cy2, x2, y2 float32
	var tmpx, tmpy, dddfx, dddfy, ddfx, ddfy, dfx, dfy float32
	for i, w := 0, 2; i < curveCount; i, w = i+1, w+6 {
		cx1, cy1 = world[w], world[w+1]
		cx2, cy2 = world[w+2], world[w+3]
		x2, y2 = world[w+4], world[w+5]
		tmpx = (x1 - cx1*2 + cx2) * 0.1875
		tmpy = (y1 - cy1*2 + cy2) * 0.1875
		dddfx = ((cx1-cx2)*3 - x1 + x2) * 0.09375
		dddfy = ((cy1-cy2)*3 - y1 + y2) * 0.09375
		ddfx = tmpx*2 + dddfx
		ddfy = tmpy*2 + dddfy
		dfx = (cx1-x1)*0.75 + tmpx + dddfx*0.16666667
		dfy = (cy1-y1)*0.75 + tmpy + dddfy*0.16666667
		pathLength += utils.Sqrt(dfx*dfx + dfy*dfy)
		dfx += ddfx
		dfy += ddfy
		ddfx += dddfx
		ddfy += dddfy
		pathLength += utils.Sqrt(dfx*dfx + dfy*dfy)
		dfx += ddfx
		dfy += ddfy
		pathLength += utils.Sqrt(dfx*dfx + dfy*dfy)
		dfx += ddfx + dddfx
		dfy += ddfy + dddfy
		pathLength += utils.Sqrt(dfx*dfx + dfy*dfy)
		curves[i] = pathLength
		x1, y1 = x2, y2
	}
	if percentPosition {
		position *= pathLength
	} else {
		position *= pathLength / path.Lengths[curveCount-1]
	}
	if percentSpacing {
		for i := 1; i < spacesCount; i++ {
			spaces[i] *= pathLength
		}
	}

	segments := &c.segments
	var curveLength float32
	curve, segment := 0, 0
	for i, o := 0, 0; i < spacesCount; i, o = i+1, o+3 {
		space := spaces[i]
		position += space
		p := position
		if closed {
			p = utils.Mod(p, pathLength)
			if p < 0 {
				p += pathLength
			}
			curve = 0
		} else if p < 0 {
			addBeforePosition(p, world, 0, out, o)
			continue
		} else if p > pathLength {
			addAfterPosition(p-pathLength, world, verticesLength-4, out, o)
			continue
		}
		for ; ; curve++ {
			length := curves[curve]
			if p > length {
				continue
			}
			if curve == 0 {
				p /= length
			} else {
				prev := curves[curve-1]
				p = (p - prev) / (length - prev)
			}
			break
		}
		if curve != prevCurve {
			prevCurve = curve
			ii := curve * 6
			x1, y1 = world[ii], world[ii+1]
			cx1, cy1 = world[ii+2], world[ii+3]
			cx2, cy2 = world[ii+4], world[ii+5]
			x2, y2 = world[ii+6], world[ii+7]
			tmpx = (x1 - cx1*2 + cx2) * 0.03
			tmpy = (y1 - cy1*2 + cy2) * 0.03
			dddfx = ((cx1-cx2)*3 - x1 + x2) * 0.006
			dddfy = ((cy1-cy2)*3 - y1 + y2) * 0.006
			ddfx = tmpx*2 + dddfx
			ddfy = tmpy*2 + dddfy
			dfx = (cx1-x1)*0.3 + tmpx + dddfx*0.16666667
			dfy = (cy1-y1)*0.3 + tmpy + dddfy*0.16666667
			curveLength = utils.Sqrt(dfx*dfx + dfy*dfy)
			segments[0] = curveLength
			for ii = 1; ii < 8; ii++ {
				dfx += ddfx
				dfy += ddfy
				ddfx += dddfx
				ddfy += dddfy
				curveLength += utils.Sqrt(dfx*dfx + dfy*dfy)
				segments[ii] = curveLength
			}
			dfx += ddfx
			dfy += ddfy
			curveLength += utils.Sqrt(dfx*dfx + dfy*dfy)
			segments[8] = curveLength
			dfx += ddfx + dddfx
			dfy += ddfy + dddfy
			curveLength += utils.Sqrt(dfx*dfx + dfy*dfy)
			segments[9] = curveLength
			segment = 0
		}
		p *= curveLength
		for ; ; segment++ {
			length := segments[segment]
			if p > length {
				continue
			}
			if segment == 0 {
				p /= length
			} else {
				prev := segments[segment-1]
				p = float32(segment) + (p-prev)/(length-prev)
			}
			break
		}
		addCurvePosition(p*0.1, x1, y1, cx1, cy1, cx2, cy2, x2, y2,
			out, o, tangents || (i > 0 && space < pathEpsilon))
	}
	return out
}

func addBeforePosition(p float32, temp []float32, i int, out []float32, o int) {
	x1, y1 := temp[i], temp[i+1]
	dx, dy := temp[i+2]-x1, temp[i+3]-y1
	r := utils.Atan2(dy, dx)
	out[o] = x1 + p*utils.Cos(r)
	out[o+1] = y1 + p*utils.Sin(r)
	out[o+2] = r
}

func addAfterPosition(p float32, temp []float32, i int, out []float32, o int) {
	x1, y1 := temp[i+2], temp[i+3]
	dx, dy := x1-temp[i], y1-temp[i+1]
	r := utils.Atan2(dy, dx)
	out[o] = x1 + p*utils.Cos(r)
	out[o+1] = y1 + p*utils.Sin(r)
	out[o+2] = r
}

func addCurvePosition(p, x1, y1, cx1, cy1, cx2, cy2, x2, y2 float32, out []float32, o int, tangents bool) {
	if p < pathEpsilon || utils.IsNaN(p) {
		out[o] = x1
		out[o+1] = y1
		out[o+2] = utils.Atan2(cy1-y1, cx1-x1)
		return
	}
	tt := p * p
	ttt := tt * p
	u := 1 - p
	uu := u * u
	uuu := uu * u
	ut := u * p
	ut3 := ut * 3
	uut3 := u * ut3
	utt3 := ut3 * p
	x := x1*uuu + cx1*uut3 + cx2*utt3 + x2*ttt
	y := y1*uuu + cy1*uut3 + cy2*utt3 + y2*ttt
	if tangents {
		if p < 0.001 {
			out[o+2] = utils.Atan2(cy1-y1, cx1-x1)
		} else {
			out[o+2] = utils.Atan2(y-(y1*uu+cy1*ut*2+cy2*tt), x-(x1*uu+cx1*ut*2+cx2*tt))
		}
	}
	out[o] = x
	out[o+1] = y
}
