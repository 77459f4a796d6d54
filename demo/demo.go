// Package demo builds a small rigged character in code: an IK-driven
// arm and leg, a path-constrained cape and a handful of animations.
// It stands in for loading authored data when trying out the runtime.
package demo

import (
	"github.com/pkg/errors"

	"github.com/mogaika/rig2d/rig"
	"github.com/mogaika/rig2d/utils"
)

// Bone indices into SkeletonData.Bones.
const (
	BoneRoot = iota
	BoneHip
	BoneTorso
	BoneHead
	BoneArm
	BoneForearm
	BoneHandTarget
	BoneLeg
	BoneShin
	BoneFootTarget
	BoneCape1
	BoneCape2
	BoneCape3
)

// Slot indices into SkeletonData.Slots.
const (
	SlotTorso = iota
	SlotHead
	SlotCape
	SlotCapePath
)

func region(name string, width, height float32) *rig.RegionAttachment {
	r := rig.NewRegionAttachment(name)
	r.TexturePath = name + ".png"
	r.Width = width
	r.Height = height
	r.UVs = [8]float32{0, 1, 0, 0, 1, 0, 1, 1}
	r.UpdateOffset()
	return r
}

// BuildSkeletonData assembles the demo character and validates it.
func BuildSkeletonData() (*rig.SkeletonData, error) {
	data := &rig.SkeletonData{
		Name:   "demo",
		Width:  140,
		Height: 180,
	}

	bone := func(name string, parent *rig.BoneData) *rig.BoneData {
		b := rig.NewBoneData(len(data.Bones), name, parent)
		data.Bones = append(data.Bones, b)
		return b
	}

	root := bone("root", nil)
	hip := bone("hip", root)
	hip.Y = 50
	torso := bone("torso", hip)
	torso.Rotation = 90
	torso.Length = 50
	head := bone("head", torso)
	head.X = 50
	head.Length = 25
	arm := bone("arm", torso)
	arm.X = 40
	arm.Rotation = -80
	arm.Length = 35
	forearm := bone("forearm", arm)
	forearm.X = 35
	forearm.Length = 35
	handTarget := bone("hand-target", root)
	handTarget.X = 55
	handTarget.Y = 60
	leg := bone("leg", hip)
	leg.Rotation = -90
	leg.Length = 25
	shin := bone("shin", leg)
	shin.X = 25
	shin.Length = 25
	footTarget := bone("foot-target", root)
	footTarget.X = 4
	footTarget.Y = 2
	cape1 := bone("cape1", torso)
	cape1.X = 5
	cape1.Length = 15
	cape2 := bone("cape2", cape1)
	cape2.X = 15
	cape2.Length = 15
	cape3 := bone("cape3", cape2)
	cape3.X = 15
	cape3.Length = 15

	slot := func(name string, boneData *rig.BoneData, attachmentName string) *rig.SlotData {
		s := rig.NewSlotData(len(data.Slots), name, boneData)
		s.AttachmentName = attachmentName
		data.Slots = append(data.Slots, s)
		return s
	}

	slot("torso", torso, "torso")
	slot("head", head, "head")
	capeSlot := slot("cape", cape1, "cape")
	dark := utils.ColorFloat{0.1, 0.1, 0.2, 1}
	capeSlot.DarkColor = &dark
	capePathSlot := slot("cape-path", torso, "cape-path")

	skin := rig.NewSkin("default")
	skin.SetAttachment(SlotTorso, "torso", region("torso", 40, 60))
	skin.SetAttachment(SlotHead, "head", region("head", 30, 30))
	skin.SetAttachment(SlotHead, "head-blink", region("head-blink", 30, 30))
	skin.SetAttachment(SlotCape, "cape", region("cape", 20, 45))

	capePath := rig.NewPathAttachment("cape-path")
	capePath.ConstantSpeed = true
	capePath.WorldVerticesLength = 18
	// Three anchors arcing down behind the torso, as cp-in, anchor,
	// cp-out triples.
	capePath.Vertices = []float32{
		8, 0, 5, 0, 2, 0,
		-8, -22, -5, -25, -2, -28,
		-4, -48, -5, -50, -6, -52,
	}
	capePath.Lengths = []float32{34, 60}
	skin.SetAttachment(SlotCapePath, "cape-path", capePath)

	data.Skins = append(data.Skins, skin)
	data.DefaultSkin = skin

	armIk := rig.NewIkConstraintData("arm-ik")
	armIk.Bones = []*rig.BoneData{arm, forearm}
	armIk.Target = handTarget
	data.IkConstraints = append(data.IkConstraints, armIk)

	legIk := rig.NewIkConstraintData("leg-ik")
	legIk.Bones = []*rig.BoneData{leg, shin}
	legIk.Target = footTarget
	legIk.BendDirection = -1
	legIk.Order = 1
	data.IkConstraints = append(data.IkConstraints, legIk)

	headFollow := rig.NewTransformConstraintData("head-follow")
	headFollow.Bones = []*rig.BoneData{head}
	headFollow.Target = hip
	headFollow.RotateMix = 0.25
	headFollow.OffsetRotation = 90
	headFollow.Order = 2
	data.TransformConstraints = append(data.TransformConstraints, headFollow)

	capeConstraint := rig.NewPathConstraintData("cape")
	capeConstraint.Bones = []*rig.BoneData{cape1, cape2, cape3}
	capeConstraint.Target = capePathSlot
	capeConstraint.PositionMode = rig.PositionPercent
	capeConstraint.SpacingMode = rig.SpacingLength
	capeConstraint.RotateMode = rig.RotateChain
	capeConstraint.RotateMix = 1
	capeConstraint.TranslateMix = 1
	capeConstraint.Order = 3
	data.PathConstraints = append(data.PathConstraints, capeConstraint)

	step := &rig.EventData{Name: "step"}
	land := &rig.EventData{Name: "land", IntValue: 1}
	data.Events = append(data.Events, step, land)

	data.Animations = append(data.Animations,
		buildIdle(),
		buildWalk(step),
		buildJump(land),
		buildWave(),
	)

	if err := data.Validate(); err != nil {
		return nil, errors.Wrap(err, "demo: invalid skeleton")
	}
	return data, nil
}

func buildIdle() *rig.Animation {
	torsoSway := rig.NewRotateTimeline(3, BoneTorso)
	torsoSway.SetFrame(0, 0, 0)
	torsoSway.SetFrame(1, 1, 4)
	torsoSway.SetFrame(2, 2, 0)
	torsoSway.SetCurve(0, 0.25, 0, 0.75, 1)
	torsoSway.SetCurve(1, 0.25, 0, 0.75, 1)

	hipBob := rig.NewTranslateTimeline(3, BoneHip)
	hipBob.SetFrame(0, 0, 0, 0)
	hipBob.SetFrame(1, 1, 0, -3)
	hipBob.SetFrame(2, 2, 0, 0)

	handDrift := rig.NewTranslateTimeline(3, BoneHandTarget)
	handDrift.SetFrame(0, 0, 0, 0)
	handDrift.SetFrame(1, 1, -2, -4)
	handDrift.SetFrame(2, 2, 0, 0)

	return rig.NewAnimation("idle", []rig.Timeline{torsoSway, hipBob, handDrift}, 2)
}

func buildWalk(step *rig.EventData) *rig.Animation {
	footSwing := rig.NewTranslateTimeline(3, BoneFootTarget)
	footSwing.SetFrame(0, 0, 10, 0)
	footSwing.SetFrame(1, 0.5, -10, 6)
	footSwing.SetFrame(2, 1, 10, 0)

	handSwing := rig.NewTranslateTimeline(3, BoneHandTarget)
	handSwing.SetFrame(0, 0, -8, 0)
	handSwing.SetFrame(1, 0.5, 8, 2)
	handSwing.SetFrame(2, 1, -8, 0)

	hipBob := rig.NewTranslateTimeline(5, BoneHip)
	hipBob.SetFrame(0, 0, 0, 0)
	hipBob.SetFrame(1, 0.25, 0, -4)
	hipBob.SetFrame(2, 0.5, 0, 0)
	hipBob.SetFrame(3, 0.75, 0, -4)
	hipBob.SetFrame(4, 1, 0, 0)

	events := rig.NewEventTimeline(2)
	events.SetFrame(0, rig.NewEvent(0.25, step))
	events.SetFrame(1, rig.NewEvent(0.75, step))

	return rig.NewAnimation("walk", []rig.Timeline{footSwing, handSwing, hipBob, events}, 1)
}

func buildJump(land *rig.EventData) *rig.Animation {
	hipRise := rig.NewTranslateTimeline(3, BoneHip)
	hipRise.SetFrame(0, 0, 0, 0)
	hipRise.SetFrame(1, 0.3, 0, 40)
	hipRise.SetFrame(2, 0.8, 0, 0)
	hipRise.SetCurve(0, 0.25, 0.75, 0.5, 1)
	hipRise.SetCurve(1, 0.5, 0, 0.75, 0.25)

	squash := rig.NewScaleTimeline(4, BoneTorso)
	squash.SetFrame(0, 0, 1, 1)
	squash.SetFrame(1, 0.1, 0.9, 1.1)
	squash.SetFrame(2, 0.4, 1.05, 0.95)
	squash.SetFrame(3, 0.8, 1, 1)

	legStretch := rig.NewIkConstraintTimeline(3, 1)
	legStretch.SetFrame(0, 0, 1, 0, -1, false, false)
	legStretch.SetFrame(1, 0.3, 1, 0, -1, false, true)
	legStretch.SetFrame(2, 0.8, 1, 0, -1, false, false)
	legStretch.SetStepped(0)
	legStretch.SetStepped(1)

	// Cape flips in front of the torso at the top of the jump.
	capeFlip := rig.NewDrawOrderTimeline(3)
	capeFlip.SetFrame(0, 0, nil)
	capeFlip.SetFrame(1, 0.3, []int{SlotCape, SlotTorso, SlotHead, SlotCapePath})
	capeFlip.SetFrame(2, 0.6, nil)

	events := rig.NewEventTimeline(1)
	events.SetFrame(0, rig.NewEvent(0.75, land))

	return rig.NewAnimation("jump", []rig.Timeline{hipRise, squash, legStretch, capeFlip, events}, 0.8)
}

func buildWave() *rig.Animation {
	handWave := rig.NewTranslateTimeline(5, BoneHandTarget)
	handWave.SetFrame(0, 0, 0, 0)
	handWave.SetFrame(1, 0.4, 10, 30)
	handWave.SetFrame(2, 0.75, -5, 35)
	handWave.SetFrame(3, 1.1, 10, 30)
	handWave.SetFrame(4, 1.5, 0, 0)

	blink := rig.NewAttachmentTimeline(3, SlotHead)
	blink.SetFrame(0, 0, "head")
	blink.SetFrame(1, 1.3, "head-blink")
	blink.SetFrame(2, 1.45, "head")

	capeTint := rig.NewColorTimeline(3, SlotCape)
	capeTint.SetFrame(0, 0, 1, 1, 1, 1)
	capeTint.SetFrame(1, 0.75, 1, 0.85, 0.7, 1)
	capeTint.SetFrame(2, 1.5, 1, 1, 1, 1)

	return rig.NewAnimation("wave", []rig.Timeline{handWave, blink, capeTint}, 1.5)
}
