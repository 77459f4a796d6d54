package rig

import (
	"testing"

	"github.com/mogaika/rig2d/utils"
)

func TestPathConstraintStraightLine(t *testing.T) {
	root := NewBoneData(0, "root", nil)
	var chain []*BoneData
	for i := 0; i < 3; i++ {
		bone := NewBoneData(1+i, "link", root)
		bone.Length = 30
		chain = append(chain, bone)
	}

	slotData := NewSlotData(0, "track", root)
	slotData.AttachmentName = "track"

	// Straight path from (0,0) to (90,0), one curve.
	path := NewPathAttachment("track")
	path.Vertices = []float32{-30, 0, 0, 0, 30, 0, 60, 0, 90, 0, 120, 0}
	path.WorldVerticesLength = 12
	path.Lengths = []float32{90}
	path.ConstantSpeed = true

	skin := NewSkin("default")
	skin.SetAttachment(0, "track", path)

	constraint := NewPathConstraintData("follow")
	constraint.Bones = chain
	constraint.Target = slotData
	constraint.PositionMode = PositionFixed
	constraint.SpacingMode = SpacingLength
	constraint.RotateMode = RotateTangent
	constraint.RotateMix = 1
	constraint.TranslateMix = 1

	data := &SkeletonData{
		Bones:           append([]*BoneData{root}, chain...),
		Slots:           []*SlotData{slotData},
		Skins:           []*Skin{skin},
		DefaultSkin:     skin,
		PathConstraints: []*PathConstraintData{constraint},
	}
	if err := data.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	skeleton := NewSkeleton(data)
	skeleton.SetSlotsToSetupPose()
	skeleton.UpdateWorldTransform()

	for i, wantX := range []float32{0, 30, 60} {
		bone := skeleton.Bones[1+i]
		if utils.Abs(bone.WorldX-wantX) > 0.5 || utils.Abs(bone.WorldY) > 0.5 {
			t.Errorf("bone %d at (%v,%v); expected (%v,0)", i, bone.WorldX, bone.WorldY, wantX)
		}
	}
}
