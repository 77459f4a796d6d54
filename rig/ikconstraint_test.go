package rig

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/rig2d/utils"
)

func testIkSkeleton(t *testing.T) *Skeleton {
	root := NewBoneData(0, "root", nil)
	upper := NewBoneData(1, "upper", root)
	upper.Length = 50
	lower := NewBoneData(2, "lower", upper)
	lower.X = 50
	lower.Length = 50
	target := NewBoneData(3, "target", root)

	ik := NewIkConstraintData("arm")
	ik.Bones = []*BoneData{upper, lower}
	ik.Target = target

	data := &SkeletonData{
		Bones:         []*BoneData{root, upper, lower, target},
		IkConstraints: []*IkConstraintData{ik},
	}
	if err := data.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	return NewSkeleton(data)
}

func TestIkTwoBoneReachable(t *testing.T) {
	skeleton := testIkSkeleton(t)
	target := skeleton.Bones[3]
	target.X = 60
	target.Y = 40
	skeleton.UpdateWorldTransform()

	tip := skeleton.Bones[2].LocalToWorld(mgl32.Vec2{50, 0})
	if utils.Abs(tip.X()-60) > 0.1 || utils.Abs(tip.Y()-40) > 0.1 {
		t.Errorf("tip at (%v,%v); expected (60,40)", tip.X(), tip.Y())
	}
}

func TestIkTwoBoneUnreachable(t *testing.T) {
	skeleton := testIkSkeleton(t)
	target := skeleton.Bones[3]
	target.X = 300
	skeleton.UpdateWorldTransform()

	// Chain straightens toward the target but never overshoots its
	// combined length.
	tip := skeleton.Bones[2].LocalToWorld(mgl32.Vec2{50, 0})
	dist := utils.Sqrt(tip.X()*tip.X() + tip.Y()*tip.Y())
	if utils.Abs(dist-100) > 0.1 {
		t.Errorf("tip distance %v; expected 100", dist)
	}
	if utils.Abs(tip.Y()) > 0.1 {
		t.Errorf("tip y %v; expected 0", tip.Y())
	}
}
