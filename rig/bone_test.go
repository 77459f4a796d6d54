package rig

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/rig2d/utils"
)

const testEpsilon = 1e-3

func closeTo(a, b float32) bool { return utils.Abs(a-b) < testEpsilon }

func testTwoBoneSkeleton(t *testing.T) *Skeleton {
	root := NewBoneData(0, "root", nil)
	child := NewBoneData(1, "child", root)
	child.X = 10

	data := &SkeletonData{Bones: []*BoneData{root, child}}
	if err := data.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	return NewSkeleton(data)
}

func TestBoneWorldTransform(t *testing.T) {
	skeleton := testTwoBoneSkeleton(t)
	skeleton.UpdateWorldTransform()

	child := skeleton.Bones[1]
	if !closeTo(child.WorldX, 10) || !closeTo(child.WorldY, 0) {
		t.Errorf("child world (%v,%v); expected (10,0)", child.WorldX, child.WorldY)
	}
}

func TestBoneParentRotation(t *testing.T) {
	skeleton := testTwoBoneSkeleton(t)
	skeleton.Bones[0].Rotation = 90
	skeleton.UpdateWorldTransform()

	child := skeleton.Bones[1]
	if !closeTo(child.WorldX, 0) || !closeTo(child.WorldY, 10) {
		t.Errorf("child world (%v,%v); expected (0,10)", child.WorldX, child.WorldY)
	}
	if r := child.WorldRotationX(); !closeTo(r, 90) {
		t.Errorf("child WorldRotationX=%v; expected 90", r)
	}
}

func TestBoneLocalWorldRoundTrip(t *testing.T) {
	skeleton := testTwoBoneSkeleton(t)
	skeleton.Bones[0].Rotation = 30
	skeleton.Bones[1].ScaleX = 2
	skeleton.UpdateWorldTransform()

	child := skeleton.Bones[1]
	local := mgl32.Vec2{3, -7}
	back := child.WorldToLocal(child.LocalToWorld(local))
	if !closeTo(back.X(), local.X()) || !closeTo(back.Y(), local.Y()) {
		t.Errorf("round trip %v -> %v", local, back)
	}
}
