package demo

import (
	"testing"

	"github.com/mogaika/rig2d/animstate"
	"github.com/mogaika/rig2d/rig"
	"github.com/mogaika/rig2d/utils"
)

func TestBuildSkeletonData(t *testing.T) {
	data, err := BuildSkeletonData()
	if err != nil {
		t.Fatalf("BuildSkeletonData: %v", err)
	}
	if len(data.Animations) == 0 || data.DefaultSkin == nil {
		t.Fatal("skeleton data is incomplete")
	}
}

func TestAnimationsPlay(t *testing.T) {
	data, err := BuildSkeletonData()
	if err != nil {
		t.Fatalf("BuildSkeletonData: %v", err)
	}

	for _, animation := range data.Animations {
		skeleton := rig.NewSkeleton(data)
		skeleton.SetSlotsToSetupPose()
		state := animstate.NewState(animstate.NewStateData(data))
		state.SetAnimation(0, animation, true)
		for i := 0; i < 20; i++ {
			state.Update(1.0 / 30)
			state.Apply(skeleton)
			skeleton.UpdateWorldTransform()
		}
	}
}

func TestCapeFollowsPath(t *testing.T) {
	data, err := BuildSkeletonData()
	if err != nil {
		t.Fatalf("BuildSkeletonData: %v", err)
	}

	constrained := rig.NewSkeleton(data)
	constrained.SetSlotsToSetupPose()
	constrained.UpdateWorldTransform()

	free := rig.NewSkeleton(data)
	free.SetSlotsToSetupPose()
	for _, c := range free.PathConstraints {
		c.RotateMix = 0
		c.TranslateMix = 0
	}
	free.UpdateWorldTransform()

	// The path constraint must drag the cape links off their base pose.
	moved := false
	for _, index := range []int{BoneCape2, BoneCape3} {
		a, b := constrained.Bones[index], free.Bones[index]
		if utils.Abs(a.WorldX-b.WorldX) > 1e-3 || utils.Abs(a.WorldY-b.WorldY) > 1e-3 {
			moved = true
		}
	}
	if !moved {
		t.Error("cape bones were not constrained to the path")
	}
}
