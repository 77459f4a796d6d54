package animstate

import (
	"fmt"
	"testing"

	"github.com/mogaika/rig2d/rig"
	"github.com/mogaika/rig2d/utils"
)

// testRig is a root plus one animated bone, with rotate poses at 0 and 90
// degrees and a looping translate animation.
func testRig(t *testing.T) (*rig.Skeleton, *State) {
	root := rig.NewBoneData(0, "root", nil)
	spin := rig.NewBoneData(1, "spin", root)

	poseAt := func(name string, degrees float32) *rig.Animation {
		timeline := rig.NewRotateTimeline(1, 1)
		timeline.SetFrame(0, 0, degrees)
		return rig.NewAnimation(name, []rig.Timeline{timeline}, 1)
	}

	move := rig.NewTranslateTimeline(2, 1)
	move.SetFrame(0, 0, 0, 0)
	move.SetFrame(1, 1, 10, 0)

	data := &rig.SkeletonData{
		Bones: []*rig.BoneData{root, spin},
		Animations: []*rig.Animation{
			poseAt("a", 0),
			poseAt("b", 90),
			rig.NewAnimation("move", []rig.Timeline{move}, 1),
		},
	}
	if err := data.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	stateData := NewStateData(data)
	stateData.DefaultMix = 0.4
	return rig.NewSkeleton(data), NewState(stateData)
}

func TestCrossfadeRotation(t *testing.T) {
	skeleton, state := testRig(t)
	spin := skeleton.Bones[1]

	if _, err := state.SetAnimationByName(0, "a", true); err != nil {
		t.Fatal(err)
	}
	state.Update(0)
	state.Apply(skeleton)
	if utils.Abs(spin.Rotation) > 1e-3 {
		t.Fatalf("rotation %v; expected 0", spin.Rotation)
	}

	if _, err := state.SetAnimationByName(0, "b", true); err != nil {
		t.Fatal(err)
	}
	state.Update(0.2)
	state.Apply(skeleton)
	if utils.Abs(spin.Rotation-45) > 1e-2 {
		t.Errorf("rotation %v; expected 45 halfway through the mix", spin.Rotation)
	}
}

func TestMixToSetupPose(t *testing.T) {
	skeleton, state := testRig(t)
	spin := skeleton.Bones[1]

	state.SetAnimationByName(0, "b", true)
	state.Update(0)
	state.Apply(skeleton)
	if utils.Abs(spin.Rotation-90) > 1e-3 {
		t.Fatalf("rotation %v; expected 90", spin.Rotation)
	}

	state.SetEmptyAnimation(0, 0.4)
	state.Update(0.2)
	state.Apply(skeleton)
	if utils.Abs(spin.Rotation-45) > 1e-2 {
		t.Errorf("rotation %v; expected 45 mixing out", spin.Rotation)
	}
}

func TestLoopedTrackTime(t *testing.T) {
	skeleton, state := testRig(t)
	spin := skeleton.Bones[1]

	state.SetAnimationByName(0, "move", true)
	for i := 0; i < 3; i++ {
		state.Update(0.75)
		state.Apply(skeleton)
	}
	// Track time 2.25 of a one second loop lands at 0.25.
	if utils.Abs(spin.X-2.5) > 1e-3 {
		t.Errorf("x %v; expected 2.5", spin.X)
	}
}

func TestPlaybackEventOrder(t *testing.T) {
	skeleton, state := testRig(t)

	var got []string
	state.AddListener(func(eventType EventType, entry *TrackEntry, event *rig.Event) {
		got = append(got, fmt.Sprintf("%v %s", eventType, entry.Animation.Name))
	})

	state.SetAnimationByName(0, "a", false)
	state.Update(0)
	state.Apply(skeleton)
	state.Update(1.1)
	state.Apply(skeleton)
	state.SetAnimationByName(0, "b", false)
	state.Update(0.5)
	state.Apply(skeleton)
	state.Update(0.1)

	want := []string{
		"start a",
		"complete a",
		"interrupt a",
		"start b",
		"end a",
		"dispose a",
	}
	if len(got) != len(want) {
		t.Fatalf("events %v; expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %q; expected %q", i, got[i], want[i])
		}
	}
}
