package rig

import (
	"testing"

	"github.com/mogaika/rig2d/utils"
)

func testSlotSkeleton(t *testing.T) *Skeleton {
	root := NewBoneData(0, "root", nil)
	slotData := NewSlotData(0, "item", root)
	slotData.AttachmentName = "first"

	skin := NewSkin("default")
	skin.SetAttachment(0, "first", NewRegionAttachment("first"))
	skin.SetAttachment(0, "second", NewRegionAttachment("second"))

	data := &SkeletonData{
		Bones:       []*BoneData{root},
		Slots:       []*SlotData{slotData},
		Skins:       []*Skin{skin},
		DefaultSkin: skin,
	}
	if err := data.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	skeleton := NewSkeleton(data)
	skeleton.SetSlotsToSetupPose()
	return skeleton
}

func TestTranslateTimelineSetupBlend(t *testing.T) {
	skeleton := testTwoBoneSkeleton(t)
	child := skeleton.Bones[1]
	child.X = 99

	timeline := NewTranslateTimeline(2, 1)
	timeline.SetFrame(0, 0.5, 4, 6)
	timeline.SetFrame(1, 1, 8, 12)

	// Before the first frame a Setup blend restores the setup pose.
	timeline.Apply(skeleton, -1, 0.1, nil, 1, MixBlendSetup, MixIn)
	if !closeTo(child.X, 10) || !closeTo(child.Y, 0) {
		t.Errorf("before first frame (%v,%v); expected (10,0)", child.X, child.Y)
	}

	timeline.Apply(skeleton, -1, 0.75, nil, 1, MixBlendSetup, MixIn)
	if !closeTo(child.X, 10+6) || !closeTo(child.Y, 9) {
		t.Errorf("interpolated (%v,%v); expected (16,9)", child.X, child.Y)
	}
}

func TestRotateTimelinePastLastFrame(t *testing.T) {
	skeleton := testTwoBoneSkeleton(t)
	child := skeleton.Bones[1]
	child.Data.Rotation = 10

	timeline := NewRotateTimeline(2, 1)
	timeline.SetFrame(0, 0, 0)
	timeline.SetFrame(1, 1, 30)

	timeline.Apply(skeleton, -1, 2, nil, 1, MixBlendSetup, MixIn)
	if !closeTo(child.Rotation, 40) {
		t.Errorf("rotation %v; expected 40", child.Rotation)
	}

	child.Rotation = 0
	timeline.Apply(skeleton, -1, 2, nil, 0.5, MixBlendFirst, MixIn)
	if !closeTo(child.Rotation, 20) {
		t.Errorf("half mixed rotation %v; expected 20", child.Rotation)
	}
}

func TestColorTimeline(t *testing.T) {
	skeleton := testSlotSkeleton(t)
	slot := skeleton.Slots[0]

	timeline := NewColorTimeline(2, 0)
	timeline.SetFrame(0, 0, 1, 0, 0, 1)
	timeline.SetFrame(1, 1, 0, 1, 0, 1)

	timeline.Apply(skeleton, -1, 0, nil, 1, MixBlendSetup, MixIn)
	if !closeTo(slot.Color[0], 1) || !closeTo(slot.Color[1], 0) {
		t.Errorf("full alpha color %v", slot.Color)
	}

	slot.Color = utils.ColorFloat{1, 1, 1, 1}
	timeline.Apply(skeleton, -1, 0, nil, 0.5, MixBlendSetup, MixIn)
	if !closeTo(slot.Color[1], 0.5) {
		t.Errorf("half alpha green %v; expected 0.5", slot.Color[1])
	}
}

func TestAttachmentTimeline(t *testing.T) {
	skeleton := testSlotSkeleton(t)
	slot := skeleton.Slots[0]

	timeline := NewAttachmentTimeline(2, 0)
	timeline.SetFrame(0, 0, "first")
	timeline.SetFrame(1, 0.5, "second")

	timeline.Apply(skeleton, -1, 0.6, nil, 1, MixBlendSetup, MixIn)
	if slot.Attachment() == nil || slot.Attachment().Name() != "second" {
		t.Errorf("attachment %v; expected second", slot.Attachment())
	}

	// Mixing out with a Setup blend restores the setup attachment.
	timeline.Apply(skeleton, -1, 0.6, nil, 1, MixBlendSetup, MixOut)
	if slot.Attachment() == nil || slot.Attachment().Name() != "first" {
		t.Errorf("attachment %v; expected first", slot.Attachment())
	}
}

func TestEventTimelineLoopWrap(t *testing.T) {
	skeleton := testTwoBoneSkeleton(t)

	late := NewEvent(0.95, &EventData{Name: "late"})
	early := NewEvent(0.05, &EventData{Name: "early"})

	timeline := NewEventTimeline(2)
	timeline.SetFrame(0, early)
	timeline.SetFrame(1, late)

	animation := NewAnimation("events", []Timeline{timeline}, 1)

	var fired []*Event
	animation.Apply(skeleton, 0.9, 1.1, true, &fired, 1, MixBlendSetup, MixIn)
	if len(fired) != 2 {
		t.Fatalf("fired %d events; expected 2", len(fired))
	}
	if fired[0].Data.Name != "late" || fired[1].Data.Name != "early" {
		t.Errorf("fired %q,%q; expected late,early", fired[0].Data.Name, fired[1].Data.Name)
	}
}
