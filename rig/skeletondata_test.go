package rig

import (
	"strings"
	"testing"
)

func TestValidateBoneOrder(t *testing.T) {
	root := NewBoneData(0, "root", nil)
	parent := NewBoneData(2, "parent", root)
	child := NewBoneData(1, "child", parent)

	data := &SkeletonData{Bones: []*BoneData{root, child, parent}}
	err := data.Validate()
	if err == nil || !strings.Contains(err.Error(), "before its parent") {
		t.Errorf("expected ordering error, got %v", err)
	}
}

func TestValidateIkChain(t *testing.T) {
	root := NewBoneData(0, "root", nil)
	a := NewBoneData(1, "a", root)
	b := NewBoneData(2, "b", root)

	ik := NewIkConstraintData("broken")
	ik.Bones = []*BoneData{a, b}
	ik.Target = root

	data := &SkeletonData{
		Bones:         []*BoneData{root, a, b},
		IkConstraints: []*IkConstraintData{ik},
	}
	err := data.Validate()
	if err == nil || !strings.Contains(err.Error(), "child of the first") {
		t.Errorf("expected chain error, got %v", err)
	}
}

func TestValidateOk(t *testing.T) {
	root := NewBoneData(0, "root", nil)
	a := NewBoneData(1, "a", root)
	b := NewBoneData(2, "b", a)

	ik := NewIkConstraintData("arm")
	ik.Bones = []*BoneData{a, b}
	ik.Target = root

	data := &SkeletonData{
		Bones:         []*BoneData{root, a, b},
		Slots:         []*SlotData{NewSlotData(0, "slot", a)},
		IkConstraints: []*IkConstraintData{ik},
	}
	if err := data.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}
