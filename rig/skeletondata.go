package rig

import (
	"github.com/pkg/errors"
)

// SkeletonData is the immutable setup-pose definition shared by every
// instance: bones, slots, skins, events, constraints and animations.
// Produced by a deserializer or built programmatically, then validated
// once with Validate before instances are created.
type SkeletonData struct {
	Name string

	Bones  []*BoneData
	Slots  []*SlotData
	Skins  []*Skin
	Events []*EventData

	DefaultSkin *Skin

	IkConstraints        []*IkConstraintData
	TransformConstraints []*TransformConstraintData
	PathConstraints      []*PathConstraintData

	Animations []*Animation

	// Authored reference size, used by viewers for framing.
	X, Y, Width, Height float32
}

func (sd *SkeletonData) FindBone(name string) *BoneData {
	for _, bone := range sd.Bones {
		if bone.Name == name {
			return bone
		}
	}
	return nil
}

func (sd *SkeletonData) FindSlot(name string) *SlotData {
	for _, slot := range sd.Slots {
		if slot.Name == name {
			return slot
		}
	}
	return nil
}

func (sd *SkeletonData) FindSkin(name string) *Skin {
	for _, skin := range sd.Skins {
		if skin.Name == name {
			return skin
		}
	}
	return nil
}

func (sd *SkeletonData) FindEvent(name string) *EventData {
	for _, event := range sd.Events {
		if event.Name == name {
			return event
		}
	}
	return nil
}

func (sd *SkeletonData) FindAnimation(name string) *Animation {
	for _, animation := range sd.Animations {
		if animation.Name == name {
			return animation
		}
	}
	return nil
}

func (sd *SkeletonData) FindIkConstraint(name string) *IkConstraintData {
	for _, c := range sd.IkConstraints {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func (sd *SkeletonData) FindTransformConstraint(name string) *TransformConstraintData {
	for _, c := range sd.TransformConstraints {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func (sd *SkeletonData) FindPathConstraint(name string) *PathConstraintData {
	for _, c := range sd.PathConstraints {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func (sd *SkeletonData) ownsBone(bone *BoneData) bool {
	return bone != nil && bone.Index >= 0 && bone.Index < len(sd.Bones) &&
		sd.Bones[bone.Index] == bone
}

// Validate rejects structurally broken data: out-of-order or cyclic bone
// parenting, constraints referencing foreign bones or slots. The runtime
// hot path assumes a validated graph and performs no checks per frame.
func (sd *SkeletonData) Validate() error {
	for i, bone := range sd.Bones {
		if bone.Index != i {
			return errors.Errorf("bone %q index %d stored at %d", bone.Name, bone.Index, i)
		}
		if bone.Parent == nil {
			if i != 0 {
				return errors.Errorf("bone %q has no parent but is not the root", bone.Name)
			}
			continue
		}
		if i == 0 {
			return errors.Errorf("root bone %q has a parent", bone.Name)
		}
		if !sd.ownsBone(bone.Parent) {
			return errors.Errorf("bone %q parent is not owned by the skeleton", bone.Name)
		}
		// Pre-order storage rules out cycles: a parent always precedes
		// its children.
		if bone.Parent.Index >= i {
			return errors.Errorf("bone %q appears before its parent %q", bone.Name, bone.Parent.Name)
		}
	}
	for _, slot := range sd.Slots {
		if !sd.ownsBone(slot.BoneData) {
			return errors.Errorf("slot %q bone is not owned by the skeleton", slot.Name)
		}
	}
	for _, c := range sd.IkConstraints {
		if len(c.Bones) < 1 || len(c.Bones) > 2 {
			return errors.Errorf("ik constraint %q must have 1 or 2 bones, has %d", c.Name, len(c.Bones))
		}
		if !sd.ownsBone(c.Target) {
			return errors.Errorf("ik constraint %q target is not owned by the skeleton", c.Name)
		}
		for _, bone := range c.Bones {
			if !sd.ownsBone(bone) {
				return errors.Errorf("ik constraint %q bone is not owned by the skeleton", c.Name)
			}
		}
		if len(c.Bones) == 2 && c.Bones[1].Parent != c.Bones[0] {
			return errors.Errorf("ik constraint %q second bone must be a child of the first", c.Name)
		}
	}
	for _, c := range sd.TransformConstraints {
		if !sd.ownsBone(c.Target) {
			return errors.Errorf("transform constraint %q target is not owned by the skeleton", c.Name)
		}
		for _, bone := range c.Bones {
			if !sd.ownsBone(bone) {
				return errors.Errorf("transform constraint %q bone is not owned by the skeleton", c.Name)
			}
		}
	}
	for _, c := range sd.PathConstraints {
		if c.Target == nil || c.Target.Index >= len(sd.Slots) || sd.Slots[c.Target.Index] != c.Target {
			return errors.Errorf("path constraint %q target slot is not owned by the skeleton", c.Name)
		}
		for _, bone := range c.Bones {
			if !sd.ownsBone(bone) {
				return errors.Errorf("path constraint %q bone is not owned by the skeleton", c.Name)
			}
		}
	}
	return nil
}
