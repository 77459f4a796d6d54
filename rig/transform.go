// Package rig implements a 2D skeletal pose runtime: a bone/slot
// hierarchy with attachments, driven by keyframed animations and
// post-processed by IK, transform and path constraints.
//
// Data types split into an immutable setup half (SkeletonData, BoneData,
// SlotData, constraint datas, Animation) shareable between instances and
// a mutable per-instance half (Skeleton, Bone, Slot, constraints).
package rig

// TransformMode controls which parts of the parent's world transform a
// bone inherits.
type TransformMode int

const (
	TransformNormal TransformMode = iota
	TransformOnlyTranslation
	TransformNoRotationOrReflection
	TransformNoScale
	TransformNoScaleOrReflection
)

func (m TransformMode) String() string {
	switch m {
	case TransformNormal:
		return "normal"
	case TransformOnlyTranslation:
		return "onlyTranslation"
	case TransformNoRotationOrReflection:
		return "noRotationOrReflection"
	case TransformNoScale:
		return "noScale"
	case TransformNoScaleOrReflection:
		return "noScaleOrReflection"
	}
	return "unknown"
}
