package rig

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/rig2d/utils"
)

// Skeleton is one live instance of a SkeletonData: mutable bone and slot
// poses, constraint states, skin and draw order.
type Skeleton struct {
	Data *SkeletonData

	Bones []*Bone
	Slots []*Slot
	// DrawOrder holds the same slots as Slots, permuted by animations.
	DrawOrder []*Slot

	IkConstraints        []*IkConstraint
	TransformConstraints []*TransformConstraint
	PathConstraints      []*PathConstraint

	// updateCache holds every active constraint in global apply order.
	updateCache []constraint

	skin *Skin

	Color utils.ColorFloat

	X, Y           float32
	ScaleX, ScaleY float32

	// Time is advanced by hosts for time-based attachments; not used by
	// the pose pipeline itself.
	Time float32
}

// NewSkeleton builds an instance. The data must have passed Validate.
func NewSkeleton(data *SkeletonData) *Skeleton {
	skeleton := &Skeleton{
		Data:   data,
		ScaleX: 1,
		ScaleY: 1,
		Color:  utils.ColorFloat{1, 1, 1, 1},
	}

	skeleton.Bones = make([]*Bone, 0, len(data.Bones))
	for _, boneData := range data.Bones {
		var parent *Bone
		if boneData.Parent != nil {
			parent = skeleton.Bones[boneData.Parent.Index]
		}
		bone := NewBone(boneData, skeleton, parent)
		if parent != nil {
			parent.Children = append(parent.Children, bone)
		}
		skeleton.Bones = append(skeleton.Bones, bone)
	}

	skeleton.Slots = make([]*Slot, 0, len(data.Slots))
	skeleton.DrawOrder = make([]*Slot, 0, len(data.Slots))
	for _, slotData := range data.Slots {
		slot := NewSlot(slotData, skeleton.Bones[slotData.BoneData.Index])
		skeleton.Slots = append(skeleton.Slots, slot)
		skeleton.DrawOrder = append(skeleton.DrawOrder, slot)
	}

	for _, ikData := range data.IkConstraints {
		skeleton.IkConstraints = append(skeleton.IkConstraints, NewIkConstraint(ikData, skeleton))
	}
	for _, transformData := range data.TransformConstraints {
		skeleton.TransformConstraints = append(skeleton.TransformConstraints, NewTransformConstraint(transformData, skeleton))
	}
	for _, pathData := range data.PathConstraints {
		skeleton.PathConstraints = append(skeleton.PathConstraints, NewPathConstraint(pathData, skeleton))
	}

	skeleton.UpdateCache()
	return skeleton
}

// UpdateCache recomputes bone/constraint active flags and the constraint
// apply order. Called after the skin changes.
func (sk *Skeleton) UpdateCache() {
	for _, bone := range sk.Bones {
		bone.Active = !bone.Data.SkinRequired
	}
	if sk.skin != nil {
		for _, boneData := range sk.skin.Bones {
			bone := sk.Bones[boneData.Index]
			for bone != nil {
				bone.Active = true
				bone = bone.Parent
			}
		}
	}

	skinHas := func(data ConstraintData) bool {
		if sk.skin == nil {
			return false
		}
		for _, c := range sk.skin.Constraints {
			if c == data {
				return true
			}
		}
		return false
	}

	count := len(sk.IkConstraints) + len(sk.TransformConstraints) + len(sk.PathConstraints)
	sk.updateCache = sk.updateCache[:0]
	if cap(sk.updateCache) < count {
		sk.updateCache = make([]constraint, 0, count)
	}
	for _, c := range sk.IkConstraints {
		c.Active = !c.IkData.SkinRequired || skinHas(c.IkData)
		if c.Active {
			sk.updateCache = append(sk.updateCache, c)
		}
	}
	for _, c := range sk.TransformConstraints {
		c.Active = !c.TransformData.SkinRequired || skinHas(c.TransformData)
		if c.Active {
			sk.updateCache = append(sk.updateCache, c)
		}
	}
	for _, c := range sk.PathConstraints {
		c.Active = !c.PathData.SkinRequired || skinHas(c.PathData)
		if c.Active {
			sk.updateCache = append(sk.updateCache, c)
		}
	}
	// Stable insertion sort by declared order; constraint counts are small.
	cache := sk.updateCache
	for i := 1; i < len(cache); i++ {
		for j := i; j > 0 && cache[j-1].Data().ConstraintOrder() > cache[j].Data().ConstraintOrder(); j-- {
			cache[j-1], cache[j] = cache[j], cache[j-1]
		}
	}
}

// UpdateWorldTransform computes world transforms: base hierarchy pass in
// pre-order, then constraints in cache order, each re-propagating the
// subtrees it touched.
func (sk *Skeleton) UpdateWorldTransform() {
	for _, bone := range sk.Bones {
		if bone.Active {
			bone.UpdateWorldTransform()
		}
	}
	for _, c := range sk.updateCache {
		c.Update()
	}
}

// updateDescendants re-propagates world transforms below a bone whose
// world transform was just rewritten by a constraint. Children recompute
// from their applied pose, so re-running over an already solved bone is
// idempotent.
func updateDescendants(bone *Bone) {
	for _, child := range bone.Children {
		if !child.Active {
			continue
		}
		child.UpdateWorldTransformWith(child.AX, child.AY, child.ARotation,
			child.AScaleX, child.AScaleY, child.AShearX, child.AShearY)
		updateDescendants(child)
	}
}

// SetToSetupPose resets bones, constraints, slots and draw order to the
// setup pose values.
func (sk *Skeleton) SetToSetupPose() {
	sk.SetBonesToSetupPose()
	sk.SetSlotsToSetupPose()
}

func (sk *Skeleton) SetBonesToSetupPose() {
	for _, bone := range sk.Bones {
		bone.SetToSetupPose()
	}
	for _, c := range sk.IkConstraints {
		c.SetToSetupPose()
	}
	for _, c := range sk.TransformConstraints {
		c.SetToSetupPose()
	}
	for _, c := range sk.PathConstraints {
		c.SetToSetupPose()
	}
}

func (sk *Skeleton) SetSlotsToSetupPose() {
	copy(sk.DrawOrder, sk.Slots)
	for _, slot := range sk.Slots {
		slot.SetToSetupPose()
	}
}

func (sk *Skeleton) FindBone(name string) *Bone {
	for _, bone := range sk.Bones {
		if bone.Data.Name == name {
			return bone
		}
	}
	return nil
}

func (sk *Skeleton) FindSlot(name string) *Slot {
	for _, slot := range sk.Slots {
		if slot.Data.Name == name {
			return slot
		}
	}
	return nil
}

func (sk *Skeleton) FindIkConstraint(name string) *IkConstraint {
	for _, c := range sk.IkConstraints {
		if c.IkData.Name == name {
			return c
		}
	}
	return nil
}

func (sk *Skeleton) FindTransformConstraint(name string) *TransformConstraint {
	for _, c := range sk.TransformConstraints {
		if c.TransformData.Name == name {
			return c
		}
	}
	return nil
}

func (sk *Skeleton) FindPathConstraint(name string) *PathConstraint {
	for _, c := range sk.PathConstraints {
		if c.PathData.Name == name {
			return c
		}
	}
	return nil
}

func (sk *Skeleton) Skin() *Skin {
	return sk.skin
}

// SetSkin changes the active skin. Attachments from the new skin are
// attached where the old skin's attachment was visible; with no previous
// skin, setup-pose attachment names are resolved against the new skin.
func (sk *Skeleton) SetSkin(newSkin *Skin) {
	if newSkin == sk.skin {
		return
	}
	if newSkin != nil {
		if sk.skin != nil {
			newSkin.AttachAll(sk, sk.skin)
		} else {
			for _, slot := range sk.Slots {
				name := slot.Data.AttachmentName
				if name == "" {
					continue
				}
				if attachment := newSkin.GetAttachment(slot.Data.Index, name); attachment != nil {
					slot.SetAttachment(attachment)
				}
			}
		}
	}
	sk.skin = newSkin
	sk.UpdateCache()
}

// SetSkinByName returns false when no skin has that name.
func (sk *Skeleton) SetSkinByName(name string) bool {
	skin := sk.Data.FindSkin(name)
	if skin == nil {
		return false
	}
	sk.SetSkin(skin)
	return true
}

// GetAttachment resolves an attachment from the active skin, falling back
// to the default skin. Nil when not found.
func (sk *Skeleton) GetAttachment(slotIndex int, name string) Attachment {
	if sk.skin != nil {
		if attachment := sk.skin.GetAttachment(slotIndex, name); attachment != nil {
			return attachment
		}
	}
	if sk.Data.DefaultSkin != nil {
		return sk.Data.DefaultSkin.GetAttachment(slotIndex, name)
	}
	return nil
}

// SetAttachment attaches the named attachment on the named slot; an empty
// name clears the slot. Returns false when the slot or attachment does
// not exist.
func (sk *Skeleton) SetAttachment(slotName, attachmentName string) bool {
	slot := sk.FindSlot(slotName)
	if slot == nil {
		return false
	}
	if attachmentName == "" {
		slot.SetAttachment(nil)
		return true
	}
	attachment := sk.GetAttachment(slot.Data.Index, attachmentName)
	if attachment == nil {
		return false
	}
	slot.SetAttachment(attachment)
	return true
}

// Bounds computes the axis-aligned box over the world vertices of every
// visible region, mesh and bounding box attachment. scratch is reused
// between calls when non-nil.
func (sk *Skeleton) Bounds(scratch []float32) (offset, size mgl32.Vec2, outScratch []float32) {
	var points []mgl32.Vec2
	for _, slot := range sk.DrawOrder {
		if !slot.Bone.Active {
			continue
		}
		var vertices []float32
		switch attachment := slot.Attachment().(type) {
		case *RegionAttachment:
			scratch = resize(scratch, 8)
			attachment.ComputeWorldVertices(slot.Bone, scratch, 0, 2)
			vertices = scratch
		case *MeshAttachment:
			scratch = resize(scratch, attachment.WorldVerticesLength)
			attachment.ComputeWorldVertices(slot, 0, attachment.WorldVerticesLength, scratch, 0, 2)
			vertices = scratch
		case *BoundingBoxAttachment:
			scratch = resize(scratch, attachment.WorldVerticesLength)
			attachment.ComputeWorldVertices(slot, 0, attachment.WorldVerticesLength, scratch, 0, 2)
			vertices = scratch
		default:
			continue
		}
		for i := 0; i < len(vertices); i += 2 {
			points = append(points, mgl32.Vec2{vertices[i], vertices[i+1]})
		}
	}
	offset, size = utils.BoundsOf(points)
	return offset, size, scratch
}
