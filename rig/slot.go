package rig

import (
	"github.com/mogaika/rig2d/utils"
)

// SlotData is the setup pose of one slot.
type SlotData struct {
	Index    int
	Name     string
	BoneData *BoneData

	Color utils.ColorFloat
	// DarkColor is non-nil when two-color tinting is enabled for this slot.
	DarkColor *utils.ColorFloat

	AttachmentName string
}

func NewSlotData(index int, name string, boneData *BoneData) *SlotData {
	return &SlotData{
		Index:    index,
		Name:     name,
		BoneData: boneData,
		Color:    utils.ColorFloat{1, 1, 1, 1},
	}
}

// Slot is the per-instance state of one slot: current color, the visible
// attachment and the deform/sequence scratch used by timelines.
type Slot struct {
	Data *SlotData
	Bone *Bone

	Color     utils.ColorFloat
	DarkColor *utils.ColorFloat

	attachment Attachment

	// Deform holds the current deform timeline output for the attached
	// vertex attachment. Empty when no deform is applied.
	Deform []float32

	// SequenceIndex selects the texture frame for flipbook regions.
	// -1 uses the attachment's setup frame.
	SequenceIndex int
}

func NewSlot(data *SlotData, bone *Bone) *Slot {
	s := &Slot{Data: data, Bone: bone}
	s.SetToSetupPose()
	return s
}

func (s *Slot) Attachment() Attachment {
	return s.attachment
}

// SetAttachment changes the visible attachment and resets deform/sequence
// state when the attachment actually changes.
func (s *Slot) SetAttachment(attachment Attachment) {
	if s.attachment == attachment {
		return
	}
	s.attachment = attachment
	s.Deform = s.Deform[:0]
	s.SequenceIndex = -1
}

func (s *Slot) SetToSetupPose() {
	s.Color = s.Data.Color
	if s.Data.DarkColor != nil {
		dark := *s.Data.DarkColor
		s.DarkColor = &dark
	} else {
		s.DarkColor = nil
	}
	s.SequenceIndex = -1
	if s.Data.AttachmentName == "" {
		s.SetAttachment(nil)
	} else {
		s.attachment = nil
		s.SetAttachment(s.Bone.Skeleton.GetAttachment(s.Data.Index, s.Data.AttachmentName))
	}
}
