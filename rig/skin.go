package rig

type skinKey struct {
	SlotIndex int
	Name      string
}

// Skin maps (slot, name) pairs to attachments and lists the bones and
// constraints that become active while the skin is set.
type Skin struct {
	Name        string
	Bones       []*BoneData
	Constraints []ConstraintData

	attachments map[skinKey]Attachment
}

func NewSkin(name string) *Skin {
	return &Skin{
		Name:        name,
		attachments: make(map[skinKey]Attachment),
	}
}

func (s *Skin) SetAttachment(slotIndex int, name string, attachment Attachment) {
	s.attachments[skinKey{slotIndex, name}] = attachment
}

// GetAttachment returns nil when not present.
func (s *Skin) GetAttachment(slotIndex int, name string) Attachment {
	return s.attachments[skinKey{slotIndex, name}]
}

func (s *Skin) AddBone(bone *BoneData) {
	for _, b := range s.Bones {
		if b == bone {
			return
		}
	}
	s.Bones = append(s.Bones, bone)
}

func (s *Skin) AddConstraint(constraint ConstraintData) {
	for _, c := range s.Constraints {
		if c == constraint {
			return
		}
	}
	s.Constraints = append(s.Constraints, constraint)
}

// AddSkin copies everything from other into this skin.
func (s *Skin) AddSkin(other *Skin) {
	for _, b := range other.Bones {
		s.AddBone(b)
	}
	for _, c := range other.Constraints {
		s.AddConstraint(c)
	}
	for k, a := range other.attachments {
		s.attachments[k] = a
	}
}

// AttachAll attaches this skin's attachments on slots that currently hold
// an attachment from oldSkin with the same key.
func (s *Skin) AttachAll(skeleton *Skeleton, oldSkin *Skin) {
	for k, oldAttachment := range oldSkin.attachments {
		slot := skeleton.Slots[k.SlotIndex]
		if slot.Attachment() == oldAttachment {
			if attachment := s.GetAttachment(k.SlotIndex, k.Name); attachment != nil {
				slot.SetAttachment(attachment)
			}
		}
	}
}
