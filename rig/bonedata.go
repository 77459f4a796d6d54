package rig

// BoneData is the setup pose of one bone. Shared between skeleton instances.
type BoneData struct {
	Index  int
	Name   string
	Parent *BoneData
	Length float32

	X, Y, Rotation float32
	ScaleX, ScaleY float32
	ShearX, ShearY float32

	TransformMode TransformMode

	// When true the bone is only active while the current skin lists it.
	SkinRequired bool
}

func NewBoneData(index int, name string, parent *BoneData) *BoneData {
	return &BoneData{
		Index:  index,
		Name:   name,
		Parent: parent,
		ScaleX: 1,
		ScaleY: 1,
	}
}
