package rig

// ConstraintData is the common face of the immutable constraint setup
// types. Order decides the global application sequence: lower runs first.
type ConstraintData interface {
	ConstraintName() string
	ConstraintOrder() int
	IsSkinRequired() bool
}

type constraintData struct {
	Name         string
	Order        int
	SkinRequired bool
}

func (c *constraintData) ConstraintName() string { return c.Name }
func (c *constraintData) ConstraintOrder() int   { return c.Order }
func (c *constraintData) IsSkinRequired() bool   { return c.SkinRequired }

// IkConstraintData configures a 1- or 2-bone analytic IK solver.
type IkConstraintData struct {
	constraintData

	Bones  []*BoneData
	Target *BoneData

	// BendDirection picks the analytic elbow solution, +1 or -1.
	BendDirection int
	Compress      bool
	Stretch       bool
	Uniform       bool
	Mix           float32
	Softness      float32
}

func NewIkConstraintData(name string) *IkConstraintData {
	return &IkConstraintData{
		constraintData: constraintData{Name: name},
		BendDirection:  1,
		Mix:            1,
	}
}

// TransformConstraintData copies target bone transform components onto a
// list of constrained bones.
type TransformConstraintData struct {
	constraintData

	Bones  []*BoneData
	Target *BoneData

	RotateMix, TranslateMix float32
	ScaleMix, ShearMix      float32

	OffsetRotation float32
	OffsetX        float32
	OffsetY        float32
	OffsetScaleX   float32
	OffsetScaleY   float32
	OffsetShearY   float32

	// Relative adds the offsetted target values instead of replacing.
	Relative bool
	// Local reads and writes local poses instead of world transforms.
	Local bool
}

func NewTransformConstraintData(name string) *TransformConstraintData {
	return &TransformConstraintData{constraintData: constraintData{Name: name}}
}

type PositionMode int

const (
	PositionFixed PositionMode = iota
	PositionPercent
)

type SpacingMode int

const (
	SpacingLength SpacingMode = iota
	SpacingFixed
	SpacingPercent
	// SpacingProportional distributes bones over the whole path in
	// proportion to their world lengths.
	SpacingProportional
)

type RotateMode int

const (
	RotateTangent RotateMode = iota
	RotateChain
	RotateChainScale
)

// PathConstraintData positions a chain of bones along a path attachment.
type PathConstraintData struct {
	constraintData

	Bones  []*BoneData
	Target *SlotData

	PositionMode PositionMode
	SpacingMode  SpacingMode
	RotateMode   RotateMode

	OffsetRotation float32
	Position       float32
	Spacing        float32
	RotateMix      float32
	TranslateMix   float32
}

func NewPathConstraintData(name string) *PathConstraintData {
	return &PathConstraintData{constraintData: constraintData{Name: name}}
}

// constraint is a live solver applied during Skeleton.UpdateWorldTransform.
type constraint interface {
	Update()
	IsActive() bool
	Data() ConstraintData
}
