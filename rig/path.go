package rig

// PathAttachment is a composite Bezier spline that path constraints follow.
// Vertices are runs of [cp2, anchor, cp1] triples, as authored.
type PathAttachment struct {
	VertexAttachment

	// Lengths holds the setup-pose arc length up to each anchor.
	Lengths []float32

	Closed bool
	// ConstantSpeed selects arc-length parameterization over the natural
	// Bezier parameter.
	ConstantSpeed bool
}

func NewPathAttachment(name string) *PathAttachment {
	return &PathAttachment{VertexAttachment: VertexAttachment{AttachmentName: name}}
}
