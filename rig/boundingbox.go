package rig

// BoundingBoxAttachment is a polygon used for hit detection and bounds,
// never rendered.
type BoundingBoxAttachment struct {
	VertexAttachment
}

func NewBoundingBoxAttachment(name string) *BoundingBoxAttachment {
	return &BoundingBoxAttachment{VertexAttachment{AttachmentName: name}}
}
