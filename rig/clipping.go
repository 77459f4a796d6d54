package rig

// ClippingAttachment is a clipping polygon. The polygon clipping math
// itself lives outside the core; the runtime only computes the polygon's
// world vertices and exposes the end slot.
type ClippingAttachment struct {
	VertexAttachment

	// EndSlot is the slot clipping stops after; nil clips to the end of
	// the draw order.
	EndSlot *SlotData
}

func NewClippingAttachment(name string) *ClippingAttachment {
	return &ClippingAttachment{VertexAttachment: VertexAttachment{AttachmentName: name}}
}
