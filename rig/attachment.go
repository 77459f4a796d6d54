package rig

// Attachment is a piece of renderable or functional geometry bound into a
// slot. Templates are immutable and shared between skeleton instances;
// world-space vertices are always written into caller buffers.
type Attachment interface {
	Name() string
}

// VertexAttachment is the shared part of attachments that carry vertices,
// optionally weighted to several bones.
type VertexAttachment struct {
	AttachmentName string

	// BoneIndices is empty for unweighted attachments. For weighted ones,
	// Vertices is runs of [boneCount, (x, y, weight) * boneCount, ...]
	// indexed by BoneIndices runs of [boneCount, boneIndex * boneCount].
	BoneIndices []int
	Vertices    []float32

	// WorldVerticesLength is the output length (x,y pairs * 2).
	WorldVerticesLength int

	// DeformSource identifies which attachment's deform timelines apply.
	// Defaults to the attachment itself; linked meshes point at the source.
	DeformSource *VertexAttachment
}

func (v *VertexAttachment) Name() string { return v.AttachmentName }

// VertexBase exposes the embedded vertex data. Promoted to every
// attachment kind that embeds VertexAttachment.
func (v *VertexAttachment) VertexBase() *VertexAttachment { return v }

// DeformTarget returns the vertex data whose deform timelines drive this
// attachment.
func (v *VertexAttachment) DeformTarget() *VertexAttachment {
	if v.DeformSource != nil {
		return v.DeformSource
	}
	return v
}

// ComputeWorldVertices transforms count vertices starting at start (both in
// world-vertex floats, an even number) into worldVertices at offset, writing
// x,y pairs stride floats apart. The slot's deform replaces the template
// vertices when present.
func (v *VertexAttachment) ComputeWorldVertices(slot *Slot, start, count int, worldVertices []float32, offset, stride int) {
	count = offset + (count >> 1 * stride)
	deform := slot.Deform
	vertices := v.Vertices
	if len(deform) > 0 {
		vertices = deform
	}

	bone := slot.Bone
	if len(v.BoneIndices) == 0 {
		x, y := bone.WorldX, bone.WorldY
		a, b, c, d := bone.A, bone.B, bone.C, bone.D
		for vv, w := start, offset; w < count; vv, w = vv+2, w+stride {
			vx, vy := vertices[vv], vertices[vv+1]
			worldVertices[w] = vx*a + vy*b + x
			worldVertices[w+1] = vx*c + vy*d + y
		}
		return
	}

	skeletonBones := slot.Bone.Skeleton.Bones
	bones := v.BoneIndices
	vi, bi := 0, 0
	for i := 0; i < start; i += 2 {
		n := bones[bi]
		bi += n + 1
		vi += n * 3
	}
	if len(deform) == 0 {
		for w := offset; w < count; w += stride {
			wx, wy := float32(0), float32(0)
			n := bones[bi]
			bi++
			for nn := bi + n; bi < nn; bi, vi = bi+1, vi+3 {
				wb := skeletonBones[bones[bi]]
				vx, vy, weight := vertices[vi], vertices[vi+1], vertices[vi+2]
				wx += (vx*wb.A + vy*wb.B + wb.WorldX) * weight
				wy += (vx*wb.C + vy*wb.D + wb.WorldY) * weight
			}
			worldVertices[w] = wx
			worldVertices[w+1] = wy
		}
		return
	}
	// Weighted with deform: deform holds per-influence offsets.
	di := vi / 3 * 2
	for w := offset; w < count; w += stride {
		wx, wy := float32(0), float32(0)
		n := bones[bi]
		bi++
		for nn := bi + n; bi < nn; bi, vi, di = bi+1, vi+3, di+2 {
			wb := skeletonBones[bones[bi]]
			vx := v.Vertices[vi] + deform[di]
			vy := v.Vertices[vi+1] + deform[di+1]
			weight := v.Vertices[vi+2]
			wx += (vx*wb.A + vy*wb.B + wb.WorldX) * weight
			wy += (vx*wb.C + vy*wb.D + wb.WorldY) * weight
		}
		worldVertices[w] = wx
		worldVertices[w+1] = wy
	}
}
