package rig

import (
	"github.com/mogaika/rig2d/utils"
)

// MeshAttachment is a deformable textured triangle mesh, optionally
// weighted to several bones.
type MeshAttachment struct {
	VertexAttachment

	TexturePath string
	Color       utils.ColorFloat

	UVs       []float32
	Triangles []uint16

	// HullLength is the number of hull vertex floats at the start of the
	// vertex list, used for bounds and collision.
	HullLength int

	SequenceFrames int

	// ParentMesh is set for linked meshes sharing another mesh's geometry.
	ParentMesh *MeshAttachment
}

func NewMeshAttachment(name string) *MeshAttachment {
	return &MeshAttachment{
		VertexAttachment: VertexAttachment{AttachmentName: name},
		Color:            utils.ColorFloat{1, 1, 1, 1},
	}
}

// SetParentMesh links this mesh to source geometry: vertices, triangles
// and UVs are shared, deform timelines target the parent.
func (m *MeshAttachment) SetParentMesh(parent *MeshAttachment) {
	m.ParentMesh = parent
	if parent != nil {
		m.BoneIndices = parent.BoneIndices
		m.Vertices = parent.Vertices
		m.WorldVerticesLength = parent.WorldVerticesLength
		m.UVs = parent.UVs
		m.Triangles = parent.Triangles
		m.HullLength = parent.HullLength
		m.DeformSource = &parent.VertexAttachment
	}
}
