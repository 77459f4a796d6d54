// Package gltfexport snapshots a posed skeleton into a glTF document:
// one node per bone and one mesh primitive per visible attachment, with
// the world-space vertices baked in.
package gltfexport

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/mogaika/rig2d/rig"
	"github.com/mogaika/rig2d/utils"
)

func boneNode(bone *rig.Bone) *gltf.Node {
	q := mgl32.QuatRotate(bone.WorldRotationX()*utils.DegRad, mgl32.Vec3{0, 0, 1})
	return &gltf.Node{
		Name:        bone.Data.Name,
		Translation: mgl32.Vec3{bone.WorldX, bone.WorldY, 0},
		Rotation:    [4]float32{q.V[0], q.V[1], q.V[2], q.W},
		Scale:       mgl32.Vec3{bone.WorldScaleX(), bone.WorldScaleY(), 1},
	}
}

func addPrimitive(doc *gltf.Document, name string, world, uvs []float32, triangles []uint16) {
	positions := make([][3]float32, len(world)/2)
	for i := range positions {
		positions[i] = [3]float32{world[i*2], world[i*2+1], 0}
	}
	positionAccessor := modeler.WritePosition(doc, positions)

	attributes := map[string]uint32{"POSITION": positionAccessor}
	if len(uvs) == len(world) {
		coords := make([][2]float32, len(uvs)/2)
		for i := range coords {
			coords[i] = [2]float32{uvs[i*2], uvs[i*2+1]}
		}
		attributes["TEXCOORD_0"] = modeler.WriteTextureCoord(doc, coords)
	}

	indices := make([]uint32, len(triangles))
	for i, index := range triangles {
		indices[i] = uint32(index)
	}
	indicesAccessor := modeler.WriteIndices(doc, indices)

	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)))
	doc.Nodes = append(doc.Nodes, &gltf.Node{
		Name: name,
		Mesh: gltf.Index(uint32(len(doc.Meshes))),
	})
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: name,
		Primitives: []*gltf.Primitive{{
			Attributes: attributes,
			Indices:    gltf.Index(indicesAccessor),
		}},
	})
}

var quadTriangles = []uint16{0, 1, 2, 2, 3, 0}

// ExportPose builds a glTF document from the skeleton's current world
// pose.
func ExportPose(skeleton *rig.Skeleton) (*gltf.Document, error) {
	doc := gltf.NewDocument()
	doc.Scenes[0].Name = skeleton.Data.Name

	for _, bone := range skeleton.Bones {
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)))
		doc.Nodes = append(doc.Nodes, boneNode(bone))
	}

	var world []float32
	for _, slot := range skeleton.DrawOrder {
		switch attachment := slot.Attachment().(type) {
		case *rig.RegionAttachment:
			if cap(world) < 8 {
				world = make([]float32, 8)
			}
			world = world[:8]
			attachment.ComputeWorldVertices(slot.Bone, world, 0, 2)
			addPrimitive(doc, attachment.Name(), world, attachment.UVs[:], quadTriangles)
		case *rig.MeshAttachment:
			n := attachment.WorldVerticesLength
			if cap(world) < n {
				world = make([]float32, n)
			}
			world = world[:n]
			attachment.ComputeWorldVertices(slot, 0, n, world, 0, 2)
			addPrimitive(doc, attachment.Name(), world, attachment.UVs, attachment.Triangles)
		}
	}

	return doc, nil
}
