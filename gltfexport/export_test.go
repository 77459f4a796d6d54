package gltfexport

import (
	"testing"

	"github.com/mogaika/rig2d/demo"
	"github.com/mogaika/rig2d/rig"
)

func TestExportPose(t *testing.T) {
	data, err := demo.BuildSkeletonData()
	if err != nil {
		t.Fatalf("BuildSkeletonData: %v", err)
	}
	skeleton := rig.NewSkeleton(data)
	skeleton.SetSlotsToSetupPose()
	skeleton.UpdateWorldTransform()

	doc, err := ExportPose(skeleton)
	if err != nil {
		t.Fatalf("ExportPose: %v", err)
	}
	if len(doc.Nodes) < len(skeleton.Bones) {
		t.Errorf("%d nodes for %d bones", len(doc.Nodes), len(skeleton.Bones))
	}
	if len(doc.Meshes) == 0 {
		t.Error("no meshes exported")
	}
}
