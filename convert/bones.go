package convert

import (
	"github.com/go-gl/mathgl/mgl32"

	"pesconv/fmdl"
	"pesconv/model"
	"pesconv/skeleton"
)

// convertBones builds the target bone list from the source bones, plus the
// identity map used to resolve source bone references during mesh
// conversion. Bones are deduplicated by exact name, first occurrence wins,
// order preserved.
func convertBones(srcBones []*model.Bone) ([]*fmdl.Bone, map[*model.Bone]int) {
	bones := make([]*fmdl.Bone, 0, len(srcBones))
	indexByName := make(map[string]int, len(srcBones))
	boneMap := make(map[*model.Bone]int, len(srcBones))

	for _, srcBone := range srcBones {
		if index, ok := indexByName[srcBone.Name]; ok {
			boneMap[srcBone] = index
			continue
		}
		indexByName[srcBone.Name] = len(bones)
		boneMap[srcBone] = len(bones)
		bones = append(bones, newBone(srcBone.Name))
	}

	// Parent links come from the reference skeleton, and only when the
	// parent actually exists among the created bones. The result is a
	// forest.
	for _, bone := range bones {
		ref, ok := skeleton.Lookup(bone.Name)
		if !ok || ref.Parent == "" {
			continue
		}
		parentIndex, ok := indexByName[ref.Parent]
		if !ok {
			continue
		}
		bone.Parent = ref.Parent
		bones[parentIndex].Children = append(bones[parentIndex].Children, bone.Name)
	}

	return bones, boneMap
}

func newBone(name string) *fmdl.Bone {
	bone := &fmdl.Bone{
		Name:           name,
		Matrix:         fmdl.IdentityAffine,
		GlobalPosition: mgl32.Vec4{0, 0, 0, 1},
		LocalPosition:  mgl32.Vec4{0, 0, 0, 1},
		BoundingBox:    fmdl.DegenerateBox(),
	}

	ref, ok := skeleton.Lookup(name)
	if !ok {
		return bone
	}

	// The bone's local transform is the inverse of the reference bind-pose
	// global transform, truncated to 3x4.
	local := ref.Global.Inv()
	bone.Matrix = fmdl.TruncateAffine(local)
	bone.GlobalPosition = mgl32.Vec4{ref.Global.At(0, 3), ref.Global.At(1, 3), ref.Global.At(2, 3), 1}
	bone.LocalPosition = mgl32.Vec4{local.At(0, 3), local.At(1, 3), local.At(2, 3), 1}

	return bone
}
