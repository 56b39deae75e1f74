// Package convert turns normalized source models into target fmdl models
// and merges several converted models into one.
package convert

import (
	"github.com/pkg/errors"

	"pesconv/fmdl"
	"pesconv/model"
)

// Hints carry the per-model metadata extracted from the source folder's
// face.xml. Both fields may be empty.
type Hints struct {
	// Type is the declared model type. "uniform" switches diffuse textures
	// to the kit placeholder.
	Type string

	// Category is "faces", "boots" or "gloves" and selects the destination
	// directory of local textures.
	Category string
}

// Model converts one source model. dir is the folder holding the model's
// material descriptor files.
func Model(src *model.Model, dir string, hints Hints) (*fmdl.Model, error) {
	bones, boneMap := convertBones(src.Bones)

	out := &fmdl.Model{
		Bones:     bones,
		Materials: resolveMaterials(src.MaterialNames(), dir, hints),
	}

	for i, srcMesh := range src.Meshes {
		mesh, err := convertMesh(srcMesh, boneMap, out.Materials, len(out.Bones))
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to convert mesh %d", i)
		}
		out.Meshes = append(out.Meshes, mesh)
	}

	out.Groups = buildGroups(src, len(out.Meshes))
	aggregateBounds(out)

	out.Extensions = out.Extensions.Add(fmdl.ExtSimplifiedSkeleton)

	return out, nil
}
