package convert

import (
	"github.com/pkg/errors"

	"pesconv/fmdl"
	"pesconv/model"
)

// Input names one source file of a merge batch together with its hints.
type Input struct {
	Path  string
	Hints Hints
}

// Combine converts every input independently, then merges the results into
// one model with name-deduplicated bones. dir is the shared folder holding
// the material descriptor files of all inputs.
//
// An empty input list yields an empty model; a single input is a plain
// conversion with no merge bookkeeping.
func Combine(loader model.Loader, dir string, inputs []Input) (*fmdl.Model, error) {
	switch len(inputs) {
	case 0:
		empty := &fmdl.Model{}
		aggregateBounds(empty)
		return empty, nil
	case 1:
		src, err := loader.Load(inputs[0].Path)
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to load %q", inputs[0].Path)
		}
		return Model(src, dir, inputs[0].Hints)
	}

	converted := make([]*fmdl.Model, len(inputs))
	for i, input := range inputs {
		src, err := loader.Load(input.Path)
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to load %q", input.Path)
		}
		if converted[i], err = Model(src, dir, input.Hints); err != nil {
			return nil, errors.Wrapf(err, "Failed to convert %q", input.Path)
		}
	}

	return mergeModels(converted), nil
}

// mergeModels concatenates converted models, deduplicating bones strictly by
// name (first occurrence canonical) and rewriting every bone reference of
// later models through a per-model substitution map. Materials are
// concatenated without deduplication, even on duplicate names.
func mergeModels(models []*fmdl.Model) *fmdl.Model {
	merged := &fmdl.Model{}
	boneByName := make(map[string]int)

	for _, m := range models {
		subst := make([]int, len(m.Bones))
		for i, bone := range m.Bones {
			if canonical, ok := boneByName[bone.Name]; ok {
				subst[i] = canonical
				continue
			}
			boneByName[bone.Name] = len(merged.Bones)
			subst[i] = len(merged.Bones)
			merged.Bones = append(merged.Bones, bone)
		}

		materialBase := len(merged.Materials)
		meshBase := len(merged.Meshes)
		groupBase := len(merged.Groups)

		merged.Materials = append(merged.Materials, m.Materials...)

		for _, mesh := range m.Meshes {
			for i, bone := range mesh.BoneGroup {
				mesh.BoneGroup[i] = subst[bone]
			}
			for _, vertex := range mesh.Vertices {
				for i := range vertex.BoneMapping {
					vertex.BoneMapping[i].Bone = subst[vertex.BoneMapping[i].Bone]
				}
			}
			if mesh.MaterialInstance != fmdl.MaterialNone {
				mesh.MaterialInstance += materialBase
			}
			merged.Meshes = append(merged.Meshes, mesh)
		}

		for _, group := range m.Groups {
			for i := range group.Meshes {
				group.Meshes[i] += meshBase
			}
			for i := range group.Children {
				group.Children[i] += groupBase
			}
			if group.Parent != fmdl.GroupNone {
				group.Parent += groupBase
			}
			merged.Groups = append(merged.Groups, group)
		}

		for marker := range m.Extensions {
			merged.Extensions = merged.Extensions.Add(marker)
		}
	}

	// Pre-merge boxes are stale: per-bone boxes depend on the deduplicated
	// bone identities. Everything derived is rebuilt from the vertices.
	for _, mesh := range merged.Meshes {
		mesh.BoundingBox = meshBounds(mesh)
	}
	aggregateBounds(merged)

	return merged
}
