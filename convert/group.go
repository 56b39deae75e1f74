package convert

import (
	"pesconv/fmdl"
	"pesconv/model"
	"pesconv/utils"
)

// buildGroups assembles the target mesh groups. When the source declares
// named groups, each one receives the converted mesh at the same index; the
// index correspondence is a known simplification of the source's grouping
// metadata. Without groups, every mesh gets its own generated group. All
// groups produced here are flat and visible.
func buildGroups(src *model.Model, meshCount int) []*fmdl.MeshGroup {
	if len(src.Groups) > 0 {
		groups := make([]*fmdl.MeshGroup, len(src.Groups))
		for i, name := range src.Groups {
			groups[i] = &fmdl.MeshGroup{
				Name:    name,
				Visible: true,
				Parent:  fmdl.GroupNone,
			}
			if i < meshCount {
				groups[i].Meshes = []int{i}
			}
		}
		return groups
	}

	var nameGen utils.NameGenerator
	groups := make([]*fmdl.MeshGroup, meshCount)
	for i := range groups {
		groups[i] = &fmdl.MeshGroup{
			Name:    nameGen.Next(),
			Visible: true,
			Parent:  fmdl.GroupNone,
			Meshes:  []int{i},
		}
	}
	return groups
}
