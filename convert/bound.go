package convert

import (
	"pesconv/fmdl"
)

// aggregateBounds recomputes every derived bounding volume of the model
// bottom-up: per-bone boxes from skinned vertex positions, per-group boxes
// over the group forest, then the model box. Mesh boxes must already be
// filled in.
func aggregateBounds(m *fmdl.Model) {
	boneBounds(m)
	groupBounds(m)

	m.BoundingBox = fmdl.DegenerateBox()
	first := true
	for _, mesh := range m.Meshes {
		if first {
			m.BoundingBox = mesh.BoundingBox
			first = false
		} else {
			m.BoundingBox = m.BoundingBox.Union(mesh.BoundingBox)
		}
	}
}

// boneBounds unions the positions of every vertex skinned to each bone.
// Bones that no vertex references keep the degenerate origin box.
func boneBounds(m *fmdl.Model) {
	boxes := make([]fmdl.BoundingBox, len(m.Bones))
	seen := make([]bool, len(m.Bones))

	for _, mesh := range m.Meshes {
		for _, vertex := range mesh.Vertices {
			for _, bw := range vertex.BoneMapping {
				if !seen[bw.Bone] {
					seen[bw.Bone] = true
					boxes[bw.Bone] = fmdl.BoxAround(vertex.Position)
				} else {
					boxes[bw.Bone] = boxes[bw.Bone].Extend(vertex.Position)
				}
			}
		}
	}

	for i, bone := range m.Bones {
		if seen[i] {
			bone.BoundingBox = boxes[i]
		} else {
			bone.BoundingBox = fmdl.DegenerateBox()
		}
	}
}

// groupBounds walks the group forest in postorder. A group's box is the
// union of its own meshes' boxes and its children's boxes.
func groupBounds(m *fmdl.Model) {
	var visit func(index int) fmdl.BoundingBox
	visit = func(index int) fmdl.BoundingBox {
		group := m.Groups[index]

		box := fmdl.DegenerateBox()
		first := true
		extend := func(other fmdl.BoundingBox) {
			if first {
				box = other
				first = false
			} else {
				box = box.Union(other)
			}
		}

		for _, child := range group.Children {
			extend(visit(child))
		}
		for _, meshIndex := range group.Meshes {
			extend(m.Meshes[meshIndex].BoundingBox)
		}

		group.BoundingBox = box
		return box
	}

	for i, group := range m.Groups {
		if group.Parent == fmdl.GroupNone {
			visit(i)
		}
	}
}
