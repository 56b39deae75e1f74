package convert

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"pesconv/fmdl"
	"pesconv/model"
)

func TestModelBoundingBox(t *testing.T) {
	src := &model.Model{
		Meshes: []*model.Mesh{{
			Vertices: []*model.Vertex{
				{Position: mgl32.Vec3{1, 0, 0}},
				{Position: mgl32.Vec3{-1, 2, 5}},
				{Position: mgl32.Vec3{0, 1, 3}},
			},
			Faces: [][3]int{{0, 1, 2}},
		}},
	}

	converted, err := Model(src, t.TempDir(), Hints{})
	if err != nil {
		t.Fatal(err)
	}

	box := converted.BoundingBox
	if box.Min != (mgl32.Vec4{-1, 0, 0, 1}) {
		t.Errorf("box min %v; expected (-1,0,0,1)", box.Min)
	}
	if box.Max != (mgl32.Vec4{1, 2, 5, 1}) {
		t.Errorf("box max %v; expected (1,2,5,1)", box.Max)
	}

	for i, mesh := range converted.Meshes {
		if !box.Contains(mesh.BoundingBox) {
			t.Errorf("mesh %d box %v outside model box %v", i, mesh.BoundingBox, box)
		}
	}
}

func TestModelMarksSimplifiedSkeleton(t *testing.T) {
	converted, err := Model(&model.Model{}, t.TempDir(), Hints{})
	if err != nil {
		t.Fatal(err)
	}
	if !converted.Extensions.Has(fmdl.ExtSimplifiedSkeleton) {
		t.Error("converted model missing simplified-skeleton marker")
	}
}

func TestModelGroupsFromSource(t *testing.T) {
	src := &model.Model{
		Groups: []string{"mesh_face", "mesh_eyes"},
		Meshes: []*model.Mesh{
			{Vertices: []*model.Vertex{{Position: mgl32.Vec3{0, 0, 0}}}},
			{Vertices: []*model.Vertex{{Position: mgl32.Vec3{1, 1, 1}}}},
		},
	}

	converted, err := Model(src, t.TempDir(), Hints{})
	if err != nil {
		t.Fatal(err)
	}

	if len(converted.Groups) != 2 {
		t.Fatalf("got %d groups, expected 2", len(converted.Groups))
	}
	for i, name := range src.Groups {
		group := converted.Groups[i]
		if group.Name != name {
			t.Errorf("group %d named %q; expected %q", i, group.Name, name)
		}
		if !group.Visible || group.Parent != fmdl.GroupNone {
			t.Errorf("group %d not a visible root", i)
		}
		if len(group.Meshes) != 1 || group.Meshes[0] != i {
			t.Errorf("group %d meshes %v; expected [%d]", i, group.Meshes, i)
		}
	}
}

func TestModelGeneratedGroupNamesAreUnique(t *testing.T) {
	src := &model.Model{
		Meshes: []*model.Mesh{
			{Vertices: []*model.Vertex{{Position: mgl32.Vec3{0, 0, 0}}}},
			{Vertices: []*model.Vertex{{Position: mgl32.Vec3{1, 1, 1}}}},
			{Vertices: []*model.Vertex{{Position: mgl32.Vec3{2, 2, 2}}}},
		},
	}

	converted, err := Model(src, t.TempDir(), Hints{})
	if err != nil {
		t.Fatal(err)
	}

	seen := make(map[string]bool)
	for _, group := range converted.Groups {
		if group.Name == "" {
			t.Error("generated group with empty name")
		}
		if seen[group.Name] {
			t.Errorf("duplicate group name %q", group.Name)
		}
		seen[group.Name] = true
	}
}
