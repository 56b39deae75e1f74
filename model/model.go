package model

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Model is a fully normalized source asset: the loader has already undone
// mesh splitting and vertex-loop preservation, so every mesh here carries a
// single topology.
type Model struct {
	Bones     []*Bone
	Meshes    []*Mesh
	Materials []MaterialEntry
	Groups    []string
}

// MaterialEntry is one declared material of the source model. Entries keep
// their declaration order.
type MaterialEntry struct {
	Key  string
	Name string
}

type Bone struct {
	Name string
}

type VertexFields struct {
	HasNormal      bool
	HasTangent     bool
	HasColor       bool
	HasBoneMapping bool
	UVCount        int
}

// BoneWeight references a bone of the owning mesh's local bone group.
type BoneWeight struct {
	Index  int
	Weight float32
}

type Vertex struct {
	Position mgl32.Vec3
	Normal   *mgl32.Vec3
	Tangent  *mgl32.Vec3
	UV       []mgl32.Vec2
	Color    *[4]uint8

	// BoneMapping indices are unique within one vertex. Weights are carried
	// as authored; the sum is not checked anywhere in the converter.
	BoneMapping []BoneWeight
}

type Mesh struct {
	VertexFields VertexFields
	Vertices     []*Vertex
	Faces        [][3]int
	BoneGroup    []*Bone
	Material     string

	// Group is the name of the owning mesh group, "" when the source model
	// carries no grouping metadata.
	Group string
}

// Loader produces a normalized source model from a file on disk.
type Loader interface {
	Load(path string) (*Model, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(path string) (*Model, error)

func (f LoaderFunc) Load(path string) (*Model, error) { return f(path) }

// MaterialNames returns the declared material names in declaration order.
func (m *Model) MaterialNames() []string {
	names := make([]string, len(m.Materials))
	for i, entry := range m.Materials {
		names[i] = entry.Name
	}
	return names
}
