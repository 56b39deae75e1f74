package fmdl

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Extension markers consumed by the binary encoder before serialization.
const (
	// ExtAntiBlur requests the mesh duplication pass that works around the
	// target engine's motion blur artifact on constant-shaded meshes.
	ExtAntiBlur = "antiblur-meshes"

	// ExtSimplifiedSkeleton tags models whose bones were produced from the
	// reference skeleton instead of authored data.
	ExtSimplifiedSkeleton = "skeleton-simplified"
)

// Markers is a set of extension tags.
type Markers map[string]struct{}

func (m Markers) Add(marker string) Markers {
	if m == nil {
		m = make(Markers)
	}
	m[marker] = struct{}{}
	return m
}

func (m Markers) Has(marker string) bool {
	_, ok := m[marker]
	return ok
}

// BoundingBox is an axis-aligned box. Min/Max carry w=1 like every other
// position in the fmdl format.
type BoundingBox struct {
	Min mgl32.Vec4
	Max mgl32.Vec4
}

// DegenerateBox is the origin box used whenever there is nothing to bound.
func DegenerateBox() BoundingBox {
	return BoundingBox{
		Min: mgl32.Vec4{0, 0, 0, 1},
		Max: mgl32.Vec4{0, 0, 0, 1},
	}
}

// BoxAround starts a box at a single point.
func BoxAround(p mgl32.Vec3) BoundingBox {
	v := mgl32.Vec4{p[0], p[1], p[2], 1}
	return BoundingBox{Min: v, Max: v}
}

// Extend grows the box to contain point p.
func (b BoundingBox) Extend(p mgl32.Vec3) BoundingBox {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
	return b
}

// Union merges two boxes componentwise.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	for i := 0; i < 3; i++ {
		if o.Min[i] < b.Min[i] {
			b.Min[i] = o.Min[i]
		}
		if o.Max[i] > b.Max[i] {
			b.Max[i] = o.Max[i]
		}
	}
	return b
}

// Contains reports whether o fits inside b. Used by tests and sanity checks.
func (b BoundingBox) Contains(o BoundingBox) bool {
	for i := 0; i < 3; i++ {
		if o.Min[i] < b.Min[i] || o.Max[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Bone names are unique within one model. Parent/children are expressed by
// name so that merge-time deduplication stays a substitution-map rewrite.
type Bone struct {
	Name   string
	Matrix [12]float32 // row-major 3x4 local transform

	GlobalPosition mgl32.Vec4
	LocalPosition  mgl32.Vec4

	Parent   string // "" for roots
	Children []string

	BoundingBox BoundingBox
}

// IdentityAffine is the 3x4 local transform of bones absent from the
// reference skeleton.
var IdentityAffine = [12]float32{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
}

// TruncateAffine drops the projective row of a 4x4 matrix, producing the
// row-major 3x4 representation the fmdl format stores.
func TruncateAffine(m mgl32.Mat4) (out [12]float32) {
	for row := 0; row < 3; row++ {
		for col := 0; col < 4; col++ {
			out[row*4+col] = m.At(row, col)
		}
	}
	return out
}

// TextureSlot binds a texture path to a sampler role of the material.
type TextureSlot struct {
	Role string
	Path string
}

type MaterialInstance struct {
	Name      string
	Technique string
	Shader    string
	Textures  []TextureSlot

	// Parameters stay empty in this engine version; the field exists so the
	// encoder writes the (empty) parameter block.
	Parameters []TextureSlot

	// Render states captured from the descriptor. Only used to derive mesh
	// alpha/shadow flags, never serialized themselves.
	Twosided   bool
	Alphablend bool
}

type VertexFields struct {
	HasNormal      bool
	HasTangent     bool
	HasBitangent   bool // always false for converted meshes
	HasColor       bool
	HasBoneMapping bool
	UVCount        int
}

// BoneWeight references a bone by its index in the owning model's bone list.
type BoneWeight struct {
	Bone   int
	Weight float32
}

type Vertex struct {
	Position mgl32.Vec3
	Normal   *mgl32.Vec4
	Tangent  *mgl32.Vec4
	UV       []mgl32.Vec2
	Color    *[4]uint8

	BoneMapping []BoneWeight
}

// MaterialNone marks meshes without a resolvable material instance.
const MaterialNone = -1

type Mesh struct {
	VertexFields VertexFields
	Vertices     []*Vertex
	Faces        [][3]int

	// BoneGroup lists the model bone indices this mesh skins against,
	// ordered, without duplicates.
	BoneGroup []int

	MaterialInstance int // index into Model.Materials, MaterialNone if unresolved

	AlphaFlags  uint32
	ShadowFlags uint32

	BoundingBox BoundingBox
	Extensions  Markers
}

// GroupNone marks a root mesh group.
const GroupNone = -1

type MeshGroup struct {
	Name    string
	Visible bool

	Parent   int // index into Model.Groups, GroupNone for roots
	Children []int
	Meshes   []int // indices into Model.Meshes

	BoundingBox BoundingBox
}

type Model struct {
	Bones     []*Bone
	Materials []*MaterialInstance
	Meshes    []*Mesh
	Groups    []*MeshGroup

	BoundingBox BoundingBox
	Extensions  Markers
}

// BoneIndex finds a bone by name, -1 when absent.
func (m *Model) BoneIndex(name string) int {
	for i, bone := range m.Bones {
		if bone.Name == name {
			return i
		}
	}
	return -1
}

// Writer serializes a converted model into the target binary format. The
// encoder is expected to run, in order, anti-blur mesh duplication, mesh
// re-splitting and vertex-loop re-preservation before writing.
type Writer interface {
	Write(m *Model, path string) error
}

// WriterFunc adapts a function to the Writer interface.
type WriterFunc func(m *Model, path string) error

func (f WriterFunc) Write(m *Model, path string) error { return f(m, path) }
