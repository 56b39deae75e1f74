package convert

import (
	"log"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"pesconv/config"
	"pesconv/fmdl"
	"pesconv/model"
)

// convertMesh converts one source mesh against the model's bone identity
// map and resolved material list. Geometry indices are trusted to be in
// range; the loader normalizes topology before the converter runs.
func convertMesh(srcMesh *model.Mesh, boneMap map[*model.Bone]int, materials []*fmdl.MaterialInstance, boneCount int) (*fmdl.Mesh, error) {
	if srcMesh.VertexFields.HasBoneMapping && boneCount == 0 {
		// There is no safe fallback bone to reference, so this one aborts.
		return nil, errors.Errorf("Mesh declares bone mapping but model has no bones")
	}

	mesh := &fmdl.Mesh{
		VertexFields: fmdl.VertexFields{
			HasNormal:      srcMesh.VertexFields.HasNormal,
			HasTangent:     srcMesh.VertexFields.HasTangent,
			HasBitangent:   false,
			HasColor:       srcMesh.VertexFields.HasColor,
			HasBoneMapping: srcMesh.VertexFields.HasBoneMapping,
			UVCount:        srcMesh.VertexFields.UVCount,
		},
		MaterialInstance: fmdl.MaterialNone,
	}

	// Local bone index -> model bone index, plus the mesh bone group:
	// ordered, deduplicated model bones referenced by the local bone list.
	localToModel := make([]int, len(srcMesh.BoneGroup))
	inGroup := make(map[int]bool, len(srcMesh.BoneGroup))
	for i, srcBone := range srcMesh.BoneGroup {
		index := boneMap[srcBone]
		localToModel[i] = index
		if !inGroup[index] {
			inGroup[index] = true
			mesh.BoneGroup = append(mesh.BoneGroup, index)
		}
	}

	mesh.Vertices = make([]*fmdl.Vertex, len(srcMesh.Vertices))
	for i, srcVertex := range srcMesh.Vertices {
		mesh.Vertices[i] = convertVertex(srcVertex, &mesh.VertexFields, localToModel)
	}

	// Triangle winding is opposite between the two formats.
	mesh.Faces = make([][3]int, len(srcMesh.Faces))
	for i, face := range srcMesh.Faces {
		mesh.Faces[i] = [3]int{face[2], face[1], face[0]}
	}

	material := matchMaterial(srcMesh.Material, materials)
	mesh.MaterialInstance = material
	deriveRenderFlags(mesh, materials)

	if len(mesh.Vertices) == 0 {
		mesh.BoundingBox = fmdl.DegenerateBox()
	} else {
		mesh.BoundingBox = meshBounds(mesh)
	}

	return mesh, nil
}

func convertVertex(src *model.Vertex, fields *fmdl.VertexFields, localToModel []int) *fmdl.Vertex {
	vertex := &fmdl.Vertex{Position: src.Position}

	// Normals and tangents grow a fourth component on conversion.
	if fields.HasNormal && src.Normal != nil {
		n := mgl32.Vec4{src.Normal[0], src.Normal[1], src.Normal[2], 1}
		vertex.Normal = &n
	}
	if fields.HasTangent && src.Tangent != nil {
		t := mgl32.Vec4{src.Tangent[0], src.Tangent[1], src.Tangent[2], 1}
		vertex.Tangent = &t
	}

	vertex.UV = append(vertex.UV, src.UV...)

	if fields.HasColor && src.Color != nil {
		color := *src.Color
		vertex.Color = &color
	}

	// Weights are copied as-is; two local bones collapsing onto the same
	// target bone accumulate their weights on one key.
	for _, bw := range src.BoneMapping {
		vertex.BoneMapping = accumulateWeight(vertex.BoneMapping, localToModel[bw.Index], bw.Weight)
	}

	return vertex
}

func accumulateWeight(mapping []fmdl.BoneWeight, bone int, weight float32) []fmdl.BoneWeight {
	for i := range mapping {
		if mapping[i].Bone == bone {
			mapping[i].Weight += weight
			return mapping
		}
	}
	return append(mapping, fmdl.BoneWeight{Bone: bone, Weight: weight})
}

func matchMaterial(name string, materials []*fmdl.MaterialInstance) int {
	for i, material := range materials {
		if material.Name == name {
			return i
		}
	}

	if len(materials) > 0 {
		log.Printf("WARNING: Mesh material %q not found, falling back to %q", name, materials[0].Name)
		return 0
	}
	log.Printf("WARNING: Mesh material %q not found and no materials available", name)
	return fmdl.MaterialNone
}

// deriveRenderFlags fills alpha/shadow flags from the shader family and the
// descriptor render states of the mesh's material.
func deriveRenderFlags(mesh *fmdl.Mesh, materials []*fmdl.MaterialInstance) {
	if mesh.MaterialInstance == fmdl.MaterialNone {
		mesh.AlphaFlags = 0
		mesh.ShadowFlags = 1
		return
	}
	material := materials[mesh.MaterialInstance]

	switch {
	case strings.Contains(material.Shader, "3ddf"):
		mesh.AlphaFlags = 0
		if material.Twosided {
			mesh.AlphaFlags += 32
		}
		if material.Alphablend {
			mesh.AlphaFlags += 128
		}
		mesh.ShadowFlags = 0
	case strings.Contains(material.Shader, "3dfw"):
		mesh.AlphaFlags = 16
		if material.Twosided {
			mesh.AlphaFlags += 32
		}
		mesh.ShadowFlags = 4
	default:
		mesh.AlphaFlags = 0
		mesh.ShadowFlags = 1
	}

	if material.Shader == config.AntiBlurShader {
		mesh.Extensions = mesh.Extensions.Add(fmdl.ExtAntiBlur)
	}
}

func meshBounds(mesh *fmdl.Mesh) fmdl.BoundingBox {
	if len(mesh.Vertices) == 0 {
		return fmdl.DegenerateBox()
	}
	box := fmdl.BoxAround(mesh.Vertices[0].Position)
	for _, vertex := range mesh.Vertices[1:] {
		box = box.Extend(vertex.Position)
	}
	return box
}
