package fmdl

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// ExportGLTF builds a glTF preview document from a converted model. The
// preview is for inspection in ordinary viewers; the binary fmdl encoder
// remains the real output path.
func (m *Model) ExportGLTF() (*gltf.Document, error) {
	doc := gltf.NewDocument()

	boneNode := make([]uint32, len(m.Bones))
	for i, bone := range m.Bones {
		boneNode[i] = uint32(len(doc.Nodes))
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name: bone.Name,
			Translation: [3]float32{
				bone.GlobalPosition[0],
				bone.GlobalPosition[1],
				bone.GlobalPosition[2],
			},
		})
	}
	for i, bone := range m.Bones {
		if bone.Parent == "" {
			doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, boneNode[i])
			continue
		}
		parent := m.BoneIndex(bone.Parent)
		parentNode := doc.Nodes[boneNode[parent]]
		parentNode.Children = append(parentNode.Children, boneNode[i])
	}

	var skinIndex *uint32
	if len(m.Bones) > 0 {
		skin := &gltf.Skin{Name: "skeleton", Joints: boneNode}
		doc.Skins = append(doc.Skins, skin)
		skinIndex = gltf.Index(uint32(len(doc.Skins) - 1))
	}

	for _, material := range m.Materials {
		gm := &gltf.Material{
			Name:        material.Name,
			DoubleSided: material.Twosided,
		}
		if material.Alphablend {
			gm.AlphaMode = gltf.AlphaBlend
		}
		doc.Materials = append(doc.Materials, gm)
	}

	meshName := m.meshNames()

	for iMesh, mesh := range m.Meshes {
		gltfMesh, err := exportMesh(doc, mesh, meshName[iMesh])
		if err != nil {
			return nil, fmt.Errorf("Failed to export mesh %d: %v", iMesh, err)
		}

		doc.Meshes = append(doc.Meshes, gltfMesh)
		node := &gltf.Node{
			Name: gltfMesh.Name,
			Mesh: gltf.Index(uint32(len(doc.Meshes) - 1)),
		}
		if mesh.VertexFields.HasBoneMapping {
			node.Skin = skinIndex
		}
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)))
		doc.Nodes = append(doc.Nodes, node)
	}

	return doc, nil
}

func (m *Model) meshNames() []string {
	names := make([]string, len(m.Meshes))
	for _, group := range m.Groups {
		for _, meshIndex := range group.Meshes {
			if meshIndex < len(names) && names[meshIndex] == "" {
				names[meshIndex] = group.Name
			}
		}
	}
	for i := range names {
		if names[i] == "" {
			names[i] = fmt.Sprintf("mesh_%d", i)
		}
	}
	return names
}

func exportMesh(doc *gltf.Document, mesh *Mesh, name string) (*gltf.Mesh, error) {
	verticesCount := len(mesh.Vertices)
	attributes := make(map[string]uint32)

	positions := make([][3]float32, verticesCount)
	for i, vertex := range mesh.Vertices {
		positions[i] = [3]float32{vertex.Position[0], vertex.Position[1], vertex.Position[2]}
	}
	attributes["POSITION"] = modeler.WritePosition(doc, positions)

	if mesh.VertexFields.HasNormal {
		normals := make([][3]float32, verticesCount)
		for i, vertex := range mesh.Vertices {
			if vertex.Normal != nil {
				normals[i] = [3]float32{vertex.Normal[0], vertex.Normal[1], vertex.Normal[2]}
			}
		}
		attributes["NORMAL"] = modeler.WriteNormal(doc, normals)
	}

	for iLayer := 0; iLayer < mesh.VertexFields.UVCount; iLayer++ {
		uvs := make([][2]float32, verticesCount)
		for i, vertex := range mesh.Vertices {
			if iLayer < len(vertex.UV) {
				uvs[i] = [2]float32{vertex.UV[iLayer][0], vertex.UV[iLayer][1]}
			}
		}
		attributes[fmt.Sprintf("TEXCOORD_%d", iLayer)] = modeler.WriteTextureCoord(doc, uvs)
	}

	if mesh.VertexFields.HasColor {
		colors := make([][4]uint8, verticesCount)
		for i, vertex := range mesh.Vertices {
			if vertex.Color != nil {
				colors[i] = *vertex.Color
			} else {
				colors[i] = [4]uint8{255, 255, 255, 255}
			}
		}
		attributes["COLOR_0"] = modeler.WriteColor(doc, colors)
	}

	if mesh.VertexFields.HasBoneMapping {
		joints := make([][4]uint16, verticesCount)
		weights := make([][4]float32, verticesCount)
		for i, vertex := range mesh.Vertices {
			for slot, bw := range vertex.BoneMapping {
				if slot >= 4 {
					break
				}
				joints[i][slot] = uint16(bw.Bone)
				weights[i][slot] = bw.Weight
			}
		}
		attributes["JOINTS_0"] = modeler.WriteJoints(doc, joints)
		attributes["WEIGHTS_0"] = modeler.WriteWeights(doc, weights)
	}

	indices := make([]uint32, 0, len(mesh.Faces)*3)
	for _, face := range mesh.Faces {
		indices = append(indices, uint32(face[0]), uint32(face[1]), uint32(face[2]))
	}
	indicesAccessor := modeler.WriteIndices(doc, indices)

	primitive := &gltf.Primitive{
		Indices:    &indicesAccessor,
		Attributes: attributes,
	}
	if mesh.MaterialInstance != MaterialNone {
		primitive.Material = gltf.Index(uint32(mesh.MaterialInstance))
	}

	return &gltf.Mesh{
		Name:       name,
		Primitives: []*gltf.Primitive{primitive},
	}, nil
}

// SaveGLB writes the preview document as a binary .glb file.
func (m *Model) SaveGLB(path string) error {
	doc, err := m.ExportGLTF()
	if err != nil {
		return err
	}
	return gltf.SaveBinary(doc, path)
}
