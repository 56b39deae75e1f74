package model

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// GLTFLoader loads a source model from a .gltf/.glb file. It is the loader
// used by the command line tool for models that were re-exported through a
// DCC tool rather than shipped in the legacy binary format.
type GLTFLoader struct{}

func (GLTFLoader) Load(path string) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open gltf %q", path)
	}
	return fromDocument(doc)
}

func fromDocument(doc *gltf.Document) (*Model, error) {
	m := &Model{}

	// One source bone per joint node, deduplicated across skins in
	// first-seen order.
	boneByNode := make(map[uint32]*Bone)
	skinBones := make([][]*Bone, len(doc.Skins))
	for iSkin, skin := range doc.Skins {
		skinBones[iSkin] = make([]*Bone, len(skin.Joints))
		for iJoint, nodeIndex := range skin.Joints {
			if int(nodeIndex) >= len(doc.Nodes) {
				return nil, errors.Errorf("Skin %d joint %d references missing node %d", iSkin, iJoint, nodeIndex)
			}
			bone, ok := boneByNode[nodeIndex]
			if !ok {
				bone = &Bone{Name: doc.Nodes[nodeIndex].Name}
				boneByNode[nodeIndex] = bone
				m.Bones = append(m.Bones, bone)
			}
			skinBones[iSkin][iJoint] = bone
		}
	}

	materialSeen := make(map[string]bool)
	groupSeen := make(map[string]bool)

	for _, node := range doc.Nodes {
		if node.Mesh == nil {
			continue
		}
		gltfMesh := doc.Meshes[*node.Mesh]

		var bones []*Bone
		if node.Skin != nil {
			bones = skinBones[*node.Skin]
		}

		groupName := node.Name
		if groupName == "" {
			groupName = gltfMesh.Name
		}
		if groupName != "" && !groupSeen[groupName] {
			groupSeen[groupName] = true
			m.Groups = append(m.Groups, groupName)
		}

		for iPrimitive, primitive := range gltfMesh.Primitives {
			mesh, err := convertPrimitive(doc, primitive, bones)
			if err != nil {
				return nil, errors.Wrapf(err, "Mesh %q primitive %d", gltfMesh.Name, iPrimitive)
			}
			mesh.Group = groupName

			if primitive.Material != nil {
				mesh.Material = doc.Materials[*primitive.Material].Name
				if !materialSeen[mesh.Material] {
					materialSeen[mesh.Material] = true
					m.Materials = append(m.Materials, MaterialEntry{
						Key:  fmt.Sprintf("material_%d", len(m.Materials)),
						Name: mesh.Material,
					})
				}
			}

			m.Meshes = append(m.Meshes, mesh)
		}
	}

	return m, nil
}

func convertPrimitive(doc *gltf.Document, primitive *gltf.Primitive, bones []*Bone) (*Mesh, error) {
	mesh := &Mesh{BoneGroup: bones}

	posIndex, ok := primitive.Attributes[gltf.POSITION]
	if !ok {
		return nil, errors.Errorf("Primitive without POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIndex], nil)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read positions")
	}

	mesh.Vertices = make([]*Vertex, len(positions))
	for i, p := range positions {
		mesh.Vertices[i] = &Vertex{Position: mgl32.Vec3{p[0], p[1], p[2]}}
	}

	if accessor, ok := primitive.Attributes[gltf.NORMAL]; ok {
		normals, err := modeler.ReadNormal(doc, doc.Accessors[accessor], nil)
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to read normals")
		}
		mesh.VertexFields.HasNormal = true
		for i, n := range normals {
			v := mgl32.Vec3{n[0], n[1], n[2]}
			mesh.Vertices[i].Normal = &v
		}
	}

	if accessor, ok := primitive.Attributes[gltf.TANGENT]; ok {
		tangents, err := modeler.ReadTangent(doc, doc.Accessors[accessor], nil)
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to read tangents")
		}
		mesh.VertexFields.HasTangent = true
		for i, t := range tangents {
			v := mgl32.Vec3{t[0], t[1], t[2]}
			mesh.Vertices[i].Tangent = &v
		}
	}

	for iLayer := 0; ; iLayer++ {
		accessor, ok := primitive.Attributes[fmt.Sprintf("TEXCOORD_%d", iLayer)]
		if !ok {
			break
		}
		uvs, err := modeler.ReadTextureCoord(doc, doc.Accessors[accessor], nil)
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to read uv layer %d", iLayer)
		}
		mesh.VertexFields.UVCount++
		for i, uv := range uvs {
			mesh.Vertices[i].UV = append(mesh.Vertices[i].UV, mgl32.Vec2{uv[0], uv[1]})
		}
	}

	if accessor, ok := primitive.Attributes[gltf.COLOR_0]; ok {
		colors, err := modeler.ReadColor(doc, doc.Accessors[accessor], nil)
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to read colors")
		}
		mesh.VertexFields.HasColor = true
		for i, c := range colors {
			color := c
			mesh.Vertices[i].Color = &color
		}
	}

	jointsAccessor, haveJoints := primitive.Attributes[gltf.JOINTS_0]
	weightsAccessor, haveWeights := primitive.Attributes[gltf.WEIGHTS_0]
	if haveJoints && haveWeights && len(bones) > 0 {
		joints, err := modeler.ReadJoints(doc, doc.Accessors[jointsAccessor], nil)
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to read joints")
		}
		weights, err := modeler.ReadWeights(doc, doc.Accessors[weightsAccessor], nil)
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to read weights")
		}

		mesh.VertexFields.HasBoneMapping = true
		for i := range mesh.Vertices {
			for slot := 0; slot < 4; slot++ {
				weight := weights[i][slot]
				if weight == 0 {
					continue
				}
				index := int(joints[i][slot])
				if index >= len(bones) {
					return nil, errors.Errorf("Vertex %d references joint %d outside of skin (%d joints)", i, index, len(bones))
				}
				mesh.Vertices[i].BoneMapping = appendWeight(mesh.Vertices[i].BoneMapping, index, weight)
			}
		}
	}

	if primitive.Indices != nil {
		indices, err := modeler.ReadIndices(doc, doc.Accessors[*primitive.Indices], nil)
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to read indices")
		}
		if len(indices)%3 != 0 {
			return nil, errors.Errorf("Index count %d is not divisible by 3", len(indices))
		}
		mesh.Faces = make([][3]int, len(indices)/3)
		for i := range mesh.Faces {
			mesh.Faces[i] = [3]int{int(indices[i*3]), int(indices[i*3+1]), int(indices[i*3+2])}
		}
	} else {
		mesh.Faces = make([][3]int, len(mesh.Vertices)/3)
		for i := range mesh.Faces {
			mesh.Faces[i] = [3]int{i * 3, i*3 + 1, i*3 + 2}
		}
	}

	return mesh, nil
}

// appendWeight accumulates a weight onto an existing entry for the same
// local bone, keeping indices unique within the vertex.
func appendWeight(mapping []BoneWeight, index int, weight float32) []BoneWeight {
	for i := range mapping {
		if mapping[i].Index == index {
			mapping[i].Weight += weight
			return mapping
		}
	}
	return append(mapping, BoneWeight{Index: index, Weight: weight})
}
