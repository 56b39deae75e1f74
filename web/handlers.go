package web

import (
	"bytes"
	"fmt"
	"net/http"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gorilla/mux"
	"github.com/qmuntal/gltf"

	"pesconv/bundle"
	"pesconv/convert"
	"pesconv/fmdl"
	"pesconv/mtl"
	"pesconv/utils"
	"pesconv/webutils"
)

func listModelFiles() ([]string, error) {
	glob := ServerGlob
	if glob == "" {
		glob = "*.model"
	}
	paths, err := filepath.Glob(filepath.Join(ServerDirectory, glob))
	if err != nil {
		return nil, err
	}
	names := make([]string, len(paths))
	for i, path := range paths {
		names[i] = filepath.Base(path)
	}
	sort.Strings(names)
	return names, nil
}

func convertByName(file string) (*fmdl.Model, error) {
	if file != filepath.Base(file) {
		return nil, fmt.Errorf("Invalid model name %q", file)
	}

	typeMap, err := bundle.ParseFaceXML(ServerDirectory)
	if err != nil {
		return nil, err
	}
	modelType, category := bundle.Categorize(file, typeMap)

	src, err := ServerLoader.Load(filepath.Join(ServerDirectory, file))
	if err != nil {
		return nil, err
	}
	return convert.Model(src, ServerDirectory, convert.Hints{Type: modelType, Category: category})
}

func HandlerAjaxModels(w http.ResponseWriter, r *http.Request) {
	if files, err := listModelFiles(); err != nil {
		webutils.WriteError(w, err)
	} else {
		webutils.WriteJson(w, files)
	}
}

type ajaxBone struct {
	Name   string `json:"name"`
	Parent string `json:"parent,omitempty"`
}

type ajaxMesh struct {
	Vertices    int    `json:"vertices"`
	Faces       int    `json:"faces"`
	Material    string `json:"material,omitempty"`
	AlphaFlags  uint32 `json:"alphaFlags"`
	ShadowFlags uint32 `json:"shadowFlags"`
}

type ajaxModel struct {
	Bones      []ajaxBone `json:"bones"`
	Meshes     []ajaxMesh `json:"meshes"`
	Materials  []string   `json:"materials"`
	Groups     []string   `json:"groups"`
	Extensions []string   `json:"extensions,omitempty"`
	BoxMin     [3]float32 `json:"boxMin"`
	BoxMax     [3]float32 `json:"boxMax"`
}

func HandlerAjaxModel(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	converted, err := convertByName(file)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}

	var summary ajaxModel
	for _, bone := range converted.Bones {
		summary.Bones = append(summary.Bones, ajaxBone{Name: bone.Name, Parent: bone.Parent})
	}
	for _, mesh := range converted.Meshes {
		material := ""
		if mesh.MaterialInstance != fmdl.MaterialNone {
			material = converted.Materials[mesh.MaterialInstance].Name
		}
		summary.Meshes = append(summary.Meshes, ajaxMesh{
			Vertices:    len(mesh.Vertices),
			Faces:       len(mesh.Faces),
			Material:    material,
			AlphaFlags:  mesh.AlphaFlags,
			ShadowFlags: mesh.ShadowFlags,
		})
	}
	for _, material := range converted.Materials {
		summary.Materials = append(summary.Materials, material.Name)
	}
	for _, group := range converted.Groups {
		summary.Groups = append(summary.Groups, group.Name)
	}
	for extension := range converted.Extensions {
		summary.Extensions = append(summary.Extensions, extension)
	}
	sort.Strings(summary.Extensions)
	summary.BoxMin = [3]float32{converted.BoundingBox.Min[0], converted.BoundingBox.Min[1], converted.BoundingBox.Min[2]}
	summary.BoxMax = [3]float32{converted.BoundingBox.Max[0], converted.BoundingBox.Max[1], converted.BoundingBox.Max[2]}

	webutils.WriteJson(w, &summary)
}

func HandlerAjaxMaterials(w http.ResponseWriter, r *http.Request) {
	descriptors := mtl.ParseDirectory(ServerDirectory)

	names := make([]string, 0, len(descriptors))
	for name := range descriptors {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]mtl.Descriptor, 0, len(names))
	for _, name := range names {
		result = append(result, descriptors[name])
	}
	webutils.WriteJson(w, result)
}

func HandlerDumpModel(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	converted, err := convertByName(file)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}

	doc, err := converted.ExportGLTF()
	if err != nil {
		webutils.WriteError(w, err)
		return
	}

	var buf bytes.Buffer
	encoder := gltf.NewEncoder(&buf)
	encoder.AsBinary = true
	if err := encoder.Encode(doc); err != nil {
		webutils.WriteError(w, err)
		return
	}

	name := strings.TrimSuffix(file, filepath.Ext(file)) + ".glb"
	webutils.WriteFile(w, &buf, name)
}

func HandlerSpewModel(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	converted, err := convertByName(file)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	webutils.WriteResult(w, []byte(utils.SDump(converted)))
}
