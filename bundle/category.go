// Package bundle splits a legacy unified face folder into the separate
// Faces/Boots/Gloves output bundles the target game expects.
package bundle

import (
	"encoding/xml"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Output bundle categories.
const (
	CategoryFaces  = "faces"
	CategoryBoots  = "boots"
	CategoryGloves = "gloves"
)

type faceXML struct {
	Models []struct {
		Type string `xml:"type,attr"`
		Path string `xml:"path,attr"`
	} `xml:"model"`
}

// ParseFaceXML reads the face.xml model-type map of a source folder. The
// returned map keys are lowercased model file names, possibly containing
// glob wildcards. A missing face.xml yields (nil, nil): callers fall back
// to file name categorization.
func ParseFaceXML(dir string) (map[string]string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "face.xml"))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read face.xml in %q", dir)
	}

	var parsed faceXML
	if err := xml.Unmarshal(data, &parsed); err != nil {
		return nil, errors.Wrapf(err, "Failed to parse face.xml in %q", dir)
	}

	typeMap := make(map[string]string)
	for _, m := range parsed.Models {
		if m.Type == "" || m.Path == "" {
			continue
		}
		filename := path.Base(strings.ReplaceAll(m.Path, "\\", "/"))
		typeMap[strings.ToLower(filename)] = m.Type
	}
	return typeMap, nil
}

var typeCategories = map[string]string{
	"body": CategoryBoots, "arm": CategoryBoots, "wrist": CategoryBoots,
	"uniform": CategoryBoots, "shirt": CategoryBoots, "cuff": CategoryBoots,
	"collar": CategoryBoots, "boots": CategoryBoots, "parts": CategoryBoots,

	"face": CategoryFaces, "face_neck": CategoryFaces, "face_montage": CategoryFaces,
	"eye": CategoryFaces, "mouth": CategoryFaces, "neck": CategoryFaces,
	"head": CategoryFaces, "hair": CategoryFaces, "hair_cloth": CategoryFaces,
	"edithair": CategoryFaces,

	"handl": CategoryGloves, "handr": CategoryGloves,
	"glovel": CategoryGloves, "glover": CategoryGloves,
}

// CategorizeType maps a face.xml model type onto an output bundle, "" when
// the type is unknown.
func CategorizeType(modelType string) string {
	return typeCategories[strings.ToLower(modelType)]
}

// MatchType finds the declared type for a model file name: exact match
// first, then glob patterns like "face_high_*.model".
func MatchType(filename string, typeMap map[string]string) string {
	filename = strings.ToLower(filename)

	if modelType, ok := typeMap[filename]; ok {
		return modelType
	}
	for pattern, modelType := range typeMap {
		if !strings.Contains(pattern, "*") {
			continue
		}
		if ok, err := path.Match(pattern, filename); err == nil && ok {
			return modelType
		}
	}
	return ""
}

// CategorizeFilename is the fallback used when face.xml gives no answer:
// face/hair models go to Faces, glove/hand models to Gloves, everything
// else (parts, uniforms) to Boots.
func CategorizeFilename(baseName string) string {
	baseName = strings.ToLower(baseName)
	switch {
	case strings.Contains(baseName, "face") || strings.Contains(baseName, "hair"):
		return CategoryFaces
	case strings.Contains(baseName, "glove") || strings.Contains(baseName, "hand"):
		return CategoryGloves
	default:
		return CategoryBoots
	}
}

// Categorize resolves one model file against the optional face.xml type
// map, returning its declared type ("" when unknown) and output category.
func Categorize(filename string, typeMap map[string]string) (modelType, category string) {
	if typeMap != nil {
		modelType = MatchType(filename, typeMap)
		if modelType != "" {
			category = CategorizeType(modelType)
			if category == "" {
				log.Printf("WARNING: Unknown model type %q for %q, using filename fallback", modelType, filename)
			}
		}
	}
	if category == "" {
		base := strings.TrimSuffix(filename, filepath.Ext(filename))
		category = CategorizeFilename(base)
	}
	return modelType, category
}
