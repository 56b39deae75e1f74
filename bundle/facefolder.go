package bundle

import (
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"pesconv/convert"
	"pesconv/fmdl"
	"pesconv/model"
)

// Converter drives the conversion of one legacy face folder into the
// separate output bundles. Loader and Writer are the format boundaries;
// ModelGlob selects the source model files ("*.model" by default).
type Converter struct {
	Loader    model.Loader
	Writer    fmdl.Writer
	ModelGlob string
}

// A face_high_win32.model below this size is an empty placeholder export
// and is skipped; larger ones hold the hair model.
const faceHighWin32MinSize = 990

type categorizedModel struct {
	Path  string
	Hints convert.Hints
}

// ConvertFaceFolder converts every model of srcDir and lays the results out
// under destDir as Faces/, Boots/ and Gloves/ bundles named after the
// player. Individual model failures degrade to warnings; only filesystem
// level problems abort.
func (c *Converter) ConvertFaceFolder(srcDir, destDir, playerName string) error {
	typeMap, err := ParseFaceXML(srcDir)
	if err != nil {
		log.Printf("WARNING: %v", err)
	}
	if typeMap != nil {
		log.Printf("Using face.xml for model categorization in %q", srcDir)
	} else {
		log.Printf("No face.xml found, using filename-based categorization in %q", srcDir)
	}

	glob := c.ModelGlob
	if glob == "" {
		glob = "*.model"
	}
	paths, err := filepath.Glob(filepath.Join(srcDir, glob))
	if err != nil {
		return errors.Wrapf(err, "Bad model glob %q", glob)
	}
	sort.Strings(paths)

	var faces, boots, gloves []categorizedModel
	var hairHigh *categorizedModel

	for _, path := range paths {
		filename := filepath.Base(path)
		baseName := strings.ToLower(strings.TrimSuffix(filename, filepath.Ext(filename)))

		if baseName == "face_high_win32" {
			info, err := os.Stat(path)
			if err != nil {
				log.Printf("WARNING: Failed to stat %q: %v", path, err)
				continue
			}
			if info.Size() <= faceHighWin32MinSize {
				log.Printf("Skipping %s (%d bytes, placeholder)", filename, info.Size())
				continue
			}
			hairHigh = &categorizedModel{
				Path:  path,
				Hints: convert.Hints{Type: "hair", Category: CategoryFaces},
			}
			continue
		}

		modelType, category := Categorize(filename, typeMap)
		entry := categorizedModel{
			Path:  path,
			Hints: convert.Hints{Type: modelType, Category: category},
		}
		switch category {
		case CategoryFaces:
			faces = append(faces, entry)
		case CategoryGloves:
			gloves = append(gloves, entry)
		default:
			boots = append(boots, entry)
		}
	}

	if err := c.convertFaces(srcDir, destDir, playerName, faces, hairHigh); err != nil {
		return err
	}
	if len(boots) > 0 {
		if err := c.convertBoots(srcDir, destDir, playerName, boots); err != nil {
			return err
		}
	}
	if len(gloves) > 0 {
		if err := c.convertGloves(srcDir, destDir, playerName, gloves); err != nil {
			return err
		}
	}
	return nil
}

func (c *Converter) convertOne(srcDir string, entry categorizedModel, destPath string) error {
	src, err := c.Loader.Load(entry.Path)
	if err != nil {
		return errors.Wrapf(err, "Failed to load %q", entry.Path)
	}
	converted, err := convert.Model(src, srcDir, entry.Hints)
	if err != nil {
		return errors.Wrapf(err, "Failed to convert %q", entry.Path)
	}
	if err := c.Writer.Write(converted, destPath); err != nil {
		return errors.Wrapf(err, "Failed to write %q", destPath)
	}
	return nil
}

// convertFaces picks which face models become face_high and hair_high. One
// model always becomes face_high; with two, the one named "hair" (or the
// smaller one) becomes hair_high; with more, only the two largest survive.
func (c *Converter) convertFaces(srcDir, destDir, playerName string, faces []categorizedModel, hairHigh *categorizedModel) error {
	// The Faces folder is created even when empty, so the save data can
	// reference it.
	facesDir := filepath.Join(destDir, "Faces", playerName)
	if err := os.MkdirAll(facesDir, 0755); err != nil {
		return errors.Wrapf(err, "Failed to create %q", facesDir)
	}

	var manifest []string
	emit := func(entry categorizedModel, outputName string) {
		destPath := filepath.Join(facesDir, outputName)
		log.Printf("Converting %s to %s", filepath.Base(entry.Path), outputName)
		if err := c.convertOne(srcDir, entry, destPath); err != nil {
			log.Printf("WARNING: %v", err)
			return
		}
		manifest = append(manifest, outputName)
	}

	if hairHigh != nil {
		emit(*hairHigh, "hair_high.fmdl")
	}

	if len(faces) > 2 {
		log.Printf("WARNING: Found %d face models, keeping only the 2 largest", len(faces))
		sort.Slice(faces, func(i, j int) bool {
			return fileSize(faces[i].Path) > fileSize(faces[j].Path)
		})
		faces = faces[:2]
	}

	switch len(faces) {
	case 1:
		emit(faces[0], "face_high.fmdl")
	case 2:
		face, hair := splitFaceHair(faces)
		emit(face, "face_high.fmdl")
		emit(hair, "hair_high.fmdl")
	}

	if err := WriteFpkManifest(facesDir, "face", manifest); err != nil {
		return err
	}

	used := c.texturesUsed(srcDir, faces, hairHigh)
	if err := CopyTextures(srcDir, facesDir, used); err != nil {
		return err
	}

	portrait := filepath.Join(srcDir, "portrait.dds")
	if _, err := os.Stat(portrait); err == nil {
		if err := copyFile(portrait, filepath.Join(facesDir, "portrait.dds")); err != nil {
			return err
		}
	}

	return nil
}

// splitFaceHair decides which of two face models is the hair: the one with
// "hair" in its name, or the smaller file when neither qualifies.
func splitFaceHair(faces []categorizedModel) (face, hair categorizedModel) {
	for i, entry := range faces {
		base := strings.ToLower(filepath.Base(entry.Path))
		if strings.Contains(base, "hair") {
			return faces[1-i], entry
		}
	}

	log.Printf("WARNING: Ambiguous face models, using smaller file as hair_high")
	if fileSize(faces[0].Path) <= fileSize(faces[1].Path) {
		return faces[1], faces[0]
	}
	return faces[0], faces[1]
}

// convertBoots merges every boots-category model into a single boots.fmdl.
func (c *Converter) convertBoots(srcDir, destDir, playerName string, boots []categorizedModel) error {
	bootsDir := filepath.Join(destDir, "Boots", playerName)
	if err := os.MkdirAll(bootsDir, 0755); err != nil {
		return errors.Wrapf(err, "Failed to create %q", bootsDir)
	}

	inputs := make([]convert.Input, len(boots))
	for i, entry := range boots {
		inputs[i] = convert.Input{Path: entry.Path, Hints: entry.Hints}
	}

	log.Printf("Converting %d boots model(s) into boots.fmdl", len(boots))
	combined, err := convert.Combine(c.Loader, srcDir, inputs)
	if err != nil {
		log.Printf("WARNING: Failed to combine boots models: %v", err)
	} else {
		destPath := filepath.Join(bootsDir, "boots.fmdl")
		if err := c.Writer.Write(combined, destPath); err != nil {
			return errors.Wrapf(err, "Failed to write %q", destPath)
		}
		if err := WriteFpkManifest(bootsDir, "boots", []string{"boots.fmdl"}); err != nil {
			return err
		}
	}

	used := c.texturesUsed(srcDir, boots, nil)
	return CopyTextures(srcDir, bootsDir, used)
}

// convertGloves converts each glove model on its own: *_l sources become
// glove_l.fmdl, *_r become glove_r.fmdl, anything else keeps its name.
func (c *Converter) convertGloves(srcDir, destDir, playerName string, gloves []categorizedModel) error {
	glovesDir := filepath.Join(destDir, "Gloves", playerName)
	if err := os.MkdirAll(glovesDir, 0755); err != nil {
		return errors.Wrapf(err, "Failed to create %q", glovesDir)
	}

	var manifest []string
	for _, entry := range gloves {
		baseName := strings.TrimSuffix(filepath.Base(entry.Path), filepath.Ext(entry.Path))

		outputName := baseName
		switch {
		case strings.HasSuffix(strings.ToLower(baseName), "_l"):
			outputName = "glove_l"
		case strings.HasSuffix(strings.ToLower(baseName), "_r"):
			outputName = "glove_r"
		}
		outputName += ".fmdl"

		log.Printf("Converting glove model %s to %s", filepath.Base(entry.Path), outputName)
		if err := c.convertOne(srcDir, entry, filepath.Join(glovesDir, outputName)); err != nil {
			log.Printf("WARNING: %v", err)
			continue
		}
		if !contains(manifest, outputName) {
			manifest = append(manifest, outputName)
		}
	}

	if err := WriteFpkManifest(glovesDir, "glove", manifest); err != nil {
		return err
	}

	used := c.texturesUsed(srcDir, gloves, nil)
	return CopyTextures(srcDir, glovesDir, used)
}

func (c *Converter) texturesUsed(srcDir string, entries []categorizedModel, extra *categorizedModel) map[string]struct{} {
	used := make(map[string]struct{})
	collect := func(entry categorizedModel) {
		src, err := c.Loader.Load(entry.Path)
		if err != nil {
			log.Printf("WARNING: Failed to load %q for texture collection: %v", entry.Path, err)
			return
		}
		for name := range TexturesUsed(src, srcDir) {
			used[name] = struct{}{}
		}
	}

	for _, entry := range entries {
		collect(entry)
	}
	if extra != nil {
		collect(*extra)
	}
	return used
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
