package bundle

import (
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"pesconv/model"
	"pesconv/mtl"
)

// Kit textures follow the [prefix_]u0XXX[gp]N.dds naming scheme; any XXX
// and any final digit are variants of the same kit and travel together.
var kitTextureRe = regexp.MustCompile(`(?i)^(.*?)(u0[0-9a-zA-Z]{3})([gp])([0-9])\.dds$`)

// TexturesUsed returns the sidecar texture file names (basenames) that a
// source model references through its material descriptors. For kit
// textures every matching variant present in dir is included.
func TexturesUsed(m *model.Model, dir string) map[string]struct{} {
	used := make(map[string]struct{})

	materialNames := make(map[string]bool)
	for _, name := range m.MaterialNames() {
		materialNames[name] = true
	}

	for name, descriptor := range mtl.ParseDirectory(dir) {
		if !materialNames[name] {
			continue
		}
		for _, sampler := range descriptor.Samplers {
			if sampler.Path == "" {
				continue
			}
			filename := path.Base(sampler.Path)

			if match := kitTextureRe.FindStringSubmatch(filename); match != nil {
				addKitVariants(used, dir, match[1], match[3])
			} else {
				used[filename] = struct{}{}
			}
		}
	}

	return used
}

func addKitVariants(used map[string]struct{}, dir, prefix, kitType string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("WARNING: Failed to scan %q for kit textures: %v", dir, err)
		return
	}
	for _, entry := range entries {
		match := kitTextureRe.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}
		if strings.EqualFold(match[1], prefix) && strings.EqualFold(match[3], kitType) {
			used[entry.Name()] = struct{}{}
		}
	}
}

// CopyTextures copies the .dds/.ftex files of srcDir that appear in the
// used set into destDir. Portraits are handled separately by the caller and
// skipped here. A .ftex next to a referenced .dds counts as used too.
func CopyTextures(srcDir, destDir string, used map[string]struct{}) error {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return errors.Wrapf(err, "Failed to list %q", srcDir)
	}

	for _, entry := range entries {
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".dds" && ext != ".ftex" {
			continue
		}
		if strings.Contains(strings.ToLower(name), "portrait") {
			continue
		}

		lookup := name
		if ext == ".ftex" {
			lookup = strings.TrimSuffix(name, filepath.Ext(name)) + ".dds"
		}
		if _, ok := used[lookup]; !ok {
			if _, ok := used[name]; !ok {
				continue
			}
		}

		destPath := filepath.Join(destDir, name)
		if _, err := os.Stat(destPath); err == nil {
			continue
		}
		if err := copyFile(filepath.Join(srcDir, name), destPath); err != nil {
			return err
		}
	}

	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "Failed to open %q", src)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return errors.Wrapf(err, "Failed to create %q", dest)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return errors.Wrapf(err, "Failed to copy %q to %q", src, dest)
	}
	return out.Close()
}
