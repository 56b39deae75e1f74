package convert

import (
	"log"
	"path"
	"strings"

	"pesconv/config"
	"pesconv/fmdl"
	"pesconv/mtl"
)

// resolveMaterials builds one material instance per declared source
// material, in declaration order, from the descriptor files found in dir.
// Every failure here degrades to defaults with a diagnostic; material
// resolution never aborts a conversion.
func resolveMaterials(names []string, dir string, hints Hints) []*fmdl.MaterialInstance {
	descriptors := mtl.ParseDirectory(dir)

	materials := make([]*fmdl.MaterialInstance, 0, len(names))
	for _, name := range names {
		materials = append(materials, resolveMaterial(name, descriptors, hints))
	}
	return materials
}

func resolveMaterial(name string, descriptors map[string]mtl.Descriptor, hints Hints) *fmdl.MaterialInstance {
	instance := &fmdl.MaterialInstance{
		Name:      name,
		Technique: config.DefaultShaderPair.Technique,
		Shader:    config.DefaultShaderPair.Shader,
	}

	descriptor, ok := descriptors[name]
	if !ok {
		log.Printf("WARNING: No descriptor found for material %q, using defaults", name)
		return instance
	}

	pair, recognized := config.LookupShader(descriptor.Shader)
	if !recognized {
		log.Printf("WARNING: Unrecognized shader %q on material %q, using default", descriptor.Shader, name)
	}
	instance.Technique = pair.Technique
	instance.Shader = pair.Shader
	instance.Twosided = descriptor.Twosided
	instance.Alphablend = descriptor.Alphablend

	if texture, ok := resolveDiffuse(name, descriptor, hints); ok {
		instance.Textures = append(instance.Textures, fmdl.TextureSlot{
			Role: config.DiffuseSampler,
			Path: texture,
		})
	}

	return instance
}

func resolveDiffuse(name string, descriptor mtl.Descriptor, hints Hints) (string, bool) {
	// Uniform models get their kit texture applied at runtime; whatever the
	// descriptor declares is replaced by the placeholder.
	if hints.Type == "uniform" {
		return config.UniformPlaceholderTexture, true
	}

	if descriptor.DiffusePath == "" {
		log.Printf("WARNING: Material %q has no DiffuseMap sampler", name)
		return "", false
	}

	filename := path.Base(descriptor.DiffusePath)

	if strings.HasPrefix(descriptor.DiffusePath, config.SharedAssetPrefix) {
		return config.SharedAssetDir + filename, true
	}

	return localTextureDir(name, hints) + filename, true
}

// localTextureDir picks the destination directory for a model-local texture
// from the category hint, falling back to a substring match on the material
// name when no hint is present.
func localTextureDir(name string, hints Hints) string {
	switch hints.Category {
	case "faces":
		return config.TextureDirFaces
	case "boots":
		return config.TextureDirBoots
	case "gloves":
		return config.TextureDirGloves
	}

	lower := strings.ToLower(name)
	if strings.Contains(lower, "face") || strings.Contains(lower, "hair") || strings.Contains(lower, "oral") {
		return config.TextureDirFaces
	}
	return config.TextureDirBoots
}
