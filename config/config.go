package config

// Destination directories referenced by converted fmdl materials. These are
// engine paths inside the target game's asset tree, not host filesystem paths.
const (
	TextureDirFaces  = "/Assets/pes16/model/character/face/sourceimages/"
	TextureDirBoots  = "/Assets/pes16/model/character/boots/sourceimages/"
	TextureDirGloves = "/Assets/pes16/model/character/glove/sourceimages/"

	// Paths under SharedAssetPrefix are rewritten into SharedAssetDir,
	// keeping the file name.
	SharedAssetPrefix = "/common/"
	SharedAssetDir    = "/Assets/pes16/model/character/common/sourceimages/"

	// Uniform models never keep their own diffuse texture; the kit texture
	// is applied by the game at runtime.
	UniformPlaceholderTexture = "/Assets/pes16/model/character/uniform/common/sourceimages/dummy.ftex"
)

// DiffuseSampler is the sampler role that carries the diffuse texture in
// both the source .mtl descriptors and the produced material instances.
const DiffuseSampler = "DiffuseMap"

type ShaderPair struct {
	Technique string
	Shader    string
}

var DefaultShaderPair = ShaderPair{"fox3DDF_Blin", "fox3ddf_blin"}

// shaderTable maps the shader attribute of a source material descriptor to
// the target engine technique/shader pair.
var shaderTable = map[string]ShaderPair{
	"Blin":        {"fox3DDF_Blin", "fox3ddf_blin"},
	"BlinAlpha":   {"fox3DDF_Blin", "fox3ddf_blin"},
	"Constant":    {"fox3DFW_ConstantSRGB_NDR_Solid", "fox3dfw_constant_srgb_ndr_solid"},
	"ConstantNDR": {"fox3DFW_ConstantSRGB_NDR", "fox3dfw_constant_srgb_ndr"},
}

// LookupShader resolves a descriptor shader string. Unrecognized strings map
// to DefaultShaderPair; the bool reports whether the string was recognized.
func LookupShader(name string) (ShaderPair, bool) {
	if pair, ok := shaderTable[name]; ok {
		return pair, true
	}
	return DefaultShaderPair, false
}

// AntiBlurShader marks meshes that need the anti-blur duplication pass in
// the fmdl encoder.
const AntiBlurShader = "fox3dfw_constant_srgb_ndr_solid"
