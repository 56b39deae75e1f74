package skeleton

import (
	_ "embed"
	"log"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

//go:embed pes_skeleton.yaml
var rawDataset []byte

// Bone is one entry of the reference skeleton: the bind-pose global
// transform of the bone and the name of its parent ("" for roots).
type Bone struct {
	Parent string
	Global mgl32.Mat4
}

type datasetFile struct {
	Bones map[string]struct {
		Parent string    `yaml:"parent"`
		Matrix []float32 `yaml:"matrix"`
	} `yaml:"bones"`
}

var (
	loadOnce sync.Once
	dataset  map[string]Bone
)

func load() {
	var file datasetFile
	if err := yaml.Unmarshal(rawDataset, &file); err != nil {
		// The dataset is embedded, so this only fires on a broken build.
		log.Panicf("Failed to parse embedded skeleton dataset: %v", err)
	}

	dataset = make(map[string]Bone, len(file.Bones))
	for name, entry := range file.Bones {
		if len(entry.Matrix) != 16 {
			log.Panicf("Skeleton bone %q: expected 16 matrix values, got %d", name, len(entry.Matrix))
		}

		// Dataset matrices are stored row-major.
		var rows [4]mgl32.Vec4
		for i := range rows {
			rows[i] = mgl32.Vec4{
				entry.Matrix[i*4+0],
				entry.Matrix[i*4+1],
				entry.Matrix[i*4+2],
				entry.Matrix[i*4+3],
			}
		}

		dataset[name] = Bone{
			Parent: entry.Parent,
			Global: mgl32.Mat4FromRows(rows[0], rows[1], rows[2], rows[3]),
		}
	}
}

// Lookup finds a bone of the reference skeleton by name.
func Lookup(name string) (Bone, bool) {
	loadOnce.Do(load)
	b, ok := dataset[name]
	return b, ok
}

// Names returns the bone names present in the reference skeleton.
// Intended for diagnostics and tests.
func Names() []string {
	loadOnce.Do(load)
	names := make([]string, 0, len(dataset))
	for name := range dataset {
		names = append(names, name)
	}
	return names
}
