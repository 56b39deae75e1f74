package mtl

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleDescriptor = `<?xml version="1.0"?>
<root>
  <materials>
    <material name="mat_face" shader="Blin">
      <state name="twosided" value="0"/>
      <state name="alphablend" value="1"/>
      <sampler name="DiffuseMap" path="sourceimages\face_bsm.dds"/>
      <sampler name="NormalMap" path="sourceimages\face_nrm.dds"/>
    </material>
    <material name="mat_hair" shader="Constant">
      <state name="twosided" value="1"/>
    </material>
  </materials>
</root>
`

func TestParse(t *testing.T) {
	descriptors, err := Parse(strings.NewReader(sampleDescriptor))
	if err != nil {
		t.Fatal(err)
	}
	if len(descriptors) != 2 {
		t.Fatalf("got %d materials, expected 2", len(descriptors))
	}

	face := descriptors[0]
	if face.Name != "mat_face" || face.Shader != "Blin" {
		t.Errorf("first material %q/%q; expected mat_face/Blin", face.Name, face.Shader)
	}
	if face.Twosided || !face.Alphablend {
		t.Errorf("face states twosided=%v alphablend=%v; expected false/true", face.Twosided, face.Alphablend)
	}
	if face.DiffusePath != "sourceimages/face_bsm.dds" {
		t.Errorf("diffuse path %q; expected forward slashes", face.DiffusePath)
	}
	if len(face.Samplers) != 2 {
		t.Errorf("got %d samplers, expected 2", len(face.Samplers))
	}

	hair := descriptors[1]
	if !hair.Twosided || hair.Alphablend {
		t.Errorf("hair states twosided=%v alphablend=%v; expected true/false", hair.Twosided, hair.Alphablend)
	}
	if hair.DiffusePath != "" {
		t.Errorf("hair diffuse %q; expected none", hair.DiffusePath)
	}
}

func TestParseDirectoryLaterFileWins(t *testing.T) {
	dir := t.TempDir()

	first := `<material name="mat_face" shader="Blin"/>`
	second := `<material name="mat_face" shader="Constant"/><material name="mat_extra" shader="Blin"/>`

	if err := os.WriteFile(filepath.Join(dir, "a.mtl"), []byte(first), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.mtl"), []byte(second), 0644); err != nil {
		t.Fatal(err)
	}

	descriptors := ParseDirectory(dir)
	if len(descriptors) != 2 {
		t.Fatalf("got %d materials, expected 2", len(descriptors))
	}
	if descriptors["mat_face"].Shader != "Constant" {
		t.Errorf("mat_face shader %q; expected later file to win", descriptors["mat_face"].Shader)
	}
}

func TestParseDirectorySkipsBrokenFiles(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "bad.mtl"), []byte("<material name="), 0644); err != nil {
		t.Fatal(err)
	}
	good := `<material name="mat_ok" shader="Blin"/>`
	if err := os.WriteFile(filepath.Join(dir, "good.mtl"), []byte(good), 0644); err != nil {
		t.Fatal(err)
	}

	descriptors := ParseDirectory(dir)
	if _, ok := descriptors["mat_ok"]; !ok {
		t.Error("material from healthy file missing")
	}
	if len(descriptors) != 1 {
		t.Errorf("got %d materials, expected 1", len(descriptors))
	}
}
