package bundle

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCategorizeType(t *testing.T) {
	tests := []struct {
		modelType string
		category  string
	}{
		{"face", CategoryFaces},
		{"Hair", CategoryFaces},
		{"uniform", CategoryBoots},
		{"boots", CategoryBoots},
		{"handl", CategoryGloves},
		{"gloveR", CategoryGloves},
		{"dragon", ""},
	}
	for _, test := range tests {
		if got := CategorizeType(test.modelType); got != test.category {
			t.Errorf("CategorizeType(%q)=%q; expected %q", test.modelType, got, test.category)
		}
	}
}

func TestMatchType(t *testing.T) {
	typeMap := map[string]string{
		"face_high.model":  "face",
		"hair_*.model":     "hair",
		"oral_parts.model": "mouth",
	}

	tests := []struct {
		filename  string
		modelType string
	}{
		{"face_high.model", "face"},
		{"FACE_HIGH.model", "face"},
		{"hair_high.model", "hair"},
		{"hair_low.model", "hair"},
		{"unknown.model", ""},
	}
	for _, test := range tests {
		if got := MatchType(test.filename, typeMap); got != test.modelType {
			t.Errorf("MatchType(%q)=%q; expected %q", test.filename, got, test.modelType)
		}
	}
}

func TestCategorizeFilenameFallback(t *testing.T) {
	tests := []struct {
		baseName string
		category string
	}{
		{"face_high", CategoryFaces},
		{"hair_high", CategoryFaces},
		{"glove_l", CategoryGloves},
		{"hand_r", CategoryGloves},
		{"boots_123", CategoryBoots},
		{"parts_srm", CategoryBoots},
	}
	for _, test := range tests {
		if got := CategorizeFilename(test.baseName); got != test.category {
			t.Errorf("CategorizeFilename(%q)=%q; expected %q", test.baseName, got, test.category)
		}
	}
}

func TestParseFaceXML(t *testing.T) {
	dir := t.TempDir()
	content := `<?xml version="1.0"?>
<dif>
  <model level="0" type="face" path="./model/character/face/real/12345/face_high.model"/>
  <model level="0" type="uniform" path=".\model\character\uniform\body.model"/>
</dif>
`
	if err := os.WriteFile(filepath.Join(dir, "face.xml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	typeMap, err := ParseFaceXML(dir)
	if err != nil {
		t.Fatal(err)
	}
	if typeMap["face_high.model"] != "face" {
		t.Errorf("face_high.model type %q; expected face", typeMap["face_high.model"])
	}
	if typeMap["body.model"] != "uniform" {
		t.Errorf("body.model type %q; expected uniform (backslash path)", typeMap["body.model"])
	}
}

func TestParseFaceXMLMissing(t *testing.T) {
	typeMap, err := ParseFaceXML(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if typeMap != nil {
		t.Errorf("got %v; expected nil map for missing face.xml", typeMap)
	}
}

func TestCategorizeUnknownTypeFallsBack(t *testing.T) {
	typeMap := map[string]string{"oral_parts.model": "dragon"}

	modelType, category := Categorize("oral_parts.model", typeMap)
	if modelType != "dragon" {
		t.Errorf("model type %q; expected dragon", modelType)
	}
	if category != CategoryBoots {
		t.Errorf("category %q; expected filename fallback to boots", category)
	}
}
