// Package mtl reads the XML material descriptor files shipped next to
// source models.
package mtl

import (
	"encoding/xml"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Sampler is one texture binding of a material descriptor.
type Sampler struct {
	Name string
	Path string
}

// Descriptor is one <material> element of a descriptor file.
type Descriptor struct {
	Name       string
	Shader     string
	Twosided   bool
	Alphablend bool
	Samplers   []Sampler

	// DiffusePath is the path of the first DiffuseMap sampler, "" when the
	// material declares none.
	DiffusePath string
}

type materialXML struct {
	Name     string `xml:"name,attr"`
	Shader   string `xml:"shader,attr"`
	States   []struct {
		Name  string `xml:"name,attr"`
		Value string `xml:"value,attr"`
	} `xml:"state"`
	Samplers []struct {
		Name string `xml:"name,attr"`
		Path string `xml:"path,attr"`
	} `xml:"sampler"`
}

// Parse reads every <material> element from a descriptor stream, at any
// nesting depth.
func Parse(r io.Reader) ([]Descriptor, error) {
	var descriptors []Descriptor

	decoder := xml.NewDecoder(r)
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to read xml token")
		}

		start, ok := token.(xml.StartElement)
		if !ok || start.Name.Local != "material" {
			continue
		}

		var raw materialXML
		if err := decoder.DecodeElement(&raw, &start); err != nil {
			return nil, errors.Wrapf(err, "Failed to decode material element")
		}

		descriptor := Descriptor{
			Name:   raw.Name,
			Shader: raw.Shader,
		}
		for _, state := range raw.States {
			enabled := state.Value == "1"
			switch state.Name {
			case "twosided":
				descriptor.Twosided = enabled
			case "alphablend":
				descriptor.Alphablend = enabled
			}
		}
		for _, sampler := range raw.Samplers {
			path := strings.ReplaceAll(sampler.Path, "\\", "/")
			descriptor.Samplers = append(descriptor.Samplers, Sampler{Name: sampler.Name, Path: path})
			if sampler.Name == "DiffuseMap" && descriptor.DiffusePath == "" {
				descriptor.DiffusePath = path
			}
		}

		descriptors = append(descriptors, descriptor)
	}

	return descriptors, nil
}

// ParseFile reads one .mtl descriptor file.
func ParseFile(path string) ([]Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open descriptor %q", path)
	}
	defer f.Close()

	descriptors, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to parse descriptor %q", path)
	}
	return descriptors, nil
}

// ParseDirectory parses every *.mtl file beside a source model and returns a
// name->descriptor map. Files are visited in sorted name order; a material
// declared again in a later file silently overwrites the earlier one. A file
// that fails to parse only drops its own materials from the map.
func ParseDirectory(dir string) map[string]Descriptor {
	result := make(map[string]Descriptor)

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("WARNING: Failed to list descriptor directory %q: %v", dir, err)
		return result
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".mtl") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		descriptors, err := ParseFile(filepath.Join(dir, name))
		if err != nil {
			log.Printf("WARNING: %v", err)
			continue
		}
		for _, descriptor := range descriptors {
			result[descriptor.Name] = descriptor
		}
	}

	return result
}
