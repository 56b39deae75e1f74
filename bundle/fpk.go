package bundle

import (
	"encoding/xml"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

type fpkEntry struct {
	FilePath string `xml:"FilePath,attr"`
}

type fpkArchive struct {
	XMLName    xml.Name   `xml:"ArchiveFile"`
	XSI        string     `xml:"xmlns:xsi,attr"`
	XSD        string     `xml:"xmlns:xsd,attr"`
	Type       string     `xml:"xsi:type,attr"`
	Name       string     `xml:"Name,attr"`
	FpkType    string     `xml:"FpkType,attr"`
	Entries    []fpkEntry `xml:"Entries>Entry"`
	References struct{}   `xml:"References"`
}

// WriteFpkManifest writes the <name>.fpk.xml archive manifest listing the
// files packed into one output bundle.
func WriteFpkManifest(dir, name string, files []string) error {
	archive := fpkArchive{
		XSI:     "http://www.w3.org/2001/XMLSchema-instance",
		XSD:     "http://www.w3.org/2001/XMLSchema",
		Type:    "FpkFile",
		Name:    name + ".fpk",
		FpkType: "Fpk",
	}
	for _, file := range files {
		archive.Entries = append(archive.Entries, fpkEntry{FilePath: file})
	}

	data, err := xml.MarshalIndent(&archive, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "Failed to marshal fpk manifest %q", name)
	}
	data = append([]byte(xml.Header), data...)
	data = append(data, '\n')

	path := filepath.Join(dir, name+".fpk.xml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "Failed to write %q", path)
	}
	return nil
}
