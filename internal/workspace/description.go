package workspace

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"slices"
)

// DescriptionFile is the project description file name.
const DescriptionFile = ".project"

// Description is the content of a project's .project file.
type Description struct {
	XMLName   xml.Name       `xml:"projectDescription"`
	Name      string         `xml:"name"`
	Comment   string         `xml:"comment"`
	Projects  []string       `xml:"projects>project"`
	BuildSpec []BuildCommand `xml:"buildSpec>buildCommand"`
	Natures   []string       `xml:"natures>nature"`
}

// BuildCommand is one builder of the build spec.
type BuildCommand struct {
	Name      string `xml:"name"`
	Arguments string `xml:"arguments"`
}

// NatureIDs returns the nature ids in declaration order.
func (d *Description) NatureIDs() []string {
	return slices.Clone(d.Natures)
}

// SetNatureIDs replaces the nature ids.
func (d *Description) SetNatureIDs(ids ...string) {
	d.Natures = slices.Clone(ids)
}

// HasNature reports whether id is among the natures.
func (d *Description) HasNature(id string) bool {
	return slices.Contains(d.Natures, id)
}

// AddBuilder appends a builder unless one with the same name is present.
func (d *Description) AddBuilder(name string) {
	for _, cmd := range d.BuildSpec {
		if cmd.Name == name {
			return
		}
	}
	d.BuildSpec = append(d.BuildSpec, BuildCommand{Name: name})
}

// HasBuilder reports whether the build spec contains the named builder.
func (d *Description) HasBuilder(name string) bool {
	for _, cmd := range d.BuildSpec {
		if cmd.Name == name {
			return true
		}
	}
	return false
}

func (d *Description) clone() *Description {
	c := *d
	c.Projects = slices.Clone(d.Projects)
	c.BuildSpec = slices.Clone(d.BuildSpec)
	c.Natures = slices.Clone(d.Natures)
	return &c
}

func marshalDescription(d *Description) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "\t")
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("failed to encode project description: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func unmarshalDescription(data []byte) (*Description, error) {
	var d Description
	if err := xml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to decode project description: %w", err)
	}
	return &d, nil
}
