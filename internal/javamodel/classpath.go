package javamodel

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"path"
	"strings"
)

// ClasspathFile is the classpath file name inside a project.
const ClasspathFile = ".classpath"

// EntryKind is the kind of a classpath entry.
type EntryKind string

const (
	KindLibrary   EntryKind = "lib"
	KindSource    EntryKind = "src"
	KindContainer EntryKind = "con"
	kindOutput    EntryKind = "output"
)

// ClasspathEntry is one raw classpath entry.
//
// Path semantics by kind:
//   - lib: absolute file system path of a jar or class folder
//   - src: workspace full path of a source folder, e.g. "/Demo/src"
//   - con: container id, e.g. "org.eclipse.jdt.launching.JRE_CONTAINER"
type ClasspathEntry struct {
	Kind EntryKind
	Path string
}

// NewLibraryEntry returns a library entry for a jar path.
func NewLibraryEntry(path string) ClasspathEntry {
	return ClasspathEntry{Kind: KindLibrary, Path: path}
}

// NewSourceEntry returns a source entry for a workspace folder path.
func NewSourceEntry(fullPath string) ClasspathEntry {
	return ClasspathEntry{Kind: KindSource, Path: fullPath}
}

// NewContainerEntry returns a container entry.
func NewContainerEntry(id string) ClasspathEntry {
	return ClasspathEntry{Kind: KindContainer, Path: id}
}

// String renders the entry as "kind:path".
func (e ClasspathEntry) String() string {
	return fmt.Sprintf("%s:%s", e.Kind, e.Path)
}

type classpathDocument struct {
	XMLName xml.Name           `xml:"classpath"`
	Entries []classpathElement `xml:"classpathentry"`
}

type classpathElement struct {
	Kind string `xml:"kind,attr"`
	Path string `xml:"path,attr"`
}

// encodeClasspath writes entries and output location. Paths inside the
// project are stored project-relative, as Eclipse does.
func encodeClasspath(projectPath string, entries []ClasspathEntry, output string) ([]byte, error) {
	doc := classpathDocument{}
	for _, e := range entries {
		p := e.Path
		if e.Kind == KindSource {
			p = toProjectRelative(projectPath, p)
		}
		doc.Entries = append(doc.Entries, classpathElement{Kind: string(e.Kind), Path: p})
	}
	doc.Entries = append(doc.Entries, classpathElement{
		Kind: string(kindOutput),
		Path: toProjectRelative(projectPath, output),
	})

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "\t")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode classpath: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func decodeClasspath(projectPath string, data []byte) ([]ClasspathEntry, string, error) {
	var doc classpathDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, "", fmt.Errorf("failed to decode classpath: %w", err)
	}

	var (
		entries []ClasspathEntry
		output  string
	)
	for _, el := range doc.Entries {
		switch EntryKind(el.Kind) {
		case kindOutput:
			output = toFullPath(projectPath, el.Path)
		case KindSource:
			entries = append(entries, NewSourceEntry(toFullPath(projectPath, el.Path)))
		case KindLibrary, KindContainer:
			entries = append(entries, ClasspathEntry{Kind: EntryKind(el.Kind), Path: el.Path})
		default:
			return nil, "", fmt.Errorf("unknown classpath entry kind %q", el.Kind)
		}
	}
	return entries, output, nil
}

func toProjectRelative(projectPath, fullPath string) string {
	if rel, ok := strings.CutPrefix(fullPath, projectPath+"/"); ok {
		return rel
	}
	return fullPath
}

func toFullPath(projectPath, stored string) string {
	if strings.HasPrefix(stored, "/") {
		return stored
	}
	return path.Join(projectPath, stored)
}
