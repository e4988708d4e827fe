package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/chiplet"
)

// Files names the seven input documents of an evaluation. Library lists
// extra catalog documents merged after the five catalog files.
type Files struct {
	IO       string
	Layer    string
	Wafer    string
	Assembly string
	Test     string
	Netlist  string
	Design   string
	Library  []string
}

// Catalogs returns the catalog paths in merge order. Empty and repeated
// paths are dropped, so one file may serve several roles.
func (f Files) Catalogs() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range append([]string{f.IO, f.Layer, f.Wafer, f.Assembly, f.Test}, f.Library...) {
		if p == "" {
			continue
		}
		key := filepath.Clean(p)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}

// All returns every input path: catalogs, netlist, then design.
func (f Files) All() []string {
	return append(f.Catalogs(), f.Netlist, f.Design)
}

// Document is one parsed YAML file.
type Document struct {
	Path string
	Root *yaml.Node
}

// ParseDocument parses data; path is used only in error messages.
func ParseDocument(path string, data []byte) (Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return Document{}, docErrorf(path, "parse", fmt.Errorf("%w: %v", ErrDocument, err))
	}
	return Document{Path: path, Root: &root}, nil
}

// ReadDocument reads and parses the file at path.
func ReadDocument(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ParseDocument(path, data)
}

// decode fills v from the document. An empty document leaves v untouched.
func (d Document) decode(v any) error {
	if d.Root == nil || d.Root.Kind == 0 {
		return nil
	}
	if err := d.Root.Decode(v); err != nil {
		if errors.Is(err, chiplet.ErrConfiguration) {
			return docErrorf(d.Path, "decode", err)
		}
		return docErrorf(d.Path, "decode", fmt.Errorf("%w: %v", ErrDocument, err))
	}
	return nil
}

func (d Document) clone() Document {
	return Document{Path: d.Path, Root: cloneNode(d.Root, make(map[*yaml.Node]*yaml.Node))}
}

// cloneNode deep-copies a node tree; aliases keep pointing at the copy of
// their anchor.
func cloneNode(n *yaml.Node, seen map[*yaml.Node]*yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}
	if c, ok := seen[n]; ok {
		return c
	}
	c := *n
	seen[n] = &c
	c.Alias = cloneNode(n.Alias, seen)
	if n.Content != nil {
		c.Content = make([]*yaml.Node, len(n.Content))
		for i, ch := range n.Content {
			c.Content[i] = cloneNode(ch, seen)
		}
	}
	return &c
}

// Documents is the parsed, not yet decoded, input set.
type Documents struct {
	Catalogs []Document
	Netlist  Document
	Design   Document
}

// Read parses every file named by files.
func Read(files Files) (*Documents, error) {
	if files.Netlist == "" || files.Design == "" {
		return nil, fmt.Errorf("%w: netlist and design files", ErrRequired)
	}
	docs := &Documents{}
	for _, p := range files.Catalogs() {
		d, err := ReadDocument(p)
		if err != nil {
			return nil, err
		}
		docs.Catalogs = append(docs.Catalogs, d)
	}
	var err error
	if docs.Netlist, err = ReadDocument(files.Netlist); err != nil {
		return nil, err
	}
	if docs.Design, err = ReadDocument(files.Design); err != nil {
		return nil, err
	}
	return docs, nil
}

// Clone returns a deep copy whose trees may be modified independently.
func (d *Documents) Clone() *Documents {
	c := &Documents{Netlist: d.Netlist.clone(), Design: d.Design.clone()}
	c.Catalogs = make([]Document, len(d.Catalogs))
	for i, doc := range d.Catalogs {
		c.Catalogs[i] = doc.clone()
	}
	return c
}

// All returns every document: catalogs, netlist, then design.
func (d *Documents) All() []Document {
	return append(append([]Document(nil), d.Catalogs...), d.Netlist, d.Design)
}

// LibraryFiles lists every *.yaml and *.yml file below dir, sorted, as paths
// rooted at dir. The result is meant for Files.Library.
func LibraryFiles(dir string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), "**/*.{yaml,yml}", doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("library %s: %w", dir, err)
	}
	if len(matches) == 0 {
		if _, err := fs.Stat(os.DirFS(dir), "."); err != nil {
			return nil, fmt.Errorf("library %s: %w", dir, err)
		}
	}
	sort.Strings(matches)
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = filepath.Join(dir, filepath.FromSlash(m))
	}
	return out, nil
}
