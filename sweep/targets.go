package sweep

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/chiplet/die"
	"github.com/katalvlaran/chiplet/loader"
)

// references holds, per catalog section, the record names the design uses.
type references map[string]map[string]bool

func referencesOf(in *loader.Inputs) references {
	refs := make(references)
	for _, s := range loader.Sections {
		refs[s] = make(map[string]bool)
	}
	var visit func(s *die.Spec)
	visit = func(s *die.Spec) {
		refs[loader.SectionWafers][s.WaferProcess] = true
		refs[loader.SectionAssemblies][s.AssemblyProcess] = true
		refs[loader.SectionTests][s.TestProcess] = true
		for _, e := range s.Stackup {
			refs[loader.SectionLayers][e.Layer] = true
		}
		for i := range s.Face {
			visit(&s.Face[i])
		}
		for i := range s.Back {
			visit(&s.Back[i])
		}
	}
	visit(&in.Spec)
	for _, t := range in.Fabric.Types() {
		refs[loader.SectionIOs][t] = true
	}
	return refs
}

// scalar is one numeric leaf of a document.
type scalar struct {
	path string
	key  string
	node *yaml.Node
}

// target is a scalar chosen for a trial. doc indexes Documents.All() and
// ordinal the scalar within that document, so the same leaf can be found
// again in a deep copy.
type target struct {
	doc     int
	ordinal int
	path    string
	base    float64
	integer bool
}

// collectTargets lists every perturbable scalar in document order.
func collectTargets(docs *loader.Documents, refs references) []target {
	var out []target
	for di, doc := range docs.All() {
		for oi, s := range scalars(doc, di < len(docs.Catalogs), refs) {
			v, err := strconv.ParseFloat(s.node.Value, 64)
			if err != nil {
				continue
			}
			out = append(out, target{
				doc:     di,
				ordinal: oi,
				path:    s.path,
				base:    v,
				integer: loader.IsIntegerKey(s.key),
			})
		}
	}
	return out
}

// scalars returns the numeric leaves of doc. For a catalog only records
// named in refs are visited.
func scalars(doc loader.Document, catalog bool, refs references) []scalar {
	if doc.Root == nil || len(doc.Root.Content) == 0 {
		return nil
	}
	root := doc.Root.Content[0]
	prefix := filepath.Base(doc.Path) + ":"
	var out []scalar
	if !catalog {
		walk(root, prefix, "", &out)
		return out
	}
	if root.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		section, seq := root.Content[i].Value, root.Content[i+1]
		if seq.Kind != yaml.SequenceNode || refs[section] == nil {
			continue
		}
		for _, entry := range seq.Content {
			name := field(entry, loader.KeyField(section))
			if !refs[section][name] {
				continue
			}
			walk(entry, fmt.Sprintf("%s%s[%s]", prefix, section, name), "", &out)
		}
	}
	return out
}

func walk(n *yaml.Node, path, key string, out *[]scalar) {
	switch n.Kind {
	case yaml.ScalarNode:
		if t := n.ShortTag(); t == "!!int" || t == "!!float" {
			*out = append(*out, scalar{path: path, key: key, node: n})
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i].Value
			walk(n.Content[i+1], join(path, k), k, out)
		}
	case yaml.SequenceNode:
		for i, c := range n.Content {
			label := field(c, "name")
			if label == "" {
				label = strconv.Itoa(i)
			}
			walk(c, fmt.Sprintf("%s[%s]", path, label), key, out)
		}
	}
}

func join(path, key string) string {
	if strings.HasSuffix(path, ":") {
		return path + key
	}
	return path + "." + key
}

// field returns the scalar value of key in mapping n, or "".
func field(n *yaml.Node, key string) string {
	if n.Kind != yaml.MappingNode {
		return ""
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key && n.Content[i+1].Kind == yaml.ScalarNode {
			return n.Content[i+1].Value
		}
	}
	return ""
}

// set writes v into the scalar, retagging it so the decoder accepts the new text.
func set(n *yaml.Node, v float64, integer bool) {
	n.Style &^= yaml.TaggedStyle
	if integer {
		n.Tag = "!!int"
		n.Value = strconv.FormatInt(int64(v), 10)
		return
	}
	n.Tag = "!!float"
	n.Value = strconv.FormatFloat(v, 'g', -1, 64)
}
