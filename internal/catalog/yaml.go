package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

//go:embed data/workouts.yaml
var defaultYAML []byte

// Default returns the dataset compiled into the binary.
func Default() (*Catalog, error) {
	cat, err := LoadYAML(bytes.NewReader(defaultYAML))
	if err != nil {
		return nil, fmt.Errorf("loading embedded catalog: %w", err)
	}
	return cat, nil
}

// LoadYAML decodes a catalog document of the form
//
//	<type>:
//	  <subcategory>:
//	    - name: ...
//
// Mapping order in the document is the catalog's declaration order, so the
// document is walked as a yaml.Node tree rather than decoded into Go maps.
func LoadYAML(r io.Reader) (*Catalog, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("parsing catalog yaml: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("parsing catalog yaml: empty document")
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parsing catalog yaml: line %d: top level must be a mapping of types", doc.Line)
	}

	var buckets []Bucket
	for i := 0; i+1 < len(doc.Content); i += 2 {
		typeKey, typeVal := doc.Content[i], doc.Content[i+1]
		if typeVal.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("parsing catalog yaml: line %d: type %q must map subcategories", typeVal.Line, typeKey.Value)
		}
		bucket := Bucket{Type: typeKey.Value}
		for j := 0; j+1 < len(typeVal.Content); j += 2 {
			subKey, subVal := typeVal.Content[j], typeVal.Content[j+1]
			var workouts []WorkoutRecord
			if err := subVal.Decode(&workouts); err != nil {
				return nil, fmt.Errorf("parsing catalog yaml: %s/%s: %w", typeKey.Value, subKey.Value, err)
			}
			bucket.Subcategories = append(bucket.Subcategories, Subcategory{Name: subKey.Value, Workouts: workouts})
		}
		buckets = append(buckets, bucket)
	}

	return New(buckets)
}

// WriteYAML encodes the catalog in the same layout LoadYAML reads.
func (c *Catalog) WriteYAML(w io.Writer) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, b := range c.buckets {
		subs := &yaml.Node{Kind: yaml.MappingNode}
		for _, sub := range b.Subcategories {
			var list yaml.Node
			if err := list.Encode(sub.Workouts); err != nil {
				return fmt.Errorf("encoding %s/%s: %w", b.Type, sub.Name, err)
			}
			subs.Content = append(subs.Content, scalar(sub.Name), &list)
		}
		doc.Content = append(doc.Content, scalar(b.Type), subs)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{doc}}); err != nil {
		return fmt.Errorf("writing catalog yaml: %w", err)
	}
	return enc.Close()
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}
