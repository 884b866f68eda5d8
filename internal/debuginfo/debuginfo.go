// Package debuginfo holds the composite type descriptions that field
// names are recovered from.
package debuginfo

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

var ErrDuplicateType = errors.New("duplicate type")

// Member is one field of a composite, in declaration order.
type Member struct {
	Name string `yaml:"name"`
	Type string `yaml:"type,omitempty"`
}

// Composite describes a record type.
type Composite struct {
	Name    string   `yaml:"name"`
	Members []Member `yaml:"members"`
}

// File is the on-disk layout:
//
//	types:
//	  - name: point
//	    members:
//	      - name: x
//	      - name: y
type File struct {
	Types []Composite `yaml:"types"`
}

// Table indexes composites by type name.
type Table struct {
	composites map[string]*Composite
}

// NewTable builds a table. Later duplicates are rejected.
func NewTable(composites ...Composite) (*Table, error) {
	t := &Table{composites: make(map[string]*Composite, len(composites))}
	for i := range composites {
		c := composites[i]
		if _, ok := t.composites[c.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateType, c.Name)
		}
		t.composites[c.Name] = &c
	}
	return t, nil
}

// Lookup returns the composite called name. A nil table has no entries.
func (t *Table) Lookup(name string) (*Composite, bool) {
	if t == nil {
		return nil, false
	}
	c, ok := t.composites[name]
	return c, ok
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.composites)
}

// Decode reads a table in the File layout.
func Decode(r io.Reader) (*Table, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error decoding debug info: %w", err)
	}
	return NewTable(f.Types...)
}

// Parse is Decode over a byte slice.
func Parse(data []byte) (*Table, error) {
	return Decode(bytes.NewReader(data))
}

// Load reads a debug info file.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Composites returns every composite, ordered by name.
func (t *Table) Composites() []Composite {
	if t == nil {
		return nil
	}
	names := make([]string, 0, len(t.composites))
	for name := range t.composites {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]Composite, len(names))
	for i, name := range names {
		out[i] = *t.composites[name]
	}
	return out
}
