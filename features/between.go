package features

import (
	"errors"
	"fmt"
)

// ErrNoCommonAncestor reports that the two node sets of a Between template do
// not share an ancestor, which includes the case where either selector
// matched no nodes at all.
var ErrNoCommonAncestor = errors.New("no common ancestor between node sets")

// BetweenTemplate renders the tree path connecting two node sets: from the
// first set up to the lowest common ancestor, then down to the second set,
// with the common ancestor counted once. It is the only variant with its own
// Apply; the path cannot be expressed as a single selector, so it is
// reconstructed from the two ancestor chains at apply time.
type BetweenTemplate struct {
	Label string
	sel1  string
	sel2  string
}

// Between builds the relational template connecting f1's and f2's node sets.
func Between(f1, f2 *Template) *BetweenTemplate {
	return &BetweenTemplate{
		Label: "BETWEEN-" + f1.Label + "-" + f2.Label,
		sel1:  f1.Selector,
		sel2:  f2.Selector,
	}
}

// Apply emits exactly one feature holding the connecting path. The root must
// implement AncestorSource; chains come back in root-to-node order, so both
// scans run from the tail (nearest ancestor) toward the root. The first
// shared node seen from the tail is the lowest common ancestor: it is kept on
// the f1 side and skipped on the f2 side.
func (t *BetweenTemplate) Apply(root Root) ([]string, error) {
	src, ok := root.(AncestorSource)
	if !ok {
		return nil, fmt.Errorf("template %s: root %T cannot resolve ancestor chains", t.Label, root)
	}
	p1, err := src.Ancestors(t.sel1)
	if err != nil {
		return nil, fmt.Errorf("template %s: ancestors of %q: %w", t.Label, t.sel1, err)
	}
	p2, err := src.Ancestors(t.sel2)
	if err != nil {
		return nil, fmt.Errorf("template %s: ancestors of %q: %w", t.Label, t.sel2, err)
	}

	set1 := make(map[Node]struct{}, len(p1))
	for _, node := range p1 {
		set1[node] = struct{}{}
	}
	set2 := make(map[Node]struct{}, len(p2))
	for _, node := range p2 {
		set2[node] = struct{}{}
	}

	var b1 []Node
	foundLCA := false
	for i := len(p1) - 1; i >= 0; i-- {
		b1 = append(b1, p1[i])
		if _, ok := set2[p1[i]]; ok {
			foundLCA = true
			break
		}
	}
	if !foundLCA {
		return nil, fmt.Errorf("template %s: %w", t.Label, ErrNoCommonAncestor)
	}

	var b2 []Node
	for i := len(p2) - 1; i >= 0; i-- {
		if _, ok := set1[p2[i]]; ok {
			break
		}
		b2 = append(b2, p2[i])
	}

	path := b1
	for i := len(b2) - 1; i >= 0; i-- {
		path = append(path, b2[i])
	}
	return []string{featString(t.Label, path)}, nil
}
