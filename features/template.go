// Package features generates string-encoded classifier features from a
// document tree. A feature template pairs a structural selector with a
// rendering label; applying it against a tree root yields feature strings of
// the form LABEL[tok_tok_...], one per selected node group. Templates
// compose: Get, Left, Right and Between all derive new templates from
// existing ones.
package features

import (
	"fmt"
	"strings"
)

// Node is one position in the caller's document tree. Implementations must be
// comparable values whose equality means "same tree position" and must stay
// stable across queries: Between intersects node sets coming from two
// independent queries.
type Node interface {
	String() string
}

// Root executes a structural query and returns the matched nodes in document
// order.
type Root interface {
	Select(selector string) ([]Node, error)
}

// AncestorSource resolves the merged ancestor chain of every node a selector
// matches, deduplicated, ordered from the tree root down to the nearest
// ancestor. Between requires the root it is applied to to implement it.
type AncestorSource interface {
	Ancestors(selector string) ([]Node, error)
}

// Applier is the contract shared by all template variants.
type Applier interface {
	Apply(root Root) ([]string, error)
}

// Template is the base feature template. It is immutable after construction;
// Apply holds no state between calls.
type Template struct {
	Label    string
	Selector string
	// Subsets bounds the n-gram generator. Zero means no grouping: the whole
	// selected node set renders as a single feature.
	Subsets int
}

// Apply runs the selector against root and renders one feature string per
// node group. An empty match is not an error: with Subsets unset it yields
// the single feature "LABEL[]", with Subsets set it yields nothing, since
// there are no n-grams over an empty sequence.
func (t *Template) Apply(root Root) ([]string, error) {
	nodes, err := root.Select(t.Selector)
	if err != nil {
		return nil, fmt.Errorf("template %s: select %q: %w", t.Label, t.Selector, err)
	}
	var groups [][]Node
	if t.Subsets == 0 {
		groups = [][]Node{nodes}
	} else {
		groups = subsequences(nodes, t.Subsets)
	}
	feats := make([]string, 0, len(groups))
	for _, group := range groups {
		feats = append(feats, featString(t.Label, group))
	}
	return feats, nil
}

func featString(label string, nodes []Node) string {
	tokens := make([]string, len(nodes))
	for i, node := range nodes {
		tokens[i] = node.String()
	}
	return label + "[" + strings.Join(tokens, "_") + "]"
}
