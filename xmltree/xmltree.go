// Package xmltree adapts an XML parse tree to the query contracts the
// feature templates expect. Queries run through the antchfx XPath engine;
// results are normalized to document order before they reach the templates,
// since the template contracts (sibling windows, ancestor scans) assume it.
package xmltree

import (
	"text2phenotype.com/treefeat/features"
	"fmt"
	"github.com/antchfx/xmlquery"
	"io"
	"sort"
	"strings"
)

// DefaultPrintAttr is the attribute rendered as an element's token form.
const DefaultPrintAttr = "word"

// Document is a parsed tree plus the document-order index built over it.
// The tree is read-only after Parse; Documents are safe for concurrent
// queries.
type Document struct {
	root  *xmlquery.Node
	order map[*xmlquery.Node]int

	// PrintAttr names the attribute used as an element's printable form.
	// Elements without it render as their tag name.
	PrintAttr string
}

// Parse reads an XML document and indexes every node in document order.
func Parse(r io.Reader) (*Document, error) {
	root, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse document tree: %w", err)
	}
	doc := &Document{
		root:      root,
		order:     make(map[*xmlquery.Node]int),
		PrintAttr: DefaultPrintAttr,
	}
	index := 0
	var walk func(n *xmlquery.Node)
	walk = func(n *xmlquery.Node) {
		doc.order[n] = index
		index++
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)
	return doc, nil
}

// Select runs selector against the document root and returns the matches in
// document order. Engine errors (malformed selectors included) are returned
// unchanged.
func (doc *Document) Select(selector string) ([]features.Node, error) {
	matched, err := xmlquery.QueryAll(doc.root, selector)
	if err != nil {
		return nil, err
	}
	return doc.normalize(matched), nil
}

// Ancestors returns the merged ancestor chain of every node selector
// matches, deduplicated, from the document root down to the nearest
// ancestor. The matched nodes themselves are not part of the chain.
func (doc *Document) Ancestors(selector string) ([]features.Node, error) {
	matched, err := xmlquery.QueryAll(doc.root, selector)
	if err != nil {
		return nil, err
	}
	seen := make(map[*xmlquery.Node]struct{})
	var chain []*xmlquery.Node
	for _, n := range matched {
		for p := n.Parent; p != nil; p = p.Parent {
			if p.Type != xmlquery.ElementNode {
				continue
			}
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			chain = append(chain, p)
		}
	}
	sort.Slice(chain, func(i, j int) bool {
		return doc.order[chain[i]] < doc.order[chain[j]]
	})
	return doc.wrap(chain), nil
}

// normalize restores document order over element results. Attribute steps
// make the engine materialize fresh nodes each query; those are not in the
// order index and keep the engine's emission order, which already follows
// their owner elements.
func (doc *Document) normalize(matched []*xmlquery.Node) []features.Node {
	for _, n := range matched {
		if _, ok := doc.order[n]; !ok {
			return doc.wrap(matched)
		}
	}
	seen := make(map[*xmlquery.Node]struct{}, len(matched))
	uniq := make([]*xmlquery.Node, 0, len(matched))
	for _, n := range matched {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		uniq = append(uniq, n)
	}
	sort.SliceStable(uniq, func(i, j int) bool {
		return doc.order[uniq[i]] < doc.order[uniq[j]]
	})
	return doc.wrap(uniq)
}

func (doc *Document) wrap(matched []*xmlquery.Node) []features.Node {
	nodes := make([]features.Node, len(matched))
	for i, n := range matched {
		nodes[i] = Node{n: n, doc: doc}
	}
	return nodes
}

// Node is one tree position. Values are comparable: two Nodes are equal
// exactly when they reference the same underlying position, which is what
// LCA detection in the Between template relies on.
type Node struct {
	n   *xmlquery.Node
	doc *Document
}

// String renders the node's token form: attribute results render as their
// value, elements as their print attribute (tag name when absent).
func (nd Node) String() string {
	switch nd.n.Type {
	case xmlquery.AttributeNode:
		return nd.n.InnerText()
	case xmlquery.TextNode, xmlquery.CharDataNode:
		return strings.TrimSpace(nd.n.Data)
	default:
		if value := nd.n.SelectAttr(nd.doc.PrintAttr); value != "" {
			return value
		}
		return nd.n.Data
	}
}
