package parser

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Node is the abstract page-tree contract the parser operates on.
type Node interface {
	// Text returns the node's text content with surrounding whitespace
	// trimmed.
	Text() string
	// Attr returns the named attribute, or "" if absent.
	Attr(key string) string
	// Find returns all descendants matching the CSS selector, in
	// document order.
	Find(selector string) []Node
	// First returns the first descendant matching the selector.
	First(selector string) (Node, bool)
}

// goqueryNode adapts a goquery selection to the Node contract.
type goqueryNode struct {
	sel *goquery.Selection
}

// ParseDocument parses rendered HTML into a page tree.
func ParseDocument(html string) (Node, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return &goqueryNode{sel: doc.Selection}, nil
}

func (n *goqueryNode) Text() string {
	return strings.TrimSpace(n.sel.Text())
}

func (n *goqueryNode) Attr(key string) string {
	val, _ := n.sel.Attr(key)
	return val
}

func (n *goqueryNode) Find(selector string) []Node {
	var nodes []Node
	n.sel.Find(selector).Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, &goqueryNode{sel: s})
	})
	return nodes
}

func (n *goqueryNode) First(selector string) (Node, bool) {
	s := n.sel.Find(selector).First()
	if s.Length() == 0 {
		return nil, false
	}
	return &goqueryNode{sel: s}, true
}
