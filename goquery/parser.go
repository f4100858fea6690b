// Package goquery provides a tropy.Parser backed by goquery.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/tropy"
)

// Ensure Parser implements tropy.Parser at compile time.
var _ tropy.Parser = (*Parser)(nil)

// Parser parses HTML into goquery-backed documents.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse wraps html into a traversable document. Malformed markup is
// tolerated the same way browsers tolerate it.
func (p *Parser) Parse(url, html string) (tropy.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, tropy.Errorf(tropy.EPARSE, "failed to parse HTML for url:%s: %v", url, err)
	}
	return &Document{
		Node:   Node{sel: doc.Selection},
		url:    url,
		source: html,
	}, nil
}

// Ensure Document implements tropy.Document at compile time.
var _ tropy.Document = (*Document)(nil)

// Document is a parsed page.
type Document struct {
	Node
	url    string
	source string
}

// URL returns the address the document was fetched from.
func (d *Document) URL() string { return d.url }

// Source returns the raw HTML the document was parsed from.
func (d *Document) Source() string { return d.source }

// Ensure Node implements tropy.Node at compile time.
var _ tropy.Node = Node{}

// Node wraps a goquery selection of a single element.
type Node struct {
	sel *goquery.Selection
}

// Find returns the first descendant with the given tag and class.
func (n Node) Find(tag, class string) (tropy.Node, bool) {
	return first(n.sel.Find(selector(tag, "."+class)))
}

// FindByID returns the first descendant with the given tag and id.
func (n Node) FindByID(tag, id string) (tropy.Node, bool) {
	return first(n.sel.Find(selector(tag, "#"+id)))
}

// FindAll returns every descendant with the given tag and class whose attr
// attribute matches pattern. A nil pattern only requires the attribute.
func (n Node) FindAll(tag, class, attr string, pattern *regexp.Regexp) []tropy.Node {
	var nodes []tropy.Node
	n.sel.Find(selector(tag, "."+class)).Each(func(_ int, s *goquery.Selection) {
		v, ok := s.Attr(attr)
		if !ok {
			return
		}
		if pattern != nil && !pattern.MatchString(v) {
			return
		}
		nodes = append(nodes, Node{sel: s})
	})
	return nodes
}

// Attr returns the value of the named attribute.
func (n Node) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}

// Text returns the combined text of the node and its descendants.
func (n Node) Text() string {
	return n.sel.Text()
}

// HTML returns the inner HTML of the node.
func (n Node) HTML() string {
	html, err := n.sel.Html()
	if err != nil {
		return ""
	}
	return html
}

func first(sel *goquery.Selection) (tropy.Node, bool) {
	if sel.Length() == 0 {
		return nil, false
	}
	return Node{sel: sel.First()}, true
}

// selector joins a tag with a class or id qualifier. Empty parts match anything.
func selector(tag, qualifier string) string {
	if qualifier == "." || qualifier == "#" {
		qualifier = ""
	}
	if tag == "" && qualifier == "" {
		return "*"
	}
	return tag + qualifier
}
