package tropy

import "regexp"

// Node is an element of a parsed HTML document.
type Node interface {
	// Find returns the first descendant with the given tag and class.
	Find(tag, class string) (Node, bool)

	// FindByID returns the first descendant with the given tag and id.
	FindByID(tag, id string) (Node, bool)

	// FindAll returns every descendant with the given tag and class whose
	// attr attribute matches pattern.
	FindAll(tag, class, attr string, pattern *regexp.Regexp) []Node

	// Attr returns the value of the named attribute.
	Attr(name string) (string, bool)

	// Text returns the combined text of the node and its descendants.
	Text() string

	// HTML returns the inner HTML of the node.
	HTML() string
}

// Document is a parsed page. Its root node spans the whole page.
type Document interface {
	Node

	// URL returns the address the document was fetched from.
	URL() string

	// Source returns the raw HTML the document was parsed from.
	Source() string
}

// Parser turns raw HTML into a traversable Document.
// Malformed or empty HTML yields a document with no matches, not an error.
type Parser interface {
	Parse(url, html string) (Document, error)
}
