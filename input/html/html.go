/*
Package html reads HTML input for styling and probing.

Preview markup arrives as fragments, i.e. without a document skeleton.
ParseFragment places a fragment into a minimal document
(html > body > container) so that selectors and inheritance work the way
they do in a browser page.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package html

import (
	"strings"

	"github.com/npillmayer/mdlines/core"
	"github.com/npillmayer/schuko/tracing"
	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// tracer traces with key 'mdlines.css'.
func tracer() tracing.Trace {
	return tracing.Select("mdlines.css")
}

// Container describes the element a fragment is placed into.
type Container struct {
	Tag   atom.Atom
	Class string
	Style string
}

// Fragment is a parsed HTML fragment inside a document skeleton.
type Fragment struct {
	Document  *nethtml.Node // document node
	Body      *nethtml.Node // <body>
	Container *nethtml.Node // parent element of the fragment's top-level nodes
}

// ParseFragment parses HTML source text in the context of a container
// element. A zero Container places the fragment into a plain <div>.
func ParseFragment(src string, container Container) (*Fragment, error) {
	if container.Tag == 0 {
		container.Tag = atom.Div
	}
	doc := &nethtml.Node{Type: nethtml.DocumentNode}
	root := newElement(atom.Html)
	body := newElement(atom.Body)
	c := newElement(container.Tag)
	if container.Class != "" {
		c.Attr = append(c.Attr, nethtml.Attribute{Key: "class", Val: container.Class})
	}
	if container.Style != "" {
		c.Attr = append(c.Attr, nethtml.Attribute{Key: "style", Val: container.Style})
	}
	doc.AppendChild(root)
	root.AppendChild(body)
	body.AppendChild(c)
	nodes, err := nethtml.ParseFragment(strings.NewReader(src), c)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse HTML fragment")
	}
	for _, n := range nodes {
		c.AppendChild(n)
	}
	tracer().Debugf("HTML fragment with %d top-level nodes", len(nodes))
	return &Fragment{Document: doc, Body: body, Container: c}, nil
}

// InnerHTML renders the children of the fragment's container.
func (f *Fragment) InnerHTML() string {
	var b strings.Builder
	for n := f.Container.FirstChild; n != nil; n = n.NextSibling {
		if err := nethtml.Render(&b, n); err != nil {
			tracer().Errorf("rendering HTML fragment: %v", err)
		}
	}
	return b.String()
}

func newElement(tag atom.Atom) *nethtml.Node {
	return &nethtml.Node{Type: nethtml.ElementNode, DataAtom: tag, Data: tag.String()}
}
