/*
Package xpathadapter implements an xpath.NodeNavigator over a styled tree.

We use this library for XPath queries:

	github.com/antchfx/xpath

Attributes of an element are visited as attribute nodes; text nodes report
their data as value, elements their inner text.

BSD License

Copyright (c) 2017–18, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of Norbert Pillmayer nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/
package xpathadapter

import (
	"errors"
	"strings"

	"github.com/antchfx/xpath"
	"github.com/npillmayer/mdlines/core"
	"github.com/npillmayer/mdlines/engine/dom/styledtree"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
)

// T traces with key 'mdlines.css'.
func T() tracing.Trace {
	return tracing.Select("mdlines.css")
}

// NodeNavigator navigates a styled tree for XPath evaluation.
type NodeNavigator struct {
	root, current *styledtree.StyNode
	attr          int // attributes index, -1 for the element itself
}

var _ xpath.NodeNavigator = &NodeNavigator{}

// NewNavigator creates a new xpath.NodeNavigator for a styled tree.
func NewNavigator(node *styledtree.StyNode) *NodeNavigator {
	return &NodeNavigator{
		current: node,
		root:    node,
		attr:    -1,
	}
}

// CurrentNode returns the styled node a navigator is positioned on.
func CurrentNode(nav xpath.NodeNavigator) (*styledtree.StyNode, error) {
	mynav, ok := nav.(*NodeNavigator)
	if !ok {
		return nil, errors.New("navigator is not of type xpathadapter.NodeNavigator")
	}
	return mynav.current, nil
}

// Select evaluates an XPath expression starting at root and returns the
// element nodes selected, in document order.
func Select(root *styledtree.StyNode, expr string) ([]*styledtree.StyNode, error) {
	x, err := xpath.Compile(expr)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "illegal xpath expression %q", expr)
	}
	var nodes []*styledtree.StyNode
	iter := x.Select(NewNavigator(root))
	for iter.MoveNext() {
		sn, err := CurrentNode(iter.Current())
		if err != nil {
			return nodes, core.WrapError(err, core.EINTERNAL, "xpath selection")
		}
		if sn != nil && sn.IsElement() {
			nodes = append(nodes, sn)
		}
	}
	T().Debugf("xpath %q selected %d nodes", expr, len(nodes))
	return nodes, nil
}

func (nav *NodeNavigator) NodeType() xpath.NodeType {
	h := nav.current.HTMLNode()
	switch h.Type {
	case html.CommentNode:
		return xpath.CommentNode
	case html.TextNode:
		return xpath.TextNode
	case html.ElementNode:
		if nav.attr != -1 {
			return xpath.AttributeNode
		}
		return xpath.ElementNode
	}
	// document and doctype nodes
	return xpath.RootNode
}

func (nav *NodeNavigator) LocalName() string {
	if nav.attr != -1 {
		return nav.current.HTMLNode().Attr[nav.attr].Key
	}
	return nav.current.HTMLNode().Data
}

func (*NodeNavigator) Prefix() string {
	return ""
}

func (nav *NodeNavigator) Value() string {
	h := nav.current.HTMLNode()
	switch h.Type {
	case html.ElementNode:
		if nav.attr != -1 {
			return h.Attr[nav.attr].Val
		}
		return innerText(h)
	case html.TextNode:
		return h.Data
	case html.DocumentNode:
		return innerText(h)
	}
	return ""
}

func (nav *NodeNavigator) Copy() xpath.NodeNavigator {
	n := *nav
	return &n
}

func (nav *NodeNavigator) MoveToRoot() {
	nav.current = nav.root
	nav.attr = -1
}

func (nav *NodeNavigator) MoveToParent() bool {
	if nav.attr != -1 {
		nav.attr = -1 // move from attributes to element
		return true
	}
	if nav.current == nav.root || nav.current.Parent() == nil {
		return false
	}
	nav.current = nav.current.Parent()
	return true
}

func (nav *NodeNavigator) MoveToNextAttribute() bool {
	if nav.current.HTMLNode().Type != html.ElementNode {
		return false
	}
	if nav.attr >= len(nav.current.HTMLNode().Attr)-1 {
		return false
	}
	nav.attr++
	return true
}

func (nav *NodeNavigator) MoveToChild() bool {
	if nav.attr != -1 {
		return false
	}
	if child, ok := nav.current.Child(0); ok {
		nav.current = child
		return true
	}
	return false
}

func (nav *NodeNavigator) MoveToFirst() bool {
	return nav.moveToSibling(func(int) int { return 0 })
}

func (nav *NodeNavigator) MoveToNext() bool {
	return nav.moveToSibling(func(i int) int { return i + 1 })
}

func (nav *NodeNavigator) MoveToPrevious() bool {
	return nav.moveToSibling(func(i int) int { return i - 1 })
}

// moveToSibling moves to the sibling at position pos(i), where i is the
// position of the current node within its parent.
func (nav *NodeNavigator) moveToSibling(pos func(int) int) bool {
	if nav.attr != -1 || nav.current == nav.root {
		return false
	}
	parent := nav.current.Parent()
	if parent == nil {
		return false
	}
	i := parent.IndexOf(nav.current)
	j := pos(i)
	if j == i {
		return false
	}
	sibling, ok := parent.Child(j)
	if ok {
		nav.current = sibling
	}
	return ok
}

func (nav *NodeNavigator) MoveTo(other xpath.NodeNavigator) bool {
	n, ok := other.(*NodeNavigator)
	if !ok || n.root != nav.root {
		return false
	}
	nav.current = n.current
	nav.attr = n.attr
	return true
}

func (nav *NodeNavigator) String() string {
	return nav.Value()
}

// innerText returns the text between the start and end tags of an element.
func innerText(n *html.Node) string {
	var b strings.Builder
	var output func(*html.Node)
	output = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			return
		case html.CommentNode:
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			output(child)
		}
	}
	output(n)
	return b.String()
}
