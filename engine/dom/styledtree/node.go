/*
BSD License

Copyright (c) 2017–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
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

// Package styledtree holds the result of a CSS cascade: a tree of styled
// nodes, each linking an HTML node to its computed properties.
//
// The styled tree mirrors the HTML parse tree. Text and comment nodes are part
// of it and carry no styles of their own.
package styledtree

import (
	"github.com/npillmayer/mdlines/engine/dom/style"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
)

// T traces with key 'mdlines.css'.
func T() tracing.Trace {
	return tracing.Select("mdlines.css")
}

// StyNode is a style node, the building block of the styled tree.
type StyNode struct {
	htmlNode       *html.Node
	parent         *StyNode
	children       []*StyNode
	computedStyles *style.PropertyMap
}

var _ style.Styler = &StyNode{}

// NewNodeForHTMLNode creates a new styled node linked to an HTML node.
func NewNodeForHTMLNode(h *html.Node) *StyNode {
	return &StyNode{htmlNode: h}
}

// HTMLNode gets the HTML DOM node corresponding to this styled node.
func (sn *StyNode) HTMLNode() *html.Node {
	return sn.htmlNode
}

// Parent returns the enclosing styled node, or nil for the root.
func (sn *StyNode) Parent() *StyNode {
	return sn.parent
}

// AddChild appends a child node. The child is detached from a previous
// parent, if any.
func (sn *StyNode) AddChild(ch *StyNode) *StyNode {
	if ch.parent != nil {
		ch.parent.removeChild(ch)
	}
	ch.parent = sn
	sn.children = append(sn.children, ch)
	return sn
}

func (sn *StyNode) removeChild(ch *StyNode) {
	for i, c := range sn.children {
		if c == ch {
			sn.children = append(sn.children[:i], sn.children[i+1:]...)
			ch.parent = nil
			return
		}
	}
}

// ChildCount returns the number of children of sn.
func (sn *StyNode) ChildCount() int {
	return len(sn.children)
}

// Child returns the child at position i.
func (sn *StyNode) Child(i int) (*StyNode, bool) {
	if i < 0 || i >= len(sn.children) {
		return nil, false
	}
	return sn.children[i], true
}

// IndexOf returns the position of ch among the children of sn, or -1.
func (sn *StyNode) IndexOf(ch *StyNode) int {
	for i, c := range sn.children {
		if c == ch {
			return i
		}
	}
	return -1
}

// StylesCascade gets the upwards to the enclosing style set.
func (sn *StyNode) StylesCascade() style.Styler {
	if sn.parent == nil {
		return nil
	}
	return sn.parent
}

// Styles is part of interface style.Styler.
func (sn *StyNode) Styles() *style.PropertyMap {
	return sn.computedStyles
}

// SetStyles sets the styling properties of a styled node.
func (sn *StyNode) SetStyles(styles *style.PropertyMap) {
	sn.computedStyles = styles
}

// IsElement returns true if sn stands for an HTML element.
func (sn *StyNode) IsElement() bool {
	return sn.htmlNode != nil && sn.htmlNode.Type == html.ElementNode
}

// Walk visits sn and its descendents in document order. If f returns false,
// the sub-tree below the node is skipped.
func (sn *StyNode) Walk(f func(*StyNode) bool) {
	if sn == nil || !f(sn) {
		return
	}
	for _, ch := range sn.children {
		ch.Walk(f)
	}
}

// --- Tree ------------------------------------------------------------------

// Tree is a styled tree with a lookup from HTML nodes to styled nodes.
type Tree struct {
	root  *StyNode
	index map[*html.Node]*StyNode
}

// NewTree creates a tree for a root node and indexes all nodes below it.
func NewTree(root *StyNode) *Tree {
	t := &Tree{root: root, index: make(map[*html.Node]*StyNode)}
	root.Walk(func(sn *StyNode) bool {
		if sn.htmlNode != nil {
			t.index[sn.htmlNode] = sn
		}
		return true
	})
	T().Debugf("styled tree with %d nodes", len(t.index))
	return t
}

// Root returns the root node of the tree.
func (t *Tree) Root() *StyNode {
	return t.root
}

// Lookup finds the styled node for an HTML node.
func (t *Tree) Lookup(h *html.Node) (*StyNode, bool) {
	sn, ok := t.index[h]
	return sn, ok
}

// Size returns the number of nodes in the tree.
func (t *Tree) Size() int {
	return len(t.index)
}
