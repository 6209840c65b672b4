/*
Package markdown renders single editor lines of markdown to preview HTML.

Each line of a block editor is rendered on its own. A line may be a heading,
a list item, a fenced code block (which spans several physical lines but is
held by a single editor line) or plain text with inline formatting.
Rendering never fails: malformed markup is rendered as text, and code which
cannot be highlighted is rendered as plaintext.

	html := markdown.Render("## Section **one**")
	// <h2>Section <strong>one</strong></h2>

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package markdown

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mdlines.markdown'.
func tracer() tracing.Trace {
	return tracing.Select("mdlines.markdown")
}
