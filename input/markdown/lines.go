package markdown

import (
	"regexp"
	"strings"
)

// Fence is the marker opening and closing a code block.
const Fence = "```"

var (
	fenceLanguage = regexp.MustCompile("^```(\\w*)")
	listItem      = regexp.MustCompile(`^( *)(-|\*|\+)\s(.*)`)
	indentation   = regexp.MustCompile(`(?s)^( *)(.*)`)
)

// IsCodeBlockFence returns true if text, without surrounding whitespace,
// starts with a code fence.
func IsCodeBlockFence(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), Fence)
}

// CodeBlockLanguage returns the language tag of a code fence. A fence without
// a tag has language "plaintext". If text is not a fence, ok is false.
func CodeBlockLanguage(text string) (lang string, ok bool) {
	m := fenceLanguage.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return "", false
	}
	if m[1] == "" {
		return "plaintext", true
	}
	return m[1], true
}

// ListItem is the result of parsing a line as a list item.
type ListItem struct {
	Indent     int    // indentation level, two spaces per level
	Bullet     string // "-", "*" or "+"
	Content    string // text after the bullet
	IsListItem bool
}

// ParseListItem parses a line of the form
//
//     <spaces> <bullet> <whitespace> <content>
//
// Content stops at the first newline. For text which is not a list item,
// the returned item has IsListItem == false and holds text as its content.
func ParseListItem(text string) ListItem {
	m := listItem.FindStringSubmatch(text)
	if m == nil {
		return ListItem{Content: text}
	}
	return ListItem{
		Indent:     len(m[1]) / 2,
		Bullet:     m[2],
		Content:    m[3],
		IsListItem: true,
	}
}

// ParseIndentation splits text into an indentation level (two spaces per
// level, odd spaces rounded down) and the remaining content.
func ParseIndentation(text string) (indent int, content string) {
	m := indentation.FindStringSubmatch(text)
	if m == nil {
		return 0, text
	}
	return len(m[1]) / 2, m[2]
}
