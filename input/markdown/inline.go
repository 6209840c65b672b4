package markdown

import "strings"

// renderInline renders code spans, strong and emphasized text, scanning
// from left to right. Code spans are literal; strong and emphasis may nest.
// Text outside of markup is sanitized. applied reports whether any markup
// has been found.
func renderInline(s string) (out string, applied bool) {
	var b strings.Builder
	applied = scanInline(&b, s)
	return b.String(), applied
}

func scanInline(b *strings.Builder, s string) (applied bool) {
	i, start := 0, 0
	flush := func(end int) {
		b.WriteString(Sanitize(s[start:end]))
	}
	for i < len(s) {
		switch {
		case s[i] == '`':
			if j := strings.IndexByte(s[i+1:], '`'); j >= 0 {
				flush(i)
				b.WriteString("<code>")
				b.WriteString(Sanitize(s[i+1 : i+1+j]))
				b.WriteString("</code>")
				i = i + j + 2
				start, applied = i, true
				continue
			}
		case strings.HasPrefix(s[i:], "**"):
			if j := findCloser(s, i+2, "**"); j >= 0 {
				flush(i)
				b.WriteString("<strong>")
				scanInline(b, s[i+2:j])
				b.WriteString("</strong>")
				i = j + 2
				start, applied = i, true
				continue
			}
			fallthrough // unclosed "**" may still open emphasis
		case s[i] == '*':
			if j := findCloser(s, i+1, "*"); j >= 0 {
				flush(i)
				b.WriteString("<em>")
				scanInline(b, s[i+1:j])
				b.WriteString("</em>")
				i = j + 1
				start, applied = i, true
				continue
			}
		}
		i++
	}
	flush(len(s))
	return
}

// findCloser finds the position of the delimiter closing a span opened
// before position from. Code spans are skipped. When looking for a single
// '*', a nested strong span "**…**" is skipped as a whole.
func findCloser(s string, from int, delim string) int {
	for k := from; k < len(s); {
		switch {
		case s[k] == '`':
			if j := strings.IndexByte(s[k+1:], '`'); j >= 0 {
				k += j + 2
				continue
			}
		case delim == "*" && strings.HasPrefix(s[k:], "**"):
			if j := strings.Index(s[k+2:], "**"); j >= 0 {
				k += j + 4
				continue
			}
			return k
		case strings.HasPrefix(s[k:], delim):
			return k
		}
		k++
	}
	return -1
}
