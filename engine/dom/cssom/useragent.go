package cssom

import "sync"

// userAgentCSS holds the defaults a browser applies before any author
// style sheet. It covers the elements produced by markdown preview rendering.
const userAgentCSS = `
html, body, div, p, pre, ul, ol, li, h1, h2, h3, h4, h5, h6 { display: block; }
head, script, style, title { display: none; }
li { display: list-item; }
body { margin: 8px; }
p, pre { margin-top: 1em; margin-bottom: 1em; }
h1 { font-size: 2em; font-weight: bold; margin-top: 0.67em; margin-bottom: 0.67em; }
h2 { font-size: 1.5em; font-weight: bold; margin-top: 0.83em; margin-bottom: 0.83em; }
h3 { font-size: 1.17em; font-weight: bold; margin-top: 1em; margin-bottom: 1em; }
h4 { font-size: 1em; font-weight: bold; margin-top: 1.33em; margin-bottom: 1.33em; }
h5 { font-size: 0.83em; font-weight: bold; margin-top: 1.67em; margin-bottom: 1.67em; }
h6 { font-size: 0.67em; font-weight: bold; margin-top: 2.33em; margin-bottom: 2.33em; }
strong, b { font-weight: bolder; }
em, i { font-style: italic; }
code, pre, kbd, samp, tt { font-family: monospace; font-size: 0.8125em; }
pre code { font-size: 1em; }
pre { white-space: pre; }
[dir=rtl] { direction: rtl; }
[dir=ltr] { direction: ltr; }
`

var uaSheet *StyleSheet
var uaOnce sync.Once

func defaultUserAgentSheet() *StyleSheet {
	uaOnce.Do(func() {
		ss, err := ParseStyleSheet(userAgentCSS, UserAgent)
		if err != nil {
			panic(err)
		}
		uaSheet = ss
	})
	return uaSheet
}
