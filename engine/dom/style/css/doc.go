/*
Package css converts raw CSS property values into typed values.

Dimensions are option types (see package core/option): a dimension may be
unset, absolute, or relative to the font size (`em`, `rem`, `ex`, `ch`) or to
a reference length (`%`). Font sizes and weights are resolved against the
values of the parent element, as CSS requires for computed values.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package css

import "github.com/npillmayer/schuko/tracing"

// T traces to key 'mdlines.css'.
func T() tracing.Trace {
	return tracing.Select("mdlines.css")
}
