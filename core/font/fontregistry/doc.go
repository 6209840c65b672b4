/*
Package fontregistry holds fonts and typecases used for text measurement.

Fonts are looked up by CSS family name. Generic families (`monospace`,
`sans-serif`, …) and families which cannot be located on the system map to
the Go fonts, which are always available.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontregistry

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'mdlines.fonts'
func tracer() tracing.Trace {
	return tracing.Select("mdlines.fonts")
}
