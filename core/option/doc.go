/*
Package option implements optional values with pattern-style matching.

Computed CSS values may be absent, e.g. when no rendering environment is
available to compute them. Types in this package carry such values and let
clients match on them:

	size.Match(option.Maybe{
	     option.None: "unknown",
	     option.Some: func(v interface{}) (interface{}, error) { … },
	})

*/
package option

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to key 'mdlines.core'.
func tracer() tracing.Trace {
	return tracing.Select("mdlines.core")
}
