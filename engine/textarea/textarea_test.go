package textarea

import (
	"testing"

	"github.com/npillmayer/mdlines/core/dimen"
	"github.com/npillmayer/mdlines/core/font/fontregistry"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// monospaced textarea, 10½ characters wide, 20px lines
func monoTextarea(t *testing.T, g *Grower, value string) *Textarea {
	ta := &Textarea{
		FontFamily: "monospace",
		FontSize:   16 * dimen.PX,
		LineHeight: 20 * dimen.PX,
		Value:      value,
	}
	tc := g.typecase(ta)
	require.NotNil(t, tc)
	ten := tc.Advance("0123456789")
	require.True(t, ten > 0)
	ta.Width = ten + tc.Advance("0")/2
	return ta
}

func TestAutoGrowEmpty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdlines.textarea")
	defer teardown()
	//
	AutoGrow(nil) // must not panic
	ta := &Textarea{Value: "  \t "}
	AutoGrow(ta)
	assert.Equal(t, "24px", ta.Style["height"])
	//
	g := NewGrower(WithEmptyHeight(30 * dimen.PX))
	ta = &Textarea{Value: ""}
	g.AutoGrow(ta)
	assert.Equal(t, "30px", ta.Style["height"])
}

func TestSoftWrapping(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdlines.textarea")
	defer teardown()
	//
	g := NewGrower(WithRegistry(fontregistry.NewRegistry()))
	for _, c := range []struct {
		value  string
		height string
	}{
		{"short", "20px"},
		{"aaaa bbbb", "20px"},
		{"aaaa bbbb cccc", "40px"},
		{"abcdefghijklmnopqrstuvwxy", "60px"}, // 25 graphemes, broken 10/10/5
		{"a\n\nb", "60px"},
		{"x\n", "40px"},
	} {
		ta := monoTextarea(t, g, c.value)
		g.AutoGrow(ta)
		assert.Equal(t, c.height, ta.Style["height"], "height for %q", c.value)
	}
}

func TestPaddingAndUnboundedWidth(t *testing.T) {
	g := NewGrower(WithRegistry(fontregistry.NewRegistry()))
	ta := monoTextarea(t, g, "aaaa bbbb cccc dddd eeee")
	ta.Width = 0
	ta.Padding = Insets{Top: 4 * dimen.PX, Bottom: 4 * dimen.PX}
	assert.Equal(t, 28*dimen.PX, g.ScrollHeight(ta), "no wrapping without width")
	//
	ta.Value = "aaaa bbbb"
	ta.Width = monoTextarea(t, g, "").Width + 8*dimen.PX
	ta.Padding.Left, ta.Padding.Right = 4*dimen.PX, 4*dimen.PX
	assert.Equal(t, 28*dimen.PX, g.ScrollHeight(ta), "padding is subtracted from width")
}

func TestNaturalLineHeight(t *testing.T) {
	g := NewGrower(WithRegistry(fontregistry.NewRegistry()))
	ta := &Textarea{Value: "x"}
	h := g.ScrollHeight(ta)
	assert.True(t, h >= 16*dimen.PX, "natural line height %s below font size", h.CSS())
	assert.Equal(t, dimen.Zero, h%dimen.PX, "height rounded to whole pixels")
	ta.Value = "x\ny"
	assert.True(t, g.ScrollHeight(ta) > h)
}
