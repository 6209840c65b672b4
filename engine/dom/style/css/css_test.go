package css

import (
	"testing"

	"github.com/npillmayer/mdlines/core/dimen"
	"github.com/npillmayer/mdlines/core/option"
	"github.com/npillmayer/mdlines/engine/dom/style"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestDimenOption(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdlines.css")
	defer teardown()
	//
	p := style.Property("12pt")
	d := DimenOption(p)
	if d.Unwrap() != dimen.Dimen(12)*dimen.PT {
		t.Errorf("expected 12pt (%d), have %d", 12*dimen.PT, d.Unwrap())
	}
	//
	d = DimenOption("auto")
	x, err := d.Match(option.Of{
		option.None: "NONE",
		Auto:        "AUTO",
	})
	if err != nil || x != "AUTO" {
		t.Errorf("expected AUTO, have %v with error %v", x, err)
	}
	//
	d = DimenOption("1.5em")
	assert.True(t, d.IsRelative())
	assert.True(t, d.Equals(FontScaled))
	assert.Equal(t, "1.5em", d.String())
	size, ok := d.Resolve(16*dimen.PX, 16*dimen.PX, 0)
	assert.True(t, ok)
	assert.Equal(t, 24*dimen.PX, size)
	//
	assert.True(t, DimenOption("nonsense").IsNone())
	assert.True(t, DimenOption("50%").Equals("%"))
}

func TestDimenMatch(t *testing.T) {
	v, err := DimenOption("auto").Match(option.Of{Auto: "auto", option.Some: "some"})
	assert.NoError(t, err)
	assert.Equal(t, "auto", v)
	v, err = DimenOption("2em").Match(option.Of{FontScaled: "scaled", option.Some: "some"})
	assert.NoError(t, err)
	assert.Equal(t, "scaled", v)
	_, err = Dimen().Match(option.Maybe{option.Some: "some"})
	assert.Error(t, err, "unset dimension without None case")
}

func TestFontSize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdlines.css")
	defer teardown()
	//
	parent, root := 16*dimen.PX, 16*dimen.PX
	for _, c := range []struct {
		p    style.Property
		size string
	}{
		{"2em", "32px"},
		{"1.17em", "18.72px"},
		{"150%", "24px"},
		{"13px", "13px"},
		{"x-large", "24px"},
		{"larger", "19.2px"},
		{"inherit", "16px"},
		{"1.5rem", "24px"},
		{"garbage", "16px"},
		{"auto", "16px"},
		{"-2px", "16px"},
		{"initial", "16px"},
		{"", "16px"},
	} {
		assert.Equal(t, c.size, FontSize(c.p, parent, root).CSS(), "font-size: %s", c.p)
	}
	assert.Equal(t, "40px", FontSize("1.25em", 32*dimen.PX, root).CSS(), "em relative to parent")
}

func TestFontWeight(t *testing.T) {
	for _, c := range []struct {
		p      style.Property
		parent int
		weight int
	}{
		{"bold", 400, 700},
		{"normal", 700, 400},
		{"bolder", 400, 700},
		{"bolder", 700, 900},
		{"bolder", 300, 400},
		{"lighter", 700, 400},
		{"lighter", 400, 100},
		{"600", 400, 600},
		{"", 700, 700},
		{"heavy", 400, 400},
	} {
		assert.Equal(t, c.weight, FontWeight(c.p, c.parent), "font-weight: %s on %d", c.p, c.parent)
	}
	assert.Equal(t, "700", FormatFontWeight(700))
}
