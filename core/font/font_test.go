package font

import (
	"testing"

	"github.com/npillmayer/mdlines/core/dimen"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	xfont "golang.org/x/image/font"
)

func TestFileWeight(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdlines.fonts")
	defer teardown()
	//
	for name, expected := range map[string]WeightClass{
		"fonts/Clarendon-bold.ttf":               Bold,
		"Microsoft/Gill Sans MT Bold Italic.ttf": Bold,
		"Cambria Math.ttf":                       Regular,
		"FiraCode-Light.ttf":                     Light,
		"DejaVuSans-BoldOblique.ttf":             Bold,
	} {
		if class, _ := FileWeight(name); class != expected {
			t.Errorf("expected weight class %d for %s, have %d", expected, name, class)
		}
	}
	if _, italic := FileWeight("Gill Sans MT Bold Italic.ttf"); !italic {
		t.Errorf("expected Gill Sans MT Bold Italic to be italic")
	}
}

func TestFileMatches(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdlines.fonts")
	defer teardown()
	//
	if !FileMatches("fonts/Clarendon-bold.ttf", "Clarendon", xfont.WeightBold) {
		t.Errorf("expected match for bold Clarendon")
	}
	if !FileMatches("/usr/share/fonts/FiraCode-Regular.ttf", "Fira Code", xfont.WeightNormal) {
		t.Errorf("expected match for Fira Code regular")
	}
	if FileMatches("Cambria Math.ttf", "Cambria", xfont.WeightBold) {
		t.Errorf("expected Cambria Math not to match bold")
	}
	if FileMatches("DejaVuSans-BoldOblique.ttf", "DejaVu Sans", xfont.WeightBold) {
		t.Errorf("expected oblique cut not to match")
	}
	if ClassOf(xfont.WeightMedium) != Regular || ClassOf(xfont.WeightSemiBold) != Bold {
		t.Errorf("unexpected weight classes")
	}
}

func TestFallbackMeasure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdlines.fonts")
	defer teardown()
	//
	mono, err := FallbackFont(xfont.WeightNormal, true).PrepareCase(16 * dimen.PX)
	if err != nil {
		t.Fatal(err)
	}
	a := mono.Advance("m")
	if a <= 0 {
		t.Fatalf("expected positive advance for 'm', is %s", a.CSS())
	}
	if w := mono.Advance("mmmm"); w != 4*a {
		t.Errorf("expected monospace advance to be additive, %s != 4 × %s", w.CSS(), a.CSS())
	}
	if mono.LineHeight() <= 0 {
		t.Errorf("expected positive line height")
	}
	sans, _ := FallbackFont(xfont.WeightNormal, false).PrepareCase(16 * dimen.PX)
	if sans.Advance("i") >= sans.Advance("W") {
		t.Errorf("expected proportional font to set 'i' narrower than 'W'")
	}
	if FallbackFont(xfont.WeightBold, false).Fontname != "Go Sans Bold" {
		t.Errorf("expected bold fallback font")
	}
}

func TestWeightFromCSS(t *testing.T) {
	if WeightFromCSS(400) != xfont.WeightNormal || WeightFromCSS(700) != xfont.WeightBold {
		t.Errorf("unexpected weight mapping")
	}
}
