package dimen

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestParseDimen(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdlines.core")
	defer teardown()
	//
	d, _, err := ParseDimen("12px")
	if err != nil {
		t.Errorf("(1) %s", err.Error())
	} else if d != 12*PX {
		t.Errorf("(1) expected d to be 12px (%d), is %d", 12*PX, d)
	}
	//
	d, _, err = ParseDimen("0")
	if err != nil {
		t.Errorf("(2) %s", err.Error())
	} else if d != 0 {
		t.Errorf("(2) expected d to be 0, is %d", d)
	}
	//
	_, ispcnt, err := ParseDimen("20%")
	if err != nil {
		t.Errorf("(3) %s", err.Error())
	} else if ispcnt != true {
		t.Errorf("(3) expected percentage-marker to be true, is %v", ispcnt)
	}
	//
	d, _, err = ParseDimen("1.5px")
	if err != nil {
		t.Errorf("(4) %s", err.Error())
	} else if d != PX+PX/2 {
		t.Errorf("(4) expected d to be 1.5px, is %s", d.CSS())
	}
	//
	if _, _, err = ParseDimen("12furlongs"); err == nil {
		t.Errorf("(5) expected error for unknown unit")
	}
}

func TestCSSFormatting(t *testing.T) {
	if s := (32 * PX).CSS(); s != "32px" {
		t.Errorf("expected 32px, have %s", s)
	}
	if s := FromPixels(18.72).CSS(); s != "18.72px" {
		t.Errorf("expected 18.72px, have %s", s)
	}
	if d := FromPixels(24.2).CeilPixels(); d != 25*PX {
		t.Errorf("expected ceiling of 24.2px to be 25px, have %s", d.CSS())
	}
	if d := (16 * PX).Scale(1.5); d != 24*PX {
		t.Errorf("expected 16px*1.5 to be 24px, have %s", d.CSS())
	}
}
