package theme

import (
	"image/color"
	"testing"
)

func TestUnknownLayerFallsBackToWhite(t *testing.T) {
	th := Classic()
	got := th.ColorFor("In14.Cu")
	want := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	if got != want {
		t.Fatalf("fallback color = %+v, want opaque white", got)
	}
	if th.Has("In14.Cu") {
		t.Fatal("Has must report unknown layers")
	}
}

func TestKnownLayerColors(t *testing.T) {
	th := Classic()
	if got := th.ColorFor("F.Cu"); got != (color.NRGBA{R: 200, G: 52, B: 52, A: 255}) {
		t.Fatalf("F.Cu = %+v", got)
	}
	if got := th.ColorFor("B.Mask"); got.A == 255 {
		t.Fatal("mask layers must be translucent")
	}
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		th, ok := ByName(name)
		if !ok {
			t.Fatalf("registered theme %q not resolvable", name)
		}
		if th.Name != name {
			t.Fatalf("theme %q reports name %q", name, th.Name)
		}
	}
	if _, ok := ByName("solarized"); ok {
		t.Fatal("unknown theme must not resolve")
	}
}
