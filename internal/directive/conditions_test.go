package directive

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseConditions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Conditions
	}{
		{"", Conditions{}},
		{"screen", Conditions{Media: "screen"}},
		{"  print, screen and (min-width: 40em) ", Conditions{Media: "print, screen and (min-width: 40em)"}},
		{"layer", Conditions{HasLayer: true}},
		{"LAYER print", Conditions{HasLayer: true, Media: "print"}},
		{"layer(base.reset)", Conditions{HasLayer: true, Layer: "base.reset"}},
		{"supports(display: grid)", Conditions{Supports: "display: grid"}},
		{
			"layer(base) supports(not (display: grid)) screen",
			Conditions{HasLayer: true, Layer: "base", Supports: "not (display: grid)", Media: "screen"},
		},
		{"layer(base", Conditions{Media: "layer(base"}},
		{"layered", Conditions{Media: "layered"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, ParseConditions(tt.in)); diff != "" {
				t.Errorf("ParseConditions(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestConditions_Wrap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		c    Conditions
		want string
	}{
		{"none", Conditions{}, ".b{}"},
		{"media", Conditions{Media: "screen"}, "@media screen{.b{}}"},
		{"anonymous layer", Conditions{HasLayer: true}, "@layer{.b{}}"},
		{
			"all three",
			Conditions{HasLayer: true, Layer: "base", Supports: "display: grid", Media: "print"},
			"@layer base{@supports (display: grid){@media print{.b{}}}}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.c.Wrap(".b{}"); got != tt.want {
				t.Errorf("Wrap() = %q, want %q", got, tt.want)
			}
			if tt.c.IsZero() != (tt.name == "none") {
				t.Errorf("IsZero() = %v", tt.c.IsZero())
			}
		})
	}
}
