package wcs

import (
	"reflect"
	"testing"

	"github.com/signalsfoundry/solarwcs/model"
)

func TestAxisPrefix(t *testing.T) {
	cases := map[string]string{
		"HPLN-TAN": "HPLN",
		"SOLX":     "SOLX",
		"RA":       "RA",
		"":         "",
	}
	for in, want := range cases {
		if got := (Axis{Type: in}).Prefix(); got != want {
			t.Fatalf("Prefix(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCelestialReordersAxes(t *testing.T) {
	h := &Header{
		Axes: []Axis{
			{Type: "HPLT-TAN", Unit: "arcsec"},
			{Type: "HPLN-TAN", Unit: "arcsec"},
		},
		DateObs: "2020-01-01T00:00:00",
	}

	sub, ok := h.Celestial()
	if !ok {
		t.Fatalf("Celestial() reported no celestial axes")
	}
	if got, want := sub.Types(), []string{"HPLN-TAN", "HPLT-TAN"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Celestial types = %v, want %v", got, want)
	}
	if sub.DateObs != h.DateObs {
		t.Fatalf("Celestial DateObs = %q, want %q", sub.DateObs, h.DateObs)
	}
	if got := h.Types(); got[0] != "HPLT-TAN" {
		t.Fatalf("Celestial mutated the source header: %v", got)
	}
}

func TestCelestialDropsSpectralAxis(t *testing.T) {
	h := &Header{Axes: []Axis{
		{Type: "WAVE", Unit: "Angstrom"},
		{Type: "HGLN-CAR", Unit: "deg"},
		{Type: "HGLT-CAR", Unit: "deg"},
	}}

	sub, ok := h.Celestial()
	if !ok {
		t.Fatalf("Celestial() failed on a spectral cube")
	}
	if sub.Naxis() != 2 {
		t.Fatalf("Naxis = %d, want 2", sub.Naxis())
	}
	if got, want := sub.Units(), []string{"deg", "deg"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Units = %v, want %v", got, want)
	}
}

func TestCelestialFailures(t *testing.T) {
	cases := map[string][]Axis{
		"no celestial":   {{Type: "SOLX"}, {Type: "SOLY"}},
		"longitude only": {{Type: "HPLN-TAN"}, {Type: "WAVE"}},
		"two longitudes": {{Type: "HPLN-TAN"}, {Type: "HGLN-CAR"}, {Type: "HPLT-TAN"}},
		"empty":          nil,
	}
	for name, axes := range cases {
		if _, ok := (&Header{Axes: axes}).Celestial(); ok {
			t.Fatalf("%s: Celestial() succeeded, want failure", name)
		}
	}
}

func TestCelestialEquatorial(t *testing.T) {
	h := &Header{Axes: []Axis{{Type: "DEC--TAN"}, {Type: "RA---TAN"}}}
	sub, ok := h.Celestial()
	if !ok {
		t.Fatalf("Celestial() failed on RA/DEC axes")
	}
	if got := sub.Types(); got[0] != "RA---TAN" || got[1] != "DEC--TAN" {
		t.Fatalf("Celestial types = %v, want RA then DEC", got)
	}
}

func TestAttrStates(t *testing.T) {
	var a Attr[model.Length]
	if a.Declared() || a.Get() != nil {
		t.Fatalf("zero Attr should be undeclared and unset")
	}

	a.Set(nil)
	if !a.Declared() || a.Get() != nil {
		t.Fatalf("Set(nil) should declare without a value")
	}

	r := model.SunRadius
	a.Set(&r)
	r = 0
	if got := a.Get(); got == nil || *got != model.SunRadius {
		t.Fatalf("Get() = %v, want %v (copy taken at Set)", got, model.SunRadius)
	}

	*a.Get() = 1
	if *a.Get() != model.SunRadius {
		t.Fatalf("Get() must return a copy")
	}

	a.Clear()
	if a.Declared() {
		t.Fatalf("Clear() should undeclare")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	obs := model.Observer{Name: "earth"}
	h := &Header{
		Axes:     []Axis{{Type: "SOLX"}, {Type: "SOLY"}},
		Observer: Declare(&obs),
	}
	c := h.Clone()
	c.Axes[0].Type = "X"
	c.Observer.Clear()

	if h.Axes[0].Type != "SOLX" {
		t.Fatalf("clone shares axes with source")
	}
	if !h.Observer.Declared() {
		t.Fatalf("clone shares attributes with source")
	}
}
