package wcs

import (
	"bytes"
	"math"
	"testing"

	"github.com/signalsfoundry/solarwcs/model"
)

func TestFITSRoundTrip(t *testing.T) {
	obs := model.Observer{Name: "SDO", Lon: 0.5, Lat: -3.25, Radius: 151.5e9}
	rsun := model.SunRadius

	h := &Header{
		Axes: []Axis{
			{Type: "HPLN-TAN", Unit: "arcsec"},
			{Type: "HPLT-TAN", Unit: "arcsec"},
		},
		DateObs:  "2020-01-01T00:00:00.000",
		Observer: Declare(&obs),
		RSun:     Declare(&rsun),
	}

	var buf bytes.Buffer
	if err := WriteFITS(&buf, h); err != nil {
		t.Fatalf("WriteFITS: %v", err)
	}

	got, err := ReadFITS(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadFITS: %v", err)
	}

	if got.Naxis() != 2 {
		t.Fatalf("Naxis = %d, want 2", got.Naxis())
	}
	for i, a := range h.Axes {
		if got.Axes[i] != a {
			t.Fatalf("axis %d = %+v, want %+v", i, got.Axes[i], a)
		}
	}
	if got.DateObs != h.DateObs {
		t.Fatalf("DateObs = %q, want %q", got.DateObs, h.DateObs)
	}

	gotObs := got.Observer.Get()
	if gotObs == nil {
		t.Fatalf("observer attribute lost in round trip")
	}
	if gotObs.Name != "SDO" || !near(gotObs.Lon, 0.5) || !near(gotObs.Lat, -3.25) || !near(gotObs.Radius.Metres(), 151.5e9) {
		t.Fatalf("observer = %+v, want %+v", *gotObs, obs)
	}

	gotRSun := got.RSun.Get()
	if gotRSun == nil || !near(gotRSun.Metres(), rsun.Metres()) {
		t.Fatalf("rsun = %v, want %v", gotRSun, rsun)
	}
}

func TestFITSWithoutExtensions(t *testing.T) {
	h := &Header{Axes: []Axis{{Type: "SOLX", Unit: "arcsec"}, {Type: "SOLY", Unit: "arcsec"}}}

	var buf bytes.Buffer
	if err := WriteFITS(&buf, h); err != nil {
		t.Fatalf("WriteFITS: %v", err)
	}
	got, err := ReadFITS(&buf)
	if err != nil {
		t.Fatalf("ReadFITS: %v", err)
	}
	if got.Observer.Declared() {
		t.Fatalf("observer should be undeclared when no observer keywords are present")
	}
	if got.RSun.Declared() {
		t.Fatalf("rsun should be undeclared when RSUN_REF is absent")
	}
	if got.DateObs != "" {
		t.Fatalf("DateObs = %q, want empty", got.DateObs)
	}
}

func TestCardsOmitUnsetAttributes(t *testing.T) {
	h := NewHeader(2)
	h.Axes[0] = Axis{Type: "HGLN-TAN", Unit: "deg"}
	h.Axes[1] = Axis{Type: "HGLT-TAN", Unit: "deg"}
	h.RSun.Set(nil)
	h.DateObs = "2020-01-01T00:00:00.000"

	names := map[string]any{}
	for _, c := range h.Cards() {
		names[c.Name] = c.Value
	}
	if _, ok := names[KeySolarRadius]; ok {
		t.Fatalf("declared-but-unset rsun should not produce a %s card", KeySolarRadius)
	}
	if names["CTYPE1"] != "HGLN-TAN" || names["CUNIT2"] != "deg" {
		t.Fatalf("unexpected axis cards: %v", names)
	}
	mjd, ok := names["MJD-OBS"].(float64)
	if !ok || !near(mjd, 58849) {
		t.Fatalf("MJD-OBS = %v, want 58849", names["MJD-OBS"])
	}
	if names["WCSAXES"] != 2 {
		t.Fatalf("WCSAXES = %v, want 2", names["WCSAXES"])
	}
}

func TestCardsSkipMJDForHistoricalDates(t *testing.T) {
	h := NewHeader(2)
	h.Axes[0] = Axis{Type: "HGLN-TAN"}
	h.Axes[1] = Axis{Type: "HGLT-TAN"}
	h.DateObs = "1858-11-17T00:00:00.000"

	found := false
	for _, c := range h.Cards() {
		if c.Name == "MJD-OBS" {
			t.Fatalf("MJD-OBS = %v written for a date outside the supported calendar range", c.Value)
		}
		if c.Name == "DATE-OBS" {
			found = true
		}
	}
	if !found {
		t.Fatalf("DATE-OBS card missing")
	}
}

func TestFromFITSNil(t *testing.T) {
	if _, err := FromFITS(nil); err != ErrNoAxes {
		t.Fatalf("FromFITS(nil) error = %v, want ErrNoAxes", err)
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Abs(b))
}
