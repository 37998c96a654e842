package core

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/signalsfoundry/solarwcs/model"
	"github.com/signalsfoundry/solarwcs/wcs"
)

func TestRoundTripHeaderFrameHeader(t *testing.T) {
	rows := []struct {
		x, y, unit string
	}{
		{"HPLN-TAN", "HPLT-TAN", "arcsec"},
		{"HGLN-TAN", "HGLT-TAN", "deg"},
		{"CRLN-TAN", "CRLT-TAN", "deg"},
		{"SOLX", "SOLY", "arcsec"},
	}

	for _, row := range rows {
		t.Run(row.x, func(t *testing.T) {
			in := header(row.x, row.y, row.unit, row.unit)
			in.DateObs = "2019-03-04T05:06:07.890"

			f, ok := HeaderToFrame(in)
			require.True(t, ok)

			out, ok := FrameToHeader(f, DefaultProjection)
			require.True(t, ok)
			require.Equal(t, in.Types(), out.Types())
			require.Equal(t, in.Units(), out.Units())
			require.Equal(t, in.DateObs, out.DateObs)
		})
	}
}

func TestRoundTripFrameHeaderFrame(t *testing.T) {
	when := time.Date(2022, time.September, 9, 10, 11, 12, 345*int(time.Millisecond), time.UTC)
	obs := &model.Observer{Name: "SOHO", Lon: -0.1, Lat: 7.2, Radius: 0.99 * model.AU}
	rsun := model.SunRadius

	frames := map[string]model.Frame{
		"hpc bare":          &model.Helioprojective{ObsTime: when},
		"hpc observer":      &model.Helioprojective{ObsTime: when, Observer: obs},
		"hpc observer rsun": &model.Helioprojective{ObsTime: when, Observer: obs, RSun: &rsun},
		"hpc rsun":          &model.Helioprojective{ObsTime: when, RSun: &rsun},
		"hcc bare":          &model.Heliocentric{ObsTime: when},
		"hcc observer":      &model.Heliocentric{ObsTime: when, Observer: obs},
		"hgs":               &model.HeliographicStonyhurst{ObsTime: when},
		"hgc":               &model.HeliographicCarrington{ObsTime: when},
	}

	for name, in := range frames {
		t.Run(name, func(t *testing.T) {
			h, ok := FrameToHeader(in, "")
			require.True(t, ok)

			out, ok := HeaderToFrame(h)
			require.True(t, ok)
			requireSameFrame(t, in, out)
		})
	}
}

func TestRoundTripThroughFITS(t *testing.T) {
	obs := &model.Observer{Name: "earth"}
	in := &model.Heliocentric{ObsTime: time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC), Observer: obs}

	h, ok := FrameToHeader(in, "")
	require.True(t, ok)

	var buf bytes.Buffer
	require.NoError(t, wcs.WriteFITS(&buf, h))

	back, err := wcs.ReadFITS(&buf)
	require.NoError(t, err)

	out, ok := HeaderToFrame(back)
	require.True(t, ok)
	requireSameFrame(t, in, out)
}

func requireSameFrame(t *testing.T, want, got model.Frame) {
	t.Helper()
	require.Equal(t, want.Kind(), got.Kind())
	require.True(t, want.ObservationTime().Equal(got.ObservationTime()),
		"observation time %v, want %v", got.ObservationTime(), want.ObservationTime())

	if w, ok := want.(model.ObserverAware); ok {
		g, ok := got.(model.ObserverAware)
		require.True(t, ok)
		require.Equal(t, w.ObserverLocation(), g.ObserverLocation())
	}
	if w, ok := want.(model.RadiusAware); ok {
		g, ok := got.(model.RadiusAware)
		require.True(t, ok)
		require.Equal(t, w.SolarRadius(), g.SolarRadius())
	}
}
