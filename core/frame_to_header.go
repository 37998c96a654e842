package core

import (
	"github.com/signalsfoundry/solarwcs/model"
	"github.com/signalsfoundry/solarwcs/obstime"
	"github.com/signalsfoundry/solarwcs/wcs"
)

// FrameToHeader builds a two-axis header describing f. projection is the
// suffix for frames that take one; an empty value means DefaultProjection.
// It reports false for anything other than the four solar frames, including
// nil and typed-nil frames.
//
// The solar radius attribute is always declared on the result, unset when f
// has none. The observer attribute is declared only for frames that carry
// an observer.
func FrameToHeader(f model.Frame, projection string) (*wcs.Header, bool) {
	if projection == "" {
		projection = DefaultProjection
	}

	row, ok := codesForKind(model.KindOf(f))
	if !ok {
		return nil, false
	}

	h := wcs.NewHeader(2)

	var rsun *model.Length
	if r, ok := f.(model.RadiusAware); ok {
		rsun = r.SolarRadius()
	}
	h.RSun.Set(rsun)

	if o, ok := f.(model.ObserverAware); ok {
		h.Observer.Set(o.ObserverLocation())
	}

	x, y := row.types(projection)
	h.Axes[0] = wcs.Axis{Type: x, Unit: row.unit}
	h.Axes[1] = wcs.Axis{Type: y, Unit: row.unit}
	h.DateObs = obstime.Format(f.ObservationTime())

	return h, true
}
