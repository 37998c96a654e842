package core

import (
	"time"

	"github.com/signalsfoundry/solarwcs/model"
	"github.com/signalsfoundry/solarwcs/obstime"
	"github.com/signalsfoundry/solarwcs/wcs"
)

// HeaderToFrame returns the solar frame described by h's celestial axis
// types. It reports false when the axis pair is not in the vocabulary; the
// caller is expected to try other translators.
//
// Axes are rectified with a celestial sub-selection first, so headers with
// extra axes or latitude-first ordering still match. Observer and solar
// radius are carried over only to frames that have those attributes.
func HeaderToFrame(h *wcs.Header) (model.Frame, bool) {
	if h == nil {
		return nil, false
	}

	var obsTime time.Time
	if t, ok := obstime.Parse(h.DateObs); ok {
		obsTime = t
	}
	observer := h.Observer.Get()
	rsun := h.RSun.Get()

	axes := h
	if sub, ok := h.Celestial(); ok && sub.Naxis() == 2 {
		axes = sub
	}
	if axes.Naxis() < 2 {
		return nil, false
	}

	row, ok := codesForPrefixes(axes.Axes[0].Prefix(), axes.Axes[1].Prefix())
	if !ok {
		return nil, false
	}

	switch row.kind {
	case model.KindHelioprojective:
		return &model.Helioprojective{ObsTime: obsTime, Observer: observer, RSun: rsun}, true
	case model.KindHeliocentric:
		return &model.Heliocentric{ObsTime: obsTime, Observer: observer}, true
	case model.KindHeliographicStonyhurst:
		return &model.HeliographicStonyhurst{ObsTime: obsTime}, true
	case model.KindHeliographicCarrington:
		return &model.HeliographicCarrington{ObsTime: obsTime}, true
	default:
		return nil, false
	}
}
