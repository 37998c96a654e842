// Package document defines the wire form of frames and headers used by the
// CLI (YAML) and the HTTP service (JSON).
package document

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/signalsfoundry/solarwcs/model"
	"github.com/signalsfoundry/solarwcs/obstime"
	"github.com/signalsfoundry/solarwcs/wcs"
)

var (
	// ErrUnknownFrame is returned for frame names outside the solar set.
	ErrUnknownFrame = errors.New("unknown frame")
	// ErrInvalid is returned for documents that cannot describe a frame or header.
	ErrInvalid = errors.New("invalid document")
)

// Extension attribute names used in HeaderDoc.Declared.
const (
	AttrObserver = "observer"
	AttrRSun     = "rsun"
)

// ObserverDoc is an observer location. A zero radius with a name is a
// named observer.
type ObserverDoc struct {
	Name    string  `json:"name,omitempty" yaml:"name,omitempty"`
	LonDeg  float64 `json:"lon_deg,omitempty" yaml:"lon_deg,omitempty"`
	LatDeg  float64 `json:"lat_deg,omitempty" yaml:"lat_deg,omitempty"`
	RadiusM float64 `json:"radius_m,omitempty" yaml:"radius_m,omitempty"`
}

// FrameDoc describes a solar frame.
type FrameDoc struct {
	Frame    string       `json:"frame" yaml:"frame"`
	ObsTime  string       `json:"obstime,omitempty" yaml:"obstime,omitempty"`
	Observer *ObserverDoc `json:"observer,omitempty" yaml:"observer,omitempty"`
	RSunM    *float64     `json:"rsun_m,omitempty" yaml:"rsun_m,omitempty"`
}

// AxisDoc is one header axis.
type AxisDoc struct {
	Type string `json:"ctype" yaml:"ctype"`
	Unit string `json:"cunit,omitempty" yaml:"cunit,omitempty"`
}

// HeaderDoc describes a WCS header. Declared lists extension attributes
// that exist on the header even when they carry no value.
type HeaderDoc struct {
	Axes     []AxisDoc    `json:"axes" yaml:"axes"`
	DateObs  string       `json:"date_obs,omitempty" yaml:"date_obs,omitempty"`
	Observer *ObserverDoc `json:"observer,omitempty" yaml:"observer,omitempty"`
	RSunM    *float64     `json:"rsun_m,omitempty" yaml:"rsun_m,omitempty"`
	Declared []string     `json:"declared,omitempty" yaml:"declared,omitempty"`
}

// FromFrame converts f into its document form.
func FromFrame(f model.Frame) (FrameDoc, error) {
	kind := model.KindOf(f)
	if kind == model.KindUnknown {
		return FrameDoc{}, ErrUnknownFrame
	}
	doc := FrameDoc{
		Frame:   kind.String(),
		ObsTime: obstime.Format(f.ObservationTime()),
	}
	if o, ok := f.(model.ObserverAware); ok {
		doc.Observer = observerDoc(o.ObserverLocation())
	}
	if r, ok := f.(model.RadiusAware); ok {
		if rsun := r.SolarRadius(); rsun != nil {
			m := rsun.Metres()
			doc.RSunM = &m
		}
	}
	return doc, nil
}

// ToFrame builds the frame the document describes. Attributes the frame
// kind does not carry are rejected.
func (d FrameDoc) ToFrame() (model.Frame, error) {
	kind := model.ParseKind(d.Frame)
	if kind == model.KindUnknown {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFrame, d.Frame)
	}

	var when time.Time
	if d.ObsTime != "" {
		t, ok := obstime.Parse(d.ObsTime)
		if !ok {
			return nil, fmt.Errorf("%w: obstime %q", ErrInvalid, d.ObsTime)
		}
		when = t
	}

	observer := d.Observer.toModel()
	var rsun *model.Length
	if d.RSunM != nil {
		l := model.Length(*d.RSunM)
		rsun = &l
	}

	switch kind {
	case model.KindHelioprojective:
		return &model.Helioprojective{ObsTime: when, Observer: observer, RSun: rsun}, nil
	case model.KindHeliocentric:
		if rsun != nil {
			return nil, fmt.Errorf("%w: %s has no rsun attribute", ErrInvalid, kind)
		}
		return &model.Heliocentric{ObsTime: when, Observer: observer}, nil
	default:
		if observer != nil || rsun != nil {
			return nil, fmt.Errorf("%w: %s has no observer or rsun attribute", ErrInvalid, kind)
		}
		return model.NewFrame(kind, when), nil
	}
}

// FromHeader converts h into its document form.
func FromHeader(h *wcs.Header) HeaderDoc {
	doc := HeaderDoc{DateObs: h.DateObs}
	for _, a := range h.Axes {
		doc.Axes = append(doc.Axes, AxisDoc{Type: a.Type, Unit: a.Unit})
	}
	if h.Observer.Declared() {
		doc.Declared = append(doc.Declared, AttrObserver)
		doc.Observer = observerDoc(h.Observer.Get())
	}
	if h.RSun.Declared() {
		doc.Declared = append(doc.Declared, AttrRSun)
		if rsun := h.RSun.Get(); rsun != nil {
			m := rsun.Metres()
			doc.RSunM = &m
		}
	}
	return doc
}

// ToHeader builds the header the document describes.
func (d HeaderDoc) ToHeader() (*wcs.Header, error) {
	if len(d.Axes) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, wcs.ErrNoAxes)
	}
	h := wcs.NewHeader(len(d.Axes))
	for i, a := range d.Axes {
		h.Axes[i] = wcs.Axis{Type: a.Type, Unit: a.Unit}
	}
	h.DateObs = d.DateObs

	if d.Observer != nil || slices.Contains(d.Declared, AttrObserver) {
		h.Observer.Set(d.Observer.toModel())
	}
	if d.RSunM != nil || slices.Contains(d.Declared, AttrRSun) {
		var rsun *model.Length
		if d.RSunM != nil {
			l := model.Length(*d.RSunM)
			rsun = &l
		}
		h.RSun.Set(rsun)
	}
	return h, nil
}

func observerDoc(o *model.Observer) *ObserverDoc {
	if o == nil {
		return nil
	}
	return &ObserverDoc{Name: o.Name, LonDeg: o.Lon, LatDeg: o.Lat, RadiusM: o.Radius.Metres()}
}

func (d *ObserverDoc) toModel() *model.Observer {
	if d == nil {
		return nil
	}
	return &model.Observer{Name: d.Name, Lon: d.LonDeg, Lat: d.LatDeg, Radius: model.Length(d.RadiusM)}
}
