// Package wcs models the subset of a FITS world coordinate system header
// that solar frame mapping needs: axis types and units, the observation date,
// plus two extension attributes (observer and solar radius) that map loaders
// attach and that the base FITS-WCS keyword set does not define.
package wcs

import (
	"errors"
	"strings"

	"github.com/signalsfoundry/solarwcs/model"
)

// ErrNoAxes is returned when a FITS header declares no world coordinate axes.
var ErrNoAxes = errors.New("wcs: header has no coordinate axes")

// Axis is a single world coordinate axis.
type Axis struct {
	Type string // CTYPEi, e.g. "HPLN-TAN"
	Unit string // CUNITi, e.g. "arcsec"
}

// Prefix returns the physical-quantity part of the axis type: the first four
// characters, or the whole code when it is shorter.
func (a Axis) Prefix() string {
	if len(a.Type) < 4 {
		return a.Type
	}
	return a.Type[:4]
}

// Header is a world coordinate system description.
type Header struct {
	Axes    []Axis
	DateObs string

	// Extension attributes. An undeclared attribute and a declared but unset
	// one are treated the same by readers; writers record which it was.
	Observer Attr[model.Observer]
	RSun     Attr[model.Length]
}

// NewHeader returns a header with naxis empty axes.
func NewHeader(naxis int) *Header {
	if naxis < 0 {
		naxis = 0
	}
	return &Header{Axes: make([]Axis, naxis)}
}

// Naxis returns the number of world coordinate axes.
func (h *Header) Naxis() int { return len(h.Axes) }

// Types returns the axis type codes in axis order.
func (h *Header) Types() []string {
	out := make([]string, len(h.Axes))
	for i, a := range h.Axes {
		out[i] = a.Type
	}
	return out
}

// Units returns the axis units in axis order.
func (h *Header) Units() []string {
	out := make([]string, len(h.Axes))
	for i, a := range h.Axes {
		out[i] = a.Unit
	}
	return out
}

// Clone returns a deep copy of h.
func (h *Header) Clone() *Header {
	c := *h
	c.Axes = append([]Axis(nil), h.Axes...)
	c.Observer = h.Observer.clone()
	c.RSun = h.RSun.clone()
	return &c
}

// Celestial returns a two-axis header holding only the celestial longitude
// and latitude axes of h, in that order. Axis types matching ??LN* or RA--*
// count as longitude, ??LT* or DEC-* as latitude. It reports false unless h
// has exactly one axis of each kind.
func (h *Header) Celestial() (*Header, bool) {
	lon, lat := -1, -1
	for i, a := range h.Axes {
		switch {
		case isLongitude(a.Type):
			if lon >= 0 {
				return nil, false
			}
			lon = i
		case isLatitude(a.Type):
			if lat >= 0 {
				return nil, false
			}
			lat = i
		}
	}
	if lon < 0 || lat < 0 {
		return nil, false
	}

	sub := h.Clone()
	sub.Axes = []Axis{h.Axes[lon], h.Axes[lat]}
	return sub, true
}

func isLongitude(ctype string) bool {
	p := strings.ToUpper(Axis{Type: ctype}.Prefix())
	return (len(p) == 4 && p[2:] == "LN") || p == "RA--"
}

func isLatitude(ctype string) bool {
	p := strings.ToUpper(Axis{Type: ctype}.Prefix())
	return (len(p) == 4 && p[2:] == "LT") || p == "DEC-"
}
