package model

import (
	"strings"
	"time"
)

// Kind identifies one of the supported solar reference frames.
type Kind int

const (
	KindUnknown Kind = iota
	KindHelioprojective
	KindHeliocentric
	KindHeliographicStonyhurst
	KindHeliographicCarrington
)

var kindNames = map[Kind]string{
	KindHelioprojective:        "helioprojective",
	KindHeliocentric:           "heliocentric",
	KindHeliographicStonyhurst: "heliographic_stonyhurst",
	KindHeliographicCarrington: "heliographic_carrington",
}

// String returns the canonical lower-case frame name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind maps a frame name back to its Kind. Matching is case-insensitive;
// unrecognised names yield KindUnknown.
func ParseKind(name string) Kind {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return k
		}
	}
	return KindUnknown
}

// Frame is a solar coordinate reference frame. A zero ObservationTime means
// the frame carries no observation time.
type Frame interface {
	Kind() Kind
	ObservationTime() time.Time
}

// ObserverAware is implemented by frames that declare an observer attribute.
// The returned pointer is nil when the attribute is declared but unset.
type ObserverAware interface {
	Frame
	ObserverLocation() *Observer
}

// RadiusAware is implemented by frames that declare a solar radius attribute.
type RadiusAware interface {
	Frame
	SolarRadius() *Length
}

// Helioprojective is the observer-centred projective frame (HPC).
type Helioprojective struct {
	ObsTime  time.Time
	Observer *Observer
	RSun     *Length
}

func (f *Helioprojective) Kind() Kind                  { return KindHelioprojective }
func (f *Helioprojective) ObservationTime() time.Time  { return f.ObsTime }
func (f *Helioprojective) ObserverLocation() *Observer { return f.Observer }
func (f *Helioprojective) SolarRadius() *Length        { return f.RSun }

// Heliocentric is the observer-based Cartesian frame (HCC).
type Heliocentric struct {
	ObsTime  time.Time
	Observer *Observer
}

func (f *Heliocentric) Kind() Kind                  { return KindHeliocentric }
func (f *Heliocentric) ObservationTime() time.Time  { return f.ObsTime }
func (f *Heliocentric) ObserverLocation() *Observer { return f.Observer }

// HeliographicStonyhurst is the Earth-aligned heliographic frame (HGS).
type HeliographicStonyhurst struct {
	ObsTime time.Time
}

func (f *HeliographicStonyhurst) Kind() Kind                 { return KindHeliographicStonyhurst }
func (f *HeliographicStonyhurst) ObservationTime() time.Time { return f.ObsTime }

// HeliographicCarrington is the Sun-rotating heliographic frame (HGC).
type HeliographicCarrington struct {
	ObsTime time.Time
}

func (f *HeliographicCarrington) Kind() Kind                 { return KindHeliographicCarrington }
func (f *HeliographicCarrington) ObservationTime() time.Time { return f.ObsTime }

// KindOf returns the kind of one of the four solar frame types, or
// KindUnknown for anything else, including nil pointers. Unlike Frame.Kind
// it cannot be fooled by a foreign implementation.
func KindOf(f Frame) Kind {
	switch v := f.(type) {
	case *Helioprojective:
		if v != nil {
			return KindHelioprojective
		}
	case *Heliocentric:
		if v != nil {
			return KindHeliocentric
		}
	case *HeliographicStonyhurst:
		if v != nil {
			return KindHeliographicStonyhurst
		}
	case *HeliographicCarrington:
		if v != nil {
			return KindHeliographicCarrington
		}
	}
	return KindUnknown
}

// NewFrame constructs an empty frame of the given kind, or nil for
// KindUnknown.
func NewFrame(k Kind, obsTime time.Time) Frame {
	switch k {
	case KindHelioprojective:
		return &Helioprojective{ObsTime: obsTime}
	case KindHeliocentric:
		return &Heliocentric{ObsTime: obsTime}
	case KindHeliographicStonyhurst:
		return &HeliographicStonyhurst{ObsTime: obsTime}
	case KindHeliographicCarrington:
		return &HeliographicCarrington{ObsTime: obsTime}
	default:
		return nil
	}
}
