// Package section describes specimen cross-sections and their original area.
package section

import "fmt"

// Kind is the shape of a cross-section.
type Kind string

const (
	KindRound   Kind = "round"
	KindFlat    Kind = "flat"
	KindTube    Kind = "tube"
	KindPolygon Kind = "polygon"
)

// Section is the original cross-section of a tensile specimen.
// Polygon sections are given by their vertices in a local x-y system; the
// vertex order may be clockwise or counter-clockwise but the outline must not
// cross itself.
type Section struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Kind        Kind   `json:"kind"`

	Diameter      float64 `json:"diameter,omitempty"`       // mm, round and tube outer
	InnerDiameter float64 `json:"inner_diameter,omitempty"` // mm, tube
	Width         float64 `json:"width,omitempty"`          // mm, flat
	Thickness     float64 `json:"thickness,omitempty"`      // mm, flat

	Vertices []Point `json:"vertices,omitempty"` // mm, polygon
}

// Point represents a 2D coordinate
type Point struct {
	X float64 `json:"x"` // mm
	Y float64 `json:"y"` // mm
}

// Properties holds calculated geometric properties
type Properties struct {
	Area float64 // mm²

	// Overall dimensions
	Width  float64 // mm
	Height float64 // mm

	// Centroid location
	CentroidX float64 // mm
	CentroidY float64 // mm

	// Bounding box
	MinX float64
	MaxX float64
	MinY float64
	MaxY float64
}

// Round returns a solid round section.
func Round(diameter float64) *Section {
	return &Section{Kind: KindRound, Diameter: diameter}
}

// Flat returns a rectangular section of a flat specimen.
func Flat(width, thickness float64) *Section {
	return &Section{Kind: KindFlat, Width: width, Thickness: thickness}
}

// Tube returns a hollow round section.
func Tube(outer, inner float64) *Section {
	return &Section{Kind: KindTube, Diameter: outer, InnerDiameter: inner}
}

// Validate checks if the section definition is valid
func (s *Section) Validate() error {
	switch s.Kind {
	case KindRound:
		if s.Diameter <= 0 {
			return &ValidationError{"diameter must be positive"}
		}
	case KindFlat:
		if s.Width <= 0 || s.Thickness <= 0 {
			return &ValidationError{"width and thickness must be positive"}
		}
	case KindTube:
		if s.Diameter <= 0 {
			return &ValidationError{"outer diameter must be positive"}
		}
		if s.InnerDiameter <= 0 || s.InnerDiameter >= s.Diameter {
			return &ValidationError{msg: fmt.Sprintf("inner diameter must be between 0 and %g", s.Diameter)}
		}
	case KindPolygon:
		if len(s.Vertices) < 3 {
			return &ValidationError{"polygon section must have at least 3 vertices"}
		}
	default:
		return &ValidationError{msg: fmt.Sprintf("unknown section kind %q", s.Kind)}
	}
	return nil
}

// ValidationError represents a section validation error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}
