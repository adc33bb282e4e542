package section

import (
	"errors"
	"math"

	"github.com/strenlab/tensile/internal/tensile"
)

// Area returns the cross-sectional area in mm².
func (s *Section) Area() (float64, error) {
	props, err := s.CalculateProperties()
	if err != nil {
		return 0, err
	}
	return props.Area, nil
}

// CalculateProperties computes geometric properties of the section
func (s *Section) CalculateProperties() (*Properties, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	props := &Properties{}
	switch s.Kind {
	case KindRound, KindTube:
		area, err := tensile.CrossSectionalArea(s.Diameter)
		if err != nil {
			return nil, err
		}
		if s.Kind == KindTube {
			hole, err := tensile.CrossSectionalArea(s.InnerDiameter)
			if err != nil {
				return nil, err
			}
			area -= hole
		}
		r := s.Diameter / 2
		props.Area = area
		props.MinX, props.MaxX = -r, r
		props.MinY, props.MaxY = -r, r

	case KindFlat:
		props.Area = s.Width * s.Thickness
		props.MaxX, props.MaxY = s.Width, s.Thickness
		props.CentroidX, props.CentroidY = s.Width/2, s.Thickness/2

	case KindPolygon:
		props.MinX, props.MaxX = s.Vertices[0].X, s.Vertices[0].X
		props.MinY, props.MaxY = s.Vertices[0].Y, s.Vertices[0].Y
		for _, v := range s.Vertices {
			props.MinX = math.Min(props.MinX, v.X)
			props.MaxX = math.Max(props.MaxX, v.X)
			props.MinY = math.Min(props.MinY, v.Y)
			props.MaxY = math.Max(props.MaxY, v.Y)
		}
		props.Area, props.CentroidX, props.CentroidY = s.calculateAreaAndCentroid()
		if props.Area == 0 {
			return nil, errors.New("polygon section has zero area")
		}
	}

	props.Width = props.MaxX - props.MinX
	props.Height = props.MaxY - props.MinY
	return props, nil
}

// calculateAreaAndCentroid uses the shoelace formula
func (s *Section) calculateAreaAndCentroid() (area, cx, cy float64) {
	n := len(s.Vertices)
	if n < 3 {
		return 0, 0, 0
	}

	var signedArea float64
	var sumX, sumY float64

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := s.Vertices[i].X*s.Vertices[j].Y - s.Vertices[j].X*s.Vertices[i].Y
		signedArea += cross
		sumX += (s.Vertices[i].X + s.Vertices[j].X) * cross
		sumY += (s.Vertices[i].Y + s.Vertices[j].Y) * cross
	}

	signedArea /= 2
	area = math.Abs(signedArea)

	if area > 0 {
		cx = sumX / (6 * signedArea)
		cy = sumY / (6 * signedArea)
	}

	return area, cx, cy
}
