package section

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArea_Shapes(t *testing.T) {
	tests := []struct {
		name string
		s    *Section
		want float64
	}{
		{"round", Round(10), math.Pi * 25},
		{"flat", Flat(12.5, 2), 25},
		{"tube", Tube(10, 8), math.Pi * (25 - 16)},
		{"triangle", &Section{Kind: KindPolygon, Vertices: []Point{{0, 0}, {4, 0}, {0, 3}}}, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.s.Area()
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCalculateProperties_PolygonOrientation(t *testing.T) {
	ccw := &Section{Kind: KindPolygon, Vertices: []Point{{0, 0}, {6, 0}, {6, 2}, {0, 2}}}
	cw := &Section{Kind: KindPolygon, Vertices: []Point{{0, 0}, {0, 2}, {6, 2}, {6, 0}}}

	for _, s := range []*Section{ccw, cw} {
		props, err := s.CalculateProperties()
		require.NoError(t, err)
		assert.InDelta(t, 12, props.Area, 1e-12)
		assert.InDelta(t, 3, props.CentroidX, 1e-12)
		assert.InDelta(t, 1, props.CentroidY, 1e-12)
		assert.Equal(t, 6.0, props.Width)
		assert.Equal(t, 2.0, props.Height)
	}
}

func TestCalculateProperties_Round(t *testing.T) {
	props, err := Round(8).CalculateProperties()
	require.NoError(t, err)
	assert.Equal(t, 8.0, props.Width)
	assert.Equal(t, 8.0, props.Height)
	assert.Zero(t, props.CentroidX)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		s    *Section
	}{
		{"round zero", Round(0)},
		{"flat negative", Flat(-1, 2)},
		{"tube no hole", Tube(10, 0)},
		{"tube inverted", Tube(10, 10)},
		{"polygon two points", &Section{Kind: KindPolygon, Vertices: []Point{{0, 0}, {1, 1}}}},
		{"unknown kind", &Section{Kind: "hexagon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)

			_, err = tt.s.Area()
			assert.Error(t, err)
		})
	}
}

func TestArea_DegeneratePolygon(t *testing.T) {
	s := &Section{Kind: KindPolygon, Vertices: []Point{{0, 0}, {1, 1}, {2, 2}}}
	_, err := s.Area()
	assert.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	s, err := LoadFromFile(filepath.Join("testdata", "i_profile.json"))
	require.NoError(t, err)
	assert.Equal(t, "I-profile", s.Name)

	props, err := s.CalculateProperties()
	require.NoError(t, err)
	// two 20x4 flanges and a 4x12 web
	assert.InDelta(t, 208, props.Area, 1e-9)
	assert.InDelta(t, 10, props.CentroidX, 1e-9)
	assert.InDelta(t, 10, props.CentroidY, 1e-9)

	_, err = LoadFromFile(filepath.Join("testdata", "bad_tube.json"))
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = LoadFromFile(filepath.Join("testdata", "missing.json"))
	assert.Error(t, err)
}
