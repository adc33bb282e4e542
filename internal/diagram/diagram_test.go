package diagram

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strenlab/tensile/internal/dataset"
	"github.com/strenlab/tensile/internal/material"
)

func analyzed(t *testing.T) CurveDiagramData {
	t.Helper()
	const n = 301
	strain := make([]float64, n)
	stress := make([]float64, n)
	for i := range strain {
		s := 0.3 * float64(i) / float64(n-1)
		strain[i] = s
		switch {
		case s <= 0.03:
			stress[i] = 10000 * s
		case s <= 0.25:
			stress[i] = 300 + 150*math.Sqrt((s-0.03)/0.22)
		default:
			stress[i] = 450 - 1500*(s-0.25)
		}
	}

	r, err := material.Analyze(&dataset.Curve{Name: "CuSn12", Strain: strain, Stress: stress}, material.DefaultOptions())
	require.NoError(t, err)
	require.True(t, r.PowerLawFitted)
	return FromResult(r)
}

func assertFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestExportDiagrams(t *testing.T) {
	data := analyzed(t)
	dir := filepath.Join(t.TempDir(), "figures")

	tests := []struct {
		name   string
		file   string
		export func(CurveDiagramData, string) error
	}{
		{"engineering", "engineering.png", ExportEngineeringDiagram},
		{"true", "true.svg", ExportTrueDiagram},
		{"power law", "power_law.png", ExportPowerLawDiagram},
		{"energy", "energy.pdf", ExportEnergyDiagram},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			require.NoError(t, tt.export(data, path))
			assertFile(t, path)
		})
	}
}

func TestExportDiagram_DefaultExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curve")
	require.NoError(t, ExportEngineeringDiagram(analyzed(t), path))
	assertFile(t, path+".png")
}

func TestExportComparisonDiagram(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comparison.png")
	series := []Series{
		{Label: "soft", X: []float64{0, 0.1, 0.2}, Y: []float64{0, 150, 200}},
		{Label: "strong", X: []float64{0, 0.05, 0.1}, Y: []float64{0, 400, 600}},
	}
	require.NoError(t, ExportComparisonDiagram("Copper Alloy Comparison", series, path))
	assertFile(t, path)

	assert.Error(t, ExportComparisonDiagram("empty", nil, path))
}

func TestExportDiagrams_MissingData(t *testing.T) {
	dir := t.TempDir()
	empty := CurveDiagramData{Name: "empty"}

	assert.Error(t, ExportEngineeringDiagram(empty, filepath.Join(dir, "a.png")))
	assert.Error(t, ExportTrueDiagram(empty, filepath.Join(dir, "b.png")))
	assert.Error(t, ExportPowerLawDiagram(empty, filepath.Join(dir, "c.png")))
	assert.Error(t, ExportEnergyDiagram(empty, filepath.Join(dir, "d.png")))
}

func TestDrawCurve(t *testing.T) {
	out := DrawCurve(analyzed(t), 60, 12)
	assert.Contains(t, out, "CuSn12: stress (MPa)")
	assert.Contains(t, out, "UTS")
	assert.Contains(t, out, "Yield")

	assert.Empty(t, DrawCurve(CurveDiagramData{}, 60, 12))
}

func TestResample(t *testing.T) {
	got := resample([]float64{0, 1, 2}, []float64{0, 10, 40}, 5)
	assert.InDeltaSlice(t, []float64{0, 5, 10, 25, 40}, got, 1e-12)

	assert.Equal(t, []float64{7}, resample([]float64{1}, []float64{7}, 5))
}

func TestDrawSummaryBox(t *testing.T) {
	box := DrawSummaryBox("CuNiSi", []string{"E = 120 GPa", "σy = 250.0 MPa"})
	lines := strings.Split(strings.TrimRight(box, "\n"), "\n")
	require.Len(t, lines, 5)

	width := len([]rune(lines[0]))
	for _, line := range lines {
		assert.Equal(t, width, len([]rune(line)), "line %q", line)
	}
	assert.Contains(t, box, "σy = 250.0 MPa")
}
