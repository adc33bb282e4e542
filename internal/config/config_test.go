package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strenlab/tensile/internal/dataset"
)

func TestLoad_YAML(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "batch.yaml"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("testdata", "results"), cfg.Output)
	assert.Equal(t, filepath.Join("testdata", "results", "alloys.xlsx"), cfg.Workbook)
	assert.Equal(t, filepath.Join("testdata", "tensile.db"), cfg.Database)
	assert.True(t, cfg.PlotsEnabled())
	require.Len(t, cfg.Specimens, 3)

	cunisi := cfg.Specimens[0]
	assert.Equal(t, "CuNiSi (soft, ductile)", cunisi.Label)
	assert.Equal(t, filepath.Join("testdata", "data", "CuNiSi.lis"), cunisi.File)
	assert.Equal(t, "lis", cunisi.Format)

	opts := cfg.AnalysisOptions(cunisi)
	assert.Equal(t, 30, opts.ElasticPoints)
	assert.Equal(t, 0.002, opts.Offset)
	assert.Equal(t, 10, opts.PowerLawTrim)
	assert.False(t, opts.StrictPowerLaw)

	cusn := cfg.Specimens[1]
	assert.Equal(t, "CuSn12", cusn.Label)
	opts = cfg.AnalysisOptions(cusn)
	assert.Equal(t, 20, opts.ElasticPoints)
	assert.True(t, opts.StrictPowerLaw)

	bar := cfg.Specimens[2]
	assert.Equal(t, "/abs/bar.csv", bar.File)
	lo := cfg.LoadOptions(bar)
	assert.Equal(t, dataset.FormatCSV, lo.Format)
	assert.Equal(t, "Bar", lo.Name)
	assert.Equal(t, 25.0, lo.GaugeLength)
	assert.Equal(t, 10.0, lo.Diameter)
}

func TestLoad_CUE(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "batch.cue"))
	require.NoError(t, err)

	assert.False(t, cfg.PlotsEnabled())
	assert.Equal(t, filepath.Join("testdata", "results", DefaultWorkbook), cfg.Workbook)
	assert.Empty(t, cfg.Database)
	require.Len(t, cfg.Specimens, 2)

	opts := cfg.AnalysisOptions(cfg.Specimens[0])
	assert.Equal(t, 0.001, opts.Offset)
	assert.Equal(t, 5, opts.PowerLawTrim)
	assert.Equal(t, 30, opts.ElasticPoints)

	assert.Equal(t, 25.0, cfg.LoadOptions(cfg.Specimens[0]).GaugeLength)
	lo := cfg.LoadOptions(cfg.Specimens[1])
	assert.Equal(t, 50.0, lo.GaugeLength)
	assert.Equal(t, 12.5, lo.Area)
	assert.Equal(t, dataset.FormatCSV, lo.Format)
}

func TestParseCUE_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"no specimens", `specimens: []`},
		{"missing file", `specimens: [{name: "a"}]`},
		{"unknown field", `specimens: [{name: "a", file: "a.lis", colour: "red"}]`},
		{"bad format", `specimens: [{name: "a", file: "a.dat", format: "xls"}]`},
		{"elastic points too small", `defaults: elastic_points: 1
specimens: [{name: "a", file: "a.lis"}]`},
		{"negative gauge", `specimens: [{name: "a", file: "a.lis", gauge_length_mm: -5}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCUE([]byte(tt.src), "test.cue")
			assert.Error(t, err)
		})
	}
}

func TestParseYAML_UnknownField(t *testing.T) {
	_, err := ParseYAML([]byte("specimen:\n  - name: a\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestValidate(t *testing.T) {
	one := 1
	neg := -1.0
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"empty", Config{}, "non-empty"},
		{"no name", Config{Specimens: []Specimen{{File: "a.lis", Format: "lis"}}}, "name is required"},
		{"duplicate", Config{Specimens: []Specimen{
			{Name: "a", File: "a.lis", Format: "lis"},
			{Name: "a", File: "b.lis", Format: "lis"},
		}}, "duplicate name"},
		{"no file", Config{Specimens: []Specimen{{Name: "a", Format: "lis"}}}, "file is required"},
		{"format", Config{Specimens: []Specimen{{Name: "a", File: "a.dat"}}}, "unknown format"},
		{"options", Config{
			Defaults:  Overrides{ElasticPoints: &one},
			Specimens: []Specimen{{Name: "a", File: "a.lis", Format: "lis"}},
		}, "elastic points"},
		{"gauge", Config{Specimens: []Specimen{
			{Name: "a", File: "a.lis", Format: "lis", Overrides: Overrides{GaugeLength: &neg}},
		}}, "gauge length"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "batch.toml")
	require.NoError(t, os.WriteFile(path, []byte("x = 1"), 0o644))
	_, err = Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config extension")
}
