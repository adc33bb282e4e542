package export

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/strenlab/tensile/internal/dataset"
	"github.com/strenlab/tensile/internal/material"
	"github.com/strenlab/tensile/internal/tensile"
)

func TestWriteCurveCSV_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "curve.csv")
	curve := &dataset.Curve{
		Name:   "CuNiSi",
		Strain: []float64{0, 0.001, 0.0025},
		Stress: []float64{0, 120.5, 251},
	}
	require.NoError(t, WriteCurveCSV(path, curve))

	back, err := dataset.Load(path, dataset.LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, curve.Strain, back.Strain)
	assert.Equal(t, curve.Stress, back.Stress)
	assert.Equal(t, "curve", back.Name)
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "a_b_c", SheetName("a/b:c"))
	assert.Equal(t, "Specimen", SheetName(""))
	assert.Equal(t, "Specimen", SheetName("''"))

	long := strings.Repeat("x", 40)
	assert.Len(t, SheetName(long), maxSheetName)
}

func TestUniqueSheetName(t *testing.T) {
	used := map[string]bool{"summary": true}
	assert.Equal(t, "CuNiSi", uniqueSheetName("CuNiSi", used))
	assert.Equal(t, "CuNiSi (2)", uniqueSheetName("CuNiSi", used))
	assert.Equal(t, "cunisi (3)", uniqueSheetName("cunisi", used))
	assert.Equal(t, "Summary (2)", uniqueSheetName("Summary", used))
}

func TestWriteWorkbook(t *testing.T) {
	results := []*material.Result{
		{
			Name:           "CuNiSi",
			Strain:         []float64{0, 0.01, 0.02},
			Stress:         []float64{0, 100, 150},
			TrueStrain:     []float64{0, 0.00995},
			TrueStress:     []float64{0, 101},
			YoungsModulus:  10000,
			Offset:         0.002,
			Yield:          tensile.YieldPoint{Stress: 100, Strain: 0.01, Index: 1, Found: true},
			UTS:            150,
			UTSStrain:      0.02,
			UTSIndex:       2,
			PowerLaw:       tensile.PowerLaw{A: 600, N: 0.3},
			PowerLawFitted: true,
			NeckingStrain:  0.3,
			Resilience:     0.5,
			Toughness:      2.25,
			FractureStrain: 0.02,
		},
		{
			Name:   "CuSn12",
			Strain: []float64{0, 0.001},
			Stress: []float64{0, 90},
			UTS:    90,
		},
	}
	path := filepath.Join(t.TempDir(), "results.xlsx")
	require.NoError(t, WriteWorkbook(path, results))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "CuNiSi", "CuSn12"}, f.GetSheetList())

	rows, err := f.GetRows("Summary")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Specimen", rows[0][0])
	assert.Equal(t, "CuNiSi", rows[1][0])
	assert.Equal(t, "10000", rows[1][2])
	assert.Equal(t, "0.3", rows[1][10])
	assert.Equal(t, "CuSn12", rows[2][0])

	rows, err = f.GetRows("CuNiSi")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"strain_e", "stress_e_MPa", "strain_t", "stress_t_MPa"}, rows[0])
	assert.Equal(t, []string{"0.01", "100", "0.00995", "101"}, rows[2])
	assert.Equal(t, []string{"0.02", "150"}, rows[3])
}

func TestWriteWorkbook_SpecimenNamedSummary(t *testing.T) {
	results := []*material.Result{
		{Name: "summary", Strain: []float64{0, 0.01}, Stress: []float64{0, 80}, UTS: 80},
		{Name: "Summary", Strain: []float64{0, 0.02}, Stress: []float64{0, 90}, UTS: 90},
	}
	path := filepath.Join(t.TempDir(), "results.xlsx")
	require.NoError(t, WriteWorkbook(path, results))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "summary (2)", "Summary (3)"}, f.GetSheetList())

	rows, err := f.GetRows("Summary")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Specimen", rows[0][0])
	assert.Equal(t, "summary", rows[1][0])

	rows, err = f.GetRows("Summary (3)")
	require.NoError(t, err)
	assert.Equal(t, []string{"0.02", "90"}, rows[2])
}
