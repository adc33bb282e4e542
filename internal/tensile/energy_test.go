package tensile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/strenlab/tensile/internal/tensile"
)

func TestStrainEnergy(t *testing.T) {
	strain := []float64{0, 0.01, 0.02, 0.03}
	stress := []float64{0, 100, 200, 300}

	energy := tensile.StrainEnergy(stress, strain)
	// 0.01·(50 + 150 + 250)
	assert.InDelta(t, 4.5, energy, 1e-12)
	assert.Greater(t, energy, 0.0)
}

func TestTrapezoid_ShortSeries(t *testing.T) {
	assert.Equal(t, 0.0, tensile.Trapezoid(nil, nil))
	assert.Equal(t, 0.0, tensile.Trapezoid([]float64{5}, []float64{1}))
}

func TestTrapezoid_KeepsGivenOrder(t *testing.T) {
	// Descending x integrates to a negative area; nothing is re-sorted.
	assert.InDelta(t, -1.0, tensile.Trapezoid([]float64{1, 1}, []float64{1, 0}), 1e-12)
}

func TestModulusOfResilience(t *testing.T) {
	strain := linspace(0, 0.05, 100)
	stress := scaled(strain, 100000)
	for i := 20; i < len(stress); i++ {
		stress[i] = stress[19]
	}

	resilience := tensile.ModulusOfResilience(stress, strain, 19)
	assert.Greater(t, resilience, 0.0)
	assert.Less(t, resilience, tensile.StrainEnergy(stress, strain))

	// Triangle under the elastic line up to index 19.
	assert.InDelta(t, 0.5*strain[19]*stress[19], resilience, 1e-9)
}

func TestModulusOfResilience_ClampsIndex(t *testing.T) {
	strain := []float64{0, 0.1, 0.2}
	stress := []float64{0, 10, 20}
	assert.Equal(t, tensile.StrainEnergy(stress, strain), tensile.ModulusOfResilience(stress, strain, 99))
	assert.Equal(t, 0.0, tensile.ModulusOfResilience(stress, strain, -1))
}

func TestModulusOfToughness(t *testing.T) {
	strain := linspace(0, 0.5, 100)
	stress := linspace(0, 400, 100)

	toughness := tensile.ModulusOfToughness(stress, strain)
	assert.Greater(t, toughness, 0.0)
	assert.Equal(t, tensile.StrainEnergy(stress, strain), toughness)
	assert.InDelta(t, 100, toughness, 1e-9)
}

func TestEngineIsPure(t *testing.T) {
	strain := linspace(0, 0.2, 40)
	stress := make([]float64, len(strain))
	for i, s := range strain {
		stress[i] = 1000*s + 50
	}
	strainCopy := append([]float64(nil), strain...)
	stressCopy := append([]float64(nil), stress...)

	e1, err1 := tensile.YoungsModulus(stress, strain, 20)
	e2, err2 := tensile.YoungsModulus(stress, strain, 20)
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, e1, e2)

	y1, _ := tensile.OffsetYield(stress, strain, e1, 0.002)
	y2, _ := tensile.OffsetYield(stress, strain, e1, 0.002)
	assert.Equal(t, y1, y2)

	assert.Equal(t, tensile.StrainEnergy(stress, strain), tensile.StrainEnergy(stress, strain))
	assert.Equal(t, tensile.TrueStrain(strain), tensile.TrueStrain(strain))

	assert.Equal(t, strainCopy, strain)
	assert.Equal(t, stressCopy, stress)
}
