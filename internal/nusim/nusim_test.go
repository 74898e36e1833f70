// Public domain.

package nusim_test

import (
	"math"
	"path/filepath"
	"testing"

	xrand "golang.org/x/exp/rand"

	"github.com/soniakeys/unit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soniakeys/nuscan/internal/nuastro"
	"github.com/soniakeys/nuscan/internal/nusim"
)

func TestSampleRoundTrip(t *testing.T) {
	s := nusim.Sample{Index: 1.5, Energy: map[string][]float64{
		"IC86_I": {1e3, 2e4, 5e2},
	}}
	fn := filepath.Join(t.TempDir(), nusim.Sfn)
	require.NoError(t, s.WriteFile(fn))
	got, err := nusim.ReadFile(fn)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestSampleValidate(t *testing.T) {
	assert.Error(t, (&nusim.Sample{Index: 1.5}).Validate())
	assert.Error(t, (&nusim.Sample{
		Index: 0, Energy: map[string][]float64{"a": {1}}}).Validate())
	assert.Error(t, (&nusim.Sample{
		Index: 1.5, Energy: map[string][]float64{"a": {}}}).Validate())
}

func TestPooled(t *testing.T) {
	s := nusim.Sample{Index: 1.5, Energy: map[string][]float64{
		"a": {1, 2}, "b": {3},
	}}
	pool, err := s.Pooled([]string{"a", "b"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []float64{1, 2, 3}, pool)

	_, err = s.Pooled([]string{"a", "c"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "c")
}

func TestPowerLaw(t *testing.T) {
	rnd := xrand.New(&xrand.PCGSource{})
	rnd.Seed(3)
	for i := 0; i < 1000; i++ {
		e := nusim.PowerLaw(rnd, 3.7, 1e2, 1e9)
		require.True(t, e >= 1e2 && e <= 1e9, "energy %g out of range", e)
	}
	// steep spectrum concentrates near the low edge
	var below float64
	for i := 0; i < 1000; i++ {
		if nusim.PowerLaw(rnd, 3.7, 1e2, 1e9) < 1e3 {
			below++
		}
	}
	assert.Greater(t, below, 900.0)
}

func TestGenerateBackground(t *testing.T) {
	rnd := xrand.New(&xrand.PCGSource{})
	rnd.Seed(3)
	c := nusim.GenerateBackground(rnd, []string{"a", "b"}, 500,
		3.7, unit.AngleFromDeg(1))
	require.NoError(t, c.Validate())
	assert.Equal(t, 1000, c.Len())
	for _, p := range c.Periods {
		for i := range p.RA {
			assert.True(t, p.RA[i] >= 0 && p.RA[i] < 2*math.Pi)
			assert.True(t, p.Dec[i] >= -math.Pi/2 && p.Dec[i] <= math.Pi/2)
		}
	}
}

func TestGenerateRepeatable(t *testing.T) {
	gen := func() *nusim.Sample {
		rnd := xrand.New(&xrand.PCGSource{})
		rnd.Seed(3)
		return nusim.GenerateSample(rnd, []string{"a"}, 100, 1.5)
	}
	assert.Equal(t, gen(), gen())
}

func TestInjectSource(t *testing.T) {
	rnd := xrand.New(&xrand.PCGSource{})
	rnd.Seed(3)
	c := nusim.GenerateBackground(rnd, []string{"a"}, 10, 3.7, unit.AngleFromDeg(1))
	src := nuastro.Equa(1, .5)
	nusim.InjectSource(rnd, c, "a", src, 50, 2, unit.AngleFromDeg(1), unit.AngleFromDeg(1))
	p := c.Period("a")
	require.Equal(t, 60, p.Len())
	for i := 10; i < 60; i++ {
		evt := nuastro.Equa(p.RA[i], p.Dec[i])
		assert.LessOrEqual(t, nuastro.Separation(evt, src),
			unit.AngleFromDeg(1).Rad()+1e-9)
	}
}
