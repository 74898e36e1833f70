// Public domain.

package nucat_test

import (
	"path/filepath"
	"testing"

	"github.com/soniakeys/unit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soniakeys/nuscan/internal/nucat"
)

func testCatalog() nucat.Catalog {
	return nucat.Catalog{Periods: []nucat.Period{{
		Name:   "IC86_I",
		RA:     []float64{.1, 2.2},
		Dec:    []float64{.5, -.5},
		AngErr: []unit.Angle{unit.AngleFromDeg(1), unit.AngleFromDeg(.8)},
		Energy: []float64{150, 4e3},
		MJD:    []float64{56043.5, 56100.2},
	}}}
}

func TestRoundTrip(t *testing.T) {
	c := testCatalog()
	fn := filepath.Join(t.TempDir(), nucat.Efn)
	require.NoError(t, c.WriteFile(fn))
	got, err := nucat.ReadFile(fn)
	require.NoError(t, err)
	assert.Equal(t, c, got)
	assert.Equal(t, 2, got.Len())
}

func TestValidate(t *testing.T) {
	c := testCatalog()
	require.NoError(t, c.Validate())

	c.Periods[0].RA = c.Periods[0].RA[:1]
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IC86_I")

	assert.Error(t, (&nucat.Catalog{}).Validate())
}

func TestWriteFileRejectsInvalid(t *testing.T) {
	c := testCatalog()
	c.Periods[0].Dec = nil
	fn := filepath.Join(t.TempDir(), nucat.Efn)
	assert.Error(t, c.WriteFile(fn))
}

func TestPeriodLookup(t *testing.T) {
	c := testCatalog()
	require.NotNil(t, c.Period("IC86_I"))
	assert.Nil(t, c.Period("IC40"))
	assert.Equal(t, []string{"IC86_I"}, c.Names())
}
