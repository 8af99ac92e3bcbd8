package calibration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveKnownVariant(t *testing.T) {
	rec, err := Resolve(VariantGrand90L)
	require.NoError(t, err)
	assert.Equal(t, VariantGrand90L, rec.Variant)
	assert.Equal(t, 120.0, rec.MaxSteerAngleDeg)
	assert.True(t, rec.PremiumCluster)
}

func TestResolveUnknownVariantFails(t *testing.T) {
	_, err := Resolve("hovercraft")
	assert.Error(t, err)
}

func TestResolveReturnsIndependentCopies(t *testing.T) {
	a, err := Resolve(VariantSedan)
	require.NoError(t, err)
	a.MaxSteerAngleDeg = 1

	b, err := Resolve(VariantSedan)
	require.NoError(t, err)
	assert.Equal(t, 90.0, b.MaxSteerAngleDeg)
}

func TestValidateRejectsBadBounds(t *testing.T) {
	rec := Record{Variant: VariantSedan}
	assert.Error(t, rec.Validate())

	rec = Record{Variant: VariantSedan, MaxSteerAngleDeg: 90, SteerBus: 7}
	assert.Error(t, rec.Validate())
}

func TestLoadFileOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "variants.yml")
	yml := `variants:
  - variant: sedan
    mass_kg: 1600
    wheelbase_m: 2.84
    steer_ratio: 16.5
    max_steer_angle_deg: 100
    cruise_bus: 1
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0644))

	rec, err := LoadFile(path, VariantSedan)
	require.NoError(t, err)
	assert.Equal(t, 100.0, rec.MaxSteerAngleDeg)
	assert.Equal(t, 1, rec.CruiseBus)

	// Variants absent from the file fall back to the built-in table.
	rec, err = LoadFile(path, VariantSUV)
	require.NoError(t, err)
	assert.Equal(t, 90.0, rec.MaxSteerAngleDeg)
}
