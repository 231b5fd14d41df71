package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "chain_cavity", cfg.Model)
	assert.Equal(t, "rk4", cfg.Integrator)
	assert.Equal(t, DefaultDt, cfg.Dt)
	assert.Equal(t, DefaultDuration, cfg.Duration)
	assert.True(t, cfg.CSV)
	assert.False(t, cfg.Figure.Disable)
}

func TestLoadSaveRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Model = "two_qubit"
	cfg.Dt = 0.001
	cfg.Observables = []string{"population", "concurrence"}
	cfg.Params = map[string]float64{"j": 0.7}

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Model, loaded.Model)
	assert.Equal(t, cfg.Dt, loaded.Dt)
	assert.Equal(t, cfg.Observables, loaded.Observables)
	assert.Equal(t, 0.7, loaded.Params["j"])
}

func TestLoadFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: jaynes_cummings\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "jaynes_cummings", cfg.Model)
	assert.Equal(t, DefaultDt, cfg.Dt)
	assert.Equal(t, DefaultIntegrator, cfg.Integrator)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestPresets(t *testing.T) {
	baseline := GetPreset("chain_cavity", "baseline")
	require.NotNil(t, baseline)
	assert.Equal(t, 0.005, baseline.Dt)
	assert.Equal(t, 10.0, baseline.Duration)

	assert.Nil(t, GetPreset("chain_cavity", "nope"))
	assert.Nil(t, GetPreset("nope", "baseline"))

	names := ListPresets("chain_cavity")
	assert.Contains(t, names, "baseline")
	assert.Contains(t, names, "fast")

	// Every preset must name its own model.
	for model, presets := range Presets {
		for name, cfg := range presets {
			assert.Equal(t, model, cfg.Model, "preset %s/%s", model, name)
		}
	}
}
