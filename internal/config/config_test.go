package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	s, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, float32(30), s.Ground.MaxRadiusM)
	assert.Equal(t, float32(3), s.Ground.LevelDistanceM)
	assert.True(t, s.Platform.TrackingSupported)
	assert.Equal(t, 300.0, s.Pipe.DiameterMm)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg := `{"ground": {"maxRadiusM": 12}, "platform": {"trackingSupported": false}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "viewer.cfg.json"), []byte(cfg), 0644))

	s, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, float32(12), s.Ground.MaxRadiusM)
	assert.False(t, s.Platform.TrackingSupported)
	// Untouched keys keep their defaults.
	assert.Equal(t, float32(3), s.Ground.LevelDistanceM)
}

func TestLoad_InvalidFileIsAnError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "viewer.cfg.json"), []byte("{not json"), 0644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestRigLimits_MapsClamps(t *testing.T) {
	s, err := Load(t.TempDir())
	require.NoError(t, err)

	lim := s.RigLimits()
	assert.Equal(t, float32(0.1), lim.PitchMin)
	assert.Equal(t, float32(1.4), lim.PitchMax)
	assert.Equal(t, float32(0.5), lim.DistMin)
	assert.Equal(t, float32(30), lim.DistMax)
	assert.Equal(t, float32(20), lim.FovMin)
	assert.Equal(t, float32(100), lim.FovMax)
}
