package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"pipe-viewer/internal/camerarig"
)

// Settings holds viewer configuration. Values come from defaults set in
// code, optionally overridden by a viewer.cfg.json file in the config
// directory. A missing file is not an error; an unreadable one is.
type Settings struct {
	LogLevel string `mapstructure:"logLevel"`

	Window struct {
		Windowed bool `mapstructure:"windowed"`
		Width    int  `mapstructure:"width"`
		Height   int  `mapstructure:"height"`
	} `mapstructure:"window"`

	Ground struct {
		MaxRadiusM     float32 `mapstructure:"maxRadiusM"`
		LevelDistanceM float32 `mapstructure:"levelDistanceM"`
	} `mapstructure:"ground"`

	Rig struct {
		PitchMinRad float32 `mapstructure:"pitchMinRad"`
		PitchMaxRad float32 `mapstructure:"pitchMaxRad"`
		DistMinM    float32 `mapstructure:"distMinM"`
		DistMaxM    float32 `mapstructure:"distMaxM"`
		FovMinDeg   float32 `mapstructure:"fovMinDeg"`
		FovMaxDeg   float32 `mapstructure:"fovMaxDeg"`
	} `mapstructure:"rig"`

	// Simulated platform toggles, for exercising degraded paths on desktop.
	Platform struct {
		TrackingSupported bool `mapstructure:"trackingSupported"`
		CameraAvailable   bool `mapstructure:"cameraAvailable"`
		OrientationDenied bool `mapstructure:"orientationDenied"`
	} `mapstructure:"platform"`

	Pipe struct {
		DiameterMm float64 `mapstructure:"diameterMm"`
		LengthM    float64 `mapstructure:"lengthM"`
		DepthM     float64 `mapstructure:"depthM"`
	} `mapstructure:"pipe"`

	Excavation struct {
		WidthM  float64 `mapstructure:"widthM"`
		LengthM float64 `mapstructure:"lengthM"`
		DepthM  float64 `mapstructure:"depthM"`
	} `mapstructure:"excavation"`
}

// RigLimits converts the configured clamps into camera rig limits.
func (s Settings) RigLimits() camerarig.Limits {
	return camerarig.Limits{
		PitchMin: s.Rig.PitchMinRad, PitchMax: s.Rig.PitchMaxRad,
		DistMin: s.Rig.DistMinM, DistMax: s.Rig.DistMaxM,
		FovMin: s.Rig.FovMinDeg, FovMax: s.Rig.FovMaxDeg,
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")

	v.SetDefault("window.windowed", false)
	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)

	v.SetDefault("ground.maxRadiusM", 30.0)
	v.SetDefault("ground.levelDistanceM", 3.0)

	v.SetDefault("rig.pitchMinRad", 0.1)
	v.SetDefault("rig.pitchMaxRad", 1.4)
	v.SetDefault("rig.distMinM", 0.5)
	v.SetDefault("rig.distMaxM", 30.0)
	v.SetDefault("rig.fovMinDeg", 20.0)
	v.SetDefault("rig.fovMaxDeg", 100.0)

	v.SetDefault("platform.trackingSupported", true)
	v.SetDefault("platform.cameraAvailable", true)
	v.SetDefault("platform.orientationDenied", false)

	v.SetDefault("pipe.diameterMm", 300.0)
	v.SetDefault("pipe.lengthM", 6.0)
	v.SetDefault("pipe.depthM", 1.8)

	v.SetDefault("excavation.widthM", 1.2)
	v.SetDefault("excavation.lengthM", 6.5)
	v.SetDefault("excavation.depthM", 2.2)
}

// Load reads settings from viewer.cfg.json in configDir, falling back to
// defaults when the file does not exist.
func Load(configDir string) (Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("viewer.cfg.json")
	v.SetConfigType("json")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("error decoding config: %w", err)
	}
	return s, nil
}
