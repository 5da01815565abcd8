package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pipe-viewer/internal/assets"
	"pipe-viewer/internal/camerarig"
	"pipe-viewer/internal/config"
	"pipe-viewer/internal/debug"
	"pipe-viewer/internal/graphics"
	"pipe-viewer/internal/logging"
	"pipe-viewer/internal/projection"
	"pipe-viewer/internal/render"
	"pipe-viewer/internal/session"
	"pipe-viewer/internal/tracking"
)

var (
	flagConfigDir    string
	flagFallbackOnly bool
	flagWindowed     bool
)

func main() {
	root := &cobra.Command{
		Use:   "viewer",
		Short: "Overlay 1:1-scale sewer pipe and trench models on a live view",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
		SilenceUsage: true,
	}
	root.Flags().StringVar(&flagConfigDir, "config", ".", "directory containing viewer.cfg.json")
	root.Flags().BoolVar(&flagFallbackOnly, "fallback-only", false, "skip device tracking and start in manual placement mode")
	root.Flags().BoolVar(&flagWindowed, "windowed", false, "run in a window instead of fullscreen")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(flagConfigDir)
	if err != nil {
		return err
	}
	log := logging.New(cfg.LogLevel)

	platform := tracking.NewSimulatedPlatform()
	platform.Supported = cfg.Platform.TrackingSupported
	sensors := tracking.NewSimulatedSensors()
	sensors.Denied = cfg.Platform.OrientationDenied
	camera := tracking.NewSimulatedCamera()
	camera.Available = cfg.Platform.CameraAvailable

	projector := projection.NewGroundProjector(cfg.Ground.MaxRadiusM, cfg.Ground.LevelDistanceM)
	ctx := session.NewContext(log, platform, sensors, camera, projector)
	rig := camerarig.NewRig(cfg.RigLimits())

	pipe := assets.NewPipeAssembly(assets.PipeParams{
		DiameterMm: cfg.Pipe.DiameterMm,
		LengthM:    cfg.Pipe.LengthM,
		DepthM:     cfg.Pipe.DepthM,
	})
	excavation := assets.NewExcavationVolume(assets.ExcavationParams{
		WidthM:  cfg.Excavation.WidthM,
		LengthM: cfg.Excavation.LengthM,
		DepthM:  cfg.Excavation.DepthM,
	})
	defer pipe.Unload()
	defer excavation.Unload()

	renderer := render.New(pipe, excavation)
	dbg := debug.New()
	dbg.ShowFPS = true
	dbg.ShowSession = true

	if flagFallbackOnly {
		ctx.StartFallback()
	} else {
		ctx.StartTracked()
	}

	loop := newViewerLoop(ctx, rig, platform)

	update := func() {
		loop.handleInput()
		loop.feedSimulatedHits()
		loop.syncOrientation()
		ctx.Frame(rig.Position(), rig.Forward())
		dbg.SetStateLine(ctx.State().String() + " / " + ctx.Backend().String())
	}
	draw := func() {
		renderer.SyncCamera(rig)
		renderer.Draw(ctx)
		dbg.Draw()
	}

	log.Info().Str("session", ctx.ID().String()).Msg("viewer started")
	graphics.Run(graphics.Options{
		Title:    "pipe viewer",
		Windowed: flagWindowed || cfg.Window.Windowed,
		Width:    cfg.Window.Width,
		Height:   cfg.Window.Height,
	}, update, draw)
	return nil
}
