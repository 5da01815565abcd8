package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Options control window creation. Fullscreen uses the primary monitor's
// resolution; windowed uses Width×Height.
type Options struct {
	Title    string
	Windowed bool
	Width    int
	Height   int
}

// Run starts the window and main loop. Each frame it calls update (input
// and session state), then draw (scene and overlays) between BeginDrawing
// and EndDrawing. Background clearing is left to draw, which picks the
// color from camera availability. The frame loop is the only scheduling
// primitive in the app.
func Run(opts Options, update, draw func()) {
	if opts.Windowed {
		rl.InitWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	} else {
		rl.SetConfigFlags(rl.FlagFullscreenMode)
		rl.InitWindow(int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0)), opts.Title)
	}
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull) // close via window button; ESC is not a quit key
	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		draw()
		rl.EndDrawing()
	}
}
