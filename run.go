package gimbal

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window and game loop created by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// ProjectionID selects the camera the built-in renderer looks through.
	// Empty defaults to "main".
	ProjectionID string
	// Debug enables per-frame stat logging on the stage.
	Debug bool
}

// game adapts a Stage and Renderer to ebiten.Game. One Update advances and
// resolves exactly one frame; Draw renders the latest snapshot.
type game struct {
	stage    *Stage
	renderer *Renderer
	snap     *Snapshot
	width    int
	height   int
}

func (g *game) Update() error {
	g.stage.Update(1.0 / float64(ebiten.TPS()))
	g.snap = g.stage.Resolve()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.snap != nil {
		g.renderer.Draw(screen, g.snap)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// Run creates a window and drives the stage's update/resolve/draw loop
// until the window closes. For full control implement ebiten.Game yourself
// and call Stage.Update, Stage.Resolve, and Renderer.Draw directly.
func Run(stage *Stage, cfg RunConfig) error {
	if cfg.Width == 0 {
		cfg.Width = 640
	}
	if cfg.Height == 0 {
		cfg.Height = 480
	}
	if cfg.ProjectionID == "" {
		cfg.ProjectionID = "main"
	}
	stage.SetDebugMode(cfg.Debug)

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)

	g := &game{
		stage:    stage,
		renderer: NewRenderer(cfg.ProjectionID),
		width:    cfg.Width,
		height:   cfg.Height,
	}
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("gimbal: run: %w", err)
	}
	return nil
}
